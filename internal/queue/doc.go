package queue

// Package queue turns URL lists (CLI args and batch files) into an ordered,
// deduplicated sequence of download requests. A failed subset of a prior run
// can be re-queued from the failed-URLs file the reporter writes.
