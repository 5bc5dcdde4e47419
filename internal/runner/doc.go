package runner

// Package runner executes a batch of download requests on a bounded worker
// pool. Each worker carries one request through its full retry lifecycle
// before taking the next; cancellation is observed between requests and
// between attempts.
