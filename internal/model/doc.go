package model

// Package model defines domain data structures shared across the app: download
// requests and results, the per-request retry state machine, and the error
// kind taxonomy. Requests are immutable once constructed; every request
// produces exactly one terminal result.
