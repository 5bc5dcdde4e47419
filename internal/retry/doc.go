package retry

// Package retry drives a request through its attempt lifecycle:
// Pending -> Attempting -> (Succeeded | RetryWait | Failed). Retryable
// failures back off exponentially up to the configured attempt budget;
// terminal failures stop after the first attempt.
