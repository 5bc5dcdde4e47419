package model

// RequestState represents where a request is in its retry lifecycle
type RequestState string

const (
	// StatePending means the request is queued but no attempt has started
	StatePending RequestState = "Pending"

	// StateAttempting means an invocation of the external downloader is running
	StateAttempting RequestState = "Attempting"

	// StateRetryWait means the last attempt failed retryably and the request
	// is sleeping out its backoff before the next attempt
	StateRetryWait RequestState = "RetryWait"

	// StateSucceeded means the download finished successfully
	StateSucceeded RequestState = "Succeeded"

	// StateFailed means the request exhausted its retries or hit a terminal error
	StateFailed RequestState = "Failed"
)

// String returns the string representation of RequestState
func (rs RequestState) String() string {
	return string(rs)
}

// IsTerminal returns true if no further transitions are possible
func (rs RequestState) IsTerminal() bool {
	return rs == StateSucceeded || rs == StateFailed
}

// CanTransitionTo reports whether the state machine allows moving to next.
func (rs RequestState) CanTransitionTo(next RequestState) bool {
	switch rs {
	case StatePending:
		return next == StateAttempting || next == StateFailed
	case StateAttempting:
		return next == StateSucceeded || next == StateRetryWait || next == StateFailed
	case StateRetryWait:
		return next == StateAttempting || next == StateFailed
	default:
		return false
	}
}

// ErrorKind classifies a failed attempt for retry decisions and reporting
type ErrorKind string

const (
	// ErrorKindNetwork covers transient transport failures; retryable
	ErrorKindNetwork ErrorKind = "network"

	// ErrorKindFormatUnavailable means no stream matches the requested
	// format/quality, or the video itself cannot be served; terminal
	ErrorKindFormatUnavailable ErrorKind = "format_unavailable"

	// ErrorKindFilesystem means the output path cannot be written; terminal
	ErrorKindFilesystem ErrorKind = "filesystem"

	// ErrorKindInterrupted means the user cancelled the run
	ErrorKindInterrupted ErrorKind = "interrupted"
)

// Retryable returns true if re-attempting the same request may succeed
func (ek ErrorKind) Retryable() bool {
	return ek == ErrorKindNetwork
}

// String returns the string representation of ErrorKind
func (ek ErrorKind) String() string {
	return string(ek)
}
