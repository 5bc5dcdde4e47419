package download

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/ytget/yt-batch/internal/model"
)

// Error wraps a failed invocation with its classification
type Error struct {
	Kind model.ErrorKind
	Err  error
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %v", e.Kind, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Retryable reports whether another attempt may succeed
func (e *Error) Retryable() bool {
	return e.Kind.Retryable()
}

// NewError wraps err with an explicit kind
func NewError(kind model.ErrorKind, err error) *Error {
	return &Error{Kind: kind, Err: err}
}

// yt-dlp stderr phrases per error class. Matching is case-insensitive on the
// combined error message and captured stderr.
var (
	formatPhrases = []string{
		"requested format is not available",
		"no video formats found",
		"video unavailable",
		"private video",
		"this video has been removed",
		"video is not available",
		"sign in to confirm your age",
	}

	filesystemPhrases = []string{
		"no space left on device",
		"permission denied",
		"read-only file system",
		"unable to open for writing",
		"file name too long",
	}

	networkPhrases = []string{
		"unable to download",
		"connection reset",
		"connection refused",
		"timed out",
		"temporary failure",
		"network is unreachable",
		"http error 5",
		"http error 429",
		"unable to resolve host",
		"got error",
	}
)

// Classify maps a raw invocation failure plus captured stderr onto the error
// taxonomy. Unrecognized failures default to network (retryable) so that
// transient yt-dlp breakage is retried rather than reported as permanent.
func Classify(err error, stderr string) *Error {
	if err == nil {
		return nil
	}

	var classified *Error
	if errors.As(err, &classified) {
		return classified
	}

	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return &Error{Kind: model.ErrorKindInterrupted, Err: err}
	}

	haystack := strings.ToLower(err.Error() + "\n" + stderr)

	for _, phrase := range formatPhrases {
		if strings.Contains(haystack, phrase) {
			return &Error{Kind: model.ErrorKindFormatUnavailable, Err: err}
		}
	}
	for _, phrase := range filesystemPhrases {
		if strings.Contains(haystack, phrase) {
			return &Error{Kind: model.ErrorKindFilesystem, Err: err}
		}
	}
	for _, phrase := range networkPhrases {
		if strings.Contains(haystack, phrase) {
			return &Error{Kind: model.ErrorKindNetwork, Err: err}
		}
	}

	return &Error{Kind: model.ErrorKindNetwork, Err: err}
}
