package model

import (
	"fmt"
	"time"
)

// ResultStatus is the terminal outcome of a request
type ResultStatus string

const (
	// StatusSuccess means the file was downloaded
	StatusSuccess ResultStatus = "success"

	// StatusFailed means every attempt failed
	StatusFailed ResultStatus = "failed"

	// StatusSkipped means the request never ran (cancelled before start)
	StatusSkipped ResultStatus = "skipped"
)

// DownloadResult records the terminal outcome of one request's lifecycle
type DownloadResult struct {
	Request    DownloadRequest
	Status     ResultStatus
	Attempts   int
	ErrorKind  ErrorKind // empty on success
	Error      string    // last error message, empty on success
	OutputPath string
	Bytes      int64
	StartedAt  time.Time
	FinishedAt time.Time
}

// Elapsed returns the wall time spent on the request, including backoff waits
func (dr *DownloadResult) Elapsed() time.Duration {
	if dr.FinishedAt.IsZero() || dr.StartedAt.IsZero() {
		return 0
	}
	return dr.FinishedAt.Sub(dr.StartedAt)
}

// ElapsedString returns elapsed time formatted as mm:ss or hh:mm:ss
func (dr *DownloadResult) ElapsedString() string {
	secs := int(dr.Elapsed().Seconds())
	hours := secs / 3600
	minutes := (secs % 3600) / 60
	seconds := secs % 60

	if hours > 0 {
		return fmt.Sprintf("%02d:%02d:%02d", hours, minutes, seconds)
	}
	return fmt.Sprintf("%02d:%02d", minutes, seconds)
}
