package download

import (
	"context"

	"github.com/ytget/yt-batch/internal/model"
)

// Progress is a point-in-time snapshot of a running download
type Progress struct {
	DownloadedBytes int64
	TotalBytes      int64
	Percent         float64 // 0.0 to 100.0
	Speed           string  // human readable speed (e.g., "1.2MB/s")
	ETASec          int     // ETA in seconds, -1 if unknown
	Title           string
}

// Outcome is what a single successful invocation produced
type Outcome struct {
	OutputPath string
	Bytes      int64
	Title      string
}

// Invoker runs one attempt of one request against the external downloader.
// Failures are returned as *download.Error so callers can decide on retries.
type Invoker interface {
	Invoke(ctx context.Context, req *model.DownloadRequest, onProgress func(Progress)) (*Outcome, error)
}
