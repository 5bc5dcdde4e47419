package report

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"sync"

	"github.com/fatih/color"
	"github.com/vbauerster/mpb/v8"
	"github.com/vbauerster/mpb/v8/decor"

	"github.com/ytget/yt-batch/internal/download"
	"github.com/ytget/yt-batch/internal/model"
)

// Reporter records terminal results and drives the live progress display.
// Its log sink serializes writes; workers only touch it through Done and the
// per-request progress callbacks.
type Reporter struct {
	log      *slog.Logger
	progress *mpb.Progress

	mu        sync.Mutex
	total     int
	succeeded int
	failed    int
	skipped   int
	bytes     int64
	failures  []model.DownloadResult
	bars      map[string]*mpb.Bar
}

// NewReporter creates a reporter. When out is nil no progress bars are shown
// (log lines are still written).
func NewReporter(log *slog.Logger, out io.Writer) *Reporter {
	r := &Reporter{
		log:  log,
		bars: make(map[string]*mpb.Bar),
	}
	if out != nil {
		r.progress = mpb.New(mpb.WithAutoRefresh(), mpb.WithOutput(out))
	}
	return r
}

// Start announces the run size
func (r *Reporter) Start(total int) {
	r.mu.Lock()
	r.total = total
	r.mu.Unlock()
	r.log.Info("batch started", "total", total)
}

// ProgressFunc returns the progress callback for one request, or nil when
// progress display is disabled
func (r *Reporter) ProgressFunc(req *model.DownloadRequest) func(download.Progress) {
	if r.progress == nil {
		return nil
	}
	return func(p download.Progress) {
		r.mu.Lock()
		bar, ok := r.bars[req.ID]
		if !ok {
			title := req.DisplayTitle()
			if p.Title != "" {
				title = p.Title
			}
			bar = r.progress.AddBar(p.TotalBytes,
				mpb.PrependDecorators(
					decor.Name(truncate(title, 40)),
					decor.Percentage(decor.WCSyncSpace),
				),
				mpb.AppendDecorators(
					decor.CountersKibiByte("% .1f / % .1f"),
				),
			)
			r.bars[req.ID] = bar
		}
		r.mu.Unlock()

		if p.TotalBytes > 0 {
			bar.SetTotal(p.TotalBytes, false)
		}
		bar.SetCurrent(p.DownloadedBytes)
	}
}

// Done records one terminal result. Each request reports exactly once.
func (r *Reporter) Done(res model.DownloadResult) {
	r.mu.Lock()
	switch res.Status {
	case model.StatusSuccess:
		r.succeeded++
		r.bytes += res.Bytes
	case model.StatusFailed:
		r.failed++
		r.failures = append(r.failures, res)
	case model.StatusSkipped:
		r.skipped++
		r.failures = append(r.failures, res)
	}
	bar := r.bars[res.Request.ID]
	delete(r.bars, res.Request.ID)
	r.mu.Unlock()

	if bar != nil {
		if res.Status == model.StatusSuccess {
			bar.SetTotal(-1, true)
		} else {
			bar.Abort(true)
		}
	}

	switch res.Status {
	case model.StatusSuccess:
		r.log.Info("download succeeded",
			"url", res.Request.URL,
			"attempts", res.Attempts,
			"output", res.OutputPath,
			"bytes", res.Bytes,
			"elapsed", res.ElapsedString(),
		)
	case model.StatusFailed:
		r.log.Error("download failed",
			"url", res.Request.URL,
			"attempts", res.Attempts,
			"error_kind", res.ErrorKind.String(),
			"error", res.Error,
			"elapsed", res.ElapsedString(),
		)
	case model.StatusSkipped:
		r.log.Warn("download skipped",
			"url", res.Request.URL,
			"reason", res.Error,
		)
	}
}

// Wait blocks until all progress bars have rendered their final state
func (r *Reporter) Wait() {
	if r.progress != nil {
		r.progress.Wait()
	}
}

// Counts returns the tallies so far
func (r *Reporter) Counts() (total, succeeded, failed, skipped int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.total, r.succeeded, r.failed, r.skipped
}

// FailedURLs returns the URLs of failed and skipped requests, in completion
// order, for re-queueing
func (r *Reporter) FailedURLs() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	urls := make([]string, 0, len(r.failures))
	for _, res := range r.failures {
		urls = append(urls, res.Request.URL)
	}
	return urls
}

// WriteFailedFile writes failed URLs, one per line, for a later requeue run.
// An empty failure list removes a stale file instead.
func (r *Reporter) WriteFailedFile(path string) error {
	urls := r.FailedURLs()
	if len(urls) == 0 {
		if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
			return err
		}
		return nil
	}
	return os.WriteFile(path, []byte(strings.Join(urls, "\n")+"\n"), 0644)
}

// ExitCode maps the run outcome onto the process exit code: 0 when every
// request succeeded, 1 otherwise
func (r *Reporter) ExitCode() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failed == 0 && r.skipped == 0 {
		return 0
	}
	return 1
}

// Summary prints the end-of-run totals
func (r *Reporter) Summary(w io.Writer) {
	r.mu.Lock()
	total, succeeded, failed, skipped := r.total, r.succeeded, r.failed, r.skipped
	bytes := r.bytes
	r.mu.Unlock()

	green := color.New(color.FgGreen).SprintFunc()
	red := color.New(color.FgRed).SprintFunc()
	yellow := color.New(color.FgYellow).SprintFunc()

	fmt.Fprintf(w, "\nDownloaded %s of %d", green(fmt.Sprintf("%d", succeeded)), total)
	if failed > 0 {
		fmt.Fprintf(w, ", %s failed", red(fmt.Sprintf("%d", failed)))
	}
	if skipped > 0 {
		fmt.Fprintf(w, ", %s skipped", yellow(fmt.Sprintf("%d", skipped)))
	}
	fmt.Fprintf(w, " (%.2f MB)\n", float64(bytes)/1024/1024)

	if total > 0 {
		fmt.Fprintf(w, "Success rate: %.1f%%\n", float64(succeeded)/float64(total)*100)
	}
}

// truncate shortens s to max runes with an ellipsis
func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max-1]) + "…"
}
