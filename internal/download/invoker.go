package download

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/lrstanley/go-ytdlp"

	"github.com/ytget/yt-batch/internal/model"
	"github.com/ytget/yt-batch/internal/platform"
)

// Progress reporting interval for yt-dlp callbacks
const ProgressInterval = 500 * time.Millisecond

// YTDLPInvoker translates requests into yt-dlp invocations
type YTDLPInvoker struct {
	rateLimit     string
	restrictNames bool
}

// NewYTDLPInvoker creates the production invoker
func NewYTDLPInvoker(rateLimit string, restrictNames bool) *YTDLPInvoker {
	return &YTDLPInvoker{
		rateLimit:     rateLimit,
		restrictNames: restrictNames,
	}
}

// Invoke runs one download attempt. The output directory is created on
// demand; a directory that cannot be created or written is a terminal
// filesystem error.
func (inv *YTDLPInvoker) Invoke(ctx context.Context, req *model.DownloadRequest, onProgress func(Progress)) (*Outcome, error) {
	if err := platform.CreateDirectoryIfNotExists(req.OutputDir); err != nil {
		return nil, NewError(model.ErrorKindFilesystem, fmt.Errorf("create output dir: %w", err))
	}
	if err := platform.CheckWritable(req.OutputDir); err != nil {
		return nil, NewError(model.ErrorKindFilesystem, err)
	}

	dl := inv.buildCommand(req)

	var lastTitle string
	dl.ProgressFunc(ProgressInterval, func(update ytdlp.ProgressUpdate) {
		p := snapshotProgress(&update)
		if p.Title != "" {
			lastTitle = p.Title
		}
		if onProgress != nil {
			onProgress(p)
		}
	})

	result, err := dl.Run(ctx, req.URL)
	if err != nil {
		stderr := ""
		if result != nil {
			stderr = result.Stderr
		}
		return nil, Classify(err, stderr)
	}

	outcome := &Outcome{Title: lastTitle}
	if result != nil {
		if info, infoErr := result.GetExtractedInfo(); infoErr == nil && len(info) > 0 {
			if info[0].Filename != nil {
				outcome.OutputPath = *info[0].Filename
			}
			if info[0].Title != nil {
				outcome.Title = *info[0].Title
			}
		}
	}
	if outcome.OutputPath != "" {
		if st, statErr := os.Stat(outcome.OutputPath); statErr == nil {
			outcome.Bytes = st.Size()
		}
	}
	return outcome, nil
}

// buildCommand assembles the yt-dlp command for the request
func (inv *YTDLPInvoker) buildCommand(req *model.DownloadRequest) *ytdlp.Command {
	dl := ytdlp.New().
		ForceOverwrites().
		NoPlaylist().
		Format(FormatSelector(req)).
		Output(filepath.Join(req.OutputDir, req.FilenameTemplate))

	if inv.restrictNames {
		dl = dl.RestrictFilenames()
	}
	if req.Format == model.FormatAudio {
		dl = dl.ExtractAudio().AudioFormat(req.AudioFormat)
	}
	if inv.rateLimit != "" {
		dl = dl.LimitRate(inv.rateLimit)
	}
	if req.Subtitles && len(req.SubtitleLangs) > 0 {
		dl = dl.WriteSubs().SubLangs(strings.Join(req.SubtitleLangs, ","))
	}
	return dl
}

// snapshotProgress converts a yt-dlp progress update into our Progress record
func snapshotProgress(update *ytdlp.ProgressUpdate) Progress {
	p := Progress{
		DownloadedBytes: int64(update.DownloadedBytes),
		TotalBytes:      int64(update.TotalBytes),
		ETASec:          -1,
	}

	if update.TotalBytes > 0 {
		p.Percent = float64(update.DownloadedBytes) / float64(update.TotalBytes) * 100
	}

	if !update.Started.IsZero() {
		elapsed := time.Since(update.Started)
		if elapsed.Seconds() > 0 {
			bytesPerSecond := float64(update.DownloadedBytes) / elapsed.Seconds()
			p.Speed = fmt.Sprintf("%.1fMB/s", bytesPerSecond/1024/1024)
		}
	}

	if eta := update.ETA(); eta > 0 {
		p.ETASec = int(eta.Seconds())
	}

	if update.Info != nil && update.Info.Title != nil {
		p.Title = *update.Info.Title
	}

	return p
}
