package download

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/lrstanley/go-ytdlp"
)

// VideoInfo is the metadata subset the info command prints
type VideoInfo struct {
	ID         string  `json:"id"`
	Title      string  `json:"title"`
	Uploader   string  `json:"uploader"`
	Duration   float64 `json:"duration"`
	ViewCount  int64   `json:"view_count"`
	UploadDate string  `json:"upload_date"`
}

// FetchInfo retrieves metadata for a URL without downloading anything
func FetchInfo(ctx context.Context, url string) (*VideoInfo, error) {
	dl := ytdlp.New().DumpSingleJSON()

	result, err := dl.Run(ctx, url)
	if err != nil {
		stderr := ""
		if result != nil {
			stderr = result.Stderr
		}
		return nil, Classify(err, stderr)
	}

	var info VideoInfo
	if err := json.Unmarshal([]byte(result.Stdout), &info); err != nil {
		return nil, fmt.Errorf("parse video info: %w", err)
	}
	return &info, nil
}

// DurationString formats the duration as mm:ss or hh:mm:ss
func (vi *VideoInfo) DurationString() string {
	secs := int(vi.Duration)
	hours := secs / 3600
	minutes := (secs % 3600) / 60
	seconds := secs % 60

	if hours > 0 {
		return fmt.Sprintf("%02d:%02d:%02d", hours, minutes, seconds)
	}
	return fmt.Sprintf("%02d:%02d", minutes, seconds)
}
