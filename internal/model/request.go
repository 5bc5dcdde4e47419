package model

import (
	"strings"
)

// MediaFormat selects what kind of media a request fetches
type MediaFormat string

const (
	// FormatVideo downloads the full video stream
	FormatVideo MediaFormat = "video"

	// FormatAudio extracts audio only
	FormatAudio MediaFormat = "audio"
)

// DownloadRequest describes a single download. Fields are fixed at
// construction time; the retry lifecycle never mutates the request.
type DownloadRequest struct {
	ID               string
	URL              string
	Format           MediaFormat
	Container        string // mp4, mkv, webm, best
	Quality          string // 144p..1080p, best, worst
	AudioFormat      string // mp3, m4a, wav; used when Format == FormatAudio
	OutputDir        string
	FilenameTemplate string
	SubtitleLangs    []string
	Subtitles        bool
}

// DisplayTitle returns a short human-readable identifier for the request,
// preferring the video ID over the full URL when one can be extracted
func (dr *DownloadRequest) DisplayTitle() string {
	if idx := strings.Index(dr.URL, "v="); idx >= 0 {
		id := dr.URL[idx+2:]
		if amp := strings.Index(id, "&"); amp >= 0 {
			id = id[:amp]
		}
		if id != "" {
			return id
		}
	}
	return dr.URL
}
