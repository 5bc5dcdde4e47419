package download

import (
	"fmt"
	"strings"

	"github.com/ytget/yt-batch/internal/model"
)

// Quality keywords that bypass the height filter
const (
	QualityBest  = "best"
	QualityWorst = "worst"
)

// FormatSelector builds the yt-dlp format expression for a request.
//
// Audio requests always use "bestaudio/best"; video requests prefer the
// requested container at or below the quality ceiling, falling back to any
// container and finally to yt-dlp's own "best".
func FormatSelector(req *model.DownloadRequest) string {
	if req.Format == model.FormatAudio {
		return "bestaudio/best"
	}

	container := req.Container
	if container == "" {
		container = "mp4"
	}

	switch req.Quality {
	case QualityBest, "":
		if container == "best" {
			return "best"
		}
		return fmt.Sprintf("best[ext=%s]/best", container)
	case QualityWorst:
		if container == "best" {
			return "worst"
		}
		return fmt.Sprintf("worst[ext=%s]/worst", container)
	default:
		height := strings.TrimSuffix(req.Quality, "p")
		if container == "best" {
			return fmt.Sprintf("best[height<=%s]/best", height)
		}
		return fmt.Sprintf("best[height<=%s][ext=%s]/best[height<=%s]/best", height, container, height)
	}
}
