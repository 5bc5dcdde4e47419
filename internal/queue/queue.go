package queue

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/google/uuid"

	"github.com/ytget/yt-batch/internal/config"
	"github.com/ytget/yt-batch/internal/model"
)

// CommentPrefix marks skipped lines in batch files
const CommentPrefix = "#"

// RequestOptions carries the per-run settings applied to every request
type RequestOptions struct {
	Format           model.MediaFormat
	Container        string
	Quality          string
	AudioFormat      string
	OutputDir        string
	FilenameTemplate string
	SubtitleLangs    []string
	Subtitles        bool
}

// OptionsFromSettings derives request options from loaded settings
func OptionsFromSettings(s *config.Settings, extractAudio bool) RequestOptions {
	format := model.FormatVideo
	if extractAudio {
		format = model.FormatAudio
	}
	return RequestOptions{
		Format:           format,
		Container:        s.DefaultFormat,
		Quality:          s.DefaultQuality,
		AudioFormat:      s.AudioFormat,
		OutputDir:        s.OutputDir,
		FilenameTemplate: s.FilenameTemplate,
		SubtitleLangs:    s.SubtitleLangs,
		Subtitles:        s.Subtitles,
	}
}

// ReadBatchFile reads URLs from a file, one per line, skipping blanks and
// comment lines
func ReadBatchFile(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open batch file: %w", err)
	}
	defer f.Close()

	var urls []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, CommentPrefix) {
			continue
		}
		urls = append(urls, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read batch file: %w", err)
	}
	return urls, nil
}

// Dedupe removes repeated URLs while preserving first-seen order
func Dedupe(urls []string) []string {
	seen := make(map[string]struct{}, len(urls))
	out := make([]string, 0, len(urls))
	for _, u := range urls {
		if _, ok := seen[u]; ok {
			continue
		}
		seen[u] = struct{}{}
		out = append(out, u)
	}
	return out
}

// Build constructs one immutable DownloadRequest per unique URL, in input
// order. Every request built here must reach exactly one terminal result.
func Build(urls []string, opts RequestOptions) []model.DownloadRequest {
	urls = Dedupe(urls)
	reqs := make([]model.DownloadRequest, 0, len(urls))
	for _, u := range urls {
		reqs = append(reqs, model.DownloadRequest{
			ID:               uuid.New().String(),
			URL:              u,
			Format:           opts.Format,
			Container:        opts.Container,
			Quality:          opts.Quality,
			AudioFormat:      opts.AudioFormat,
			OutputDir:        opts.OutputDir,
			FilenameTemplate: opts.FilenameTemplate,
			SubtitleLangs:    opts.SubtitleLangs,
			Subtitles:        opts.Subtitles,
		})
	}
	return reqs
}

// Collect merges positional URLs with an optional batch file into the final
// ordered URL list
func Collect(args []string, batchFile string) ([]string, error) {
	urls := make([]string, 0, len(args))
	urls = append(urls, args...)

	if batchFile != "" {
		fromFile, err := ReadBatchFile(batchFile)
		if err != nil {
			return nil, err
		}
		urls = append(urls, fromFile...)
	}
	return Dedupe(urls), nil
}
