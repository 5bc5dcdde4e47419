package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v2"

	"github.com/ytget/yt-batch/internal/platform"
)

// Default values
const (
	DefaultFormat        = "mp4"
	DefaultQuality       = "720p"
	DefaultAudioFormat   = "mp3"
	DefaultMaxRetries    = 3
	DefaultConcurrency   = 3
	DefaultBackoffBase   = 2 * time.Second
	DefaultBackoffFactor = 2.0
	DefaultBackoffCap    = 60 * time.Second
	DefaultTemplate      = "%(title)s.%(ext)s"
	DefaultLogPath       = "yt-batch.log"
)

// Clamp boundaries
const (
	MinConcurrency = 1
	MaxConcurrency = 10
	MaxRetriesCap  = 20
)

// EnvPrefix is the prefix for all environment variable overrides
const EnvPrefix = "YT_BATCH_"

// Settings holds all configuration options
type Settings struct {
	OutputDir        string   `yaml:"output_dir" json:"output_dir"`
	DefaultFormat    string   `yaml:"default_format" json:"default_format"`
	DefaultQuality   string   `yaml:"default_quality" json:"default_quality"`
	AudioFormat      string   `yaml:"audio_format" json:"audio_format"`
	MaxRetries       int      `yaml:"max_retries" json:"max_retries"`
	Concurrency      int      `yaml:"concurrency" json:"concurrency"`
	RateLimit        string   `yaml:"rate_limit" json:"rate_limit"`
	BackoffBaseSec   float64  `yaml:"backoff_base_seconds" json:"backoff_base_seconds"`
	BackoffFactor    float64  `yaml:"backoff_factor" json:"backoff_factor"`
	LogPath          string   `yaml:"log_path" json:"log_path"`
	FilenameTemplate string   `yaml:"filename_template" json:"filename_template"`
	RestrictNames    bool     `yaml:"restrict_filenames" json:"restrict_filenames"`
	Subtitles        bool     `yaml:"download_subtitles" json:"download_subtitles"`
	SubtitleLangs    []string `yaml:"subtitle_languages" json:"subtitle_languages"`
}

// Error is returned for unparseable configuration; the process must exit
// with code 2 without attempting any download.
type Error struct {
	Path string
	Err  error
}

func (e *Error) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("config: %v", e.Err)
	}
	return fmt.Sprintf("config %s: %v", e.Path, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// DefaultSettings returns settings with default values
func DefaultSettings() *Settings {
	outputDir, err := platform.GetHomeDownloadsDir()
	if err != nil {
		outputDir = "./downloads"
	}
	return &Settings{
		OutputDir:        outputDir,
		DefaultFormat:    DefaultFormat,
		DefaultQuality:   DefaultQuality,
		AudioFormat:      DefaultAudioFormat,
		MaxRetries:       DefaultMaxRetries,
		Concurrency:      DefaultConcurrency,
		BackoffBaseSec:   DefaultBackoffBase.Seconds(),
		BackoffFactor:    DefaultBackoffFactor,
		LogPath:          DefaultLogPath,
		FilenameTemplate: DefaultTemplate,
		RestrictNames:    true,
		SubtitleLangs:    []string{"en"},
	}
}

// Load reads settings from path (YAML or JSON by extension), overlays them
// onto defaults, then applies environment overrides. A missing file is not an
// error; a file that exists but does not parse is a *config.Error.
func Load(path string) (*Settings, error) {
	settings := DefaultSettings()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			if !os.IsNotExist(err) {
				return nil, &Error{Path: path, Err: err}
			}
		} else {
			if err := unmarshal(path, data, settings); err != nil {
				return nil, &Error{Path: path, Err: err}
			}
		}
	}

	settings.applyEnv()
	settings.Clamp()
	return settings, nil
}

func unmarshal(path string, data []byte, settings *Settings) error {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return json.Unmarshal(data, settings)
	default:
		// Unknown keys are ignored for forward compatibility
		return yaml.Unmarshal(data, settings)
	}
}

// applyEnv overrides settings from YT_BATCH_* environment variables
func (s *Settings) applyEnv() {
	if v := os.Getenv(EnvPrefix + "OUTPUT_DIR"); v != "" {
		s.OutputDir = v
	}
	if v := os.Getenv(EnvPrefix + "FORMAT"); v != "" {
		s.DefaultFormat = v
	}
	if v := os.Getenv(EnvPrefix + "QUALITY"); v != "" {
		s.DefaultQuality = v
	}
	if v := os.Getenv(EnvPrefix + "AUDIO_FORMAT"); v != "" {
		s.AudioFormat = v
	}
	if v := os.Getenv(EnvPrefix + "MAX_RETRIES"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			s.MaxRetries = n
		}
	}
	if v := os.Getenv(EnvPrefix + "CONCURRENCY"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			s.Concurrency = n
		}
	}
	if v := os.Getenv(EnvPrefix + "RATE_LIMIT"); v != "" {
		s.RateLimit = v
	}
	if v := os.Getenv(EnvPrefix + "LOG_PATH"); v != "" {
		s.LogPath = v
	}
}

// Clamp keeps numeric settings inside sane boundaries
func (s *Settings) Clamp() {
	if s.Concurrency < MinConcurrency {
		s.Concurrency = MinConcurrency
	}
	if s.Concurrency > MaxConcurrency {
		s.Concurrency = MaxConcurrency
	}
	if s.MaxRetries < 0 {
		s.MaxRetries = 0
	}
	if s.MaxRetries > MaxRetriesCap {
		s.MaxRetries = MaxRetriesCap
	}
	if s.BackoffBaseSec <= 0 {
		s.BackoffBaseSec = DefaultBackoffBase.Seconds()
	}
	if s.BackoffFactor < 1 {
		s.BackoffFactor = DefaultBackoffFactor
	}
	if s.FilenameTemplate == "" {
		s.FilenameTemplate = DefaultTemplate
	}
}

// BackoffBase returns the initial retry delay as a duration
func (s *Settings) BackoffBase() time.Duration {
	return time.Duration(s.BackoffBaseSec * float64(time.Second))
}

// Validate checks settings that cannot be clamped into shape
func (s *Settings) Validate() error {
	if s.OutputDir == "" {
		return &Error{Err: fmt.Errorf("output_dir must not be empty")}
	}
	switch s.DefaultFormat {
	case "mp4", "mkv", "webm", "best":
	default:
		return &Error{Err: fmt.Errorf("unsupported format: %s", s.DefaultFormat)}
	}
	return nil
}
