package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultSettings(t *testing.T) {
	settings := DefaultSettings()

	if settings.DefaultFormat != DefaultFormat {
		t.Errorf("Expected default format %s, got %s", DefaultFormat, settings.DefaultFormat)
	}

	if settings.MaxRetries != DefaultMaxRetries {
		t.Errorf("Expected default max retries %d, got %d", DefaultMaxRetries, settings.MaxRetries)
	}

	if settings.Concurrency != DefaultConcurrency {
		t.Errorf("Expected default concurrency %d, got %d", DefaultConcurrency, settings.Concurrency)
	}

	if settings.OutputDir == "" {
		t.Error("Output directory should not be empty")
	}
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	settings, err := Load(filepath.Join(t.TempDir(), "does-not-exist.yaml"))
	if err != nil {
		t.Fatalf("Expected no error for missing file, got %v", err)
	}

	if settings.DefaultQuality != DefaultQuality {
		t.Errorf("Expected default quality %s, got %s", DefaultQuality, settings.DefaultQuality)
	}
}

func TestLoadYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := "default_quality: 1080p\nmax_retries: 5\nconcurrency: 2\nunknown_key: ignored\n"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	settings, err := Load(path)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if settings.DefaultQuality != "1080p" {
		t.Errorf("Expected quality 1080p, got %s", settings.DefaultQuality)
	}

	if settings.MaxRetries != 5 {
		t.Errorf("Expected max retries 5, got %d", settings.MaxRetries)
	}

	if settings.Concurrency != 2 {
		t.Errorf("Expected concurrency 2, got %d", settings.Concurrency)
	}

	// Unset fields keep defaults
	if settings.DefaultFormat != DefaultFormat {
		t.Errorf("Expected default format %s, got %s", DefaultFormat, settings.DefaultFormat)
	}
}

func TestLoadJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	content := `{"default_format": "webm", "rate_limit": "1M"}`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	settings, err := Load(path)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if settings.DefaultFormat != "webm" {
		t.Errorf("Expected format webm, got %s", settings.DefaultFormat)
	}

	if settings.RateLimit != "1M" {
		t.Errorf("Expected rate limit 1M, got %s", settings.RateLimit)
	}
}

func TestLoadMalformedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("foo: [unclosed\n\tbad"), 0644); err != nil {
		t.Fatal(err)
	}

	_, err := Load(path)
	if err == nil {
		t.Fatal("Expected error for malformed config")
	}

	var cfgErr *Error
	if !errors.As(err, &cfgErr) {
		t.Errorf("Expected *config.Error, got %T", err)
	}
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv(EnvPrefix+"QUALITY", "480p")
	t.Setenv(EnvPrefix+"CONCURRENCY", "4")

	settings, err := Load("")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if settings.DefaultQuality != "480p" {
		t.Errorf("Expected quality 480p from env, got %s", settings.DefaultQuality)
	}

	if settings.Concurrency != 4 {
		t.Errorf("Expected concurrency 4 from env, got %d", settings.Concurrency)
	}
}

func TestClamp(t *testing.T) {
	s := DefaultSettings()
	s.Concurrency = 0
	s.MaxRetries = -1
	s.Clamp()

	if s.Concurrency != MinConcurrency {
		t.Errorf("Expected concurrency clamped to %d, got %d", MinConcurrency, s.Concurrency)
	}

	if s.MaxRetries != 0 {
		t.Errorf("Expected max retries clamped to 0, got %d", s.MaxRetries)
	}

	s.Concurrency = 50
	s.MaxRetries = 100
	s.Clamp()

	if s.Concurrency != MaxConcurrency {
		t.Errorf("Expected concurrency clamped to %d, got %d", MaxConcurrency, s.Concurrency)
	}

	if s.MaxRetries != MaxRetriesCap {
		t.Errorf("Expected max retries clamped to %d, got %d", MaxRetriesCap, s.MaxRetries)
	}
}

func TestValidate(t *testing.T) {
	s := DefaultSettings()
	if err := s.Validate(); err != nil {
		t.Errorf("Expected defaults to validate, got %v", err)
	}

	s.DefaultFormat = "avi"
	if err := s.Validate(); err == nil {
		t.Error("Expected error for unsupported format")
	}

	s = DefaultSettings()
	s.OutputDir = ""
	if err := s.Validate(); err == nil {
		t.Error("Expected error for empty output dir")
	}
}
