package config

// Package config loads application settings from an optional YAML or JSON
// file, applies environment variable overrides, and fills defaults for unset
// fields. Settings are loaded once at startup and read-only afterwards.
