package platform

// Package platform contains OS integration and external tooling glue:
// filesystem helpers and playlist expansion via the ytdlp library.
