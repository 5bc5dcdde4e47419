package download

// Package download implements the invocation layer on top of yt-dlp (via
// github.com/lrstanley/go-ytdlp). It builds the external command from a
// request, surfaces progress updates, and classifies failures into the
// retryable/terminal error taxonomy.
