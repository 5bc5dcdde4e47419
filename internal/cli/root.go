package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/ytget/yt-batch/internal/config"
	"github.com/ytget/yt-batch/internal/download"
	"github.com/ytget/yt-batch/internal/logging"
	"github.com/ytget/yt-batch/internal/platform"
	"github.com/ytget/yt-batch/internal/queue"
	"github.com/ytget/yt-batch/internal/report"
	"github.com/ytget/yt-batch/internal/retry"
	"github.com/ytget/yt-batch/internal/runner"
)

// Exit codes
const (
	ExitOK     = 0
	ExitFailed = 1
	ExitConfig = 2
)

// DefaultConfigFile is looked up when --config is not given
const DefaultConfigFile = "yt-batch.yaml"

// DefaultFailedFile receives the URLs of failed requests for requeue runs
const DefaultFailedFile = "yt-batch-failed.txt"

// exitError carries an explicit process exit code out of a command
type exitError struct {
	code int
	err  error
}

func (e *exitError) Error() string {
	if e.err == nil {
		return fmt.Sprintf("exit %d", e.code)
	}
	return e.err.Error()
}

// flagValues holds the raw flag state of one invocation
type flagValues struct {
	urls          []string
	batchFile     string
	format        string
	quality       string
	extractAudio  bool
	audioFormat   string
	outputDir     string
	template      string
	configFile    string
	maxRetries    int
	concurrency   int
	rateLimit     string
	logLevel      string
	logPath       string
	failedFile    string
	playlist      bool
	subtitles     bool
	subtitleLangs []string
	noProgress    bool
}

// Execute runs the CLI and returns the process exit code
func Execute(version string) int {
	cmd := NewRootCmd(version)
	if err := cmd.Execute(); err != nil {
		var ee *exitError
		if errors.As(err, &ee) {
			return ee.code
		}
		// Flag parse and usage errors: no download was attempted
		fmt.Fprintln(os.Stderr, err.Error())
		return ExitConfig
	}
	return ExitOK
}

// NewRootCmd builds the root command
func NewRootCmd(version string) *cobra.Command {
	cmd, _ := newRootCmd(version)
	return cmd
}

func newRootCmd(version string) (*cobra.Command, *flagValues) {
	fv := &flagValues{}

	cmd := &cobra.Command{
		Use:     "yt-batch [URL...]",
		Short:   "Batch YouTube downloader built on yt-dlp",
		Version: version,
		Long: `yt-batch downloads one or more videos through yt-dlp with bounded
parallelism, per-URL retries, and a structured result log.

URLs come from positional arguments, repeated --url flags, or a batch
file (one URL per line, # starts a comment). Failed URLs are written to
a requeue file so a later run can retry just those.`,
		// Positional arguments are URLs, not subcommand names
		Args:          cobra.ArbitraryArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBatch(cmd, fv, args)
		},
	}

	flags := cmd.Flags()
	flags.StringArrayVar(&fv.urls, "url", nil, "video URL to download (repeatable)")
	flags.StringVar(&fv.batchFile, "batch-file", "", "file with URLs, one per line")
	flags.StringVarP(&fv.format, "format", "f", "", "video container: mp4, mkv, webm, best")
	flags.StringVarP(&fv.quality, "quality", "q", "", "quality ceiling: 144p..1080p, best, worst")
	flags.BoolVar(&fv.extractAudio, "extract-audio", false, "extract audio only")
	flags.StringVar(&fv.audioFormat, "audio-format", "", "audio format when extracting: mp3, m4a, wav")
	flags.StringVarP(&fv.outputDir, "output-dir", "o", "", "output directory for downloads")
	flags.StringVar(&fv.template, "filename-template", "", "yt-dlp filename template")
	flags.StringVar(&fv.configFile, "config", "", "configuration file (YAML or JSON)")
	flags.IntVar(&fv.maxRetries, "max-retries", -1, "retry attempts per URL on retryable errors")
	flags.IntVar(&fv.concurrency, "concurrency", 0, "max downloads in flight")
	flags.StringVar(&fv.rateLimit, "rate-limit", "", "download rate limit (e.g. 1M)")
	flags.StringVar(&fv.logLevel, "log-level", "info", "console log level: debug, info, warn, error")
	flags.StringVar(&fv.logPath, "log-path", "", "structured log file path")
	flags.StringVar(&fv.failedFile, "failed-file", DefaultFailedFile, "file receiving failed URLs for requeue")
	flags.BoolVar(&fv.playlist, "playlist", false, "expand playlist URLs into individual videos")
	flags.BoolVar(&fv.subtitles, "download-subtitles", false, "download subtitles")
	flags.StringSliceVar(&fv.subtitleLangs, "subtitle-languages", nil, "subtitle languages")
	flags.BoolVar(&fv.noProgress, "no-progress", false, "disable live progress bars")

	cmd.AddCommand(newInfoCmd())

	return cmd, fv
}

// loadSettings resolves config file, env, and flag precedence
func loadSettings(cmd *cobra.Command, fv *flagValues) (*config.Settings, error) {
	path := fv.configFile
	if path == "" {
		if _, err := os.Stat(DefaultConfigFile); err == nil {
			path = DefaultConfigFile
		}
	}

	settings, err := config.Load(path)
	if err != nil {
		return nil, err
	}

	applyFlagOverrides(settings, cmd, fv)
	settings.Clamp()

	if err := settings.Validate(); err != nil {
		return nil, err
	}
	return settings, nil
}

// applyFlagOverrides lets explicitly set flags win over file and env values
func applyFlagOverrides(s *config.Settings, cmd *cobra.Command, fv *flagValues) {
	flags := cmd.Flags()
	if flags.Changed("format") {
		s.DefaultFormat = fv.format
	}
	if flags.Changed("quality") {
		s.DefaultQuality = fv.quality
	}
	if flags.Changed("audio-format") {
		s.AudioFormat = fv.audioFormat
	}
	if flags.Changed("output-dir") {
		s.OutputDir = fv.outputDir
	}
	if flags.Changed("filename-template") {
		s.FilenameTemplate = fv.template
	}
	if flags.Changed("max-retries") {
		s.MaxRetries = fv.maxRetries
	}
	if flags.Changed("concurrency") {
		s.Concurrency = fv.concurrency
	}
	if flags.Changed("rate-limit") {
		s.RateLimit = fv.rateLimit
	}
	if flags.Changed("log-path") {
		s.LogPath = fv.logPath
	}
	if flags.Changed("download-subtitles") {
		s.Subtitles = fv.subtitles
	}
	if flags.Changed("subtitle-languages") {
		s.SubtitleLangs = fv.subtitleLangs
	}
}

func runBatch(cmd *cobra.Command, fv *flagValues, args []string) error {
	settings, err := loadSettings(cmd, fv)
	if err != nil {
		fmt.Fprintln(cmd.ErrOrStderr(), err.Error())
		return &exitError{code: ExitConfig, err: err}
	}

	urls, err := queue.Collect(append(args, fv.urls...), fv.batchFile)
	if err != nil {
		fmt.Fprintln(cmd.ErrOrStderr(), err.Error())
		return &exitError{code: ExitConfig, err: err}
	}
	if len(urls) == 0 {
		err := fmt.Errorf("no URLs given: pass URLs as arguments, --url, or --batch-file")
		fmt.Fprintln(cmd.ErrOrStderr(), err.Error())
		return &exitError{code: ExitConfig, err: err}
	}

	logger, sinkCounter, err := logging.Setup(cmd.ErrOrStderr(), settings.LogPath, logging.ParseLevel(fv.logLevel))
	if err != nil {
		fmt.Fprintln(cmd.ErrOrStderr(), err.Error())
		return &exitError{code: ExitConfig, err: err}
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if fv.playlist {
		urls, err = expandPlaylists(ctx, urls)
		if err != nil {
			logger.Error("playlist expansion failed", "error", err)
			return &exitError{code: ExitFailed, err: err}
		}
	}

	reqs := queue.Build(urls, queue.OptionsFromSettings(settings, fv.extractAudio))

	var rep *report.Reporter
	if fv.noProgress {
		rep = report.NewReporter(logger, nil)
	} else {
		rep = report.NewReporter(logger, color.Output)
	}

	invoker := download.NewYTDLPInvoker(settings.RateLimit, settings.RestrictNames)
	policy := retry.NewPolicy(settings.MaxRetries, settings.BackoffBase(), settings.BackoffFactor, config.DefaultBackoffCap)
	run := runner.New(invoker, policy, rep, settings.Concurrency)

	run.Run(ctx, reqs)

	if err := rep.WriteFailedFile(fv.failedFile); err != nil {
		logger.Warn("could not write failed-URLs file", "path", fv.failedFile, "error", err)
	}
	if sinkCounter != nil && sinkCounter.Failures() > 0 {
		logger.Warn("log file writes dropped", "count", sinkCounter.Failures())
	}

	rep.Summary(cmd.OutOrStdout())

	if code := rep.ExitCode(); code != ExitOK {
		return &exitError{code: code}
	}
	return nil
}

// expandPlaylists replaces playlist URLs with their member video URLs,
// passing plain video URLs through untouched
func expandPlaylists(ctx context.Context, urls []string) ([]string, error) {
	expander := platform.NewPlaylistExpander()

	var out []string
	for _, u := range urls {
		if !platform.IsPlaylistURL(u) {
			out = append(out, u)
			continue
		}
		entries, err := expander.Expand(ctx, u)
		if err != nil {
			return nil, fmt.Errorf("expand playlist %s: %w", u, err)
		}
		for _, e := range entries {
			out = append(out, e.URL)
		}
	}
	return queue.Dedupe(out), nil
}
