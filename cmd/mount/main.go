package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/vango-dev/mount/internal/config"
	"github.com/vango-dev/mount/internal/errors"
	"github.com/vango-dev/mount/pkg/middleware"
	"github.com/vango-dev/mount/pkg/render"
)

// Version information set at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

const banner = `
  ┌┬┐┌─┐┬ ┬┌┐┌┌┬┐
  ││││ ││ ││││ │
  ┴ ┴└─┘└─┘┘└┘ ┴
`

// globalFlags are shared by every command.
type globalFlags struct {
	configDir string
	verbose   bool
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		errors.Print(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	flags := &globalFlags{}

	rootCmd := &cobra.Command{
		Use:   "mount",
		Short: "Mount described elements into HTML documents",
		Long: `mount creates an element from a descriptor (tag, attributes,
content) and appends it to a container in an HTML document.

  • Render descriptors into documents from the command line
  • Preview a live document and mount elements over HTTP
  • Publish rendered documents to S3 or a local directory`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().StringVarP(&flags.configDir, "config", "C", ".", "Directory containing mount.json")
	rootCmd.PersistentFlags().BoolVarP(&flags.verbose, "verbose", "v", false, "Enable debug logging")

	rootCmd.AddCommand(
		renderCmd(flags),
		serveCmd(flags),
		publishCmd(flags),
		initCmd(flags),
		versionCmd(),
	)

	return rootCmd
}

// loadConfig reads mount.json (or defaults), applies MOUNT_* overrides and
// validates the result.
func loadConfig(flags *globalFlags) (*config.Config, error) {
	cfg, err := config.LoadOrDefault(flags.configDir)
	if err != nil {
		return nil, err
	}
	cfg.ApplyEnv(os.Getenv)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// newLogger builds a text logger on w at the configured level.
func newLogger(cfg *config.Config, verbose bool, w io.Writer) *slog.Logger {
	level := cfg.LogLevel()
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

// newRenderer builds a renderer from config. Metrics are registered on reg
// when enabled.
func newRenderer(cfg *config.Config, textMode bool, logger *slog.Logger, reg prometheus.Registerer) (*render.Renderer, error) {
	mode, ok := render.ParseContentMode(cfg.ContentMode)
	if !ok {
		return nil, errors.New(errors.CodeConfigRange).
			WithDetailf("contentMode must be markup or text, got %q", cfg.ContentMode)
	}
	if textMode {
		mode = render.ContentText
	}

	var mw []render.Middleware
	if cfg.Metrics.Enabled && reg != nil {
		mw = append(mw, middleware.Prometheus(
			middleware.WithNamespace(cfg.Metrics.Namespace),
			middleware.WithRegistry(reg),
		))
	}
	mw = append(mw, middleware.OpenTelemetry(
		middleware.WithTracerName(cfg.Tracing.TracerName),
		middleware.WithIncludeContent(cfg.Tracing.IncludeContent),
	))

	return render.NewRenderer(render.Config{
		Mode:       mode,
		Logger:     logger,
		Middleware: mw,
	}), nil
}

// printBanner prints the ASCII art banner.
func printBanner(w io.Writer) {
	fmt.Fprint(w, banner)
}

// success prints a success message.
func success(w io.Writer, format string, args ...any) {
	fmt.Fprintf(w, "\033[32m✓\033[0m %s\n", fmt.Sprintf(format, args...))
}

// info prints an info message.
func info(w io.Writer, format string, args ...any) {
	fmt.Fprintf(w, "  %s\n", fmt.Sprintf(format, args...))
}
