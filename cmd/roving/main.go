package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"runtime"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"golang.org/x/sync/errgroup"
	"golang.org/x/term"
	"gopkg.in/yaml.v3"

	"github.com/odvcencio/roving/pkg/config"
	apperrors "github.com/odvcencio/roving/pkg/errors"
	"github.com/odvcencio/roving/pkg/logging"
	"github.com/odvcencio/roving/pkg/roving"
	"github.com/odvcencio/roving/pkg/ui/backend"
	tcellbackend "github.com/odvcencio/roving/pkg/ui/backend/tcell"
	uiruntime "github.com/odvcencio/roving/pkg/ui/runtime"
	"github.com/odvcencio/roving/pkg/ui/theme"
)

// Version information - set via ldflags during build
var (
	version   = "0.1.0-dev"
	commit    = "unknown"
	buildDate = "unknown"
)

// Exit codes.
const (
	exitOK      = 0
	exitFailure = 1
	exitUsage   = 2
	exitConfig  = 3
	exitBackend = 4
)

// Seams for tests.
var (
	isTerminal = func() bool { return term.IsTerminal(int(os.Stdin.Fd())) }
	newBackend = func() (backend.Backend, error) { return tcellbackend.New() }
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

type options struct {
	configPath  string
	showVersion bool
	dumpConfig  bool
}

func parseFlags(args []string, stderr io.Writer) (options, error) {
	var opts options
	fs := flag.NewFlagSet("roving", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVar(&opts.configPath, "config", "", "path to a config file (default: ~/.roving and ./.roving)")
	fs.BoolVar(&opts.showVersion, "version", false, "print version information and exit")
	fs.BoolVar(&opts.dumpConfig, "dump-config", false, "print the effective configuration as YAML and exit")
	fs.Usage = func() {
		fmt.Fprintln(stderr, "Usage: roving [flags]")
		fmt.Fprintln(stderr)
		fmt.Fprintln(stderr, "Toolbars with roving tab stops. Tab/Shift+Tab switch toolbars, arrows move")
		fmt.Fprintln(stderr, "within one, Enter or Space presses, q quits.")
		fmt.Fprintln(stderr)
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		return opts, err
	}
	if fs.NArg() > 0 {
		fs.Usage()
		return opts, fmt.Errorf("unexpected arguments: %v", fs.Args())
	}
	return opts, nil
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	opts, err := parseFlags(args, stderr)
	if errors.Is(err, flag.ErrHelp) {
		return exitOK
	}
	if err != nil {
		return exitUsage
	}

	if opts.showVersion {
		printVersion(stdout)
		return exitOK
	}

	cfg, err := loadConfig(opts.configPath)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", formatError(err))
		return exitCodeForError(err)
	}

	if opts.dumpConfig {
		enc := yaml.NewEncoder(stdout)
		enc.SetIndent(2)
		if err := enc.Encode(cfg); err != nil {
			fmt.Fprintf(stderr, "Error: %v\n", err)
			return exitFailure
		}
		_ = enc.Close()
		return exitOK
	}

	if !isTerminal() {
		fmt.Fprintln(stderr, "Error: roving needs an interactive terminal")
		return exitBackend
	}

	if err := runDemo(ctx, cfg, opts.configPath); err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", formatError(err))
		return exitCodeForError(err)
	}
	return exitOK
}

func printVersion(w io.Writer) {
	fmt.Fprintf(w, "roving %s\n", version)
	if commit != "unknown" {
		fmt.Fprintf(w, "  Commit:     %s\n", commit)
	}
	if buildDate != "unknown" {
		fmt.Fprintf(w, "  Built:      %s\n", buildDate)
	}
	fmt.Fprintf(w, "  Go version: %s\n", runtime.Version())
}

func loadConfig(path string) (*config.Config, error) {
	if path != "" {
		return config.LoadFromPath(path)
	}
	return config.Load()
}

// configPaths returns the files whose changes trigger a reload.
func configPaths(explicit string) []string {
	if explicit != "" {
		return []string{explicit}
	}
	return config.Paths()
}

func formatError(err error) string {
	msg := err.Error()
	var appErr *apperrors.Error
	if errors.As(err, &appErr) {
		for _, tip := range appErr.Remediation {
			msg += "\n  hint: " + tip
		}
	}
	return msg
}

func exitCodeForError(err error) int {
	switch {
	case err == nil:
		return exitOK
	case apperrors.IsCode(err, apperrors.ErrCodeConfigLoad),
		apperrors.IsCode(err, apperrors.ErrCodeConfigParse),
		apperrors.IsCode(err, apperrors.ErrCodeConfigInvalid):
		return exitConfig
	case apperrors.IsCode(err, apperrors.ErrCodeBackendInit):
		return exitBackend
	default:
		return exitFailure
	}
}

func openLogger(cfg config.LoggingConfig) (*logging.Logger, error) {
	logger := logging.New(io.Discard)
	if cfg.File != "" {
		var err error
		if logger, err = logging.Open(cfg.File); err != nil {
			return nil, apperrors.Wrap(err, apperrors.ErrCodeConfigInvalid, "open log file").
				WithContext("path", cfg.File)
		}
	}
	if level, err := logging.ParseLevel(cfg.Level); err == nil {
		logger.SetMinLevel(level)
	}
	return logger, nil
}

// runDemo runs the toolbar demo until the user quits or ctx is cancelled.
// The app loop, metrics server and config watcher share one errgroup; the
// loop exiting stops the rest.
func runDemo(ctx context.Context, cfg *config.Config, explicitConfig string) error {
	logger, err := openLogger(cfg.Logging)
	if err != nil {
		return err
	}
	defer logger.Close()

	groupOpts := []roving.Option{roving.WithLogger(logger)}

	reg := prometheus.NewRegistry()
	if cfg.Metrics.Enabled {
		groupOpts = append(groupOpts, roving.WithMetrics(roving.NewMetrics(reg)))
	}

	var tp *sdktrace.TracerProvider
	if cfg.Tracing.Enabled {
		var closeTrace func() error
		tp, closeTrace, err = newTracerProvider(cfg.Tracing.File)
		if err != nil {
			return err
		}
		defer func() {
			_ = tp.Shutdown(context.Background())
			_ = closeTrace()
		}()
		groupOpts = append(groupOpts, roving.WithObserver(newSpanObserver(tp)))
	}

	be, err := newBackend()
	if err != nil {
		return apperrors.Wrap(err, apperrors.ErrCodeBackendInit, "create terminal backend").
			WithRemediation("check that TERM names a terminal tcell understands")
	}

	d, err := newDemo(cfg, logger, groupOpts...)
	if err != nil {
		return err
	}
	defer d.Close()

	app := uiruntime.NewApp(uiruntime.AppConfig{
		Backend:        be,
		Root:           d.Root(),
		Theme:          theme.Detect(),
		CommandHandler: d.HandleCommand,
		Logger:         logger,
	})

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		defer cancel()
		err := app.Run(ctx)
		if errors.Is(err, context.Canceled) {
			return nil
		}
		return err
	})

	if cfg.Metrics.Enabled {
		srv := &http.Server{Addr: cfg.Metrics.Listen, Handler: newMetricsRouter(reg)}
		g.Go(func() error {
			_ = logger.Info(logging.CategoryMetrics, "metrics_listen", "serving metrics",
				map[string]any{"listen": cfg.Metrics.Listen})
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return fmt.Errorf("metrics server: %w", err)
			}
			return nil
		})
		g.Go(func() error {
			<-ctx.Done()
			return srv.Shutdown(context.Background())
		})
	}

	g.Go(func() error {
		return watchConfig(ctx, configPaths(explicitConfig), logger, func() {
			reloaded, err := loadConfig(explicitConfig)
			if err != nil {
				_ = logger.Warn(logging.CategoryConfig, "reload_failed", err.Error(), nil)
				return
			}
			err = app.Call(ctx, func(app *uiruntime.App) bool {
				d.Apply(reloaded)
				app.Screen().Relayout()
				return true
			})
			if err != nil && !errors.Is(err, uiruntime.ErrNotRunning) && !errors.Is(err, context.Canceled) {
				_ = logger.Warn(logging.CategoryConfig, "reload_dropped", err.Error(), nil)
			}
		})
	})

	return g.Wait()
}
