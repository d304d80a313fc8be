package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"toastd/internal/config"
	"toastd/internal/httpapi"
	"toastd/internal/logging"
	"toastd/internal/session"
)

// options holds command-line flags. Flags only override the config file when
// explicitly set.
type options struct {
	configPath string
	addr       string
	expiryMS   int
	autostart  bool
	logLevel   string
	logFormat  string
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var opts options
	cmd := &cobra.Command{
		Use:           "toastd",
		Short:         "Capture toast notification text from accessibility events",
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := resolveConfig(cmd, opts)
			if err != nil {
				return err
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			return run(ctx, cfg)
		},
	}
	f := cmd.Flags()
	f.StringVar(&opts.configPath, "config", "", "Config file (.yaml|.yml|.json|.toml); searched in ./toastd.* and ~/.config/toastd when unset")
	f.StringVar(&opts.addr, "addr", config.DefaultAddr, "HTTP listen address (env TOASTD_ADDR)")
	f.IntVar(&opts.expiryMS, "expiry-ms", config.DefaultExpiryMS, "How long a captured toast stays readable, in milliseconds")
	f.BoolVar(&opts.autostart, "autostart", false, "Start the toast listener at boot")
	f.StringVar(&opts.logLevel, "log-level", config.DefaultLogLevel, "Log level: debug|info|warn|error|off (env TOASTD_LOG_LEVEL)")
	f.StringVar(&opts.logFormat, "log-format", config.DefaultLogFormat, "Log format: console|json")
	return cmd
}

// resolveConfig layers config file, environment, then explicitly set flags,
// and finally fills defaults.
func resolveConfig(cmd *cobra.Command, opts options) (config.Config, error) {
	var cfg config.Config
	path := opts.configPath
	if path == "" {
		path = config.Discover()
	}
	if path != "" {
		loaded, err := config.Load(path)
		if err != nil {
			return cfg, fmt.Errorf("load config: %w", err)
		}
		cfg = loaded
	}
	cfg = cfg.ApplyEnv()

	f := cmd.Flags()
	if f.Changed("addr") {
		cfg.Addr = opts.addr
	}
	if f.Changed("expiry-ms") {
		cfg.ExpiryMS = opts.expiryMS
	}
	if f.Changed("autostart") {
		cfg.Autostart = opts.autostart
	}
	if f.Changed("log-level") {
		cfg.LogLevel = opts.logLevel
	}
	if f.Changed("log-format") {
		cfg.LogFormat = opts.logFormat
	}
	return cfg.WithDefaults(), nil
}

func run(ctx context.Context, cfg config.Config) error {
	logger := logging.New(cfg.LogLevel, logging.Format(cfg.LogFormat), os.Stderr)

	httpapi.SetLogger(logger)
	if os.Getenv("TOASTD_HTTP_LOG") == "" {
		httpapi.SetRequestLogLevel(cfg.LogLevel)
	}
	httpapi.SetMaxBodyBytes(cfg.MaxBodyBytes)
	httpapi.SetCORSOptions(cfg.CORSEnabled, cfg.CORSOrigins, cfg.CORSMethods, cfg.CORSHeaders)
	httpapi.SetBaseContext(ctx)

	sess := session.New(session.Config{ExpiryWindow: cfg.ExpiryWindow(), Logger: &logger})
	// The logging observer plays the part of the platform's own listener; the
	// toast listener chains to it once started.
	if err := sess.Observe(session.LogObserver(logger)); err != nil {
		return err
	}
	if cfg.Autostart {
		sess.Start()
	}

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           httpapi.NewMux(sess),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info().Str("addr", cfg.Addr).Dur("expiry", cfg.ExpiryWindow()).Bool("listening", sess.IsListening()).Msg("toastd listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	// Graceful shutdown (Ctrl+C / SIGTERM)
	sess.Stop()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("graceful shutdown error")
	}
	return nil
}
