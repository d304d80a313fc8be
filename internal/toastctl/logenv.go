package toastctl

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"toastd/internal/logging"
)

var logger = logging.New("info", logging.FormatConsole, os.Stderr)

func init() {
	// default from env if present
	SetLogLevel(envStr("TOASTCTL_LOG_LEVEL", "info"))
}

// SetLogLevel rebuilds the diagnostic logger. Command output goes to stdout;
// diagnostics always go to stderr.
func SetLogLevel(level string) { setLogOutput(level, os.Stderr) }

func setLogOutput(level string, w io.Writer) {
	logger = logging.New(level, logging.FormatConsole, w)
}

func logf(ev *zerolog.Event, format string, a ...any) {
	ev.Msg(fmt.Sprintf(format, a...))
}

func debug(format string, a ...any) { logf(logger.Debug(), format, a...) }
func info(format string, a ...any)  { logf(logger.Info(), format, a...) }
func warn(format string, a ...any)  { logf(logger.Warn(), format, a...) }

// Env helpers
func envStr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envBool(key string, def bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	s := strings.ToLower(v)
	return s == "1" || s == "true" || s == "yes"
}

func envDuration(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}
