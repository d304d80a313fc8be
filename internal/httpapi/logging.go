package httpapi

import (
	"log"
	"net/http"
	"os"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"
)

// zlog is an optional structured logger. If unset, falls back to log.Printf.
var zlog *zerolog.Logger

// SetLogger installs a structured logger used by the HTTP layer.
func SetLogger(l zerolog.Logger) { zlog = &l }

// LogLevel controls per-request logging behavior.
type LogLevel int

const (
	LevelOff LogLevel = iota
	LevelError
	LevelInfo
	LevelDebug
)

func parseLevel(s string) LogLevel {
	switch s {
	case "off", "":
		return LevelOff
	case "error":
		return LevelError
	case "info":
		return LevelInfo
	case "debug":
		return LevelDebug
	default:
		return LevelInfo
	}
}

// defaultLogLevel is read once from TOASTD_HTTP_LOG and may be replaced by
// SetRequestLogLevel.
var defaultLogLevel = parseLevel(os.Getenv("TOASTD_HTTP_LOG"))

// SetRequestLogLevel sets the default per-request log level
// (off|error|info|debug).
func SetRequestLogLevel(s string) { defaultLogLevel = parseLevel(s) }

func requestLogLevel(r *http.Request) LogLevel {
	// Per-request overrides
	if v := r.URL.Query().Get("log"); v != "" {
		if v == "1" {
			return LevelDebug
		}
		return parseLevel(v)
	}
	if v := r.Header.Get("X-Log-Level"); v != "" {
		return parseLevel(v)
	}
	return defaultLogLevel
}

// logRequest records the outcome of a request. Errors (status >= 500) are
// logged from LevelError up, everything else from LevelInfo.
func logRequest(r *http.Request, status int, start time.Time, msg string, err error) {
	lvl := requestLogLevel(r)
	if lvl < LevelInfo && !(lvl >= LevelError && status >= http.StatusInternalServerError) {
		return
	}
	dur := time.Since(start)
	if zlog == nil {
		if err != nil {
			log.Printf("%s path=%s status=%d dur=%s err=%v", msg, r.URL.Path, status, dur, err)
		} else {
			log.Printf("%s path=%s status=%d dur=%s", msg, r.URL.Path, status, dur)
		}
		return
	}
	z := zlog.Info()
	if status >= http.StatusInternalServerError {
		z = zlog.Error()
	}
	z = z.Str("path", r.URL.Path).Int("status", status).Dur("dur", dur)
	if rid := middleware.GetReqID(r.Context()); rid != "" {
		z = z.Str("request_id", rid)
	}
	if err != nil {
		z = z.Err(err)
	}
	z.Msg(msg)
}

// logDebug logs msg when the request runs at debug level.
func logDebug(r *http.Request, msg string, fields map[string]any) {
	if requestLogLevel(r) < LevelDebug {
		return
	}
	if zlog == nil {
		log.Printf("%s path=%s %v", msg, r.URL.Path, fields)
		return
	}
	z := zlog.Debug().Str("path", r.URL.Path).Fields(fields)
	if rid := middleware.GetReqID(r.Context()); rid != "" {
		z = z.Str("request_id", rid)
	}
	z.Msg(msg)
}
