package toastctl

import (
	"bytes"
	"strings"
	"testing"
	"time"
)

func TestEnvStr(t *testing.T) {
	key := "TOASTCTL_ENV_STR"
	t.Setenv(key, "")
	if got := envStr(key, "def"); got != "def" {
		t.Fatalf("envStr default: got %q", got)
	}
	t.Setenv(key, "val")
	if got := envStr(key, "def"); got != "val" {
		t.Fatalf("envStr set: got %q", got)
	}
}

func TestEnvBool(t *testing.T) {
	key := "TOASTCTL_ENV_BOOL"
	t.Setenv(key, "")
	if got := envBool(key, true); !got { t.Fatalf("envBool default true -> false") }
	if got := envBool(key, false); got { t.Fatalf("envBool default false -> true") }
	for _, v := range []string{"1", "true", "yes", "YES"} {
		t.Setenv(key, v)
		if got := envBool(key, false); !got { t.Fatalf("envBool %s -> false", v) }
	}
	t.Setenv(key, "no")
	if got := envBool(key, true); got { t.Fatalf("envBool no -> true") }
}

func TestEnvDuration(t *testing.T) {
	key := "TOASTCTL_ENV_DURATION"
	t.Setenv(key, "")
	if got := envDuration(key, time.Second); got != time.Second { t.Fatalf("envDuration default -> %s", got) }
	t.Setenv(key, "250ms")
	if got := envDuration(key, 0); got != 250*time.Millisecond { t.Fatalf("envDuration 250ms -> %s", got) }
	t.Setenv(key, "bad")
	if got := envDuration(key, 3*time.Second); got != 3*time.Second { t.Fatalf("envDuration bad -> %s", got) }
}

func TestLogLevelFiltersDebug(t *testing.T) {
	var buf bytes.Buffer
	setLogOutput("info", &buf)
	t.Cleanup(func() { SetLogLevel("info") })

	debug("hidden %d", 1)
	info("shown %d", 2)
	out := buf.String()
	if strings.Contains(out, "hidden") || !strings.Contains(out, "shown 2") {
		t.Fatalf("unexpected log output: %q", out)
	}

	buf.Reset()
	setLogOutput("debug", &buf)
	debug("visible")
	if !strings.Contains(buf.String(), "visible") {
		t.Fatalf("debug not emitted at debug level: %q", buf.String())
	}
}
