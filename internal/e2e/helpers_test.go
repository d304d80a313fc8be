package e2e

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"toastd/internal/httpapi"
	"toastd/internal/session"
	"toastd/internal/toast"
)

func newServer(t *testing.T, cfg session.Config) (*httptest.Server, *session.Session) {
	t.Helper()
	sess := session.New(cfg)
	srv := httptest.NewServer(httpapi.NewMux(sess))
	t.Cleanup(srv.Close)
	return srv, sess
}

// newServerWithEvents also records lifecycle events.
func newServerWithEvents(t *testing.T, cfg session.Config) (*httptest.Server, *session.Session, *toast.MemoryPublisher) {
	t.Helper()
	pub := toast.NewMemoryPublisher()
	cfg.Publisher = pub
	srv, sess := newServer(t, cfg)
	return srv, sess, pub
}

func httpGet(t *testing.T, url string) (*http.Response, []byte) {
	t.Helper()
	req, err := http.NewRequestWithContext(context.Background(), http.MethodGet, url, nil)
	if err != nil { t.Fatalf("new req: %v", err) }
	resp, err := http.DefaultClient.Do(req)
	if err != nil { t.Fatalf("do req: %v", err) }
	body, _ := io.ReadAll(resp.Body)
	_ = resp.Body.Close()
	return resp, body
}

func httpPostJSON(t *testing.T, url string, payload []byte) (*http.Response, []byte) {
	t.Helper()
	req, err := http.NewRequestWithContext(context.Background(), http.MethodPost, url, bytes.NewReader(payload))
	if err != nil { t.Fatalf("new req: %v", err) }
	req.Header.Set("Content-Type", "application/json")
	resp, err := http.DefaultClient.Do(req)
	if err != nil { t.Fatalf("do req: %v", err) }
	body, _ := io.ReadAll(resp.Body)
	_ = resp.Body.Close()
	return resp, body
}

func decode[T any](t *testing.T, body []byte) T {
	t.Helper()
	var v T
	if err := json.Unmarshal(body, &v); err != nil {
		t.Fatalf("decode %T: %v body=%s", v, err, string(body))
	}
	return v
}
