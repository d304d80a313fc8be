package e2e

import (
	"net/http"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gorilla/websocket"

	"toastd/internal/a11y"
	"toastd/internal/session"
	"toastd/internal/toast"
	"toastd/pkg/types"
)

type clock struct {
	mu sync.Mutex
	t  time.Time
}

func (c *clock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t
}

func (c *clock) Advance(d time.Duration) {
	c.mu.Lock()
	c.t = c.t.Add(d)
	c.mu.Unlock()
}

// TestE2E_CaptureExpireFlow drives the full lifecycle over HTTP: nothing is
// captured while stopped, a toast is readable inside the window and gone
// after it, and the previous observer sees every event.
func TestE2E_CaptureExpireFlow(t *testing.T) {
	c := &clock{t: time.Unix(1_700_000_000, 0)}
	srv, sess, pub := newServerWithEvents(t, session.Config{Now: c.Now})

	var mu sync.Mutex
	var seen []a11y.EventType
	if err := sess.Observe(a11y.ListenerFunc(func(ev a11y.Event) {
		mu.Lock()
		seen = append(seen, ev.Type)
		mu.Unlock()
	})); err != nil {
		t.Fatalf("observe: %v", err)
	}

	toastBody := []byte(`{"type":"notification_state_changed","text":["Message sent"],"package_name":"com.example.chat"}`)

	// Stopped: the event reaches the observer but nothing is cached.
	resp, body := httpPostJSON(t, srv.URL+"/events", toastBody)
	if resp.StatusCode != http.StatusAccepted { t.Fatalf("/events %d %s", resp.StatusCode, string(body)) }
	resp, body = httpGet(t, srv.URL+"/toast")
	if tr := decode[types.ToastResponse](t, body); tr.Listening || len(tr.Messages) != 0 {
		t.Fatalf("expected empty toast while stopped, got %+v", tr)
	}
	resp, _ = httpGet(t, srv.URL+"/toast?strict=1")
	if resp.StatusCode != http.StatusConflict { t.Fatalf("strict toast while stopped: %d", resp.StatusCode) }

	resp, body = httpPostJSON(t, srv.URL+"/toast/start", nil)
	if resp.StatusCode != http.StatusOK { t.Fatalf("/toast/start %d %s", resp.StatusCode, string(body)) }

	resp, body = httpPostJSON(t, srv.URL+"/events", []byte(`{"type":"view_clicked","text":["Send"]}`))
	if resp.StatusCode != http.StatusAccepted { t.Fatalf("/events click %d %s", resp.StatusCode, string(body)) }
	resp, body = httpPostJSON(t, srv.URL+"/events", toastBody)
	if ack := decode[types.EventAck](t, body); !ack.Delivered || ack.ID == "" {
		t.Fatalf("unexpected ack %+v", ack)
	}

	_, body = httpGet(t, srv.URL+"/toast")
	if tr := decode[types.ToastResponse](t, body); !tr.Listening || len(tr.Messages) != 1 || tr.Messages[0] != "Message sent" {
		t.Fatalf("unexpected toast %+v", tr)
	}

	c.Advance(toast.DefaultExpiryWindow)
	_, body = httpGet(t, srv.URL+"/toast")
	if tr := decode[types.ToastResponse](t, body); len(tr.Messages) != 1 {
		t.Fatalf("toast should survive exactly the window, got %+v", tr)
	}
	c.Advance(time.Millisecond)
	_, body = httpGet(t, srv.URL+"/toast")
	if tr := decode[types.ToastResponse](t, body); len(tr.Messages) != 0 {
		t.Fatalf("toast should be expired, got %+v", tr)
	}

	_, body = httpPostJSON(t, srv.URL+"/toast/stop", nil)
	st := decode[types.StatusResponse](t, body)
	if st.Listening || st.ToastsCaptured != 1 || st.ToastsExpired != 1 || st.EventsDispatched != 3 {
		t.Fatalf("unexpected status %+v", st)
	}

	mu.Lock()
	defer mu.Unlock()
	want := []a11y.EventType{a11y.TypeNotificationStateChanged, a11y.TypeViewClicked, a11y.TypeNotificationStateChanged}
	if len(seen) != len(want) {
		t.Fatalf("observer saw %v, want %v", seen, want)
	}
	for i := range want {
		if seen[i] != want[i] { t.Fatalf("observer saw %v, want %v", seen, want) }
	}
	names := strings.Join(pub.Names(), ",")
	if names != "listener_start,toast_captured,toast_expired,listener_stop" {
		t.Fatalf("unexpected lifecycle events: %s", names)
	}
}

// TestE2E_WebsocketIngest streams events and reads the toast over HTTP.
func TestE2E_WebsocketIngest(t *testing.T) {
	srv, sess := newServer(t, session.Config{Autostart: true})
	if !sess.IsListening() { t.Fatalf("autostart did not start the listener") }

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/events/ws"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil { t.Fatalf("dial: %v", err) }
	defer conn.Close()

	frames := []types.AccessibilityEvent{
		{ID: "a", Type: "window_state_changed"},
		{ID: "b", Type: "64", Text: []string{"Copied", "to clipboard"}},
		{ID: "c", Type: "nope"},
	}
	for _, f := range frames {
		if err := conn.WriteJSON(f); err != nil { t.Fatalf("write: %v", err) }
		var ack types.EventAck
		if err := conn.ReadJSON(&ack); err != nil { t.Fatalf("read ack: %v", err) }
		if ack.ID != f.ID { t.Fatalf("ack id %q, want %q", ack.ID, f.ID) }
		if f.ID == "c" && ack.Error == "" { t.Fatalf("expected error ack for unknown type") }
		if f.ID != "c" && !ack.Delivered { t.Fatalf("expected delivered ack for %s: %+v", f.ID, ack) }
	}

	_, body := httpGet(t, srv.URL+"/toast?strict=true")
	tr := decode[types.ToastResponse](t, body)
	if strings.Join(tr.Messages, " ") != "Copied to clipboard" {
		t.Fatalf("unexpected toast %+v", tr)
	}
}

// TestE2E_ConcurrentIngest hammers the API while toggling the listener; the
// last captured toast must be one of the ones sent.
func TestE2E_ConcurrentIngest(t *testing.T) {
	srv, sess := newServer(t, session.Config{})
	sess.Start()

	post := func(path string, body string) error {
		resp, err := http.Post(srv.URL+path, "application/json", strings.NewReader(body))
		if err != nil {
			return err
		}
		return resp.Body.Close()
	}

	var wg sync.WaitGroup
	errs := make(chan error, 100)
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 10; j++ {
				if err := post("/events", `{"type":"notification_state_changed","text":["burst"]}`); err != nil {
					errs <- err
				}
			}
		}()
	}
	wg.Add(1)
	go func() {
		defer wg.Done()
		for j := 0; j < 10; j++ {
			if err := post("/toast/stop", ""); err != nil {
				errs <- err
			}
			if err := post("/toast/start", ""); err != nil {
				errs <- err
			}
		}
	}()
	wg.Wait()
	close(errs)
	for err := range errs {
		t.Fatalf("post: %v", err)
	}
	// One more capture after the churn so the final read is deterministic.
	if err := post("/events", `{"type":"notification_state_changed","text":["burst"]}`); err != nil {
		t.Fatalf("post: %v", err)
	}

	_, body := httpGet(t, srv.URL+"/status")
	st := decode[types.StatusResponse](t, body)
	if !st.Listening { t.Fatalf("listener should end started: %+v", st) }
	if st.EventsDispatched != 81 { t.Fatalf("expected 81 dispatched, got %d", st.EventsDispatched) }
	if msgs := sess.ToastMessage(); len(msgs) != 1 || msgs[0] != "burst" {
		t.Fatalf("unexpected toast %v", msgs)
	}
}
