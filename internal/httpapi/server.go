package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"toastd/internal/a11y"
	"toastd/internal/session"
	"toastd/pkg/types"
)

// Service defines the methods required by the HTTP API layer.
type Service interface {
	Start()
	Stop()
	IsListening() bool
	Toast(strict bool) ([]string, error)
	Dispatch(ev a11y.Event) (a11y.Event, bool)
	Status() types.StatusResponse
	Ready() bool
}

type api struct {
	svc Service
}

func NewMux(svc Service) http.Handler {
	a := &api{svc: svc}
	r := chi.NewRouter()
	// Basic middlewares: request id, real ip, recoverer, metrics
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(MetricsMiddleware)
	if corsEnabled {
		r.Use(cors.Handler(corsOptions()))
	}
	// Security headers
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("X-Content-Type-Options", "nosniff")
			next.ServeHTTP(w, r)
		})
	})

	// The event stream hijacks the connection, so it stays outside the
	// compressed group.
	r.Get("/events/ws", a.handleEventStream)

	r.Group(func(r chi.Router) {
		r.Use(middleware.Compress(5))

		r.Get("/toast", a.handleToast)
		r.Post("/toast/start", a.handleStart)
		r.Post("/toast/stop", a.handleStop)
		r.Get("/status", a.handleStatus)
		r.Post("/events", a.handlePostEvent)

		r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusOK)
			w.Write([]byte("ok"))
		})

		r.Get("/readyz", func(w http.ResponseWriter, r *http.Request) {
			if svc.Ready() {
				w.WriteHeader(http.StatusOK)
				w.Write([]byte("ready"))
				return
			}
			w.WriteHeader(http.StatusServiceUnavailable)
			w.Write([]byte("not ready"))
		})

		// Prometheus metrics endpoint
		r.Get("/metrics", promhttp.Handler().ServeHTTP)

		MountSwagger(r)
	})

	return r
}

func corsOptions() cors.Options {
	methods := corsAllowedMethods
	if len(methods) == 0 {
		methods = []string{http.MethodGet, http.MethodPost}
	}
	headers := corsAllowedHeaders
	if len(headers) == 0 {
		headers = []string{"Content-Type"}
	}
	return cors.Options{
		AllowedOrigins: corsAllowedOrigins,
		AllowedMethods: methods,
		AllowedHeaders: headers,
		MaxAge:         300,
	}
}

// handleToast godoc
//
//	@Summary		Current toast text
//	@Description	Returns the most recent toast text, or an empty list if none was captured or it expired.
//	@Tags			toast
//	@Produce		json
//	@Param			strict	query		bool	false	"Fail with 409 when the listener is not started"
//	@Success		200		{object}	types.ToastResponse
//	@Failure		409		{object}	types.ErrorResponse
//	@Router			/toast [get]
func (a *api) handleToast(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	strict := isTruthy(r.URL.Query().Get("strict"))
	msgs, err := a.svc.Toast(strict)
	if err != nil {
		status := http.StatusInternalServerError
		var he HTTPError
		switch {
		case session.IsNotListening(err):
			status = http.StatusConflict
		case errors.As(err, &he):
			status = he.StatusCode()
		}
		writeJSONError(w, status, err.Error())
		logRequest(r, status, start, "toast read", err)
		return
	}
	if msgs == nil {
		msgs = []string{}
	}
	writeJSON(w, http.StatusOK, types.ToastResponse{Listening: a.svc.IsListening(), Messages: msgs})
	logRequest(r, http.StatusOK, start, "toast read", nil)
}

// handleStart godoc
//
//	@Summary	Start the toast listener
//	@Tags		toast
//	@Produce	json
//	@Success	200	{object}	types.StatusResponse
//	@Router		/toast/start [post]
func (a *api) handleStart(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	a.svc.Start()
	writeJSON(w, http.StatusOK, a.svc.Status())
	logRequest(r, http.StatusOK, start, "toast listener start", nil)
}

// handleStop godoc
//
//	@Summary	Stop the toast listener
//	@Tags		toast
//	@Produce	json
//	@Success	200	{object}	types.StatusResponse
//	@Router		/toast/stop [post]
func (a *api) handleStop(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	a.svc.Stop()
	writeJSON(w, http.StatusOK, a.svc.Status())
	logRequest(r, http.StatusOK, start, "toast listener stop", nil)
}

// handleStatus godoc
//
//	@Summary	Listener state and counters
//	@Tags		status
//	@Produce	json
//	@Success	200	{object}	types.StatusResponse
//	@Router		/status [get]
func (a *api) handleStatus(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, a.svc.Status())
}

// handlePostEvent godoc
//
//	@Summary		Ingest an accessibility event
//	@Description	Hands one event to the observer slot, as the platform would.
//	@Tags			events
//	@Accept			json
//	@Produce		json
//	@Param			event	body		types.AccessibilityEvent	true	"Event"
//	@Success		202		{object}	types.EventAck
//	@Failure		400		{object}	types.ErrorResponse
//	@Failure		415		{object}	types.ErrorResponse
//	@Router			/events [post]
func (a *api) handlePostEvent(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	ct := r.Header.Get("Content-Type")
	if ct == "" || !strings.HasPrefix(strings.ToLower(ct), "application/json") {
		writeJSONError(w, http.StatusUnsupportedMediaType, "Content-Type must be application/json")
		countIngest("http", false)
		return
	}
	// Limit body size (configurable, default 1MiB)
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	var in types.AccessibilityEvent
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		// If exceeded size, MaxBytesReader may cause an error; still return 400 to avoid size leak details
		writeJSONError(w, http.StatusBadRequest, "invalid JSON body")
		countIngest("http", false)
		logRequest(r, http.StatusBadRequest, start, "event ingest", err)
		return
	}
	ack, err := a.ingest(in)
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, err.Error())
		countIngest("http", false)
		logRequest(r, http.StatusBadRequest, start, "event ingest", err)
		return
	}
	countIngest("http", true)
	logDebug(r, "event ingested", map[string]any{"event_id": ack.ID, "type": in.Type, "delivered": ack.Delivered})
	writeJSON(w, http.StatusAccepted, ack)
}

// ingest converts the wire event and dispatches it.
func (a *api) ingest(in types.AccessibilityEvent) (types.EventAck, error) {
	ev, err := decodeEvent(in)
	if err != nil {
		return types.EventAck{}, err
	}
	ev, delivered := a.svc.Dispatch(ev)
	return types.EventAck{ID: ev.ID, Delivered: delivered}, nil
}

func decodeEvent(in types.AccessibilityEvent) (a11y.Event, error) {
	typ, err := a11y.ParseEventType(in.Type)
	if err != nil {
		return a11y.Event{}, err
	}
	ev := a11y.Event{
		ID:          in.ID,
		Type:        typ,
		Text:        in.Text,
		PackageName: in.PackageName,
		ClassName:   in.ClassName,
	}
	if in.TimeUnixMS > 0 {
		ev.Time = time.UnixMilli(in.TimeUnixMS)
	}
	return ev, nil
}

func isTruthy(v string) bool {
	switch strings.ToLower(v) {
	case "1", "true", "yes":
		return true
	}
	return false
}
