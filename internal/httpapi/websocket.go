package httpapi

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"toastd/pkg/types"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  4096,
	WriteBufferSize: 1024,
	// Bridges connect from device forwarders, not browsers.
	CheckOrigin: func(r *http.Request) bool { return true },
}

const wsWriteTimeout = 5 * time.Second

// handleEventStream godoc
//
//	@Summary		Stream accessibility events
//	@Description	Websocket. Each text frame is one types.AccessibilityEvent; each is answered with a types.EventAck frame.
//	@Tags			events
//	@Router			/events/ws [get]
func (a *api) handleEventStream(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade has already replied with an HTTP error.
		logRequest(r, http.StatusBadRequest, start, "event stream upgrade", err)
		return
	}
	defer conn.Close()
	conn.SetReadLimit(maxBodyBytes)

	// Close the connection on server shutdown so the read loop unblocks.
	ctx, cancel := joinContexts(serverBaseCtx, r.Context())
	defer cancel()
	go func() {
		<-ctx.Done()
		_ = conn.Close()
	}()

	frames := 0
	for {
		msgType, data, err := conn.ReadMessage()
		if err != nil {
			break
		}
		if msgType != websocket.TextMessage {
			continue
		}
		frames++
		ack := a.ingestFrame(data)
		_ = conn.SetWriteDeadline(time.Now().Add(wsWriteTimeout))
		if err := conn.WriteJSON(ack); err != nil {
			break
		}
	}
	logDebug(r, "event stream closed", map[string]any{"frames": frames, "dur": time.Since(start).String()})
}

func (a *api) ingestFrame(data []byte) types.EventAck {
	var in types.AccessibilityEvent
	if err := json.Unmarshal(data, &in); err != nil {
		countIngest("ws", false)
		return types.EventAck{Error: "invalid JSON frame"}
	}
	ack, err := a.ingest(in)
	if err != nil {
		countIngest("ws", false)
		return types.EventAck{ID: in.ID, Error: err.Error()}
	}
	countIngest("ws", true)
	return ack
}
