package api

import (
	"fmt"
	"log/slog"
	"net/http"

	"vchat/auth"
	"vchat/infrastructure/ws"
	"vchat/services"

	"github.com/gorilla/websocket"
)

type WsHandler struct {
	log        *slog.Logger
	sessions   services.ISessionService
	bufferSize int
	upgrader   websocket.Upgrader
}

func NewWsHandler(log *slog.Logger, sessions services.ISessionService, bufferSize int) *WsHandler {
	return &WsHandler{
		log:        log,
		sessions:   sessions,
		bufferSize: bufferSize,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
	}
}

// Connect upgrades the request to a websocket and binds the connection as
// the user's live endpoint. The handler blocks until the client disconnects;
// deferred unbind keeps the registry leak-free. A reconnect simply rebinds:
// last writer wins, the previous socket goes stale and its pump exits.
func (h *WsHandler) Connect(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.UserFromContext(r.Context())
	if !ok {
		http.Error(w, "unauthenticated", http.StatusUnauthorized)
		return
	}

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.log.Warn("Websocket upgrade failed", "user", user, "error", err)
		return
	}

	sink := ws.NewSink(h.log, conn, h.bufferSize)
	h.sessions.Connect(user, sink)
	defer func() {
		h.sessions.Disconnect(user, sink)
		sink.Close()
	}()

	go sink.WritePump()

	// The push channel is one-way. The read loop only serves to detect the
	// disconnect and to drain control frames.
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			h.log.Debug(fmt.Sprintf("Client %s disconnected", user), "error", err)
			return
		}
	}
}
