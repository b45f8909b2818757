package handlers

import (
	"time"

	"github.com/gofiber/websocket/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/fathima-sithara/socialnet/internal/auth"
	"github.com/fathima-sithara/socialnet/internal/realtime"
)

// WSHandler upgrades authenticated connections and bridges the socket
// with the hub: frames read off the wire are submitted as events, and
// outbound frames flow through the client's send channel.
type WSHandler struct {
	hub    *realtime.Hub
	tokens *auth.Manager
	log    *zap.Logger

	pingInterval  time.Duration
	writeDeadline time.Duration
	maxMsgSize    int64
}

func NewWSHandler(hub *realtime.Hub, tokens *auth.Manager, pingInterval, writeDeadline time.Duration, maxMsgSize int64, log *zap.Logger) *WSHandler {
	return &WSHandler{
		hub:           hub,
		tokens:        tokens,
		log:           log,
		pingInterval:  pingInterval,
		writeDeadline: writeDeadline,
		maxMsgSize:    maxMsgSize,
	}
}

// Serve handles /ws?token=<jwt>. Mount behind the fiber/websocket
// upgrade middleware.
func (h *WSHandler) Serve(c *websocket.Conn) {
	token := c.Query("token")
	if token == "" {
		_ = c.WriteMessage(websocket.TextMessage, []byte(`{"error":"missing token"}`))
		_ = c.Close()
		return
	}
	userID, err := h.tokens.Parse(token)
	if err != nil {
		_ = c.WriteMessage(websocket.TextMessage, []byte(`{"error":"invalid token"}`))
		_ = c.Close()
		return
	}

	connID := uuid.New().String()
	client := realtime.NewClient(connID, userID, c)

	h.hub.Attach(client)
	defer h.hub.Detach(connID)

	go client.WritePump(h.pingInterval, h.writeDeadline)

	c.SetReadLimit(h.maxMsgSize)
	for {
		mt, raw, err := c.ReadMessage()
		if err != nil {
			// covers both clean closes and broken connections
			h.log.Debug("websocket closed", zap.String("conn_id", connID), zap.Error(err))
			return
		}
		if mt != websocket.TextMessage {
			continue
		}
		h.hub.Submit(connID, raw)
	}
}
