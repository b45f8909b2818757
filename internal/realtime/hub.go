package realtime

import (
	"context"
	"encoding/json"
	"sync"

	"go.uber.org/zap"

	"github.com/fathima-sithara/socialnet/internal/metrics"
	"github.com/fathima-sithara/socialnet/internal/models"
)

// MessageStore is the slice of the message repository the hub needs to
// react to receiver-side acknowledgements.
type MessageStore interface {
	GetByID(ctx context.Context, id string) (*models.Message, error)
	MarkDelivered(ctx context.Context, id string) (bool, error)
	MarkSeen(ctx context.Context, id string) (bool, error)
}

// Hub owns the connection registry and room subscriptions. All inbound
// websocket events funnel into a single channel processed by one
// goroutine, so each event executes to completion before the next and
// registry and room mutations need no coordination between events.
type Hub struct {
	registry *Registry
	rooms    *Rooms

	mu      sync.RWMutex
	clients map[string]*Client

	events chan event
	store  MessageStore
	log    *zap.SugaredLogger
}

func NewHub(store MessageStore, log *zap.Logger) *Hub {
	return &Hub{
		registry: NewRegistry(),
		rooms:    NewRooms(),
		clients:  make(map[string]*Client),
		events:   make(chan event, 512),
		store:    store,
		log:      log.Sugar(),
	}
}

// Run processes events until the context is cancelled. Exactly one
// Run goroutine per hub.
func (h *Hub) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case ev := <-h.events:
			h.handle(ctx, ev)
		}
	}
}

// Attach registers a freshly upgraded connection.
func (h *Hub) Attach(c *Client) {
	h.events <- connectEvent{client: c}
}

// Detach removes a connection; safe to call more than once.
func (h *Hub) Detach(connID string) {
	h.events <- disconnectEvent{connID: connID}
}

// Submit parses a raw inbound frame and queues it for processing.
// Malformed frames are dropped, never an error to the connection.
func (h *Hub) Submit(connID string, raw []byte) {
	var env Envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		h.log.Debugw("dropping unparseable frame", "conn", connID)
		return
	}
	ev, err := parseClientEvent(connID, env)
	if err != nil {
		h.log.Debugw("dropping malformed event", "conn", connID, "event", env.Event)
		return
	}
	h.events <- ev
}

func (h *Hub) handle(ctx context.Context, ev event) {
	switch e := ev.(type) {
	case connectEvent:
		h.mu.Lock()
		h.clients[e.client.ID] = e.client
		h.mu.Unlock()
		h.registry.Register(e.client.UserID, e.client.ID)
		metrics.ConnectedClients.Inc()
		h.log.Infow("client registered", "user", e.client.UserID, "conn", e.client.ID)
		h.broadcastAll(EvOnlineUsers, h.registry.Snapshot())

	case disconnectEvent:
		h.mu.Lock()
		client, ok := h.clients[e.connID]
		if ok {
			delete(h.clients, e.connID)
		}
		h.mu.Unlock()
		if !ok {
			return
		}
		h.rooms.DropConn(e.connID)
		h.registry.Unregister(e.connID)
		client.Close()
		metrics.ConnectedClients.Dec()
		h.log.Infow("client unregistered", "user", client.UserID, "conn", e.connID)
		h.broadcastAll(EvOnlineUsers, h.registry.Snapshot())

	case joinEvent:
		h.rooms.Join(e.connID, e.roomID)

	case leaveEvent:
		h.rooms.Leave(e.connID, e.roomID)

	case typingEvent:
		if e.stop {
			h.BroadcastToRoom(e.roomID, EvStopTyping, typingPayload{RoomID: e.roomID, UserID: e.userID}, e.connID)
		} else {
			h.BroadcastToRoom(e.roomID, EvTyping, typingPayload{RoomID: e.roomID, SenderID: e.userID}, e.connID)
		}

	case relayMessageEvent:
		h.BroadcastToRoom(e.roomID, EvReceiveMessage, e.message, "")

	case deliveredEvent:
		updated, err := h.store.MarkDelivered(ctx, e.messageID)
		if err != nil {
			h.log.Warnw("delivered update failed", "message", e.messageID, "err", err)
			return
		}
		if !updated {
			return
		}
		h.broadcastStatus(ctx, e.messageID, models.StatusDelivered, "")

	case seenEvent:
		updated, err := h.store.MarkSeen(ctx, e.messageID)
		if err != nil {
			h.log.Warnw("seen update failed", "message", e.messageID, "err", err)
			return
		}
		if !updated {
			return
		}
		h.broadcastStatus(ctx, e.messageID, models.StatusSeen, e.userID)
	}
}

func (h *Hub) broadcastStatus(ctx context.Context, messageID, status, seenBy string) {
	m, err := h.store.GetByID(ctx, messageID)
	if err != nil {
		// message vanished between update and read; nothing to route
		return
	}
	h.BroadcastToRoom(roomFor(m), EvMessageStatus,
		statusPayload{MessageID: messageID, Status: status, SeenBy: seenBy}, "")
}

func roomFor(m *models.Message) string {
	if m.GroupID != "" {
		return m.GroupID
	}
	return DirectRoomID(m.SenderID, m.ReceiverID)
}

// BroadcastToRoom fans an event out to every connection subscribed to
// the room, optionally skipping the originating connection.
func (h *Hub) BroadcastToRoom(roomID, name string, payload any, excludeConnID string) {
	data, err := marshalEvent(name, payload)
	if err != nil {
		h.log.Warnw("event marshal failed", "event", name, "err", err)
		return
	}
	for _, connID := range h.rooms.Members(roomID) {
		if connID == excludeConnID {
			continue
		}
		h.sendToConn(connID, data)
	}
}

// PushToUser delivers an event to the user's active connection, if any.
// Reports whether the event was handed to a connection.
func (h *Hub) PushToUser(userID, name string, payload any) bool {
	connID, ok := h.registry.Lookup(userID)
	if !ok {
		return false
	}
	data, err := marshalEvent(name, payload)
	if err != nil {
		h.log.Warnw("event marshal failed", "event", name, "err", err)
		return false
	}
	return h.sendToConn(connID, data)
}

func (h *Hub) broadcastAll(name string, payload any) {
	data, err := marshalEvent(name, payload)
	if err != nil {
		h.log.Warnw("event marshal failed", "event", name, "err", err)
		return
	}
	h.mu.RLock()
	defer h.mu.RUnlock()
	for _, c := range h.clients {
		c.push(data)
	}
}

func (h *Hub) sendToConn(connID string, data []byte) bool {
	// push under the read lock so a concurrent disconnect cannot close
	// the send channel mid-push
	h.mu.RLock()
	defer h.mu.RUnlock()
	c, ok := h.clients[connID]
	if !ok {
		return false
	}
	return c.push(data)
}

// Online reports whether the user has a live connection.
func (h *Hub) Online(userID string) bool { return h.registry.Online(userID) }

// OnlineUsers returns the current presence roster.
func (h *Hub) OnlineUsers() []string { return h.registry.Snapshot() }

// JoinRoom subscribes a connection outside the websocket event flow.
func (h *Hub) JoinRoom(connID, roomID string) {
	h.events <- joinEvent{connID: connID, roomID: roomID}
}
