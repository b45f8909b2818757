package realtime

import (
	"encoding/json"
	"errors"
)

// Client -> server event names.
const (
	EvJoinChat         = "join-chat"
	EvLeaveChat        = "leave-chat"
	EvTyping           = "typing"
	EvStopTyping       = "stop-typing"
	EvSendMessage      = "send-message"
	EvMessageDelivered = "message-delivered"
	EvSeen             = "seen"
)

// Server -> client event names.
const (
	EvOnlineUsers    = "online-users"
	EvReceiveMessage = "receive-message"
	EvMessageStatus  = "message-status-updated"
	EvNotification   = "notification"
)

// Envelope is the wire format on the websocket: a tagged event name
// plus an event-specific payload.
type Envelope struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data"`
}

var errMalformedEvent = errors.New("malformed event payload")

// event is the internal tagged union processed by the hub loop. Every
// inbound wire event maps to exactly one concrete type so the loop can
// switch exhaustively.
type event interface{ isEvent() }

type connectEvent struct{ client *Client }

type disconnectEvent struct{ connID string }

type joinEvent struct {
	connID string
	roomID string
}

type leaveEvent struct {
	connID string
	roomID string
}

type typingEvent struct {
	connID string
	roomID string
	userID string
	stop   bool
}

type relayMessageEvent struct {
	connID  string
	roomID  string
	message json.RawMessage
}

type deliveredEvent struct {
	messageID  string
	receiverID string
}

type seenEvent struct {
	messageID string
	userID    string
}

func (connectEvent) isEvent()      {}
func (disconnectEvent) isEvent()   {}
func (joinEvent) isEvent()         {}
func (leaveEvent) isEvent()        {}
func (typingEvent) isEvent()       {}
func (relayMessageEvent) isEvent() {}
func (deliveredEvent) isEvent()    {}
func (seenEvent) isEvent()         {}

type typingPayload struct {
	RoomID   string `json:"roomId"`
	SenderID string `json:"senderId,omitempty"`
	UserID   string `json:"userId,omitempty"`
}

type sendMessagePayload struct {
	RoomID  string          `json:"roomId"`
	Message json.RawMessage `json:"message"`
}

type deliveredPayload struct {
	MessageID  string `json:"messageId"`
	ReceiverID string `json:"receiverId"`
}

type seenPayload struct {
	MessageID string `json:"messageId"`
	UserID    string `json:"userId"`
}

type statusPayload struct {
	MessageID string `json:"messageId"`
	Status    string `json:"status"`
	SeenBy    string `json:"seenBy,omitempty"`
}

// parseClientEvent turns a wire envelope into a typed event. Events
// with missing required fields come back as errMalformedEvent and are
// dropped by the caller rather than crashing the connection.
func parseClientEvent(connID string, env Envelope) (event, error) {
	switch env.Event {
	case EvJoinChat, EvLeaveChat:
		var roomID string
		if err := json.Unmarshal(env.Data, &roomID); err != nil || roomID == "" {
			return nil, errMalformedEvent
		}
		if env.Event == EvJoinChat {
			return joinEvent{connID: connID, roomID: roomID}, nil
		}
		return leaveEvent{connID: connID, roomID: roomID}, nil

	case EvTyping:
		var p typingPayload
		if err := json.Unmarshal(env.Data, &p); err != nil || p.RoomID == "" || p.SenderID == "" {
			return nil, errMalformedEvent
		}
		return typingEvent{connID: connID, roomID: p.RoomID, userID: p.SenderID}, nil

	case EvStopTyping:
		var p typingPayload
		if err := json.Unmarshal(env.Data, &p); err != nil || p.RoomID == "" || p.UserID == "" {
			return nil, errMalformedEvent
		}
		return typingEvent{connID: connID, roomID: p.RoomID, userID: p.UserID, stop: true}, nil

	case EvSendMessage:
		var p sendMessagePayload
		if err := json.Unmarshal(env.Data, &p); err != nil || p.RoomID == "" || len(p.Message) == 0 {
			return nil, errMalformedEvent
		}
		return relayMessageEvent{connID: connID, roomID: p.RoomID, message: p.Message}, nil

	case EvMessageDelivered:
		var p deliveredPayload
		if err := json.Unmarshal(env.Data, &p); err != nil || p.MessageID == "" || p.ReceiverID == "" {
			return nil, errMalformedEvent
		}
		return deliveredEvent{messageID: p.MessageID, receiverID: p.ReceiverID}, nil

	case EvSeen:
		var p seenPayload
		if err := json.Unmarshal(env.Data, &p); err != nil || p.MessageID == "" || p.UserID == "" {
			return nil, errMalformedEvent
		}
		return seenEvent{messageID: p.MessageID, userID: p.UserID}, nil
	}
	return nil, errMalformedEvent
}

func marshalEvent(name string, payload any) ([]byte, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return json.Marshal(Envelope{Event: name, Data: data})
}
