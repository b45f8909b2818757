package realtime

import "sync"

// Rooms tracks which connections are subscribed to which conversation.
// Membership is transport state only: rooms appear on first join and
// empty rooms are inert, never explicitly destroyed.
type Rooms struct {
	mu    sync.RWMutex
	rooms map[string]map[string]struct{}
}

func NewRooms() *Rooms {
	return &Rooms{rooms: make(map[string]map[string]struct{})}
}

// Join is redundant-safe: joining twice is the same as joining once.
func (r *Rooms) Join(connID, roomID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	members, ok := r.rooms[roomID]
	if !ok {
		members = make(map[string]struct{})
		r.rooms[roomID] = members
	}
	members[connID] = struct{}{}
}

// Leave is redundant-safe, including for rooms never joined.
func (r *Rooms) Leave(connID, roomID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if members, ok := r.rooms[roomID]; ok {
		delete(members, connID)
		if len(members) == 0 {
			delete(r.rooms, roomID)
		}
	}
}

// DropConn removes a connection from every room it joined.
func (r *Rooms) DropConn(connID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for roomID, members := range r.rooms {
		delete(members, connID)
		if len(members) == 0 {
			delete(r.rooms, roomID)
		}
	}
}

func (r *Rooms) Members(roomID string) []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	members, ok := r.rooms[roomID]
	if !ok {
		return nil
	}
	out := make([]string, 0, len(members))
	for connID := range members {
		out = append(out, connID)
	}
	return out
}

// DirectRoomID derives the room id for a 1:1 conversation from the two
// participant ids: lexicographically smaller id first, joined with a
// colon. Both participants compute the same id without a lookup.
func DirectRoomID(a, b string) string {
	if b < a {
		a, b = b, a
	}
	return a + ":" + b
}
