package realtime

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRoomsJoinLeave(t *testing.T) {
	r := NewRooms()
	r.Join("c1", "room-a")
	r.Join("c2", "room-a")
	r.Join("c1", "room-b")

	assert.ElementsMatch(t, []string{"c1", "c2"}, r.Members("room-a"))
	assert.ElementsMatch(t, []string{"c1"}, r.Members("room-b"))

	r.Leave("c1", "room-a")
	assert.ElementsMatch(t, []string{"c2"}, r.Members("room-a"))
}

func TestRoomsRedundantJoinLeave(t *testing.T) {
	r := NewRooms()
	r.Join("c1", "room-a")
	r.Join("c1", "room-a")
	assert.Len(t, r.Members("room-a"), 1)

	r.Leave("c1", "room-a")
	r.Leave("c1", "room-a")
	r.Leave("c1", "never-joined")
	assert.Empty(t, r.Members("room-a"))
}

func TestRoomsDropConn(t *testing.T) {
	r := NewRooms()
	r.Join("c1", "room-a")
	r.Join("c1", "room-b")
	r.Join("c2", "room-a")

	r.DropConn("c1")

	assert.ElementsMatch(t, []string{"c2"}, r.Members("room-a"))
	assert.Empty(t, r.Members("room-b"))
}

func TestDirectRoomID(t *testing.T) {
	assert.Equal(t, "alice:bob", DirectRoomID("alice", "bob"))
	assert.Equal(t, "alice:bob", DirectRoomID("bob", "alice"))
	assert.Equal(t, DirectRoomID("u1", "u2"), DirectRoomID("u2", "u1"))
}
