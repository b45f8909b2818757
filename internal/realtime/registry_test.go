package realtime

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistryRegisterAndLookup(t *testing.T) {
	r := NewRegistry()
	r.Register("alice", "conn-1")

	connID, ok := r.Lookup("alice")
	require.True(t, ok)
	assert.Equal(t, "conn-1", connID)
	assert.True(t, r.Online("alice"))
	assert.False(t, r.Online("bob"))
}

func TestRegistryLastWriterWins(t *testing.T) {
	r := NewRegistry()
	r.Register("alice", "conn-1")
	r.Register("alice", "conn-2")

	connID, ok := r.Lookup("alice")
	require.True(t, ok)
	assert.Equal(t, "conn-2", connID)

	// the replaced connection is no longer addressable
	_, ok = r.Unregister("conn-1")
	assert.False(t, ok)

	// and its late disconnect must not evict the successor
	assert.True(t, r.Online("alice"))
}

func TestRegistryUnregisterIdempotent(t *testing.T) {
	r := NewRegistry()
	r.Register("alice", "conn-1")

	userID, ok := r.Unregister("conn-1")
	require.True(t, ok)
	assert.Equal(t, "alice", userID)
	assert.False(t, r.Online("alice"))

	_, ok = r.Unregister("conn-1")
	assert.False(t, ok)
}

func TestRegistrySnapshotSorted(t *testing.T) {
	r := NewRegistry()
	r.Register("carol", "c3")
	r.Register("alice", "c1")
	r.Register("bob", "c2")

	assert.Equal(t, []string{"alice", "bob", "carol"}, r.Snapshot())

	r.Unregister("c2")
	assert.Equal(t, []string{"alice", "carol"}, r.Snapshot())
}

func TestRegistryReconnectSequence(t *testing.T) {
	r := NewRegistry()

	// connect, replace, then the old conn's disconnect arrives late
	r.Register("alice", "conn-old")
	r.Register("alice", "conn-new")
	r.Unregister("conn-old")

	connID, ok := r.Lookup("alice")
	require.True(t, ok)
	assert.Equal(t, "conn-new", connID)
	assert.Equal(t, []string{"alice"}, r.Snapshot())

	r.Unregister("conn-new")
	assert.Empty(t, r.Snapshot())
}
