package realtime

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Test connections are never started, so sends only enqueue into the buffer.

func TestSendToTrackedConnection(t *testing.T) {
	hub := NewHub()
	conn := NewConnection("adam", nil)
	hub.Attach(conn)

	assert.True(t, hub.SendTo(conn.ID, []byte("hello")))
}

func TestSendToUnknownConnectionReturnsFalse(t *testing.T) {
	hub := NewHub()
	assert.False(t, hub.SendTo("never-attached", []byte("hello")))
}

func TestDetachedConnectionNoLongerReceives(t *testing.T) {
	hub := NewHub()
	conn := NewConnection("adam", nil)
	hub.Attach(conn)
	hub.Detach(conn)

	assert.False(t, hub.SendTo(conn.ID, []byte("hello")))
}

func TestSendToUserReachesEveryConnection(t *testing.T) {
	hub := NewHub()
	first := NewConnection("adam", nil)
	second := NewConnection("adam", nil)
	other := NewConnection("zoe", nil)
	hub.Attach(first)
	hub.Attach(second)
	hub.Attach(other)

	assert.Equal(t, 2, hub.SendToUser("adam", []byte("hello")))
	assert.Equal(t, 0, hub.SendToUser("nobody", []byte("hello")))
}

func TestDetachOnlyRemovesOneOfUsersConnections(t *testing.T) {
	hub := NewHub()
	first := NewConnection("adam", nil)
	second := NewConnection("adam", nil)
	hub.Attach(first)
	hub.Attach(second)

	hub.Detach(first)

	require.Equal(t, 1, hub.SendToUser("adam", []byte("hello")))
	assert.True(t, hub.SendTo(second.ID, []byte("hello")))
	assert.False(t, hub.SendTo(first.ID, []byte("hello")))
}

func TestEachConnectionGetsUniqueID(t *testing.T) {
	a := NewConnection("adam", nil)
	b := NewConnection("adam", nil)
	assert.NotEqual(t, a.ID, b.ID)
}
