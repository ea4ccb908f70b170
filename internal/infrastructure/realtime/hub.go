package realtime

import (
	"sync"
)

// Hub tracks live connections by id and by user. Unlike a room-based
// broadcaster, the hub knows nothing about conversations; which connections
// should see a message is decided by the session registry, and the hub only
// delivers to the connection ids it is handed.
type Hub struct {
	mu        sync.RWMutex
	conns     map[string]*Connection            // connectionID -> connection
	userConns map[string]map[string]*Connection // userID -> connectionID -> connection
}

// NewHub constructs an initialized Hub.
func NewHub() *Hub {
	return &Hub{
		conns:     make(map[string]*Connection),
		userConns: make(map[string]map[string]*Connection),
	}
}

// Attach registers a connection. Multiple simultaneous connections per user
// are allowed. The caller starts the write loop after attaching.
func (h *Hub) Attach(conn *Connection) {
	h.mu.Lock()
	h.conns[conn.ID] = conn
	set := h.userConns[conn.UserID]
	if set == nil {
		set = make(map[string]*Connection)
		h.userConns[conn.UserID] = set
	}
	set[conn.ID] = conn
	h.mu.Unlock()
}

// Detach removes a connection if it is still tracked.
func (h *Hub) Detach(conn *Connection) {
	h.mu.Lock()
	h.detachLocked(conn.ID)
	h.mu.Unlock()
}

// SendTo delivers payload to one connection. It returns false when the
// connection is no longer tracked or no longer alive, which is how in-flight
// results for disconnected clients get discarded.
func (h *Hub) SendTo(connectionID string, payload []byte) bool {
	h.mu.RLock()
	conn := h.conns[connectionID]
	h.mu.RUnlock()
	if conn == nil || !conn.Alive() {
		return false
	}
	return conn.Send(payload) == nil
}

// SendToUser delivers payload to every live connection of the given user and
// returns the number of successful deliveries.
func (h *Hub) SendToUser(userID string, payload []byte) int {
	h.mu.RLock()
	conns := make([]*Connection, 0, len(h.userConns[userID]))
	for _, conn := range h.userConns[userID] {
		conns = append(conns, conn)
	}
	h.mu.RUnlock()

	delivered := 0
	for _, conn := range conns {
		if !conn.Alive() {
			continue
		}
		if conn.Send(payload) == nil {
			delivered++
		}
	}
	return delivered
}

// Close terminates all tracked connections and clears hub state.
func (h *Hub) Close() {
	h.mu.Lock()
	conns := make([]*Connection, 0, len(h.conns))
	for _, conn := range h.conns {
		conns = append(conns, conn)
	}
	h.conns = make(map[string]*Connection)
	h.userConns = make(map[string]map[string]*Connection)
	h.mu.Unlock()

	for _, conn := range conns {
		conn.Close(1001, "hub shutdown")
	}
}

func (h *Hub) detachLocked(connectionID string) {
	conn, ok := h.conns[connectionID]
	if !ok {
		return
	}
	delete(h.conns, connectionID)

	if set, ok := h.userConns[conn.UserID]; ok {
		delete(set, connectionID)
		if len(set) == 0 {
			delete(h.userConns, conn.UserID)
		}
	}
}
