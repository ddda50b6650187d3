package sync

import (
	"sync"

	"github.com/gorilla/websocket"
)

// Hub fans sync results out to connected admin dashboards so the calendar
// and source views refresh without polling.
type Hub struct {
	mutex sync.RWMutex
	conns map[*websocket.Conn]bool
}

func NewHub() *Hub {
	return &Hub{conns: make(map[*websocket.Conn]bool)}
}

func (h *Hub) Register(conn *websocket.Conn) {
	h.mutex.Lock()
	defer h.mutex.Unlock()
	h.conns[conn] = true
}

func (h *Hub) Unregister(conn *websocket.Conn) {
	h.mutex.Lock()
	defer h.mutex.Unlock()
	if _, exists := h.conns[conn]; exists {
		_ = conn.Close()
		delete(h.conns, conn)
	}
}

// Broadcast pushes a message to every client, dropping connections that
// fail to write.
func (h *Hub) Broadcast(message interface{}) {
	h.mutex.RLock()
	conns := make([]*websocket.Conn, 0, len(h.conns))
	for conn := range h.conns {
		conns = append(conns, conn)
	}
	h.mutex.RUnlock()

	for _, conn := range conns {
		if err := conn.WriteJSON(message); err != nil {
			h.Unregister(conn)
		}
	}
}

func (h *Hub) ClientCount() int {
	h.mutex.RLock()
	defer h.mutex.RUnlock()
	return len(h.conns)
}

func (h *Hub) Close() {
	h.mutex.Lock()
	defer h.mutex.Unlock()
	for conn := range h.conns {
		_ = conn.Close()
		delete(h.conns, conn)
	}
}
