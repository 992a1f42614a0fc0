package realtime

import (
	"log"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 512
)

type Message struct {
	Type    string `json:"type"`
	Message string `json:"message"`
	EventID string `json:"eventId"`
}

// client serializes writes; gorilla connections allow one concurrent writer.
type client struct {
	conn *websocket.Conn
	mu   sync.Mutex
}

func (c *client) write(fn func() error) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
		return err
	}
	return fn()
}

func (c *client) writeJSON(v interface{}) error {
	return c.write(func() error { return c.conn.WriteJSON(v) })
}

// Hub fans out refresh notices to websocket clients watching an event.
type Hub struct {
	mu      sync.RWMutex
	clients map[string]map[*client]bool
}

func NewHub() *Hub {
	return &Hub{clients: make(map[string]map[*client]bool)}
}

// Clients returns the number of open connections watching eventID.
func (h *Hub) Clients(eventID string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients[eventID])
}

func (h *Hub) register(eventID string, c *client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.clients[eventID] == nil {
		h.clients[eventID] = make(map[*client]bool)
	}
	h.clients[eventID][c] = true
}

func (h *Hub) unregister(eventID string, c *client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if clients, exists := h.clients[eventID]; exists {
		delete(clients, c)
		if len(clients) == 0 {
			delete(h.clients, eventID)
		}
	}
}

// BroadcastRefresh tells every watcher of eventID to reload it. Clients that
// fail to receive are dropped.
func (h *Hub) BroadcastRefresh(eventID string) {
	h.mu.RLock()
	clients, exists := h.clients[eventID]
	if !exists || len(clients) == 0 {
		h.mu.RUnlock()
		return
	}

	clientsCopy := make([]*client, 0, len(clients))
	for c := range clients {
		clientsCopy = append(clientsCopy, c)
	}
	h.mu.RUnlock()

	for _, c := range clientsCopy {
		err := c.writeJSON(Message{
			Type:    "refresh",
			Message: "Event data updated",
			EventID: eventID,
		})

		if err != nil {
			log.Printf("Failed to broadcast refresh for event %s: %v", eventID, err)
			h.unregister(eventID, c)
			c.conn.Close()
		}
	}
}

// Serve registers conn as a watcher of eventID and blocks until the peer goes away.
func (h *Hub) Serve(eventID string, conn *websocket.Conn) {
	c := &client{conn: conn}

	conn.SetReadLimit(maxMessageSize)
	if err := conn.SetReadDeadline(time.Now().Add(pongWait)); err != nil {
		log.Printf("Failed to set initial read deadline: %v", err)
		conn.Close()
		return
	}
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	h.register(eventID, c)

	done := make(chan struct{})
	defer func() {
		close(done)
		h.unregister(eventID, c)
		conn.Close()
	}()

	err := c.writeJSON(Message{
		Type:    "connected",
		Message: "WebSocket connection established",
		EventID: eventID,
	})
	if err != nil {
		log.Printf("Failed to send welcome message for event %s: %v", eventID, err)
		return
	}

	go func() {
		ticker := time.NewTicker(pingPeriod)
		defer ticker.Stop()

		for {
			select {
			case <-done:
				return
			case <-ticker.C:
				if err := c.write(func() error { return conn.WriteMessage(websocket.PingMessage, nil) }); err != nil {
					return
				}
			}
		}
	}()

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Printf("WebSocket error for event %s: %v", eventID, err)
			}
			return
		}
	}
}
