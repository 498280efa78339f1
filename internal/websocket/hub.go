package websocket

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/stampdeck/stampdeck-backend/internal/kv"
	"github.com/stampdeck/stampdeck-backend/pkg/logger"
)

// Client is one connected dashboard session.
type Client struct {
	Hub    *Hub
	Conn   *Conn
	UserID string
	Send   chan []byte
}

// ChangeEvent is pushed to every connected client when a storage key
// changes, so open dashboards can refetch without polling. The same event
// the frontend used to receive from another browser tab.
type ChangeEvent struct {
	Type      string    `json:"type"` // always "collection_changed"
	Key       string    `json:"key"`
	Timestamp time.Time `json:"timestamp"`
}

// Hub fans storage change notifications out to connected clients. Multiple
// sessions per user are supported; every session gets every event.
type Hub struct {
	clients map[string][]*Client

	register   chan *Client
	unregister chan *Client
	broadcast  chan []byte

	mu sync.RWMutex
}

func NewHub() *Hub {
	return &Hub{
		clients:    make(map[string][]*Client),
		register:   make(chan *Client, 256),
		unregister: make(chan *Client, 256),
		broadcast:  make(chan []byte, 1024),
	}
}

// Run processes registrations and broadcasts. Call in its own goroutine.
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.mu.Lock()
			h.clients[client.UserID] = append(h.clients[client.UserID], client)
			h.mu.Unlock()
			logger.Info("WebSocket client registered", map[string]interface{}{
				"user_id":        client.UserID,
				"total_sessions": len(h.clients[client.UserID]),
			})

		case client := <-h.unregister:
			h.mu.Lock()
			if clientList, ok := h.clients[client.UserID]; ok {
				newList := make([]*Client, 0, len(clientList))
				for _, c := range clientList {
					if c != client {
						newList = append(newList, c)
					}
				}
				if len(newList) == 0 {
					delete(h.clients, client.UserID)
				} else {
					h.clients[client.UserID] = newList
				}
				close(client.Send)
			}
			h.mu.Unlock()
			logger.Info("WebSocket client unregistered", map[string]interface{}{
				"user_id": client.UserID,
			})

		case message := <-h.broadcast:
			h.mu.RLock()
			for userID, clientList := range h.clients {
				for _, client := range clientList {
					select {
					case client.Send <- message:
					default:
						// Send buffer full, drop the session
						go h.Unregister(client)
						logger.Warn("Client send buffer full, disconnecting", map[string]interface{}{
							"user_id": userID,
						})
					}
				}
			}
			h.mu.RUnlock()
		}
	}
}

// WatchStore subscribes the hub to storage changes and returns the
// unsubscribe function. Every key change becomes one broadcast event.
func (h *Hub) WatchStore(store kv.Store) func() {
	return store.Subscribe(func(key string) {
		h.BroadcastChange(key)
	})
}

// BroadcastChange queues a collection-changed event for all clients. The
// channel is bounded; dropped events only cost a dashboard one refresh.
func (h *Hub) BroadcastChange(key string) {
	data, err := json.Marshal(ChangeEvent{
		Type:      "collection_changed",
		Key:       key,
		Timestamp: time.Now(),
	})
	if err != nil {
		logger.Error("Failed to marshal change event", err, nil)
		return
	}

	select {
	case h.broadcast <- data:
	default:
		logger.Warn("Broadcast channel full, change event dropped", map[string]interface{}{
			"key": key,
		})
	}
}

func (h *Hub) Register(client *Client) {
	h.register <- client
}

func (h *Hub) Unregister(client *Client) {
	h.unregister <- client
}

// IsUserOnline reports whether the user has at least one open session.
func (h *Hub) IsUserOnline(userID string) bool {
	h.mu.RLock()
	defer h.mu.RUnlock()
	_, ok := h.clients[userID]
	return ok
}
