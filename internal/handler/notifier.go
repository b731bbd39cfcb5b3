package handler

import (
	"encoding/json"
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/thatbeautifuldream/local-first-explorer/internal/explorer"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true // Allow all origins for development
	},
}

// WSMessage represents a WebSocket message
type WSMessage struct {
	Type    string      `json:"type"`
	Payload interface{} `json:"payload"`
}

// Notifier pushes entry change notifications to connected clients.
type Notifier struct {
	clients map[*websocket.Conn]bool
	mu      sync.RWMutex
}

// NewNotifier creates a new WebSocket notifier
func NewNotifier() *Notifier {
	return &Notifier{
		clients: make(map[*websocket.Conn]bool),
	}
}

// HandleWS handles WebSocket upgrade and connection
func (n *Notifier) HandleWS(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		return
	}
	defer func() {
		n.removeClient(conn)
		_ = conn.Close()
	}()

	n.addClient(conn)

	// Keep connection alive and handle incoming messages
	for {
		_, _, err := conn.ReadMessage()
		if err != nil {
			break
		}
	}
}

// OnStateChange broadcasts entry events to all clients. Subscribe it to
// the explorer store.
func (n *Notifier) OnStateChange(_ explorer.State, ev explorer.Event) {
	var msgType string
	switch ev.Type {
	case explorer.EventEntriesAdded:
		msgType = "entriesAdded"
	case explorer.EventEntriesChanged:
		msgType = "entriesChanged"
	case explorer.EventEntriesDeleted:
		msgType = "entriesDeleted"
	default:
		return
	}

	paths := ev.Paths
	if len(paths) == 0 {
		for _, e := range ev.Entries {
			paths = append(paths, e.Path)
		}
	}

	n.broadcast(WSMessage{
		Type:    msgType,
		Payload: map[string][]string{"paths": paths},
	})
}

func (n *Notifier) addClient(conn *websocket.Conn) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.clients[conn] = true
}

func (n *Notifier) removeClient(conn *websocket.Conn) {
	n.mu.Lock()
	defer n.mu.Unlock()
	delete(n.clients, conn)
}

func (n *Notifier) broadcast(msg WSMessage) {
	data, err := json.Marshal(msg)
	if err != nil {
		return
	}

	n.mu.RLock()
	clients := make([]*websocket.Conn, 0, len(n.clients))
	for client := range n.clients {
		clients = append(clients, client)
	}
	n.mu.RUnlock()

	for _, client := range clients {
		if err := client.WriteMessage(websocket.TextMessage, data); err != nil {
			n.removeClient(client)
		}
	}
}
