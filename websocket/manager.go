package websocket

import (
	"encoding/json"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

// Event is what gets pushed to a connected client when something happens
// to their account (new follower, new like).
type Event struct {
	Type      string      `json:"type"`
	From      string      `json:"from,omitempty"`
	Payload   interface{} `json:"payload,omitempty"`
	Timestamp int64       `json:"timestamp"`
}

type Manager struct {
	clients    map[*Client]bool
	register   chan *Client
	unregister chan *Client
	events     chan targetedEvent
	mu         sync.RWMutex
}

type targetedEvent struct {
	userID string
	data   []byte
}

type Client struct {
	conn    *websocket.Conn
	userID  string
	send    chan []byte
	manager *Manager
}

func NewManager() *Manager {
	return &Manager{
		clients:    make(map[*Client]bool),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		events:     make(chan targetedEvent, 64),
	}
}

func (m *Manager) Start() {
	for {
		select {
		case client := <-m.register:
			m.mu.Lock()
			m.clients[client] = true
			m.mu.Unlock()
			log.Printf("[ws] client connected: %s", client.userID)

		case client := <-m.unregister:
			m.mu.Lock()
			if _, ok := m.clients[client]; ok {
				delete(m.clients, client)
				close(client.send)
			}
			m.mu.Unlock()
			log.Printf("[ws] client disconnected: %s", client.userID)

		case ev := <-m.events:
			m.mu.Lock()
			for client := range m.clients {
				if client.userID != ev.userID {
					continue
				}
				select {
				case client.send <- ev.data:
				default:
					// Slow consumer, drop the connection.
					delete(m.clients, client)
					close(client.send)
				}
			}
			m.mu.Unlock()
		}
	}
}

// SendToUser delivers an event to every open connection of one user.
// It never blocks the caller.
func (m *Manager) SendToUser(userID string, ev Event) {
	ev.Timestamp = time.Now().Unix()
	data, err := json.Marshal(ev)
	if err != nil {
		log.Printf("[ws] marshal event: %v", err)
		return
	}
	select {
	case m.events <- targetedEvent{userID: userID, data: data}:
	default:
		log.Printf("[ws] event queue full, dropping event for %s", userID)
	}
}

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// Handler upgrades the connection. The caller authenticates the token and
// passes the resolved userID.
func Handler(m *Manager, userID string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			log.Printf("[ws] upgrade failed: %v", err)
			return
		}

		client := &Client{
			conn:    conn,
			userID:  userID,
			send:    make(chan []byte, 16),
			manager: m,
		}
		m.register <- client

		go client.writePump()
		go client.readPump()
	}
}

func (c *Client) readPump() {
	defer func() {
		c.manager.unregister <- c
		c.conn.Close()
	}()
	c.conn.SetReadLimit(512)
	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			return
		}
	}
}

func (c *Client) writePump() {
	ticker := time.NewTicker(30 * time.Second)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()
	for {
		select {
		case data, ok := <-c.send:
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, data); err != nil {
				return
			}
		case <-ticker.C:
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
