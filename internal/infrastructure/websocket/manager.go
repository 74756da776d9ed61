package websocket

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"motoride/internal/storefront/checkout"
	"motoride/pkg/logger"
)

const (
	MessageTypePayment = "payment"
	MessageTypePing    = "ping"
	MessageTypePong    = "pong"
	MessageTypeError   = "error"

	writeWait = 10 * time.Second
)

type WSMessage struct {
	Type      string      `json:"type"`
	SessionID string      `json:"sessionId,omitempty"`
	Data      interface{} `json:"data"`
	Timestamp string      `json:"timestamp"`
}

// Client is one websocket connection following a storefront session.
type Client struct {
	SessionID string
	Conn      *websocket.Conn
	Send      chan []byte
}

// Manager fans payment events out to every connection watching a storefront session.
type Manager struct {
	sessions   map[string]map[*Client]struct{}
	Register   chan *Client
	Unregister chan *Client
	done       chan struct{}
	mutex      sync.RWMutex
}

func NewManager() *Manager {
	return &Manager{
		sessions:   make(map[string]map[*Client]struct{}),
		Register:   make(chan *Client),
		Unregister: make(chan *Client),
		done:       make(chan struct{}),
	}
}

// Start runs the registration loop until ctx is done.
func (m *Manager) Start(ctx context.Context) {
	go func() {
		defer close(m.done)
		for {
			select {
			case client := <-m.Register:
				m.mutex.Lock()
				if m.sessions[client.SessionID] == nil {
					m.sessions[client.SessionID] = make(map[*Client]struct{})
				}
				m.sessions[client.SessionID][client] = struct{}{}
				m.mutex.Unlock()
				logger.Debug("websocket client registered for session %s", client.SessionID)

			case client := <-m.Unregister:
				m.mutex.Lock()
				m.remove(client)
				m.mutex.Unlock()
				logger.Debug("websocket client unregistered for session %s", client.SessionID)

			case <-ctx.Done():
				m.mutex.Lock()
				for _, clients := range m.sessions {
					for c := range clients {
						m.remove(c)
					}
				}
				m.mutex.Unlock()
				return
			}
		}
	}()
}

// remove must be called with the write lock held.
func (m *Manager) remove(client *Client) {
	clients, ok := m.sessions[client.SessionID]
	if !ok {
		return
	}
	if _, ok := clients[client]; !ok {
		return
	}
	delete(clients, client)
	close(client.Send)
	if len(clients) == 0 {
		delete(m.sessions, client.SessionID)
	}
}

// Publish implements storefront.Notifier.
func (m *Manager) Publish(sessionID string, event checkout.Event) {
	m.SendToSession(sessionID, WSMessage{
		Type:      MessageTypePayment,
		SessionID: sessionID,
		Data:      event,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	})
}

// SendToSession delivers message to every client of sessionID. Clients that cannot keep
// up are dropped.
func (m *Manager) SendToSession(sessionID string, message WSMessage) {
	payload, err := json.Marshal(message)
	if err != nil {
		logger.Error("websocket: failed to marshal %s message: %v", message.Type, err)
		return
	}

	m.mutex.Lock()
	defer m.mutex.Unlock()
	for client := range m.sessions[sessionID] {
		select {
		case client.Send <- payload:
		default:
			logger.Warn("websocket: send buffer full for session %s, dropping client", sessionID)
			m.remove(client)
		}
	}
}

func (m *Manager) ClientCount(sessionID string) int {
	m.mutex.RLock()
	defer m.mutex.RUnlock()
	return len(m.sessions[sessionID])
}

func (m *Manager) handleClientMessage(client *Client, raw []byte) {
	var msg WSMessage
	if err := json.Unmarshal(raw, &msg); err != nil {
		m.sendToClient(client, WSMessage{Type: MessageTypeError, Data: map[string]string{"error": "invalid message"}})
		return
	}

	switch msg.Type {
	case MessageTypePing:
		m.sendToClient(client, WSMessage{Type: MessageTypePong, Data: map[string]string{"status": "alive"}})
	default:
		m.sendToClient(client, WSMessage{Type: MessageTypeError, Data: map[string]string{"error": "unknown message type " + msg.Type}})
	}
}

func (m *Manager) sendToClient(client *Client, message WSMessage) {
	message.SessionID = client.SessionID
	message.Timestamp = time.Now().UTC().Format(time.RFC3339)
	payload, err := json.Marshal(message)
	if err != nil {
		return
	}

	m.mutex.Lock()
	defer m.mutex.Unlock()
	if _, ok := m.sessions[client.SessionID][client]; !ok {
		return
	}
	select {
	case client.Send <- payload:
	default:
		m.remove(client)
	}
}

// Add hands client to the registration loop. It reports false once the manager has stopped.
func (m *Manager) Add(client *Client) bool {
	select {
	case m.Register <- client:
		return true
	case <-m.done:
		return false
	}
}

// ReadPump reads until the connection fails, then unregisters the client.
func (c *Client) ReadPump(m *Manager) {
	defer func() {
		select {
		case m.Unregister <- c:
		case <-m.done:
		}
		c.Conn.Close()
	}()

	for {
		_, message, err := c.Conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				logger.Warn("websocket read error for session %s: %v", c.SessionID, err)
			}
			return
		}
		m.handleClientMessage(c, message)
	}
}

// WritePump drains Send onto the connection.
func (c *Client) WritePump() {
	defer c.Conn.Close()

	for message := range c.Send {
		c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
		if err := c.Conn.WriteMessage(websocket.TextMessage, message); err != nil {
			logger.Warn("websocket write error for session %s: %v", c.SessionID, err)
			return
		}
	}
	c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
	c.Conn.WriteMessage(websocket.CloseMessage, []byte{})
}
