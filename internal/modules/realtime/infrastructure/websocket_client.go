package infrastructure

import (
	"encoding/json"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"mesaYaBooking/internal/modules/realtime/domain"
)

// command is the small control protocol clients may speak back to the hub.
type command struct {
	Action string `json:"action"`
	Topic  string `json:"topic,omitempty"`
}

type Client struct {
	hub          *Hub
	conn         *websocket.Conn
	send         chan []byte
	userID       string
	sessionID    string
	restaurantID string
	subscribed   map[string]struct{}
	closeOnce    sync.Once
	receiveAll   bool

	// sendMu orders trySend against closeSend so nothing writes to the send
	// channel after it has been closed.
	sendMu sync.Mutex
	closed bool
}

// NewClient crea un cliente WebSocket con metadata de usuario y buffer configurable.
func NewClient(hub *Hub, conn *websocket.Conn, userID, sessionID, restaurantID string, buf int) *Client {
	return &Client{
		hub:          hub,
		conn:         conn,
		send:         make(chan []byte, buf),
		userID:       userID,
		sessionID:    sessionID,
		restaurantID: strings.TrimSpace(restaurantID),
		subscribed:   make(map[string]struct{}),
	}
}

// EnableReceiveAll marks the client as a global subscriber that receives every
// broadcasted message regardless of topic-specific subscriptions.
func (c *Client) EnableReceiveAll() {
	c.receiveAll = true
}

func (c *Client) key() string {
	parts := []string{c.userID, c.sessionID}
	if c.restaurantID != "" {
		parts = append(parts, c.restaurantID)
	}
	return strings.Join(parts, ":")
}

func (c *Client) close() {
	c.closeSend()
	if c.conn != nil {
		_ = c.conn.Close()
	}
}

func (c *Client) closeSend() {
	c.closeOnce.Do(func() {
		c.sendMu.Lock()
		c.closed = true
		close(c.send)
		c.sendMu.Unlock()
	})
}

// trySend queues the payload without blocking. It reports false when the
// client is closed or its buffer is full; callers detach the client then.
func (c *Client) trySend(data []byte) bool {
	c.sendMu.Lock()
	defer c.sendMu.Unlock()
	if c.closed {
		return false
	}
	select {
	case c.send <- data:
		return true
	default:
		return false
	}
}

func (c *Client) SendDomainMessage(msg *domain.Message) {
	data, err := json.Marshal(msg)
	if err != nil {
		slog.Error("websocket marshal error", slog.Any("error", err))
		return
	}
	if !c.trySend(data) {
		slog.Warn("websocket send buffer full", slog.String("userId", c.userID), slog.String("restaurantId", c.restaurantID))
		go c.hub.detachClient(c)
	}
}

func (c *Client) WritePump() {
	ping := time.NewTicker(30 * time.Second)
	defer ping.Stop()

	for {
		select {
		case msg, ok := <-c.send:
			if !ok {
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				slog.Warn("websocket write error", slog.Any("error", err))
				return
			}
		case <-ping.C:
			if err := c.conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(5*time.Second)); err != nil {
				slog.Warn("websocket ping error", slog.Any("error", err))
				return
			}
		}
	}
}

func (c *Client) ReadPump() {
	c.conn.SetReadLimit(1 << 16)
	_ = c.conn.SetReadDeadline(time.Now().Add(60 * time.Second))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(60 * time.Second))
	})
	defer c.hub.detachClient(c)
	for {
		var cmd command
		_ = c.conn.SetReadDeadline(time.Now().Add(60 * time.Second))
		if err := c.conn.ReadJSON(&cmd); err != nil {
			if !websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				slog.Warn("websocket read error", slog.String("userId", c.userID), slog.String("restaurantId", c.restaurantID), slog.Any("error", err))
			}
			return
		}
		c.processCommand(cmd)
	}
}

func (c *Client) processCommand(cmd command) {
	topic := strings.TrimSpace(cmd.Topic)
	switch strings.ToLower(strings.TrimSpace(cmd.Action)) {
	case "subscribe":
		if topic != "" {
			c.hub.subscribe(c, topic)
		}
	case "unsubscribe":
		if topic != "" {
			c.hub.unsubscribe(c, topic)
		}
	case "ping":
		c.SendDomainMessage(&domain.Message{
			Topic:     domain.TopicSystemPong,
			Entity:    domain.SystemEntity,
			Action:    domain.ActionPong,
			Timestamp: time.Now().UTC(),
		})
	}
}
