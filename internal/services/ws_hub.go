package services

import (
	"encoding/json"
	"sync"

	"quickbite-backend/internal/models"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"
)

// WSConn is the subset of *websocket.Conn the hub needs
type WSConn interface {
	WriteMessage(messageType int, data []byte) error
	Close() error
}

// WSClient serializes writes to a single connection. gorilla/websocket
// permits only one concurrent writer per connection, but hub publishes run
// from independent request goroutines and the read loop sends error replies
// on the same connection.
type WSClient struct {
	writeMu sync.Mutex
	conn    WSConn
}

// NewWSClient wraps conn with a write lock. The handler must register the
// client, not the raw connection, so every write path shares the lock.
func NewWSClient(conn WSConn) *WSClient {
	return &WSClient{conn: conn}
}

func (c *WSClient) WriteMessage(messageType int, data []byte) error {
	c.writeMu.Lock()
	defer c.writeMu.Unlock()
	return c.conn.WriteMessage(messageType, data)
}

func (c *WSClient) Close() error {
	return c.conn.Close()
}

// WSEvent represents a message pushed to topic subscribers
type WSEvent struct {
	Type     string          `json:"type"`
	RecipeID string          `json:"recipeId,omitempty"`
	Comment  *models.Comment `json:"comment,omitempty"`
	Message  string          `json:"message,omitempty"`
}

// WSHub is a topic-per-recipe publish/subscribe registry of live websocket
// connections. It holds no durable state; membership is rebuilt as clients
// reconnect after a restart.
type WSHub struct {
	mu     sync.RWMutex
	topics map[string]map[WSConn]struct{}
	conns  map[WSConn]map[string]struct{}
}

// NewWSHub creates a new websocket hub
func NewWSHub() *WSHub {
	return &WSHub{
		topics: make(map[string]map[WSConn]struct{}),
		conns:  make(map[WSConn]map[string]struct{}),
	}
}

// Subscribe registers conn as a member of the recipe's topic. A connection
// may belong to several topics at once.
func (h *WSHub) Subscribe(conn WSConn, recipeID string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.topics[recipeID] == nil {
		h.topics[recipeID] = make(map[WSConn]struct{})
	}
	h.topics[recipeID][conn] = struct{}{}

	if h.conns[conn] == nil {
		h.conns[conn] = make(map[string]struct{})
	}
	h.conns[conn][recipeID] = struct{}{}

	log.Debug().Str("recipe_id", recipeID).Msg("WebSocket subscribed to recipe topic")
}

// Unsubscribe removes conn from the recipe's topic
func (h *WSHub) Unsubscribe(conn WSConn, recipeID string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.removeFromTopic(conn, recipeID)
}

// Drop removes conn from every topic. Called on disconnect; topic
// membership does not survive a reconnect.
func (h *WSHub) Drop(conn WSConn) {
	h.mu.Lock()
	defer h.mu.Unlock()

	for recipeID := range h.conns[conn] {
		h.removeFromTopic(conn, recipeID)
	}
}

// Publish delivers the event to every connection subscribed to the recipe's
// topic, including any connections owned by the publishing user. Delivery is
// at-most-once: per-subscriber write failures are swallowed and the dead
// connection is dropped.
func (h *WSHub) Publish(recipeID string, event WSEvent) {
	data, err := json.Marshal(event)
	if err != nil {
		log.Error().Err(err).Str("recipe_id", recipeID).Msg("Failed to marshal event")
		return
	}

	h.mu.RLock()
	subscribers := make([]WSConn, 0, len(h.topics[recipeID]))
	for conn := range h.topics[recipeID] {
		subscribers = append(subscribers, conn)
	}
	h.mu.RUnlock()

	for _, conn := range subscribers {
		if err := conn.WriteMessage(websocket.TextMessage, data); err != nil {
			log.Warn().Err(err).Str("recipe_id", recipeID).Msg("Dropping dead subscriber")
			conn.Close()
			h.Drop(conn)
		}
	}
}

// Subscribers returns the number of connections in the recipe's topic
func (h *WSHub) Subscribers(recipeID string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.topics[recipeID])
}

// removeFromTopic must be called with h.mu held
func (h *WSHub) removeFromTopic(conn WSConn, recipeID string) {
	if subs, ok := h.topics[recipeID]; ok {
		delete(subs, conn)
		if len(subs) == 0 {
			delete(h.topics, recipeID)
		}
	}
	if topics, ok := h.conns[conn]; ok {
		delete(topics, recipeID)
		if len(topics) == 0 {
			delete(h.conns, conn)
		}
	}
}
