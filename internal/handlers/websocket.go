package handlers

import (
	"encoding/json"
	"net/http"

	"quickbite-backend/internal/services"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// clientMessage represents a message sent by a websocket client
type clientMessage struct {
	Type     string `json:"type"`
	RecipeID string `json:"recipeId"`
}

// WebSocketHandler handles websocket connections for realtime comment
// fan-out
type WebSocketHandler struct {
	hub         *services.WSHub
	userService *services.UserService
}

// NewWebSocketHandler creates a new websocket handler
func NewWebSocketHandler(hub *services.WSHub, userService *services.UserService) *WebSocketHandler {
	return &WebSocketHandler{
		hub:         hub,
		userService: userService,
	}
}

// HandleWebSocket handles GET /ws. Clients authenticate with a token query
// parameter, then join recipe topics to receive pushed comments. All topic
// membership is dropped on disconnect.
func (h *WebSocketHandler) HandleWebSocket(w http.ResponseWriter, r *http.Request) {
	token := r.URL.Query().Get("token")
	if token == "" {
		respondError(w, "token required", http.StatusUnauthorized)
		return
	}

	userID, err := h.userService.ValidateJWT(token)
	if err != nil {
		respondError(w, "invalid token", http.StatusUnauthorized)
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Error().Err(err).Msg("Failed to upgrade WebSocket connection")
		return
	}
	defer conn.Close()

	// All writes go through the client so hub publishes cannot interleave
	// with error replies from this read loop.
	client := services.NewWSClient(conn)
	defer h.hub.Drop(client)

	log.Info().Str("user_id", userID).Msg("WebSocket connection established")

	for {
		_, messageBytes, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Error().Err(err).Str("user_id", userID).Msg("WebSocket error")
			}
			break
		}

		var msg clientMessage
		if err := json.Unmarshal(messageBytes, &msg); err != nil {
			log.Error().Err(err).Str("user_id", userID).Msg("Failed to parse WebSocket message")
			h.sendError(client, "Invalid message format")
			continue
		}

		switch msg.Type {
		case "join":
			if msg.RecipeID == "" {
				h.sendError(client, "recipeId is required")
				continue
			}
			h.hub.Subscribe(client, msg.RecipeID)
		case "leave":
			if msg.RecipeID == "" {
				h.sendError(client, "recipeId is required")
				continue
			}
			h.hub.Unsubscribe(client, msg.RecipeID)
		default:
			h.sendError(client, "Unknown message type")
		}
	}
}

// sendError sends an error message on the websocket connection
func (h *WebSocketHandler) sendError(client *services.WSClient, message string) {
	msg := services.WSEvent{
		Type:    "error",
		Message: message,
	}
	data, _ := json.Marshal(msg)
	client.WriteMessage(websocket.TextMessage, data)
}
