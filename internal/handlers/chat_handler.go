package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
	"github.com/starwishteam/starwish/internal/services"
	"github.com/starwishteam/starwish/pkg/middleware"
)

type ChatHandler struct {
	Service   *services.ChatService
	JWTSecret string
}

func NewChatHandler(service *services.ChatService, jwtSecret string) *ChatHandler {
	return &ChatHandler{Service: service, JWTSecret: jwtSecret}
}

// GetMyChatsHandler lists the signed-in user's chats.
func (h *ChatHandler) GetMyChatsHandler(w http.ResponseWriter, r *http.Request) {
	claims := middleware.GetUserFromContext(r.Context())
	if claims == nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	chats, err := h.Service.GetUserChats(r.Context(), claims)
	if err != nil {
		log.WithError(err).Error("Failed to fetch chats")
		http.Error(w, "Failed to fetch chats", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(chats)
}

// GetMessagesHandler returns a chat's messages, oldest first.
func (h *ChatHandler) GetMessagesHandler(w http.ResponseWriter, r *http.Request) {
	claims := middleware.GetUserFromContext(r.Context())
	if claims == nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	chatID := mux.Vars(r)["chatId"]

	messages, err := h.Service.GetMessages(r.Context(), claims, chatID)
	if err != nil {
		if errors.Is(err, services.ErrNotParticipant) {
			http.Error(w, err.Error(), http.StatusForbidden)
			return
		}
		http.Error(w, "Failed to get chat history", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(messages)
}

// SendMessageHandler appends a message to a chat and pushes it to live
// websocket subscribers.
func (h *ChatHandler) SendMessageHandler(w http.ResponseWriter, r *http.Request) {
	claims := middleware.GetUserFromContext(r.Context())
	if claims == nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	chatID := mux.Vars(r)["chatId"]

	var payload struct {
		Text string `json:"text"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	defer r.Body.Close()

	msg, err := h.Service.SendMessage(r.Context(), claims, chatID, payload.Text)
	if err != nil {
		status := http.StatusBadRequest
		if errors.Is(err, services.ErrNotParticipant) {
			status = http.StatusForbidden
		}
		log.WithError(err).Warn("Failed to send message")
		http.Error(w, err.Error(), status)
		return
	}

	broadcastMessage(chatID, msg)

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(msg)
}
