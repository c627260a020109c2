package handlers

import (
	"fmt"
	"net/http"
	"sync"

	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"
	"github.com/starwishteam/starwish/internal/models"
	jwtutil "github.com/starwishteam/starwish/pkg/jwt"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// Per-chat subscriber sets. Every open websocket on a chat gets each new
// message pushed as JSON.
var (
	chatStreams = make(map[string]map[*websocket.Conn]bool)
	streamsMu   sync.Mutex
)

func subscribe(chatID string, conn *websocket.Conn) {
	streamsMu.Lock()
	defer streamsMu.Unlock()
	if chatStreams[chatID] == nil {
		chatStreams[chatID] = make(map[*websocket.Conn]bool)
	}
	chatStreams[chatID][conn] = true
}

func unsubscribe(chatID string, conn *websocket.Conn) {
	streamsMu.Lock()
	defer streamsMu.Unlock()
	delete(chatStreams[chatID], conn)
	if len(chatStreams[chatID]) == 0 {
		delete(chatStreams, chatID)
	}
}

func broadcastMessage(chatID string, msg *models.Message) {
	streamsMu.Lock()
	defer streamsMu.Unlock()
	for conn := range chatStreams[chatID] {
		_ = conn.WriteJSON(msg)
	}
}

// ChatStreamHandler upgrades to a websocket and streams new messages for
// one chat. Auth comes from a token query parameter because browsers cannot
// set headers on websocket dials.
func (h *ChatHandler) ChatStreamHandler(w http.ResponseWriter, r *http.Request) {
	token := r.URL.Query().Get("token")
	if token == "" {
		http.Error(w, "Missing token", http.StatusUnauthorized)
		return
	}
	claims, err := jwtutil.ValidateToken(token, h.JWTSecret)
	if err != nil {
		http.Error(w, "Invalid token", http.StatusUnauthorized)
		return
	}

	chatID := mux.Vars(r)["chatId"]

	ok, err := h.Service.IsParticipant(r.Context(), chatID, claims.Username)
	if err != nil {
		http.Error(w, "Chat not found", http.StatusNotFound)
		return
	}
	if !ok {
		http.Error(w, "You are not a participant of this chat", http.StatusForbidden)
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		fmt.Println("WebSocket upgrade failed:", err)
		http.Error(w, "WebSocket upgrade failed", http.StatusBadRequest)
		return
	}

	fmt.Println("WebSocket connected:", claims.Username, "chat:", chatID)

	subscribe(chatID, conn)
	defer func() {
		unsubscribe(chatID, conn)
		conn.Close()
		fmt.Println("WebSocket disconnected:", claims.Username)
	}()

	// The stream is one-way; reads only detect the client going away.
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			break
		}
	}
}
