package handlers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/starwishteam/starwish/internal/models"
	"github.com/starwishteam/starwish/internal/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func subscriberCount(chatID string) int {
	streamsMu.Lock()
	defer streamsMu.Unlock()
	return len(chatStreams[chatID])
}

func TestSubscribeUnsubscribe(t *testing.T) {
	const chatID = "wishA_userA"
	conn := &websocket.Conn{}

	subscribe(chatID, conn)
	assert.Equal(t, 1, subscriberCount(chatID))

	unsubscribe(chatID, conn)
	assert.Equal(t, 0, subscriberCount(chatID))

	// The empty set is dropped entirely.
	streamsMu.Lock()
	_, present := chatStreams[chatID]
	streamsMu.Unlock()
	assert.False(t, present)
}

// A system message pushed through broadcastMessage must arrive at every open
// websocket on the chat, the same as a user message.
func TestBroadcastMessage_ReachesSubscribers(t *testing.T) {
	const chatID = "wishB_userB"

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		subscribe(chatID, conn)
	}))
	defer srv.Close()

	wsURL := "ws" + strings.TrimPrefix(srv.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	require.NoError(t, err)
	defer conn.Close()

	require.Eventually(t, func() bool {
		return subscriberCount(chatID) == 1
	}, time.Second, 10*time.Millisecond)

	broadcastMessage(chatID, &models.Message{
		ChatID: chatID,
		Text:   services.DefaultGratitudeMessage,
		System: true,
	})

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(time.Second)))
	var got models.Message
	require.NoError(t, conn.ReadJSON(&got))

	assert.Equal(t, chatID, got.ChatID)
	assert.True(t, got.System)
	assert.Equal(t, services.DefaultGratitudeMessage, got.Text)
}
