package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/starwishteam/starwish/internal/models"
	"github.com/starwishteam/starwish/internal/repository"
	jwtutil "github.com/starwishteam/starwish/pkg/jwt"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ErrNotParticipant is returned when a user touches a chat they are not a
// member of.
var ErrNotParticipant = errors.New("you are not a participant of this chat")

type ChatService struct {
	repo *repository.ChatRepository
}

func NewChatService(repo *repository.ChatRepository) *ChatService {
	return &ChatService{repo: repo}
}

// isParticipant reports whether the display name is one of the chat's users.
func isParticipant(chat *models.Chat, username string) bool {
	for _, u := range chat.Users {
		if u == username {
			return true
		}
	}
	return false
}

// GetUserChats lists the signed-in user's chats, most recent first.
func (s *ChatService) GetUserChats(ctx context.Context, claims *jwtutil.Claims) ([]models.Chat, error) {
	return s.repo.GetChatsByUser(ctx, claims.Username)
}

// GetMessages returns a chat's messages ascending by send time. Only
// participants may read the history.
func (s *ChatService) GetMessages(ctx context.Context, claims *jwtutil.Claims, chatID string) ([]models.Message, error) {
	chat, err := s.repo.GetChat(ctx, chatID)
	if err != nil {
		return nil, fmt.Errorf("chat not found")
	}
	if !isParticipant(chat, claims.Username) {
		return nil, ErrNotParticipant
	}
	return s.repo.GetMessages(ctx, chatID)
}

// IsParticipant reports whether the display name belongs to the chat. Used
// by the live stream endpoint before a websocket subscription is accepted.
func (s *ChatService) IsParticipant(ctx context.Context, chatID, username string) (bool, error) {
	chat, err := s.repo.GetChat(ctx, chatID)
	if err != nil {
		return false, fmt.Errorf("chat not found")
	}
	return isParticipant(chat, username), nil
}

// SendMessage appends a user message to a chat. Only participants may send,
// and text must be non-empty after trimming.
func (s *ChatService) SendMessage(ctx context.Context, claims *jwtutil.Claims, chatID, text string) (*models.Message, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, fmt.Errorf("message text must not be empty")
	}

	chat, err := s.repo.GetChat(ctx, chatID)
	if err != nil {
		return nil, fmt.Errorf("chat not found")
	}
	if !isParticipant(chat, claims.Username) {
		return nil, ErrNotParticipant
	}

	senderID, err := primitive.ObjectIDFromHex(claims.UserID)
	if err != nil {
		return nil, fmt.Errorf("invalid user ID")
	}

	msg := &models.Message{
		ChatID:   chatID,
		SenderID: senderID,
		Text:     text,
	}
	return s.repo.SendMessage(ctx, msg)
}
