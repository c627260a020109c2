package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/starwishteam/starwish/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type ChatRepository struct {
	chats    *mongo.Collection
	messages *mongo.Collection
	client   *mongo.Client
}

func NewChatRepository(db *mongo.Database) *ChatRepository {
	return &ChatRepository{
		chats:    db.Collection("chats"),
		messages: db.Collection("messages"),
		client:   db.Client(),
	}
}

func (r *ChatRepository) CreateChat(ctx context.Context, chat *models.Chat) error {
	chat.CreatedAt = time.Now()
	if _, err := r.chats.InsertOne(ctx, chat); err != nil {
		return fmt.Errorf("failed to create chat: %v", err)
	}
	return nil
}

func (r *ChatRepository) GetChat(ctx context.Context, chatID string) (*models.Chat, error) {
	var chat models.Chat
	if err := r.chats.FindOne(ctx, bson.M{"_id": chatID}).Decode(&chat); err != nil {
		return nil, fmt.Errorf("failed to get chat: %v", err)
	}
	return &chat, nil
}

func (r *ChatRepository) ChatExists(ctx context.Context, chatID string) (bool, error) {
	count, err := r.chats.CountDocuments(ctx, bson.M{"_id": chatID})
	if err != nil {
		return false, fmt.Errorf("failed to check chat: %v", err)
	}
	return count > 0, nil
}

// GetChatsByUser lists the chats a display name participates in, most
// recent activity first.
func (r *ChatRepository) GetChatsByUser(ctx context.Context, username string) ([]models.Chat, error) {
	opts := options.Find().SetSort(bson.D{{Key: "last_message_time", Value: -1}})
	cursor, err := r.chats.Find(ctx, bson.M{"users": username}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to get chats: %v", err)
	}
	defer cursor.Close(ctx)

	var chats []models.Chat
	if err := cursor.All(ctx, &chats); err != nil {
		return nil, fmt.Errorf("failed to decode chats: %v", err)
	}
	return chats, nil
}

func (r *ChatRepository) GetMessages(ctx context.Context, chatID string) ([]models.Message, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}})
	cursor, err := r.messages.Find(ctx, bson.M{"chat_id": chatID}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to get messages: %v", err)
	}
	defer cursor.Close(ctx)

	var messages []models.Message
	if err := cursor.All(ctx, &messages); err != nil {
		return nil, fmt.Errorf("failed to decode messages: %v", err)
	}
	return messages, nil
}

// SendMessage appends a message and refreshes the chat's last-message
// preview in one transaction, so the preview can never lag behind a message
// that is already visible.
func (r *ChatRepository) SendMessage(ctx context.Context, msg *models.Message) (*models.Message, error) {
	msg.CreatedAt = time.Now()

	session, err := r.client.StartSession()
	if err != nil {
		return nil, fmt.Errorf("failed to start session: %v", err)
	}
	defer session.EndSession(ctx)

	_, err = session.WithTransaction(ctx, func(sc mongo.SessionContext) (interface{}, error) {
		result, err := r.messages.InsertOne(sc, msg)
		if err != nil {
			return nil, err
		}
		msg.ID = result.InsertedID.(primitive.ObjectID)

		update, err := r.chats.UpdateOne(sc,
			bson.M{"_id": msg.ChatID},
			bson.M{"$set": bson.M{
				"last_message":      msg.Text,
				"last_message_time": msg.CreatedAt,
			}},
		)
		if err != nil {
			return nil, err
		}
		if update.MatchedCount == 0 {
			return nil, errors.New("chat not found")
		}
		return nil, nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to send message: %v", err)
	}
	return msg, nil
}
