package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/starwishteam/starwish/internal/models"
	"github.com/starwishteam/starwish/internal/repository"
	jwtutil "github.com/starwishteam/starwish/pkg/jwt"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// DefaultGratitudeMessage is the system message sent on completion when the
// wisher leaves the thank-you text blank.
const DefaultGratitudeMessage = "Thank you so much for fulfilling my wish 💫!"

var (
	ErrSelfFulfill       = errors.New("you cannot fulfill your own wish")
	ErrAnonymousWish     = errors.New("anonymous wishes cannot be fulfilled")
	ErrWishTaken         = errors.New("someone else is already fulfilling this wish")
	ErrNotFulfilling     = errors.New("wish is not currently being fulfilled")
	ErrFulfillerMismatch = errors.New("username doesn't match the fulfiller, please try again")
)

// FulfillmentService drives the pending -> fulfilling -> fulfilled state
// machine and the chat that goes with it.
type FulfillmentService struct {
	wishRepo  *repository.WishRepository
	chatRepo  *repository.ChatRepository
	notifRepo *repository.NotificationRepository
}

func NewFulfillmentService(wishRepo *repository.WishRepository, chatRepo *repository.ChatRepository, notifRepo *repository.NotificationRepository) *FulfillmentService {
	return &FulfillmentService{
		wishRepo:  wishRepo,
		chatRepo:  chatRepo,
		notifRepo: notifRepo,
	}
}

// ChatID derives the chat identifier for a wish and its fulfiller. The
// fulfiller's stable id (not the display name) goes into the key, so the
// same pair always maps to the same chat.
func ChatID(wishID primitive.ObjectID, fulfillerUID string) string {
	return fmt.Sprintf("%s_%s", wishID.Hex(), fulfillerUID)
}

// checkFulfillable holds the eligibility rules for starting fulfillment.
func checkFulfillable(wish *models.Wish, claims *jwtutil.Claims) error {
	if wish.Anonymous {
		return ErrAnonymousWish
	}
	if wish.UID.Hex() == claims.UserID {
		return ErrSelfFulfill
	}
	return nil
}

// StartFulfilling moves a pending wish to fulfilling for the signed-in
// user, creates the chat and notifies the owner. Calling it again with the
// same user is a no-op that returns the existing chat id.
func (s *FulfillmentService) StartFulfilling(ctx context.Context, claims *jwtutil.Claims, wishID string) (string, error) {
	objID, err := primitive.ObjectIDFromHex(wishID)
	if err != nil {
		return "", fmt.Errorf("invalid wish ID")
	}

	wish, err := s.wishRepo.GetWishByID(ctx, objID)
	if err != nil {
		return "", fmt.Errorf("wish not found")
	}

	if err := checkFulfillable(wish, claims); err != nil {
		return "", err
	}

	chatID := ChatID(objID, claims.UserID)
	exists, err := s.chatRepo.ChatExists(ctx, chatID)
	if err != nil {
		return "", err
	}
	if exists {
		// Idempotent re-invocation: the chat is already there, nothing to
		// mutate.
		return chatID, nil
	}

	ok, err := s.wishRepo.MarkFulfilling(ctx, objID, claims.Username, claims.UserID)
	if err != nil {
		return "", err
	}
	if !ok {
		// Either another user won the race or the wish left the pending
		// state some other way.
		return "", ErrWishTaken
	}

	chat := &models.Chat{
		ID:     chatID,
		Users:  []string{wish.Username, claims.Username},
		WishID: objID,
	}
	if err := s.chatRepo.CreateChat(ctx, chat); err != nil {
		return "", err
	}

	notif := &models.Notification{
		To:     wish.Username,
		From:   claims.Username,
		Type:   models.NotificationFulfill,
		WishID: objID,
	}
	if err := s.notifRepo.CreateNotification(ctx, notif); err != nil {
		// The fulfillment itself succeeded; the owner just misses the ping.
		logrus.WithError(err).WithField("wishID", wishID).Warn("Failed to create fulfill notification")
	}

	logrus.WithFields(logrus.Fields{
		"wishID":    wishID,
		"fulfiller": claims.Username,
		"chatID":    chatID,
	}).Info("Wish fulfillment started")
	return chatID, nil
}

// checkCompletable holds the rules for completing a wish: owner only, the
// wish must be mid-fulfillment, and the re-entered fulfiller name must
// match exactly.
func checkCompletable(wish *models.Wish, claims *jwtutil.Claims, confirmName string) error {
	if wish.UID.Hex() != claims.UserID {
		return fmt.Errorf("only the wish owner can complete it")
	}
	if wish.Status != models.StatusFulfilling {
		return ErrNotFulfilling
	}
	if confirmName != wish.Fulfiller {
		return ErrFulfillerMismatch
	}
	return nil
}

// gratitudeOrDefault trims the owner's thank-you text and falls back to the
// fixed default when nothing is left.
func gratitudeOrDefault(text string) string {
	if trimmed := strings.TrimSpace(text); trimmed != "" {
		return trimmed
	}
	return DefaultGratitudeMessage
}

// Complete marks a fulfilling wish as fulfilled and drops the gratitude
// message into the fulfillment chat as a system message, returning it so the
// caller can push it to live subscribers. A missing chat is recreated inline
// rather than failing the completion.
func (s *FulfillmentService) Complete(ctx context.Context, claims *jwtutil.Claims, wishID, confirmName, gratitude string) (*models.Message, error) {
	objID, err := primitive.ObjectIDFromHex(wishID)
	if err != nil {
		return nil, fmt.Errorf("invalid wish ID")
	}

	wish, err := s.wishRepo.GetWishByID(ctx, objID)
	if err != nil {
		return nil, fmt.Errorf("wish not found")
	}

	if err := checkCompletable(wish, claims, confirmName); err != nil {
		return nil, err
	}

	ok, err := s.wishRepo.MarkFulfilled(ctx, objID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrNotFulfilling
	}

	message := gratitudeOrDefault(gratitude)

	// The stored fulfiller uid identifies the chat; display names are
	// neither stable nor unique.
	chatID := ChatID(objID, wish.FulfillerUID)
	exists, err := s.chatRepo.ChatExists(ctx, chatID)
	if err != nil {
		return nil, err
	}
	if !exists {
		chat := &models.Chat{
			ID:     chatID,
			Users:  []string{claims.Username, wish.Fulfiller},
			WishID: objID,
		}
		if err := s.chatRepo.CreateChat(ctx, chat); err != nil {
			return nil, err
		}
	}

	senderID, err := primitive.ObjectIDFromHex(claims.UserID)
	if err != nil {
		return nil, fmt.Errorf("invalid user ID")
	}
	msg := &models.Message{
		ChatID:   chatID,
		SenderID: senderID,
		Text:     message,
		System:   true,
	}
	sent, err := s.chatRepo.SendMessage(ctx, msg)
	if err != nil {
		return nil, fmt.Errorf("wish completed, but sending the gratitude message failed: %v", err)
	}

	logrus.WithFields(logrus.Fields{
		"wishID":    wishID,
		"fulfiller": wish.Fulfiller,
	}).Info("Wish completed")
	return sent, nil
}
