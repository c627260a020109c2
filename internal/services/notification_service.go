package services

import (
	"context"

	"github.com/starwishteam/starwish/internal/models"
	"github.com/starwishteam/starwish/internal/repository"
	jwtutil "github.com/starwishteam/starwish/pkg/jwt"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type NotificationService struct {
	repo *repository.NotificationRepository
}

func NewNotificationService(repo *repository.NotificationRepository) *NotificationService {
	return &NotificationService{repo: repo}
}

// GetUserNotifications returns the signed-in user's unexpired notifications.
func (s *NotificationService) GetUserNotifications(ctx context.Context, claims *jwtutil.Claims) ([]models.Notification, error) {
	return s.repo.GetNotificationsByRecipient(ctx, claims.Username)
}

// MarkSeen flags one of the signed-in user's notifications as seen.
func (s *NotificationService) MarkSeen(ctx context.Context, claims *jwtutil.Claims, notifID primitive.ObjectID) error {
	return s.repo.MarkSeen(ctx, notifID, claims.Username)
}

// DeleteExpired removes notifications past their expiry; invoked by cron.
func (s *NotificationService) DeleteExpired(ctx context.Context) error {
	return s.repo.DeleteExpiredNotifications(ctx)
}
