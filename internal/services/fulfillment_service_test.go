package services

import (
	"testing"

	"github.com/starwishteam/starwish/internal/models"
	jwtutil "github.com/starwishteam/starwish/pkg/jwt"
	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestChatID(t *testing.T) {
	wishID := primitive.NewObjectID()
	uid := primitive.NewObjectID().Hex()

	chatID := ChatID(wishID, uid)

	assert.Equal(t, wishID.Hex()+"_"+uid, chatID)
	// Same pair always yields the same chat.
	assert.Equal(t, chatID, ChatID(wishID, uid))
}

func TestCheckFulfillable(t *testing.T) {
	owner := primitive.NewObjectID()
	helper := &jwtutil.Claims{UserID: primitive.NewObjectID().Hex(), Username: "helper"}

	t.Run("ok for another user", func(t *testing.T) {
		wish := &models.Wish{UID: owner, Username: "owner"}
		assert.NoError(t, checkFulfillable(wish, helper))
	})

	t.Run("own wish rejected", func(t *testing.T) {
		wish := &models.Wish{UID: owner, Username: "owner"}
		self := &jwtutil.Claims{UserID: owner.Hex(), Username: "owner"}
		assert.ErrorIs(t, checkFulfillable(wish, self), ErrSelfFulfill)
	})

	t.Run("anonymous wish rejected", func(t *testing.T) {
		wish := &models.Wish{UID: owner, Username: models.AnonymousName, Anonymous: true}
		assert.ErrorIs(t, checkFulfillable(wish, helper), ErrAnonymousWish)
	})
}

func TestCheckCompletable(t *testing.T) {
	owner := primitive.NewObjectID()
	claims := &jwtutil.Claims{UserID: owner.Hex(), Username: "owner"}

	base := func() *models.Wish {
		return &models.Wish{
			UID:       owner,
			Username:  "owner",
			Status:    models.StatusFulfilling,
			Fulfiller: "helper",
		}
	}

	t.Run("ok", func(t *testing.T) {
		assert.NoError(t, checkCompletable(base(), claims, "helper"))
	})

	t.Run("not the owner", func(t *testing.T) {
		stranger := &jwtutil.Claims{UserID: primitive.NewObjectID().Hex()}
		assert.Error(t, checkCompletable(base(), stranger, "helper"))
	})

	t.Run("wish not mid-fulfillment", func(t *testing.T) {
		wish := base()
		wish.Status = models.StatusPending
		assert.ErrorIs(t, checkCompletable(wish, claims, "helper"), ErrNotFulfilling)
	})

	t.Run("fulfiller name mismatch", func(t *testing.T) {
		assert.ErrorIs(t, checkCompletable(base(), claims, "Helper"), ErrFulfillerMismatch)
	})
}

func TestGratitudeOrDefault(t *testing.T) {
	assert.Equal(t, DefaultGratitudeMessage, gratitudeOrDefault(""))
	assert.Equal(t, DefaultGratitudeMessage, gratitudeOrDefault("   \n\t"))
	assert.Equal(t, "thanks a lot!", gratitudeOrDefault("  thanks a lot!  "))
}
