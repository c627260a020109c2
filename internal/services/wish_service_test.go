package services

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/starwishteam/starwish/internal/models"
	"github.com/starwishteam/starwish/pkg/aidetect"
	jwtutil "github.com/starwishteam/starwish/pkg/jwt"
	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func feedWishes() []models.Wish {
	return []models.Wish{
		{Text: "Need warm clothes for winter", Location: "Almaty", Urgency: 5},
		{Text: "Looking for textbooks", Location: "Astana", Urgency: 2},
		{Text: "Help fixing my bike", Location: "Almaty", Urgency: 3},
	}
}

func TestFilterWishes_EmptyTermKeepsEverything(t *testing.T) {
	wishes := feedWishes()
	assert.Equal(t, wishes, FilterWishes(wishes, ""))
	assert.Equal(t, wishes, FilterWishes(wishes, "   "))
}

func TestFilterWishes_MatchesTextCaseInsensitive(t *testing.T) {
	filtered := FilterWishes(feedWishes(), "WARM")
	assert.Len(t, filtered, 1)
	assert.Equal(t, "Need warm clothes for winter", filtered[0].Text)
}

func TestFilterWishes_MatchesLocation(t *testing.T) {
	filtered := FilterWishes(feedWishes(), "almaty")
	assert.Len(t, filtered, 2)
}

func TestFilterWishes_MatchesUrgencyNumber(t *testing.T) {
	filtered := FilterWishes(feedWishes(), "5")
	assert.Len(t, filtered, 1)
	assert.Equal(t, 5, filtered[0].Urgency)
}

func TestFilterWishes_NoMatch(t *testing.T) {
	assert.Empty(t, FilterWishes(feedWishes(), "no such thing"))
}

func TestScreenWishText_BlocklistSkipsDetector(t *testing.T) {
	var calls int64
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt64(&calls, 1)
		w.Write([]byte(`{"ai": false}`))
	}))
	defer srv.Close()

	detector := aidetect.NewClient(srv.URL, "")

	err := screenWishText(context.Background(), detector, "As an AI, I cannot want things")
	assert.ErrorIs(t, err, ErrLooksAIGenerated)
	assert.Zero(t, atomic.LoadInt64(&calls), "blocklisted text must not reach the detector")
}

func TestScreenWishText_DetectorFlagsText(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"ai": true}`))
	}))
	defer srv.Close()

	detector := aidetect.NewClient(srv.URL, "")

	err := screenWishText(context.Background(), detector, "a perfectly normal wish")
	assert.ErrorIs(t, err, ErrLooksAIGenerated)
}

func TestCheckDeletable(t *testing.T) {
	owner := primitive.NewObjectID()
	ownerClaims := &jwtutil.Claims{UserID: owner.Hex(), Username: "owner"}

	t.Run("author may delete an unfulfilled wish", func(t *testing.T) {
		wish := &models.Wish{UID: owner, Status: models.StatusPending}
		assert.NoError(t, checkDeletable(wish, ownerClaims))
	})

	t.Run("only the author may delete", func(t *testing.T) {
		wish := &models.Wish{UID: owner, Status: models.StatusPending}
		stranger := &jwtutil.Claims{UserID: primitive.NewObjectID().Hex(), Username: "stranger"}
		assert.Error(t, checkDeletable(wish, stranger))
	})

	t.Run("fulfilled wishes stay", func(t *testing.T) {
		wish := &models.Wish{UID: owner, Status: models.StatusFulfilled, Fulfilled: true}
		assert.Error(t, checkDeletable(wish, ownerClaims))
	})
}

func TestScreenWishText_CleanTextPasses(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"ai": false}`))
	}))
	defer srv.Close()

	detector := aidetect.NewClient(srv.URL, "")

	assert.NoError(t, screenWishText(context.Background(), detector, "I wish for a bicycle"))
}
