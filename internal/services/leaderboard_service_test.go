package services

import (
	"testing"

	"github.com/starwishteam/starwish/internal/models"
	"github.com/stretchr/testify/assert"
)

func fulfilledWish(fulfiller string) models.Wish {
	return models.Wish{
		Fulfilled: true,
		Fulfiller: fulfiller,
		Status:    models.StatusFulfilled,
	}
}

func TestBuildLeaderboard_CountsAndOrder(t *testing.T) {
	wishes := []models.Wish{
		fulfilledWish("alice"),
		fulfilledWish("bob"),
		fulfilledWish("alice"),
		fulfilledWish("alice"),
		fulfilledWish("bob"),
		fulfilledWish("carol"),
	}

	entries := BuildLeaderboard(wishes, LeaderboardSize)

	assert.Equal(t, []LeaderboardEntry{
		{Username: "alice", Count: 3},
		{Username: "bob", Count: 2},
		{Username: "carol", Count: 1},
	}, entries)
}

func TestBuildLeaderboard_SkipsUnfulfilledAndEmptyFulfiller(t *testing.T) {
	wishes := []models.Wish{
		{Fulfilled: false, Fulfiller: "alice"},
		{Fulfilled: true, Fulfiller: ""},
		fulfilledWish("bob"),
	}

	entries := BuildLeaderboard(wishes, LeaderboardSize)

	assert.Len(t, entries, 1)
	assert.Equal(t, "bob", entries[0].Username)
	assert.Equal(t, 1, entries[0].Count)
}

func TestBuildLeaderboard_TiesKeepFirstEncounterOrder(t *testing.T) {
	wishes := []models.Wish{
		fulfilledWish("zoe"),
		fulfilledWish("adam"),
		fulfilledWish("mia"),
	}

	entries := BuildLeaderboard(wishes, LeaderboardSize)

	assert.Equal(t, "zoe", entries[0].Username)
	assert.Equal(t, "adam", entries[1].Username)
	assert.Equal(t, "mia", entries[2].Username)
}

func TestBuildLeaderboard_Limit(t *testing.T) {
	var wishes []models.Wish
	names := []string{"a", "b", "c", "d", "e", "f", "g", "h", "i", "j", "k", "l"}
	for i, name := range names {
		for j := 0; j <= i; j++ {
			wishes = append(wishes, fulfilledWish(name))
		}
	}

	entries := BuildLeaderboard(wishes, 10)

	assert.Len(t, entries, 10)
	// The two lowest counts fall off the board.
	assert.Equal(t, "l", entries[0].Username)
	assert.Equal(t, 12, entries[0].Count)
	for _, e := range entries {
		assert.NotEqual(t, "a", e.Username)
		assert.NotEqual(t, "b", e.Username)
	}
}

func TestBuildLeaderboard_Empty(t *testing.T) {
	assert.Empty(t, BuildLeaderboard(nil, 10))
}
