package services

import (
	"context"
	"sort"

	"github.com/starwishteam/starwish/internal/models"
	"github.com/starwishteam/starwish/internal/repository"
)

// LeaderboardSize caps how many helpers the leaderboard exposes.
const LeaderboardSize = 10

// LeaderboardEntry is one row of the top-helpers ranking.
type LeaderboardEntry struct {
	Username string `json:"username"`
	Count    int    `json:"count"`
}

type LeaderboardService struct {
	wishRepo *repository.WishRepository
}

func NewLeaderboardService(wishRepo *repository.WishRepository) *LeaderboardService {
	return &LeaderboardService{wishRepo: wishRepo}
}

// TopHelpers recomputes the full ranking from the fulfilled wishes. There
// is no separate aggregate store; the wish set is the source of truth.
func (s *LeaderboardService) TopHelpers(ctx context.Context) ([]LeaderboardEntry, error) {
	wishes, err := s.wishRepo.GetFulfilledWishes(ctx)
	if err != nil {
		return nil, err
	}
	return BuildLeaderboard(wishes, LeaderboardSize), nil
}

// BuildLeaderboard reduces a wish set to per-fulfiller fulfillment counts,
// sorted descending. Ties keep the order in which a fulfiller was first
// encountered.
func BuildLeaderboard(wishes []models.Wish, limit int) []LeaderboardEntry {
	counts := make(map[string]int)
	var order []string

	for _, w := range wishes {
		if !w.Fulfilled || w.Fulfiller == "" {
			continue
		}
		if _, seen := counts[w.Fulfiller]; !seen {
			order = append(order, w.Fulfiller)
		}
		counts[w.Fulfiller]++
	}

	entries := make([]LeaderboardEntry, 0, len(order))
	for _, name := range order {
		entries = append(entries, LeaderboardEntry{Username: name, Count: counts[name]})
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Count > entries[j].Count
	})

	if limit > 0 && len(entries) > limit {
		entries = entries[:limit]
	}
	return entries
}
