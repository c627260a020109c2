package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/starwishteam/starwish/internal/services"
	"github.com/starwishteam/starwish/pkg/logger"
)

type LeaderboardHandler struct {
	Service *services.LeaderboardService
}

func NewLeaderboardHandler(service *services.LeaderboardService) *LeaderboardHandler {
	return &LeaderboardHandler{Service: service}
}

// GetLeaderboardHandler returns the top helpers by fulfillment count.
func (h *LeaderboardHandler) GetLeaderboardHandler(w http.ResponseWriter, r *http.Request) {
	entries, err := h.Service.TopHelpers(r.Context())
	if err != nil {
		logger.Log.Errorf("Failed to build leaderboard: %v", err)
		http.Error(w, "Failed to build leaderboard", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(entries)
}
