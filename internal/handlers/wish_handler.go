package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
	"github.com/starwishteam/starwish/internal/services"
	"github.com/starwishteam/starwish/pkg/middleware"
)

type WishHandler struct {
	Service *services.WishService
}

func NewWishHandler(service *services.WishService) *WishHandler {
	return &WishHandler{Service: service}
}

// CreateWishHandler handles posting a new wish.
func (h *WishHandler) CreateWishHandler(w http.ResponseWriter, r *http.Request) {
	claims := middleware.GetUserFromContext(r.Context())
	if claims == nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var input services.WishInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	defer r.Body.Close()

	createdWish, err := h.Service.CreateWish(r.Context(), claims, &input)
	if err != nil {
		log.WithError(err).Warn("Failed to create wish")
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(createdWish)
}

// GetWishesHandler returns the feed, optionally filtered by ?q=.
func (h *WishHandler) GetWishesHandler(w http.ResponseWriter, r *http.Request) {
	searchTerm := r.URL.Query().Get("q")

	wishes, err := h.Service.GetFeed(r.Context(), searchTerm)
	if err != nil {
		log.WithError(err).Error("Failed to fetch wishes")
		http.Error(w, "Failed to fetch wishes", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(wishes)
}

// GetWishByIDHandler retrieves a specific wish by ID.
func (h *WishHandler) GetWishByIDHandler(w http.ResponseWriter, r *http.Request) {
	wishID := mux.Vars(r)["id"]

	wish, err := h.Service.GetWishByID(r.Context(), wishID)
	if err != nil {
		http.Error(w, "Wish not found", http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(wish)
}

// VoteHandler casts a like or dislike on a wish. A duplicate vote is a
// silent no-op, so the response is OK either way.
func (h *WishHandler) VoteHandler(w http.ResponseWriter, r *http.Request) {
	claims := middleware.GetUserFromContext(r.Context())
	if claims == nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	wishID := mux.Vars(r)["id"]

	var payload struct {
		Type string `json:"type"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	defer r.Body.Close()

	if err := h.Service.Vote(r.Context(), claims, wishID, payload.Type); err != nil {
		log.WithError(err).Warn("Failed to cast vote")
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(map[string]string{"message": "Vote recorded"})
}

// GetMyVotesHandler returns the signed-in user's votes keyed by wish id.
func (h *WishHandler) GetMyVotesHandler(w http.ResponseWriter, r *http.Request) {
	claims := middleware.GetUserFromContext(r.Context())
	if claims == nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	votes, err := h.Service.GetUserVotes(r.Context(), claims)
	if err != nil {
		http.Error(w, "Failed to fetch votes", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(votes)
}

// DeleteWishHandler removes a wish; author only, unfulfilled only.
func (h *WishHandler) DeleteWishHandler(w http.ResponseWriter, r *http.Request) {
	claims := middleware.GetUserFromContext(r.Context())
	if claims == nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	wishID := mux.Vars(r)["id"]

	if err := h.Service.DeleteWish(r.Context(), claims, wishID); err != nil {
		log.WithError(err).Warn("Failed to delete wish")
		http.Error(w, err.Error(), http.StatusForbidden)
		return
	}

	w.WriteHeader(http.StatusOK)
	w.Write([]byte("Wish deleted successfully"))
}
