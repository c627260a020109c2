package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
	"github.com/starwishteam/starwish/internal/services"
	"github.com/starwishteam/starwish/pkg/middleware"
)

type FulfillmentHandler struct {
	Service *services.FulfillmentService
}

func NewFulfillmentHandler(service *services.FulfillmentService) *FulfillmentHandler {
	return &FulfillmentHandler{Service: service}
}

// FulfillWishHandler starts fulfilling a wish and returns the chat id to
// navigate to. Re-invoking with the same user returns the same chat id.
func (h *FulfillmentHandler) FulfillWishHandler(w http.ResponseWriter, r *http.Request) {
	claims := middleware.GetUserFromContext(r.Context())
	if claims == nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	wishID := mux.Vars(r)["id"]

	chatID, err := h.Service.StartFulfilling(r.Context(), claims, wishID)
	if err != nil {
		status := http.StatusBadRequest
		switch {
		case errors.Is(err, services.ErrSelfFulfill), errors.Is(err, services.ErrAnonymousWish):
			status = http.StatusForbidden
		case errors.Is(err, services.ErrWishTaken):
			status = http.StatusConflict
		}
		log.WithError(err).WithField("wishID", wishID).Warn("Failed to start fulfilling")
		http.Error(w, err.Error(), status)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"chat_id": chatID})
}

// CompleteWishHandler completes a fulfilling wish. The owner re-enters the
// fulfiller's name as confirmation and may attach a gratitude message.
func (h *FulfillmentHandler) CompleteWishHandler(w http.ResponseWriter, r *http.Request) {
	claims := middleware.GetUserFromContext(r.Context())
	if claims == nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	wishID := mux.Vars(r)["id"]

	var payload struct {
		Fulfiller string `json:"fulfiller"`
		Message   string `json:"message"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	defer r.Body.Close()

	msg, err := h.Service.Complete(r.Context(), claims, wishID, payload.Fulfiller, payload.Message)
	if err != nil {
		status := http.StatusBadRequest
		if errors.Is(err, services.ErrFulfillerMismatch) {
			status = http.StatusUnprocessableEntity
		}
		log.WithError(err).WithField("wishID", wishID).Warn("Failed to complete wish")
		http.Error(w, err.Error(), status)
		return
	}

	// The gratitude message lands in the chat like any other send, so live
	// subscribers get it too.
	broadcastMessage(msg.ChatID, msg)

	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(map[string]string{"message": "Wish completed"})
}
