package http

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/musfiqshanta/launchmybiz-backend/internal/domain"
)

// CheckoutClient opens a payment session for a formation form.
type CheckoutClient interface {
	CreateCheckoutSession(ctx context.Context, form *domain.CheckoutForm) (string, error)
}

type CheckoutHandler struct {
	client  CheckoutClient
	logger  *slog.Logger
	timeout time.Duration
}

func NewCheckoutHandler(client CheckoutClient, logger *slog.Logger, timeout time.Duration) *CheckoutHandler {
	return &CheckoutHandler{
		client:  client,
		logger:  logger,
		timeout: timeout,
	}
}

type createCheckoutRequestDTO struct {
	Payload *domain.CheckoutForm `json:"payload"`
}

type createCheckoutResponseDTO struct {
	ID string `json:"id"`
}

// POST /api/create-checkout-session
func (h *CheckoutHandler) CreateCheckoutSession(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	var req createCheckoutRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Payload == nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "Form data is missing or invalid.")
		return
	}

	form := req.Payload
	if form.Email == "" || form.SelectedPackage.TotalPrice <= 0 {
		respondError(w, http.StatusBadRequest, "invalid_request", "Form data is missing or invalid.")
		return
	}

	sessionID, err := h.client.CreateCheckoutSession(ctx, form)
	if err != nil {
		h.logger.Error("failed to create checkout session",
			"email", form.Email, "error", err)
		respondError(w, http.StatusInternalServerError, "checkout_failed", "Failed to create payment session.")
		return
	}

	respondJSON(w, http.StatusOK, createCheckoutResponseDTO{ID: sessionID})
}
