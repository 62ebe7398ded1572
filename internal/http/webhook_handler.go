package http

import (
	"context"
	"io"
	"log/slog"
	"net/http"

	"github.com/stripe/stripe-go/v82"

	"github.com/musfiqshanta/launchmybiz-backend/internal/payment"
	"github.com/musfiqshanta/launchmybiz-backend/internal/service"
	"github.com/musfiqshanta/launchmybiz-backend/pkg/metrics"
)

const maxWebhookBody = 1 << 20 // Stripe events are small; 1MB is generous

// EventVerifier authenticates a raw webhook payload.
type EventVerifier interface {
	VerifyEvent(payload []byte, sigHeader string) (stripe.Event, error)
}

// OrderProcessor runs the order-intake pipeline for a verified session.
type OrderProcessor interface {
	ProcessCompletedSession(ctx context.Context, sess *service.CompletedSession) (service.ProcessOutcome, error)
}

type WebhookHandler struct {
	verifier EventVerifier
	orders   OrderProcessor
	metrics  *metrics.ServerMetrics
	logger   *slog.Logger
}

func NewWebhookHandler(verifier EventVerifier, orders OrderProcessor, m *metrics.ServerMetrics, logger *slog.Logger) *WebhookHandler {
	return &WebhookHandler{
		verifier: verifier,
		orders:   orders,
		metrics:  m,
		logger:   logger,
	}
}

// POST /api/stripe-webhook
//
// 200 on processed, already-processed and ignored event types; 400 on
// signature failure; 500 only when persistence fails after verification.
func (h *WebhookHandler) HandleStripeWebhook(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxWebhookBody))
	if err != nil {
		h.countEvent("verification_failed")
		respondError(w, http.StatusBadRequest, "invalid_payload", "failed to read request body")
		return
	}

	event, err := h.verifier.VerifyEvent(body, r.Header.Get("Stripe-Signature"))
	if err != nil {
		h.logger.Warn("webhook signature verification failed", "error", err)
		h.countEvent("verification_failed")
		respondError(w, http.StatusBadRequest, "invalid_signature", "webhook signature verification failed")
		return
	}

	if string(event.Type) != payment.EventCheckoutCompleted {
		h.countEvent("ignored")
		w.WriteHeader(http.StatusOK)
		return
	}

	cs, err := payment.UnmarshalCheckoutSession(event)
	if err != nil {
		h.logger.Error("failed to decode checkout session", "event_id", event.ID, "error", err)
		h.countEvent("error")
		respondError(w, http.StatusInternalServerError, "processing_failed", "failed to process order")
		return
	}

	sess := &service.CompletedSession{
		ID:            cs.ID,
		PaymentStatus: string(cs.PaymentStatus),
		AmountTotal:   cs.AmountTotal,
		Metadata:      cs.Metadata,
	}

	outcome, err := h.orders.ProcessCompletedSession(r.Context(), sess)
	if err != nil {
		h.logger.Error("order processing failed", "checkout_id", sess.ID, "error", err)
		h.countEvent("error")
		respondError(w, http.StatusInternalServerError, "processing_failed", "failed to process order")
		return
	}

	if outcome == service.OutcomeAlreadyProcessed {
		h.countEvent("already_processed")
		respondJSON(w, http.StatusOK, map[string]string{"status": "already processed"})
		return
	}

	h.countEvent("processed")
	respondJSON(w, http.StatusOK, map[string]string{"status": "processed"})
}

func (h *WebhookHandler) countEvent(outcome string) {
	if h.metrics != nil {
		h.metrics.WebhookEvents.WithLabelValues(outcome).Inc()
	}
}
