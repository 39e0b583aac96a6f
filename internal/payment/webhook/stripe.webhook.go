package webhook

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"maison-be/internal/logger"
	"maison-be/internal/order"
	"maison-be/internal/payment"

	"go.uber.org/zap"
)

// EventPayload is the slice of the Stripe event envelope we care
// about: the event type and the session id inside data.object.
type EventPayload struct {
	Type string `json:"type"`
	Data struct {
		Object struct {
			ID string `json:"id"`
		} `json:"object"`
	} `json:"data"`
}

type Handler struct {
	OrderSvc order.Service
	Gateway  payment.Gateway
}

func NewWebhookHandler(orderSvc order.Service, gateway payment.Gateway) *Handler {
	return &Handler{
		OrderSvc: orderSvc,
		Gateway:  gateway,
	}
}

// WebhookHandler receives Stripe events. Only completed checkout
// sessions trigger reconciliation; every other event type is
// acknowledged and dropped so Stripe stops retrying it.
func (h *Handler) WebhookHandler(w http.ResponseWriter, r *http.Request) {
	log := logger.FromCtx(r.Context()).With(zap.String("handler", "stripe_webhook"))

	if err := h.Gateway.VerifyWebhookSignature(r); err != nil {
		log.Warn("webhook signature verification failed", zap.Error(err))
		http.Error(w, "invalid signature", http.StatusUnauthorized)
		return
	}

	body, err := io.ReadAll(r.Body)
	if err != nil {
		http.Error(w, "failed to read body", http.StatusBadRequest)
		return
	}
	defer r.Body.Close()

	var payload EventPayload
	if err := json.Unmarshal(body, &payload); err != nil {
		http.Error(w, "invalid JSON payload", http.StatusBadRequest)
		return
	}

	if payload.Type != "checkout.session.completed" {
		w.WriteHeader(http.StatusOK)
		return
	}

	if payload.Data.Object.ID == "" {
		http.Error(w, "missing session id", http.StatusBadRequest)
		return
	}

	log.Info("checkout session completed", zap.String("session_id", payload.Data.Object.ID))

	if _, err := h.OrderSvc.CreateFromSession(r.Context(), payload.Data.Object.ID); err != nil {
		if errors.Is(err, payment.ErrInvalidCartSnapshot) {
			// A malformed snapshot never heals; retrying is pointless.
			log.Error("dropping session with invalid cart snapshot", zap.Error(err))
			w.WriteHeader(http.StatusOK)
			return
		}
		log.Error("failed to reconcile session", zap.Error(err))
		http.Error(w, "failed to process session", http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}
