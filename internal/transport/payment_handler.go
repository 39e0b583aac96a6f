package transport

import (
	"encoding/json"
	"net/http"

	"maison-be/internal/order"
	"maison-be/internal/payment"
	"maison-be/internal/utils"

	"github.com/go-chi/chi/v5"
)

type PaymentHandler struct {
	payments payment.Service
	orders   order.Service
}

func NewPaymentHandler(payments payment.Service, orders order.Service) *PaymentHandler {
	return &PaymentHandler{payments: payments, orders: orders}
}

func (h *PaymentHandler) CreateCheckoutSession(w http.ResponseWriter, r *http.Request) {
	var input payment.CheckoutInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		utils.WriteJSONError(w, "invalid request body", http.StatusBadRequest)
		return
	}

	result, err := h.payments.CreateCheckoutSession(r.Context(), input)
	if err != nil {
		respondError(w, r, err)
		return
	}

	utils.WriteJSON(w, http.StatusOK, result)
}

// SessionStatus is the client-side reconciliation trigger: the
// success-page poll. It reports the gateway payment status and, when
// the session is paid, the order it resolved to (created here if the
// webhook has not landed yet).
func (h *PaymentHandler) SessionStatus(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "id")
	if sessionID == "" {
		utils.WriteJSONError(w, "missing session id", http.StatusBadRequest)
		return
	}

	result, err := h.orders.CreateFromSession(r.Context(), sessionID)
	if err != nil {
		respondError(w, r, err)
		return
	}

	utils.WriteJSON(w, http.StatusOK, result)
}
