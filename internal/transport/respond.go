package transport

import (
	"errors"
	"net/http"

	"maison-be/internal/comment"
	"maison-be/internal/logger"
	"maison-be/internal/order"
	"maison-be/internal/payment"
	"maison-be/internal/product"
	"maison-be/internal/user"
	"maison-be/internal/utils"

	"go.uber.org/zap"
)

// respondError maps domain sentinels to HTTP statuses. Anything
// unmapped is a 500 with a generic body; the real error goes to the
// log, not the client.
func respondError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, product.ErrProductNotFound),
		errors.Is(err, order.ErrOrderNotFound),
		errors.Is(err, comment.ErrCommentNotFound),
		errors.Is(err, user.ErrUserNotFound):
		utils.WriteJSONError(w, err.Error(), http.StatusNotFound)

	case errors.Is(err, product.ErrInvalidProduct),
		errors.Is(err, product.ErrInvalidVariant),
		errors.Is(err, payment.ErrCartEmpty),
		errors.Is(err, payment.ErrInvalidCartItem),
		errors.Is(err, payment.ErrStockExhausted),
		errors.Is(err, payment.ErrInvalidCartSnapshot),
		errors.Is(err, order.ErrInvalidStatus),
		errors.Is(err, comment.ErrInvalidComment),
		errors.Is(err, user.ErrEmailExists),
		errors.Is(err, user.ErrInvalidInput):
		utils.WriteJSONError(w, err.Error(), http.StatusBadRequest)

	case errors.Is(err, user.ErrInvalidCredentials):
		utils.WriteJSONError(w, err.Error(), http.StatusUnauthorized)

	case errors.Is(err, order.ErrUnauthorized),
		errors.Is(err, comment.ErrNotCommentOwner):
		utils.WriteJSONError(w, "forbidden", http.StatusForbidden)

	case errors.Is(err, order.ErrOrderImmutable):
		utils.WriteJSONError(w, err.Error(), http.StatusConflict)

	case errors.Is(err, payment.ErrGatewayUnavailable):
		utils.WriteJSONError(w, "payment gateway unavailable", http.StatusBadGateway)

	default:
		logger.FromCtx(r.Context()).Error("unhandled error", zap.Error(err))
		utils.WriteJSONError(w, "internal server error", http.StatusInternalServerError)
	}
}
