package transport

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"maison-be/internal/comment"
	"maison-be/internal/order"
	"maison-be/internal/payment"
	"maison-be/internal/product"
	"maison-be/internal/user"

	"github.com/stretchr/testify/assert"
)

func TestRespondError(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want int
	}{
		{"ProductNotFound", product.ErrProductNotFound, http.StatusNotFound},
		{"OrderNotFound", order.ErrOrderNotFound, http.StatusNotFound},
		{"UserNotFound", user.ErrUserNotFound, http.StatusNotFound},
		{"InvalidVariant", fmt.Errorf("%w: size required", product.ErrInvalidVariant), http.StatusBadRequest},
		{"InvalidProduct", fmt.Errorf("%w: name cannot be empty", product.ErrInvalidProduct), http.StatusBadRequest},
		{"CartEmpty", payment.ErrCartEmpty, http.StatusBadRequest},
		{"InvalidCartItem", fmt.Errorf("%w: quantity must be greater than zero", payment.ErrInvalidCartItem), http.StatusBadRequest},
		{"StockExhausted", fmt.Errorf("%w for Linen Shirt", payment.ErrStockExhausted), http.StatusBadRequest},
		{"InvalidSnapshot", payment.ErrInvalidCartSnapshot, http.StatusBadRequest},
		{"InvalidStatus", order.ErrInvalidStatus, http.StatusBadRequest},
		{"EmailExists", user.ErrEmailExists, http.StatusBadRequest},
		{"WeakPassword", fmt.Errorf("%w: password must be at least 8 characters", user.ErrInvalidInput), http.StatusBadRequest},
		{"CommentNotFound", comment.ErrCommentNotFound, http.StatusNotFound},
		{"BadRating", fmt.Errorf("%w: rating must be between 1 and 5", comment.ErrInvalidComment), http.StatusBadRequest},
		{"InvalidCredentials", user.ErrInvalidCredentials, http.StatusUnauthorized},
		{"NotOwner", order.ErrUnauthorized, http.StatusForbidden},
		{"NotCommentOwner", comment.ErrNotCommentOwner, http.StatusForbidden},
		{"TerminalOrder", order.ErrOrderImmutable, http.StatusConflict},
		{"GatewayDown", fmt.Errorf("%w: timeout", payment.ErrGatewayUnavailable), http.StatusBadGateway},
		{"Unknown", errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			req := httptest.NewRequest("GET", "/", nil)

			respondError(rec, req, tc.err)

			assert.Equal(t, tc.want, rec.Code)
			assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
		})
	}

	t.Run("UnknownErrorBodyIsGeneric", func(t *testing.T) {
		rec := httptest.NewRecorder()
		req := httptest.NewRequest("GET", "/", nil)

		respondError(rec, req, errors.New("secret internal detail"))

		assert.NotContains(t, rec.Body.String(), "secret internal detail")
	})
}

func TestLimitParam(t *testing.T) {
	req := httptest.NewRequest("GET", "/?limit=12", nil)
	assert.Equal(t, 12, limitParam(req, 8))

	req = httptest.NewRequest("GET", "/", nil)
	assert.Equal(t, 8, limitParam(req, 8))

	req = httptest.NewRequest("GET", "/?limit=-1", nil)
	assert.Equal(t, 8, limitParam(req, 8))

	req = httptest.NewRequest("GET", "/?limit=abc", nil)
	assert.Equal(t, 8, limitParam(req, 8))
}
