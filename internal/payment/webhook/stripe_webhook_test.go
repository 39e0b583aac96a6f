package webhook

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"maison-be/internal/order"
	"maison-be/internal/payment"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type MockOrderService struct {
	mock.Mock
}

func (m *MockOrderService) CreateFromSession(ctx context.Context, sessionID string) (*order.ReconcileResult, error) {
	args := m.Called(ctx, sessionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.ReconcileResult), args.Error(1)
}

func (m *MockOrderService) GetMyOrders(ctx context.Context, userID int64) ([]*order.Order, error) {
	args := m.Called(ctx, userID)
	return nil, args.Error(1)
}

func (m *MockOrderService) GetOrders(ctx context.Context, filter order.ListFilter) ([]*order.Order, error) {
	args := m.Called(ctx, filter)
	return nil, args.Error(1)
}

func (m *MockOrderService) GetOrderDetail(ctx context.Context, userID, orderID int64, isAdmin bool) (*order.Order, error) {
	args := m.Called(ctx, userID, orderID, isAdmin)
	return nil, args.Error(1)
}

func (m *MockOrderService) UpdateOrderStatus(ctx context.Context, orderID int64, status order.OrderStatus) error {
	args := m.Called(ctx, orderID, status)
	return args.Error(0)
}

type MockGateway struct {
	mock.Mock
}

func (m *MockGateway) CreateCheckoutSession(ctx context.Context, params payment.CreateSessionParams) (*payment.Session, error) {
	args := m.Called(ctx, params)
	return nil, args.Error(1)
}

func (m *MockGateway) GetSession(ctx context.Context, sessionID string) (*payment.Session, error) {
	args := m.Called(ctx, sessionID)
	return nil, args.Error(1)
}

func (m *MockGateway) VerifyWebhookSignature(r *http.Request) error {
	args := m.Called(r)
	return args.Error(0)
}

func eventBody(eventType, sessionID string) string {
	return fmt.Sprintf(`{"type":%q,"data":{"object":{"id":%q}}}`, eventType, sessionID)
}

func TestWebhookHandler(t *testing.T) {
	t.Run("SessionCompletedReconciles", func(t *testing.T) {
		svc := new(MockOrderService)
		gw := new(MockGateway)
		h := NewWebhookHandler(svc, gw)

		gw.On("VerifyWebhookSignature", mock.Anything).Return(nil)
		svc.On("CreateFromSession", mock.Anything, "cs_1").
			Return(&order.ReconcileResult{PaymentStatus: "paid"}, nil)

		rec := httptest.NewRecorder()
		req := httptest.NewRequest("POST", "/api/orders/webhook",
			strings.NewReader(eventBody("checkout.session.completed", "cs_1")))

		h.WebhookHandler(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		svc.AssertExpectations(t)
	})

	t.Run("InvalidSignature", func(t *testing.T) {
		svc := new(MockOrderService)
		gw := new(MockGateway)
		h := NewWebhookHandler(svc, gw)

		gw.On("VerifyWebhookSignature", mock.Anything).Return(errors.New("bad signature"))

		rec := httptest.NewRecorder()
		req := httptest.NewRequest("POST", "/api/orders/webhook",
			strings.NewReader(eventBody("checkout.session.completed", "cs_1")))

		h.WebhookHandler(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		svc.AssertNotCalled(t, "CreateFromSession")
	})

	t.Run("OtherEventsAcknowledged", func(t *testing.T) {
		svc := new(MockOrderService)
		gw := new(MockGateway)
		h := NewWebhookHandler(svc, gw)

		gw.On("VerifyWebhookSignature", mock.Anything).Return(nil)

		rec := httptest.NewRecorder()
		req := httptest.NewRequest("POST", "/api/orders/webhook",
			strings.NewReader(eventBody("invoice.paid", "in_1")))

		h.WebhookHandler(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		svc.AssertNotCalled(t, "CreateFromSession")
	})

	t.Run("BadJSON", func(t *testing.T) {
		svc := new(MockOrderService)
		gw := new(MockGateway)
		h := NewWebhookHandler(svc, gw)

		gw.On("VerifyWebhookSignature", mock.Anything).Return(nil)

		rec := httptest.NewRecorder()
		req := httptest.NewRequest("POST", "/api/orders/webhook", strings.NewReader("{nope"))

		h.WebhookHandler(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("InvalidSnapshotAcknowledgedToStopRetries", func(t *testing.T) {
		svc := new(MockOrderService)
		gw := new(MockGateway)
		h := NewWebhookHandler(svc, gw)

		gw.On("VerifyWebhookSignature", mock.Anything).Return(nil)
		svc.On("CreateFromSession", mock.Anything, "cs_1").
			Return(nil, fmt.Errorf("%w: bad quantity", payment.ErrInvalidCartSnapshot))

		rec := httptest.NewRecorder()
		req := httptest.NewRequest("POST", "/api/orders/webhook",
			strings.NewReader(eventBody("checkout.session.completed", "cs_1")))

		h.WebhookHandler(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("TransientFailureReturns500ForRetry", func(t *testing.T) {
		svc := new(MockOrderService)
		gw := new(MockGateway)
		h := NewWebhookHandler(svc, gw)

		gw.On("VerifyWebhookSignature", mock.Anything).Return(nil)
		svc.On("CreateFromSession", mock.Anything, "cs_1").
			Return(nil, errors.New("db down"))

		rec := httptest.NewRecorder()
		req := httptest.NewRequest("POST", "/api/orders/webhook",
			strings.NewReader(eventBody("checkout.session.completed", "cs_1")))

		h.WebhookHandler(rec, req)

		assert.Equal(t, http.StatusInternalServerError, rec.Code)
	})
}
