package order

import (
	"context"
	"fmt"

	"maison-be/internal/logger"
	"maison-be/internal/metrics"
	"maison-be/internal/payment"
	"maison-be/internal/utils"

	"go.uber.org/zap"
)

// Auditor is the best-effort audit sink. Recording must never abort
// the primary operation; implementations swallow their own failures.
type Auditor interface {
	Record(ctx context.Context, userID int64, action, detail string)
}

// Notifier delivers the order confirmation. Also best-effort.
type Notifier interface {
	SendOrderConfirmation(ctx context.Context, email string, o *Order) error
}

type Service interface {
	// CreateFromSession is the reconciliation transition: paid session
	// in, durable order out, exactly once per session id. Both the
	// webhook push and the client status poll land here.
	CreateFromSession(ctx context.Context, sessionID string) (*ReconcileResult, error)

	GetMyOrders(ctx context.Context, userID int64) ([]*Order, error)
	GetOrders(ctx context.Context, filter ListFilter) ([]*Order, error)
	GetOrderDetail(ctx context.Context, userID, orderID int64, isAdmin bool) (*Order, error)
	UpdateOrderStatus(ctx context.Context, orderID int64, status OrderStatus) error
}

type service struct {
	repo        Repository
	gateway     payment.Gateway
	shippingFee float64
	audit       Auditor
	notifier    Notifier
}

func NewService(
	repo Repository,
	gateway payment.Gateway,
	shippingFee float64,
	audit Auditor,
	notifier Notifier,
) Service {
	return &service{
		repo:        repo,
		gateway:     gateway,
		shippingFee: shippingFee,
		audit:       audit,
		notifier:    notifier,
	}
}

// paymentMethodForSession derives the unique ledger key for a checkout
// session. The unique index on orders.payment_method rides on this.
func paymentMethodForSession(sessionID string) string {
	return "stripe_" + sessionID
}

func (s *service) CreateFromSession(ctx context.Context, sessionID string) (*ReconcileResult, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "CreateFromSession"),
		zap.String("session_id", sessionID),
	)

	// 1. Ask the gateway for the session state.
	session, err := s.gateway.GetSession(ctx, sessionID)
	if err != nil {
		log.Error("failed to retrieve session", zap.Error(err))
		return nil, err
	}

	result := &ReconcileResult{
		PaymentStatus: session.PaymentStatus,
		CustomerEmail: session.CustomerEmail,
	}

	// 2. Unpaid sessions report status only; no transition fires.
	if session.PaymentStatus != payment.PaymentStatusPaid {
		log.Debug("session not paid yet",
			zap.String("payment_status", session.PaymentStatus),
		)
		return result, nil
	}

	// 3. Parse the cart snapshot. A bad snapshot must not leave a
	// partial order behind, so this happens before any write.
	cartItems, err := payment.ParseCartSnapshot(session.Metadata)
	if err != nil {
		log.Error("invalid cart snapshot in session metadata", zap.Error(err))
		return nil, err
	}

	userID, err := resolveUserID(ctx, session.Metadata)
	if err != nil {
		log.Error("cannot resolve order owner", zap.Error(err))
		return nil, err
	}

	// 4. Build the order from snapshotted prices only.
	itemsTotal := 0.0
	items := make([]OrderItem, 0, len(cartItems))
	for _, item := range cartItems {
		itemsTotal += item.Price * float64(item.Quantity)
		items = append(items, OrderItem{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			Price:     item.Price,
		})
	}

	paymentMethod := paymentMethodForSession(sessionID)
	o := &Order{
		UserID:          userID,
		Status:          StatusProcessing,
		TotalAmount:     itemsTotal + s.shippingFee,
		PaymentMethod:   &paymentMethod,
		PaymentStatus:   PaymentCompleted,
		ShippingAddress: shippingAddress(session),
		Items:           items,
	}

	// 5. Atomic insert-or-lose. Inserting the items is the stock
	// decrement: availability is derived from the ledger (§ stock).
	created, err := s.repo.CreateOrderTx(ctx, o)
	if err != nil {
		log.Error("failed to create order", zap.Error(err))
		return nil, err
	}

	if !created {
		// Duplicate delivery: return the order the winner created.
		existing, err := s.repo.GetByPaymentMethod(ctx, paymentMethod)
		if err != nil {
			log.Error("failed to load existing order", zap.Error(err))
			return nil, err
		}
		if existing == nil {
			return nil, fmt.Errorf("order for session %s vanished after conflict", sessionID)
		}

		log.Info("session already reconciled",
			zap.Int64("order_id", existing.ID),
		)
		result.Order = existing
		return result, nil
	}

	metrics.OrdersCreated.Inc()
	log.Info("order created from session",
		zap.Int64("order_id", o.ID),
		zap.Float64("total_amount", o.TotalAmount),
	)

	// Side effects are best-effort and never fail the transition.
	if s.audit != nil {
		s.audit.Record(ctx, userID, "order_created",
			fmt.Sprintf("order %d from session %s", o.ID, sessionID))
	}
	if s.notifier != nil && session.CustomerEmail != "" {
		if err := s.notifier.SendOrderConfirmation(ctx, session.CustomerEmail, o); err != nil {
			log.Warn("failed to send order confirmation", zap.Error(err))
		}
	}

	result.Order = o
	return result, nil
}

func (s *service) GetMyOrders(ctx context.Context, userID int64) ([]*Order, error) {
	return s.repo.List(ctx, ListFilter{UserID: &userID})
}

func (s *service) GetOrders(ctx context.Context, filter ListFilter) ([]*Order, error) {
	return s.repo.List(ctx, filter)
}

func (s *service) GetOrderDetail(ctx context.Context, userID, orderID int64, isAdmin bool) (*Order, error) {
	o, err := s.repo.GetDetail(ctx, orderID)
	if err != nil {
		return nil, err
	}

	if !isAdmin && o.UserID != userID {
		return nil, ErrUnauthorized
	}

	return o, nil
}

func (s *service) UpdateOrderStatus(ctx context.Context, orderID int64, status OrderStatus) error {
	log := logger.FromCtx(ctx).With(
		zap.String("method", "UpdateOrderStatus"),
		zap.Int64("order_id", orderID),
		zap.String("status", string(status)),
	)

	switch status {
	case StatusPending, StatusProcessing, StatusCompleted, StatusCancelled:
	default:
		return fmt.Errorf("%w: %s", ErrInvalidStatus, status)
	}

	existing, err := s.repo.GetDetail(ctx, orderID)
	if err != nil {
		return err
	}

	// Fast path; the repository enforces the same rule inside the
	// UPDATE, so a concurrent transition cannot slip through.
	if existing.Status.IsTerminal() {
		return ErrOrderImmutable
	}

	if err := s.repo.UpdateStatus(ctx, orderID, status); err != nil {
		log.Error("failed to update order status", zap.Error(err))
		return err
	}

	if s.audit != nil {
		if adminID, ok := utils.GetUserIDFromContext(ctx); ok {
			s.audit.Record(ctx, adminID, "order_status_updated",
				fmt.Sprintf("order %d: %s -> %s", orderID, existing.Status, status))
		}
	}

	log.Info("order status updated")
	return nil
}

// resolveUserID prefers the user id stamped into session metadata at
// creation time; the request context covers the poll path when the
// metadata is absent.
func resolveUserID(ctx context.Context, metadata map[string]string) (int64, error) {
	if raw, ok := metadata["user_id"]; ok && raw != "" {
		if id, err := utils.ToInt64(raw); err == nil && id > 0 {
			return id, nil
		}
	}

	if id, ok := utils.GetUserIDFromContext(ctx); ok {
		return id, nil
	}

	return 0, fmt.Errorf("no user associated with session")
}

func shippingAddress(session *payment.Session) *string {
	if session.CustomerDetails != nil && session.CustomerDetails.Address != "" {
		addr := session.CustomerDetails.Address
		return &addr
	}
	if session.CustomerEmail != "" {
		addr := "Email: " + session.CustomerEmail
		return &addr
	}
	return nil
}
