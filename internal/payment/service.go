package payment

import (
	"context"
	"fmt"
	"strconv"

	"maison-be/internal/logger"
	"maison-be/internal/product"
	"maison-be/internal/utils"

	"go.uber.org/zap"
)

// Prices are stored in IDR; the gateway charges in USD cents.
const (
	idrPerUSD           = 15800
	minUnitCents        = 50
	maxDescriptionRunes = 100
	shippingName        = "Shipping"
	shippingSummary     = "Standard shipping"
)

type ProductReader interface {
	GetByID(ctx context.Context, id int64) (*product.Product, error)
}

type StockReader interface {
	Available(ctx context.Context, productID int64) (int, error)
}

type CheckoutItemInput struct {
	ProductID     int64   `json:"product_id"`
	Quantity      int     `json:"quantity"`
	SelectedSize  *string `json:"selected_size,omitempty"`
	SelectedColor *string `json:"selected_color,omitempty"`
}

type CheckoutInput struct {
	Items []CheckoutItemInput `json:"items"`
}

type CheckoutResult struct {
	SessionID   string `json:"session_id"`
	CheckoutURL string `json:"checkout_url"`
}

type Service interface {
	CreateCheckoutSession(ctx context.Context, input CheckoutInput) (*CheckoutResult, error)
}

type service struct {
	gateway     Gateway
	products    ProductReader
	stock       StockReader
	shippingFee float64
	successURL  string
	cancelURL   string
}

func NewService(
	gateway Gateway,
	products ProductReader,
	stock StockReader,
	shippingFee float64,
	frontendURL string,
) Service {
	return &service{
		gateway:     gateway,
		products:    products,
		stock:       stock,
		shippingFee: shippingFee,
		successURL:  frontendURL + "/checkout/success?session_id={CHECKOUT_SESSION_ID}",
		cancelURL:   frontendURL + "/checkout/cancel",
	}
}

// CreateCheckoutSession validates the cart against current prices and
// availability, then opens a gateway session carrying the priced cart
// snapshot in its metadata. The availability check here is advisory:
// it stops obviously unfulfillable carts from reaching the gateway,
// but the ledger write that actually commits stock happens at
// reconciliation time.
func (s *service) CreateCheckoutSession(ctx context.Context, input CheckoutInput) (*CheckoutResult, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "CreateCheckoutSession"),
		zap.Int("item_count", len(input.Items)),
	)

	if len(input.Items) == 0 {
		return nil, ErrCartEmpty
	}

	userID, _ := utils.GetUserIDFromContext(ctx)
	userEmail := utils.GetUserEmailFromContext(ctx)

	log.Info("create checkout session started")

	lineItems := make([]LineItem, 0, len(input.Items)+1)
	snapshot := make([]CartItem, 0, len(input.Items))

	for i, item := range input.Items {
		logItem := log.With(
			zap.Int("index", i),
			zap.Int64("product_id", item.ProductID),
			zap.Int("quantity", item.Quantity),
		)

		if item.Quantity <= 0 {
			logItem.Warn("invalid quantity")
			return nil, fmt.Errorf("%w: quantity must be greater than zero", ErrInvalidCartItem)
		}

		p, err := s.products.GetByID(ctx, item.ProductID)
		if err != nil {
			logItem.Error("failed to load product", zap.Error(err))
			return nil, err
		}

		available, err := s.stock.Available(ctx, p.ID)
		if err != nil {
			logItem.Error("failed to check availability", zap.Error(err))
			return nil, err
		}

		if item.Quantity > available {
			logItem.Warn("insufficient stock",
				zap.Int("available", available),
			)
			return nil, fmt.Errorf("%w for %s", ErrStockExhausted, p.Name)
		}

		// Price is snapshotted here; later product edits never touch
		// this session or the order it becomes.
		price := p.EffectivePrice()

		name := p.Name
		if item.SelectedSize != nil && *item.SelectedSize != "" {
			name += " - Size: " + *item.SelectedSize
		}
		if item.SelectedColor != nil && *item.SelectedColor != "" {
			name += " - Color: " + *item.SelectedColor
		}

		description := truncateDescription(p.Description, maxDescriptionRunes)

		lineItems = append(lineItems, LineItem{
			Name:        name,
			Description: description,
			UnitAmount:  toUnitCents(price),
			Quantity:    int64(item.Quantity),
		})

		snapshot = append(snapshot, CartItem{
			ProductID:     p.ID,
			Quantity:      item.Quantity,
			Price:         price,
			SelectedSize:  item.SelectedSize,
			SelectedColor: item.SelectedColor,
		})

		logItem.Debug("item priced",
			zap.String("product_name", p.Name),
			zap.Float64("price", price),
		)
	}

	lineItems = append(lineItems, LineItem{
		Name:        shippingName,
		Description: shippingSummary,
		UnitAmount:  toUnitCents(s.shippingFee),
		Quantity:    1,
	})

	cartData, err := EncodeCartSnapshot(snapshot)
	if err != nil {
		return nil, err
	}

	session, err := s.gateway.CreateCheckoutSession(ctx, CreateSessionParams{
		LineItems:     lineItems,
		CustomerEmail: userEmail,
		SuccessURL:    s.successURL,
		CancelURL:     s.cancelURL,
		Metadata: map[string]string{
			"user_id":       strconv.FormatInt(userID, 10),
			"user_email":    userEmail,
			cartMetadataKey: cartData,
		},
	})
	if err != nil {
		log.Error("gateway session creation failed", zap.Error(err))
		return nil, err
	}

	log.Info("checkout session created",
		zap.String("session_id", session.ID),
	)

	return &CheckoutResult{
		SessionID:   session.ID,
		CheckoutURL: session.URL,
	}, nil
}

// truncateDescription cuts on a rune boundary so a multi-byte
// character is never split mid-sequence.
func truncateDescription(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max])
}

func toUnitCents(priceIDR float64) int64 {
	cents := int64(priceIDR / idrPerUSD * 100)
	if cents < minUnitCents {
		cents = minUnitCents
	}
	return cents
}
