package order

import "time"

type OrderStatus string

const (
	StatusPending    OrderStatus = "pending"
	StatusProcessing OrderStatus = "processing"
	StatusCompleted  OrderStatus = "completed"
	StatusCancelled  OrderStatus = "cancelled"
)

// IsTerminal reports whether the status admits no further transitions.
func (s OrderStatus) IsTerminal() bool {
	return s == StatusCompleted || s == StatusCancelled
}

type PaymentStatus string

const (
	PaymentPending   PaymentStatus = "pending"
	PaymentCompleted PaymentStatus = "completed"
	PaymentFailed    PaymentStatus = "failed"
)

type Order struct {
	ID              int64         `json:"id"`
	UserID          int64         `json:"user_id"`
	Status          OrderStatus   `json:"status"`
	TotalAmount     float64       `json:"total_amount"`
	PaymentMethod   *string       `json:"payment_method,omitempty"`
	PaymentStatus   PaymentStatus `json:"payment_status"`
	ShippingAddress *string       `json:"shipping_address,omitempty"`
	Notes           *string       `json:"notes,omitempty"`
	CreatedAt       time.Time     `json:"created_at"`
	UpdatedAt       *time.Time    `json:"updated_at,omitempty"`
	Items           []OrderItem   `json:"items"`
}

// OrderItem records quantity and price at time of purchase. The price
// never tracks later product edits, and the quantity is what the
// reconciliation engine subtracts from initial stock.
type OrderItem struct {
	ID          int64   `json:"id"`
	OrderID     int64   `json:"order_id"`
	ProductID   int64   `json:"product_id"`
	ProductName string  `json:"product_name,omitempty"`
	Quantity    int     `json:"quantity"`
	Price       float64 `json:"price"`
}

type ListFilter struct {
	UserID *int64
	Status *OrderStatus
	Limit  int
	Page   int
}

// ReconcileResult is what a reconciliation trigger reports back: the
// gateway's payment status plus the order, when one exists for the
// session.
type ReconcileResult struct {
	PaymentStatus string `json:"status"`
	CustomerEmail string `json:"customer_email,omitempty"`
	Order         *Order `json:"order,omitempty"`
}
