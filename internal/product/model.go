package product

import "time"

type DiscountType string

const (
	DiscountPercentage DiscountType = "percentage"
	DiscountFixed      DiscountType = "fixed"
)

type Discount struct {
	Enabled bool          `json:"enabled"`
	Type    *DiscountType `json:"type,omitempty"`
	Value   *float64      `json:"value,omitempty"`
}

type Voucher struct {
	Enabled      bool          `json:"enabled"`
	Code         *string       `json:"code,omitempty"`
	DiscountType *DiscountType `json:"discount_type,omitempty"`
	Value        *float64      `json:"discount_value,omitempty"`
	ExpiryDate   *time.Time    `json:"expiry_date,omitempty"`
}

// Variant identifies a (color, size) combination of a product. Under
// the shared-pool stock model the stored quantity is the admin-declared
// capacity for the combination; the customer-facing read path never
// treats it as authoritative.
type Variant struct {
	ID        int64   `json:"id"`
	ProductID int64   `json:"product_id"`
	Color     *string `json:"color,omitempty"`
	Size      string  `json:"size"`
	Quantity  int     `json:"quantity"`
}

type Product struct {
	ID          int64      `json:"id"`
	Name        string     `json:"name"`
	Description string     `json:"description"`
	Price       float64    `json:"price"`
	Category    string     `json:"category"`
	Stock       int        `json:"stock"`
	Image       *string    `json:"image,omitempty"`
	Discount    *Discount  `json:"discount,omitempty"`
	Voucher     *Voucher   `json:"voucher,omitempty"`
	Variants    []Variant  `json:"variants"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   *time.Time `json:"updated_at,omitempty"`
}

// VariantInput is a caller-submitted variant row, pre-consolidation.
type VariantInput struct {
	Color    *string `json:"color,omitempty"`
	Size     string  `json:"size"`
	Quantity int     `json:"quantity"`
}

type NewProductInput struct {
	Name        string         `json:"name"`
	Description string         `json:"description"`
	Price       float64        `json:"price"`
	Category    string         `json:"category"`
	Stock       int            `json:"stock"`
	Image       *string        `json:"image,omitempty"`
	Discount    *Discount      `json:"discount,omitempty"`
	Voucher     *Voucher       `json:"voucher,omitempty"`
	Variants    []VariantInput `json:"variants"`
}

type UpdateProductInput struct {
	Name        *string        `json:"name,omitempty"`
	Description *string        `json:"description,omitempty"`
	Price       *float64       `json:"price,omitempty"`
	Category    *string        `json:"category,omitempty"`
	Stock       *int           `json:"stock,omitempty"`
	Image       *string        `json:"image,omitempty"`
	Discount    *Discount      `json:"discount,omitempty"`
	Voucher     *Voucher       `json:"voucher,omitempty"`
	Variants    []VariantInput `json:"variants,omitempty"`
}

type ListOptions struct {
	Category string
	Search   string
	Skip     int
	Limit    int
}

// VariantView is a variant as rendered for a specific caller role.
type VariantView struct {
	ID        int64   `json:"id"`
	Color     *string `json:"color,omitempty"`
	Size      string  `json:"size"`
	Quantity  int     `json:"quantity"`
	Available bool    `json:"available"`
}

// ProductView is the role-projected response shape.
type ProductView struct {
	ID             int64         `json:"id"`
	Name           string        `json:"name"`
	Description    string        `json:"description"`
	Price          float64       `json:"price"`
	EffectivePrice float64       `json:"effective_price"`
	Category       string        `json:"category"`
	Image          *string       `json:"image,omitempty"`
	Discount       *Discount     `json:"discount,omitempty"`
	Voucher        *Voucher      `json:"voucher,omitempty"`
	AvailableStock int           `json:"available_stock"`
	InStock        bool          `json:"in_stock"`
	Variants       []VariantView `json:"variants"`
	CreatedAt      time.Time     `json:"created_at"`
}
