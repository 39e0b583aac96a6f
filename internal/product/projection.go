package product

import "maison-be/internal/utils"

// ProjectionStrategy renders a product for a caller role. The strategy
// is selected once per request from the trusted role value; rendering
// loops never branch on the role again.
//
// The available argument is the product-wide reconciled stock. It is
// computed once by the caller and reused for both the product-level
// field and every variant row.
type ProjectionStrategy interface {
	Project(p *Product, available int) *ProductView
}

// StrategyForRole maps the authenticated role to a projection.
// Everyone but admin gets the customer view.
func StrategyForRole(role string) ProjectionStrategy {
	if role == utils.RoleAdmin {
		return AdminView{}
	}
	return CustomerView{}
}

// AdminView exposes the stored per-variant quantities as-is, which is
// what the admin editing screens round-trip.
type AdminView struct{}

func (AdminView) Project(p *Product, available int) *ProductView {
	view := baseView(p, available)

	for _, v := range p.Variants {
		view.Variants = append(view.Variants, VariantView{
			ID:        v.ID,
			Color:     v.Color,
			Size:      v.Size,
			Quantity:  v.Quantity,
			Available: v.Quantity > 0,
		})
	}

	return view
}

// CustomerView broadcasts the shared pool: every variant row reports
// the same product-wide availability instead of its stored quantity.
type CustomerView struct{}

func (CustomerView) Project(p *Product, available int) *ProductView {
	view := baseView(p, available)

	for _, v := range p.Variants {
		view.Variants = append(view.Variants, VariantView{
			ID:        v.ID,
			Color:     v.Color,
			Size:      v.Size,
			Quantity:  available,
			Available: available > 0,
		})
	}

	return view
}

func baseView(p *Product, available int) *ProductView {
	return &ProductView{
		ID:             p.ID,
		Name:           p.Name,
		Description:    p.Description,
		Price:          p.Price,
		EffectivePrice: p.EffectivePrice(),
		Category:       p.Category,
		Image:          p.Image,
		Discount:       p.Discount,
		Voucher:        p.Voucher,
		AvailableStock: available,
		InStock:        available > 0,
		Variants:       []VariantView{},
		CreatedAt:      p.CreatedAt,
	}
}
