package product

// EffectivePrice returns the price after applying the product's own
// discount terms. Voucher codes are redeemed separately and do not
// affect the listed price.
func (p *Product) EffectivePrice() float64 {
	price := p.Price

	if p.Discount == nil || !p.Discount.Enabled || p.Discount.Type == nil || p.Discount.Value == nil {
		return price
	}

	switch *p.Discount.Type {
	case DiscountPercentage:
		price = price * (1 - *p.Discount.Value/100)
	case DiscountFixed:
		price = price - *p.Discount.Value
		if price < 0 {
			price = 0
		}
	}

	return price
}
