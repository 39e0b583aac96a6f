package payment

import "errors"

var (
	ErrCartEmpty           = errors.New("cart is empty")
	ErrInvalidCartItem     = errors.New("invalid cart item")
	ErrStockExhausted      = errors.New("insufficient stock")
	ErrInvalidCartSnapshot = errors.New("invalid cart snapshot")
	ErrGatewayUnavailable  = errors.New("payment gateway unavailable")
)
