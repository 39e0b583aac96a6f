package order

import "errors"

var (
	ErrOrderNotFound  = errors.New("order not found")
	ErrOrderImmutable = errors.New("order is in a terminal status")
	ErrInvalidStatus  = errors.New("invalid order status")
	ErrUnauthorized   = errors.New("unauthorized")
)
