package product

import "errors"

var (
	ErrProductNotFound = errors.New("product not found")
	ErrInvalidProduct  = errors.New("invalid product input")
	ErrInvalidVariant  = errors.New("invalid variant input")
)
