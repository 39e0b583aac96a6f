package payment

import (
	"encoding/json"
	"fmt"
)

// CartItem is one line of the cart snapshot embedded in session
// metadata. Price is captured at session-creation time and is the
// price the eventual order item records, whatever happens to the live
// product in between.
type CartItem struct {
	ProductID     int64   `json:"product_id"`
	Quantity      int     `json:"quantity"`
	Price         float64 `json:"price"`
	SelectedSize  *string `json:"selected_size,omitempty"`
	SelectedColor *string `json:"selected_color,omitempty"`
}

const cartMetadataKey = "cart_data"

func EncodeCartSnapshot(items []CartItem) (string, error) {
	if len(items) == 0 {
		return "", ErrCartEmpty
	}

	data, err := json.Marshal(items)
	if err != nil {
		return "", fmt.Errorf("failed to encode cart snapshot: %w", err)
	}

	return string(data), nil
}

// ParseCartSnapshot decodes and validates the snapshot out of session
// metadata. Anything malformed fails the whole parse; the reconciler
// must not build a partial order from half a cart.
func ParseCartSnapshot(metadata map[string]string) ([]CartItem, error) {
	raw, ok := metadata[cartMetadataKey]
	if !ok || raw == "" {
		return nil, fmt.Errorf("%w: missing %s", ErrInvalidCartSnapshot, cartMetadataKey)
	}

	var items []CartItem
	if err := json.Unmarshal([]byte(raw), &items); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidCartSnapshot, err)
	}

	if len(items) == 0 {
		return nil, fmt.Errorf("%w: empty cart", ErrInvalidCartSnapshot)
	}

	for i, item := range items {
		if item.ProductID <= 0 {
			return nil, fmt.Errorf("%w: bad product id at index %d", ErrInvalidCartSnapshot, i)
		}
		if item.Quantity <= 0 {
			return nil, fmt.Errorf("%w: bad quantity at index %d", ErrInvalidCartSnapshot, i)
		}
		if item.Price < 0 {
			return nil, fmt.Errorf("%w: bad price at index %d", ErrInvalidCartSnapshot, i)
		}
	}

	return items, nil
}
