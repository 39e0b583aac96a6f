package product

import "maison-be/internal/utils"

type variantKey struct {
	color string
	size  string
}

// ConsolidateVariants merges caller-submitted variant rows so that at
// most one row remains per (color, size) key. Color is normalized
// first: empty and whitespace-only values fold into the same
// "no color" key. Duplicate keys sum their quantities. Output order is
// the order of first appearance, so the result is deterministic
// regardless of how duplicates are interleaved.
func ConsolidateVariants(input []VariantInput) []VariantInput {
	if len(input) == 0 {
		return nil
	}

	index := make(map[variantKey]int, len(input))
	out := make([]VariantInput, 0, len(input))

	for _, v := range input {
		color := utils.NormalizeColor(v.Color)

		key := variantKey{size: v.Size}
		if color != nil {
			key.color = *color
		}

		if i, seen := index[key]; seen {
			out[i].Quantity += v.Quantity
			continue
		}

		index[key] = len(out)
		out = append(out, VariantInput{
			Color:    color,
			Size:     v.Size,
			Quantity: v.Quantity,
		})
	}

	return out
}
