package pricing

import (
	"github.com/patitas-shop/backend/internal/models"
)

// Shipping policy: flat rate unless the subtotal strictly exceeds the
// free-shipping threshold. 50.00 exactly still pays shipping.
const (
	FlatRate          = 8.99
	FreeShippingAbove = 50.0
)

// Summary is the derived view of a cart. ItemCount counts line items,
// not total units; the storefront has always shown it that way.
type Summary struct {
	Subtotal  float64 `json:"subtotal"`
	Shipping  float64 `json:"shipping"`
	Total     float64 `json:"total"`
	ItemCount int     `json:"itemCount"`
}

func ShippingFor(subtotal float64) float64 {
	if subtotal > FreeShippingAbove {
		return 0
	}
	return FlatRate
}

func Summarize(items []models.CartItem) Summary {
	var subtotal float64
	for _, it := range items {
		subtotal += it.UnitPrice * float64(it.Quantity)
	}

	if len(items) == 0 {
		return Summary{}
	}

	shipping := ShippingFor(subtotal)
	return Summary{
		Subtotal:  subtotal,
		Shipping:  shipping,
		Total:     subtotal + shipping,
		ItemCount: len(items),
	}
}
