package pricing

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/patitas-shop/backend/internal/models"
)

func TestShippingFor_ThresholdIsExclusive(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		subtotal float64
		want     float64
	}{
		{name: "below threshold", subtotal: 20, want: FlatRate},
		{name: "exactly at threshold still pays", subtotal: 50.00, want: FlatRate},
		{name: "just above threshold is free", subtotal: 50.01, want: 0},
		{name: "well above threshold", subtotal: 120, want: 0},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, ShippingFor(tt.subtotal))
		})
	}
}

func TestSummarize(t *testing.T) {
	t.Parallel()

	items := []models.CartItem{
		{Quantity: 2, UnitPrice: 10.50},
		{Quantity: 3, UnitPrice: 5.00},
	}

	s := Summarize(items)
	assert.Equal(t, 36.0, s.Subtotal)
	assert.Equal(t, FlatRate, s.Shipping)
	assert.Equal(t, 36.0+FlatRate, s.Total)
	// distinct line items, not total units
	assert.Equal(t, 2, s.ItemCount)
}

func TestSummarize_Empty(t *testing.T) {
	t.Parallel()

	s := Summarize(nil)
	assert.Zero(t, s.Subtotal)
	assert.Zero(t, s.Shipping)
	assert.Zero(t, s.Total)
	assert.Zero(t, s.ItemCount)
}
