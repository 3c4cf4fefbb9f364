package order

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/patitas-shop/backend/internal/models"
)

func TestParseStatus(t *testing.T) {
	t.Parallel()

	got, ok := ParseStatus("processing")
	assert.True(t, ok)
	assert.Equal(t, models.OrderStatusProcessing, got)

	// legacy alias from the storefront UI
	got, ok = ParseStatus("delivered")
	assert.True(t, ok)
	assert.Equal(t, models.OrderStatusCompleted, got)

	_, ok = ParseStatus("returned")
	assert.False(t, ok)
}

func TestCanTransition_TerminalStatesHaveNoExits(t *testing.T) {
	t.Parallel()

	all := []models.OrderStatus{
		models.OrderStatusPending, models.OrderStatusProcessing,
		models.OrderStatusShipped, models.OrderStatusCompleted,
		models.OrderStatusCancelled,
	}
	for _, to := range all {
		assert.False(t, CanTransition(models.OrderStatusCompleted, to))
		assert.False(t, CanTransition(models.OrderStatusCancelled, to))
	}
}
