package order

import (
	"github.com/patitas-shop/backend/internal/models"
)

// Legal status graph. completed and cancelled are terminal; cancelled
// is reachable from every non-terminal state.
var nextStatuses = map[models.OrderStatus][]models.OrderStatus{
	models.OrderStatusPending:    {models.OrderStatusProcessing, models.OrderStatusCancelled},
	models.OrderStatusProcessing: {models.OrderStatusShipped, models.OrderStatusCancelled},
	models.OrderStatusShipped:    {models.OrderStatusCompleted, models.OrderStatusCancelled},
}

func CanTransition(from, to models.OrderStatus) bool {
	for _, s := range nextStatuses[from] {
		if s == to {
			return true
		}
	}
	return false
}

// ParseStatus normalizes a requested status string. The storefront UI
// historically sent "delivered" for the final state; it maps to
// completed.
func ParseStatus(s string) (models.OrderStatus, bool) {
	switch models.OrderStatus(s) {
	case models.OrderStatusPending, models.OrderStatusProcessing,
		models.OrderStatusShipped, models.OrderStatusCompleted,
		models.OrderStatusCancelled:
		return models.OrderStatus(s), true
	}
	if s == "delivered" {
		return models.OrderStatusCompleted, true
	}
	return "", false
}
