package repo

import (
	"context"
	"time"

	"github.com/patitas-shop/backend/internal/models"
)

// OrderFilter narrows the admin order listing. Zero values mean "any".
type OrderFilter struct {
	UserID uint
	Status models.OrderStatus
	Search string
	From   time.Time
	To     time.Time
	Offset int
	Limit  int
}

func (r *GormRepo) CreateOrder(ctx context.Context, order *models.Order) error {
	return r.DB.WithContext(ctx).Create(order).Error
}

func (r *GormRepo) GetOrder(ctx context.Context, id uint) (*models.Order, error) {
	var order models.Order
	if err := r.DB.WithContext(ctx).Preload("Items").First(&order, id).Error; err != nil {
		return nil, err
	}
	return &order, nil
}

// GetOrderBare loads the order without its items; status transitions
// never touch the item snapshot.
func (r *GormRepo) GetOrderBare(ctx context.Context, id uint) (*models.Order, error) {
	var order models.Order
	if err := r.DB.WithContext(ctx).First(&order, id).Error; err != nil {
		return nil, err
	}
	return &order, nil
}

// UpdateOrderStatus mutates status and updated_at only. Everything else
// about a persisted order is immutable.
func (r *GormRepo) UpdateOrderStatus(ctx context.Context, id uint, status models.OrderStatus) error {
	return r.DB.WithContext(ctx).Model(&models.Order{}).
		Where("id = ?", id).
		Update("status", status).Error
}

func (r *GormRepo) ListOrdersByUser(ctx context.Context, userID uint) ([]models.Order, error) {
	var orders []models.Order
	if err := r.DB.WithContext(ctx).Preload("Items").
		Where("user_id = ?", userID).
		Order("created_at DESC").Find(&orders).Error; err != nil {
		return nil, err
	}
	return orders, nil
}

func (r *GormRepo) ListOrders(ctx context.Context, f OrderFilter) ([]models.Order, int64, error) {
	q := r.DB.WithContext(ctx).Model(&models.Order{})

	if f.UserID != 0 {
		q = q.Where("user_id = ?", f.UserID)
	}
	if f.Status != "" {
		q = q.Where("status = ?", f.Status)
	}
	if f.Search != "" {
		q = q.Where("number LIKE ?", "%"+f.Search+"%")
	}
	if !f.From.IsZero() {
		q = q.Where("created_at >= ?", f.From)
	}
	if !f.To.IsZero() {
		q = q.Where("created_at <= ?", f.To)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var orders []models.Order
	if err := q.Preload("Items").
		Order("created_at DESC").Offset(f.Offset).Limit(f.Limit).
		Find(&orders).Error; err != nil {
		return nil, 0, err
	}
	return orders, total, nil
}
