package order

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/patitas-shop/backend/internal/models"
	"github.com/patitas-shop/backend/internal/repo"
	"github.com/patitas-shop/backend/internal/service/pricing"
	"github.com/patitas-shop/backend/internal/util"
)

var (
	ErrValidation        = errors.New("validation") // 400
	ErrNotFound          = errors.New("not found")  // 404
	ErrForbidden         = errors.New("forbidden")  // 403
	ErrEmptyCart         = errors.New("el carrito está vacío")
	ErrProductNotFound   = errors.New("producto no encontrado")
	ErrInsufficientStock = errors.New("stock insuficiente")
	ErrProductInactive   = errors.New("producto no disponible")
	ErrIllegalTransition = errors.New("transición de estado no permitida") // 409
)

const RoleAdmin = "admin"

// InsufficientStockError names the product that could not cover the
// requested quantity. It unwraps to ErrInsufficientStock.
type InsufficientStockError struct {
	Product string
}

func (e *InsufficientStockError) Error() string {
	return ErrInsufficientStock.Error() + ": " + e.Product
}

func (e *InsufficientStockError) Unwrap() error { return ErrInsufficientStock }

type Service struct {
	Repo *repo.GormRepo
}

type ShippingInfo struct {
	Name       string `json:"name"`
	Email      string `json:"email"`
	Phone      string `json:"phone"`
	Address    string `json:"address"`
	City       string `json:"city"`
	PostalCode string `json:"postal_code"`
}

func (s ShippingInfo) validate() error {
	for field, v := range map[string]string{
		"name":    s.Name,
		"email":   s.Email,
		"address": s.Address,
		"city":    s.City,
	} {
		if strings.TrimSpace(v) == "" {
			return fmt.Errorf("%w: %s required", ErrValidation, field)
		}
	}
	return nil
}

func newOrderNumber() string {
	return "PTS-" + strings.ToUpper(uuid.NewString()[:8])
}

// Create converts the user's cart into an order. Every product is
// re-validated inside one transaction and stock is taken with a
// conditional decrement, so either the whole order commits with stock
// fully deducted or nothing changes. The cart is emptied on success.
func (s *Service) Create(ctx context.Context, userID uint, info ShippingInfo, paymentMethod string) (*models.Order, error) {
	if err := info.validate(); err != nil {
		return nil, err
	}

	var order *models.Order
	err := s.Repo.Transaction(ctx, func(tx *repo.GormRepo) error {
		items, err := tx.GetCartItems(ctx, userID)
		if err != nil {
			return err
		}
		if len(items) == 0 {
			return ErrEmptyCart
		}

		var subtotal float64
		orderItems := make([]models.OrderItem, 0, len(items))
		for _, it := range items {
			p, err := tx.GetProduct(ctx, it.ProductID)
			if err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return fmt.Errorf("%w: %d", ErrProductNotFound, it.ProductID)
				}
				return err
			}
			if !p.Active {
				return fmt.Errorf("%w: %s", ErrProductInactive, p.Name)
			}

			ok, err := tx.DecrementStock(ctx, p.ID, it.Quantity)
			if err != nil {
				return err
			}
			if !ok {
				return &InsufficientStockError{Product: p.Name}
			}

			lineTotal := p.Price * float64(it.Quantity)
			subtotal += lineTotal
			orderItems = append(orderItems, models.OrderItem{
				ProductID:   p.ID,
				ProductName: p.Name,
				UnitPrice:   p.Price,
				Quantity:    it.Quantity,
				Size:        it.Size,
				Color:       it.Color,
				LineTotal:   lineTotal,
			})
		}

		shipping := pricing.ShippingFor(subtotal)
		order = &models.Order{
			Number:        newOrderNumber(),
			UserID:        userID,
			Status:        models.OrderStatusPending,
			Subtotal:      subtotal,
			Shipping:      shipping,
			Total:         subtotal + shipping,
			Name:          info.Name,
			Email:         info.Email,
			Phone:         info.Phone,
			Address:       info.Address,
			City:          info.City,
			PostalCode:    info.PostalCode,
			PaymentMethod: paymentMethod,
			Items:         orderItems,
		}
		if err := tx.CreateOrder(ctx, order); err != nil {
			return err
		}

		return tx.DeleteAllCartItems(ctx, userID)
	})
	if err != nil {
		return nil, err
	}
	return order, nil
}

// Transition moves an order along the status graph. Only admins may
// transition, and only along a legal edge; anything else leaves the
// order untouched. Cancelling does not restock.
func (s *Service) Transition(ctx context.Context, orderID uint, actingRole string, newStatus models.OrderStatus) (*models.Order, error) {
	if actingRole != RoleAdmin {
		return nil, ErrForbidden
	}

	var out *models.Order
	err := s.Repo.Transaction(ctx, func(tx *repo.GormRepo) error {
		order, err := tx.GetOrderBare(ctx, orderID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}

		if !CanTransition(order.Status, newStatus) {
			return fmt.Errorf("%w: %s -> %s", ErrIllegalTransition, order.Status, newStatus)
		}

		if err := tx.UpdateOrderStatus(ctx, orderID, newStatus); err != nil {
			return err
		}

		out, err = tx.GetOrder(ctx, orderID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (s *Service) ListForUser(ctx context.Context, userID uint) ([]models.Order, error) {
	return s.Repo.ListOrdersByUser(ctx, userID)
}

type ListRequest struct {
	Status string
	Search string
	From   time.Time
	To     time.Time
	Page   int
	Size   int
}

// ListAll is the admin listing behind /orders/admin/all.
func (s *Service) ListAll(ctx context.Context, req ListRequest) ([]models.Order, int64, error) {
	var status models.OrderStatus
	if req.Status != "" {
		parsed, ok := ParseStatus(req.Status)
		if !ok {
			return nil, 0, fmt.Errorf("%w: unknown status %q", ErrValidation, req.Status)
		}
		status = parsed
	}

	offset, limit := util.Calculate(req.Page, req.Size)
	return s.Repo.ListOrders(ctx, repo.OrderFilter{
		Status: status,
		Search: req.Search,
		From:   req.From,
		To:     req.To,
		Offset: offset,
		Limit:  limit,
	})
}
