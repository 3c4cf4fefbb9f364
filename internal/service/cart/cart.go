package cart

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/patitas-shop/backend/internal/models"
	"github.com/patitas-shop/backend/internal/repo"
	"github.com/patitas-shop/backend/internal/service/pricing"
)

var (
	ErrValidation        = errors.New("validation")  // 400
	ErrNotFound          = errors.New("not found")   // 404
	ErrProductNotFound   = errors.New("producto no encontrado")
	ErrProductInactive   = errors.New("producto no disponible")
	ErrInvalidSize       = errors.New("talla no válida")
	ErrInvalidColor      = errors.New("color no válido")
	ErrInsufficientStock = errors.New("stock insuficiente")
)

type Service struct {
	Repo *repo.GormRepo
}

type Cart struct {
	Items   []models.CartItem `json:"items"`
	Summary pricing.Summary   `json:"summary"`
}

// ValidateVariant checks a requested size/color against the product's
// declared sets. Absent variants are always fine.
func ValidateVariant(p *models.Product, size, color string) error {
	if !p.HasSize(size) {
		return fmt.Errorf("%w: %q", ErrInvalidSize, size)
	}
	if !p.HasColor(color) {
		return fmt.Errorf("%w: %q", ErrInvalidColor, color)
	}
	return nil
}

func (s *Service) GetCart(ctx context.Context, userID uint) (*Cart, error) {
	items, err := s.Repo.GetCartItems(ctx, userID)
	if err != nil {
		return nil, err
	}
	if items == nil {
		items = []models.CartItem{}
	}
	return &Cart{Items: items, Summary: pricing.Summarize(items)}, nil
}

// AddItem merges the request into the line matching (user, product,
// size, color), summing quantities. The combined quantity may never
// exceed the product's current stock; on failure the existing line is
// left untouched.
func (s *Service) AddItem(ctx context.Context, userID, productID uint, quantity uint, size, color string) (*models.CartItem, error) {
	if quantity < 1 {
		return nil, fmt.Errorf("%w: quantity must be >= 1", ErrValidation)
	}

	p, err := s.Repo.GetProduct(ctx, productID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, err
	}
	if !p.Active {
		return nil, fmt.Errorf("%w: %s", ErrProductInactive, p.Name)
	}
	if err := ValidateVariant(p, size, color); err != nil {
		return nil, err
	}

	var out *models.CartItem
	err = s.Repo.Transaction(ctx, func(tx *repo.GormRepo) error {
		item, err := tx.FindLineItem(ctx, userID, productID, size, color)
		if err != nil {
			if !errors.Is(err, gorm.ErrRecordNotFound) {
				return err
			}
			if quantity > p.Stock {
				return fmt.Errorf("%w: %s", ErrInsufficientStock, p.Name)
			}
			item = &models.CartItem{
				UserID:    userID,
				ProductID: productID,
				Size:      size,
				Color:     color,
				Quantity:  quantity,
				UnitPrice: p.Price,
				Stock:     p.Stock,
			}
			if err := tx.CreateCartItem(ctx, item); err != nil {
				return err
			}
			out = item
			return nil
		}

		if item.Quantity+quantity > p.Stock {
			return fmt.Errorf("%w: %s", ErrInsufficientStock, p.Name)
		}
		item.Quantity += quantity
		item.UnitPrice = p.Price
		item.Stock = p.Stock
		if err := tx.SaveCartItem(ctx, item); err != nil {
			return err
		}
		out = item
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (s *Service) UpdateQuantity(ctx context.Context, userID, itemID uint, quantity uint) (*models.CartItem, error) {
	if quantity < 1 {
		return nil, fmt.Errorf("%w: quantity must be >= 1, use remove instead", ErrValidation)
	}

	item, err := s.Repo.GetCartItem(ctx, userID, itemID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	p, err := s.Repo.GetProduct(ctx, item.ProductID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, err
	}
	if quantity > p.Stock {
		return nil, fmt.Errorf("%w: %s", ErrInsufficientStock, p.Name)
	}

	item.Quantity = quantity
	item.UnitPrice = p.Price
	item.Stock = p.Stock
	if err := s.Repo.SaveCartItem(ctx, item); err != nil {
		return nil, err
	}
	return item, nil
}

func (s *Service) RemoveItem(ctx context.Context, userID, itemID uint) error {
	item, err := s.Repo.GetCartItem(ctx, userID, itemID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}
	return s.Repo.DeleteCartItem(ctx, item)
}

func (s *Service) Clear(ctx context.Context, userID uint) error {
	return s.Repo.DeleteAllCartItems(ctx, userID)
}
