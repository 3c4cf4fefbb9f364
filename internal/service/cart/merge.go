package cart

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/patitas-shop/backend/internal/models"
	"github.com/patitas-shop/backend/internal/repo"
)

// LocalItem is one line of the browser-held anonymous cart sent at login.
type LocalItem struct {
	ProductID uint   `json:"product_id"`
	Quantity  uint   `json:"quantity"`
	Size      string `json:"size,omitempty"`
	Color     string `json:"color,omitempty"`
}

type MergeFailure struct {
	ProductID uint   `json:"product_id"`
	Reason    string `json:"reason"`
}

type MergeReport struct {
	Merged   int            `json:"merged"`
	Skipped  int            `json:"skipped"`
	Failures []MergeFailure `json:"failures,omitempty"`
}

// Merge reconciles an anonymous cart into the user's server cart by
// summing quantities per (product, size, color). Missing products are
// skipped without failing the batch, and stock bounds are deliberately
// not fatal here. Merging the same local cart twice doubles quantities;
// callers must clear the local store after a successful merge.
func (s *Service) Merge(ctx context.Context, userID uint, local []LocalItem) (*MergeReport, error) {
	report := &MergeReport{}

	for _, li := range local {
		p, err := s.Repo.GetProduct(ctx, li.ProductID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				report.Skipped++
				continue
			}
			return nil, err
		}

		if !p.Active {
			report.Failures = append(report.Failures, MergeFailure{
				ProductID: li.ProductID,
				Reason:    ErrProductInactive.Error(),
			})
			continue
		}

		if err := ValidateVariant(p, li.Size, li.Color); err != nil {
			report.Failures = append(report.Failures, MergeFailure{
				ProductID: li.ProductID,
				Reason:    err.Error(),
			})
			continue
		}

		qty := li.Quantity
		if qty < 1 {
			qty = 1
		}

		err = s.Repo.Transaction(ctx, func(tx *repo.GormRepo) error {
			item, err := tx.FindLineItem(ctx, userID, li.ProductID, li.Size, li.Color)
			if err != nil {
				if !errors.Is(err, gorm.ErrRecordNotFound) {
					return err
				}
				return tx.CreateCartItem(ctx, &models.CartItem{
					UserID:    userID,
					ProductID: li.ProductID,
					Size:      li.Size,
					Color:     li.Color,
					Quantity:  qty,
					UnitPrice: p.Price,
					Stock:     p.Stock,
				})
			}

			item.Quantity += qty
			item.UnitPrice = p.Price
			item.Stock = p.Stock
			return tx.SaveCartItem(ctx, item)
		})
		if err != nil {
			return nil, err
		}
		report.Merged++
	}

	return report, nil
}
