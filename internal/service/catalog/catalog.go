package catalog

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/patitas-shop/backend/internal/models"
	"github.com/patitas-shop/backend/internal/repo"
	"github.com/patitas-shop/backend/internal/util"
)

var (
	ErrValidation = errors.New("validation") // 400
	ErrNotFound   = errors.New("not found")  // 404
)

type Service struct {
	Repo *repo.GormRepo
}

type ProductPage struct {
	Items []models.Product
	Page  int
	Size  int
	Total int64
}

func (s *Service) GetProduct(ctx context.Context, id uint) (*models.Product, error) {
	p, err := s.Repo.GetProduct(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	return p, err
}

func (s *Service) ListProducts(ctx context.Context, page, size int) (*ProductPage, error) {
	offset, limit := util.Calculate(page, size)
	items, total, err := s.Repo.ListProducts(ctx, offset, limit)
	if err != nil {
		return nil, err
	}
	return &ProductPage{Items: items, Page: page, Size: limit, Total: total}, nil
}

type ProductInput struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Price       float64  `json:"price"`
	Stock       uint     `json:"stock"`
	Active      *bool    `json:"active"`
	Sizes       []string `json:"sizes"`
	Colors      []string `json:"colors"`
	ImageURL    string   `json:"image_url"`
	CategoryID  uint     `json:"category_id"`
}

func (in ProductInput) validate() error {
	if in.Name == "" {
		return fmt.Errorf("%w: name required", ErrValidation)
	}
	if in.Price < 0 {
		return fmt.Errorf("%w: price must be >= 0", ErrValidation)
	}
	return nil
}

func (s *Service) CreateProduct(ctx context.Context, in ProductInput) (*models.Product, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}

	active := true
	if in.Active != nil {
		active = *in.Active
	}
	p := &models.Product{
		Name:        in.Name,
		Description: in.Description,
		Price:       in.Price,
		Stock:       in.Stock,
		Active:      active,
		Sizes:       in.Sizes,
		Colors:      in.Colors,
		ImageURL:    in.ImageURL,
		CategoryID:  in.CategoryID,
	}
	if err := s.Repo.CreateProduct(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *Service) UpdateProduct(ctx context.Context, id uint, in ProductInput) (*models.Product, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}

	p, err := s.Repo.GetProduct(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	p.Name = in.Name
	p.Description = in.Description
	p.Price = in.Price
	p.Stock = in.Stock
	if in.Active != nil {
		p.Active = *in.Active
	}
	p.Sizes = in.Sizes
	p.Colors = in.Colors
	p.ImageURL = in.ImageURL
	p.CategoryID = in.CategoryID

	if err := s.Repo.SaveProduct(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *Service) DeleteProduct(ctx context.Context, id uint) error {
	return s.Repo.DeleteProduct(ctx, id)
}

func (s *Service) ListCategories(ctx context.Context) ([]models.Category, error) {
	return s.Repo.ListCategories(ctx)
}

func (s *Service) CreateCategory(ctx context.Context, name, slug string) (*models.Category, error) {
	if name == "" || slug == "" {
		return nil, fmt.Errorf("%w: name and slug required", ErrValidation)
	}
	cat := &models.Category{Name: name, Slug: slug}
	if err := s.Repo.CreateCategory(ctx, cat); err != nil {
		return nil, err
	}
	return cat, nil
}

func (s *Service) UpdateCategory(ctx context.Context, id uint, name, slug string) (*models.Category, error) {
	cat, err := s.Repo.GetCategory(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if name != "" {
		cat.Name = name
	}
	if slug != "" {
		cat.Slug = slug
	}
	if err := s.Repo.SaveCategory(ctx, cat); err != nil {
		return nil, err
	}
	return cat, nil
}

func (s *Service) DeleteCategory(ctx context.Context, id uint) error {
	return s.Repo.DeleteCategory(ctx, id)
}
