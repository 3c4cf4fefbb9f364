package cart

import (
	"context"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/patitas-shop/backend/internal/models"
	"github.com/patitas-shop/backend/internal/repo"
	"github.com/patitas-shop/backend/internal/service/pricing"
)

func newTestService(t *testing.T) *Service {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.Product{}, &models.CartItem{}))

	return &Service{Repo: &repo.GormRepo{DB: db}}
}

func createProduct(t *testing.T, s *Service, p models.Product) *models.Product {
	t.Helper()
	require.NoError(t, s.Repo.DB.Create(&p).Error)
	return &p
}

func TestAddItem_MergesByVariantKey(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t)
	p := createProduct(t, svc, models.Product{
		Name: "collar", Price: 12.50, Stock: 10, Active: true,
		Sizes: []string{"S", "M"}, Colors: []string{"rojo", "azul"},
	})

	for i := 0; i < 3; i++ {
		_, err := svc.AddItem(ctx, 1, p.ID, 1, "M", "rojo")
		require.NoError(t, err)
	}
	// a different variant of the same product is its own line
	_, err := svc.AddItem(ctx, 1, p.ID, 2, "S", "rojo")
	require.NoError(t, err)

	cart, err := svc.GetCart(ctx, 1)
	require.NoError(t, err)
	require.Len(t, cart.Items, 2)
	assert.Equal(t, uint(3), cart.Items[0].Quantity)
	assert.Equal(t, "M", cart.Items[0].Size)
	assert.Equal(t, uint(2), cart.Items[1].Quantity)
}

func TestAddItem_RejectsOverStock(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t)
	p := createProduct(t, svc, models.Product{Name: "pienso", Price: 30, Stock: 5, Active: true})

	_, err := svc.AddItem(ctx, 1, p.ID, 4, "", "")
	require.NoError(t, err)

	// combined quantity would exceed stock, existing line stays intact
	_, err = svc.AddItem(ctx, 1, p.ID, 2, "", "")
	require.ErrorIs(t, err, ErrInsufficientStock)

	cart, err := svc.GetCart(ctx, 1)
	require.NoError(t, err)
	require.Len(t, cart.Items, 1)
	assert.Equal(t, uint(4), cart.Items[0].Quantity)
}

func TestAddItem_Validation(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t)
	p := createProduct(t, svc, models.Product{
		Name: "arnés", Price: 18, Stock: 5, Active: true,
		Sizes: []string{"S"}, Colors: []string{"verde"},
	})
	inactive := createProduct(t, svc, models.Product{Name: "retirado", Price: 9, Stock: 5, Active: false})

	tests := []struct {
		name      string
		productID uint
		qty       uint
		size      string
		color     string
		want      error
	}{
		{name: "missing product", productID: 999, qty: 1, want: ErrProductNotFound},
		{name: "inactive product", productID: inactive.ID, qty: 1, want: ErrProductInactive},
		{name: "unknown size", productID: p.ID, qty: 1, size: "XXL", want: ErrInvalidSize},
		{name: "unknown color", productID: p.ID, qty: 1, size: "S", color: "rosa", want: ErrInvalidColor},
		{name: "zero quantity", productID: p.ID, qty: 0, want: ErrValidation},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.AddItem(ctx, 1, tt.productID, tt.qty, tt.size, tt.color)
			require.ErrorIs(t, err, tt.want)
		})
	}

	cart, err := svc.GetCart(ctx, 1)
	require.NoError(t, err)
	assert.Empty(t, cart.Items)
}

func TestUpdateQuantity(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t)
	p := createProduct(t, svc, models.Product{Name: "cama", Price: 45, Stock: 3, Active: true})

	item, err := svc.AddItem(ctx, 1, p.ID, 1, "", "")
	require.NoError(t, err)

	updated, err := svc.UpdateQuantity(ctx, 1, item.ID, 3)
	require.NoError(t, err)
	assert.Equal(t, uint(3), updated.Quantity)

	_, err = svc.UpdateQuantity(ctx, 1, item.ID, 4)
	require.ErrorIs(t, err, ErrInsufficientStock)

	_, err = svc.UpdateQuantity(ctx, 1, item.ID, 0)
	require.ErrorIs(t, err, ErrValidation)

	// another user's cart never sees the item
	_, err = svc.UpdateQuantity(ctx, 2, item.ID, 1)
	require.ErrorIs(t, err, ErrNotFound)
}

func TestRemoveAndClear(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t)
	p := createProduct(t, svc, models.Product{Name: "juguete", Price: 7, Stock: 10, Active: true})

	item, err := svc.AddItem(ctx, 1, p.ID, 2, "", "")
	require.NoError(t, err)

	require.ErrorIs(t, svc.RemoveItem(ctx, 2, item.ID), ErrNotFound)
	require.NoError(t, svc.RemoveItem(ctx, 1, item.ID))
	require.ErrorIs(t, svc.RemoveItem(ctx, 1, item.ID), ErrNotFound)

	_, err = svc.AddItem(ctx, 1, p.ID, 1, "", "")
	require.NoError(t, err)
	require.NoError(t, svc.Clear(ctx, 1))
	// clearing an already empty cart is a no-op
	require.NoError(t, svc.Clear(ctx, 1))

	cart, err := svc.GetCart(ctx, 1)
	require.NoError(t, err)
	assert.Empty(t, cart.Items)
}

func TestGetCart_MixedStockScenario(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t)
	a := createProduct(t, svc, models.Product{Name: "A", Price: 10, Stock: 3, Active: true})
	b := createProduct(t, svc, models.Product{Name: "B", Price: 20, Stock: 0, Active: true})

	_, err := svc.AddItem(ctx, 1, a.ID, 2, "", "")
	require.NoError(t, err)
	_, err = svc.AddItem(ctx, 1, b.ID, 1, "", "")
	require.ErrorIs(t, err, ErrInsufficientStock)

	cart, err := svc.GetCart(ctx, 1)
	require.NoError(t, err)
	require.Len(t, cart.Items, 1)
	assert.Equal(t, a.ID, cart.Items[0].ProductID)
	assert.Equal(t, 1, cart.Summary.ItemCount)
	assert.Equal(t, 20.0, cart.Summary.Subtotal)
	assert.Equal(t, pricing.FlatRate, cart.Summary.Shipping)
}
