package order

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
	require.NoError(t, db.AutoMigrate(
		&models.Product{}, &models.CartItem{}, &models.Order{}, &models.OrderItem{},
	))

	return &Service{Repo: &repo.GormRepo{DB: db}}
}

func seedProduct(t *testing.T, s *Service, p models.Product) *models.Product {
	t.Helper()
	require.NoError(t, s.Repo.DB.Create(&p).Error)
	return &p
}

func seedCartItem(t *testing.T, s *Service, item models.CartItem) {
	t.Helper()
	require.NoError(t, s.Repo.DB.Create(&item).Error)
}

var testShipping = ShippingInfo{
	Name:    "Lucía",
	Email:   "lucia@example.com",
	Address: "Calle Mayor 1",
	City:    "Madrid",
}

func TestCreate_EmptyCart(t *testing.T) {
	svc := newTestService(t)

	_, err := svc.Create(context.Background(), 1, testShipping, "card")
	require.ErrorIs(t, err, ErrEmptyCart)
}

func TestCreate_ValidatesShippingInfo(t *testing.T) {
	svc := newTestService(t)

	_, err := svc.Create(context.Background(), 1, ShippingInfo{Name: "Lucía"}, "card")
	require.ErrorIs(t, err, ErrValidation)
}

func TestCreate_SnapshotsAndDecrementsStock(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t)
	a := seedProduct(t, svc, models.Product{Name: "A", Price: 10, Stock: 5, Active: true})
	b := seedProduct(t, svc, models.Product{Name: "B", Price: 30, Stock: 2, Active: true})
	seedCartItem(t, svc, models.CartItem{UserID: 1, ProductID: a.ID, Quantity: 2, UnitPrice: 10})
	seedCartItem(t, svc, models.CartItem{UserID: 1, ProductID: b.ID, Quantity: 1, UnitPrice: 30, Size: "M"})

	order, err := svc.Create(ctx, 1, testShipping, "card")
	require.NoError(t, err)
	require.NotNil(t, order)

	assert.NotEmpty(t, order.Number)
	assert.Equal(t, models.OrderStatusPending, order.Status)
	assert.Equal(t, 50.0, order.Subtotal)
	// 50.00 exactly still pays shipping
	assert.Equal(t, pricing.FlatRate, order.Shipping)
	assert.Equal(t, 50.0+pricing.FlatRate, order.Total)
	require.Len(t, order.Items, 2)
	assert.Equal(t, "M", order.Items[1].Size)

	// stock deducted exactly once per line
	gotA, err := svc.Repo.GetProduct(ctx, a.ID)
	require.NoError(t, err)
	assert.Equal(t, uint(3), gotA.Stock)
	gotB, err := svc.Repo.GetProduct(ctx, b.ID)
	require.NoError(t, err)
	assert.Equal(t, uint(1), gotB.Stock)

	// cart emptied
	items, err := svc.Repo.GetCartItems(ctx, 1)
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestCreate_InsufficientStockRollsBackEverything(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t)
	a := seedProduct(t, svc, models.Product{Name: "A", Price: 10, Stock: 5, Active: true})
	b := seedProduct(t, svc, models.Product{Name: "B", Price: 30, Stock: 0, Active: true})
	seedCartItem(t, svc, models.CartItem{UserID: 1, ProductID: a.ID, Quantity: 2, UnitPrice: 10})
	seedCartItem(t, svc, models.CartItem{UserID: 1, ProductID: b.ID, Quantity: 1, UnitPrice: 30})

	_, err := svc.Create(ctx, 1, testShipping, "card")
	require.ErrorIs(t, err, ErrInsufficientStock)
	assert.Contains(t, err.Error(), "B")

	// A's decrement was rolled back, the cart survives untouched
	gotA, err := svc.Repo.GetProduct(ctx, a.ID)
	require.NoError(t, err)
	assert.Equal(t, uint(5), gotA.Stock)

	items, err := svc.Repo.GetCartItems(ctx, 1)
	require.NoError(t, err)
	assert.Len(t, items, 2)

	var count int64
	require.NoError(t, svc.Repo.DB.Model(&models.Order{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestCreate_RejectsInactiveProduct(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t)
	p := seedProduct(t, svc, models.Product{Name: "retirado", Price: 10, Stock: 5, Active: false})
	seedCartItem(t, svc, models.CartItem{UserID: 1, ProductID: p.ID, Quantity: 1, UnitPrice: 10})

	_, err := svc.Create(ctx, 1, testShipping, "card")
	require.ErrorIs(t, err, ErrProductInactive)
}

func TestOrder_SnapshotIsImmutable(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t)
	p := seedProduct(t, svc, models.Product{Name: "cama", Price: 40, Stock: 5, Active: true})
	seedCartItem(t, svc, models.CartItem{UserID: 1, ProductID: p.ID, Quantity: 1, UnitPrice: 40})

	order, err := svc.Create(ctx, 1, testShipping, "card")
	require.NoError(t, err)

	// later catalog edits must not leak into the order
	p.Price = 99
	require.NoError(t, svc.Repo.DB.Save(p).Error)

	got, err := svc.Repo.GetOrder(ctx, order.ID)
	require.NoError(t, err)
	require.Len(t, got.Items, 1)
	assert.Equal(t, 40.0, got.Items[0].UnitPrice)
	assert.Equal(t, order.Total, got.Total)
}

func createTestOrder(t *testing.T, svc *Service, status models.OrderStatus) *models.Order {
	t.Helper()
	order := &models.Order{
		Number: newOrderNumber(), UserID: 1, Status: status,
		Name: "x", Email: "x@x", Address: "x", City: "x",
	}
	require.NoError(t, svc.Repo.DB.Create(order).Error)
	return order
}

func TestTransition_LegalAndIllegalEdges(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t)

	tests := []struct {
		from models.OrderStatus
		to   models.OrderStatus
		ok   bool
	}{
		{models.OrderStatusPending, models.OrderStatusProcessing, true},
		{models.OrderStatusProcessing, models.OrderStatusShipped, true},
		{models.OrderStatusShipped, models.OrderStatusCompleted, true},
		{models.OrderStatusPending, models.OrderStatusCancelled, true},
		{models.OrderStatusProcessing, models.OrderStatusCancelled, true},
		{models.OrderStatusShipped, models.OrderStatusCancelled, true},
		{models.OrderStatusPending, models.OrderStatusShipped, false},
		{models.OrderStatusPending, models.OrderStatusCompleted, false},
		{models.OrderStatusShipped, models.OrderStatusProcessing, false},
		{models.OrderStatusCompleted, models.OrderStatusCancelled, false},
		{models.OrderStatusCancelled, models.OrderStatusPending, false},
		{models.OrderStatusCompleted, models.OrderStatusPending, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.from)+"_to_"+string(tt.to), func(t *testing.T) {
			order := createTestOrder(t, svc, tt.from)

			got, err := svc.Transition(ctx, order.ID, RoleAdmin, tt.to)
			if tt.ok {
				require.NoError(t, err)
				assert.Equal(t, tt.to, got.Status)
				return
			}
			require.ErrorIs(t, err, ErrIllegalTransition)

			unchanged, err := svc.Repo.GetOrderBare(ctx, order.ID)
			require.NoError(t, err)
			assert.Equal(t, tt.from, unchanged.Status)
		})
	}
}

func TestTransition_RequiresAdmin(t *testing.T) {
	svc := newTestService(t)
	order := createTestOrder(t, svc, models.OrderStatusPending)

	_, err := svc.Transition(context.Background(), order.ID, "user", models.OrderStatusProcessing)
	require.ErrorIs(t, err, ErrForbidden)
}

func TestTransition_UnknownOrder(t *testing.T) {
	svc := newTestService(t)

	_, err := svc.Transition(context.Background(), 999, RoleAdmin, models.OrderStatusProcessing)
	require.ErrorIs(t, err, ErrNotFound)
}

func TestTransition_CancelDoesNotRestock(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t)
	p := seedProduct(t, svc, models.Product{Name: "pienso", Price: 20, Stock: 5, Active: true})
	seedCartItem(t, svc, models.CartItem{UserID: 1, ProductID: p.ID, Quantity: 3, UnitPrice: 20})

	order, err := svc.Create(ctx, 1, testShipping, "card")
	require.NoError(t, err)

	_, err = svc.Transition(ctx, order.ID, RoleAdmin, models.OrderStatusCancelled)
	require.NoError(t, err)

	got, err := svc.Repo.GetProduct(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, uint(2), got.Stock)
}

func TestListAll_Filters(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t)
	createTestOrder(t, svc, models.OrderStatusPending)
	createTestOrder(t, svc, models.OrderStatusShipped)

	orders, total, err := svc.ListAll(ctx, ListRequest{Status: "shipped", Page: 1, Size: 10})
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	require.Len(t, orders, 1)
	assert.Equal(t, models.OrderStatusShipped, orders[0].Status)

	_, _, err = svc.ListAll(ctx, ListRequest{Status: "bogus"})
	require.ErrorIs(t, err, ErrValidation)
}
