package handlers

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/patitas-shop/backend/internal/models"
	"github.com/patitas-shop/backend/internal/repo"
	ordersvc "github.com/patitas-shop/backend/internal/service/order"
)

func TestCreateOrder_NamesOutOfStockProduct(t *testing.T) {
	db := initTestDB(t)
	h := &OrderHandler{Svc: &ordersvc.Service{Repo: &repo.GormRepo{DB: db}}}
	require.NoError(t, db.Create(&models.Product{
		Name: "transportín", Price: 60, Stock: 0, Active: true,
	}).Error)
	require.NoError(t, db.Create(&models.CartItem{
		UserID: 1, ProductID: 1, Quantity: 1, UnitPrice: 60,
	}).Error)

	body := map[string]any{
		"shipping": map[string]any{
			"name": "Lucía", "email": "lucia@example.com",
			"address": "Calle Mayor 1", "city": "Madrid",
		},
		"payment_method": "card",
	}
	rec, c := jsonRequest(t, http.MethodPost, "/orders", body)
	asUser(c, 1)

	require.NoError(t, h.CreateOrder(c))
	require.Equal(t, http.StatusBadRequest, rec.Code)

	var resp map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "Stock insuficiente: transportín", resp["error"])
}
