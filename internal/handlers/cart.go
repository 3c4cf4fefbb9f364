package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/patitas-shop/backend/internal/events"
	"github.com/patitas-shop/backend/internal/logging"
	"github.com/patitas-shop/backend/internal/middleware/auth"
	"github.com/patitas-shop/backend/internal/models"
	cartsvc "github.com/patitas-shop/backend/internal/service/cart"
)

type CartHandler struct {
	Svc      *cartsvc.Service
	Producer *events.Producer
}

func cartError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, cartsvc.ErrInsufficientStock):
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Stock insuficiente"})
	case errors.Is(err, cartsvc.ErrProductNotFound):
		return c.JSON(http.StatusNotFound, echo.Map{"error": "Producto no encontrado"})
	case errors.Is(err, cartsvc.ErrInvalidSize):
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Talla no válida"})
	case errors.Is(err, cartsvc.ErrInvalidColor):
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Color no válido"})
	case errors.Is(err, cartsvc.ErrProductInactive):
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Producto no disponible"})
	case errors.Is(err, cartsvc.ErrValidation):
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	case errors.Is(err, cartsvc.ErrNotFound):
		return c.JSON(http.StatusNotFound, echo.Map{"error": "Artículo no encontrado"})
	}
	logging.FromContext(c.Request().Context()).Error("cart error", "error", err)
	return c.JSON(http.StatusInternalServerError, echo.Map{"error": "error interno"})
}

// GetCart runs behind OptionalLogin: anonymous callers get an empty
// cart and keep using their browser-local one.
func (h *CartHandler) GetCart(c echo.Context) error {
	userID := auth.UserID(c)
	if userID == 0 {
		return c.JSON(http.StatusOK, cartsvc.Cart{Items: []models.CartItem{}})
	}

	cart, err := h.Svc.GetCart(c.Request().Context(), userID)
	if err != nil {
		return cartError(c, err)
	}
	return c.JSON(http.StatusOK, cart)
}

func (h *CartHandler) AddToCart(c echo.Context) error {
	userID := auth.UserID(c)

	var req struct {
		ProductID uint   `json:"product_id"`
		Quantity  uint   `json:"quantity"`
		Size      string `json:"size"`
		Color     string `json:"color"`
	}
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "cuerpo no válido"})
	}

	item, err := h.Svc.AddItem(c.Request().Context(), userID, req.ProductID, req.Quantity, req.Size, req.Color)
	if err != nil {
		return cartError(c, err)
	}

	publish(c, h.Producer, events.TopicCartEvents, fmt.Sprint(userID), map[string]any{
		"type":      "cart_item_added",
		"userID":    userID,
		"productID": req.ProductID,
		"quantity":  item.Quantity,
		"size":      item.Size,
		"color":     item.Color,
	})
	return c.JSON(http.StatusOK, echo.Map{"message": "Producto añadido al carrito", "item": item})
}

func (h *CartHandler) UpdateQuantity(c echo.Context) error {
	userID := auth.UserID(c)

	id, err := pathID(c)
	if err != nil {
		return err
	}

	var req struct {
		Quantity uint `json:"quantity"`
	}
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "cuerpo no válido"})
	}

	item, err := h.Svc.UpdateQuantity(c.Request().Context(), userID, id, req.Quantity)
	if err != nil {
		return cartError(c, err)
	}

	publish(c, h.Producer, events.TopicCartEvents, fmt.Sprint(userID), map[string]any{
		"type":     "cart_item_updated",
		"userID":   userID,
		"itemID":   id,
		"quantity": item.Quantity,
	})
	return c.JSON(http.StatusOK, echo.Map{"message": "Cantidad actualizada", "item": item})
}

func (h *CartHandler) RemoveItem(c echo.Context) error {
	userID := auth.UserID(c)

	id, err := pathID(c)
	if err != nil {
		return err
	}

	if err := h.Svc.RemoveItem(c.Request().Context(), userID, id); err != nil {
		return cartError(c, err)
	}

	publish(c, h.Producer, events.TopicCartEvents, fmt.Sprint(userID), map[string]any{
		"type":   "cart_item_removed",
		"userID": userID,
		"itemID": id,
	})
	return c.JSON(http.StatusOK, echo.Map{"message": "Artículo eliminado"})
}

func (h *CartHandler) ClearCart(c echo.Context) error {
	userID := auth.UserID(c)

	if err := h.Svc.Clear(c.Request().Context(), userID); err != nil {
		return cartError(c, err)
	}

	publish(c, h.Producer, events.TopicCartEvents, fmt.Sprint(userID), map[string]any{
		"type":   "cart_cleared",
		"userID": userID,
	})
	return c.JSON(http.StatusOK, echo.Map{"message": "Carrito vaciado"})
}

// SyncCart merges the browser-local cart into the server cart at login.
// The client must clear its local store on success, otherwise a second
// sync doubles quantities.
func (h *CartHandler) SyncCart(c echo.Context) error {
	userID := auth.UserID(c)

	var req struct {
		Items []cartsvc.LocalItem `json:"items"`
	}
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "cuerpo no válido"})
	}

	report, err := h.Svc.Merge(c.Request().Context(), userID, req.Items)
	if err != nil {
		return cartError(c, err)
	}

	publish(c, h.Producer, events.TopicCartEvents, fmt.Sprint(userID), map[string]any{
		"type":    "cart_synced",
		"userID":  userID,
		"merged":  report.Merged,
		"skipped": report.Skipped,
	})
	return c.JSON(http.StatusOK, echo.Map{"message": "Carrito sincronizado", "report": report})
}
