package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/patitas-shop/backend/internal/events"
	"github.com/patitas-shop/backend/internal/logging"
	"github.com/patitas-shop/backend/internal/middleware/auth"
	ordersvc "github.com/patitas-shop/backend/internal/service/order"
)

type OrderHandler struct {
	Svc      *ordersvc.Service
	Producer *events.Producer
}

func orderError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, ordersvc.ErrEmptyCart):
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "El carrito está vacío"})
	case errors.Is(err, ordersvc.ErrInsufficientStock):
		msg := "Stock insuficiente"
		var stockErr *ordersvc.InsufficientStockError
		if errors.As(err, &stockErr) {
			msg += ": " + stockErr.Product
		}
		return c.JSON(http.StatusBadRequest, echo.Map{"error": msg})
	case errors.Is(err, ordersvc.ErrProductNotFound):
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Producto no encontrado"})
	case errors.Is(err, ordersvc.ErrProductInactive):
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Producto no disponible"})
	case errors.Is(err, ordersvc.ErrIllegalTransition):
		return c.JSON(http.StatusConflict, echo.Map{"error": "Transición de estado no permitida"})
	case errors.Is(err, ordersvc.ErrForbidden):
		return c.JSON(http.StatusForbidden, echo.Map{"error": "No tienes permisos suficientes"})
	case errors.Is(err, ordersvc.ErrValidation):
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	case errors.Is(err, ordersvc.ErrNotFound):
		return c.JSON(http.StatusNotFound, echo.Map{"error": "Pedido no encontrado"})
	}
	logging.FromContext(c.Request().Context()).Error("order error", "error", err)
	return c.JSON(http.StatusInternalServerError, echo.Map{"error": "error interno"})
}

func (h *OrderHandler) CreateOrder(c echo.Context) error {
	userID := auth.UserID(c)

	var req struct {
		Shipping      ordersvc.ShippingInfo `json:"shipping"`
		PaymentMethod string                `json:"payment_method"`
	}
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "cuerpo no válido"})
	}

	order, err := h.Svc.Create(c.Request().Context(), userID, req.Shipping, req.PaymentMethod)
	if err != nil {
		return orderError(c, err)
	}

	publish(c, h.Producer, events.TopicOrderEvents, fmt.Sprint(userID), map[string]any{
		"type":    "order_created",
		"userID":  userID,
		"orderID": order.ID,
		"number":  order.Number,
		"total":   order.Total,
	})
	return c.JSON(http.StatusCreated, order)
}

func (h *OrderHandler) ListOwnOrders(c echo.Context) error {
	userID := auth.UserID(c)

	orders, err := h.Svc.ListForUser(c.Request().Context(), userID)
	if err != nil {
		return orderError(c, err)
	}
	return c.JSON(http.StatusOK, orders)
}

func (h *OrderHandler) ListAllOrders(c echo.Context) error {
	page := parseIntDefault(c.QueryParam("page"), 1)
	size := parseIntDefault(c.QueryParam("size"), 10)

	req := ordersvc.ListRequest{
		Status: c.QueryParam("status"),
		Search: c.QueryParam("search"),
		Page:   page,
		Size:   size,
	}
	if v := c.QueryParam("from"); v != "" {
		if t, err := time.Parse("2006-01-02", v); err == nil {
			req.From = t
		}
	}
	if v := c.QueryParam("to"); v != "" {
		if t, err := time.Parse("2006-01-02", v); err == nil {
			req.To = t
		}
	}

	orders, total, err := h.Svc.ListAll(c.Request().Context(), req)
	if err != nil {
		return orderError(c, err)
	}

	return c.JSON(http.StatusOK, map[string]any{
		"data": orders,
		"meta": map[string]any{
			"page":        page,
			"size":        size,
			"total":       total,
			"total_pages": (total + int64(size) - 1) / int64(size),
		},
	})
}

func (h *OrderHandler) UpdateStatus(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}

	var req struct {
		Status string `json:"status"`
	}
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "cuerpo no válido"})
	}

	status, ok := ordersvc.ParseStatus(req.Status)
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Estado no válido"})
	}

	order, err := h.Svc.Transition(c.Request().Context(), id, auth.Role(c), status)
	if err != nil {
		return orderError(c, err)
	}

	publish(c, h.Producer, events.TopicOrderEvents, fmt.Sprint(order.UserID), map[string]any{
		"type":    "order_status_changed",
		"orderID": order.ID,
		"status":  order.Status,
	})
	return c.JSON(http.StatusOK, order)
}
