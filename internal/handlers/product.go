package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/elastic/go-elasticsearch/v9"
	"github.com/labstack/echo/v4"

	"github.com/patitas-shop/backend/internal/es"
	"github.com/patitas-shop/backend/internal/events"
	"github.com/patitas-shop/backend/internal/logging"
	"github.com/patitas-shop/backend/internal/models"
	catalogsvc "github.com/patitas-shop/backend/internal/service/catalog"
)

type ProductHandler struct {
	Svc      *catalogsvc.Service
	Producer *events.Producer
	ES       *elasticsearch.Client
	Index    string
}

func catalogError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, catalogsvc.ErrValidation):
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	case errors.Is(err, catalogsvc.ErrNotFound):
		return c.JSON(http.StatusNotFound, echo.Map{"error": "Producto no encontrado"})
	}
	logging.FromContext(c.Request().Context()).Error("catalog error", "error", err)
	return c.JSON(http.StatusInternalServerError, echo.Map{"error": "error interno"})
}

func (h *ProductHandler) index(c echo.Context, p *models.Product) {
	if err := es.IndexProduct(c.Request().Context(), h.ES, h.Index, p); err != nil {
		logging.FromContext(c.Request().Context()).Error("es index error", "productID", p.ID, "error", err)
	}
}

func (h *ProductHandler) GetProduct(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}

	p, err := h.Svc.GetProduct(c.Request().Context(), id)
	if err != nil {
		return catalogError(c, err)
	}
	return c.JSON(http.StatusOK, p)
}

func (h *ProductHandler) GetProducts(c echo.Context) error {
	page := parseIntDefault(c.QueryParam("page"), 1)
	size := parseIntDefault(c.QueryParam("size"), 10)

	res, err := h.Svc.ListProducts(c.Request().Context(), page, size)
	if err != nil {
		return catalogError(c, err)
	}

	return c.JSON(http.StatusOK, map[string]any{
		"data": res.Items,
		"meta": map[string]any{
			"page":        res.Page,
			"size":        res.Size,
			"total":       res.Total,
			"total_pages": (res.Total + int64(res.Size) - 1) / int64(res.Size),
		},
	})
}

func (h *ProductHandler) CreateProduct(c echo.Context) error {
	var req catalogsvc.ProductInput
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "cuerpo no válido"})
	}

	p, err := h.Svc.CreateProduct(c.Request().Context(), req)
	if err != nil {
		return catalogError(c, err)
	}

	h.index(c, p)
	publish(c, h.Producer, events.TopicProductEvents, fmt.Sprint(p.ID), map[string]any{
		"type":      "product_created",
		"productID": p.ID,
		"name":      p.Name,
	})
	return c.JSON(http.StatusCreated, p)
}

func (h *ProductHandler) UpdateProduct(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}

	var req catalogsvc.ProductInput
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "cuerpo no válido"})
	}

	p, err := h.Svc.UpdateProduct(c.Request().Context(), id, req)
	if err != nil {
		return catalogError(c, err)
	}

	h.index(c, p)
	publish(c, h.Producer, events.TopicProductEvents, fmt.Sprint(p.ID), map[string]any{
		"type":      "product_updated",
		"productID": p.ID,
		"name":      p.Name,
	})
	return c.JSON(http.StatusOK, p)
}

func (h *ProductHandler) DeleteProduct(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}

	if err := h.Svc.DeleteProduct(c.Request().Context(), id); err != nil {
		return catalogError(c, err)
	}

	if err := es.DeleteProduct(c.Request().Context(), h.ES, h.Index, id); err != nil {
		logging.FromContext(c.Request().Context()).Error("es delete error", "productID", id, "error", err)
	}
	publish(c, h.Producer, events.TopicProductEvents, fmt.Sprint(id), map[string]any{
		"type":      "product_deleted",
		"productID": id,
	})
	return c.NoContent(http.StatusNoContent)
}
