package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	catalogsvc "github.com/patitas-shop/backend/internal/service/catalog"
)

type CategoryHandler struct {
	Svc *catalogsvc.Service
}

func (h *CategoryHandler) ListCategories(c echo.Context) error {
	cats, err := h.Svc.ListCategories(c.Request().Context())
	if err != nil {
		return catalogError(c, err)
	}
	return c.JSON(http.StatusOK, cats)
}

func (h *CategoryHandler) CreateCategory(c echo.Context) error {
	var req struct {
		Name string `json:"name"`
		Slug string `json:"slug"`
	}
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "cuerpo no válido"})
	}

	cat, err := h.Svc.CreateCategory(c.Request().Context(), req.Name, req.Slug)
	if err != nil {
		return catalogError(c, err)
	}
	return c.JSON(http.StatusCreated, cat)
}

func (h *CategoryHandler) UpdateCategory(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}

	var req struct {
		Name string `json:"name"`
		Slug string `json:"slug"`
	}
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "cuerpo no válido"})
	}

	cat, err := h.Svc.UpdateCategory(c.Request().Context(), id, req.Name, req.Slug)
	if err != nil {
		return catalogError(c, err)
	}
	return c.JSON(http.StatusOK, cat)
}

func (h *CategoryHandler) DeleteCategory(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}

	if err := h.Svc.DeleteCategory(c.Request().Context(), id); err != nil {
		return catalogError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}
