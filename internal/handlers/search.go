package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/elastic/go-elasticsearch/v9"
	"github.com/labstack/echo/v4"

	searchsvc "github.com/patitas-shop/backend/internal/service/search"
	"github.com/patitas-shop/backend/internal/util"
)

type SearchHandler struct {
	ES    *elasticsearch.Client
	Index string
}

func (h *SearchHandler) Search(c echo.Context) error {
	q := c.QueryParam("q")
	if q == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "parámetro q requerido")
	}

	page, _ := strconv.Atoi(c.QueryParam("page"))
	size, _ := strconv.Atoi(c.QueryParam("size"))
	from, size := util.Calculate(page, size)

	total, products, err := searchsvc.Search(c.Request().Context(), h.ES, h.Index, q, from, size)
	if err != nil {
		if errors.Is(err, searchsvc.ErrUnavailable) {
			return echo.NewHTTPError(http.StatusServiceUnavailable, "búsqueda no disponible")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, echo.Map{"total": total, "products": products})
}
