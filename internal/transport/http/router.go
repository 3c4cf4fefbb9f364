package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/patitas-shop/backend/internal/handlers"
	authmw "github.com/patitas-shop/backend/internal/middleware/auth"
)

type Deps struct {
	Guard           *authmw.Guard
	AuthHandler     *handlers.AuthHandler
	ProductHandler  *handlers.ProductHandler
	CategoryHandler *handlers.CategoryHandler
	CartHandler     *handlers.CartHandler
	OrderHandler    *handlers.OrderHandler
	SearchHandler   *handlers.SearchHandler
}

func Register(e *echo.Echo, d *Deps) {
	e.GET("/health/live", func(c echo.Context) error { return c.NoContent(http.StatusOK) })
	e.GET("/health/ready", func(c echo.Context) error { return c.NoContent(http.StatusOK) })

	e.POST("/register", d.AuthHandler.Register)
	e.POST("/login", d.AuthHandler.Login)
	e.POST("/logout", d.AuthHandler.Logout)
	e.POST("/refresh", d.AuthHandler.Refresh)

	e.GET("/products", d.ProductHandler.GetProducts)
	e.GET("/products/:id", d.ProductHandler.GetProduct)
	e.GET("/categories", d.CategoryHandler.ListCategories)
	e.GET("/search", d.SearchHandler.Search)

	e.GET("/cart", d.CartHandler.GetCart, d.Guard.OptionalLogin)

	cart := e.Group("/cart", d.Guard.RequireLogin)
	cart.POST("", d.CartHandler.AddToCart)
	cart.POST("/sync", d.CartHandler.SyncCart)
	cart.PUT("/:id", d.CartHandler.UpdateQuantity)
	cart.DELETE("/:id", d.CartHandler.RemoveItem)
	cart.DELETE("", d.CartHandler.ClearCart)

	orders := e.Group("/orders", d.Guard.RequireLogin)
	orders.GET("", d.OrderHandler.ListOwnOrders)
	orders.POST("", d.OrderHandler.CreateOrder)

	ordersAdmin := e.Group("/orders", d.Guard.AdminOnly)
	ordersAdmin.GET("/admin/all", d.OrderHandler.ListAllOrders)
	ordersAdmin.PUT("/:id/status", d.OrderHandler.UpdateStatus)

	admin := e.Group("/admin", d.Guard.AdminOnly)
	admin.POST("/products", d.ProductHandler.CreateProduct)
	admin.PATCH("/products/:id", d.ProductHandler.UpdateProduct)
	admin.DELETE("/products/:id", d.ProductHandler.DeleteProduct)
	admin.POST("/categories", d.CategoryHandler.CreateCategory)
	admin.PATCH("/categories/:id", d.CategoryHandler.UpdateCategory)
	admin.DELETE("/categories/:id", d.CategoryHandler.DeleteCategory)
}
