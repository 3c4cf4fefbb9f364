package auth

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/patitas-shop/backend/internal/tokens"
)

// Guard authenticates requests from the accessToken cookie and exposes
// named middleware predicates so handlers never inline role checks.
type Guard struct {
	JWTSecret []byte
}

func (g *Guard) identify(c echo.Context) error {
	cookie, err := c.Cookie("accessToken")
	if err != nil || cookie.Value == "" {
		return echo.NewHTTPError(http.StatusUnauthorized, "missing auth cookie")
	}

	claims, err := tokens.Parse(cookie.Value, g.JWTSecret)
	if err != nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
	}

	userID, role, err := tokens.Identity(claims)
	if err != nil {
		return echo.NewHTTPError(http.StatusUnauthorized, err.Error())
	}

	c.Set("userID", userID)
	c.Set("role", role)
	return nil
}

func (g *Guard) RequireLogin(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		if err := g.identify(c); err != nil {
			return err
		}
		return next(c)
	}
}

func (g *Guard) AdminOnly(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		if err := g.identify(c); err != nil {
			return err
		}
		if role, _ := c.Get("role").(string); role != "admin" {
			return echo.NewHTTPError(http.StatusForbidden, "no tienes permisos suficientes")
		}
		return next(c)
	}
}

// OptionalLogin sets the identity when a valid cookie is present and
// lets anonymous requests through. GET /cart relies on this: anonymous
// callers get an empty cart instead of a 401.
func (g *Guard) OptionalLogin(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		_ = g.identify(c)
		return next(c)
	}
}

// UserID returns the authenticated user, or 0 for anonymous requests.
func UserID(c echo.Context) uint {
	id, _ := c.Get("userID").(uint)
	return id
}

func Role(c echo.Context) string {
	role, _ := c.Get("role").(string)
	return role
}
