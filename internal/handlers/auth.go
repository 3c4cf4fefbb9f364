package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/patitas-shop/backend/internal/events"
	"github.com/patitas-shop/backend/internal/hash"
	"github.com/patitas-shop/backend/internal/logging"
	"github.com/patitas-shop/backend/internal/models"
	"github.com/patitas-shop/backend/internal/tokens"
)

type AuthHandler struct {
	DB            *gorm.DB
	JWTSecret     []byte
	RefreshSecret []byte
	Producer      *events.Producer
}

func CreateCookie(name, value, path string, expires time.Time) *http.Cookie {
	return &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     path,
		Expires:  expires,
		HttpOnly: true,
		Secure:   true,
		SameSite: http.SameSiteLaxMode,
	}
}

func (h *AuthHandler) Register(c echo.Context) error {
	var req struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "cuerpo no válido")
	}
	if req.Username == "" || req.Password == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "usuario y contraseña requeridos")
	}

	var existing models.User
	err := h.DB.WithContext(c.Request().Context()).
		Where("username = ?", req.Username).First(&existing).Error
	if err == nil {
		return echo.NewHTTPError(http.StatusConflict, "el usuario ya existe")
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return echo.NewHTTPError(http.StatusInternalServerError, "error interno")
	}

	pwHash, err := hash.HashPassword(req.Password)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "error interno")
	}

	user := models.User{
		Username:     req.Username,
		PasswordHash: pwHash,
		Role:         "user",
	}
	if err := h.DB.WithContext(c.Request().Context()).Create(&user).Error; err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "error interno")
	}

	publish(c, h.Producer, events.TopicUserEvents, fmt.Sprint(user.ID), map[string]any{
		"type":     "user_registered",
		"userID":   user.ID,
		"username": user.Username,
	})
	return c.JSON(http.StatusOK, user)
}

func (h *AuthHandler) Login(c echo.Context) error {
	var req struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "cuerpo no válido")
	}

	var user models.User
	if err := h.DB.WithContext(c.Request().Context()).
		Where("username = ?", req.Username).First(&user).Error; err != nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "credenciales no válidas")
	}
	if !hash.CheckPassword(user.PasswordHash, req.Password) {
		return echo.NewHTTPError(http.StatusUnauthorized, "credenciales no válidas")
	}

	accessToken, err := tokens.SignAccessToken(user.ID, user.Role, h.JWTSecret)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "error interno")
	}
	refreshToken, err := tokens.SignRefreshToken(user.ID, user.Role, h.RefreshSecret)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "error interno")
	}

	stored := models.RefreshToken{
		Token:     refreshToken,
		UserID:    user.ID,
		Role:      user.Role,
		ExpiresAt: time.Now().Add(tokens.RefreshTTL).Unix(),
	}
	if err := h.DB.WithContext(c.Request().Context()).Create(&stored).Error; err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "error interno")
	}

	c.SetCookie(CreateCookie("accessToken", accessToken, "/", time.Now().Add(tokens.AccessTTL)))
	c.SetCookie(CreateCookie("refreshToken", refreshToken, "/", time.Now().Add(tokens.RefreshTTL)))

	return c.JSON(http.StatusOK, echo.Map{
		"access_token":  accessToken,
		"refresh_token": refreshToken,
	})
}

func (h *AuthHandler) Refresh(c echo.Context) error {
	cookie, err := c.Cookie("refreshToken")
	if err != nil || cookie.Value == "" {
		return echo.NewHTTPError(http.StatusUnauthorized, "missing refresh cookie")
	}

	claims, err := tokens.Parse(cookie.Value, h.RefreshSecret)
	if err != nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
	}
	if typ, ok := claims["typ"].(string); !ok || typ != "refresh" {
		return echo.NewHTTPError(http.StatusUnauthorized, "not a refresh token")
	}

	var stored models.RefreshToken
	if err := h.DB.WithContext(c.Request().Context()).
		Where("token = ?", cookie.Value).First(&stored).Error; err != nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "unknown refresh token")
	}
	if stored.Revoked || time.Now().Unix() > stored.ExpiresAt {
		return echo.NewHTTPError(http.StatusUnauthorized, "refresh token expired")
	}

	userID, role, err := tokens.Identity(claims)
	if err != nil {
		return echo.NewHTTPError(http.StatusUnauthorized, err.Error())
	}

	accessToken, err := tokens.SignAccessToken(userID, role, h.JWTSecret)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "error interno")
	}

	c.SetCookie(CreateCookie("accessToken", accessToken, "/", time.Now().Add(tokens.AccessTTL)))
	return c.JSON(http.StatusOK, echo.Map{"access_token": accessToken})
}

func (h *AuthHandler) Logout(c echo.Context) error {
	if cookie, err := c.Cookie("refreshToken"); err == nil && cookie.Value != "" {
		if err := h.DB.WithContext(c.Request().Context()).
			Model(&models.RefreshToken{}).
			Where("token = ?", cookie.Value).
			Update("revoked", true).Error; err != nil {
			logging.FromContext(c.Request().Context()).Error("refresh token revoke error", "error", err)
		}
	}

	c.SetCookie(CreateCookie("accessToken", "", "/", time.Unix(0, 0)))
	c.SetCookie(CreateCookie("refreshToken", "", "/", time.Unix(0, 0)))
	return c.JSON(http.StatusOK, echo.Map{"message": "sesión cerrada"})
}
