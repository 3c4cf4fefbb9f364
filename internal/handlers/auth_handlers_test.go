package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/patitas-shop/backend/internal/models"
)

func TestLogout_RevokesStoredRefreshToken(t *testing.T) {
	db := initTestDB(t)
	h := &AuthHandler{DB: db}
	require.NoError(t, db.Create(&models.RefreshToken{
		Token:     "tok-1",
		UserID:    1,
		Role:      "user",
		ExpiresAt: time.Now().Add(time.Hour).Unix(),
	}).Error)

	req := httptest.NewRequest(http.MethodPost, "/logout", nil)
	req.AddCookie(&http.Cookie{Name: "refreshToken", Value: "tok-1"})
	rec := httptest.NewRecorder()
	c := echo.New().NewContext(req, rec)

	require.NoError(t, h.Logout(c))
	require.Equal(t, http.StatusOK, rec.Code)

	var stored models.RefreshToken
	require.NoError(t, db.Where("token = ?", "tok-1").First(&stored).Error)
	assert.True(t, stored.Revoked)
}

func TestLogout_WithoutCookieStillClearsSession(t *testing.T) {
	db := initTestDB(t)
	h := &AuthHandler{DB: db}

	req := httptest.NewRequest(http.MethodPost, "/logout", nil)
	rec := httptest.NewRecorder()
	c := echo.New().NewContext(req, rec)

	require.NoError(t, h.Logout(c))
	assert.Equal(t, http.StatusOK, rec.Code)
}
