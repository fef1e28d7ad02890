package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"salescrm/internal/models"
	"salescrm/internal/responses"
	"salescrm/internal/services"
)

const (
	refreshTokenCookieName = "refresh_token"
	refreshTokenMaxAge     = 30 * 24 * 3600 // seconds
)

type AuthHandler struct {
	authService *services.AuthService
}

func NewAuthHandler(authService *services.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

func (h *AuthHandler) Register(c *gin.Context) {
	var req struct {
		Email    string `json:"email"    binding:"required,email"`
		Password string `json:"password" binding:"required,min=6"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.Fail(c, http.StatusBadRequest, err, "Please provide your email and password correctly")
		return
	}

	user := &models.User{
		Email:    req.Email,
		Password: req.Password,
	}
	accessToken, refreshToken, err := h.authService.Register(user)
	if err != nil {
		responses.Fail(c, http.StatusInternalServerError, err, "Could not register user")
		return
	}

	c.SetCookie(refreshTokenCookieName, refreshToken, refreshTokenMaxAge, "/", "", true, true)

	responses.Success(c, http.StatusCreated, gin.H{"access_token": accessToken}, "New user registered successfully")
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req struct {
		Email    string `json:"email"    binding:"required,email"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.Fail(c, http.StatusBadRequest, err, "Invalid format")
		return
	}

	accessToken, refreshToken, err := h.authService.Login(req.Email, req.Password)
	if err != nil {
		responses.Fail(c, http.StatusUnauthorized, err, "Failed to login")
		return
	}

	c.SetCookie(refreshTokenCookieName, refreshToken, refreshTokenMaxAge, "/", "", true, true)

	responses.Success(c, http.StatusOK, gin.H{"access_token": accessToken}, "Login successful")
}

func (h *AuthHandler) Refresh(c *gin.Context) {
	refreshToken, err := c.Cookie(refreshTokenCookieName)
	if err != nil {
		responses.Fail(c, http.StatusBadRequest, err, "Missing refresh token")
		return
	}

	accessToken, newRefreshToken, err := h.authService.Refresh(refreshToken)
	if err != nil {
		c.SetCookie(refreshTokenCookieName, "", -1, "/", "", true, true)
		responses.Fail(c, http.StatusUnauthorized, err, "Could not refresh session")
		return
	}

	c.SetCookie(refreshTokenCookieName, newRefreshToken, refreshTokenMaxAge, "/", "", true, true)

	responses.Success(c, http.StatusOK, gin.H{"access_token": accessToken}, "Token refreshed")
}

func (h *AuthHandler) Logout(c *gin.Context) {
	if refreshToken, err := c.Cookie(refreshTokenCookieName); err == nil {
		// Best effort: the cookie is cleared regardless.
		_ = h.authService.Logout(refreshToken)
	}

	c.SetCookie(refreshTokenCookieName, "", -1, "/", "", true, true)

	responses.Success(c, http.StatusOK, nil, "Logged out successfully")
}
