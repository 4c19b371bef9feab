package handlers

import (
	"errors"
	"net/http"

	"invdash_backend/internal/middleware"
	"invdash_backend/internal/services"
	"invdash_backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

// AuthHandler exposes registration, login, logout and the profile endpoint.
type AuthHandler struct {
	authService services.AuthService
}

// NewAuthHandler creates a new instance of AuthHandler.
func NewAuthHandler(authService services.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// Register handles POST /api/v1/auth/register.
func (h *AuthHandler) Register(c *gin.Context) {
	var req services.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondFailure(c, http.StatusBadRequest, "Invalid registration payload: "+err.Error())
		return
	}

	user, err := h.authService.Register(req)
	if err != nil {
		if errors.Is(err, services.ErrEmailExists) {
			utils.RespondFailure(c, http.StatusBadRequest, "Email already registered")
			return
		}
		utils.LogError(err, "registration failed")
		utils.RespondFailure(c, http.StatusInternalServerError, "Registration failed")
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"message": "Registration successful",
		"user":    user,
	})
}

// Login handles POST /api/v1/auth/login. The token is returned in the body
// and mirrored into an http-only cookie for browser clients.
func (h *AuthHandler) Login(c *gin.Context) {
	var req services.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondFailure(c, http.StatusBadRequest, "Email and password are required")
		return
	}

	resp, err := h.authService.Login(req)
	if err != nil {
		if errors.Is(err, services.ErrInvalidCredentials) {
			utils.RespondFailure(c, http.StatusUnauthorized, "Invalid email or password")
			return
		}
		utils.LogError(err, "login failed")
		utils.RespondFailure(c, http.StatusInternalServerError, "Login failed")
		return
	}

	c.SetCookie(utils.AuthCookieName, resp.AccessToken, int(utils.AccessTokenTTL.Seconds()), "/", "", false, true)
	c.JSON(http.StatusOK, gin.H{
		"success":      true,
		"message":      "Login successful",
		"user":         resp.User,
		"access_token": resp.AccessToken,
	})
}

// Logout handles POST /api/v1/auth/logout by expiring the auth cookie.
func (h *AuthHandler) Logout(c *gin.Context) {
	c.SetCookie(utils.AuthCookieName, "", -1, "/", "", false, true)
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Logged out",
	})
}

// Me handles GET /api/v1/auth/me.
func (h *AuthHandler) Me(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		utils.RespondFailure(c, http.StatusUnauthorized, "Authentication required")
		return
	}

	user, err := h.authService.GetUserProfile(userID)
	if err != nil {
		if errors.Is(err, services.ErrUserNotFound) {
			utils.RespondFailure(c, http.StatusNotFound, "User not found")
			return
		}
		utils.LogError(err, "profile lookup failed")
		utils.RespondFailure(c, http.StatusInternalServerError, "Failed to load profile")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"user":    user,
	})
}
