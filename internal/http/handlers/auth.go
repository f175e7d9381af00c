package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/automate-backend/internal/http/response"
	"github.com/yungbote/automate-backend/internal/services"
)

type AuthHandler struct {
	authService services.AuthService
}

func NewAuthHandler(authService services.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// POST /api/register
func (ah *AuthHandler) Register(c *gin.Context) {
	var req services.RegisterInput
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", errInvalidBody)
		return
	}
	user, err := ah.authService.RegisterUser(c.Request.Context(), req)
	if err != nil {
		response.RespondAPIError(c, err, "registration_failed")
		return
	}
	response.RespondOK(c, gin.H{"message": "Registration successful", "user": user})
}

// POST /api/login
func (ah *AuthHandler) Login(c *gin.Context) {
	var req services.LoginInput
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", errInvalidBody)
		return
	}
	pair, err := ah.authService.Login(c.Request.Context(), req)
	if err != nil {
		response.RespondAPIError(c, err, "login_failed")
		return
	}
	response.RespondOK(c, pair)
}

// POST /api/refresh
func (ah *AuthHandler) Refresh(c *gin.Context) {
	var req struct {
		RefreshToken string `json:"refresh_token"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", errInvalidBody)
		return
	}
	pair, err := ah.authService.Refresh(c.Request.Context(), req.RefreshToken)
	if err != nil {
		response.RespondAPIError(c, err, "refresh_failed")
		return
	}
	response.RespondOK(c, pair)
}

// POST /api/logout
func (ah *AuthHandler) Logout(c *gin.Context) {
	if err := ah.authService.Logout(c.Request.Context()); err != nil {
		response.RespondAPIError(c, err, "logout_failed")
		return
	}
	response.RespondOK(c, gin.H{"ok": true})
}
