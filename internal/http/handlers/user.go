package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/automate-backend/internal/http/response"
	"github.com/yungbote/automate-backend/internal/services"
)

type UserHandler struct {
	userService services.UserService
}

func NewUserHandler(userService services.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

// GET /api/me
func (uh *UserHandler) GetMe(c *gin.Context) {
	me, err := uh.userService.GetMe(c.Request.Context())
	if err != nil {
		response.RespondAPIError(c, err, "get_me_failed")
		return
	}
	response.RespondOK(c, gin.H{"me": me})
}

// PATCH /api/me
// body: { "name": "...", "email": "...", "phone": "..." }
func (uh *UserHandler) UpdateMe(c *gin.Context) {
	var req services.ProfileInput
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", errInvalidBody)
		return
	}
	me, err := uh.userService.UpdateProfile(c.Request.Context(), req)
	if err != nil {
		response.RespondAPIError(c, err, "update_profile_failed")
		return
	}
	response.RespondOK(c, gin.H{"me": me})
}
