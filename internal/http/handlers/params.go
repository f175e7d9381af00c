package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/automate-backend/internal/http/response"
)

const (
	defaultListLimit = 50
	maxListLimit     = 200
)

// pathID parses a positive integer path parameter. It writes a 400 and
// returns false when the value is malformed.
func pathID(c *gin.Context, name string) (uint, bool) {
	v, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || v == 0 {
		response.RespondError(c, http.StatusBadRequest, "invalid_id", errInvalidID)
		return 0, false
	}
	return uint(v), true
}

// listLimit reads ?limit=, clamped to (0, maxListLimit].
func listLimit(c *gin.Context) int {
	n, err := strconv.Atoi(c.DefaultQuery("limit", ""))
	if err != nil || n <= 0 {
		return defaultListLimit
	}
	if n > maxListLimit {
		return maxListLimit
	}
	return n
}
