package response

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/automate-backend/internal/platform/apierr"
)

// RespondAPIError maps err through apierr and writes the error envelope.
// Server errors never leak their message to the client.
func RespondAPIError(c *gin.Context, err error, fallbackCode string) {
	ae := apierr.From(err, fallbackCode)
	if ae == nil {
		ae = apierr.New(http.StatusInternalServerError, fallbackCode, nil)
	}
	_ = c.Error(err)
	if ae.Status >= http.StatusInternalServerError {
		RespondError(c, ae.Status, ae.Code, errInternal)
		return
	}
	RespondError(c, ae.Status, ae.Code, ae)
}
