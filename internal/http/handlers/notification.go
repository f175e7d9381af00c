package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/automate-backend/internal/http/response"
	"github.com/yungbote/automate-backend/internal/platform/ctxutil"
	"github.com/yungbote/automate-backend/internal/platform/logger"
	"github.com/yungbote/automate-backend/internal/realtime"
	"github.com/yungbote/automate-backend/internal/services"
)

type NotificationHandler struct {
	log                 *logger.Logger
	notificationService services.NotificationService
	hub                 *realtime.SSEHub
}

func NewNotificationHandler(log *logger.Logger, notificationService services.NotificationService, hub *realtime.SSEHub) *NotificationHandler {
	return &NotificationHandler{
		log:                 log.With("handler", "NotificationHandler"),
		notificationService: notificationService,
		hub:                 hub,
	}
}

// GET /api/notifications
func (nh *NotificationHandler) List(c *gin.Context) {
	notes, err := nh.notificationService.List(c.Request.Context(), listLimit(c))
	if err != nil {
		response.RespondAPIError(c, err, "list_notifications_failed")
		return
	}
	response.RespondOK(c, gin.H{"notifications": notes})
}

// GET /api/notifications/stream
// Users receive their own channel; admins receive booking activity.
func (nh *NotificationHandler) Stream(c *gin.Context) {
	rd := ctxutil.GetRequestData(c.Request.Context())
	if rd == nil {
		response.RespondError(c, http.StatusUnauthorized, "unauthorized", errNotAuthenticated)
		return
	}
	client := nh.hub.NewSSEClient()
	if rd.IsAdmin() {
		nh.hub.AddChannel(client, realtime.AdminChannel)
	} else {
		nh.hub.AddChannel(client, realtime.UserChannel(rd.SubjectID))
	}
	nh.log.Debug("SSE stream open", "client_id", client.ID, "role", rd.Role)

	nh.hub.ServeHTTP(c.Writer, c.Request, client)
	nh.hub.CloseClient(client)
}
