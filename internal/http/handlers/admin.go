package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/automate-backend/internal/http/response"
	"github.com/yungbote/automate-backend/internal/services"
)

type AdminHandler struct {
	bookingService services.BookingService
	chartService   services.ChartService
}

func NewAdminHandler(bookingService services.BookingService, chartService services.ChartService) *AdminHandler {
	return &AdminHandler{bookingService: bookingService, chartService: chartService}
}

// GET /api/admin/bookings?status=Pending
func (ah *AdminHandler) ListBookings(c *gin.Context) {
	bookings, err := ah.bookingService.ListAll(c.Request.Context(), c.Query("status"))
	if err != nil {
		response.RespondAPIError(c, err, "list_bookings_failed")
		return
	}
	response.RespondOK(c, gin.H{"bookings": bookings})
}

// POST /api/admin/bookings/:id/approve
func (ah *AdminHandler) ApproveBooking(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	booking, err := ah.bookingService.Approve(c.Request.Context(), id)
	if err != nil {
		response.RespondAPIError(c, err, "approve_booking_failed")
		return
	}
	response.RespondOK(c, gin.H{"booking": booking})
}

// GET /api/admin/stats
func (ah *AdminHandler) Stats(c *gin.Context) {
	stats, err := ah.bookingService.Stats(c.Request.Context())
	if err != nil {
		response.RespondAPIError(c, err, "stats_failed")
		return
	}
	response.RespondOK(c, stats)
}

// GET /api/admin/stats/status.png and /api/admin/stats/services.png
func (ah *AdminHandler) Chart(kind string) gin.HandlerFunc {
	return func(c *gin.Context) {
		png, err := ah.chartService.Render(c.Request.Context(), kind)
		if err != nil {
			response.RespondAPIError(c, err, "chart_failed")
			return
		}
		c.Header("Cache-Control", "no-store")
		c.Data(http.StatusOK, "image/png", png)
	}
}
