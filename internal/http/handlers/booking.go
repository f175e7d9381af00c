package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/automate-backend/internal/http/response"
	"github.com/yungbote/automate-backend/internal/services"
)

type BookingHandler struct {
	bookingService services.BookingService
}

func NewBookingHandler(bookingService services.BookingService) *BookingHandler {
	return &BookingHandler{bookingService: bookingService}
}

// POST /api/bookings
func (bh *BookingHandler) Create(c *gin.Context) {
	var req services.BookingInput
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", errInvalidBody)
		return
	}
	booking, err := bh.bookingService.Create(c.Request.Context(), req)
	if err != nil {
		response.RespondAPIError(c, err, "create_booking_failed")
		return
	}
	response.RespondCreated(c, gin.H{"booking": booking})
}

// GET /api/bookings
func (bh *BookingHandler) ListMine(c *gin.Context) {
	bookings, err := bh.bookingService.ListMine(c.Request.Context())
	if err != nil {
		response.RespondAPIError(c, err, "list_bookings_failed")
		return
	}
	response.RespondOK(c, gin.H{"bookings": bookings})
}
