package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/goccy/go-json"

	"github.com/yungbote/automate-backend/internal/http/response"
	"github.com/yungbote/automate-backend/internal/services"
)

type CarHandler struct {
	carService services.CarService
	recService services.RecommendationService
}

func NewCarHandler(carService services.CarService, recService services.RecommendationService) *CarHandler {
	return &CarHandler{carService: carService, recService: recService}
}

// POST /api/cars
func (ch *CarHandler) AddCar(c *gin.Context) {
	var req services.CarInput
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", errInvalidBody)
		return
	}
	car, err := ch.carService.AddCar(c.Request.Context(), req)
	if err != nil {
		response.RespondAPIError(c, err, "add_car_failed")
		return
	}
	response.RespondCreated(c, gin.H{"car": car})
}

// GET /api/cars
func (ch *CarHandler) ListCars(c *gin.Context) {
	cars, err := ch.carService.ListCars(c.Request.Context())
	if err != nil {
		response.RespondAPIError(c, err, "list_cars_failed")
		return
	}
	response.RespondOK(c, gin.H{"cars": cars})
}

// POST /api/cars/:id/recommendation
func (ch *CarHandler) RecommendForCar(c *gin.Context) {
	carID, ok := pathID(c, "id")
	if !ok {
		return
	}
	res, err := ch.recService.RecommendForCar(c.Request.Context(), carID)
	if err != nil {
		response.RespondAPIError(c, err, "recommendation_failed")
		return
	}
	response.RespondOK(c, res)
}

// POST /api/recommend
// body: { "mileage": 100000, "year": 2011, "driving_condition": "Fair", ... }
func (ch *CarHandler) Recommend(c *gin.Context) {
	var details map[string]any
	dec := json.NewDecoder(c.Request.Body)
	dec.UseNumber()
	if err := dec.Decode(&details); err != nil || details == nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", errInvalidBody)
		return
	}
	res, err := ch.recService.Recommend(c.Request.Context(), details)
	if err != nil {
		response.RespondAPIError(c, err, "recommendation_failed")
		return
	}
	response.RespondOK(c, res)
}

// GET /api/recommendations
func (ch *CarHandler) History(c *gin.Context) {
	logs, err := ch.recService.History(c.Request.Context(), listLimit(c))
	if err != nil {
		response.RespondAPIError(c, err, "recommendation_history_failed")
		return
	}
	response.RespondOK(c, gin.H{"recommendations": logs})
}
