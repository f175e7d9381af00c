package http

import (
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	httpH "github.com/yungbote/automate-backend/internal/http/handlers"
	httpMW "github.com/yungbote/automate-backend/internal/http/middleware"
	"github.com/yungbote/automate-backend/internal/observability"
	"github.com/yungbote/automate-backend/internal/platform/logger"
	"github.com/yungbote/automate-backend/internal/services"
)

type RouterConfig struct {
	Log         *logger.Logger
	Metrics     *observability.Metrics
	CORSOrigins []string
	// TracingService enables otelgin spans under this service name.
	TracingService string

	AuthMiddleware *httpMW.AuthMiddleware

	HealthHandler       *httpH.HealthHandler
	AuthHandler         *httpH.AuthHandler
	UserHandler         *httpH.UserHandler
	CarHandler          *httpH.CarHandler
	BookingHandler      *httpH.BookingHandler
	NotificationHandler *httpH.NotificationHandler
	ChatHandler         *httpH.ChatHandler
	AdminHandler        *httpH.AdminHandler
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	r := gin.New()
	r.Use(httpMW.Recover(cfg.Log))
	if cfg.TracingService != "" {
		r.Use(otelgin.Middleware(cfg.TracingService))
	}
	r.Use(httpMW.AttachTraceContext())
	r.Use(httpMW.RequestLogger(cfg.Log))
	r.Use(httpMW.Metrics(cfg.Metrics))
	r.Use(httpMW.CORS(cfg.CORSOrigins))

	// Health
	if cfg.HealthHandler != nil {
		r.GET("/healthcheck", cfg.HealthHandler.HealthCheck)
	}
	if cfg.Metrics != nil {
		r.GET("/metrics", gin.WrapH(cfg.Metrics.Handler()))
	}

	api := r.Group("/api")
	{
		// Auth (public)
		if cfg.AuthHandler != nil {
			api.POST("/register", cfg.AuthHandler.Register)
			api.POST("/login", cfg.AuthHandler.Login)
			api.POST("/refresh", cfg.AuthHandler.Refresh)
		}
	}
	if cfg.AuthMiddleware == nil {
		return r
	}

	protected := api.Group("/")
	protected.Use(cfg.AuthMiddleware.RequireAuth())
	{
		if cfg.AuthHandler != nil {
			protected.POST("/logout", cfg.AuthHandler.Logout)
		}
		if cfg.UserHandler != nil {
			protected.GET("/me", cfg.UserHandler.GetMe)
			protected.PATCH("/me", cfg.UserHandler.UpdateMe)
		}
		if cfg.NotificationHandler != nil {
			protected.GET("/notifications/stream", cfg.NotificationHandler.Stream)
		}
	}

	users := protected.Group("/")
	users.Use(cfg.AuthMiddleware.RequireUser())
	{
		if cfg.CarHandler != nil {
			users.POST("/cars", cfg.CarHandler.AddCar)
			users.GET("/cars", cfg.CarHandler.ListCars)
			users.POST("/cars/:id/recommendation", cfg.CarHandler.RecommendForCar)
			users.POST("/recommend", cfg.CarHandler.Recommend)
			users.GET("/recommendations", cfg.CarHandler.History)
		}
		if cfg.BookingHandler != nil {
			users.POST("/bookings", cfg.BookingHandler.Create)
			users.GET("/bookings", cfg.BookingHandler.ListMine)
		}
		if cfg.NotificationHandler != nil {
			users.GET("/notifications", cfg.NotificationHandler.List)
		}
		if cfg.ChatHandler != nil {
			users.POST("/chat", cfg.ChatHandler.Ask)
			users.GET("/chat/history", cfg.ChatHandler.History)
		}
	}

	admin := protected.Group("/admin")
	admin.Use(cfg.AuthMiddleware.RequireAdmin())
	if cfg.AdminHandler != nil {
		admin.GET("/bookings", cfg.AdminHandler.ListBookings)
		admin.POST("/bookings/:id/approve", cfg.AdminHandler.ApproveBooking)
		admin.GET("/stats", cfg.AdminHandler.Stats)
		admin.GET("/stats/status.png", cfg.AdminHandler.Chart(services.ChartStatus))
		admin.GET("/stats/services.png", cfg.AdminHandler.Chart(services.ChartServices))
	}

	return r
}
