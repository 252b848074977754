package routes

import (
	"net/http"
	"time"

	"mediflow/handlers"
	"mediflow/middleware"
	"mediflow/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// RegisterChatRoutes registers the conversational endpoints.
func RegisterChatRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/chat")
	{
		api.POST("", hb.Chat)
		api.DELETE("/:sessionID", hb.ResetChat)
	}
}

// RegisterAvailabilityRoutes registers slot-lookup endpoints.
func RegisterAvailabilityRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/availability")
	{
		api.GET("", hb.GetAvailability)
		api.GET("/summary", hb.GetAvailabilitySummary)
	}
}

// RegisterAppointmentRoutes registers the direct booking endpoints.
func RegisterAppointmentRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	r.POST("/api/book", hb.BookAppointment)

	api := r.Group("/api/appointments")
	{
		api.GET("/:bookingID", hb.GetAppointment)
		api.DELETE("/:bookingID", hb.CancelAppointment)
		api.POST("/:bookingID/reschedule", hb.RescheduleAppointment)
	}
}

// RegisterCatalogueRoutes registers doctor and appointment-type lookups.
func RegisterCatalogueRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	r.GET("/api/doctors", hb.ListDoctors)
	r.GET("/api/appointment-types", hb.ListAppointmentTypes)
}

// RegisterAnalyticsRoutes registers the metrics rollup endpoint.
func RegisterAnalyticsRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	r.GET("/api/analytics/metrics", hb.GetMetrics)
}

// RegisterHealthRoute registers a health-check endpoint.
func RegisterHealthRoute(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "services": utils.GetHealthStatus()})
	})
}

// RegisterRoutes centralizes registration of all endpoints and middleware.
func RegisterRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
	r.Use(middleware.RateLimitMiddleware())

	RegisterChatRoutes(r, hb)
	RegisterAvailabilityRoutes(r, hb)
	RegisterAppointmentRoutes(r, hb)
	RegisterCatalogueRoutes(r, hb)
	RegisterAnalyticsRoutes(r, hb)
	RegisterHealthRoute(r)
}
