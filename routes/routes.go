package routes

import (
	"time"

	"groupcal/handlers"
	"groupcal/middleware"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// RegisterScheduleRoutes registers the JSON API.
func RegisterScheduleRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("")
	{
		api.Use(middleware.RateLimitMiddleware(hb.MaxRequestsPerMin))
		api.POST("/schedule/", hb.SubmitScheduleHandler)
		api.GET("/events/", hb.GetEventsHandler)
		api.GET("/free_slots/", hb.GetFreeSlotsHandler)
		api.DELETE("/events/delete_by_date_name/", hb.DeleteByDateNameHandler)
	}
}

// RegisterUIRoutes registers the server-rendered calendar page and its form posts.
func RegisterUIRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	if hb.Templates != nil {
		r.SetHTMLTemplate(hb.Templates)
	}
	r.GET("/", hb.IndexHandler)
	ui := r.Group("/ui")
	{
		ui.Use(middleware.RateLimitMiddleware(hb.MaxRequestsPerMin))
		ui.POST("/schedule", hb.SubmitScheduleFormHandler)
		ui.POST("/delete", hb.DeleteFormHandler)
	}
}

// RegisterHealthRoute registers a health-check endpoint.
func RegisterHealthRoute(r *gin.Engine, hb *handlers.HandlerBundle) {
	r.GET("/health", hb.HealthHandler)
}

// RegisterMetricsRoute exposes Prometheus metrics when a handler is configured.
func RegisterMetricsRoute(r *gin.Engine, hb *handlers.HandlerBundle) {
	if hb.MetricsHandler != nil {
		r.GET("/metrics", hb.MetricsHandler)
	}
}

// RegisterAdminRoutes sets up endpoints for admin operations.
func RegisterAdminRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	adminAuth := middleware.JWTAuthAdminMiddleware(hb.JWTSecret)
	r.DELETE("/all_delete", adminAuth, hb.DeleteAllHandler)

	adminGroup := r.Group("/admin")
	{
		adminGroup.Use(adminAuth)
		adminGroup.GET("/archive", hb.GetDownloadURLHandler)
		adminGroup.DELETE("/archive", hb.DeleteArchiveHandler)
	}
}

// RegisterRoutes centralizes registration of all endpoints and middleware.
func RegisterRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type", "X-Request-ID"},
		ExposeHeaders:    []string{"Content-Length", "X-Request-ID"},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}))

	RegisterHealthRoute(r, hb)
	RegisterMetricsRoute(r, hb)
	RegisterScheduleRoutes(r, hb)
	RegisterUIRoutes(r, hb)
	RegisterAdminRoutes(r, hb)
}
