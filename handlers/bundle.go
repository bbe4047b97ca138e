package handlers

import (
	"html/template"

	"github.com/gin-gonic/gin"
)

// HandlerBundle groups all endpoint handlers into one struct.
type HandlerBundle struct {
	JWTSecret         string
	MaxRequestsPerMin int
	Templates         *template.Template

	// Schedule API
	SubmitScheduleHandler   gin.HandlerFunc
	GetEventsHandler        gin.HandlerFunc
	GetFreeSlotsHandler     gin.HandlerFunc
	DeleteByDateNameHandler gin.HandlerFunc

	// Calendar page
	IndexHandler              gin.HandlerFunc
	SubmitScheduleFormHandler gin.HandlerFunc
	DeleteFormHandler         gin.HandlerFunc

	// Admin endpoints
	DeleteAllHandler      gin.HandlerFunc
	GetDownloadURLHandler gin.HandlerFunc
	DeleteArchiveHandler  gin.HandlerFunc

	HealthHandler  gin.HandlerFunc
	MetricsHandler gin.HandlerFunc
}

// NewHandlerBundle wires the handler methods into a bundle. Security and template
// fields are left for the caller.
func NewHandlerBundle(api *ScheduleHandler, web *WebHandler, store *StorageHandler, health *HealthHandler) *HandlerBundle {
	return &HandlerBundle{
		SubmitScheduleHandler:   api.SubmitScheduleHandler,
		GetEventsHandler:        api.GetEventsHandler,
		GetFreeSlotsHandler:     api.GetFreeSlotsHandler,
		DeleteByDateNameHandler: api.DeleteByDateNameHandler,

		IndexHandler:              web.IndexHandler,
		SubmitScheduleFormHandler: web.SubmitScheduleFormHandler,
		DeleteFormHandler:         web.DeleteFormHandler,

		DeleteAllHandler:      api.DeleteAllHandler,
		GetDownloadURLHandler: store.GetDownloadURLHandler,
		DeleteArchiveHandler:  store.DeleteFileHandler,

		HealthHandler: health.GetHealthHandler,
	}
}
