package v1

import (
	"github.com/gin-gonic/gin"
)

// RegisterRoutes регистрирует все маршруты API v1
func (h *Handler) RegisterRoutes(api *gin.RouterGroup) {
	auth := APIKeyAuthMiddleware(h.cfg, h.logger)

	events := api.Group("/events")
	{
		events.GET("", h.listEvents)
		events.GET("/geojson", h.eventsGeoJSON)
		events.GET("/nearby", h.nearbyEvents)
		events.GET("/analytics", h.eventAnalytics)
		events.GET("/:id", h.getEvent)
		events.GET("/:id/image", h.getImage)

		// Изменяющие маршруты требуют API-ключ
		events.POST("", auth, h.createEvent)
		events.PUT("/:id", auth, h.updateEvent)
		events.DELETE("/:id", auth, h.deleteEvent)
		events.POST("/:id/image", auth, h.uploadImage)
	}

	// Получатели уведомлений, все маршруты под API-ключом
	admins := api.Group("/admins", auth)
	{
		admins.POST("", h.createAdmin)
		admins.GET("", h.listAdmins)
		admins.DELETE("/:id", h.deleteAdmin)
	}

	// Push-канал новых событий
	api.GET("/ws/events", h.eventsWebSocket)

	// Маршрут Health-check
	api.GET("/system/health", h.healthCheck)
}
