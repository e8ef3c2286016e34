package v1

import (
	"github.com/gin-gonic/gin"
)

// RegisterRoutes регистрирует все маршруты API v1
func (h *Handler) RegisterRoutes(api *gin.RouterGroup) {
	// Маршруты приема телеметрии
	telemetry := api.Group("/telemetry")
	{
		telemetry.POST("/density", h.ingestDensity)
		telemetry.POST("/incidents", h.ingestIncident)
		telemetry.POST("/units", h.ingestUnitStatus)
	}

	// Операторское управление жизненным циклом инцидента
	api.POST("/incidents/:id/transition", h.transitionIncident)

	// Фасад чтения
	api.GET("/zones", h.listZones)
	api.GET("/incidents", h.listIncidents)
	api.GET("/units", h.listUnits)
	api.GET("/snapshot", h.getSnapshot)

	// Маршрут Health-check
	api.GET("/system/health", h.healthCheck)
}
