package v1

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/shenikar/crowd_safety_system/internal/models"
	"github.com/shenikar/crowd_safety_system/internal/service"
	"github.com/sirupsen/logrus"
)

type Handler struct {
	telemetry service.TelemetryService
	query     service.QueryService
	logger    *logrus.Logger
	validate  *validator.Validate
}

func NewHandler(telemetry service.TelemetryService, query service.QueryService, logger *logrus.Logger) *Handler {
	return &Handler{
		telemetry: telemetry,
		query:     query,
		logger:    logger,
		validate:  validator.New(),
	}
}

// statusFromError сопоставляет доменную ошибку HTTP-статусу.
func statusFromError(err error) int {
	switch {
	case errors.Is(err, models.ErrUnknownZone),
		errors.Is(err, models.ErrUnknownIncident),
		errors.Is(err, models.ErrUnknownUnit):
		return http.StatusNotFound
	case errors.Is(err, models.ErrDuplicateID):
		return http.StatusConflict
	case errors.Is(err, models.ErrInvalidTransition),
		errors.Is(err, models.ErrInvalidState):
		return http.StatusConflict
	case errors.Is(err, models.ErrOutOfRange):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// @Summary Ingest a zone density sample
// @Description Accept a crowd density sample for a zone and recompute its risk level.
// @Tags Telemetry
// @Accept json
// @Produce json
// @Param event body DensityEventRequest true "Density event"
// @Success 200 {object} ZoneResponse
// @Failure 400 {object} map[string]string "Invalid request body, validation error or density out of range"
// @Failure 404 {object} map[string]string "Unknown zone"
// @Router /telemetry/density [post]
func (h *Handler) ingestDensity(c *gin.Context) {
	var input DensityEventRequest
	log := h.logger.WithField("method", "ingestDensity")

	if err := c.ShouldBindJSON(&input); err != nil {
		log.WithError(err).Warn("Failed to bind JSON")
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	if err := h.validate.Struct(input); err != nil {
		log.WithError(err).Warn("Validation failed")
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	zone, err := h.telemetry.IngestDensity(c.Request.Context(), DTOToDensityEvent(input))
	if err != nil {
		log.WithError(err).Warn("Density event rejected")
		c.JSON(statusFromError(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, ModelToZoneResponse(zone))
}

// @Summary Ingest an incident event
// @Description Register a new incident or update severity of a known one. New incidents wake the dispatcher.
// @Tags Telemetry
// @Accept json
// @Produce json
// @Param event body IncidentEventRequest true "Incident event"
// @Success 201 {object} IncidentResponse
// @Failure 400 {object} map[string]string "Invalid request body or validation error"
// @Failure 404 {object} map[string]string "Unknown zone"
// @Failure 409 {object} map[string]string "Duplicate incident id"
// @Router /telemetry/incidents [post]
func (h *Handler) ingestIncident(c *gin.Context) {
	var input IncidentEventRequest
	log := h.logger.WithField("method", "ingestIncident")

	if err := c.ShouldBindJSON(&input); err != nil {
		log.WithError(err).Warn("Failed to bind JSON")
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	if err := h.validate.Struct(input); err != nil {
		log.WithError(err).Warn("Validation failed")
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	inc, err := h.telemetry.IngestIncident(c.Request.Context(), DTOToIncidentEvent(input))
	if err != nil {
		log.WithError(err).Warn("Incident event rejected")
		c.JSON(statusFromError(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, ModelToIncidentResponse(inc))
}

// @Summary Ingest a unit status event
// @Description Update a response unit status and position.
// @Tags Telemetry
// @Accept json
// @Produce json
// @Param event body UnitStatusEventRequest true "Unit status event"
// @Success 200 {object} UnitResponse
// @Failure 400 {object} map[string]string "Invalid request body or validation error"
// @Failure 404 {object} map[string]string "Unknown unit or zone"
// @Failure 409 {object} map[string]string "State machine violation"
// @Router /telemetry/units [post]
func (h *Handler) ingestUnitStatus(c *gin.Context) {
	var input UnitStatusEventRequest
	log := h.logger.WithField("method", "ingestUnitStatus")

	if err := c.ShouldBindJSON(&input); err != nil {
		log.WithError(err).Warn("Failed to bind JSON")
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	if err := h.validate.Struct(input); err != nil {
		log.WithError(err).Warn("Validation failed")
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	unit, err := h.telemetry.IngestUnitStatus(c.Request.Context(), DTOToUnitStatusEvent(input))
	if err != nil {
		log.WithError(err).Warn("Unit status event rejected")
		c.JSON(statusFromError(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, ModelToUnitResponse(unit))
}

// @Summary Transition an incident
// @Description Operator-driven incident lifecycle transition. Cancelling releases all assigned units.
// @Tags Incidents
// @Accept json
// @Produce json
// @Param id path string true "Incident ID"
// @Param transition body TransitionRequest true "Target status"
// @Success 200 {object} IncidentResponse
// @Failure 400 {object} map[string]string "Invalid incident ID or request body"
// @Failure 404 {object} map[string]string "Unknown incident"
// @Failure 409 {object} map[string]string "Invalid transition"
// @Router /incidents/{id}/transition [post]
func (h *Handler) transitionIncident(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid incident ID"})
		return
	}
	log := h.logger.WithField("method", "transitionIncident").WithField("id", id)

	var input TransitionRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		log.WithError(err).Warn("Failed to bind JSON")
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	if err := h.validate.Struct(input); err != nil {
		log.WithError(err).Warn("Validation failed")
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	inc, err := h.telemetry.TransitionIncident(c.Request.Context(), id, models.IncidentStatus(input.Status))
	if err != nil {
		log.WithError(err).Warn("Transition rejected")
		c.JSON(statusFromError(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, ModelToIncidentResponse(inc))
}

// @Summary Get all zones
// @Description Get all zones with their current computed risk level.
// @Tags Query
// @Accept json
// @Produce json
// @Success 200 {array} ZoneResponse
// @Router /zones [get]
func (h *Handler) listZones(c *gin.Context) {
	zones := h.query.Zones(c.Request.Context())
	c.JSON(http.StatusOK, ModelsToZoneResponses(zones))
}

// @Summary Get open incidents
// @Description Get active incidents in canonical priority order (severity desc, reported_at asc).
// @Tags Query
// @Accept json
// @Produce json
// @Param zone_id query string false "Filter by zone"
// @Param severity query string false "Filter by severity"
// @Success 200 {array} IncidentResponse
// @Router /incidents [get]
func (h *Handler) listIncidents(c *gin.Context) {
	filter := service.IncidentFilter{
		ZoneID:   c.Query("zone_id"),
		Severity: models.Severity(c.Query("severity")),
	}
	incidents := h.query.OpenIncidents(c.Request.Context(), filter)
	c.JSON(http.StatusOK, ModelsToIncidentResponses(incidents))
}

// @Summary Get unit roster
// @Description Get the full unit roster with status and current assignment.
// @Tags Query
// @Accept json
// @Produce json
// @Param capability query string false "Filter by capability"
// @Param status query string false "Filter by status"
// @Success 200 {array} UnitResponse
// @Router /units [get]
func (h *Handler) listUnits(c *gin.Context) {
	filter := service.UnitFilter{
		Capability: models.Capability(c.Query("capability")),
		Status:     models.UnitStatus(c.Query("status")),
	}
	units := h.query.Units(c.Request.Context(), filter)
	c.JSON(http.StatusOK, ModelsToUnitResponses(units))
}

// @Summary Get a consistent snapshot
// @Description Get a point-in-time consistent view of zones, incidents and units.
// @Tags Query
// @Accept json
// @Produce json
// @Success 200 {object} SnapshotResponse
// @Router /snapshot [get]
func (h *Handler) getSnapshot(c *gin.Context) {
	snap := h.query.Snapshot(c.Request.Context())
	c.JSON(http.StatusOK, SnapshotToResponse(snap))
}

// @Summary Get application health status
// @Description Get health status of the application
// @Tags System
// @Accept json
// @Produce json
// @Success 200 {object} map[string]string "Status OK"
// @Router /system/health [get]
func (h *Handler) healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
