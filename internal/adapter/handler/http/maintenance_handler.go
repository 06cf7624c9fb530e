package http

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sm8ta/garage_maintenance_microservice/internal/core/domain"
	"github.com/sm8ta/garage_maintenance_microservice/internal/core/ports"
)

const odometerWarning = "maintenance was saved but the vehicle mileage could not be updated"

type MaintenanceHandler struct {
	eventService   ports.MaintenanceEventService
	vehicleService ports.VehicleService
	logger         ports.LoggerPort
	metrics        ports.MetricsPort
	now            func() time.Time
}

func NewMaintenanceHandler(
	eventService ports.MaintenanceEventService,
	vehicleService ports.VehicleService,
	logger ports.LoggerPort,
	metrics ports.MetricsPort,
) *MaintenanceHandler {
	return &MaintenanceHandler{
		eventService:   eventService,
		vehicleService: vehicleService,
		logger:         logger,
		metrics:        metrics,
		now:            time.Now,
	}
}

func (h *MaintenanceHandler) toInput(userID, vehicleID uuid.UUID, req *MaintenanceEventRequest) ports.EventInput {
	return ports.EventInput{
		UserID:             userID,
		VehicleID:          vehicleID,
		VehicleComponentID: req.VehicleComponentID,
		MaintenanceTypeID:  req.MaintenanceTypeID,
		PerformedAt:        time.Time(*req.PerformedAt),
		KmAtService:        req.KmAtService,
		CustomName:         req.CustomName,
		Note:               req.Note,
		IntervalKm:         req.IntervalKm,
		IntervalTimeMonths: req.IntervalTimeMonths,
		Details:            req.Details,
	}
}

func (h *MaintenanceHandler) writeResult(c *gin.Context, status int, message string, result *ports.EventResult) {
	data := toMaintenanceEventResponse(result.Event)
	if result.OdometerWarning != nil {
		h.metrics.IncWarning("odometer_raise")
		newPartialResponse(c, status, message, data, odometerWarning)
		return
	}
	newSuccessResponse(c, status, message, data)
}

// @Summary Record maintenance
// @Description Stores a performed maintenance and raises the vehicle mileage if the odometer reading is higher
// @Tags maintenance
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "Vehicle ID"
// @Param request body MaintenanceEventRequest true "Event data"
// @Success 201 {object} successResponse{data=MaintenanceEventResponse}
// @Failure 400 {object} errorResponse "Invalid request"
// @Failure 404 {object} errorResponse "Vehicle or component not found"
// @Router /vehicles/{id}/maintenance [post]
func (h *MaintenanceHandler) RecordEvent(c *gin.Context) {
	start := time.Now()
	defer func() {
		h.metrics.RecordMetrics(c, start)
	}()

	payload, exists := getAuthPayload(c, authorizationPayloadKey)
	if !exists {
		h.logger.Warn("Unauthorized access attempt to RecordEvent", map[string]interface{}{
			"ip": c.ClientIP(),
		})
		newErrorResponse(c, http.StatusUnauthorized, "Unauthorized")
		return
	}
	vehicleID, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	var req MaintenanceEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Error("Failed JSON parse in record maintenance", map[string]interface{}{
			"error": err.Error(),
		})
		newBindErrorResponse(c, err)
		return
	}

	result, err := h.eventService.RecordEvent(c.Request.Context(), h.toInput(payload.UserID, vehicleID, &req))
	if err != nil {
		handleError(c, err)
		return
	}

	h.writeResult(c, http.StatusCreated, "Maintenance recorded", result)
}

// @Summary Update maintenance
// @Description Replaces every field of the event
// @Tags maintenance
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "Vehicle ID"
// @Param event_id path string true "Event ID"
// @Param request body MaintenanceEventRequest true "Event data"
// @Success 200 {object} successResponse{data=MaintenanceEventResponse}
// @Failure 400 {object} errorResponse "Invalid request"
// @Failure 404 {object} errorResponse "Event not found"
// @Router /vehicles/{id}/maintenance/{event_id} [put]
func (h *MaintenanceHandler) UpdateEvent(c *gin.Context) {
	start := time.Now()
	defer func() {
		h.metrics.RecordMetrics(c, start)
	}()

	payload, exists := getAuthPayload(c, authorizationPayloadKey)
	if !exists {
		newErrorResponse(c, http.StatusUnauthorized, "Unauthorized")
		return
	}
	vehicleID, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}
	eventID, ok := parseUUIDParam(c, "event_id")
	if !ok {
		return
	}

	var req MaintenanceEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		newBindErrorResponse(c, err)
		return
	}

	result, err := h.eventService.UpdateEvent(c.Request.Context(), eventID, h.toInput(payload.UserID, vehicleID, &req))
	if err != nil {
		handleError(c, err)
		return
	}

	h.writeResult(c, http.StatusOK, "Maintenance updated", result)
}

// @Summary Get maintenance event
// @Tags maintenance
// @Security BearerAuth
// @Produce json
// @Param id path string true "Vehicle ID"
// @Param event_id path string true "Event ID"
// @Success 200 {object} MaintenanceEventResponse
// @Failure 404 {object} errorResponse "Event not found"
// @Router /vehicles/{id}/maintenance/{event_id} [get]
func (h *MaintenanceHandler) GetEvent(c *gin.Context) {
	start := time.Now()
	defer func() {
		h.metrics.RecordMetrics(c, start)
	}()

	payload, exists := getAuthPayload(c, authorizationPayloadKey)
	if !exists {
		newErrorResponse(c, http.StatusUnauthorized, "Unauthorized")
		return
	}
	vehicleID, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}
	eventID, ok := parseUUIDParam(c, "event_id")
	if !ok {
		return
	}

	event, err := h.eventService.GetEvent(c.Request.Context(), eventID, payload.UserID)
	if err != nil {
		handleError(c, err)
		return
	}
	if event.VehicleID != vehicleID {
		newErrorResponse(c, http.StatusNotFound, "not found: maintenance event")
		return
	}

	c.JSON(http.StatusOK, toMaintenanceEventResponse(event))
}

// @Summary Maintenance history
// @Description Events of a vehicle with interval progress against the current mileage
// @Tags maintenance
// @Security BearerAuth
// @Produce json
// @Param id path string true "Vehicle ID"
// @Param limit query int false "Maximum number of events"
// @Param order query string false "desc (default) or asc"
// @Success 200 {object} HistoryResponse
// @Failure 400 {object} errorResponse "Invalid query"
// @Failure 404 {object} errorResponse "Vehicle not found"
// @Router /vehicles/{id}/maintenance [get]
func (h *MaintenanceHandler) ListHistory(c *gin.Context) {
	start := time.Now()
	defer func() {
		h.metrics.RecordMetrics(c, start)
	}()

	payload, exists := getAuthPayload(c, authorizationPayloadKey)
	if !exists {
		newErrorResponse(c, http.StatusUnauthorized, "Unauthorized")
		return
	}
	vehicleID, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	var query domain.EventQuery
	if raw := c.Query("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil || limit < 0 {
			newErrorResponse(c, http.StatusBadRequest, "Invalid limit")
			return
		}
		query.Limit = limit
	}
	switch c.DefaultQuery("order", "desc") {
	case "asc":
		query.Ascending = true
	case "desc":
	default:
		newErrorResponse(c, http.StatusBadRequest, "Invalid order")
		return
	}

	vehicle, err := h.vehicleService.GetVehicle(c.Request.Context(), vehicleID, payload.UserID)
	if err != nil {
		handleError(c, err)
		return
	}

	events, err := h.eventService.ListEvents(c.Request.Context(), vehicleID, payload.UserID, query)
	if err != nil {
		handleError(c, err)
		return
	}

	now := h.now()
	resp := HistoryResponse{
		VehicleID: vehicle.ID,
		CurrentKm: vehicle.CurrentKm,
		Events:    make([]MaintenanceEventResponse, 0, len(events)),
		Count:     len(events),
	}
	for _, e := range events {
		row := toMaintenanceEventResponse(e)
		row.Progress = domain.ComputeProgress(e, vehicle.CurrentKm, now)
		resp.Events = append(resp.Events, row)
	}

	c.JSON(http.StatusOK, resp)
}
