package http

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sm8ta/garage_maintenance_microservice/internal/core/domain"
	"github.com/sm8ta/garage_maintenance_microservice/internal/core/ports"
)

type VehicleHandler struct {
	vehicleService ports.VehicleService
	logger         ports.LoggerPort
	metrics        ports.MetricsPort
}

func NewVehicleHandler(
	vehicleService ports.VehicleService,
	logger ports.LoggerPort,
	metrics ports.MetricsPort,
) *VehicleHandler {
	return &VehicleHandler{
		vehicleService: vehicleService,
		logger:         logger,
		metrics:        metrics,
	}
}

// parseUUIDParam reads a path parameter and answers 400 when it is malformed.
func parseUUIDParam(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		newErrorResponse(c, http.StatusBadRequest, "Invalid "+name)
		return uuid.Nil, false
	}
	return id, true
}

// @Summary Create vehicle
// @Description Adds a vehicle to the caller's garage
// @Tags vehicles
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body VehicleRequest true "Vehicle data"
// @Success 201 {object} VehicleResponse "Vehicle created"
// @Failure 400 {object} errorResponse "Invalid request"
// @Failure 401 {object} errorResponse "Unauthorized"
// @Router /vehicles [post]
func (h *VehicleHandler) CreateVehicle(c *gin.Context) {
	start := time.Now()
	defer func() {
		h.metrics.RecordMetrics(c, start)
	}()

	payload, exists := getAuthPayload(c, authorizationPayloadKey)
	if !exists {
		h.logger.Warn("Unauthorized access attempt to CreateVehicle", map[string]interface{}{
			"ip": c.ClientIP(),
		})
		newErrorResponse(c, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var req VehicleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Error("Failed JSON parse in create vehicle", map[string]interface{}{
			"error": err.Error(),
		})
		newBindErrorResponse(c, err)
		return
	}

	vehicle := &domain.Vehicle{
		UserID:    payload.UserID,
		Brand:     req.Brand,
		Model:     req.Model,
		Year:      req.Year,
		Type:      domain.VehicleType(req.Type),
		CurrentKm: req.CurrentKm,
		VIN:       req.VIN,
	}
	if req.FirstRegistration != nil {
		t := time.Time(*req.FirstRegistration)
		vehicle.FirstRegistration = &t
	}

	created, err := h.vehicleService.CreateVehicle(c.Request.Context(), vehicle)
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusCreated, toVehicleResponse(created))
}

// @Summary List my vehicles
// @Tags vehicles
// @Security BearerAuth
// @Produce json
// @Success 200 {object} GetMyVehiclesResponse
// @Failure 401 {object} errorResponse "Unauthorized"
// @Router /vehicles/my [get]
func (h *VehicleHandler) GetMyVehicles(c *gin.Context) {
	start := time.Now()
	defer func() {
		h.metrics.RecordMetrics(c, start)
	}()

	payload, exists := getAuthPayload(c, authorizationPayloadKey)
	if !exists {
		newErrorResponse(c, http.StatusUnauthorized, "Unauthorized")
		return
	}

	vehicles, err := h.vehicleService.ListVehicles(c.Request.Context(), payload.UserID)
	if err != nil {
		handleError(c, err)
		return
	}

	resp := GetMyVehiclesResponse{
		Vehicles: make([]VehicleResponse, 0, len(vehicles)),
		Count:    len(vehicles),
	}
	for _, v := range vehicles {
		resp.Vehicles = append(resp.Vehicles, toVehicleResponse(v))
	}

	c.JSON(http.StatusOK, resp)
}

// @Summary Get vehicle
// @Tags vehicles
// @Security BearerAuth
// @Produce json
// @Param id path string true "Vehicle ID"
// @Success 200 {object} VehicleResponse
// @Failure 401 {object} errorResponse "Unauthorized"
// @Failure 404 {object} errorResponse "Vehicle not found"
// @Router /vehicles/{id} [get]
func (h *VehicleHandler) GetVehicle(c *gin.Context) {
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

	vehicle, err := h.vehicleService.GetVehicle(c.Request.Context(), vehicleID, payload.UserID)
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, toVehicleResponse(vehicle))
}

// @Summary Correct mileage
// @Description Sets the odometer reading directly; it may go down
// @Tags vehicles
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "Vehicle ID"
// @Param request body MileageRequest true "New reading"
// @Success 200 {object} VehicleResponse
// @Failure 400 {object} errorResponse "Invalid request"
// @Failure 404 {object} errorResponse "Vehicle not found"
// @Router /vehicles/{id}/mileage [put]
func (h *VehicleHandler) UpdateMileage(c *gin.Context) {
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

	var req MileageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		newBindErrorResponse(c, err)
		return
	}

	vehicle, err := h.vehicleService.UpdateMileage(c.Request.Context(), vehicleID, payload.UserID, *req.CurrentKm)
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, toVehicleResponse(vehicle))
}

// @Summary Delete vehicle
// @Description Removes the vehicle together with its components and history
// @Tags vehicles
// @Security BearerAuth
// @Produce json
// @Param id path string true "Vehicle ID"
// @Success 200 {object} successResponse
// @Failure 404 {object} errorResponse "Vehicle not found"
// @Router /vehicles/{id} [delete]
func (h *VehicleHandler) DeleteVehicle(c *gin.Context) {
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

	if err := h.vehicleService.DeleteVehicle(c.Request.Context(), vehicleID, payload.UserID); err != nil {
		handleError(c, err)
		return
	}

	h.logger.Info("Vehicle deleted", map[string]interface{}{
		"vehicle_id": vehicleID,
		"user_id":    payload.UserID,
	})

	newSuccessResponse(c, http.StatusOK, "Vehicle deleted successfully", nil)
}
