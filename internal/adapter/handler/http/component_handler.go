package http

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sm8ta/garage_maintenance_microservice/internal/core/domain"
	"github.com/sm8ta/garage_maintenance_microservice/internal/core/ports"
)

type ComponentHandler struct {
	componentService ports.ComponentCatalogService
	logger           ports.LoggerPort
	metrics          ports.MetricsPort
}

func NewComponentHandler(
	componentService ports.ComponentCatalogService,
	logger ports.LoggerPort,
	metrics ports.MetricsPort,
) *ComponentHandler {
	return &ComponentHandler{
		componentService: componentService,
		logger:           logger,
		metrics:          metrics,
	}
}

// @Summary List component catalog
// @Description Active catalog entries for a vehicle type visible to the caller
// @Tags components
// @Security BearerAuth
// @Produce json
// @Param vehicle_type query string true "car or motorcycle"
// @Success 200 {array} CatalogEntryResponse
// @Failure 400 {object} errorResponse "Invalid vehicle type"
// @Router /components [get]
func (h *ComponentHandler) ListCatalog(c *gin.Context) {
	start := time.Now()
	defer func() {
		h.metrics.RecordMetrics(c, start)
	}()

	payload, exists := getAuthPayload(c, authorizationPayloadKey)
	if !exists {
		newErrorResponse(c, http.StatusUnauthorized, "Unauthorized")
		return
	}

	vehicleType := domain.VehicleType(c.Query("vehicle_type"))
	entries, err := h.componentService.ListCatalog(c.Request.Context(), vehicleType, payload.UserID)
	if err != nil {
		handleError(c, err)
		return
	}

	resp := make([]CatalogEntryResponse, 0, len(entries))
	for _, e := range entries {
		resp = append(resp, toCatalogEntryResponse(e))
	}
	c.JSON(http.StatusOK, resp)
}

// @Summary Create custom component
// @Description Adds a component to the caller's private catalog
// @Tags components
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body ComponentRequest true "Component data"
// @Success 201 {object} CatalogEntryResponse "Component created"
// @Failure 400 {object} errorResponse "Invalid request"
// @Failure 401 {object} errorResponse "Unauthorized"
// @Router /components [post]
func (h *ComponentHandler) CreateComponent(c *gin.Context) {
	start := time.Now()
	defer func() {
		h.metrics.RecordMetrics(c, start)
	}()

	payload, exists := getAuthPayload(c, authorizationPayloadKey)
	if !exists {
		h.logger.Warn("Unauthorized access attempt to CreateComponent", map[string]interface{}{
			"ip": c.ClientIP(),
		})
		newErrorResponse(c, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var req ComponentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Error("Failed JSON parse in create component", map[string]interface{}{
			"error": err.Error(),
		})
		newBindErrorResponse(c, err)
		return
	}

	created, err := h.componentService.CreateUserComponent(c.Request.Context(), ports.CreateComponentInput{
		Name:        req.Name,
		VehicleType: domain.VehicleType(req.VehicleType),
		IconID:      req.IconID,
		OwnerUserID: payload.UserID,
	})
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusCreated, toCatalogEntryResponse(created))
}

// @Summary List vehicle components
// @Description Components attached to the vehicle, in catalog order
// @Tags components
// @Security BearerAuth
// @Produce json
// @Param id path string true "Vehicle ID"
// @Param vehicle_type query string false "Defaults to the vehicle's type"
// @Success 200 {array} VehicleComponentResponse
// @Failure 404 {object} errorResponse "Vehicle not found"
// @Router /vehicles/{id}/components [get]
func (h *ComponentHandler) ListVehicleComponents(c *gin.Context) {
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

	instances, err := h.componentService.ListApplicableComponents(
		c.Request.Context(), vehicleID, domain.VehicleType(c.Query("vehicle_type")), payload.UserID)
	if err != nil {
		handleError(c, err)
		return
	}

	resp := make([]VehicleComponentResponse, 0, len(instances))
	for _, inst := range instances {
		resp = append(resp, toVehicleComponentResponse(inst))
	}
	c.JSON(http.StatusOK, resp)
}

// @Summary Attach component to vehicle
// @Description Idempotent: attaching the same catalog entry twice returns the existing instance
// @Tags components
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "Vehicle ID"
// @Param request body EnsureInstanceRequest true "Catalog entry"
// @Success 200 {object} VehicleComponentResponse
// @Failure 400 {object} errorResponse "Invalid request"
// @Failure 404 {object} errorResponse "Vehicle or component not found"
// @Router /vehicles/{id}/components [post]
func (h *ComponentHandler) EnsureInstance(c *gin.Context) {
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

	var req EnsureInstanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		newBindErrorResponse(c, err)
		return
	}

	instance, err := h.componentService.EnsureInstance(c.Request.Context(), vehicleID, req.ComponentCatalogID, payload.UserID)
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, toVehicleComponentResponse(instance))
}

// @Summary Rename vehicle component
// @Description Sets or clears the display alias of an attached component
// @Tags components
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "Vehicle ID"
// @Param instance_id path string true "Vehicle component ID"
// @Param request body AliasRequest true "Alias, null to clear"
// @Success 200 {object} VehicleComponentResponse
// @Failure 400 {object} errorResponse "Invalid request"
// @Failure 404 {object} errorResponse "Not found"
// @Router /vehicles/{id}/components/{instance_id}/alias [put]
func (h *ComponentHandler) SetAlias(c *gin.Context) {
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
	instanceID, ok := parseUUIDParam(c, "instance_id")
	if !ok {
		return
	}

	var req AliasRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		newBindErrorResponse(c, err)
		return
	}

	instance, err := h.componentService.SetInstanceAlias(c.Request.Context(), instanceID, vehicleID, payload.UserID, req.Alias)
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, toVehicleComponentResponse(instance))
}
