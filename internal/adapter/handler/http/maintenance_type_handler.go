package http

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sm8ta/garage_maintenance_microservice/internal/core/ports"
)

type MaintenanceTypeHandler struct {
	typeService ports.MaintenanceTypeService
	logger      ports.LoggerPort
	metrics     ports.MetricsPort
}

func NewMaintenanceTypeHandler(
	typeService ports.MaintenanceTypeService,
	logger ports.LoggerPort,
	metrics ports.MetricsPort,
) *MaintenanceTypeHandler {
	return &MaintenanceTypeHandler{
		typeService: typeService,
		logger:      logger,
		metrics:     metrics,
	}
}

// @Summary List maintenance types for a component
// @Description mapped=true (default) returns types linked to the component, mapped=false the rest
// @Tags maintenance-types
// @Security BearerAuth
// @Produce json
// @Param id path string true "Component catalog ID"
// @Param mapped query bool false "Linked or unlinked types"
// @Success 200 {array} MaintenanceTypeResponse
// @Failure 404 {object} errorResponse "Component not found"
// @Router /components/{id}/maintenance-types [get]
func (h *MaintenanceTypeHandler) ListForComponent(c *gin.Context) {
	start := time.Now()
	defer func() {
		h.metrics.RecordMetrics(c, start)
	}()

	payload, exists := getAuthPayload(c, authorizationPayloadKey)
	if !exists {
		newErrorResponse(c, http.StatusUnauthorized, "Unauthorized")
		return
	}
	componentID, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	mapped, err := strconv.ParseBool(c.DefaultQuery("mapped", "true"))
	if err != nil {
		newErrorResponse(c, http.StatusBadRequest, "Invalid mapped flag")
		return
	}

	list := h.typeService.ListMappedTypes
	if !mapped {
		list = h.typeService.ListUnmappedTypes
	}
	types, err := list(c.Request.Context(), componentID, payload.UserID)
	if err != nil {
		handleError(c, err)
		return
	}

	resp := make([]MaintenanceTypeResponse, 0, len(types))
	for _, t := range types {
		resp = append(resp, toMaintenanceTypeResponse(t))
	}
	c.JSON(http.StatusOK, resp)
}

// @Summary Create custom maintenance type
// @Description Creates a private type, optionally linked to a component. A failed link still returns 201 with a warning.
// @Tags maintenance-types
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body MaintenanceTypeRequest true "Type data"
// @Success 201 {object} successResponse{data=CreateTypeResponse}
// @Failure 400 {object} errorResponse "Invalid request"
// @Failure 404 {object} errorResponse "Component not found"
// @Router /maintenance-types [post]
func (h *MaintenanceTypeHandler) CreateType(c *gin.Context) {
	start := time.Now()
	defer func() {
		h.metrics.RecordMetrics(c, start)
	}()

	payload, exists := getAuthPayload(c, authorizationPayloadKey)
	if !exists {
		newErrorResponse(c, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var req MaintenanceTypeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Error("Failed JSON parse in create maintenance type", map[string]interface{}{
			"error": err.Error(),
		})
		newBindErrorResponse(c, err)
		return
	}

	result, err := h.typeService.CreateUserType(c.Request.Context(), ports.CreateTypeInput{
		Name:              req.Name,
		Description:       req.Description,
		OwnerUserID:       payload.UserID,
		LinkToComponentID: req.LinkToComponentID,
	})
	if err != nil {
		handleError(c, err)
		return
	}

	data := CreateTypeResponse{
		Type:   toMaintenanceTypeResponse(result.Type),
		Linked: result.Link != nil,
	}
	if result.LinkWarning != nil {
		h.metrics.IncWarning("maintenance_type_link")
		newPartialResponse(c, http.StatusCreated, "Maintenance type created", data,
			"maintenance type was created but could not be linked to the component")
		return
	}

	newSuccessResponse(c, http.StatusCreated, "Maintenance type created", data)
}

// @Summary Link maintenance type to component
// @Tags maintenance-types
// @Security BearerAuth
// @Produce json
// @Param id path string true "Maintenance type ID"
// @Param component_id path string true "Component catalog ID"
// @Success 200 {object} successResponse
// @Failure 400 {object} errorResponse "Both entries are global"
// @Failure 404 {object} errorResponse "Not found"
// @Router /maintenance-types/{id}/components/{component_id} [put]
func (h *MaintenanceTypeHandler) Link(c *gin.Context) {
	start := time.Now()
	defer func() {
		h.metrics.RecordMetrics(c, start)
	}()

	payload, exists := getAuthPayload(c, authorizationPayloadKey)
	if !exists {
		newErrorResponse(c, http.StatusUnauthorized, "Unauthorized")
		return
	}
	typeID, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}
	componentID, ok := parseUUIDParam(c, "component_id")
	if !ok {
		return
	}

	link, err := h.typeService.LinkType(c.Request.Context(), typeID, componentID, payload.UserID)
	if err != nil {
		handleError(c, err)
		return
	}

	newSuccessResponse(c, http.StatusOK, "Linked", link)
}

// @Summary Unlink maintenance type from component
// @Tags maintenance-types
// @Security BearerAuth
// @Produce json
// @Param id path string true "Maintenance type ID"
// @Param component_id path string true "Component catalog ID"
// @Success 200 {object} successResponse
// @Failure 404 {object} errorResponse "Not found"
// @Router /maintenance-types/{id}/components/{component_id} [delete]
func (h *MaintenanceTypeHandler) Unlink(c *gin.Context) {
	start := time.Now()
	defer func() {
		h.metrics.RecordMetrics(c, start)
	}()

	payload, exists := getAuthPayload(c, authorizationPayloadKey)
	if !exists {
		newErrorResponse(c, http.StatusUnauthorized, "Unauthorized")
		return
	}
	typeID, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}
	componentID, ok := parseUUIDParam(c, "component_id")
	if !ok {
		return
	}

	if err := h.typeService.UnlinkType(c.Request.Context(), typeID, componentID, payload.UserID); err != nil {
		handleError(c, err)
		return
	}

	newSuccessResponse(c, http.StatusOK, "Unlinked", nil)
}
