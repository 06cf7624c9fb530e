package http

import (
	"encoding/json"
	"time"

	"github.com/go-openapi/strfmt"
	"github.com/go-openapi/swag"
	"github.com/google/uuid"
	"github.com/sm8ta/garage_maintenance_microservice/internal/core/domain"
)

type VehicleRequest struct {
	Brand             string       `json:"brand" binding:"required" example:"BMW"`
	Model             string       `json:"model" binding:"required" example:"R 1250 GS"`
	Year              *int         `json:"year,omitempty" example:"2021"`
	Type              string       `json:"type" binding:"required" example:"motorcycle"`
	CurrentKm         int          `json:"current_km" example:"12500"`
	VIN               *string      `json:"vin,omitempty" example:"WB10A1300MZ123456"`
	FirstRegistration *strfmt.Date `json:"first_registration,omitempty" swaggertype:"string" example:"2021-04-15"`
}

type MileageRequest struct {
	CurrentKm *int `json:"current_km" binding:"required" example:"13000"`
}

type VehicleResponse struct {
	ID                uuid.UUID    `json:"id"`
	UserID            uuid.UUID    `json:"user_id"`
	Brand             string       `json:"brand"`
	Model             string       `json:"model"`
	Year              *int         `json:"year,omitempty"`
	Type              string       `json:"type"`
	CurrentKm         int          `json:"current_km"`
	VIN               string       `json:"vin,omitempty"`
	FirstRegistration *strfmt.Date `json:"first_registration,omitempty" swaggertype:"string"`
	CreatedAt         time.Time    `json:"created_at"`
}

type GetMyVehiclesResponse struct {
	Vehicles []VehicleResponse `json:"vehicles"`
	Count    int               `json:"count"`
}

func toVehicleResponse(v *domain.Vehicle) VehicleResponse {
	resp := VehicleResponse{
		ID:        v.ID,
		UserID:    v.UserID,
		Brand:     v.Brand,
		Model:     v.Model,
		Year:      v.Year,
		Type:      string(v.Type),
		CurrentKm: v.CurrentKm,
		VIN:       swag.StringValue(v.VIN),
		CreatedAt: v.CreatedAt,
	}
	if v.FirstRegistration != nil {
		d := strfmt.Date(*v.FirstRegistration)
		resp.FirstRegistration = &d
	}
	return resp
}

type ComponentRequest struct {
	Name        string  `json:"name" binding:"required" example:"Custom Filter"`
	VehicleType string  `json:"vehicle_type" binding:"required" example:"car"`
	IconID      *string `json:"icon_id,omitempty" example:"wrench"`
}

type CatalogEntryResponse struct {
	ID          uuid.UUID  `json:"id"`
	OwnerScope  string     `json:"owner_scope"`
	OwnerUserID *uuid.UUID `json:"owner_user_id,omitempty"`
	VehicleType string     `json:"vehicle_type"`
	Name        string     `json:"name"`
	IconID      string     `json:"icon_id,omitempty"`
	IsActive    bool       `json:"is_active"`
	SortOrder   int        `json:"sort_order"`
}

func toCatalogEntryResponse(e *domain.ComponentCatalogEntry) CatalogEntryResponse {
	return CatalogEntryResponse{
		ID:          e.ID,
		OwnerScope:  string(e.OwnerScope),
		OwnerUserID: e.OwnerUserID,
		VehicleType: string(e.VehicleType),
		Name:        e.Name,
		IconID:      swag.StringValue(e.IconID),
		IsActive:    e.IsActive,
		SortOrder:   e.SortOrder,
	}
}

type EnsureInstanceRequest struct {
	ComponentCatalogID uuid.UUID `json:"component_catalog_id" binding:"required" swaggertype:"string" example:"6f1c1a0e-2f3b-4a55-9d7e-1b2c3d4e5f60"`
}

type AliasRequest struct {
	Alias *string `json:"alias" example:"Front brakes"`
}

type VehicleComponentResponse struct {
	ID                 uuid.UUID             `json:"id"`
	VehicleID          uuid.UUID             `json:"vehicle_id"`
	ComponentCatalogID uuid.UUID             `json:"component_catalog_id"`
	Alias              string                `json:"alias,omitempty"`
	DisplayName        string                `json:"display_name"`
	Catalog            *CatalogEntryResponse `json:"catalog,omitempty"`
}

func toVehicleComponentResponse(v *domain.VehicleComponent) VehicleComponentResponse {
	resp := VehicleComponentResponse{
		ID:                 v.ID,
		VehicleID:          v.VehicleID,
		ComponentCatalogID: v.ComponentCatalogID,
		Alias:              swag.StringValue(v.Alias),
		DisplayName:        v.DisplayName(),
	}
	if v.Catalog != nil {
		entry := toCatalogEntryResponse(v.Catalog)
		resp.Catalog = &entry
	}
	return resp
}

type MaintenanceTypeRequest struct {
	Name              string     `json:"name" binding:"required" example:"Custom Service"`
	Description       *string    `json:"description,omitempty" example:"Replace both filters"`
	LinkToComponentID *uuid.UUID `json:"link_to_component_id,omitempty" swaggertype:"string"`
}

type MaintenanceTypeResponse struct {
	ID          uuid.UUID `json:"id"`
	OwnerScope  string    `json:"owner_scope"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	IsStandard  bool      `json:"is_standard"`
}

func toMaintenanceTypeResponse(t *domain.MaintenanceTypeCatalogEntry) MaintenanceTypeResponse {
	return MaintenanceTypeResponse{
		ID:          t.ID,
		OwnerScope:  string(t.OwnerScope),
		Name:        t.Name,
		Description: swag.StringValue(t.Description),
		IsStandard:  t.IsStandard,
	}
}

type CreateTypeResponse struct {
	Type   MaintenanceTypeResponse `json:"type"`
	Linked bool                    `json:"linked"`
}

type MaintenanceEventRequest struct {
	VehicleComponentID uuid.UUID       `json:"vehicle_component_id" binding:"required" swaggertype:"string"`
	MaintenanceTypeID  *uuid.UUID      `json:"maintenance_type_id,omitempty" swaggertype:"string"`
	PerformedAt        *strfmt.Date    `json:"performed_at" binding:"required" swaggertype:"string" example:"2025-03-01"`
	KmAtService        *int            `json:"km_at_service" binding:"required" example:"15000"`
	CustomName         *string         `json:"custom_name,omitempty" example:"Oil + filter"`
	Note               *string         `json:"note,omitempty"`
	IntervalKm         *int            `json:"interval_km,omitempty" example:"10000"`
	IntervalTimeMonths *int            `json:"interval_time_months,omitempty" example:"12"`
	Details            json.RawMessage `json:"details,omitempty" swaggertype:"object"`
}

type MaintenanceEventResponse struct {
	ID                  uuid.UUID        `json:"id"`
	VehicleID           uuid.UUID        `json:"vehicle_id"`
	VehicleComponentID  uuid.UUID        `json:"vehicle_component_id"`
	MaintenanceTypeID   *uuid.UUID       `json:"maintenance_type_id,omitempty"`
	MaintenanceTypeName string           `json:"maintenance_type_name,omitempty"`
	ComponentName       string           `json:"component_name,omitempty"`
	PerformedAt         strfmt.Date      `json:"performed_at" swaggertype:"string"`
	KmAtService         int              `json:"km_at_service"`
	CustomName          string           `json:"custom_name,omitempty"`
	Note                string           `json:"note,omitempty"`
	IntervalKm          *int             `json:"interval_km,omitempty"`
	IntervalTimeMonths  *int             `json:"interval_time_months,omitempty"`
	Details             json.RawMessage  `json:"details,omitempty" swaggertype:"object"`
	Progress            *domain.Progress `json:"progress,omitempty"`
}

func toMaintenanceEventResponse(e *domain.MaintenanceEvent) MaintenanceEventResponse {
	return MaintenanceEventResponse{
		ID:                  e.ID,
		VehicleID:           e.VehicleID,
		VehicleComponentID:  e.VehicleComponentID,
		MaintenanceTypeID:   e.MaintenanceTypeID,
		MaintenanceTypeName: e.MaintenanceTypeName,
		ComponentName:       e.ComponentName,
		PerformedAt:         strfmt.Date(e.PerformedAt),
		KmAtService:         e.KmAtService,
		CustomName:          swag.StringValue(e.CustomName),
		Note:                swag.StringValue(e.Note),
		IntervalKm:          e.IntervalKm,
		IntervalTimeMonths:  e.IntervalTimeMonths,
		Details:             e.Details,
	}
}

type HistoryResponse struct {
	VehicleID uuid.UUID                  `json:"vehicle_id"`
	CurrentKm int                        `json:"current_km"`
	Events    []MaintenanceEventResponse `json:"events"`
	Count     int                        `json:"count"`
}
