package domain

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

type MaintenanceEvent struct {
	ID                 uuid.UUID       `json:"id"`
	VehicleID          uuid.UUID       `json:"vehicle_id" validate:"required"`
	VehicleComponentID uuid.UUID       `json:"vehicle_component_id" validate:"required"`
	MaintenanceTypeID  *uuid.UUID      `json:"maintenance_type_id,omitempty"`
	PerformedAt        time.Time       `json:"performed_at" validate:"required"`
	KmAtService        int             `json:"km_at_service" validate:"min=0"`
	CustomName         *string         `json:"custom_name,omitempty" validate:"omitempty,max=200"`
	Note               *string         `json:"note,omitempty"`
	IntervalKm         *int            `json:"interval_km,omitempty" validate:"omitempty,gt=0"`
	IntervalTimeMonths *int            `json:"interval_time_months,omitempty" validate:"omitempty,gt=0"`
	Details            json.RawMessage `json:"details,omitempty"`
	CreatedAt          time.Time       `json:"created_at"`

	// Joined for display; not written back.
	MaintenanceTypeName string `json:"maintenance_type_name,omitempty"`
	ComponentName       string `json:"component_name,omitempty"`
}

// EventQuery narrows a history listing. Limit <= 0 means no limit.
type EventQuery struct {
	Limit     int
	Ascending bool
}
