package domain

import (
	"time"

	"github.com/google/uuid"
)

type VehicleType string

const (
	Car        VehicleType = "car"
	Motorcycle VehicleType = "motorcycle"
)

func (t VehicleType) IsValid() bool {
	return t == Car || t == Motorcycle
}

// swagger:model domain.Vehicle
type Vehicle struct {
	ID                uuid.UUID   `json:"id"`
	UserID            uuid.UUID   `json:"user_id" validate:"required"`
	Brand             string      `json:"brand" validate:"required,max=100"`
	Model             string      `json:"model" validate:"required,max=100"`
	Year              *int        `json:"year,omitempty" validate:"omitempty,min=1886,max=2100"`
	Type              VehicleType `json:"type" validate:"required,oneof=car motorcycle"`
	CurrentKm         int         `json:"current_km" validate:"min=0"`
	VIN               *string     `json:"vin,omitempty" validate:"omitempty,max=17"`
	FirstRegistration *time.Time  `json:"first_registration,omitempty"`
	CreatedAt         time.Time   `json:"created_at"`
}
