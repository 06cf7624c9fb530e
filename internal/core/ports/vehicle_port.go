package ports

import (
	"context"

	"github.com/google/uuid"
	"github.com/sm8ta/garage_maintenance_microservice/internal/core/domain"
)

type VehicleRepository interface {
	CreateVehicle(ctx context.Context, vehicle *domain.Vehicle) (*domain.Vehicle, error)
	GetVehicleByID(ctx context.Context, vehicleID uuid.UUID) (*domain.Vehicle, error)
	GetVehiclesByUserID(ctx context.Context, userID uuid.UUID) ([]*domain.Vehicle, error)
	SetCurrentKm(ctx context.Context, vehicleID uuid.UUID, km int) (*domain.Vehicle, error)
	// RaiseCurrentKm sets current_km to km only if it is currently lower.
	// It reports whether a row changed.
	RaiseCurrentKm(ctx context.Context, vehicleID uuid.UUID, km int) (bool, error)
	DeleteVehicle(ctx context.Context, vehicleID uuid.UUID) error
}

type VehicleService interface {
	CreateVehicle(ctx context.Context, vehicle *domain.Vehicle) (*domain.Vehicle, error)
	GetVehicle(ctx context.Context, vehicleID, userID uuid.UUID) (*domain.Vehicle, error)
	ListVehicles(ctx context.Context, userID uuid.UUID) ([]*domain.Vehicle, error)
	UpdateMileage(ctx context.Context, vehicleID, userID uuid.UUID, km int) (*domain.Vehicle, error)
	RaiseMileage(ctx context.Context, vehicleID uuid.UUID, km int) (bool, error)
	DeleteVehicle(ctx context.Context, vehicleID, userID uuid.UUID) error
}
