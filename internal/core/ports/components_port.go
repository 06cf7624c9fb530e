package ports

import (
	"context"

	"github.com/google/uuid"
	"github.com/sm8ta/garage_maintenance_microservice/internal/core/domain"
)

type ComponentRepository interface {
	CreateCatalogEntry(ctx context.Context, entry *domain.ComponentCatalogEntry) (*domain.ComponentCatalogEntry, error)
	GetCatalogEntryByID(ctx context.Context, id uuid.UUID) (*domain.ComponentCatalogEntry, error)
	// ListCatalogEntries returns active entries for the vehicle type that the
	// store lets userID see.
	ListCatalogEntries(ctx context.Context, vehicleType domain.VehicleType, userID uuid.UUID) ([]*domain.ComponentCatalogEntry, error)
	GetInstancesByVehicleID(ctx context.Context, vehicleID uuid.UUID) ([]*domain.VehicleComponent, error)
	GetInstanceByID(ctx context.Context, id uuid.UUID) (*domain.VehicleComponent, error)
	// UpsertInstance returns the single instance for the pair, creating it if absent.
	UpsertInstance(ctx context.Context, vehicleID, componentCatalogID uuid.UUID) (*domain.VehicleComponent, error)
	SetInstanceAlias(ctx context.Context, id uuid.UUID, alias *string) (*domain.VehicleComponent, error)
}

type ComponentCatalogService interface {
	ListApplicableComponents(ctx context.Context, vehicleID uuid.UUID, vehicleType domain.VehicleType, userID uuid.UUID) ([]*domain.VehicleComponent, error)
	ListCatalog(ctx context.Context, vehicleType domain.VehicleType, userID uuid.UUID) ([]*domain.ComponentCatalogEntry, error)
	CreateUserComponent(ctx context.Context, input CreateComponentInput) (*domain.ComponentCatalogEntry, error)
	EnsureInstance(ctx context.Context, vehicleID, componentCatalogID, userID uuid.UUID) (*domain.VehicleComponent, error)
	SetInstanceAlias(ctx context.Context, instanceID, vehicleID, userID uuid.UUID, alias *string) (*domain.VehicleComponent, error)
}

type CreateComponentInput struct {
	Name        string             `validate:"required,max=100"`
	VehicleType domain.VehicleType `validate:"required,oneof=car motorcycle"`
	IconID      *string            `validate:"omitempty,max=64"`
	OwnerUserID uuid.UUID          `validate:"required"`
}
