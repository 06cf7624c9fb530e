package ports

import (
	"context"

	"github.com/google/uuid"
	"github.com/sm8ta/garage_maintenance_microservice/internal/core/domain"
)

type MaintenanceTypeRepository interface {
	CreateType(ctx context.Context, entry *domain.MaintenanceTypeCatalogEntry) (*domain.MaintenanceTypeCatalogEntry, error)
	GetTypeByID(ctx context.Context, id uuid.UUID) (*domain.MaintenanceTypeCatalogEntry, error)
	ListTypes(ctx context.Context, userID uuid.UUID) ([]*domain.MaintenanceTypeCatalogEntry, error)
	ListTypesByComponent(ctx context.Context, componentCatalogID, userID uuid.UUID) ([]*domain.MaintenanceTypeCatalogEntry, error)
	// UpsertLink returns the single link for the pair, creating it if absent.
	UpsertLink(ctx context.Context, maintenanceTypeID, componentCatalogID uuid.UUID) (*domain.MaintenanceTypeComponentLink, error)
	DeleteLink(ctx context.Context, maintenanceTypeID, componentCatalogID uuid.UUID) error
}

type MaintenanceTypeService interface {
	ListMappedTypes(ctx context.Context, componentCatalogID, userID uuid.UUID) ([]*domain.MaintenanceTypeCatalogEntry, error)
	ListUnmappedTypes(ctx context.Context, componentCatalogID, userID uuid.UUID) ([]*domain.MaintenanceTypeCatalogEntry, error)
	CreateUserType(ctx context.Context, input CreateTypeInput) (*CreateTypeResult, error)
	LinkType(ctx context.Context, maintenanceTypeID, componentCatalogID, userID uuid.UUID) (*domain.MaintenanceTypeComponentLink, error)
	UnlinkType(ctx context.Context, maintenanceTypeID, componentCatalogID, userID uuid.UUID) error
}

type CreateTypeInput struct {
	Name              string     `validate:"required,max=100"`
	Description       *string    `validate:"omitempty,max=500"`
	OwnerUserID       uuid.UUID  `validate:"required"`
	LinkToComponentID *uuid.UUID `validate:"omitempty"`
}

// CreateTypeResult carries the created type. LinkWarning is set when the type
// was stored but the requested component link was not.
type CreateTypeResult struct {
	Type        *domain.MaintenanceTypeCatalogEntry
	Link        *domain.MaintenanceTypeComponentLink
	LinkWarning error
}
