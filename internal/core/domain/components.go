package domain

import (
	"time"

	"github.com/google/uuid"
)

// UserComponentSortOrder places user components after every seeded global entry.
const UserComponentSortOrder = 999

type ComponentCatalogEntry struct {
	ID          uuid.UUID   `json:"id"`
	OwnerScope  OwnerScope  `json:"owner_scope"`
	OwnerUserID *uuid.UUID  `json:"owner_user_id,omitempty"`
	VehicleType VehicleType `json:"vehicle_type" validate:"required,oneof=car motorcycle"`
	Name        string      `json:"name" validate:"required,max=100"`
	IconID      *string     `json:"icon_id,omitempty"`
	IsActive    bool        `json:"is_active"`
	SortOrder   int         `json:"sort_order"`
	CreatedAt   time.Time   `json:"created_at"`
}

func (c *ComponentCatalogEntry) Scope() OwnerScope { return c.OwnerScope }
func (c *ComponentCatalogEntry) Owner() *uuid.UUID { return c.OwnerUserID }

type VehicleComponent struct {
	ID                 uuid.UUID              `json:"id"`
	VehicleID          uuid.UUID              `json:"vehicle_id"`
	ComponentCatalogID uuid.UUID              `json:"component_catalog_id"`
	Alias              *string                `json:"alias,omitempty"`
	Catalog            *ComponentCatalogEntry `json:"catalog,omitempty"`
	CreatedAt          time.Time              `json:"created_at"`
}

// DisplayName prefers the alias over the catalog name.
func (v *VehicleComponent) DisplayName() string {
	if v.Alias != nil && *v.Alias != "" {
		return *v.Alias
	}
	if v.Catalog != nil {
		return v.Catalog.Name
	}
	return ""
}
