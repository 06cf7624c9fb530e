package domain

import (
	"time"

	"github.com/google/uuid"
)

type MaintenanceTypeCatalogEntry struct {
	ID          uuid.UUID  `json:"id"`
	OwnerScope  OwnerScope `json:"owner_scope"`
	OwnerUserID *uuid.UUID `json:"owner_user_id,omitempty"`
	Name        string     `json:"name" validate:"required,max=100"`
	Description *string    `json:"description,omitempty" validate:"omitempty,max=500"`
	IsStandard  bool       `json:"is_standard"`
	CreatedAt   time.Time  `json:"created_at"`
}

func (m *MaintenanceTypeCatalogEntry) Scope() OwnerScope { return m.OwnerScope }
func (m *MaintenanceTypeCatalogEntry) Owner() *uuid.UUID { return m.OwnerUserID }

type MaintenanceTypeComponentLink struct {
	ID                 uuid.UUID `json:"id"`
	MaintenanceTypeID  uuid.UUID `json:"maintenance_type_id"`
	ComponentCatalogID uuid.UUID `json:"component_catalog_id"`
	CreatedAt          time.Time `json:"created_at"`
}
