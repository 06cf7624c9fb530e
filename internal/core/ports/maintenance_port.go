package ports

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/sm8ta/garage_maintenance_microservice/internal/core/domain"
)

type MaintenanceEventRepository interface {
	CreateEvent(ctx context.Context, event *domain.MaintenanceEvent) (*domain.MaintenanceEvent, error)
	UpdateEvent(ctx context.Context, event *domain.MaintenanceEvent) (*domain.MaintenanceEvent, error)
	GetEventByID(ctx context.Context, id uuid.UUID) (*domain.MaintenanceEvent, error)
	GetEventsByVehicleID(ctx context.Context, vehicleID uuid.UUID, query domain.EventQuery) ([]*domain.MaintenanceEvent, error)
}

type MaintenanceEventService interface {
	RecordEvent(ctx context.Context, input EventInput) (*EventResult, error)
	UpdateEvent(ctx context.Context, eventID uuid.UUID, input EventInput) (*EventResult, error)
	GetEvent(ctx context.Context, eventID, userID uuid.UUID) (*domain.MaintenanceEvent, error)
	ListEvents(ctx context.Context, vehicleID, userID uuid.UUID, query domain.EventQuery) ([]*domain.MaintenanceEvent, error)
}

// EventInput is authoritative for every mutable field on update.
type EventInput struct {
	UserID             uuid.UUID       `validate:"required"`
	VehicleID          uuid.UUID       `validate:"required"`
	VehicleComponentID uuid.UUID       `validate:"required"`
	MaintenanceTypeID  *uuid.UUID      `validate:"omitempty"`
	PerformedAt        time.Time       `validate:"required"`
	KmAtService        *int            `validate:"required,min=0"`
	CustomName         *string         `validate:"omitempty,max=200"`
	Note               *string         `validate:"omitempty,max=2000"`
	IntervalKm         *int            `validate:"omitempty,gt=0"`
	IntervalTimeMonths *int            `validate:"omitempty,gt=0"`
	Details            json.RawMessage `validate:"omitempty"`
}

// EventResult carries the stored event. OdometerWarning is set when the
// vehicle mileage could not be raised; the event itself was saved.
type EventResult struct {
	Event           *domain.MaintenanceEvent
	OdometerRaised  bool
	OdometerWarning error
}
