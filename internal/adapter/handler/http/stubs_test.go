package http

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sm8ta/garage_maintenance_microservice/internal/core/domain"
	"github.com/sm8ta/garage_maintenance_microservice/internal/core/ports"
)

type nopLogger struct{}

func (nopLogger) Debug(string, map[string]interface{}) {}
func (nopLogger) Info(string, map[string]interface{})  {}
func (nopLogger) Warn(string, map[string]interface{})  {}
func (nopLogger) Error(string, map[string]interface{}) {}

type stubMetrics struct {
	mu       sync.Mutex
	recorded int
	warnings []string
}

func (m *stubMetrics) RecordMetrics(*gin.Context, time.Time) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.recorded++
}

func (m *stubMetrics) IncWarning(op string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.warnings = append(m.warnings, op)
}

// stubTokens accepts the token "good" for user.
type stubTokens struct {
	user uuid.UUID
}

func (s stubTokens) VerifyToken(token string) (*domain.TokenPayload, error) {
	if token != "good" {
		return nil, errors.New("bad token")
	}
	return &domain.TokenPayload{UserID: s.user}, nil
}

type stubVehicles struct {
	ports.VehicleService
	vehicle   *domain.Vehicle
	err       error
	created   *domain.Vehicle
	mileageKm int
}

func (s *stubVehicles) CreateVehicle(_ context.Context, v *domain.Vehicle) (*domain.Vehicle, error) {
	if s.err != nil {
		return nil, s.err
	}
	s.created = v
	out := *v
	out.ID = uuid.New()
	return &out, nil
}

func (s *stubVehicles) GetVehicle(_ context.Context, id, userID uuid.UUID) (*domain.Vehicle, error) {
	if s.err != nil {
		return nil, s.err
	}
	if s.vehicle == nil || s.vehicle.ID != id || s.vehicle.UserID != userID {
		return nil, domain.ErrNotFound
	}
	return s.vehicle, nil
}

func (s *stubVehicles) ListVehicles(_ context.Context, userID uuid.UUID) ([]*domain.Vehicle, error) {
	if s.vehicle != nil && s.vehicle.UserID == userID {
		return []*domain.Vehicle{s.vehicle}, nil
	}
	return nil, nil
}

func (s *stubVehicles) UpdateMileage(_ context.Context, id, userID uuid.UUID, km int) (*domain.Vehicle, error) {
	if km < 0 {
		return nil, domain.ErrValidation
	}
	s.mileageKm = km
	out := *s.vehicle
	out.CurrentKm = km
	return &out, nil
}

type stubComponents struct {
	ports.ComponentCatalogService
	input    ports.CreateComponentInput
	catalog  []*domain.ComponentCatalogEntry
	instance *domain.VehicleComponent
	err      error
}

func (s *stubComponents) ListCatalog(_ context.Context, vt domain.VehicleType, _ uuid.UUID) ([]*domain.ComponentCatalogEntry, error) {
	if !vt.IsValid() {
		return nil, domain.ErrValidation
	}
	return s.catalog, nil
}

func (s *stubComponents) CreateUserComponent(_ context.Context, in ports.CreateComponentInput) (*domain.ComponentCatalogEntry, error) {
	if s.err != nil {
		return nil, s.err
	}
	s.input = in
	owner := in.OwnerUserID
	return &domain.ComponentCatalogEntry{
		ID: uuid.New(), OwnerScope: domain.ScopeUser, OwnerUserID: &owner,
		VehicleType: in.VehicleType, Name: in.Name, IsActive: true, SortOrder: domain.UserComponentSortOrder,
	}, nil
}

func (s *stubComponents) EnsureInstance(_ context.Context, vehicleID, catalogID, _ uuid.UUID) (*domain.VehicleComponent, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.instance, nil
}

type stubTypes struct {
	ports.MaintenanceTypeService
	mapped   []*domain.MaintenanceTypeCatalogEntry
	unmapped []*domain.MaintenanceTypeCatalogEntry
	result   *ports.CreateTypeResult
}

func (s *stubTypes) ListMappedTypes(context.Context, uuid.UUID, uuid.UUID) ([]*domain.MaintenanceTypeCatalogEntry, error) {
	return s.mapped, nil
}

func (s *stubTypes) ListUnmappedTypes(context.Context, uuid.UUID, uuid.UUID) ([]*domain.MaintenanceTypeCatalogEntry, error) {
	return s.unmapped, nil
}

func (s *stubTypes) CreateUserType(context.Context, ports.CreateTypeInput) (*ports.CreateTypeResult, error) {
	return s.result, nil
}

type stubEvents struct {
	ports.MaintenanceEventService
	input  ports.EventInput
	query  domain.EventQuery
	result *ports.EventResult
	events []*domain.MaintenanceEvent
	err    error
}

func (s *stubEvents) RecordEvent(_ context.Context, in ports.EventInput) (*ports.EventResult, error) {
	if s.err != nil {
		return nil, s.err
	}
	s.input = in
	return s.result, nil
}

func (s *stubEvents) ListEvents(_ context.Context, _, _ uuid.UUID, q domain.EventQuery) ([]*domain.MaintenanceEvent, error) {
	s.query = q
	return s.events, nil
}
