package services

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/sm8ta/garage_maintenance_microservice/internal/core/domain"
)

type nopLogger struct{}

func (nopLogger) Debug(string, map[string]interface{}) {}
func (nopLogger) Info(string, map[string]interface{})  {}
func (nopLogger) Warn(string, map[string]interface{})  {}
func (nopLogger) Error(string, map[string]interface{}) {}

var errCacheMiss = errors.New("cache miss")

type memCache struct {
	mu      sync.Mutex
	data    map[string][]byte
	deletes []string
}

func newMemCache() *memCache {
	return &memCache{data: map[string][]byte{}}
}

func (c *memCache) Get(key string) ([]byte, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	v, ok := c.data[key]
	if !ok {
		return nil, errCacheMiss
	}
	return v, nil
}

func (c *memCache) Set(key string, value []byte, _ time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data[key] = value
	return nil
}

func (c *memCache) Delete(key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.data, key)
	c.deletes = append(c.deletes, key)
	return nil
}

// memStore is an in-memory stand-in for the postgres repositories. The
// *Err fields force the matching operation to fail.
type memStore struct {
	mu sync.Mutex

	vehicles   map[uuid.UUID]*domain.Vehicle
	catalog    map[uuid.UUID]*domain.ComponentCatalogEntry
	instances  map[uuid.UUID]*domain.VehicleComponent
	types      map[uuid.UUID]*domain.MaintenanceTypeCatalogEntry
	links      map[uuid.UUID]*domain.MaintenanceTypeComponentLink
	events     map[uuid.UUID]*domain.MaintenanceEvent
	vehicleGet int

	raiseErr      error
	upsertLinkErr error
	createTypeErr error
	createEvtErr  error
}

func newMemStore() *memStore {
	return &memStore{
		vehicles:  map[uuid.UUID]*domain.Vehicle{},
		catalog:   map[uuid.UUID]*domain.ComponentCatalogEntry{},
		instances: map[uuid.UUID]*domain.VehicleComponent{},
		types:     map[uuid.UUID]*domain.MaintenanceTypeCatalogEntry{},
		links:     map[uuid.UUID]*domain.MaintenanceTypeComponentLink{},
		events:    map[uuid.UUID]*domain.MaintenanceEvent{},
	}
}

func missing(what string) error { return fmt.Errorf("%w: %s", domain.ErrNotFound, what) }

// vehicles

func (m *memStore) CreateVehicle(_ context.Context, v *domain.Vehicle) (*domain.Vehicle, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *v
	cp.CreatedAt = time.Now()
	m.vehicles[v.ID] = &cp
	out := cp
	return &out, nil
}

func (m *memStore) GetVehicleByID(_ context.Context, id uuid.UUID) (*domain.Vehicle, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.vehicleGet++
	v, ok := m.vehicles[id]
	if !ok {
		return nil, missing("vehicle")
	}
	cp := *v
	return &cp, nil
}

func (m *memStore) GetVehiclesByUserID(_ context.Context, userID uuid.UUID) ([]*domain.Vehicle, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*domain.Vehicle
	for _, v := range m.vehicles {
		if v.UserID == userID {
			cp := *v
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (m *memStore) SetCurrentKm(_ context.Context, id uuid.UUID, km int) (*domain.Vehicle, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.vehicles[id]
	if !ok {
		return nil, missing("vehicle")
	}
	v.CurrentKm = km
	cp := *v
	return &cp, nil
}

func (m *memStore) RaiseCurrentKm(_ context.Context, id uuid.UUID, km int) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.raiseErr != nil {
		return false, m.raiseErr
	}
	v, ok := m.vehicles[id]
	if !ok || v.CurrentKm >= km {
		return false, nil
	}
	v.CurrentKm = km
	return true, nil
}

func (m *memStore) DeleteVehicle(_ context.Context, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.vehicles[id]; !ok {
		return missing("vehicle")
	}
	delete(m.vehicles, id)
	return nil
}

// component catalog

func (m *memStore) CreateCatalogEntry(_ context.Context, e *domain.ComponentCatalogEntry) (*domain.ComponentCatalogEntry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *e
	m.catalog[e.ID] = &cp
	out := cp
	return &out, nil
}

func (m *memStore) GetCatalogEntryByID(_ context.Context, id uuid.UUID) (*domain.ComponentCatalogEntry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	e, ok := m.catalog[id]
	if !ok {
		return nil, missing("component")
	}
	cp := *e
	return &cp, nil
}

// ListCatalogEntries deliberately ignores scope so the service filter is exercised.
func (m *memStore) ListCatalogEntries(_ context.Context, _ domain.VehicleType, _ uuid.UUID) ([]*domain.ComponentCatalogEntry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]*domain.ComponentCatalogEntry, 0, len(m.catalog))
	for _, e := range m.catalog {
		cp := *e
		out = append(out, &cp)
	}
	return out, nil
}

func (m *memStore) GetInstancesByVehicleID(_ context.Context, vehicleID uuid.UUID) ([]*domain.VehicleComponent, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*domain.VehicleComponent
	for _, inst := range m.instances {
		if inst.VehicleID == vehicleID {
			cp := *inst
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (m *memStore) GetInstanceByID(_ context.Context, id uuid.UUID) (*domain.VehicleComponent, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	inst, ok := m.instances[id]
	if !ok {
		return nil, missing("vehicle component")
	}
	cp := *inst
	return &cp, nil
}

func (m *memStore) UpsertInstance(_ context.Context, vehicleID, catalogID uuid.UUID) (*domain.VehicleComponent, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, inst := range m.instances {
		if inst.VehicleID == vehicleID && inst.ComponentCatalogID == catalogID {
			cp := *inst
			return &cp, nil
		}
	}
	inst := &domain.VehicleComponent{ID: uuid.New(), VehicleID: vehicleID, ComponentCatalogID: catalogID, CreatedAt: time.Now()}
	m.instances[inst.ID] = inst
	cp := *inst
	return &cp, nil
}

func (m *memStore) SetInstanceAlias(_ context.Context, id uuid.UUID, alias *string) (*domain.VehicleComponent, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	inst, ok := m.instances[id]
	if !ok {
		return nil, missing("vehicle component")
	}
	inst.Alias = alias
	cp := *inst
	return &cp, nil
}

// maintenance types

func (m *memStore) CreateType(_ context.Context, t *domain.MaintenanceTypeCatalogEntry) (*domain.MaintenanceTypeCatalogEntry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.createTypeErr != nil {
		return nil, m.createTypeErr
	}
	cp := *t
	m.types[t.ID] = &cp
	out := cp
	return &out, nil
}

func (m *memStore) GetTypeByID(_ context.Context, id uuid.UUID) (*domain.MaintenanceTypeCatalogEntry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	t, ok := m.types[id]
	if !ok {
		return nil, missing("maintenance type")
	}
	cp := *t
	return &cp, nil
}

func (m *memStore) ListTypes(_ context.Context, _ uuid.UUID) ([]*domain.MaintenanceTypeCatalogEntry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]*domain.MaintenanceTypeCatalogEntry, 0, len(m.types))
	for _, t := range m.types {
		cp := *t
		out = append(out, &cp)
	}
	return out, nil
}

func (m *memStore) ListTypesByComponent(_ context.Context, componentID, _ uuid.UUID) ([]*domain.MaintenanceTypeCatalogEntry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*domain.MaintenanceTypeCatalogEntry
	for _, l := range m.links {
		if l.ComponentCatalogID != componentID {
			continue
		}
		if t, ok := m.types[l.MaintenanceTypeID]; ok {
			cp := *t
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (m *memStore) UpsertLink(_ context.Context, typeID, componentID uuid.UUID) (*domain.MaintenanceTypeComponentLink, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.upsertLinkErr != nil {
		return nil, m.upsertLinkErr
	}
	for _, l := range m.links {
		if l.MaintenanceTypeID == typeID && l.ComponentCatalogID == componentID {
			cp := *l
			return &cp, nil
		}
	}
	l := &domain.MaintenanceTypeComponentLink{ID: uuid.New(), MaintenanceTypeID: typeID, ComponentCatalogID: componentID}
	m.links[l.ID] = l
	cp := *l
	return &cp, nil
}

func (m *memStore) DeleteLink(_ context.Context, typeID, componentID uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for id, l := range m.links {
		if l.MaintenanceTypeID == typeID && l.ComponentCatalogID == componentID {
			delete(m.links, id)
		}
	}
	return nil
}

// maintenance events

func (m *memStore) CreateEvent(_ context.Context, e *domain.MaintenanceEvent) (*domain.MaintenanceEvent, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.createEvtErr != nil {
		return nil, m.createEvtErr
	}
	cp := *e
	cp.CreatedAt = time.Now()
	m.events[e.ID] = &cp
	out := cp
	return &out, nil
}

func (m *memStore) UpdateEvent(_ context.Context, e *domain.MaintenanceEvent) (*domain.MaintenanceEvent, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	old, ok := m.events[e.ID]
	if !ok {
		return nil, missing("maintenance event")
	}
	cp := *e
	cp.CreatedAt = old.CreatedAt
	m.events[e.ID] = &cp
	out := cp
	return &out, nil
}

func (m *memStore) GetEventByID(_ context.Context, id uuid.UUID) (*domain.MaintenanceEvent, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	e, ok := m.events[id]
	if !ok {
		return nil, missing("maintenance event")
	}
	cp := *e
	return &cp, nil
}

func (m *memStore) GetEventsByVehicleID(_ context.Context, vehicleID uuid.UUID, q domain.EventQuery) ([]*domain.MaintenanceEvent, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*domain.MaintenanceEvent
	for _, e := range m.events {
		if e.VehicleID == vehicleID {
			cp := *e
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if q.Ascending {
			return out[i].PerformedAt.Before(out[j].PerformedAt)
		}
		return out[i].PerformedAt.After(out[j].PerformedAt)
	})
	if q.Limit > 0 && len(out) > q.Limit {
		out = out[:q.Limit]
	}
	return out, nil
}

// harness wires every service to one memStore.
type harness struct {
	store      *memStore
	cache      *memCache
	vehicles   *VehicleService
	components *ComponentCatalogService
	types      *MaintenanceTypeService
	events     *MaintenanceEventService
}

func newHarness() *harness {
	store := newMemStore()
	cache := newMemCache()
	validate := validator.New()
	logger := nopLogger{}

	vehicles := NewVehicleService(store, logger, validate, cache, time.Minute)
	return &harness{
		store:      store,
		cache:      cache,
		vehicles:   vehicles,
		components: NewComponentCatalogService(store, vehicles, logger, validate),
		types:      NewMaintenanceTypeService(store, store, logger, validate),
		events:     NewMaintenanceEventService(store, store, store, vehicles, logger, validate),
	}
}

func (h *harness) addVehicle(owner uuid.UUID, vt domain.VehicleType, km int) *domain.Vehicle {
	v, err := h.vehicles.CreateVehicle(context.Background(), &domain.Vehicle{
		UserID:    owner,
		Brand:     "Honda",
		Model:     "CB500",
		Type:      vt,
		CurrentKm: km,
	})
	if err != nil {
		panic(err)
	}
	return v
}

func (h *harness) addGlobalComponent(name string, vt domain.VehicleType, sortOrder int) *domain.ComponentCatalogEntry {
	e := &domain.ComponentCatalogEntry{
		ID:          uuid.New(),
		OwnerScope:  domain.ScopeGlobal,
		VehicleType: vt,
		Name:        name,
		IsActive:    true,
		SortOrder:   sortOrder,
	}
	h.store.catalog[e.ID] = e
	return e
}

func (h *harness) addType(name string, owner *uuid.UUID) *domain.MaintenanceTypeCatalogEntry {
	t := &domain.MaintenanceTypeCatalogEntry{ID: uuid.New(), OwnerScope: domain.ScopeGlobal, Name: name}
	if owner != nil {
		t.OwnerScope = domain.ScopeUser
		t.OwnerUserID = owner
	}
	h.store.types[t.ID] = t
	return t
}

func (h *harness) link(t *domain.MaintenanceTypeCatalogEntry, c *domain.ComponentCatalogEntry) {
	l := &domain.MaintenanceTypeComponentLink{ID: uuid.New(), MaintenanceTypeID: t.ID, ComponentCatalogID: c.ID}
	h.store.links[l.ID] = l
}

func intPtr(v int) *int { return &v }

func strPtr(v string) *string { return &v }
