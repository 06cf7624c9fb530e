package services

import (
	"context"
	"encoding/json"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/sm8ta/garage_maintenance_microservice/internal/core/domain"
	"github.com/sm8ta/garage_maintenance_microservice/internal/core/ports"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type eventFixture struct {
	h        *harness
	owner    uuid.UUID
	vehicle  *domain.Vehicle
	instance *domain.VehicleComponent
}

func newEventFixture(t *testing.T, km int) *eventFixture {
	t.Helper()
	h := newHarness()
	owner := uuid.New()
	v := h.addVehicle(owner, domain.Car, km)
	brakes := h.addGlobalComponent("Brakes", domain.Car, 1)
	inst, err := h.components.EnsureInstance(context.Background(), v.ID, brakes.ID, owner)
	require.NoError(t, err)
	return &eventFixture{h: h, owner: owner, vehicle: v, instance: inst}
}

func (f *eventFixture) input(km int) ports.EventInput {
	return ports.EventInput{
		UserID:             f.owner,
		VehicleID:          f.vehicle.ID,
		VehicleComponentID: f.instance.ID,
		PerformedAt:        time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC),
		KmAtService:        intPtr(km),
	}
}

func (f *eventFixture) currentKm(t *testing.T) int {
	t.Helper()
	v, err := f.h.vehicles.GetVehicle(context.Background(), f.vehicle.ID, f.owner)
	require.NoError(t, err)
	return v.CurrentKm
}

func TestMaintenanceEventService_RecordEvent_NeverLowersOdometer(t *testing.T) {
	f := newEventFixture(t, 10000)
	ctx := context.Background()

	result, err := f.h.events.RecordEvent(ctx, f.input(8000))
	require.NoError(t, err)
	assert.False(t, result.OdometerRaised)
	assert.NoError(t, result.OdometerWarning)
	assert.Equal(t, 10000, f.currentKm(t))

	result, err = f.h.events.RecordEvent(ctx, f.input(12000))
	require.NoError(t, err)
	assert.True(t, result.OdometerRaised)
	assert.Equal(t, 12000, f.currentKm(t))
}

func TestMaintenanceEventService_RecordEvent_Validation(t *testing.T) {
	f := newEventFixture(t, 0)
	ctx := context.Background()

	tests := []struct {
		name   string
		mutate func(in *ports.EventInput)
	}{
		{name: "missing vehicle", mutate: func(in *ports.EventInput) { in.VehicleID = uuid.Nil }},
		{name: "missing component", mutate: func(in *ports.EventInput) { in.VehicleComponentID = uuid.Nil }},
		{name: "missing date", mutate: func(in *ports.EventInput) { in.PerformedAt = time.Time{} }},
		{name: "missing odometer", mutate: func(in *ports.EventInput) { in.KmAtService = nil }},
		{name: "negative odometer", mutate: func(in *ports.EventInput) { in.KmAtService = intPtr(-1) }},
		{name: "zero km interval", mutate: func(in *ports.EventInput) { in.IntervalKm = intPtr(0) }},
		{name: "negative month interval", mutate: func(in *ports.EventInput) { in.IntervalTimeMonths = intPtr(-3) }},
		{name: "bad details", mutate: func(in *ports.EventInput) { in.Details = json.RawMessage(`{oops`) }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := f.input(100)
			tt.mutate(&in)
			_, err := f.h.events.RecordEvent(ctx, in)
			assert.ErrorIs(t, err, domain.ErrValidation)
		})
	}
	assert.Empty(t, f.h.store.events)
}

func TestMaintenanceEventService_RecordEvent_ZeroOdometerIsValid(t *testing.T) {
	f := newEventFixture(t, 0)
	result, err := f.h.events.RecordEvent(context.Background(), f.input(0))
	require.NoError(t, err)
	assert.Equal(t, 0, result.Event.KmAtService)
}

func TestMaintenanceEventService_RecordEvent_RejectsCrossVehicleComponent(t *testing.T) {
	f := newEventFixture(t, 0)
	ctx := context.Background()
	second := f.h.addVehicle(f.owner, domain.Car, 0)

	in := f.input(100)
	in.VehicleID = second.ID
	_, err := f.h.events.RecordEvent(ctx, in)
	assert.ErrorIs(t, err, domain.ErrValidation)
	assert.Empty(t, f.h.store.events)
}

func TestMaintenanceEventService_RecordEvent_NotFound(t *testing.T) {
	f := newEventFixture(t, 0)
	ctx := context.Background()

	in := f.input(100)
	in.UserID = uuid.New()
	_, err := f.h.events.RecordEvent(ctx, in)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	in = f.input(100)
	in.VehicleComponentID = uuid.New()
	_, err = f.h.events.RecordEvent(ctx, in)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	stranger := uuid.New()
	hidden := f.h.addType("Hidden", &stranger)
	in = f.input(100)
	in.MaintenanceTypeID = &hidden.ID
	_, err = f.h.events.RecordEvent(ctx, in)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestMaintenanceEventService_RecordEvent_OdometerFailureIsWarning(t *testing.T) {
	f := newEventFixture(t, 100)
	f.h.store.raiseErr = fmt.Errorf("%w: timeout", domain.ErrDependency)

	result, err := f.h.events.RecordEvent(context.Background(), f.input(500))
	require.NoError(t, err)
	require.NotNil(t, result.Event)
	assert.ErrorIs(t, result.OdometerWarning, domain.ErrDependency)
	assert.False(t, result.OdometerRaised)
	assert.Len(t, f.h.store.events, 1)
}

func TestMaintenanceEventService_RecordEvent_StoreFailure(t *testing.T) {
	f := newEventFixture(t, 100)
	f.h.store.createEvtErr = fmt.Errorf("%w: down", domain.ErrDependency)

	_, err := f.h.events.RecordEvent(context.Background(), f.input(500))
	assert.ErrorIs(t, err, domain.ErrDependency)
	assert.Equal(t, 100, f.currentKm(t))
}

func TestMaintenanceEventService_UpdateEvent_ReplacesAllFields(t *testing.T) {
	f := newEventFixture(t, 1000)
	ctx := context.Background()
	typ := f.h.addType("Oil change", nil)

	in := f.input(1000)
	in.MaintenanceTypeID = &typ.ID
	in.CustomName = strPtr("First")
	in.Note = strPtr("note")
	in.IntervalKm = intPtr(5000)
	created, err := f.h.events.RecordEvent(ctx, in)
	require.NoError(t, err)

	upd := f.input(3000)
	upd.IntervalTimeMonths = intPtr(12)
	result, err := f.h.events.UpdateEvent(ctx, created.Event.ID, upd)
	require.NoError(t, err)

	got := result.Event
	assert.Equal(t, created.Event.ID, got.ID)
	assert.Nil(t, got.MaintenanceTypeID)
	assert.Nil(t, got.CustomName)
	assert.Nil(t, got.Note)
	assert.Nil(t, got.IntervalKm)
	require.NotNil(t, got.IntervalTimeMonths)
	assert.Equal(t, 12, *got.IntervalTimeMonths)
	assert.Equal(t, 3000, got.KmAtService)
	assert.True(t, result.OdometerRaised)
	assert.Equal(t, 3000, f.currentKm(t))
}

func TestMaintenanceEventService_UpdateEvent_Rejections(t *testing.T) {
	f := newEventFixture(t, 1000)
	ctx := context.Background()
	created, err := f.h.events.RecordEvent(ctx, f.input(1000))
	require.NoError(t, err)

	bad := f.input(2000)
	bad.KmAtService = nil
	_, err = f.h.events.UpdateEvent(ctx, created.Event.ID, bad)
	assert.ErrorIs(t, err, domain.ErrValidation)

	stranger := f.input(2000)
	stranger.UserID = uuid.New()
	_, err = f.h.events.UpdateEvent(ctx, created.Event.ID, stranger)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	other := f.h.addVehicle(f.owner, domain.Car, 0)
	moved := f.input(2000)
	moved.VehicleID = other.ID
	_, err = f.h.events.UpdateEvent(ctx, created.Event.ID, moved)
	assert.ErrorIs(t, err, domain.ErrValidation)

	_, err = f.h.events.UpdateEvent(ctx, uuid.New(), f.input(2000))
	assert.ErrorIs(t, err, domain.ErrNotFound)

	stored, err := f.h.events.GetEvent(ctx, created.Event.ID, f.owner)
	require.NoError(t, err)
	assert.Equal(t, 1000, stored.KmAtService)
}

func TestMaintenanceEventService_ListEvents(t *testing.T) {
	f := newEventFixture(t, 0)
	ctx := context.Background()

	for i := 1; i <= 4; i++ {
		in := f.input(i * 1000)
		in.PerformedAt = time.Date(2025, time.Month(i), 1, 0, 0, 0, 0, time.UTC)
		_, err := f.h.events.RecordEvent(ctx, in)
		require.NoError(t, err)
	}

	recent, err := f.h.events.ListEvents(ctx, f.vehicle.ID, f.owner, domain.EventQuery{Limit: 3})
	require.NoError(t, err)
	require.Len(t, recent, 3)
	assert.Equal(t, 4000, recent[0].KmAtService)

	calendar, err := f.h.events.ListEvents(ctx, f.vehicle.ID, f.owner, domain.EventQuery{Ascending: true})
	require.NoError(t, err)
	require.Len(t, calendar, 4)
	assert.Equal(t, 1000, calendar[0].KmAtService)

	_, err = f.h.events.ListEvents(ctx, f.vehicle.ID, uuid.New(), domain.EventQuery{})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = f.h.events.GetEvent(ctx, recent[0].ID, uuid.New())
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// Walks through the whole flow from a new vehicle to a due maintenance.
func TestMaintenanceFlow_EndToEnd(t *testing.T) {
	h := newHarness()
	ctx := context.Background()
	user := uuid.New()

	vehicle, err := h.vehicles.CreateVehicle(ctx, &domain.Vehicle{
		UserID: user, Brand: "BMW", Model: "R 1250 GS", Type: domain.Motorcycle, CurrentKm: 0,
	})
	require.NoError(t, err)

	component, err := h.components.CreateUserComponent(ctx, ports.CreateComponentInput{
		Name: "Custom Filter", VehicleType: domain.Motorcycle, OwnerUserID: user,
	})
	require.NoError(t, err)

	instance, err := h.components.EnsureInstance(ctx, vehicle.ID, component.ID, user)
	require.NoError(t, err)

	created, err := h.types.CreateUserType(ctx, ports.CreateTypeInput{
		Name: "Custom Service", OwnerUserID: user, LinkToComponentID: &component.ID,
	})
	require.NoError(t, err)
	require.NoError(t, created.LinkWarning)

	recorded, err := h.events.RecordEvent(ctx, ports.EventInput{
		UserID:             user,
		VehicleID:          vehicle.ID,
		VehicleComponentID: instance.ID,
		MaintenanceTypeID:  &created.Type.ID,
		PerformedAt:        time.Now().UTC(),
		KmAtService:        intPtr(500),
		IntervalKm:         intPtr(1000),
	})
	require.NoError(t, err)

	current, err := h.vehicles.GetVehicle(ctx, vehicle.ID, user)
	require.NoError(t, err)
	assert.Equal(t, 500, current.CurrentKm)

	now := time.Now()
	p := domain.ComputeProgress(recorded.Event, current.CurrentKm, now)
	require.NotNil(t, p)
	assert.Equal(t, 0.0, p.Percent)

	p = domain.ComputeProgress(recorded.Event, 1500, now)
	require.NotNil(t, p)
	assert.Equal(t, 100.0, p.Percent)
	assert.Equal(t, 1000.0, p.Consumed)
}
