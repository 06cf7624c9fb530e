package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/sm8ta/garage_maintenance_microservice/internal/core/domain"
	"github.com/sm8ta/garage_maintenance_microservice/internal/core/ports"
)

type MaintenanceEventService struct {
	eventRepo     ports.MaintenanceEventRepository
	componentRepo ports.ComponentRepository
	typeRepo      ports.MaintenanceTypeRepository
	vehicles      ports.VehicleService
	logger        ports.LoggerPort
	validate      *validator.Validate
}

func NewMaintenanceEventService(
	eventRepo ports.MaintenanceEventRepository,
	componentRepo ports.ComponentRepository,
	typeRepo ports.MaintenanceTypeRepository,
	vehicles ports.VehicleService,
	logger ports.LoggerPort,
	validate *validator.Validate,
) *MaintenanceEventService {
	return &MaintenanceEventService{
		eventRepo:     eventRepo,
		componentRepo: componentRepo,
		typeRepo:      typeRepo,
		vehicles:      vehicles,
		logger:        logger,
		validate:      validate,
	}
}

// RecordEvent stores a performed maintenance and then raises the vehicle's
// mileage to the reported odometer value if it is higher. The raise is best
// effort; its failure comes back as EventResult.OdometerWarning.
func (s *MaintenanceEventService) RecordEvent(ctx context.Context, input ports.EventInput) (*ports.EventResult, error) {
	event, err := s.prepare(ctx, input)
	if err != nil {
		return nil, err
	}
	event.ID = uuid.New()

	created, err := s.eventRepo.CreateEvent(ctx, event)
	if err != nil {
		s.logger.Error("Failed to record maintenance event", map[string]interface{}{
			"error":      err.Error(),
			"vehicle_id": input.VehicleID,
		})
		return nil, err
	}

	s.logger.Info("Maintenance event recorded", map[string]interface{}{
		"event_id":   created.ID,
		"vehicle_id": created.VehicleID,
	})

	return s.raiseOdometer(ctx, created), nil
}

// UpdateEvent replaces every mutable field of the event with input.
func (s *MaintenanceEventService) UpdateEvent(ctx context.Context, eventID uuid.UUID, input ports.EventInput) (*ports.EventResult, error) {
	existing, err := s.eventRepo.GetEventByID(ctx, eventID)
	if err != nil {
		return nil, err
	}
	if err := s.checkOwner(ctx, existing, input.UserID); err != nil {
		return nil, err
	}
	if input.VehicleID != existing.VehicleID {
		return nil, fmt.Errorf("%w: event cannot move to another vehicle", domain.ErrValidation)
	}

	event, err := s.prepare(ctx, input)
	if err != nil {
		return nil, err
	}
	event.ID = eventID

	updated, err := s.eventRepo.UpdateEvent(ctx, event)
	if err != nil {
		s.logger.Error("Failed to update maintenance event", map[string]interface{}{
			"error":    err.Error(),
			"event_id": eventID,
		})
		return nil, err
	}

	s.logger.Info("Maintenance event updated", map[string]interface{}{
		"event_id": eventID,
	})

	return s.raiseOdometer(ctx, updated), nil
}

func (s *MaintenanceEventService) GetEvent(ctx context.Context, eventID, userID uuid.UUID) (*domain.MaintenanceEvent, error) {
	event, err := s.eventRepo.GetEventByID(ctx, eventID)
	if err != nil {
		return nil, err
	}
	if err := s.checkOwner(ctx, event, userID); err != nil {
		return nil, err
	}
	return event, nil
}

// checkOwner hides events of vehicles the user does not own behind not found.
func (s *MaintenanceEventService) checkOwner(ctx context.Context, event *domain.MaintenanceEvent, userID uuid.UUID) error {
	if _, err := s.vehicles.GetVehicle(ctx, event.VehicleID, userID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return notFound("maintenance event")
		}
		return err
	}
	return nil
}

func (s *MaintenanceEventService) ListEvents(ctx context.Context, vehicleID, userID uuid.UUID, query domain.EventQuery) ([]*domain.MaintenanceEvent, error) {
	if _, err := s.vehicles.GetVehicle(ctx, vehicleID, userID); err != nil {
		return nil, err
	}

	events, err := s.eventRepo.GetEventsByVehicleID(ctx, vehicleID, query)
	if err != nil {
		s.logger.Error("Failed to list maintenance events", map[string]interface{}{
			"error":      err.Error(),
			"vehicle_id": vehicleID,
		})
		return nil, err
	}

	s.logger.Info("Retrieved maintenance history", map[string]interface{}{
		"vehicle_id":   vehicleID,
		"events_count": len(events),
	})

	return events, nil
}

// prepare runs every check before a write is attempted.
func (s *MaintenanceEventService) prepare(ctx context.Context, input ports.EventInput) (*domain.MaintenanceEvent, error) {
	input.CustomName = trimOptional(input.CustomName)
	input.Note = trimOptional(input.Note)

	if err := s.validate.Struct(input); err != nil {
		s.logger.Error("Maintenance event validation failed", map[string]interface{}{
			"error": err.Error(),
		})
		return nil, validationError(err)
	}
	if len(input.Details) > 0 && !json.Valid(input.Details) {
		return nil, fmt.Errorf("%w: details must be valid JSON", domain.ErrValidation)
	}

	if _, err := s.vehicles.GetVehicle(ctx, input.VehicleID, input.UserID); err != nil {
		return nil, err
	}

	instance, err := s.componentRepo.GetInstanceByID(ctx, input.VehicleComponentID)
	if err != nil {
		return nil, err
	}
	if instance.VehicleID != input.VehicleID {
		s.logger.Warn("Cross-vehicle component reference rejected", map[string]interface{}{
			"vehicle_id":           input.VehicleID,
			"vehicle_component_id": input.VehicleComponentID,
		})
		return nil, fmt.Errorf("%w: component belongs to another vehicle", domain.ErrValidation)
	}

	if input.MaintenanceTypeID != nil {
		typ, err := s.typeRepo.GetTypeByID(ctx, *input.MaintenanceTypeID)
		if err != nil {
			return nil, err
		}
		if !domain.IsVisible(typ, input.UserID) {
			return nil, notFound("maintenance type")
		}
	}

	return &domain.MaintenanceEvent{
		VehicleID:          input.VehicleID,
		VehicleComponentID: input.VehicleComponentID,
		MaintenanceTypeID:  input.MaintenanceTypeID,
		PerformedAt:        input.PerformedAt,
		KmAtService:        *input.KmAtService,
		CustomName:         input.CustomName,
		Note:               input.Note,
		IntervalKm:         input.IntervalKm,
		IntervalTimeMonths: input.IntervalTimeMonths,
		Details:            input.Details,
	}, nil
}

func (s *MaintenanceEventService) raiseOdometer(ctx context.Context, event *domain.MaintenanceEvent) *ports.EventResult {
	result := &ports.EventResult{Event: event}

	raised, err := s.vehicles.RaiseMileage(ctx, event.VehicleID, event.KmAtService)
	if err != nil {
		s.logger.Warn("Could not update vehicle mileage", map[string]interface{}{
			"error":      err.Error(),
			"vehicle_id": event.VehicleID,
			"km":         event.KmAtService,
		})
		result.OdometerWarning = err
		return result
	}
	result.OdometerRaised = raised

	return result
}
