package services

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/sm8ta/garage_maintenance_microservice/internal/core/domain"
	"github.com/sm8ta/garage_maintenance_microservice/internal/core/ports"
)

type ComponentCatalogService struct {
	componentRepo ports.ComponentRepository
	vehicles      ports.VehicleService
	logger        ports.LoggerPort
	validate      *validator.Validate
}

func NewComponentCatalogService(
	componentRepo ports.ComponentRepository,
	vehicles ports.VehicleService,
	logger ports.LoggerPort,
	validate *validator.Validate,
) *ComponentCatalogService {
	return &ComponentCatalogService{
		componentRepo: componentRepo,
		vehicles:      vehicles,
		logger:        logger,
		validate:      validate,
	}
}

// ListCatalog returns the active catalog entries for vehicleType that userID
// may see, ordered by sort order then name.
func (s *ComponentCatalogService) ListCatalog(ctx context.Context, vehicleType domain.VehicleType, userID uuid.UUID) ([]*domain.ComponentCatalogEntry, error) {
	if !vehicleType.IsValid() {
		return nil, fmt.Errorf("%w: unknown vehicle type %q", domain.ErrValidation, vehicleType)
	}

	entries, err := s.componentRepo.ListCatalogEntries(ctx, vehicleType, userID)
	if err != nil {
		s.logger.Error("Failed to list component catalog", map[string]interface{}{
			"error":        err.Error(),
			"vehicle_type": vehicleType,
		})
		return nil, err
	}

	applicable := make([]*domain.ComponentCatalogEntry, 0, len(entries))
	for _, e := range domain.FilterVisible(entries, userID) {
		if e.IsActive && e.VehicleType == vehicleType {
			applicable = append(applicable, e)
		}
	}
	sortCatalog(applicable)

	return applicable, nil
}

// ListApplicableComponents returns the component instances of a vehicle whose
// catalog entry is applicable to the vehicle type and visible to userID.
// An empty vehicleType is taken from the vehicle.
func (s *ComponentCatalogService) ListApplicableComponents(ctx context.Context, vehicleID uuid.UUID, vehicleType domain.VehicleType, userID uuid.UUID) ([]*domain.VehicleComponent, error) {
	vehicle, err := s.vehicles.GetVehicle(ctx, vehicleID, userID)
	if err != nil {
		return nil, err
	}
	if vehicleType == "" {
		vehicleType = vehicle.Type
	}

	catalog, err := s.ListCatalog(ctx, vehicleType, userID)
	if err != nil {
		return nil, err
	}
	byID := make(map[uuid.UUID]*domain.ComponentCatalogEntry, len(catalog))
	for _, e := range catalog {
		byID[e.ID] = e
	}

	instances, err := s.componentRepo.GetInstancesByVehicleID(ctx, vehicleID)
	if err != nil {
		s.logger.Error("Failed to get vehicle components", map[string]interface{}{
			"error":      err.Error(),
			"vehicle_id": vehicleID,
		})
		return nil, err
	}

	result := make([]*domain.VehicleComponent, 0, len(instances))
	for _, inst := range instances {
		entry, ok := byID[inst.ComponentCatalogID]
		if !ok {
			continue
		}
		inst.Catalog = entry
		result = append(result, inst)
	}
	sort.SliceStable(result, func(i, j int) bool {
		return catalogLess(result[i].Catalog, result[j].Catalog)
	})

	s.logger.Info("Retrieved components for vehicle", map[string]interface{}{
		"vehicle_id":       vehicleID,
		"components_count": len(result),
	})

	return result, nil
}

func (s *ComponentCatalogService) CreateUserComponent(ctx context.Context, input ports.CreateComponentInput) (*domain.ComponentCatalogEntry, error) {
	input.Name = strings.TrimSpace(input.Name)
	input.IconID = trimOptional(input.IconID)

	if err := s.validate.Struct(input); err != nil {
		s.logger.Error("Component validation failed", map[string]interface{}{
			"error": err.Error(),
		})
		return nil, validationError(err)
	}

	owner := input.OwnerUserID
	entry := &domain.ComponentCatalogEntry{
		ID:          uuid.New(),
		OwnerScope:  domain.ScopeUser,
		OwnerUserID: &owner,
		VehicleType: input.VehicleType,
		Name:        input.Name,
		IconID:      input.IconID,
		IsActive:    true,
		SortOrder:   domain.UserComponentSortOrder,
	}

	created, err := s.componentRepo.CreateCatalogEntry(ctx, entry)
	if err != nil {
		s.logger.Error("Failed to create component", map[string]interface{}{
			"error":   err.Error(),
			"user_id": owner,
		})
		return nil, err
	}

	s.logger.Info("Component created successfully", map[string]interface{}{
		"component_catalog_id": created.ID,
		"user_id":              owner,
		"name":                 created.Name,
	})

	return created, nil
}

// EnsureInstance attaches a catalog component to a vehicle. Calling it again
// for the same pair returns the existing instance.
func (s *ComponentCatalogService) EnsureInstance(ctx context.Context, vehicleID, componentCatalogID, userID uuid.UUID) (*domain.VehicleComponent, error) {
	vehicle, err := s.vehicles.GetVehicle(ctx, vehicleID, userID)
	if err != nil {
		return nil, err
	}

	entry, err := s.visibleCatalogEntry(ctx, componentCatalogID, userID)
	if err != nil {
		return nil, err
	}
	if entry.VehicleType != vehicle.Type {
		return nil, fmt.Errorf("%w: component is for %s, vehicle is %s", domain.ErrValidation, entry.VehicleType, vehicle.Type)
	}

	instance, err := s.componentRepo.UpsertInstance(ctx, vehicleID, componentCatalogID)
	if err != nil {
		s.logger.Error("Failed to ensure vehicle component", map[string]interface{}{
			"error":                err.Error(),
			"vehicle_id":           vehicleID,
			"component_catalog_id": componentCatalogID,
		})
		return nil, err
	}
	instance.Catalog = entry

	s.logger.Info("Vehicle component ensured", map[string]interface{}{
		"vehicle_component_id": instance.ID,
		"vehicle_id":           vehicleID,
	})

	return instance, nil
}

// SetInstanceAlias sets the display override of an instance; an empty alias
// clears it.
func (s *ComponentCatalogService) SetInstanceAlias(ctx context.Context, instanceID, vehicleID, userID uuid.UUID, alias *string) (*domain.VehicleComponent, error) {
	if _, err := s.vehicles.GetVehicle(ctx, vehicleID, userID); err != nil {
		return nil, err
	}

	instance, err := s.componentRepo.GetInstanceByID(ctx, instanceID)
	if err != nil {
		return nil, err
	}
	if instance.VehicleID != vehicleID {
		return nil, fmt.Errorf("%w: component belongs to another vehicle", domain.ErrValidation)
	}

	alias = trimOptional(alias)
	if alias != nil && len(*alias) > 100 {
		return nil, fmt.Errorf("%w: alias too long", domain.ErrValidation)
	}

	updated, err := s.componentRepo.SetInstanceAlias(ctx, instanceID, alias)
	if err != nil {
		s.logger.Error("Failed to set component alias", map[string]interface{}{
			"error":                err.Error(),
			"vehicle_component_id": instanceID,
		})
		return nil, err
	}

	return updated, nil
}

func (s *ComponentCatalogService) visibleCatalogEntry(ctx context.Context, id, userID uuid.UUID) (*domain.ComponentCatalogEntry, error) {
	entry, err := s.componentRepo.GetCatalogEntryByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !domain.IsVisible(entry, userID) {
		return nil, notFound("component")
	}
	return entry, nil
}

func sortCatalog(entries []*domain.ComponentCatalogEntry) {
	sort.SliceStable(entries, func(i, j int) bool {
		return catalogLess(entries[i], entries[j])
	})
}

func catalogLess(a, b *domain.ComponentCatalogEntry) bool {
	if a.SortOrder != b.SortOrder {
		return a.SortOrder < b.SortOrder
	}
	return a.Name < b.Name
}

func trimOptional(v *string) *string {
	if v == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*v)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}
