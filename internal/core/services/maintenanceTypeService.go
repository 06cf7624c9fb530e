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

type MaintenanceTypeService struct {
	typeRepo      ports.MaintenanceTypeRepository
	componentRepo ports.ComponentRepository
	logger        ports.LoggerPort
	validate      *validator.Validate
}

func NewMaintenanceTypeService(
	typeRepo ports.MaintenanceTypeRepository,
	componentRepo ports.ComponentRepository,
	logger ports.LoggerPort,
	validate *validator.Validate,
) *MaintenanceTypeService {
	return &MaintenanceTypeService{
		typeRepo:      typeRepo,
		componentRepo: componentRepo,
		logger:        logger,
		validate:      validate,
	}
}

// ListMappedTypes returns the visible types linked to the component, by name.
func (s *MaintenanceTypeService) ListMappedTypes(ctx context.Context, componentCatalogID, userID uuid.UUID) ([]*domain.MaintenanceTypeCatalogEntry, error) {
	if _, err := s.visibleComponent(ctx, componentCatalogID, userID); err != nil {
		return nil, err
	}
	return s.mappedTypes(ctx, componentCatalogID, userID)
}

// ListUnmappedTypes returns every visible type not linked to the component.
// Together with ListMappedTypes it covers all visible types exactly once.
func (s *MaintenanceTypeService) ListUnmappedTypes(ctx context.Context, componentCatalogID, userID uuid.UUID) ([]*domain.MaintenanceTypeCatalogEntry, error) {
	if _, err := s.visibleComponent(ctx, componentCatalogID, userID); err != nil {
		return nil, err
	}

	mapped, err := s.mappedTypes(ctx, componentCatalogID, userID)
	if err != nil {
		return nil, err
	}
	mappedIDs := make(map[uuid.UUID]struct{}, len(mapped))
	for _, t := range mapped {
		mappedIDs[t.ID] = struct{}{}
	}

	all, err := s.typeRepo.ListTypes(ctx, userID)
	if err != nil {
		s.logger.Error("Failed to list maintenance types", map[string]interface{}{
			"error":   err.Error(),
			"user_id": userID,
		})
		return nil, err
	}

	unmapped := make([]*domain.MaintenanceTypeCatalogEntry, 0, len(all))
	for _, t := range domain.FilterVisible(all, userID) {
		if _, ok := mappedIDs[t.ID]; !ok {
			unmapped = append(unmapped, t)
		}
	}
	sortTypes(unmapped)

	return unmapped, nil
}

func (s *MaintenanceTypeService) mappedTypes(ctx context.Context, componentCatalogID, userID uuid.UUID) ([]*domain.MaintenanceTypeCatalogEntry, error) {
	types, err := s.typeRepo.ListTypesByComponent(ctx, componentCatalogID, userID)
	if err != nil {
		s.logger.Error("Failed to list mapped maintenance types", map[string]interface{}{
			"error":                err.Error(),
			"component_catalog_id": componentCatalogID,
		})
		return nil, err
	}

	visible := dedupeTypes(domain.FilterVisible(types, userID))
	sortTypes(visible)
	return visible, nil
}

// CreateUserType stores a user-owned type and, when asked, links it to a
// component. A failed link does not undo the type; it is returned as
// LinkWarning instead.
func (s *MaintenanceTypeService) CreateUserType(ctx context.Context, input ports.CreateTypeInput) (*ports.CreateTypeResult, error) {
	input.Name = strings.TrimSpace(input.Name)
	input.Description = trimOptional(input.Description)

	if err := s.validate.Struct(input); err != nil {
		s.logger.Error("Maintenance type validation failed", map[string]interface{}{
			"error": err.Error(),
		})
		return nil, validationError(err)
	}

	if input.LinkToComponentID != nil {
		if _, err := s.visibleComponent(ctx, *input.LinkToComponentID, input.OwnerUserID); err != nil {
			return nil, err
		}
	}

	owner := input.OwnerUserID
	entry := &domain.MaintenanceTypeCatalogEntry{
		ID:          uuid.New(),
		OwnerScope:  domain.ScopeUser,
		OwnerUserID: &owner,
		Name:        input.Name,
		Description: input.Description,
		IsStandard:  true,
	}

	created, err := s.typeRepo.CreateType(ctx, entry)
	if err != nil {
		s.logger.Error("Failed to create maintenance type", map[string]interface{}{
			"error":   err.Error(),
			"user_id": owner,
		})
		return nil, err
	}

	result := &ports.CreateTypeResult{Type: created}

	if input.LinkToComponentID != nil {
		link, err := s.typeRepo.UpsertLink(ctx, created.ID, *input.LinkToComponentID)
		if err != nil {
			s.logger.Warn("Maintenance type created but not linked", map[string]interface{}{
				"error":                err.Error(),
				"maintenance_type_id":  created.ID,
				"component_catalog_id": *input.LinkToComponentID,
			})
			result.LinkWarning = err
		} else {
			result.Link = link
		}
	}

	s.logger.Info("Maintenance type created successfully", map[string]interface{}{
		"maintenance_type_id": created.ID,
		"user_id":             owner,
		"linked":              result.Link != nil,
	})

	return result, nil
}

// LinkType maps a type to a component. At least one side must be owned by
// userID; links between two global rows are seeded and read-only.
func (s *MaintenanceTypeService) LinkType(ctx context.Context, maintenanceTypeID, componentCatalogID, userID uuid.UUID) (*domain.MaintenanceTypeComponentLink, error) {
	if err := s.checkLinkable(ctx, maintenanceTypeID, componentCatalogID, userID); err != nil {
		return nil, err
	}

	link, err := s.typeRepo.UpsertLink(ctx, maintenanceTypeID, componentCatalogID)
	if err != nil {
		s.logger.Error("Failed to link maintenance type", map[string]interface{}{
			"error":                err.Error(),
			"maintenance_type_id":  maintenanceTypeID,
			"component_catalog_id": componentCatalogID,
		})
		return nil, err
	}

	s.logger.Info("Maintenance type linked", map[string]interface{}{
		"maintenance_type_id":  maintenanceTypeID,
		"component_catalog_id": componentCatalogID,
	})

	return link, nil
}

// UnlinkType removes a link. Removing a link that does not exist succeeds.
func (s *MaintenanceTypeService) UnlinkType(ctx context.Context, maintenanceTypeID, componentCatalogID, userID uuid.UUID) error {
	if err := s.checkLinkable(ctx, maintenanceTypeID, componentCatalogID, userID); err != nil {
		return err
	}

	if err := s.typeRepo.DeleteLink(ctx, maintenanceTypeID, componentCatalogID); err != nil {
		s.logger.Error("Failed to unlink maintenance type", map[string]interface{}{
			"error":                err.Error(),
			"maintenance_type_id":  maintenanceTypeID,
			"component_catalog_id": componentCatalogID,
		})
		return err
	}

	s.logger.Info("Maintenance type unlinked", map[string]interface{}{
		"maintenance_type_id":  maintenanceTypeID,
		"component_catalog_id": componentCatalogID,
	})

	return nil
}

func (s *MaintenanceTypeService) checkLinkable(ctx context.Context, maintenanceTypeID, componentCatalogID, userID uuid.UUID) error {
	typ, err := s.visibleType(ctx, maintenanceTypeID, userID)
	if err != nil {
		return err
	}
	component, err := s.visibleComponent(ctx, componentCatalogID, userID)
	if err != nil {
		return err
	}
	if typ.OwnerScope == domain.ScopeGlobal && component.OwnerScope == domain.ScopeGlobal {
		return fmt.Errorf("%w: links between global entries are read-only", domain.ErrValidation)
	}
	return nil
}

func (s *MaintenanceTypeService) visibleType(ctx context.Context, id, userID uuid.UUID) (*domain.MaintenanceTypeCatalogEntry, error) {
	typ, err := s.typeRepo.GetTypeByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !domain.IsVisible(typ, userID) {
		return nil, notFound("maintenance type")
	}
	return typ, nil
}

func (s *MaintenanceTypeService) visibleComponent(ctx context.Context, id, userID uuid.UUID) (*domain.ComponentCatalogEntry, error) {
	entry, err := s.componentRepo.GetCatalogEntryByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !domain.IsVisible(entry, userID) {
		return nil, notFound("component")
	}
	return entry, nil
}

func sortTypes(types []*domain.MaintenanceTypeCatalogEntry) {
	sort.SliceStable(types, func(i, j int) bool {
		return types[i].Name < types[j].Name
	})
}

func dedupeTypes(types []*domain.MaintenanceTypeCatalogEntry) []*domain.MaintenanceTypeCatalogEntry {
	seen := make(map[uuid.UUID]struct{}, len(types))
	out := types[:0]
	for _, t := range types {
		if _, ok := seen[t.ID]; ok {
			continue
		}
		seen[t.ID] = struct{}{}
		out = append(out, t)
	}
	return out
}
