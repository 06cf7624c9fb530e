package services

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/sm8ta/garage_maintenance_microservice/internal/core/domain"
	"github.com/sm8ta/garage_maintenance_microservice/internal/core/ports"
)

type VehicleService struct {
	vehicleRepo ports.VehicleRepository
	logger      ports.LoggerPort
	validate    *validator.Validate
	cache       ports.CachePort
	cacheTTL    time.Duration
}

func NewVehicleService(
	vehicleRepo ports.VehicleRepository,
	logger ports.LoggerPort,
	validate *validator.Validate,
	cache ports.CachePort,
	cacheTTL time.Duration,
) *VehicleService {
	return &VehicleService{
		vehicleRepo: vehicleRepo,
		logger:      logger,
		validate:    validate,
		cache:       cache,
		cacheTTL:    cacheTTL,
	}
}

func vehicleCacheKey(id uuid.UUID) string {
	return fmt.Sprintf("vehicle:%s", id)
}

func (s *VehicleService) CreateVehicle(ctx context.Context, vehicle *domain.Vehicle) (*domain.Vehicle, error) {
	vehicle.Brand = strings.TrimSpace(vehicle.Brand)
	vehicle.Model = strings.TrimSpace(vehicle.Model)
	if vehicle.VIN != nil {
		vin := strings.ToUpper(strings.TrimSpace(*vehicle.VIN))
		if vin == "" {
			vehicle.VIN = nil
		} else {
			vehicle.VIN = &vin
		}
	}

	if err := s.validate.Struct(vehicle); err != nil {
		s.logger.Error("Vehicle validation failed", map[string]interface{}{
			"error": err.Error(),
		})
		return nil, validationError(err)
	}

	if vehicle.ID == uuid.Nil {
		vehicle.ID = uuid.New()
	}

	created, err := s.vehicleRepo.CreateVehicle(ctx, vehicle)
	if err != nil {
		s.logger.Error("Failed to create vehicle", map[string]interface{}{
			"error":   err.Error(),
			"user_id": vehicle.UserID,
		})
		return nil, err
	}

	s.logger.Info("Vehicle created successfully", map[string]interface{}{
		"vehicle_id": created.ID,
		"user_id":    created.UserID,
	})

	return created, nil
}

// GetVehicle returns the vehicle only when userID owns it. A vehicle owned by
// somebody else is reported as not found.
func (s *VehicleService) GetVehicle(ctx context.Context, vehicleID, userID uuid.UUID) (*domain.Vehicle, error) {
	vehicle, err := s.loadVehicle(ctx, vehicleID)
	if err != nil {
		return nil, err
	}

	if vehicle.UserID != userID {
		s.logger.Warn("Vehicle requested by non-owner", map[string]interface{}{
			"vehicle_id":   vehicleID,
			"requester_id": userID,
		})
		return nil, notFound("vehicle")
	}

	return vehicle, nil
}

func (s *VehicleService) loadVehicle(ctx context.Context, vehicleID uuid.UUID) (*domain.Vehicle, error) {
	cacheKey := vehicleCacheKey(vehicleID)
	cachedData, err := s.cache.Get(cacheKey)
	if err == nil {
		var cached domain.Vehicle
		if err := json.Unmarshal(cachedData, &cached); err == nil {
			s.logger.Debug("Vehicle found in cache", map[string]interface{}{
				"vehicle_id": vehicleID,
			})
			return &cached, nil
		}
	}

	vehicle, err := s.vehicleRepo.GetVehicleByID(ctx, vehicleID)
	if err != nil {
		s.logger.Error("Failed to get vehicle", map[string]interface{}{
			"error":      err.Error(),
			"vehicle_id": vehicleID,
		})
		return nil, err
	}

	data, err := json.Marshal(vehicle)
	if err != nil {
		s.logger.Warn("Failed to marshal vehicle for cache", map[string]interface{}{
			"error":      err.Error(),
			"vehicle_id": vehicleID,
		})
	} else if err := s.cache.Set(cacheKey, data, s.cacheTTL); err != nil {
		s.logger.Warn("Failed to cache vehicle", map[string]interface{}{
			"error":      err.Error(),
			"vehicle_id": vehicleID,
		})
	}

	return vehicle, nil
}

func (s *VehicleService) ListVehicles(ctx context.Context, userID uuid.UUID) ([]*domain.Vehicle, error) {
	vehicles, err := s.vehicleRepo.GetVehiclesByUserID(ctx, userID)
	if err != nil {
		s.logger.Error("Failed to get vehicles", map[string]interface{}{
			"error":   err.Error(),
			"user_id": userID,
		})
		return nil, err
	}

	s.logger.Info("Retrieved vehicles for user", map[string]interface{}{
		"user_id":        userID,
		"vehicles_count": len(vehicles),
	})

	return vehicles, nil
}

// UpdateMileage is a manual correction: km is stored as given, even if lower.
func (s *VehicleService) UpdateMileage(ctx context.Context, vehicleID, userID uuid.UUID, km int) (*domain.Vehicle, error) {
	if km < 0 {
		return nil, fmt.Errorf("%w: current_km must not be negative", domain.ErrValidation)
	}

	if _, err := s.GetVehicle(ctx, vehicleID, userID); err != nil {
		return nil, err
	}

	updated, err := s.vehicleRepo.SetCurrentKm(ctx, vehicleID, km)
	if err != nil {
		s.logger.Error("Failed to update mileage", map[string]interface{}{
			"error":      err.Error(),
			"vehicle_id": vehicleID,
		})
		return nil, err
	}
	s.invalidate(vehicleID)

	s.logger.Info("Vehicle mileage updated", map[string]interface{}{
		"vehicle_id": vehicleID,
		"current_km": km,
	})

	return updated, nil
}

// RaiseMileage moves current_km up to km and never lowers it. Callers must have
// checked ownership already.
func (s *VehicleService) RaiseMileage(ctx context.Context, vehicleID uuid.UUID, km int) (bool, error) {
	raised, err := s.vehicleRepo.RaiseCurrentKm(ctx, vehicleID, km)
	if err != nil {
		return false, err
	}
	if raised {
		s.invalidate(vehicleID)
		s.logger.Info("Vehicle mileage raised", map[string]interface{}{
			"vehicle_id": vehicleID,
			"current_km": km,
		})
	}
	return raised, nil
}

func (s *VehicleService) DeleteVehicle(ctx context.Context, vehicleID, userID uuid.UUID) error {
	if _, err := s.GetVehicle(ctx, vehicleID, userID); err != nil {
		return err
	}

	if err := s.vehicleRepo.DeleteVehicle(ctx, vehicleID); err != nil {
		s.logger.Error("Failed to delete vehicle", map[string]interface{}{
			"error":      err.Error(),
			"vehicle_id": vehicleID,
		})
		return err
	}
	s.invalidate(vehicleID)

	s.logger.Info("Vehicle deleted successfully", map[string]interface{}{
		"vehicle_id": vehicleID,
	})

	return nil
}

func (s *VehicleService) invalidate(vehicleID uuid.UUID) {
	if err := s.cache.Delete(vehicleCacheKey(vehicleID)); err != nil {
		s.logger.Warn("Failed to invalidate vehicle cache", map[string]interface{}{
			"error":      err.Error(),
			"vehicle_id": vehicleID,
		})
	}
}
