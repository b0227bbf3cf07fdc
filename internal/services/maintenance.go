package services

import (
	"errors"
	"fmt"
	"log"

	"fleetops-backend/internal/models"
	"fleetops-backend/internal/store"
	"fleetops-backend/pkg/cache"
)

// TourLister loads a vehicle's tours for the projection.
type TourLister interface {
	FindByVehicle(organisationID, vehicleID string) ([]models.Tour, error)
}

// MaintenanceService resolves a vehicle's projected maintenance indicators
// from its odometer, maintenance plan and scheduled tours.
type MaintenanceService struct {
	vehicleRepo  VehicleReader
	tourRepo     TourLister
	cacheManager cache.Manager
	cacheConfig  cache.Config
}

func NewMaintenanceService(vehicleRepo VehicleReader, tourRepo TourLister) *MaintenanceService {
	return &MaintenanceService{
		vehicleRepo: vehicleRepo,
		tourRepo:    tourRepo,
		cacheConfig: cache.DefaultConfig(),
	}
}

// SetCacheManager allows setting the cache manager for indicator caching
func (s *MaintenanceService) SetCacheManager(cacheManager cache.Manager) {
	s.cacheManager = cacheManager
}

// GetMaintenanceIndicators computes the per-tour, per-category indicators
// for one vehicle. The payload is cached briefly; staleness only delays a
// color change, it never corrupts state, since the projection is recomputed
// from scratch on every miss.
func (s *MaintenanceService) GetMaintenanceIndicators(actor Identity, vehicleID string) (map[string]models.TourIndicators, error) {
	cacheKey := fmt.Sprintf("indicators:%s:%s", actor.OrganisationID, vehicleID)
	if s.cacheManager != nil {
		var cached map[string]models.TourIndicators
		if err := s.cacheManager.Get(cacheKey, &cached); err == nil && cached != nil {
			return cached, nil
		}
	}

	vehicle, err := s.vehicleRepo.FindByID(actor.OrganisationID, vehicleID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	tours, err := s.tourRepo.FindByVehicle(actor.OrganisationID, vehicleID)
	if err != nil {
		return nil, err
	}

	indicators := ComputeMaintenanceIndicators(tours, vehicle.Odometer, vehicle.MaintenancePlan)

	if s.cacheManager != nil {
		ttl := s.cacheConfig.TTLFor(cache.DataIndicators)
		if cacheErr := s.cacheManager.Set(actor.OrganisationID, cacheKey, indicators, ttl); cacheErr != nil {
			log.Printf("Failed to cache maintenance indicators for vehicle %s: %v", vehicleID, cacheErr)
		}
	}

	return indicators, nil
}
