package services

import (
	"errors"
	"time"

	"fleetops-backend/internal/models"
	"fleetops-backend/internal/repository"
	"fleetops-backend/internal/store"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type TourService struct {
	tourRepo    *repository.TourRepository
	vehicleRepo VehicleReader
}

func NewTourService(tourRepo *repository.TourRepository, vehicleRepo VehicleReader) *TourService {
	return &TourService{
		tourRepo:    tourRepo,
		vehicleRepo: vehicleRepo,
	}
}

type CreateTourRequest struct {
	VehicleID         string    `json:"vehicleId" validate:"required"`
	DriverID          string    `json:"driverId" validate:"required"`
	TrailerLabel      string    `json:"trailerLabel,omitempty"`
	Name              string    `json:"name" validate:"required,min=1,max=200"`
	Destination       string    `json:"destination,omitempty"`
	StartDate         time.Time `json:"startDate" validate:"required"`
	EstimatedDistance int       `json:"estimatedDistance" validate:"min=0"`
}

// CreateTour schedules a tour against an existing vehicle.
func (s *TourService) CreateTour(actor Identity, req *CreateTourRequest) (*models.Tour, error) {
	if actor.Role == models.RoleDriver {
		return nil, ErrForbidden
	}

	if _, err := s.vehicleRepo.FindByID(actor.OrganisationID, req.VehicleID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	vehicleObjectID, err := primitive.ObjectIDFromHex(req.VehicleID)
	if err != nil {
		return nil, ErrNotFound
	}

	now := time.Now()
	tour := &models.Tour{
		OrganisationID:    actor.OrganisationID,
		VehicleID:         vehicleObjectID,
		DriverID:          req.DriverID,
		TrailerLabel:      req.TrailerLabel,
		Name:              req.Name,
		Destination:       req.Destination,
		StartDate:         req.StartDate,
		EstimatedDistance: req.EstimatedDistance,
		CreatedAt:         now,
		UpdatedAt:         now,
	}

	return s.tourRepo.Create(tour)
}

func (s *TourService) GetTour(actor Identity, id string) (*models.Tour, error) {
	tour, err := s.tourRepo.FindByID(actor.OrganisationID, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return tour, nil
}

// ListTours returns the organisation's tours, or only one vehicle's when
// vehicleID is set.
func (s *TourService) ListTours(actor Identity, vehicleID string) ([]models.Tour, error) {
	if vehicleID != "" {
		return s.tourRepo.FindByVehicle(actor.OrganisationID, vehicleID)
	}
	return s.tourRepo.FindByOrganisation(actor.OrganisationID)
}
