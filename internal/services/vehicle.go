package services

import (
	"errors"
	"time"

	"fleetops-backend/internal/models"
	"fleetops-backend/internal/repository"
	"fleetops-backend/internal/store"
)

type VehicleService struct {
	vehicleRepo *repository.VehicleRepository
}

func NewVehicleService(vehicleRepo *repository.VehicleRepository) *VehicleService {
	return &VehicleService{vehicleRepo: vehicleRepo}
}

type CreateVehicleRequest struct {
	Name        string         `json:"name" validate:"required,min=1,max=100"`
	PlateNumber string         `json:"plateNumber" validate:"required,min=1,max=20"`
	Make        string         `json:"make,omitempty"`
	Model       string         `json:"model,omitempty"`
	Year        int            `json:"year,omitempty" validate:"omitempty,min=1900,max=2030"`
	VIN         string         `json:"vin,omitempty"`
	Odometer    int            `json:"odometer" validate:"min=0"`
	Intervals   map[string]int `json:"intervals,omitempty"`
}

type UpdateStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=ready issue maintenance_required out_of_service"`
}

type UpdateOdometerRequest struct {
	Odometer int `json:"odometer" validate:"required,min=0"`
}

// CreateVehicle registers a vehicle. It starts ready, with a maintenance
// plan seeded from the defaults; the last-service reading for each category
// starts at the vehicle's current odometer.
func (s *VehicleService) CreateVehicle(actor Identity, req *CreateVehicleRequest) (*models.Vehicle, error) {
	if actor.Role == models.RoleDriver {
		return nil, ErrForbidden
	}

	intervals := make(map[string]int, len(models.MaintenanceTypes))
	lastService := make(map[string]int, len(models.MaintenanceTypes))
	for _, category := range models.MaintenanceTypes {
		interval := models.DefaultServiceIntervals[category]
		if custom, ok := req.Intervals[category]; ok && custom > 0 {
			interval = custom
		}
		intervals[category] = interval
		lastService[category] = req.Odometer
	}

	now := time.Now()
	vehicle := &models.Vehicle{
		OrganisationID:    actor.OrganisationID,
		Name:              req.Name,
		PlateNumber:       req.PlateNumber,
		Make:              req.Make,
		Model:             req.Model,
		Year:              req.Year,
		VIN:               req.VIN,
		Odometer:          req.Odometer,
		OperationalStatus: models.VehicleStatusReady,
		MaintenancePlan: models.MaintenancePlan{
			Intervals:           intervals,
			LastServiceOdometer: lastService,
		},
		CreatedAt: now,
		UpdatedAt: now,
	}

	return s.vehicleRepo.Create(vehicle)
}

func (s *VehicleService) GetVehicle(actor Identity, id string) (*models.Vehicle, error) {
	vehicle, err := s.vehicleRepo.FindByID(actor.OrganisationID, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return vehicle, nil
}

func (s *VehicleService) ListVehicles(actor Identity) ([]*models.Vehicle, error) {
	return s.vehicleRepo.FindByOrganisation(actor.OrganisationID)
}

// SetOperationalStatus is the administrative override. It is the only writer
// of maintenance_required and out_of_service; once written, those values
// stay until the next administrative update, regardless of what inspections
// or issues do in the meantime.
func (s *VehicleService) SetOperationalStatus(actor Identity, id string, req *UpdateStatusRequest) error {
	if actor.Role == models.RoleDriver {
		return ErrForbidden
	}
	if !models.ValidVehicleStatus(req.Status) {
		return ErrInvalidStatus
	}

	err := s.vehicleRepo.UpdateOperationalStatus(actor.OrganisationID, id, req.Status)
	if errors.Is(err, store.ErrNotFound) {
		return ErrNotFound
	}
	return err
}

func (s *VehicleService) UpdateOdometer(actor Identity, id string, req *UpdateOdometerRequest) error {
	err := s.vehicleRepo.UpdateOdometer(actor.OrganisationID, id, req.Odometer)
	if errors.Is(err, store.ErrNotFound) {
		return ErrNotFound
	}
	return err
}
