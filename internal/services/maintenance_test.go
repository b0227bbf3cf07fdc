package services

import (
	"testing"

	"fleetops-backend/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeTourLister struct {
	tours []models.Tour
}

func (f *fakeTourLister) FindByVehicle(organisationID, vehicleID string) ([]models.Tour, error) {
	return f.tours, nil
}

func TestGetMaintenanceIndicators(t *testing.T) {
	vehicles := newFakeVehicleStore()
	vehicle := vehicles.add("org-1", models.VehicleStatusReady)
	vehicle.Odometer = 10000
	vehicle.MaintenancePlan = models.MaintenancePlan{
		Intervals:           map[string]int{models.MaintenanceTypeService: 1000},
		LastServiceOdometer: map[string]int{models.MaintenanceTypeService: 9800},
	}

	tour := makeTour(day(1), 500)
	svc := NewMaintenanceService(vehicles, &fakeTourLister{tours: []models.Tour{tour}})

	indicators, err := svc.GetMaintenanceIndicators(testManager, vehicle.ID.Hex())
	require.NoError(t, err)
	require.Len(t, indicators, 1)

	service := indicators[tour.ID.Hex()][models.MaintenanceTypeService]
	assert.Equal(t, 10500, service.CumulativeDistance)
	assert.Equal(t, 300, service.RemainingDistance)
	assert.Equal(t, models.IndicatorRed, service.Color)
}

func TestGetMaintenanceIndicators_UnknownVehicle(t *testing.T) {
	vehicles := newFakeVehicleStore()
	svc := NewMaintenanceService(vehicles, &fakeTourLister{})

	_, err := svc.GetMaintenanceIndicators(testManager, "66f0a2b4c8d9e0f1a2b3c4d5")
	assert.ErrorIs(t, err, ErrNotFound)
}
