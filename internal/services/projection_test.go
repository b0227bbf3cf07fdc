package services

import (
	"testing"
	"time"

	"fleetops-backend/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func day(n int) time.Time {
	return time.Date(2026, time.March, n, 0, 0, 0, 0, time.UTC)
}

func makeTour(start time.Time, distance int) models.Tour {
	return models.Tour{
		ID:                primitive.NewObjectID(),
		StartDate:         start,
		EstimatedDistance: distance,
	}
}

func TestComputeMaintenanceIndicators(t *testing.T) {
	plan := models.MaintenancePlan{
		Intervals:           map[string]int{models.MaintenanceTypeService: 1000},
		LastServiceOdometer: map[string]int{models.MaintenanceTypeService: 9800},
	}

	tour1 := makeTour(day(1), 500)
	tour2 := makeTour(day(3), 300)

	result := ComputeMaintenanceIndicators([]models.Tour{tour1, tour2}, 10000, plan)
	require.Len(t, result, 2)

	first := result[tour1.ID.Hex()][models.MaintenanceTypeService]
	assert.Equal(t, 10500, first.CumulativeDistance)
	assert.Equal(t, 300, first.RemainingDistance)
	assert.Equal(t, models.IndicatorRed, first.Color)

	second := result[tour2.ID.Hex()][models.MaintenanceTypeService]
	assert.Equal(t, 10800, second.CumulativeDistance)
	assert.Equal(t, 0, second.RemainingDistance)
	assert.Equal(t, models.IndicatorRed, second.Color)
}

// The projection walks tours by start date regardless of slice order, so the
// same tours in any order produce identical indicators.
func TestComputeMaintenanceIndicators_InputOrderInsensitive(t *testing.T) {
	plan := models.MaintenancePlan{
		Intervals:           map[string]int{models.MaintenanceTypeService: 15000},
		LastServiceOdometer: map[string]int{models.MaintenanceTypeService: 0},
	}

	tours := []models.Tour{
		makeTour(day(5), 400),
		makeTour(day(1), 1000),
		makeTour(day(3), 200),
	}
	reversed := []models.Tour{tours[2], tours[0], tours[1]}

	assert.Equal(t,
		ComputeMaintenanceIndicators(tours, 2000, plan),
		ComputeMaintenanceIndicators(reversed, 2000, plan),
	)

	// Cumulative distances follow start-date order: 1000, then 200, then 400.
	result := ComputeMaintenanceIndicators(tours, 2000, plan)
	assert.Equal(t, 3000, result[tours[1].ID.Hex()][models.MaintenanceTypeService].CumulativeDistance)
	assert.Equal(t, 3200, result[tours[2].ID.Hex()][models.MaintenanceTypeService].CumulativeDistance)
	assert.Equal(t, 3600, result[tours[0].ID.Hex()][models.MaintenanceTypeService].CumulativeDistance)
}

func TestComputeMaintenanceIndicators_MissingPlanFallsBackToDefaults(t *testing.T) {
	tour := makeTour(day(1), 100)

	result := ComputeMaintenanceIndicators([]models.Tour{tour}, 0, models.MaintenancePlan{})
	indicators := result[tour.ID.Hex()]

	require.Len(t, indicators, len(models.MaintenanceTypes))
	for _, category := range models.MaintenanceTypes {
		expected := models.DefaultServiceIntervals[category] - 100
		assert.Equal(t, expected, indicators[category].RemainingDistance)
	}
}

func TestComputeMaintenanceIndicators_ZeroDistanceTours(t *testing.T) {
	plan := models.MaintenancePlan{
		Intervals:           map[string]int{models.MaintenanceTypeTyres: 60000},
		LastServiceOdometer: map[string]int{models.MaintenanceTypeTyres: 0},
	}

	tour1 := makeTour(day(1), 0)
	tour2 := makeTour(day(2), 250)

	result := ComputeMaintenanceIndicators([]models.Tour{tour1, tour2}, 5000, plan)

	// A tour without an estimate contributes nothing to the running total.
	assert.Equal(t, 5000, result[tour1.ID.Hex()][models.MaintenanceTypeTyres].CumulativeDistance)
	assert.Equal(t, 5250, result[tour2.ID.Hex()][models.MaintenanceTypeTyres].CumulativeDistance)
}

func TestComputeMaintenanceIndicators_NoTours(t *testing.T) {
	result := ComputeMaintenanceIndicators(nil, 10000, models.MaintenancePlan{})
	assert.Empty(t, result)
}

func TestIndicatorColor(t *testing.T) {
	tests := []struct {
		remaining int
		want      string
	}{
		{-500, models.IndicatorRed},
		{-1, models.IndicatorRed},
		{0, models.IndicatorRed},
		{999, models.IndicatorRed},
		{1000, models.IndicatorAmber},
		{4999, models.IndicatorAmber},
		{5000, models.IndicatorGreen},
		{80000, models.IndicatorGreen},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, indicatorColor(tt.remaining), "remaining %d", tt.remaining)
	}
}
