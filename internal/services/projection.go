package services

import (
	"sort"

	"fleetops-backend/internal/models"
)

// Color thresholds in kilometers of remaining distance.
const (
	indicatorRedBelow   = 1000
	indicatorAmberBelow = 5000
)

// ComputeMaintenanceIndicators projects per-category service indicators
// across a vehicle's scheduled tours. Pure: no I/O, no state between
// invocations.
//
// Tours are walked ascending by start date (stable on ties). The running
// cumulative distance is seeded with the vehicle's current odometer and
// includes each tour's estimated distance (0 when absent); the total after
// a tour is that tour's cumulative distance. For a category with interval I
// and last-service odometer L, the remaining distance at a tour is
// (L + I) - cumulative.
func ComputeMaintenanceIndicators(tours []models.Tour, currentOdometer int, plan models.MaintenancePlan) map[string]models.TourIndicators {
	sorted := make([]models.Tour, len(tours))
	copy(sorted, tours)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].StartDate.Before(sorted[j].StartDate)
	})

	result := make(map[string]models.TourIndicators, len(sorted))
	cumulative := currentOdometer

	for _, tour := range sorted {
		cumulative += tour.EstimatedDistance

		indicators := make(models.TourIndicators, len(models.MaintenanceTypes))
		for _, category := range models.MaintenanceTypes {
			interval, ok := plan.Intervals[category]
			if !ok {
				interval = models.DefaultServiceIntervals[category]
			}
			remaining := plan.LastServiceOdometer[category] + interval - cumulative

			indicators[category] = models.MaintenanceIndicator{
				Color:              indicatorColor(remaining),
				RemainingDistance:  remaining,
				CumulativeDistance: cumulative,
			}
		}
		result[tour.ID.Hex()] = indicators
	}

	return result
}

// indicatorColor classifies a remaining distance. The separate negative
// branch is equivalent to the sub-1000 one; both are kept for compatibility
// with the established classification.
func indicatorColor(remaining int) string {
	switch {
	case remaining < 0:
		return models.IndicatorRed
	case remaining < indicatorRedBelow:
		return models.IndicatorRed
	case remaining < indicatorAmberBelow:
		return models.IndicatorAmber
	default:
		return models.IndicatorGreen
	}
}
