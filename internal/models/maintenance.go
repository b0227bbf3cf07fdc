package models

// Maintenance categories tracked per vehicle.
const (
	MaintenanceTypeTyres     = "tyres"
	MaintenanceTypeAlignment = "alignment"
	MaintenanceTypeService   = "service"
	MaintenanceTypeBrakes    = "brakes"
)

// MaintenanceTypes lists all tracked categories in stable order.
var MaintenanceTypes = []string{
	MaintenanceTypeTyres,
	MaintenanceTypeAlignment,
	MaintenanceTypeService,
	MaintenanceTypeBrakes,
}

// Default service intervals (in kilometers) per category.
var DefaultServiceIntervals = map[string]int{
	MaintenanceTypeTyres:     60000,
	MaintenanceTypeAlignment: 30000,
	MaintenanceTypeService:   15000,
	MaintenanceTypeBrakes:    40000,
}

// Indicator colors.
const (
	IndicatorGreen = "green"
	IndicatorAmber = "amber"
	IndicatorRed   = "red"
)

// MaintenancePlan holds the per-category service interval and the odometer
// reading at the last service, both in kilometers. Keyed by maintenance type.
type MaintenancePlan struct {
	Intervals           map[string]int `bson:"intervals" json:"intervals"`
	LastServiceOdometer map[string]int `bson:"last_service_odometer" json:"lastServiceOdometer"`
}

// MaintenanceIndicator is the projected state of one category at one tour.
// Not persisted; recomputed on demand.
type MaintenanceIndicator struct {
	Color              string `json:"color"`
	RemainingDistance  int    `json:"remainingDistance"`
	CumulativeDistance int    `json:"cumulativeDistance"`
}

// TourIndicators maps maintenance type to its indicator for a single tour.
type TourIndicators map[string]MaintenanceIndicator
