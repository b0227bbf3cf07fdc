package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Vehicle operational statuses. ready and issue are written by the state
// machine; maintenance_required and out_of_service only by administrative
// update.
const (
	VehicleStatusReady               = "ready"
	VehicleStatusIssue               = "issue"
	VehicleStatusMaintenanceRequired = "maintenance_required"
	VehicleStatusOutOfService        = "out_of_service"
)

// ValidVehicleStatus reports whether status is one of the known values.
func ValidVehicleStatus(status string) bool {
	switch status {
	case VehicleStatusReady, VehicleStatusIssue,
		VehicleStatusMaintenanceRequired, VehicleStatusOutOfService:
		return true
	}
	return false
}

type Vehicle struct {
	ID                primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	OrganisationID    string             `bson:"organisation_id" json:"organisationId"`
	Name              string             `bson:"name" json:"name" validate:"required"`
	PlateNumber       string             `bson:"plate_number" json:"plateNumber" validate:"required"`
	Make              string             `bson:"make,omitempty" json:"make,omitempty"`
	Model             string             `bson:"model,omitempty" json:"model,omitempty"`
	Year              int                `bson:"year,omitempty" json:"year,omitempty"`
	VIN               string             `bson:"vin,omitempty" json:"vin,omitempty"`
	Odometer          int                `bson:"odometer" json:"odometer"`
	OperationalStatus string             `bson:"operational_status" json:"operationalStatus"`
	MaintenancePlan   MaintenancePlan    `bson:"maintenance_plan" json:"maintenancePlan"`
	CreatedAt         time.Time          `bson:"created_at" json:"createdAt"`
	UpdatedAt         time.Time          `bson:"updated_at" json:"updatedAt"`
}
