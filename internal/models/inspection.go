package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// InspectionItem is one checklist entry of an inspection template. A
// safety-critical item failing forces an issue and a vehicle status change.
type InspectionItem struct {
	Key            string `bson:"key" json:"key" validate:"required"`
	Label          string `bson:"label,omitempty" json:"label,omitempty"`
	SafetyCritical bool   `bson:"safety_critical" json:"safetyCritical"`
}

// Inspection is a submitted checklist. Results are free-form per item key;
// only boolean false (or a missing entry) counts as a failure for
// safety-critical items.
type Inspection struct {
	ID             primitive.ObjectID     `bson:"_id,omitempty" json:"id"`
	OrganisationID string                 `bson:"organisation_id" json:"organisationId"`
	VehicleID      primitive.ObjectID     `bson:"vehicle_id,omitempty" json:"vehicleId,omitempty"`
	TourID         string                 `bson:"tour_id,omitempty" json:"tourId,omitempty"`
	SubmittedBy    string                 `bson:"submitted_by" json:"submittedBy"`
	Items          []InspectionItem       `bson:"items" json:"items"`
	Results        map[string]interface{} `bson:"results" json:"results"`
	FailedItems    []string               `bson:"failed_items,omitempty" json:"failedItems,omitempty"`
	CreatedAt      time.Time              `bson:"created_at" json:"createdAt"`
}
