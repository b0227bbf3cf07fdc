package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Tour is a scheduled trip for a vehicle. EstimatedDistance feeds the
// maintenance projection; a zero value means no estimate was given.
type Tour struct {
	ID                primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	OrganisationID    string             `bson:"organisation_id" json:"organisationId"`
	VehicleID         primitive.ObjectID `bson:"vehicle_id" json:"vehicleId"`
	DriverID          string             `bson:"driver_id" json:"driverId"`
	TrailerLabel      string             `bson:"trailer_label,omitempty" json:"trailerLabel,omitempty"`
	Name              string             `bson:"name" json:"name"`
	Destination       string             `bson:"destination,omitempty" json:"destination,omitempty"`
	StartDate         time.Time          `bson:"start_date" json:"startDate"`
	EstimatedDistance int                `bson:"estimated_distance,omitempty" json:"estimatedDistance,omitempty"`
	CreatedAt         time.Time          `bson:"created_at" json:"createdAt"`
	UpdatedAt         time.Time          `bson:"updated_at" json:"updatedAt"`
}
