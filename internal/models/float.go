package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Float is a cash advance issued to a single driver. Amounts are integer
// minor currency units (cents); floating point never touches money.
type Float struct {
	ID              primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	OrganisationID  string             `bson:"organisation_id" json:"organisationId" validate:"required"`
	DriverID        string             `bson:"driver_id" json:"driverId" validate:"required"`
	TourID          string             `bson:"tour_id,omitempty" json:"tourId,omitempty"`
	AmountMinor     int64              `bson:"amount_minor" json:"amountMinor"`
	RemainingMinor  int64              `bson:"remaining_minor" json:"remainingMinor"`
	Active          bool               `bson:"active" json:"active"`
	IssuedBy        string             `bson:"issued_by" json:"issuedBy"`
	Message         string             `bson:"message,omitempty" json:"message,omitempty"`
	CreatedAt       time.Time          `bson:"created_at" json:"createdAt"`
	UpdatedAt       time.Time          `bson:"updated_at" json:"updatedAt"`
	ClosedAt        *time.Time         `bson:"closed_at,omitempty" json:"closedAt,omitempty"`
}
