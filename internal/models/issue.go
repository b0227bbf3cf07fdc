package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Issue statuses. A vehicle returns to ready only once no issue with a
// status other than done remains open against it.
const (
	IssueStatusOpen       = "open"
	IssueStatusInProgress = "in_progress"
	IssueStatusDone       = "done"
)

// Issue severities.
const (
	IssueSeverityLow      = "low"
	IssueSeverityMedium   = "medium"
	IssueSeverityHigh     = "high"
	IssueSeverityCritical = "critical"
)

// Issue sources.
const (
	IssueSourceManual     = "manual"
	IssueSourceInspection = "inspection"
)

// ValidIssueStatus reports whether status is one of the known values.
func ValidIssueStatus(status string) bool {
	switch status {
	case IssueStatusOpen, IssueStatusInProgress, IssueStatusDone:
		return true
	}
	return false
}

type Issue struct {
	ID             primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	OrganisationID string             `bson:"organisation_id" json:"organisationId"`
	VehicleID      primitive.ObjectID `bson:"vehicle_id,omitempty" json:"vehicleId,omitempty"`
	Title          string             `bson:"title" json:"title"`
	Description    string             `bson:"description,omitempty" json:"description,omitempty"`
	Severity       string             `bson:"severity" json:"severity"`
	Status         string             `bson:"status" json:"status"`
	Source         string             `bson:"source" json:"source"`
	ReportedBy     string             `bson:"reported_by,omitempty" json:"reportedBy,omitempty"`
	ResolvedAt     *time.Time         `bson:"resolved_at,omitempty" json:"resolvedAt,omitempty"`
	CreatedAt      time.Time          `bson:"created_at" json:"createdAt"`
	UpdatedAt      time.Time          `bson:"updated_at" json:"updatedAt"`
}
