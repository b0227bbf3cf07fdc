package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Expense categories. CategoryWifi is the one reimbursement category: it
// credits the float instead of debiting it.
const (
	CategoryFuel    = "fuel"
	CategoryToll    = "toll"
	CategoryParking = "parking"
	CategoryWashing = "washing"
	CategoryRepair  = "repair"
	CategoryFood    = "food"
	CategoryWifi    = "wifi"
	CategoryOther   = "other"
)

// ReimbursementCategory credits the float balance on submission.
const ReimbursementCategory = CategoryWifi

// Expense statuses. Money moves at submission; approval and rejection are
// back-office audit steps with no balance effect.
const (
	ExpenseStatusPending  = "pending"
	ExpenseStatusApproved = "approved"
	ExpenseStatusRejected = "rejected"
)

// ValidExpenseCategory reports whether category is one of the known values.
func ValidExpenseCategory(category string) bool {
	switch category {
	case CategoryFuel, CategoryToll, CategoryParking, CategoryWashing,
		CategoryRepair, CategoryFood, CategoryWifi, CategoryOther:
		return true
	}
	return false
}

// Expense is a single spend event drawn against exactly one float. The
// vehicle/trailer/driver labels are captured at creation time so reports
// survive later renames.
type Expense struct {
	ID             primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	OrganisationID string             `bson:"organisation_id" json:"organisationId"`
	DriverID       string             `bson:"driver_id" json:"driverId"`
	FloatID        primitive.ObjectID `bson:"float_id" json:"floatId"`
	TourID         string             `bson:"tour_id,omitempty" json:"tourId,omitempty"`
	Category       string             `bson:"category" json:"category"`
	AmountMinor    int64              `bson:"amount_minor" json:"amountMinor"`
	Status         string             `bson:"status" json:"status"`
	Description    string             `bson:"description,omitempty" json:"description,omitempty"`
	ReceiptRef     string             `bson:"receipt_ref,omitempty" json:"receiptRef,omitempty"`
	VehicleLabel   string             `bson:"vehicle_label,omitempty" json:"vehicleLabel,omitempty"`
	TrailerLabel   string             `bson:"trailer_label,omitempty" json:"trailerLabel,omitempty"`
	DriverLabel    string             `bson:"driver_label,omitempty" json:"driverLabel,omitempty"`
	ApprovedBy     string             `bson:"approved_by,omitempty" json:"approvedBy,omitempty"`
	ApprovedAt     *time.Time         `bson:"approved_at,omitempty" json:"approvedAt,omitempty"`
	CreatedAt      time.Time          `bson:"created_at" json:"createdAt"`
	UpdatedAt      time.Time          `bson:"updated_at" json:"updatedAt"`
}

// Adjustment is the signed balance effect this expense has on its float:
// positive for the reimbursement category, negative otherwise.
func (e *Expense) Adjustment() int64 {
	if e.Category == ReimbursementCategory {
		return e.AmountMinor
	}
	return -e.AmountMinor
}
