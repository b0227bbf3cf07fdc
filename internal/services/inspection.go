package services

import (
	"fmt"
	"log"
	"strings"
	"time"

	"fleetops-backend/internal/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// InspectionStore persists submitted inspections.
type InspectionStore interface {
	Create(inspection *models.Inspection) (*models.Inspection, error)
	FindByVehicle(organisationID, vehicleID string) ([]*models.Inspection, error)
}

// InspectionService records submitted checklists and feeds the operational
// status state machine: failed safety-critical items raise a high-severity
// issue against the inspected vehicle.
type InspectionService struct {
	inspectionRepo InspectionStore
	issueRepo      IssueStore
	vehicleRepo    VehicleStatusStore
	notifier       Notifier
}

func NewInspectionService(inspectionRepo InspectionStore, issueRepo IssueStore, vehicleRepo VehicleStatusStore) *InspectionService {
	return &InspectionService{
		inspectionRepo: inspectionRepo,
		issueRepo:      issueRepo,
		vehicleRepo:    vehicleRepo,
	}
}

// SetNotifier allows setting the best-effort manager notifier
func (s *InspectionService) SetNotifier(notifier Notifier) {
	s.notifier = notifier
}

type SubmitInspectionRequest struct {
	VehicleID string                   `json:"vehicleId,omitempty"`
	TourID    string                   `json:"tourId,omitempty"`
	Items     []models.InspectionItem  `json:"items" validate:"required,min=1,dive"`
	Results   map[string]interface{}   `json:"results"`
}

// SubmitInspection persists the checklist and evaluates its safety-critical
// items. A non-empty failing set on a vehicle-bound inspection creates one
// high-severity issue listing the failing item keys and moves the vehicle
// to issue status.
func (s *InspectionService) SubmitInspection(actor Identity, req *SubmitInspectionRequest) (*models.Inspection, error) {
	failing := failingSafetyItems(req.Items, req.Results)

	now := time.Now()
	inspection := &models.Inspection{
		OrganisationID: actor.OrganisationID,
		TourID:         req.TourID,
		SubmittedBy:    actor.UserID,
		Items:          req.Items,
		Results:        req.Results,
		FailedItems:    failing,
		CreatedAt:      now,
	}

	var vehicleObjectID primitive.ObjectID
	if req.VehicleID != "" {
		var err error
		vehicleObjectID, err = primitive.ObjectIDFromHex(req.VehicleID)
		if err != nil {
			return nil, ErrNotFound
		}
		inspection.VehicleID = vehicleObjectID
	}

	created, err := s.inspectionRepo.Create(inspection)
	if err != nil {
		return nil, err
	}

	if len(failing) == 0 || req.VehicleID == "" {
		return created, nil
	}

	issue := &models.Issue{
		OrganisationID: actor.OrganisationID,
		VehicleID:      vehicleObjectID,
		Title:          "Safety inspection failed",
		Description:    fmt.Sprintf("Failed safety-critical items: %s", strings.Join(failing, ", ")),
		Severity:       models.IssueSeverityHigh,
		Status:         models.IssueStatusOpen,
		Source:         models.IssueSourceInspection,
		ReportedBy:     actor.UserID,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if _, err := s.issueRepo.Create(issue); err != nil {
		return nil, err
	}

	if err := s.vehicleRepo.UpdateOperationalStatus(actor.OrganisationID, req.VehicleID, models.VehicleStatusIssue); err != nil {
		return nil, err
	}
	s.notifyStatusChange(actor.OrganisationID, req.VehicleID, issue.Description)

	return created, nil
}

// ListInspections returns a vehicle's submitted inspections.
func (s *InspectionService) ListInspections(actor Identity, vehicleID string) ([]*models.Inspection, error) {
	return s.inspectionRepo.FindByVehicle(actor.OrganisationID, vehicleID)
}

// failingSafetyItems partitions the template's safety-critical items into
// the failing set. An item fails when its submitted result is the boolean
// false, or when no result was submitted for it at all; a submitted
// non-boolean value never fails, whatever it holds.
func failingSafetyItems(items []models.InspectionItem, results map[string]interface{}) []string {
	var failing []string
	for _, item := range items {
		if !item.SafetyCritical {
			continue
		}
		value, ok := results[item.Key]
		if !ok {
			failing = append(failing, item.Key)
			continue
		}
		if b, isBool := value.(bool); isBool && !b {
			failing = append(failing, item.Key)
		}
	}
	return failing
}

func (s *InspectionService) notifyStatusChange(organisationID, vehicleID, reason string) {
	if s.notifier == nil {
		return
	}

	label := vehicleID
	if vehicle, err := s.vehicleRepo.FindByID(organisationID, vehicleID); err == nil {
		label = vehicle.Name + " (" + vehicle.PlateNumber + ")"
	}

	if err := s.notifier.VehicleStatusChanged(organisationID, label, models.VehicleStatusIssue, reason); err != nil {
		log.Printf("Failed to notify vehicle status change for %s: %v", vehicleID, err)
	}
}
