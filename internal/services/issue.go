package services

import (
	"errors"
	"log"
	"time"

	"fleetops-backend/internal/models"
	"fleetops-backend/internal/store"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// IssueStore is the issue persistence surface of the state machine.
type IssueStore interface {
	Create(issue *models.Issue) (*models.Issue, error)
	FindByID(organisationID, id string) (*models.Issue, error)
	FindByVehicle(organisationID, vehicleID string) ([]*models.Issue, error)
	FindOpenByVehicle(organisationID, vehicleID string) ([]*models.Issue, error)
	FindByOrganisation(organisationID string) ([]*models.Issue, error)
	SetStatus(organisationID, id, status string, resolvedAt *time.Time) error
}

// VehicleStatusStore is the vehicle surface the state machine writes.
type VehicleStatusStore interface {
	FindByID(organisationID, id string) (*models.Vehicle, error)
	UpdateOperationalStatus(organisationID, id, status string) error
}

// Notifier delivers best-effort status-change notifications. Failures are
// logged and never roll back the mutation that triggered them.
type Notifier interface {
	VehicleStatusChanged(organisationID, vehicleLabel, status, reason string) error
}

// IssueService drives the vehicle operational-status state machine from the
// issue side: any reported issue moves the vehicle to issue, and the last
// open issue going done moves it back to ready.
type IssueService struct {
	issueRepo   IssueStore
	vehicleRepo VehicleStatusStore
	notifier    Notifier
}

func NewIssueService(issueRepo IssueStore, vehicleRepo VehicleStatusStore) *IssueService {
	return &IssueService{
		issueRepo:   issueRepo,
		vehicleRepo: vehicleRepo,
	}
}

// SetNotifier allows setting the best-effort manager notifier
func (s *IssueService) SetNotifier(notifier Notifier) {
	s.notifier = notifier
}

type CreateIssueRequest struct {
	VehicleID   string `json:"vehicleId,omitempty"`
	Title       string `json:"title" validate:"required"`
	Description string `json:"description,omitempty"`
	Severity    string `json:"severity" validate:"required,oneof=low medium high critical"`
}

// CreateIssue records a reported issue. A vehicle-bound issue puts the
// vehicle into issue status regardless of severity.
func (s *IssueService) CreateIssue(actor Identity, req *CreateIssueRequest) (*models.Issue, error) {
	now := time.Now()
	issue := &models.Issue{
		OrganisationID: actor.OrganisationID,
		Title:          req.Title,
		Description:    req.Description,
		Severity:       req.Severity,
		Status:         models.IssueStatusOpen,
		Source:         models.IssueSourceManual,
		ReportedBy:     actor.UserID,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	if req.VehicleID != "" {
		vehicleObjectID, err := primitive.ObjectIDFromHex(req.VehicleID)
		if err != nil {
			return nil, ErrNotFound
		}
		issue.VehicleID = vehicleObjectID
	}

	created, err := s.issueRepo.Create(issue)
	if err != nil {
		return nil, err
	}

	if req.VehicleID != "" {
		if err := s.markVehicleIssue(actor.OrganisationID, req.VehicleID, issue.Title); err != nil {
			return nil, err
		}
	}

	return created, nil
}

// SetIssueStatus updates an issue. When the last open issue of a vehicle
// goes done, the vehicle returns to ready; any other open issue, whatever
// its severity, keeps it in issue status.
func (s *IssueService) SetIssueStatus(actor Identity, issueID, status string) error {
	if !models.ValidIssueStatus(status) {
		return ErrInvalidStatus
	}

	issue, err := s.issueRepo.FindByID(actor.OrganisationID, issueID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrNotFound
		}
		return err
	}

	var resolvedAt *time.Time
	if status == models.IssueStatusDone {
		now := time.Now()
		resolvedAt = &now
	}

	if err := s.issueRepo.SetStatus(actor.OrganisationID, issueID, status, resolvedAt); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrNotFound
		}
		return err
	}

	if status != models.IssueStatusDone || issue.VehicleID.IsZero() {
		return nil
	}

	vehicleID := issue.VehicleID.Hex()
	open, err := s.issueRepo.FindOpenByVehicle(actor.OrganisationID, vehicleID)
	if err != nil {
		return err
	}
	if len(open) > 0 {
		return nil
	}

	if err := s.vehicleRepo.UpdateOperationalStatus(actor.OrganisationID, vehicleID, models.VehicleStatusReady); err != nil {
		return err
	}
	s.notifyStatusChange(actor.OrganisationID, vehicleID, models.VehicleStatusReady, "all issues resolved")

	return nil
}

// ListIssues returns the organisation's issues, optionally narrowed to a
// vehicle.
func (s *IssueService) ListIssues(actor Identity, vehicleID string) ([]*models.Issue, error) {
	if vehicleID != "" {
		return s.issueRepo.FindByVehicle(actor.OrganisationID, vehicleID)
	}
	return s.issueRepo.FindByOrganisation(actor.OrganisationID)
}

// markVehicleIssue flips the vehicle into issue status and notifies.
func (s *IssueService) markVehicleIssue(organisationID, vehicleID, reason string) error {
	if err := s.vehicleRepo.UpdateOperationalStatus(organisationID, vehicleID, models.VehicleStatusIssue); err != nil {
		return err
	}
	s.notifyStatusChange(organisationID, vehicleID, models.VehicleStatusIssue, reason)
	return nil
}

func (s *IssueService) notifyStatusChange(organisationID, vehicleID, status, reason string) {
	if s.notifier == nil {
		return
	}

	label := vehicleID
	if vehicle, err := s.vehicleRepo.FindByID(organisationID, vehicleID); err == nil {
		label = vehicle.Name + " (" + vehicle.PlateNumber + ")"
	}

	if err := s.notifier.VehicleStatusChanged(organisationID, label, status, reason); err != nil {
		log.Printf("Failed to notify vehicle status change for %s: %v", vehicleID, err)
	}
}
