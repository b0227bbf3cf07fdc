package services

import (
	"testing"
	"time"

	"fleetops-backend/internal/models"
	"fleetops-backend/internal/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type fakeIssueStore struct {
	issues map[primitive.ObjectID]*models.Issue
}

func newFakeIssueStore() *fakeIssueStore {
	return &fakeIssueStore{issues: make(map[primitive.ObjectID]*models.Issue)}
}

func (f *fakeIssueStore) Create(issue *models.Issue) (*models.Issue, error) {
	if issue.ID.IsZero() {
		issue.ID = primitive.NewObjectID()
	}
	copied := *issue
	f.issues[issue.ID] = &copied
	return issue, nil
}

func (f *fakeIssueStore) FindByID(organisationID, id string) (*models.Issue, error) {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, store.ErrNotFound
	}
	issue, ok := f.issues[objectID]
	if !ok || issue.OrganisationID != organisationID {
		return nil, store.ErrNotFound
	}
	copied := *issue
	return &copied, nil
}

func (f *fakeIssueStore) FindByVehicle(organisationID, vehicleID string) ([]*models.Issue, error) {
	var result []*models.Issue
	for _, issue := range f.issues {
		if issue.OrganisationID == organisationID && issue.VehicleID.Hex() == vehicleID {
			copied := *issue
			result = append(result, &copied)
		}
	}
	return result, nil
}

func (f *fakeIssueStore) FindOpenByVehicle(organisationID, vehicleID string) ([]*models.Issue, error) {
	var result []*models.Issue
	for _, issue := range f.issues {
		if issue.OrganisationID == organisationID && issue.VehicleID.Hex() == vehicleID &&
			issue.Status != models.IssueStatusDone {
			copied := *issue
			result = append(result, &copied)
		}
	}
	return result, nil
}

func (f *fakeIssueStore) FindByOrganisation(organisationID string) ([]*models.Issue, error) {
	var result []*models.Issue
	for _, issue := range f.issues {
		if issue.OrganisationID == organisationID {
			copied := *issue
			result = append(result, &copied)
		}
	}
	return result, nil
}

func (f *fakeIssueStore) SetStatus(organisationID, id, status string, resolvedAt *time.Time) error {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return store.ErrNotFound
	}
	issue, ok := f.issues[objectID]
	if !ok || issue.OrganisationID != organisationID {
		return store.ErrNotFound
	}
	issue.Status = status
	issue.ResolvedAt = resolvedAt
	return nil
}

type fakeVehicleStore struct {
	vehicles map[primitive.ObjectID]*models.Vehicle
}

func newFakeVehicleStore() *fakeVehicleStore {
	return &fakeVehicleStore{vehicles: make(map[primitive.ObjectID]*models.Vehicle)}
}

func (f *fakeVehicleStore) add(org, status string) *models.Vehicle {
	vehicle := &models.Vehicle{
		ID:                primitive.NewObjectID(),
		OrganisationID:    org,
		Name:              "Truck 7",
		PlateNumber:       "KCA 123X",
		OperationalStatus: status,
	}
	f.vehicles[vehicle.ID] = vehicle
	return vehicle
}

func (f *fakeVehicleStore) FindByID(organisationID, id string) (*models.Vehicle, error) {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, store.ErrNotFound
	}
	vehicle, ok := f.vehicles[objectID]
	if !ok || vehicle.OrganisationID != organisationID {
		return nil, store.ErrNotFound
	}
	copied := *vehicle
	return &copied, nil
}

func (f *fakeVehicleStore) UpdateOperationalStatus(organisationID, id, status string) error {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return store.ErrNotFound
	}
	vehicle, ok := f.vehicles[objectID]
	if !ok || vehicle.OrganisationID != organisationID {
		return store.ErrNotFound
	}
	vehicle.OperationalStatus = status
	return nil
}

type fakeInspectionStore struct {
	inspections []*models.Inspection
}

func (f *fakeInspectionStore) Create(inspection *models.Inspection) (*models.Inspection, error) {
	if inspection.ID.IsZero() {
		inspection.ID = primitive.NewObjectID()
	}
	copied := *inspection
	f.inspections = append(f.inspections, &copied)
	return inspection, nil
}

func (f *fakeInspectionStore) FindByVehicle(organisationID, vehicleID string) ([]*models.Inspection, error) {
	var result []*models.Inspection
	for _, inspection := range f.inspections {
		if inspection.OrganisationID == organisationID && inspection.VehicleID.Hex() == vehicleID {
			result = append(result, inspection)
		}
	}
	return result, nil
}

type recordingNotifier struct {
	calls []string
}

func (n *recordingNotifier) VehicleStatusChanged(organisationID, vehicleLabel, status, reason string) error {
	n.calls = append(n.calls, status)
	return nil
}

func TestCreateIssue_VehicleStateMachine(t *testing.T) {
	t.Run("vehicle-bound issue moves vehicle to issue status", func(t *testing.T) {
		issues := newFakeIssueStore()
		vehicles := newFakeVehicleStore()
		vehicle := vehicles.add("org-1", models.VehicleStatusReady)
		notifier := &recordingNotifier{}

		svc := NewIssueService(issues, vehicles)
		svc.SetNotifier(notifier)

		_, err := svc.CreateIssue(testDriver, &CreateIssueRequest{
			VehicleID: vehicle.ID.Hex(),
			Title:     "Coolant leak",
			Severity:  models.IssueSeverityLow,
		})
		require.NoError(t, err)

		// Severity never matters for the status transition.
		assert.Equal(t, models.VehicleStatusIssue, vehicles.vehicles[vehicle.ID].OperationalStatus)
		assert.Equal(t, []string{models.VehicleStatusIssue}, notifier.calls)
	})

	t.Run("unbound issue leaves vehicles alone", func(t *testing.T) {
		issues := newFakeIssueStore()
		vehicles := newFakeVehicleStore()
		vehicle := vehicles.add("org-1", models.VehicleStatusReady)

		svc := NewIssueService(issues, vehicles)

		_, err := svc.CreateIssue(testDriver, &CreateIssueRequest{
			Title:    "Fuel card expired",
			Severity: models.IssueSeverityMedium,
		})
		require.NoError(t, err)
		assert.Equal(t, models.VehicleStatusReady, vehicles.vehicles[vehicle.ID].OperationalStatus)
	})
}

func TestSetIssueStatus_ReadyOnlyWhenAllResolved(t *testing.T) {
	issues := newFakeIssueStore()
	vehicles := newFakeVehicleStore()
	vehicle := vehicles.add("org-1", models.VehicleStatusReady)
	svc := NewIssueService(issues, vehicles)

	first, err := svc.CreateIssue(testDriver, &CreateIssueRequest{
		VehicleID: vehicle.ID.Hex(),
		Title:     "Worn brake pads",
		Severity:  models.IssueSeverityHigh,
	})
	require.NoError(t, err)
	second, err := svc.CreateIssue(testDriver, &CreateIssueRequest{
		VehicleID: vehicle.ID.Hex(),
		Title:     "Broken mirror",
		Severity:  models.IssueSeverityLow,
	})
	require.NoError(t, err)
	require.Equal(t, models.VehicleStatusIssue, vehicles.vehicles[vehicle.ID].OperationalStatus)

	// Resolving one of two open issues keeps the vehicle in issue status.
	require.NoError(t, svc.SetIssueStatus(testManager, first.ID.Hex(), models.IssueStatusDone))
	assert.Equal(t, models.VehicleStatusIssue, vehicles.vehicles[vehicle.ID].OperationalStatus)

	// in_progress still counts as open.
	require.NoError(t, svc.SetIssueStatus(testManager, second.ID.Hex(), models.IssueStatusInProgress))
	assert.Equal(t, models.VehicleStatusIssue, vehicles.vehicles[vehicle.ID].OperationalStatus)

	require.NoError(t, svc.SetIssueStatus(testManager, second.ID.Hex(), models.IssueStatusDone))
	assert.Equal(t, models.VehicleStatusReady, vehicles.vehicles[vehicle.ID].OperationalStatus)

	resolved, err := issues.FindByID("org-1", second.ID.Hex())
	require.NoError(t, err)
	assert.NotNil(t, resolved.ResolvedAt)
}

func TestSetIssueStatus_ResolutionOverridesAdministrativeState(t *testing.T) {
	issues := newFakeIssueStore()
	vehicles := newFakeVehicleStore()
	vehicle := vehicles.add("org-1", models.VehicleStatusReady)
	svc := NewIssueService(issues, vehicles)

	issue, err := svc.CreateIssue(testDriver, &CreateIssueRequest{
		VehicleID: vehicle.ID.Hex(),
		Title:     "Worn brake pads",
		Severity:  models.IssueSeverityHigh,
	})
	require.NoError(t, err)

	// Administrative override takes the vehicle out of service while the
	// issue is still open; resolving the issue later brings it back to
	// ready, matching the last-writer-wins semantics of the status field.
	vehicles.vehicles[vehicle.ID].OperationalStatus = models.VehicleStatusOutOfService

	require.NoError(t, svc.SetIssueStatus(testManager, issue.ID.Hex(), models.IssueStatusDone))
	assert.Equal(t, models.VehicleStatusReady, vehicles.vehicles[vehicle.ID].OperationalStatus)
}

func TestSetIssueStatus_Validation(t *testing.T) {
	issues := newFakeIssueStore()
	vehicles := newFakeVehicleStore()
	svc := NewIssueService(issues, vehicles)

	err := svc.SetIssueStatus(testManager, primitive.NewObjectID().Hex(), "archived")
	assert.ErrorIs(t, err, ErrInvalidStatus)

	err = svc.SetIssueStatus(testManager, primitive.NewObjectID().Hex(), models.IssueStatusDone)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSubmitInspection(t *testing.T) {
	items := []models.InspectionItem{
		{Key: "brakes", Label: "Brakes", SafetyCritical: true},
		{Key: "lights", Label: "Lights", SafetyCritical: true},
		{Key: "radio", Label: "Radio", SafetyCritical: false},
	}

	setup := func() (*InspectionService, *fakeIssueStore, *fakeVehicleStore, *models.Vehicle) {
		issues := newFakeIssueStore()
		vehicles := newFakeVehicleStore()
		vehicle := vehicles.add("org-1", models.VehicleStatusReady)
		svc := NewInspectionService(&fakeInspectionStore{}, issues, vehicles)
		return svc, issues, vehicles, vehicle
	}

	t.Run("all passing keeps the vehicle ready", func(t *testing.T) {
		svc, issues, vehicles, vehicle := setup()

		inspection, err := svc.SubmitInspection(testDriver, &SubmitInspectionRequest{
			VehicleID: vehicle.ID.Hex(),
			Items:     items,
			Results:   map[string]interface{}{"brakes": true, "lights": true, "radio": false},
		})
		require.NoError(t, err)

		assert.Empty(t, inspection.FailedItems)
		assert.Empty(t, issues.issues)
		assert.Equal(t, models.VehicleStatusReady, vehicles.vehicles[vehicle.ID].OperationalStatus)
	})

	t.Run("failed safety item raises a high issue and flips the vehicle", func(t *testing.T) {
		svc, issues, vehicles, vehicle := setup()

		inspection, err := svc.SubmitInspection(testDriver, &SubmitInspectionRequest{
			VehicleID: vehicle.ID.Hex(),
			Items:     items,
			Results:   map[string]interface{}{"brakes": false, "lights": true},
		})
		require.NoError(t, err)

		assert.Equal(t, []string{"brakes"}, inspection.FailedItems)
		assert.Equal(t, models.VehicleStatusIssue, vehicles.vehicles[vehicle.ID].OperationalStatus)

		require.Len(t, issues.issues, 1)
		for _, issue := range issues.issues {
			assert.Equal(t, models.IssueSeverityHigh, issue.Severity)
			assert.Equal(t, models.IssueSourceInspection, issue.Source)
			assert.Contains(t, issue.Description, "brakes")
		}
	})

	t.Run("missing result counts as a failure", func(t *testing.T) {
		svc, _, vehicles, vehicle := setup()

		inspection, err := svc.SubmitInspection(testDriver, &SubmitInspectionRequest{
			VehicleID: vehicle.ID.Hex(),
			Items:     items,
			Results:   map[string]interface{}{"brakes": true},
		})
		require.NoError(t, err)

		assert.Equal(t, []string{"lights"}, inspection.FailedItems)
		assert.Equal(t, models.VehicleStatusIssue, vehicles.vehicles[vehicle.ID].OperationalStatus)
	})

	t.Run("non-boolean results never fail", func(t *testing.T) {
		svc, issues, vehicles, vehicle := setup()

		inspection, err := svc.SubmitInspection(testDriver, &SubmitInspectionRequest{
			VehicleID: vehicle.ID.Hex(),
			Items:     items,
			Results: map[string]interface{}{
				"brakes": "needs attention soon",
				"lights": 0,
			},
		})
		require.NoError(t, err)

		assert.Empty(t, inspection.FailedItems)
		assert.Empty(t, issues.issues)
		assert.Equal(t, models.VehicleStatusReady, vehicles.vehicles[vehicle.ID].OperationalStatus)
	})

	t.Run("non-critical failures never trigger the state machine", func(t *testing.T) {
		svc, issues, vehicles, vehicle := setup()

		inspection, err := svc.SubmitInspection(testDriver, &SubmitInspectionRequest{
			VehicleID: vehicle.ID.Hex(),
			Items:     items,
			Results:   map[string]interface{}{"brakes": true, "lights": true, "radio": false},
		})
		require.NoError(t, err)

		assert.Empty(t, inspection.FailedItems)
		assert.Empty(t, issues.issues)
		assert.Equal(t, models.VehicleStatusReady, vehicles.vehicles[vehicle.ID].OperationalStatus)
	})

	t.Run("unbound inspection records failures without side effects", func(t *testing.T) {
		svc, issues, _, _ := setup()

		inspection, err := svc.SubmitInspection(testDriver, &SubmitInspectionRequest{
			Items:   items,
			Results: map[string]interface{}{"brakes": false},
		})
		require.NoError(t, err)

		assert.Equal(t, []string{"brakes", "lights"}, inspection.FailedItems)
		assert.Empty(t, issues.issues)
	})
}

func TestFailingSafetyItems(t *testing.T) {
	items := []models.InspectionItem{
		{Key: "a", SafetyCritical: true},
		{Key: "b", SafetyCritical: true},
		{Key: "c", SafetyCritical: false},
	}

	tests := []struct {
		name    string
		results map[string]interface{}
		want    []string
	}{
		{"all passing", map[string]interface{}{"a": true, "b": true}, nil},
		{"boolean false fails", map[string]interface{}{"a": false, "b": true}, []string{"a"}},
		{"missing fails", map[string]interface{}{"a": true}, []string{"b"}},
		{"string value passes", map[string]interface{}{"a": "false", "b": true}, nil},
		{"numeric zero passes", map[string]interface{}{"a": 0, "b": true}, nil},
		{"nil value passes", map[string]interface{}{"a": nil, "b": true}, nil},
		{"non-critical false ignored", map[string]interface{}{"a": true, "b": true, "c": false}, nil},
		{"empty results fail all critical", map[string]interface{}{}, []string{"a", "b"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, failingSafetyItems(items, tt.results))
		})
	}
}
