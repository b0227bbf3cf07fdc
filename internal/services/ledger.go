package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"fleetops-backend/internal/models"
	"fleetops-backend/internal/store"
	"fleetops-backend/pkg/cache"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// FloatStore is the non-transactional float surface the ledger reads from.
// All float mutation other than CloseFloat happens inside a transaction.
type FloatStore interface {
	FindByID(organisationID, id string) (*models.Float, error)
	FindActiveByDriver(organisationID, driverID string) ([]*models.Float, error)
	FindByOrganisation(organisationID string) ([]*models.Float, error)
	FindByDriver(organisationID, driverID string) ([]*models.Float, error)
	Close(organisationID, id string, closedAt time.Time) error
}

// ExpenseStore is the non-transactional expense surface.
type ExpenseStore interface {
	FindByID(organisationID, id string) (*models.Expense, error)
	FindByOrganisation(organisationID string) ([]*models.Expense, error)
	FindByDriver(organisationID, driverID string) ([]*models.Expense, error)
	FindByFloat(organisationID, floatID string) ([]*models.Expense, error)
	SetStatusIfPending(organisationID, id, status, approvedBy string, approvedAt time.Time) (bool, error)
}

// TourReader resolves tour metadata for expense labels.
type TourReader interface {
	FindByID(organisationID, id string) (*models.Tour, error)
}

// VehicleReader resolves vehicle metadata for expense labels.
type VehicleReader interface {
	FindByID(organisationID, id string) (*models.Vehicle, error)
}

// UserReader resolves the driver label for expenses.
type UserReader interface {
	FindByID(id string) (*models.User, error)
}

// LedgerService manages the driver float lifecycle and all expense-driven
// balance movement. Every balance mutation runs inside a store transaction;
// nothing else in the backend touches remaining_minor.
type LedgerService struct {
	floatRepo    FloatStore
	expenseRepo  ExpenseStore
	txn          store.TxnRunner
	tourRepo     TourReader
	vehicleRepo  VehicleReader
	userRepo     UserReader
	cacheManager cache.Manager
	cacheConfig  cache.Config
}

func NewLedgerService(floatRepo FloatStore, expenseRepo ExpenseStore, txn store.TxnRunner) *LedgerService {
	return &LedgerService{
		floatRepo:   floatRepo,
		expenseRepo: expenseRepo,
		txn:         txn,
		cacheConfig: cache.DefaultConfig(),
	}
}

// SetMetadataReaders allows setting the repositories used to capture
// vehicle/trailer/driver labels onto expenses at creation time.
func (s *LedgerService) SetMetadataReaders(tourRepo TourReader, vehicleRepo VehicleReader, userRepo UserReader) {
	s.tourRepo = tourRepo
	s.vehicleRepo = vehicleRepo
	s.userRepo = userRepo
}

// SetCacheManager allows setting the cache manager for float caching
func (s *LedgerService) SetCacheManager(cacheManager cache.Manager) {
	s.cacheManager = cacheManager
}

type IssueFloatRequest struct {
	DriverID    string `json:"driverId" validate:"required"`
	AmountMinor int64  `json:"amountMinor" validate:"required"`
	TourID      string `json:"tourId,omitempty"`
	Message     string `json:"message,omitempty"`
}

// IssueFloat creates a new cash advance for a driver. At most one active
// float may exist per (organisation, driver); only an owner may supersede
// an existing one, in which case the close of the old floats and the insert
// of the new one commit in a single transaction.
func (s *LedgerService) IssueFloat(ctx context.Context, actor Identity, req *IssueFloatRequest) (*models.Float, error) {
	if req.AmountMinor <= 0 {
		return nil, ErrInvalidAmount
	}

	active, err := s.floatRepo.FindActiveByDriver(actor.OrganisationID, req.DriverID)
	if err != nil {
		return nil, err
	}
	if len(active) > 0 && actor.Role != models.RoleOwner {
		return nil, ErrConflictingActiveFloat
	}

	now := time.Now()
	float := &models.Float{
		ID:             primitive.NewObjectID(),
		OrganisationID: actor.OrganisationID,
		DriverID:       req.DriverID,
		TourID:         req.TourID,
		AmountMinor:    req.AmountMinor,
		RemainingMinor: req.AmountMinor,
		Active:         true,
		IssuedBy:       actor.UserID,
		Message:        req.Message,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	err = s.txn.RunTransaction(ctx, func(tx store.Txn) error {
		for _, old := range active {
			fields := bson.M{
				"active":     false,
				"closed_at":  now,
				"updated_at": now,
			}
			if err := tx.Update(store.CollectionFloats, old.ID, fields); err != nil {
				return err
			}
		}
		return tx.Insert(store.CollectionFloats, float)
	})
	if err != nil {
		return nil, err
	}

	s.invalidateFloatCache(actor.OrganisationID)
	return float, nil
}

// CloseFloat deactivates a float without touching its remaining balance.
func (s *LedgerService) CloseFloat(ctx context.Context, actor Identity, floatID string) error {
	err := s.floatRepo.Close(actor.OrganisationID, floatID, time.Now())
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrNotFound
		}
		return err
	}

	s.invalidateFloatCache(actor.OrganisationID)
	return nil
}

// GetFloat returns a single float scoped to the caller's organisation.
// Drivers only see their own floats.
func (s *LedgerService) GetFloat(ctx context.Context, actor Identity, floatID string) (*models.Float, error) {
	float, err := s.floatRepo.FindByID(actor.OrganisationID, floatID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	if actor.Role == models.RoleDriver && float.DriverID != actor.UserID {
		return nil, ErrNotFound
	}

	return float, nil
}

// ListFloats returns floats scoped by role: drivers get their own,
// managers and owners the whole organisation.
func (s *LedgerService) ListFloats(ctx context.Context, actor Identity) ([]*models.Float, error) {
	cacheKey := s.floatListKey(actor)
	if s.cacheManager != nil {
		cached, err := s.cacheManager.GetFloatList(cacheKey)
		if err == nil && cached != nil {
			return cached, nil
		}
		if err != nil {
			log.Printf("Cache error for ListFloats: %v", err)
		}
	}

	var floats []*models.Float
	var err error
	if actor.Role == models.RoleDriver {
		floats, err = s.floatRepo.FindByDriver(actor.OrganisationID, actor.UserID)
	} else {
		floats, err = s.floatRepo.FindByOrganisation(actor.OrganisationID)
	}
	if err != nil {
		return nil, err
	}

	if s.cacheManager != nil {
		ttl := s.cacheConfig.TTLFor(cache.DataFloatList)
		if cacheErr := s.cacheManager.SetFloatList(actor.OrganisationID, cacheKey, floats, ttl); cacheErr != nil {
			log.Printf("Failed to cache float list %s: %v", cacheKey, cacheErr)
		}
	}

	return floats, nil
}

type SubmitExpenseRequest struct {
	FloatID     string `json:"floatId" validate:"required"`
	Category    string `json:"category" validate:"required"`
	AmountMinor int64  `json:"amountMinor" validate:"required"`
	TourID      string `json:"tourId,omitempty"`
	Description string `json:"description,omitempty"`
	ReceiptRef  string `json:"receiptRef,omitempty"`
}

// SubmitExpense records a spend event against the caller's float. The
// balance check, the balance mutation and the expense insert commit as one
// transaction, with the float re-read inside the transaction's own scope.
// Two concurrent submissions therefore serialize: they cannot both pass the
// check against a stale balance and jointly overdraw the float.
func (s *LedgerService) SubmitExpense(ctx context.Context, actor Identity, req *SubmitExpenseRequest) (*models.Expense, error) {
	if req.FloatID == "" {
		return nil, ErrFloatRequired
	}
	floatObjectID, err := primitive.ObjectIDFromHex(req.FloatID)
	if err != nil {
		return nil, ErrFloatRequired
	}
	if req.AmountMinor <= 0 {
		return nil, ErrInvalidAmount
	}
	if !models.ValidExpenseCategory(req.Category) {
		return nil, ErrInvalidCategory
	}

	now := time.Now()
	expense := &models.Expense{
		ID:             primitive.NewObjectID(),
		OrganisationID: actor.OrganisationID,
		DriverID:       actor.UserID,
		FloatID:        floatObjectID,
		TourID:         req.TourID,
		Category:       req.Category,
		AmountMinor:    req.AmountMinor,
		Status:         models.ExpenseStatusPending,
		Description:    req.Description,
		ReceiptRef:     req.ReceiptRef,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	s.captureLabels(actor, expense)

	adjustment := expense.Adjustment()

	err = s.txn.RunTransaction(ctx, func(tx store.Txn) error {
		var float models.Float
		if err := tx.Get(store.CollectionFloats, floatObjectID, &float); err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return ErrFloatMissing
			}
			return err
		}
		if float.OrganisationID != actor.OrganisationID || float.DriverID != actor.UserID {
			return ErrFloatUnauthorized
		}
		if float.RemainingMinor+adjustment < 0 {
			return ErrInsufficientFunds
		}

		if err := tx.Insert(store.CollectionExpenses, expense); err != nil {
			return err
		}
		return tx.Update(store.CollectionFloats, float.ID, bson.M{
			"remaining_minor": float.RemainingMinor + adjustment,
			"updated_at":      now,
		})
	})
	if err != nil {
		return nil, err
	}

	s.invalidateFloatCache(actor.OrganisationID)
	return expense, nil
}

// Expense status actions.
const (
	ExpenseActionApprove = "approve"
	ExpenseActionReject  = "reject"
)

// SetExpenseStatus resolves a pending expense exactly once. No balance
// effect: money moved at submission time.
func (s *LedgerService) SetExpenseStatus(ctx context.Context, actor Identity, expenseID, action string) error {
	var status string
	switch action {
	case ExpenseActionApprove:
		status = models.ExpenseStatusApproved
	case ExpenseActionReject:
		status = models.ExpenseStatusRejected
	default:
		return ErrInvalidStatus
	}

	if _, err := s.expenseRepo.FindByID(actor.OrganisationID, expenseID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrNotFound
		}
		return err
	}

	processed, err := s.expenseRepo.SetStatusIfPending(actor.OrganisationID, expenseID, status, actor.UserID, time.Now())
	if err != nil {
		return err
	}
	if !processed {
		return ErrAlreadyProcessed
	}

	return nil
}

// DeleteExpense removes an expense and reverses its balance effect on the
// float inside the same transaction. If the float was deleted first the
// expense is still removed and the reversal is skipped; the gap is logged
// for out-of-band reconciliation.
func (s *LedgerService) DeleteExpense(ctx context.Context, actor Identity, expenseID string) error {
	expenseObjectID, err := primitive.ObjectIDFromHex(expenseID)
	if err != nil {
		return ErrNotFound
	}

	now := time.Now()
	err = s.txn.RunTransaction(ctx, func(tx store.Txn) error {
		var expense models.Expense
		if err := tx.Get(store.CollectionExpenses, expenseObjectID, &expense); err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return ErrNotFound
			}
			return err
		}
		if expense.OrganisationID != actor.OrganisationID {
			return ErrNotFound
		}

		var float models.Float
		err := tx.Get(store.CollectionFloats, expense.FloatID, &float)
		switch {
		case err == nil && float.OrganisationID == actor.OrganisationID:
			if err := tx.Update(store.CollectionFloats, float.ID, bson.M{
				"remaining_minor": float.RemainingMinor - expense.Adjustment(),
				"updated_at":      now,
			}); err != nil {
				return err
			}
		case errors.Is(err, store.ErrNotFound):
			log.Printf("Expense %s deleted without balance reversal: float %s no longer exists", expenseID, expense.FloatID.Hex())
		case err != nil:
			return err
		}

		return tx.Delete(store.CollectionExpenses, expenseObjectID)
	})
	if err != nil {
		return err
	}

	s.invalidateFloatCache(actor.OrganisationID)
	return nil
}

// ListExpenses returns expenses scoped by role; an optional float id
// narrows the result to one float's spend history.
func (s *LedgerService) ListExpenses(ctx context.Context, actor Identity, floatID string) ([]*models.Expense, error) {
	if floatID != "" {
		expenses, err := s.expenseRepo.FindByFloat(actor.OrganisationID, floatID)
		if err != nil {
			return nil, err
		}
		if actor.Role == models.RoleDriver {
			own := make([]*models.Expense, 0, len(expenses))
			for _, e := range expenses {
				if e.DriverID == actor.UserID {
					own = append(own, e)
				}
			}
			return own, nil
		}
		return expenses, nil
	}

	if actor.Role == models.RoleDriver {
		return s.expenseRepo.FindByDriver(actor.OrganisationID, actor.UserID)
	}
	return s.expenseRepo.FindByOrganisation(actor.OrganisationID)
}

// captureLabels snapshots vehicle/trailer/driver names onto the expense so
// reports survive later renames. Lookup failures leave labels empty; they
// never block submission.
func (s *LedgerService) captureLabels(actor Identity, expense *models.Expense) {
	if s.userRepo != nil {
		if user, err := s.userRepo.FindByID(actor.UserID); err == nil {
			expense.DriverLabel = user.DisplayName()
		}
	}

	if expense.TourID == "" || s.tourRepo == nil {
		return
	}
	tour, err := s.tourRepo.FindByID(actor.OrganisationID, expense.TourID)
	if err != nil {
		return
	}
	expense.TrailerLabel = tour.TrailerLabel

	if s.vehicleRepo == nil {
		return
	}
	if vehicle, err := s.vehicleRepo.FindByID(actor.OrganisationID, tour.VehicleID.Hex()); err == nil {
		expense.VehicleLabel = fmt.Sprintf("%s (%s)", vehicle.Name, vehicle.PlateNumber)
	}
}

func (s *LedgerService) floatListKey(actor Identity) string {
	if actor.Role == models.RoleDriver {
		return fmt.Sprintf("float_list:%s:driver:%s", actor.OrganisationID, actor.UserID)
	}
	return fmt.Sprintf("float_list:%s:all", actor.OrganisationID)
}

func (s *LedgerService) invalidateFloatCache(organisationID string) {
	if s.cacheManager == nil {
		return
	}
	if err := s.cacheManager.InvalidateOrganisation(organisationID); err != nil {
		log.Printf("Failed to invalidate float cache for organisation %s: %v", organisationID, err)
	}
}
