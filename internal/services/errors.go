package services

import "errors"

// Business errors surfaced to the API layer. Handlers map them to HTTP
// statuses with errors.Is; none of them is retryable.
var (
	// ErrInvalidAmount: amounts are positive integer minor currency units.
	ErrInvalidAmount = errors.New("amount must be a positive integer of minor currency units")
	// ErrInvalidCategory: unknown expense category.
	ErrInvalidCategory = errors.New("invalid expense category")
	// ErrInvalidStatus: unknown status or action value.
	ErrInvalidStatus = errors.New("invalid status value")
	// ErrNotFound: missing document, or one belonging to another organisation.
	ErrNotFound = errors.New("not found")

	// ErrConflictingActiveFloat: the driver already has an active float and
	// the caller lacks the owner capability to force-supersede it.
	ErrConflictingActiveFloat = errors.New("driver already has an active float")
	// ErrFloatRequired: an expense must name the float it draws against.
	ErrFloatRequired = errors.New("float id is required")
	// ErrFloatMissing: the float disappeared between submission and the
	// transaction's own read.
	ErrFloatMissing = errors.New("float no longer exists")
	// ErrFloatUnauthorized: the float belongs to another driver or another
	// organisation.
	ErrFloatUnauthorized = errors.New("float does not belong to this driver")
	// ErrInsufficientFunds: the debit would push the float balance below zero.
	ErrInsufficientFunds = errors.New("insufficient float balance")
	// ErrAlreadyProcessed: the expense left pending exactly once already.
	ErrAlreadyProcessed = errors.New("expense has already been processed")
	// ErrForbidden: the caller's role does not permit the operation.
	ErrForbidden = errors.New("operation not permitted for this role")
)

// Identity is the authenticated caller context handed down from the JWT
// middleware.
type Identity struct {
	UserID         string
	OrganisationID string
	Role           string
}
