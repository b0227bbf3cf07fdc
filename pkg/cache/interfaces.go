package cache

import (
	"time"

	"fleetops-backend/internal/models"
)

// Manager defines the caching operations used by the services layer. Cache
// failures degrade to the database; they never fail a request.
type Manager interface {
	// Float list operations
	GetFloatList(key string) ([]*models.Float, error)
	SetFloatList(organisationID, key string, floats []*models.Float, ttl time.Duration) error

	// Generic operations
	Get(key string, dest interface{}) error
	Set(organisationID, key string, value interface{}, ttl time.Duration) error
	Delete(key string) error

	// InvalidateOrganisation drops every key tagged to the organisation.
	// Called after each ledger mutation.
	InvalidateOrganisation(organisationID string) error

	// Health
	HealthCheck() error
	Close() error
}
