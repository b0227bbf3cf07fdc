package handlers

import (
	"errors"
	"net/http"

	"fleetops-backend/internal/services"
	"fleetops-backend/internal/store"
	"fleetops-backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

// respondServiceError maps business errors onto HTTP statuses. Anything
// unrecognized is a 500.
func respondServiceError(c *gin.Context, message string, err error) {
	status := http.StatusInternalServerError

	switch {
	case errors.Is(err, services.ErrNotFound),
		errors.Is(err, services.ErrFloatMissing):
		status = http.StatusNotFound
	case errors.Is(err, services.ErrInvalidAmount),
		errors.Is(err, services.ErrInvalidCategory),
		errors.Is(err, services.ErrInvalidStatus),
		errors.Is(err, services.ErrFloatRequired):
		status = http.StatusBadRequest
	case errors.Is(err, services.ErrForbidden),
		errors.Is(err, services.ErrFloatUnauthorized):
		status = http.StatusForbidden
	case errors.Is(err, services.ErrConflictingActiveFloat),
		errors.Is(err, services.ErrAlreadyProcessed):
		status = http.StatusConflict
	case errors.Is(err, services.ErrInsufficientFunds):
		status = http.StatusUnprocessableEntity
	case errors.Is(err, store.ErrUnavailable):
		status = http.StatusServiceUnavailable
	}

	utils.ErrorResponse(c, status, message, err)
}
