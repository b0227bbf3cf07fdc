package handlers

import (
	"net/http"

	"fleetops-backend/internal/services"
	"fleetops-backend/pkg/utils"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

type TourHandler struct {
	tourService *services.TourService
	validator   *validator.Validate
}

func NewTourHandler(tourService *services.TourService) *TourHandler {
	return &TourHandler{
		tourService: tourService,
		validator:   validator.New(),
	}
}

// CreateTour schedules a new tour
func (h *TourHandler) CreateTour(c *gin.Context) {
	actor, ok := identityFromContext(c)
	if !ok {
		return
	}

	var req services.CreateTourRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request format", err)
		return
	}

	if err := h.validator.Struct(&req); err != nil {
		utils.ValidationErrorResponse(c, err)
		return
	}

	tour, err := h.tourService.CreateTour(actor, &req)
	if err != nil {
		respondServiceError(c, "Failed to create tour", err)
		return
	}

	utils.SuccessResponse(c, http.StatusCreated, "Tour created successfully", tour)
}

// GetTours lists tours, optionally filtered by vehicle
func (h *TourHandler) GetTours(c *gin.Context) {
	actor, ok := identityFromContext(c)
	if !ok {
		return
	}

	vehicleID := c.Query("vehicleId")

	tours, err := h.tourService.ListTours(actor, vehicleID)
	if err != nil {
		respondServiceError(c, "Failed to retrieve tours", err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Tours retrieved successfully", tours)
}

// GetTour retrieves a single tour
func (h *TourHandler) GetTour(c *gin.Context) {
	actor, ok := identityFromContext(c)
	if !ok {
		return
	}

	tourID := c.Param("id")
	if tourID == "" {
		utils.ErrorResponse(c, http.StatusBadRequest, "Tour ID is required", nil)
		return
	}

	tour, err := h.tourService.GetTour(actor, tourID)
	if err != nil {
		respondServiceError(c, "Failed to retrieve tour", err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Tour retrieved successfully", tour)
}
