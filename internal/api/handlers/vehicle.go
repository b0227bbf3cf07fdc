package handlers

import (
	"net/http"

	"fleetops-backend/internal/services"
	"fleetops-backend/pkg/utils"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

type VehicleHandler struct {
	vehicleService *services.VehicleService
	validator      *validator.Validate
}

func NewVehicleHandler(vehicleService *services.VehicleService) *VehicleHandler {
	return &VehicleHandler{
		vehicleService: vehicleService,
		validator:      validator.New(),
	}
}

// GetVehicles retrieves the organisation's vehicles
func (h *VehicleHandler) GetVehicles(c *gin.Context) {
	actor, ok := identityFromContext(c)
	if !ok {
		return
	}

	vehicles, err := h.vehicleService.ListVehicles(actor)
	if err != nil {
		respondServiceError(c, "Failed to retrieve vehicles", err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Vehicles retrieved successfully", vehicles)
}

// GetVehicle retrieves a specific vehicle by ID
func (h *VehicleHandler) GetVehicle(c *gin.Context) {
	actor, ok := identityFromContext(c)
	if !ok {
		return
	}

	vehicleID := c.Param("id")
	if vehicleID == "" {
		utils.ErrorResponse(c, http.StatusBadRequest, "Vehicle ID is required", nil)
		return
	}

	vehicle, err := h.vehicleService.GetVehicle(actor, vehicleID)
	if err != nil {
		respondServiceError(c, "Failed to retrieve vehicle", err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Vehicle retrieved successfully", vehicle)
}

// CreateVehicle registers a new vehicle
func (h *VehicleHandler) CreateVehicle(c *gin.Context) {
	actor, ok := identityFromContext(c)
	if !ok {
		return
	}

	var req services.CreateVehicleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request format", err)
		return
	}

	if err := h.validator.Struct(&req); err != nil {
		utils.ValidationErrorResponse(c, err)
		return
	}

	vehicle, err := h.vehicleService.CreateVehicle(actor, &req)
	if err != nil {
		respondServiceError(c, "Failed to create vehicle", err)
		return
	}

	utils.SuccessResponse(c, http.StatusCreated, "Vehicle created successfully", vehicle)
}

// UpdateStatus performs the administrative operational-status override
func (h *VehicleHandler) UpdateStatus(c *gin.Context) {
	actor, ok := identityFromContext(c)
	if !ok {
		return
	}

	vehicleID := c.Param("id")
	if vehicleID == "" {
		utils.ErrorResponse(c, http.StatusBadRequest, "Vehicle ID is required", nil)
		return
	}

	var req services.UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request format", err)
		return
	}

	if err := h.validator.Struct(&req); err != nil {
		utils.ValidationErrorResponse(c, err)
		return
	}

	if err := h.vehicleService.SetOperationalStatus(actor, vehicleID, &req); err != nil {
		respondServiceError(c, "Failed to update vehicle status", err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Vehicle status updated successfully", nil)
}

// UpdateOdometer records a new odometer reading
func (h *VehicleHandler) UpdateOdometer(c *gin.Context) {
	actor, ok := identityFromContext(c)
	if !ok {
		return
	}

	vehicleID := c.Param("id")
	if vehicleID == "" {
		utils.ErrorResponse(c, http.StatusBadRequest, "Vehicle ID is required", nil)
		return
	}

	var req services.UpdateOdometerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request format", err)
		return
	}

	if err := h.validator.Struct(&req); err != nil {
		utils.ValidationErrorResponse(c, err)
		return
	}

	if err := h.vehicleService.UpdateOdometer(actor, vehicleID, &req); err != nil {
		respondServiceError(c, "Failed to update odometer", err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Odometer updated successfully", nil)
}
