package handlers

import (
	"net/http"

	"fleetops-backend/internal/services"
	"fleetops-backend/pkg/utils"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

type InspectionHandler struct {
	inspectionService *services.InspectionService
	validator         *validator.Validate
}

func NewInspectionHandler(inspectionService *services.InspectionService) *InspectionHandler {
	return &InspectionHandler{
		inspectionService: inspectionService,
		validator:         validator.New(),
	}
}

// SubmitInspection records an inspection and applies its outcome to the
// vehicle's operational status
func (h *InspectionHandler) SubmitInspection(c *gin.Context) {
	actor, ok := identityFromContext(c)
	if !ok {
		return
	}

	var req services.SubmitInspectionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request format", err)
		return
	}

	if err := h.validator.Struct(&req); err != nil {
		utils.ValidationErrorResponse(c, err)
		return
	}

	inspection, err := h.inspectionService.SubmitInspection(actor, &req)
	if err != nil {
		respondServiceError(c, "Failed to submit inspection", err)
		return
	}

	utils.SuccessResponse(c, http.StatusCreated, "Inspection submitted successfully", inspection)
}

// GetInspections lists a vehicle's inspections
func (h *InspectionHandler) GetInspections(c *gin.Context) {
	actor, ok := identityFromContext(c)
	if !ok {
		return
	}

	vehicleID := c.Query("vehicleId")
	if vehicleID == "" {
		utils.ErrorResponse(c, http.StatusBadRequest, "vehicleId query parameter is required", nil)
		return
	}

	inspections, err := h.inspectionService.ListInspections(actor, vehicleID)
	if err != nil {
		respondServiceError(c, "Failed to retrieve inspections", err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Inspections retrieved successfully", inspections)
}
