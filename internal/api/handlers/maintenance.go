package handlers

import (
	"net/http"

	"fleetops-backend/internal/services"
	"fleetops-backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

type MaintenanceHandler struct {
	maintenanceService *services.MaintenanceService
}

func NewMaintenanceHandler(maintenanceService *services.MaintenanceService) *MaintenanceHandler {
	return &MaintenanceHandler{maintenanceService: maintenanceService}
}

// GetIndicators returns the projected traffic-light indicators for every
// scheduled tour of one vehicle
func (h *MaintenanceHandler) GetIndicators(c *gin.Context) {
	actor, ok := identityFromContext(c)
	if !ok {
		return
	}

	vehicleID := c.Param("id")
	if vehicleID == "" {
		utils.ErrorResponse(c, http.StatusBadRequest, "Vehicle ID is required", nil)
		return
	}

	indicators, err := h.maintenanceService.GetMaintenanceIndicators(actor, vehicleID)
	if err != nil {
		respondServiceError(c, "Failed to compute maintenance indicators", err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Maintenance indicators computed successfully", indicators)
}
