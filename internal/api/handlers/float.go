package handlers

import (
	"net/http"

	"fleetops-backend/internal/services"
	"fleetops-backend/pkg/utils"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

type FloatHandler struct {
	ledgerService *services.LedgerService
	validator     *validator.Validate
}

func NewFloatHandler(ledgerService *services.LedgerService) *FloatHandler {
	return &FloatHandler{
		ledgerService: ledgerService,
		validator:     validator.New(),
	}
}

// IssueFloat issues a cash advance to a driver
func (h *FloatHandler) IssueFloat(c *gin.Context) {
	actor, ok := identityFromContext(c)
	if !ok {
		return
	}

	var req services.IssueFloatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request format", err)
		return
	}

	if err := h.validator.Struct(&req); err != nil {
		utils.ValidationErrorResponse(c, err)
		return
	}

	float, err := h.ledgerService.IssueFloat(c.Request.Context(), actor, &req)
	if err != nil {
		respondServiceError(c, "Failed to issue float", err)
		return
	}

	utils.SuccessResponse(c, http.StatusCreated, "Float issued successfully", float)
}

// GetFloats lists floats visible to the caller
func (h *FloatHandler) GetFloats(c *gin.Context) {
	actor, ok := identityFromContext(c)
	if !ok {
		return
	}

	floats, err := h.ledgerService.ListFloats(c.Request.Context(), actor)
	if err != nil {
		respondServiceError(c, "Failed to retrieve floats", err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Floats retrieved successfully", floats)
}

// GetFloat retrieves a single float
func (h *FloatHandler) GetFloat(c *gin.Context) {
	actor, ok := identityFromContext(c)
	if !ok {
		return
	}

	floatID := c.Param("id")
	if floatID == "" {
		utils.ErrorResponse(c, http.StatusBadRequest, "Float ID is required", nil)
		return
	}

	float, err := h.ledgerService.GetFloat(c.Request.Context(), actor, floatID)
	if err != nil {
		respondServiceError(c, "Failed to retrieve float", err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Float retrieved successfully", float)
}

// CloseFloat deactivates a float, freezing its remaining balance
func (h *FloatHandler) CloseFloat(c *gin.Context) {
	actor, ok := identityFromContext(c)
	if !ok {
		return
	}

	floatID := c.Param("id")
	if floatID == "" {
		utils.ErrorResponse(c, http.StatusBadRequest, "Float ID is required", nil)
		return
	}

	if err := h.ledgerService.CloseFloat(c.Request.Context(), actor, floatID); err != nil {
		respondServiceError(c, "Failed to close float", err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Float closed successfully", nil)
}
