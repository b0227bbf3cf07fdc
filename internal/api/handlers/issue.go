package handlers

import (
	"net/http"

	"fleetops-backend/internal/services"
	"fleetops-backend/pkg/utils"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

type IssueHandler struct {
	issueService *services.IssueService
	validator    *validator.Validate
}

func NewIssueHandler(issueService *services.IssueService) *IssueHandler {
	return &IssueHandler{
		issueService: issueService,
		validator:    validator.New(),
	}
}

// CreateIssue reports a new issue, optionally bound to a vehicle
func (h *IssueHandler) CreateIssue(c *gin.Context) {
	actor, ok := identityFromContext(c)
	if !ok {
		return
	}

	var req services.CreateIssueRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request format", err)
		return
	}

	if err := h.validator.Struct(&req); err != nil {
		utils.ValidationErrorResponse(c, err)
		return
	}

	issue, err := h.issueService.CreateIssue(actor, &req)
	if err != nil {
		respondServiceError(c, "Failed to create issue", err)
		return
	}

	utils.SuccessResponse(c, http.StatusCreated, "Issue created successfully", issue)
}

// GetIssues lists issues, optionally filtered by vehicle
func (h *IssueHandler) GetIssues(c *gin.Context) {
	actor, ok := identityFromContext(c)
	if !ok {
		return
	}

	vehicleID := c.Query("vehicleId")

	issues, err := h.issueService.ListIssues(actor, vehicleID)
	if err != nil {
		respondServiceError(c, "Failed to retrieve issues", err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Issues retrieved successfully", issues)
}

// UpdateStatus moves an issue through open, in_progress and done
func (h *IssueHandler) UpdateStatus(c *gin.Context) {
	actor, ok := identityFromContext(c)
	if !ok {
		return
	}

	issueID := c.Param("id")
	if issueID == "" {
		utils.ErrorResponse(c, http.StatusBadRequest, "Issue ID is required", nil)
		return
	}

	var req struct {
		Status string `json:"status" validate:"required,oneof=open in_progress done"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request format", err)
		return
	}

	if err := h.validator.Struct(&req); err != nil {
		utils.ValidationErrorResponse(c, err)
		return
	}

	if err := h.issueService.SetIssueStatus(actor, issueID, req.Status); err != nil {
		respondServiceError(c, "Failed to update issue status", err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Issue status updated successfully", nil)
}
