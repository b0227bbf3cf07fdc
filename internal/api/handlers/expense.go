package handlers

import (
	"net/http"

	"fleetops-backend/internal/services"
	"fleetops-backend/pkg/utils"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

type ExpenseHandler struct {
	ledgerService *services.LedgerService
	validator     *validator.Validate
}

func NewExpenseHandler(ledgerService *services.LedgerService) *ExpenseHandler {
	return &ExpenseHandler{
		ledgerService: ledgerService,
		validator:     validator.New(),
	}
}

// SubmitExpense records an expense against a float, adjusting its balance
func (h *ExpenseHandler) SubmitExpense(c *gin.Context) {
	actor, ok := identityFromContext(c)
	if !ok {
		return
	}

	var req services.SubmitExpenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request format", err)
		return
	}

	if err := h.validator.Struct(&req); err != nil {
		utils.ValidationErrorResponse(c, err)
		return
	}

	expense, err := h.ledgerService.SubmitExpense(c.Request.Context(), actor, &req)
	if err != nil {
		respondServiceError(c, "Failed to submit expense", err)
		return
	}

	utils.SuccessResponse(c, http.StatusCreated, "Expense submitted successfully", expense)
}

// GetExpenses lists expenses, optionally filtered by float
func (h *ExpenseHandler) GetExpenses(c *gin.Context) {
	actor, ok := identityFromContext(c)
	if !ok {
		return
	}

	floatID := c.Query("floatId")

	expenses, err := h.ledgerService.ListExpenses(c.Request.Context(), actor, floatID)
	if err != nil {
		respondServiceError(c, "Failed to retrieve expenses", err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Expenses retrieved successfully", expenses)
}

// ApproveExpense marks a pending expense approved
func (h *ExpenseHandler) ApproveExpense(c *gin.Context) {
	h.setStatus(c, "approve", "Expense approved successfully")
}

// RejectExpense marks a pending expense rejected
func (h *ExpenseHandler) RejectExpense(c *gin.Context) {
	h.setStatus(c, "reject", "Expense rejected successfully")
}

func (h *ExpenseHandler) setStatus(c *gin.Context, action, successMessage string) {
	actor, ok := identityFromContext(c)
	if !ok {
		return
	}

	expenseID := c.Param("id")
	if expenseID == "" {
		utils.ErrorResponse(c, http.StatusBadRequest, "Expense ID is required", nil)
		return
	}

	if err := h.ledgerService.SetExpenseStatus(c.Request.Context(), actor, expenseID, action); err != nil {
		respondServiceError(c, "Failed to update expense status", err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, successMessage, nil)
}

// DeleteExpense removes an expense and reverses its balance adjustment
func (h *ExpenseHandler) DeleteExpense(c *gin.Context) {
	actor, ok := identityFromContext(c)
	if !ok {
		return
	}

	expenseID := c.Param("id")
	if expenseID == "" {
		utils.ErrorResponse(c, http.StatusBadRequest, "Expense ID is required", nil)
		return
	}

	if err := h.ledgerService.DeleteExpense(c.Request.Context(), actor, expenseID); err != nil {
		respondServiceError(c, "Failed to delete expense", err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Expense deleted successfully", nil)
}
