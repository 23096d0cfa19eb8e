package httpapi

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/spendtrack/spendtrack/internal/common"
	"github.com/spendtrack/spendtrack/internal/logging"
	"github.com/spendtrack/spendtrack/internal/server/models"
	"github.com/spendtrack/spendtrack/internal/server/services"
)

// ExpenseHandler serves the JWT-guarded expense CRUD endpoints.
type ExpenseHandler struct {
	expenses *services.ExpenseService
	logger   logging.Logger
}

func NewExpenseHandler(expenses *services.ExpenseService, logger logging.Logger) *ExpenseHandler {
	return &ExpenseHandler{expenses: expenses, logger: logger}
}

type expenseRequest struct {
	Merchant          string `json:"merchant"`
	Description       string `json:"description"`
	AmountCents       int64  `json:"amount_cents"`
	Category          string `json:"category"`
	OtherCategoryName string `json:"other_category_name"`
}

type expenseResponse struct {
	ID                string    `json:"id"`
	Merchant          string    `json:"merchant"`
	Description       string    `json:"description"`
	AmountCents       int64     `json:"amount_cents"`
	Category          string    `json:"category"`
	OtherCategoryName string    `json:"other_category_name,omitempty"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}

func toExpenseResponse(e *models.Expense) expenseResponse {
	return expenseResponse{
		ID:                e.ID,
		Merchant:          e.Merchant,
		Description:       e.Description,
		AmountCents:       e.AmountCents,
		Category:          e.Category,
		OtherCategoryName: e.OtherCategoryName,
		CreatedAt:         e.CreatedAt,
		UpdatedAt:         e.UpdatedAt,
	}
}

func (h *ExpenseHandler) bindInput(c *gin.Context) (services.ExpenseInput, bool) {
	var req expenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, common.NewValidationError("invalid request payload"))
		return services.ExpenseInput{}, false
	}

	if err := validateExpense(req.Merchant, req.Description, req.AmountCents, req.Category, req.OtherCategoryName); err != nil {
		respondError(c, err)
		return services.ExpenseInput{}, false
	}

	return services.ExpenseInput{
		Merchant:          req.Merchant,
		Description:       req.Description,
		AmountCents:       req.AmountCents,
		Category:          req.Category,
		OtherCategoryName: req.OtherCategoryName,
	}, true
}

// Add handles POST /api/expenses.
func (h *ExpenseHandler) Add(c *gin.Context) {
	user, ok := CurrentUser(c)
	if !ok {
		c.AbortWithStatus(http.StatusUnauthorized)
		return
	}

	in, ok := h.bindInput(c)
	if !ok {
		return
	}

	expense, err := h.expenses.Add(c.Request.Context(), user.ID, in)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, toExpenseResponse(expense))
}

// parseFilterDate accepts either a plain date or a full RFC 3339 timestamp.
func parseFilterDate(value string) (time.Time, error) {
	if value == "" {
		return time.Time{}, nil
	}
	if t, err := time.Parse("2006-01-02", value); err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339, value)
}

// List handles GET /api/expenses. The optional filter/start_date/end_date
// query parameters narrow the listing to a creation-date window.
func (h *ExpenseHandler) List(c *gin.Context) {
	user, ok := CurrentUser(c)
	if !ok {
		c.AbortWithStatus(http.StatusUnauthorized)
		return
	}

	filter := services.ExpenseFilter{Name: c.DefaultQuery("filter", services.FilterAll)}

	var err error
	if filter.StartDate, err = parseFilterDate(c.Query("start_date")); err != nil {
		respondError(c, common.NewValidationError("start date must be a date or RFC 3339 timestamp"))
		return
	}
	if filter.EndDate, err = parseFilterDate(c.Query("end_date")); err != nil {
		respondError(c, common.NewValidationError("end date must be a date or RFC 3339 timestamp"))
		return
	}

	if err := validateExpenseFilter(filter); err != nil {
		respondError(c, err)
		return
	}

	result, err := h.expenses.List(c.Request.Context(), user.ID, filter)
	if err != nil {
		respondError(c, err)
		return
	}

	responses := make([]expenseResponse, 0, len(result))
	for _, e := range result {
		responses = append(responses, toExpenseResponse(e))
	}

	c.JSON(http.StatusOK, gin.H{"expenses": responses})
}

// Update handles PUT /api/expenses/:id.
func (h *ExpenseHandler) Update(c *gin.Context) {
	user, ok := CurrentUser(c)
	if !ok {
		c.AbortWithStatus(http.StatusUnauthorized)
		return
	}

	in, ok := h.bindInput(c)
	if !ok {
		return
	}

	expense, err := h.expenses.Update(c.Request.Context(), user.ID, c.Param("id"), in)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, toExpenseResponse(expense))
}

// Delete handles DELETE /api/expenses/:id.
func (h *ExpenseHandler) Delete(c *gin.Context) {
	user, ok := CurrentUser(c)
	if !ok {
		c.AbortWithStatus(http.StatusUnauthorized)
		return
	}

	if err := h.expenses.Delete(c.Request.Context(), user.ID, c.Param("id")); err != nil {
		respondError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
