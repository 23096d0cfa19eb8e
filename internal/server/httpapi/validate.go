package httpapi

import (
	"net/mail"
	"strings"
	"unicode"

	"github.com/spendtrack/spendtrack/internal/common"
	"github.com/spendtrack/spendtrack/internal/server/models"
	"github.com/spendtrack/spendtrack/internal/server/services"
)

// validateRegistration enforces the registration input policy: non-empty
// names, a syntactically valid email, and a password of 8–36 characters with
// at least one uppercase letter, one digit, and one symbol, and no whitespace.
func validateRegistration(firstName, lastName, email, password string) error {
	if strings.TrimSpace(firstName) == "" {
		return common.NewValidationError("first name cannot be empty")
	}
	if strings.TrimSpace(lastName) == "" {
		return common.NewValidationError("last name cannot be empty")
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return common.NewValidationError("email must be a valid address")
	}
	return validatePassword(password)
}

func validatePassword(password string) error {
	if len(password) < 8 || len(password) > 36 {
		return common.NewValidationError("password must be between 8 and 36 characters")
	}

	var hasUpper, hasDigit, hasSymbol bool
	for _, r := range password {
		switch {
		case unicode.IsSpace(r):
			return common.NewValidationError("password must not contain whitespace")
		case unicode.IsUpper(r):
			hasUpper = true
		case unicode.IsDigit(r):
			hasDigit = true
		case !unicode.IsLetter(r):
			hasSymbol = true
		}
	}

	if !hasUpper {
		return common.NewValidationError("password must contain at least one uppercase letter")
	}
	if !hasDigit {
		return common.NewValidationError("password must contain at least one digit")
	}
	if !hasSymbol {
		return common.NewValidationError("password must contain at least one symbol")
	}

	return nil
}

var knownCategories = map[string]struct{}{
	models.CategoryGroceries:     {},
	models.CategoryUtilities:     {},
	models.CategoryDining:        {},
	models.CategoryTravel:        {},
	models.CategoryEntertainment: {},
	models.CategoryHealth:        {},
	models.CategoryOther:         {},
}

var knownFilters = map[string]struct{}{
	services.FilterAll:             {},
	services.FilterPastWeek:        {},
	services.FilterPastMonth:       {},
	services.FilterLastThreeMonths: {},
	services.FilterCustom:          {},
}

// validateExpenseFilter checks the list-endpoint filter: the name must be
// known, and the custom filter requires both dates with start not after end.
// Dates are ignored for the non-custom filters.
func validateExpenseFilter(filter services.ExpenseFilter) error {
	if _, ok := knownFilters[filter.Name]; !ok {
		return common.NewValidationError("unknown expense filter")
	}
	if filter.Name != services.FilterCustom {
		return nil
	}
	if filter.StartDate.IsZero() {
		return common.NewValidationError("start date is required for the custom filter")
	}
	if filter.EndDate.IsZero() {
		return common.NewValidationError("end date is required for the custom filter")
	}
	if filter.StartDate.After(filter.EndDate) {
		return common.NewValidationError("start date cannot be after end date")
	}
	return nil
}

// validateExpense enforces the expense input policy of the original API:
// merchant up to 100 characters, description up to 255, a non-negative
// amount, a known category, and a name for the "other" category.
func validateExpense(merchant, description string, amountCents int64, category, otherCategoryName string) error {
	if strings.TrimSpace(merchant) == "" {
		return common.NewValidationError("merchant cannot be empty")
	}
	if len(merchant) > 100 {
		return common.NewValidationError("merchant cannot be longer than 100 characters")
	}
	if strings.TrimSpace(description) == "" {
		return common.NewValidationError("description cannot be empty")
	}
	if len(description) > 255 {
		return common.NewValidationError("description cannot be longer than 255 characters")
	}
	if amountCents < 0 {
		return common.NewValidationError("amount must not be negative")
	}
	if _, ok := knownCategories[category]; !ok {
		return common.NewValidationError("unknown expense category")
	}
	if category == models.CategoryOther && strings.TrimSpace(otherCategoryName) == "" {
		return common.NewValidationError("other category name must be set for the 'other' category")
	}
	return nil
}
