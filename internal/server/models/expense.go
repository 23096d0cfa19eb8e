package models

import "time"

// Expense categories. CategoryOther requires OtherCategoryName to be set.
const (
	CategoryGroceries     = "groceries"
	CategoryUtilities     = "utilities"
	CategoryDining        = "dining"
	CategoryTravel        = "travel"
	CategoryEntertainment = "entertainment"
	CategoryHealth        = "health"
	CategoryOther         = "other"
)

// Expense is a single spending record owned by a user.
// AmountCents stores the monetary amount in minor units to avoid
// floating-point rounding.
type Expense struct {
	ID                string
	UserID            string
	Merchant          string
	Description       string
	AmountCents       int64
	Category          string
	OtherCategoryName string
	CreatedAt         time.Time
	UpdatedAt         time.Time
}
