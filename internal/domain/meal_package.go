package domain

import "time"

// MealType distinguishes the meal slots a package covers.
type MealType string

const (
	MealTypeBreakfast MealType = "BREAKFAST"
	MealTypeLunch     MealType = "LUNCH"
	MealTypeDinner    MealType = "DINNER"
)

// MealPackage is a subscribable tiffin plan published by a vendor.
type MealPackage struct {
	ID           string
	VendorID     string
	Title        string
	Description  string
	MealType     MealType
	PricePerWeek int64 // minor currency units
	MealsPerWeek int
	Veg          bool
	Active       bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
