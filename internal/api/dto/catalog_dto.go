package dto

import "github.com/spec-kit/tiffin-service/internal/domain"

// VendorResponse is the public vendor shape.
type VendorResponse struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Cuisine     string `json:"cuisine"`
	City        string `json:"city"`
}

// NewVendorResponse maps a domain vendor.
func NewVendorResponse(v *domain.Vendor) VendorResponse {
	return VendorResponse{
		ID:          v.ID,
		Name:        v.Name,
		Description: v.Description,
		Cuisine:     v.Cuisine,
		City:        v.City,
	}
}

// PackageResponse is the public meal-package shape.
type PackageResponse struct {
	ID           string `json:"id"`
	VendorID     string `json:"vendor_id"`
	Title        string `json:"title"`
	Description  string `json:"description"`
	MealType     string `json:"meal_type"`
	PricePerWeek int64  `json:"price_per_week"`
	MealsPerWeek int    `json:"meals_per_week"`
	Veg          bool   `json:"veg"`
	Active       bool   `json:"active"`
}

// NewPackageResponse maps a domain package.
func NewPackageResponse(p *domain.MealPackage) PackageResponse {
	return PackageResponse{
		ID:           p.ID,
		VendorID:     p.VendorID,
		Title:        p.Title,
		Description:  p.Description,
		MealType:     string(p.MealType),
		PricePerWeek: p.PricePerWeek,
		MealsPerWeek: p.MealsPerWeek,
		Veg:          p.Veg,
		Active:       p.Active,
	}
}

// PackageUpsertRequest is the vendor dashboard create/update payload.
type PackageUpsertRequest struct {
	Title        string `json:"title"`
	Description  string `json:"description"`
	MealType     string `json:"meal_type"`
	PricePerWeek int64  `json:"price_per_week"`
	MealsPerWeek int    `json:"meals_per_week"`
	Veg          bool   `json:"veg"`
	Active       *bool  `json:"active,omitempty"`
}
