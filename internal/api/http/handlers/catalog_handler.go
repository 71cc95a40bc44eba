package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/tiffin-service/internal/api/dto"
	"github.com/spec-kit/tiffin-service/internal/auth"
	"github.com/spec-kit/tiffin-service/internal/domain"
	"github.com/spec-kit/tiffin-service/internal/service"
)

// CatalogHandler serves the public browse pages and the vendor's
// package dashboard.
type CatalogHandler struct {
	catalog *service.CatalogService
}

// NewCatalogHandler constructs the handler.
func NewCatalogHandler(catalog *service.CatalogService) *CatalogHandler {
	return &CatalogHandler{catalog: catalog}
}

// ListVendors handles GET /restaurants.
func (h *CatalogHandler) ListVendors(c *fiber.Ctx) error {
	vendors, err := h.catalog.ListVendors(c.Context(), c.Query("city"))
	if err != nil {
		return err
	}

	out := make([]dto.VendorResponse, 0, len(vendors))
	for _, v := range vendors {
		out = append(out, dto.NewVendorResponse(v))
	}
	return c.JSON(fiber.Map{"data": out})
}

// GetVendor handles GET /restaurants/:id.
func (h *CatalogHandler) GetVendor(c *fiber.Ctx) error {
	vendor, pkgs, err := h.catalog.GetVendor(c.Context(), c.Params("id"))
	if err != nil {
		return err
	}

	packages := make([]dto.PackageResponse, 0, len(pkgs))
	for _, p := range pkgs {
		packages = append(packages, dto.NewPackageResponse(p))
	}
	return c.JSON(fiber.Map{"data": fiber.Map{
		"vendor":   dto.NewVendorResponse(vendor),
		"packages": packages,
	}})
}

// ListPackages handles GET /packages.
func (h *CatalogHandler) ListPackages(c *fiber.Ctx) error {
	pkgs, err := h.catalog.ListPackages(c.Context())
	if err != nil {
		return err
	}

	out := make([]dto.PackageResponse, 0, len(pkgs))
	for _, p := range pkgs {
		out = append(out, dto.NewPackageResponse(p))
	}
	return c.JSON(fiber.Map{"data": out})
}

// VendorDashboard handles GET /vendor/dashboard.
func (h *CatalogHandler) VendorDashboard(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return fiber.NewError(http.StatusUnauthorized, "authentication required")
	}

	vendor, pkgs, err := h.catalog.VendorPackages(c.Context(), principal.Account.ID)
	if err != nil {
		return err
	}
	packages := make([]dto.PackageResponse, 0, len(pkgs))
	for _, p := range pkgs {
		packages = append(packages, dto.NewPackageResponse(p))
	}
	return c.JSON(fiber.Map{"data": fiber.Map{
		"vendor":   dto.NewVendorResponse(vendor),
		"status":   vendor.Status,
		"packages": packages,
	}})
}

// CreatePackage handles POST /vendor/packages.
func (h *CatalogHandler) CreatePackage(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return fiber.NewError(http.StatusUnauthorized, "authentication required")
	}

	var req dto.PackageUpsertRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}
	if req.Title == "" || req.PricePerWeek <= 0 || req.MealsPerWeek <= 0 {
		return fiber.NewError(http.StatusBadRequest, "title, price_per_week, meals_per_week required")
	}

	pkg := &domain.MealPackage{
		Title:        req.Title,
		Description:  req.Description,
		MealType:     domain.MealType(req.MealType),
		PricePerWeek: req.PricePerWeek,
		MealsPerWeek: req.MealsPerWeek,
		Veg:          req.Veg,
	}
	if err := h.catalog.CreatePackage(c.Context(), principal.Account.ID, pkg); err != nil {
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": dto.NewPackageResponse(pkg)})
}

// UpdatePackage handles PUT /vendor/packages/:id.
func (h *CatalogHandler) UpdatePackage(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return fiber.NewError(http.StatusUnauthorized, "authentication required")
	}

	var req dto.PackageUpsertRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}

	active := true
	if req.Active != nil {
		active = *req.Active
	}
	pkg := &domain.MealPackage{
		ID:           c.Params("id"),
		Title:        req.Title,
		Description:  req.Description,
		MealType:     domain.MealType(req.MealType),
		PricePerWeek: req.PricePerWeek,
		MealsPerWeek: req.MealsPerWeek,
		Veg:          req.Veg,
		Active:       active,
	}
	if err := h.catalog.UpdatePackage(c.Context(), principal.Account.ID, pkg); err != nil {
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}
	return c.JSON(fiber.Map{"data": dto.NewPackageResponse(pkg)})
}
