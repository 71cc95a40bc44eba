package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/tiffin-service/internal/domain"
	"github.com/spec-kit/tiffin-service/internal/service"
)

// AdminHandler serves the admin management pages.
type AdminHandler struct {
	admin *service.AdminService
}

// NewAdminHandler constructs the handler.
func NewAdminHandler(admin *service.AdminService) *AdminHandler {
	return &AdminHandler{admin: admin}
}

// ListCustomers handles GET /admin/customers.
func (h *AdminHandler) ListCustomers(c *fiber.Ctx) error {
	return h.listAccounts(c, domain.RoleUser)
}

// ListDeliveryPartners handles GET /admin/delivery-partners.
func (h *AdminHandler) ListDeliveryPartners(c *fiber.Ctx) error {
	return h.listAccounts(c, domain.RoleDelivery)
}

func (h *AdminHandler) listAccounts(c *fiber.Ctx, role domain.Role) error {
	accounts, err := h.admin.ListAccounts(c.Context(), role)
	if err != nil {
		return err
	}

	out := make([]fiber.Map, 0, len(accounts))
	for _, a := range accounts {
		out = append(out, fiber.Map{
			"id":     a.ID,
			"name":   a.Name,
			"email":  a.Email,
			"status": a.Status,
		})
	}
	return c.JSON(fiber.Map{"data": out})
}

// SetVendorStatus handles PATCH /admin/vendors/:id with {"status": ...}.
func (h *AdminHandler) SetVendorStatus(c *fiber.Ctx) error {
	var req struct {
		Status string `json:"status"`
	}
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}

	status := domain.VendorStatus(req.Status)
	switch status {
	case domain.VendorStatusApproved, domain.VendorStatusDisabled, domain.VendorStatusPending:
	default:
		return fiber.NewError(http.StatusBadRequest, "invalid status")
	}

	vendor, err := h.admin.SetVendorStatus(c.Context(), c.Params("id"), status)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"id": vendor.ID, "status": vendor.Status}})
}

// SetAccountStatus handles PATCH /admin/accounts/:id with {"status": ...}.
func (h *AdminHandler) SetAccountStatus(c *fiber.Ctx) error {
	var req struct {
		Status string `json:"status"`
	}
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}

	status := domain.AccountStatus(req.Status)
	switch status {
	case domain.AccountStatusActive, domain.AccountStatusSuspended:
	default:
		return fiber.NewError(http.StatusBadRequest, "invalid status")
	}

	account, err := h.admin.SetAccountStatus(c.Context(), c.Params("id"), status)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"id": account.ID, "status": account.Status}})
}
