package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/tiffin-service/internal/api/dto"
	"github.com/spec-kit/tiffin-service/internal/auth"
	"github.com/spec-kit/tiffin-service/internal/domain"
	"github.com/spec-kit/tiffin-service/internal/service"
)

// SubscriptionsHandler serves the customer schedule/checkout flow.
type SubscriptionsHandler struct {
	subs *service.SubscriptionService
}

// NewSubscriptionsHandler constructs the handler.
func NewSubscriptionsHandler(subs *service.SubscriptionService) *SubscriptionsHandler {
	return &SubscriptionsHandler{subs: subs}
}

// Create handles POST /checkout.
func (h *SubscriptionsHandler) Create(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return fiber.NewError(http.StatusUnauthorized, "authentication required")
	}

	var req dto.SubscriptionCreateRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}
	if req.PackageID == "" || req.Address == "" {
		return fiber.NewError(http.StatusBadRequest, "package_id and address required")
	}
	startDate, err := req.ParseStartDate()
	if err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid start_date")
	}

	sub := &domain.Subscription{
		AccountID: principal.Account.ID,
		PackageID: req.PackageID,
		Days:      req.Days,
		Address:   req.Address,
		StartDate: startDate,
	}
	if err := h.subs.Create(c.Context(), sub); err != nil {
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": dto.NewSubscriptionResponse(sub)})
}

// List handles GET /user/subscriptions.
func (h *SubscriptionsHandler) List(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return fiber.NewError(http.StatusUnauthorized, "authentication required")
	}

	subs, err := h.subs.ListForAccount(c.Context(), principal.Account.ID)
	if err != nil {
		return err
	}
	out := make([]dto.SubscriptionResponse, 0, len(subs))
	for _, s := range subs {
		out = append(out, dto.NewSubscriptionResponse(s))
	}
	return c.JSON(fiber.Map{"data": out})
}

// SetStatus handles PATCH /user/subscriptions/:id with {"status": ...}.
func (h *SubscriptionsHandler) SetStatus(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return fiber.NewError(http.StatusUnauthorized, "authentication required")
	}

	var req struct {
		Status string `json:"status"`
	}
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}

	status := domain.SubscriptionStatus(req.Status)
	switch status {
	case domain.SubscriptionStatusActive, domain.SubscriptionStatusPaused, domain.SubscriptionStatusCancelled:
	default:
		return fiber.NewError(http.StatusBadRequest, "invalid status")
	}

	if err := h.subs.SetStatus(c.Context(), principal.Account.ID, c.Params("id"), status); err != nil {
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"id": c.Params("id"), "status": status}})
}
