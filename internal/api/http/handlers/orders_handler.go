package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/tiffin-service/internal/api/dto"
	"github.com/spec-kit/tiffin-service/internal/auth"
	"github.com/spec-kit/tiffin-service/internal/domain"
	"github.com/spec-kit/tiffin-service/internal/service"
)

// OrdersHandler serves the role-specific order dashboards.
type OrdersHandler struct {
	orders *service.OrderService
}

// NewOrdersHandler constructs the handler.
func NewOrdersHandler(orders *service.OrderService) *OrdersHandler {
	return &OrdersHandler{orders: orders}
}

// List routes the caller to the listing matching their role:
// GET /user/orders, /vendor/orders, /delivery/routes and /admin/orders
// all land here.
func (h *OrdersHandler) List(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return fiber.NewError(http.StatusUnauthorized, "authentication required")
	}

	var (
		orders []*domain.Order
		err    error
	)
	switch principal.Role {
	case domain.RoleUser:
		orders, err = h.orders.ListForAccount(c.Context(), principal.Account.ID)
	case domain.RoleVendor:
		orders, err = h.orders.ListForVendorOwner(c.Context(), principal.Account.ID)
	case domain.RoleDelivery:
		orders, err = h.orders.ListForDelivery(c.Context(), principal.Account.ID)
	case domain.RoleAdmin:
		orders, err = h.orders.ListAll(c.Context(), c.QueryInt("limit", 100))
	default:
		return fiber.NewError(http.StatusForbidden, "unknown role")
	}
	if err != nil {
		return err
	}

	out := make([]dto.OrderResponse, 0, len(orders))
	for _, o := range orders {
		out = append(out, dto.NewOrderResponse(o))
	}
	return c.JSON(fiber.Map{"data": out})
}

// Assign handles POST /admin/orders/:id/assign with {"delivery_id": ...}.
func (h *OrdersHandler) Assign(c *fiber.Ctx) error {
	var req struct {
		DeliveryID string `json:"delivery_id"`
	}
	if err := c.BodyParser(&req); err != nil || req.DeliveryID == "" {
		return fiber.NewError(http.StatusBadRequest, "delivery_id required")
	}

	if err := h.orders.Assign(c.Context(), c.Params("id"), req.DeliveryID); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"id": c.Params("id"), "delivery_id": req.DeliveryID}})
}

// MarkDelivered handles POST /delivery/orders/:id/delivered.
func (h *OrdersHandler) MarkDelivered(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return fiber.NewError(http.StatusUnauthorized, "authentication required")
	}

	if err := h.orders.MarkDelivered(c.Context(), principal.Account.ID, c.Params("id")); err != nil {
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"id": c.Params("id"), "status": domain.OrderStatusDelivered}})
}

// Analytics handles GET /admin/analytics.
func (h *OrdersHandler) Analytics(c *fiber.Ctx) error {
	summary, err := h.orders.Summarize(c.Context(), c.QueryInt("limit", 500))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": summary})
}
