package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/spec-kit/tiffin-service/internal/domain"
	"github.com/spec-kit/tiffin-service/internal/events"
	"github.com/spec-kit/tiffin-service/internal/repository"
)

// OrderService serves the role-specific order dashboards.
type OrderService struct {
	orders     repository.OrderRepository
	vendors    repository.VendorRepository
	dispatcher events.Dispatcher
}

// NewOrderService builds the service.
func NewOrderService(orders repository.OrderRepository, vendors repository.VendorRepository, dispatcher events.Dispatcher) *OrderService {
	return &OrderService{orders: orders, vendors: vendors, dispatcher: dispatcher}
}

// ListForAccount returns a customer's own orders.
func (s *OrderService) ListForAccount(ctx context.Context, accountID string) ([]*domain.Order, error) {
	return s.orders.ListByAccount(ctx, accountID)
}

// ListForVendorOwner returns orders against the caller's vendor.
func (s *OrderService) ListForVendorOwner(ctx context.Context, ownerID string) ([]*domain.Order, error) {
	vendor, err := s.vendors.GetByOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	return s.orders.ListByVendor(ctx, vendor.ID)
}

// ListForDelivery returns orders assigned to a delivery partner.
func (s *OrderService) ListForDelivery(ctx context.Context, deliveryID string) ([]*domain.Order, error) {
	return s.orders.ListByDelivery(ctx, deliveryID)
}

// ListAll returns recent orders for the admin dashboard.
func (s *OrderService) ListAll(ctx context.Context, limit int) ([]*domain.Order, error) {
	return s.orders.ListAll(ctx, limit)
}

// Assign attaches a delivery partner to an order.
func (s *OrderService) Assign(ctx context.Context, orderID, deliveryID string) error {
	return s.orders.Assign(ctx, orderID, deliveryID)
}

// MarkDelivered completes an order; only the assigned partner may do so.
func (s *OrderService) MarkDelivered(ctx context.Context, deliveryID, orderID string) error {
	order, err := s.orders.GetByID(ctx, orderID)
	if err != nil {
		return err
	}
	if order.DeliveryID == nil || *order.DeliveryID != deliveryID {
		return errors.New("order not assigned to caller")
	}
	if order.Status == domain.OrderStatusDelivered {
		return errors.New("order already delivered")
	}
	if err := s.orders.UpdateStatus(ctx, orderID, domain.OrderStatusDelivered); err != nil {
		return err
	}

	if s.dispatcher != nil {
		_ = s.dispatcher.Publish(ctx, events.Event{
			ID:        uuid.NewString(),
			Type:      events.EventOrderStatusChanged,
			Timestamp: time.Now(),
			Payload: events.OrderStatusChangedPayload{
				OrderID:   orderID,
				OldStatus: order.Status,
				NewStatus: domain.OrderStatusDelivered,
			},
		})
	}
	return nil
}

// Analytics summarizes orders for the admin dashboard.
type Analytics struct {
	TotalOrders     int              `json:"total_orders"`
	DeliveredOrders int              `json:"delivered_orders"`
	TotalRevenue    int64            `json:"total_revenue"`
	OrdersByStatus  map[string]int   `json:"orders_by_status"`
	RevenueByVendor map[string]int64 `json:"revenue_by_vendor"`
}

// Summarize aggregates recent orders in memory.
func (s *OrderService) Summarize(ctx context.Context, limit int) (*Analytics, error) {
	orders, err := s.orders.ListAll(ctx, limit)
	if err != nil {
		return nil, err
	}

	summary := &Analytics{
		OrdersByStatus:  make(map[string]int),
		RevenueByVendor: make(map[string]int64),
	}
	for _, order := range orders {
		summary.TotalOrders++
		summary.OrdersByStatus[string(order.Status)]++
		if order.Status == domain.OrderStatusDelivered {
			summary.DeliveredOrders++
			summary.TotalRevenue += order.Amount
			summary.RevenueByVendor[order.VendorID] += order.Amount
		}
	}
	return summary, nil
}
