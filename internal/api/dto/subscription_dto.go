package dto

import (
	"time"

	"github.com/spec-kit/tiffin-service/internal/domain"
)

// SubscriptionCreateRequest is the checkout payload.
type SubscriptionCreateRequest struct {
	PackageID string   `json:"package_id"`
	Days      []string `json:"days"`
	Address   string   `json:"address"`
	StartDate string   `json:"start_date,omitempty"` // YYYY-MM-DD
}

// SubscriptionResponse is the customer-facing subscription shape.
type SubscriptionResponse struct {
	ID        string   `json:"id"`
	PackageID string   `json:"package_id"`
	Days      []string `json:"days"`
	Slot      string   `json:"slot"`
	Address   string   `json:"address"`
	StartDate string   `json:"start_date"`
	Status    string   `json:"status"`
}

// NewSubscriptionResponse maps a domain subscription.
func NewSubscriptionResponse(s *domain.Subscription) SubscriptionResponse {
	return SubscriptionResponse{
		ID:        s.ID,
		PackageID: s.PackageID,
		Days:      s.Days,
		Slot:      string(s.Slot),
		Address:   s.Address,
		StartDate: s.StartDate.Format("2006-01-02"),
		Status:    string(s.Status),
	}
}

// OrderResponse is the shared order shape across role dashboards.
type OrderResponse struct {
	ID             string  `json:"id"`
	SubscriptionID string  `json:"subscription_id"`
	VendorID       string  `json:"vendor_id"`
	PackageID      string  `json:"package_id"`
	DeliveryID     *string `json:"delivery_id,omitempty"`
	DeliverOn      string  `json:"deliver_on"`
	Amount         int64   `json:"amount"`
	Status         string  `json:"status"`
}

// NewOrderResponse maps a domain order.
func NewOrderResponse(o *domain.Order) OrderResponse {
	return OrderResponse{
		ID:             o.ID,
		SubscriptionID: o.SubscriptionID,
		VendorID:       o.VendorID,
		PackageID:      o.PackageID,
		DeliveryID:     o.DeliveryID,
		DeliverOn:      o.DeliverOn.Format("2006-01-02"),
		Amount:         o.Amount,
		Status:         string(o.Status),
	}
}

// ParseStartDate parses the optional start date field.
func (r SubscriptionCreateRequest) ParseStartDate() (time.Time, error) {
	if r.StartDate == "" {
		return time.Time{}, nil
	}
	return time.Parse("2006-01-02", r.StartDate)
}
