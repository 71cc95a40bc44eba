package events

import (
	"time"

	"github.com/spec-kit/tiffin-service/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventSessionExpired       EventType = "session_expired"
	EventSubscriptionCreated  EventType = "subscription_created"
	EventSubscriptionChanged  EventType = "subscription_changed"
	EventOrderStatusChanged   EventType = "order_status_changed"
	EventVendorPackageChanged EventType = "vendor_package_changed"
)

// Event represents a domain event emitted by services and workers.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// SessionExpiredPayload is published by the expiry poller when it clears
// a session whose token is past its expiry. RedirectTo carries the login
// redirect the guard would issue for the session's last known path.
type SessionExpiredPayload struct {
	SessionID  string `json:"session_id"`
	Email      string `json:"email"`
	Role       string `json:"role"`
	RedirectTo string `json:"redirect_to"`
}

// SubscriptionCreatedPayload payload.
type SubscriptionCreatedPayload struct {
	SubscriptionID string   `json:"subscription_id"`
	AccountID      string   `json:"account_id"`
	PackageID      string   `json:"package_id"`
	Days           []string `json:"days"`
}

// SubscriptionChangedPayload payload.
type SubscriptionChangedPayload struct {
	SubscriptionID string                    `json:"subscription_id"`
	OldStatus      domain.SubscriptionStatus `json:"old_status"`
	NewStatus      domain.SubscriptionStatus `json:"new_status"`
}

// OrderStatusChangedPayload payload.
type OrderStatusChangedPayload struct {
	OrderID   string             `json:"order_id"`
	OldStatus domain.OrderStatus `json:"old_status"`
	NewStatus domain.OrderStatus `json:"new_status"`
}

// VendorPackageChangedPayload payload.
type VendorPackageChangedPayload struct {
	PackageID string `json:"package_id"`
	VendorID  string `json:"vendor_id"`
	Active    bool   `json:"active"`
}
