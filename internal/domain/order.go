package domain

import "time"

// OrderStatus tracks a single tiffin delivery through its lifecycle.
type OrderStatus string

const (
	OrderStatusPending        OrderStatus = "PENDING"
	OrderStatusPreparing      OrderStatus = "PREPARING"
	OrderStatusOutForDelivery OrderStatus = "OUT_FOR_DELIVERY"
	OrderStatusDelivered      OrderStatus = "DELIVERED"
	OrderStatusCancelled      OrderStatus = "CANCELLED"
)

// Order is one scheduled delivery generated from a subscription.
type Order struct {
	ID             string
	SubscriptionID string
	AccountID      string
	VendorID       string
	PackageID      string
	DeliveryID     *string // assigned delivery partner, if any
	DeliverOn      time.Time
	Amount         int64
	Status         OrderStatus
	CreatedAt      time.Time
	UpdatedAt      time.Time
}
