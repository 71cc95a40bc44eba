package domain

import "time"

// VendorStatus represents lifecycle states for a vendor listing.
type VendorStatus string

const (
	VendorStatusPending  VendorStatus = "PENDING"
	VendorStatusApproved VendorStatus = "APPROVED"
	VendorStatusDisabled VendorStatus = "DISABLED"
)

// Vendor is a kitchen/restaurant offering meal packages.
type Vendor struct {
	ID          string
	OwnerID     string
	Name        string
	Description string
	Cuisine     string
	City        string
	Status      VendorStatus
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
