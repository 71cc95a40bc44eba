package domain

import "time"

// Role determines which route namespace a session may access.
type Role string

const (
	RoleUser     Role = "USER"
	RoleVendor   Role = "VENDOR"
	RoleAdmin    Role = "ADMIN"
	RoleDelivery Role = "DELIVERY"
)

// ParseRole maps a raw claim value onto a known role.
func ParseRole(raw string) (Role, bool) {
	switch Role(raw) {
	case RoleUser, RoleVendor, RoleAdmin, RoleDelivery:
		return Role(raw), true
	}
	return "", false
}

// AccountStatus represents lifecycle states for an account.
type AccountStatus string

const (
	AccountStatusActive    AccountStatus = "ACTIVE"
	AccountStatusSuspended AccountStatus = "SUSPENDED"
)

// Account is the domain model for anyone who can log in: customers,
// vendor owners, delivery partners and admins.
type Account struct {
	ID           string
	Name         string
	Email        string
	PasswordHash string
	Role         Role
	Status       AccountStatus
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
