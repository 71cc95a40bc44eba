package domain

import "time"

// SubscriptionStatus represents lifecycle states for a subscription.
type SubscriptionStatus string

const (
	SubscriptionStatusActive    SubscriptionStatus = "ACTIVE"
	SubscriptionStatusPaused    SubscriptionStatus = "PAUSED"
	SubscriptionStatusCancelled SubscriptionStatus = "CANCELLED"
)

// Weekday names accepted in a delivery schedule, stored uppercase.
const (
	WeekdayMonday    = "MON"
	WeekdayTuesday   = "TUE"
	WeekdayWednesday = "WED"
	WeekdayThursday  = "THU"
	WeekdayFriday    = "FRI"
	WeekdaySaturday  = "SAT"
	WeekdaySunday    = "SUN"
)

// Subscription ties a customer to a meal package with a delivery schedule.
type Subscription struct {
	ID        string
	AccountID string
	PackageID string
	Days      []string // subset of the weekday constants
	Slot      MealType
	Address   string
	StartDate time.Time
	Status    SubscriptionStatus
	CreatedAt time.Time
	UpdatedAt time.Time
}
