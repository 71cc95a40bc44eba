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

var validDays = map[string]time.Weekday{
	domain.WeekdayMonday:    time.Monday,
	domain.WeekdayTuesday:   time.Tuesday,
	domain.WeekdayWednesday: time.Wednesday,
	domain.WeekdayThursday:  time.Thursday,
	domain.WeekdayFriday:    time.Friday,
	domain.WeekdaySaturday:  time.Saturday,
	domain.WeekdaySunday:    time.Sunday,
}

// SubscriptionService handles schedule building and checkout.
type SubscriptionService struct {
	subs       repository.SubscriptionRepository
	packages   repository.MealPackageRepository
	orders     repository.OrderRepository
	dispatcher events.Dispatcher
}

// NewSubscriptionService builds the service.
func NewSubscriptionService(subs repository.SubscriptionRepository, packages repository.MealPackageRepository, orders repository.OrderRepository, dispatcher events.Dispatcher) *SubscriptionService {
	return &SubscriptionService{subs: subs, packages: packages, orders: orders, dispatcher: dispatcher}
}

// Create validates the schedule, persists the subscription and generates
// the first week of orders.
func (s *SubscriptionService) Create(ctx context.Context, sub *domain.Subscription) error {
	if len(sub.Days) == 0 {
		return errors.New("at least one delivery day required")
	}
	seen := map[string]struct{}{}
	for _, day := range sub.Days {
		if _, ok := validDays[day]; !ok {
			return errors.New("invalid delivery day: " + day)
		}
		if _, dup := seen[day]; dup {
			return errors.New("duplicate delivery day: " + day)
		}
		seen[day] = struct{}{}
	}

	pkg, err := s.packages.GetByID(ctx, sub.PackageID)
	if err != nil {
		return err
	}
	if !pkg.Active {
		return errors.New("package no longer available")
	}

	if sub.StartDate.IsZero() {
		sub.StartDate = time.Now().AddDate(0, 0, 1)
	}
	sub.Slot = pkg.MealType
	sub.Status = domain.SubscriptionStatusActive
	if err := s.subs.Create(ctx, sub); err != nil {
		return err
	}

	if err := s.generateWeek(ctx, sub, pkg); err != nil {
		return err
	}

	if s.dispatcher != nil {
		_ = s.dispatcher.Publish(ctx, events.Event{
			ID:        uuid.NewString(),
			Type:      events.EventSubscriptionCreated,
			Timestamp: time.Now(),
			Payload: events.SubscriptionCreatedPayload{
				SubscriptionID: sub.ID,
				AccountID:      sub.AccountID,
				PackageID:      sub.PackageID,
				Days:           sub.Days,
			},
		})
	}
	return nil
}

// generateWeek creates one pending order per scheduled day in the seven
// days from the start date. The weekly price is split evenly across the
// scheduled deliveries.
func (s *SubscriptionService) generateWeek(ctx context.Context, sub *domain.Subscription, pkg *domain.MealPackage) error {
	perDelivery := pkg.PricePerWeek / int64(len(sub.Days))
	wanted := map[time.Weekday]struct{}{}
	for _, day := range sub.Days {
		wanted[validDays[day]] = struct{}{}
	}

	for i := 0; i < 7; i++ {
		date := sub.StartDate.AddDate(0, 0, i)
		if _, ok := wanted[date.Weekday()]; !ok {
			continue
		}
		order := &domain.Order{
			SubscriptionID: sub.ID,
			AccountID:      sub.AccountID,
			VendorID:       pkg.VendorID,
			PackageID:      pkg.ID,
			DeliverOn:      date,
			Amount:         perDelivery,
			Status:         domain.OrderStatusPending,
		}
		if err := s.orders.Create(ctx, order); err != nil {
			return err
		}
	}
	return nil
}

// ListForAccount returns the caller's subscriptions.
func (s *SubscriptionService) ListForAccount(ctx context.Context, accountID string) ([]*domain.Subscription, error) {
	return s.subs.ListByAccount(ctx, accountID)
}

// SetStatus pauses, resumes or cancels a subscription owned by accountID.
func (s *SubscriptionService) SetStatus(ctx context.Context, accountID, subID string, status domain.SubscriptionStatus) error {
	sub, err := s.subs.GetByID(ctx, subID)
	if err != nil {
		return err
	}
	if sub.AccountID != accountID {
		return errors.New("subscription belongs to another account")
	}
	if sub.Status == domain.SubscriptionStatusCancelled {
		return errors.New("subscription already cancelled")
	}
	if err := s.subs.UpdateStatus(ctx, subID, status); err != nil {
		return err
	}

	if s.dispatcher != nil {
		_ = s.dispatcher.Publish(ctx, events.Event{
			ID:        uuid.NewString(),
			Type:      events.EventSubscriptionChanged,
			Timestamp: time.Now(),
			Payload: events.SubscriptionChangedPayload{
				SubscriptionID: subID,
				OldStatus:      sub.Status,
				NewStatus:      status,
			},
		})
	}
	return nil
}
