package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/tiffin-service/internal/domain"
)

type fakeSubscriptionRepo struct {
	byID map[string]*domain.Subscription
}

func newFakeSubscriptionRepo() *fakeSubscriptionRepo {
	return &fakeSubscriptionRepo{byID: make(map[string]*domain.Subscription)}
}

func (r *fakeSubscriptionRepo) Create(_ context.Context, sub *domain.Subscription) error {
	if sub.ID == "" {
		sub.ID = uuid.NewString()
	}
	r.byID[sub.ID] = sub
	return nil
}

func (r *fakeSubscriptionRepo) UpdateStatus(_ context.Context, id string, status domain.SubscriptionStatus) error {
	sub, ok := r.byID[id]
	if !ok {
		return pgx.ErrNoRows
	}
	sub.Status = status
	return nil
}

func (r *fakeSubscriptionRepo) GetByID(_ context.Context, id string) (*domain.Subscription, error) {
	sub, ok := r.byID[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return sub, nil
}

func (r *fakeSubscriptionRepo) ListByAccount(_ context.Context, accountID string) ([]*domain.Subscription, error) {
	var out []*domain.Subscription
	for _, sub := range r.byID {
		if sub.AccountID == accountID {
			out = append(out, sub)
		}
	}
	return out, nil
}

type fakePackageRepo struct {
	byID map[string]*domain.MealPackage
}

func newFakePackageRepo() *fakePackageRepo {
	return &fakePackageRepo{byID: make(map[string]*domain.MealPackage)}
}

func (r *fakePackageRepo) Create(_ context.Context, pkg *domain.MealPackage) error {
	if pkg.ID == "" {
		pkg.ID = uuid.NewString()
	}
	r.byID[pkg.ID] = pkg
	return nil
}

func (r *fakePackageRepo) Update(_ context.Context, pkg *domain.MealPackage) error {
	r.byID[pkg.ID] = pkg
	return nil
}

func (r *fakePackageRepo) GetByID(_ context.Context, id string) (*domain.MealPackage, error) {
	pkg, ok := r.byID[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return pkg, nil
}

func (r *fakePackageRepo) ListActive(_ context.Context) ([]*domain.MealPackage, error) {
	var out []*domain.MealPackage
	for _, pkg := range r.byID {
		if pkg.Active {
			out = append(out, pkg)
		}
	}
	return out, nil
}

func (r *fakePackageRepo) ListByVendor(_ context.Context, vendorID string) ([]*domain.MealPackage, error) {
	var out []*domain.MealPackage
	for _, pkg := range r.byID {
		if pkg.VendorID == vendorID {
			out = append(out, pkg)
		}
	}
	return out, nil
}

type fakeOrderRepo struct {
	orders []*domain.Order
}

func (r *fakeOrderRepo) Create(_ context.Context, order *domain.Order) error {
	if order.ID == "" {
		order.ID = uuid.NewString()
	}
	r.orders = append(r.orders, order)
	return nil
}

func (r *fakeOrderRepo) UpdateStatus(_ context.Context, id string, status domain.OrderStatus) error {
	for _, order := range r.orders {
		if order.ID == id {
			order.Status = status
			return nil
		}
	}
	return pgx.ErrNoRows
}

func (r *fakeOrderRepo) Assign(_ context.Context, id, deliveryID string) error {
	for _, order := range r.orders {
		if order.ID == id {
			order.DeliveryID = &deliveryID
			return nil
		}
	}
	return pgx.ErrNoRows
}

func (r *fakeOrderRepo) GetByID(_ context.Context, id string) (*domain.Order, error) {
	for _, order := range r.orders {
		if order.ID == id {
			return order, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (r *fakeOrderRepo) ListByAccount(_ context.Context, accountID string) ([]*domain.Order, error) {
	var out []*domain.Order
	for _, order := range r.orders {
		if order.AccountID == accountID {
			out = append(out, order)
		}
	}
	return out, nil
}

func (r *fakeOrderRepo) ListByVendor(_ context.Context, vendorID string) ([]*domain.Order, error) {
	var out []*domain.Order
	for _, order := range r.orders {
		if order.VendorID == vendorID {
			out = append(out, order)
		}
	}
	return out, nil
}

func (r *fakeOrderRepo) ListByDelivery(_ context.Context, deliveryID string) ([]*domain.Order, error) {
	var out []*domain.Order
	for _, order := range r.orders {
		if order.DeliveryID != nil && *order.DeliveryID == deliveryID {
			out = append(out, order)
		}
	}
	return out, nil
}

func (r *fakeOrderRepo) ListAll(_ context.Context, limit int) ([]*domain.Order, error) {
	if limit > 0 && limit < len(r.orders) {
		return r.orders[:limit], nil
	}
	return r.orders, nil
}

func newTestSubscriptionService(t *testing.T) (*SubscriptionService, *fakePackageRepo, *fakeOrderRepo) {
	t.Helper()
	packages := newFakePackageRepo()
	orders := &fakeOrderRepo{}
	svc := NewSubscriptionService(newFakeSubscriptionRepo(), packages, orders, nil)
	return svc, packages, orders
}

func seedPackage(t *testing.T, packages *fakePackageRepo, active bool) *domain.MealPackage {
	t.Helper()
	pkg := &domain.MealPackage{
		VendorID:     "vendor-1",
		Title:        "Weekday Lunch",
		MealType:     domain.MealTypeLunch,
		PricePerWeek: 50000,
		MealsPerWeek: 5,
		Active:       active,
	}
	require.NoError(t, packages.Create(context.Background(), pkg))
	return pkg
}

func TestCreateGeneratesFirstWeekOfOrders(t *testing.T) {
	ctx := context.Background()
	svc, packages, orders := newTestSubscriptionService(t)
	pkg := seedPackage(t, packages, true)

	// 2026-08-31 is a Monday.
	start := time.Date(2026, 8, 31, 0, 0, 0, 0, time.UTC)
	sub := &domain.Subscription{
		AccountID: "acct-1",
		PackageID: pkg.ID,
		Days:      []string{domain.WeekdayMonday, domain.WeekdayWednesday, domain.WeekdayFriday, domain.WeekdaySaturday, domain.WeekdaySunday},
		StartDate: start,
	}
	require.NoError(t, svc.Create(ctx, sub))

	assert.Equal(t, domain.SubscriptionStatusActive, sub.Status)
	assert.Equal(t, pkg.MealType, sub.Slot)

	require.Len(t, orders.orders, 5)
	for _, order := range orders.orders {
		assert.Equal(t, domain.OrderStatusPending, order.Status)
		assert.Equal(t, pkg.VendorID, order.VendorID)
		assert.Equal(t, int64(10000), order.Amount, "weekly price split evenly across deliveries")
		assert.False(t, order.DeliverOn.Before(start))
		assert.True(t, order.DeliverOn.Before(start.AddDate(0, 0, 7)))
	}
	assert.Equal(t, time.Monday, orders.orders[0].DeliverOn.Weekday())
}

func TestCreateRejectsBadSchedules(t *testing.T) {
	ctx := context.Background()
	svc, packages, _ := newTestSubscriptionService(t)
	pkg := seedPackage(t, packages, true)

	tests := []struct {
		name string
		days []string
	}{
		{"empty", nil},
		{"unknown day", []string{"MON", "FUNDAY"}},
		{"duplicate day", []string{"MON", "MON"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sub := &domain.Subscription{AccountID: "acct-1", PackageID: pkg.ID, Days: tt.days}
			assert.Error(t, svc.Create(ctx, sub))
		})
	}
}

func TestCreateRejectsInactivePackage(t *testing.T) {
	ctx := context.Background()
	svc, packages, _ := newTestSubscriptionService(t)
	pkg := seedPackage(t, packages, false)

	sub := &domain.Subscription{AccountID: "acct-1", PackageID: pkg.ID, Days: []string{domain.WeekdayMonday}}
	assert.Error(t, svc.Create(ctx, sub))
}

func TestSetStatusEnforcesOwnership(t *testing.T) {
	ctx := context.Background()
	svc, packages, _ := newTestSubscriptionService(t)
	pkg := seedPackage(t, packages, true)

	sub := &domain.Subscription{AccountID: "acct-1", PackageID: pkg.ID, Days: []string{domain.WeekdayMonday}}
	require.NoError(t, svc.Create(ctx, sub))

	assert.Error(t, svc.SetStatus(ctx, "acct-2", sub.ID, domain.SubscriptionStatusPaused))
	require.NoError(t, svc.SetStatus(ctx, "acct-1", sub.ID, domain.SubscriptionStatusPaused))
}

func TestSetStatusRefusesCancelledSubscription(t *testing.T) {
	ctx := context.Background()
	svc, packages, _ := newTestSubscriptionService(t)
	pkg := seedPackage(t, packages, true)

	sub := &domain.Subscription{AccountID: "acct-1", PackageID: pkg.ID, Days: []string{domain.WeekdayMonday}}
	require.NoError(t, svc.Create(ctx, sub))
	require.NoError(t, svc.SetStatus(ctx, "acct-1", sub.ID, domain.SubscriptionStatusCancelled))

	assert.Error(t, svc.SetStatus(ctx, "acct-1", sub.ID, domain.SubscriptionStatusActive))
}
