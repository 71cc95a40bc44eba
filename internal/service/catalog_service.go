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

// CatalogService serves the public browse pages and the vendor's own
// package management.
type CatalogService struct {
	vendors    repository.VendorRepository
	packages   repository.MealPackageRepository
	dispatcher events.Dispatcher
}

// NewCatalogService builds the service.
func NewCatalogService(vendors repository.VendorRepository, packages repository.MealPackageRepository, dispatcher events.Dispatcher) *CatalogService {
	return &CatalogService{vendors: vendors, packages: packages, dispatcher: dispatcher}
}

// ListVendors returns approved vendors, optionally filtered by city.
func (s *CatalogService) ListVendors(ctx context.Context, city string) ([]*domain.Vendor, error) {
	return s.vendors.ListApproved(ctx, city)
}

// GetVendor returns one vendor with its active packages.
func (s *CatalogService) GetVendor(ctx context.Context, id string) (*domain.Vendor, []*domain.MealPackage, error) {
	vendor, err := s.vendors.GetByID(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	pkgs, err := s.packages.ListByVendor(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	active := pkgs[:0]
	for _, pkg := range pkgs {
		if pkg.Active {
			active = append(active, pkg)
		}
	}
	return vendor, active, nil
}

// ListPackages returns all active packages across vendors.
func (s *CatalogService) ListPackages(ctx context.Context) ([]*domain.MealPackage, error) {
	return s.packages.ListActive(ctx)
}

// VendorPackages returns every package owned by the caller's vendor,
// active or not, for the vendor dashboard.
func (s *CatalogService) VendorPackages(ctx context.Context, ownerID string) (*domain.Vendor, []*domain.MealPackage, error) {
	vendor, err := s.vendors.GetByOwner(ctx, ownerID)
	if err != nil {
		return nil, nil, err
	}
	pkgs, err := s.packages.ListByVendor(ctx, vendor.ID)
	if err != nil {
		return nil, nil, err
	}
	return vendor, pkgs, nil
}

// CreatePackage publishes a new package under the caller's vendor.
func (s *CatalogService) CreatePackage(ctx context.Context, ownerID string, pkg *domain.MealPackage) error {
	vendor, err := s.vendors.GetByOwner(ctx, ownerID)
	if err != nil {
		return err
	}
	if vendor.Status != domain.VendorStatusApproved {
		return errors.New("vendor not approved")
	}
	pkg.VendorID = vendor.ID
	pkg.Active = true
	if err := s.packages.Create(ctx, pkg); err != nil {
		return err
	}
	s.publishPackageChanged(ctx, pkg)
	return nil
}

// UpdatePackage modifies a package after verifying ownership.
func (s *CatalogService) UpdatePackage(ctx context.Context, ownerID string, pkg *domain.MealPackage) error {
	vendor, err := s.vendors.GetByOwner(ctx, ownerID)
	if err != nil {
		return err
	}
	existing, err := s.packages.GetByID(ctx, pkg.ID)
	if err != nil {
		return err
	}
	if existing.VendorID != vendor.ID {
		return errors.New("package belongs to another vendor")
	}
	pkg.VendorID = vendor.ID
	if err := s.packages.Update(ctx, pkg); err != nil {
		return err
	}
	s.publishPackageChanged(ctx, pkg)
	return nil
}

func (s *CatalogService) publishPackageChanged(ctx context.Context, pkg *domain.MealPackage) {
	if s.dispatcher == nil {
		return
	}
	_ = s.dispatcher.Publish(ctx, events.Event{
		ID:        uuid.NewString(),
		Type:      events.EventVendorPackageChanged,
		Timestamp: time.Now(),
		Payload: events.VendorPackageChangedPayload{
			PackageID: pkg.ID,
			VendorID:  pkg.VendorID,
			Active:    pkg.Active,
		},
	})
}
