package service

import (
	"context"

	"github.com/spec-kit/tiffin-service/internal/domain"
	"github.com/spec-kit/tiffin-service/internal/repository"
)

// AdminService backs the admin dashboard pages.
type AdminService struct {
	accounts repository.AccountRepository
	vendors  repository.VendorRepository
}

// NewAdminService builds the service.
func NewAdminService(accounts repository.AccountRepository, vendors repository.VendorRepository) *AdminService {
	return &AdminService{accounts: accounts, vendors: vendors}
}

// ListAccounts returns accounts holding the given role, for the customer
// and delivery-partner management pages.
func (s *AdminService) ListAccounts(ctx context.Context, role domain.Role) ([]*domain.Account, error) {
	return s.accounts.ListByRole(ctx, role)
}

// SetVendorStatus approves or disables a vendor listing.
func (s *AdminService) SetVendorStatus(ctx context.Context, vendorID string, status domain.VendorStatus) (*domain.Vendor, error) {
	vendor, err := s.vendors.GetByID(ctx, vendorID)
	if err != nil {
		return nil, err
	}
	vendor.Status = status
	if err := s.vendors.Update(ctx, vendor); err != nil {
		return nil, err
	}
	return vendor, nil
}

// SetAccountStatus suspends or reactivates an account.
func (s *AdminService) SetAccountStatus(ctx context.Context, accountID string, status domain.AccountStatus) (*domain.Account, error) {
	account, err := s.accounts.GetByID(ctx, accountID)
	if err != nil {
		return nil, err
	}
	account.Status = status
	if err := s.accounts.Update(ctx, account); err != nil {
		return nil, err
	}
	return account, nil
}
