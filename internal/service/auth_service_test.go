package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/tiffin-service/internal/config"
	"github.com/spec-kit/tiffin-service/internal/domain"
	"github.com/spec-kit/tiffin-service/internal/repository"
	"github.com/spec-kit/tiffin-service/internal/session"
)

type fakeAccountRepo struct {
	byID    map[string]*domain.Account
	byEmail map[string]*domain.Account
}

func newFakeAccountRepo() *fakeAccountRepo {
	return &fakeAccountRepo{
		byID:    make(map[string]*domain.Account),
		byEmail: make(map[string]*domain.Account),
	}
}

func (r *fakeAccountRepo) Create(_ context.Context, account *domain.Account) error {
	if account.ID == "" {
		account.ID = uuid.NewString()
	}
	r.byID[account.ID] = account
	r.byEmail[account.Email] = account
	return nil
}

func (r *fakeAccountRepo) Update(_ context.Context, account *domain.Account) error {
	r.byID[account.ID] = account
	r.byEmail[account.Email] = account
	return nil
}

func (r *fakeAccountRepo) GetByID(_ context.Context, id string) (*domain.Account, error) {
	account, ok := r.byID[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return account, nil
}

func (r *fakeAccountRepo) GetByEmail(_ context.Context, email string) (*domain.Account, error) {
	account, ok := r.byEmail[email]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return account, nil
}

func (r *fakeAccountRepo) ListByRole(_ context.Context, role domain.Role) ([]*domain.Account, error) {
	var out []*domain.Account
	for _, account := range r.byID {
		if account.Role == role {
			out = append(out, account)
		}
	}
	return out, nil
}

type fakeVendorRepo struct {
	byOwner map[string]*domain.Vendor
}

func newFakeVendorRepo() *fakeVendorRepo {
	return &fakeVendorRepo{byOwner: make(map[string]*domain.Vendor)}
}

func (r *fakeVendorRepo) Create(_ context.Context, vendor *domain.Vendor) error {
	if vendor.ID == "" {
		vendor.ID = uuid.NewString()
	}
	r.byOwner[vendor.OwnerID] = vendor
	return nil
}

func (r *fakeVendorRepo) Update(_ context.Context, vendor *domain.Vendor) error {
	r.byOwner[vendor.OwnerID] = vendor
	return nil
}

func (r *fakeVendorRepo) GetByID(_ context.Context, id string) (*domain.Vendor, error) {
	for _, vendor := range r.byOwner {
		if vendor.ID == id {
			return vendor, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (r *fakeVendorRepo) GetByOwner(_ context.Context, ownerID string) (*domain.Vendor, error) {
	vendor, ok := r.byOwner[ownerID]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return vendor, nil
}

func (r *fakeVendorRepo) ListApproved(_ context.Context, city string) ([]*domain.Vendor, error) {
	var out []*domain.Vendor
	for _, vendor := range r.byOwner {
		if vendor.Status != domain.VendorStatusApproved {
			continue
		}
		if city != "" && vendor.City != city {
			continue
		}
		out = append(out, vendor)
	}
	return out, nil
}

type fakeResetRepo struct {
	byToken map[string]*repository.PasswordResetToken
}

func newFakeResetRepo() *fakeResetRepo {
	return &fakeResetRepo{byToken: make(map[string]*repository.PasswordResetToken)}
}

func (r *fakeResetRepo) Create(_ context.Context, token *repository.PasswordResetToken) error {
	if token.ID == "" {
		token.ID = uuid.NewString()
	}
	r.byToken[token.Token] = token
	return nil
}

func (r *fakeResetRepo) GetByToken(_ context.Context, token string) (*repository.PasswordResetToken, error) {
	t, ok := r.byToken[token]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return t, nil
}

func (r *fakeResetRepo) MarkUsed(_ context.Context, id string) error {
	for _, t := range r.byToken {
		if t.ID == id {
			now := t.ExpiresAt
			t.UsedAt = &now
		}
	}
	return nil
}

type recordingTracker struct {
	tracked   []string
	untracked []string
}

func (t *recordingTracker) Track(sessionID, _ string) {
	t.tracked = append(t.tracked, sessionID)
}

func (t *recordingTracker) Untrack(sessionID string) {
	t.untracked = append(t.untracked, sessionID)
}

func testConfig() config.Config {
	return config.Config{
		Auth: config.AuthConfig{
			JWTSecret:               "test-secret",
			AccessTokenTTLMinutes:   60,
			PasswordResetTTLMinutes: 30,
			BcryptCost:              4,
		},
	}
}

func newTestAuthService(t *testing.T) (*AuthService, *fakeAccountRepo, session.Store, *recordingTracker) {
	t.Helper()
	accounts := newFakeAccountRepo()
	store := session.NewMemoryStore()
	tracker := &recordingTracker{}

	svc := NewAuthService(testConfig(), AuthDependencies{
		AccountRepo:       accounts,
		VendorRepo:        newFakeVendorRepo(),
		PasswordResetRepo: newFakeResetRepo(),
		Sessions:          store,
		Tracker:           tracker,
	})
	return svc, accounts, store, tracker
}

func TestRegisterAndLogin(t *testing.T) {
	ctx := context.Background()
	svc, _, store, tracker := newTestAuthService(t)

	account, err := svc.RegisterUser(ctx, "Asha", "asha@example.com", "longenough")
	require.NoError(t, err)
	assert.Equal(t, domain.RoleUser, account.Role)
	assert.NotEqual(t, "longenough", account.PasswordHash)

	result, err := svc.Login(ctx, "asha@example.com", "longenough")
	require.NoError(t, err)
	assert.NotEmpty(t, result.SessionID)
	assert.NotEmpty(t, result.Token)

	sess, err := store.Get(ctx, result.SessionID)
	require.NoError(t, err)
	require.NotNil(t, sess)
	assert.Equal(t, result.Token, sess.Token)
	assert.Equal(t, "USER", sess.Role)
	assert.Equal(t, "asha@example.com", sess.Email)
	assert.Equal(t, "Asha", sess.DisplayName)

	assert.Equal(t, []string{result.SessionID}, tracker.tracked)
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	ctx := context.Background()
	svc, _, _, tracker := newTestAuthService(t)

	_, err := svc.RegisterUser(ctx, "Asha", "asha@example.com", "longenough")
	require.NoError(t, err)

	_, err = svc.Login(ctx, "asha@example.com", "wrong-password")
	assert.Error(t, err)

	_, err = svc.Login(ctx, "nobody@example.com", "longenough")
	assert.Error(t, err)

	assert.Empty(t, tracker.tracked)
}

func TestLoginRejectsSuspendedAccount(t *testing.T) {
	ctx := context.Background()
	svc, accounts, _, _ := newTestAuthService(t)

	account, err := svc.RegisterUser(ctx, "Asha", "asha@example.com", "longenough")
	require.NoError(t, err)

	account.Status = domain.AccountStatusSuspended
	require.NoError(t, accounts.Update(ctx, account))

	_, err = svc.Login(ctx, "asha@example.com", "longenough")
	assert.Error(t, err)
}

func TestRegisterRejectsDuplicateEmail(t *testing.T) {
	ctx := context.Background()
	svc, _, _, _ := newTestAuthService(t)

	_, err := svc.RegisterUser(ctx, "Asha", "asha@example.com", "longenough")
	require.NoError(t, err)

	_, err = svc.RegisterUser(ctx, "Other", "asha@example.com", "longenough")
	assert.Error(t, err)
}

func TestRegisterVendorCreatesPendingListing(t *testing.T) {
	ctx := context.Background()
	svc, _, _, _ := newTestAuthService(t)

	account, vendor, err := svc.RegisterVendor(ctx, "Ravi", "ravi@example.com", "longenough", "Ravi's Kitchen", "Pune")
	require.NoError(t, err)
	assert.Equal(t, domain.RoleVendor, account.Role)
	assert.Equal(t, account.ID, vendor.OwnerID)
	assert.Equal(t, domain.VendorStatusPending, vendor.Status)
}

func TestLogoutClearsSessionAndTracking(t *testing.T) {
	ctx := context.Background()
	svc, _, store, tracker := newTestAuthService(t)

	_, err := svc.RegisterUser(ctx, "Asha", "asha@example.com", "longenough")
	require.NoError(t, err)

	result, err := svc.Login(ctx, "asha@example.com", "longenough")
	require.NoError(t, err)

	require.NoError(t, svc.Logout(ctx, result.SessionID))

	sess, err := store.Get(ctx, result.SessionID)
	require.NoError(t, err)
	assert.Nil(t, sess)
	assert.Equal(t, []string{result.SessionID}, tracker.untracked)
}

func TestPasswordResetFlow(t *testing.T) {
	ctx := context.Background()
	svc, _, _, _ := newTestAuthService(t)

	_, err := svc.RegisterUser(ctx, "Asha", "asha@example.com", "oldpassword")
	require.NoError(t, err)

	token, err := svc.RequestPasswordReset(ctx, "asha@example.com")
	require.NoError(t, err)
	require.NotEmpty(t, token.Token)

	require.NoError(t, svc.ConfirmPasswordReset(ctx, token.Token, "newpassword"))

	_, err = svc.Login(ctx, "asha@example.com", "oldpassword")
	assert.Error(t, err)

	_, err = svc.Login(ctx, "asha@example.com", "newpassword")
	assert.NoError(t, err)

	// single use
	err = svc.ConfirmPasswordReset(ctx, token.Token, "anotherpassword")
	assert.Error(t, err)
}
