package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/tiffin-service/internal/auth"
	"github.com/spec-kit/tiffin-service/internal/config"
	"github.com/spec-kit/tiffin-service/internal/domain"
	"github.com/spec-kit/tiffin-service/internal/repository"
	"github.com/spec-kit/tiffin-service/internal/session"
)

// SessionTracker registers sessions with the expiry poller.
type SessionTracker interface {
	Track(sessionID, lastPath string)
	Untrack(sessionID string)
}

// LoginResult bundles everything a successful login produces.
type LoginResult struct {
	Account   *domain.Account
	SessionID string
	Token     string
	ExpiresAt time.Time
}

// AuthService coordinates registration, login and the session lifecycle.
type AuthService struct {
	accounts   repository.AccountRepository
	vendors    repository.VendorRepository
	resets     repository.PasswordResetRepository
	sessions   session.Store
	tracker    SessionTracker
	tokenMgr   *auth.TokenManager
	bcryptCost int
	resetTTL   time.Duration
}

// AuthDependencies encapsulates requirements for the auth service.
type AuthDependencies struct {
	AccountRepo       repository.AccountRepository
	VendorRepo        repository.VendorRepository
	PasswordResetRepo repository.PasswordResetRepository
	Sessions          session.Store
	Tracker           SessionTracker
}

// NewAuthService builds the service.
func NewAuthService(cfg config.Config, deps AuthDependencies) *AuthService {
	return &AuthService{
		accounts:   deps.AccountRepo,
		vendors:    deps.VendorRepo,
		resets:     deps.PasswordResetRepo,
		sessions:   deps.Sessions,
		tracker:    deps.Tracker,
		tokenMgr:   auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.AccessTokenTTLMinutes),
		bcryptCost: cfg.Auth.BcryptCost,
		resetTTL:   time.Duration(cfg.Auth.PasswordResetTTLMinutes) * time.Minute,
	}
}

// RegisterUser creates a new customer account.
func (s *AuthService) RegisterUser(ctx context.Context, name, email, password string) (*domain.Account, error) {
	return s.register(ctx, name, email, password, domain.RoleUser)
}

// RegisterVendor creates a vendor owner account together with its
// pending vendor listing; admins approve the listing later.
func (s *AuthService) RegisterVendor(ctx context.Context, name, email, password, kitchenName, city string) (*domain.Account, *domain.Vendor, error) {
	account, err := s.register(ctx, name, email, password, domain.RoleVendor)
	if err != nil {
		return nil, nil, err
	}

	vendor := &domain.Vendor{
		OwnerID: account.ID,
		Name:    kitchenName,
		City:    city,
		Status:  domain.VendorStatusPending,
	}
	if err := s.vendors.Create(ctx, vendor); err != nil {
		return nil, nil, err
	}
	return account, vendor, nil
}

func (s *AuthService) register(ctx context.Context, name, email, password string, role domain.Role) (*domain.Account, error) {
	if err := auth.ValidatePassword(password); err != nil {
		return nil, err
	}
	if _, err := s.accounts.GetByEmail(ctx, email); err == nil {
		return nil, errors.New("email already registered")
	} else if err != nil && err != pgx.ErrNoRows {
		return nil, err
	}

	hash, err := auth.HashPassword(password, s.bcryptCost)
	if err != nil {
		return nil, err
	}

	account := &domain.Account{
		Name:         name,
		Email:        email,
		PasswordHash: hash,
		Role:         role,
		Status:       domain.AccountStatusActive,
	}
	if err := s.accounts.Create(ctx, account); err != nil {
		return nil, err
	}
	return account, nil
}

// Login authenticates an account, issues a token and writes the session
// store in one go, then registers the session with the expiry poller.
func (s *AuthService) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	account, err := s.accounts.GetByEmail(ctx, email)
	if err != nil {
		return nil, errors.New("invalid credentials")
	}
	if account.Status != domain.AccountStatusActive {
		return nil, errors.New("account suspended")
	}
	if err := auth.ComparePassword(account.PasswordHash, password); err != nil {
		return nil, errors.New("invalid credentials")
	}

	token, exp, err := s.tokenMgr.GenerateToken(account)
	if err != nil {
		return nil, err
	}

	sessionID := uuid.NewString()
	sess := session.Session{
		Token:       token,
		Role:        string(account.Role),
		Email:       account.Email,
		DisplayName: account.Name,
	}
	if err := s.sessions.Set(ctx, sessionID, sess); err != nil {
		return nil, err
	}
	if s.tracker != nil {
		s.tracker.Track(sessionID, "")
	}

	return &LoginResult{Account: account, SessionID: sessionID, Token: token, ExpiresAt: exp}, nil
}

// Logout clears the session and cancels its expiry tracking.
func (s *AuthService) Logout(ctx context.Context, sessionID string) error {
	if s.tracker != nil {
		s.tracker.Untrack(sessionID)
	}
	return s.sessions.Clear(ctx, sessionID)
}

// RequestPasswordReset persists a single-use reset token.
func (s *AuthService) RequestPasswordReset(ctx context.Context, email string) (*repository.PasswordResetToken, error) {
	account, err := s.accounts.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}

	token := &repository.PasswordResetToken{
		AccountID: account.ID,
		Token:     uuid.NewString(),
		ExpiresAt: time.Now().Add(s.resetTTL),
	}
	if err := s.resets.Create(ctx, token); err != nil {
		return nil, err
	}
	return token, nil
}

// ConfirmPasswordReset validates the reset token and updates the password.
func (s *AuthService) ConfirmPasswordReset(ctx context.Context, tokenStr, newPassword string) error {
	token, err := s.resets.GetByToken(ctx, tokenStr)
	if err != nil {
		return err
	}
	if token.UsedAt != nil || time.Now().After(token.ExpiresAt) {
		return errors.New("token expired or used")
	}
	if err := auth.ValidatePassword(newPassword); err != nil {
		return err
	}

	hash, err := auth.HashPassword(newPassword, s.bcryptCost)
	if err != nil {
		return err
	}

	account, err := s.accounts.GetByID(ctx, token.AccountID)
	if err != nil {
		return err
	}
	account.PasswordHash = hash
	if err := s.accounts.Update(ctx, account); err != nil {
		return err
	}
	return s.resets.MarkUsed(ctx, token.ID)
}

// TokenManager exposes the underlying token manager for middleware usage.
func (s *AuthService) TokenManager() *auth.TokenManager {
	return s.tokenMgr
}
