package service

import (
	"context"
	"time"

	domainErrors "github.com/payportal/payportal/internal/domain/errors"
	"github.com/payportal/payportal/internal/domain/user"
	"github.com/payportal/payportal/internal/infrastructure/observability"
	"github.com/payportal/payportal/internal/token"
)

// TokenRevoker marks issued token IDs as revoked.
type TokenRevoker interface {
	Revoke(ctx context.Context, tokenID string, ttl time.Duration) error
}

// AuthService handles registration, login and logout.
type AuthService struct {
	users   user.Repository
	issuer  *token.Issuer
	revoker TokenRevoker
	metrics *observability.Metrics
}

// NewAuthService creates a new AuthService.
func NewAuthService(users user.Repository, issuer *token.Issuer, revoker TokenRevoker, metrics *observability.Metrics) *AuthService {
	return &AuthService{
		users:   users,
		issuer:  issuer,
		revoker: revoker,
		metrics: metrics,
	}
}

// RegisterInput holds the sanitized registration fields.
type RegisterInput struct {
	FullName      string
	IDNumber      string
	AccountNumber string
	Password      string
}

// LoginInput identifies a user by account number (customers) or username
// (employees and admins).
type LoginInput struct {
	AccountNumber string
	Username      string
	Password      string
}

// AuthResult is a freshly issued session.
type AuthResult struct {
	Token string
	User  *user.User
}

// Register creates a customer account and issues a token for it.
func (s *AuthService) Register(ctx context.Context, in RegisterInput) (*AuthResult, error) {
	u, err := user.NewCustomer(in.FullName, in.IDNumber, in.AccountNumber, in.Password)
	if err != nil {
		return nil, err
	}

	if err := s.users.Create(ctx, u); err != nil {
		s.metrics.AuthAttempts.WithLabelValues("register", "failure").Inc()
		return nil, err
	}

	signed, _, err := s.issuer.Issue(u.ID, string(u.Role))
	if err != nil {
		return nil, err
	}

	s.metrics.AuthAttempts.WithLabelValues("register", "success").Inc()
	return &AuthResult{Token: signed, User: u}, nil
}

// Login authenticates a user and issues a token. Lookup failures and password
// mismatches are indistinguishable to the caller.
func (s *AuthService) Login(ctx context.Context, in LoginInput) (*AuthResult, error) {
	var (
		u   *user.User
		err error
	)
	switch {
	case in.Username != "":
		u, err = s.users.GetByUsername(ctx, in.Username)
	case in.AccountNumber != "":
		u, err = s.users.GetByAccountNumber(ctx, in.AccountNumber)
	default:
		return nil, domainErrors.ErrInvalidCredentials
	}

	if err != nil || u == nil || !u.CheckPassword(in.Password) {
		s.metrics.AuthAttempts.WithLabelValues("login", "failure").Inc()
		return nil, domainErrors.ErrInvalidCredentials
	}

	signed, _, err := s.issuer.Issue(u.ID, string(u.Role))
	if err != nil {
		return nil, err
	}

	s.metrics.AuthAttempts.WithLabelValues("login", "success").Inc()
	return &AuthResult{Token: signed, User: u}, nil
}

// Logout revokes the token for the remainder of its lifetime.
func (s *AuthService) Logout(ctx context.Context, claims *token.Claims) error {
	ttl := time.Duration(0)
	if claims.ExpiresAt != nil {
		ttl = time.Until(claims.ExpiresAt.Time)
	}
	if err := s.revoker.Revoke(ctx, claims.ID, ttl); err != nil {
		return err
	}
	s.metrics.TokensRevoked.Inc()
	return nil
}
