package service

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"runtime"
	"time"

	"golang.org/x/sync/semaphore"

	"auth-api/internal/apperr"
	"auth-api/internal/domain"
	"auth-api/internal/password"
	"auth-api/internal/repository"
	"auth-api/internal/token"
	"auth-api/internal/validation"
)

const (
	accessTokenTTL  = "15m"
	refreshTokenTTL = "30d"

	// cryptoTimeout bounds a single hash or compare; overrun surfaces as
	// an internal error rather than a stuck request.
	cryptoTimeout = 10 * time.Second
)

// dummyHash is compared against when login hits an unknown username, so
// the unknown-user and wrong-password paths stay close in timing.
const dummyHash = "$2a$11$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy"

// AuthService orchestrates the register and login flows.
type AuthService interface {
	Register(ctx context.Context, req domain.RegisterRequest) (*domain.AuthResult, error)
	Login(ctx context.Context, req domain.LoginRequest) (*domain.AuthResult, error)
}

type authService struct {
	users  repository.UserRepository
	hasher password.Hasher
	tokens *token.Issuer

	// cryptoSlots bounds concurrent bcrypt/signing work so one slow hash
	// does not stall every other request.
	cryptoSlots *semaphore.Weighted
}

func NewAuthService(users repository.UserRepository, hasher password.Hasher, tokens *token.Issuer) AuthService {
	return &authService{
		users:       users,
		hasher:      hasher,
		tokens:      tokens,
		cryptoSlots: semaphore.NewWeighted(int64(runtime.GOMAXPROCS(0) * 2)),
	}
}

// Register validates the request, enforces username uniqueness, hashes the
// password and creates the account, then issues both tokens. Exactly one
// account is created on success; nothing is persisted on failure.
func (s *authService) Register(ctx context.Context, req domain.RegisterRequest) (*domain.AuthResult, error) {
	if err := validation.Register(&req); err != nil {
		return nil, err
	}

	// Advisory pre-check; the store's uniqueness constraint decides races.
	_, err := s.users.GetByUsername(ctx, req.Username)
	switch {
	case err == nil:
		return nil, apperr.NewBusiness(http.StatusBadRequest, "Username already exists")
	case !errors.Is(err, repository.ErrUserNotFound):
		return nil, err
	}

	hash, err := s.runCrypto(ctx, func() (string, error) {
		return s.hasher.Hash(req.Password)
	})
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		Username:     req.Username,
		Name:         req.Name,
		PasswordHash: hash,
	}
	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrUserExists) {
			return nil, apperr.NewBusiness(http.StatusBadRequest, "Username already exists")
		}
		return nil, err
	}

	return s.issueTokens(ctx, user)
}

// Login validates the request and verifies the credentials. Unknown
// username and wrong password fail identically so callers cannot probe
// for account existence.
func (s *authService) Login(ctx context.Context, req domain.LoginRequest) (*domain.AuthResult, error) {
	if err := validation.Login(&req); err != nil {
		return nil, err
	}

	invalidCredentials := apperr.NewBusiness(http.StatusBadRequest, "Invalid Credentials")

	user, err := s.users.GetByUsername(ctx, req.Username)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			_, _ = s.runCrypto(ctx, func() (string, error) {
				s.hasher.Compare(req.Password, dummyHash)
				return "", nil
			})
			return nil, invalidCredentials
		}
		return nil, err
	}

	match, err := s.runCrypto(ctx, func() (string, error) {
		if s.hasher.Compare(req.Password, user.PasswordHash) {
			return "ok", nil
		}
		return "", nil
	})
	if err != nil {
		return nil, err
	}
	if match == "" {
		return nil, invalidCredentials
	}

	return s.issueTokens(ctx, user)
}

func (s *authService) issueTokens(ctx context.Context, user *domain.User) (*domain.AuthResult, error) {
	claims := map[string]any{"userId": user.ID}

	access, err := s.runCrypto(ctx, func() (string, error) {
		return s.tokens.Issue(claims, accessTokenTTL)
	})
	if err != nil {
		return nil, err
	}
	refresh, err := s.runCrypto(ctx, func() (string, error) {
		return s.tokens.Issue(claims, refreshTokenTTL)
	})
	if err != nil {
		return nil, err
	}

	return &domain.AuthResult{
		Name:         user.Name,
		Username:     user.Username,
		AccessToken:  access,
		RefreshToken: refresh,
	}, nil
}

// runCrypto runs fn on a bounded slot with a deadline. Acquisition failure
// or overrun is reported as a plain error, which the boundary classifies
// as internal.
func (s *authService) runCrypto(ctx context.Context, fn func() (string, error)) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, cryptoTimeout)
	defer cancel()

	if err := s.cryptoSlots.Acquire(ctx, 1); err != nil {
		return "", fmt.Errorf("acquire crypto slot: %w", err)
	}
	defer s.cryptoSlots.Release(1)

	type result struct {
		val string
		err error
	}
	done := make(chan result, 1)
	go func() {
		val, err := fn()
		done <- result{val, err}
	}()

	select {
	case r := <-done:
		return r.val, r.err
	case <-ctx.Done():
		return "", fmt.Errorf("crypto operation timed out: %w", ctx.Err())
	}
}
