package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/notely/notes-api/internal/dto"
	apperrors "github.com/notely/notes-api/internal/errors"
	"github.com/notely/notes-api/internal/model"
	ctxutil "github.com/notely/notes-api/pkg/context"
	"github.com/notely/notes-api/pkg/logger"
)

// UserDirectory is the persistence surface the auth service needs.
// *repository.UserRepository satisfies it; tests substitute a fake.
type UserDirectory interface {
	GetByEmail(ctx context.Context, email string) (*model.User, error)
	GetByUsername(ctx context.Context, username string) (*model.User, error)
	Create(ctx context.Context, user *model.User) error
	UpdateRefreshToken(ctx context.Context, email, token string) error
	RotateRefreshToken(ctx context.Context, email, oldToken, newToken string) error
	UpdateConfirmed(ctx context.Context, email string, confirmed bool) error
}

// AuthTTLConfig carries the lifetimes of the three token scopes.
type AuthTTLConfig struct {
	AccessTokenTTL       time.Duration
	RefreshTokenTTL      time.Duration
	EmailVerificationTTL time.Duration
}

// AuthService owns signup, login, token rotation and identity
// resolution. Every credential decision is made here; handlers only
// translate its errors to HTTP statuses.
type AuthService struct {
	directory UserDirectory
	cache     *SessionCache
	tokens    *TokenService
	hasher    *PasswordHasher
	notifier  Notifier
	ttl       AuthTTLConfig
}

func NewAuthService(directory UserDirectory, cache *SessionCache, tokens *TokenService, hasher *PasswordHasher, notifier Notifier, ttl AuthTTLConfig) *AuthService {
	return &AuthService{
		directory: directory,
		cache:     cache,
		tokens:    tokens,
		hasher:    hasher,
		notifier:  notifier,
		ttl:       ttl,
	}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// directoryError maps persistence failures that are not lookup misses.
func directoryError(err error) error {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return apperrors.WrapError(apperrors.ErrServiceUnavailable, err)
	}
	return apperrors.WrapError(apperrors.ErrInternal, err)
}

// Register creates an unconfirmed account and dispatches the
// confirmation mail. Notifier failures are logged, never surfaced.
func (s *AuthService) Register(ctx context.Context, req *dto.SignupRequest) (*dto.UserResponse, error) {
	ctx = ctxutil.WithOperation(ctx, "auth_service", "Register")
	email := normalizeEmail(req.Email)

	if _, err := s.directory.GetByEmail(ctx, email); err == nil {
		return nil, apperrors.ErrEmailExists
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, directoryError(err)
	}

	if _, err := s.directory.GetByUsername(ctx, req.Username); err == nil {
		return nil, apperrors.ErrUsernameExists
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, directoryError(err)
	}

	hashed, err := s.hasher.Hash(req.Password)
	if err != nil {
		return nil, apperrors.WrapError(apperrors.ErrInternal, err)
	}

	user := &model.User{
		Username: req.Username,
		Email:    email,
		Password: hashed,
	}
	if err := s.directory.Create(ctx, user); err != nil {
		return nil, directoryError(err)
	}

	logger.InfoWithContext(ctx, "User registered").
		String("email", email).
		Uint("user_id", user.ID).
		Log()

	s.dispatchConfirmation(ctx, user)

	resp := dto.NewUserResponse(user)
	return &resp, nil
}

// Login verifies credentials and issues a fresh token pair. The new
// refresh token overwrites the stored one, so any session established
// earlier stops refreshing.
func (s *AuthService) Login(ctx context.Context, req *dto.LoginRequest) (*dto.LoginResponse, error) {
	ctx = ctxutil.WithOperation(ctx, "auth_service", "Login")
	email := normalizeEmail(req.Email)

	user, err := s.directory.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrInvalidCredentials
		}
		return nil, directoryError(err)
	}

	if !s.hasher.Verify(user.Password, req.Password) {
		logger.WarnWithContext(ctx, "Login rejected, wrong password").
			String("email", email).
			Log()
		return nil, apperrors.ErrInvalidCredentials
	}

	if !user.Confirmed {
		return nil, apperrors.ErrEmailNotConfirmed
	}

	pair, refresh, err := s.issuePair(email)
	if err != nil {
		return nil, err
	}

	if err := s.directory.UpdateRefreshToken(ctx, email, refresh); err != nil {
		return nil, directoryError(err)
	}

	logger.LogAuth(email, "login", true)

	return &dto.LoginResponse{
		TokenPairResponse: *pair,
		User:              dto.NewUserResponse(user),
	}, nil
}

// Refresh exchanges a valid refresh token for a new pair. The stored
// slot must hold exactly the presented token; rotation is a guarded
// single-row update, so of two concurrent refreshes only one wins and
// the loser is told the token is no longer valid.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (*dto.TokenPairResponse, error) {
	ctx = ctxutil.WithOperation(ctx, "auth_service", "Refresh")

	claims, err := s.tokens.DecodeExpecting(refreshToken, TokenTypeRefresh)
	if err != nil {
		return nil, err
	}
	email := claims.Subject

	user, err := s.directory.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrUnauthorized
		}
		return nil, directoryError(err)
	}

	if user.RefreshToken != refreshToken {
		// Replay of a rotated-out token. Clear the slot so the
		// current holder has to log in again too.
		if err := s.directory.UpdateRefreshToken(ctx, email, ""); err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			logger.ErrorWithContext(ctx, "Failed to clear refresh token slot").
				String("email", email).
				Err(err).
				Log()
		}
		logger.WarnWithContext(ctx, "Refresh token replay detected").
			String("email", email).
			Log()
		return nil, apperrors.ErrInvalidRefreshToken
	}

	pair, refresh, err := s.issuePair(email)
	if err != nil {
		return nil, err
	}

	if err := s.directory.RotateRefreshToken(ctx, email, refreshToken, refresh); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// Lost the race against a concurrent refresh.
			return nil, apperrors.ErrInvalidRefreshToken
		}
		return nil, directoryError(err)
	}

	logger.LogAuth(email, "refresh", true)

	return pair, nil
}

// Logout clears the refresh slot and drops the cached session, so the
// next bearer of the access token is re-validated against the
// directory once the cache entry is gone.
func (s *AuthService) Logout(ctx context.Context, email string) error {
	ctx = ctxutil.WithOperation(ctx, "auth_service", "Logout")
	email = normalizeEmail(email)

	if err := s.directory.UpdateRefreshToken(ctx, email, ""); err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return directoryError(err)
	}

	if err := s.cache.Invalidate(ctx, email); err != nil {
		return err
	}

	logger.LogAuth(email, "logout", true)
	return nil
}

// RequestEmailConfirmation re-sends the confirmation mail. It reports
// whether the account is already confirmed and deliberately does not
// distinguish unknown addresses, so it cannot be used to enumerate
// accounts.
func (s *AuthService) RequestEmailConfirmation(ctx context.Context, email string) (alreadyConfirmed bool, err error) {
	ctx = ctxutil.WithOperation(ctx, "auth_service", "RequestEmailConfirmation")
	email = normalizeEmail(email)

	user, err := s.directory.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, nil
		}
		return false, directoryError(err)
	}

	if user.Confirmed {
		return true, nil
	}

	s.dispatchConfirmation(ctx, user)
	return false, nil
}

// ConfirmEmail marks the account behind a verification token as
// confirmed. Confirming twice is a no-op reported to the caller.
func (s *AuthService) ConfirmEmail(ctx context.Context, token string) (alreadyConfirmed bool, err error) {
	ctx = ctxutil.WithOperation(ctx, "auth_service", "ConfirmEmail")

	claims, err := s.tokens.DecodeExpecting(token, TokenTypeEmailVerification)
	if err != nil {
		return false, err
	}
	email := claims.Subject

	user, err := s.directory.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, apperrors.ErrUnauthorized
		}
		return false, directoryError(err)
	}

	if user.Confirmed {
		return true, nil
	}

	if err := s.directory.UpdateConfirmed(ctx, email, true); err != nil {
		return false, directoryError(err)
	}
	if err := s.cache.Invalidate(ctx, email); err != nil {
		logger.WarnWithContext(ctx, "Failed to invalidate session after confirmation").
			String("email", email).
			Err(err).
			Log()
	}

	logger.InfoWithContext(ctx, "Email confirmed").
		String("email", email).
		Log()

	return false, nil
}

// ResolveIdentity turns a bearer access token into the user it names.
// A cache hit is served without touching the directory; a miss falls
// through to the directory and repopulates the cache.
func (s *AuthService) ResolveIdentity(ctx context.Context, accessToken string) (*model.User, error) {
	claims, err := s.tokens.DecodeExpecting(accessToken, TokenTypeAccess)
	if err != nil {
		return nil, err
	}
	email := claims.Subject

	if snap := s.cache.Get(ctx, email); snap != nil {
		return snap.ToUser(), nil
	}

	user, err := s.directory.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrUnauthorized
		}
		return nil, directoryError(err)
	}

	if err := s.cache.Put(ctx, email, SnapshotFromUser(user)); err != nil {
		logger.WarnWithContext(ctx, "Failed to cache session").
			String("email", email).
			Err(err).
			Log()
	}

	return user, nil
}

func (s *AuthService) issuePair(email string) (*dto.TokenPairResponse, string, error) {
	access, err := s.tokens.Issue(email, TokenTypeAccess, s.ttl.AccessTokenTTL)
	if err != nil {
		return nil, "", apperrors.WrapError(apperrors.ErrInternal, err)
	}
	refresh, err := s.tokens.Issue(email, TokenTypeRefresh, s.ttl.RefreshTokenTTL)
	if err != nil {
		return nil, "", apperrors.WrapError(apperrors.ErrInternal, err)
	}

	return &dto.TokenPairResponse{
		AccessToken:  access,
		RefreshToken: refresh,
		TokenType:    "bearer",
		ExpiresIn:    int(s.ttl.AccessTokenTTL.Seconds()),
	}, refresh, nil
}

func (s *AuthService) dispatchConfirmation(ctx context.Context, user *model.User) {
	token, err := s.tokens.Issue(user.Email, TokenTypeEmailVerification, s.ttl.EmailVerificationTTL)
	if err != nil {
		logger.ErrorWithContext(ctx, "Failed to issue confirmation token").
			String("email", user.Email).
			Err(err).
			Log()
		return
	}

	if err := s.notifier.SendConfirmation(ctx, user.Email, user.Username, token); err != nil {
		logger.ErrorWithContext(ctx, "Failed to send confirmation mail").
			String("email", user.Email).
			Err(err).
			Log()
	}
}
