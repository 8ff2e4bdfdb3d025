package service

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	apperrors "github.com/notely/notes-api/internal/errors"
)

// TokenType tags a credential with the single operation class it is
// valid for. The tag is validated on every decode; an access token is
// never accepted where a refresh token is required and vice versa.
type TokenType string

const (
	TokenTypeAccess            TokenType = "access"
	TokenTypeRefresh           TokenType = "refresh"
	TokenTypeEmailVerification TokenType = "email_verification"
)

// Known reports whether the tag is one of the declared token types.
func (t TokenType) Known() bool {
	switch t {
	case TokenTypeAccess, TokenTypeRefresh, TokenTypeEmailVerification:
		return true
	}
	return false
}

// TokenClaims is the signed envelope carried by every credential:
// subject (email), type tag, issued-at and expiry.
type TokenClaims struct {
	Scope TokenType `json:"scope"`
	jwt.RegisteredClaims
}

// TokenService issues and verifies signed expiring credentials. It has
// no side effects; output is a pure function of input and the signing
// secret injected at construction.
type TokenService struct {
	secret []byte
	now    func() time.Time
}

func NewTokenService(secret string) *TokenService {
	return &TokenService{
		secret: []byte(secret),
		now:    time.Now,
	}
}

// Issue produces a signed token for subject with the given type tag and
// lifetime. The signing key never travels inside the token.
func (s *TokenService) Issue(subject string, tokenType TokenType, ttl time.Duration) (string, error) {
	if !tokenType.Known() {
		return "", apperrors.WrapError(apperrors.ErrInternal, errors.New("unknown token type"))
	}

	// The jti makes every issued token distinct even within the same
	// second, so rotation always produces a new credential.
	now := s.now()
	claims := TokenClaims{
		Scope: tokenType,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			ID:        uuid.NewString(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	tokenString, err := token.SignedString(s.secret)
	if err != nil {
		return "", apperrors.WrapError(apperrors.ErrInternal, err)
	}

	return tokenString, nil
}

// Decode verifies the signature and expiry and returns the claims.
// Failures are distinguished: a token that cannot be parsed is
// malformed, a parseable token with a bad signature is rejected as
// forged, and a verified token past its expiry is expired.
func (s *TokenService) Decode(tokenString string) (*TokenClaims, error) {
	claims := &TokenClaims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return s.secret, nil
	}, jwt.WithTimeFunc(s.now))

	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenExpired):
			return nil, apperrors.WrapError(apperrors.ErrTokenExpired, err)
		case errors.Is(err, jwt.ErrTokenSignatureInvalid):
			return nil, apperrors.WrapError(apperrors.ErrInvalidSignature, err)
		default:
			return nil, apperrors.WrapError(apperrors.ErrTokenMalformed, err)
		}
	}

	if !token.Valid || claims.Subject == "" || !claims.Scope.Known() {
		return nil, apperrors.ErrTokenMalformed
	}

	return claims, nil
}

// DecodeExpecting decodes the token and enforces the type tag.
func (s *TokenService) DecodeExpecting(tokenString string, tokenType TokenType) (*TokenClaims, error) {
	claims, err := s.Decode(tokenString)
	if err != nil {
		return nil, err
	}

	if claims.Scope != tokenType {
		return nil, apperrors.ErrWrongTokenType
	}

	return claims, nil
}
