package auth

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/acodelab/backend/internal/app/models"
	"github.com/acodelab/backend/internal/pkg/apperrors"
)

// Claims carried inside an access token. Kind distinguishes user and
// company accounts sharing the same token format.
type Claims struct {
	AccountID int64              `json:"accountId"`
	Kind      models.AccountKind `json:"kind"`
	Username  string             `json:"username"`
	IsAdmin   bool               `json:"isAdmin"`
	jwt.RegisteredClaims
}

// TokenPair holds a freshly issued access and refresh token.
type TokenPair struct {
	AccessToken           string
	RefreshToken          string
	AccessTokenExpiresAt  time.Time
	RefreshTokenExpiresAt time.Time
}

// JWTService issues and validates tokens
type JWTService struct {
	secret          []byte
	accessDuration  time.Duration
	refreshDuration time.Duration
	issuer          string
}

// NewJWTService creates a new JWT service
func NewJWTService(secret string, accessDuration, refreshDuration time.Duration, issuer string) *JWTService {
	return &JWTService{
		secret:          []byte(secret),
		accessDuration:  accessDuration,
		refreshDuration: refreshDuration,
		issuer:          issuer,
	}
}

// GenerateTokenPair creates a signed access token plus an opaque refresh
// token. The refresh token is a random UUID persisted server side, not a JWT.
func (s *JWTService) GenerateTokenPair(accountID int64, kind models.AccountKind, username string, isAdmin bool) (*TokenPair, error) {
	now := time.Now()
	accessExpiry := now.Add(s.accessDuration)

	claims := Claims{
		AccountID: accountID,
		Kind:      kind,
		Username:  username,
		IsAdmin:   isAdmin,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    s.issuer,
			Subject:   fmt.Sprintf("%d", accountID),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(accessExpiry),
			ID:        uuid.NewString(),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return nil, fmt.Errorf("failed to sign access token: %w", err)
	}

	return &TokenPair{
		AccessToken:           signed,
		RefreshToken:          uuid.NewString(),
		AccessTokenExpiresAt:  accessExpiry,
		RefreshTokenExpiresAt: now.Add(s.refreshDuration),
	}, nil
}

// ValidateToken parses and verifies an access token
func (s *JWTService) ValidateToken(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, apperrors.ErrTokenExpired
		}
		return nil, apperrors.ErrTokenInvalid
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, apperrors.ErrTokenInvalid
	}

	return claims, nil
}

// ExtractBearerToken pulls the token out of an Authorization header value
func ExtractBearerToken(header string) (string, error) {
	if header == "" {
		return "", apperrors.ErrTokenNotFound
	}

	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", apperrors.ErrTokenInvalid
	}

	return strings.TrimSpace(parts[1]), nil
}
