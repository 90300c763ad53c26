package auth

import (
	"context"
	"errors"
	"time"

	"github.com/MaximJrr/drf-movies/internal/domain/models"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const (
	tokenTypeAccess  = "access"
	tokenTypeRefresh = "refresh"
)

// TokenBlacklist persists revoked refresh-token identifiers.
type TokenBlacklist interface {
	Add(ctx context.Context, jti string, userID int64, expiresAt time.Time) error
	Contains(ctx context.Context, jti string) (bool, error)
	PurgeExpired(ctx context.Context) (int64, error)
}

type Claims struct {
	UserID    int64  `json:"uid"`
	TokenType string `json:"token_type"`
	jwt.RegisteredClaims
}

// TokenManager issues and checks self-contained HS256 tokens. Access tokens
// are verified by signature and expiry alone; refresh tokens additionally go
// through the blacklist so a revoked token can never be rotated again.
type TokenManager struct {
	secret     []byte
	accessTTL  time.Duration
	refreshTTL time.Duration
	blacklist  TokenBlacklist
}

func NewTokenManager(secret string, accessTTL, refreshTTL time.Duration, blacklist TokenBlacklist) *TokenManager {
	return &TokenManager{
		secret:     []byte(secret),
		accessTTL:  accessTTL,
		refreshTTL: refreshTTL,
		blacklist:  blacklist,
	}
}

func (m *TokenManager) Issue(user *models.User) (*models.AuthTokens, error) {
	access, err := m.sign(user.ID, tokenTypeAccess, m.accessTTL, "")
	if err != nil {
		return nil, err
	}
	refresh, err := m.sign(user.ID, tokenTypeRefresh, m.refreshTTL, uuid.NewString())
	if err != nil {
		return nil, err
	}
	return &models.AuthTokens{AccessToken: access, RefreshToken: refresh}, nil
}

// Verify checks an access token and returns the identity it was issued for.
func (m *TokenManager) Verify(token string) (int64, error) {
	claims, err := m.parse(token, tokenTypeAccess)
	if err != nil {
		return 0, err
	}
	return claims.UserID, nil
}

// Rotate exchanges a valid, non-blacklisted refresh token for a new access
// token.
func (m *TokenManager) Rotate(ctx context.Context, refreshToken string) (string, error) {
	claims, err := m.parse(refreshToken, tokenTypeRefresh)
	if err != nil {
		return "", err
	}
	revoked, err := m.blacklist.Contains(ctx, claims.ID)
	if err != nil {
		return "", err
	}
	if revoked {
		return "", ErrInvalidToken
	}
	return m.sign(claims.UserID, tokenTypeAccess, m.accessTTL, "")
}

// Revoke blacklists a refresh token until its natural expiry.
func (m *TokenManager) Revoke(ctx context.Context, refreshToken string) error {
	claims, err := m.parse(refreshToken, tokenTypeRefresh)
	if err != nil {
		return err
	}
	return m.blacklist.Add(ctx, claims.ID, claims.UserID, claims.ExpiresAt.Time)
}

// PurgeExpired drops blacklist entries for refresh tokens that have expired
// on their own.
func (m *TokenManager) PurgeExpired(ctx context.Context) (int64, error) {
	return m.blacklist.PurgeExpired(ctx)
}

func (m *TokenManager) sign(userID int64, tokenType string, ttl time.Duration, jti string) (string, error) {
	now := time.Now().UTC()
	claims := &Claims{
		UserID:    userID,
		TokenType: tokenType,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        jti,
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.secret)
}

func (m *TokenManager) parse(tokenString, wantType string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return m.secret, nil
	}, jwt.WithExpirationRequired())
	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}
	if claims.TokenType != wantType {
		return nil, ErrInvalidToken
	}
	if wantType == tokenTypeRefresh && claims.ID == "" {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
