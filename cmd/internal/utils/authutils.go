package utils

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
)

var (
	// ErrMissingToken means no bearer credential was supplied at all.
	ErrMissingToken = errors.New("missing bearer token")
	// ErrInvalidToken means a credential was supplied but failed verification.
	ErrInvalidToken = errors.New("invalid token")
)

// TokenData is the identity carried by a session token.
type TokenData struct {
	UserID int64  `json:"id"`
	Email  string `json:"email"`
	Name   string `json:"name"`
}

type tokenClaims struct {
	TokenData
	jwt.RegisteredClaims
}

// TokenManager issues and verifies stateless HS256 session tokens. There is
// no server-side session table: a token is valid for as long as its
// signature verifies and, when a TTL is configured, until it expires.
type TokenManager struct {
	secret []byte
	ttl    time.Duration
}

// NewTokenManager creates a manager signing with secret. A zero ttl issues
// tokens without an expiry claim.
func NewTokenManager(secret string, ttl time.Duration) *TokenManager {
	return &TokenManager{secret: []byte(secret), ttl: ttl}
}

func (m *TokenManager) Issue(data TokenData) (string, error) {
	claims := &tokenClaims{
		TokenData: data,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject: strconv.FormatInt(data.UserID, 10),
		},
	}
	if m.ttl > 0 {
		claims.ExpiresAt = jwt.NewNumericDate(time.Now().Add(m.ttl))
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(m.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

// Verify parses AND validates the signature locally. Any failure is reported
// as ErrInvalidToken; an empty string is ErrMissingToken.
func (m *TokenManager) Verify(tokenString string) (*TokenData, error) {
	if tokenString == "" {
		return nil, ErrMissingToken
	}

	claims := &tokenClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return m.secret, nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	if !token.Valid || claims.UserID <= 0 {
		return nil, ErrInvalidToken
	}
	return &claims.TokenData, nil
}

// ParseTokenDataCtx reads the Authorization header of the request and
// verifies the bearer token in it.
func (m *TokenManager) ParseTokenDataCtx(ctx echo.Context) (*TokenData, error) {
	header := ctx.Request().Header.Get(echo.HeaderAuthorization)
	return m.Verify(sanitizeToken(header))
}

// sanitizeToken returns the credential after "Bearer ", or "" when the
// header uses another scheme or is empty.
func sanitizeToken(header string) string {
	scheme, token, found := strings.Cut(strings.TrimSpace(header), " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return ""
	}
	return strings.TrimSpace(token)
}
