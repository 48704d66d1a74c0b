// Package auth issues and validates the bearer tokens used by the API.
package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// ErrInvalidToken is returned for tokens that fail parsing, signature
// verification, or have expired. Handlers map it to HTTP 401.
var ErrInvalidToken = errors.New("invalid token")

// tokenTTL is the session length; clients re-authenticate after 7 days.
const tokenTTL = 7 * 24 * time.Hour

// Claims is the JWT payload: the account ID plus the registered claims.
type Claims struct {
	UserID uuid.UUID `json:"user_id"`
	jwt.RegisteredClaims
}

// JWTService signs and verifies HS256 tokens with a shared secret.
type JWTService struct {
	secretKey []byte
	issuer    string
}

// NewJWTService constructs a JWTService. The secret comes from configuration
// and must never be read ad hoc inside request handling.
func NewJWTService(secretKey, issuer string) *JWTService {
	return &JWTService{secretKey: []byte(secretKey), issuer: issuer}
}

// GenerateToken creates a signed token for the given account.
func (s *JWTService) GenerateToken(userID uuid.UUID) (string, error) {
	now := time.Now()
	claims := Claims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(tokenTTL)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			Issuer:    s.issuer,
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secretKey)
	if err != nil {
		return "", fmt.Errorf("auth.JWTService.GenerateToken: %w", err)
	}
	return signed, nil
}

// ValidateToken verifies the token's signature and expiry and returns its claims.
func (s *JWTService) ValidateToken(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.secretKey, nil
	})
	if err != nil {
		return nil, fmt.Errorf("auth.JWTService.ValidateToken: %w: %v", ErrInvalidToken, err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("auth.JWTService.ValidateToken: %w", ErrInvalidToken)
	}
	return claims, nil
}
