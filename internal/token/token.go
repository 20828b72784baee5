// Package token issues and parses the bearer tokens that authenticate portal
// requests.
package token

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Claims are the JWT claims carried by a portal bearer token.
type Claims struct {
	UserID string `json:"user_id"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}

// Issuer signs HS256 tokens with a shared secret.
type Issuer struct {
	secret []byte
	expiry time.Duration
}

// NewIssuer creates a token issuer.
func NewIssuer(secret string, expiry time.Duration) *Issuer {
	return &Issuer{secret: []byte(secret), expiry: expiry}
}

// Issue creates a signed token for the user. Each token carries a unique ID
// so it can be revoked individually on logout.
func (i *Issuer) Issue(userID uuid.UUID, role string) (string, *Claims, error) {
	now := time.Now()
	claims := &Claims{
		UserID: userID.String(),
		Role:   role,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.New().String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(i.expiry)),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(i.secret)
	if err != nil {
		return "", nil, fmt.Errorf("sign token: %w", err)
	}
	return signed, claims, nil
}

// Parse validates the token signature and expiry and returns its claims.
func Parse(tokenString, secret string) (*Claims, error) {
	claims := &Claims{}
	parsed, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method")
		}
		return []byte(secret), nil
	})
	if err != nil {
		return nil, err
	}
	if !parsed.Valid {
		return nil, fmt.Errorf("invalid token")
	}
	return claims, nil
}
