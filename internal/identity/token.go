package identity

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// AuthClaims are the claims carried by a session token: the account ID plus
// the registered expiry/issued-at set.
type AuthClaims struct {
	jwt.RegisteredClaims
	UserID string `json:"user_id"`
}

// TokenSigner mints and verifies HS256-signed session tokens.
type TokenSigner struct {
	secret []byte
	expiry time.Duration
}

func NewTokenSigner(secret string, expiry time.Duration) *TokenSigner {
	return &TokenSigner{
		secret: []byte(secret),
		expiry: expiry,
	}
}

func (s *TokenSigner) Expiry() time.Duration {
	return s.expiry
}

// Sign returns a new signed session token for the given account ID.
func (s *TokenSigner) Sign(userID string) (string, error) {
	now := time.Now()

	claims := AuthClaims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(s.expiry)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}

	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
}

// Verify parses the token string and validates its signature and expiry.
func (s *TokenSigner) Verify(tokenString string) (*AuthClaims, error) {
	claims := &AuthClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil {
		return nil, err
	}

	if !token.Valid {
		return nil, fmt.Errorf("invalid token")
	}

	return claims, nil
}
