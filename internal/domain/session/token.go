package session

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Token signs and verifies session scoped JWT tokens. The token carries
// only the session id; the principal itself lives in the session store.
type Token struct {
	secretKey []byte
	ttl       time.Duration
}

// NewToken builds a token helper using the provided secret.
func NewToken(secretKey string) *Token {
	return &Token{
		secretKey: []byte(secretKey),
		ttl:       24 * time.Hour,
	}
}

// WithTTL allows customising the expiration duration.
func (t *Token) WithTTL(ttl time.Duration) *Token {
	if ttl > 0 {
		t.ttl = ttl
	}
	return t
}

// Generate issues a JWT for the provided session identifier.
func (t *Token) Generate(sessionID string) (string, error) {
	if t == nil {
		return "", errors.New("session token is nil")
	}
	if len(t.secretKey) == 0 {
		return "", errors.New("session token secret is empty")
	}

	expireTime := time.Now().Add(t.ttl)
	claims := jwt.MapClaims{
		"sid": sessionID,
		"exp": expireTime.Unix(),
		"iat": time.Now().Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(t.secretKey)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return tokenString, nil
}

// Verify validates the JWT and extracts the session identifier.
func (t *Token) Verify(tokenString string) (bool, string, error) {
	if t == nil {
		return false, "", errors.New("session token is nil")
	}
	if len(t.secretKey) == 0 {
		return false, "", errors.New("session token secret is empty")
	}

	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return t.secretKey, nil
	})
	if err != nil {
		return false, "", fmt.Errorf("failed to parse token: %w", err)
	}
	if !token.Valid {
		return false, "", errors.New("invalid token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return false, "", errors.New("invalid claims")
	}
	sessionID, ok := claims["sid"].(string)
	if !ok {
		return false, "", errors.New("invalid sid claim")
	}
	return true, sessionID, nil
}
