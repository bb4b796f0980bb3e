package token

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"messenger/internal/models"
)

// ErrUnauthorized is the only error Verify returns. Malformed tokens, bad
// signatures and expired tokens are indistinguishable to the caller so a
// client probing token structure learns nothing.
var ErrUnauthorized = errors.New("unauthorized")

// Issuer creates and verifies signed bearer tokens. The secret and TTL are
// fixed at construction and never change for the life of the process.
type Issuer struct {
	secret []byte
	ttl    time.Duration
}

func NewIssuer(secret []byte, ttl time.Duration) *Issuer {
	return &Issuer{secret: secret, ttl: ttl}
}

// Issue signs a token carrying the user's identity claim. The claim holds
// only the subject id and full name, never credential material.
func (i *Issuer) Issue(user *models.User) (string, error) {
	now := time.Now()
	claims := &models.Claims{
		SubjectID: user.ID,
		FullName:  user.FullName,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(i.ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(i.secret)
}

// Verify parses the token, checks the signature and the embedded expiry, and
// returns the identity claim. Verification is stateless.
func (i *Issuer) Verify(tokenString string) (*models.Claims, error) {
	claims := &models.Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return i.secret, nil
	})
	if err != nil || !token.Valid {
		return nil, ErrUnauthorized
	}

	return claims, nil
}
