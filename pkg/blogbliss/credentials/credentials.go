// Package credentials provides the password hashing and token issuance
// implementations behind the blogbliss credential interfaces.
package credentials

import (
	"fmt"
	"time"

	"github.com/go-chi/jwtauth"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// BcryptHasher hashes passwords with bcrypt.
type BcryptHasher struct {
	// Cost is the bcrypt work factor; zero means bcrypt.DefaultCost.
	Cost int
}

// NewBcryptHasher creates a hasher with the default cost.
func NewBcryptHasher() *BcryptHasher {
	return &BcryptHasher{Cost: bcrypt.DefaultCost}
}

func (h *BcryptHasher) Hash(password string) (string, error) {
	cost := h.Cost
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return "", fmt.Errorf("bcrypt: %w", err)
	}
	return string(hash), nil
}

func (h *BcryptHasher) Compare(hash, password string) error {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
}

// JWTIssuer issues signed bearer tokens through the same *jwtauth.JWTAuth
// the HTTP layer verifies with, so issuance and verification cannot drift.
type JWTIssuer struct {
	auth *jwtauth.JWTAuth
}

// NewJWTIssuer creates a token issuer over an HS256 jwtauth instance.
func NewJWTIssuer(auth *jwtauth.JWTAuth) *JWTIssuer {
	return &JWTIssuer{auth: auth}
}

// Issue signs a token embedding the user's id and name.
func (i *JWTIssuer) Issue(userID uuid.UUID, name string, ttl time.Duration) (string, error) {
	claims := map[string]interface{}{
		"id":   userID.String(),
		"name": name,
	}
	jwtauth.SetIssuedNow(claims)
	jwtauth.SetExpiryIn(claims, ttl)

	_, tokenString, err := i.auth.Encode(claims)
	if err != nil {
		return "", fmt.Errorf("encode token: %w", err)
	}
	return tokenString, nil
}
