package api

import (
	"fmt"
	"net/http"

	"github.com/go-chi/jwtauth"
	"github.com/google/uuid"
)

// requesterID extracts the authenticated user's id from the verified token
// claims placed on the request context by jwtauth.Verifier.
func requesterID(r *http.Request) (uuid.UUID, error) {
	_, claims, err := jwtauth.FromContext(r.Context())
	if err != nil {
		return uuid.Nil, err
	}

	raw, ok := claims["id"].(string)
	if !ok {
		return uuid.Nil, fmt.Errorf("token is missing an id claim")
	}

	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, fmt.Errorf("invalid id claim: %w", err)
	}
	return id, nil
}
