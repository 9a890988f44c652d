package credentials

import (
	"testing"
	"time"

	"github.com/go-chi/jwtauth"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestBcryptHasher(t *testing.T) {
	hasher := &BcryptHasher{Cost: bcrypt.MinCost}

	t.Run("round trip", func(t *testing.T) {
		hash, err := hasher.Hash("password1")
		require.NoError(t, err)
		assert.NotEqual(t, "password1", hash)

		assert.NoError(t, hasher.Compare(hash, "password1"))
		assert.Error(t, hasher.Compare(hash, "password2"))
	})

	t.Run("hashes are salted", func(t *testing.T) {
		a, err := hasher.Hash("password1")
		require.NoError(t, err)
		b, err := hasher.Hash("password1")
		require.NoError(t, err)
		assert.NotEqual(t, a, b)
	})

	t.Run("zero cost uses the default", func(t *testing.T) {
		h := &BcryptHasher{}
		hash, err := h.Hash("password1")
		require.NoError(t, err)

		cost, err := bcrypt.Cost([]byte(hash))
		require.NoError(t, err)
		assert.Equal(t, bcrypt.DefaultCost, cost)
	})
}

func TestJWTIssuer(t *testing.T) {
	auth := jwtauth.New("HS256", []byte("test-secret"), nil)
	issuer := NewJWTIssuer(auth)

	t.Run("claims round trip through the verifier", func(t *testing.T) {
		userID := uuid.New()

		tokenString, err := issuer.Issue(userID, "Ann", time.Hour)
		require.NoError(t, err)
		require.NotEmpty(t, tokenString)

		token, err := auth.Decode(tokenString)
		require.NoError(t, err)

		id, ok := token.Get("id")
		require.True(t, ok)
		assert.Equal(t, userID.String(), id)

		name, ok := token.Get("name")
		require.True(t, ok)
		assert.Equal(t, "Ann", name)

		assert.WithinDuration(t, time.Now().Add(time.Hour), token.Expiration(), time.Minute)
	})

	t.Run("rejects tokens signed with another key", func(t *testing.T) {
		foreign := NewJWTIssuer(jwtauth.New("HS256", []byte("other-secret"), nil))

		tokenString, err := foreign.Issue(uuid.New(), "Mallory", time.Hour)
		require.NoError(t, err)

		_, err = auth.Decode(tokenString)
		assert.Error(t, err)
	})
}
