package token

import (
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIssueAndVerify(t *testing.T) {
	m := NewManager("test-secret", time.Hour)
	id := uuid.New()

	raw, err := m.Issue(id, "ann@x.com")
	require.NoError(t, err)

	claims, err := m.Verify(raw)
	require.NoError(t, err)
	assert.Equal(t, "ann@x.com", claims.Email)

	subject, err := claims.Subject()
	require.NoError(t, err)
	assert.Equal(t, id, subject)
}

func TestVerifyFailures(t *testing.T) {
	m := NewManager("test-secret", time.Hour)
	id := uuid.New()

	t.Run("missing", func(t *testing.T) {
		_, err := m.Verify("  ")
		assert.ErrorIs(t, err, ErrMissingToken)
		assert.ErrorIs(t, err, ErrUnauthenticated)
	})

	t.Run("malformed", func(t *testing.T) {
		_, err := m.Verify("not-a-jwt")
		assert.ErrorIs(t, err, ErrMalformedToken)
		assert.ErrorIs(t, err, ErrUnauthenticated)
	})

	t.Run("wrong secret", func(t *testing.T) {
		other := NewManager("another-secret", time.Hour)
		raw, err := other.Issue(id, "ann@x.com")
		require.NoError(t, err)

		_, err = m.Verify(raw)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("expired", func(t *testing.T) {
		past := NewManager("test-secret", time.Minute)
		past.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }
		raw, err := past.Issue(id, "ann@x.com")
		require.NoError(t, err)

		_, err = m.Verify(raw)
		assert.ErrorIs(t, err, ErrExpiredToken)
	})

	t.Run("none algorithm", func(t *testing.T) {
		tok := jwt.NewWithClaims(jwt.SigningMethodNone, &Claims{
			UserID: id.String(),
			RegisteredClaims: jwt.RegisteredClaims{
				ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
			},
		})
		raw, err := tok.SignedString(jwt.UnsafeAllowNoneSignatureType)
		require.NoError(t, err)

		_, err = m.Verify(raw)
		assert.ErrorIs(t, err, ErrUnauthenticated)
	})

	t.Run("unrelated errors are not authentication errors", func(t *testing.T) {
		assert.False(t, errors.Is(errors.New("boom"), ErrUnauthenticated))
	})
}

func TestFromHeader(t *testing.T) {
	raw, err := FromHeader("Bearer abc.def.ghi")
	require.NoError(t, err)
	assert.Equal(t, "abc.def.ghi", raw)

	_, err = FromHeader("")
	assert.ErrorIs(t, err, ErrMissingToken)

	_, err = FromHeader("Basic Zm9vOmJhcg==")
	assert.ErrorIs(t, err, ErrMalformedToken)

	_, err = FromHeader("Bearer   ")
	assert.ErrorIs(t, err, ErrMissingToken)
}
