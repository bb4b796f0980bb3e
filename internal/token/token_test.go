package token

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"messenger/internal/models"
)

var testUser = &models.User{ID: 42, FullName: "Test User", Email: "test@example.com"}

func TestIssueAndVerify(t *testing.T) {
	t.Parallel()

	issuer := NewIssuer([]byte("test-secret"), time.Hour)

	tokenString, err := issuer.Issue(testUser)
	require.NoError(t, err)

	claims, err := issuer.Verify(tokenString)
	require.NoError(t, err)
	assert.Equal(t, int64(42), claims.SubjectID)
	assert.Equal(t, "Test User", claims.FullName)
}

func TestVerify_Expired(t *testing.T) {
	t.Parallel()

	issuer := NewIssuer([]byte("test-secret"), -time.Minute)

	tokenString, err := issuer.Issue(testUser)
	require.NoError(t, err)

	_, err = issuer.Verify(tokenString)
	assert.ErrorIs(t, err, ErrUnauthorized)
}

func TestVerify_WrongSecret(t *testing.T) {
	t.Parallel()

	tokenString, err := NewIssuer([]byte("secret-one"), time.Hour).Issue(testUser)
	require.NoError(t, err)

	_, err = NewIssuer([]byte("secret-two"), time.Hour).Verify(tokenString)
	assert.ErrorIs(t, err, ErrUnauthorized)
}

func TestVerify_Tampered(t *testing.T) {
	t.Parallel()

	issuer := NewIssuer([]byte("test-secret"), time.Hour)

	tokenString, err := issuer.Issue(testUser)
	require.NoError(t, err)

	parts := strings.Split(tokenString, ".")
	require.Len(t, parts, 3)

	// Flip one byte in the claims segment and in the signature segment.
	tamper := func(segment string) string {
		b := []byte(segment)
		if b[0] == 'A' {
			b[0] = 'B'
		} else {
			b[0] = 'A'
		}
		return string(b)
	}

	tamperedClaims := parts[0] + "." + tamper(parts[1]) + "." + parts[2]
	_, err = issuer.Verify(tamperedClaims)
	assert.ErrorIs(t, err, ErrUnauthorized)

	tamperedSignature := parts[0] + "." + parts[1] + "." + tamper(parts[2])
	_, err = issuer.Verify(tamperedSignature)
	assert.ErrorIs(t, err, ErrUnauthorized)
}

func TestVerify_FailuresAreUniform(t *testing.T) {
	t.Parallel()

	issuer := NewIssuer([]byte("test-secret"), time.Hour)

	expired, err := NewIssuer([]byte("test-secret"), -time.Minute).Issue(testUser)
	require.NoError(t, err)

	// Malformed, garbage, expired and foreign tokens all collapse to the
	// same error value.
	for _, tokenString := range []string{"", "garbage", "a.b.c", expired} {
		_, err := issuer.Verify(tokenString)
		assert.Equal(t, ErrUnauthorized, err)
	}
}
