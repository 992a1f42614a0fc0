package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/huddle-dev/huddle/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestIssuer(t *testing.T) *Issuer {
	t.Helper()
	issuer, err := NewIssuer("test-secret")
	require.NoError(t, err)
	return issuer
}

func TestNewIssuer_RequiresSecret(t *testing.T) {
	_, err := NewIssuer("")
	assert.Error(t, err)
}

func TestIssueVerify_RoundTrip(t *testing.T) {
	issuer := newTestIssuer(t)

	token, err := issuer.Issue(Identity{UserID: "u-1", Email: "a@x.com"})
	require.NoError(t, err)

	id, err := issuer.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, Identity{UserID: "u-1", Email: "a@x.com"}, id)
}

func TestIssue_SevenDayExpiry(t *testing.T) {
	issuer := newTestIssuer(t)
	fixed := time.Date(2030, 1, 1, 12, 0, 0, 0, time.UTC)
	issuer.now = func() time.Time { return fixed }

	token, err := issuer.Issue(Identity{UserID: "u-1", Email: "a@x.com"})
	require.NoError(t, err)

	claims := &Claims{}
	_, _, err = jwt.NewParser().ParseUnverified(token, claims)
	require.NoError(t, err)
	assert.True(t, fixed.Add(7*24*time.Hour).Equal(claims.ExpiresAt.Time))
	assert.Equal(t, types.SessionTTL, issuer.TTL())
}

func TestVerify_Rejects(t *testing.T) {
	issuer := newTestIssuer(t)
	valid, err := issuer.Issue(Identity{UserID: "u-1", Email: "a@x.com"})
	require.NoError(t, err)

	other, err := NewIssuer("other-secret")
	require.NoError(t, err)
	foreign, err := other.Issue(Identity{UserID: "u-1", Email: "a@x.com"})
	require.NoError(t, err)

	expiredIssuer := newTestIssuer(t)
	expiredIssuer.now = func() time.Time { return time.Now().Add(-8 * 24 * time.Hour) }
	expired, err := expiredIssuer.Issue(Identity{UserID: "u-1", Email: "a@x.com"})
	require.NoError(t, err)

	unsigned, err := jwt.NewWithClaims(jwt.SigningMethodNone, &Claims{
		UserID: "u-1",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	noExpiry, err := jwt.NewWithClaims(jwt.SigningMethodHS256, &Claims{UserID: "u-1"}).
		SignedString([]byte("test-secret"))
	require.NoError(t, err)

	tests := []struct {
		name  string
		token string
	}{
		{"missing", ""},
		{"malformed", "not-a-jwt"},
		{"tampered", valid + "x"},
		{"wrong secret", foreign},
		{"expired", expired},
		{"alg none", unsigned},
		{"no expiry", noExpiry},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := issuer.Verify(tt.token)
			require.Error(t, err)
			assert.ErrorIs(t, err, types.ErrUnauthenticated)
			assert.Nil(t, issuer.VerifyOptional(tt.token))
		})
	}
}

func TestVerifyOptional_Valid(t *testing.T) {
	issuer := newTestIssuer(t)
	token, err := issuer.Issue(Identity{UserID: "u-2", Email: "b@x.com"})
	require.NoError(t, err)

	id := issuer.VerifyOptional(token)
	require.NotNil(t, id)
	assert.Equal(t, "u-2", id.UserID)
}
