package jwtx

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

const testIssuer = "hatchd-test"

func newTestHS256(t *testing.T) *HS256 {
	t.Helper()
	h, err := NewHS256([]byte("test-secret-key"), testIssuer)
	require.NoError(t, err)
	return h
}

func TestNewHS256_RequiresSecret(t *testing.T) {
	t.Parallel()

	_, err := NewHS256(nil, testIssuer)
	require.Error(t, err)

	_, err = NewHS256([]byte{}, testIssuer)
	require.Error(t, err)
}

func TestSignVerify_RoundTrip(t *testing.T) {
	t.Parallel()

	h := newTestHS256(t)
	now := time.Now().UTC()

	claims := NewAccessClaims("alice", testIssuer, 30*time.Minute, now)
	token, err := h.Sign(claims)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	got, err := h.Verify(token)
	require.NoError(t, err)
	require.Equal(t, "alice", got.Subject)
	require.Equal(t, testIssuer, got.Issuer)
	require.NotNil(t, got.ExpiresAt)
	require.WithinDuration(t, now.Add(30*time.Minute), got.ExpiresAt.Time, 2*time.Second)
}

func TestNewAccessClaims_DefaultTTL(t *testing.T) {
	t.Parallel()

	now := time.Now().UTC()
	claims := NewAccessClaims("bob", testIssuer, 0, now)

	require.NotNil(t, claims.ExpiresAt)
	require.WithinDuration(t, now.Add(DefaultAccessTokenTTL), claims.ExpiresAt.Time, 2*time.Second)
	require.NotEmpty(t, claims.ID, "jti should be populated")
}

func TestVerify_NegativeTTLAlwaysFails(t *testing.T) {
	t.Parallel()

	h := newTestHS256(t)

	// A negative ttl must produce a token that is expired from birth; only
	// a zero ttl means "use the default".
	now := time.Now().UTC()
	claims := NewAccessClaims("alice", testIssuer, -time.Minute, now)
	require.NotNil(t, claims.ExpiresAt)
	require.WithinDuration(t, now.Add(-time.Minute), claims.ExpiresAt.Time, 2*time.Second)

	token, err := h.Sign(claims)
	require.NoError(t, err)

	_, err = h.Verify(token)
	require.Error(t, err, "negative-TTL token must fail verification")
}

func TestVerify_WrongSecret(t *testing.T) {
	t.Parallel()

	h := newTestHS256(t)
	other, err := NewHS256([]byte("a-different-secret"), testIssuer)
	require.NoError(t, err)

	token, err := h.Sign(NewAccessClaims("alice", testIssuer, time.Minute, time.Now().UTC()))
	require.NoError(t, err)

	_, err = other.Verify(token)
	require.Error(t, err)
}

func TestVerify_IssuerMismatch(t *testing.T) {
	t.Parallel()

	h := newTestHS256(t)

	token, err := h.Sign(NewAccessClaims("alice", "someone-else", time.Minute, time.Now().UTC()))
	require.NoError(t, err)

	_, err = h.Verify(token)
	require.ErrorIs(t, err, ErrIssuer)
}

func TestVerify_Malformed(t *testing.T) {
	t.Parallel()

	h := newTestHS256(t)

	for _, tok := range []string{"", "garbage", "a.b.c", "eyJhbGciOiJIUzI1NiJ9..sig"} {
		_, err := h.Verify(tok)
		require.Error(t, err, "token %q should not verify", tok)
	}
}

func TestVerify_MissingSubjectStillVerifies(t *testing.T) {
	t.Parallel()

	h := newTestHS256(t)

	// A validly signed claim set with no subject is still a valid token;
	// rejecting it is the session gate's responsibility.
	claims := NewAccessClaims("", testIssuer, time.Minute, time.Now().UTC())
	token, err := h.Sign(claims)
	require.NoError(t, err)

	got, err := h.Verify(token)
	require.NoError(t, err)
	require.Empty(t, got.Subject)
}
