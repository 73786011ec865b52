package auth

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/listenupapp/shelfnotes/internal/domain"
)

// fastParams keeps password tests quick.
var fastParams = Argon2Params{Memory: 1024, Iterations: 1, Parallelism: 1, SaltLength: 16, KeyLength: 32}

func testKey() []byte {
	return []byte(strings.Repeat("k", keyLength))
}

func newTestTokenService(t *testing.T) *TokenService {
	t.Helper()
	ts, err := NewTokenService(testKey(), 15*time.Minute, 24*time.Hour)
	require.NoError(t, err)
	return ts
}

func TestPasswordHasher_RoundTrip(t *testing.T) {
	h := NewPasswordHasher(fastParams)

	encoded, err := h.Hash("correct horse")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(encoded, "$argon2id$v=19$m=1024,t=1,p=1$"))

	ok, err := h.Verify(encoded, "correct horse")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = h.Verify(encoded, "wrong horse")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestPasswordHasher_VerifyUsesStoredParams(t *testing.T) {
	encoded, err := NewPasswordHasher(fastParams).Hash("secret-pass")
	require.NoError(t, err)

	other := fastParams
	other.Iterations = 2
	ok, err := NewPasswordHasher(other).Verify(encoded, "secret-pass")
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestPasswordHasher_Rejects(t *testing.T) {
	h := NewPasswordHasher(fastParams)

	_, err := h.Hash("")
	assert.Error(t, err)

	_, err = h.Hash(strings.Repeat("x", maxPasswordLength+1))
	assert.Error(t, err)

	ok, err := h.Verify("not-a-hash", "anything")
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = h.Verify("$bcrypt$v=19$m=1,t=1,p=1$c2FsdA$aGFzaA", "anything")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestTokenService_AccessRoundTrip(t *testing.T) {
	ts := newTestTokenService(t)
	user := &domain.User{Record: domain.Record{ID: "user-1"}, Username: "reader", IsStaff: true}

	token, err := ts.GenerateAccessToken(user)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(token, "v4.local."))

	claims, err := ts.VerifyAccessToken(token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.UserID)
	assert.Equal(t, "user-1", claims.Subject)
	assert.Equal(t, "reader", claims.Username)
	assert.True(t, claims.IsStaff)
}

func TestTokenService_RejectsExpired(t *testing.T) {
	ts := newTestTokenService(t)
	token, err := ts.GenerateAccessToken(&domain.User{Record: domain.Record{ID: "user-1"}})
	require.NoError(t, err)

	ts.now = func() time.Time { return time.Now().Add(time.Hour) }
	_, err = ts.VerifyAccessToken(token)
	assert.Error(t, err)
}

func TestTokenService_RejectsForeignKey(t *testing.T) {
	ts := newTestTokenService(t)
	token, err := ts.GenerateAccessToken(&domain.User{Record: domain.Record{ID: "user-1"}})
	require.NoError(t, err)

	other, err := NewTokenService([]byte(strings.Repeat("z", keyLength)), time.Minute, time.Hour)
	require.NoError(t, err)

	_, err = other.VerifyAccessToken(token)
	assert.Error(t, err)

	_, err = ts.VerifyAccessToken("garbage")
	assert.Error(t, err)
}

func TestNewTokenService_KeyValidation(t *testing.T) {
	_, err := NewTokenService([]byte("short"), time.Minute, time.Hour)
	assert.Error(t, err)

	_, err = NewTokenService([]byte(strings.Repeat("k", keyLength)), time.Minute, time.Hour)
	assert.NoError(t, err)
}

func TestRefreshTokens(t *testing.T) {
	ts := newTestTokenService(t)

	a, err := ts.GenerateRefreshToken()
	require.NoError(t, err)
	b, err := ts.GenerateRefreshToken()
	require.NoError(t, err)

	assert.NotEqual(t, a, b)
	assert.Len(t, HashRefreshToken(a), 64)
	assert.Equal(t, HashRefreshToken(a), HashRefreshToken(a))
	assert.NotEqual(t, HashRefreshToken(a), HashRefreshToken(b))
}

func TestLoadOrGenerateKey(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "data")

	key, err := LoadOrGenerateKey(dir)
	require.NoError(t, err)
	assert.Len(t, key, keyLength)

	info, err := os.Stat(filepath.Join(dir, KeyFileName))
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())

	again, err := LoadOrGenerateKey(dir)
	require.NoError(t, err)
	assert.Equal(t, key, again)
}

func TestLoadOrGenerateKey_Corrupt(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, KeyFileName), []byte("nothex"), 0o600))

	_, err := LoadOrGenerateKey(dir)
	assert.Error(t, err)
}
