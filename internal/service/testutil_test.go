package service

import (
	"context"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/listenupapp/shelfnotes/internal/auth"
	"github.com/listenupapp/shelfnotes/internal/domain"
	"github.com/listenupapp/shelfnotes/internal/id"
	"github.com/listenupapp/shelfnotes/internal/logger"
	"github.com/listenupapp/shelfnotes/internal/store/sqlite"
)

// testEnv wires every service against a temporary SQLite database.
type testEnv struct {
	store    *sqlite.Store
	tokens   *auth.TokenService
	sessions *SessionService
	auth     *AuthService
	catalog  *CatalogService
	notes    *NoteService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	s, err := sqlite.Open(filepath.Join(t.TempDir(), "test.db"), nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })

	log := logger.Discard().Logger

	tokens, err := auth.NewTokenService([]byte(strings.Repeat("k", 32)), 15*time.Minute, 24*time.Hour)
	require.NoError(t, err)

	hasher := auth.NewPasswordHasher(auth.Argon2Params{Memory: 1024, Iterations: 1, Parallelism: 1, SaltLength: 16, KeyLength: 32})

	sessions := NewSessionService(s, tokens, log)
	catalog := NewCatalogService(s, s, log)

	return &testEnv{
		store:    s,
		tokens:   tokens,
		sessions: sessions,
		auth:     NewAuthService(s, hasher, tokens, sessions, log),
		catalog:  catalog,
		notes:    NewNoteService(s, catalog, log),
	}
}

func (e *testEnv) addBook(t *testing.T, title, author string, opts ...func(*domain.Book)) *domain.Book {
	t.Helper()
	b := &domain.Book{Record: domain.Record{ID: newID(t, id.PrefixBook)}, Title: title, Author: author}
	b.InitTimestamps()
	for _, opt := range opts {
		opt(b)
	}
	require.NoError(t, e.store.CreateBook(context.Background(), b))
	return b
}

func (e *testEnv) addUser(t *testing.T, username string) *domain.Viewer {
	t.Helper()
	u, err := e.auth.CreateUser(context.Background(), CreateUserRequest{Username: username, Password: "password123"})
	require.NoError(t, err)
	return u.Viewer()
}

func ptr[T any](v T) *T { return &v }

func newID(t *testing.T, prefix string) string {
	t.Helper()
	v, err := id.Generate(prefix)
	require.NoError(t, err)
	return v
}
