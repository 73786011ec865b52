package api

import (
	"context"
	"encoding/json"
	"net/http"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/danielgtaylor/huma/v2/humatest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/listenupapp/shelfnotes/internal/api/dto"
	"github.com/listenupapp/shelfnotes/internal/auth"
	"github.com/listenupapp/shelfnotes/internal/logger"
	"github.com/listenupapp/shelfnotes/internal/seed"
	"github.com/listenupapp/shelfnotes/internal/service"
	"github.com/listenupapp/shelfnotes/internal/store/sqlite"
)

// testServer wraps the API server with a humatest client.
type testServer struct {
	*Server
	api   humatest.TestAPI
	store *sqlite.Store
}

// setupTestServer creates a test server backed by a temporary database
// holding the classics seed.
func setupTestServer(t *testing.T) *testServer {
	return setupTestServerWith(t, Options{AuthRateLimit: 1000, AuthRateBurst: 1000})
}

func setupTestServerWith(t *testing.T, opts Options) *testServer {
	t.Helper()

	log := logger.Discard().Logger

	st, err := sqlite.Open(filepath.Join(t.TempDir(), "test.db"), log)
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })

	_, err = seed.NewSeeder(st, log).Apply(context.Background())
	require.NoError(t, err)

	tokenService, err := auth.NewTokenService([]byte(strings.Repeat("t", 32)), 15*time.Minute, 24*time.Hour)
	require.NoError(t, err)
	hasher := auth.NewPasswordHasher(auth.Argon2Params{Memory: 1024, Iterations: 1, Parallelism: 1, SaltLength: 16, KeyLength: 32})

	sessionService := service.NewSessionService(st, tokenService, log)
	catalog := service.NewCatalogService(st, st, log)

	services := &Services{
		Auth:    service.NewAuthService(st, hasher, tokenService, sessionService, log),
		Catalog: catalog,
		Notes:   service.NewNoteService(st, catalog, log),
		DB:      st,
	}

	s := NewServer(services, opts, log)
	t.Cleanup(func() { _ = s.Shutdown() })

	return &testServer{
		Server: s,
		api:    humatest.Wrap(t, s.API()),
		store:  st,
	}
}

// register creates an account and returns its auth response.
func (ts *testServer) register(t *testing.T, username string) dto.AuthResponse {
	t.Helper()

	resp := ts.api.Post("/api/auth/register", map[string]any{
		"username": username,
		"password": "password123",
	})
	require.Equal(t, http.StatusCreated, resp.Code, resp.Body.String())

	var out dto.AuthResponse
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &out))
	return out
}

// bearer formats an Authorization header for humatest.
func bearer(token string) string {
	return "Authorization: Bearer " + token
}

// bookID looks up a seeded book by title.
func (ts *testServer) bookID(t *testing.T, title string) string {
	t.Helper()

	resp := ts.api.Get("/api/books")
	require.Equal(t, http.StatusOK, resp.Code)

	var books []dto.Book
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &books))
	for _, b := range books {
		if b.Title == title {
			return b.ID
		}
	}
	t.Fatalf("book %q not seeded", title)
	return ""
}

// decodeError reads an error body.
func decodeError(t *testing.T, body []byte) APIError {
	t.Helper()
	var e APIError
	require.NoError(t, json.Unmarshal(body, &e))
	return e
}

func TestServer_TrailingSlash(t *testing.T) {
	ts := setupTestServer(t)

	for _, path := range []string{"/api/books", "/api/books/"} {
		resp := ts.api.Get(path)
		assert.Equal(t, http.StatusOK, resp.Code, path)
	}
}

func TestServer_OpenAPI(t *testing.T) {
	ts := setupTestServer(t)

	resp := ts.api.Get("/openapi.json")
	require.Equal(t, http.StatusOK, resp.Code)
	assert.Contains(t, resp.Body.String(), "/api/notes/{id}")
}

func TestServer_CORS(t *testing.T) {
	ts := setupTestServerWith(t, Options{
		CORSAllowedOrigins: []string{"http://localhost:3000"},
		AuthRateLimit:      10,
		AuthRateBurst:      10,
	})

	resp := ts.api.Get("/api/books", "Origin: http://localhost:3000")
	require.Equal(t, http.StatusOK, resp.Code)
	assert.Equal(t, "http://localhost:3000", resp.Header().Get("Access-Control-Allow-Origin"))

	resp = ts.api.Get("/api/books", "Origin: http://evil.example")
	assert.Empty(t, resp.Header().Get("Access-Control-Allow-Origin"))
}

func TestServer_AuthRateLimit(t *testing.T) {
	ts := setupTestServerWith(t, Options{AuthRateLimit: 1, AuthRateBurst: 2})

	body := map[string]any{"username": "nobody", "password": "password123"}
	for range 2 {
		resp := ts.api.Post("/api/auth/login", body)
		assert.Equal(t, http.StatusUnauthorized, resp.Code)
	}

	resp := ts.api.Post("/api/auth/login", body)
	assert.Equal(t, http.StatusTooManyRequests, resp.Code)
	assert.Equal(t, "60", resp.Header().Get("Retry-After"))

	// Catalog reads are not limited.
	assert.Equal(t, http.StatusOK, ts.api.Get("/api/books").Code)
}

func TestServer_AuthRateLimit_IgnoresForwardedFor(t *testing.T) {
	ts := setupTestServerWith(t, Options{AuthRateLimit: 1, AuthRateBurst: 2})

	body := map[string]any{"username": "nobody", "password": "password123"}
	codes := make([]int, 0, 3)
	for _, ip := range []string{"1.1.1.1", "2.2.2.2", "3.3.3.3"} {
		resp := ts.api.Post("/api/auth/login", "X-Forwarded-For: "+ip, "X-Real-IP: "+ip, body)
		codes = append(codes, resp.Code)
	}
	assert.Equal(t, []int{http.StatusUnauthorized, http.StatusUnauthorized, http.StatusTooManyRequests}, codes)
}

func TestServer_AuthRateLimit_TrustedProxy(t *testing.T) {
	ts := setupTestServerWith(t, Options{AuthRateLimit: 1, AuthRateBurst: 1, TrustProxyHeaders: true})

	body := map[string]any{"username": "nobody", "password": "password123"}
	assert.Equal(t, http.StatusUnauthorized, ts.api.Post("/api/auth/login", "X-Real-IP: 1.1.1.1", body).Code)
	assert.Equal(t, http.StatusTooManyRequests, ts.api.Post("/api/auth/login", "X-Real-IP: 1.1.1.1", body).Code)
	assert.Equal(t, http.StatusUnauthorized, ts.api.Post("/api/auth/login", "X-Real-IP: 2.2.2.2", body).Code)
}
