package api

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/listenupapp/shelfnotes/internal/api/dto"
)

func decodeNote(t *testing.T, body []byte) dto.Note {
	t.Helper()
	var n dto.Note
	require.NoError(t, json.Unmarshal(body, &n))
	return n
}

func TestNotes_RequireAuthentication(t *testing.T) {
	ts := setupTestServer(t)

	tests := []struct {
		method string
		path   string
		body   any
	}{
		{http.MethodGet, "/api/notes", nil},
		{http.MethodPost, "/api/notes", map[string]any{"book": "book-x", "content": "x"}},
		{http.MethodGet, "/api/notes/note-x", nil},
		{http.MethodPut, "/api/notes/note-x", map[string]any{"book": "book-x", "content": "x"}},
		{http.MethodPatch, "/api/notes/note-x", map[string]any{"content": "x"}},
		{http.MethodDelete, "/api/notes/note-x", nil},
	}
	for _, tt := range tests {
		t.Run(tt.method+" "+tt.path, func(t *testing.T) {
			var args []any
			if tt.body != nil {
				args = append(args, tt.body)
			}
			resp := ts.api.Do(tt.method, tt.path, args...)
			require.Equal(t, http.StatusUnauthorized, resp.Code, resp.Body.String())
			assert.Equal(t, "UNAUTHORIZED", decodeError(t, resp.Body.Bytes()).Code)
		})
	}
}

func TestCreateNote(t *testing.T) {
	ts := setupTestServer(t)
	alice := ts.register(t, "alice")
	bookID := ts.bookID(t, "The Great Gatsby")

	resp := ts.api.Post("/api/notes", bearer(alice.Access), map[string]any{
		"book":    bookID,
		"content": "Green light.",
		// Read-only fields are ignored.
		"user":       "user-someone-else",
		"created_at": "2000-01-01T00:00:00Z",
	})
	require.Equal(t, http.StatusCreated, resp.Code, resp.Body.String())

	note := decodeNote(t, resp.Body.Bytes())
	assert.Equal(t, bookID, note.Book)
	assert.Equal(t, "Green light.", note.Content)
	assert.Equal(t, "The Great Gatsby", note.BookDetails.Title)
	require.NotNil(t, note.BookDetails.UserNote)
	assert.Equal(t, note.ID, note.BookDetails.UserNote.ID)
	assert.True(t, note.CreatedAt.Year() > 2000)

	var raw map[string]any
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &raw))
	assert.NotContains(t, raw, "user")
}

func TestCreateNote_Errors(t *testing.T) {
	ts := setupTestServer(t)
	alice := ts.register(t, "alice")
	bookID := ts.bookID(t, "1984")

	resp := ts.api.Post("/api/notes", bearer(alice.Access), map[string]any{"book": bookID, "content": "first"})
	require.Equal(t, http.StatusCreated, resp.Code)

	tests := []struct {
		name     string
		body     map[string]any
		wantCode int
		wantErr  string
	}{
		{"duplicate", map[string]any{"book": bookID, "content": "second"}, http.StatusConflict, "CONFLICT"},
		{"missing book", map[string]any{"book": "book-missing", "content": "x"}, http.StatusNotFound, "NOT_FOUND"},
		{"blank content", map[string]any{"book": bookID, "content": "   "}, http.StatusBadRequest, "VALIDATION"},
		{"no content field", map[string]any{"book": bookID}, http.StatusUnprocessableEntity, "VALIDATION"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := ts.api.Post("/api/notes", bearer(alice.Access), tt.body)
			require.Equal(t, tt.wantCode, resp.Code, resp.Body.String())
			assert.Equal(t, tt.wantErr, decodeError(t, resp.Body.Bytes()).Code)
		})
	}
}

func TestListNotes_OnlyOwn(t *testing.T) {
	ts := setupTestServer(t)
	alice := ts.register(t, "alice")
	bob := ts.register(t, "bob")

	for _, title := range []string{"1984", "Pride and Prejudice"} {
		resp := ts.api.Post("/api/notes", bearer(alice.Access), map[string]any{"book": ts.bookID(t, title), "content": title})
		require.Equal(t, http.StatusCreated, resp.Code)
	}
	resp := ts.api.Post("/api/notes", bearer(bob.Access), map[string]any{"book": ts.bookID(t, "1984"), "content": "bob"})
	require.Equal(t, http.StatusCreated, resp.Code)

	resp = ts.api.Get("/api/notes", bearer(alice.Access))
	require.Equal(t, http.StatusOK, resp.Code)

	var notes []dto.Note
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &notes))
	require.Len(t, notes, 2)
	assert.Equal(t, "Pride and Prejudice", notes[0].Content, "newest first")
	assert.Equal(t, "1984", notes[1].Content)
}

func TestNotes_OtherUsersNoteIsNotFound(t *testing.T) {
	ts := setupTestServer(t)
	alice := ts.register(t, "alice")
	bob := ts.register(t, "bob")

	resp := ts.api.Post("/api/notes", bearer(alice.Access), map[string]any{"book": ts.bookID(t, "1984"), "content": "mine"})
	require.Equal(t, http.StatusCreated, resp.Code)
	path := "/api/notes/" + decodeNote(t, resp.Body.Bytes()).ID

	assert.Equal(t, http.StatusNotFound, ts.api.Get(path, bearer(bob.Access)).Code)
	assert.Equal(t, http.StatusNotFound, ts.api.Patch(path, bearer(bob.Access), map[string]any{"content": "x"}).Code)
	assert.Equal(t, http.StatusNotFound, ts.api.Delete(path, bearer(bob.Access)).Code)

	resp = ts.api.Get(path, bearer(alice.Access))
	require.Equal(t, http.StatusOK, resp.Code)
	assert.Equal(t, "mine", decodeNote(t, resp.Body.Bytes()).Content)
}

func TestUpdateNote_PutAndPatch(t *testing.T) {
	ts := setupTestServer(t)
	alice := ts.register(t, "alice")
	gatsby := ts.bookID(t, "The Great Gatsby")
	orwell := ts.bookID(t, "1984")
	austen := ts.bookID(t, "Pride and Prejudice")

	resp := ts.api.Post("/api/notes", bearer(alice.Access), map[string]any{"book": gatsby, "content": "one"})
	require.Equal(t, http.StatusCreated, resp.Code)
	created := decodeNote(t, resp.Body.Bytes())
	path := "/api/notes/" + created.ID

	resp = ts.api.Post("/api/notes", bearer(alice.Access), map[string]any{"book": orwell, "content": "two"})
	require.Equal(t, http.StatusCreated, resp.Code)

	// PATCH changes only what is sent.
	resp = ts.api.Patch(path, bearer(alice.Access), map[string]any{"content": "edited"})
	require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())
	patched := decodeNote(t, resp.Body.Bytes())
	assert.Equal(t, "edited", patched.Content)
	assert.Equal(t, gatsby, patched.Book)
	assert.True(t, patched.CreatedAt.Equal(created.CreatedAt))

	// PUT needs both fields.
	resp = ts.api.Put(path, bearer(alice.Access), map[string]any{"content": "only content"})
	assert.Equal(t, http.StatusUnprocessableEntity, resp.Code)

	// Moving onto a book that already has a note conflicts.
	resp = ts.api.Put(path, bearer(alice.Access), map[string]any{"book": orwell, "content": "moved"})
	assert.Equal(t, http.StatusConflict, resp.Code)

	resp = ts.api.Put(path, bearer(alice.Access), map[string]any{"book": austen, "content": "moved"})
	require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())
	moved := decodeNote(t, resp.Body.Bytes())
	assert.Equal(t, austen, moved.Book)
	assert.Equal(t, "Pride and Prejudice", moved.BookDetails.Title)
	assert.Equal(t, "moved", moved.Content)

	resp = ts.api.Patch(path, bearer(alice.Access), map[string]any{"content": ""})
	assert.Equal(t, http.StatusBadRequest, resp.Code)
}

func TestDeleteNote(t *testing.T) {
	ts := setupTestServer(t)
	alice := ts.register(t, "alice")

	resp := ts.api.Post("/api/notes", bearer(alice.Access), map[string]any{"book": ts.bookID(t, "1984"), "content": "bye"})
	require.Equal(t, http.StatusCreated, resp.Code)
	path := "/api/notes/" + decodeNote(t, resp.Body.Bytes()).ID

	resp = ts.api.Delete(path, bearer(alice.Access))
	assert.Equal(t, http.StatusNoContent, resp.Code)

	assert.Equal(t, http.StatusNotFound, ts.api.Get(path, bearer(alice.Access)).Code)
	assert.Equal(t, http.StatusNotFound, ts.api.Delete(path, bearer(alice.Access)).Code)
}
