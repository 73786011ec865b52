package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/listenupapp/shelfnotes/internal/errors"
	"github.com/listenupapp/shelfnotes/internal/id"
)

func TestCatalogService_AddBook(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	book, err := env.catalog.AddBook(ctx, BookFields{
		Title:           ptr("Brave New World"),
		Author:          ptr("Aldous Huxley"),
		ISBN:            ptr("9780060850524"),
		PublicationDate: ptr("1932-01-01"),
		PageCount:       ptr(288),
	})
	require.NoError(t, err)
	assert.Contains(t, book.ID, id.PrefixBook+"-")
	assert.False(t, book.CreatedAt.IsZero())

	got, err := env.catalog.GetBook(ctx, book.ID, nil)
	require.NoError(t, err)
	assert.Equal(t, "Aldous Huxley", got.Book.Author)
	assert.Equal(t, 288, got.Book.PageCount)

	n, err := env.catalog.CountBooks(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestCatalogService_AddBook_Invalid(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	tests := []struct {
		name   string
		fields BookFields
	}{
		{"missing title", BookFields{Author: ptr("Anon")}},
		{"missing author", BookFields{Title: ptr("Untitled")}},
		{"bad date", BookFields{Title: ptr("T"), Author: ptr("A"), PublicationDate: ptr("1932")}},
		{"negative pages", BookFields{Title: ptr("T"), Author: ptr("A"), PageCount: ptr(-1)}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := env.catalog.AddBook(ctx, tt.fields)
			assert.ErrorIs(t, err, errors.ErrValidation)
		})
	}

	n, err := env.catalog.CountBooks(ctx)
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestCatalogService_AddBook_DuplicateISBN(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	_, err := env.catalog.AddBook(ctx, BookFields{Title: ptr("One"), Author: ptr("A"), ISBN: ptr("111")})
	require.NoError(t, err)

	_, err = env.catalog.AddBook(ctx, BookFields{Title: ptr("Two"), Author: ptr("B"), ISBN: ptr("111")})
	assert.ErrorIs(t, err, errors.ErrConflict)

	// Books without an isbn never collide.
	_, err = env.catalog.AddBook(ctx, BookFields{Title: ptr("Three"), Author: ptr("C")})
	require.NoError(t, err)
	_, err = env.catalog.AddBook(ctx, BookFields{Title: ptr("Four"), Author: ptr("D"), ISBN: ptr("")})
	require.NoError(t, err)
}

func TestCatalogService_UpdateBook(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	book := env.addBook(t, "1984", "George Orwell")
	other := env.addBook(t, "Animal Farm", "George Orwell")
	_, err := env.catalog.UpdateBook(ctx, other.ID, BookFields{ISBN: ptr("9780451526342")})
	require.NoError(t, err)

	updated, err := env.catalog.UpdateBook(ctx, book.ID, BookFields{Genre: ptr("Dystopian"), PageCount: ptr(328)})
	require.NoError(t, err)
	assert.Equal(t, "1984", updated.Title)
	assert.Equal(t, "Dystopian", updated.Genre)
	assert.Equal(t, 328, updated.PageCount)

	_, err = env.catalog.UpdateBook(ctx, book.ID, BookFields{ISBN: ptr("9780451526342")})
	assert.ErrorIs(t, err, errors.ErrConflict)

	_, err = env.catalog.UpdateBook(ctx, book.ID, BookFields{Title: ptr(" ")})
	assert.ErrorIs(t, err, errors.ErrValidation)

	_, err = env.catalog.UpdateBook(ctx, "book-missing", BookFields{Genre: ptr("x")})
	assert.ErrorIs(t, err, errors.ErrNotFound)
}

func TestCatalogService_DeleteBook_RemovesNotes(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	book := env.addBook(t, "1984", "George Orwell")
	alice := env.addUser(t, "alice")
	_, err := env.notes.CreateNote(ctx, alice, CreateNoteRequest{BookID: book.ID, Content: "Big Brother."})
	require.NoError(t, err)

	require.NoError(t, env.catalog.DeleteBook(ctx, book.ID))

	notes, err := env.notes.ListNotes(ctx, alice)
	require.NoError(t, err)
	assert.Empty(t, notes)

	assert.ErrorIs(t, env.catalog.DeleteBook(ctx, book.ID), errors.ErrNotFound)
}
