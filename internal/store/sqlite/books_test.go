package sqlite

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/listenupapp/shelfnotes/internal/domain"
	"github.com/listenupapp/shelfnotes/internal/store"
	"github.com/listenupapp/shelfnotes/internal/textfold"
)

func withISBN(isbn string) func(*domain.Book) {
	return func(b *domain.Book) { b.ISBN = isbn }
}

func withDate(date string) func(*domain.Book) {
	return func(b *domain.Book) { b.PublicationDate = date }
}

func withDescription(d string) func(*domain.Book) {
	return func(b *domain.Book) { b.Description = d }
}

func titles(books []*domain.Book) []string {
	out := make([]string, len(books))
	for i, b := range books {
		out[i] = b.Title
	}
	return out
}

func TestCreateAndGetBook(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	b := makeBook(t, s, "1984", "George Orwell", withISBN("9780451524935"), withDate("1949-06-08"),
		func(b *domain.Book) {
			b.PageCount = 328
			b.Genre = "Dystopian"
		})

	got, err := s.GetBook(ctx, b.ID)
	require.NoError(t, err)
	assert.Equal(t, "1984", got.Title)
	assert.Equal(t, "9780451524935", got.ISBN)
	assert.Equal(t, "1949-06-08", got.PublicationDate)
	assert.Equal(t, 328, got.PageCount)
	assert.Equal(t, "Dystopian", got.Genre)
	assert.True(t, b.CreatedAt.Equal(got.CreatedAt))
}

func TestGetBook_NotFound(t *testing.T) {
	s := newTestStore(t)
	_, err := s.GetBook(context.Background(), "book-missing")
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestCreateBook_DuplicateISBN(t *testing.T) {
	s := newTestStore(t)
	makeBook(t, s, "A", "X", withISBN("123"))

	dup := &domain.Book{Record: domain.Record{ID: "book-dup"}, Title: "B", Author: "Y", ISBN: "123"}
	dup.InitTimestamps()
	assert.ErrorIs(t, s.CreateBook(context.Background(), dup), store.ErrAlreadyExists)
}

func TestCreateBook_EmptyISBNsDoNotCollide(t *testing.T) {
	s := newTestStore(t)
	makeBook(t, s, "A", "X")
	makeBook(t, s, "B", "Y")

	n, err := s.CountBooks(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, n)
}

func TestListBooks_Search(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	makeBook(t, s, "The Great Gatsby", "F. Scott Fitzgerald", withDescription("A classic American novel set in the Jazz Age."))
	makeBook(t, s, "1984", "George Orwell", withDescription("A dystopian social science fiction novel."))
	makeBook(t, s, "Éclair Stories", "Anon")

	tests := []struct {
		name  string
		query string
		want  []string
	}{
		{"no terms", "", []string{"1984", "The Great Gatsby", "Éclair Stories"}},
		{"title", "gatsby", []string{"The Great Gatsby"}},
		{"author case", "ORWELL", []string{"1984"}},
		{"description", "jazz", []string{"The Great Gatsby"}},
		{"shared word", "novel", []string{"1984", "The Great Gatsby"}},
		{"all terms must match", "novel orwell", []string{"1984"}},
		{"no match", "tolstoy", []string{}},
		{"unicode fold", "ÉCLAIR", []string{"Éclair Stories"}},
		{"like wildcards are literal", "%", []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			books, err := s.ListBooks(ctx, store.BookQuery{Terms: textfold.Terms(tt.query)})
			require.NoError(t, err)
			assert.Equal(t, tt.want, titles(books))
		})
	}
}

func TestListBooks_Ordering(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	makeBook(t, s, "B", "Zed", withDate("1950-01-01"))
	makeBook(t, s, "a", "Young", withDate("1900-01-01"))
	makeBook(t, s, "C", "Xavier")

	tests := []struct {
		ordering string
		want     []string
	}{
		{"", []string{"a", "B", "C"}},
		{"-title", []string{"C", "B", "a"}},
		{"author", []string{"C", "a", "B"}},
		{"publication_date", []string{"a", "B", "C"}},
		{"-publication_date", []string{"B", "a", "C"}},
		{"bogus", []string{"a", "B", "C"}},
	}

	for _, tt := range tests {
		t.Run(tt.ordering, func(t *testing.T) {
			books, err := s.ListBooks(ctx, store.BookQuery{Ordering: store.ParseOrdering(tt.ordering)})
			require.NoError(t, err)
			assert.Equal(t, tt.want, titles(books))
		})
	}
}

func TestListBooks_MultiKeyOrdering(t *testing.T) {
	s := newTestStore(t)

	makeBook(t, s, "Persuasion", "Jane Austen", withDate("1817-12-20"))
	makeBook(t, s, "Emma", "Jane Austen", withDate("1815-12-23"))
	makeBook(t, s, "Dracula", "Bram Stoker", withDate("1897-05-26"))

	books, err := s.ListBooks(context.Background(), store.BookQuery{Ordering: store.ParseOrdering("author,-publication_date")})
	require.NoError(t, err)
	assert.Equal(t, []string{"Dracula", "Persuasion", "Emma"}, titles(books))
}

func TestUpdateBook(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	b := makeBook(t, s, "Old", "Author")

	b.Title = "New Title"
	b.Description = "Now searchable"
	b.Touch()
	require.NoError(t, s.UpdateBook(ctx, b))

	books, err := s.ListBooks(ctx, store.BookQuery{Terms: textfold.Terms("searchable")})
	require.NoError(t, err)
	assert.Equal(t, []string{"New Title"}, titles(books))

	missing := &domain.Book{Record: domain.Record{ID: "book-missing"}, Title: "x", Author: "y"}
	assert.ErrorIs(t, s.UpdateBook(ctx, missing), store.ErrNotFound)
}

func TestDeleteBook_CascadesNotes(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	b := makeBook(t, s, "Gone", "Author")
	u := makeUser(t, s, "reader")
	n := makeNote(t, s, u.ID, b.ID, "will vanish")

	require.NoError(t, s.DeleteBook(ctx, b.ID))

	_, err := s.GetNote(ctx, n.ID)
	assert.ErrorIs(t, err, store.ErrNotFound)
	assert.ErrorIs(t, s.DeleteBook(ctx, b.ID), store.ErrNotFound)
}

func TestBuildBookQuery_BindsTerms(t *testing.T) {
	query, args := buildBookQuery(store.BookQuery{Terms: []string{"a'; DROP TABLE books; --"}})
	assert.NotContains(t, query, "DROP")
	assert.Len(t, args, 3)
	assert.Contains(t, query, "ORDER BY title COLLATE NOCASE ASC, id ASC")
}
