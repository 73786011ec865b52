package seed

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/listenupapp/shelfnotes/internal/logger"
	"github.com/listenupapp/shelfnotes/internal/store"
	"github.com/listenupapp/shelfnotes/internal/store/sqlite"
)

func newTestSeeder(t *testing.T) (*Seeder, *sqlite.Store) {
	t.Helper()
	s, err := sqlite.Open(filepath.Join(t.TempDir(), "seed.db"), nil)
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return NewSeeder(s, logger.Discard().Logger), s
}

func TestClassics(t *testing.T) {
	entries := Classics()
	require.Len(t, entries, 5)

	byTitle := make(map[string]Entry)
	for _, e := range entries {
		byTitle[e.Title] = e
	}

	orwell := byTitle["1984"]
	assert.Equal(t, "George Orwell", orwell.Author)
	assert.Equal(t, "9780451524935", orwell.ISBN)
	assert.Equal(t, "1949-06-08", orwell.PublicationDate)
	assert.Equal(t, 328, orwell.PageCount)
	assert.Equal(t, "Dystopian", orwell.Genre)

	assert.Equal(t, "1813-01-28", byTitle["Pride and Prejudice"].PublicationDate)
	assert.Equal(t, "J.D. Salinger", byTitle["The Catcher in the Rye"].Author)
}

func TestParse_RejectsInvalidEntries(t *testing.T) {
	_, err := Parse([]byte("- title: \"\"\n  author: Nobody\n"))
	assert.ErrorContains(t, err, "title is required")

	_, err = Parse([]byte("- title: X\n  author: Y\n  publication_date: yesterday\n"))
	assert.ErrorContains(t, err, "publication_date")

	_, err = Parse([]byte("not: [a list"))
	assert.Error(t, err)
}

func TestSeeder_ApplyTwice(t *testing.T) {
	seeder, s := newTestSeeder(t)
	ctx := context.Background()

	applied, err := seeder.Apply(ctx)
	require.NoError(t, err)
	assert.True(t, applied)

	applied, err = seeder.Apply(ctx)
	require.NoError(t, err)
	assert.False(t, applied)

	n, err := s.CountBooks(ctx)
	require.NoError(t, err)
	assert.Equal(t, 5, n)

	books, err := s.ListBooks(ctx, store.BookQuery{})
	require.NoError(t, err)
	assert.Equal(t, "1984", books[0].Title)
	assert.Equal(t, "9780451524935", books[0].ISBN)
}

func TestSeeder_RevertTwice(t *testing.T) {
	seeder, s := newTestSeeder(t)
	ctx := context.Background()

	_, err := seeder.Apply(ctx)
	require.NoError(t, err)

	rec, err := seeder.Status(ctx)
	require.NoError(t, err)
	require.NotNil(t, rec)
	assert.Equal(t, ClassicsName, rec.Name)

	reverted, err := seeder.Revert(ctx)
	require.NoError(t, err)
	assert.True(t, reverted)

	reverted, err = seeder.Revert(ctx)
	require.NoError(t, err)
	assert.False(t, reverted)

	n, err := s.CountBooks(ctx)
	require.NoError(t, err)
	assert.Zero(t, n)

	rec, err = seeder.Status(ctx)
	require.NoError(t, err)
	assert.Nil(t, rec)
}

func TestSeeder_ReapplyAfterRevert(t *testing.T) {
	seeder, s := newTestSeeder(t)
	ctx := context.Background()

	_, err := seeder.Apply(ctx)
	require.NoError(t, err)
	_, err = seeder.Revert(ctx)
	require.NoError(t, err)

	applied, err := seeder.Apply(ctx)
	require.NoError(t, err)
	assert.True(t, applied)

	n, err := s.CountBooks(ctx)
	require.NoError(t, err)
	assert.Equal(t, 5, n)
}
