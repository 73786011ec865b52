// Package seed loads the initial book catalog.
package seed

import (
	"context"
	_ "embed"
	"errors"
	"fmt"
	"log/slog"

	"gopkg.in/yaml.v3"

	"github.com/listenupapp/shelfnotes/internal/domain"
	"github.com/listenupapp/shelfnotes/internal/id"
	"github.com/listenupapp/shelfnotes/internal/store"
)

// ClassicsName identifies the classics seed in the seeds table.
const ClassicsName = "0001_classics"

//go:embed classics.yaml
var classicsYAML []byte

// Entry is one book as written in a seed file.
type Entry struct {
	Title           string `yaml:"title"`
	Author          string `yaml:"author"`
	ISBN            string `yaml:"isbn"`
	PublicationDate string `yaml:"publication_date"`
	PageCount       int    `yaml:"page_count"`
	Genre           string `yaml:"genre"`
	Description     string `yaml:"description"`
}

// Parse decodes seed entries from YAML and validates each one.
func Parse(data []byte) ([]Entry, error) {
	var entries []Entry
	if err := yaml.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("decode seed: %w", err)
	}

	for i, e := range entries {
		b := e.book()
		if err := b.Validate(); err != nil {
			return nil, fmt.Errorf("seed entry %d (%q): %w", i, e.Title, err)
		}
	}
	return entries, nil
}

// Classics returns the embedded classics catalog.
func Classics() []Entry {
	entries, err := Parse(classicsYAML)
	if err != nil {
		panic(fmt.Sprintf("embedded classics seed is invalid: %v", err))
	}
	return entries
}

func (e Entry) book() domain.Book {
	return domain.Book{
		Title:           e.Title,
		Author:          e.Author,
		ISBN:            e.ISBN,
		PublicationDate: e.PublicationDate,
		PageCount:       e.PageCount,
		Genre:           e.Genre,
		Description:     e.Description,
	}
}

// Seeder applies and reverts a named set of books.
type Seeder struct {
	store   store.SeedStore
	logger  *slog.Logger
	name    string
	entries []Entry
}

// NewSeeder creates a seeder for the embedded classics.
func NewSeeder(s store.SeedStore, logger *slog.Logger) *Seeder {
	return &Seeder{store: s, logger: logger, name: ClassicsName, entries: Classics()}
}

// Name returns the seed's record name.
func (s *Seeder) Name() string {
	return s.name
}

// Apply inserts the seed's books with fresh IDs unless the seed is already applied.
// It reports whether anything was written.
func (s *Seeder) Apply(ctx context.Context) (bool, error) {
	books := make([]*domain.Book, 0, len(s.entries))
	for _, e := range s.entries {
		bookID, err := id.Generate(id.PrefixBook)
		if err != nil {
			return false, err
		}
		b := e.book()
		b.ID = bookID
		b.InitTimestamps()
		books = append(books, &b)
	}

	applied, err := s.store.ApplySeed(ctx, s.name, books)
	if err != nil {
		return false, err
	}

	if applied {
		s.logger.Info("seed applied", "seed", s.name, "books", len(books))
	} else {
		s.logger.Debug("seed already applied", "seed", s.name)
	}
	return applied, nil
}

// Revert deletes every book in the catalog and clears the seed record.
// It reports whether anything was written.
func (s *Seeder) Revert(ctx context.Context) (bool, error) {
	reverted, err := s.store.RevertSeed(ctx, s.name)
	if err != nil {
		return false, err
	}

	if reverted {
		s.logger.Info("seed reverted", "seed", s.name)
	}
	return reverted, nil
}

// Status returns the seed record, or nil when the seed is not applied.
func (s *Seeder) Status(ctx context.Context) (*store.SeedRecord, error) {
	rec, err := s.store.GetSeed(ctx, s.name)
	if errors.Is(err, store.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return rec, nil
}
