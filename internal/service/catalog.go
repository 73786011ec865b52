package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/listenupapp/shelfnotes/internal/domain"
	domainerrors "github.com/listenupapp/shelfnotes/internal/errors"
	"github.com/listenupapp/shelfnotes/internal/store"
	"github.com/listenupapp/shelfnotes/internal/textfold"
)

// BookListParams carries the raw list query parameters.
type BookListParams struct {
	Search   string
	Ordering string
}

// BookView is a book as seen by one viewer.
type BookView struct {
	Book *domain.Book
	// UserNote is the viewer's note on this book, nil when there is none or the viewer is anonymous.
	UserNote *domain.NoteSummary
}

// CatalogService serves the read-only book catalog.
type CatalogService struct {
	books  store.BookStore
	notes  store.NoteStore
	logger *slog.Logger
}

// NewCatalogService creates a new catalog service.
func NewCatalogService(books store.BookStore, notes store.NoteStore, logger *slog.Logger) *CatalogService {
	return &CatalogService{books: books, notes: notes, logger: logger}
}

// ListBooks returns the books matching params, each enriched for viewer.
// A nil viewer is anonymous.
func (s *CatalogService) ListBooks(ctx context.Context, params BookListParams, viewer *domain.Viewer) ([]*BookView, error) {
	q := store.BookQuery{
		Terms:    textfold.Terms(params.Search),
		Ordering: store.ParseOrdering(params.Ordering),
	}

	books, err := s.books.ListBooks(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("list books: %w", err)
	}

	views := make([]*BookView, 0, len(books))
	for _, b := range books {
		v, err := s.Enrich(ctx, b, viewer)
		if err != nil {
			return nil, err
		}
		views = append(views, v)
	}
	return views, nil
}

// GetBook returns a single book enriched for viewer.
func (s *CatalogService) GetBook(ctx context.Context, id string, viewer *domain.Viewer) (*BookView, error) {
	b, err := s.books.GetBook(ctx, id)
	if err != nil {
		if isNotFound(err) {
			return nil, domainerrors.NotFound("book not found")
		}
		return nil, fmt.Errorf("get book: %w", err)
	}
	return s.Enrich(ctx, b, viewer)
}

// Enrich attaches the viewer's own note to a book. The lookup runs on every call.
func (s *CatalogService) Enrich(ctx context.Context, b *domain.Book, viewer *domain.Viewer) (*BookView, error) {
	view := &BookView{Book: b}
	if !viewer.Authenticated() {
		return view, nil
	}

	note, err := s.notes.GetNoteForBook(ctx, viewer.UserID, b.ID)
	switch {
	case err == nil:
		view.UserNote = note.Summary()
	case isNotFound(err):
	default:
		return nil, fmt.Errorf("lookup note for book %s: %w", b.ID, err)
	}
	return view, nil
}

// bookExists reports whether id names a catalog entry.
func (s *CatalogService) bookExists(ctx context.Context, id string) (*domain.Book, error) {
	b, err := s.books.GetBook(ctx, id)
	if err != nil {
		if isNotFound(err) {
			return nil, domainerrors.NotFound("book not found")
		}
		return nil, fmt.Errorf("get book: %w", err)
	}
	return b, nil
}
