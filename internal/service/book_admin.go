package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/listenupapp/shelfnotes/internal/domain"
	domainerrors "github.com/listenupapp/shelfnotes/internal/errors"
	"github.com/listenupapp/shelfnotes/internal/id"
	"github.com/listenupapp/shelfnotes/internal/store"
)

// BookFields carries administrative edits to a catalog entry.
// On update, nil fields keep their current value. An empty ISBN or
// publication date clears it.
type BookFields struct {
	Title           *string
	Author          *string
	ISBN            *string
	PublicationDate *string
	PageCount       *int
	Description     *string
	Genre           *string
}

func (f BookFields) apply(b *domain.Book) {
	set := func(dst *string, src *string) {
		if src != nil {
			*dst = *src
		}
	}
	set(&b.Title, f.Title)
	set(&b.Author, f.Author)
	set(&b.ISBN, f.ISBN)
	set(&b.PublicationDate, f.PublicationDate)
	set(&b.Description, f.Description)
	set(&b.Genre, f.Genre)
	if f.PageCount != nil {
		b.PageCount = *f.PageCount
	}
}

var errDuplicateISBN = domainerrors.Conflict("a book with that isbn already exists")

// AddBook creates a catalog entry. Title and author are required.
func (s *CatalogService) AddBook(ctx context.Context, fields BookFields) (*domain.Book, error) {
	bookID, err := id.Generate(id.PrefixBook)
	if err != nil {
		return nil, fmt.Errorf("generate book id: %w", err)
	}

	book := &domain.Book{Record: domain.Record{ID: bookID}}
	fields.apply(book)
	if err := book.Validate(); err != nil {
		return nil, domainerrors.Validation(err.Error())
	}
	book.InitTimestamps()

	if err := s.books.CreateBook(ctx, book); err != nil {
		if errors.Is(err, store.ErrAlreadyExists) {
			return nil, errDuplicateISBN.WithCause(err)
		}
		return nil, fmt.Errorf("create book: %w", err)
	}

	s.logger.Info("book added", "book_id", book.ID, "title", book.Title)
	return book, nil
}

// UpdateBook applies fields to an existing catalog entry.
func (s *CatalogService) UpdateBook(ctx context.Context, bookID string, fields BookFields) (*domain.Book, error) {
	book, err := s.bookExists(ctx, bookID)
	if err != nil {
		return nil, err
	}

	fields.apply(book)
	if err := book.Validate(); err != nil {
		return nil, domainerrors.Validation(err.Error())
	}
	book.Touch()

	if err := s.books.UpdateBook(ctx, book); err != nil {
		switch {
		case errors.Is(err, store.ErrAlreadyExists):
			return nil, errDuplicateISBN.WithCause(err)
		case isNotFound(err):
			return nil, domainerrors.NotFound("book not found")
		}
		return nil, fmt.Errorf("update book: %w", err)
	}

	s.logger.Info("book updated", "book_id", book.ID)
	return book, nil
}

// DeleteBook removes a catalog entry. Notes on it go with it.
func (s *CatalogService) DeleteBook(ctx context.Context, bookID string) error {
	if err := s.books.DeleteBook(ctx, bookID); err != nil {
		if isNotFound(err) {
			return domainerrors.NotFound("book not found")
		}
		return fmt.Errorf("delete book: %w", err)
	}

	s.logger.Info("book deleted", "book_id", bookID)
	return nil
}

// CountBooks returns the catalog size.
func (s *CatalogService) CountBooks(ctx context.Context) (int, error) {
	n, err := s.books.CountBooks(ctx)
	if err != nil {
		return 0, fmt.Errorf("count books: %w", err)
	}
	return n, nil
}
