// Package dto defines the JSON shapes the HTTP API reads and writes.
package dto

import (
	"time"

	"github.com/listenupapp/shelfnotes/internal/domain"
	"github.com/listenupapp/shelfnotes/internal/service"
)

// Book is a catalog entry as returned to clients.
type Book struct {
	ID              string       `json:"id" doc:"Book ID"`
	Title           string       `json:"title" doc:"Title"`
	Author          string       `json:"author" doc:"Author"`
	ISBN            *string      `json:"isbn" doc:"ISBN, null when unknown"`
	PublicationDate *string      `json:"publication_date" format:"date" doc:"Publication date (YYYY-MM-DD), null when unknown"`
	PageCount       int          `json:"page_count" doc:"Number of pages"`
	Description     string       `json:"description" doc:"Description"`
	Genre           string       `json:"genre" doc:"Genre"`
	CreatedAt       time.Time    `json:"created_at" doc:"Creation timestamp"`
	UpdatedAt       time.Time    `json:"updated_at" doc:"Last update timestamp"`
	UserNote        *NoteSummary `json:"user_note" doc:"The caller's note on this book, null when anonymous or absent"`
}

// NoteSummary is the caller's note embedded in a book.
type NoteSummary struct {
	ID        string    `json:"id" doc:"Note ID"`
	Content   string    `json:"content" doc:"Note text"`
	UpdatedAt time.Time `json:"updated_at" doc:"Last update timestamp"`
}

// NewBook shapes a book view for the wire.
func NewBook(v *service.BookView) Book {
	b := v.Book
	out := Book{
		ID:              b.ID,
		Title:           b.Title,
		Author:          b.Author,
		ISBN:            optional(b.ISBN),
		PublicationDate: optional(b.PublicationDate),
		PageCount:       b.PageCount,
		Description:     b.Description,
		Genre:           b.Genre,
		CreatedAt:       b.CreatedAt,
		UpdatedAt:       b.UpdatedAt,
	}
	if v.UserNote != nil {
		out.UserNote = newNoteSummary(v.UserNote)
	}
	return out
}

// NewBooks shapes a list of book views, never returning nil.
func NewBooks(views []*service.BookView) []Book {
	out := make([]Book, 0, len(views))
	for _, v := range views {
		out = append(out, NewBook(v))
	}
	return out
}

func newNoteSummary(n *domain.NoteSummary) *NoteSummary {
	return &NoteSummary{ID: n.ID, Content: n.Content, UpdatedAt: n.UpdatedAt}
}

// optional maps the empty string to null.
func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
