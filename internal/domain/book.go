// Package domain contains the core business entities of the shelfnotes catalog.
package domain

import (
	"fmt"
	"strings"
	"time"
)

// DateLayout is the calendar date format used for publication dates.
const DateLayout = "2006-01-02"

// Field limits for catalog entries.
const (
	MaxTitleLength  = 200
	MaxAuthorLength = 100
	MaxISBNLength   = 13
	MaxGenreLength  = 50
)

// Book is a catalog entry. Books are read-only to API clients and are created
// by seeding or administrative tooling.
type Book struct {
	Record
	Title       string `json:"title"`
	Author      string `json:"author"`
	ISBN        string `json:"isbn,omitempty"` // empty means absent; stored as NULL
	Description string `json:"description"`
	Genre       string `json:"genre"`
	// PublicationDate is YYYY-MM-DD, or empty when unknown.
	PublicationDate string `json:"publication_date,omitempty"`
	PageCount       int    `json:"page_count"`
}

// Validate checks the catalog field constraints.
func (b *Book) Validate() error {
	switch {
	case strings.TrimSpace(b.Title) == "":
		return fmt.Errorf("title is required")
	case len([]rune(b.Title)) > MaxTitleLength:
		return fmt.Errorf("title must not exceed %d characters", MaxTitleLength)
	case strings.TrimSpace(b.Author) == "":
		return fmt.Errorf("author is required")
	case len([]rune(b.Author)) > MaxAuthorLength:
		return fmt.Errorf("author must not exceed %d characters", MaxAuthorLength)
	case len(b.ISBN) > MaxISBNLength:
		return fmt.Errorf("isbn must not exceed %d characters", MaxISBNLength)
	case len([]rune(b.Genre)) > MaxGenreLength:
		return fmt.Errorf("genre must not exceed %d characters", MaxGenreLength)
	case b.PageCount < 0:
		return fmt.Errorf("page_count must not be negative")
	}
	if b.PublicationDate != "" {
		if _, err := time.Parse(DateLayout, b.PublicationDate); err != nil {
			return fmt.Errorf("publication_date must be YYYY-MM-DD: %w", err)
		}
	}
	return nil
}
