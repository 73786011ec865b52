package domain

import (
	"strings"
	"time"
)

// Note is a user's personal annotation on a book. A user has at most one note per book.
type Note struct {
	Record
	UserID  string `json:"user_id"`
	BookID  string `json:"book_id"`
	Content string `json:"content"`
}

// OwnedBy reports whether the note belongs to userID.
func (n *Note) OwnedBy(userID string) bool {
	return n.UserID == userID
}

// Summary returns the compact form embedded in book responses.
func (n *Note) Summary() *NoteSummary {
	return &NoteSummary{ID: n.ID, Content: n.Content, UpdatedAt: n.UpdatedAt}
}

// NoteSummary is the viewer's own note as shown alongside a book.
type NoteSummary struct {
	ID        string    `json:"id"`
	Content   string    `json:"content"`
	UpdatedAt time.Time `json:"updated_at"`
}

// BlankContent reports whether content is empty after trimming whitespace.
func BlankContent(content string) bool {
	return strings.TrimSpace(content) == ""
}
