package dto

import (
	"time"

	"github.com/listenupapp/shelfnotes/internal/service"
)

// Note is a user's note with its book expanded.
type Note struct {
	ID          string    `json:"id" doc:"Note ID"`
	Book        string    `json:"book" doc:"ID of the annotated book"`
	BookDetails Book      `json:"book_details" doc:"The annotated book"`
	Content     string    `json:"content" doc:"Note text"`
	CreatedAt   time.Time `json:"created_at" doc:"Creation timestamp"`
	UpdatedAt   time.Time `json:"updated_at" doc:"Last update timestamp"`
}

// CreateNoteRequest is the body for creating a note.
// Owner and timestamps are assigned by the server; unknown fields are ignored.
type CreateNoteRequest struct {
	_       struct{} `json:"-" additionalProperties:"true"`
	Book    string   `json:"book" doc:"ID of the book to annotate"`
	Content string   `json:"content" doc:"Note text"`
}

// ReplaceNoteRequest is the body for a full note update.
type ReplaceNoteRequest struct {
	_       struct{} `json:"-" additionalProperties:"true"`
	Book    string   `json:"book" doc:"ID of the annotated book"`
	Content string   `json:"content" doc:"Note text"`
}

// PatchNoteRequest is the body for a partial note update. Omitted fields are unchanged.
type PatchNoteRequest struct {
	_       struct{} `json:"-" additionalProperties:"true"`
	Book    *string  `json:"book,omitempty" doc:"ID of the annotated book"`
	Content *string  `json:"content,omitempty" doc:"Note text"`
}

// NewNote shapes a note view for the wire.
func NewNote(v *service.NoteView) Note {
	return Note{
		ID:          v.Note.ID,
		Book:        v.Note.BookID,
		BookDetails: NewBook(v.Book),
		Content:     v.Note.Content,
		CreatedAt:   v.Note.CreatedAt,
		UpdatedAt:   v.Note.UpdatedAt,
	}
}

// NewNotes shapes a list of note views, never returning nil.
func NewNotes(views []*service.NoteView) []Note {
	out := make([]Note, 0, len(views))
	for _, v := range views {
		out = append(out, NewNote(v))
	}
	return out
}
