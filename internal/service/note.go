package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/listenupapp/shelfnotes/internal/domain"
	domainerrors "github.com/listenupapp/shelfnotes/internal/errors"
	"github.com/listenupapp/shelfnotes/internal/id"
	"github.com/listenupapp/shelfnotes/internal/store"
)

// CreateNoteRequest contains the fields a client may set on a new note.
type CreateNoteRequest struct {
	BookID  string `json:"book" validate:"required"`
	Content string `json:"content" validate:"notblank"`
}

// UpdateNoteRequest changes a note. Nil fields are left as they are.
type UpdateNoteRequest struct {
	BookID  *string `json:"book"`
	Content *string `json:"content"`
}

// NoteView is a note with its book rendered for the same viewer.
type NoteView struct {
	Note *domain.Note
	Book *BookView
}

// errNoteNotFound is returned for missing notes and for notes owned by someone else.
var errNoteNotFound = domainerrors.NotFound("note not found")

// errDuplicateNote is returned when the viewer already has a note for the book.
var errDuplicateNote = domainerrors.Conflict("you already have a note for this book")

// NoteService manages the viewer's own notes.
type NoteService struct {
	notes   store.NoteStore
	catalog *CatalogService
	logger  *slog.Logger
}

// NewNoteService creates a new note service.
func NewNoteService(notes store.NoteStore, catalog *CatalogService, logger *slog.Logger) *NoteService {
	return &NoteService{notes: notes, catalog: catalog, logger: logger}
}

// ListNotes returns the viewer's notes, newest first, each with its book.
func (s *NoteService) ListNotes(ctx context.Context, viewer *domain.Viewer) ([]*NoteView, error) {
	if err := requireViewer(viewer); err != nil {
		return nil, err
	}

	notes, err := s.notes.ListNotesByUser(ctx, viewer.UserID)
	if err != nil {
		return nil, fmt.Errorf("list notes: %w", err)
	}

	views := make([]*NoteView, 0, len(notes))
	for _, n := range notes {
		v, err := s.view(ctx, n, viewer)
		if err != nil {
			return nil, err
		}
		views = append(views, v)
	}
	return views, nil
}

// CreateNote adds a note for the viewer. The owner is always the viewer.
func (s *NoteService) CreateNote(ctx context.Context, viewer *domain.Viewer, req CreateNoteRequest) (*NoteView, error) {
	if err := requireViewer(viewer); err != nil {
		return nil, err
	}
	if err := validate.Validate(req); err != nil {
		return nil, err
	}

	if _, err := s.catalog.bookExists(ctx, req.BookID); err != nil {
		return nil, err
	}

	if _, err := s.notes.GetNoteForBook(ctx, viewer.UserID, req.BookID); err == nil {
		return nil, errDuplicateNote
	} else if !isNotFound(err) {
		return nil, fmt.Errorf("check existing note: %w", err)
	}

	noteID, err := id.Generate(id.PrefixNote)
	if err != nil {
		return nil, fmt.Errorf("generate note ID: %w", err)
	}

	note := &domain.Note{
		Record:  domain.Record{ID: noteID},
		UserID:  viewer.UserID,
		BookID:  req.BookID,
		Content: req.Content,
	}
	note.InitTimestamps()

	if err := s.notes.CreateNote(ctx, note); err != nil {
		return nil, s.translateWriteError(err)
	}

	s.logger.Info("note created", "note_id", note.ID, "user_id", viewer.UserID, "book_id", note.BookID)

	return s.view(ctx, note, viewer)
}

// GetNote returns one of the viewer's notes.
func (s *NoteService) GetNote(ctx context.Context, viewer *domain.Viewer, noteID string) (*NoteView, error) {
	note, err := s.owned(ctx, viewer, noteID)
	if err != nil {
		return nil, err
	}
	return s.view(ctx, note, viewer)
}

// UpdateNote applies req to one of the viewer's notes.
func (s *NoteService) UpdateNote(ctx context.Context, viewer *domain.Viewer, noteID string, req UpdateNoteRequest) (*NoteView, error) {
	note, err := s.owned(ctx, viewer, noteID)
	if err != nil {
		return nil, err
	}
	if req.BookID != nil && *req.BookID == "" {
		return nil, domainerrors.ValidationWithDetails("validation failed", map[string]string{"book": "is required"})
	}
	if req.Content != nil && domain.BlankContent(*req.Content) {
		return nil, domainerrors.ValidationWithDetails("validation failed", map[string]string{"content": "must not be blank"})
	}

	if req.BookID != nil && *req.BookID != note.BookID {
		if _, err := s.catalog.bookExists(ctx, *req.BookID); err != nil {
			return nil, err
		}
		if _, err := s.notes.GetNoteForBook(ctx, viewer.UserID, *req.BookID); err == nil {
			return nil, errDuplicateNote
		} else if !isNotFound(err) {
			return nil, fmt.Errorf("check existing note: %w", err)
		}
		note.BookID = *req.BookID
	}
	if req.Content != nil {
		note.Content = *req.Content
	}
	note.Touch()

	if err := s.notes.UpdateNote(ctx, note); err != nil {
		return nil, s.translateWriteError(err)
	}

	s.logger.Info("note updated", "note_id", note.ID, "user_id", viewer.UserID)

	return s.view(ctx, note, viewer)
}

// DeleteNote removes one of the viewer's notes.
func (s *NoteService) DeleteNote(ctx context.Context, viewer *domain.Viewer, noteID string) error {
	note, err := s.owned(ctx, viewer, noteID)
	if err != nil {
		return err
	}

	if err := s.notes.DeleteNote(ctx, note.ID); err != nil {
		if isNotFound(err) {
			return errNoteNotFound
		}
		return fmt.Errorf("delete note: %w", err)
	}

	s.logger.Info("note deleted", "note_id", note.ID, "user_id", viewer.UserID)
	return nil
}

// owned loads a note the viewer owns. Notes owned by other users are reported
// as not found so their existence is not revealed.
func (s *NoteService) owned(ctx context.Context, viewer *domain.Viewer, noteID string) (*domain.Note, error) {
	if err := requireViewer(viewer); err != nil {
		return nil, err
	}

	note, err := s.notes.GetNote(ctx, noteID)
	if err != nil {
		if isNotFound(err) {
			return nil, errNoteNotFound
		}
		return nil, fmt.Errorf("get note: %w", err)
	}
	if !note.OwnedBy(viewer.UserID) {
		return nil, errNoteNotFound
	}
	return note, nil
}

func (s *NoteService) view(ctx context.Context, note *domain.Note, viewer *domain.Viewer) (*NoteView, error) {
	b, err := s.catalog.bookExists(ctx, note.BookID)
	if err != nil {
		return nil, err
	}
	bv, err := s.catalog.Enrich(ctx, b, viewer)
	if err != nil {
		return nil, err
	}
	return &NoteView{Note: note, Book: bv}, nil
}

// translateWriteError maps constraint failures that slipped past the pre-checks,
// such as a concurrent duplicate insert, to domain errors.
func (s *NoteService) translateWriteError(err error) error {
	switch {
	case errors.Is(err, store.ErrAlreadyExists):
		return errDuplicateNote.WithCause(err)
	case errors.Is(err, store.ErrMissingReference):
		return domainerrors.NotFound("book not found").WithCause(err)
	case isNotFound(err):
		return errNoteNotFound
	}
	return fmt.Errorf("save note: %w", err)
}
