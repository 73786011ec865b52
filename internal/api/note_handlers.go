package api

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/listenupapp/shelfnotes/internal/api/dto"
	"github.com/listenupapp/shelfnotes/internal/service"
)

func (s *Server) registerNoteRoutes() {
	bearer := []map[string][]string{{"bearer": {}}}

	huma.Register(s.api, huma.Operation{
		OperationID: "listNotes",
		Method:      http.MethodGet,
		Path:        "/api/notes",
		Summary:     "List my notes",
		Description: "Returns the caller's notes, newest first",
		Tags:        []string{"Notes"},
		Security:    bearer,
	}, s.handleListNotes)

	huma.Register(s.api, huma.Operation{
		OperationID:   "createNote",
		Method:        http.MethodPost,
		Path:          "/api/notes",
		Summary:       "Create note",
		Description:   "Adds a note to a book. Each user may have one note per book.",
		Tags:          []string{"Notes"},
		Security:      bearer,
		DefaultStatus: http.StatusCreated,
	}, s.handleCreateNote)

	huma.Register(s.api, huma.Operation{
		OperationID: "getNote",
		Method:      http.MethodGet,
		Path:        "/api/notes/{id}",
		Summary:     "Get note",
		Tags:        []string{"Notes"},
		Security:    bearer,
	}, s.handleGetNote)

	huma.Register(s.api, huma.Operation{
		OperationID: "replaceNote",
		Method:      http.MethodPut,
		Path:        "/api/notes/{id}",
		Summary:     "Replace note",
		Description: "Sets both book and content",
		Tags:        []string{"Notes"},
		Security:    bearer,
	}, s.handleReplaceNote)

	huma.Register(s.api, huma.Operation{
		OperationID: "patchNote",
		Method:      http.MethodPatch,
		Path:        "/api/notes/{id}",
		Summary:     "Update note",
		Description: "Changes only the fields present in the body",
		Tags:        []string{"Notes"},
		Security:    bearer,
	}, s.handlePatchNote)

	huma.Register(s.api, huma.Operation{
		OperationID:   "deleteNote",
		Method:        http.MethodDelete,
		Path:          "/api/notes/{id}",
		Summary:       "Delete note",
		Tags:          []string{"Notes"},
		Security:      bearer,
		DefaultStatus: http.StatusNoContent,
	}, s.handleDeleteNote)
}

// NoteIDInput identifies a note.
type NoteIDInput struct {
	ID string `path:"id" doc:"Note ID"`
}

// CreateNoteInput wraps the create body for Huma.
type CreateNoteInput struct {
	Body dto.CreateNoteRequest
}

// ReplaceNoteInput wraps the PUT body for Huma.
type ReplaceNoteInput struct {
	ID   string `path:"id" doc:"Note ID"`
	Body dto.ReplaceNoteRequest
}

// PatchNoteInput wraps the PATCH body for Huma.
type PatchNoteInput struct {
	ID   string `path:"id" doc:"Note ID"`
	Body dto.PatchNoteRequest
}

// NoteOutput wraps a single note for Huma.
type NoteOutput struct {
	Body dto.Note
}

// ListNotesOutput wraps the note list for Huma.
type ListNotesOutput struct {
	Body []dto.Note
}

func (s *Server) handleListNotes(ctx context.Context, _ *struct{}) (*ListNotesOutput, error) {
	views, err := s.services.Notes.ListNotes(ctx, viewerFrom(ctx))
	if err != nil {
		return nil, s.fail("list notes", err)
	}
	return &ListNotesOutput{Body: dto.NewNotes(views)}, nil
}

func (s *Server) handleCreateNote(ctx context.Context, input *CreateNoteInput) (*NoteOutput, error) {
	view, err := s.services.Notes.CreateNote(ctx, viewerFrom(ctx), service.CreateNoteRequest{
		BookID:  input.Body.Book,
		Content: input.Body.Content,
	})
	if err != nil {
		return nil, s.fail("create note", err)
	}
	return &NoteOutput{Body: dto.NewNote(view)}, nil
}

func (s *Server) handleGetNote(ctx context.Context, input *NoteIDInput) (*NoteOutput, error) {
	view, err := s.services.Notes.GetNote(ctx, viewerFrom(ctx), input.ID)
	if err != nil {
		return nil, s.fail("get note", err)
	}
	return &NoteOutput{Body: dto.NewNote(view)}, nil
}

func (s *Server) handleReplaceNote(ctx context.Context, input *ReplaceNoteInput) (*NoteOutput, error) {
	view, err := s.services.Notes.UpdateNote(ctx, viewerFrom(ctx), input.ID, service.UpdateNoteRequest{
		BookID:  &input.Body.Book,
		Content: &input.Body.Content,
	})
	if err != nil {
		return nil, s.fail("replace note", err)
	}
	return &NoteOutput{Body: dto.NewNote(view)}, nil
}

func (s *Server) handlePatchNote(ctx context.Context, input *PatchNoteInput) (*NoteOutput, error) {
	view, err := s.services.Notes.UpdateNote(ctx, viewerFrom(ctx), input.ID, service.UpdateNoteRequest{
		BookID:  input.Body.Book,
		Content: input.Body.Content,
	})
	if err != nil {
		return nil, s.fail("update note", err)
	}
	return &NoteOutput{Body: dto.NewNote(view)}, nil
}

func (s *Server) handleDeleteNote(ctx context.Context, input *NoteIDInput) (*struct{}, error) {
	if err := s.services.Notes.DeleteNote(ctx, viewerFrom(ctx), input.ID); err != nil {
		return nil, s.fail("delete note", err)
	}
	return nil, nil
}
