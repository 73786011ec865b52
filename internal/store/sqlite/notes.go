package sqlite

import (
	"context"

	"github.com/listenupapp/shelfnotes/internal/domain"
)

// noteColumns is the ordered list of columns selected in note queries.
// Must match the scan order in scanNote.
const noteColumns = `id, user_id, book_id, content, created_at, updated_at`

func scanNote(row scanner) (*domain.Note, error) {
	var (
		n         domain.Note
		createdAt string
		updatedAt string
	)

	if err := row.Scan(&n.ID, &n.UserID, &n.BookID, &n.Content, &createdAt, &updatedAt); err != nil {
		return nil, err
	}

	var err error
	if n.CreatedAt, err = parseTime(createdAt); err != nil {
		return nil, err
	}
	if n.UpdatedAt, err = parseTime(updatedAt); err != nil {
		return nil, err
	}
	return &n, nil
}

// CreateNote inserts a new note.
// Returns store.ErrAlreadyExists if the user already has a note for the book,
// and store.ErrMissingReference if the user or book does not exist.
func (s *Store) CreateNote(ctx context.Context, note *domain.Note) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO notes (id, user_id, book_id, content, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)`,
		note.ID,
		note.UserID,
		note.BookID,
		note.Content,
		formatTime(note.CreatedAt),
		formatTime(note.UpdatedAt),
	)
	return translateError(err)
}

// GetNote retrieves a note by ID.
// Returns store.ErrNotFound if the note does not exist.
func (s *Store) GetNote(ctx context.Context, id string) (*domain.Note, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+noteColumns+` FROM notes WHERE id = ?`, id)

	n, err := scanNote(row)
	if err != nil {
		return nil, notFound(err)
	}
	return n, nil
}

// GetNoteForBook retrieves the note userID wrote for bookID.
// Returns store.ErrNotFound if there is none.
func (s *Store) GetNoteForBook(ctx context.Context, userID, bookID string) (*domain.Note, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+noteColumns+` FROM notes WHERE user_id = ? AND book_id = ?`, userID, bookID)

	n, err := scanNote(row)
	if err != nil {
		return nil, notFound(err)
	}
	return n, nil
}

// ListNotesByUser returns the user's notes, newest first.
func (s *Store) ListNotesByUser(ctx context.Context, userID string) ([]*domain.Note, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+noteColumns+` FROM notes WHERE user_id = ? ORDER BY created_at DESC, id DESC`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	notes := make([]*domain.Note, 0)
	for rows.Next() {
		n, err := scanNote(rows)
		if err != nil {
			return nil, err
		}
		notes = append(notes, n)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return notes, nil
}

// UpdateNote writes the note's book, content and updated_at.
// Returns store.ErrNotFound if the note does not exist and store.ErrAlreadyExists
// if moving it would give the user two notes on one book.
func (s *Store) UpdateNote(ctx context.Context, note *domain.Note) error {
	result, err := s.db.ExecContext(ctx, `
		UPDATE notes SET book_id = ?, content = ?, updated_at = ?
		WHERE id = ?`,
		note.BookID,
		note.Content,
		formatTime(note.UpdatedAt),
		note.ID,
	)
	if err != nil {
		return translateError(err)
	}
	return requireAffected(result)
}

// DeleteNote removes a note.
// Returns store.ErrNotFound if the note does not exist.
func (s *Store) DeleteNote(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM notes WHERE id = ?`, id)
	if err != nil {
		return err
	}
	return requireAffected(result)
}
