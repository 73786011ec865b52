// Package store defines the persistence interface for the shelfnotes server.
package store

import (
	"context"
	"time"

	"github.com/listenupapp/shelfnotes/internal/domain"
)

// Store defines the interface for all persistence operations.
type Store interface {
	// Lifecycle
	Close() error
	Ping(ctx context.Context) error

	BookStore
	NoteStore
	UserStore
	SessionStore
	SeedStore
}

// BookStore persists catalog entries.
type BookStore interface {
	CreateBook(ctx context.Context, book *domain.Book) error
	GetBook(ctx context.Context, id string) (*domain.Book, error)
	ListBooks(ctx context.Context, q BookQuery) ([]*domain.Book, error)
	UpdateBook(ctx context.Context, book *domain.Book) error
	DeleteBook(ctx context.Context, id string) error
	CountBooks(ctx context.Context) (int, error)
}

// NoteStore persists per-user book notes.
type NoteStore interface {
	CreateNote(ctx context.Context, note *domain.Note) error
	GetNote(ctx context.Context, id string) (*domain.Note, error)
	GetNoteForBook(ctx context.Context, userID, bookID string) (*domain.Note, error)
	ListNotesByUser(ctx context.Context, userID string) ([]*domain.Note, error)
	UpdateNote(ctx context.Context, note *domain.Note) error
	DeleteNote(ctx context.Context, id string) error
}

// UserStore persists accounts.
type UserStore interface {
	CreateUser(ctx context.Context, user *domain.User) error
	GetUser(ctx context.Context, id string) (*domain.User, error)
	GetUserByUsername(ctx context.Context, username string) (*domain.User, error)
	ListUsers(ctx context.Context) ([]*domain.User, error)
	UpdateUser(ctx context.Context, user *domain.User) error
	DeleteUser(ctx context.Context, id string) error
}

// SessionStore persists refresh-token sessions.
type SessionStore interface {
	CreateSession(ctx context.Context, session *domain.Session) error
	GetSessionByRefreshToken(ctx context.Context, tokenHash string) (*domain.Session, error)
	UpdateSession(ctx context.Context, session *domain.Session) error
	DeleteSession(ctx context.Context, id string) error
	DeleteExpiredSessions(ctx context.Context, now time.Time) (int, error)
}

// SeedRecord marks a data seed as applied.
type SeedRecord struct {
	Name      string
	AppliedAt time.Time
}

// SeedStore applies and reverts named data seeds atomically.
type SeedStore interface {
	// ApplySeed inserts books and records name as applied in one transaction.
	// It reports false without writing when name is already applied.
	ApplySeed(ctx context.Context, name string, books []*domain.Book) (bool, error)
	// RevertSeed deletes every book and clears the record for name in one transaction.
	// It reports false without writing when name is not applied.
	RevertSeed(ctx context.Context, name string) (bool, error)
	GetSeed(ctx context.Context, name string) (*SeedRecord, error)
}
