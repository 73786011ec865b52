package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/listenupapp/shelfnotes/internal/domain"
	"github.com/listenupapp/shelfnotes/internal/store"
)

// ApplySeed inserts books and records name as applied in one transaction.
// It reports false without writing when name is already applied.
func (s *Store) ApplySeed(ctx context.Context, name string, books []*domain.Book) (bool, error) {
	applied := false
	err := s.withTx(ctx, func(tx *sql.Tx) error {
		exists, err := seedExists(ctx, tx, name)
		if err != nil || exists {
			return err
		}

		for _, b := range books {
			if err := insertBook(ctx, tx, b); err != nil {
				return fmt.Errorf("insert %q: %w", b.Title, err)
			}
		}

		if _, err := tx.ExecContext(ctx,
			`INSERT INTO seeds (name, applied_at) VALUES (?, ?)`, name, formatTime(time.Now())); err != nil {
			return translateError(err)
		}
		applied = true
		return nil
	})
	if err != nil {
		return false, fmt.Errorf("apply seed %s: %w", name, err)
	}
	return applied, nil
}

// RevertSeed deletes every book and clears the record for name in one transaction.
// Notes go with their books through the foreign key cascade.
// It reports false without writing when name is not applied.
func (s *Store) RevertSeed(ctx context.Context, name string) (bool, error) {
	reverted := false
	err := s.withTx(ctx, func(tx *sql.Tx) error {
		exists, err := seedExists(ctx, tx, name)
		if err != nil || !exists {
			return err
		}

		if _, err := tx.ExecContext(ctx, `DELETE FROM books`); err != nil {
			return fmt.Errorf("delete books: %w", err)
		}
		if _, err := tx.ExecContext(ctx, `DELETE FROM seeds WHERE name = ?`, name); err != nil {
			return fmt.Errorf("delete seed record: %w", err)
		}
		reverted = true
		return nil
	})
	if err != nil {
		return false, fmt.Errorf("revert seed %s: %w", name, err)
	}
	return reverted, nil
}

// GetSeed returns the record for an applied seed.
// Returns store.ErrNotFound if the seed has not been applied.
func (s *Store) GetSeed(ctx context.Context, name string) (*store.SeedRecord, error) {
	var appliedAt string
	err := s.db.QueryRowContext(ctx, `SELECT applied_at FROM seeds WHERE name = ?`, name).Scan(&appliedAt)
	if err != nil {
		return nil, notFound(err)
	}

	t, err := parseTime(appliedAt)
	if err != nil {
		return nil, err
	}
	return &store.SeedRecord{Name: name, AppliedAt: t}, nil
}

func seedExists(ctx context.Context, tx *sql.Tx, name string) (bool, error) {
	var one int
	err := tx.QueryRowContext(ctx, `SELECT 1 FROM seeds WHERE name = ?`, name).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}
