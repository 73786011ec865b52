package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/listenupapp/shelfnotes/internal/domain"
	"github.com/listenupapp/shelfnotes/internal/store"
	"github.com/listenupapp/shelfnotes/internal/textfold"
)

// bookColumns is the ordered list of columns selected in book queries.
// Must match the scan order in scanBook.
const bookColumns = `id, created_at, updated_at, title, author, isbn, publication_date,
	page_count, description, genre`

// orderColumns maps sortable fields to their SQL expressions.
var orderColumns = map[store.OrderField]string{
	store.OrderTitle:           "title COLLATE NOCASE",
	store.OrderAuthor:          "author COLLATE NOCASE",
	store.OrderPublicationDate: "publication_date",
}

// execer is satisfied by *sql.DB and *sql.Tx.
type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

func scanBook(row scanner) (*domain.Book, error) {
	var (
		b         domain.Book
		createdAt string
		updatedAt string
		isbn      sql.NullString
		pubDate   sql.NullString
	)

	err := row.Scan(
		&b.ID,
		&createdAt,
		&updatedAt,
		&b.Title,
		&b.Author,
		&isbn,
		&pubDate,
		&b.PageCount,
		&b.Description,
		&b.Genre,
	)
	if err != nil {
		return nil, err
	}

	if b.CreatedAt, err = parseTime(createdAt); err != nil {
		return nil, err
	}
	if b.UpdatedAt, err = parseTime(updatedAt); err != nil {
		return nil, err
	}
	b.ISBN = isbn.String
	b.PublicationDate = pubDate.String

	return &b, nil
}

func insertBook(ctx context.Context, db execer, book *domain.Book) error {
	_, err := db.ExecContext(ctx, `
		INSERT INTO books (
			id, created_at, updated_at, title, author, isbn, publication_date,
			page_count, description, genre,
			title_folded, author_folded, description_folded
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		book.ID,
		formatTime(book.CreatedAt),
		formatTime(book.UpdatedAt),
		book.Title,
		book.Author,
		nullString(book.ISBN),
		nullString(book.PublicationDate),
		book.PageCount,
		book.Description,
		book.Genre,
		textfold.Fold(book.Title),
		textfold.Fold(book.Author),
		textfold.Fold(book.Description),
	)
	return translateError(err)
}

// CreateBook inserts a new book.
// Returns store.ErrAlreadyExists if the ID or ISBN is taken.
func (s *Store) CreateBook(ctx context.Context, book *domain.Book) error {
	return insertBook(ctx, s.db, book)
}

// GetBook retrieves a book by ID.
// Returns store.ErrNotFound if the book does not exist.
func (s *Store) GetBook(ctx context.Context, id string) (*domain.Book, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+bookColumns+` FROM books WHERE id = ?`, id)

	b, err := scanBook(row)
	if err != nil {
		return nil, notFound(err)
	}
	return b, nil
}

// ListBooks returns the books matching every search term, in the requested order.
func (s *Store) ListBooks(ctx context.Context, q store.BookQuery) ([]*domain.Book, error) {
	query, args := buildBookQuery(q)

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list books: %w", err)
	}
	defer rows.Close()

	books := make([]*domain.Book, 0)
	for rows.Next() {
		b, err := scanBook(rows)
		if err != nil {
			return nil, err
		}
		books = append(books, b)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return books, nil
}

// buildBookQuery assembles the SELECT for a listing. Only whitelisted column
// expressions reach the ORDER BY clause; search terms are always bound.
func buildBookQuery(q store.BookQuery) (string, []any) {
	var (
		sb   strings.Builder
		args []any
	)

	sb.WriteString(`SELECT ` + bookColumns + ` FROM books`)

	for i, term := range q.Terms {
		if i == 0 {
			sb.WriteString(" WHERE ")
		} else {
			sb.WriteString(" AND ")
		}
		sb.WriteString(`(instr(title_folded, ?) > 0 OR instr(author_folded, ?) > 0 OR instr(description_folded, ?) > 0)`)
		args = append(args, term, term, term)
	}

	ordering := q.Ordering
	if len(ordering) == 0 {
		ordering = store.DefaultOrdering
	}

	clauses := make([]string, 0, len(ordering)+1)
	for _, o := range ordering {
		col, ok := orderColumns[o.Field]
		if !ok {
			continue
		}
		dir := "ASC"
		if o.Desc {
			dir = "DESC"
		}
		if o.Field == store.OrderPublicationDate {
			// Unknown dates sort last in either direction.
			clauses = append(clauses, "publication_date IS NULL")
		}
		clauses = append(clauses, col+" "+dir)
	}
	clauses = append(clauses, "id ASC")

	sb.WriteString(" ORDER BY ")
	sb.WriteString(strings.Join(clauses, ", "))

	return sb.String(), args
}

// UpdateBook performs a full row update on an existing book.
// Returns store.ErrNotFound if the book does not exist.
func (s *Store) UpdateBook(ctx context.Context, book *domain.Book) error {
	result, err := s.db.ExecContext(ctx, `
		UPDATE books SET
			updated_at = ?, title = ?, author = ?, isbn = ?, publication_date = ?,
			page_count = ?, description = ?, genre = ?,
			title_folded = ?, author_folded = ?, description_folded = ?
		WHERE id = ?`,
		formatTime(book.UpdatedAt),
		book.Title,
		book.Author,
		nullString(book.ISBN),
		nullString(book.PublicationDate),
		book.PageCount,
		book.Description,
		book.Genre,
		textfold.Fold(book.Title),
		textfold.Fold(book.Author),
		textfold.Fold(book.Description),
		book.ID,
	)
	if err != nil {
		return translateError(err)
	}
	return requireAffected(result)
}

// DeleteBook removes a book. Notes on the book are removed by the foreign key cascade.
// Returns store.ErrNotFound if the book does not exist.
func (s *Store) DeleteBook(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM books WHERE id = ?`, id)
	if err != nil {
		return err
	}
	return requireAffected(result)
}

// CountBooks returns the number of books in the catalog.
func (s *Store) CountBooks(ctx context.Context) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM books`).Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}
