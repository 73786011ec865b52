package api

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/listenupapp/shelfnotes/internal/api/dto"
	"github.com/listenupapp/shelfnotes/internal/service"
)

func (s *Server) registerBookRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "listBooks",
		Method:      http.MethodGet,
		Path:        "/api/books",
		Summary:     "List books",
		Description: "Lists the catalog. Anonymous access is allowed; authenticated callers also get their own note on each book.",
		Tags:        []string{"Books"},
	}, s.handleListBooks)

	huma.Register(s.api, huma.Operation{
		OperationID: "getBook",
		Method:      http.MethodGet,
		Path:        "/api/books/{id}",
		Summary:     "Get book",
		Description: "Returns a single book",
		Tags:        []string{"Books"},
	}, s.handleGetBook)
}

// ListBooksInput contains the catalog query parameters.
type ListBooksInput struct {
	Search   string `query:"search" doc:"Case-insensitive terms, separated by spaces or commas, matched against title, author and description"`
	Ordering string `query:"ordering" doc:"Comma-separated sort fields (title, author, publication_date); prefix with - for descending" example:"-publication_date,title"`
}

// ListBooksOutput wraps the book list for Huma.
type ListBooksOutput struct {
	Body []dto.Book
}

// GetBookInput identifies a book.
type GetBookInput struct {
	ID string `path:"id" doc:"Book ID"`
}

// BookOutput wraps a single book for Huma.
type BookOutput struct {
	Body dto.Book
}

func (s *Server) handleListBooks(ctx context.Context, input *ListBooksInput) (*ListBooksOutput, error) {
	views, err := s.services.Catalog.ListBooks(ctx, service.BookListParams{
		Search:   input.Search,
		Ordering: input.Ordering,
	}, viewerFrom(ctx))
	if err != nil {
		return nil, s.fail("list books", err)
	}
	return &ListBooksOutput{Body: dto.NewBooks(views)}, nil
}

func (s *Server) handleGetBook(ctx context.Context, input *GetBookInput) (*BookOutput, error) {
	view, err := s.services.Catalog.GetBook(ctx, input.ID, viewerFrom(ctx))
	if err != nil {
		return nil, s.fail("get book", err)
	}
	return &BookOutput{Body: dto.NewBook(view)}, nil
}
