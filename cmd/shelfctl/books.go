package main

import (
	"encoding/json"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/listenupapp/shelfnotes/internal/domain"
	"github.com/listenupapp/shelfnotes/internal/service"
)

func newBooksCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "books",
		Short: "Inspect and edit the catalog",
	}

	catalog := func() *service.CatalogService {
		return service.NewCatalogService(a.store, a.store, a.logger)
	}

	cmd.AddCommand(
		newBooksListCmd(catalog),
		newBooksAddCmd(catalog),
		newBooksUpdateCmd(catalog),
		newBooksDeleteCmd(catalog),
	)
	return cmd
}

func newBooksListCmd(catalog func() *service.CatalogService) *cobra.Command {
	var (
		search   string
		ordering string
		asJSON   bool
	)
	list := &cobra.Command{
		Use:   "list",
		Short: "List books using the same search and ordering as the API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			views, err := catalog().ListBooks(cmd.Context(), service.BookListParams{
				Search:   search,
				Ordering: ordering,
			}, nil)
			if err != nil {
				return err
			}

			if asJSON {
				books := make([]*domain.Book, 0, len(views))
				for _, v := range views {
					books = append(books, v.Book)
				}
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(books)
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tTITLE\tAUTHOR\tPUBLISHED")
			for _, v := range views {
				b := v.Book
				published := b.PublicationDate
				if published == "" {
					published = "-"
				}
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", b.ID, b.Title, b.Author, published)
			}
			return w.Flush()
		},
	}
	list.Flags().StringVar(&search, "search", "", "Search terms")
	list.Flags().StringVar(&ordering, "ordering", "", "Sort fields, e.g. -publication_date,title")
	list.Flags().BoolVar(&asJSON, "json", false, "Output in JSON format")
	return list
}

// bookFlags binds the editable catalog fields to command flags.
type bookFlags struct {
	title, author, isbn, published, description, genre string
	pages                                              int
}

func (f *bookFlags) register(fs *pflag.FlagSet) {
	fs.StringVar(&f.title, "title", "", "Title")
	fs.StringVar(&f.author, "author", "", "Author")
	fs.StringVar(&f.isbn, "isbn", "", "ISBN (empty clears it)")
	fs.StringVar(&f.published, "published", "", "Publication date, YYYY-MM-DD (empty clears it)")
	fs.StringVar(&f.description, "description", "", "Description")
	fs.StringVar(&f.genre, "genre", "", "Genre")
	fs.IntVar(&f.pages, "pages", 0, "Page count")
}

// fields returns only the values whose flags were set on the command line.
func (f *bookFlags) fields(fs *pflag.FlagSet) service.BookFields {
	var out service.BookFields
	str := func(name string, v *string) *string {
		if fs.Changed(name) {
			return v
		}
		return nil
	}
	out.Title = str("title", &f.title)
	out.Author = str("author", &f.author)
	out.ISBN = str("isbn", &f.isbn)
	out.PublicationDate = str("published", &f.published)
	out.Description = str("description", &f.description)
	out.Genre = str("genre", &f.genre)
	if fs.Changed("pages") {
		out.PageCount = &f.pages
	}
	return out
}

func newBooksAddCmd(catalog func() *service.CatalogService) *cobra.Command {
	var flags bookFlags
	add := &cobra.Command{
		Use:   "add",
		Short: "Add a book to the catalog",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			book, err := catalog().AddBook(cmd.Context(), flags.fields(cmd.Flags()))
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "added %s (%s)\n", book.Title, book.ID)
			return nil
		},
	}
	flags.register(add.Flags())
	_ = add.MarkFlagRequired("title")
	_ = add.MarkFlagRequired("author")
	return add
}

func newBooksUpdateCmd(catalog func() *service.CatalogService) *cobra.Command {
	var flags bookFlags
	update := &cobra.Command{
		Use:   "update <id>",
		Short: "Change fields of a book; unset flags are left alone",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			book, err := catalog().UpdateBook(cmd.Context(), args[0], flags.fields(cmd.Flags()))
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "updated %s (%s)\n", book.Title, book.ID)
			return nil
		},
	}
	flags.register(update.Flags())
	return update
}

func newBooksDeleteCmd(catalog func() *service.CatalogService) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a book and every note on it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := catalog().DeleteBook(cmd.Context(), args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "deleted %s\n", args[0])
			return nil
		},
	}
}
