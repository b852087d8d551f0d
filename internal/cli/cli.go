// Package cli runs catalog commands given on the command line.
package cli

import (
	"context"
	"flag"
	"fmt"
	"io"
	"strings"

	"github.com/listenupapp/bookindex/internal/catalog"
	domainerrors "github.com/listenupapp/bookindex/internal/errors"
	"github.com/listenupapp/bookindex/internal/search"
)

// Runner executes one command against a catalog.
type Runner struct {
	Catalog     *catalog.Index
	Search      *search.Index // nil when search is disabled
	SearchLimit int
	Out         io.Writer
}

// Usage describes the available commands.
const Usage = `commands:
  stats                 book and author counts (default)
  list-titles           every title, sorted
  list-authors          every author, sorted
  authors TITLE         authors of a title, in stored order
  books AUTHOR          titles by an author, in insertion order
  remove-title TITLE    remove one book
  remove-author AUTHOR  remove every book by an author
  search [--title|--authors] [--fuzzy] TEXT...
                        full-text search over titles and authors
`

// Run executes the command in args. An empty args runs "stats".
func (r *Runner) Run(ctx context.Context, args []string) error {
	if len(args) == 0 {
		args = []string{"stats"}
	}
	cmd, rest := args[0], args[1:]

	switch cmd {
	case "stats":
		return r.stats()
	case "list-titles":
		return r.lines(r.Catalog.Titles())
	case "list-authors":
		return r.lines(r.Catalog.Authors())
	case "authors":
		title, err := oneArg(cmd, rest)
		if err != nil {
			return err
		}
		return r.lines(r.Catalog.QueryByTitle(title))
	case "books":
		author, err := oneArg(cmd, rest)
		if err != nil {
			return err
		}
		books := r.Catalog.QueryByAuthor(author)
		titles := make([]string, len(books))
		for i, b := range books {
			titles[i] = b.Title()
		}
		return r.lines(titles)
	case "remove-title":
		title, err := oneArg(cmd, rest)
		if err != nil {
			return err
		}
		if !r.Catalog.RemoveByTitle(title) {
			return r.printf("no such title: %s\n", title)
		}
		return r.stats()
	case "remove-author":
		author, err := oneArg(cmd, rest)
		if err != nil {
			return err
		}
		if !r.Catalog.RemoveByAuthor(author) {
			return r.printf("no such author: %s\n", author)
		}
		return r.stats()
	case "search":
		params, err := parseSearch(rest)
		if err != nil {
			return err
		}
		return r.search(ctx, params)
	default:
		return domainerrors.InvalidArgumentf("unknown command: %q", cmd)
	}
}

func (r *Runner) stats() error {
	return r.printf("books: %d\nauthors: %d\n", r.Catalog.BookCount(), r.Catalog.AuthorCount())
}

// parseSearch reads the search command's field and fuzzy flags. Everything
// after the flags is the query text.
func parseSearch(args []string) (search.Params, error) {
	fs := flag.NewFlagSet("search", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	titleOnly := fs.Bool("title", false, "match titles only")
	authorsOnly := fs.Bool("authors", false, "match authors only")
	fuzzy := fs.Bool("fuzzy", false, "tolerate one-character typos")

	if err := fs.Parse(args); err != nil {
		return search.Params{}, domainerrors.InvalidArgumentf("search: %v", err)
	}

	params := search.Params{Query: strings.Join(fs.Args(), " "), Fuzzy: *fuzzy}
	switch {
	case *titleOnly && *authorsOnly:
		return search.Params{}, domainerrors.InvalidArgument("search: --title and --authors are exclusive")
	case *titleOnly:
		params.Field = search.FieldTitle
	case *authorsOnly:
		params.Field = search.FieldAuthors
	}

	if strings.TrimSpace(params.Query) == "" {
		return search.Params{}, domainerrors.InvalidArgument("search needs a query")
	}
	return params, nil
}

func (r *Runner) search(ctx context.Context, params search.Params) error {
	if r.Search == nil {
		return domainerrors.InvalidArgument("search is disabled")
	}

	params.Limit = r.SearchLimit
	res, err := r.Search.Search(ctx, params)
	if err != nil {
		return err
	}
	for _, hit := range res.Hits {
		if err := r.printf("%s\t%s\n", hit.Title, strings.Join(hit.Authors, ", ")); err != nil {
			return err
		}
	}
	return nil
}

func (r *Runner) lines(values []string) error {
	for _, v := range values {
		if err := r.printf("%s\n", v); err != nil {
			return err
		}
	}
	return nil
}

func (r *Runner) printf(format string, args ...any) error {
	_, err := fmt.Fprintf(r.Out, format, args...)
	return err
}

func oneArg(cmd string, rest []string) (string, error) {
	if len(rest) != 1 {
		return "", domainerrors.InvalidArgumentf("%s takes exactly one argument, got %d", cmd, len(rest))
	}
	return rest[0], nil
}
