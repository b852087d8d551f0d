// Package catalog maintains the in-memory title and author indexes of a book catalog.
//
// An Index owns two maps that are always updated together:
//
//	titles:  title  -> book
//	authors: author -> set of titles written by that author
//
// Every author key maps to at least one book, and a book appears under an
// author exactly when it is stored in the title index and lists that author.
//
// Thread safety: an Index does no locking. Callers that share one across
// goroutines must serialize access themselves.
package catalog

import (
	"cmp"
	"context"
	"io"
	"log/slog"
	"slices"

	"github.com/listenupapp/bookindex/internal/domain"
	domainerrors "github.com/listenupapp/bookindex/internal/errors"
	"github.com/listenupapp/bookindex/internal/id"
	"github.com/listenupapp/bookindex/internal/validation"
)

// Listener is notified after a book has been linked into or unlinked from
// both indexes, and after Reset has emptied them.
type Listener interface {
	BookAdded(book domain.Book)
	BookRemoved(book domain.Book)
	Cleared()
}

// Options configures an Index.
type Options struct {
	Logger    *slog.Logger          // Logger for operations (uses discard if nil)
	Validator *validation.Validator // Load entry validator (created if nil)
}

// entry is a stored book plus its insertion sequence number.
type entry struct {
	book domain.Book
	seq  uint64
}

// bookSet holds the titles of one author's books.
type bookSet map[string]struct{}

// Index is the bidirectional title/author index.
type Index struct {
	titles    map[string]entry
	authors   map[string]bookSet
	nextSeq   uint64
	listener  Listener
	validator *validation.Validator
	logger    *slog.Logger
}

// New creates an empty index.
func New(opts Options) *Index {
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	v := opts.Validator
	if v == nil {
		v = validation.New()
	}

	return &Index{
		titles:    make(map[string]entry),
		authors:   make(map[string]bookSet),
		validator: v,
		logger:    logger,
	}
}

// SetListener registers l to receive add/remove notifications.
// Passing nil removes the current listener.
func (x *Index) SetListener(l Listener) {
	x.listener = l
}

// Load bulk-inserts books from parallel title and author-list sequences.
//
// A nil sequence fails with a NULL_INPUT error and sequences of different
// length fail with INVALID_ARGUMENT, both before anything is inserted.
// Each position is then validated and inserted in order. An invalid position
// aborts the load with INVALID_ARGUMENT naming that position; books inserted
// from earlier positions stay in the index. Duplicate titles are skipped.
func (x *Index) Load(titles []string, authorLists [][]string) error {
	if titles == nil || authorLists == nil {
		return domainerrors.NullInput("titles and author lists must not be nil")
	}
	if len(titles) != len(authorLists) {
		return domainerrors.InvalidArgumentf(
			"titles and author lists must have the same length: %d != %d",
			len(titles), len(authorLists),
		)
	}

	loadID, err := id.Generate("load")
	if err != nil {
		return domainerrors.Wrap(err, domainerrors.CodeInternal, "generate load id")
	}
	log := x.logger.With("load_id", loadID)
	log.Info("loading books", "entries", len(titles))

	var added, skipped int
	for i, title := range titles {
		rec := domain.BookRecord{Title: title, Authors: authorLists[i]}
		if err := x.validator.ValidateAt(i, rec); err != nil {
			log.Warn("load aborted", "position", i, "inserted", added, "error", err)
			return err
		}

		if x.Insert(rec.Book()) {
			added++
		} else {
			skipped++
		}
	}

	log.Info("books loaded",
		"inserted", added,
		"skipped", skipped,
		"books", x.BookCount(),
		"authors", x.AuthorCount(),
	)
	return nil
}

// LoadRecords is Load over decoded seed records. A nil slice fails with
// NULL_INPUT; an empty one is a no-op.
func (x *Index) LoadRecords(ctx context.Context, records []domain.BookRecord) error {
	if records == nil {
		return domainerrors.NullInput("records must not be nil")
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	titles := make([]string, len(records))
	authorLists := make([][]string, len(records))
	for i, rec := range records {
		titles[i] = rec.Title
		authorLists[i] = rec.Authors
	}
	return x.Load(titles, authorLists)
}

// Insert adds book to both indexes. It returns false without changing
// anything if the book has an empty title or no authors, or if a book with
// the same title is already stored.
func (x *Index) Insert(book domain.Book) bool {
	title := book.Title()
	if title == "" || book.AuthorCount() == 0 {
		x.logger.Warn("rejecting incomplete book", "book", book)
		return false
	}
	if _, ok := x.titles[title]; ok {
		x.logger.Warn("book already in catalog", "title", title)
		return false
	}

	x.nextSeq++
	x.titles[title] = entry{book: book, seq: x.nextSeq}
	x.linkAuthors(book)

	x.logger.Debug("book added", "book", book)
	if x.listener != nil {
		x.listener.BookAdded(book)
	}
	return true
}

// RemoveByTitle removes the book with the given title and drops any author
// left without books. It returns false if the title is unknown.
func (x *Index) RemoveByTitle(title string) bool {
	e, ok := x.titles[title]
	if !ok {
		x.logger.Warn("no such title in catalog", "title", title)
		return false
	}

	delete(x.titles, title)
	x.unlinkAuthors(e.book)

	x.logger.Debug("book removed", "book", e.book)
	if x.listener != nil {
		x.listener.BookRemoved(e.book)
	}
	return true
}

// RemoveByAuthor removes every book the author is listed on, along with any
// co-author left without books. It returns false if the author is unknown.
func (x *Index) RemoveByAuthor(author string) bool {
	set, ok := x.authors[author]
	if !ok {
		x.logger.Warn("unknown author", "author", author)
		return false
	}

	// RemoveByTitle mutates set, so iterate over a snapshot of its titles.
	snapshot := make([]string, 0, len(set))
	for title := range set {
		snapshot = append(snapshot, title)
	}
	for _, title := range snapshot {
		x.RemoveByTitle(title)
	}

	x.logger.Debug("author removed", "author", author, "books", len(snapshot))
	return true
}

// QueryByAuthor returns the author's books in insertion order. Unknown or
// empty authors yield an empty slice. The result is a copy.
func (x *Index) QueryByAuthor(author string) []domain.Book {
	set := x.authors[author]
	books := make([]domain.Book, 0, len(set))
	if len(set) == 0 {
		return books
	}

	entries := make([]entry, 0, len(set))
	for title := range set {
		entries = append(entries, x.titles[title])
	}
	slices.SortFunc(entries, func(a, b entry) int {
		return cmp.Compare(a.seq, b.seq)
	})
	for _, e := range entries {
		books = append(books, e.book)
	}
	return books
}

// QueryByTitle returns the stored author list for title, in its original
// order. Unknown or empty titles yield an empty slice. The result is a copy.
func (x *Index) QueryByTitle(title string) []string {
	e, ok := x.titles[title]
	if !ok {
		x.logger.Debug("title not found", "title", title)
		return []string{}
	}
	return e.book.Authors()
}

// Book returns the stored book for title.
func (x *Index) Book(title string) (domain.Book, bool) {
	e, ok := x.titles[title]
	return e.book, ok
}

// Contains reports whether a book with the given title is stored.
func (x *Index) Contains(title string) bool {
	_, ok := x.titles[title]
	return ok
}

// HasAuthor reports whether author has at least one stored book.
func (x *Index) HasAuthor(author string) bool {
	_, ok := x.authors[author]
	return ok
}

// Titles returns all stored titles, sorted.
func (x *Index) Titles() []string {
	titles := make([]string, 0, len(x.titles))
	for title := range x.titles {
		titles = append(titles, title)
	}
	slices.Sort(titles)
	return titles
}

// Authors returns all indexed authors, sorted.
func (x *Index) Authors() []string {
	authors := make([]string, 0, len(x.authors))
	for author := range x.authors {
		authors = append(authors, author)
	}
	slices.Sort(authors)
	return authors
}

// BookCount returns the number of stored books.
func (x *Index) BookCount() int {
	return len(x.titles)
}

// AuthorCount returns the number of authors with at least one book.
func (x *Index) AuthorCount() int {
	return len(x.authors)
}

// Reset empties both indexes and then notifies the listener.
func (x *Index) Reset() {
	x.clear()
	if x.listener != nil {
		x.listener.Cleared()
	}
}

// Shutdown flushes all data without notifying the listener, which may
// already be closed. It implements do.ShutdownerWithError.
func (x *Index) Shutdown() error {
	x.logger.Debug("shutting down catalog, flushing all data",
		"books", len(x.titles),
		"authors", len(x.authors),
	)
	x.clear()
	return nil
}

func (x *Index) clear() {
	clear(x.titles)
	clear(x.authors)
	x.nextSeq = 0
}

// linkAuthors adds book to the set of every author it lists.
func (x *Index) linkAuthors(book domain.Book) {
	title := book.Title()
	for _, author := range book.Authors() {
		set, ok := x.authors[author]
		if !ok {
			set = make(bookSet)
			x.authors[author] = set
		}
		set[title] = struct{}{}
	}
}

// unlinkAuthors removes book from the set of every author it lists and
// deletes authors whose set becomes empty.
func (x *Index) unlinkAuthors(book domain.Book) {
	title := book.Title()
	for _, author := range book.Authors() {
		set, ok := x.authors[author]
		if !ok {
			// Already dropped by a duplicate entry earlier in the list.
			continue
		}
		delete(set, title)
		if len(set) == 0 {
			x.logger.Warn("author has no books left, removing", "author", author)
			delete(x.authors, author)
		}
	}
}
