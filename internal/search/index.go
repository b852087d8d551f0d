package search

import (
	"fmt"
	"io"
	"log/slog"
	"sync"

	"github.com/blevesearch/bleve/v2"

	"github.com/listenupapp/bookindex/internal/domain"
)

// Index wraps a memory-only Bleve index of catalog books.
//
// It implements catalog.Listener so it can be registered with the catalog
// and follow every insert and removal.
type Index struct {
	index  bleve.Index
	logger *slog.Logger
	mu     sync.RWMutex // Protects index operations during rebuild
}

// Options configures the search index.
type Options struct {
	Logger *slog.Logger // Logger for operations (uses discard if nil)
}

// NewIndex creates an empty in-memory search index.
func NewIndex(opts Options) (*Index, error) {
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	index, err := bleve.NewMemOnly(buildIndexMapping())
	if err != nil {
		return nil, fmt.Errorf("create index: %w", err)
	}

	return &Index{
		index:  index,
		logger: logger,
	}, nil
}

// Close closes the index and releases resources.
func (s *Index) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.index.Close()
}

// Shutdown implements do.ShutdownerWithError.
func (s *Index) Shutdown() error {
	return s.Close()
}

// IndexBook indexes a single book, replacing any document with the same title.
func (s *Index) IndexBook(book domain.Book) error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	doc := NewDocument(book)
	return s.index.Index(doc.ID(), doc.ToMap())
}

// IndexBooks indexes books in batches.
func (s *Index) IndexBooks(books []domain.Book) error {
	s.mu.RLock()
	defer s.mu.RUnlock()

	const batchSize = 500

	for i := 0; i < len(books); i += batchSize {
		end := min(i+batchSize, len(books))

		batch := s.index.NewBatch()
		for _, book := range books[i:end] {
			doc := NewDocument(book)
			if err := batch.Index(doc.ID(), doc.ToMap()); err != nil {
				return fmt.Errorf("batch index %q: %w", doc.ID(), err)
			}
		}

		if err := s.index.Batch(batch); err != nil {
			return fmt.Errorf("commit batch %d-%d: %w", i, end, err)
		}
	}

	return nil
}

// DeleteBook removes the document for title.
func (s *Index) DeleteBook(title string) error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.index.Delete(title)
}

// DocumentCount returns the total number of indexed documents.
func (s *Index) DocumentCount() (uint64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.index.DocCount()
}

// Clear drops every document by swapping in a fresh empty index.
func (s *Index) Clear() error {
	fresh, err := bleve.NewMemOnly(buildIndexMapping())
	if err != nil {
		return fmt.Errorf("create index: %w", err)
	}

	s.mu.Lock()
	old := s.index
	s.index = fresh
	s.mu.Unlock()

	if err := old.Close(); err != nil {
		s.logger.Warn("failed to close replaced search index", "error", err)
	}
	return nil
}

// Rebuild drops every document and indexes books from scratch.
func (s *Index) Rebuild(books []domain.Book) error {
	if err := s.Clear(); err != nil {
		return err
	}

	s.logger.Info("rebuilding search index", "books", len(books))
	return s.IndexBooks(books)
}

// BookAdded indexes a book the catalog just stored.
func (s *Index) BookAdded(book domain.Book) {
	if err := s.IndexBook(book); err != nil {
		s.logger.Error("failed to index book", "title", book.Title(), "error", err)
	}
}

// BookRemoved drops a book the catalog just removed.
func (s *Index) BookRemoved(book domain.Book) {
	if err := s.DeleteBook(book.Title()); err != nil {
		s.logger.Error("failed to remove book from search index", "title", book.Title(), "error", err)
	}
}

// Cleared empties the index after the catalog has been reset.
func (s *Index) Cleared() {
	if err := s.Clear(); err != nil {
		s.logger.Error("failed to clear search index", "error", err)
	}
}
