package providers

import (
	"github.com/samber/do/v2"

	"github.com/listenupapp/bookindex/internal/catalog"
	"github.com/listenupapp/bookindex/internal/domain"
	"github.com/listenupapp/bookindex/internal/logger"
	"github.com/listenupapp/bookindex/internal/search"
)

// ProvideSearchIndex provides the in-memory search index and registers it as
// the catalog listener. Books already in the catalog are indexed right away.
func ProvideSearchIndex(i do.Injector) (*search.Index, error) {
	log := do.MustInvoke[*logger.Logger](i)
	idx := do.MustInvoke[*catalog.Index](i)

	index, err := search.NewIndex(search.Options{
		Logger: log.With("component", componentSearch),
	})
	if err != nil {
		return nil, err
	}

	if idx.BookCount() > 0 {
		books := make([]domain.Book, 0, idx.BookCount())
		for _, title := range idx.Titles() {
			if book, ok := idx.Book(title); ok {
				books = append(books, book)
			}
		}
		if err := index.IndexBooks(books); err != nil {
			_ = index.Close()
			return nil, err
		}
	}

	// Wire to catalog for automatic indexing
	idx.SetListener(index)

	log.Debug("search index initialized", "books", idx.BookCount())
	return index, nil
}
