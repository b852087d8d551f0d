// Package search provides full-text title and author search over the catalog using Bleve.
// The index is memory-only and is kept in step with the catalog through its
// listener hooks.
package search

import (
	"github.com/listenupapp/bookindex/internal/domain"
)

// Document is the indexed form of a book. The title doubles as the document ID.
type Document struct {
	Title   string   `json:"title"`
	Authors []string `json:"authors"`
}

// NewDocument builds the document for book.
func NewDocument(book domain.Book) *Document {
	return &Document{
		Title:   book.Title(),
		Authors: book.Authors(),
	}
}

// ID returns the document ID.
func (d *Document) ID() string {
	return d.Title
}

// ToMap converts the document to the field map the index mapping expects.
func (d *Document) ToMap() map[string]any {
	return map[string]any{
		"title":   d.Title,
		"authors": d.Authors,
	}
}
