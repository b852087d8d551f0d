// Package domain contains the core entities of the book index.
package domain

import (
	"fmt"
	"log/slog"
	"slices"
)

// Book is an immutable catalog entry. The title is the book's identity.
// Authors keep the order they were given in, duplicates included.
type Book struct {
	title   string
	authors []string
}

// NewBook creates a book. The authors slice is copied so later changes by the
// caller never reach a stored book.
func NewBook(title string, authors []string) Book {
	return Book{
		title:   title,
		authors: slices.Clone(authors),
	}
}

// Title returns the book title.
func (b Book) Title() string {
	return b.title
}

// Authors returns a copy of the author list in its original order.
func (b Book) Authors() []string {
	if b.authors == nil {
		return []string{}
	}
	return slices.Clone(b.authors)
}

// AuthorCount returns the number of author entries, duplicates included.
func (b Book) AuthorCount() int {
	return len(b.authors)
}

// HasAuthor reports whether author appears in the author list.
func (b Book) HasAuthor(author string) bool {
	return slices.Contains(b.authors, author)
}

// Equal compares books by title only.
func (b Book) Equal(other Book) bool {
	return b.title == other.title
}

// IsZero reports whether b is the zero Book.
func (b Book) IsZero() bool {
	return b.title == "" && b.authors == nil
}

// String implements fmt.Stringer.
func (b Book) String() string {
	return fmt.Sprintf("Book{title=%q, authors=%q}", b.title, b.authors)
}

// LogValue implements slog.LogValuer.
func (b Book) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("title", b.title),
		slog.Any("authors", b.authors),
	)
}

// BookRecord is the serialized shape of a book in seed files.
type BookRecord struct {
	Title   string   `json:"title" yaml:"title" validate:"required"`
	Authors []string `json:"authors" yaml:"authors" validate:"required,min=1"`
}

// Book converts the record into a Book.
func (r BookRecord) Book() Book {
	return NewBook(r.Title, r.Authors)
}
