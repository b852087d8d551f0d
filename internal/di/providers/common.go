// Package providers contains dependency injection providers for the book index.
package providers

// Component names attached to component loggers.
const (
	componentCatalog = "catalog"
	componentLoader  = "loader"
	componentSearch  = "search"
)
