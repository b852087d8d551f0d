// Package loader reads catalog seed files and feeds them to a catalog index.
//
// A seed file holds a list of book records:
//
//	books:
//	  - title: Good Omens
//	    authors: [Terry Pratchett, Neil Gaiman]
//
// JSON files use the same shape ({"books": [{"title": ..., "authors": [...]}]}).
package loader

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/listenupapp/bookindex/internal/domain"
	domainerrors "github.com/listenupapp/bookindex/internal/errors"
	"github.com/listenupapp/bookindex/internal/validation"
)

// Format identifies a seed file encoding.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// FormatFromPath picks the format from the file extension.
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	default:
		return "", domainerrors.InvalidArgumentf("unsupported seed file extension: %q", filepath.Ext(path))
	}
}

// Seed is the decoded content of a seed file.
type Seed struct {
	Books []domain.BookRecord `json:"books" yaml:"books"`
}

// Target is what a seed is loaded into. *catalog.Index implements it.
type Target interface {
	LoadRecords(ctx context.Context, records []domain.BookRecord) error
}

// Loader decodes and validates seed files.
type Loader struct {
	validator *validation.Validator
	logger    *slog.Logger
}

// New creates a loader. A nil logger discards output and a nil validator is
// replaced with a fresh one.
func New(v *validation.Validator, logger *slog.Logger) *Loader {
	if v == nil {
		v = validation.New()
	}
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Loader{validator: v, logger: logger}
}

// Decode reads a seed from r. Every record is validated; the first invalid
// record fails the decode with an INVALID_ARGUMENT error naming its position.
func (l *Loader) Decode(r io.Reader, format Format) (*Seed, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read seed: %w", err)
	}

	var seed Seed
	switch format {
	case FormatJSON:
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		err = dec.Decode(&seed)
	case FormatYAML:
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		err = dec.Decode(&seed)
		if err == io.EOF {
			err = nil
		}
	default:
		return nil, domainerrors.InvalidArgumentf("unknown seed format: %q", format)
	}
	if err != nil {
		return nil, domainerrors.Wrapf(err, domainerrors.CodeInvalidArgument, "decode %s seed", format)
	}

	if seed.Books == nil {
		seed.Books = []domain.BookRecord{}
	}
	for i, rec := range seed.Books {
		if err := l.validator.ValidateAt(i, rec); err != nil {
			return nil, err
		}
	}

	return &seed, nil
}

// ReadFile decodes the seed file at path.
func (l *Loader) ReadFile(path string) (*Seed, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return nil, err
	}

	f, err := os.Open(path) //#nosec G304 -- seed path is operator configuration
	if err != nil {
		if os.IsNotExist(err) {
			return nil, domainerrors.NotFoundf("seed file not found: %s", path)
		}
		return nil, fmt.Errorf("open seed: %w", err)
	}
	defer f.Close()

	return l.Decode(f, format)
}

// LoadFile reads the seed file at path and loads it into target.
func (l *Loader) LoadFile(ctx context.Context, path string, target Target) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	seed, err := l.ReadFile(path)
	if err != nil {
		return err
	}

	l.logger.Info("loading seed file", "path", path, "books", len(seed.Books))

	if err := target.LoadRecords(ctx, seed.Books); err != nil {
		return fmt.Errorf("load seed %s: %w", filepath.Base(path), err)
	}
	return nil
}
