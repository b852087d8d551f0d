package search

import (
	"context"
	"fmt"
	"strings"

	"github.com/blevesearch/bleve/v2"
	"github.com/blevesearch/bleve/v2/search/query"

	domainerrors "github.com/listenupapp/bookindex/internal/errors"
)

// Field restricts which document field a query matches against.
type Field string

const (
	FieldAny     Field = ""
	FieldTitle   Field = "title"
	FieldAuthors Field = "authors"
)

// Params configures a search query.
type Params struct {
	Query string
	Field Field
	Limit int
	Fuzzy bool // Tolerate one-character typos
}

// Hit is a single search result.
type Hit struct {
	Title   string   `json:"title"`
	Authors []string `json:"authors"`
	Score   float64  `json:"score"`
}

// Result holds the hits of one search.
type Result struct {
	Query  string `json:"query"`
	Total  uint64 `json:"total"`
	TookMs int64  `json:"took_ms"`
	Hits   []Hit  `json:"hits"`
}

// Search executes a search query. Hits are ordered by score, then title.
func (s *Index) Search(ctx context.Context, params Params) (*Result, error) {
	switch params.Field {
	case FieldAny, FieldTitle, FieldAuthors:
	default:
		return nil, domainerrors.InvalidArgumentf("unknown search field: %q", params.Field)
	}

	text := strings.TrimSpace(params.Query)
	if text == "" {
		return &Result{Query: params.Query, Hits: []Hit{}}, nil
	}
	limit := params.Limit
	if limit <= 0 {
		limit = 10
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	req := bleve.NewSearchRequestOptions(buildQuery(text, params), limit, 0, false)
	req.Fields = []string{"title", "authors"}
	req.SortBy([]string{"-_score", "_id"})

	res, err := s.index.SearchInContext(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("execute search: %w", err)
	}

	result := &Result{
		Query:  params.Query,
		Total:  res.Total,
		TookMs: res.Took.Milliseconds(),
		Hits:   make([]Hit, 0, len(res.Hits)),
	}
	for _, h := range res.Hits {
		hit := Hit{Title: h.ID, Score: h.Score, Authors: []string{}}
		switch v := h.Fields["authors"].(type) {
		case string:
			hit.Authors = []string{v}
		case []any:
			for _, a := range v {
				if name, ok := a.(string); ok {
					hit.Authors = append(hit.Authors, name)
				}
			}
		}
		result.Hits = append(result.Hits, hit)
	}

	return result, nil
}

// buildQuery matches text against the requested fields. Title matches are
// boosted over author matches when both fields are searched.
func buildQuery(text string, params Params) query.Query {
	fields := []struct {
		name  Field
		boost float64
	}{
		{FieldTitle, 2.0},
		{FieldAuthors, 1.0},
	}

	var queries []query.Query
	for _, f := range fields {
		if params.Field != FieldAny && params.Field != f.name {
			continue
		}

		match := bleve.NewMatchQuery(text)
		match.SetField(string(f.name))
		match.SetBoost(f.boost)
		if params.Fuzzy {
			match.SetFuzziness(1)
		}
		queries = append(queries, match)
	}

	return bleve.NewDisjunctionQuery(queries...)
}
