package sqlite

import (
	"context"
	"sort"

	"github.com/semdegroot/apotheek"
)

// DefaultSearchLimit is the top-k used when SearchOptions.Limit is zero.
const DefaultSearchLimit = 5

// Compile-time interface verification.
var _ apotheek.SearchService = (*SearchService)(nil)

// SearchService implements apotheek.SearchService with a brute-force scan
// over the stored vectors. The corpus is a few thousand chunks, so a full
// scan per query is fast enough and keeps the store in one file.
type SearchService struct {
	db       *DB
	embedder apotheek.Embedder
}

// NewSearchService creates a new SearchService.
func NewSearchService(db *DB, embedder apotheek.Embedder) *SearchService {
	return &SearchService{db: db, embedder: embedder}
}

// Search embeds the query and returns the best-scoring chunks in
// descending score order. Vectors are stored normalized, so the dot
// product is the cosine similarity.
func (s *SearchService) Search(ctx context.Context, query string, opts apotheek.SearchOptions) ([]apotheek.SearchResult, error) {
	limit := opts.Limit
	if limit <= 0 {
		limit = DefaultSearchLimit
	}

	qvec, err := s.embedder.EmbedQuery(ctx, query)
	if err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, text, raw_text, title, section, subsection, block_type, url, source_file, embedding
		FROM chunks
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var results []apotheek.SearchResult
	for rows.Next() {
		var c apotheek.Chunk
		var blob []byte
		if err := rows.Scan(&c.ID, &c.Text, &c.RawText, &c.Title, &c.Section,
			&c.Subsection, &c.BlockType, &c.URL, &c.SourceFile, &blob); err != nil {
			return nil, err
		}

		vec := decodeVector(blob)
		if len(vec) != len(qvec) {
			return nil, apotheek.Errorf(apotheek.EINTERNAL,
				"stored vector dimension %d does not match query dimension %d", len(vec), len(qvec))
		}

		score := dot(qvec, vec)
		if score < opts.MinScore {
			continue
		}
		results = append(results, apotheek.SearchResult{Chunk: c, Score: score})
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})
	if len(results) > limit {
		results = results[:limit]
	}
	return results, nil
}

func dot(a, b []float32) float32 {
	var sum float32
	for i := range a {
		sum += a[i] * b[i]
	}
	return sum
}
