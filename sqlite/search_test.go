package sqlite_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/semdegroot/apotheek"
	"github.com/semdegroot/apotheek/mock"
	"github.com/semdegroot/apotheek/sqlite"
)

// queryEmbedder returns the same vector for every query.
func queryEmbedder(vec []float32) *mock.Embedder {
	return &mock.Embedder{
		EmbedQueryFn: func(ctx context.Context, text string) ([]float32, error) {
			return vec, nil
		},
	}
}

func TestSearchService_Search(t *testing.T) {
	t.Parallel()

	seed := func(t *testing.T, db *sqlite.DB) {
		t.Helper()
		svc := sqlite.NewChunkService(db)
		require.NoError(t, svc.CreateChunks(context.Background(), []apotheek.Chunk{
			testChunk("Neem niet meer dan 4000 mg per dag.", []float32{1, 0, 0}),
			testChunk("Drink voldoende water.", []float32{0, 1, 0}),
			testChunk("Bewaar buiten bereik van kinderen.", []float32{0.6, 0.8, 0}),
		}))
	}

	t.Run("orders results by descending score", func(t *testing.T) {
		t.Parallel()

		db := mustOpenDB(t)
		seed(t, db)
		svc := sqlite.NewSearchService(db, queryEmbedder([]float32{1, 0, 0}))

		results, err := svc.Search(context.Background(), "hoeveel paracetamol per dag?", apotheek.SearchOptions{})
		require.NoError(t, err)

		require.Len(t, results, 3)
		assert.Equal(t, "Neem niet meer dan 4000 mg per dag.", results[0].Chunk.RawText)
		assert.InDelta(t, 1.0, results[0].Score, 0.001)
		assert.Equal(t, "Bewaar buiten bereik van kinderen.", results[1].Chunk.RawText)
		assert.GreaterOrEqual(t, results[1].Score, results[2].Score)
	})

	t.Run("limit caps the result count", func(t *testing.T) {
		t.Parallel()

		db := mustOpenDB(t)
		seed(t, db)
		svc := sqlite.NewSearchService(db, queryEmbedder([]float32{1, 0, 0}))

		results, err := svc.Search(context.Background(), "vraag", apotheek.SearchOptions{Limit: 1})
		require.NoError(t, err)
		assert.Len(t, results, 1)
	})

	t.Run("min score filters weak matches", func(t *testing.T) {
		t.Parallel()

		db := mustOpenDB(t)
		seed(t, db)
		svc := sqlite.NewSearchService(db, queryEmbedder([]float32{1, 0, 0}))

		results, err := svc.Search(context.Background(), "vraag", apotheek.SearchOptions{MinScore: 0.9})
		require.NoError(t, err)
		require.Len(t, results, 1)
		assert.Equal(t, "Neem niet meer dan 4000 mg per dag.", results[0].Chunk.RawText)
	})

	t.Run("empty index returns no results", func(t *testing.T) {
		t.Parallel()

		db := mustOpenDB(t)
		svc := sqlite.NewSearchService(db, queryEmbedder([]float32{1, 0, 0}))

		results, err := svc.Search(context.Background(), "vraag", apotheek.SearchOptions{})
		require.NoError(t, err)
		assert.Empty(t, results)
	})

	t.Run("dimension mismatch is an internal error", func(t *testing.T) {
		t.Parallel()

		db := mustOpenDB(t)
		seed(t, db)
		svc := sqlite.NewSearchService(db, queryEmbedder([]float32{1, 0}))

		_, err := svc.Search(context.Background(), "vraag", apotheek.SearchOptions{})
		require.Error(t, err)
		assert.Equal(t, apotheek.EINTERNAL, apotheek.ErrorCode(err))
	})

	t.Run("propagates embedder failure", func(t *testing.T) {
		t.Parallel()

		db := mustOpenDB(t)
		seed(t, db)
		embedder := &mock.Embedder{
			EmbedQueryFn: func(ctx context.Context, text string) ([]float32, error) {
				return nil, apotheek.Errorf(apotheek.EUNAVAILABLE, "embedding service unavailable")
			},
		}
		svc := sqlite.NewSearchService(db, embedder)

		_, err := svc.Search(context.Background(), "vraag", apotheek.SearchOptions{})
		require.Error(t, err)
		assert.Equal(t, apotheek.EUNAVAILABLE, apotheek.ErrorCode(err))
	})
}
