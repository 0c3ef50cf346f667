package mock

import (
	"context"

	"github.com/semdegroot/apotheek"
)

var _ apotheek.ChunkService = (*ChunkService)(nil)

// ChunkService is a mock implementation of apotheek.ChunkService.
type ChunkService struct {
	CreateChunksFn    func(ctx context.Context, chunks []apotheek.Chunk) error
	CountChunksFn     func(ctx context.Context) (int, error)
	DeleteAllChunksFn func(ctx context.Context) error
}

func (s *ChunkService) CreateChunks(ctx context.Context, chunks []apotheek.Chunk) error {
	return s.CreateChunksFn(ctx, chunks)
}

func (s *ChunkService) CountChunks(ctx context.Context) (int, error) {
	return s.CountChunksFn(ctx)
}

func (s *ChunkService) DeleteAllChunks(ctx context.Context) error {
	return s.DeleteAllChunksFn(ctx)
}

var _ apotheek.SearchService = (*SearchService)(nil)

// SearchService is a mock implementation of apotheek.SearchService.
type SearchService struct {
	SearchFn func(ctx context.Context, query string, opts apotheek.SearchOptions) ([]apotheek.SearchResult, error)
}

func (s *SearchService) Search(ctx context.Context, query string, opts apotheek.SearchOptions) ([]apotheek.SearchResult, error) {
	return s.SearchFn(ctx, query, opts)
}
