package sqlite

import (
	"context"
	"encoding/binary"
	"encoding/hex"
	"math"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/google/uuid"

	"github.com/semdegroot/apotheek"
)

// Compile-time interface verification.
var _ apotheek.ChunkService = (*ChunkService)(nil)

// ChunkService implements apotheek.ChunkService using SQLite.
type ChunkService struct {
	db *DB

	// SkipDuplicates drops chunks whose embedded text already exists in
	// the store, matched by hash.
	SkipDuplicates bool
}

// NewChunkService creates a new ChunkService.
func NewChunkService(db *DB) *ChunkService {
	return &ChunkService{db: db}
}

// hashText computes xxHash of the embedded text and returns a hex string.
func hashText(text string) string {
	var b [8]byte
	binary.BigEndian.PutUint64(b[:], xxhash.Sum64String(text))
	return hex.EncodeToString(b[:])
}

// encodeVector packs a float32 vector into a little-endian blob.
func encodeVector(vec []float32) []byte {
	buf := make([]byte, 4*len(vec))
	for i, v := range vec {
		binary.LittleEndian.PutUint32(buf[i*4:], math.Float32bits(v))
	}
	return buf
}

// decodeVector unpacks a blob produced by encodeVector.
func decodeVector(buf []byte) []float32 {
	vec := make([]float32, len(buf)/4)
	for i := range vec {
		vec[i] = math.Float32frombits(binary.LittleEndian.Uint32(buf[i*4:]))
	}
	return vec
}

// CreateChunks stores chunks in a single transaction, assigning IDs.
// Every chunk must carry its embedding vector.
func (s *ChunkService) CreateChunks(ctx context.Context, chunks []apotheek.Chunk) error {
	for i := range chunks {
		if err := chunks[i].Validate(); err != nil {
			return err
		}
		if len(chunks[i].Embedding) == 0 {
			return apotheek.Errorf(apotheek.EINVALID, "chunk embedding required")
		}
	}

	tx, err := s.db.BeginTx(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	now := time.Now().UTC().Format(time.RFC3339)
	for i := range chunks {
		c := &chunks[i]
		hash := hashText(c.Text)

		if s.SkipDuplicates {
			var n int
			if err := tx.QueryRowContext(ctx,
				"SELECT COUNT(*) FROM chunks WHERE text_hash = ?", hash).Scan(&n); err != nil {
				return err
			}
			if n > 0 {
				continue
			}
		}

		c.ID = uuid.New().String()
		_, err := tx.ExecContext(ctx, `
			INSERT INTO chunks (id, text, raw_text, title, section, subsection, block_type, url, source_file, text_hash, embedding, created_at)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		`, c.ID, c.Text, c.RawText, c.Title, c.Section, c.Subsection, c.BlockType,
			c.URL, c.SourceFile, hash, encodeVector(c.Embedding), now)
		if err != nil {
			return err
		}
	}

	return tx.Commit()
}

// CountChunks returns the number of stored chunks.
func (s *ChunkService) CountChunks(ctx context.Context) (int, error) {
	var n int
	err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM chunks").Scan(&n)
	return n, err
}

// DeleteAllChunks empties the store.
func (s *ChunkService) DeleteAllChunks(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, "DELETE FROM chunks")
	return err
}
