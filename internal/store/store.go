// Package store implements the persistent embedding store: an
// append-only collection of text chunks with metadata over SQLite,
// with nearest-neighbour query via sqlite-vec when the extension is
// available and brute-force cosine similarity otherwise.
package store

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/binary"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"arise/internal/embedding"
	"arise/internal/logging"
)

// Entry is a stored chunk with metadata. Similarity is attached to
// query results.
type Entry struct {
	ChunkID    string                 `json:"chunk_id"`
	Content    string                 `json:"content"`
	Metadata   map[string]interface{} `json:"metadata,omitempty"`
	Similarity float64                `json:"similarity,omitempty"`
	CreatedAt  time.Time              `json:"created_at"`
}

// Stats summarises the store contents.
type Stats struct {
	TotalChunks    int64            `json:"total_chunks"`
	WithEmbeddings int64            `json:"with_embeddings"`
	BySource       map[string]int64 `json:"by_source"`
	Engine         string           `json:"embedding_engine"`
}

// Store is a durable embedding store over SQLite. Writes serialise on
// the mutex; reads run concurrently.
type Store struct {
	mu         sync.RWMutex
	db         *sql.DB
	dbPath     string
	collection string
	engine     embedding.Engine
	vectorExt  bool
}

// Open creates or opens the store at dbPath for the named collection.
// Pass ":memory:" for an ephemeral store.
func Open(dbPath, collection string) (*Store, error) {
	timer := logging.StartTimer(logging.CategoryStore, "store.Open")
	defer timer.Stop()

	if collection == "" {
		collection = "default"
	}

	if dbPath != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
			return nil, fmt.Errorf("failed to create store directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	s := &Store{
		db:         db,
		dbPath:     dbPath,
		collection: collection,
	}

	if err := s.initSchema(); err != nil {
		db.Close()
		return nil, err
	}

	logging.Store("Store opened: path=%s collection=%s", dbPath, collection)
	return s, nil
}

func (s *Store) initSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS chunks (
		chunk_id   TEXT NOT NULL,
		collection TEXT NOT NULL,
		content    TEXT NOT NULL,
		embedding  TEXT,
		metadata   TEXT,
		source     TEXT,
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
		PRIMARY KEY (chunk_id, collection)
	);
	CREATE INDEX IF NOT EXISTS idx_chunks_collection ON chunks(collection);
	CREATE INDEX IF NOT EXISTS idx_chunks_source ON chunks(collection, source);
	`
	if _, err := s.db.Exec(schema); err != nil {
		return fmt.Errorf("failed to initialize schema: %w", err)
	}
	return nil
}

// SetEmbeddingEngine configures the embedding engine. Must be called
// before Upsert for semantic storage; without an engine the store falls
// back to keyword search.
func (s *Store) SetEmbeddingEngine(engine embedding.Engine) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.engine = engine
	if engine != nil {
		logging.Store("Embedding engine set: %s (dimensions=%d)", engine.Name(), engine.Dimensions())
		s.initVecIndex(engine.Dimensions())
	} else {
		logging.StoreDebug("Embedding engine set to nil (keyword-only mode)")
	}
}

// initVecIndex attempts to create a sqlite-vec table; if it succeeds,
// vectorExt is enabled. Requires the extension to be registered (see
// the sqlite_vec build tag).
func (s *Store) initVecIndex(dim int) {
	if dim <= 0 || s.db == nil {
		return
	}
	stmt := fmt.Sprintf(
		"CREATE VIRTUAL TABLE IF NOT EXISTS vec_index USING vec0(embedding float[%d], chunk_id TEXT, collection TEXT, content TEXT, metadata TEXT)", dim)
	if _, err := s.db.Exec(stmt); err == nil {
		s.vectorExt = true
		logging.Store("sqlite-vec index initialized (dimensions=%d)", dim)
	} else {
		logging.StoreDebug("sqlite-vec unavailable, using brute-force search: %v", err)
	}
}

// Upsert stores a chunk. Idempotent on chunk id: re-upserting the same
// id replaces content and metadata.
func (s *Store) Upsert(ctx context.Context, chunkID, text string, metadata map[string]interface{}) error {
	timer := logging.StartTimer(logging.CategoryStore, "Store.Upsert")
	defer timer.Stop()

	if chunkID == "" {
		return fmt.Errorf("chunk id is required")
	}

	var embeddingJSON sql.NullString
	var vecBlob []byte

	s.mu.RLock()
	engine := s.engine
	vecEnabled := s.vectorExt
	s.mu.RUnlock()

	if engine != nil {
		vec, err := engine.Embed(ctx, text)
		if err != nil {
			logging.StoreError("Failed to generate embedding for %s: %v", chunkID, err)
			return fmt.Errorf("failed to generate embedding: %w", err)
		}
		data, err := json.Marshal(vec)
		if err != nil {
			return fmt.Errorf("failed to serialize embedding: %w", err)
		}
		embeddingJSON = sql.NullString{String: string(data), Valid: true}
		vecBlob = encodeFloat32Slice(vec)
	}

	metaJSON, _ := json.Marshal(metadata)
	source := ""
	if metadata != nil {
		if v, ok := metadata["source"].(string); ok {
			source = v
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.Exec(
		"INSERT OR REPLACE INTO chunks (chunk_id, collection, content, embedding, metadata, source) VALUES (?, ?, ?, ?, ?, ?)",
		chunkID, s.collection, text, embeddingJSON, string(metaJSON), source,
	)
	if err != nil {
		return fmt.Errorf("failed to store chunk: %w", err)
	}

	if vecEnabled && vecBlob != nil {
		_, _ = s.db.Exec(
			"INSERT OR REPLACE INTO vec_index (embedding, chunk_id, collection, content, metadata) VALUES (?, ?, ?, ?, ?)",
			vecBlob, chunkID, s.collection, text, string(metaJSON),
		)
	}

	logging.StoreDebug("Upserted chunk %s (%d chars)", chunkID, len(text))
	return nil
}

// UpsertBatch stores several chunks in one transaction. Returns the
// number stored.
func (s *Store) UpsertBatch(ctx context.Context, ids []string, texts []string, metadata []map[string]interface{}) (int, error) {
	timer := logging.StartTimer(logging.CategoryStore, "Store.UpsertBatch")
	defer timer.Stop()

	if len(ids) != len(texts) || len(ids) != len(metadata) {
		return 0, fmt.Errorf("ids/texts/metadata length mismatch: %d/%d/%d", len(ids), len(texts), len(metadata))
	}
	if len(ids) == 0 {
		return 0, nil
	}

	s.mu.RLock()
	engine := s.engine
	vecEnabled := s.vectorExt
	s.mu.RUnlock()

	var embeddings [][]float32
	if engine != nil {
		var err error
		embeddings, err = engine.EmbedBatch(ctx, texts)
		if err != nil {
			logging.StoreError("Batch embedding failed: %v", err)
			return 0, err
		}
		if len(embeddings) != len(texts) {
			return 0, fmt.Errorf("embedding batch size mismatch: %d != %d", len(embeddings), len(texts))
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.Begin()
	if err != nil {
		return 0, err
	}
	stmt, err := tx.Prepare("INSERT OR REPLACE INTO chunks (chunk_id, collection, content, embedding, metadata, source) VALUES (?, ?, ?, ?, ?, ?)")
	if err != nil {
		_ = tx.Rollback()
		return 0, err
	}
	defer stmt.Close()

	var vecStmt *sql.Stmt
	if vecEnabled && embeddings != nil {
		vecStmt, err = tx.Prepare("INSERT OR REPLACE INTO vec_index (embedding, chunk_id, collection, content, metadata) VALUES (?, ?, ?, ?, ?)")
		if err != nil {
			_ = tx.Rollback()
			return 0, err
		}
		defer vecStmt.Close()
	}

	stored := 0
	for i := range ids {
		var embeddingJSON sql.NullString
		if embeddings != nil {
			data, err := json.Marshal(embeddings[i])
			if err != nil {
				continue
			}
			embeddingJSON = sql.NullString{String: string(data), Valid: true}
		}
		metaJSON, _ := json.Marshal(metadata[i])
		source := ""
		if metadata[i] != nil {
			if v, ok := metadata[i]["source"].(string); ok {
				source = v
			}
		}
		if _, err := stmt.Exec(ids[i], s.collection, texts[i], embeddingJSON, string(metaJSON), source); err != nil {
			continue
		}
		if vecStmt != nil {
			_, _ = vecStmt.Exec(encodeFloat32Slice(embeddings[i]), ids[i], s.collection, texts[i], string(metaJSON))
		}
		stored++
	}

	if err := tx.Commit(); err != nil {
		return stored, err
	}

	logging.Store("UpsertBatch: stored %d/%d chunks", stored, len(ids))
	return stored, nil
}

// Query returns up to k entries ordered by non-increasing similarity to
// the query text. Falls back to keyword search when no embedding engine
// is configured.
func (s *Store) Query(ctx context.Context, text string, k int) ([]Entry, error) {
	timer := logging.StartTimer(logging.CategoryStore, "Store.Query")
	defer timer.Stop()

	if k <= 0 {
		k = 10
	}

	s.mu.RLock()
	engine := s.engine
	vecEnabled := s.vectorExt
	s.mu.RUnlock()

	if engine == nil {
		logging.StoreDebug("No embedding engine, using keyword search")
		return s.queryKeyword(text, k)
	}

	queryVec, err := engine.Embed(ctx, text)
	if err != nil {
		return nil, fmt.Errorf("failed to generate query embedding: %w", err)
	}

	if vecEnabled {
		return s.queryVec(queryVec, k)
	}
	return s.queryBruteForce(queryVec, k)
}

// queryBruteForce ranks all stored embeddings by cosine similarity.
func (s *Store) queryBruteForce(queryVec []float32, k int) ([]Entry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.Query(
		"SELECT chunk_id, content, embedding, metadata, created_at FROM chunks WHERE collection = ? AND embedding IS NOT NULL",
		s.collection,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var candidates []Entry
	for rows.Next() {
		var entry Entry
		var embeddingJSON, metaJSON string
		if err := rows.Scan(&entry.ChunkID, &entry.Content, &embeddingJSON, &metaJSON, &entry.CreatedAt); err != nil {
			continue
		}

		var vec []float32
		if err := json.Unmarshal([]byte(embeddingJSON), &vec); err != nil {
			continue
		}
		similarity, err := embedding.CosineSimilarity(queryVec, vec)
		if err != nil {
			continue
		}
		if metaJSON != "" {
			_ = json.Unmarshal([]byte(metaJSON), &entry.Metadata)
		}
		entry.Similarity = similarity
		candidates = append(candidates, entry)
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].Similarity > candidates[j].Similarity
	})
	if len(candidates) > k {
		candidates = candidates[:k]
	}

	logging.StoreDebug("Brute-force query returned %d results", len(candidates))
	return candidates, nil
}

// queryVec performs ANN search via sqlite-vec.
func (s *Store) queryVec(queryVec []float32, k int) ([]Entry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.Query(
		"SELECT chunk_id, content, metadata, vec_distance_cosine(embedding, ?) AS dist FROM vec_index WHERE collection = ? ORDER BY dist ASC LIMIT ?",
		encodeFloat32Slice(queryVec), s.collection, k,
	)
	if err != nil {
		logging.StoreError("sqlite-vec query failed: %v", err)
		return nil, err
	}
	defer rows.Close()

	var results []Entry
	for rows.Next() {
		var entry Entry
		var metaJSON string
		var dist float64
		if err := rows.Scan(&entry.ChunkID, &entry.Content, &metaJSON, &dist); err != nil {
			continue
		}
		if metaJSON != "" {
			_ = json.Unmarshal([]byte(metaJSON), &entry.Metadata)
		}
		entry.Similarity = 1 - dist
		results = append(results, entry)
	}

	logging.StoreDebug("sqlite-vec query returned %d results", len(results))
	return results, nil
}

// queryKeyword is the fallback search when no engine is configured:
// rank by count of query words appearing in the content.
func (s *Store) queryKeyword(text string, k int) ([]Entry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.Query(
		"SELECT chunk_id, content, metadata, created_at FROM chunks WHERE collection = ?",
		s.collection,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	words := strings.Fields(strings.ToLower(text))
	var candidates []Entry
	for rows.Next() {
		var entry Entry
		var metaJSON string
		if err := rows.Scan(&entry.ChunkID, &entry.Content, &metaJSON, &entry.CreatedAt); err != nil {
			continue
		}
		lower := strings.ToLower(entry.Content)
		hits := 0
		for _, w := range words {
			if strings.Contains(lower, w) {
				hits++
			}
		}
		if hits == 0 {
			continue
		}
		if metaJSON != "" {
			_ = json.Unmarshal([]byte(metaJSON), &entry.Metadata)
		}
		if len(words) > 0 {
			entry.Similarity = float64(hits) / float64(len(words))
		}
		candidates = append(candidates, entry)
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].Similarity > candidates[j].Similarity
	})
	if len(candidates) > k {
		candidates = candidates[:k]
	}
	return candidates, nil
}

// DeleteCollection drops all entries in the collection.
func (s *Store) DeleteCollection() error {
	timer := logging.StartTimer(logging.CategoryStore, "Store.DeleteCollection")
	defer timer.Stop()

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.db.Exec("DELETE FROM chunks WHERE collection = ?", s.collection); err != nil {
		return err
	}
	if s.vectorExt {
		_, _ = s.db.Exec("DELETE FROM vec_index WHERE collection = ?", s.collection)
	}
	logging.Store("Collection %s deleted", s.collection)
	return nil
}

// Stats returns the chunk count and per-source breakdown.
func (s *Store) Stats() (Stats, error) {
	timer := logging.StartTimer(logging.CategoryStore, "Store.Stats")
	defer timer.Stop()

	s.mu.RLock()
	defer s.mu.RUnlock()

	stats := Stats{BySource: make(map[string]int64)}

	if err := s.db.QueryRow("SELECT COUNT(*) FROM chunks WHERE collection = ?", s.collection).Scan(&stats.TotalChunks); err != nil {
		return stats, err
	}
	if err := s.db.QueryRow("SELECT COUNT(*) FROM chunks WHERE collection = ? AND embedding IS NOT NULL", s.collection).Scan(&stats.WithEmbeddings); err != nil {
		return stats, err
	}

	rows, err := s.db.Query("SELECT source, COUNT(*) FROM chunks WHERE collection = ? GROUP BY source", s.collection)
	if err != nil {
		return stats, err
	}
	defer rows.Close()
	for rows.Next() {
		var source string
		var count int64
		if err := rows.Scan(&source, &count); err != nil {
			continue
		}
		if source == "" {
			source = "unknown"
		}
		stats.BySource[source] = count
	}

	if s.engine != nil {
		stats.Engine = s.engine.Name()
	} else {
		stats.Engine = "none (keyword search)"
	}
	return stats, nil
}

// Close releases the database handle.
func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.db.Close()
}

func encodeFloat32Slice(vec []float32) []byte {
	buf := &bytes.Buffer{}
	_ = binary.Write(buf, binary.LittleEndian, vec)
	return buf.Bytes()
}
