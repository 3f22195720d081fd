// Package pgvectorstore is a vectorstore.Store on PostgreSQL with pgvector
package pgvectorstore

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	"github.com/Abraxas-365/peoplehub/internal/vectorstore"
	"github.com/Abraxas-365/peoplehub/pkg/logx"
	"github.com/jmoiron/sqlx"
	"github.com/pgvector/pgvector-go"
)

type Store struct {
	db *sqlx.DB
}

func New(db *sqlx.DB) *Store {
	return &Store{db: db}
}

type recordModel struct {
	Collection string          `db:"collection_name"`
	ID         string          `db:"id"`
	Text       string          `db:"text"`
	Metadata   []byte          `db:"metadata"`
	Embedding  pgvector.Vector `db:"embedding"`
	CreatedAt  time.Time       `db:"created_at"`
}

type matchModel struct {
	ID       string  `db:"id"`
	Text     string  `db:"text"`
	Metadata []byte  `db:"metadata"`
	Distance float64 `db:"distance"`
}

// ============================================================================
// Writes
// ============================================================================

// Upsert deletes then inserts inside one transaction holding an advisory lock
// on the record key
func (s *Store) Upsert(ctx context.Context, rec vectorstore.Record) error {
	if err := vectorstore.ValidateRecord(rec); err != nil {
		return err
	}

	metadata, err := encodeMetadata(rec.Metadata)
	if err != nil {
		return err
	}

	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return upsertFailed(rec, "begin", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `SELECT pg_advisory_xact_lock(hashtext($1))`, lockKey(rec.Collection, rec.ID)); err != nil {
		return upsertFailed(rec, "lock", err)
	}

	if _, err := tx.ExecContext(ctx,
		`DELETE FROM embedding_records WHERE collection_name = $1 AND id = $2`,
		rec.Collection, rec.ID,
	); err != nil {
		return upsertFailed(rec, "delete", err)
	}

	createdAt := rec.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now()
	}

	query := `
		INSERT INTO embedding_records (collection_name, id, text, metadata, embedding, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)`

	if _, err := tx.ExecContext(ctx, query,
		rec.Collection,
		rec.ID,
		rec.Text,
		metadata,
		pgvector.NewVector(rec.Vector),
		createdAt,
	); err != nil {
		return upsertFailed(rec, "insert", err)
	}

	if err := tx.Commit(); err != nil {
		return upsertFailed(rec, "commit", err)
	}
	return nil
}

func (s *Store) Delete(ctx context.Context, collection, id string) error {
	_, err := s.db.ExecContext(ctx,
		`DELETE FROM embedding_records WHERE collection_name = $1 AND id = $2`,
		collection, id,
	)
	if err != nil {
		return vectorstore.ErrRegistry.NewWithCause(vectorstore.CodeUpsertFailed, err).
			WithDetail("collection", collection).
			WithDetail("id", id).
			WithDetail("operation", "delete")
	}
	return nil
}

func (s *Store) Clear(ctx context.Context, collection string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM embedding_records WHERE collection_name = $1`, collection)
	if err != nil {
		return vectorstore.ErrRegistry.NewWithCause(vectorstore.CodeUpsertFailed, err).
			WithDetail("collection", collection).
			WithDetail("operation", "clear")
	}
	if n, err := res.RowsAffected(); err == nil {
		logx.Infof("cleared %d records from collection %s", n, collection)
	}
	return nil
}

// ============================================================================
// Reads
// ============================================================================

func (s *Store) Get(ctx context.Context, collection, id string) (*vectorstore.Record, error) {
	query := `
		SELECT collection_name, id, text, metadata, embedding, created_at
		FROM embedding_records
		WHERE collection_name = $1 AND id = $2`

	var m recordModel
	if err := s.db.GetContext(ctx, &m, query, collection, id); err != nil {
		if err == sql.ErrNoRows {
			return nil, vectorstore.ErrRecordNotFound().
				WithDetail("collection", collection).
				WithDetail("id", id)
		}
		return nil, vectorstore.ErrRegistry.NewWithCause(vectorstore.CodeQueryFailed, err).
			WithDetail("collection", collection).
			WithDetail("id", id)
	}

	return m.toRecord()
}

func (s *Store) Count(ctx context.Context, collection string) (int, error) {
	var n int
	if err := s.db.GetContext(ctx, &n, `SELECT COUNT(*) FROM embedding_records WHERE collection_name = $1`, collection); err != nil {
		return 0, vectorstore.ErrRegistry.NewWithCause(vectorstore.CodeQueryFailed, err).
			WithDetail("collection", collection)
	}
	return n, nil
}

// Query orders by cosine distance (<=>) within one collection
func (s *Store) Query(ctx context.Context, collection string, vector []float32, k int) ([]vectorstore.Match, error) {
	query := `
		SELECT id, text, metadata, embedding <=> $2 AS distance
		FROM embedding_records
		WHERE collection_name = $1
		ORDER BY distance ASC, id ASC
		LIMIT $3`

	var rows []matchModel
	if err := s.db.SelectContext(ctx, &rows, query, collection, pgvector.NewVector(vector), k); err != nil {
		return nil, vectorstore.ErrRegistry.NewWithCause(vectorstore.CodeQueryFailed, err).
			WithDetail("collection", collection).
			WithDetail("k", k)
	}

	matches := make([]vectorstore.Match, 0, len(rows))
	for _, r := range rows {
		md, err := decodeMetadata(r.Metadata)
		if err != nil {
			return nil, err
		}
		matches = append(matches, vectorstore.Match{
			ID:       r.ID,
			Text:     r.Text,
			Metadata: md,
			Distance: r.Distance,
		})
	}
	return matches, nil
}

func (s *Store) Close() error { return nil }

// ============================================================================
// Helpers
// ============================================================================

func (m recordModel) toRecord() (*vectorstore.Record, error) {
	md, err := decodeMetadata(m.Metadata)
	if err != nil {
		return nil, err
	}
	return &vectorstore.Record{
		Collection: m.Collection,
		ID:         m.ID,
		Text:       m.Text,
		Vector:     m.Embedding.Slice(),
		Metadata:   md,
		CreatedAt:  m.CreatedAt,
	}, nil
}

func lockKey(collection, id string) string {
	return collection + "/" + id
}

func encodeMetadata(m vectorstore.Metadata) ([]byte, error) {
	if m == nil {
		return []byte("{}"), nil
	}
	b, err := json.Marshal(m)
	if err != nil {
		return nil, vectorstore.ErrInvalidMetadata().WithCause(err)
	}
	return b, nil
}

func decodeMetadata(b []byte) (vectorstore.Metadata, error) {
	md := vectorstore.Metadata{}
	if len(b) == 0 {
		return md, nil
	}
	if err := json.Unmarshal(b, &md); err != nil {
		return nil, vectorstore.ErrRegistry.NewWithCause(vectorstore.CodeQueryFailed, err).
			WithDetail("reason", "corrupt metadata")
	}
	return md, nil
}

func upsertFailed(rec vectorstore.Record, op string, err error) error {
	return vectorstore.ErrRegistry.NewWithCause(vectorstore.CodeUpsertFailed, err).
		WithDetail("collection", rec.Collection).
		WithDetail("id", rec.ID).
		WithDetail("operation", op)
}
