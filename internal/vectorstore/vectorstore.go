// Package vectorstore stores embedded text per collection and answers
// nearest-neighbour queries by cosine distance.
package vectorstore

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// Collections used by the matching pipeline
const (
	CollectionResume  = "resume"
	CollectionJobPost = "job_post"
)

// Metadata holds JSON scalar values only
type Metadata map[string]any

// String returns the metadata value for key as a string
func (m Metadata) String(key string) string {
	v, ok := m[key]
	if !ok || v == nil {
		return ""
	}
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprint(v)
}

// Record is one embedded document
type Record struct {
	Collection string
	ID         string
	Text       string
	Vector     []float32
	Metadata   Metadata
	CreatedAt  time.Time
}

// Match is a query hit. Lower Distance is closer.
type Match struct {
	ID       string   `json:"id"`
	Text     string   `json:"text"`
	Metadata Metadata `json:"metadata"`
	Distance float64  `json:"distance"`
}

// Similarity is 1 - Distance clamped to [0, 1]
func (m Match) Similarity() float64 {
	s := 1 - m.Distance
	switch {
	case s < 0:
		return 0
	case s > 1:
		return 1
	default:
		return s
	}
}

// Store persists records. Upsert on an existing (collection, id) replaces it
// atomically.
type Store interface {
	// Upsert inserts or replaces a record
	Upsert(ctx context.Context, rec Record) error
	// Get returns a record or ErrRecordNotFound
	Get(ctx context.Context, collection, id string) (*Record, error)
	// Delete removes a record. Missing records are not an error.
	Delete(ctx context.Context, collection, id string) error
	// Clear removes every record of a collection
	Clear(ctx context.Context, collection string) error
	// Count returns the number of records in a collection
	Count(ctx context.Context, collection string) (int, error)
	// Query returns up to k records by ascending cosine distance
	Query(ctx context.Context, collection string, vector []float32, k int) ([]Match, error)
	Close() error
}

// Embedder turns text into a vector. Same model and text give the same vector.
type Embedder interface {
	Embed(ctx context.Context, text string) ([]float32, error)
}

// ValidateMetadata rejects values that are not JSON scalars
func ValidateMetadata(m Metadata) error {
	for key, v := range m {
		if strings.TrimSpace(key) == "" {
			return ErrInvalidMetadata().WithDetail("reason", "empty key")
		}
		switch v.(type) {
		case nil, string, bool,
			int, int8, int16, int32, int64,
			uint, uint8, uint16, uint32, uint64,
			float32, float64, json.Number:
			continue
		default:
			return ErrInvalidMetadata().
				WithDetail("key", key).
				WithDetail("type", fmt.Sprintf("%T", v))
		}
	}
	return nil
}

// ValidateRecord checks a record before it is written
func ValidateRecord(rec Record) error {
	switch {
	case strings.TrimSpace(rec.Collection) == "":
		return ErrInvalidRecord().WithDetail("reason", "collection is required")
	case strings.TrimSpace(rec.ID) == "":
		return ErrInvalidRecord().WithDetail("reason", "id is required")
	case len(rec.Vector) == 0:
		return ErrInvalidRecord().WithDetail("reason", "vector is required")
	}
	return ValidateMetadata(rec.Metadata)
}
