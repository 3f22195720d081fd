// Package memstore is an in-process vectorstore.Store
package memstore

import (
	"context"
	"math"
	"sort"
	"sync"
	"time"

	"github.com/Abraxas-365/peoplehub/internal/vectorstore"
)

type Store struct {
	mu      sync.RWMutex
	records map[string]map[string]vectorstore.Record
}

func New() *Store {
	return &Store{records: make(map[string]map[string]vectorstore.Record)}
}

func (s *Store) Upsert(ctx context.Context, rec vectorstore.Record) error {
	if err := vectorstore.ValidateRecord(rec); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return vectorstore.ErrUpsertFailed().WithCause(err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	coll, ok := s.records[rec.Collection]
	if !ok {
		coll = make(map[string]vectorstore.Record)
		s.records[rec.Collection] = coll
	}
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = time.Now()
	}
	coll[rec.ID] = cloneRecord(rec)
	return nil
}

func (s *Store) Get(ctx context.Context, collection, id string) (*vectorstore.Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rec, ok := s.records[collection][id]
	if !ok {
		return nil, vectorstore.ErrRecordNotFound().
			WithDetail("collection", collection).
			WithDetail("id", id)
	}
	out := cloneRecord(rec)
	return &out, nil
}

func (s *Store) Delete(ctx context.Context, collection, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.records[collection], id)
	return nil
}

func (s *Store) Clear(ctx context.Context, collection string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.records, collection)
	return nil
}

func (s *Store) Count(ctx context.Context, collection string) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.records[collection]), nil
}

func (s *Store) Query(ctx context.Context, collection string, vector []float32, k int) ([]vectorstore.Match, error) {
	if err := ctx.Err(); err != nil {
		return nil, vectorstore.ErrQueryFailed().WithCause(err)
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	matches := make([]vectorstore.Match, 0, len(s.records[collection]))
	for _, rec := range s.records[collection] {
		if len(rec.Vector) != len(vector) {
			return nil, vectorstore.ErrQueryFailed().
				WithDetail("reason", "dimension mismatch").
				WithDetail("expected", len(rec.Vector)).
				WithDetail("got", len(vector))
		}
		matches = append(matches, vectorstore.Match{
			ID:       rec.ID,
			Text:     rec.Text,
			Metadata: cloneMetadata(rec.Metadata),
			Distance: CosineDistance(rec.Vector, vector),
		})
	}

	sort.Slice(matches, func(i, j int) bool {
		if matches[i].Distance == matches[j].Distance {
			return matches[i].ID < matches[j].ID
		}
		return matches[i].Distance < matches[j].Distance
	})

	if k > 0 && len(matches) > k {
		matches = matches[:k]
	}
	return matches, nil
}

func (s *Store) Close() error { return nil }

// CosineDistance is 1 - cosine similarity. Zero vectors are at distance 1.
func CosineDistance(a, b []float32) float64 {
	var dot, na, nb float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		na += float64(a[i]) * float64(a[i])
		nb += float64(b[i]) * float64(b[i])
	}
	if na == 0 || nb == 0 {
		return 1
	}
	return 1 - dot/(math.Sqrt(na)*math.Sqrt(nb))
}

func cloneRecord(rec vectorstore.Record) vectorstore.Record {
	vec := make([]float32, len(rec.Vector))
	copy(vec, rec.Vector)
	rec.Vector = vec
	rec.Metadata = cloneMetadata(rec.Metadata)
	return rec
}

func cloneMetadata(m vectorstore.Metadata) vectorstore.Metadata {
	out := make(vectorstore.Metadata, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}
