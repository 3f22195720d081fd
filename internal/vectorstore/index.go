package vectorstore

import (
	"context"
	"strings"

	"github.com/Abraxas-365/peoplehub/internal/resilience"
	"github.com/Abraxas-365/peoplehub/pkg/errx"
	"github.com/Abraxas-365/peoplehub/pkg/logx"
)

const DefaultTopK = 5

// Index embeds text and keeps it in a Store
type Index struct {
	embedder Embedder
	store    Store
	executor *resilience.Executor
}

func NewIndex(embedder Embedder, store Store, executor *resilience.Executor) *Index {
	if executor == nil {
		executor = resilience.NewExecutor("vector_store", resilience.DefaultPolicy())
	}
	return &Index{embedder: embedder, store: store, executor: executor}
}

// Add embeds text and inserts it. An existing record gives ErrRecordExists.
func (i *Index) Add(ctx context.Context, collection, id, text string, metadata Metadata) error {
	rec, err := i.prepare(ctx, collection, id, text, metadata)
	if err != nil {
		return err
	}

	if _, err := i.Get(ctx, collection, id); err == nil {
		return ErrRecordExists().
			WithDetail("collection", collection).
			WithDetail("id", id)
	} else if !errx.IsCode(err, CodeRecordNotFound) {
		return err
	}

	return i.upsert(ctx, rec)
}

// Replace embeds text and swaps it in for any existing record with the same id.
// The embedding is computed before the store is touched.
func (i *Index) Replace(ctx context.Context, collection, id, text string, metadata Metadata) error {
	rec, err := i.prepare(ctx, collection, id, text, metadata)
	if err != nil {
		return err
	}
	return i.upsert(ctx, rec)
}

// Search embeds text and returns the k nearest records
func (i *Index) Search(ctx context.Context, collection, text string, k int) ([]Match, error) {
	if strings.TrimSpace(text) == "" {
		return nil, ErrInvalidRecord().WithDetail("reason", "query text is required")
	}
	vector, err := i.embed(ctx, text)
	if err != nil {
		return nil, err
	}
	return i.SearchVector(ctx, collection, vector, k)
}

// SearchVector returns the k nearest records to vector
func (i *Index) SearchVector(ctx context.Context, collection string, vector []float32, k int) ([]Match, error) {
	if k <= 0 {
		k = DefaultTopK
	}
	matches, err := resilience.DoValue(ctx, i.executor, func(ctx context.Context) ([]Match, error) {
		m, err := i.store.Query(ctx, collection, vector, k)
		return m, permanentUnlessFailure(err)
	})
	if err != nil {
		return nil, err
	}
	if matches == nil {
		matches = []Match{}
	}
	return matches, nil
}

func (i *Index) Get(ctx context.Context, collection, id string) (*Record, error) {
	return resilience.DoValue(ctx, i.executor, func(ctx context.Context) (*Record, error) {
		rec, err := i.store.Get(ctx, collection, id)
		return rec, permanentUnlessFailure(err)
	})
}

func (i *Index) Remove(ctx context.Context, collection, id string) error {
	return i.executor.Do(ctx, func(ctx context.Context) error {
		return permanentUnlessFailure(i.store.Delete(ctx, collection, id))
	})
}

func (i *Index) Clear(ctx context.Context, collection string) error {
	return i.executor.Do(ctx, func(ctx context.Context) error {
		return permanentUnlessFailure(i.store.Clear(ctx, collection))
	})
}

func (i *Index) Count(ctx context.Context, collection string) (int, error) {
	return resilience.DoValue(ctx, i.executor, func(ctx context.Context) (int, error) {
		n, err := i.store.Count(ctx, collection)
		return n, permanentUnlessFailure(err)
	})
}

func (i *Index) prepare(ctx context.Context, collection, id, text string, metadata Metadata) (Record, error) {
	if strings.TrimSpace(text) == "" {
		return Record{}, ErrInvalidRecord().WithDetail("reason", "text is required")
	}
	if err := ValidateMetadata(metadata); err != nil {
		return Record{}, err
	}

	vector, err := i.embed(ctx, text)
	if err != nil {
		return Record{}, err
	}

	rec := Record{
		Collection: collection,
		ID:         id,
		Text:       text,
		Vector:     vector,
		Metadata:   metadata,
	}
	if err := ValidateRecord(rec); err != nil {
		return Record{}, err
	}
	return rec, nil
}

func (i *Index) embed(ctx context.Context, text string) ([]float32, error) {
	v, err := resilience.DoValue(ctx, i.executor, func(ctx context.Context) ([]float32, error) {
		v, err := i.embedder.Embed(ctx, text)
		if err != nil && errx.IsType(err, errx.TypeValidation) {
			return nil, resilience.Permanent(err)
		}
		return v, err
	})
	if err != nil && !errx.IsType(err, errx.TypeValidation) {
		return nil, ErrRegistry.NewWithCause(CodeEmbedFailed, err)
	}
	return v, err
}

func (i *Index) upsert(ctx context.Context, rec Record) error {
	logx.Debugf("vector upsert %s/%s: %s", rec.Collection, rec.ID, logx.Truncate(rec.Text, 80))
	return i.executor.Do(ctx, func(ctx context.Context) error {
		return permanentUnlessFailure(i.store.Upsert(ctx, rec))
	})
}

// permanentUnlessFailure lets only backend failures be retried
func permanentUnlessFailure(err error) error {
	if err == nil {
		return nil
	}
	if errx.IsCode(err, CodeInvalidMetadata) || !IsFailure(err) {
		return resilience.Permanent(err)
	}
	return err
}
