package embeddings

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"time"

	"github.com/patrickmn/go-cache"
)

// Embedder is anything that turns text into a vector
type Embedder interface {
	Embed(ctx context.Context, text string) ([]float32, error)
}

// CachedEmbedder memoises embeddings by model and text
type CachedEmbedder struct {
	next  Embedder
	model string
	cache *cache.Cache
}

// NewCachedEmbedder wraps next. Entries expire after ttl and expired entries
// are purged every 2*ttl.
func NewCachedEmbedder(next Embedder, model string, ttl time.Duration) *CachedEmbedder {
	if ttl <= 0 {
		ttl = time.Hour
	}
	return &CachedEmbedder{
		next:  next,
		model: model,
		cache: cache.New(ttl, 2*ttl),
	}
}

func (c *CachedEmbedder) Embed(ctx context.Context, text string) ([]float32, error) {
	key := c.key(text)
	if x, found := c.cache.Get(key); found {
		return cloneVector(x.([]float32)), nil
	}

	v, err := c.next.Embed(ctx, text)
	if err != nil {
		return nil, err
	}

	c.cache.Set(key, cloneVector(v), cache.DefaultExpiration)
	return v, nil
}

// Len returns the number of cached vectors
func (c *CachedEmbedder) Len() int {
	return c.cache.ItemCount()
}

func (c *CachedEmbedder) key(text string) string {
	sum := sha256.Sum256([]byte(c.model + "\x00" + text))
	return hex.EncodeToString(sum[:])
}

func cloneVector(v []float32) []float32 {
	out := make([]float32, len(v))
	copy(out, v)
	return out
}
