package summarizer

import (
	"context"

	lru "github.com/hashicorp/golang-lru/v2"
)

const DefaultCacheSize = 512

// Cached memoizes summaries by description, so repeated submissions of
// the same text reuse the model's previous answer instead of paying for
// another call. Errors are never cached.
type Cached struct {
	inner Summarizer
	cache *lru.Cache[string, string]
}

func NewCached(inner Summarizer, size int) (*Cached, error) {
	if size <= 0 {
		size = DefaultCacheSize
	}
	cache, err := lru.New[string, string](size)
	if err != nil {
		return nil, err
	}
	return &Cached{inner: inner, cache: cache}, nil
}

func (c *Cached) Summarize(ctx context.Context, description string) (string, error) {
	if cached, ok := c.cache.Get(description); ok {
		return cached, nil
	}
	out, err := c.inner.Summarize(ctx, description)
	if err != nil {
		return "", err
	}
	c.cache.Add(description, out)
	return out, nil
}
