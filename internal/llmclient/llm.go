package llmclient

import (
	"context"
	"errors"
)

// ErrNoCompletion indicates the provider answered without any usable text.
var ErrNoCompletion = errors.New("empty completion from LLM")

// Client is a minimal chat client: one system instruction, one user
// message, one text answer. Cross-cutting concerns (caching, logging)
// live in the layers above.
type Client interface {
	Name() string
	Complete(ctx context.Context, system, user string) (string, error)
	Close() error
}
