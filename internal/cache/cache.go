package cache

import (
	"context"
	"encoding/json"
	"errors"
)

// QuoteCache caches CorpNet package-quote payloads keyed by the lookup
// parameters.
type QuoteCache interface {
	Get(ctx context.Context, entityType, state, filing string) (json.RawMessage, error)
	Set(ctx context.Context, entityType, state, filing string, payload json.RawMessage) error
}

var ErrCacheMiss = errors.New("cache miss")
