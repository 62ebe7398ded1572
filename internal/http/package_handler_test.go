package http

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/musfiqshanta/launchmybiz-backend/internal/cache"
)

type fakeQuoteProvider struct {
	mu      sync.Mutex
	payload json.RawMessage
	err     error
	calls   int
	ctxErr  error
}

func (f *fakeQuoteProvider) GetPackage(ctx context.Context, _, _, _ string) (json.RawMessage, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	f.ctxErr = ctx.Err()
	return f.payload, f.err
}

type fakeQuoteCache struct {
	mu    sync.Mutex
	store map[string]json.RawMessage
}

func newFakeQuoteCache() *fakeQuoteCache {
	return &fakeQuoteCache{store: map[string]json.RawMessage{}}
}

func (f *fakeQuoteCache) key(entityType, state, filing string) string {
	return entityType + ":" + state + ":" + filing
}

func (f *fakeQuoteCache) Get(_ context.Context, entityType, state, filing string) (json.RawMessage, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	payload, ok := f.store[f.key(entityType, state, filing)]
	if !ok {
		return nil, cache.ErrCacheMiss
	}
	return payload, nil
}

func (f *fakeQuoteCache) Set(_ context.Context, entityType, state, filing string, payload json.RawMessage) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.store[f.key(entityType, state, filing)] = payload
	return nil
}

func quoteRequest(query string) *http.Request {
	return httptest.NewRequest(http.MethodGet, "/api/business-formation-package"+query, nil)
}

func TestGetPackage_MissingParameters(t *testing.T) {
	h := NewPackageHandler(&fakeQuoteProvider{}, newFakeQuoteCache(), slog.New(slog.DiscardHandler), 5*time.Second)

	rec := httptest.NewRecorder()
	h.GetPackage(rec, quoteRequest("?entityType=LLC&state=TX"))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "missing_parameters")
}

func TestGetPackage_PartnerLookup(t *testing.T) {
	provider := &fakeQuoteProvider{payload: json.RawMessage(`{"packages":[{"id":"basic"}]}`)}
	h := NewPackageHandler(provider, newFakeQuoteCache(), slog.New(slog.DiscardHandler), 5*time.Second)

	rec := httptest.NewRecorder()
	h.GetPackage(rec, quoteRequest("?entityType=LLC&state=TX&filing=standard"))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"packages":[{"id":"basic"}]}`, rec.Body.String())
	assert.Equal(t, 1, provider.calls)
}

func TestGetPackage_CacheHitSkipsPartner(t *testing.T) {
	provider := &fakeQuoteProvider{}
	quoteCache := newFakeQuoteCache()
	quoteCache.Set(context.Background(), "LLC", "TX", "standard", json.RawMessage(`{"cached":true}`))

	h := NewPackageHandler(provider, quoteCache, slog.New(slog.DiscardHandler), 5*time.Second)

	rec := httptest.NewRecorder()
	h.GetPackage(rec, quoteRequest("?entityType=LLC&state=TX&filing=standard"))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"cached":true}`, rec.Body.String())
	assert.Zero(t, provider.calls)
}

func TestGetPackage_CanceledCallerDoesNotPoisonFetch(t *testing.T) {
	provider := &fakeQuoteProvider{payload: json.RawMessage(`{"packages":[]}`)}
	h := NewPackageHandler(provider, newFakeQuoteCache(), slog.New(slog.DiscardHandler), 5*time.Second)

	// The fetch is shared across collapsed callers, so the first caller's
	// cancellation must not reach the partner call.
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	req := quoteRequest("?entityType=LLC&state=TX&filing=standard").WithContext(ctx)

	rec := httptest.NewRecorder()
	h.GetPackage(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 1, provider.calls)
	assert.NoError(t, provider.ctxErr)
}

func TestGetPackage_PartnerError(t *testing.T) {
	provider := &fakeQuoteProvider{err: errors.New("corpnet down")}
	h := NewPackageHandler(provider, newFakeQuoteCache(), slog.New(slog.DiscardHandler), 5*time.Second)

	rec := httptest.NewRecorder()
	h.GetPackage(rec, quoteRequest("?entityType=LLC&state=TX&filing=standard"))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, rec.Body.String(), "quote_failed")
}
