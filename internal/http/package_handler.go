package http

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/musfiqshanta/launchmybiz-backend/internal/cache"
)

// QuoteProvider looks up a formation package quote from the partner API.
type QuoteProvider interface {
	GetPackage(ctx context.Context, entityType, state, filing string) (json.RawMessage, error)
}

type PackageHandler struct {
	partner QuoteProvider
	cache   cache.QuoteCache
	logger  *slog.Logger
	timeout time.Duration
	sfg     singleflight.Group // Collapses concurrent identical lookups
}

func NewPackageHandler(partner QuoteProvider, quoteCache cache.QuoteCache, logger *slog.Logger, timeout time.Duration) *PackageHandler {
	return &PackageHandler{
		partner: partner,
		cache:   quoteCache,
		logger:  logger,
		timeout: timeout,
	}
}

// GET /api/business-formation-package?entityType=LLC&state=NY&filing=standard
func (h *PackageHandler) GetPackage(w http.ResponseWriter, r *http.Request) {
	entityType := r.URL.Query().Get("entityType")
	state := r.URL.Query().Get("state")
	filing := r.URL.Query().Get("filing")
	if entityType == "" || state == "" || filing == "" {
		respondError(w, http.StatusBadRequest, "missing_parameters",
			"Missing required parameters. Please provide entityType, state, and filing.")
		return
	}

	key := fmt.Sprintf("%s:%s:%s", entityType, state, filing)
	v, err, _ := h.sfg.Do(key, func() (interface{}, error) {
		// The fetch is shared across collapsed callers, so it must not die
		// with whichever request happened to start it.
		ctx, cancel := context.WithTimeout(context.WithoutCancel(r.Context()), h.timeout)
		defer cancel()

		payload, err := h.cache.Get(ctx, entityType, state, filing)
		if err == nil {
			return payload, nil
		}
		if !errors.Is(err, cache.ErrCacheMiss) {
			h.logger.Warn("quote cache get failed", "key", key, "error", err)
		}

		payload, err = h.partner.GetPackage(ctx, entityType, state, filing)
		if err != nil {
			return nil, err
		}

		go func() {
			if err := h.cache.Set(context.Background(), entityType, state, filing, payload); err != nil {
				h.logger.Warn("quote cache set failed", "key", key, "error", err)
			}
		}()

		return payload, nil
	})
	if err != nil {
		h.logger.Error("package quote lookup failed", "key", key, "error", err)
		respondError(w, http.StatusInternalServerError, "quote_failed",
			"Failed to fetch business formation package")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write(v.(json.RawMessage))
}
