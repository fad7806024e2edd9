// SPDX-FileCopyrightText: Copyright 2026 Personify Authors
// SPDX-License-Identifier: Apache-2.0

package registry

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/personify/personify-core/cache"
)

// DefaultFallbackURL is the static index document consulted when the primary
// registry is unreachable. It has the same shape as the primary index.
const DefaultFallbackURL = "https://raw.githubusercontent.com/personify/registry/main/index.json"

// StaticSource fetches the fallback index: a single static document with the
// same index shape as the primary API.
type StaticSource struct {
	url        string
	doer       *retryingDoer
	indexCache *cache.Cache[*Index]
}

// StaticOption configures a StaticSource.
type StaticOption func(*StaticSource)

// WithStaticURL overrides the fallback document URL.
func WithStaticURL(u string) StaticOption {
	return func(s *StaticSource) { s.url = strings.TrimSuffix(u, "/") }
}

// WithStaticHTTPClient injects the underlying HTTP client.
func WithStaticHTTPClient(hc *http.Client) StaticOption {
	return func(s *StaticSource) { s.doer.client = hc }
}

// WithStaticClock injects the cache clock.
func WithStaticClock(now cache.Clock) StaticOption {
	return func(s *StaticSource) { s.indexCache = cache.New[*Index](now) }
}

// NewStaticSource creates a fallback source for the given document URL.
func NewStaticSource(opts ...StaticOption) *StaticSource {
	s := &StaticSource{
		url:        DefaultFallbackURL,
		doer:       newRetryingDoer(nil),
		indexCache: cache.New[*Index](nil),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Index fetches and parses the fallback index document, cached for IndexTTL.
func (s *StaticSource) Index(ctx context.Context) (*Index, error) {
	key := "fallback:" + s.url
	if idx, ok := s.indexCache.Get(key); ok {
		return idx, nil
	}

	data, err := s.doer.do(ctx, http.MethodGet, s.url, nil, nil)
	if err != nil {
		return nil, err
	}

	var idx Index
	if err := json.Unmarshal(data, &idx); err != nil {
		return nil, fmt.Errorf("parsing fallback index: %w", err)
	}
	s.indexCache.Set(key, &idx, IndexTTL)
	return &idx, nil
}

// ClearCache drops the cached fallback index.
func (s *StaticSource) ClearCache() {
	s.indexCache.Clear()
}
