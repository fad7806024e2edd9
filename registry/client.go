// SPDX-FileCopyrightText: Copyright 2026 Personify Authors
// SPDX-License-Identifier: Apache-2.0

package registry

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/personify/personify-core/cache"
	"github.com/personify/personify-core/logger"
	"github.com/personify/personify-core/validation"
)

// DefaultBaseURL is the production registry API endpoint.
const DefaultBaseURL = "https://registry.personify.dev/api/v1"

// Cache TTLs: short for the index, long for slow-changing reference data.
const (
	IndexTTL      = 5 * time.Minute
	CategoriesTTL = time.Hour
)

// TokenSource supplies a bearer token for authenticated endpoints. A missing
// or expired token must fail before any network call is attempted.
type TokenSource interface {
	Token() (string, error)
}

// Client talks to the remote registry API.
type Client struct {
	baseURL  string
	doer     *retryingDoer
	tokens   TokenSource
	fallback *StaticSource

	indexCache      *cache.Cache[*Index]
	categoriesCache *cache.Cache[[]string]
}

// Option configures a Client.
type Option func(*Client)

// WithBaseURL overrides the registry API endpoint.
func WithBaseURL(u string) Option {
	return func(c *Client) { c.baseURL = strings.TrimSuffix(u, "/") }
}

// WithHTTPClient injects the underlying HTTP client, primarily for tests.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.doer.client = hc }
}

// WithTimeout overrides the per-request timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.doer.timeout = d }
}

// WithRetryPolicy overrides the attempt budget and the initial backoff delay.
func WithRetryPolicy(maxAttempts int, initialBackoff time.Duration) Option {
	return func(c *Client) {
		c.doer.maxAttempts = maxAttempts
		c.doer.initialBackoff = initialBackoff
	}
}

// WithTokenSource wires the credential store for authenticated endpoints.
func WithTokenSource(ts TokenSource) Option {
	return func(c *Client) { c.tokens = ts }
}

// WithFallback wires the secondary static source used when the primary is
// unreachable.
func WithFallback(fs *StaticSource) Option {
	return func(c *Client) { c.fallback = fs }
}

// WithClock injects the cache clock, for deterministic TTL tests.
func WithClock(now cache.Clock) Option {
	return func(c *Client) {
		c.indexCache = cache.New[*Index](now)
		c.categoriesCache = cache.New[[]string](now)
	}
}

// NewClient creates a registry client. The base URL must be a valid http(s)
// URL.
func NewClient(opts ...Option) (*Client, error) {
	c := &Client{
		baseURL:         DefaultBaseURL,
		doer:            newRetryingDoer(nil),
		indexCache:      cache.New[*Index](nil),
		categoriesCache: cache.New[[]string](nil),
	}
	for _, opt := range opts {
		opt(c)
	}

	if err := validation.ValidateBaseURL(c.baseURL); err != nil {
		return nil, fmt.Errorf("invalid registry base URL: %w", err)
	}
	return c, nil
}

// Index fetches the full registry index, cached for IndexTTL.
func (c *Client) Index(ctx context.Context) (*Index, error) {
	key := "registry:" + c.baseURL
	if idx, ok := c.indexCache.Get(key); ok {
		return idx, nil
	}

	data, err := c.doer.do(ctx, http.MethodGet, c.endpoint("index"), nil, nil)
	if err != nil {
		return nil, err
	}

	var idx Index
	if err := json.Unmarshal(data, &idx); err != nil {
		return nil, fmt.Errorf("parsing registry index: %w", err)
	}
	c.indexCache.Set(key, &idx, IndexTTL)
	return &idx, nil
}

// Lookup resolves a single persona by registry name without scanning the
// full index. A definitive 404 from the primary is trusted and returned as
// ErrNotFound. Any other failure falls back to the static index when one is
// configured.
func (c *Client) Lookup(ctx context.Context, name string) (*IndexEntry, error) {
	data, err := c.doer.do(ctx, http.MethodGet, c.endpoint("personas", name), nil, nil)
	if err == nil {
		var entry IndexEntry
		if jerr := json.Unmarshal(data, &entry); jerr != nil {
			return nil, fmt.Errorf("parsing persona entry: %w", jerr)
		}
		return &entry, nil
	}

	if errors.Is(err, ErrNotFound) || c.fallback == nil {
		return nil, err
	}

	logger.Warnw("primary registry lookup failed, trying fallback index",
		"name", name, "error", err)

	idx, ferr := c.fallback.Index(ctx)
	if ferr != nil {
		// Surface the primary failure; the fallback miss is secondary.
		return nil, err
	}
	entry, ok := idx.Personas[name]
	if !ok {
		return nil, err
	}
	return &entry, nil
}

// FetchVersion retrieves the content of one published version.
func (c *Client) FetchVersion(ctx context.Context, name, version string) (*ArtifactResponse, error) {
	data, err := c.doer.do(ctx, http.MethodGet, c.endpoint("personas", name, "versions", version), nil, nil)
	if err != nil {
		return nil, err
	}
	return parseArtifactResponse(data)
}

// LookupByDigest retrieves an artifact by a prefix of its content digest.
func (c *Client) LookupByDigest(ctx context.Context, digest string) (*ArtifactResponse, error) {
	data, err := c.doer.do(ctx, http.MethodGet, c.endpoint("personas", "by-digest", digest), nil, nil)
	if err != nil {
		return nil, err
	}
	return parseArtifactResponse(data)
}

// Search queries the registry full-text search endpoint.
func (c *Client) Search(ctx context.Context, query string) ([]SearchResult, error) {
	u := c.endpoint("search") + "?q=" + url.QueryEscape(query)
	data, err := c.doer.do(ctx, http.MethodGet, u, nil, nil)
	if err != nil {
		return nil, err
	}

	var payload struct {
		Results []SearchResult `json:"results"`
	}
	if err := json.Unmarshal(data, &payload); err != nil {
		return nil, fmt.Errorf("parsing search results: %w", err)
	}
	return payload.Results, nil
}

// Categories fetches the category list, cached for CategoriesTTL.
func (c *Client) Categories(ctx context.Context) ([]string, error) {
	key := "categories:" + c.baseURL
	if cats, ok := c.categoriesCache.Get(key); ok {
		return cats, nil
	}

	data, err := c.doer.do(ctx, http.MethodGet, c.endpoint("categories"), nil, nil)
	if err != nil {
		return nil, err
	}

	var payload struct {
		Categories []string `json:"categories"`
	}
	if err := json.Unmarshal(data, &payload); err != nil {
		return nil, fmt.Errorf("parsing categories: %w", err)
	}
	c.categoriesCache.Set(key, payload.Categories, CategoriesTTL)
	return payload.Categories, nil
}

// Publish uploads artifact content to the registry. It requires a bearer
// token; a missing token fails with ErrUnauthorized before any network call.
func (c *Client) Publish(ctx context.Context, content []byte) (*PublishResponse, error) {
	header, err := c.authHeader()
	if err != nil {
		return nil, err
	}

	data, err := c.doer.do(ctx, http.MethodPost, c.endpoint("personas"), content, header)
	if err != nil {
		return nil, err
	}

	var resp PublishResponse
	if err := json.Unmarshal(data, &resp); err != nil {
		return nil, fmt.Errorf("parsing publish response: %w", err)
	}
	return &resp, nil
}

// ClearCache drops every cached entry, including the fallback source's.
func (c *Client) ClearCache() {
	c.indexCache.Clear()
	c.categoriesCache.Clear()
	if c.fallback != nil {
		c.fallback.ClearCache()
	}
}

func (c *Client) authHeader() (http.Header, error) {
	if c.tokens == nil {
		return nil, fmt.Errorf("%w: no credential store configured", ErrUnauthorized)
	}
	token, err := c.tokens.Token()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnauthorized, err)
	}
	if err := validation.ValidateHeaderValue(token); err != nil {
		return nil, fmt.Errorf("%w: malformed token", ErrUnauthorized)
	}

	header := make(http.Header)
	header.Set("Authorization", "Bearer "+token)
	return header, nil
}

// endpoint joins the base URL with escaped path segments. Registry names may
// contain "/" (publisher namespaces), which must survive as part of a single
// segment.
func (c *Client) endpoint(segments ...string) string {
	parts := make([]string, 0, len(segments))
	for _, s := range segments {
		parts = append(parts, url.PathEscape(s))
	}
	return c.baseURL + "/" + strings.Join(parts, "/")
}

func parseArtifactResponse(data []byte) (*ArtifactResponse, error) {
	var resp ArtifactResponse
	if err := json.Unmarshal(data, &resp); err != nil {
		return nil, fmt.Errorf("parsing artifact response: %w", err)
	}
	if len(resp.Content) == 0 {
		return nil, fmt.Errorf("artifact response has no content")
	}
	return &resp, nil
}
