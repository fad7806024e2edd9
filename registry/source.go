// SPDX-FileCopyrightText: Copyright 2026 Personify Authors
// SPDX-License-Identifier: Apache-2.0

package registry

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
)

// DefaultSourceBaseURL serves raw files from hosted source trees.
const DefaultSourceBaseURL = "https://raw.githubusercontent.com"

// SourceFetcher retrieves individual files from a hosted source tree at a
// given ref. It shares the registry retry/backoff policy; a 404 on a file is
// non-fatal so callers can fall through an ordered candidate list.
type SourceFetcher struct {
	baseURL string
	doer    *retryingDoer
}

// SourceOption configures a SourceFetcher.
type SourceOption func(*SourceFetcher)

// WithSourceBaseURL overrides the raw source endpoint.
func WithSourceBaseURL(u string) SourceOption {
	return func(f *SourceFetcher) { f.baseURL = strings.TrimSuffix(u, "/") }
}

// WithSourceHTTPClient injects the underlying HTTP client.
func WithSourceHTTPClient(hc *http.Client) SourceOption {
	return func(f *SourceFetcher) { f.doer.client = hc }
}

// NewSourceFetcher creates a fetcher for raw source files.
func NewSourceFetcher(opts ...SourceOption) *SourceFetcher {
	f := &SourceFetcher{
		baseURL: DefaultSourceBaseURL,
		doer:    newRetryingDoer(nil),
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// FetchFile retrieves owner/repo/ref/filename. The boolean reports whether
// the file exists: (nil, false, nil) means a clean 404, which callers treat
// as "try the next candidate". Other failures are fatal for the specifier.
func (f *SourceFetcher) FetchFile(ctx context.Context, owner, repo, ref, filename string) ([]byte, bool, error) {
	u := fmt.Sprintf("%s/%s/%s/%s/%s",
		f.baseURL,
		url.PathEscape(owner),
		url.PathEscape(repo),
		escapeRefPath(ref),
		url.PathEscape(filename),
	)

	data, err := f.doer.do(ctx, http.MethodGet, u, nil, nil)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, false, nil
		}
		return nil, false, err
	}
	return data, true, nil
}

// escapeRefPath escapes a ref segment-wise: refs like "feature/alaric" are
// real paths on the raw host, so the "/" separators must survive.
func escapeRefPath(ref string) string {
	segments := strings.Split(ref, "/")
	for i, s := range segments {
		segments[i] = url.PathEscape(s)
	}
	return strings.Join(segments, "/")
}
