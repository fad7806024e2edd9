// SPDX-FileCopyrightText: Copyright 2026 Personify Authors
// SPDX-License-Identifier: Apache-2.0

package registry

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/cenkalti/backoff/v5"

	"github.com/personify/personify-core/logger"
)

// Request policy defaults shared by the API client, the fallback source,
// and the raw source fetcher.
const (
	// DefaultTimeout is the upper bound for a single request. Exceeding it
	// counts as a network-level failure eligible for retry.
	DefaultTimeout = 10 * time.Second

	// DefaultMaxAttempts is the total attempt budget (1 initial + retries).
	DefaultMaxAttempts = 4

	// DefaultInitialBackoff is the delay before the first retry; each
	// subsequent delay doubles.
	DefaultInitialBackoff = 500 * time.Millisecond

	// maxResponseBytes bounds how much of any response body is read.
	maxResponseBytes = 8 << 20
)

// retryingDoer issues HTTP requests with timeout, retry, and backoff policy.
type retryingDoer struct {
	client         *http.Client
	timeout        time.Duration
	maxAttempts    int
	initialBackoff time.Duration
}

func newRetryingDoer(client *http.Client) *retryingDoer {
	if client == nil {
		client = http.DefaultClient
	}
	return &retryingDoer{
		client:         client,
		timeout:        DefaultTimeout,
		maxAttempts:    DefaultMaxAttempts,
		initialBackoff: DefaultInitialBackoff,
	}
}

// do issues one logical request, retrying on 5xx, 429, and network-level
// failures. Non-retryable statuses convert to *APIError immediately; an
// exhausted budget surfaces as *NetworkError wrapping the final failure.
func (d *retryingDoer) do(ctx context.Context, method, url string, body []byte, header http.Header) ([]byte, error) {
	attempts := 0

	operation := func() ([]byte, error) {
		attempts++
		if attempts > 1 {
			logger.Debugw("retrying registry request", "method", method, "url", url, "attempt", attempts)
		}

		data, err := d.doOnce(ctx, method, url, body, header)
		if err == nil {
			return data, nil
		}

		var apiErr *APIError
		if errors.As(err, &apiErr) && !apiErr.Retryable() {
			return nil, backoff.Permanent(err)
		}
		return nil, err
	}

	bo := backoff.NewExponentialBackOff()
	bo.InitialInterval = d.initialBackoff
	bo.Multiplier = 2
	bo.RandomizationFactor = 0

	data, err := backoff.Retry(ctx, operation,
		backoff.WithBackOff(bo),
		backoff.WithMaxTries(uint(d.maxAttempts)),
	)
	if err == nil {
		return data, nil
	}

	var apiErr *APIError
	if errors.As(err, &apiErr) && !apiErr.Retryable() {
		return nil, err
	}
	return nil, &NetworkError{Attempts: attempts, Err: err}
}

func (d *retryingDoer) doOnce(ctx context.Context, method, url string, body []byte, header http.Header) ([]byte, error) {
	reqCtx, cancel := context.WithTimeout(ctx, d.timeout)
	defer cancel()

	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}

	req, err := http.NewRequestWithContext(reqCtx, method, url, reader)
	if err != nil {
		return nil, backoff.Permanent(fmt.Errorf("building request: %w", err))
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for k, vs := range header {
		for _, v := range vs {
			req.Header.Set(k, v)
		}
	}

	resp, err := d.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, fmt.Errorf("reading response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, parseAPIError(resp.StatusCode, data)
	}
	return data, nil
}
