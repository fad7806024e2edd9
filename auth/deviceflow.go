// SPDX-FileCopyrightText: Copyright 2026 Personify Authors
// SPDX-License-Identifier: Apache-2.0

package auth

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/personify/personify-core/logger"
)

// Device flow error codes per RFC 8628.
const (
	codeAuthorizationPending = "authorization_pending"
	codeSlowDown             = "slow_down"
	codeExpiredToken         = "expired_token"
	codeAccessDenied         = "access_denied"
)

// DeviceAuthorization is the server's response to starting a device flow.
type DeviceAuthorization struct {
	DeviceCode      string `json:"device_code"`
	UserCode        string `json:"user_code"`
	VerificationURI string `json:"verification_uri"`
	// ExpiresIn is the authorization lifetime in seconds.
	ExpiresIn int `json:"expires_in"`
	// Interval is the minimum polling interval in seconds.
	Interval int `json:"interval"`
}

// DeviceFlow drives the device-authorization login against the registry's
// auth endpoints.
type DeviceFlow struct {
	baseURL string
	client  *http.Client
	now     func() time.Time
	sleep   func(ctx context.Context, d time.Duration) error
}

// FlowOption configures a DeviceFlow.
type FlowOption func(*DeviceFlow)

// WithFlowHTTPClient injects the HTTP client.
func WithFlowHTTPClient(hc *http.Client) FlowOption {
	return func(f *DeviceFlow) { f.client = hc }
}

// WithFlowClock injects the clock used for the expiry deadline.
func WithFlowClock(now func() time.Time) FlowOption {
	return func(f *DeviceFlow) { f.now = now }
}

// WithFlowSleep injects the wait function between polls, for tests.
func WithFlowSleep(sleep func(ctx context.Context, d time.Duration) error) FlowOption {
	return func(f *DeviceFlow) { f.sleep = sleep }
}

// NewDeviceFlow creates a device flow against the registry API base URL; the
// device endpoints live under it.
func NewDeviceFlow(baseURL string, opts ...FlowOption) *DeviceFlow {
	f := &DeviceFlow{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		client:  http.DefaultClient,
		now:     time.Now,
		sleep:   sleepContext,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Start requests a device authorization: a user code to display and a device
// code to poll with.
func (f *DeviceFlow) Start(ctx context.Context) (*DeviceAuthorization, error) {
	data, err := f.post(ctx, "/device/code", nil)
	if err != nil {
		return nil, fmt.Errorf("starting device authorization: %w", err)
	}

	var da DeviceAuthorization
	if err := json.Unmarshal(data, &da); err != nil {
		return nil, fmt.Errorf("parsing device authorization: %w", err)
	}
	if da.Interval <= 0 {
		da.Interval = 5
	}
	return &da, nil
}

// Poll waits for the user to approve the authorization. It polls at the
// server's interval, doubles the interval on a slow_down signal, and stops
// at the absolute expiry deadline.
func (f *DeviceFlow) Poll(ctx context.Context, da *DeviceAuthorization) (*Credentials, error) {
	deadline := f.now().Add(time.Duration(da.ExpiresIn) * time.Second)
	interval := time.Duration(da.Interval) * time.Second

	for {
		if !f.now().Before(deadline) {
			return nil, ErrDeviceFlowExpired
		}
		if err := f.sleep(ctx, interval); err != nil {
			return nil, err
		}

		body, err := json.Marshal(map[string]string{"device_code": da.DeviceCode})
		if err != nil {
			return nil, err
		}
		data, err := f.post(ctx, "/device/token", body)
		if err != nil {
			return nil, fmt.Errorf("polling for token: %w", err)
		}

		var resp struct {
			Error     string `json:"error"`
			Token     string `json:"token"`
			ExpiresIn int    `json:"expires_in"`
			Handle    string `json:"handle"`
		}
		if err := json.Unmarshal(data, &resp); err != nil {
			return nil, fmt.Errorf("parsing token response: %w", err)
		}

		switch resp.Error {
		case "":
			creds := &Credentials{Token: resp.Token, Handle: resp.Handle}
			if resp.ExpiresIn > 0 {
				creds.ExpiresAt = f.now().Add(time.Duration(resp.ExpiresIn) * time.Second)
			}
			return creds, nil
		case codeAuthorizationPending:
			continue
		case codeSlowDown:
			interval *= 2
			logger.Debugw("authorization server requested slower polling", "interval", interval)
		case codeExpiredToken:
			return nil, ErrDeviceFlowExpired
		case codeAccessDenied:
			return nil, ErrAccessDenied
		default:
			return nil, fmt.Errorf("device flow failed: %s", resp.Error)
		}
	}
}

func (f *DeviceFlow) post(ctx context.Context, path string, body []byte) ([]byte, error) {
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, f.baseURL+path, reader)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()

	data, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, err
	}
	// Device token endpoints report pending/slow_down states with error
	// bodies on 4xx; those are part of the protocol, not failures.
	if resp.StatusCode >= 500 {
		return nil, fmt.Errorf("auth server error: %s", resp.Status)
	}
	return data, nil
}

func sleepContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
