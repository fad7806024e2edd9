// SPDX-FileCopyrightText: Copyright 2026 Personify Authors
// SPDX-License-Identifier: Apache-2.0

package auth

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// pollServer serves a scripted sequence of device token responses.
func pollServer(t *testing.T, responses []map[string]any) *httptest.Server {
	t.Helper()

	i := 0
	mux := http.NewServeMux()
	mux.HandleFunc("/device/code", func(w http.ResponseWriter, _ *http.Request) {
		_ = json.NewEncoder(w).Encode(DeviceAuthorization{
			DeviceCode:      "dev_123",
			UserCode:        "ABCD-EFGH",
			VerificationURI: "https://registry.personify.dev/activate",
			ExpiresIn:       600,
			Interval:        1,
		})
	})
	mux.HandleFunc("/device/token", func(w http.ResponseWriter, _ *http.Request) {
		resp := responses[i]
		if i < len(responses)-1 {
			i++
		}
		if errCode, ok := resp["error"].(string); ok && errCode != "" {
			w.WriteHeader(http.StatusBadRequest)
		}
		_ = json.NewEncoder(w).Encode(resp)
	})

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func newTestFlow(t *testing.T, srv *httptest.Server, slept *[]time.Duration) *DeviceFlow {
	t.Helper()

	now := time.Date(2026, 8, 26, 12, 0, 0, 0, time.UTC)
	return NewDeviceFlow(srv.URL,
		WithFlowClock(func() time.Time { return now }),
		WithFlowSleep(func(_ context.Context, d time.Duration) error {
			*slept = append(*slept, d)
			return nil
		}),
	)
}

func TestDeviceFlowApproved(t *testing.T) {
	t.Parallel()

	srv := pollServer(t, []map[string]any{
		{"error": "authorization_pending"},
		{"error": "authorization_pending"},
		{"token": "tok_abc", "expires_in": 3600, "handle": "morphist"},
	})

	var slept []time.Duration
	flow := newTestFlow(t, srv, &slept)

	da, err := flow.Start(context.Background())
	require.NoError(t, err)
	require.Equal(t, "ABCD-EFGH", da.UserCode)

	creds, err := flow.Poll(context.Background(), da)
	require.NoError(t, err)
	require.Equal(t, "tok_abc", creds.Token)
	require.Equal(t, "morphist", creds.Handle)
	require.False(t, creds.ExpiresAt.IsZero())

	// Fixed cadence: one wait per poll at the server interval.
	require.Equal(t, []time.Duration{time.Second, time.Second, time.Second}, slept)
}

func TestDeviceFlowSlowDownDoublesInterval(t *testing.T) {
	t.Parallel()

	srv := pollServer(t, []map[string]any{
		{"error": "slow_down"},
		{"error": "slow_down"},
		{"token": "tok_abc"},
	})

	var slept []time.Duration
	flow := newTestFlow(t, srv, &slept)

	da, err := flow.Start(context.Background())
	require.NoError(t, err)

	_, err = flow.Poll(context.Background(), da)
	require.NoError(t, err)

	require.Equal(t, []time.Duration{time.Second, 2 * time.Second, 4 * time.Second}, slept)
}

func TestDeviceFlowExpiry(t *testing.T) {
	t.Parallel()

	srv := pollServer(t, []map[string]any{
		{"error": "authorization_pending"},
	})

	now := time.Date(2026, 8, 26, 12, 0, 0, 0, time.UTC)
	flow := NewDeviceFlow(srv.URL,
		WithFlowClock(func() time.Time {
			// Each call advances well past the deadline.
			now = now.Add(10 * time.Minute)
			return now
		}),
		WithFlowSleep(func(context.Context, time.Duration) error { return nil }),
	)

	da, err := flow.Start(context.Background())
	require.NoError(t, err)

	_, err = flow.Poll(context.Background(), da)
	require.ErrorIs(t, err, ErrDeviceFlowExpired)
}

func TestDeviceFlowAccessDenied(t *testing.T) {
	t.Parallel()

	srv := pollServer(t, []map[string]any{
		{"error": "access_denied"},
	})

	var slept []time.Duration
	flow := newTestFlow(t, srv, &slept)

	da, err := flow.Start(context.Background())
	require.NoError(t, err)

	_, err = flow.Poll(context.Background(), da)
	require.ErrorIs(t, err, ErrAccessDenied)
}

func TestDeviceFlowContextCancellation(t *testing.T) {
	t.Parallel()

	srv := pollServer(t, []map[string]any{
		{"error": "authorization_pending"},
	})

	flow := NewDeviceFlow(srv.URL)
	da, err := flow.Start(context.Background())
	require.NoError(t, err)
	da.Interval = 60

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err = flow.Poll(ctx, da)
	require.ErrorIs(t, err, context.Canceled)
}
