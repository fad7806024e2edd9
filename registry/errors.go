// SPDX-FileCopyrightText: Copyright 2026 Personify Authors
// SPDX-License-Identifier: Apache-2.0

package registry

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
)

// Error codes carried in API error bodies ({"error": <code>, "message": ...}).
const (
	CodeNotFound       = "not_found"
	CodeUnauthorized   = "unauthorized"
	CodeForbidden      = "forbidden"
	CodeVersionExists  = "version_exists"
	CodeNameTaken      = "name_taken"
	CodeAlreadyExists  = "already_exists"
	CodeHandleTaken    = "handle_taken"
	CodeHandleReserved = "handle_reserved"
	CodeRateLimit      = "rate_limit"
)

// Sentinel errors for classification via errors.Is. APIError unwraps to the
// matching sentinel based on its status and error code.
var (
	// ErrNotFound indicates the artifact, version, or digest is absent.
	ErrNotFound = errors.New("not found")

	// ErrUnauthorized indicates a missing, expired, or rejected credential.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrForbidden indicates the credential lacks permission.
	ErrForbidden = errors.New("forbidden")

	// ErrConflict indicates a publish-time conflict such as an existing
	// version or a taken name.
	ErrConflict = errors.New("conflict")
)

// conflictCodes are the error codes that classify as ErrConflict.
var conflictCodes = map[string]bool{
	CodeVersionExists:  true,
	CodeNameTaken:      true,
	CodeAlreadyExists:  true,
	CodeHandleTaken:    true,
	CodeHandleReserved: true,
}

// APIError is a structured error response from the registry API.
type APIError struct {
	StatusCode int
	ErrorCode  string
	Message    string
}

// Error implements the error interface.
func (e *APIError) Error() string {
	if e.ErrorCode != "" {
		return fmt.Sprintf("registry API error %d (%s): %s", e.StatusCode, e.ErrorCode, e.Message)
	}
	return fmt.Sprintf("registry API error %d: %s", e.StatusCode, e.Message)
}

// Unwrap maps the error onto a sentinel so callers classify with errors.Is
// instead of inspecting status codes.
func (e *APIError) Unwrap() error {
	switch {
	case conflictCodes[e.ErrorCode]:
		return ErrConflict
	case e.ErrorCode == CodeNotFound || e.StatusCode == http.StatusNotFound:
		return ErrNotFound
	case e.ErrorCode == CodeUnauthorized || e.StatusCode == http.StatusUnauthorized:
		return ErrUnauthorized
	case e.ErrorCode == CodeForbidden || e.StatusCode == http.StatusForbidden:
		return ErrForbidden
	default:
		return nil
	}
}

// Retryable reports whether the response is eligible for retry: 5xx, 429,
// and rate-limit error codes. Every other response is deterministic and
// never retried.
func (e *APIError) Retryable() bool {
	return e.StatusCode >= 500 ||
		e.StatusCode == http.StatusTooManyRequests ||
		e.ErrorCode == CodeRateLimit
}

// parseAPIError builds an APIError from a response status and body. Bodies
// that are not the expected {"error", "message"} shape still yield a usable
// error carrying the status code.
func parseAPIError(status int, body []byte) *APIError {
	var payload struct {
		Error   string `json:"error"`
		Message string `json:"message"`
	}
	_ = json.Unmarshal(body, &payload)

	msg := payload.Message
	if msg == "" {
		msg = http.StatusText(status)
	}
	return &APIError{StatusCode: status, ErrorCode: payload.Error, Message: msg}
}

// NetworkError surfaces after the retry budget is exhausted on network-level
// failures, timeouts, or retryable statuses.
type NetworkError struct {
	// Attempts is the total number of attempts made.
	Attempts int
	Err      error
}

// Error implements the error interface.
func (e *NetworkError) Error() string {
	return fmt.Sprintf("registry unreachable after %d attempts: %v", e.Attempts, e.Err)
}

// Unwrap returns the final underlying failure.
func (e *NetworkError) Unwrap() error {
	return e.Err
}
