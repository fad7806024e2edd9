// SPDX-FileCopyrightText: Copyright 2026 Personify Authors
// SPDX-License-Identifier: Apache-2.0

// Package validation provides validation for persona names, registry base
// URLs, and HTTP header values used by the registry client.
package validation

import (
	"fmt"
	"net/url"
	"regexp"
	"strings"

	"golang.org/x/net/http/httpguts"
)

var validNameRegex = regexp.MustCompile(`^[a-z0-9][a-z0-9_\-]*$`)

// ValidatePersonaName validates a persona name segment: lowercase
// alphanumeric with dashes and underscores, starting with an alphanumeric.
// Namespaced names ("publisher/name") validate each segment.
func ValidatePersonaName(name string) error {
	if name == "" || strings.TrimSpace(name) == "" {
		return fmt.Errorf("persona name cannot be empty or consist only of whitespace")
	}

	if strings.Contains(name, "\x00") {
		return fmt.Errorf("persona name cannot contain null bytes")
	}

	if name != strings.ToLower(name) {
		return fmt.Errorf("persona name must be lowercase")
	}

	for _, segment := range strings.Split(name, "/") {
		if !validNameRegex.MatchString(segment) {
			return fmt.Errorf("persona name can only contain lowercase alphanumeric characters, underscores, and dashes: %q", name)
		}
	}

	return nil
}

// ValidateHeaderValue validates that a string is a valid HTTP header value
// per RFC 7230. It rejects CRLF injection and control characters.
func ValidateHeaderValue(value string) error {
	if value == "" {
		return fmt.Errorf("header value cannot be empty")
	}

	// Common HTTP server limit, prevents oversized credentials.
	if len(value) > 8192 {
		return fmt.Errorf("header value exceeds maximum length of 8192 bytes")
	}

	if !httpguts.ValidHeaderFieldValue(value) {
		return fmt.Errorf("invalid HTTP header value: contains control characters")
	}

	return nil
}

// ValidateBaseURL validates a registry endpoint URL: it must be http or
// https, carry a host, and must not contain a fragment.
func ValidateBaseURL(baseURL string) error {
	if baseURL == "" {
		return fmt.Errorf("base URL cannot be empty")
	}

	parsed, err := url.Parse(baseURL)
	if err != nil {
		return fmt.Errorf("invalid base URL: %w", err)
	}

	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return fmt.Errorf("base URL must use http or https: %s", baseURL)
	}

	if parsed.Host == "" {
		return fmt.Errorf("base URL must include a host: %s", baseURL)
	}

	if parsed.Fragment != "" {
		return fmt.Errorf("base URL must not contain a fragment: %s", baseURL)
	}

	return nil
}
