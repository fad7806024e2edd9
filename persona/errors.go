// SPDX-FileCopyrightText: Copyright 2026 Personify Authors
// SPDX-License-Identifier: Apache-2.0

package persona

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrSizeLimit indicates artifact content exceeded MaxArtifactSize.
	ErrSizeLimit = errors.New("artifact exceeds size limit")

	// ErrNoArtifact indicates no candidate artifact filename was found.
	ErrNoArtifact = errors.New("no persona artifact found")
)

// ValidationError aggregates every schema violation found in an artifact
// rather than stopping at the first.
type ValidationError struct {
	// Errors holds one message per violated schema constraint.
	Errors []string
}

// Error implements the error interface, formatting multiple violations as a
// numbered list.
func (e *ValidationError) Error() string {
	if len(e.Errors) == 1 {
		return fmt.Sprintf("persona schema validation failed: %s", e.Errors[0])
	}
	var b strings.Builder
	fmt.Fprintf(&b, "persona schema validation failed with %d errors:\n", len(e.Errors))
	for i, msg := range e.Errors {
		fmt.Fprintf(&b, "  %d. %s\n", i+1, msg)
	}
	return strings.TrimSuffix(b.String(), "\n")
}
