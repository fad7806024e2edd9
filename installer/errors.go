// SPDX-FileCopyrightText: Copyright 2026 Personify Authors
// SPDX-License-Identifier: Apache-2.0

package installer

import (
	"errors"
	"fmt"
)

// ErrNoProjectRoot indicates project scope was requested explicitly but no
// project root was discovered.
var ErrNoProjectRoot = errors.New("no project root found")

// NameMismatchError indicates the fetched artifact declares a different name
// than the one implied by the specifier. Installing under the wrong name is
// never done silently.
type NameMismatchError struct {
	Expected string
	Actual   string
}

// Error implements the error interface.
func (e *NameMismatchError) Error() string {
	return fmt.Sprintf("artifact declares name %q but specifier requested %q", e.Actual, e.Expected)
}
