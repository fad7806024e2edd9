// SPDX-FileCopyrightText: Copyright 2026 Personify Authors
// SPDX-License-Identifier: Apache-2.0

package env

import "os"

// Reader defines an interface for environment variable access
type Reader interface {
	Getenv(key string) string
}

// OSReader implements Reader using the standard os package
type OSReader struct{}

// Getenv returns the value of the environment variable named by the key
func (*OSReader) Getenv(key string) string {
	return os.Getenv(key)
}

// MapReader implements Reader from a fixed map, for tests and for callers
// that resolve configuration ahead of time.
type MapReader map[string]string

// Getenv returns the mapped value for key, or the empty string when unset.
func (m MapReader) Getenv(key string) string {
	return m[key]
}
