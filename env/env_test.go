// SPDX-FileCopyrightText: Copyright 2026 Personify Authors
// SPDX-License-Identifier: Apache-2.0

package env

import (
	"os"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestOSReaderGetenv(t *testing.T) { //nolint:paralleltest // Modifies environment variables
	testKey := "PERSONIFY_TEST_ENV_VARIABLE"
	t.Setenv(testKey, "test_value_123")

	reader := &OSReader{}
	require.Equal(t, "test_value_123", reader.Getenv(testKey))

	os.Unsetenv(testKey)
	require.Equal(t, "", reader.Getenv(testKey))
}

func TestMapReaderGetenv(t *testing.T) {
	t.Parallel()

	reader := MapReader{"A": "1"}
	require.Equal(t, "1", reader.Getenv("A"))
	require.Equal(t, "", reader.Getenv("B"))
}
