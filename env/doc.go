// SPDX-FileCopyrightText: Copyright 2026 Personify Authors
// SPDX-License-Identifier: Apache-2.0

/*
Package env provides an interface-based abstraction for environment variable
access, enabling dependency injection and testing isolation.

# Basic Usage

Use OSReader to read environment variables via the standard os package:

	reader := &env.OSReader{}
	value := reader.Getenv("MY_VAR")

# Testing

The Reader interface allows injecting fixed values in tests instead of
mutating the real environment:

	reader := env.MapReader{"PERSONIFY_REGISTRY_URL": "http://localhost:8080"}
	result := myFunc(reader)
*/
package env
