// SPDX-FileCopyrightText: Copyright 2026 Personify Authors
// SPDX-License-Identifier: Apache-2.0

/*
Package specifier parses user-supplied install strings into typed install
intents.

A specifier names the thing to install and where it comes from. Four forms
are recognized, checked in this order:

	hash:0123456789abcdef          content-addressed lookup ("digest:" is an alias)
	github:owner/repo[@ref]        hosted source tree, ref defaults to "main"
	./path or /path                local filesystem reference
	[@]publisher/name[@version]    registry lookup, version defaults to latest

Parsing is a pure function from string to [Specifier]; malformed input fails
with a [*ParseError] and never yields a partial result. Relative local paths
are resolved against the working directory at parse time so the resulting
specifier stays valid even if the process later changes directory.
*/
package specifier
