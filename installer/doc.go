// SPDX-FileCopyrightText: Copyright 2026 Personify Authors
// SPDX-License-Identifier: Apache-2.0

/*
Package installer orchestrates the install pipeline: resolve a specifier to
a source, fetch and validate the content, compute its canonical digest, and
record the result in the scope's state store.

Every specifier kind converges on the same tail:

	RESOLVE_SOURCE → FETCH_CONTENT → VALIDATE_SCHEMA → COMPUTE_DIGEST
	→ CHECK_EXISTING → (skip | WRITE_ARTIFACT → UPDATE_STATE)

Installs are idempotent: re-installing content that is already recorded for
the target scope returns the existing record and performs no write. The
force option skips the existing-record check entirely.

Batches are processed sequentially, one specifier at a time, and every
failure is attributed to the specifier string that caused it; one failing
specifier never aborts the rest of the batch.
*/
package installer
