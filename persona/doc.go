// SPDX-FileCopyrightText: Copyright 2026 Personify Authors
// SPDX-License-Identifier: Apache-2.0

/*
Package persona defines the personality artifact model: parsing, schema
validation, canonical content digests, and the ordered candidate-filename
loaders used to locate an artifact inside a directory or source tree.

An artifact is a small JSON document. Its identity is the SHA-256 digest of
a canonical serialization (keys sorted, insignificant whitespace removed),
so two documents that differ only in formatting share a digest.

New installs always write the canonical filename; the legacy filename and
the YAML variant are read-only candidates kept for backward compatibility.
*/
package persona
