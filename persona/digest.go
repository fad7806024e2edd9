// SPDX-FileCopyrightText: Copyright 2026 Personify Authors
// SPDX-License-Identifier: Apache-2.0

package persona

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/opencontainers/go-digest"
)

// CanonicalDigest computes the SHA-256 digest of the canonical serialization
// of a JSON document: object keys sorted, insignificant whitespace removed.
// Two documents that differ only in key order or formatting yield the same
// digest.
func CanonicalDigest(data []byte) (digest.Digest, error) {
	canonical, err := canonicalize(data)
	if err != nil {
		return "", fmt.Errorf("canonicalizing content: %w", err)
	}
	return digest.FromBytes(canonical), nil
}

// Digest returns the canonical content digest of the artifact.
func (p *Persona) Digest() (digest.Digest, error) {
	return CanonicalDigest(p.Content)
}

// MatchesDigest reports whether the encoded (hex) form of d starts with
// prefix. Hash specifiers may carry a truncated digest, so prefix matching
// is the comparison used for content-addressed lookups.
func MatchesDigest(d digest.Digest, prefix string) bool {
	return strings.HasPrefix(d.Encoded(), prefix)
}

// canonicalize re-marshals JSON through a generic value. encoding/json
// sorts map keys on output and emits no insignificant whitespace, which is
// exactly the canonical form. Numbers are decoded as json.Number so their
// textual representation survives the round trip.
func canonicalize(data []byte) ([]byte, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var doc any
	if err := dec.Decode(&doc); err != nil {
		return nil, err
	}

	return json.Marshal(doc)
}
