// SPDX-FileCopyrightText: Copyright 2026 Personify Authors
// SPDX-License-Identifier: Apache-2.0

package registry

import (
	"encoding/json"
	"time"
)

// Index is the full registry index: every published persona keyed by its
// registry name ("name" or "publisher/name").
type Index struct {
	UpdatedAt time.Time             `json:"updatedAt,omitempty"`
	Personas  map[string]IndexEntry `json:"personas"`
}

// IndexEntry describes one published persona. It is fetched on demand and
// cached with a TTL, never persisted to disk.
type IndexEntry struct {
	// Latest is the version tag resolved when no version is requested.
	Latest   string                 `json:"latest"`
	Versions map[string]VersionInfo `json:"versions"`
	Metadata EntryMetadata          `json:"metadata"`
}

// VersionInfo describes one published version of a persona.
type VersionInfo struct {
	PublishedAt   time.Time `json:"publishedAt"`
	ContentURL    string    `json:"contentUrl,omitempty"`
	ContentDigest string    `json:"contentDigest,omitempty"`
	Size          int64     `json:"size"`
}

// EntryMetadata is registry-reported display and provenance metadata.
// Trust comes from the registry, never from the artifact's own fields.
type EntryMetadata struct {
	DisplayName string   `json:"displayName"`
	Tagline     string   `json:"tagline"`
	Category    string   `json:"category,omitempty"`
	Tags        []string `json:"tags,omitempty"`
	Publisher   string   `json:"publisher,omitempty"`
	Trust       string   `json:"trust"`
}

// ArtifactResponse is a fetched artifact: the declared name and version, the
// raw content, and the server-computed digest. The server digest is
// authoritative for storage; a disagreement with the locally computed digest
// is surfaced as a warning, never an install failure.
type ArtifactResponse struct {
	Name    string          `json:"name"`
	Version string          `json:"version"`
	Content json.RawMessage `json:"content"`
	Digest  string          `json:"digest,omitempty"`
	Trust   string          `json:"trust,omitempty"`
}

// SearchResult is one hit from the search endpoint.
type SearchResult struct {
	Name        string `json:"name"`
	Version     string `json:"version"`
	DisplayName string `json:"displayName,omitempty"`
	Tagline     string `json:"tagline,omitempty"`
	Publisher   string `json:"publisher,omitempty"`
	Trust       string `json:"trust,omitempty"`
}

// PublishResponse confirms a successful publish.
type PublishResponse struct {
	Name    string `json:"name"`
	Version string `json:"version"`
	Digest  string `json:"digest"`
}
