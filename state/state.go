// SPDX-FileCopyrightText: Copyright 2026 Personify Authors
// SPDX-License-Identifier: Apache-2.0

// Package state reads and writes the per-scope record of installed
// artifacts. Each scope directory holds one JSON state document plus a
// per-name artifact storage area. A missing document is materialized and
// persisted on first read so subsequent reads are stable.
//
// The store assumes a single CLI process and a single user: read-modify-write
// is not protected by file locking, and concurrent external edits are an
// accepted risk.
package state

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"
)

// SchemaVersion is the state document schema version tag.
const SchemaVersion = "1"

// Filename is the state document filename inside a scope directory.
const Filename = "personas.json"

// personasDirName is the artifact storage area inside a scope directory.
const personasDirName = "personas"

// Source classifies where an installed artifact came from.
type Source string

// Recognized sources.
const (
	SourceRegistry   Source = "registry"
	SourceSourceRepo Source = "sourceRepo"
	SourceLocal      Source = "local"
)

// Trust is the provenance classification of an installed artifact. It is
// derived from the install source and registry metadata, never set by the
// user or by the artifact itself.
type Trust string

// Recognized trust levels.
const (
	TrustVerified   Trust = "verified"
	TrustCommunity  Trust = "community"
	TrustSourceRepo Trust = "sourceRepo"
	TrustLocal      Trust = "local"
	TrustAnonymous  Trust = "anonymous"
)

// Record is one installed artifact in one scope. ContentDigest is the
// authoritative identity: idempotency checks and drift detection compare
// digests, never file contents directly.
type Record struct {
	Name          string    `json:"name"`
	Version       string    `json:"version"`
	ContentDigest string    `json:"contentDigest"`
	Source        Source    `json:"source"`
	Trust         Trust     `json:"trust"`
	Publisher     string    `json:"publisher,omitempty"`
	SourceRef     string    `json:"sourceRef,omitempty"`
	LocalPath     string    `json:"localPath,omitempty"`
	Specifier     string    `json:"specifier"`
	InstalledAt   time.Time `json:"installedAt"`
}

// Document is the persisted per-scope state.
type Document struct {
	SchemaVersion string             `json:"schemaVersion"`
	Personas      map[string]*Record `json:"personas"`
	Settings      map[string]any     `json:"settings,omitempty"`
}

// NewDocument returns an empty state document.
func NewDocument() *Document {
	return &Document{
		SchemaVersion: SchemaVersion,
		Personas:      make(map[string]*Record),
	}
}

// Store reads and writes the state document for one scope directory.
type Store struct {
	dir string
}

// NewStore creates a store rooted at the given scope directory.
func NewStore(dir string) *Store {
	return &Store{dir: dir}
}

// Dir returns the scope directory this store operates on.
func (s *Store) Dir() string {
	return s.dir
}

// Path returns the state document path.
func (s *Store) Path() string {
	return filepath.Join(s.dir, Filename)
}

// ArtifactDir returns the per-name artifact storage directory for name.
func (s *Store) ArtifactDir(name string) string {
	return filepath.Join(s.dir, personasDirName, name)
}

// Read loads the state document. When the file is missing, an empty document
// is written and returned.
func (s *Store) Read() (*Document, error) {
	data, err := os.ReadFile(s.Path())
	if os.IsNotExist(err) {
		doc := NewDocument()
		if werr := s.Write(doc); werr != nil {
			return nil, werr
		}
		return doc, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading state: %w", err)
	}

	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parsing state %s: %w", s.Path(), err)
	}
	if doc.Personas == nil {
		doc.Personas = make(map[string]*Record)
	}
	return &doc, nil
}

// Write persists the state document, creating the scope directory if needed.
func (s *Store) Write(doc *Document) error {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return fmt.Errorf("creating state directory: %w", err)
	}

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("serializing state: %w", err)
	}
	data = append(data, '\n')

	if err := os.WriteFile(s.Path(), data, 0o644); err != nil {
		return fmt.Errorf("writing state: %w", err)
	}
	return nil
}

// Upsert inserts or replaces the record for name.
func (s *Store) Upsert(name string, rec *Record) error {
	doc, err := s.Read()
	if err != nil {
		return err
	}
	doc.Personas[name] = rec
	return s.Write(doc)
}

// Remove deletes the record for name. It reports whether a record existed.
func (s *Store) Remove(name string) (bool, error) {
	doc, err := s.Read()
	if err != nil {
		return false, err
	}
	if _, ok := doc.Personas[name]; !ok {
		return false, nil
	}
	delete(doc.Personas, name)
	if err := s.Write(doc); err != nil {
		return false, err
	}
	return true, nil
}

// Get returns the record for name, or nil when absent.
func (s *Store) Get(name string) (*Record, error) {
	doc, err := s.Read()
	if err != nil {
		return nil, err
	}
	return doc.Personas[name], nil
}

// List returns all records sorted by name.
func (s *Store) List() ([]*Record, error) {
	doc, err := s.Read()
	if err != nil {
		return nil, err
	}
	records := make([]*Record, 0, len(doc.Personas))
	for _, rec := range doc.Personas {
		records = append(records, rec)
	}
	sort.Slice(records, func(i, j int) bool { return records[i].Name < records[j].Name })
	return records, nil
}
