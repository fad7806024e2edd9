// SPDX-FileCopyrightText: Copyright 2026 Personify Authors
// SPDX-License-Identifier: Apache-2.0

package state

import (
	"os"
	"path/filepath"
	"sort"

	"github.com/personify/personify-core/persona"
	"github.com/personify/personify-core/scope"
)

// ScopedStore pairs a store with the scope it serves, for cross-scope
// listing.
type ScopedStore struct {
	Scope scope.Scope
	Store *Store
}

// AggregatedRecord is one logical artifact for display: records from
// different scopes with the same content digest are folded together.
type AggregatedRecord struct {
	Record *Record
	// Scopes lists every scope the content is installed in, project first.
	Scopes []scope.Scope
	// Modified reports drift: recomputing the digest from the referenced
	// artifact no longer matches the stored digest.
	Modified bool
}

// Aggregate lists records across scopes, grouped by content digest so the
// same content present in both project and global scope is presented once
// with both scopes attached. Project entries sort before global ones.
func Aggregate(stores []ScopedStore) ([]AggregatedRecord, error) {
	sorted := make([]ScopedStore, len(stores))
	copy(sorted, stores)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Scope == scope.Project && sorted[j].Scope != scope.Project
	})

	byDigest := make(map[string]*AggregatedRecord)
	var order []string

	for _, ss := range sorted {
		records, err := ss.Store.List()
		if err != nil {
			return nil, err
		}
		for _, rec := range records {
			if existing, ok := byDigest[rec.ContentDigest]; ok {
				existing.Scopes = append(existing.Scopes, ss.Scope)
				continue
			}
			agg := &AggregatedRecord{
				Record:   rec,
				Scopes:   []scope.Scope{ss.Scope},
				Modified: isModified(ss.Store, rec),
			}
			byDigest[rec.ContentDigest] = agg
			order = append(order, rec.ContentDigest)
		}
	}

	result := make([]AggregatedRecord, 0, len(order))
	for _, d := range order {
		result = append(result, *byDigest[d])
	}
	sort.SliceStable(result, func(i, j int) bool {
		return result[i].Record.Name < result[j].Record.Name
	})
	return result, nil
}

// isModified recomputes the digest of the artifact a record references and
// compares it to the stored one. Local installs reference the original path;
// everything else references the persisted artifact in the scope's storage
// area. A missing or unreadable artifact counts as modified.
func isModified(store *Store, rec *Record) bool {
	path := rec.LocalPath
	if rec.Source != SourceLocal {
		path = filepath.Join(store.ArtifactDir(rec.Name), persona.CanonicalFilename)
	}
	if path == "" {
		return false
	}

	p, err := loadReferenced(path)
	if err != nil {
		return true
	}
	d, err := p.Digest()
	if err != nil {
		return true
	}
	return d.Encoded() != rec.ContentDigest
}

func loadReferenced(path string) (*persona.Persona, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, err
	}
	if info.IsDir() {
		p, _, err := persona.LoadFromDir(path)
		return p, err
	}
	return persona.LoadFile(path)
}
