// SPDX-FileCopyrightText: Copyright 2026 Personify Authors
// SPDX-License-Identifier: Apache-2.0

package persona

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Artifact filenames, in lookup priority order.
const (
	// CanonicalFilename is the filename written by installs.
	CanonicalFilename = "persona.json"

	// LegacyFilename is read for backward compatibility but never written.
	LegacyFilename = "personality.json"

	// YAMLFilename is a read-only YAML variant, converted to JSON on load.
	YAMLFilename = "persona.yaml"
)

// MaxArtifactSize is the maximum accepted artifact size in bytes. Content
// exceeding it is rejected before schema validation and never retried.
const MaxArtifactSize = 1 << 20

// CandidateFilenames is the ordered list of filenames tried when locating an
// artifact in a directory or source tree. Earlier entries win.
var CandidateFilenames = []string{CanonicalFilename, LegacyFilename, YAMLFilename}

// Persona is a parsed personality artifact. Content preserves the exact
// bytes the artifact was parsed from (JSON; YAML sources are converted
// before parsing), which is what installs persist and digest.
type Persona struct {
	Name        string   `json:"name" yaml:"name"`
	Version     string   `json:"version" yaml:"version"`
	DisplayName string   `json:"displayName,omitempty" yaml:"displayName,omitempty"`
	Tagline     string   `json:"tagline,omitempty" yaml:"tagline,omitempty"`
	Category    string   `json:"category,omitempty" yaml:"category,omitempty"`
	Tags        []string `json:"tags,omitempty" yaml:"tags,omitempty"`
	Author      string   `json:"author,omitempty" yaml:"author,omitempty"`
	Traits      []string `json:"traits,omitempty" yaml:"traits,omitempty"`
	Prompt      string   `json:"prompt,omitempty" yaml:"prompt,omitempty"`

	Content []byte `json:"-" yaml:"-"`
}

// Parse decodes a JSON artifact. It fails on malformed JSON only; schema
// conformance is checked separately by Validate.
func Parse(data []byte) (*Persona, error) {
	var p Persona
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("parsing persona: %w", err)
	}
	p.Content = data
	return &p, nil
}

// ParseYAML decodes a YAML artifact by converting it to JSON first, so the
// resulting Content and digest are format-independent.
func ParseYAML(data []byte) (*Persona, error) {
	var doc map[string]any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parsing persona YAML: %w", err)
	}
	converted, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("converting persona YAML: %w", err)
	}
	return Parse(converted)
}

// LoadFile reads and parses an artifact file. Files with a .yaml or .yml
// extension go through the YAML loader.
func LoadFile(path string) (*Persona, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("reading persona file: %w", err)
	}
	if info.Size() > MaxArtifactSize {
		return nil, fmt.Errorf("%w: %s is %d bytes", ErrSizeLimit, path, info.Size())
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading persona file: %w", err)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return ParseYAML(data)
	default:
		return Parse(data)
	}
}

// LoadFromDir tries the candidate filenames inside dir in priority order and
// loads the first that exists. It returns the path that was used. A missing
// candidate is non-fatal; only when no candidate exists does it fail with
// [ErrNoArtifact].
func LoadFromDir(dir string) (*Persona, string, error) {
	for _, name := range CandidateFilenames {
		path := filepath.Join(dir, name)
		if _, err := os.Stat(path); err != nil {
			if os.IsNotExist(err) {
				continue
			}
			return nil, "", fmt.Errorf("checking %s: %w", path, err)
		}
		p, err := LoadFile(path)
		if err != nil {
			return nil, "", err
		}
		return p, path, nil
	}
	return nil, "", fmt.Errorf("%w in %s", ErrNoArtifact, dir)
}
