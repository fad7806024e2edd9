// SPDX-FileCopyrightText: Copyright 2026 Personify Authors
// SPDX-License-Identifier: Apache-2.0

package specifier

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Prefixes and defaults recognized by the parser.
const (
	// HashPrefix marks a content-addressed specifier.
	HashPrefix = "hash:"

	// DigestPrefix is the accepted alias for HashPrefix.
	DigestPrefix = "digest:"

	// SourcePrefix marks a hosted source tree specifier.
	SourcePrefix = "github:"

	// DefaultRef is the ref used for source specifiers when none is given.
	DefaultRef = "main"

	// DefaultVersion is the registry version resolved when none is requested.
	// The parser leaves Version empty so callers can distinguish "latest
	// requested explicitly" from "no version requested".
	DefaultVersion = "latest"

	// MinDigestLength is the minimum accepted digest length for hash specifiers.
	MinDigestLength = 16
)

// Specifier is a typed install intent. It is a sealed sum type: exactly one
// of [Registry], [Hash], [SourceRepo], or [LocalPath]. Consumers switch on
// the concrete type to handle every kind.
type Specifier interface {
	// Raw returns the original input string, preserved for display,
	// error attribution, and reinstall.
	Raw() string

	sealed()
}

// Registry identifies an artifact by name in the remote registry, optionally
// namespaced by publisher and pinned to a version.
type Registry struct {
	Name      string
	Publisher string
	// Version is empty when the user did not request one.
	Version string

	raw string
}

// Hash identifies an artifact by a prefix of its content digest.
type Hash struct {
	Digest string

	raw string
}

// SourceRepo identifies an artifact by a hosted source tree location.
type SourceRepo struct {
	Owner string
	Repo  string
	Ref   string

	raw string
}

// LocalPath references an artifact on the local filesystem. Path is always
// absolute.
type LocalPath struct {
	Path string

	raw string
}

// Raw implements Specifier.
func (s Registry) Raw() string { return s.raw }

// Raw implements Specifier.
func (s Hash) Raw() string { return s.raw }

// Raw implements Specifier.
func (s SourceRepo) Raw() string { return s.raw }

// Raw implements Specifier.
func (s LocalPath) Raw() string { return s.raw }

func (Registry) sealed()   {}
func (Hash) sealed()       {}
func (SourceRepo) sealed() {}
func (LocalPath) sealed()  {}

// LookupName returns the registry key for the specifier: "publisher/name"
// when a publisher namespace was given, otherwise the bare name.
func (s Registry) LookupName() string {
	if s.Publisher != "" {
		return s.Publisher + "/" + s.Name
	}
	return s.Name
}

// ParseError reports a malformed specifier. It is terminal for the input:
// parse failures are never retried.
type ParseError struct {
	Input  string
	Reason string
}

// Error implements the error interface.
func (e *ParseError) Error() string {
	return fmt.Sprintf("invalid specifier %q: %s", e.Input, e.Reason)
}

// Parse turns a free-form string into a typed Specifier. Relative local
// paths are resolved against the current working directory.
func Parse(input string) (Specifier, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("determining working directory: %w", err)
	}
	return ParseIn(input, cwd)
}

// ParseIn is Parse with an explicit working directory for local path
// resolution.
func ParseIn(input, cwd string) (Specifier, error) {
	trimmed := strings.TrimSpace(input)
	if trimmed == "" {
		return nil, &ParseError{Input: input, Reason: "empty specifier"}
	}

	if rest, ok := stripAnyPrefix(trimmed, HashPrefix, DigestPrefix); ok {
		return parseHash(input, rest)
	}

	if rest, ok := strings.CutPrefix(trimmed, SourcePrefix); ok {
		return parseSourceRepo(input, rest)
	}

	if strings.HasPrefix(trimmed, ".") || strings.HasPrefix(trimmed, "/") {
		return parseLocalPath(input, trimmed, cwd)
	}

	return parseRegistry(input, trimmed)
}

func stripAnyPrefix(s string, prefixes ...string) (string, bool) {
	for _, p := range prefixes {
		if rest, ok := strings.CutPrefix(s, p); ok {
			return rest, true
		}
	}
	return s, false
}

func parseHash(input, digest string) (Specifier, error) {
	if len(digest) < MinDigestLength {
		return nil, &ParseError{
			Input:  input,
			Reason: fmt.Sprintf("digest must be at least %d characters, got %d", MinDigestLength, len(digest)),
		}
	}
	return Hash{Digest: digest, raw: input}, nil
}

func parseSourceRepo(input, rest string) (Specifier, error) {
	ref := DefaultRef
	// The ref delimiter is the last "@" so branch names containing "/"
	// stay intact.
	if at := strings.LastIndex(rest, "@"); at >= 0 {
		ref = rest[at+1:]
		rest = rest[:at]
		if ref == "" {
			return nil, &ParseError{Input: input, Reason: "empty ref after @"}
		}
	}

	owner, repo, found := strings.Cut(rest, "/")
	if !found || owner == "" || repo == "" {
		return nil, &ParseError{Input: input, Reason: "source specifier requires owner/repo"}
	}

	return SourceRepo{Owner: owner, Repo: repo, Ref: ref, raw: input}, nil
}

func parseLocalPath(input, path, cwd string) (Specifier, error) {
	if !filepath.IsAbs(path) {
		path = filepath.Join(cwd, path)
	}
	return LocalPath{Path: filepath.Clean(path), raw: input}, nil
}

func parseRegistry(input, rest string) (Specifier, error) {
	// A single leading "@" is a scoped-namespace convention
	// ("@scope/name"). Strip it before the version delimiter search so it
	// is never mistaken for one.
	scoped := false
	if strings.HasPrefix(rest, "@") {
		scoped = true
		rest = rest[1:]
		if rest == "" {
			return nil, &ParseError{Input: input, Reason: "missing name"}
		}
	}

	version := ""
	if at := strings.LastIndex(rest, "@"); at >= 0 {
		version = rest[at+1:]
		rest = rest[:at]
		if version == "" {
			return nil, &ParseError{Input: input, Reason: "empty version after @"}
		}
		if rest == "" {
			return nil, &ParseError{Input: input, Reason: "missing name before version"}
		}
	}

	publisher := ""
	name := rest
	if slash := strings.Index(rest, "/"); slash >= 0 {
		publisher = rest[:slash]
		name = rest[slash+1:]
		if publisher == "" {
			return nil, &ParseError{Input: input, Reason: "empty publisher before /"}
		}
	}
	if name == "" {
		return nil, &ParseError{Input: input, Reason: "missing name"}
	}
	if scoped && publisher == "" {
		return nil, &ParseError{Input: input, Reason: "scoped specifier requires @publisher/name"}
	}

	return Registry{Name: name, Publisher: publisher, Version: version, raw: input}, nil
}
