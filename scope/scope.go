// SPDX-FileCopyrightText: Copyright 2026 Personify Authors
// SPDX-License-Identifier: Apache-2.0

// Package scope decides whether an operation targets the project-local or
// the global state directory. Project roots are discovered by walking parent
// directories from the working directory looking for a marker; the result is
// memoized for the process lifetime since the working directory is stable
// for a single command invocation.
package scope

import (
	"os"
	"path/filepath"
	"sync"

	"github.com/adrg/xdg"
)

// Scope is an installation namespace.
type Scope string

// Recognized scopes. The zero value means "unspecified" and is resolved via
// the precedence in Resolve.
const (
	Project Scope = "project"
	Global  Scope = "global"
)

// Project markers. A directory is a project root when it contains either.
const (
	// MarkerDir is the reserved directory name marking a project root. It
	// doubles as the project-scope storage area.
	MarkerDir = ".personify"

	// MarkerFile is the reserved marker filename.
	MarkerFile = ".personify.yaml"
)

var (
	discoverOnce  sync.Once
	memoizedRoot  string
	memoizedFound bool
)

// DiscoverProjectRoot walks from the current working directory upward and
// returns the first directory containing a project marker. The first call
// wins; subsequent calls return the memoized result.
func DiscoverProjectRoot() (string, bool) {
	discoverOnce.Do(func() {
		cwd, err := os.Getwd()
		if err != nil {
			return
		}
		memoizedRoot, memoizedFound = FindProjectRoot(cwd)
	})
	return memoizedRoot, memoizedFound
}

// FindProjectRoot is the unmemoized walk from an explicit starting
// directory. It only stats candidate paths and never creates directories.
func FindProjectRoot(start string) (string, bool) {
	dir := filepath.Clean(start)
	for {
		if isProjectRoot(dir) {
			return dir, true
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", false
		}
		dir = parent
	}
}

func isProjectRoot(dir string) bool {
	if info, err := os.Stat(filepath.Join(dir, MarkerDir)); err == nil && info.IsDir() {
		return true
	}
	if info, err := os.Stat(filepath.Join(dir, MarkerFile)); err == nil && !info.IsDir() {
		return true
	}
	return false
}

// Resolve applies scope precedence: an explicit scope always wins, then a
// discovered project root, then global.
func Resolve(explicit Scope, projectFound bool) Scope {
	if explicit != "" {
		return explicit
	}
	if projectFound {
		return Project
	}
	return Global
}

// GlobalDir returns the machine-wide storage directory.
func GlobalDir() string {
	return filepath.Join(xdg.DataHome, "personify")
}

// ProjectDir returns the storage directory inside a project root.
func ProjectDir(root string) string {
	return filepath.Join(root, MarkerDir)
}
