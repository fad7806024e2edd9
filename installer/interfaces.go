// SPDX-FileCopyrightText: Copyright 2026 Personify Authors
// SPDX-License-Identifier: Apache-2.0

package installer

//go:generate mockgen -source=interfaces.go -destination=mocks/mock_interfaces.go -package=mocks

import (
	"context"

	"github.com/personify/personify-core/registry"
)

// RegistryAPI is the subset of the registry client the installer depends on.
type RegistryAPI interface {
	// Lookup resolves a persona by registry name without scanning the
	// full index.
	Lookup(ctx context.Context, name string) (*registry.IndexEntry, error)

	// FetchVersion retrieves the content of one published version.
	FetchVersion(ctx context.Context, name, version string) (*registry.ArtifactResponse, error)

	// LookupByDigest retrieves an artifact by a prefix of its content digest.
	LookupByDigest(ctx context.Context, digest string) (*registry.ArtifactResponse, error)
}

// SourceAPI fetches individual files from hosted source trees.
type SourceAPI interface {
	// FetchFile retrieves owner/repo/ref/filename. The boolean reports
	// existence: a clean "not found" is (nil, false, nil) so callers can
	// fall through an ordered candidate list.
	FetchFile(ctx context.Context, owner, repo, ref, filename string) ([]byte, bool, error)
}
