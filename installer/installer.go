// SPDX-FileCopyrightText: Copyright 2026 Personify Authors
// SPDX-License-Identifier: Apache-2.0

package installer

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/personify/personify-core/logger"
	"github.com/personify/personify-core/persona"
	"github.com/personify/personify-core/recovery"
	"github.com/personify/personify-core/registry"
	"github.com/personify/personify-core/scope"
	"github.com/personify/personify-core/specifier"
	"github.com/personify/personify-core/state"
	"github.com/personify/personify-core/validation"
)

// Options control a single install operation.
type Options struct {
	// Scope forces the target scope. Empty applies the default
	// precedence: discovered project root, then global.
	Scope scope.Scope

	// Force skips the existing-record check and always rewrites.
	Force bool
}

// Result is a successful install outcome.
type Result struct {
	// Specifier is the original input string.
	Specifier string

	Record *state.Record
	Scope  scope.Scope

	// AlreadyInstalled reports that the existing record was returned and
	// no write was performed.
	AlreadyInstalled bool
}

// BatchItem is the per-specifier outcome of a batch install.
type BatchItem struct {
	Specifier string
	Result    *Result
	Err       error
}

// Installer resolves, fetches, verifies, and records artifacts.
type Installer struct {
	reg RegistryAPI
	src SourceAPI

	globalDir    string
	projectRoot  string
	projectFound bool

	now func() time.Time
}

// Option configures an Installer.
type Option func(*Installer)

// WithGlobalDir overrides the global scope directory.
func WithGlobalDir(dir string) Option {
	return func(i *Installer) { i.globalDir = dir }
}

// WithProjectRoot sets the discovered project root. An empty root means no
// project was found.
func WithProjectRoot(root string) Option {
	return func(i *Installer) {
		i.projectRoot = root
		i.projectFound = root != ""
	}
}

// WithClock injects the clock used to timestamp records.
func WithClock(now func() time.Time) Option {
	return func(i *Installer) { i.now = now }
}

// New creates an installer. Without options it uses the XDG global directory
// and the process-wide discovered project root.
func New(reg RegistryAPI, src SourceAPI, opts ...Option) *Installer {
	root, found := scope.DiscoverProjectRoot()
	i := &Installer{
		reg:          reg,
		src:          src,
		globalDir:    scope.GlobalDir(),
		projectRoot:  root,
		projectFound: found,
		now:          time.Now,
	}
	for _, opt := range opts {
		opt(i)
	}
	return i
}

// Install resolves one specifier string into a recorded, verified artifact.
// Every error is attributable to the input string by the caller.
func (i *Installer) Install(ctx context.Context, rawSpec string, opts Options) (*Result, error) {
	spec, err := specifier.Parse(rawSpec)
	if err != nil {
		return nil, err
	}
	return i.install(ctx, spec, opts)
}

// InstallSpecifier is Install for a pre-parsed specifier.
func (i *Installer) InstallSpecifier(ctx context.Context, spec specifier.Specifier, opts Options) (*Result, error) {
	return i.install(ctx, spec, opts)
}

// InstallAll processes a batch of specifiers sequentially. A failing
// specifier is reported in its batch item and never aborts the rest, even
// when the failure is a panic.
func (i *Installer) InstallAll(ctx context.Context, rawSpecs []string, opts Options) []BatchItem {
	items := make([]BatchItem, 0, len(rawSpecs))
	for _, raw := range rawSpecs {
		var res *Result
		err := recovery.Do(func() error {
			var ierr error
			res, ierr = i.Install(ctx, raw, opts)
			return ierr
		})
		items = append(items, BatchItem{Specifier: raw, Result: res, Err: err})
	}
	return items
}

// Uninstall removes the record for name from the resolved scope and, for
// non-local installs, deletes the persisted artifact. It reports whether a
// record existed.
func (i *Installer) Uninstall(name string, opts Options) (bool, error) {
	// The name becomes a path segment under the scope's storage area, so it
	// must be well-formed before any filesystem operation.
	if err := validation.ValidatePersonaName(name); err != nil {
		return false, err
	}

	st, _, err := i.scopeStore(opts.Scope)
	if err != nil {
		return false, err
	}

	rec, err := st.Get(name)
	if err != nil {
		return false, err
	}
	if rec == nil {
		return false, nil
	}

	if _, err := st.Remove(name); err != nil {
		return false, err
	}
	if rec.Source != state.SourceLocal {
		if err := os.RemoveAll(st.ArtifactDir(name)); err != nil {
			return true, fmt.Errorf("removing artifact files: %w", err)
		}
	}
	return true, nil
}

// List aggregates installed records across the project (when discovered) and
// global scopes, grouped by content digest with drift annotations.
func (i *Installer) List() ([]state.AggregatedRecord, error) {
	stores := make([]state.ScopedStore, 0, 2)
	if i.projectFound {
		stores = append(stores, state.ScopedStore{
			Scope: scope.Project,
			Store: state.NewStore(scope.ProjectDir(i.projectRoot)),
		})
	}
	stores = append(stores, state.ScopedStore{
		Scope: scope.Global,
		Store: state.NewStore(i.globalDir),
	})
	return state.Aggregate(stores)
}

// fetched is the converged output of RESOLVE_SOURCE + FETCH_CONTENT for
// every specifier kind. Content is always JSON bytes.
type fetched struct {
	content []byte

	// declaredDigest is the source-supplied authoritative digest, empty
	// when the source did not report one.
	declaredDigest string

	source        state.Source
	registryTrust string
	publisher     string
	sourceRef     string
	localPath     string

	// expectedName enables the name-mismatch guard; empty skips it.
	expectedName string

	// version is the resolved target version, empty when the source does
	// not version content.
	version string

	// versionRequested reports whether the user pinned a version.
	versionRequested bool

	// digestAddressed marks content-addressed installs: the existing-record
	// check compares digests instead of versions.
	digestAddressed bool
}

func (i *Installer) install(ctx context.Context, spec specifier.Specifier, opts Options) (*Result, error) {
	st, sc, err := i.scopeStore(opts.Scope)
	if err != nil {
		return nil, err
	}

	var f *fetched
	switch sp := spec.(type) {
	case specifier.Registry:
		f, err = i.resolveRegistry(ctx, sp)
	case specifier.Hash:
		f, err = i.resolveHash(ctx, sp)
	case specifier.SourceRepo:
		f, err = i.resolveSourceRepo(ctx, sp)
	case specifier.LocalPath:
		f, err = i.resolveLocal(sp)
	default:
		err = fmt.Errorf("unhandled specifier type %T", spec)
	}
	if err != nil {
		return nil, err
	}

	if len(f.content) > persona.MaxArtifactSize {
		return nil, fmt.Errorf("%w: %d bytes", persona.ErrSizeLimit, len(f.content))
	}

	p, err := persona.Parse(f.content)
	if err != nil {
		return nil, err
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}

	computed, err := p.Digest()
	if err != nil {
		return nil, err
	}
	storeDigest := computed.Encoded()
	if hs, ok := spec.(specifier.Hash); ok && !persona.MatchesDigest(computed, hs.Digest) {
		logger.Warnw("fetched content does not match the requested digest prefix",
			"requested", hs.Digest, "computed", storeDigest)
	}
	if declared := normalizeDigest(f.declaredDigest); declared != "" {
		if declared != storeDigest {
			logger.Warnw("server digest disagrees with locally computed digest",
				"name", p.Name, "server", declared, "computed", storeDigest)
		}
		// The server value is authoritative for storage.
		storeDigest = declared
	}

	if f.expectedName != "" && p.Name != f.expectedName {
		return nil, &NameMismatchError{Expected: f.expectedName, Actual: p.Name}
	}

	version := f.version
	if version == "" {
		version = p.Version
	}

	if !opts.Force {
		existing, err := st.Get(p.Name)
		if err != nil {
			return nil, err
		}
		if alreadyInstalled(existing, f, version, storeDigest) {
			return &Result{
				Specifier:        spec.Raw(),
				Record:           existing,
				Scope:            sc,
				AlreadyInstalled: true,
			}, nil
		}
	}

	if f.source != state.SourceLocal {
		if err := writeArtifact(st, p.Name, f.content); err != nil {
			return nil, err
		}
	}

	rec := &state.Record{
		Name:          p.Name,
		Version:       version,
		ContentDigest: storeDigest,
		Source:        f.source,
		Trust:         deriveTrust(f.source, f.registryTrust),
		Publisher:     f.publisher,
		SourceRef:     f.sourceRef,
		LocalPath:     f.localPath,
		Specifier:     spec.Raw(),
		InstalledAt:   i.now(),
	}
	if err := st.Upsert(p.Name, rec); err != nil {
		return nil, err
	}

	logger.Infow("installed persona",
		"name", p.Name, "version", version, "scope", sc, "source", f.source)

	return &Result{Specifier: spec.Raw(), Record: rec, Scope: sc}, nil
}

// alreadyInstalled applies the per-source idempotency rules.
func alreadyInstalled(existing *state.Record, f *fetched, version, digest string) bool {
	if existing == nil {
		return false
	}
	switch f.source {
	case state.SourceRegistry:
		if f.digestAddressed {
			return existing.ContentDigest == digest
		}
		// Without a requested version any existing record satisfies the
		// install; with one, the versions must match.
		return !f.versionRequested || existing.Version == version
	case state.SourceSourceRepo:
		// A ref match alone is not enough: upstream content at the same
		// ref may have changed, so the digest must match too.
		return existing.SourceRef == f.sourceRef && existing.ContentDigest == digest
	case state.SourceLocal:
		return existing.LocalPath == f.localPath && existing.ContentDigest == digest
	default:
		return false
	}
}

func (i *Installer) resolveRegistry(ctx context.Context, sp specifier.Registry) (*fetched, error) {
	lookupName := sp.LookupName()
	entry, err := i.reg.Lookup(ctx, lookupName)
	if err != nil {
		return nil, err
	}

	versionRequested := sp.Version != "" && sp.Version != specifier.DefaultVersion
	version := sp.Version
	if !versionRequested {
		version = entry.Latest
	}
	if _, ok := entry.Versions[version]; !ok {
		return nil, fmt.Errorf("%w: version %s of %s", registry.ErrNotFound, version, lookupName)
	}

	art, err := i.reg.FetchVersion(ctx, lookupName, version)
	if err != nil {
		return nil, err
	}

	publisher := entry.Metadata.Publisher
	if publisher == "" {
		publisher = sp.Publisher
	}

	return &fetched{
		content:          art.Content,
		declaredDigest:   art.Digest,
		source:           state.SourceRegistry,
		registryTrust:    entry.Metadata.Trust,
		publisher:        publisher,
		expectedName:     sp.Name,
		version:          version,
		versionRequested: versionRequested,
	}, nil
}

func (i *Installer) resolveHash(ctx context.Context, sp specifier.Hash) (*fetched, error) {
	art, err := i.reg.LookupByDigest(ctx, sp.Digest)
	if err != nil {
		return nil, err
	}

	return &fetched{
		content:         art.Content,
		declaredDigest:  art.Digest,
		source:          state.SourceRegistry,
		registryTrust:   art.Trust,
		expectedName:    art.Name,
		version:         art.Version,
		digestAddressed: true,
	}, nil
}

func (i *Installer) resolveSourceRepo(ctx context.Context, sp specifier.SourceRepo) (*fetched, error) {
	for _, filename := range persona.CandidateFilenames {
		data, ok, err := i.src.FetchFile(ctx, sp.Owner, sp.Repo, sp.Ref, filename)
		if err != nil {
			return nil, err
		}
		if !ok {
			continue
		}

		content := data
		if strings.HasSuffix(filename, ".yaml") || strings.HasSuffix(filename, ".yml") {
			p, err := persona.ParseYAML(data)
			if err != nil {
				return nil, err
			}
			content = p.Content
		}

		return &fetched{
			content:   content,
			source:    state.SourceSourceRepo,
			sourceRef: sp.Ref,
			publisher: sp.Owner,
		}, nil
	}

	return nil, fmt.Errorf("%w: no persona artifact in %s/%s@%s",
		registry.ErrNotFound, sp.Owner, sp.Repo, sp.Ref)
}

func (i *Installer) resolveLocal(sp specifier.LocalPath) (*fetched, error) {
	info, err := os.Stat(sp.Path)
	if err != nil {
		return nil, fmt.Errorf("resolving local path: %w", err)
	}

	var p *persona.Persona
	if info.IsDir() {
		p, _, err = persona.LoadFromDir(sp.Path)
	} else {
		p, err = persona.LoadFile(sp.Path)
	}
	if err != nil {
		return nil, err
	}

	// Local artifacts are referenced, never copied: future drift checks
	// re-read the original path.
	return &fetched{
		content:   p.Content,
		source:    state.SourceLocal,
		localPath: sp.Path,
	}, nil
}

func (i *Installer) scopeStore(explicit scope.Scope) (*state.Store, scope.Scope, error) {
	sc := scope.Resolve(explicit, i.projectFound)
	if sc == scope.Project {
		if !i.projectFound {
			return nil, sc, ErrNoProjectRoot
		}
		return state.NewStore(scope.ProjectDir(i.projectRoot)), sc, nil
	}
	return state.NewStore(i.globalDir), sc, nil
}

func writeArtifact(st *state.Store, name string, content []byte) error {
	dir := st.ArtifactDir(name)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating artifact directory: %w", err)
	}
	path := filepath.Join(dir, persona.CanonicalFilename)
	if err := os.WriteFile(path, content, 0o644); err != nil {
		return fmt.Errorf("writing artifact: %w", err)
	}
	return nil
}

// deriveTrust maps the install source (plus registry-reported trust for
// registry installs) onto a trust level. The artifact's own fields never
// participate.
func deriveTrust(src state.Source, registryTrust string) state.Trust {
	switch src {
	case state.SourceSourceRepo:
		return state.TrustSourceRepo
	case state.SourceLocal:
		return state.TrustLocal
	}

	switch registryTrust {
	case string(state.TrustVerified):
		return state.TrustVerified
	case string(state.TrustAnonymous):
		return state.TrustAnonymous
	default:
		return state.TrustCommunity
	}
}

// normalizeDigest strips an algorithm prefix ("sha256:...") so digests
// compare in encoded form.
func normalizeDigest(d string) string {
	if idx := strings.LastIndex(d, ":"); idx >= 0 {
		return d[idx+1:]
	}
	return d
}
