// SPDX-FileCopyrightText: Copyright 2026 Personify Authors
// SPDX-License-Identifier: Apache-2.0

package installer

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/personify/personify-core/installer/mocks"
	"github.com/personify/personify-core/persona"
	"github.com/personify/personify-core/recovery"
	"github.com/personify/personify-core/registry"
	"github.com/personify/personify-core/scope"
	"github.com/personify/personify-core/state"
)

var testTime = time.Date(2026, 3, 14, 9, 26, 53, 0, time.UTC)

func testInstaller(t *testing.T, reg RegistryAPI, src SourceAPI, opts ...Option) (*Installer, string) {
	t.Helper()
	globalDir := t.TempDir()
	all := append([]Option{
		WithGlobalDir(globalDir),
		WithProjectRoot(""),
		WithClock(func() time.Time { return testTime }),
	}, opts...)
	return New(reg, src, all...), globalDir
}

func artifactJSON(t *testing.T, name, version string) []byte {
	t.Helper()
	content, err := json.Marshal(map[string]any{
		"name":        name,
		"version":     version,
		"displayName": "Test Persona",
		"prompt":      "You are a test persona.",
	})
	require.NoError(t, err)
	return content
}

func digestOf(t *testing.T, content []byte) string {
	t.Helper()
	p, err := persona.Parse(content)
	require.NoError(t, err)
	d, err := p.Digest()
	require.NoError(t, err)
	return d.Encoded()
}

func registryEntry(latest string, versions ...string) *registry.IndexEntry {
	entry := &registry.IndexEntry{
		Latest:   latest,
		Versions: map[string]registry.VersionInfo{},
		Metadata: registry.EntryMetadata{Trust: "community"},
	}
	for _, v := range versions {
		entry.Versions[v] = registry.VersionInfo{PublishedAt: testTime}
	}
	return entry
}

func TestInstallFromRegistry(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	reg := mocks.NewMockRegistryAPI(ctrl)

	content := artifactJSON(t, "alaric", "1.2.0")
	reg.EXPECT().Lookup(gomock.Any(), "alaric").Return(registryEntry("1.2.0", "1.0.0", "1.2.0"), nil)
	reg.EXPECT().FetchVersion(gomock.Any(), "alaric", "1.2.0").Return(&registry.ArtifactResponse{
		Name:    "alaric",
		Version: "1.2.0",
		Content: content,
	}, nil)

	inst, globalDir := testInstaller(t, reg, nil)
	res, err := inst.Install(context.Background(), "alaric", Options{})
	require.NoError(t, err)

	require.False(t, res.AlreadyInstalled)
	require.Equal(t, scope.Global, res.Scope)
	require.Equal(t, "alaric", res.Record.Name)
	require.Equal(t, "1.2.0", res.Record.Version)
	require.Equal(t, state.SourceRegistry, res.Record.Source)
	require.Equal(t, state.TrustCommunity, res.Record.Trust)
	require.Equal(t, digestOf(t, content), res.Record.ContentDigest)
	require.Equal(t, testTime, res.Record.InstalledAt)

	// The artifact is persisted under the scope's personas directory and
	// the record lands in the state file.
	written, err := os.ReadFile(filepath.Join(globalDir, "personas", "alaric", persona.CanonicalFilename))
	require.NoError(t, err)
	require.Equal(t, content, written)

	st := state.NewStore(globalDir)
	rec, err := st.Get("alaric")
	require.NoError(t, err)
	require.NotNil(t, rec)
	require.Equal(t, "alaric", rec.Specifier)
}

func TestInstallScopedPublisher(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	reg := mocks.NewMockRegistryAPI(ctrl)

	content := artifactJSON(t, "alaric", "2.0.0")
	reg.EXPECT().Lookup(gomock.Any(), "morphist/alaric").Return(registryEntry("2.0.0", "2.0.0"), nil)
	reg.EXPECT().FetchVersion(gomock.Any(), "morphist/alaric", "2.0.0").Return(&registry.ArtifactResponse{
		Name: "alaric", Version: "2.0.0", Content: content,
	}, nil)

	inst, _ := testInstaller(t, reg, nil)
	res, err := inst.Install(context.Background(), "@morphist/alaric", Options{})
	require.NoError(t, err)
	require.Equal(t, "morphist", res.Record.Publisher)
}

func TestInstallIdempotentWithoutVersion(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	reg := mocks.NewMockRegistryAPI(ctrl)

	content := artifactJSON(t, "alaric", "1.0.0")
	reg.EXPECT().Lookup(gomock.Any(), "alaric").Return(registryEntry("1.0.0", "1.0.0"), nil).Times(2)
	reg.EXPECT().FetchVersion(gomock.Any(), "alaric", "1.0.0").Return(&registry.ArtifactResponse{
		Name: "alaric", Version: "1.0.0", Content: content,
	}, nil).Times(2)

	inst, _ := testInstaller(t, reg, nil)

	first, err := inst.Install(context.Background(), "alaric", Options{})
	require.NoError(t, err)
	require.False(t, first.AlreadyInstalled)

	second, err := inst.Install(context.Background(), "alaric", Options{})
	require.NoError(t, err)
	require.True(t, second.AlreadyInstalled)
	require.Equal(t, first.Record.InstalledAt, second.Record.InstalledAt)
	require.Equal(t, first.Record.ContentDigest, second.Record.ContentDigest)
}

func TestInstallPinnedVersionReinstalls(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	reg := mocks.NewMockRegistryAPI(ctrl)

	entry := registryEntry("2.0.0", "1.0.0", "2.0.0")
	reg.EXPECT().Lookup(gomock.Any(), "alaric").Return(entry, nil).Times(2)
	reg.EXPECT().FetchVersion(gomock.Any(), "alaric", "2.0.0").Return(&registry.ArtifactResponse{
		Name: "alaric", Version: "2.0.0", Content: artifactJSON(t, "alaric", "2.0.0"),
	}, nil)
	reg.EXPECT().FetchVersion(gomock.Any(), "alaric", "1.0.0").Return(&registry.ArtifactResponse{
		Name: "alaric", Version: "1.0.0", Content: artifactJSON(t, "alaric", "1.0.0"),
	}, nil)

	inst, _ := testInstaller(t, reg, nil)

	first, err := inst.Install(context.Background(), "alaric", Options{})
	require.NoError(t, err)
	require.Equal(t, "2.0.0", first.Record.Version)

	// Pinning a different version replaces the existing record.
	second, err := inst.Install(context.Background(), "alaric@1.0.0", Options{})
	require.NoError(t, err)
	require.False(t, second.AlreadyInstalled)
	require.Equal(t, "1.0.0", second.Record.Version)
}

func TestInstallForceRewrites(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	reg := mocks.NewMockRegistryAPI(ctrl)

	content := artifactJSON(t, "alaric", "1.0.0")
	reg.EXPECT().Lookup(gomock.Any(), "alaric").Return(registryEntry("1.0.0", "1.0.0"), nil).Times(2)
	reg.EXPECT().FetchVersion(gomock.Any(), "alaric", "1.0.0").Return(&registry.ArtifactResponse{
		Name: "alaric", Version: "1.0.0", Content: content,
	}, nil).Times(2)

	inst, _ := testInstaller(t, reg, nil)

	_, err := inst.Install(context.Background(), "alaric", Options{})
	require.NoError(t, err)

	res, err := inst.Install(context.Background(), "alaric", Options{Force: true})
	require.NoError(t, err)
	require.False(t, res.AlreadyInstalled)
}

func TestInstallVersionNotFound(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	reg := mocks.NewMockRegistryAPI(ctrl)
	reg.EXPECT().Lookup(gomock.Any(), "alaric").Return(registryEntry("1.0.0", "1.0.0"), nil)

	inst, _ := testInstaller(t, reg, nil)
	_, err := inst.Install(context.Background(), "alaric@9.9.9", Options{})
	require.ErrorIs(t, err, registry.ErrNotFound)
}

func TestInstallNameMismatch(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	reg := mocks.NewMockRegistryAPI(ctrl)
	reg.EXPECT().Lookup(gomock.Any(), "alaric").Return(registryEntry("1.0.0", "1.0.0"), nil)
	reg.EXPECT().FetchVersion(gomock.Any(), "alaric", "1.0.0").Return(&registry.ArtifactResponse{
		Name: "alaric", Version: "1.0.0", Content: artifactJSON(t, "impostor", "1.0.0"),
	}, nil)

	inst, globalDir := testInstaller(t, reg, nil)
	_, err := inst.Install(context.Background(), "alaric", Options{})

	var mismatch *NameMismatchError
	require.ErrorAs(t, err, &mismatch)
	require.Equal(t, "alaric", mismatch.Expected)
	require.Equal(t, "impostor", mismatch.Actual)

	// Nothing is recorded under either name.
	st := state.NewStore(globalDir)
	rec, err := st.Get("impostor")
	require.NoError(t, err)
	require.Nil(t, rec)
}

func TestInstallInvalidArtifact(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	reg := mocks.NewMockRegistryAPI(ctrl)
	reg.EXPECT().Lookup(gomock.Any(), "alaric").Return(registryEntry("1.0.0", "1.0.0"), nil)
	reg.EXPECT().FetchVersion(gomock.Any(), "alaric", "1.0.0").Return(&registry.ArtifactResponse{
		Name: "alaric", Version: "1.0.0", Content: []byte(`{"name":"Alaric!"}`),
	}, nil)

	inst, _ := testInstaller(t, reg, nil)
	_, err := inst.Install(context.Background(), "alaric", Options{})

	var verr *persona.ValidationError
	require.ErrorAs(t, err, &verr)
	// Both the missing version and the illegal name are reported together.
	require.Len(t, verr.Errors, 2)
}

func TestInstallServerDigestAuthoritative(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	reg := mocks.NewMockRegistryAPI(ctrl)

	content := artifactJSON(t, "alaric", "1.0.0")
	reg.EXPECT().Lookup(gomock.Any(), "alaric").Return(registryEntry("1.0.0", "1.0.0"), nil)
	reg.EXPECT().FetchVersion(gomock.Any(), "alaric", "1.0.0").Return(&registry.ArtifactResponse{
		Name: "alaric", Version: "1.0.0", Content: content,
		Digest: "sha256:deadbeefdeadbeefdeadbeefdeadbeefdeadbeefdeadbeefdeadbeefdeadbeef",
	}, nil)

	inst, _ := testInstaller(t, reg, nil)
	res, err := inst.Install(context.Background(), "alaric", Options{})
	require.NoError(t, err)

	// The server-declared digest is stored even though it disagrees with
	// the locally computed one; the disagreement is only warned about.
	require.Equal(t, "deadbeefdeadbeefdeadbeefdeadbeefdeadbeefdeadbeefdeadbeefdeadbeef", res.Record.ContentDigest)
}

func TestInstallFromHash(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	reg := mocks.NewMockRegistryAPI(ctrl)

	content := artifactJSON(t, "alaric", "1.0.0")
	d := digestOf(t, content)
	reg.EXPECT().LookupByDigest(gomock.Any(), d[:16]).Return(&registry.ArtifactResponse{
		Name: "alaric", Version: "1.0.0", Content: content, Digest: d, Trust: "verified",
	}, nil)

	inst, _ := testInstaller(t, reg, nil)
	res, err := inst.Install(context.Background(), "hash:"+d[:16], Options{})
	require.NoError(t, err)
	require.Equal(t, state.TrustVerified, res.Record.Trust)
	require.Equal(t, d, res.Record.ContentDigest)
}

func TestInstallFromHashComparesDigests(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	reg := mocks.NewMockRegistryAPI(ctrl)

	v1 := artifactJSON(t, "alaric", "1.0.0")
	v2 := artifactJSON(t, "alaric", "2.0.0")
	d1, d2 := digestOf(t, v1), digestOf(t, v2)

	reg.EXPECT().LookupByDigest(gomock.Any(), d1[:16]).Return(&registry.ArtifactResponse{
		Name: "alaric", Version: "1.0.0", Content: v1, Digest: d1,
	}, nil).Times(2)
	reg.EXPECT().LookupByDigest(gomock.Any(), d2[:16]).Return(&registry.ArtifactResponse{
		Name: "alaric", Version: "2.0.0", Content: v2, Digest: d2,
	}, nil)

	inst, _ := testInstaller(t, reg, nil)

	_, err := inst.Install(context.Background(), "hash:"+d1[:16], Options{})
	require.NoError(t, err)

	// Same content hash: no write.
	second, err := inst.Install(context.Background(), "hash:"+d1[:16], Options{})
	require.NoError(t, err)
	require.True(t, second.AlreadyInstalled)

	// A different hash of the same persona must replace the record.
	third, err := inst.Install(context.Background(), "hash:"+d2[:16], Options{})
	require.NoError(t, err)
	require.False(t, third.AlreadyInstalled)
	require.Equal(t, d2, third.Record.ContentDigest)
}

func TestInstallFromSourceRepo(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	src := mocks.NewMockSourceAPI(ctrl)

	content := artifactJSON(t, "alaric", "0.3.0")
	src.EXPECT().FetchFile(gomock.Any(), "morphist", "personas", "main", "persona.json").
		Return(content, true, nil)

	inst, _ := testInstaller(t, nil, src)
	res, err := inst.Install(context.Background(), "github:morphist/personas", Options{})
	require.NoError(t, err)

	require.Equal(t, state.SourceSourceRepo, res.Record.Source)
	require.Equal(t, state.TrustSourceRepo, res.Record.Trust)
	require.Equal(t, "main", res.Record.SourceRef)
	require.Equal(t, "morphist", res.Record.Publisher)
	require.Equal(t, "0.3.0", res.Record.Version)
}

func TestInstallSourceRepoCandidateFallthrough(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	src := mocks.NewMockSourceAPI(ctrl)

	content := artifactJSON(t, "alaric", "0.1.0")
	gomock.InOrder(
		src.EXPECT().FetchFile(gomock.Any(), "morphist", "personas", "v2", "persona.json").
			Return(nil, false, nil),
		src.EXPECT().FetchFile(gomock.Any(), "morphist", "personas", "v2", "personality.json").
			Return(content, true, nil),
	)

	inst, _ := testInstaller(t, nil, src)
	res, err := inst.Install(context.Background(), "github:morphist/personas@v2", Options{})
	require.NoError(t, err)
	require.Equal(t, "v2", res.Record.SourceRef)
}

func TestInstallSourceRepoNoArtifact(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	src := mocks.NewMockSourceAPI(ctrl)
	src.EXPECT().FetchFile(gomock.Any(), "morphist", "empty", "main", gomock.Any()).
		Return(nil, false, nil).Times(len(persona.CandidateFilenames))

	inst, _ := testInstaller(t, nil, src)
	_, err := inst.Install(context.Background(), "github:morphist/empty", Options{})
	require.ErrorIs(t, err, registry.ErrNotFound)
}

func TestInstallSourceRepoDigestChangeRewrites(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	src := mocks.NewMockSourceAPI(ctrl)

	gomock.InOrder(
		src.EXPECT().FetchFile(gomock.Any(), "morphist", "personas", "main", "persona.json").
			Return(artifactJSON(t, "alaric", "0.1.0"), true, nil),
		src.EXPECT().FetchFile(gomock.Any(), "morphist", "personas", "main", "persona.json").
			Return(artifactJSON(t, "alaric", "0.2.0"), true, nil),
	)

	inst, _ := testInstaller(t, nil, src)

	first, err := inst.Install(context.Background(), "github:morphist/personas", Options{})
	require.NoError(t, err)

	// Same ref, changed upstream content: the ref match alone must not
	// short-circuit the install.
	second, err := inst.Install(context.Background(), "github:morphist/personas", Options{})
	require.NoError(t, err)
	require.False(t, second.AlreadyInstalled)
	require.NotEqual(t, first.Record.ContentDigest, second.Record.ContentDigest)
}

func TestInstallSourceRepoSameDigestIdempotent(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	src := mocks.NewMockSourceAPI(ctrl)

	content := artifactJSON(t, "alaric", "0.1.0")
	src.EXPECT().FetchFile(gomock.Any(), "morphist", "personas", "main", "persona.json").
		Return(content, true, nil).Times(2)

	inst, _ := testInstaller(t, nil, src)

	_, err := inst.Install(context.Background(), "github:morphist/personas", Options{})
	require.NoError(t, err)

	second, err := inst.Install(context.Background(), "github:morphist/personas", Options{})
	require.NoError(t, err)
	require.True(t, second.AlreadyInstalled)
}

func TestInstallFromLocalPath(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	content := artifactJSON(t, "alaric", "0.0.1")
	path := filepath.Join(dir, "alaric.json")
	require.NoError(t, os.WriteFile(path, content, 0o644))

	inst, globalDir := testInstaller(t, nil, nil)
	res, err := inst.Install(context.Background(), path, Options{})
	require.NoError(t, err)

	require.Equal(t, state.SourceLocal, res.Record.Source)
	require.Equal(t, state.TrustLocal, res.Record.Trust)
	require.Equal(t, path, res.Record.LocalPath)

	// Local installs reference the original file, nothing is copied.
	require.NoDirExists(t, filepath.Join(globalDir, "personas", "alaric"))

	// Reinstalling the unchanged file is a no-op.
	second, err := inst.Install(context.Background(), path, Options{})
	require.NoError(t, err)
	require.True(t, second.AlreadyInstalled)

	// Editing the file invalidates the record and triggers a rewrite.
	require.NoError(t, os.WriteFile(path, artifactJSON(t, "alaric", "0.0.2"), 0o644))
	third, err := inst.Install(context.Background(), path, Options{})
	require.NoError(t, err)
	require.False(t, third.AlreadyInstalled)
	require.Equal(t, "0.0.2", third.Record.Version)
}

func TestInstallLocalDirectory(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(
		filepath.Join(dir, persona.CanonicalFilename), artifactJSON(t, "alaric", "0.0.1"), 0o644))

	inst, _ := testInstaller(t, nil, nil)
	res, err := inst.Install(context.Background(), dir+string(os.PathSeparator), Options{})
	require.NoError(t, err)
	require.Equal(t, state.SourceLocal, res.Record.Source)
}

func TestInstallScopeRouting(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	reg := mocks.NewMockRegistryAPI(ctrl)

	content := artifactJSON(t, "alaric", "1.0.0")
	reg.EXPECT().Lookup(gomock.Any(), "alaric").Return(registryEntry("1.0.0", "1.0.0"), nil).Times(2)
	reg.EXPECT().FetchVersion(gomock.Any(), "alaric", "1.0.0").Return(&registry.ArtifactResponse{
		Name: "alaric", Version: "1.0.0", Content: content,
	}, nil).Times(2)

	projectRoot := t.TempDir()
	inst, globalDir := testInstaller(t, reg, nil, WithProjectRoot(projectRoot))

	// With a discovered project root the default scope is the project.
	res, err := inst.Install(context.Background(), "alaric", Options{})
	require.NoError(t, err)
	require.Equal(t, scope.Project, res.Scope)
	require.FileExists(t, filepath.Join(projectRoot, scope.MarkerDir, state.Filename))

	// An explicit global scope bypasses the project.
	res, err = inst.Install(context.Background(), "alaric", Options{Scope: scope.Global})
	require.NoError(t, err)
	require.Equal(t, scope.Global, res.Scope)
	require.FileExists(t, filepath.Join(globalDir, state.Filename))
}

func TestInstallProjectScopeWithoutRoot(t *testing.T) {
	t.Parallel()

	inst, _ := testInstaller(t, nil, nil)
	_, err := inst.Install(context.Background(), "alaric", Options{Scope: scope.Project})
	require.ErrorIs(t, err, ErrNoProjectRoot)
}

func TestInstallAllIsolatesFailures(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	reg := mocks.NewMockRegistryAPI(ctrl)

	reg.EXPECT().Lookup(gomock.Any(), "alaric").Return(registryEntry("1.0.0", "1.0.0"), nil)
	reg.EXPECT().FetchVersion(gomock.Any(), "alaric", "1.0.0").Return(&registry.ArtifactResponse{
		Name: "alaric", Version: "1.0.0", Content: artifactJSON(t, "alaric", "1.0.0"),
	}, nil)
	reg.EXPECT().Lookup(gomock.Any(), "missing").Return(nil, registry.ErrNotFound)
	reg.EXPECT().Lookup(gomock.Any(), "brienne").Return(registryEntry("1.0.0", "1.0.0"), nil)
	reg.EXPECT().FetchVersion(gomock.Any(), "brienne", "1.0.0").Return(&registry.ArtifactResponse{
		Name: "brienne", Version: "1.0.0", Content: artifactJSON(t, "brienne", "1.0.0"),
	}, nil)

	inst, _ := testInstaller(t, reg, nil)
	items := inst.InstallAll(context.Background(), []string{"alaric", "missing", "brienne"}, Options{})
	require.Len(t, items, 3)

	require.NoError(t, items[0].Err)
	require.ErrorIs(t, items[1].Err, registry.ErrNotFound)
	// The failure in the middle never aborts the rest of the batch.
	require.NoError(t, items[2].Err)
	require.Equal(t, "brienne", items[2].Result.Record.Name)
}

func TestInstallAllRecoversPanics(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	reg := mocks.NewMockRegistryAPI(ctrl)

	reg.EXPECT().Lookup(gomock.Any(), "alaric").DoAndReturn(
		func(context.Context, string) (*registry.IndexEntry, error) {
			panic("registry client bug")
		})
	reg.EXPECT().Lookup(gomock.Any(), "brienne").Return(registryEntry("1.0.0", "1.0.0"), nil)
	reg.EXPECT().FetchVersion(gomock.Any(), "brienne", "1.0.0").Return(&registry.ArtifactResponse{
		Name: "brienne", Version: "1.0.0", Content: artifactJSON(t, "brienne", "1.0.0"),
	}, nil)

	inst, _ := testInstaller(t, reg, nil)
	items := inst.InstallAll(context.Background(), []string{"alaric", "brienne"}, Options{})
	require.Len(t, items, 2)

	var pe *recovery.PanicError
	require.ErrorAs(t, items[0].Err, &pe)
	require.NoError(t, items[1].Err)
}

func TestUninstall(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	reg := mocks.NewMockRegistryAPI(ctrl)
	reg.EXPECT().Lookup(gomock.Any(), "alaric").Return(registryEntry("1.0.0", "1.0.0"), nil)
	reg.EXPECT().FetchVersion(gomock.Any(), "alaric", "1.0.0").Return(&registry.ArtifactResponse{
		Name: "alaric", Version: "1.0.0", Content: artifactJSON(t, "alaric", "1.0.0"),
	}, nil)

	inst, globalDir := testInstaller(t, reg, nil)
	_, err := inst.Install(context.Background(), "alaric", Options{})
	require.NoError(t, err)

	artifactDir := filepath.Join(globalDir, "personas", "alaric")
	require.DirExists(t, artifactDir)

	removed, err := inst.Uninstall("alaric", Options{})
	require.NoError(t, err)
	require.True(t, removed)
	require.NoDirExists(t, artifactDir)

	removed, err = inst.Uninstall("alaric", Options{})
	require.NoError(t, err)
	require.False(t, removed)
}

func TestUninstallRejectsUnsafeNames(t *testing.T) {
	t.Parallel()

	inst, _ := testInstaller(t, nil, nil)
	for _, name := range []string{"", "../etc", "Alaric", "a\x00b"} {
		_, err := inst.Uninstall(name, Options{})
		require.Error(t, err, "name %q", name)
	}
}

func TestUninstallLocalKeepsOriginal(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "alaric.json")
	require.NoError(t, os.WriteFile(path, artifactJSON(t, "alaric", "0.0.1"), 0o644))

	inst, _ := testInstaller(t, nil, nil)
	_, err := inst.Install(context.Background(), path, Options{})
	require.NoError(t, err)

	removed, err := inst.Uninstall("alaric", Options{})
	require.NoError(t, err)
	require.True(t, removed)
	// The referenced file is the user's, never touched by uninstall.
	require.FileExists(t, path)
}

func TestListAggregatesScopes(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	reg := mocks.NewMockRegistryAPI(ctrl)
	reg.EXPECT().Lookup(gomock.Any(), gomock.Any()).Return(registryEntry("1.0.0", "1.0.0"), nil).Times(2)
	reg.EXPECT().FetchVersion(gomock.Any(), "alaric", "1.0.0").Return(&registry.ArtifactResponse{
		Name: "alaric", Version: "1.0.0", Content: artifactJSON(t, "alaric", "1.0.0"),
	}, nil)
	reg.EXPECT().FetchVersion(gomock.Any(), "brienne", "1.0.0").Return(&registry.ArtifactResponse{
		Name: "brienne", Version: "1.0.0", Content: artifactJSON(t, "brienne", "1.0.0"),
	}, nil)

	projectRoot := t.TempDir()
	inst, _ := testInstaller(t, reg, nil, WithProjectRoot(projectRoot))

	_, err := inst.Install(context.Background(), "alaric", Options{Scope: scope.Project})
	require.NoError(t, err)
	_, err = inst.Install(context.Background(), "brienne", Options{Scope: scope.Global})
	require.NoError(t, err)

	recs, err := inst.List()
	require.NoError(t, err)
	require.Len(t, recs, 2)
	require.Equal(t, "alaric", recs[0].Record.Name)
	require.Equal(t, []scope.Scope{scope.Project}, recs[0].Scopes)
	require.Equal(t, "brienne", recs[1].Record.Name)
	require.Equal(t, []scope.Scope{scope.Global}, recs[1].Scopes)
}

func TestInstallRegistryErrorPropagates(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	reg := mocks.NewMockRegistryAPI(ctrl)
	netErr := &registry.NetworkError{Attempts: 4, Err: errors.New("connection refused")}
	reg.EXPECT().Lookup(gomock.Any(), "alaric").Return(nil, netErr)

	inst, _ := testInstaller(t, reg, nil)
	_, err := inst.Install(context.Background(), "alaric", Options{})

	var ne *registry.NetworkError
	require.ErrorAs(t, err, &ne)
	require.Equal(t, 4, ne.Attempts)
}
