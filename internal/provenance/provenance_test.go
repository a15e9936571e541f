// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

package provenance

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	gogit "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// initCorpus creates a repository with one committed kernel under
// energy/eri and returns the repository root.
func initCorpus(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()

	r, err := gogit.PlainInit(dir, false)
	require.NoError(t, err)
	wt, err := r.Worktree()
	require.NoError(t, err)

	rel := filepath.Join("energy", "eri", "hgp_os_eri_s_s_s_s.cpp")
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "energy", "eri"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, rel), []byte("void f()\n{\n}\n"), 0o644))

	_, err = wt.Add(rel)
	require.NoError(t, err)
	_, err = wt.Commit("regenerate eri kernels\n\nbody", &gogit.CommitOptions{
		Author: &object.Signature{
			Name:  "Test",
			Email: "test@test.com",
			When:  time.Now(),
		},
	})
	require.NoError(t, err)
	return dir
}

func TestLookup_CleanFromSubdirectory(t *testing.T) {
	root := initCorpus(t)

	info, err := Lookup(filepath.Join(root, "energy", "eri"))
	require.NoError(t, err)
	assert.Len(t, info.Revision, 40)
	assert.Equal(t, "regenerate eri kernels", info.Subject)
	assert.False(t, info.Dirty)
	assert.False(t, info.CommittedAt.IsZero())
	assert.Equal(t, info.Revision[:7], info.String())
}

func TestLookup_Dirty(t *testing.T) {
	root := initCorpus(t)
	require.NoError(t, os.WriteFile(filepath.Join(root, "energy", "eri", "hgp_os_eri_p_s_s_s.cpp"), []byte("{\n"), 0o644))

	info, err := Lookup(root)
	require.NoError(t, err)
	assert.True(t, info.Dirty)
	assert.Contains(t, info.String(), "(dirty)")
}

func TestLookup_NoCommits(t *testing.T) {
	dir := t.TempDir()
	_, err := gogit.PlainInit(dir, false)
	require.NoError(t, err)

	info, err := Lookup(dir)
	require.NoError(t, err)
	assert.Empty(t, info.Revision)
	assert.Equal(t, "no commits", info.String())
}

func TestLookup_NotARepo(t *testing.T) {
	_, err := Lookup(t.TempDir())
	assert.ErrorIs(t, err, ErrNoGit)
}
