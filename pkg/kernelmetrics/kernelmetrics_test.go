// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

package kernelmetrics

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	gogit "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/petar-djukic/kernelmetrics/pkg/types"
)

const pairKernel = `void hgp_os_eri_p_s_s_s(Double* abcd)
{
  for (auto& pair : pairs) {
    Double* tmp = scr.getNewMemPos(9);
    // shell quartet name: SQ_ERI_P_S_S_S
    abcd[0] = tmp[0]+tmp[1];
  }
}
`

const splitKernel = `void hgp_os_eri_d_s_s_s(Double* abcd)
{
  for (auto& pair : pairs) {
    hgp_os_eri_d_s_s_s_vrr(abcd);
  }
}
`

const splitVRR = `void hgp_os_eri_d_s_s_s_vrr(Double* abcd)
{
  abcd[0] = a*b;
}
`

// writeCorpus lays out root/energy/eri with one single-file class and one
// split class, and returns root.
func writeCorpus(t *testing.T) string {
	t.Helper()
	root := t.TempDir()
	dir := filepath.Join(root, "energy", "eri")
	require.NoError(t, os.MkdirAll(dir, 0o755))
	for name, content := range map[string]string{
		"hgp_os_eri_p_s_s_s.cpp":     pairKernel,
		"hgp_os_eri_d_s_s_s.cpp":     splitKernel,
		"hgp_os_eri_d_s_s_s_vrr.cpp": splitVRR,
	} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
	}
	return root
}

func TestNew_InvalidConfig(t *testing.T) {
	tests := []struct {
		name string
		cfg  Config
	}{
		{"missing root", Config{Job: "eri"}},
		{"missing job", Config{Root: "/tmp"}},
		{"negative workers", Config{Root: "/tmp", Job: "eri", Workers: -1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.cfg)
			assert.ErrorIs(t, err, ErrInvalidConfig)
		})
	}
}

func TestNew_UnknownWorkArea(t *testing.T) {
	root := writeCorpus(t)

	_, err := New(Config{Root: root, Job: "eri", Order: 1})
	assert.ErrorIs(t, err, ErrUnsupportedConfiguration)

	_, err = New(Config{Root: root, Job: "eri", Order: 5})
	assert.ErrorIs(t, err, ErrUnsupportedConfiguration)
}

func TestNew_LogsMarkers(t *testing.T) {
	root := writeCorpus(t)
	core, logs := observer.New(zap.DebugLevel)

	_, err := New(Config{
		Root:    root,
		Job:     "eri",
		Markers: Markers{AllocCall: "allocate"},
		Logger:  zap.New(core),
	})
	require.NoError(t, err)

	entries := logs.FilterMessage("scanner markers").All()
	require.Len(t, entries, 1)
	fields := entries[0].ContextMap()
	assert.Equal(t, "allocate", fields["alloc_call"])
	assert.Equal(t, DefaultMarkers().CoreEntry, fields["core_entry"])
}

func TestAnalyzer_Run(t *testing.T) {
	root := writeCorpus(t)
	a, err := New(Config{Root: root, Job: "eri", Workers: 2})
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(root, "energy", "eri"), a.WorkDir())

	res, err := a.Run(context.Background())
	require.NoError(t, err)
	require.Len(t, res.Classes, 2)
	assert.Empty(t, res.Failed())
	assert.Equal(t, 2, res.Succeeded())
	assert.Empty(t, res.Revision)

	ps := res.Classes[0]
	assert.Equal(t, types.ClassCode(1), ps.Code)
	assert.Equal(t, 9, ps.Counters.MemoryElems())
	assert.Equal(t, 1, ps.Counters.K2.AddSub)

	ds := res.Classes[1]
	assert.Equal(t, types.ClassCode(2), ds.Code)
	assert.Equal(t, 1, ds.Counters.K2.MulDiv)

	var buf bytes.Buffer
	require.NoError(t, res.WriteDataFile(&buf))
	assert.Equal(t, "             1         9    1    0    0    0\n"+
		"             2         0    2    0    0    0\n", buf.String())

	buf.Reset()
	require.NoError(t, res.WriteText(&buf, "eri"))
	assert.Contains(t, buf.String(), "hgp_os_eri_d_s_s_s.cpp")

	path := filepath.Join(t.TempDir(), "eri.prom")
	require.NoError(t, res.WriteTextfile(path))
	assert.FileExists(t, path)
}

func TestAnalyzer_SingleFile(t *testing.T) {
	root := writeCorpus(t)
	a, err := New(Config{Root: root, Job: "eri", SingleFile: true})
	require.NoError(t, err)

	res, err := a.Run(context.Background())
	require.NoError(t, err)

	failed := res.Failed()
	require.Len(t, failed, 1)
	assert.Equal(t, "hgp_os_eri_d_s_s_s.cpp", failed[0].File)
	assert.ErrorIs(t, failed[0].Err, ErrUnsupportedConfiguration)
}

func TestAnalyzer_Class(t *testing.T) {
	root := writeCorpus(t)
	a, err := New(Config{Root: root, Job: "eri"})
	require.NoError(t, err)

	cr, err := a.Class(context.Background(), "hgp_os_eri_p_s_s_s.cpp")
	require.NoError(t, err)
	assert.Equal(t, types.ClassSignature{1, 0, 0, 0}, cr.Signature)

	_, err = a.Class(context.Background(), "hgp_os_eri_f_s_s_s.cpp")
	assert.Error(t, err)
}

func TestAnalyzer_Revision(t *testing.T) {
	root := writeCorpus(t)
	r, err := gogit.PlainInit(root, false)
	require.NoError(t, err)
	wt, err := r.Worktree()
	require.NoError(t, err)
	require.NoError(t, wt.AddWithOptions(&gogit.AddOptions{All: true}))
	hash, err := wt.Commit("generate eri", &gogit.CommitOptions{
		Author: &object.Signature{Name: "Test", Email: "test@test.com", When: time.Now()},
	})
	require.NoError(t, err)

	a, err := New(Config{Root: root, Job: "eri"})
	require.NoError(t, err)
	res, err := a.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, hash.String()[:7], res.Revision)

	a, err = New(Config{Root: root, Job: "eri", NoProvenance: true})
	require.NoError(t, err)
	res, err = a.Run(context.Background())
	require.NoError(t, err)
	assert.Empty(t, res.Revision)
}
