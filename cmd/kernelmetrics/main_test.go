// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

package main

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/petar-djukic/kernelmetrics/pkg/kernelmetrics"
	"github.com/petar-djukic/kernelmetrics/pkg/types"
)

const kernel = `void hgp_os_eri_p_s_s_s(Double* abcd)
{
  for (auto& pair : pairs) {
    Double* tmp = scr.getNewMemPos(9);
    // shell quartet name: SQ_ERI_P_S_S_S
    abcd[0] = tmp[0]+tmp[1];
  }
}
`

const derivKernel = `// @@@@
// derivative on A
void hgp_os_eri_p_s_s_s_d1(Double* abcd)
{
  for (auto& pair : pairs) {
    // shell quartet name: SQ_ERI_P_S_S_S
    abcd[0] = a;
  }
}
`

func writeCorpus(t *testing.T) string {
	t.Helper()
	root := t.TempDir()
	files := map[string]string{
		"energy/eri/hgp_os_eri_p_s_s_s.cpp":         kernel,
		"energy/eri/hgp_os_eri_s_s_s_s.cpp":         "void f();\n",
		"first_deriv/eri/hgp_os_eri_p_s_s_s_d1.cpp": derivKernel,
	}
	for rel, content := range files {
		path := filepath.Join(root, filepath.FromSlash(rel))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	}
	return root
}

func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	cmd := newRootCmd()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func TestVersion(t *testing.T) {
	out, _, err := execute(t, "version")
	require.NoError(t, err)
	assert.Equal(t, "kernelmetrics "+version+"\n", out)
}

func TestAnalyze(t *testing.T) {
	root := writeCorpus(t)
	metrics := filepath.Join(t.TempDir(), "eri.prom")

	out, errOut, err := execute(t, "analyze", "--root", root, "--job", "eri", "--no-provenance", "--metrics-file", metrics)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "job eri, derivative order 0"))
	assert.Contains(t, out, "hgp_os_eri_p_s_s_s.cpp")
	assert.Contains(t, errOut, "1 classes analyzed")
	assert.Contains(t, errOut, "1 classes failed")
	assert.Contains(t, errOut, "hgp_os_eri_s_s_s_s.cpp")
	assert.FileExists(t, metrics)
}

func TestAnalyze_Strict(t *testing.T) {
	root := writeCorpus(t)
	_, _, err := execute(t, "analyze", "--root", root, "--job", "eri", "--no-provenance", "--strict")
	assert.EqualError(t, err, "1 of 2 classes failed")
}

func TestAnalyze_SingleClass(t *testing.T) {
	root := writeCorpus(t)

	out, _, err := execute(t, "analyze", "--root", root, "--job", "eri", "--class", "hgp_os_eri_p_s_s_s.cpp")
	require.NoError(t, err)
	assert.Contains(t, out, "vector elements          : 9")

	_, _, err = execute(t, "analyze", "--root", root, "--job", "eri", "--class", "hgp_os_eri_s_s_s_s.cpp")
	assert.True(t, errors.Is(err, types.ErrMarkerMissing))
}

func TestAnalyze_UnknownJob(t *testing.T) {
	_, _, err := execute(t, "analyze", "--root", writeCorpus(t), "--job", "esp")
	assert.ErrorIs(t, err, kernelmetrics.ErrUnsupportedConfiguration)
}

func TestMemory(t *testing.T) {
	root := writeCorpus(t)
	path := filepath.Join(t.TempDir(), "eri.dat")

	_, _, err := execute(t, "memory", "--root", root, "--job", "eri", "--no-provenance", "-o", path)
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "             1         9    1    0    0    0\n", string(data))
}

func TestDeriv(t *testing.T) {
	root := writeCorpus(t)
	outDir := t.TempDir()

	_, _, err := execute(t, "deriv", "--root", root, "--job", "eri", "--order", "1", "--out-dir", outDir)
	require.NoError(t, err)

	data, err := os.ReadFile(filepath.Join(outDir, "deriv_infor_eri_1.txt"))
	require.NoError(t, err)
	assert.Equal(t, "\n1\nderivative on A\n", string(data))

	_, _, err = execute(t, "deriv", "--root", root, "--job", "eri", "--order", "0", "--out-dir", outDir)
	assert.ErrorIs(t, err, types.ErrUnsupportedConfiguration)
}

func TestConfigFile_Markers(t *testing.T) {
	root := writeCorpus(t)
	cfgPath := filepath.Join(t.TempDir(), "km.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("job: eri\nmarkers:\n  alloc_call: noSuchCall\n"), 0o644))

	path := filepath.Join(t.TempDir(), "eri.dat")
	_, _, err := execute(t, "memory", "--config", cfgPath, "--root", root, "--no-provenance", "-o", path)
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "             1         0    1    0    0    0\n", string(data))
}

func TestRenderSummary(t *testing.T) {
	res := &kernelmetrics.Result{
		WorkDir:  "/corpus/energy/eri",
		Revision: "abc1234",
		Classes: []kernelmetrics.ClassResult{
			{File: "a.cpp", Counters: &types.CounterSet{}},
			{File: "b.cpp", Err: types.ErrMarkerMissing},
		},
	}
	out := renderSummary(kernelmetrics.Config{Job: "eri"}, res)
	assert.Contains(t, out, "eri (order 0)")
	assert.Contains(t, out, "1 classes analyzed")
	assert.Contains(t, out, "1 classes failed")
	assert.Contains(t, out, "revision abc1234")
	assert.Contains(t, out, "b.cpp")
}

func TestMemory_Baseline(t *testing.T) {
	root := writeCorpus(t)
	baseline := filepath.Join(t.TempDir(), "old.dat")
	require.NoError(t, os.WriteFile(baseline, []byte("             1         7    1    0    0    0\n"), 0o644))

	out, errOut, err := execute(t, "memory", "--root", root, "--job", "eri", "--no-provenance", "--baseline", baseline)
	require.NoError(t, err)
	assert.Equal(t, "             1         9    1    0    0    0\n", out)
	assert.Contains(t, errOut, "-              1         7    1    0    0    0\n")
	assert.Contains(t, errOut, "+              1         9    1    0    0    0\n")

	_, _, err = execute(t, "memory", "--root", root, "--job", "eri", "--no-provenance", "--baseline", baseline, "--strict")
	assert.EqualError(t, err, "2 data lines changed against "+baseline)

	require.NoError(t, os.WriteFile(baseline, []byte(out), 0o644))
	_, errOut, err = execute(t, "memory", "--root", root, "--job", "eri", "--no-provenance", "--baseline", baseline, "--strict")
	require.NoError(t, err)
	assert.Contains(t, errOut, "no change")
}
