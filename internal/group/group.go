// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

// Package group lists the main kernel files of a work directory and
// gathers each one with its split-off sibling files.
package group

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"

	"github.com/petar-djukic/kernelmetrics/internal/class"
	"github.com/petar-djukic/kernelmetrics/pkg/types"
)

// ListMains returns the main kernel files in dir, sorted by name. Only the
// top level of dir is listed; kernel work directories are flat.
func ListMains(dir string) ([]string, error) {
	names, err := listSources(dir)
	if err != nil {
		return nil, err
	}
	var mains []string
	for _, name := range names {
		if class.IsMainFile(name) {
			mains = append(mains, name)
		}
	}
	return mains, nil
}

// Form builds the FileGroup for main: the main file followed by every aux
// file in dir with the same ClassCode. Aux files are matched by code only,
// never by name.
func Form(dir, main string) (*types.FileGroup, error) {
	sig, code := class.Of(main)
	if sig.Empty() {
		return nil, fmt.Errorf("%w: %s has no shell symbols in its name", types.ErrUnresolvableClass, main)
	}

	names, err := listSources(dir)
	if err != nil {
		return nil, err
	}

	g := &types.FileGroup{
		Dir:       dir,
		Main:      main,
		Signature: sig,
		Code:      code,
	}
	for _, name := range names {
		if name == main || class.IsMainFile(name) {
			continue
		}
		role := class.RoleOf(name)
		if role != types.RoleAuxVRR && role != types.RoleAuxHRR {
			continue
		}
		if _, c := class.Of(name); c == code {
			g.Aux = append(g.Aux, name)
		}
	}
	return g, nil
}

// listSources returns the sorted names of regular source files in dir.
func listSources(dir string) ([]string, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("stat work directory: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%s is not a directory", dir)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading work directory: %w", err)
	}

	var names []string
	for _, e := range entries {
		if !e.Type().IsRegular() {
			continue
		}
		if filepath.Ext(e.Name()) != class.SourceExt {
			continue
		}
		names = append(names, e.Name())
	}
	slices.Sort(names)
	return names, nil
}
