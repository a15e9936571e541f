// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

// Package provenance records which revision of a kernel corpus a report
// was computed from.
package provenance

import (
	"errors"
	"fmt"
	"strings"
	"time"

	gogit "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
)

// ErrNoGit is returned when the corpus is not inside a git repository.
var ErrNoGit = errors.New("not a git repository")

const shortHashLen = 7

// Info describes the corpus revision.
type Info struct {
	Revision    string    // Full HEAD hash, empty before the first commit
	Subject     string    // First line of the HEAD commit message
	CommittedAt time.Time // HEAD committer time
	Dirty       bool      // Working tree has uncommitted changes
}

// Short returns the abbreviated revision.
func (i *Info) Short() string {
	if len(i.Revision) > shortHashLen {
		return i.Revision[:shortHashLen]
	}
	return i.Revision
}

// String renders the revision for report headers.
func (i *Info) String() string {
	rev := i.Short()
	if rev == "" {
		rev = "no commits"
	}
	if i.Dirty {
		return rev + " (dirty)"
	}
	return rev
}

// Lookup finds the repository containing dir, searching parent
// directories, and describes its HEAD and working tree.
func Lookup(dir string) (*Info, error) {
	r, err := gogit.PlainOpenWithOptions(dir, &gogit.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNoGit, err)
	}

	info := &Info{}
	head, err := r.Head()
	switch {
	case errors.Is(err, plumbing.ErrReferenceNotFound):
		// Unborn branch.
	case err != nil:
		return nil, fmt.Errorf("getting HEAD: %w", err)
	default:
		commit, err := r.CommitObject(head.Hash())
		if err != nil {
			return nil, fmt.Errorf("getting commit: %w", err)
		}
		info.Revision = head.Hash().String()
		info.Subject, _, _ = strings.Cut(commit.Message, "\n")
		info.CommittedAt = commit.Committer.When
	}

	wt, err := r.Worktree()
	if err != nil {
		return nil, fmt.Errorf("getting worktree: %w", err)
	}
	status, err := wt.Status()
	if err != nil {
		return nil, fmt.Errorf("getting status: %w", err)
	}
	info.Dirty = !status.IsClean()
	return info, nil
}
