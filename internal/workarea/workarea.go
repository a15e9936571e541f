// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

// Package workarea maps a (root, job, derivative order) triple to the
// directory holding that job's generated kernels.
package workarea

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/petar-djukic/kernelmetrics/pkg/types"
)

// orderDirs names the subdirectory of the root for each derivative order.
var orderDirs = [...]string{"energy", "first_deriv", "second_deriv"}

// MaxOrder is the highest supported derivative order.
const MaxOrder = len(orderDirs) - 1

// OrderDir returns the subdirectory name for a derivative order.
func OrderDir(order int) (string, error) {
	if order < 0 || order > MaxOrder {
		return "", fmt.Errorf("%w: derivative order %d, want 0 to %d", types.ErrUnsupportedConfiguration, order, MaxOrder)
	}
	return orderDirs[order], nil
}

// Resolve returns root/<order dir>/job. The result must be an existing
// directory.
func Resolve(root, job string, order int) (string, error) {
	sub, err := OrderDir(order)
	if err != nil {
		return "", err
	}
	if job == "" || filepath.Base(job) != job {
		return "", fmt.Errorf("%w: job name %q", types.ErrUnsupportedConfiguration, job)
	}

	dir := filepath.Join(root, sub, job)
	info, err := os.Stat(dir)
	if err != nil {
		return "", fmt.Errorf("%w: work directory %s: %v", types.ErrUnsupportedConfiguration, dir, err)
	}
	if !info.IsDir() {
		return "", fmt.Errorf("%w: %s is not a directory", types.ErrUnsupportedConfiguration, dir)
	}
	return dir, nil
}
