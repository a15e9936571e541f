// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

package types

import "errors"

// Failure classes for analyzing a kernel class. None of them is
// recoverable for the class being analyzed.
var (
	ErrMarkerMissing            = errors.New("structural marker missing")
	ErrMalformedAnnotation      = errors.New("malformed annotation")
	ErrUnresolvableClass        = errors.New("unresolvable class")
	ErrUnsupportedConfiguration = errors.New("unsupported configuration")
)
