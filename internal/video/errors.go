//////////////////////////////////////////////////////////////////////////////
//
// Video errors
//
// Copyright 2019 Lanikai Labs LLC. All rights reserved.
//
//////////////////////////////////////////////////////////////////////////////

package video

import "errors"

var (
	errShortBuffer  = errors.New("buffer too small for frame")
	errSizeMismatch = errors.New("frame sizes differ")
	errNoConverter  = errors.New("no converter for format pair")
)
