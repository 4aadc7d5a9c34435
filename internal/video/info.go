// Copyright 2019 Lanikai Labs. All rights reserved.

package video

import (
	"fmt"

	errors "golang.org/x/xerrors"

	"github.com/lanikai/alphamask/internal/media"
)

// Info describes the geometry of frames in a stream: the pixel format, the
// visible size, per-plane row strides, and per-plane offsets into the frame's
// backing bytes. FPS and PAR travel with it through negotiation.
type Info struct {
	Format        Format
	Width, Height int

	Strides [4]int
	Offsets [4]int

	// Total byte size of one frame.
	Size int

	FPS media.Fraction
	PAR media.Fraction
}

// NewInfo computes a tightly packed Info (no row padding) for the given
// format and visible size.
func NewInfo(format Format, width, height int) (Info, error) {
	fi, ok := formats[format]
	if !ok || format == FormatUnknown {
		return Info{}, errors.Errorf("unknown video format %d", int(format))
	}
	if width <= 0 || height <= 0 {
		return Info{}, errors.Errorf("invalid frame size %dx%d", width, height)
	}

	info := Info{
		Format: format,
		Width:  width,
		Height: height,
		FPS:    media.Fraction{N: 0, D: 1},
		PAR:    media.Fraction{N: 1, D: 1},
	}
	for p := 0; p < fi.planes; p++ {
		info.Strides[p] = subsample(width, fi.hSub[p]) * fi.pixStride[p]
	}
	info.layout()
	return info, nil
}

// WithStrides returns a copy of the Info using the given per-plane strides,
// recomputing offsets and total size. Strides must cover at least the
// visible row bytes; shorter strides are rejected.
func (in Info) WithStrides(strides ...int) (Info, error) {
	fi := formats[in.Format]
	if len(strides) != fi.planes {
		return Info{}, errors.Errorf("%s has %d planes, got %d strides",
			in.Format, fi.planes, len(strides))
	}
	for p, s := range strides {
		if min := subsample(in.Width, fi.hSub[p]) * fi.pixStride[p]; s < min {
			return Info{}, errors.Errorf("stride %d below row size %d for %s plane %d",
				s, min, in.Format, p)
		}
		in.Strides[p] = s
	}
	in.layout()
	return in, nil
}

// layout derives plane offsets and total size from the current strides.
func (in *Info) layout() {
	fi := formats[in.Format]
	off := 0
	for p := 0; p < fi.planes; p++ {
		in.Offsets[p] = off
		off += in.Strides[p] * in.PlaneHeight(p)
	}
	in.Size = off
}

// Planes returns the plane count.
func (in Info) Planes() int {
	return formats[in.Format].planes
}

// PlaneWidth returns the number of samples per row in the given plane.
func (in Info) PlaneWidth(plane int) int {
	return subsample(in.Width, formats[in.Format].hSub[plane])
}

// PlaneRowBytes returns the number of meaningful bytes per row in the given
// plane, excluding stride padding.
func (in Info) PlaneRowBytes(plane int) int {
	fi := formats[in.Format]
	return subsample(in.Width, fi.hSub[plane]) * fi.pixStride[plane]
}

// PlaneHeight returns the number of rows in the given plane.
func (in Info) PlaneHeight(plane int) int {
	return subsample(in.Height, formats[in.Format].vSub[plane])
}

// FrameDuration returns the nominal duration of one frame, or
// media.ClockTimeNone when the rate is unknown or variable.
func (in Info) FrameDuration() media.ClockTime {
	return in.FPS.Interval()
}

// Key returns a compact signature of format and geometry, used to key
// converter caches.
func (in Info) Key() string {
	return fmt.Sprintf("%s:%dx%d:%d.%d.%d.%d",
		in.Format, in.Width, in.Height,
		in.Strides[0], in.Strides[1], in.Strides[2], in.Strides[3])
}

func (in Info) String() string {
	return fmt.Sprintf("%s %dx%d@%s", in.Format, in.Width, in.Height, in.FPS)
}

// subsample divides a dimension by 1<<shift, rounding up so odd sizes keep
// their last sample.
func subsample(n int, shift uint) int {
	return (n + (1 << shift) - 1) >> shift
}
