// Copyright 2019 Lanikai Labs. All rights reserved.

package video

import (
	errors "golang.org/x/xerrors"

	"github.com/lanikai/alphamask/internal/media"
)

// A Frame is a buffer viewed through an Info: it gives per-plane access to
// the raw bytes without copying them. The underlying buffer stays owned by
// whoever mapped it.
type Frame struct {
	Info Info

	data   []byte
	planes [4][]byte
}

// Map validates that the buffer can hold a frame of the given geometry and
// returns a plane-addressable view of it.
func Map(info Info, buf *media.Buffer) (*Frame, error) {
	if len(buf.Data) < info.Size {
		return nil, errors.Errorf("mapping %s frame: %w: need %d bytes, have %d",
			info, errShortBuffer, info.Size, len(buf.Data))
	}

	f := &Frame{Info: info, data: buf.Data}
	for p := 0; p < info.Planes(); p++ {
		end := info.Offsets[p] + info.Strides[p]*info.PlaneHeight(p)
		f.planes[p] = buf.Data[info.Offsets[p]:end]
	}
	return f, nil
}

// Plane returns the bytes of one plane, stride padding included.
func (f *Frame) Plane(p int) []byte {
	return f.planes[p]
}

// Stride returns the row stride of one plane.
func (f *Frame) Stride(p int) int {
	return f.Info.Strides[p]
}

// Row returns the meaningful bytes of row y in plane p, without padding.
func (f *Frame) Row(p, y int) []byte {
	start := y * f.Info.Strides[p]
	return f.planes[p][start : start+f.Info.PlaneRowBytes(p)]
}
