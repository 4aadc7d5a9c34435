// Copyright 2019 Lanikai Labs. All rights reserved.

// Package video describes raw video frame layouts and implements the pixel
// work done by the alpha mask element: frame mapping, layout repacking, and
// alpha channel composition.
package video

import "strings"

// Format identifies a raw pixel layout. The set covers what the element
// accepts on its inputs (planar and packed YUV, 24/32-bit RGB orderings,
// 8-bit grayscale) and what it can produce (A420, ARGB, AYUV).
type Format int

const (
	FormatUnknown Format = iota

	// Single 8-bit gray plane. Also the layout of an alpha mask stream.
	FormatGRAY8

	// Planar YUV, 4:2:0 subsampled.
	FormatI420
	FormatYV12

	// Semi-planar YUV, full-res Y plane plus one interleaved chroma plane.
	FormatNV12
	FormatNV21

	// Packed YUV, 4:2:2 subsampled, two bytes per pixel.
	FormatYUY2
	FormatUYVY
	FormatYVYU

	// Planar YUV at other subsamplings.
	FormatY444
	FormatY42B
	FormatY41B

	// Packed YUV 4:4:4 with alpha, four bytes per pixel.
	FormatAYUV

	// 24-bit RGB orderings.
	FormatRGB
	FormatBGR

	// 32-bit RGB orderings with a padding byte.
	FormatRGBx
	FormatBGRx
	FormatxRGB
	FormatxBGR

	// 32-bit RGB orderings with an alpha byte.
	FormatRGBA
	FormatBGRA
	FormatARGB
	FormatABGR

	// Planar YUV 4:2:0 plus a full-resolution alpha plane.
	FormatA420
)

// formatInfo is the static geometry of one format. pixStride is bytes per
// pixel step within a plane; hSub/vSub are subsampling shifts (width and
// height are divided by 1<<shift, rounding up). alphaPlane is the plane
// index carrying alpha for planar formats, alphaByte the byte offset of
// alpha within a packed pixel; -1 when the format has none.
type formatInfo struct {
	name       string
	planes     int
	pixStride  [4]int
	hSub, vSub [4]uint
	alphaPlane int
	alphaByte  int
}

var formats = map[Format]formatInfo{
	FormatGRAY8: {"GRAY8", 1, [4]int{1}, [4]uint{0}, [4]uint{0}, -1, -1},
	FormatI420:  {"I420", 3, [4]int{1, 1, 1}, [4]uint{0, 1, 1}, [4]uint{0, 1, 1}, -1, -1},
	FormatYV12:  {"YV12", 3, [4]int{1, 1, 1}, [4]uint{0, 1, 1}, [4]uint{0, 1, 1}, -1, -1},
	FormatNV12:  {"NV12", 2, [4]int{1, 2}, [4]uint{0, 1}, [4]uint{0, 1}, -1, -1},
	FormatNV21:  {"NV21", 2, [4]int{1, 2}, [4]uint{0, 1}, [4]uint{0, 1}, -1, -1},
	FormatYUY2:  {"YUY2", 1, [4]int{2}, [4]uint{0}, [4]uint{0}, -1, -1},
	FormatUYVY:  {"UYVY", 1, [4]int{2}, [4]uint{0}, [4]uint{0}, -1, -1},
	FormatYVYU:  {"YVYU", 1, [4]int{2}, [4]uint{0}, [4]uint{0}, -1, -1},
	FormatY444:  {"Y444", 3, [4]int{1, 1, 1}, [4]uint{0, 0, 0}, [4]uint{0, 0, 0}, -1, -1},
	FormatY42B:  {"Y42B", 3, [4]int{1, 1, 1}, [4]uint{0, 1, 1}, [4]uint{0, 0, 0}, -1, -1},
	FormatY41B:  {"Y41B", 3, [4]int{1, 1, 1}, [4]uint{0, 2, 2}, [4]uint{0, 0, 0}, -1, -1},
	FormatAYUV:  {"AYUV", 1, [4]int{4}, [4]uint{0}, [4]uint{0}, -1, 0},
	FormatRGB:   {"RGB", 1, [4]int{3}, [4]uint{0}, [4]uint{0}, -1, -1},
	FormatBGR:   {"BGR", 1, [4]int{3}, [4]uint{0}, [4]uint{0}, -1, -1},
	FormatRGBx:  {"RGBx", 1, [4]int{4}, [4]uint{0}, [4]uint{0}, -1, -1},
	FormatBGRx:  {"BGRx", 1, [4]int{4}, [4]uint{0}, [4]uint{0}, -1, -1},
	FormatxRGB:  {"xRGB", 1, [4]int{4}, [4]uint{0}, [4]uint{0}, -1, -1},
	FormatxBGR:  {"xBGR", 1, [4]int{4}, [4]uint{0}, [4]uint{0}, -1, -1},
	FormatRGBA:  {"RGBA", 1, [4]int{4}, [4]uint{0}, [4]uint{0}, -1, 3},
	FormatBGRA:  {"BGRA", 1, [4]int{4}, [4]uint{0}, [4]uint{0}, -1, 3},
	FormatARGB:  {"ARGB", 1, [4]int{4}, [4]uint{0}, [4]uint{0}, -1, 0},
	FormatABGR:  {"ABGR", 1, [4]int{4}, [4]uint{0}, [4]uint{0}, -1, 0},
	FormatA420: {"A420", 4, [4]int{1, 1, 1, 1},
		[4]uint{0, 1, 1, 0}, [4]uint{0, 1, 1, 0}, 3, -1},
}

// ParseFormat returns the format named by s (case-insensitive), or
// FormatUnknown.
func ParseFormat(s string) Format {
	for f, fi := range formats {
		if strings.EqualFold(fi.name, s) {
			return f
		}
	}
	return FormatUnknown
}

func (f Format) String() string {
	if fi, ok := formats[f]; ok {
		return fi.name
	}
	return "unknown"
}

// IsValid reports whether f is a known format.
func (f Format) IsValid() bool {
	_, ok := formats[f]
	return ok
}

// Planes returns the number of planes, 0 for an unknown format.
func (f Format) Planes() int {
	return formats[f].planes
}

// HasAlpha reports whether the format carries an alpha channel.
func (f Format) HasAlpha() bool {
	fi := formats[f]
	return fi.alphaPlane >= 0 || fi.alphaByte >= 0
}

// AlphaPlane returns the plane index holding alpha for a planar format, or
// -1.
func (f Format) AlphaPlane() int {
	if fi, ok := formats[f]; ok {
		return fi.alphaPlane
	}
	return -1
}

// AlphaOffset returns the byte offset of alpha within a packed pixel, or -1.
func (f Format) AlphaOffset() int {
	if fi, ok := formats[f]; ok {
		return fi.alphaByte
	}
	return -1
}

// PixelStride returns the byte step between horizontally adjacent samples in
// the given plane.
func (f Format) PixelStride(plane int) int {
	return formats[f].pixStride[plane]
}
