// Copyright 2019 Lanikai Labs. All rights reserved.

package video

import (
	"github.com/pkg/errors"
)

// A Converter rewrites a mapped source frame into a mapped destination
// frame. Implementations may assume both frames match the geometry the
// converter was built for.
type Converter interface {
	Convert(dst, src *Frame) error
}

// ConverterFactory builds a converter for one input/output geometry pair.
// Returning an error means the pair is not supported and negotiation should
// try the next output format.
type ConverterFactory func(in, out Info) (Converter, error)

// convertFunc adapts a plain function to the Converter interface.
type convertFunc func(dst, src *Frame) error

func (f convertFunc) Convert(dst, src *Frame) error { return f(dst, src) }

// A pure layout repack: same pixels, different arrangement. Anything that
// needs actual colorimetry (YUV<->RGB, resampling) does not belong here and
// must come from an external ConverterFactory.
type formatPair struct {
	in, out Format
}

var registry = map[formatPair]ConverterFactory{}

// RegisterConverter installs a factory for one format pair, replacing any
// previous registration for that pair.
func RegisterConverter(in, out Format, factory ConverterFactory) {
	registry[formatPair{in, out}] = factory
}

func init() {
	RegisterConverter(FormatI420, FormatA420, newPlanarToA420)
	RegisterConverter(FormatGRAY8, FormatA420, newGrayToA420)
	RegisterConverter(FormatxRGB, FormatARGB, newPadToAlpha)
	RegisterConverter(FormatRGBx, FormatRGBA, newPadToAlpha)
	RegisterConverter(FormatBGRx, FormatBGRA, newPadToAlpha)
	RegisterConverter(FormatxBGR, FormatABGR, newPadToAlpha)
}

// NewConverter is the default ConverterFactory. It serves identical formats
// with a stride-aware copy and otherwise consults the registry of layout
// repacks.
func NewConverter(in, out Info) (Converter, error) {
	if in.Width != out.Width || in.Height != out.Height {
		return nil, errors.Wrapf(errSizeMismatch, "%dx%d to %dx%d",
			in.Width, in.Height, out.Width, out.Height)
	}
	if factory, found := registry[formatPair{in.Format, out.Format}]; found {
		return factory(in, out)
	}
	if in.Format == out.Format {
		return convertFunc(copyFrame), nil
	}
	return nil, errors.Wrapf(errNoConverter, "%s to %s", in.Format, out.Format)
}

const (
	opaque        = 0xff // fully visible
	chromaNeutral = 0x80
)

// copyFrame copies every plane row by row, honoring both strides.
func copyFrame(dst, src *Frame) error {
	for p := 0; p < src.Info.Planes(); p++ {
		copyPlane(dst, p, src, p)
	}
	return nil
}

func copyPlane(dst *Frame, dp int, src *Frame, sp int) {
	w := src.Info.PlaneRowBytes(sp)
	h := src.Info.PlaneHeight(sp)
	ss := src.Stride(sp)
	ds := dst.Stride(dp)

	if ss == ds {
		copy(dst.Plane(dp)[:h*ss], src.Plane(sp)[:h*ss])
		return
	}
	s := src.Plane(sp)
	d := dst.Plane(dp)
	for y := 0; y < h; y++ {
		copy(d[y*ds:y*ds+w], s[y*ss:y*ss+w])
	}
}

func fillPlane(f *Frame, p int, value byte) {
	w := f.Info.PlaneRowBytes(p)
	h := f.Info.PlaneHeight(p)
	stride := f.Stride(p)
	d := f.Plane(p)
	for y := 0; y < h; y++ {
		row := d[y*stride : y*stride+w]
		for i := range row {
			row[i] = value
		}
	}
}

// I420 to A420: the three YUV planes carry over unchanged and the new alpha
// plane starts fully opaque.
func newPlanarToA420(in, out Info) (Converter, error) {
	return convertFunc(func(dst, src *Frame) error {
		for p := 0; p < 3; p++ {
			copyPlane(dst, p, src, p)
		}
		fillPlane(dst, 3, opaque)
		return nil
	}), nil
}

// GRAY8 to A420: gray becomes luma, chroma is neutral, alpha starts opaque.
func newGrayToA420(in, out Info) (Converter, error) {
	return convertFunc(func(dst, src *Frame) error {
		copyPlane(dst, 0, src, 0)
		fillPlane(dst, 1, chromaNeutral)
		fillPlane(dst, 2, chromaNeutral)
		fillPlane(dst, 3, opaque)
		return nil
	}), nil
}

// 32-bit RGB with a padding byte to the same ordering with an alpha byte:
// the pixel bytes carry over and the former padding position is stamped
// opaque.
func newPadToAlpha(in, out Info) (Converter, error) {
	off := out.Format.AlphaOffset()
	return convertFunc(func(dst, src *Frame) error {
		copyPlane(dst, 0, src, 0)
		w := dst.Info.PlaneWidth(0)
		h := dst.Info.PlaneHeight(0)
		ds := dst.Stride(0)
		d := dst.Plane(0)
		for y := 0; y < h; y++ {
			row := d[y*ds+off:]
			for x := 0; x < w; x++ {
				row[x*4] = opaque
			}
		}
		return nil
	}), nil
}
