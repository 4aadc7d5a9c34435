package video

import (
	"fmt"
	"testing"

	"github.com/lanikai/alphamask/internal/media"
)

func mustFrame(t testing.TB, info Info) *Frame {
	t.Helper()
	f, err := Map(info, media.NewBuffer(info.Size))
	if err != nil {
		t.Fatal(err)
	}
	return f
}

func mustInfo(t testing.TB, format Format, w, h int) Info {
	t.Helper()
	info, err := NewInfo(format, w, h)
	if err != nil {
		t.Fatal(err)
	}
	return info
}

// fillPattern writes a deterministic byte pattern into every plane.
func fillPattern(f *Frame, seed int) {
	for p := 0; p < f.Info.Planes(); p++ {
		plane := f.Plane(p)
		for i := range plane {
			plane[i] = byte(seed + 7*i)
		}
	}
}

// composeReference is a pixel-at-a-time packed compose, the behavior the
// batched paths must reproduce exactly.
func composeReference(dst, src *Frame) {
	off := dst.Info.Format.AlphaOffset()
	for y := 0; y < src.Info.Height; y++ {
		s := src.Row(0, y)
		d := dst.Plane(0)[y*dst.Stride(0)+off:]
		for x, a := range s {
			d[x*4] = a
		}
	}
}

func TestComposeAlphaPlanar(t *testing.T) {
	const w, h = 640, 360

	dst := mustFrame(t, mustInfo(t, FormatA420, w, h))
	src := mustFrame(t, mustInfo(t, FormatGRAY8, w, h))
	fillPattern(dst, 3)
	fillPattern(src, 11)

	want := make([]byte, len(dst.data))
	copy(want, dst.data)

	ComposeAlphaPlanar(dst, src)

	// Alpha plane matches the mask.
	for y := 0; y < h; y++ {
		s := src.Row(0, y)
		d := dst.Row(3, y)
		for x := range s {
			if d[x] != s[x] {
				t.Fatalf("alpha mismatch at %d,%d", x, y)
			}
		}
	}

	// YUV planes untouched.
	for p := 0; p < 3; p++ {
		plane := dst.Plane(p)
		off := dst.Info.Offsets[p]
		for i := range plane {
			if plane[i] != want[off+i] {
				t.Fatalf("plane %d modified at %d", p, i)
			}
		}
	}
}

// The bulk copy for equal strides and the row-by-row copy for differing
// strides must put the same bytes in the visible region.
func TestComposeAlphaPlanarStrides(t *testing.T) {
	const w, h = 321, 41

	src := mustFrame(t, mustInfo(t, FormatGRAY8, w, h))
	fillPattern(src, 5)

	tight := mustFrame(t, mustInfo(t, FormatA420, w, h))

	padded, err := mustInfo(t, FormatA420, w, h).WithStrides(384, 192, 192, 400)
	if err != nil {
		t.Fatal(err)
	}
	loose := mustFrame(t, padded)

	ComposeAlphaPlanar(tight, src)
	ComposeAlphaPlanar(loose, src)

	for y := 0; y < h; y++ {
		a := tight.Row(3, y)
		b := loose.Row(3, y)
		for x := 0; x < w; x++ {
			if a[x] != b[x] {
				t.Fatalf("stride paths disagree at %d,%d", x, y)
			}
		}
	}
}

// All three packed paths (8-wide, 4-wide, scalar) must be byte-identical to
// the reference loop, and must leave the color bytes alone.
func TestComposeAlphaPacked(t *testing.T) {
	// 640 is a multiple of 8, 324 only of 4, 482 only of 2, 321 of nothing.
	widths := []int{640, 324, 482, 321}
	const h = 24

	for _, w := range widths {
		t.Run(fmt.Sprintf("width%d", w), func(t *testing.T) {
			src := mustFrame(t, mustInfo(t, FormatGRAY8, w, h))
			fillPattern(src, 13)

			got := mustFrame(t, mustInfo(t, FormatARGB, w, h))
			want := mustFrame(t, mustInfo(t, FormatARGB, w, h))
			fillPattern(got, 29)
			fillPattern(want, 29)

			ComposeAlphaPacked(got, src)
			composeReference(want, src)

			for i := range got.data {
				if got.data[i] != want.data[i] {
					t.Fatalf("byte %d differs from reference", i)
				}
			}
		})
	}
}

// A nonzero alpha offset (BGRA keeps alpha last) lands the mask on the
// right byte.
func TestComposeAlphaPackedOffset(t *testing.T) {
	const w, h = 324, 8

	src := mustFrame(t, mustInfo(t, FormatGRAY8, w, h))
	fillPattern(src, 17)

	dst := mustFrame(t, mustInfo(t, FormatBGRA, w, h))
	fillPattern(dst, 23)

	ComposeAlphaPacked(dst, src)

	for y := 0; y < h; y++ {
		s := src.Row(0, y)
		d := dst.Row(0, y)
		for x := 0; x < w; x++ {
			if d[4*x+3] != s[x] {
				t.Fatalf("alpha byte wrong at %d,%d", x, y)
			}
		}
	}
}

func BenchmarkComposeAlphaPlanarAt720P(b *testing.B) {
	dst := mustFrame(b, mustInfo(b, FormatA420, 1280, 720))
	src := mustFrame(b, mustInfo(b, FormatGRAY8, 1280, 720))
	fillPattern(src, 1)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		ComposeAlphaPlanar(dst, src)
	}
}

func BenchmarkComposeAlphaPackedAt720P(b *testing.B) {
	dst := mustFrame(b, mustInfo(b, FormatARGB, 1280, 720))
	src := mustFrame(b, mustInfo(b, FormatGRAY8, 1280, 720))
	fillPattern(src, 1)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		ComposeAlphaPacked(dst, src)
	}
}
