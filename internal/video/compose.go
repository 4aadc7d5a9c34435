// Copyright 2019 Lanikai Labs. All rights reserved.

package video

// Alpha composition. Both entry points copy the mask frame's gray plane into
// an already-converted output frame, leaving every other sample untouched.
// Dimensions are taken from the mask frame, which callers keep within the
// output frame; an oversized mask is a programming error and panics on the
// slice bounds.

// ComposeAlphaPlanar copies the mask plane into the output's dedicated alpha
// plane row by row. Equal strides collapse to one bulk copy; the result is
// identical either way.
func ComposeAlphaPlanar(dst, src *Frame) {
	plane := dst.Info.Format.AlphaPlane()

	sp := src.Plane(0)
	dp := dst.Plane(plane)
	w := src.Info.PlaneRowBytes(0)
	h := src.Info.PlaneHeight(0)
	ss := src.Stride(0)
	ds := dst.Stride(plane)

	if ss == ds {
		copy(dp[:h*ss], sp[:h*ss])
		return
	}
	for y := 0; y < h; y++ {
		copy(dp[y*ds:y*ds+w], sp[y*ss:y*ss+w])
	}
}

// ComposeAlphaPacked writes one mask byte into the alpha position of every
// 32-bit output pixel. Rows whose width allows it are processed in groups of
// 8 or 4 pixels; the output is byte-identical to the pixel-at-a-time loop
// regardless of which path runs.
func ComposeAlphaPacked(dst, src *Frame) {
	sp := src.Plane(0)
	dp := dst.Plane(0)[dst.Info.Format.AlphaOffset():]
	w := src.Info.PlaneWidth(0)
	h := src.Info.PlaneHeight(0)
	ss := src.Stride(0)
	ds := dst.Stride(0)

	switch {
	case w&3 != 0:
		composePacked1(dp, ds, sp, ss, w, h)
	case w&7 != 0:
		composePacked4(dp, ds, sp, ss, w, h)
	default:
		composePacked8(dp, ds, sp, ss, w, h)
	}
}

func composePacked1(dst []byte, ds int, src []byte, ss, w, h int) {
	for i := 0; i < h; i++ {
		d := dst[i*ds:]
		s := src[i*ss : i*ss+w]
		for j, a := range s {
			d[j*4] = a
		}
	}
}

func composePacked4(dst []byte, ds int, src []byte, ss, w, h int) {
	n := w >> 2
	for i := 0; i < h; i++ {
		drow := dst[i*ds:]
		srow := src[i*ss:]
		for j := 0; j < n; j++ {
			d := drow[j*16:]
			s := srow[j*4 : j*4+4]
			d[0] = s[0]
			d[4] = s[1]
			d[8] = s[2]
			d[12] = s[3]
		}
	}
}

func composePacked8(dst []byte, ds int, src []byte, ss, w, h int) {
	n := w >> 3
	for i := 0; i < h; i++ {
		drow := dst[i*ds:]
		srow := src[i*ss:]
		for j := 0; j < n; j++ {
			d := drow[j*32:]
			s := srow[j*8 : j*8+8]
			d[0] = s[0]
			d[4] = s[1]
			d[8] = s[2]
			d[12] = s[3]
			d[16] = s[4]
			d[20] = s[5]
			d[24] = s[6]
			d[28] = s[7]
		}
	}
}
