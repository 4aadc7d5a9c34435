package main

import (
	"context"
	"math"
	"time"

	"github.com/lanikai/alphamask"
	"github.com/lanikai/alphamask/internal/media"
	"github.com/lanikai/alphamask/internal/video"
)

// sourceFormat returns the raw format the synthetic source generates for the
// chosen output, picked so that a converter between the two exists.
func sourceFormat(out video.Format) video.Format {
	switch out {
	case video.FormatA420:
		return video.FormatI420
	case video.FormatAYUV:
		return video.FormatAYUV
	case video.FormatARGB:
		return video.FormatxRGB
	case video.FormatABGR:
		return video.FormatxBGR
	case video.FormatRGBA:
		return video.FormatRGBx
	case video.FormatBGRA:
		return video.FormatBGRx
	default:
		return video.FormatUnknown
	}
}

// runVideoSource pushes color bar frames at the configured rate until the
// context is canceled.
func runVideoSource(ctx context.Context, in *alphamask.VideoInput, src video.Format) error {
	info, err := video.NewInfo(src, flagWidth, flagHeight)
	if err != nil {
		return err
	}
	info.FPS = media.Fraction{N: flagFPS, D: 1}

	if err := in.SetFormat(info); err != nil {
		return err
	}
	if err := in.NewSegment(media.NewSegment()); err != nil {
		return err
	}

	bars := colorBars(info)
	interval := info.FrameDuration()

	ticker := time.NewTicker(interval.Duration())
	defer ticker.Stop()

	for frame := 0; ; frame++ {
		select {
		case <-ctx.Done():
			return in.EndOfStream()
		case <-ticker.C:
		}

		buf := media.NewBufferFrom(append([]byte(nil), bars...))
		buf.PTS = media.ClockTime(frame) * interval
		buf.Duration = interval

		switch err := in.Push(buf); err {
		case nil:
		case alphamask.ErrFlushing, alphamask.ErrEOS:
			return nil
		default:
			return err
		}
	}
}

// runAlphaSource pushes one disc matte per video frame. No ticker: the
// element's backpressure paces it to the video stream.
func runAlphaSource(ctx context.Context, in *alphamask.AlphaInput) error {
	info, err := video.NewInfo(video.FormatGRAY8, flagWidth, flagHeight)
	if err != nil {
		return err
	}
	info.FPS = media.Fraction{N: flagFPS, D: 1}

	if err := in.SetFormat(info); err != nil {
		return err
	}
	if err := in.NewSegment(media.NewSegment()); err != nil {
		return err
	}

	interval := info.FrameDuration()

	for frame := 0; ; frame++ {
		if ctx.Err() != nil {
			return in.EndOfStream()
		}

		buf := media.NewBuffer(info.Size)
		pts := media.ClockTime(frame) * interval
		discMatte(buf.Data, info, pts)
		buf.PTS = pts
		buf.Duration = interval

		switch err := in.Push(buf); err {
		case nil:
		case alphamask.ErrFlushing, alphamask.ErrEOS:
			return nil
		default:
			return err
		}
	}
}

// 75% color bars.
var barColors = [7][3]byte{
	{191, 191, 191}, // white
	{191, 191, 0},   // yellow
	{0, 191, 191},   // cyan
	{0, 191, 0},     // green
	{191, 0, 191},   // magenta
	{191, 0, 0},     // red
	{0, 0, 191},     // blue
}

// BT.601 studio swing.
func rgbToYUV(r, g, b int) (byte, byte, byte) {
	y := (66*r+129*g+25*b+128)>>8 + 16
	u := (-38*r-74*g+112*b+128)>>8 + 128
	v := (112*r-94*g-18*b+128)>>8 + 128
	return byte(y), byte(u), byte(v)
}

func putRGB(px []byte, format video.Format, r, g, b byte) {
	switch format {
	case video.FormatxRGB:
		px[1], px[2], px[3] = r, g, b
	case video.FormatxBGR:
		px[1], px[2], px[3] = b, g, r
	case video.FormatRGBx:
		px[0], px[1], px[2] = r, g, b
	case video.FormatBGRx:
		px[0], px[1], px[2] = b, g, r
	}
}

// colorBars renders one static frame of vertical bars in the given format.
func colorBars(info video.Info) []byte {
	buf := media.NewBuffer(info.Size)
	frame, err := video.Map(info, buf)
	if err != nil {
		return buf.Data
	}

	for x := 0; x < info.Width; x++ {
		c := barColors[x*len(barColors)/info.Width]
		r, g, b := int(c[0]), int(c[1]), int(c[2])

		switch info.Format {
		case video.FormatI420:
			y, u, v := rgbToYUV(r, g, b)
			for row := 0; row < info.Height; row++ {
				frame.Row(0, row)[x] = y
			}
			for row := 0; row < (info.Height+1)/2; row++ {
				frame.Row(1, row)[x/2] = u
				frame.Row(2, row)[x/2] = v
			}

		case video.FormatAYUV:
			y, u, v := rgbToYUV(r, g, b)
			for row := 0; row < info.Height; row++ {
				px := frame.Row(0, row)[4*x:]
				px[0] = 0xff
				px[1], px[2], px[3] = y, u, v
			}

		default:
			for row := 0; row < info.Height; row++ {
				putRGB(frame.Row(0, row)[4*x:], info.Format, byte(r), byte(g), byte(b))
			}
		}
	}
	return buf.Data
}

// discMatte paints a soft-edged opaque disc orbiting the frame center into a
// GRAY8 plane. One orbit takes five seconds.
func discMatte(dst []byte, info video.Info, t media.ClockTime) {
	w, h := info.Width, info.Height

	radius := float64(w)
	if h < w {
		radius = float64(h)
	}
	radius /= 4
	const feather = 4.0

	phase := 2 * math.Pi * float64(t) / float64(5*media.Second)
	cx := float64(w)/2 + 0.3*float64(w)*math.Cos(phase)
	cy := float64(h)/2 + 0.3*float64(h)*math.Sin(phase)

	for y := 0; y < h; y++ {
		row := dst[y*info.Strides[0]:]
		for x := 0; x < w; x++ {
			d := math.Hypot(float64(x)-cx, float64(y)-cy)
			switch {
			case d <= radius:
				row[x] = 0xff
			case d >= radius+feather:
				row[x] = 0
			default:
				row[x] = byte(255 * (radius + feather - d) / feather)
			}
		}
	}
}
