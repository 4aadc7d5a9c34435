// Package media holds the stream-time primitives shared by both inputs of
// the alpha mask element: clock times, segments, and timed buffers.
package media

import (
	"fmt"
	"time"
)

// ClockTime is a point (or span) on a stream's monotonic clock, in
// nanoseconds. ClockTimeNone marks an undefined time. Arithmetic is plain
// uint64 math and only meaningful between valid values, so callers check
// IsValid first.
type ClockTime uint64

// ClockTimeNone is the undefined time sentinel.
const ClockTimeNone = ^ClockTime(0)

// Common durations in stream time.
const (
	Nanosecond  ClockTime = 1
	Microsecond ClockTime = 1000 * Nanosecond
	Millisecond ClockTime = 1000 * Microsecond
	Second      ClockTime = 1000 * Millisecond
)

// IsValid reports whether t is a defined time.
func (t ClockTime) IsValid() bool {
	return t != ClockTimeNone
}

// Add returns t+d, or ClockTimeNone if either operand is undefined.
func (t ClockTime) Add(d ClockTime) ClockTime {
	if !t.IsValid() || !d.IsValid() {
		return ClockTimeNone
	}
	return t + d
}

// FromDuration converts a time.Duration to stream time. Negative durations
// have no stream-time representation and map to ClockTimeNone.
func FromDuration(d time.Duration) ClockTime {
	if d < 0 {
		return ClockTimeNone
	}
	return ClockTime(d)
}

// Duration converts t to a time.Duration, or 0 if undefined.
func (t ClockTime) Duration() time.Duration {
	if !t.IsValid() {
		return 0
	}
	return time.Duration(t)
}

// String renders t as H:MM:SS.nnnnnnnnn, or "none" when undefined.
func (t ClockTime) String() string {
	if !t.IsValid() {
		return "none"
	}
	ns := uint64(t)
	return fmt.Sprintf("%d:%02d:%02d.%09d",
		ns/uint64(time.Hour),
		ns/uint64(time.Minute)%60,
		ns/uint64(time.Second)%60,
		ns%uint64(time.Second))
}

// Fraction is an exact ratio, used for frame rates and pixel aspect ratios.
type Fraction struct {
	N, D int
}

// IsValid reports whether the fraction denotes a usable non-negative ratio.
func (f Fraction) IsValid() bool {
	return f.D > 0 && f.N >= 0
}

// Interval returns the duration of one period of the fraction interpreted as
// a rate (e.g. one frame of a 30000/1001 fps stream). Zero or invalid rates
// have no interval.
func (f Fraction) Interval() ClockTime {
	if !f.IsValid() || f.N == 0 {
		return ClockTimeNone
	}
	return ClockTime(uint64(Second) * uint64(f.D) / uint64(f.N))
}

func (f Fraction) String() string {
	return fmt.Sprintf("%d/%d", f.N, f.D)
}
