package media

import "fmt"

// SegmentFormat identifies the units a segment is expressed in. Only time
// segments are meaningful to the alpha mask element; an undefined segment is
// the state before the first segment event (or after a stream reset) and
// rejects all buffers.
type SegmentFormat int

const (
	FormatUndefined SegmentFormat = iota
	FormatTime
)

func (f SegmentFormat) String() string {
	switch f {
	case FormatUndefined:
		return "undefined"
	case FormatTime:
		return "time"
	default:
		return fmt.Sprintf("format(%d)", int(f))
	}
}

// A Segment describes the playable region of a stream and how stream-local
// timestamps map onto the shared running-time axis. Producers replace it
// wholesale on each segment event; Position tracks the last accepted buffer
// and is a plain field write by the segment's owner.
type Segment struct {
	Format SegmentFormat

	// Playback rate. 1.0 is normal forward playback; negative rates play
	// the segment backwards from Stop. Never 0 for a time segment.
	Rate float64

	// Clipping boundaries in stream time. Stop may be ClockTimeNone for a
	// segment with no known end.
	Start, Stop ClockTime

	// Running time that Start maps to, accumulated across segments.
	Base ClockTime

	// Amount of stream time to skip at the head of the segment.
	Offset ClockTime

	// Stream time of Start as presented to the user (seek target).
	Time ClockTime

	// Stream time of the last accepted buffer.
	Position ClockTime
}

// NewSegment returns an open-ended time segment starting at 0 with normal
// playback rate.
func NewSegment() Segment {
	var s Segment
	s.Reset(FormatTime)
	return s
}

// Reset reinitializes the segment in place to the defaults for the given
// format.
func (s *Segment) Reset(format SegmentFormat) {
	*s = Segment{
		Format:   format,
		Rate:     1.0,
		Start:    0,
		Stop:     ClockTimeNone,
		Base:     0,
		Offset:   0,
		Time:     0,
		Position: 0,
	}
}

// Clip intersects the interval [start, stop) with the segment's playable
// region [Start, Stop) and reports whether any of it survives.
//
// An undefined start passes through unchanged; an undefined stop means the
// interval's end is unknown, which is accepted only when start is already
// inside the segment (an unknown end cannot prove overlap from before the
// segment). The degenerate instant start == stop == Start counts as inside.
// The returned interval never extends outside the segment.
func (s *Segment) Clip(start, stop ClockTime) (cstart, cstop ClockTime, ok bool) {
	if s.Format != FormatTime {
		return ClockTimeNone, ClockTimeNone, false
	}

	// Entirely at or past the segment end.
	if s.Stop.IsValid() && start.IsValid() && start >= s.Stop {
		return ClockTimeNone, ClockTimeNone, false
	}

	// Unknown end starting before the segment: no provable overlap.
	if !stop.IsValid() && start.IsValid() && start < s.Start {
		return ClockTimeNone, ClockTimeNone, false
	}

	// Entirely before the segment start. The empty instant sitting exactly
	// on Start is inside; a non-empty interval ending on Start is not.
	if stop.IsValid() && (stop < s.Start || (start != stop && stop == s.Start)) {
		return ClockTimeNone, ClockTimeNone, false
	}

	cstart = start
	if start.IsValid() && start < s.Start {
		cstart = s.Start
	}
	cstop = stop
	if stop.IsValid() && s.Stop.IsValid() && stop > s.Stop {
		cstop = s.Stop
	}
	return cstart, cstop, true
}

// ToRunningTime maps a stream-local timestamp onto the shared running-time
// axis. Timestamps outside the segment, undefined timestamps, and non-time
// segments map to ClockTimeNone.
func (s *Segment) ToRunningTime(ts ClockTime) ClockTime {
	if s.Format != FormatTime || !ts.IsValid() || s.Rate == 0 {
		return ClockTimeNone
	}

	var rel ClockTime
	if s.Rate > 0 {
		if ts < s.Start {
			return ClockTimeNone
		}
		rel = ts - s.Start
	} else {
		// Reverse playback runs from Stop down to Start.
		if !s.Stop.IsValid() || ts > s.Stop {
			return ClockTimeNone
		}
		rel = s.Stop - ts
	}

	if rel < s.Offset {
		return ClockTimeNone
	}
	rel -= s.Offset

	if rate := s.Rate; rate != 1.0 && rate != -1.0 {
		if rate < 0 {
			rate = -rate
		}
		rel = ClockTime(float64(rel) / rate)
	}
	return s.Base + rel
}

func (s Segment) String() string {
	return fmt.Sprintf("segment %s rate=%g start=%s stop=%s base=%s pos=%s",
		s.Format, s.Rate, s.Start, s.Stop, s.Base, s.Position)
}
