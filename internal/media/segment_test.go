package media

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSegmentClip(t *testing.T) {
	s := NewSegment()
	s.Start = 10 * Second
	s.Stop = 20 * Second

	cases := []struct {
		name        string
		start, stop ClockTime
		cstart      ClockTime
		cstop       ClockTime
		ok          bool
	}{
		{"inside", 12 * Second, 13 * Second, 12 * Second, 13 * Second, true},
		{"head overlap trimmed", 5 * Second, 15 * Second, 10 * Second, 15 * Second, true},
		{"tail overlap trimmed", 15 * Second, 25 * Second, 15 * Second, 20 * Second, true},
		{"spanning both ends", 5 * Second, 25 * Second, 10 * Second, 20 * Second, true},
		{"entirely before", 2 * Second, 5 * Second, ClockTimeNone, ClockTimeNone, false},
		{"entirely after", 21 * Second, 22 * Second, ClockTimeNone, ClockTimeNone, false},
		{"starts at segment stop", 20 * Second, 21 * Second, ClockTimeNone, ClockTimeNone, false},
		{"ends on segment start", 5 * Second, 10 * Second, ClockTimeNone, ClockTimeNone, false},
		{"empty instant on start", 10 * Second, 10 * Second, 10 * Second, 10 * Second, true},
		{"empty instant on stop", 20 * Second, 20 * Second, ClockTimeNone, ClockTimeNone, false},
		{"unknown end inside", 15 * Second, ClockTimeNone, 15 * Second, ClockTimeNone, true},
		{"unknown end before start", 5 * Second, ClockTimeNone, ClockTimeNone, ClockTimeNone, false},
		{"undefined start passes through", ClockTimeNone, 15 * Second, ClockTimeNone, 15 * Second, true},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			cstart, cstop, ok := s.Clip(c.start, c.stop)
			assert.Equal(t, c.ok, ok)
			if c.ok {
				assert.Equal(t, c.cstart, cstart)
				assert.Equal(t, c.cstop, cstop)
			}
		})
	}
}

func TestSegmentClipOpenEnded(t *testing.T) {
	s := NewSegment()
	s.Start = 10 * Second

	cstart, cstop, ok := s.Clip(15*Second, 25*Second)
	assert.True(t, ok)
	assert.Equal(t, 15*Second, cstart)
	assert.Equal(t, 25*Second, cstop)

	// No segment stop means nothing is ever "past the end".
	cstart, _, ok = s.Clip(1000*Second, ClockTimeNone)
	assert.True(t, ok)
	assert.Equal(t, 1000*Second, cstart)
}

func TestSegmentClipUndefinedFormat(t *testing.T) {
	var s Segment
	_, _, ok := s.Clip(0, Second)
	assert.False(t, ok, "a segment without a format accepts nothing")
}

func TestSegmentToRunningTime(t *testing.T) {
	s := NewSegment()
	s.Start = 10 * Second
	s.Base = 100 * Second

	assert.Equal(t, 100*Second, s.ToRunningTime(10*Second))
	assert.Equal(t, 105*Second, s.ToRunningTime(15*Second))
	assert.Equal(t, ClockTimeNone, s.ToRunningTime(5*Second), "before segment start")
	assert.Equal(t, ClockTimeNone, s.ToRunningTime(ClockTimeNone))

	// Double rate halves the running-time advance.
	s.Rate = 2.0
	assert.Equal(t, 102*Second+500*Millisecond, s.ToRunningTime(15*Second))

	// Offset skips the head of the segment.
	s.Rate = 1.0
	s.Offset = 2 * Second
	assert.Equal(t, ClockTimeNone, s.ToRunningTime(11*Second))
	assert.Equal(t, 103*Second, s.ToRunningTime(15*Second))
}

func TestSegmentToRunningTimeReverse(t *testing.T) {
	s := NewSegment()
	s.Rate = -1.0
	s.Start = 10 * Second
	s.Stop = 20 * Second

	assert.Equal(t, ClockTime(0), s.ToRunningTime(20*Second))
	assert.Equal(t, 5*Second, s.ToRunningTime(15*Second))
	assert.Equal(t, ClockTimeNone, s.ToRunningTime(25*Second), "past stop")

	s.Stop = ClockTimeNone
	assert.Equal(t, ClockTimeNone, s.ToRunningTime(15*Second), "reverse needs a stop")
}

func TestSegmentToRunningTimeMonotonic(t *testing.T) {
	s := NewSegment()
	s.Start = Second
	prev := ClockTime(0)
	for ts := Second; ts < 10*Second; ts += 33 * Millisecond {
		rt := s.ToRunningTime(ts)
		assert.True(t, rt.IsValid())
		assert.True(t, rt >= prev, "running time regressed at ts=%s", ts)
		prev = rt
	}
}

func TestSegmentReset(t *testing.T) {
	s := NewSegment()
	s.Start = 5 * Second
	s.Position = 9 * Second

	s.Reset(FormatUndefined)
	assert.Equal(t, FormatUndefined, s.Format)

	s.Reset(FormatTime)
	assert.Equal(t, FormatTime, s.Format)
	assert.Equal(t, ClockTime(0), s.Start)
	assert.Equal(t, ClockTimeNone, s.Stop)
	assert.Equal(t, 1.0, s.Rate)
}
