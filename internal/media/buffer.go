package media

import "fmt"

// BufferFlags annotate a buffer's place in the stream.
type BufferFlags uint32

const (
	// BufferFlagDiscont marks the first buffer after a gap or seek.
	BufferFlagDiscont BufferFlags = 1 << iota

	// BufferFlagGap marks synthesized filler rather than real media.
	BufferFlagGap
)

// A Buffer is one frame's worth of raw media plus its timing. PTS and
// Duration are stream time and may be undefined. Once handed to an input the
// producer must not touch the buffer again; the element may rewrite its
// timing when clipping it to a segment.
type Buffer struct {
	Data     []byte
	PTS      ClockTime
	Duration ClockTime
	Flags    BufferFlags
}

// NewBuffer allocates a zeroed buffer of the given size with undefined
// timing.
func NewBuffer(size int) *Buffer {
	return &Buffer{
		Data:     make([]byte, size),
		PTS:      ClockTimeNone,
		Duration: ClockTimeNone,
	}
}

// NewBufferFrom wraps existing bytes without copying.
func NewBufferFrom(data []byte) *Buffer {
	return &Buffer{
		Data:     data,
		PTS:      ClockTimeNone,
		Duration: ClockTimeNone,
	}
}

// EndTime returns PTS+Duration when both are defined.
func (b *Buffer) EndTime() ClockTime {
	return b.PTS.Add(b.Duration)
}

// CopyMetadataFrom copies timing and flags, leaving Data alone.
func (b *Buffer) CopyMetadataFrom(src *Buffer) {
	b.PTS = src.PTS
	b.Duration = src.Duration
	b.Flags = src.Flags
}

func (b *Buffer) String() string {
	return fmt.Sprintf("buffer pts=%s dur=%s size=%d", b.PTS, b.Duration, len(b.Data))
}
