package media

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBufferEndTime(t *testing.T) {
	b := NewBuffer(16)
	assert.Equal(t, ClockTimeNone, b.EndTime())

	b.PTS = 2 * Second
	assert.Equal(t, ClockTimeNone, b.EndTime())

	b.Duration = 40 * Millisecond
	assert.Equal(t, 2*Second+40*Millisecond, b.EndTime())
}

func TestBufferCopyMetadata(t *testing.T) {
	src := NewBufferFrom([]byte{1, 2, 3})
	src.PTS = Second
	src.Duration = 33 * Millisecond
	src.Flags = BufferFlagDiscont

	dst := NewBuffer(8)
	dst.CopyMetadataFrom(src)

	assert.Equal(t, src.PTS, dst.PTS)
	assert.Equal(t, src.Duration, dst.Duration)
	assert.Equal(t, src.Flags, dst.Flags)
	assert.Equal(t, 8, len(dst.Data)) // data untouched
}
