//////////////////////////////////////////////////////////////////////////////
//
// AlphaInput consumes the alpha mask stream
//
// Copyright 2019 Lanikai Labs. All rights reserved.
//
//////////////////////////////////////////////////////////////////////////////

package alphamask

import (
	errors "golang.org/x/xerrors"

	"github.com/lanikai/alphamask/internal/media"
	"github.com/lanikai/alphamask/internal/video"
)

// AlphaInput is the handle the alpha producer drives, from its own
// goroutine. Buffers carry one 8-bit mask per frame: a GRAY8 plane, or the
// luma plane of a 4:2:0 layout whose chroma is ignored.
//
// Nothing from this input is forwarded downstream; the mask stream ends
// inside the element.
type AlphaInput struct {
	el *Element

	// OnUpstreamEvent, when set, receives events traveling upstream from
	// the sink side.
	OnUpstreamEvent func(Event) bool
}

// SetFormat announces the geometry of subsequent mask buffers.
func (in *AlphaInput) SetFormat(info video.Info) error {
	if !validFormat(info.Format, alphaInputFormats) {
		return errors.Errorf("alphamask: unusable alpha format %v: %w",
			info.Format, ErrNotNegotiated)
	}
	log.Debug("alpha input format %v", info)

	in.el.slot.setAlphaInfo(info)
	return nil
}

// NewSegment installs the time window for subsequent mask buffers, dropping
// any mask queued against the previous segment.
func (in *AlphaInput) NewSegment(seg media.Segment) error {
	if seg.Format != media.FormatTime {
		return errors.Errorf("alphamask: alpha input needs a time segment, got %v: %w",
			seg.Format, ErrBadSegment)
	}

	in.el.slot.replaceAlphaSegment(seg)
	log.Info("alpha segment now: %v", seg)
	return nil
}

// Push queues one mask buffer for the video path. It blocks while a
// previous mask is still queued; that backpressure is what keeps the alpha
// producer at most one buffer ahead of the video stream.
//
// A buffer without a timestamp is accepted as-is and will mask exactly one
// video frame. Timed buffers are clipped to the alpha segment; buffers
// entirely outside it are discarded with a nil return.
func (in *AlphaInput) Push(buf *media.Buffer) error {
	el := in.el
	st := el.slot.snapshot()

	if st.alphaFlushing {
		log.Trace(2, "alpha flushing")
		return ErrFlushing
	}
	if st.alphaEOS {
		log.Trace(2, "alpha EOS")
		return ErrEOS
	}

	log.Trace(2, "%v  incoming %v", st.segment, buf)

	clipStart := media.ClockTimeNone
	if buf.PTS.IsValid() {
		var clipStop media.ClockTime
		var ok bool
		clipStart, clipStop, ok = st.segment.Clip(buf.PTS, buf.EndTime())
		if !ok {
			log.Debug("alpha buffer out of segment, discarding")
			return nil
		}
		buf.PTS = clipStart
		if buf.Duration.IsValid() {
			buf.Duration = clipStop - clipStart
		}
	}

	return el.slot.fill(buf, clipStart)
}

// Gap announces that no mask will cover [start, start+duration): the alpha
// segment's position advances past the gap so a video frame inside it stops
// waiting.
func (in *AlphaInput) Gap(start, duration media.ClockTime) error {
	ts := start
	if duration.IsValid() {
		ts = start.Add(duration)
	}
	in.el.slot.advanceAlphaPosition(ts)
	log.Debug("alpha gap until %v", ts)
	return nil
}

// EndOfStream marks the mask stream finished. A waiting video frame
// proceeds without a mask; the queued mask, if any, still serves frames it
// overlaps.
func (in *AlphaInput) EndOfStream() error {
	in.el.slot.markAlphaEOS()
	log.Info("alpha EOS")
	return nil
}

// SegmentDone marks the current alpha segment played out.
func (in *AlphaInput) SegmentDone() error {
	in.el.slot.markAlphaSegmentDone()
	log.Info("alpha segment-done")
	return nil
}

// FlushStart puts the alpha stream into flushing and discards the queued
// mask; a blocked Push wakes and returns ErrFlushing.
func (in *AlphaInput) FlushStart() error {
	in.el.slot.alphaFlushStart()
	log.Info("alpha flush start")
	return nil
}

// FlushStop ends flushing and opens a fresh alpha segment.
func (in *AlphaInput) FlushStop() error {
	in.el.slot.alphaFlushStop()
	log.Info("alpha flush stop")
	return nil
}
