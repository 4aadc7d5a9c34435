//////////////////////////////////////////////////////////////////////////////
//
// VideoInput consumes the color video stream
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

// VideoInput is the handle the video producer drives. One goroutine calls
// its methods in stream order; Push may block waiting for the alpha stream
// to catch up.
//
// Control events handled here are also forwarded downstream when the sink
// implements EventSink, so the output stream carries the same transitions
// as its primary input.
type VideoInput struct {
	el *Element

	// OnUpstreamEvent, when set, receives events traveling upstream from
	// the sink side (seeks and the like). The return value reports whether
	// the producer handled the event.
	OnUpstreamEvent func(Event) bool
}

// SetFormat announces the geometry of subsequent video buffers and
// renegotiates the output with the sink.
func (in *VideoInput) SetFormat(info video.Info) error {
	if !info.Format.IsValid() {
		return errors.Errorf("alphamask: unusable video format %v: %w",
			info.Format, ErrNotNegotiated)
	}
	log.Debug("video input format %v", info)

	el := in.el
	el.iinfo = info
	return el.negotiate()
}

// NewSegment installs the time window for subsequent video buffers. A new
// segment supersedes a previous end-of-stream or segment-done.
func (in *VideoInput) NewSegment(seg media.Segment) error {
	if seg.Format != media.FormatTime {
		return errors.Errorf("alphamask: video input needs a time segment, got %v: %w",
			seg.Format, ErrBadSegment)
	}

	el := in.el
	el.slot.videoSegmentReplaced()
	el.segment = seg
	log.Info("video segment now: %v", seg)

	return el.pushEvent(Event{Kind: EventSegment, Segment: seg})
}

// Push pairs one video buffer with the alpha stream and emits the combined
// frame. It blocks while the matching mask could still arrive, and returns
// ErrFlushing or ErrEOS when stream state discards the buffer instead.
//
// The decision against the queued mask uses running times, so it holds
// across streams with different segment mappings:
//
//	mask end <= frame start   stale: drop the mask, decide again
//	frame end <= mask start   premature: drop this video frame, keep the mask
//	otherwise                 overlap: composite; drop the mask once used up
func (in *VideoInput) Push(buf *media.Buffer) error {
	el := in.el

	if !el.negotiated {
		return ErrNotNegotiated
	}

	// Undated video cannot be paired with the mask stream.
	if !buf.PTS.IsValid() {
		log.Warn("video buffer without timestamp, discarding")
		return nil
	}

	log.Trace(2, "%v  incoming %v", el.segment, buf)

	clipStart, clipStop, ok := el.segment.Clip(buf.PTS, buf.EndTime())
	if !ok {
		log.Debug("video buffer out of segment, discarding")
		return nil
	}
	buf.PTS = clipStart
	if buf.Duration.IsValid() {
		buf.Duration = clipStop - clipStart
	}

	// The pairing below needs an end time. Estimate one from the frame
	// rate when the buffer carries no duration; the estimate is only used
	// for comparisons and never lands on the buffer.
	cmpStop := clipStop
	if !cmpStop.IsValid() {
		if interval := el.iinfo.FrameDuration(); interval.IsValid() {
			log.Debug("estimating video duration from frame rate")
			cmpStop = clipStart + interval
		} else {
			log.Trace(2, "no duration, assuming minimal duration")
			cmpStop = clipStart + 1
		}
	}

	var ret error

decide:
	for {
		st := el.slot.snapshot()

		if st.videoFlushing {
			log.Debug("video flushing, discarding buffer")
			return ErrFlushing
		}
		if st.videoEOS {
			log.Debug("video EOS, discarding buffer")
			return ErrEOS
		}

		if st.buf != nil {
			// A mask without timestamp or duration cannot be placed on
			// the time axis; it masks this one frame and is then dropped.
			timed := st.buf.PTS.IsValid() && st.buf.Duration.IsValid()

			maskStart := media.ClockTimeNone
			maskEnd := media.ClockTimeNone
			if timed {
				maskStart = st.segment.ToRunningTime(st.buf.PTS)
				maskEnd = st.segment.ToRunningTime(st.buf.PTS + st.buf.Duration)
			} else {
				log.Warn("alpha buffer with invalid timestamp or duration")
			}
			vidStart := el.segment.ToRunningTime(clipStart)
			vidEnd := el.segment.ToRunningTime(cmpStop)

			log.Trace(2, "A: %v - %v", maskStart, maskEnd)
			log.Trace(2, "V: %v - %v", vidStart, vidEnd)

			switch {
			case timed && maskEnd <= vidStart:
				log.Trace(2, "alpha buffer too old, releasing")
				el.slot.release()
				continue decide

			case timed && vidEnd <= maskStart:
				log.Warn("alpha in future, dropping video buffer")
				ret = nil

			default:
				ret = el.pushFrame(buf, st.buf, st.info)
				if !timed || maskEnd <= vidEnd {
					log.Trace(2, "alpha buffer not needed any longer")
					el.slot.release()
				}
			}
			break decide
		}

		// Empty slot. Wait only while the alpha stream could still deliver
		// a mask overlapping this frame: not after its EOS or segment-done,
		// not when its segment already proves the frame precedes any mask
		// to come (frame before the alpha segment's start, or before the
		// position a buffer or gap event advanced it to), and not when
		// there is no alpha segment at all (alpha unlinked or reset).
		wait := !(st.alphaEOS || st.alphaSegmentDone)
		if st.segment.Format == media.FormatTime {
			vidStart := el.segment.ToRunningTime(clipStart)
			maskFrom := st.segment.ToRunningTime(st.segment.Start)
			maskPos := st.segment.ToRunningTime(st.segment.Position)

			if (maskFrom.IsValid() && vidStart < maskFrom) ||
				(maskPos.IsValid() && vidStart < maskPos) {
				wait = false
			}
		} else {
			wait = false
		}

		if wait {
			log.Debug("no alpha buffer, need to wait for one")
			el.slot.wait(st.gen)
			log.Debug("resuming")
			continue decide
		}

		log.Trace(2, "no need to wait for an alpha buffer")
		ret = el.sink.Push(buf)
		break decide
	}

	el.segment.Position = clipStart
	return ret
}

// Gap announces missing video for [start, start+duration). The element has
// nothing to synthesize; the gap just travels downstream.
func (in *VideoInput) Gap(start, duration media.ClockTime) error {
	return in.el.pushEvent(Event{Kind: EventGap, Start: start, Duration: duration})
}

// EndOfStream marks the video stream finished. Buffers pushed afterwards
// return ErrEOS until a new segment or a flush stop.
func (in *VideoInput) EndOfStream() error {
	in.el.slot.markVideoEOS()
	log.Info("video EOS")
	return in.el.pushEvent(Event{Kind: EventEOS})
}

// SegmentDone marks the current segment played out, ending waits the same
// way EndOfStream does while leaving the stream restartable by the next
// segment.
func (in *VideoInput) SegmentDone() error {
	in.el.slot.markVideoSegmentDone()
	log.Info("video segment-done")
	return in.el.pushEvent(Event{Kind: EventSegmentDone})
}

// FlushStart puts the video stream into flushing: a blocked Push wakes and
// returns ErrFlushing, and so does every Push until FlushStop.
func (in *VideoInput) FlushStart() error {
	in.el.slot.videoFlushStart()
	log.Info("video flush start")
	return in.el.pushEvent(Event{Kind: EventFlushStart})
}

// FlushStop ends flushing and opens a fresh video segment.
func (in *VideoInput) FlushStop() error {
	in.el.slot.videoFlushStop()
	in.el.segment.Reset(media.FormatTime)
	log.Info("video flush stop")
	return in.el.pushEvent(Event{Kind: EventFlushStop})
}
