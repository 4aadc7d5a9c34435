//////////////////////////////////////////////////////////////////////////////
//
// alphaSlot is the rendezvous point between the two input streams
//
// Copyright 2019 Lanikai Labs. All rights reserved.
//
//////////////////////////////////////////////////////////////////////////////

package alphamask

import (
	"sync"

	"github.com/lanikai/alphamask/internal/media"
	"github.com/lanikai/alphamask/internal/video"
)

// alphaSlot is a capacity-one rendezvous between the alpha producer and the
// video consumer. It owns the element's only mutex and condition variable,
// and behind them all state the two goroutines share: the queued alpha
// buffer, the alpha stream's segment and frame geometry, and the
// flushing/EOS/segment-done flags of both streams.
//
// Every mutation increments a generation counter and broadcasts on the one
// condition variable. Waiters never assume a wakeup means their condition
// holds: fill re-checks "slot empty, not flushing" after every wake, and the
// video path re-snapshots the whole state and re-runs its decision. That
// re-check discipline is what lets a single condition variable stand in for
// "slot filled", "slot emptied" and "status changed" at once.
type alphaSlot struct {
	mu   sync.Mutex
	cond *sync.Cond

	// Bumped on every mutation.
	gen uint64

	// The queued alpha buffer, nil while empty.
	buf *media.Buffer

	// Alpha stream state, written by the alpha goroutine.
	segment media.Segment
	info    video.Info

	videoFlushing    bool
	videoEOS         bool
	videoSegmentDone bool
	alphaFlushing    bool
	alphaEOS         bool
	alphaSegmentDone bool
}

func newAlphaSlot() *alphaSlot {
	s := &alphaSlot{}
	s.cond = sync.NewCond(&s.mu)
	// Both streams are flushing until the element starts.
	s.videoFlushing = true
	s.alphaFlushing = true
	return s
}

// bump records a mutation and wakes every waiter. Callers hold mu.
func (s *alphaSlot) bump() {
	s.gen++
	s.cond.Broadcast()
}

// slotState is one consistent view of the shared state, taken under the
// lock and evaluated outside it.
type slotState struct {
	gen     uint64
	buf     *media.Buffer
	segment media.Segment
	info    video.Info

	videoFlushing    bool
	videoEOS         bool
	videoSegmentDone bool
	alphaFlushing    bool
	alphaEOS         bool
	alphaSegmentDone bool
}

func (s *alphaSlot) snapshot() slotState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slotState{
		gen:     s.gen,
		buf:     s.buf,
		segment: s.segment,
		info:    s.info,

		videoFlushing:    s.videoFlushing,
		videoEOS:         s.videoEOS,
		videoSegmentDone: s.videoSegmentDone,
		alphaFlushing:    s.alphaFlushing,
		alphaEOS:         s.alphaEOS,
		alphaSegmentDone: s.alphaSegmentDone,
	}
}

// wait blocks until the state mutates past the observed generation. Returns
// immediately if it already has.
func (s *alphaSlot) wait(gen uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for s.gen == gen {
		s.cond.Wait()
	}
}

// fill queues buf, blocking while a previous buffer is still queued. This
// is the backpressure holding the alpha producer to one frame ahead.
// Returns ErrFlushing if the alpha stream is (or starts) flushing, ErrEOS
// if it has already ended. A valid clipStart becomes the alpha segment's
// position.
func (s *alphaSlot) fill(buf *media.Buffer, clipStart media.ClockTime) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.alphaFlushing {
		return ErrFlushing
	}
	if s.alphaEOS {
		return ErrEOS
	}

	for s.buf != nil {
		log.Trace(2, "alpha slot occupied, waiting")
		s.cond.Wait()
		if s.alphaFlushing {
			return ErrFlushing
		}
	}

	// A timed mask is only meaningful relative to the segment it was clipped
	// against. If that segment went away in the meantime (alpha unlinked),
	// the mask has no time base to pair on; treat it as out of segment.
	if clipStart.IsValid() && s.segment.Format != media.FormatTime {
		log.Debug("no alpha segment, discarding buffer")
		return nil
	}

	if clipStart.IsValid() {
		s.segment.Position = clipStart
	}
	s.buf = buf
	log.Trace(2, "queued %v", buf)

	// The video goroutine may be waiting for exactly this.
	s.bump()
	return nil
}

// release drops the queued buffer. It counts as a mutation even when the
// slot is already empty, so a video waiter blocked on a status change gets
// woken regardless.
func (s *alphaSlot) release() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pop()
}

// pop drops the queued buffer and wakes waiters. Callers hold mu.
func (s *alphaSlot) pop() {
	if s.buf != nil {
		log.Trace(2, "releasing %v", s.buf)
		s.buf = nil
	}
	s.bump()
}

// Video stream status transitions.

func (s *alphaSlot) videoFlushStart() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.videoFlushing = true
	s.bump()
}

func (s *alphaSlot) videoFlushStop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.videoFlushing = false
	s.videoEOS = false
	s.videoSegmentDone = false
	s.bump()
}

func (s *alphaSlot) markVideoEOS() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.videoEOS = true
	s.bump()
}

func (s *alphaSlot) markVideoSegmentDone() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.videoSegmentDone = true
	s.bump()
}

// videoSegmentReplaced clears the terminal flags a new video segment
// supersedes.
func (s *alphaSlot) videoSegmentReplaced() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.videoEOS = false
	s.videoSegmentDone = false
	s.bump()
}

// Alpha stream status transitions. All of them wake the video goroutine: it
// may be blocked waiting for an alpha buffer or an alpha segment update.

func (s *alphaSlot) alphaFlushStart() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.alphaFlushing = true
	// A flushed buffer must not mask any later video frame.
	s.pop()
}

func (s *alphaSlot) alphaFlushStop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.alphaFlushing = false
	s.alphaEOS = false
	s.alphaSegmentDone = false
	s.segment.Reset(media.FormatTime)
	s.pop()
}

func (s *alphaSlot) markAlphaEOS() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.alphaEOS = true
	s.bump()
}

func (s *alphaSlot) markAlphaSegmentDone() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.alphaSegmentDone = true
	s.bump()
}

// replaceAlphaSegment installs a new alpha segment, dropping the terminal
// flags and any buffer timed against the old one.
func (s *alphaSlot) replaceAlphaSegment(seg media.Segment) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.alphaEOS = false
	s.alphaSegmentDone = false
	s.segment = seg
	s.pop()
}

// advanceAlphaPosition moves the alpha segment's position forward without
// data, so a video frame before ts stops waiting for a mask.
func (s *alphaSlot) advanceAlphaPosition(ts media.ClockTime) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.segment.Position = ts
	s.bump()
}

func (s *alphaSlot) setAlphaInfo(info video.Info) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.info = info
	s.bump()
}

// unlinkAlpha clears every trace of the alpha stream. With the segment back
// to undefined, the video path composites nothing and never waits.
func (s *alphaSlot) unlinkAlpha() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.segment.Reset(media.FormatUndefined)
	s.info = video.Info{}
	s.pop()
}

// start arms both streams for a new run.
func (s *alphaSlot) start() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.videoFlushing = false
	s.videoEOS = false
	s.videoSegmentDone = false
	s.alphaFlushing = false
	s.alphaEOS = false
	s.alphaSegmentDone = false
	s.segment.Reset(media.FormatTime)
	s.pop()
}

// shutdown flags both streams as flushing and empties the slot, unblocking
// any waiter for good.
func (s *alphaSlot) shutdown() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.videoFlushing = true
	s.alphaFlushing = true
	s.pop()
}
