//////////////////////////////////////////////////////////////////////////////
//
// Stream control events
//
// Copyright 2019 Lanikai Labs. All rights reserved.
//
//////////////////////////////////////////////////////////////////////////////

package alphamask

import (
	"fmt"

	"github.com/lanikai/alphamask/internal/media"
)

// EventKind identifies a stream control transition.
type EventKind int

const (
	// Downstream events, delivered in order with the video buffers.
	EventSegment EventKind = iota + 1
	EventGap
	EventEOS
	EventSegmentDone
	EventFlushStart
	EventFlushStop

	// Upstream events, traveling from the sink back toward the producers.
	EventQOS
	EventSeek
)

func (k EventKind) String() string {
	switch k {
	case EventSegment:
		return "segment"
	case EventGap:
		return "gap"
	case EventEOS:
		return "eos"
	case EventSegmentDone:
		return "segment-done"
	case EventFlushStart:
		return "flush-start"
	case EventFlushStop:
		return "flush-stop"
	case EventQOS:
		return "qos"
	case EventSeek:
		return "seek"
	default:
		return fmt.Sprintf("event(%d)", int(k))
	}
}

// An Event is a control message traveling alongside buffers. Which fields
// are meaningful depends on Kind: Segment for EventSegment, Start and
// Duration for EventGap and EventSeek.
type Event struct {
	Kind EventKind

	Segment media.Segment

	Start    media.ClockTime
	Duration media.ClockTime
}

func (e Event) String() string {
	switch e.Kind {
	case EventSegment:
		return fmt.Sprintf("%s %v", e.Kind, e.Segment)
	case EventGap:
		return fmt.Sprintf("%s start=%s dur=%s", e.Kind, e.Start, e.Duration)
	default:
		return e.Kind.String()
	}
}

// EventSink is an optional extension of Sink. A sink that implements it
// receives the video path's control events, in order with the buffers
// pushed to it.
type EventSink interface {
	Sink
	PushEvent(Event) error
}

// pushEvent forwards a video-path event downstream when the sink cares.
func (el *Element) pushEvent(ev Event) error {
	if sink, ok := el.sink.(EventSink); ok {
		log.Debug("forwarding %v", ev)
		return sink.PushEvent(ev)
	}
	return nil
}
