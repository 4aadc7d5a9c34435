//////////////////////////////////////////////////////////////////////////////
//
// Element combines a video stream with an alpha mask stream
//
// Copyright 2019 Lanikai Labs. All rights reserved.
//
//////////////////////////////////////////////////////////////////////////////

// Package alphamask merges two independently clocked raw video streams, a
// color stream and an 8-bit alpha mask stream, into a single stream whose
// frames carry a transparency channel.
//
// The two producers run in their own goroutines and are paired on the
// running-time axis derived from each stream's segment. The alpha producer
// stays at most one buffer ahead: its Push blocks while a mask is already
// queued. The video producer decides per frame whether the queued mask is
// stale, premature, or a match, and emits the combined frame downstream.
package alphamask

import (
	"sync"

	"github.com/golang/groupcache/lru"
	"golang.org/x/exp/slices"
	errors "golang.org/x/xerrors"

	"github.com/lanikai/alphamask/internal/logging"
	"github.com/lanikai/alphamask/internal/media"
	"github.com/lanikai/alphamask/internal/video"
)

var log = logging.DefaultLogger.WithTag("alphamask")

// Sink receives the element's output stream. Both methods are called from
// the video producer's goroutine, in stream order.
type Sink interface {
	// SetFormat announces the negotiated output geometry. Buffers that
	// follow are laid out and sized by it. Returning an error rejects the
	// format and fails negotiation.
	SetFormat(video.Info) error

	// Push delivers one combined frame.
	Push(*media.Buffer) error
}

// Stream format sets. The video input takes any known layout, the alpha
// input an 8-bit gray plane or a 4:2:0 layout whose luma plane serves as
// one. Output formats must carry alpha and default to preferring the planar
// layout, which composites cheapest.
var (
	alphaInputFormats = []video.Format{
		video.FormatGRAY8,
		video.FormatI420,
		video.FormatNV12,
		video.FormatNV21,
	}

	defaultOutputFormats = []video.Format{
		video.FormatA420,
		video.FormatARGB,
		video.FormatAYUV,
	}
)

// converterCacheSize bounds the negotiated-converter cache. Renegotiations
// cycle between a handful of geometries at most.
const converterCacheSize = 8

// An Element pairs buffers from a video input and an alpha input and pushes
// combined frames into its sink.
//
// Lifecycle: New, Start, stream, Close. Start and Close expect quiescent
// inputs, like the state changes of the pipeline driving them.
type Element struct {
	sink    Sink
	formats []video.Format
	factory video.ConverterFactory

	// All cross-goroutine state lives here.
	slot *alphaSlot

	videoIn *VideoInput
	alphaIn *AlphaInput

	// Video path state. Owned by the goroutine driving VideoInput: the
	// video segment, the negotiated geometries, and the frame converter.
	segment    media.Segment
	iinfo      video.Info
	oinfo      video.Info
	convert    video.Converter
	negotiated bool

	// Negotiated converters, keyed by geometry pair. Video goroutine only.
	converters *lru.Cache

	mu          sync.Mutex
	alphaLinked bool
	started     bool
}

// New creates an element pushing combined frames into config.Sink. The
// element is created stopped; until Start, both inputs report ErrFlushing.
func New(config Config) (*Element, error) {
	if config.Sink == nil {
		return nil, errors.New("alphamask: config needs a sink")
	}

	formats := config.Formats
	if len(formats) == 0 {
		formats = defaultOutputFormats
	}
	for _, f := range formats {
		if !f.HasAlpha() {
			return nil, errors.Errorf("alphamask: output format %s has no alpha channel", f)
		}
	}

	factory := config.ConverterFactory
	if factory == nil {
		factory = video.NewConverter
	}

	el := &Element{
		sink:        config.Sink,
		formats:     formats,
		factory:     factory,
		slot:        newAlphaSlot(),
		converters:  lru.New(converterCacheSize),
		alphaLinked: true,
	}
	el.videoIn = &VideoInput{el: el}
	el.alphaIn = &AlphaInput{el: el}
	el.segment.Reset(media.FormatTime)
	return el, nil
}

// VideoInput returns the handle the video producer drives.
func (el *Element) VideoInput() *VideoInput { return el.videoIn }

// AlphaInput returns the handle the alpha producer drives.
func (el *Element) AlphaInput() *AlphaInput { return el.alphaIn }

// Start arms both inputs: fresh open-ended segments, cleared stream status,
// an empty slot.
func (el *Element) Start() {
	el.mu.Lock()
	el.started = true
	el.mu.Unlock()

	el.segment.Reset(media.FormatTime)
	el.slot.start()
	log.Info("started")
}

// Close marks both streams flushing and empties the slot, waking and
// permanently unblocking any waiting producer. Buffers pushed afterwards
// return ErrFlushing.
func (el *Element) Close() error {
	el.mu.Lock()
	el.started = false
	el.mu.Unlock()

	el.slot.shutdown()
	log.Info("closed")
	return nil
}

// UnlinkAlpha detaches the alpha stream. Queued state is dropped and the
// video path passes frames through (converted, fully opaque) without ever
// waiting for a mask.
func (el *Element) UnlinkAlpha() {
	el.mu.Lock()
	defer el.mu.Unlock()
	if !el.alphaLinked {
		return
	}
	el.alphaLinked = false
	el.slot.unlinkAlpha()
	log.Info("alpha input unlinked")
}

// LinkAlpha reattaches the alpha stream after an UnlinkAlpha. The producer
// must send a format and a segment before its buffers pair up again.
func (el *Element) LinkAlpha() error {
	el.mu.Lock()
	defer el.mu.Unlock()
	if el.alphaLinked {
		return ErrLinked
	}
	el.alphaLinked = true
	log.Info("alpha input linked")
	return nil
}

func (el *Element) alphaIsLinked() bool {
	el.mu.Lock()
	defer el.mu.Unlock()
	return el.alphaLinked
}

// PushUpstreamEvent hands an event from the sink side back to the
// producers. QOS is absorbed: the element itself neither drops nor delays,
// so rate feedback is noise to the producers. Everything else fans out to
// both inputs' OnUpstreamEvent callbacks; the reported result is the video
// producer's, the primary stream the event concerns.
func (el *Element) PushUpstreamEvent(ev Event) bool {
	if ev.Kind == EventQOS {
		log.Debug("absorbing qos event")
		return true
	}

	ret := true
	if handle := el.videoIn.OnUpstreamEvent; handle != nil {
		ret = handle(ev)
	}
	if el.alphaIsLinked() {
		if handle := el.alphaIn.OnUpstreamEvent; handle != nil {
			handle(ev)
		}
	}
	return ret
}

// validFormat reports whether f is in the accepted set.
func validFormat(f video.Format, accepted []video.Format) bool {
	return slices.Contains(accepted, f)
}
