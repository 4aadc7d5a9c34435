package alphamask

import "errors"

// Stream state errors. Producers match these with errors.Is: a push that
// returns ErrFlushing or ErrEOS has discarded the buffer as part of normal
// stream control, not failed.
var (
	ErrFlushing      = errors.New("flushing")
	ErrEOS           = errors.New("end of stream")
	ErrNotNegotiated = errors.New("not negotiated")
	ErrBadSegment    = errors.New("unsupported segment")
	ErrLinked        = errors.New("alpha input already linked")
)
