//////////////////////////////////////////////////////////////////////////////
//
// Output format negotiation
//
// Copyright 2019 Lanikai Labs. All rights reserved.
//
//////////////////////////////////////////////////////////////////////////////

package alphamask

import (
	errors "golang.org/x/xerrors"

	"github.com/lanikai/alphamask/internal/video"
)

// negotiate picks the first offered output format a converter can be built
// for and installs it with the sink. Runs on the video goroutine whenever
// the input geometry changes.
func (el *Element) negotiate() error {
	in := el.iinfo
	el.negotiated = false

	var firstErr error
	for _, f := range el.formats {
		out, err := video.NewInfo(f, in.Width, in.Height)
		if err != nil {
			return errors.Errorf("alphamask: %v: %w", err, ErrNotNegotiated)
		}
		out.FPS = in.FPS
		out.PAR = in.PAR

		conv, err := el.converter(in, out)
		if err != nil {
			log.Debug("no %s -> %s converter: %v", in.Format, f, err)
			if firstErr == nil {
				firstErr = err
			}
			continue
		}

		// The sink gets a veto. A refusal here is a hard failure, not a
		// reason to try a less preferred format it was never offered.
		if err := el.sink.SetFormat(out); err != nil {
			return errors.Errorf("alphamask: sink rejected %v: %v: %w",
				out, err, ErrNotNegotiated)
		}

		el.oinfo = out
		el.convert = conv
		el.negotiated = true
		log.Info("negotiated %v -> %v", in, out)
		return nil
	}

	return errors.Errorf("alphamask: no usable output format for %v (%v): %w",
		in, firstErr, ErrNotNegotiated)
}

// converter returns a cached converter for the geometry pair, building one
// through the factory on a miss.
func (el *Element) converter(in, out video.Info) (video.Converter, error) {
	key := in.Key() + ">" + out.Key()
	if cached, ok := el.converters.Get(key); ok {
		log.Debug("converter cache hit for %s", key)
		return cached.(video.Converter), nil
	}

	conv, err := el.factory(in, out)
	if err != nil {
		return nil, err
	}
	el.converters.Add(key, conv)
	return conv, nil
}
