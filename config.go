//////////////////////////////////////////////////////////////////////////////
//
// Config contains configuration data for an Element
//
// Copyright 2019 Lanikai Labs. All rights reserved.
//
//////////////////////////////////////////////////////////////////////////////

package alphamask

import (
	"github.com/lanikai/alphamask/internal/video"
)

type Config struct {
	// Sink receives the combined output stream. Required.
	Sink Sink

	// Output formats offered during negotiation, in order of preference.
	// Defaults to A420, ARGB, AYUV. Every entry must carry an alpha channel.
	Formats []video.Format

	// ConverterFactory builds the video-input-to-output converter during
	// negotiation. The default handles pure layout repacks only; supply a
	// factory to support real colorspace conversion.
	ConverterFactory video.ConverterFactory
}
