//////////////////////////////////////////////////////////////////////////////
//
// Frame composition and delivery
//
// Copyright 2019 Lanikai Labs. All rights reserved.
//
//////////////////////////////////////////////////////////////////////////////

package alphamask

import (
	"github.com/lanikai/alphamask/internal/media"
	"github.com/lanikai/alphamask/internal/video"
)

// pushFrame converts one video buffer to the output layout, writes the mask
// into its alpha channel, and pushes the result downstream.
//
// Pixel trouble on a single frame (a short buffer, a converter failure)
// drops that frame with a warning and returns nil; the stream is healthier
// skipping one frame than stopping. An unreadable mask degrades softer
// still: the frame goes out converted but fully opaque. Only the sink's own
// push error propagates.
func (el *Element) pushFrame(vbuf, abuf *media.Buffer, ainfo video.Info) error {
	src, err := video.Map(el.iinfo, vbuf)
	if err != nil {
		log.Warn("dropping video frame: %v", err)
		return nil
	}

	out := media.NewBuffer(el.oinfo.Size)
	out.CopyMetadataFrom(vbuf)
	dst, err := video.Map(el.oinfo, out)
	if err != nil {
		log.Warn("dropping video frame: %v", err)
		return nil
	}

	if err := el.convert.Convert(dst, src); err != nil {
		log.Warn("conversion failed, dropping video frame: %v", err)
		return nil
	}

	if abuf != nil {
		// The mask may be smaller than the frame (it covers the top-left
		// region), never larger.
		if mask, err := video.Map(ainfo, abuf); err != nil {
			log.Warn("cannot map alpha buffer, pushing frame opaque: %v", err)
		} else if ainfo.Width > el.oinfo.Width || ainfo.Height > el.oinfo.Height {
			log.Warn("alpha mask %v exceeds output %v, pushing frame opaque",
				ainfo, el.oinfo)
		} else if el.oinfo.Format.AlphaPlane() >= 0 {
			video.ComposeAlphaPlanar(dst, mask)
		} else {
			video.ComposeAlphaPacked(dst, mask)
		}
	}

	log.Trace(2, "pushing %v", out)
	return el.sink.Push(out)
}
