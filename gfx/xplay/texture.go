// This file is part of Xplay.
//
// Xplay is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// Xplay is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with Xplay.  If not, see <https://www.gnu.org/licenses/>.

package xplay

import (
	"github.com/jetsetilly/xplay/curated"
	"github.com/jetsetilly/xplay/gfx/gpu"
	"github.com/jetsetilly/xplay/video"
)

// layout returns the texel layout used to upload pixels of the format.
func layout(format video.PixelFormat) gpu.Layout {
	switch format {
	case video.FormatRGBA4444:
		return gpu.LayoutRGBA4444
	case video.FormatRGB565:
		return gpu.LayoutRGB565
	}
	return gpu.LayoutRGBA8888
}

// frameTexture is a texture that receives the pixels of a frame source.
type frameTexture struct {
	id gpu.Texture

	width  int
	height int
	format video.PixelFormat

	// rows of source pixels are copied into the scratch buffer when the
	// source pitch is not the same as the width of the texture
	scratch []byte

	// quad vertices from the most recent draw
	verts [8]float32
}

// newFrameTexture creates the GPU texture for the frameTexture.
func newFrameTexture(dev gpu.Device) (frameTexture, error) {
	id, err := dev.NewTexture()
	if err != nil {
		return frameTexture{}, curated.Errorf(TextureError, err)
	}
	return frameTexture{id: id}, nil
}

func (tex *frameTexture) destroy(dev gpu.Device) {
	if tex.id != 0 {
		dev.DeleteTexture(tex.id)
	}
	*tex = frameTexture{}
}

// upload copies pixels from the source buffer to the texture. The pitch is
// the number of bytes between the start of each row in the source.
//
// Nothing happens if the width or height is less than one or if the format
// is FormatNone. A source that is too short for the dimensions is rejected
// without changing the texture.
func (tex *frameTexture) upload(dev gpu.Device, src []byte, width int, height int, pitch int, format video.PixelFormat) error {
	if width < 1 || height < 1 || format == video.FormatNone {
		return nil
	}

	lay := layout(format)
	expectedPitch := format.TexelSize() * width

	if pitch < expectedPitch || len(src) < pitch*(height-1)+expectedPitch {
		return curated.Errorf(MalformedFrame, width, height, pitch, len(src))
	}

	dev.BindTexture(tex.id)

	if tex.width != width || tex.height != height || tex.format != format {
		tex.width = width
		tex.height = height
		tex.format = format
		tex.scratch = nil
		dev.AllocTexture(lay, width, height)
	}

	source := src[:expectedPitch*height]
	if pitch != expectedPitch {
		if tex.scratch == nil {
			tex.scratch = make([]byte, expectedPitch*height)
		}
		for y := 0; y < height; y++ {
			copy(tex.scratch[y*expectedPitch:(y+1)*expectedPitch], src[y*pitch:y*pitch+expectedPitch])
		}
		source = tex.scratch
	}

	dev.UpdateTexture(lay, width, height, source)

	if err := dev.Error(); err != nil {
		return curated.Errorf(BlitError, err)
	}

	return nil
}
