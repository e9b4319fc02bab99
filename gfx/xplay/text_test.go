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
	"slices"
	"strings"
	"testing"

	"github.com/jetsetilly/xplay/curated"
	"github.com/jetsetilly/xplay/gfx/gpu/gputest"
	"github.com/jetsetilly/xplay/logger"
	"github.com/jetsetilly/xplay/test"
)

func TestGlyphVerticesGrowth(t *testing.T) {
	var gv glyphVertices
	test.ExpectEquality(t, gv.count(), 0)

	gv.quad(1, 2, 3, 4, 5, 6, 7, 8)
	test.ExpectEquality(t, gv.count(), 6)
	test.ExpectEquality(t, cap(gv.data), minGlyphVertices)

	first := slices.Clone(gv.data)

	const numQuads = 1000
	for i := 1; i < numQuads; i++ {
		f := float32(i)
		gv.quad(f, f, f, f, f, f, f, f)
	}

	test.ExpectEquality(t, gv.count(), numQuads*6)
	test.ExpectSuccess(t, cap(gv.data) >= numQuads*floatsPerQuad)
	test.ExpectSuccess(t, slices.Equal(gv.data[:floatsPerQuad], first))

	// the last quad is intact
	last := gv.data[len(gv.data)-floatsPerQuad:]
	for _, v := range last {
		test.ExpectEquality(t, v, float32(numQuads-1))
	}

	c := cap(gv.data)
	gv.reset()
	test.ExpectEquality(t, gv.count(), 0)
	test.ExpectEquality(t, cap(gv.data), c)
}

func TestGlyphVertexOrder(t *testing.T) {
	var gv glyphVertices
	gv.quad(1, 2, 3, 4, 5, 6, 7, 8)

	test.ExpectSuccess(t, slices.Equal(gv.data, []float32{
		1, 2, 5, 6,
		1, 4, 5, 8,
		3, 2, 7, 6,
		1, 4, 5, 8,
		3, 4, 7, 8,
		3, 2, 7, 6,
	}))
}

func TestLayoutMessage(t *testing.T) {
	tr := &textRenderer{
		font:        newMockFont(),
		atlasWidth:  16,
		atlasHeight: 8,
	}

	// 'x' has no glyph and does not move the pen
	tr.layoutMessage("AxB", OutputWidth, OutputHeight, 0.0, 0.5)
	test.DemandEquality(t, tr.verts.count(), 12)

	d := tr.verts.data

	// 'A' is drawn with its top-left corner four pixels above the pen and is
	// four pixels wide and five high
	test.ExpectEquality(t, d[0], ndc(0, OutputWidth))
	test.ExpectEquality(t, d[1], ndc(244, OutputHeight))
	test.ExpectEquality(t, d[4], ndc(0, OutputWidth))
	test.ExpectEquality(t, d[5], ndc(239, OutputHeight))
	test.ExpectEquality(t, d[8], ndc(4, OutputWidth))

	// texture coordinates
	test.ExpectEquality(t, d[2], float32(0))
	test.ExpectEquality(t, d[3], float32(0))
	test.ExpectEquality(t, d[10], float32(4)/16)
	test.ExpectEquality(t, d[7], float32(5)/8)

	// 'B' starts after the advance of 'A' plus its own draw offset
	b := d[floatsPerQuad:]
	test.ExpectEquality(t, b[0], ndc(6, OutputWidth))
	test.ExpectEquality(t, b[1], ndc(245, OutputHeight))
	test.ExpectEquality(t, b[2], float32(5)/16)

	// nothing for a message with no glyphs
	tr.layoutMessage("xyz", OutputWidth, OutputHeight, 0.0, 0.5)
	test.ExpectEquality(t, tr.verts.count(), 0)

	// nothing without an atlas
	tr.atlasWidth = 0
	tr.layoutMessage("AB", OutputWidth, OutputHeight, 0.0, 0.5)
	test.ExpectEquality(t, tr.verts.count(), 0)
}

func TestNDC(t *testing.T) {
	test.ExpectEquality(t, ndc(0, 100), float32(-1))
	test.ExpectEquality(t, ndc(50, 100), float32(0))
	test.ExpectEquality(t, ndc(100, 100), float32(1))
}

func TestTextRenderer(t *testing.T) {
	dev := gputest.NewDevice()
	fnt := newMockFont()

	tr := newTextRenderer(dev, fnt, [3]float32{1, 1, 0})
	test.DemandSuccess(t, tr.prg != nil)
	test.ExpectInequality(t, tr.atlas, 0)
	test.ExpectSuccess(t, !fnt.atlas.Dirty)

	atlas := dev.Texture(tr.atlas)
	test.ExpectEquality(t, atlas.Allocations, 1)
	test.ExpectEquality(t, atlas.Width, 16)
	test.ExpectEquality(t, atlas.Height, 8)

	dev.ClearCalls()
	tr.draw(dev, "AB", OutputWidth, OutputHeight, 0.05, 0.05)
	test.ExpectEquality(t, len(dev.CallsMatching("DrawArrays 12")), 1)
	test.ExpectSuccess(t, slices.Equal(dev.Uniform(tr.prg.handle, "v_px"), []float32{1.0 / 16, 1.0 / 8}))
	test.ExpectSuccess(t, slices.Equal(dev.Uniform(tr.prg.handle, "v_color"), []float32{1, 1, 0}))
	test.ExpectEquality(t, len(dev.ArrayData(tr.vbo)), 12*floatsPerVertex)

	// the atlas is not uploaded again unless it is dirty
	test.ExpectEquality(t, len(dev.CallsMatching("UpdateTexture")), 0)

	// a dirty atlas with a new size is reallocated
	fnt.atlas.Width = 32
	fnt.atlas.Buffer = make([]byte, 32*8)
	fnt.atlas.Dirty = true
	tr.draw(dev, "A", OutputWidth, OutputHeight, 0.05, 0.05)
	test.ExpectEquality(t, atlas.Allocations, 2)
	test.ExpectEquality(t, tr.atlasWidth, 32)

	// messages without glyphs draw nothing
	dev.ClearCalls()
	tr.draw(dev, "xyz", OutputWidth, OutputHeight, 0.05, 0.05)
	test.ExpectEquality(t, len(dev.CallsMatching("DrawArrays")), 0)

	tr.destroy(dev)
	test.ExpectEquality(t, fnt.freed, 1)
	textures, shaders, programs, buffers := dev.Live()
	test.ExpectEquality(t, textures+shaders+programs+buffers, 0)
}

func TestTextRendererNoAtlas(t *testing.T) {
	dev := gputest.NewDevice()
	dev.FailTexture = func(_ int) bool {
		return true
	}

	tr := newTextRenderer(dev, newMockFont(), [3]float32{1, 1, 1})
	test.ExpectSuccess(t, tr.prg == nil)

	dev.ClearCalls()
	tr.draw(dev, "AB", OutputWidth, OutputHeight, 0.05, 0.05)
	test.ExpectEquality(t, len(dev.CallsMatching("Draw")), 0)

	// a nil renderer draws nothing
	var nilRenderer *textRenderer
	nilRenderer.draw(dev, "AB", OutputWidth, OutputHeight, 0.05, 0.05)
	test.ExpectEquality(t, len(dev.Calls), 0)
}

func TestTextRendererShortAtlas(t *testing.T) {
	dev := gputest.NewDevice()
	fnt := newMockFont()
	tr := newTextRenderer(dev, fnt, [3]float32{1, 1, 1})
	test.DemandSuccess(t, tr.prg != nil)

	// a buffer too short for the atlas dimensions is never uploaded
	fnt.atlas.Buffer = make([]byte, 16*4)
	fnt.atlas.Dirty = true
	err := tr.refreshAtlas(dev)
	test.ExpectSuccess(t, curated.Is(err, AtlasError))
	test.ExpectSuccess(t, fnt.atlas.Dirty)

	// the previous atlas is still used for drawing and the failure is
	// logged once
	logger.Clear()
	dev.ClearCalls()
	tr.draw(dev, "AB", OutputWidth, OutputHeight, 0.05, 0.05)
	tr.draw(dev, "AB", OutputWidth, OutputHeight, 0.05, 0.05)
	test.ExpectEquality(t, len(dev.CallsMatching("UpdateTexture")), 0)
	test.ExpectEquality(t, len(dev.CallsMatching("DrawArrays 12")), 2)

	var w strings.Builder
	logger.Write(&w)
	test.ExpectEquality(t, strings.Count(w.String(), "font atlas (16x8, 64 bytes)"), 1)

	// a corrected buffer is uploaded
	fnt.atlas.Buffer = make([]byte, 16*8)
	dev.ClearCalls()
	tr.draw(dev, "AB", OutputWidth, OutputHeight, 0.05, 0.05)
	test.ExpectEquality(t, len(dev.CallsMatching("UpdateTexture")), 1)
	test.ExpectSuccess(t, !fnt.atlas.Dirty)

	tr.destroy(dev)

	// a short buffer during creation leaves the renderer unable to draw
	fnt = newMockFont()
	fnt.atlas.Buffer = nil
	tr = newTextRenderer(dev, fnt, [3]float32{1, 1, 1})
	test.ExpectSuccess(t, tr.prg == nil)
	test.ExpectEquality(t, tr.atlas, 0)
}
