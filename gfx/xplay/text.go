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
	"github.com/jetsetilly/xplay/logger"
	"github.com/jetsetilly/xplay/video"
)

const (
	// the minimum capacity of the glyph vertex buffer, in floats
	minGlyphVertices = 4096

	// two triangles of four floats per vertex (x, y, u, v)
	floatsPerVertex = 4
	floatsPerQuad   = 6 * floatsPerVertex
)

// glyphVertices is a growable list of glyph quads. The capacity doubles when
// required and never shrinks.
type glyphVertices struct {
	data []float32
}

func (gv *glyphVertices) reset() {
	gv.data = gv.data[:0]
}

// the number of vertices in the list.
func (gv *glyphVertices) count() int {
	return len(gv.data) / floatsPerVertex
}

// quad adds a quad covering the rectangle from (x0,y0) to (x1,y1) textured
// with the atlas rectangle from (tx0,ty0) to (tx1,ty1).
func (gv *glyphVertices) quad(x0, y0, x1, y1, tx0, ty0, tx1, ty1 float32) {
	if len(gv.data)+floatsPerQuad > cap(gv.data) {
		c := cap(gv.data) * 2
		if c < minGlyphVertices {
			c = minGlyphVertices
		}
		d := make([]float32, len(gv.data), c)
		copy(d, gv.data)
		gv.data = d
	}

	gv.data = append(gv.data,
		x0, y0, tx0, ty0,
		x0, y1, tx0, ty1,
		x1, y0, tx1, ty0,

		x0, y1, tx0, ty1,
		x1, y1, tx1, ty1,
		x1, y0, tx1, ty0,
	)
}

// textRenderer draws messages with the glyphs of a font provider.
type textRenderer struct {
	font video.FontProvider
	prg  *textProgram

	// the GPU copy of the font atlas. the dimensions are of the most recent
	// allocation
	atlas       gpu.Texture
	atlasWidth  int
	atlasHeight int

	verts glyphVertices
	vbo   gpu.Buffer

	color [3]float32

	// a failing atlas upload is logged once until an upload succeeds
	atlasLog logger.Once
}

// newTextRenderer prepares the font for drawing. A text renderer is always
// returned but it will draw nothing if the atlas or the text program could
// not be created.
func newTextRenderer(dev gpu.Device, font video.FontProvider, color [3]float32) *textRenderer {
	tr := &textRenderer{
		font:  font,
		color: color,
	}

	if err := tr.refreshAtlas(dev); err != nil {
		logger.Log(logger.Allow, "xplay: text", err)
	}
	if tr.atlas == 0 {
		logger.Log(logger.Allow, "xplay: text", "error initializing font atlas texture")
		return tr
	}

	var err error
	tr.prg, err = buildTextProgram(dev)
	if err != nil {
		logger.Log(logger.Allow, "xplay: text", curated.Errorf(ProgramError, err))
		return tr
	}

	tr.vbo = dev.NewBuffer()

	logger.Log(logger.Allow, "xplay: text", "font init complete")

	return tr
}

func (tr *textRenderer) destroy(dev gpu.Device) {
	tr.prg.destroy(dev)
	tr.prg = nil
	if tr.atlas != 0 {
		dev.DeleteTexture(tr.atlas)
		tr.atlas = 0
	}
	if tr.vbo != 0 {
		dev.DeleteBuffer(tr.vbo)
		tr.vbo = 0
	}
	if tr.font != nil {
		tr.font.Free()
		tr.font = nil
	}
}

// refreshAtlas uploads the font atlas if it has changed. The texture is
// reallocated if the dimensions of the atlas have changed.
func (tr *textRenderer) refreshAtlas(dev gpu.Device) error {
	atlas := tr.font.Atlas()
	if atlas == nil || !atlas.Dirty {
		return nil
	}

	// the atlas stays dirty so that a corrected buffer is uploaded later
	if atlas.Width < 1 || atlas.Height < 1 || len(atlas.Buffer) < atlas.Width*atlas.Height {
		return curated.Errorf(AtlasError, atlas.Width, atlas.Height, len(atlas.Buffer))
	}

	logger.Logf(logger.Allow, "xplay: text", "updating font atlas texture (%dx%d)", atlas.Width, atlas.Height)

	if tr.atlas == 0 {
		var err error
		tr.atlas, err = dev.NewTexture()
		if err != nil {
			return curated.Errorf(TextureError, err)
		}
	}

	dev.BindTexture(tr.atlas)

	if tr.atlasWidth != atlas.Width || tr.atlasHeight != atlas.Height {
		tr.atlasWidth = atlas.Width
		tr.atlasHeight = atlas.Height
		dev.AllocTexture(gpu.LayoutAlpha8, atlas.Width, atlas.Height)
	}

	dev.UpdateTexture(gpu.LayoutAlpha8, atlas.Width, atlas.Height, atlas.Buffer)
	atlas.Dirty = false

	if err := dev.Error(); err != nil {
		return curated.Errorf(TextureError, err)
	}

	return nil
}

// convert pixel coordinate to normalised device coordinate.
func ndc(px int, dim int) float32 {
	return -1.0 + 2.0*(float32(px)/float32(dim))
}

// layoutMessage fills the vertex list with quads for the message. The pen
// starts at the position, which is given as a fraction of the output
// dimensions. Runes without a glyph are skipped and do not move the pen.
func (tr *textRenderer) layoutMessage(msg string, width int, height int, posX float32, posY float32) {
	tr.verts.reset()

	if tr.atlasWidth < 1 || tr.atlasHeight < 1 {
		return
	}

	penX := int(posX * float32(width))
	penY := int(posY * float32(height))

	aw := float32(tr.atlasWidth)
	ah := float32(tr.atlasHeight)

	for _, r := range msg {
		g, ok := tr.font.Glyph(r)
		if !ok {
			continue
		}

		baseX := penX + g.DrawOffsetX
		baseY := penY - g.DrawOffsetY
		penX += g.AdvanceX
		penY += g.AdvanceY

		gw := g.Width + 1
		gh := g.Height + 1

		tr.verts.quad(
			ndc(baseX, width), ndc(baseY, height),
			ndc(baseX+gw, width), ndc(baseY-gh, height),
			float32(g.AtlasOffsetX)/aw, float32(g.AtlasOffsetY)/ah,
			float32(g.AtlasOffsetX+gw)/aw, float32(g.AtlasOffsetY+gh)/ah,
		)
	}
}

// draw the message. Nothing is drawn if there is no font, atlas or program.
func (tr *textRenderer) draw(dev gpu.Device, msg string, width int, height int, posX float32, posY float32) {
	if tr == nil || tr.font == nil || tr.prg == nil {
		return
	}

	if err := tr.refreshAtlas(dev); err != nil {
		logger.Log(&tr.atlasLog, "xplay: text", err)
	} else {
		tr.atlasLog.Reset()
	}
	if tr.atlas == 0 {
		return
	}

	tr.layoutMessage(msg, width, height, posX, posY)
	if tr.verts.count() == 0 {
		return
	}

	dev.UseProgram(tr.prg.handle)
	dev.ArrayBuffer(tr.vbo, tr.verts.data)
	dev.VertexAttrib(tr.prg.position, 2, floatsPerVertex, 0)
	dev.VertexAttrib(tr.prg.texCoord, 2, floatsPerVertex, 2)
	dev.BindTexture(tr.atlas)
	dev.Uniform1i(tr.prg.sampler, 0)
	dev.Uniform3f(tr.prg.color, tr.color[0], tr.color[1], tr.color[2])
	dev.Uniform2f(tr.prg.px, 1.0/float32(tr.atlasWidth), 1.0/float32(tr.atlasHeight))
	dev.DrawArrays(tr.verts.count())

	if err := dev.Error(); err != nil {
		logger.Log(logger.Allow, "xplay: text", err)
	}
}
