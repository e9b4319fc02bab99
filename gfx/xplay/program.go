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
	"fmt"

	"github.com/jetsetilly/xplay/curated"
	"github.com/jetsetilly/xplay/gfx/gpu"
	"github.com/jetsetilly/xplay/gfx/xplay/shaders"
	"github.com/jetsetilly/xplay/logger"
)

// compile and link shader programs. the shaders are deleted once the program
// has been linked (or has failed to link).
func linkProgram(dev gpu.Device, vertProgram string, fragProgram string) (gpu.Program, error) {
	vs, err := dev.CompileShader(gpu.VertexShader, vertProgram)
	if err != nil {
		return 0, err
	}

	fs, err := dev.CompileShader(gpu.FragmentShader, fragProgram)
	if err != nil {
		dev.DeleteShader(vs)
		return 0, err
	}

	p, err := dev.LinkProgram(vs, fs)
	dev.DeleteShader(fs)
	dev.DeleteShader(vs)
	if err != nil {
		return 0, err
	}

	return p, nil
}

// locator resolves attribute and uniform locations of a program. the first
// location to fail is recorded and all subsequent lookups are skipped.
type locator struct {
	dev    gpu.Device
	handle gpu.Program
	err    error
}

func (l *locator) attrib(name string) int32 {
	if l.err != nil {
		return -1
	}
	loc := l.dev.AttribLocation(l.handle, name)
	if loc < 0 {
		l.err = fmt.Errorf("attribute %s not found", name)
	}
	return loc
}

func (l *locator) uniform(name string) int32 {
	if l.err != nil {
		return -1
	}
	loc := l.dev.UniformLocation(l.handle, name)
	if loc < 0 {
		l.err = fmt.Errorf("uniform %s not found", name)
	}
	return loc
}

// program draws a framebuffer texture.
type program struct {
	handle gpu.Program

	// attributes
	position int32
	texCoord int32

	// uniforms
	sampler int32
	alpha   int32
}

// buildFramebufferProgram compiles and links the framebuffer program for the
// channel order and grid periods. All GPU objects are released on failure.
func buildFramebufferProgram(dev gpu.Device, order channelOrder, hlines int, vlines int) (*program, error) {
	handle, err := linkProgram(dev, framebufferVertexSource(), framebufferFragmentSource(order, hlines, vlines))
	if err != nil {
		return nil, err
	}

	l := locator{dev: dev, handle: handle}
	prg := &program{
		handle:   handle,
		position: l.attrib("a_position"),
		texCoord: l.attrib("a_texCoord"),
		sampler:  l.uniform("s_texture"),
		alpha:    l.uniform("f_alpha"),
	}
	if l.err != nil {
		dev.DeleteProgram(handle)
		return nil, l.err
	}

	return prg, nil
}

func (prg *program) destroy(dev gpu.Device) {
	if prg != nil && prg.handle != 0 {
		dev.DeleteProgram(prg.handle)
		prg.handle = 0
	}
}

// programSet is the complete set of framebuffer programs. One program for
// every combination of channel order and grid mode.
type programSet [numChannelOrders][numGridModes]*program

// buildProgramSet builds every program in the set. On failure any program
// already built is destroyed.
func buildProgramSet(dev gpu.Device) (*programSet, error) {
	set := &programSet{}
	for g := gridMode(0); g < numGridModes; g++ {
		for o := channelOrder(0); o < numChannelOrders; o++ {
			prg, err := buildFramebufferProgram(dev, o, g.period(), g.period())
			if err != nil {
				set.destroy(dev)
				return nil, curated.Errorf(ProgramError, fmt.Errorf("%s %s: %w", o, g, err))
			}
			set[o][g] = prg
		}
	}
	return set, nil
}

func (set *programSet) destroy(dev gpu.Device) {
	for o := range set {
		for g := range set[o] {
			set[o][g].destroy(dev)
			set[o][g] = nil
		}
	}
}

// get returns the program for the channel order of the source and the
// dimensions of the texture.
func (set *programSet) get(order channelOrder, width int, height int, allowGrid bool) *program {
	sx, sy := ScaleFactor(width, height)
	return set[order][gridVariant(sx, sy, allowGrid)]
}

// textProgram draws glyph quads from the font atlas.
type textProgram struct {
	handle gpu.Program

	// attributes
	position int32
	texCoord int32

	// uniforms
	sampler int32
	color   int32
	px      int32
}

func buildTextProgram(dev gpu.Device) (*textProgram, error) {
	handle, err := linkProgram(dev, string(shaders.TextVertexShader), string(shaders.TextFragmentShader))
	if err != nil {
		return nil, err
	}

	l := locator{dev: dev, handle: handle}
	prg := &textProgram{
		handle:   handle,
		position: l.attrib("a_position"),
		texCoord: l.attrib("a_texCoord"),
		sampler:  l.uniform("s_texture"),
		color:    l.uniform("v_color"),
		px:       l.uniform("v_px"),
	}
	if l.err != nil {
		logger.Log(logger.Allow, "xplay: program", "error looking up font program names")
		dev.DeleteProgram(handle)
		return nil, l.err
	}

	return prg, nil
}

func (prg *textProgram) destroy(dev gpu.Device) {
	if prg != nil && prg.handle != 0 {
		dev.DeleteProgram(prg.handle)
		prg.handle = 0
	}
}
