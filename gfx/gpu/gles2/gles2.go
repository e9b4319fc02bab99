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

// Package gles2 implements the gpu.Device interface with OpenGL ES 2.
//
// A GL context must be current on the calling goroutine before New() is
// called and for the lifetime of the Device. The functions of the Device
// must only be called from that goroutine.
package gles2

import (
	"fmt"
	"strings"
	"unsafe"

	gl "github.com/go-gl/gl/v3.1/gles2"
	"github.com/jetsetilly/xplay/gfx/gpu"
	"github.com/jetsetilly/xplay/logger"
)

// size of a float32 in bytes.
const floatSize = 4

// Device implements the gpu.Device interface.
type Device struct {
	vendor   string
	renderer string
	version  string
}

// New is the preferred method of initialisation for the Device type. The
// getProcAddr function is used to resolve GL functions. If it is nil the
// default loader of the gl package is used.
func New(getProcAddr func(name string) unsafe.Pointer) (*Device, error) {
	var err error
	if getProcAddr == nil {
		err = gl.Init()
	} else {
		err = gl.InitWithProcAddrFunc(getProcAddr)
	}
	if err != nil {
		return nil, fmt.Errorf("gles2: %w", err)
	}

	dev := &Device{
		vendor:   gl.GoStr(gl.GetString(gl.VENDOR)),
		renderer: gl.GoStr(gl.GetString(gl.RENDERER)),
		version:  gl.GoStr(gl.GetString(gl.VERSION)),
	}

	// texture rows are tightly packed regardless of width
	gl.PixelStorei(gl.UNPACK_ALIGNMENT, 1)

	logger.Logf(logger.Allow, "gles2", "vendor: %s", dev.vendor)
	logger.Logf(logger.Allow, "gles2", "renderer: %s", dev.renderer)
	logger.Logf(logger.Allow, "gles2", "version: %s", dev.version)

	return dev, nil
}

// Error implements the gpu.Device interface.
func (dev *Device) Error() error {
	if code := gl.GetError(); code != gl.NO_ERROR {
		return gpu.ErrorCode(code)
	}
	return nil
}

// Strings implements the gpu.Device interface.
func (dev *Device) Strings() (string, string, string) {
	return dev.vendor, dev.renderer, dev.version
}

func capability(c gpu.Capability) uint32 {
	switch c {
	case gpu.DepthTest:
		return gl.DEPTH_TEST
	case gpu.StencilTest:
		return gl.STENCIL_TEST
	case gpu.CullFace:
		return gl.CULL_FACE
	case gpu.Blend:
		return gl.BLEND
	}
	panic(fmt.Sprintf("gles2: unknown capability %d", c))
}

// Enable implements the gpu.Device interface.
func (dev *Device) Enable(c gpu.Capability) {
	gl.Enable(capability(c))
}

// Disable implements the gpu.Device interface.
func (dev *Device) Disable(c gpu.Capability) {
	gl.Disable(capability(c))
}

// DepthFuncAlways implements the gpu.Device interface.
func (dev *Device) DepthFuncAlways() {
	gl.DepthFunc(gl.ALWAYS)
}

// BlendAlpha implements the gpu.Device interface.
func (dev *Device) BlendAlpha() {
	gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)
	gl.BlendEquation(gl.FUNC_ADD)
}

// ClearColor implements the gpu.Device interface.
func (dev *Device) ClearColor(r, g, b, a float32) {
	gl.ClearColor(r, g, b, a)
}

// Clear implements the gpu.Device interface.
func (dev *Device) Clear() {
	gl.Clear(gl.COLOR_BUFFER_BIT)
}

// Viewport implements the gpu.Device interface.
func (dev *Device) Viewport(x, y, width, height int) {
	gl.Viewport(int32(x), int32(y), int32(width), int32(height))
}

// returns the format and type pair for the layout.
func texelFormat(layout gpu.Layout) (uint32, uint32) {
	switch layout {
	case gpu.LayoutRGBA4444:
		return gl.RGBA, gl.UNSIGNED_SHORT_4_4_4_4
	case gpu.LayoutRGB565:
		return gl.RGB, gl.UNSIGNED_SHORT_5_6_5
	case gpu.LayoutRGBA8888:
		return gl.RGBA, gl.UNSIGNED_BYTE
	case gpu.LayoutAlpha8:
		return gl.ALPHA, gl.UNSIGNED_BYTE
	}
	panic(fmt.Sprintf("gles2: unknown texel layout %d", layout))
}

// NewTexture implements the gpu.Device interface.
func (dev *Device) NewTexture() (gpu.Texture, error) {
	var id uint32
	gl.GenTextures(1, &id)
	if err := dev.Error(); err != nil {
		return 0, err
	}
	if id == 0 {
		return 0, fmt.Errorf("gles2: no texture created")
	}

	gl.BindTexture(gl.TEXTURE_2D, id)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.NEAREST)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.NEAREST)
	if err := dev.Error(); err != nil {
		gl.DeleteTextures(1, &id)
		return 0, err
	}

	return gpu.Texture(id), nil
}

// DeleteTexture implements the gpu.Device interface.
func (dev *Device) DeleteTexture(t gpu.Texture) {
	id := uint32(t)
	if id != 0 {
		gl.DeleteTextures(1, &id)
	}
}

// BindTexture implements the gpu.Device interface.
func (dev *Device) BindTexture(t gpu.Texture) {
	gl.ActiveTexture(gl.TEXTURE0)
	gl.BindTexture(gl.TEXTURE_2D, uint32(t))
}

// AllocTexture implements the gpu.Device interface.
func (dev *Device) AllocTexture(layout gpu.Layout, width int, height int) {
	format, typ := texelFormat(layout)
	gl.TexImage2D(gl.TEXTURE_2D, 0, int32(format),
		int32(width), int32(height), 0,
		format, typ, nil)
}

// UpdateTexture implements the gpu.Device interface.
func (dev *Device) UpdateTexture(layout gpu.Layout, width int, height int, pixels []byte) {
	if len(pixels) == 0 {
		return
	}
	format, typ := texelFormat(layout)
	gl.TexSubImage2D(gl.TEXTURE_2D, 0,
		0, 0, int32(width), int32(height),
		format, typ, gl.Ptr(pixels))
}

// CompileShader implements the gpu.Device interface.
func (dev *Device) CompileShader(typ gpu.ShaderType, source string) (gpu.Shader, error) {
	var t uint32 = gl.FRAGMENT_SHADER
	if typ == gpu.VertexShader {
		t = gl.VERTEX_SHADER
	}

	handle := gl.CreateShader(t)
	if handle == 0 {
		if err := dev.Error(); err != nil {
			return 0, fmt.Errorf("gles2: %s shader: %w", typ, err)
		}
		return 0, fmt.Errorf("gles2: %s shader: not created", typ)
	}

	csource, free := gl.Strs(source + "\x00")
	defer free()
	gl.ShaderSource(handle, 1, csource, nil)
	gl.CompileShader(handle)

	var compiled int32
	gl.GetShaderiv(handle, gl.COMPILE_STATUS, &compiled)
	if compiled == gl.FALSE {
		var logLength int32
		gl.GetShaderiv(handle, gl.INFO_LOG_LENGTH, &logLength)
		log := infoLog(logLength, func(l *uint8) {
			gl.GetShaderInfoLog(handle, logLength, nil, l)
		})
		gl.DeleteShader(handle)
		return 0, fmt.Errorf("gles2: %s shader: %s", typ, log)
	}

	return gpu.Shader(handle), nil
}

// infoLog returns the information log of a shader or program. The
// information log length includes the terminating NUL.
func infoLog(length int32, get func(*uint8)) string {
	if length <= 1 {
		return "no information"
	}
	log := strings.Repeat("\x00", int(length+1))
	get(gl.Str(log))
	return strings.TrimRight(log, "\x00\n")
}

// DeleteShader implements the gpu.Device interface.
func (dev *Device) DeleteShader(s gpu.Shader) {
	if s != 0 {
		gl.DeleteShader(uint32(s))
	}
}

// LinkProgram implements the gpu.Device interface.
func (dev *Device) LinkProgram(vertex gpu.Shader, fragment gpu.Shader) (gpu.Program, error) {
	handle := gl.CreateProgram()
	if handle == 0 {
		if err := dev.Error(); err != nil {
			return 0, fmt.Errorf("gles2: program: %w", err)
		}
		return 0, fmt.Errorf("gles2: program: not created")
	}

	gl.AttachShader(handle, uint32(vertex))
	gl.AttachShader(handle, uint32(fragment))
	gl.LinkProgram(handle)

	var linked int32
	gl.GetProgramiv(handle, gl.LINK_STATUS, &linked)
	if linked == gl.FALSE {
		var logLength int32
		gl.GetProgramiv(handle, gl.INFO_LOG_LENGTH, &logLength)
		log := infoLog(logLength, func(l *uint8) {
			gl.GetProgramInfoLog(handle, logLength, nil, l)
		})
		gl.DeleteProgram(handle)
		return 0, fmt.Errorf("gles2: program: %s", log)
	}

	return gpu.Program(handle), nil
}

// DeleteProgram implements the gpu.Device interface.
func (dev *Device) DeleteProgram(p gpu.Program) {
	if p != 0 {
		gl.DeleteProgram(uint32(p))
	}
}

// UseProgram implements the gpu.Device interface.
func (dev *Device) UseProgram(p gpu.Program) {
	gl.UseProgram(uint32(p))
}

// AttribLocation implements the gpu.Device interface.
func (dev *Device) AttribLocation(p gpu.Program, name string) int32 {
	return gl.GetAttribLocation(uint32(p), gl.Str(name+"\x00"))
}

// UniformLocation implements the gpu.Device interface.
func (dev *Device) UniformLocation(p gpu.Program, name string) int32 {
	return gl.GetUniformLocation(uint32(p), gl.Str(name+"\x00"))
}

// Uniform1i implements the gpu.Device interface.
func (dev *Device) Uniform1i(loc int32, v int32) {
	gl.Uniform1i(loc, v)
}

// Uniform1f implements the gpu.Device interface.
func (dev *Device) Uniform1f(loc int32, v float32) {
	gl.Uniform1f(loc, v)
}

// Uniform2f implements the gpu.Device interface.
func (dev *Device) Uniform2f(loc int32, v0, v1 float32) {
	gl.Uniform2f(loc, v0, v1)
}

// Uniform3f implements the gpu.Device interface.
func (dev *Device) Uniform3f(loc int32, v0, v1, v2 float32) {
	gl.Uniform3f(loc, v0, v1, v2)
}

// NewBuffer implements the gpu.Device interface.
func (dev *Device) NewBuffer() gpu.Buffer {
	var id uint32
	gl.GenBuffers(1, &id)
	return gpu.Buffer(id)
}

// DeleteBuffer implements the gpu.Device interface.
func (dev *Device) DeleteBuffer(b gpu.Buffer) {
	id := uint32(b)
	if id != 0 {
		gl.DeleteBuffers(1, &id)
	}
}

// ArrayBuffer implements the gpu.Device interface.
func (dev *Device) ArrayBuffer(b gpu.Buffer, data []float32) {
	gl.BindBuffer(gl.ARRAY_BUFFER, uint32(b))
	if len(data) == 0 {
		return
	}
	gl.BufferData(gl.ARRAY_BUFFER, len(data)*floatSize, gl.Ptr(data), gl.STREAM_DRAW)
}

// ElementBuffer implements the gpu.Device interface.
func (dev *Device) ElementBuffer(b gpu.Buffer, indices []uint16) {
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, uint32(b))
	if len(indices) == 0 {
		return
	}
	gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, len(indices)*2, gl.Ptr(indices), gl.STREAM_DRAW)
}

// VertexAttrib implements the gpu.Device interface.
func (dev *Device) VertexAttrib(loc int32, size int, stride int, offset int) {
	gl.EnableVertexAttribArray(uint32(loc))
	gl.VertexAttribPointerWithOffset(uint32(loc), int32(size), gl.FLOAT, false,
		int32(stride*floatSize), uintptr(offset*floatSize))
}

// DrawArrays implements the gpu.Device interface.
func (dev *Device) DrawArrays(count int) {
	gl.DrawArrays(gl.TRIANGLES, 0, int32(count))
}

// DrawElements implements the gpu.Device interface.
func (dev *Device) DrawElements(count int) {
	gl.DrawElementsWithOffset(gl.TRIANGLES, int32(count), gl.UNSIGNED_SHORT, 0)
}
