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

// Package gputest implements the gpu.Device interface in software. It is
// intended for testing code that draws with a gpu.Device.
//
// Texture storage is real: UpdateTexture() copies pixels into a byte slice
// that can be inspected with Texels(). Shaders are not executed but the
// attribute and uniform declarations in the source are parsed so that
// locations resolve in the same way as they would on a real device.
//
// Every call that changes state is appended to the call log. The log is a
// list of short strings such as "Enable Blend" or "DrawElements 6" which
// tests can compare with an expected sequence.
package gputest

import (
	"fmt"
	"regexp"
	"slices"
	"strings"

	"github.com/jetsetilly/xplay/gfx/gpu"
)

// Texture is the software representation of a texture.
type Texture struct {
	Layout gpu.Layout
	Width  int
	Height int

	// the content of the texture. nil until the first allocation
	Pixels []byte

	// number of calls to AllocTexture() and UpdateTexture()
	Allocations int
	Updates     int
}

type shader struct {
	typ    gpu.ShaderType
	source string
}

type program struct {
	attribs  []string
	uniforms []string
}

// Device implements the gpu.Device interface.
type Device struct {
	// functions that cause failures. each function is consulted before the
	// operation is performed. a nil function never fails
	FailCompile func(typ gpu.ShaderType, source string) bool
	FailLink    func() bool
	FailTexture func(n int) bool

	// the vendor, renderer and version strings returned by Strings()
	Vendor   string
	Renderer string
	Version  string

	// the call log
	Calls []string

	errors []gpu.ErrorCode

	next uint32

	textures map[gpu.Texture]*Texture
	shaders  map[gpu.Shader]*shader
	programs map[gpu.Program]*program
	buffers  map[gpu.Buffer][]float32
	elements map[gpu.Buffer][]uint16

	// number of calls to NewTexture()
	textureCount int

	enabled map[gpu.Capability]bool

	boundTexture gpu.Texture
	boundArray   gpu.Buffer
	boundElement gpu.Buffer
	inUse        gpu.Program

	// uniform values of the program in use. keyed by location
	uniforms map[gpu.Program]map[int32][]float32
}

// NewDevice is the preferred method of initialisation for the Device type.
func NewDevice() *Device {
	return &Device{
		Vendor:   "gputest",
		Renderer: "software",
		Version:  "OpenGL ES 2.0 gputest",
		textures: make(map[gpu.Texture]*Texture),
		shaders:  make(map[gpu.Shader]*shader),
		programs: make(map[gpu.Program]*program),
		buffers:  make(map[gpu.Buffer][]float32),
		elements: make(map[gpu.Buffer][]uint16),
		enabled:  make(map[gpu.Capability]bool),
		uniforms: make(map[gpu.Program]map[int32][]float32),
	}
}

func (dev *Device) log(format string, args ...any) {
	dev.Calls = append(dev.Calls, fmt.Sprintf(format, args...))
}

func (dev *Device) handle() uint32 {
	dev.next++
	return dev.next
}

// InjectError adds an error to the queue of pending errors.
func (dev *Device) InjectError(code gpu.ErrorCode) {
	dev.errors = append(dev.errors, code)
}

// ClearCalls empties the call log.
func (dev *Device) ClearCalls() {
	dev.Calls = dev.Calls[:0]
}

// CallsMatching returns the entries in the call log that begin with prefix.
func (dev *Device) CallsMatching(prefix string) []string {
	var m []string
	for _, c := range dev.Calls {
		if strings.HasPrefix(c, prefix) {
			m = append(m, c)
		}
	}
	return m
}

// Texture returns the software texture for the handle. Returns nil if the
// handle is not a live texture.
func (dev *Device) Texture(t gpu.Texture) *Texture {
	return dev.textures[t]
}

// Texels returns the content of the texture.
func (dev *Device) Texels(t gpu.Texture) []byte {
	if tex, ok := dev.textures[t]; ok {
		return tex.Pixels
	}
	return nil
}

// Live returns the number of textures, shaders, programs and buffers that
// have been created and not deleted.
func (dev *Device) Live() (textures int, shaders int, programs int, buffers int) {
	return len(dev.textures), len(dev.shaders), len(dev.programs), len(dev.buffers)
}

// Enabled returns true if the capability is currently enabled.
func (dev *Device) Enabled(c gpu.Capability) bool {
	return dev.enabled[c]
}

// ArrayData returns the content of the vertex buffer.
func (dev *Device) ArrayData(b gpu.Buffer) []float32 {
	return dev.buffers[b]
}

// Uniform returns the most recent value of the uniform in the program.
func (dev *Device) Uniform(p gpu.Program, name string) []float32 {
	loc := dev.UniformLocation(p, name)
	if loc < 0 {
		return nil
	}
	return dev.uniforms[p][loc]
}

// Error implements the gpu.Device interface.
func (dev *Device) Error() error {
	if len(dev.errors) == 0 {
		return nil
	}
	err := dev.errors[0]
	dev.errors = dev.errors[1:]
	return err
}

// Strings implements the gpu.Device interface.
func (dev *Device) Strings() (string, string, string) {
	return dev.Vendor, dev.Renderer, dev.Version
}

// Enable implements the gpu.Device interface.
func (dev *Device) Enable(c gpu.Capability) {
	dev.enabled[c] = true
	dev.log("Enable %s", c)
}

// Disable implements the gpu.Device interface.
func (dev *Device) Disable(c gpu.Capability) {
	dev.enabled[c] = false
	dev.log("Disable %s", c)
}

// DepthFuncAlways implements the gpu.Device interface.
func (dev *Device) DepthFuncAlways() {
	dev.log("DepthFuncAlways")
}

// BlendAlpha implements the gpu.Device interface.
func (dev *Device) BlendAlpha() {
	dev.log("BlendAlpha")
}

// ClearColor implements the gpu.Device interface.
func (dev *Device) ClearColor(r, g, b, a float32) {
	dev.log("ClearColor %.1f %.1f %.1f %.1f", r, g, b, a)
}

// Clear implements the gpu.Device interface.
func (dev *Device) Clear() {
	dev.log("Clear")
}

// Viewport implements the gpu.Device interface.
func (dev *Device) Viewport(x, y, width, height int) {
	dev.log("Viewport %d %d %d %d", x, y, width, height)
}

// NewTexture implements the gpu.Device interface.
func (dev *Device) NewTexture() (gpu.Texture, error) {
	dev.textureCount++
	if dev.FailTexture != nil && dev.FailTexture(dev.textureCount) {
		return 0, gpu.OutOfMemory
	}
	t := gpu.Texture(dev.handle())
	dev.textures[t] = &Texture{}
	dev.boundTexture = t
	dev.log("NewTexture %d", t)
	return t, nil
}

// DeleteTexture implements the gpu.Device interface.
func (dev *Device) DeleteTexture(t gpu.Texture) {
	delete(dev.textures, t)
	if dev.boundTexture == t {
		dev.boundTexture = 0
	}
	dev.log("DeleteTexture %d", t)
}

// BindTexture implements the gpu.Device interface.
func (dev *Device) BindTexture(t gpu.Texture) {
	dev.boundTexture = t
	dev.log("BindTexture %d", t)
}

func (dev *Device) bound() *Texture {
	tex, ok := dev.textures[dev.boundTexture]
	if !ok {
		dev.InjectError(gpu.InvalidOperation)
		return nil
	}
	return tex
}

// AllocTexture implements the gpu.Device interface.
func (dev *Device) AllocTexture(layout gpu.Layout, width int, height int) {
	dev.log("AllocTexture %d %s %dx%d", dev.boundTexture, layout, width, height)
	tex := dev.bound()
	if tex == nil {
		return
	}
	if width < 0 || height < 0 {
		dev.InjectError(gpu.InvalidValue)
		return
	}
	tex.Layout = layout
	tex.Width = width
	tex.Height = height
	tex.Pixels = make([]byte, width*height*layout.TexelSize())
	tex.Allocations++
}

// UpdateTexture implements the gpu.Device interface.
func (dev *Device) UpdateTexture(layout gpu.Layout, width int, height int, pixels []byte) {
	dev.log("UpdateTexture %d %s %dx%d", dev.boundTexture, layout, width, height)
	tex := dev.bound()
	if tex == nil {
		return
	}
	if layout != tex.Layout || width > tex.Width || height > tex.Height {
		dev.InjectError(gpu.InvalidOperation)
		return
	}

	n := width * layout.TexelSize()
	if len(pixels) < n*height {
		dev.InjectError(gpu.InvalidValue)
		return
	}

	stride := tex.Width * layout.TexelSize()
	for y := 0; y < height; y++ {
		copy(tex.Pixels[y*stride:y*stride+n], pixels[y*n:(y+1)*n])
	}
	tex.Updates++
}

// CompileShader implements the gpu.Device interface.
func (dev *Device) CompileShader(typ gpu.ShaderType, source string) (gpu.Shader, error) {
	if dev.FailCompile != nil && dev.FailCompile(typ, source) {
		return 0, fmt.Errorf("gputest: %s shader: compile failed", typ)
	}
	if !strings.Contains(source, "void main()") {
		return 0, fmt.Errorf("gputest: %s shader: no main function", typ)
	}
	s := gpu.Shader(dev.handle())
	dev.shaders[s] = &shader{typ: typ, source: source}
	dev.log("CompileShader %s %d", typ, s)
	return s, nil
}

// DeleteShader implements the gpu.Device interface.
func (dev *Device) DeleteShader(s gpu.Shader) {
	delete(dev.shaders, s)
	dev.log("DeleteShader %d", s)
}

var (
	attribDecl  = regexp.MustCompile(`attribute\s+\w+\s+(\w+)\s*;`)
	uniformDecl = regexp.MustCompile(`uniform\s+\w+\s+(\w+)\s*;`)
)

// LinkProgram implements the gpu.Device interface.
func (dev *Device) LinkProgram(vertex gpu.Shader, fragment gpu.Shader) (gpu.Program, error) {
	if dev.FailLink != nil && dev.FailLink() {
		return 0, fmt.Errorf("gputest: program: link failed")
	}

	vs, ok := dev.shaders[vertex]
	if !ok || vs.typ != gpu.VertexShader {
		return 0, fmt.Errorf("gputest: program: no vertex shader")
	}
	fs, ok := dev.shaders[fragment]
	if !ok || fs.typ != gpu.FragmentShader {
		return 0, fmt.Errorf("gputest: program: no fragment shader")
	}

	prg := &program{}
	for _, m := range attribDecl.FindAllStringSubmatch(vs.source, -1) {
		prg.attribs = append(prg.attribs, m[1])
	}
	for _, src := range []string{vs.source, fs.source} {
		for _, m := range uniformDecl.FindAllStringSubmatch(src, -1) {
			if !slices.Contains(prg.uniforms, m[1]) {
				prg.uniforms = append(prg.uniforms, m[1])
			}
		}
	}

	p := gpu.Program(dev.handle())
	dev.programs[p] = prg
	dev.uniforms[p] = make(map[int32][]float32)
	dev.log("LinkProgram %d", p)
	return p, nil
}

// DeleteProgram implements the gpu.Device interface.
func (dev *Device) DeleteProgram(p gpu.Program) {
	delete(dev.programs, p)
	delete(dev.uniforms, p)
	if dev.inUse == p {
		dev.inUse = 0
	}
	dev.log("DeleteProgram %d", p)
}

// UseProgram implements the gpu.Device interface.
func (dev *Device) UseProgram(p gpu.Program) {
	dev.inUse = p
	dev.log("UseProgram %d", p)
}

// InUse returns the program currently in use.
func (dev *Device) InUse() gpu.Program {
	return dev.inUse
}

// AttribLocation implements the gpu.Device interface.
func (dev *Device) AttribLocation(p gpu.Program, name string) int32 {
	if prg, ok := dev.programs[p]; ok {
		return int32(slices.Index(prg.attribs, name))
	}
	return -1
}

// UniformLocation implements the gpu.Device interface.
func (dev *Device) UniformLocation(p gpu.Program, name string) int32 {
	if prg, ok := dev.programs[p]; ok {
		return int32(slices.Index(prg.uniforms, name))
	}
	return -1
}

func (dev *Device) uniform(loc int32, v ...float32) {
	u, ok := dev.uniforms[dev.inUse]
	if !ok || loc < 0 {
		dev.InjectError(gpu.InvalidOperation)
		return
	}
	u[loc] = v
}

// Uniform1i implements the gpu.Device interface.
func (dev *Device) Uniform1i(loc int32, v int32) {
	dev.uniform(loc, float32(v))
	dev.log("Uniform1i %d %d", loc, v)
}

// Uniform1f implements the gpu.Device interface.
func (dev *Device) Uniform1f(loc int32, v float32) {
	dev.uniform(loc, v)
	dev.log("Uniform1f %d %.2f", loc, v)
}

// Uniform2f implements the gpu.Device interface.
func (dev *Device) Uniform2f(loc int32, v0, v1 float32) {
	dev.uniform(loc, v0, v1)
	dev.log("Uniform2f %d %.4f %.4f", loc, v0, v1)
}

// Uniform3f implements the gpu.Device interface.
func (dev *Device) Uniform3f(loc int32, v0, v1, v2 float32) {
	dev.uniform(loc, v0, v1, v2)
	dev.log("Uniform3f %d %.2f %.2f %.2f", loc, v0, v1, v2)
}

// NewBuffer implements the gpu.Device interface.
func (dev *Device) NewBuffer() gpu.Buffer {
	b := gpu.Buffer(dev.handle())
	dev.buffers[b] = nil
	dev.log("NewBuffer %d", b)
	return b
}

// DeleteBuffer implements the gpu.Device interface.
func (dev *Device) DeleteBuffer(b gpu.Buffer) {
	delete(dev.buffers, b)
	delete(dev.elements, b)
	dev.log("DeleteBuffer %d", b)
}

// ArrayBuffer implements the gpu.Device interface.
func (dev *Device) ArrayBuffer(b gpu.Buffer, data []float32) {
	if _, ok := dev.buffers[b]; !ok {
		dev.InjectError(gpu.InvalidOperation)
		return
	}
	dev.boundArray = b
	dev.buffers[b] = slices.Clone(data)
	dev.log("ArrayBuffer %d %d", b, len(data))
}

// ElementBuffer implements the gpu.Device interface.
func (dev *Device) ElementBuffer(b gpu.Buffer, indices []uint16) {
	if _, ok := dev.buffers[b]; !ok {
		dev.InjectError(gpu.InvalidOperation)
		return
	}
	dev.boundElement = b
	dev.elements[b] = slices.Clone(indices)
	dev.log("ElementBuffer %d %d", b, len(indices))
}

// VertexAttrib implements the gpu.Device interface.
func (dev *Device) VertexAttrib(loc int32, size int, stride int, offset int) {
	if loc < 0 || dev.boundArray == 0 {
		dev.InjectError(gpu.InvalidOperation)
	}
	dev.log("VertexAttrib %d %d %d %d", loc, size, stride, offset)
}

// DrawArrays implements the gpu.Device interface.
func (dev *Device) DrawArrays(count int) {
	if dev.inUse == 0 || count > len(dev.buffers[dev.boundArray]) {
		dev.InjectError(gpu.InvalidOperation)
	}
	dev.log("DrawArrays %d", count)
}

// DrawElements implements the gpu.Device interface.
func (dev *Device) DrawElements(count int) {
	if dev.inUse == 0 || count > len(dev.elements[dev.boundElement]) {
		dev.InjectError(gpu.InvalidOperation)
	}
	dev.log("DrawElements %d", count)
}
