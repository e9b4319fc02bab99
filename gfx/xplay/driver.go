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
	"github.com/jetsetilly/xplay/assert"
	"github.com/jetsetilly/xplay/curated"
	"github.com/jetsetilly/xplay/gfx/framebuffer"
	"github.com/jetsetilly/xplay/gfx/gpu"
	"github.com/jetsetilly/xplay/logger"
	"github.com/jetsetilly/xplay/video"
)

// the number of pending errors that will be cleared from a context before
// initialisation continues
const maxPendingErrors = 16

// texture coordinates and element indices of the quad. the order of the
// texture coordinates matches the order of the vertices from QuadGeometry()
var (
	quadTexCoords = [8]float32{0, 0, 0, 1, 1, 0, 1, 1}
	quadIndices   = []uint16{0, 1, 2, 1, 2, 3}
)

// Driver composites the frame from the source, the menu overlay and the
// message text into the output.
//
// All methods must be called from the goroutine that called New().
type Driver struct {
	ctx      video.ContextProvider
	dev      gpu.Device
	settings Settings

	owner assert.Goroutine

	programs *programSet

	// frame and menu textures are rotated every time they are filled
	frame framebuffer.Flip[frameTexture]
	menu  framebuffer.Flip[frameTexture]

	menuAlpha   float32
	menuRGB32   bool
	menuEnabled bool

	// vertex and element buffers for the framebuffer quad. quadData is the
	// vertices followed by the texture coordinates
	quadVBO  gpu.Buffer
	quadEBO  gpu.Buffer
	quadData [16]float32

	text *textRenderer

	// a run of malformed frames is logged once
	malformedLog logger.Once

	deviceString string
	apiVersion   string

	freed bool
}

// New is the preferred method of initialisation for the Driver type.
//
// The driver takes ownership of the context provider and the font provider.
// The font may be nil in which case messages are never drawn. If New()
// returns an error then the context will have been destroyed and the font
// freed.
func New(ctx video.ContextProvider, dev gpu.Device, font video.FontProvider, settings Settings) (*Driver, error) {
	drv := &Driver{
		ctx:      ctx,
		dev:      dev,
		settings: settings,
	}
	drv.owner.Claim()

	if font != nil && !settings.FontEnable {
		font.Free()
		font = nil
	}

	err := drv.init(font)
	if err != nil {
		if font != nil && drv.text == nil {
			font.Free()
		}
		drv.Free()
		return nil, err
	}

	logger.Log(logger.Allow, "xplay", "video driver init complete")

	return drv, nil
}

func (drv *Driver) init(font video.FontProvider) error {
	ident := drv.ctx.Ident()
	logger.Logf(logger.Allow, "xplay", "found GL context: %s", ident)

	interval := 0
	if drv.settings.VSync {
		interval = drv.swapInterval(drv.settings.SwapInterval, drv.settings.AdaptiveVSync)
	}
	if err := drv.ctx.SetSwapInterval(interval); err != nil {
		logger.Log(logger.Allow, "xplay", curated.Errorf(ContextError, err))
	}

	if err := drv.ctx.SetVideoMode(OutputWidth, OutputHeight, true); err != nil {
		return curated.Errorf(VideoModeError, err)
	}

	// errors left behind by a cached context are not errors of this driver
	for i := 0; i < maxPendingErrors && drv.dev.Error() != nil; i++ {
	}

	vendor, renderer, version := drv.dev.Strings()
	logger.Logf(logger.Allow, "xplay", "vendor: %s", vendor)
	logger.Logf(logger.Allow, "xplay", "renderer: %s", renderer)
	logger.Logf(logger.Allow, "xplay", "version: %s", version)

	if ident == "null" {
		return curated.Errorf(NullContextError)
	}

	drv.deviceString = vendor + " " + renderer
	drv.apiVersion = version

	if err := drv.initState(); err != nil {
		return err
	}

	var err error
	drv.programs, err = buildProgramSet(drv.dev)
	if err != nil {
		return err
	}

	drv.dev.ClearColor(0, 0, 0, 1)
	if err := drv.dev.Error(); err != nil {
		return curated.Errorf(StateError, err)
	}

	newTexture := func(_ int, tex *frameTexture) error {
		var err error
		*tex, err = newFrameTexture(drv.dev)
		return err
	}
	if err := drv.menu.Pages(newTexture); err != nil {
		return err
	}
	if err := drv.frame.Pages(newTexture); err != nil {
		return err
	}

	drv.quadVBO = drv.dev.NewBuffer()
	drv.quadEBO = drv.dev.NewBuffer()
	copy(drv.quadData[8:], quadTexCoords[:])

	if font != nil {
		drv.text = newTextRenderer(drv.dev, font, drv.settings.MsgColor)
	}

	return nil
}

// the fixed state of the GPU. each step is checked for error before moving
// onto the next
func (drv *Driver) initState() error {
	steps := []func(){
		func() { drv.dev.Viewport(0, 0, OutputWidth, OutputHeight) },
		drv.dev.DepthFuncAlways,
		func() { drv.dev.Disable(gpu.DepthTest) },
		func() { drv.dev.Disable(gpu.StencilTest) },
		func() { drv.dev.Disable(gpu.CullFace) },
		drv.dev.BlendAlpha,
		func() { drv.dev.Disable(gpu.Blend) },
	}

	for _, s := range steps {
		s()
		if err := drv.dev.Error(); err != nil {
			return curated.Errorf(StateError, err)
		}
	}

	return nil
}

// swapInterval returns the interval to request from the context. adaptive
// vsync is indicated by a negative interval and is only used when the
// requested interval is one.
func (drv *Driver) swapInterval(interval int, adaptive bool) int {
	if adaptive && interval == 1 && drv.ctx.SupportsAdaptiveVSync() {
		return -1
	}
	return interval
}

func (drv *Driver) checkOwner(fn string) {
	if !drv.owner.Check() {
		logger.Logf(logger.Allow, "xplay", "%s() called from a goroutine that does not own the driver", fn)
	}
}

// Frame implements the video.Driver interface.
func (drv *Driver) Frame(frame []byte, width int, height int, _ uint64, pitch int, msg string, info video.FrameInfo) bool {
	drv.checkOwner("Frame")

	if frame == nil || drv.freed {
		return true
	}

	format := video.ResolveFormat(drv.settings.RGB32, info.UseRGBA)

	drv.dev.Clear()

	tex := drv.frame.Next()
	draw := width > 0 && height > 0
	if err := tex.upload(drv.dev, frame, width, height, pitch, format); err != nil {
		if curated.Is(err, MalformedFrame) {
			logger.Log(&drv.malformedLog, "xplay", err)
			draw = false
		} else {
			logger.Log(logger.Allow, "xplay", err)
		}
	} else if draw {
		drv.malformedLog.Reset()
	}

	if draw {
		allowGrid := info.IntegerScale && info.GridOverlay
		prg := drv.programs.get(orderForSource(drv.settings.RGB32), tex.width, tex.height, allowGrid)
		drv.drawFramebuffer(prg, tex, info.IntegerScale, 1.0)
	}

	if info.MenuIsAlive || drv.menuEnabled {
		menu := drv.menu.Current()
		if menu.width > 0 && menu.height > 0 {
			drv.dev.Enable(gpu.Blend)
			prg := drv.programs.get(orderForSource(drv.menuRGB32), menu.width, menu.height, false)
			drv.drawFramebuffer(prg, menu, info.IntegerScale, drv.menuAlpha)
			drv.dev.Disable(gpu.Blend)
		}
	}

	if msg != "" {
		drv.dev.Enable(gpu.Blend)
		drv.text.draw(drv.dev, msg, OutputWidth, OutputHeight, info.MsgPosX, info.MsgPosY)
		drv.dev.Disable(gpu.Blend)
	}

	drv.ctx.SwapBuffers()

	return true
}

// draw the texture as a quad with the program
func (drv *Driver) drawFramebuffer(prg *program, tex *frameTexture, integerScale bool, alpha float32) {
	verts, ok := QuadGeometry(tex.width, tex.height, integerScale)
	if !ok {
		return
	}
	tex.verts = verts
	copy(drv.quadData[:8], verts[:])

	drv.dev.UseProgram(prg.handle)
	drv.dev.ArrayBuffer(drv.quadVBO, drv.quadData[:])
	drv.dev.VertexAttrib(prg.position, 2, 2, 0)
	drv.dev.VertexAttrib(prg.texCoord, 2, 2, len(verts))
	drv.dev.ElementBuffer(drv.quadEBO, quadIndices)
	drv.dev.BindTexture(tex.id)
	drv.dev.Uniform1i(prg.sampler, 0)
	drv.dev.Uniform1f(prg.alpha, alpha)
	drv.dev.DrawElements(len(quadIndices))

	if err := drv.dev.Error(); err != nil {
		logger.Log(logger.Allow, "xplay", curated.Errorf(BlitError, err))
	}
}

// SetTextureFrame implements the video.Driver interface. The pitch of the
// menu frame is always the width of the frame.
func (drv *Driver) SetTextureFrame(frame []byte, rgb32 bool, width int, height int, alpha float32) {
	drv.checkOwner("SetTextureFrame")

	if drv.freed {
		return
	}

	drv.menuAlpha = alpha
	drv.menuRGB32 = rgb32

	format := video.FormatRGBA4444
	if rgb32 {
		if drv.settings.SupportsRGBA {
			format = video.FormatRGBA8888
		} else {
			format = video.FormatRGB8888
		}
	}

	tex := drv.menu.Next()
	if err := tex.upload(drv.dev, frame, width, height, width*format.TexelSize(), format); err != nil {
		logger.Log(logger.Allow, "xplay", err)
	}
}

// SetTextureEnable implements the video.Driver interface.
func (drv *Driver) SetTextureEnable(enable bool, _ bool) {
	drv.menuEnabled = enable
}

// SetNonblockState implements the video.Driver interface.
func (drv *Driver) SetNonblockState(nonblock bool, adaptive bool, interval int) {
	drv.checkOwner("SetNonblockState")

	// support for adaptive vsync is left to the context
	if nonblock {
		interval = 0
	} else if adaptive && interval == 1 {
		interval = -1
	}

	if err := drv.ctx.SetSwapInterval(interval); err != nil {
		logger.Log(logger.Allow, "xplay", curated.Errorf(ContextError, err))
	}
}

// Alive implements the video.Driver interface. The driver has no window
// controls of its own so it is always alive.
func (drv *Driver) Alive() bool {
	return true
}

// OutputSize returns the fixed size of the output.
func (drv *Driver) OutputSize() (int, int) {
	return OutputWidth, OutputHeight
}

// Focus implements the video.Driver interface.
func (drv *Driver) Focus() bool {
	return drv.ctx.HasFocus()
}

// SuppressScreensaver implements the video.Driver interface.
func (drv *Driver) SuppressScreensaver(enable bool) bool {
	return drv.ctx.SuppressScreensaver(enable)
}

// HasWindowed implements the video.Driver interface.
func (drv *Driver) HasWindowed() bool {
	return drv.ctx.HasWindowed()
}

// ViewportInfo implements the video.Driver interface. The viewport is always
// the whole of the output.
func (drv *Driver) ViewportInfo() video.Viewport {
	return video.Viewport{
		Width:      OutputWidth,
		Height:     OutputHeight,
		FullWidth:  OutputWidth,
		FullHeight: OutputHeight,
	}
}

// SetFiltering implements the video.Driver interface. Texture filtering is
// not configurable.
func (drv *Driver) SetFiltering(_ int, _ bool, _ bool) {
}

// ApplyStateChanges implements the video.Driver interface.
func (drv *Driver) ApplyStateChanges() {
}

// Flags implements the video.Driver interface.
func (drv *Driver) Flags() uint32 {
	return 0
}

// DeviceString returns the vendor and renderer of the GPU.
func (drv *Driver) DeviceString() string {
	return drv.deviceString
}

// APIVersion returns the version string reported by the GPU.
func (drv *Driver) APIVersion() string {
	return drv.apiVersion
}

// Free implements the video.Driver interface. It is safe to call Free() more
// than once.
func (drv *Driver) Free() {
	if drv.freed {
		return
	}
	drv.freed = true

	if drv.text != nil {
		drv.text.destroy(drv.dev)
		drv.text = nil
	}

	if drv.programs != nil {
		drv.programs.destroy(drv.dev)
		drv.programs = nil
	}

	destroy := func(_ int, tex *frameTexture) error {
		tex.destroy(drv.dev)
		return nil
	}
	_ = drv.frame.Pages(destroy)
	_ = drv.menu.Pages(destroy)

	if drv.quadVBO != 0 {
		drv.dev.DeleteBuffer(drv.quadVBO)
		drv.quadVBO = 0
	}
	if drv.quadEBO != 0 {
		drv.dev.DeleteBuffer(drv.quadEBO)
		drv.quadEBO = 0
	}

	drv.ctx.Destroy()
	drv.owner.Release()
}
