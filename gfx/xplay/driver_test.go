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
	"slices"
	"strings"
	"testing"

	"github.com/jetsetilly/xplay/curated"
	"github.com/jetsetilly/xplay/gfx/gpu"
	"github.com/jetsetilly/xplay/gfx/gpu/gputest"
	"github.com/jetsetilly/xplay/logger"
	"github.com/jetsetilly/xplay/test"
	"github.com/jetsetilly/xplay/video"
)

func testSettings() Settings {
	return Settings{
		VSync:        true,
		SwapInterval: 1,
		FontEnable:   true,
		MsgColor:     [3]float32{1, 1, 0},
		MsgPosX:      0.05,
		MsgPosY:      0.05,
	}
}

func newTestDriver(t *testing.T, settings Settings) (*Driver, *gputest.Device, *mockContext, *mockFont) {
	t.Helper()

	dev := gputest.NewDevice()
	ctx := newMockContext()
	fnt := newMockFont()

	drv, err := New(ctx, dev, fnt, settings)
	test.DemandSuccess(t, err)

	return drv, dev, ctx, fnt
}

// calls returns the entries in the call log that begin with any of the
// prefixes, one entry per line
func calls(dev *gputest.Device, prefixes ...string) string {
	var s strings.Builder
	for _, c := range dev.Calls {
		for _, p := range prefixes {
			if strings.HasPrefix(c, p) {
				s.WriteString(c)
				s.WriteString("\n")
				break
			}
		}
	}
	return s.String()
}

func liveResources(dev *gputest.Device) int {
	textures, shaders, programs, buffers := dev.Live()
	return textures + shaders + programs + buffers
}

func TestInit(t *testing.T) {
	drv, dev, ctx, _ := newTestDriver(t, testSettings())

	test.ExpectEquality(t, ctx.width, OutputWidth)
	test.ExpectEquality(t, ctx.height, OutputHeight)
	test.ExpectSuccess(t, ctx.fullscreen)
	test.ExpectSuccess(t, slices.Equal(ctx.intervals, []int{1}))
	test.ExpectEquality(t, drv.DeviceString(), "gputest software")
	test.ExpectEquality(t, drv.APIVersion(), "OpenGL ES 2.0 gputest")

	// two frame textures, two menu textures and the font atlas. six
	// framebuffer programs and the text program
	textures, shaders, programs, buffers := dev.Live()
	test.ExpectEquality(t, textures, 5)
	test.ExpectEquality(t, shaders, 0)
	test.ExpectEquality(t, programs, 7)
	test.ExpectEquality(t, buffers, 3)

	// fixed state. the viewport covers the whole output
	test.ExpectEquality(t, calls(dev, "Viewport", "DepthFunc", "Disable", "BlendAlpha", "ClearColor"),
		"Viewport 0 0 854 480\nDepthFuncAlways\nDisable DepthTest\nDisable StencilTest\nDisable CullFace\nBlendAlpha\nDisable Blend\nClearColor 0.0 0.0 0.0 1.0\n")

	// the programs are linked in pairs of channel order for each grid mode
	test.ExpectEquality(t, drv.programs[orderRGB][gridNone].handle < drv.programs[orderBGR][gridNone].handle, true)
	test.ExpectEquality(t, drv.programs[orderBGR][gridNone].handle < drv.programs[orderRGB][grid2x].handle, true)

	w, h := drv.OutputSize()
	test.ExpectEquality(t, w, OutputWidth)
	test.ExpectEquality(t, h, OutputHeight)
	test.ExpectEquality(t, drv.ViewportInfo(), video.Viewport{Width: 854, Height: 480, FullWidth: 854, FullHeight: 480})
	test.ExpectEquality(t, drv.Flags(), uint32(0))
	test.ExpectSuccess(t, drv.Alive())
	test.ExpectSuccess(t, drv.Focus())
	test.ExpectSuccess(t, drv.HasWindowed())
	test.ExpectSuccess(t, drv.SuppressScreensaver(true))
	test.ExpectSuccess(t, ctx.screensaver)
}

func TestInitSwapInterval(t *testing.T) {
	settings := testSettings()
	settings.VSync = false
	_, _, ctx, _ := newTestDriver(t, settings)
	test.ExpectSuccess(t, slices.Equal(ctx.intervals, []int{0}))

	// adaptive vsync is not supported by the mock context by default
	settings = testSettings()
	settings.AdaptiveVSync = true
	_, _, ctx, _ = newTestDriver(t, settings)
	test.ExpectSuccess(t, slices.Equal(ctx.intervals, []int{1}))

	ctx = newMockContext()
	ctx.adaptive = true
	_, err := New(ctx, gputest.NewDevice(), nil, settings)
	test.DemandSuccess(t, err)
	test.ExpectSuccess(t, slices.Equal(ctx.intervals, []int{-1}))

	// adaptive vsync only applies to an interval of one
	ctx = newMockContext()
	ctx.adaptive = true
	settings.SwapInterval = 2
	_, err = New(ctx, gputest.NewDevice(), nil, settings)
	test.DemandSuccess(t, err)
	test.ExpectSuccess(t, slices.Equal(ctx.intervals, []int{2}))
}

func TestInitPendingErrors(t *testing.T) {
	dev := gputest.NewDevice()
	dev.InjectError(gpu.InvalidEnum)
	dev.InjectError(gpu.InvalidOperation)

	_, err := New(newMockContext(), dev, nil, testSettings())
	test.ExpectSuccess(t, err)
}

func TestInitFailure(t *testing.T) {
	compiles := 0

	cases := []struct {
		name    string
		pattern string
		prepare func(dev *gputest.Device, ctx *mockContext)
	}{
		{
			name:    "null context",
			pattern: NullContextError,
			prepare: func(_ *gputest.Device, ctx *mockContext) {
				ctx.ident = "null"
			},
		},
		{
			name:    "video mode",
			pattern: VideoModeError,
			prepare: func(_ *gputest.Device, ctx *mockContext) {
				ctx.failMode = true
			},
		},
		{
			name:    "compile",
			pattern: ProgramError,
			prepare: func(dev *gputest.Device, _ *mockContext) {
				compiles = 0
				dev.FailCompile = func(_ gpu.ShaderType, _ string) bool {
					compiles++
					return compiles == 4
				}
			},
		},
		{
			name:    "link",
			pattern: ProgramError,
			prepare: func(dev *gputest.Device, _ *mockContext) {
				dev.FailLink = func() bool {
					return true
				}
			},
		},
		{
			name:    "texture",
			pattern: TextureError,
			prepare: func(dev *gputest.Device, _ *mockContext) {
				dev.FailTexture = func(n int) bool {
					return n == 3
				}
			},
		},
	}

	for _, c := range cases {
		dev := gputest.NewDevice()
		ctx := newMockContext()
		fnt := newMockFont()
		c.prepare(dev, ctx)

		drv, err := New(ctx, dev, fnt, testSettings())
		test.ExpectSuccess(t, drv == nil, c.name)
		test.ExpectSuccess(t, curated.Is(err, c.pattern), c.name)

		// everything is released
		test.ExpectEquality(t, liveResources(dev), 0, c.name)
		test.ExpectEquality(t, ctx.destroyed, 1, c.name)
		test.ExpectEquality(t, fnt.freed, 1, c.name)
	}
}

func TestInitTextProgramFailure(t *testing.T) {
	dev := gputest.NewDevice()

	// the text program is the seventh program. failure is not fatal
	links := 0
	dev.FailLink = func() bool {
		links++
		return links == 7
	}

	drv, err := New(newMockContext(), dev, newMockFont(), testSettings())
	test.DemandSuccess(t, err)

	dev.ClearCalls()
	drv.Frame(make([]byte, 8*8*2), 8, 8, 0, 16, "AB", video.FrameInfo{})
	test.ExpectEquality(t, len(dev.CallsMatching("DrawArrays")), 0)
	test.ExpectEquality(t, len(dev.CallsMatching("DrawElements")), 1)
}

func TestFontDisabled(t *testing.T) {
	settings := testSettings()
	settings.FontEnable = false
	drv, dev, _, fnt := newTestDriver(t, settings)

	test.ExpectEquality(t, fnt.freed, 1)
	textures, _, programs, _ := dev.Live()
	test.ExpectEquality(t, textures, 4)
	test.ExpectEquality(t, programs, 6)

	dev.ClearCalls()
	drv.Frame(make([]byte, 8*8*2), 8, 8, 0, 16, "AB", video.FrameInfo{})
	test.ExpectEquality(t, len(dev.CallsMatching("DrawArrays")), 0)
}

func TestFrameNil(t *testing.T) {
	drv, dev, ctx, _ := newTestDriver(t, testSettings())
	dev.ClearCalls()

	test.ExpectSuccess(t, drv.Frame(nil, 160, 144, 0, 320, "AB", video.FrameInfo{}))
	test.ExpectEquality(t, len(dev.Calls), 0)
	test.ExpectEquality(t, ctx.swaps, 0)
}

func TestFrameSequence(t *testing.T) {
	drv, dev, ctx, _ := newTestDriver(t, testSettings())
	dev.ClearCalls()

	info := video.FrameInfo{
		IntegerScale: true,
		GridOverlay:  true,
		MsgPosX:      0.05,
		MsgPosY:      0.05,
	}

	test.ExpectSuccess(t, drv.Frame(make([]byte, 160*144*2), 160, 144, 1, 320, "AB", info))
	test.ExpectEquality(t, ctx.swaps, 1)

	prg := drv.programs[orderRGB][grid3x]
	expected := fmt.Sprintf("Clear\nUseProgram %d\nDrawElements 6\nEnable Blend\nUseProgram %d\nDrawArrays 12\nDisable Blend\n",
		prg.handle, drv.text.prg.handle)
	test.ExpectEquality(t, calls(dev, "Clear", "UseProgram", "Draw", "Enable", "Disable"), expected)

	test.ExpectSuccess(t, slices.Equal(dev.Uniform(prg.handle, "f_alpha"), []float32{1}))
	test.ExpectSuccess(t, slices.Equal(dev.Uniform(prg.handle, "s_texture"), []float32{0}))

	// the quad is the 160x144 source scaled by three
	verts, _ := QuadGeometry(160, 144, true)
	test.ExpectSuccess(t, slices.Equal(dev.ArrayData(drv.quadVBO)[:8], verts[:]))
	test.ExpectSuccess(t, slices.Equal(dev.ArrayData(drv.quadVBO)[8:], quadTexCoords[:]))

	tex := dev.Texture(drv.frame.Current().id)
	test.ExpectEquality(t, tex.Layout, gpu.LayoutRGB565)
	test.ExpectEquality(t, tex.Width, 160)

	// grid overlay without integer scaling is not possible
	dev.ClearCalls()
	info.IntegerScale = false
	drv.Frame(make([]byte, 160*144*2), 160, 144, 2, 320, "", info)
	test.ExpectEquality(t, calls(dev, "UseProgram"), fmt.Sprintf("UseProgram %d\n", drv.programs[orderRGB][gridNone].handle))
	test.ExpectSuccess(t, slices.Equal(dev.ArrayData(drv.quadVBO)[:8], []float32{-1, 1, -1, -1, 1, 1, 1, -1}))
}

func TestFrameRotation(t *testing.T) {
	drv, _, _, _ := newTestDriver(t, testSettings())

	frame := make([]byte, 4*4*2)
	test.ExpectEquality(t, drv.frame.Index(), 0)
	drv.Frame(frame, 4, 4, 0, 8, "", video.FrameInfo{})
	test.ExpectEquality(t, drv.frame.Index(), 1)
	drv.Frame(frame, 4, 4, 0, 8, "", video.FrameInfo{})
	test.ExpectEquality(t, drv.frame.Index(), 0)
}

func TestFrameFormat(t *testing.T) {
	settings := testSettings()
	settings.RGB32 = true
	drv, dev, _, _ := newTestDriver(t, settings)
	dev.ClearCalls()

	drv.Frame(make([]byte, 4*4*4), 4, 4, 0, 16, "", video.FrameInfo{})
	test.ExpectEquality(t, dev.Texture(drv.frame.Current().id).Layout, gpu.LayoutRGBA8888)
	test.ExpectEquality(t, calls(dev, "UseProgram"), fmt.Sprintf("UseProgram %d\n", drv.programs[orderBGR][gridNone].handle))

	drv, dev, _, _ = newTestDriver(t, testSettings())
	drv.Frame(make([]byte, 4*4*2), 4, 4, 0, 8, "", video.FrameInfo{UseRGBA: true})
	test.ExpectEquality(t, dev.Texture(drv.frame.Current().id).Layout, gpu.LayoutRGBA4444)
}

func TestFrameMalformed(t *testing.T) {
	drv, dev, ctx, _ := newTestDriver(t, testSettings())
	dev.ClearCalls()

	// buffer too short for the pitch
	test.ExpectSuccess(t, drv.Frame(make([]byte, 100), 160, 144, 0, 320, "", video.FrameInfo{}))
	test.ExpectEquality(t, len(dev.CallsMatching("DrawElements")), 0)
	test.ExpectEquality(t, len(dev.CallsMatching("Clear")), 1)
	test.ExpectEquality(t, ctx.swaps, 1)

	// a frame with no size
	test.ExpectSuccess(t, drv.Frame([]byte{}, 0, 0, 0, 0, "", video.FrameInfo{}))
	test.ExpectEquality(t, len(dev.CallsMatching("DrawElements")), 0)
	test.ExpectEquality(t, ctx.swaps, 2)
}

func TestFrameMalformedLogging(t *testing.T) {
	drv, _, _, _ := newTestDriver(t, testSettings())

	logged := func() int {
		var w strings.Builder
		logger.Write(&w)
		return strings.Count(w.String(), "malformed frame")
	}

	// a run of malformed frames is logged once
	logger.Clear()
	for i := 0; i < 5; i++ {
		drv.Frame(make([]byte, 100), 160, 144, 0, 320, "", video.FrameInfo{})
	}
	test.ExpectEquality(t, logged(), 1)

	// a good frame ends the run
	drv.Frame(make([]byte, 4*4*2), 4, 4, 0, 8, "", video.FrameInfo{})
	drv.Frame(make([]byte, 100), 80, 72, 0, 160, "", video.FrameInfo{})
	test.ExpectEquality(t, logged(), 2)

	var w strings.Builder
	logger.Write(&w)
	test.ExpectEquality(t, strings.Contains(w.String(), "repeat"), false)
}

func TestFrameDeviceErrors(t *testing.T) {
	settings := testSettings()
	settings.SupportsRGBA = true
	drv, dev, ctx, _ := newTestDriver(t, settings)
	logger.Clear()

	// the menu upload fails but the texture is still usable
	dev.InjectError(gpu.OutOfMemory)
	drv.SetTextureFrame(make([]byte, 8*8*4), true, 8, 8, 0.5)

	// failures during the base layer upload and draw
	dev.InjectError(gpu.OutOfMemory)
	dev.InjectError(gpu.InvalidOperation)

	dev.ClearCalls()
	test.ExpectSuccess(t, drv.Frame(make([]byte, 160*144*2), 160, 144, 0, 320, "AB", video.FrameInfo{MenuIsAlive: true}))
	test.ExpectEquality(t, len(dev.CallsMatching("DrawElements 6")), 2)
	test.ExpectEquality(t, len(dev.CallsMatching("DrawArrays 12")), 1)
	test.ExpectEquality(t, ctx.swaps, 1)
	test.ExpectSuccess(t, !dev.Enabled(gpu.Blend))

	var w strings.Builder
	logger.Write(&w)
	test.ExpectSuccess(t, strings.Contains(w.String(), "xplay: blit: out of memory"))
	test.ExpectSuccess(t, strings.Contains(w.String(), "xplay: blit: invalid operation"))

	// every error has been consumed
	test.ExpectSuccess(t, dev.Error())
}

func TestMenu(t *testing.T) {
	settings := testSettings()
	settings.SupportsRGBA = true
	drv, dev, _, _ := newTestDriver(t, settings)

	frame := make([]byte, 4*4*2)

	// the menu is not drawn before the menu texture has been filled
	dev.ClearCalls()
	drv.Frame(frame, 4, 4, 0, 8, "", video.FrameInfo{MenuIsAlive: true})
	test.ExpectEquality(t, len(dev.CallsMatching("DrawElements")), 1)
	test.ExpectEquality(t, len(dev.CallsMatching("Enable Blend")), 0)

	test.ExpectEquality(t, drv.menu.Index(), 0)
	drv.SetTextureFrame(make([]byte, 8*8*4), true, 8, 8, 0.5)
	test.ExpectEquality(t, drv.menu.Index(), 1)
	test.ExpectEquality(t, dev.Texture(drv.menu.Current().id).Layout, gpu.LayoutRGBA8888)

	dev.ClearCalls()
	drv.Frame(frame, 4, 4, 0, 8, "", video.FrameInfo{MenuIsAlive: true})
	menu := drv.programs[orderBGR][gridNone]
	expected := fmt.Sprintf("UseProgram %d\nDrawElements 6\nEnable Blend\nUseProgram %d\nDrawElements 6\nDisable Blend\n",
		drv.programs[orderRGB][gridNone].handle, menu.handle)
	test.ExpectEquality(t, calls(dev, "UseProgram", "Draw", "Enable", "Disable"), expected)
	test.ExpectSuccess(t, slices.Equal(dev.Uniform(menu.handle, "f_alpha"), []float32{0.5}))
	test.ExpectSuccess(t, !dev.Enabled(gpu.Blend))

	// not drawn if the menu is not alive and the texture is not enabled
	dev.ClearCalls()
	drv.Frame(frame, 4, 4, 0, 8, "", video.FrameInfo{})
	test.ExpectEquality(t, len(dev.CallsMatching("DrawElements")), 1)

	drv.SetTextureEnable(true, false)
	dev.ClearCalls()
	drv.Frame(frame, 4, 4, 0, 8, "", video.FrameInfo{})
	test.ExpectEquality(t, len(dev.CallsMatching("DrawElements")), 2)

	// 16 bit menus and 32 bit menus without alpha support
	drv.SetTextureFrame(make([]byte, 8*8*2), false, 8, 8, 1.0)
	test.ExpectEquality(t, drv.menu.Index(), 0)
	test.ExpectEquality(t, dev.Texture(drv.menu.Current().id).Layout, gpu.LayoutRGBA4444)

	settings.SupportsRGBA = false
	drv, dev, _, _ = newTestDriver(t, settings)
	drv.SetTextureFrame(make([]byte, 8*8*4), true, 8, 8, 1.0)
	test.ExpectEquality(t, dev.Texture(drv.menu.Current().id).Layout, gpu.LayoutRGBA8888)
	test.ExpectEquality(t, drv.menu.Current().format, video.FormatRGB8888)
}

func TestNonblockState(t *testing.T) {
	dev := gputest.NewDevice()
	ctx := newMockContext()

	// adaptive vsync is requested regardless of the context's support
	drv, err := New(ctx, dev, nil, testSettings())
	test.DemandSuccess(t, err)
	ctx.intervals = ctx.intervals[:0]

	drv.SetNonblockState(true, true, 1)
	drv.SetNonblockState(false, false, 1)
	drv.SetNonblockState(false, true, 1)
	drv.SetNonblockState(false, true, 2)
	test.ExpectSuccess(t, slices.Equal(ctx.intervals, []int{0, 1, -1, 2}))
}

func TestFree(t *testing.T) {
	drv, dev, ctx, fnt := newTestDriver(t, testSettings())

	drv.Free()
	test.ExpectEquality(t, liveResources(dev), 0)
	test.ExpectEquality(t, ctx.destroyed, 1)
	test.ExpectEquality(t, fnt.freed, 1)

	drv.Free()
	test.ExpectEquality(t, ctx.destroyed, 1)
	test.ExpectEquality(t, fnt.freed, 1)

	// frames after the driver has been freed are ignored
	dev.ClearCalls()
	test.ExpectSuccess(t, drv.Frame(make([]byte, 8), 2, 2, 0, 4, "", video.FrameInfo{}))
	test.ExpectEquality(t, len(dev.Calls), 0)
}
