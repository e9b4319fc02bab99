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

// Package sdlcontext implements the video.ContextProvider interface with SDL.
// The context is an OpenGL ES 2.0 context suitable for use with the gles2
// device.
package sdlcontext

import (
	"fmt"
	"runtime"
	"time"
	"unsafe"

	"github.com/jetsetilly/xplay/logger"
	"github.com/jetsetilly/xplay/version"
	"github.com/veandco/go-sdl2/sdl"
)

// Ident is the identity of the SDL context.
const Ident = "sdl"

// Context implements the video.ContextProvider interface.
type Context struct {
	window    *sdl.Window
	glContext sdl.GLContext
	mode      sdl.DisplayMode

	// requests for fullscreen are ignored if windowed is true
	windowed bool

	quit bool
}

// New is the preferred method of initialisation for the Context type. The
// window is created hidden and is shown by SetVideoMode().
func New(title string, windowed bool) (*Context, error) {
	// the SDL package calls LockOSThread() but we call it here too. it can't
	// hurt and we never unlock it in any case
	runtime.LockOSThread()

	err := sdl.Init(sdl.INIT_VIDEO | sdl.INIT_EVENTS)
	if err != nil {
		return nil, fmt.Errorf("sdl: %w", err)
	}

	for _, a := range []struct {
		attr  sdl.GLattr
		value int
	}{
		{sdl.GL_CONTEXT_PROFILE_MASK, sdl.GL_CONTEXT_PROFILE_ES},
		{sdl.GL_CONTEXT_MAJOR_VERSION, 2},
		{sdl.GL_CONTEXT_MINOR_VERSION, 0},
		{sdl.GL_DOUBLEBUFFER, 1},
	} {
		err = sdl.GLSetAttribute(a.attr, a.value)
		if err != nil {
			sdl.Quit()
			return nil, fmt.Errorf("sdl: %w", err)
		}
	}

	var sdlVersion sdl.Version
	sdl.VERSION(&sdlVersion)
	logger.Logf(logger.Allow, "sdl", "version %d.%d.%d", sdlVersion.Major, sdlVersion.Minor, sdlVersion.Patch)

	ctx := &Context{
		windowed: windowed,
	}

	ctx.mode, err = sdl.GetCurrentDisplayMode(0)
	if err != nil {
		sdl.Quit()
		return nil, fmt.Errorf("sdl: %w", err)
	}
	logger.Logf(logger.Allow, "sdl", "refresh rate: %dHz", ctx.mode.RefreshRate)

	v, _, _ := version.Version()
	ctx.window, err = sdl.CreateWindow(fmt.Sprintf("%s (%s)", title, v),
		sdl.WINDOWPOS_UNDEFINED, sdl.WINDOWPOS_UNDEFINED, 1, 1,
		sdl.WINDOW_OPENGL|sdl.WINDOW_HIDDEN)
	if err != nil {
		sdl.Quit()
		return nil, fmt.Errorf("sdl: %w", err)
	}

	ctx.glContext, err = ctx.window.GLCreateContext()
	if err != nil {
		ctx.Destroy()
		return nil, fmt.Errorf("sdl: %w", err)
	}

	err = ctx.window.GLMakeCurrent(ctx.glContext)
	if err != nil {
		ctx.Destroy()
		return nil, fmt.Errorf("sdl: %w", err)
	}

	return ctx, nil
}

// GetProcAddress returns the address of the GL function. Suitable for use
// with gles2.New().
func GetProcAddress(name string) unsafe.Pointer {
	return sdl.GLGetProcAddress(name)
}

// RefreshRate returns the refresh rate of the display in Hz. Zero if the
// rate is unknown.
func (ctx *Context) RefreshRate() int {
	return int(ctx.mode.RefreshRate)
}

// Ident implements the video.ContextProvider interface.
func (ctx *Context) Ident() string {
	return Ident
}

// SetSwapInterval implements the video.ContextProvider interface. If adaptive
// vsync (a negative interval) is refused then normal vsync is used instead.
func (ctx *Context) SetSwapInterval(interval int) error {
	err := sdl.GLSetSwapInterval(interval)
	if err != nil && interval < 0 {
		logger.Logf(logger.Allow, "sdl", "adaptive vsync not available: %v", err)
		interval = 1
		err = sdl.GLSetSwapInterval(interval)
	}
	if err != nil {
		return fmt.Errorf("sdl: GLSetSwapInterval(%d): %w", interval, err)
	}
	return nil
}

// SupportsAdaptiveVSync implements the video.ContextProvider interface.
func (ctx *Context) SupportsAdaptiveVSync() bool {
	return sdl.GLExtensionSupported("GLX_EXT_swap_control_tear") ||
		sdl.GLExtensionSupported("WGL_EXT_swap_control_tear")
}

// SetVideoMode implements the video.ContextProvider interface.
func (ctx *Context) SetVideoMode(width int, height int, fullscreen bool) error {
	if ctx.window == nil {
		return fmt.Errorf("sdl: no window")
	}

	ctx.window.SetSize(int32(width), int32(height))

	if fullscreen && !ctx.windowed {
		err := ctx.window.SetFullscreen(sdl.WINDOW_FULLSCREEN_DESKTOP)
		if err != nil {
			return fmt.Errorf("sdl: %w", err)
		}

		// a short delay seems to smooth things out by giving time for the
		// system to make the changes to the full screen state
		<-time.After(100 * time.Millisecond)
	} else {
		ctx.window.SetPosition(sdl.WINDOWPOS_CENTERED, sdl.WINDOWPOS_CENTERED)
	}

	ctx.window.Show()

	w, h := ctx.window.GLGetDrawableSize()
	logger.Logf(logger.Allow, "sdl", "drawable size: %dx%d", w, h)

	return nil
}

// SwapBuffers implements the video.ContextProvider interface.
func (ctx *Context) SwapBuffers() {
	ctx.window.GLSwap()
}

// HasFocus implements the video.ContextProvider interface.
func (ctx *Context) HasFocus() bool {
	if ctx.window == nil {
		return false
	}
	return ctx.window.GetFlags()&sdl.WINDOW_INPUT_FOCUS == sdl.WINDOW_INPUT_FOCUS
}

// SuppressScreensaver implements the video.ContextProvider interface.
func (ctx *Context) SuppressScreensaver(enable bool) bool {
	if enable {
		sdl.DisableScreenSaver()
	} else {
		sdl.EnableScreenSaver()
	}
	return true
}

// HasWindowed implements the video.ContextProvider interface.
func (ctx *Context) HasWindowed() bool {
	return true
}

// Service the SDL event queue. Returns false once the window has been closed
// or the escape key pressed.
func (ctx *Context) Service() bool {
	for ev := sdl.PollEvent(); ev != nil; ev = sdl.PollEvent() {
		switch ev := ev.(type) {
		case *sdl.QuitEvent:
			ctx.quit = true
		case *sdl.KeyboardEvent:
			if ev.Type == sdl.KEYDOWN && ev.Keysym.Sym == sdl.K_ESCAPE {
				ctx.quit = true
			}
		case *sdl.WindowEvent:
			switch ev.Event {
			case sdl.WINDOWEVENT_FOCUS_GAINED:
				logger.Log(logger.Allow, "sdl", "focus gained")
			case sdl.WINDOWEVENT_FOCUS_LOST:
				logger.Log(logger.Allow, "sdl", "focus lost")
			}
		}
	}
	return !ctx.quit
}

// Destroy implements the video.ContextProvider interface.
func (ctx *Context) Destroy() {
	if ctx.glContext != nil {
		sdl.GLDeleteContext(ctx.glContext)
		ctx.glContext = nil
	}

	if ctx.window != nil {
		err := ctx.window.Destroy()
		if err != nil {
			logger.Log(logger.Allow, "sdl", err)
		}
		ctx.window = nil

		sdl.Quit()
	}
}
