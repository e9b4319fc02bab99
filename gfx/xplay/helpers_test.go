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

	"github.com/jetsetilly/xplay/video"
)

// mockContext records the calls made to it by the driver.
type mockContext struct {
	ident       string
	adaptive    bool
	failMode    bool
	focus       bool
	intervals   []int
	width       int
	height      int
	fullscreen  bool
	swaps       int
	screensaver bool
	destroyed   int
}

func newMockContext() *mockContext {
	return &mockContext{ident: "test", focus: true}
}

func (ctx *mockContext) Ident() string {
	return ctx.ident
}

func (ctx *mockContext) SetSwapInterval(interval int) error {
	ctx.intervals = append(ctx.intervals, interval)
	return nil
}

func (ctx *mockContext) SupportsAdaptiveVSync() bool {
	return ctx.adaptive
}

func (ctx *mockContext) SetVideoMode(width int, height int, fullscreen bool) error {
	if ctx.failMode {
		return fmt.Errorf("no video mode")
	}
	ctx.width = width
	ctx.height = height
	ctx.fullscreen = fullscreen
	return nil
}

func (ctx *mockContext) SwapBuffers() {
	ctx.swaps++
}

func (ctx *mockContext) HasFocus() bool {
	return ctx.focus
}

func (ctx *mockContext) SuppressScreensaver(enable bool) bool {
	ctx.screensaver = enable
	return true
}

func (ctx *mockContext) HasWindowed() bool {
	return true
}

func (ctx *mockContext) Destroy() {
	ctx.destroyed++
}

// mockFont is a font with glyphs for 'A' and 'B' only.
type mockFont struct {
	atlas video.FontAtlas
	freed int
}

func newMockFont() *mockFont {
	return &mockFont{
		atlas: video.FontAtlas{
			Width:  16,
			Height: 8,
			Buffer: make([]byte, 16*8),
			Dirty:  true,
		},
	}
}

func (f *mockFont) Atlas() *video.FontAtlas {
	return &f.atlas
}

func (f *mockFont) Glyph(r rune) (video.Glyph, bool) {
	switch r {
	case 'A':
		return video.Glyph{
			AdvanceX: 5, DrawOffsetY: -4,
			Width: 3, Height: 4,
		}, true
	case 'B':
		return video.Glyph{
			AdvanceX: 6, DrawOffsetX: 1, DrawOffsetY: -5,
			Width: 4, Height: 5,
			AtlasOffsetX: 5,
		}, true
	}
	return video.Glyph{}, false
}

func (f *mockFont) Free() {
	f.freed++
}
