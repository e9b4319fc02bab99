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

package xplay_test

import (
	"path/filepath"
	"testing"

	"github.com/jetsetilly/xplay/gfx/xplay"
	"github.com/jetsetilly/xplay/prefs"
	"github.com/jetsetilly/xplay/test"
)

func TestPreferencesDefaults(t *testing.T) {
	p, err := xplay.NewPreferences(filepath.Join(t.TempDir(), prefs.DefaultPrefsFile))
	test.DemandSuccess(t, err)

	s := p.Snapshot()
	test.ExpectEquality(t, s.IntegerScale, false)
	test.ExpectEquality(t, s.GridOverlay, false)
	test.ExpectEquality(t, s.VSync, true)
	test.ExpectEquality(t, s.SwapInterval, 1)
	test.ExpectEquality(t, s.FontEnable, true)
	test.ExpectEquality(t, s.FontPath, "")
	test.ExpectEquality(t, s.FontSize, 16.0)
	test.ExpectEquality(t, s.MsgColor, [3]float32{1, 1, 0})
	test.ExpectEquality(t, s.MsgPosX, float32(0.05))
	test.ExpectEquality(t, s.MsgPosY, float32(0.05))

	// properties of the frame source are never preferences
	test.ExpectEquality(t, s.RGB32, false)
	test.ExpectEquality(t, s.SupportsRGBA, false)
}

func TestPreferencesSaveLoad(t *testing.T) {
	fn := filepath.Join(t.TempDir(), prefs.DefaultPrefsFile)

	p, err := xplay.NewPreferences(fn)
	test.DemandSuccess(t, err)
	test.ExpectSuccess(t, p.IntegerScale.Set(true))
	test.ExpectSuccess(t, p.GridOverlay.Set(true))
	test.ExpectSuccess(t, p.SwapInterval.Set(2))
	test.ExpectSuccess(t, p.FontPath.Set("mono.ttf"))
	test.ExpectSuccess(t, p.MsgColorB.Set(0.5))
	test.ExpectSuccess(t, p.Save())

	q, err := xplay.NewPreferences(fn)
	test.DemandSuccess(t, err)

	s := q.Snapshot()
	test.ExpectEquality(t, s.IntegerScale, true)
	test.ExpectEquality(t, s.GridOverlay, true)
	test.ExpectEquality(t, s.SwapInterval, 2)
	test.ExpectEquality(t, s.FontPath, "mono.ttf")
	test.ExpectEquality(t, s.MsgColor, [3]float32{1, 1, 0.5})

	// the snapshot is a copy
	test.ExpectSuccess(t, q.IntegerScale.Set(false))
	test.ExpectEquality(t, s.IntegerScale, true)

	q.SetDefaults()
	test.ExpectEquality(t, q.Snapshot().SwapInterval, 1)

	// reloading restores the saved values
	test.ExpectSuccess(t, q.Load())
	test.ExpectEquality(t, q.Snapshot().SwapInterval, 2)
}
