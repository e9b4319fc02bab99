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
	"github.com/jetsetilly/xplay/logger"
	"github.com/jetsetilly/xplay/prefs"
	"github.com/jetsetilly/xplay/resources"
)

// Settings are the values used to configure the driver. The values are
// copied into the driver by New() and do not change afterwards.
//
// The per-frame values, integer scaling, grid overlay and message position,
// are supplied to each call to Frame() in the video.FrameInfo argument. The
// values in Settings are used by the host to fill in the FrameInfo.
type Settings struct {
	IntegerScale bool
	GridOverlay  bool

	VSync         bool
	AdaptiveVSync bool
	SwapInterval  int

	FontEnable bool
	FontPath   string
	FontSize   float64
	MsgColor   [3]float32
	MsgPosX    float32
	MsgPosY    float32

	// frames from the source are 32 bit. this is a property of the frame
	// source and not a preference
	RGB32 bool

	// 32 bit menu overlays make use of the alpha channel
	SupportsRGBA bool
}

// Preferences for the xplay driver.
type Preferences struct {
	dsk *prefs.Disk

	IntegerScale  prefs.Bool
	GridOverlay   prefs.Bool
	VSync         prefs.Bool
	AdaptiveVSync prefs.Bool
	SwapInterval  prefs.Int
	FontEnable    prefs.Bool
	FontPath      prefs.String
	FontSize      prefs.Float
	MsgColorR     prefs.Float
	MsgColorG     prefs.Float
	MsgColorB     prefs.Float
	MsgPosX       prefs.Float
	MsgPosY       prefs.Float
}

func (p *Preferences) String() string {
	return p.dsk.String()
}

// NewPreferences is the preferred method of initialisation for the
// Preferences type. The preferences are loaded from the file at path. If the
// path is empty the default preferences file in the resource directory is
// used.
func NewPreferences(path string) (*Preferences, error) {
	p := &Preferences{}
	p.SetDefaults()

	if path == "" {
		var err error
		path, err = resources.JoinPath(prefs.DefaultPrefsFile)
		if err != nil {
			return nil, err
		}
	}

	var err error
	p.dsk, err = prefs.NewDisk(path)
	if err != nil {
		return nil, err
	}

	err = p.dsk.Add("xplay.integerScale", &p.IntegerScale)
	if err != nil {
		return nil, err
	}

	err = p.dsk.Add("xplay.gridOverlay", &p.GridOverlay)
	if err != nil {
		return nil, err
	}

	err = p.dsk.Add("xplay.vsync", &p.VSync)
	if err != nil {
		return nil, err
	}

	err = p.dsk.Add("xplay.adaptiveVSync", &p.AdaptiveVSync)
	if err != nil {
		return nil, err
	}

	err = p.dsk.Add("xplay.swapInterval", &p.SwapInterval)
	if err != nil {
		return nil, err
	}

	err = p.dsk.Add("xplay.fontEnable", &p.FontEnable)
	if err != nil {
		return nil, err
	}

	err = p.dsk.Add("xplay.fontPath", &p.FontPath)
	if err != nil {
		return nil, err
	}

	err = p.dsk.Add("xplay.fontSize", &p.FontSize)
	if err != nil {
		return nil, err
	}

	err = p.dsk.Add("xplay.msgColorR", &p.MsgColorR)
	if err != nil {
		return nil, err
	}

	err = p.dsk.Add("xplay.msgColorG", &p.MsgColorG)
	if err != nil {
		return nil, err
	}

	err = p.dsk.Add("xplay.msgColorB", &p.MsgColorB)
	if err != nil {
		return nil, err
	}

	err = p.dsk.Add("xplay.msgPosX", &p.MsgPosX)
	if err != nil {
		return nil, err
	}

	err = p.dsk.Add("xplay.msgPosY", &p.MsgPosY)
	if err != nil {
		return nil, err
	}

	// the grid is only visible with integer scaling
	p.GridOverlay.SetHookPost(func(v prefs.Value) error {
		if v.(bool) && !p.IntegerScale.Get().(bool) {
			logger.Log(logger.Allow, "prefs", "grid overlay requires integer scaling")
		}
		return nil
	})

	err = p.dsk.Load()
	if err != nil {
		return nil, err
	}

	return p, nil
}

// SetDefaults reverts all preferences to the default values.
func (p *Preferences) SetDefaults() {
	p.IntegerScale.Set(false)
	p.GridOverlay.Set(false)
	p.VSync.Set(true)
	p.AdaptiveVSync.Set(false)
	p.SwapInterval.Set(1)
	p.FontEnable.Set(true)
	p.FontPath.Set("")
	p.FontSize.Set(16.0)
	p.MsgColorR.Set(1.0)
	p.MsgColorG.Set(1.0)
	p.MsgColorB.Set(0.0)
	p.MsgPosX.Set(0.05)
	p.MsgPosY.Set(0.05)
}

// Load preferences from disk.
func (p *Preferences) Load() error {
	return p.dsk.Load()
}

// Save preferences to disk.
func (p *Preferences) Save() error {
	return p.dsk.Save()
}

// Snapshot returns the current preference values as a Settings instance.
// The RGB32 and SupportsRGBA fields are left for the caller.
func (p *Preferences) Snapshot() Settings {
	return Settings{
		IntegerScale:  p.IntegerScale.Get().(bool),
		GridOverlay:   p.GridOverlay.Get().(bool),
		VSync:         p.VSync.Get().(bool),
		AdaptiveVSync: p.AdaptiveVSync.Get().(bool),
		SwapInterval:  p.SwapInterval.Get().(int),
		FontEnable:    p.FontEnable.Get().(bool),
		FontPath:      p.FontPath.String(),
		FontSize:      p.FontSize.Get().(float64),
		MsgColor: [3]float32{
			float32(p.MsgColorR.Get().(float64)),
			float32(p.MsgColorG.Get().(float64)),
			float32(p.MsgColorB.Get().(float64)),
		},
		MsgPosX: float32(p.MsgPosX.Get().(float64)),
		MsgPosY: float32(p.MsgPosY.Get().(float64)),
	}
}
