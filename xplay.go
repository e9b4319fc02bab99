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

package main

import (
	"fmt"
	"os"
	"os/signal"
	"runtime"
	"strings"
	"time"

	"github.com/bradleyjkemp/memviz"
	"github.com/jetsetilly/xplay/gfx/font"
	"github.com/jetsetilly/xplay/gfx/gpu/gles2"
	"github.com/jetsetilly/xplay/gfx/sdlcontext"
	"github.com/jetsetilly/xplay/gfx/xplay"
	"github.com/jetsetilly/xplay/logger"
	"github.com/jetsetilly/xplay/modalflag"
	"github.com/jetsetilly/xplay/pattern"
	"github.com/jetsetilly/xplay/performance"
	"github.com/jetsetilly/xplay/prefs"
	"github.com/jetsetilly/xplay/statsview"
	"github.com/jetsetilly/xplay/version"
	"github.com/jetsetilly/xplay/video"
)

// SDL requires that window and context functions are called from the main
// thread
func init() {
	runtime.LockOSThread()
}

// number of log entries shown when a mode ends with an error
const errorTail = 10

func main() {
	md := &modalflag.Modes{Output: os.Stdout}
	md.NewArgs(os.Args[1:])
	md.NewMode()
	md.AddSubModes("RUN", "SHADERS", "VERSION")

	p, err := md.Parse()
	switch p {
	case modalflag.ParseHelp:
		os.Exit(0)

	case modalflag.ParseError:
		fmt.Printf("* error: %v\n", err)
		os.Exit(10)
	}

	switch md.Mode() {
	case "RUN":
		err = run(md)

	case "SHADERS":
		err = shaders(md)

	case "VERSION":
		err = showVersion(md)
	}

	if err != nil {
		fmt.Printf("* error in %s mode: %s\n", md.String(), err)
		if !logger.Echoing() {
			logger.Tail(os.Stdout, errorTail)
		}
		os.Exit(20)
	}
}

// parseFormat returns the rgb32 and useRGBA flags for the named format.
func parseFormat(s string) (bool, bool, error) {
	switch strings.ToLower(s) {
	case "565":
		return false, false, nil
	case "4444":
		return false, true, nil
	case "8888":
		return true, true, nil
	case "x888":
		return true, false, nil
	}
	return false, false, fmt.Errorf("unrecognised pixel format: %s", s)
}

func run(md *modalflag.Modes) error {
	md.NewMode()
	md.AdditionalHelp("renders a moving test pattern until the window is closed or the escape key is pressed")

	override := md.AddString("prefs", "", "override preferences (eg. \"xplay.integerScale::true; xplay.gridOverlay::true\")")
	frames := md.AddInt("frames", 0, "number of frames to render. zero to run until quit")
	format := md.AddString("format", "565", "pixel format of the test pattern: 565, 4444, 8888, x888")
	width := md.AddInt("width", 320, "width of the test pattern")
	height := md.AddInt("height", 240, "height of the test pattern")
	padding := md.AddInt("padding", 16, "bytes of padding at the end of each row of the test pattern")
	menu := md.AddBool("menu", false, "show a menu overlay")
	msg := md.AddString("msg", "frame", "message shown with the frame number. empty for no message")
	windowed := md.AddBool("windowed", false, "do not switch to fullscreen")
	memvizFile := md.AddString("memviz", "", "write a graphviz dump of the driver to the file on exit")
	log := md.AddBool("log", false, "echo debugging log to stdout")
	profile := md.AddString("profile", "NONE", "run through profiler: CPU, MEM, TRACE, ALL (comma separated)")

	var stats *bool
	var statsAddr *string
	if statsview.Available() {
		stats = md.AddBool("statsview", false, "run stats server")
		statsAddr = md.AddString("statsaddr", statsview.Address, "address of the stats server")
	}

	p, err := md.Parse()
	if err != nil || p != modalflag.ParseContinue {
		return err
	}

	if len(md.RemainingArgs()) > 0 {
		return fmt.Errorf("too many arguments for %s mode", md)
	}

	// set debugging log echo
	if *log {
		logger.SetEcho(os.Stdout, false)
	} else {
		logger.SetEcho(nil, false)
	}

	if stats != nil && *stats {
		statsview.Launch(os.Stdout, *statsAddr)
	}

	rgb32, useRGBA, err := parseFormat(*format)
	if err != nil {
		return err
	}

	prf, err := performance.ParseProfileString(*profile)
	if err != nil {
		return err
	}

	prefs.PushCommandLineStack(*override)
	pref, err := xplay.NewPreferences("")
	if unused := prefs.PopCommandLineStack(); unused != "" {
		logger.Logf(logger.Allow, "prefs", "unused overrides: %s", unused)
	}
	if err != nil {
		return err
	}

	settings := pref.Snapshot()
	settings.RGB32 = rgb32
	settings.SupportsRGBA = true

	gen, err := pattern.NewGenerator(*width, *height, video.ResolveFormat(rgb32, useRGBA), *padding)
	if err != nil {
		return err
	}

	ctx, err := sdlcontext.New(version.ApplicationName, *windowed)
	if err != nil {
		return err
	}

	dev, err := gles2.New(sdlcontext.GetProcAddress)
	if err != nil {
		ctx.Destroy()
		return err
	}

	// the driver can run without a font so a failure to load the font is
	// not fatal
	var fnt video.FontProvider
	if settings.FontEnable {
		f, err := font.New(settings.FontPath, settings.FontSize)
		if err != nil {
			logger.Log(logger.Allow, "font", err)
		} else {
			fnt = f
		}
	}

	drv, err := xplay.New(ctx, dev, fnt, settings)
	if err != nil {
		return err
	}
	defer drv.Free()

	logger.Logf(logger.Allow, "xplay", "device: %s (%s)", drv.DeviceString(), drv.APIVersion())

	if *menu {
		mw := xplay.OutputWidth / 2
		mh := xplay.OutputHeight / 2
		drv.SetTextureFrame(pattern.Menu(mw, mh, true), true, mw, mh, 0.75)
		drv.SetTextureEnable(true, false)
	}

	info := video.FrameInfo{
		UseRGBA:      useRGBA,
		MenuIsAlive:  *menu,
		IntegerScale: settings.IntegerScale,
		GridOverlay:  settings.GridOverlay,
		MsgPosX:      settings.MsgPosX,
		MsgPosY:      settings.MsgPosY,
	}

	intChan := make(chan os.Signal, 1)
	signal.Notify(intChan, os.Interrupt)
	defer signal.Stop(intChan)

	drv.SuppressScreensaver(true)
	defer drv.SuppressScreensaver(false)

	var numFrames int
	start := time.Now()

	err = performance.RunProfiler(prf, "xplay", func() error {
		for n := uint64(0); *frames <= 0 || n < uint64(*frames); n++ {
			select {
			case <-intChan:
				return nil
			default:
			}

			if !ctx.Service() {
				return nil
			}

			var m string
			if *msg != "" {
				m = fmt.Sprintf("%s %d", *msg, n)
			}

			drv.Frame(gen.Frame(n), gen.Width, gen.Height, n, gen.Pitch(), m, info)
			numFrames++
		}
		return nil
	})
	if err != nil {
		return err
	}

	fps, accuracy := performance.CalcFPS(numFrames, time.Since(start).Seconds(), float64(ctx.RefreshRate()))
	logger.Logf(logger.Allow, "xplay", "%d frames at %.2f fps (%.1f%%)", numFrames, fps, accuracy)

	if *memvizFile != "" {
		err = writeMemviz(*memvizFile, drv)
		if err != nil {
			logger.Log(logger.Allow, "memviz", err)
		}
	}

	// save preferences before finishing successfully
	return pref.Save()
}

func writeMemviz(filename string, drv *xplay.Driver) error {
	f, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer f.Close()

	memviz.Map(f, drv)

	return nil
}

func shaders(md *modalflag.Modes) error {
	md.NewMode()
	md.AdditionalHelp("prints the source of the generated framebuffer shaders")

	p, err := md.Parse()
	if err != nil || p != modalflag.ParseContinue {
		return err
	}

	return xplay.WriteShaders(os.Stdout)
}

func showVersion(md *modalflag.Modes) error {
	md.NewMode()

	revision := md.AddBool("revision", false, "display revision information from version control")

	p, err := md.Parse()
	if err != nil || p != modalflag.ParseContinue {
		return err
	}

	v, r, _ := version.Version()
	fmt.Println(v)
	if *revision && r != "" {
		fmt.Println(r)
	}

	return nil
}
