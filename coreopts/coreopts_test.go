// This file is part of Retrobridge.
//
// Retrobridge is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// Retrobridge is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with Retrobridge.  If not, see <https://www.gnu.org/licenses/>.

package coreopts_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/jetsetilly/retrobridge/coreopts"
	"github.com/jetsetilly/retrobridge/emulator"
	"github.com/jetsetilly/retrobridge/prefs"
	"github.com/jetsetilly/retrobridge/test"
)

type host map[string]string

func (h host) GetVariable(key string) (string, bool) {
	v, ok := h[key]
	return v, ok
}

func TestVariables(t *testing.T) {
	vars := coreopts.Variables()
	test.ExpectEquality(t, len(vars), 8)
	test.ExpectEquality(t, vars[0].Definition(), "Renderer; opengl|null")
	test.ExpectEquality(t, vars[2].Definition(), "Frame Limit; Auto|Off|30|60|120")

	for _, v := range vars {
		test.ExpectSuccess(t, strings.HasPrefix(v.Key, "retrobridge_"), v.Key)
		test.ExpectSuccess(t, v.Valid(v.Default()), v.Key)
	}

	v, ok := coreopts.Lookup(coreopts.KeyContextPool)
	test.DemandSuccess(t, ok)
	test.ExpectEquality(t, v.Default(), "10")

	_, ok = coreopts.Lookup("retrobridge_unknown")
	test.ExpectFailure(t, ok)
}

func TestDefaults(t *testing.T) {
	o := coreopts.NewOptions()

	cfg := o.Config()
	test.ExpectEquality(t, cfg.Renderer, emulator.OpenGL)
	test.ExpectEquality(t, cfg.Width, 1280)
	test.ExpectEquality(t, cfg.Height, 720)
	test.ExpectEquality(t, cfg.FrameLimit, 0.0)
	test.ExpectFailure(t, cfg.VSync)

	test.ExpectEquality(t, o.FenceTimeoutDuration(), 4*time.Millisecond)
	test.ExpectEquality(t, o.FlipCadenceFor(emulator.OpenGL), 1)
	test.ExpectEquality(t, o.ContextPoolSize(), 10)
}

func TestApply(t *testing.T) {
	o := coreopts.NewOptions()
	o.Apply(host{
		coreopts.KeyRenderer:     "null",
		coreopts.KeyResolution:   "1920x1080",
		coreopts.KeyFrameLimit:   "30",
		coreopts.KeyCPUDecoder:   "Interpreter",
		coreopts.KeyFenceTimeout: "8",
		coreopts.KeyFlipCadence:  "2",
		coreopts.KeyContextPool:  "0",
	})

	cfg := o.Config()
	test.ExpectEquality(t, cfg.Renderer, emulator.Null)
	test.ExpectEquality(t, cfg.Width, 1920)
	test.ExpectEquality(t, cfg.Height, 1080)
	test.ExpectEquality(t, cfg.FrameLimit, 30.0)
	test.ExpectEquality(t, cfg.CPUDecoder, "Interpreter")
	test.ExpectEquality(t, cfg.CoprocessorDecoder, "Recompiler (LLVM)")
	test.ExpectEquality(t, o.FenceTimeoutDuration(), 8*time.Millisecond)
	test.ExpectEquality(t, o.FlipCadenceFor(emulator.OpenGL), 2)
	test.ExpectEquality(t, o.ContextPoolSize(), 0)

	// Off disables the limiter
	o.Apply(host{coreopts.KeyFrameLimit: "Off"})
	test.ExpectEquality(t, o.Config().FrameLimit, 0.0)

	// variables missing from the host revert to the default
	test.ExpectEquality(t, o.Config().Renderer, emulator.OpenGL)
}

func TestInvalidValues(t *testing.T) {
	o := coreopts.NewOptions()

	test.ExpectFailure(t, o.Set(coreopts.KeyResolution, "640x480"))
	test.ExpectEquality(t, o.Get(coreopts.KeyResolution), "1280x720")
	test.ExpectFailure(t, o.Set("retrobridge_unknown", "1"))
	test.ExpectEquality(t, o.Get("retrobridge_unknown"), "")

	// invalid values from the host fall back to the default
	o.Apply(host{coreopts.KeyFenceTimeout: "100"})
	test.ExpectEquality(t, o.Get(coreopts.KeyFenceTimeout), "4")
	test.ExpectEquality(t, o.FenceTimeoutDuration(), 4*time.Millisecond)
}

func TestDisk(t *testing.T) {
	pth := filepath.Join(t.TempDir(), "harness.prefs")

	o := coreopts.NewOptions()
	dsk, err := prefs.NewDisk(pth)
	test.DemandSuccess(t, err)
	test.DemandSuccess(t, o.AddToDisk(dsk))

	test.DemandSuccess(t, o.Set(coreopts.KeyResolution, "3840x2160"))
	test.DemandSuccess(t, dsk.Save())

	data, err := os.ReadFile(pth)
	test.DemandSuccess(t, err)
	test.ExpectSuccess(t, strings.Contains(string(data), "retrobridge_resolution :: 3840x2160"))

	o = coreopts.NewOptions()
	dsk, err = prefs.NewDisk(pth)
	test.DemandSuccess(t, err)
	test.DemandSuccess(t, o.AddToDisk(dsk))

	// command line takes priority over the file
	prefs.PushCommandLineStack("retrobridge_renderer::null")
	defer prefs.PopCommandLineStack()

	test.DemandSuccess(t, dsk.Load(true))
	test.ExpectEquality(t, o.Config().Width, 3840)
	test.ExpectEquality(t, o.Config().Renderer, emulator.Null)
}

func TestDiskDefaults(t *testing.T) {
	o := coreopts.NewOptions()
	test.DemandSuccess(t, o.Set(coreopts.KeyFlipCadence, "2"))

	// loading from a file that does not exist resets to the defaults
	dsk, err := prefs.NewDisk(filepath.Join(t.TempDir(), "missing.prefs"))
	test.DemandSuccess(t, err)
	test.DemandSuccess(t, o.AddToDisk(dsk))
	test.DemandSuccess(t, dsk.Load(true))
	test.ExpectEquality(t, o.Get(coreopts.KeyFlipCadence), "Auto")
}
