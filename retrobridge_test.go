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

package main

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/jetsetilly/retrobridge/coreopts"
	"github.com/jetsetilly/retrobridge/prefs"
	"github.com/jetsetilly/retrobridge/sdlhost"
	"github.com/jetsetilly/retrobridge/test"
	"github.com/jetsetilly/retrobridge/version"
)

func TestVersionMode(t *testing.T) {
	w := &test.CompareWriter{}
	test.ExpectSuccess(t, dispatch(w, nil, []string{"VERSION"}))
	test.ExpectSuccess(t, strings.HasPrefix(w.String(), version.ApplicationName+" "+version.CoreVersion))
}

func TestInfoMode(t *testing.T) {
	w := &test.CompareWriter{}
	test.ExpectSuccess(t, dispatch(w, nil, []string{"INFO"}))

	out := w.String()
	test.ExpectSuccess(t, strings.Contains(out, "extensions: bin|self|elf|pkg|iso|mp3"))
	test.ExpectSuccess(t, strings.Contains(out, coreopts.KeyRenderer))
	test.ExpectSuccess(t, strings.Contains(out, "timing: 60.00 fps, 48000 Hz"))
}

func TestUnknownMode(t *testing.T) {
	w := &test.CompareWriter{}
	test.ExpectEquality(t, dispatch(w, nil, []string{"-nosuchflag"}), errParse)
}

func TestHarnessOptions(t *testing.T) {
	pth := filepath.Join(t.TempDir(), "harness.prefs")

	opts, dsk, err := harnessOptions(pth, "retrobridge_renderer::null; retrobridge_flip_cadence::2")
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, opts.Get(coreopts.KeyRenderer), "null")
	test.ExpectEquality(t, opts.Get(coreopts.KeyFlipCadence), "2")
	test.DemandSuccess(t, dsk.Save())

	// the command line group is forgotten but the saved values remain
	test.ExpectEquality(t, prefs.SizeCommandLineStack(), 0)
	opts, _, err = harnessOptions(pth, "")
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, opts.Get(coreopts.KeyRenderer), "null")

	env := sdlhost.NewEnvironment(opts)
	v, ok := env.GetVariable(coreopts.KeyFlipCadence)
	test.ExpectSuccess(t, ok)
	test.ExpectEquality(t, v, "2")
}
