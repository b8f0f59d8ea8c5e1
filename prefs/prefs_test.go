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

package prefs_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/jetsetilly/retrobridge/prefs"
	"github.com/jetsetilly/retrobridge/test"
)

func tmpPrefFile(t *testing.T) string {
	t.Helper()
	return filepath.Join(t.TempDir(), "retrobridge_prefs_test")
}

func cmpPrefFile(t *testing.T, fn string, expected string) {
	t.Helper()
	data, err := os.ReadFile(fn)
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, string(data), prefs.WarningBoilerPlate+"\n"+expected)
}

func TestBool(t *testing.T) {
	fn := tmpPrefFile(t)
	dsk, err := prefs.NewDisk(fn)
	test.DemandSuccess(t, err)

	var v, w, x prefs.Bool
	test.ExpectSuccess(t, dsk.Add("test", &v))
	test.ExpectSuccess(t, dsk.Add("testB", &w))
	test.ExpectSuccess(t, dsk.Add("testC", &x))

	test.ExpectSuccess(t, v.Set(true))
	test.ExpectSuccess(t, w.Set("foo"))
	test.ExpectSuccess(t, x.Set("true"))
	test.ExpectFailure(t, x.Set(10))

	test.DemandSuccess(t, dsk.Save())
	cmpPrefFile(t, fn, "test :: true\ntestB :: false\ntestC :: true\n")
}

func TestIntAndFloat(t *testing.T) {
	fn := tmpPrefFile(t)
	dsk, err := prefs.NewDisk(fn)
	test.DemandSuccess(t, err)

	var n prefs.Int
	var f prefs.Float
	test.ExpectSuccess(t, dsk.Add("number", &n))
	test.ExpectSuccess(t, dsk.Add("float", &f))

	test.ExpectSuccess(t, n.Set("10"))
	test.ExpectFailure(t, n.Set("ten"))
	test.ExpectEquality(t, n.Get().(int), 10)
	test.ExpectSuccess(t, f.Set(0.5))
	test.ExpectEquality(t, f.String(), "0.5")

	test.DemandSuccess(t, dsk.Save())
	cmpPrefFile(t, fn, "float :: 0.5\nnumber :: 10\n")

	// load into fresh values from a new disk instance
	dsk, err = prefs.NewDisk(fn)
	test.DemandSuccess(t, err)
	var m prefs.Int
	test.ExpectSuccess(t, dsk.Add("number", &m))
	test.ExpectSuccess(t, dsk.Load(false))
	test.ExpectEquality(t, m.Get().(int), 10)
}

// write bool and then a string from a different prefs.Disk instance. tests
// that the second writing doesn't clobber the results of the first write.
func TestSharedFile(t *testing.T) {
	fn := tmpPrefFile(t)

	dsk, err := prefs.NewDisk(fn)
	test.DemandSuccess(t, err)
	var v prefs.Bool
	test.ExpectSuccess(t, dsk.Add("test", &v))
	test.ExpectSuccess(t, v.Set(true))
	test.DemandSuccess(t, dsk.Save())

	dsk, err = prefs.NewDisk(fn)
	test.DemandSuccess(t, err)
	var s prefs.String
	test.ExpectSuccess(t, dsk.Add("foo", &s))
	test.ExpectSuccess(t, s.Set("bar"))
	test.DemandSuccess(t, dsk.Save())

	cmpPrefFile(t, fn, "foo :: bar\ntest :: true\n")
}

func TestDuplicateKey(t *testing.T) {
	dsk, err := prefs.NewDisk(tmpPrefFile(t))
	test.DemandSuccess(t, err)
	var a, b prefs.Int
	test.ExpectSuccess(t, dsk.Add("key", &a))
	test.ExpectFailure(t, dsk.Add("key", &b))
}

func TestHooks(t *testing.T) {
	var s prefs.String
	var post string

	s.SetHookPre(func(v prefs.Value) error {
		if v.(string) == "bad" {
			return errors.New("bad value")
		}
		return nil
	})
	s.SetHookPost(func(v prefs.Value) error {
		post = v.(string)
		return nil
	})

	test.ExpectSuccess(t, s.Set("opengl"))
	test.ExpectEquality(t, post, "opengl")

	// pre hook prevents value from being stored
	test.ExpectFailure(t, s.Set("bad"))
	test.ExpectEquality(t, s.String(), "opengl")
	test.ExpectEquality(t, post, "opengl")
}

func TestCommandLineOverride(t *testing.T) {
	fn := tmpPrefFile(t)
	dsk, err := prefs.NewDisk(fn)
	test.DemandSuccess(t, err)

	var s prefs.String
	test.ExpectSuccess(t, dsk.Add("renderer", &s))
	test.ExpectSuccess(t, s.Set("opengl"))
	test.DemandSuccess(t, dsk.Save())

	prefs.PushCommandLineStack("renderer::null")
	defer prefs.PopCommandLineStack()

	test.ExpectSuccess(t, dsk.Load(false))
	test.ExpectEquality(t, s.String(), "null")
}

func TestMaxStringLength(t *testing.T) {
	var s prefs.String
	test.ExpectSuccess(t, s.Set("123456789"))
	test.ExpectEquality(t, s.String(), "123456789")

	// setting maximum length will crop the existing string
	s.SetMaxLen(5)
	test.ExpectEquality(t, s.String(), "12345")

	// unsetting a maximum length (using value zero) will not result in
	// cropped string infomration reappearing
	s.SetMaxLen(0)
	test.ExpectEquality(t, s.String(), "12345")

	s.SetMaxLen(3)
	test.ExpectSuccess(t, s.Set("abcdefghi"))
	test.ExpectEquality(t, s.String(), "abc")
}

func TestStringDefault(t *testing.T) {
	var s prefs.String
	test.ExpectSuccess(t, s.Reset())
	test.ExpectEquality(t, s.String(), "")

	s.SetDefault("opengl")
	test.ExpectEquality(t, s.String(), "")
	test.ExpectSuccess(t, s.Set("null"))
	test.ExpectSuccess(t, s.Reset())
	test.ExpectEquality(t, s.String(), "opengl")
}
