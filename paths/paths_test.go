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

package paths_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/jetsetilly/retrobridge/paths"
	"github.com/jetsetilly/retrobridge/test"
)

func TestEmulatorDir(t *testing.T) {
	test.ExpectEquality(t, paths.EmulatorDir("/home/user/system"), "/home/user/system/retrobridge/")
	test.ExpectEquality(t, paths.EmulatorDir("/home/user/system/"), "/home/user/system/retrobridge/")
}

func TestDetailedLogPath(t *testing.T) {
	test.ExpectEquality(t, paths.DetailedLogPath("/saves"), "/saves/retrobridge.log")
}

func TestResourcePath(t *testing.T) {
	// a .retrobridge directory in the working directory takes priority
	wd, err := os.Getwd()
	test.DemandSuccess(t, err)
	tmp := t.TempDir()
	test.DemandSuccess(t, os.Chdir(tmp))
	defer os.Chdir(wd)
	test.DemandSuccess(t, os.Mkdir(".retrobridge", 0o700))

	pth, err := paths.ResourcePath("foo", "bar")
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, pth, filepath.Join(".retrobridge", "foo", "bar"))

	// directory part is created
	_, err = os.Stat(filepath.Join(".retrobridge", "foo"))
	test.ExpectSuccess(t, err)
}
