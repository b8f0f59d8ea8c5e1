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
	"testing"

	"github.com/jetsetilly/retrobridge/test"
)

func TestSurfaces(t *testing.T) {
	const host, pooled = uintptr(0x10), uintptr(0x20)
	const window, pbuffer = "window", "pbuffer"

	// restoring the host's context rebinds the host's surfaces
	draw, read := surfaces(host, host, window, pbuffer)
	test.ExpectEquality(t, draw, window)
	test.ExpectEquality(t, read, pbuffer)

	draw, read = surfaces(pooled, host, window, pbuffer)
	test.ExpectEquality(t, draw, "")
	test.ExpectEquality(t, read, "")

	// detaching
	draw, read = surfaces(uintptr(0), host, window, pbuffer)
	test.ExpectEquality(t, draw, "")
	test.ExpectEquality(t, read, "")
}
