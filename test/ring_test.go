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

package test_test

import (
	"testing"

	"github.com/jetsetilly/retrobridge/test"
)

func TestRingWriter(t *testing.T) {
	r, err := test.NewRingWriter(10)
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, r.String(), "")

	n, err := r.Write([]byte("abcde"))
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, n, 5)
	test.ExpectEquality(t, r.String(), "abcde")

	r.Write([]byte("fghij"))
	test.ExpectEquality(t, r.String(), "abcdefghij")

	// oldest bytes are dropped once the ring is full
	r.Write([]byte("kl"))
	test.ExpectEquality(t, r.String(), "cdefghijkl")

	// the full length of an oversized write is reported
	n, _ = r.Write([]byte("1234567890ABC"))
	test.ExpectEquality(t, n, 13)
	test.ExpectEquality(t, r.String(), "4567890ABC")

	r.Reset()
	test.ExpectEquality(t, r.String(), "")
	r.Write([]byte("xy"))
	test.ExpectEquality(t, r.String(), "xy")
}

func TestRingWriterSize(t *testing.T) {
	_, err := test.NewRingWriter(0)
	test.ExpectFailure(t, err)
}
