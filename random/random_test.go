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

package random_test

import (
	"testing"

	"github.com/jetsetilly/retrobridge/random"
	"github.com/jetsetilly/retrobridge/test"
)

type clock uint64

func (c *clock) Frame() uint64 {
	return uint64(*c)
}

func TestRandom(t *testing.T) {
	var clk clock = 100

	a := random.NewRandom(&clk)
	b := random.NewRandom(&clk)
	a.ZeroSeed = true
	b.ZeroSeed = true

	for i := 1; i < 256; i++ {
		test.ExpectEquality(t, a.Frame(i), b.Frame(i))
	}

	// the same number for the same frame
	test.ExpectEquality(t, a.Frame(1<<30), a.Frame(1<<30))

	// different seeds produce different sequences
	b.Seed(12345)
	same := 0
	for range 16 {
		clk++
		if a.Frame(1<<30) == b.Frame(1<<30) {
			same++
		}
	}
	test.ExpectInequality(t, same, 16)

	// no clock is frame zero
	c := random.NewRandom(nil)
	c.ZeroSeed = true
	d := random.NewRandom(nil)
	d.ZeroSeed = true
	test.ExpectEquality(t, c.Frame(1000), d.Frame(1000))

	for range 100 {
		n := c.NoFrame(10)
		test.ExpectSuccess(t, n >= 0 && n < 10)
	}
}
