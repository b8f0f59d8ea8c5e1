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

package random

import (
	"math/rand/v2"
	"sync/atomic"
	"time"
)

// the base seed for all random numbers
var baseSeed uint64

// initialise base seed
func init() {
	baseSeed = uint64(time.Now().UnixNano())
}

// Clock reports the frame number of the emulator.
type Clock interface {
	Frame() uint64
}

// Random is a random number generator that is sensitive to the emulator's
// frame number.
type Random struct {
	clock Clock
	seed  atomic.Uint64

	// use zero seed rather than the random base seed. this is only really
	// useful for normalised instances where random numbers must be predictable
	ZeroSeed bool
}

// NewRandom is the preferred method of initialisation for the Random type.
// The clock can be nil in which case the frame is always zero.
func NewRandom(clock Clock) *Random {
	return &Random{
		clock: clock,
	}
}

// SetClock changes the source of the frame number.
func (rnd *Random) SetClock(clock Clock) {
	rnd.clock = clock
}

// Seed sets the content seed.
func (rnd *Random) Seed(seed uint64) {
	rnd.seed.Store(seed)
}

// new RNG from the standard library
func (rnd *Random) rand() *rand.Rand {
	var frame uint64
	if rnd.clock != nil {
		frame = rnd.clock.Frame()
	}
	seed := rnd.seed.Load()
	if !rnd.ZeroSeed {
		seed += baseSeed
	}
	return rand.New(rand.NewPCG(seed, frame))
}

// Frame returns a number in the range 0 to n-1. The number is the same for
// every call made during the same frame.
func (rnd *Random) Frame(n int) int {
	return rnd.rand().IntN(n)
}

// NoFrame returns a number in the range 0 to n-1 that does not depend on
// the frame number.
func (rnd *Random) NoFrame(n int) int {
	return rand.IntN(n)
}
