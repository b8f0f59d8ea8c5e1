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

package limiter_test

import (
	"testing"
	"time"

	"github.com/jetsetilly/retrobridge/limiter"
	"github.com/jetsetilly/retrobridge/test"
)

type display float64

func (d display) DisplayRate() float64 {
	return float64(d)
}

// tolerance of measurement
const measurementTolerance = 0.02
const numFramesPerTest = 2

func TestTicker(t *testing.T) {
	lmtr := limiter.NewLimiter(display(60))
	defer lmtr.Stop()

	for _, hz := range []float32{60, 50, 30} {
		lmtr.SetLimit(hz)
		test.ExpectEquality(t, lmtr.IdealFPS(), hz)

		// the first second of frames is used to settle the measurement
		for range int(hz * numFramesPerTest) {
			lmtr.CheckFrame()
			lmtr.MeasureActual()
		}
		test.ExpectApproximate(t, lmtr.Measured(), hz, measurementTolerance, hz)
	}
}

func TestQuantise(t *testing.T) {
	lmtr := limiter.NewLimiter(display(60))
	defer lmtr.Stop()

	test.ExpectEquality(t, lmtr.IdealFPS(), float32(60))

	lmtr.SetLimit(59)
	test.ExpectEquality(t, lmtr.IdealFPS(), float32(60))
	test.ExpectEquality(t, lmtr.Requested(), float32(59))

	lmtr.SetLimit(120)
	test.ExpectEquality(t, lmtr.IdealFPS(), float32(120))

	// no display means a refresh rate of 60Hz
	lmtr = limiter.NewLimiter(nil)
	defer lmtr.Stop()
	test.ExpectEquality(t, lmtr.IdealFPS(), float32(60))
}

func TestOff(t *testing.T) {
	lmtr := limiter.NewLimiter(display(60))
	defer lmtr.Stop()

	lmtr.SetLimit(limiter.Off)
	test.ExpectFailure(t, lmtr.Active())
	test.ExpectEquality(t, lmtr.IdealFPS(), float32(0))

	// no frame should wait
	start := time.Now()
	for range 1000 {
		lmtr.CheckFrame()
	}
	test.ExpectSuccess(t, time.Since(start) < time.Second)

	lmtr.SetLimit(limiter.MatchRefreshRate)
	test.ExpectSuccess(t, lmtr.Active())
}

func TestNudge(t *testing.T) {
	lmtr := limiter.NewLimiter(display(1))
	defer lmtr.Stop()

	// at one frame per second the nudged frames return immediately
	lmtr.Nudge.Store(10)
	start := time.Now()
	for range 10 {
		lmtr.CheckFrame()
	}
	test.ExpectSuccess(t, time.Since(start) < 500*time.Millisecond)
	test.ExpectEquality(t, lmtr.Nudge.Load(), int32(0))
}
