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

package audio

// Drain parameters. Batches are stereo frames.
const (
	BatchFrames = 512
	MaxBatches  = 4
)

// Source is anything that can provide stereo signed 16bit samples.
type Source interface {
	GetSamples(dst []int16, maxFrames int) int
}

// Sink receives interleaved stereo signed 16bit samples. It returns the
// number of frames it accepted.
type Sink func(samples []int16, frames int) int

// Drainer moves samples from a Source to a Sink. The zero value is ready to
// use.
type Drainer struct {
	buf [BatchFrames * 2]int16

	// optional recorder of everything drained
	Tap Sink
}

// Drain moves up to MaxBatches batches of BatchFrames frames from the source
// to the sink. It stops after the first batch that is shorter than
// BatchFrames. Returns the number of frames moved and the number of batches.
func (d *Drainer) Drain(src Source, sink Sink) (frames int, batches int) {
	for range MaxBatches {
		n := src.GetSamples(d.buf[:], BatchFrames)
		if n > 0 {
			batches++
			frames += n
			if sink != nil {
				sink(d.buf[:n*2], n)
			}
			if d.Tap != nil {
				d.Tap(d.buf[:n*2], n)
			}
		}
		if n < BatchFrames {
			break // for loop
		}
	}
	return frames, batches
}
