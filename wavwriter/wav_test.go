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

package wavwriter_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/go-audio/wav"

	"github.com/jetsetilly/retrobridge/audio"
	"github.com/jetsetilly/retrobridge/test"
	"github.com/jetsetilly/retrobridge/wavwriter"
)

func TestBadSampleRate(t *testing.T) {
	_, err := wavwriter.New("x.wav", 0)
	test.ExpectFailure(t, err)
}

func TestRecording(t *testing.T) {
	filename := filepath.Join(t.TempDir(), "out.wav")

	aw, err := wavwriter.New(filename, 48000)
	test.DemandSuccess(t, err)

	var sink audio.Sink = aw.SetAudio

	samples := make([]int16, 200)
	for i := range samples {
		samples[i] = int16(i * 100)
	}
	test.ExpectEquality(t, sink(samples, 100), 100)

	// frames count is limited by the length of the sample slice
	test.ExpectEquality(t, sink(samples[:10], 100), 5)
	test.ExpectEquality(t, aw.Frames(), 105)

	test.DemandSuccess(t, aw.EndMixing())

	f, err := os.Open(filename)
	test.DemandSuccess(t, err)
	defer f.Close()

	dec := wav.NewDecoder(f)
	test.DemandSuccess(t, dec.IsValidFile())
	test.ExpectEquality(t, int(dec.SampleRate), 48000)
	test.ExpectEquality(t, int(dec.NumChans), 2)
	test.ExpectEquality(t, int(dec.BitDepth), 16)

	buf, err := dec.FullPCMBuffer()
	test.DemandSuccess(t, err)
	test.DemandEquality(t, len(buf.Data), 210)
	test.ExpectEquality(t, buf.Data[1], 100)
	test.ExpectEquality(t, buf.Data[199], 19900)
	test.ExpectEquality(t, buf.Data[209], 900)

	aw.Reset()
	test.ExpectEquality(t, aw.Frames(), 0)
}
