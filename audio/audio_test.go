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

package audio_test

import (
	"encoding/binary"
	"math"
	"testing"

	goaudio "github.com/go-audio/audio"

	"github.com/jetsetilly/retrobridge/audio"
	"github.com/jetsetilly/retrobridge/emulator"
	"github.com/jetsetilly/retrobridge/test"
)

func TestImplementsDevice(t *testing.T) {
	test.DemandImplements[emulator.AudioDevice](t, audio.NewBackend())
}

func TestFloatToS16(t *testing.T) {
	test.ExpectEquality(t, audio.FloatToS16(0), int16(0))
	test.ExpectEquality(t, audio.FloatToS16(1), int16(32767))
	test.ExpectEquality(t, audio.FloatToS16(-1), int16(-32767))
	test.ExpectEquality(t, audio.FloatToS16(2.5), int16(32767))
	test.ExpectEquality(t, audio.FloatToS16(-7), int16(-32767))
	test.ExpectEquality(t, audio.FloatToS16(0.5), int16(16383))
}

func TestOpen(t *testing.T) {
	b := audio.NewBackend()
	test.ExpectFailure(t, b.Open(nil, emulator.SampleS16))
	test.ExpectFailure(t, b.Open(&goaudio.Format{SampleRate: 48000, NumChannels: 6}, emulator.SampleS16))
	test.ExpectSuccess(t, b.Open(&goaudio.Format{SampleRate: 48000, NumChannels: 2}, emulator.SampleF32))
	test.ExpectApproximate(t, b.CallbackFrameLen(), 256.0/48000.0, 0.0001)
}

func TestPlayPause(t *testing.T) {
	b := audio.NewBackend()
	var states []emulator.AudioState
	b.SetStateCallback(func(s emulator.AudioState) {
		states = append(states, s)
	})

	test.ExpectFailure(t, b.IsPlaying())
	b.Play()
	b.Play()
	test.ExpectSuccess(t, b.IsPlaying())
	b.Pause()
	test.ExpectFailure(t, b.IsPlaying())
	b.Close()

	test.DemandEquality(t, len(states), 3)
	test.ExpectEquality(t, states[0], emulator.AudioPlaying)
	test.ExpectEquality(t, states[1], emulator.AudioPaused)
	test.ExpectEquality(t, states[2], emulator.AudioClosed)
}

// float stereo samples are converted to signed 16bit
func TestGetSamplesFloat(t *testing.T) {
	b := audio.NewBackend()
	test.DemandSuccess(t, b.Open(&goaudio.Format{SampleRate: 48000, NumChannels: 2}, emulator.SampleF32))

	// write callback provides 100 frames of (0.5, -0.5)
	b.SetWriteCallback(func(buf []byte) int {
		n := 0
		for i := 0; i < 100; i++ {
			binary.LittleEndian.PutUint32(buf[n:], math.Float32bits(0.5))
			binary.LittleEndian.PutUint32(buf[n+4:], math.Float32bits(-0.5))
			n += 8
		}
		return n
	})

	dst := make([]int16, 1024)

	// not playing
	test.ExpectEquality(t, b.GetSamples(dst, 512), 0)

	b.Play()
	test.ExpectEquality(t, b.GetSamples(dst, 512), 100)
	test.ExpectEquality(t, dst[0], int16(16383))
	test.ExpectEquality(t, dst[1], int16(-16383))
}

// mono samples are duplicated to both channels
func TestGetSamplesMono(t *testing.T) {
	b := audio.NewBackend()
	test.DemandSuccess(t, b.Open(&goaudio.Format{SampleRate: 48000, NumChannels: 1}, emulator.SampleS16))

	var v int16
	b.SetWriteCallback(func(buf []byte) int {
		for i := 0; i < len(buf); i += 2 {
			v++
			binary.LittleEndian.PutUint16(buf[i:], uint16(v))
		}
		return len(buf)
	})
	b.Play()

	dst := make([]int16, 20)
	test.ExpectEquality(t, b.GetSamples(dst, 10), 10)
	test.ExpectEquality(t, dst[0], int16(1))
	test.ExpectEquality(t, dst[1], int16(1))
	test.ExpectEquality(t, dst[18], int16(10))
	test.ExpectEquality(t, dst[19], int16(10))

	// samples continue from where they left off
	test.ExpectEquality(t, b.GetSamples(dst, 1), 1)
	test.ExpectEquality(t, dst[0], int16(11))
}

type source struct {
	available int
	calls     int
}

func (s *source) GetSamples(dst []int16, maxFrames int) int {
	s.calls++
	n := min(s.available, maxFrames)
	s.available -= n
	return n
}

func TestDrain(t *testing.T) {
	var d audio.Drainer
	var sunk int
	sink := func(samples []int16, frames int) int {
		test.ExpectEquality(t, len(samples), frames*2)
		sunk += frames
		return frames
	}

	// more than enough data: stops after the maximum number of batches
	src := &source{available: 10000}
	frames, batches := d.Drain(src, sink)
	test.ExpectEquality(t, frames, audio.BatchFrames*audio.MaxBatches)
	test.ExpectEquality(t, batches, audio.MaxBatches)
	test.ExpectEquality(t, src.calls, audio.MaxBatches)

	// stops early on a short batch
	src = &source{available: 700}
	frames, batches = d.Drain(src, sink)
	test.ExpectEquality(t, frames, 700)
	test.ExpectEquality(t, batches, 2)
	test.ExpectEquality(t, src.calls, 2)

	// exactly one batch of data needs a second call to find out there is no
	// more
	src = &source{available: audio.BatchFrames}
	frames, batches = d.Drain(src, sink)
	test.ExpectEquality(t, frames, audio.BatchFrames)
	test.ExpectEquality(t, batches, 1)
	test.ExpectEquality(t, src.calls, 2)

	test.ExpectEquality(t, sunk, audio.BatchFrames*audio.MaxBatches+700+audio.BatchFrames)

	// tap sees everything
	var tapped int
	d.Tap = func(samples []int16, frames int) int {
		tapped += frames
		return frames
	}
	d.Drain(&source{available: 100}, nil)
	test.ExpectEquality(t, tapped, 100)
}
