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

// Package wavwriter allows writing of audio data to disk as a WAV file. Note
// that audio data is buffered in memory in its entirity, and written to disk
// when EndMixing() is called. It is therefore probably only suitable for
// testing purposes.
package wavwriter

import (
	"io"
	"os"
	"sync"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"

	"github.com/jetsetilly/retrobridge/curated"
	"github.com/jetsetilly/retrobridge/logger"
)

// the number of channels in the data given to SetAudio()
const numChannels = 2

// WavWriter accumulates interleaved stereo signed 16bit samples.
type WavWriter struct {
	crit       sync.Mutex
	filename   string
	sampleRate int
	buffer     []int
}

// New is the preferred method of initialisation for the WavWriter type.
func New(filename string, sampleRate int) (*WavWriter, error) {
	if sampleRate <= 0 {
		return nil, curated.Errorf("wavwriter: %v", "bad sample rate")
	}

	aw := &WavWriter{
		filename:   filename,
		sampleRate: sampleRate,
		buffer:     make([]int, 0),
	}

	return aw, nil
}

// SetAudio adds frames of interleaved stereo samples to the recording. The
// signature matches the audio.Sink type so that the WavWriter can be used to
// tap the audio drain. Returns the number of frames added.
func (aw *WavWriter) SetAudio(samples []int16, frames int) int {
	aw.crit.Lock()
	defer aw.crit.Unlock()

	n := min(len(samples), frames*numChannels)
	for _, s := range samples[:n] {
		aw.buffer = append(aw.buffer, int(s))
	}

	return n / numChannels
}

// Frames returns the number of frames recorded so far.
func (aw *WavWriter) Frames() int {
	aw.crit.Lock()
	defer aw.crit.Unlock()
	return len(aw.buffer) / numChannels
}

// EndMixing writes the recording to disk.
func (aw *WavWriter) EndMixing() (rerr error) {
	f, err := os.Create(aw.filename)
	if err != nil {
		return curated.Errorf("wavwriter: %v", err)
	}
	defer func() {
		err := f.Close()
		if err != nil && rerr == nil {
			rerr = curated.Errorf("wavwriter: %v", err)
		}
	}()

	logger.Logf(logger.Allow, "wavwriter", "writing audio to %s", aw.filename)

	return aw.encode(f)
}

func (aw *WavWriter) encode(w io.WriteSeeker) error {
	aw.crit.Lock()
	defer aw.crit.Unlock()

	enc := wav.NewEncoder(w, aw.sampleRate, 16, numChannels, 1)

	buf := &audio.IntBuffer{
		Format: &audio.Format{
			NumChannels: numChannels,
			SampleRate:  aw.sampleRate,
		},
		Data:           aw.buffer,
		SourceBitDepth: 16,
	}

	if err := enc.Write(buf); err != nil {
		return curated.Errorf("wavwriter: %v", err)
	}

	if err := enc.Close(); err != nil {
		return curated.Errorf("wavwriter: %v", err)
	}

	return nil
}

// Reset discards the recording.
func (aw *WavWriter) Reset() {
	aw.crit.Lock()
	defer aw.crit.Unlock()
	aw.buffer = aw.buffer[:0]
}
