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

package testcard

import (
	"encoding/binary"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-audio/audio"
	"github.com/hajimehoshi/go-mp3"

	"github.com/jetsetilly/retrobridge/emulator"
	"github.com/jetsetilly/retrobridge/logger"
)

// ToneRate is the sample rate of the tone.
const ToneRate = 48000

const toneVolume = 0.2

type soundtrack interface {
	format() (*audio.Format, emulator.SampleFormat)

	// fill the buffer with whole frames and return the number of bytes
	// written
	fill(buf []byte) int

	rewind()
}

func newSoundtrack(path string, seed uint32) (soundtrack, error) {
	if strings.ToLower(filepath.Ext(path)) != ".mp3" {
		return newTone(220 * float64(1+seed%3)), nil
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("mp3: %w", err)
	}
	defer f.Close()

	return decodeMP3(f)
}

// tone is a sine wave in both channels
type tone struct {
	phase float64
	step  float64
}

func newTone(freq float64) *tone {
	return &tone{
		step: 2 * math.Pi * freq / ToneRate,
	}
}

func (t *tone) format() (*audio.Format, emulator.SampleFormat) {
	return &audio.Format{NumChannels: 2, SampleRate: ToneRate}, emulator.SampleF32
}

func (t *tone) fill(buf []byte) int {
	const frameSize = 8

	n := len(buf) - len(buf)%frameSize
	for i := 0; i < n; i += frameSize {
		v := math.Float32bits(float32(math.Sin(t.phase) * toneVolume))
		binary.LittleEndian.PutUint32(buf[i:], v)
		binary.LittleEndian.PutUint32(buf[i+4:], v)
		t.phase += t.step
		if t.phase >= 2*math.Pi {
			t.phase -= 2 * math.Pi
		}
	}
	return n
}

func (t *tone) rewind() {
	t.phase = 0
}

// loop is decoded audio that repeats forever
type loop struct {
	rate int
	data []byte
	pos  int
}

// the decoder's output is always 16bit little endian stereo
const mp3FrameSize = 4

func decodeMP3(r io.Reader) (*loop, error) {
	dec, err := mp3.NewDecoder(r)
	if err != nil {
		return nil, fmt.Errorf("mp3: %w", err)
	}

	data, err := io.ReadAll(dec)
	if err != nil {
		return nil, fmt.Errorf("mp3: %w", err)
	}

	data = data[:len(data)-len(data)%mp3FrameSize]
	if len(data) == 0 {
		return nil, fmt.Errorf("mp3: no audio")
	}

	l := &loop{
		rate: dec.SampleRate(),
		data: data,
	}

	logger.Logf(logger.Allow, logTag, "mp3: %dHz %.02fs", l.rate, float64(len(data)/mp3FrameSize)/float64(l.rate))

	return l, nil
}

func (l *loop) format() (*audio.Format, emulator.SampleFormat) {
	return &audio.Format{NumChannels: 2, SampleRate: l.rate}, emulator.SampleS16
}

func (l *loop) fill(buf []byte) int {
	n := len(buf) - len(buf)%mp3FrameSize
	for i := 0; i < n; {
		c := copy(buf[i:n], l.data[l.pos:])
		i += c
		l.pos = (l.pos + c) % len(l.data)
	}
	return n
}

func (l *loop) rewind() {
	l.pos = 0
}
