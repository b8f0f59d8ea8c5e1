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

import (
	"encoding/binary"
	"fmt"
	"math"
	"runtime"
	"sync"
	"sync/atomic"
	"time"

	"github.com/go-audio/audio"

	"github.com/jetsetilly/retrobridge/emulator"
	"github.com/jetsetilly/retrobridge/logger"
)

// length of the ring buffer
const ringDuration = 500 * time.Millisecond

// the write callback is asked for this many frames at a time, up to maxPulls
// times for each call to GetSamples()
const (
	pullFrames = 2048
	maxPulls   = 4
)

// number of frames represented by one call to the write callback
const callbackFrames = 256

// GetSamples() gives up if the lock cannot be acquired within this time. the
// host's thread must not wait for the emulator's audio thread
const lockBudget = 100 * time.Microsecond

// Backend is the audio device used by the emulator.
type Backend struct {
	crit sync.Mutex

	format *audio.Format
	sample emulator.SampleFormat

	// ring buffer of signed 16bit samples in the channel layout of format
	ring  []int16
	read  int
	count int

	// bytes passed to the write callback
	scratch []byte

	writeCallback func([]byte) int
	stateCallback func(emulator.AudioState)

	playing atomic.Bool
}

// NewBackend is the preferred method of initialisation for the Backend type.
func NewBackend() *Backend {
	return &Backend{}
}

// Open prepares the backend for the format. The format must be one or two
// channels.
func (b *Backend) Open(format *audio.Format, sample emulator.SampleFormat) error {
	if format == nil || format.SampleRate <= 0 {
		return fmt.Errorf("audio: invalid format")
	}
	if format.NumChannels < 1 || format.NumChannels > 2 {
		return fmt.Errorf("audio: unsupported number of channels: %d", format.NumChannels)
	}

	b.crit.Lock()
	defer b.crit.Unlock()

	b.format = format
	b.sample = sample

	frames := int(time.Duration(format.SampleRate) * ringDuration / time.Second)
	b.ring = make([]int16, frames*format.NumChannels)
	b.read = 0
	b.count = 0
	b.scratch = make([]byte, pullFrames*format.NumChannels*sample.Size())

	logger.Logf(logger.Allow, "audio", "opened %dHz %d channels (%d frame buffer)",
		format.SampleRate, format.NumChannels, frames)

	return nil
}

// Close the backend. The write callback will not be called again until the
// backend is opened.
func (b *Backend) Close() {
	b.playing.Store(false)

	b.crit.Lock()
	b.format = nil
	b.ring = nil
	b.count = 0
	cb := b.stateCallback
	b.crit.Unlock()

	if cb != nil {
		cb(emulator.AudioClosed)
	}
}

// SetWriteCallback sets the function that fills a buffer with samples.
func (b *Backend) SetWriteCallback(f func(buf []byte) int) {
	b.crit.Lock()
	defer b.crit.Unlock()
	b.writeCallback = f
}

// SetStateCallback sets the function that is told about changes of state.
func (b *Backend) SetStateCallback(f func(state emulator.AudioState)) {
	b.crit.Lock()
	defer b.crit.Unlock()
	b.stateCallback = f
}

func (b *Backend) setState(state emulator.AudioState) {
	b.crit.Lock()
	cb := b.stateCallback
	b.crit.Unlock()
	if cb != nil {
		cb(state)
	}
}

// Play starts audio.
func (b *Backend) Play() {
	if !b.playing.Swap(true) {
		b.setState(emulator.AudioPlaying)
	}
}

// Pause stops audio. Samples already in the ring buffer are kept.
func (b *Backend) Pause() {
	if b.playing.Swap(false) {
		b.setState(emulator.AudioPaused)
	}
}

// IsPlaying returns true if audio is playing.
func (b *Backend) IsPlaying() bool {
	return b.playing.Load()
}

// CallbackFrameLen returns the length of time in seconds of one call to the
// write callback.
func (b *Backend) CallbackFrameLen() float64 {
	b.crit.Lock()
	defer b.crit.Unlock()
	if b.format == nil {
		return 0
	}
	return float64(callbackFrames) / float64(b.format.SampleRate)
}

// Format returns the format the backend was opened with. Nil if the backend
// is not open.
func (b *Backend) Format() *audio.Format {
	b.crit.Lock()
	defer b.crit.Unlock()
	return b.format
}

func (b *Backend) tryLock() bool {
	deadline := time.Now().Add(lockBudget)
	for !b.crit.TryLock() {
		if time.Now().After(deadline) {
			return false
		}
		runtime.Gosched()
	}
	return true
}

// GetSamples copies up to maxFrames frames of stereo signed 16bit samples
// into dst. Returns the number of frames copied. Returns zero without
// waiting if the backend is busy.
func (b *Backend) GetSamples(dst []int16, maxFrames int) int {
	if !b.playing.Load() {
		return 0
	}

	if !b.tryLock() {
		return 0
	}
	defer b.crit.Unlock()

	if b.format == nil {
		return 0
	}

	b.pull()

	channels := b.format.NumChannels
	frames := min(maxFrames, b.count/channels, len(dst)/2)
	for i := range frames {
		l := b.ring[b.read]
		r := l
		if channels == 2 {
			r = b.ring[(b.read+1)%len(b.ring)]
		}
		dst[i*2] = l
		dst[i*2+1] = r
		b.read = (b.read + channels) % len(b.ring)
	}
	b.count -= frames * channels

	return frames
}

// pull samples from the write callback while there is room in the ring
// buffer. called with the lock held
func (b *Backend) pull() {
	if b.writeCallback == nil {
		return
	}

	channels := b.format.NumChannels
	size := b.sample.Size()

	for range maxPulls {
		free := len(b.ring) - b.count
		if free < pullFrames*channels {
			return
		}

		n := b.writeCallback(b.scratch)
		n -= n % size
		if n <= 0 {
			return
		}

		b.push(b.scratch[:n])

		// the emulator has no more data
		if n < len(b.scratch) {
			return
		}
	}
}

// push raw bytes into the ring buffer, converting to signed 16bit
func (b *Backend) push(data []byte) {
	size := b.sample.Size()
	write := (b.read + b.count) % len(b.ring)

	for i := 0; i+size <= len(data); i += size {
		var v int16
		if b.sample == emulator.SampleF32 {
			v = FloatToS16(math.Float32frombits(binary.LittleEndian.Uint32(data[i:])))
		} else {
			v = int16(binary.LittleEndian.Uint16(data[i:]))
		}
		b.ring[write] = v
		write = (write + 1) % len(b.ring)
	}

	b.count += len(data) / size
}

// FloatToS16 converts a floating point sample to signed 16bit. The sample is
// clamped to the range -1.0 to 1.0.
func FloatToS16(v float32) int16 {
	v = max(-1.0, min(1.0, v))
	return int16(v * 32767)
}
