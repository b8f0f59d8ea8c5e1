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
	"fmt"
	"hash/crc32"
	"io"
	"os"
	"sync"
	"sync/atomic"
	"time"

	"github.com/jetsetilly/retrobridge/curated"
	"github.com/jetsetilly/retrobridge/emulator"
	"github.com/jetsetilly/retrobridge/environment"
	"github.com/jetsetilly/retrobridge/logger"
	"github.com/jetsetilly/retrobridge/version"
)

const logTag = "testcard"

// the amount of content used to seed the test pattern
const seedLength = 1024

// DefaultDelay is the length of the Loading and Starting phases of a boot.
const DefaultDelay = 50 * time.Millisecond

// Restart() is only possible once content has been booted.
const NotBooted = "testcard: no content has been booted"

// Emulator is the test-card emulator.
type Emulator struct {
	env *environment.Environment

	// the amount of time spent in each of the Loading and Starting statuses.
	// must be set before Boot()
	Delay time.Duration

	crit     sync.Mutex
	cond     *sync.Cond
	status   emulator.Status
	stopping bool
	shutdown bool
	path     string

	// the pattern is derived from the seed
	pattern pattern

	soundCrit sync.Mutex
	sound     soundtrack
	audioOpen bool

	frame atomic.Uint64

	stop chan struct{}
	done chan struct{}
}

// NewEmulator is the preferred method of initialisation for the Emulator
// type. The environment's random number generator is clocked by the
// emulator's frame number.
func NewEmulator(env *environment.Environment) *Emulator {
	emu := &Emulator{
		env:   env,
		Delay: DefaultDelay,
	}
	emu.cond = sync.NewCond(&emu.crit)
	if env.Random != nil {
		env.Random.SetClock(emu)
	}
	return emu
}

// Info implements the emulator.Emulator interface.
func (emu *Emulator) Info() emulator.Info {
	return emulator.Info{
		Name:       "Test Card",
		Version:    version.CoreVersion,
		Extensions: []string{"bin", "self", "elf", "pkg", "iso", "mp3"},
	}
}

// Frame returns the number of frames drawn since the content was booted or
// restarted.
func (emu *Emulator) Frame() uint64 {
	return emu.frame.Load()
}

// Path returns the path of the booted content.
func (emu *Emulator) Path() string {
	emu.crit.Lock()
	defer emu.crit.Unlock()
	return emu.path
}

// contentSeed returns the CRC of the start of the file
func contentSeed(path string) (uint32, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, err
	}
	defer f.Close()

	b := make([]byte, seedLength)
	n, err := io.ReadFull(f, b)
	if err != nil && err != io.ErrUnexpectedEOF {
		return 0, err
	}
	return crc32.ChecksumIEEE(b[:n]), nil
}

// Boot implements the emulator.Emulator interface. The content is checked
// before the function returns but the emulator will be in the Loading status
// for a short while afterwards.
func (emu *Emulator) Boot(path string) emulator.BootResult {
	emu.crit.Lock()
	defer emu.crit.Unlock()

	if emu.shutdown {
		return emulator.CurrentlyRestricted
	}
	if emu.status != emulator.Stopped {
		return emulator.StillRunning
	}
	if path == "" {
		return emulator.NothingToBoot
	}

	fi, err := os.Stat(path)
	if err != nil {
		logger.Log(logger.Allow, logTag, err)
		return emulator.InvalidFileOrFolder
	}
	if fi.IsDir() {
		return emulator.InvalidBDVDFolder
	}
	if fi.Size() == 0 {
		return emulator.NothingToBoot
	}

	if err := emu.env.Validate(); err != nil {
		logger.Log(logger.Allow, logTag, err)
		return emulator.GenericError
	}

	seed, err := contentSeed(path)
	if err != nil {
		logger.Log(logger.Allow, logTag, err)
		return emulator.InvalidFileOrFolder
	}

	snd, err := newSoundtrack(path, seed)
	if err != nil {
		logger.Log(logger.Allow, logTag, err)
		return emulator.UnsupportedDiscType
	}

	emu.path = path
	emu.pattern = newPattern(seed)
	emu.soundCrit.Lock()
	emu.sound = snd
	emu.soundCrit.Unlock()
	emu.frame.Store(0)
	if emu.env.Random != nil {
		emu.env.Random.Seed(uint64(seed))
	}

	logger.Logf(logger.Allow, logTag, "booting %s (seed %08x)", path, seed)

	emu.stopping = false
	emu.stop = make(chan struct{})
	emu.done = make(chan struct{})
	emu.setStatus(emulator.Loading)

	go emu.boot(emu.stop, emu.done)

	return emulator.NoErrors
}

// setStatus must be called with the lock held
func (emu *Emulator) setStatus(status emulator.Status) {
	if emu.status == status {
		return
	}
	logger.Logf(logger.Allow, logTag, "%s -> %s", emu.status, status)
	emu.status = status
	emu.cond.Broadcast()
}

// advance moves from one status to another if the emulator is still in the
// from status. returns false if it is not
func (emu *Emulator) advance(from emulator.Status, to emulator.Status) bool {
	emu.crit.Lock()
	defer emu.crit.Unlock()
	if emu.status != from || emu.stopping {
		return false
	}
	emu.setStatus(to)
	return true
}

// delay returns false if the emulator was stopped during the delay
func (emu *Emulator) delay(stop <-chan struct{}) bool {
	if emu.Delay <= 0 {
		select {
		case <-stop:
			return false
		default:
			return true
		}
	}

	t := time.NewTimer(emu.Delay)
	defer t.Stop()
	select {
	case <-stop:
		return false
	case <-t.C:
		return true
	}
}

// the boot goroutine takes the emulator through the Loading and Starting
// statuses and then becomes the render loop
func (emu *Emulator) boot(stop <-chan struct{}, done chan<- struct{}) {
	defer close(done)

	if !emu.delay(stop) {
		return
	}
	if !emu.advance(emulator.Loading, emulator.Starting) {
		return
	}

	if err := emu.openAudio(); err != nil {
		logger.Log(logger.Allow, logTag, err)
	}

	if !emu.delay(stop) {
		return
	}

	// FinalizeRun() may have moved the emulator past Starting already
	if emu.advance(emulator.Starting, emulator.Ready) {
		emu.env.Caps.Raise(emulator.EventReady)
	}

	emu.render(stop)
}

func (emu *Emulator) openAudio() error {
	emu.soundCrit.Lock()
	snd := emu.sound
	emu.soundCrit.Unlock()

	format, sample := snd.format()
	if err := emu.env.Audio.Open(format, sample); err != nil {
		return fmt.Errorf("testcard: audio: %w", err)
	}
	emu.env.Audio.SetWriteCallback(emu.writeAudio)
	emu.env.Audio.SetStateCallback(func(state emulator.AudioState) {
		logger.Logf(logger.Allow, logTag, "audio state: %d", state)
	})

	emu.crit.Lock()
	emu.audioOpen = true
	running := emu.status == emulator.Running
	emu.crit.Unlock()

	if running {
		emu.env.Audio.Play()
	}
	return nil
}

func (emu *Emulator) writeAudio(buf []byte) int {
	emu.soundCrit.Lock()
	defer emu.soundCrit.Unlock()
	if emu.sound == nil {
		return 0
	}
	return emu.sound.fill(buf)
}

// wait blocks until the emulator is in the Running status. returns false if
// the emulator is stopping
func (emu *Emulator) wait() bool {
	emu.crit.Lock()
	defer emu.crit.Unlock()
	for emu.status != emulator.Running && !emu.stopping {
		emu.cond.Wait()
	}
	return !emu.stopping
}

// Status implements the emulator.Emulator interface.
func (emu *Emulator) Status() emulator.Status {
	emu.crit.Lock()
	defer emu.crit.Unlock()
	return emu.status
}

// IsRunning implements the emulator.Emulator interface.
func (emu *Emulator) IsRunning() bool {
	return emu.Status() == emulator.Running
}

// IsPaused implements the emulator.Emulator interface.
func (emu *Emulator) IsPaused() bool {
	s := emu.Status()
	return s == emulator.Paused || s == emulator.Frozen
}

// change the status and play or pause the audio. the event is raised after
// the lock has been released. returns false if the emulator was not in one
// of the from statuses
func (emu *Emulator) transition(to emulator.Status, ev emulator.Event, from ...emulator.Status) bool {
	emu.crit.Lock()
	ok := false
	for _, s := range from {
		if emu.status == s {
			ok = true
			break // for loop
		}
	}
	if !ok || emu.stopping {
		emu.crit.Unlock()
		return false
	}
	emu.setStatus(to)
	audioOpen := emu.audioOpen
	emu.crit.Unlock()

	if audioOpen {
		if to == emulator.Running {
			emu.env.Audio.Play()
		} else {
			emu.env.Audio.Pause()
		}
	}

	emu.env.Caps.Raise(ev)
	return true
}

// Run implements the emulator.Emulator interface.
func (emu *Emulator) Run() {
	emu.transition(emulator.Running, emulator.EventRun, emulator.Ready)
}

// Pause implements the emulator.Emulator interface.
func (emu *Emulator) Pause() {
	emu.transition(emulator.Paused, emulator.EventPause, emulator.Running)
}

// Resume implements the emulator.Emulator interface.
func (emu *Emulator) Resume() {
	emu.transition(emulator.Running, emulator.EventResume, emulator.Paused, emulator.Frozen)
}

// FinalizeRun implements the emulator.Emulator interface.
func (emu *Emulator) FinalizeRun() {
	if emu.advance(emulator.Starting, emulator.Ready) {
		emu.env.Caps.Raise(emulator.EventReady)
	}
	emu.Run()
}

// Restart implements the emulator.Emulator interface. The pattern and the
// soundtrack start again from the beginning.
func (emu *Emulator) Restart() error {
	emu.crit.Lock()
	booted := emu.status != emulator.Stopped && !emu.stopping
	emu.crit.Unlock()

	if !booted {
		return curated.Errorf(NotBooted)
	}

	emu.frame.Store(0)

	emu.soundCrit.Lock()
	if emu.sound != nil {
		emu.sound.rewind()
	}
	emu.soundCrit.Unlock()

	logger.Log(logger.Allow, logTag, "restarted")
	return nil
}

// Shutdown implements the emulator.Emulator interface. Blocks until the
// render loop has stopped.
func (emu *Emulator) Shutdown() {
	emu.crit.Lock()
	if emu.shutdown {
		emu.crit.Unlock()
		return
	}
	emu.shutdown = true
	emu.stopping = true
	stop, done := emu.stop, emu.done
	booted := emu.status != emulator.Stopped
	audioOpen := emu.audioOpen
	emu.audioOpen = false
	emu.cond.Broadcast()
	emu.crit.Unlock()

	if stop != nil {
		close(stop)
		<-done
	}

	if audioOpen {
		emu.env.Audio.Close()
	}

	emu.crit.Lock()
	emu.setStatus(emulator.Stopped)
	emu.crit.Unlock()

	if booted {
		emu.env.Caps.Raise(emulator.EventStop)
	}

	logger.Log(logger.Allow, logTag, "shutdown")
}
