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

package testcard_test

import (
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/jetsetilly/retrobridge/audio"
	"github.com/jetsetilly/retrobridge/contextpool"
	"github.com/jetsetilly/retrobridge/curated"
	"github.com/jetsetilly/retrobridge/emulator"
	"github.com/jetsetilly/retrobridge/environment"
	"github.com/jetsetilly/retrobridge/fence"
	"github.com/jetsetilly/retrobridge/framebuffer"
	"github.com/jetsetilly/retrobridge/framesignal"
	"github.com/jetsetilly/retrobridge/gpu"
	"github.com/jetsetilly/retrobridge/gpu/fakegl"
	"github.com/jetsetilly/retrobridge/input"
	"github.com/jetsetilly/retrobridge/surface"
	"github.com/jetsetilly/retrobridge/test"
	"github.com/jetsetilly/retrobridge/testcard"
)

type platform struct {
	crit    sync.Mutex
	next    gpu.Context
	current gpu.Context
	deleted int
}

func (p *platform) Main() gpu.Context                    { return 1 }
func (p *platform) CreateUnshared() (gpu.Context, error) { return p.CreateShared() }

func (p *platform) CreateShared() (gpu.Context, error) {
	p.crit.Lock()
	defer p.crit.Unlock()
	p.next++
	return p.next + 1, nil
}

func (p *platform) MakeCurrent(ctx gpu.Context) error {
	p.crit.Lock()
	defer p.crit.Unlock()
	p.current = ctx
	return nil
}

func (p *platform) Delete(ctx gpu.Context) error {
	p.crit.Lock()
	defer p.crit.Unlock()
	p.deleted++
	return nil
}

// events records the lifecycle events raised by the emulator
type events struct {
	crit sync.Mutex
	list []emulator.Event
}

func (e *events) add(ev emulator.Event) func() {
	return func() {
		e.crit.Lock()
		defer e.crit.Unlock()
		e.list = append(e.list, ev)
	}
}

func (e *events) get() []emulator.Event {
	e.crit.Lock()
	defer e.crit.Unlock()
	return append([]emulator.Event{}, e.list...)
}

type rig struct {
	emu     *testcard.Emulator
	env     *environment.Environment
	backend *audio.Backend
	events  *events

	gl     *fakegl.GL
	plt    *platform
	pool   *contextpool.Pool
	signal *framesignal.Signal
}

func newRig(renderer emulator.Renderer) *rig {
	r := &rig{
		backend: audio.NewBackend(),
		events:  &events{},
	}

	cfg := emulator.DefaultConfig()
	cfg.Renderer = renderer
	cfg.Width = 320
	cfg.Height = 240

	r.env = environment.NewEnvironment("", cfg)
	r.env.Random.ZeroSeed = true
	r.env.Audio = r.backend
	r.env.Input = input.NewPadHandler(input.NewPoller())
	r.env.Caps = &emulator.Capabilities{
		OnReady:  r.events.add(emulator.EventReady),
		OnRun:    r.events.add(emulator.EventRun),
		OnPause:  r.events.add(emulator.EventPause),
		OnResume: r.events.add(emulator.EventResume),
		OnStop:   r.events.add(emulator.EventStop),
	}

	if renderer == emulator.OpenGL {
		r.gl = fakegl.New()
		r.plt = &platform{}
		r.pool = contextpool.NewPool(r.plt)
		r.signal = &framesignal.Signal{}
		r.env.Surface = surface.NewSurface(surface.Resources{
			GL:       r.gl,
			Platform: r.plt,
			Pool:     r.pool,
			Fence:    fence.NewTracker(r.gl),
			Signal:   r.signal,
			Shared:   framebuffer.NewShared(r.gl),
		})
	}

	r.emu = testcard.NewEmulator(r.env)
	r.emu.Delay = time.Millisecond
	return r
}

func waitFor(t *testing.T, what string, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(5 * time.Second)
	for !cond() {
		if time.Now().After(deadline) {
			t.Fatalf("timed out waiting for %s", what)
		}
		time.Sleep(time.Millisecond)
	}
}

func content(t *testing.T, name string, data []byte) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), name)
	test.DemandSuccess(t, os.WriteFile(p, data, 0o600))
	return p
}

func TestImplementsEmulator(t *testing.T) {
	r := newRig(emulator.Null)
	test.DemandImplements[emulator.Emulator](t, r.emu)

	info := r.emu.Info()
	test.ExpectInequality(t, info.Name, "")
	test.ExpectEquality(t, len(info.Extensions), 6)
}

func TestBootValidation(t *testing.T) {
	r := newRig(emulator.Null)
	dir := t.TempDir()

	test.ExpectEquality(t, r.emu.Boot(""), emulator.NothingToBoot)
	test.ExpectEquality(t, r.emu.Boot(filepath.Join(dir, "missing.bin")), emulator.InvalidFileOrFolder)
	test.ExpectEquality(t, r.emu.Boot(dir), emulator.InvalidBDVDFolder)
	test.ExpectEquality(t, r.emu.Boot(content(t, "empty.bin", nil)), emulator.NothingToBoot)

	// not an mp3 file in spite of the name
	test.ExpectEquality(t, r.emu.Boot(content(t, "bad.mp3", make([]byte, 100))), emulator.UnsupportedDiscType)

	// nothing has been booted
	test.ExpectEquality(t, r.emu.Status(), emulator.Stopped)
	err := r.emu.Restart()
	test.ExpectFailure(t, err)
	test.ExpectSuccess(t, curated.Is(err, testcard.NotBooted))
}

func TestMissingServices(t *testing.T) {
	r := newRig(emulator.OpenGL)
	r.env.Surface = nil
	test.ExpectEquality(t, r.emu.Boot(content(t, "game.bin", []byte("content"))), emulator.GenericError)
}

func TestLifecycle(t *testing.T) {
	r := newRig(emulator.Null)
	path := content(t, "game.bin", []byte("test card content"))

	test.DemandEquality(t, r.emu.Boot(path), emulator.NoErrors)
	test.ExpectEquality(t, r.emu.Path(), path)
	test.ExpectEquality(t, r.emu.Boot(path), emulator.StillRunning)

	waitFor(t, "ready", func() bool { return r.emu.Status() == emulator.Ready })
	test.ExpectFailure(t, r.emu.IsRunning())

	r.emu.Run()
	test.ExpectSuccess(t, r.emu.IsRunning())
	test.ExpectSuccess(t, r.backend.IsPlaying())
	waitFor(t, "frames", func() bool { return r.emu.Frame() > 2 })

	r.emu.Pause()
	test.ExpectSuccess(t, r.emu.IsPaused())
	test.ExpectFailure(t, r.backend.IsPlaying())

	// pausing twice changes nothing
	r.emu.Pause()

	r.emu.Resume()
	test.ExpectSuccess(t, r.emu.IsRunning())

	test.ExpectSuccess(t, r.emu.Restart())

	r.emu.Shutdown()
	test.ExpectEquality(t, r.emu.Status(), emulator.Stopped)
	test.ExpectEquality(t, r.emu.Boot(path), emulator.CurrentlyRestricted)

	ev := r.events.get()
	test.DemandEquality(t, len(ev), 5)
	test.ExpectEquality(t, ev[0], emulator.EventReady)
	test.ExpectEquality(t, ev[1], emulator.EventRun)
	test.ExpectEquality(t, ev[2], emulator.EventPause)
	test.ExpectEquality(t, ev[3], emulator.EventResume)
	test.ExpectEquality(t, ev[4], emulator.EventStop)

	// shutting down twice is safe
	r.emu.Shutdown()
}

func TestFinalizeRun(t *testing.T) {
	r := newRig(emulator.Null)
	r.emu.Delay = time.Hour
	defer r.emu.Shutdown()

	test.DemandEquality(t, r.emu.Boot(content(t, "game.bin", []byte("content"))), emulator.NoErrors)
	test.ExpectEquality(t, r.emu.Status(), emulator.Loading)

	// running is not possible while loading
	r.emu.Run()
	test.ExpectEquality(t, r.emu.Status(), emulator.Loading)
	r.emu.FinalizeRun()
	test.ExpectEquality(t, r.emu.Status(), emulator.Loading)
}

func TestShutdownWhileLoading(t *testing.T) {
	r := newRig(emulator.Null)
	r.emu.Delay = time.Hour

	test.DemandEquality(t, r.emu.Boot(content(t, "game.bin", []byte("content"))), emulator.NoErrors)
	r.emu.Shutdown()
	test.ExpectEquality(t, r.emu.Status(), emulator.Stopped)

	// the emulator never became ready
	ev := r.events.get()
	test.DemandEquality(t, len(ev), 1)
	test.ExpectEquality(t, ev[0], emulator.EventStop)
}

func TestAudio(t *testing.T) {
	r := newRig(emulator.Null)
	defer r.emu.Shutdown()

	test.DemandEquality(t, r.emu.Boot(content(t, "game.bin", []byte("content"))), emulator.NoErrors)
	waitFor(t, "ready", func() bool { return r.emu.Status() == emulator.Ready })

	test.ExpectEquality(t, r.backend.Format().SampleRate, testcard.ToneRate)
	test.ExpectEquality(t, r.backend.Format().NumChannels, 2)

	dst := make([]int16, audio.BatchFrames*2)

	// nothing is produced until the emulator is running
	test.ExpectEquality(t, r.backend.GetSamples(dst, audio.BatchFrames), 0)

	r.emu.Run()
	frames := r.backend.GetSamples(dst, audio.BatchFrames)
	test.ExpectEquality(t, frames, audio.BatchFrames)

	// the tone is not silent and is the same in both channels
	var loud bool
	for i := range frames {
		test.ExpectEquality(t, dst[i*2], dst[i*2+1])
		loud = loud || dst[i*2] > 1000
	}
	test.ExpectSuccess(t, loud)
}

func TestOpenGL(t *testing.T) {
	r := newRig(emulator.OpenGL)

	test.DemandEquality(t, r.emu.Boot(content(t, "game.bin", []byte("content"))), emulator.NoErrors)
	waitFor(t, "ready", func() bool { return r.emu.Status() == emulator.Ready })
	r.emu.Run()

	waitFor(t, "frames", func() bool {
		produced, _ := r.signal.Counters()
		return produced > 2
	})
	test.ExpectSuccess(t, r.signal.HasNewFrame())
	test.ExpectSuccess(t, r.gl.Fills() > 0)

	// the render target was sized to the configuration
	w, h := r.env.Surface.ClientWidth(), r.env.Surface.ClientHeight()
	test.ExpectEquality(t, w, int32(320))
	test.ExpectEquality(t, h, int32(240))

	test.ExpectEquality(t, r.pool.Stats().InUse, 1)

	r.emu.Shutdown()

	// the render context has been returned
	test.ExpectEquality(t, r.pool.Stats().InUse, 0)
	r.plt.crit.Lock()
	test.ExpectEquality(t, r.plt.current, gpu.Context(0))
	test.ExpectEquality(t, r.plt.deleted, 1)
	r.plt.crit.Unlock()
}

func TestPausedNoFrames(t *testing.T) {
	r := newRig(emulator.OpenGL)
	defer r.emu.Shutdown()

	test.DemandEquality(t, r.emu.Boot(content(t, "game.bin", []byte("content"))), emulator.NoErrors)
	waitFor(t, "ready", func() bool { return r.emu.Status() == emulator.Ready })

	// no frames until the emulator is running
	time.Sleep(20 * time.Millisecond)
	produced, _ := r.signal.Counters()
	test.ExpectEquality(t, produced, uint64(0))

	r.emu.Run()
	waitFor(t, "frames", func() bool {
		produced, _ := r.signal.Counters()
		return produced > 0
	})

	r.emu.Pause()

	// allow a frame that was already being drawn to complete
	time.Sleep(50 * time.Millisecond)
	before, _ := r.signal.Counters()
	time.Sleep(50 * time.Millisecond)
	after, _ := r.signal.Counters()
	test.ExpectEquality(t, after, before)
}
