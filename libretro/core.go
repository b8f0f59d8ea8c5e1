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

package libretro

import (
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/jetsetilly/retrobridge/audio"
	"github.com/jetsetilly/retrobridge/contextpool"
	"github.com/jetsetilly/retrobridge/coreopts"
	"github.com/jetsetilly/retrobridge/emulator"
	"github.com/jetsetilly/retrobridge/environment"
	"github.com/jetsetilly/retrobridge/govern"
	"github.com/jetsetilly/retrobridge/gpu"
	"github.com/jetsetilly/retrobridge/gpu/gl32"
	"github.com/jetsetilly/retrobridge/input"
	"github.com/jetsetilly/retrobridge/logger"
	"github.com/jetsetilly/retrobridge/notifications"
	"github.com/jetsetilly/retrobridge/paths"
	"github.com/jetsetilly/retrobridge/present"
	"github.com/jetsetilly/retrobridge/testcard"
	"github.com/jetsetilly/retrobridge/version"
)

const logTag = "libretro"

// APIVersion is the version of the plugin API implemented by the core.
const APIVersion = 1

// Extensions of the content the core accepts.
const Extensions = "bin|self|elf|pkg|iso|mp3"

// Boot waits for the emulator to reach a usable status.
const (
	DefaultBootTimeout = 30 * time.Second
	DefaultBootPoll    = 100 * time.Millisecond
)

// the number of frames a message is shown on screen
const messageFrames = 180

// Factory creates the emulator for a session.
type Factory func(env *environment.Environment) emulator.Emulator

// Config is the platform specific part of the core.
type Config struct {
	// Platform creates the context platform once the host's context is
	// ready. It is called with the host's context current
	Platform func() (contextpool.Platform, error)

	// LoadGL returns the GL implementation. The default is gl32.New()
	LoadGL func(procAddr gl32.ProcAddrFunc) (gpu.GL, error)

	// Factory creates the emulator. The default is the test card
	Factory Factory

	// AudioTap receives a copy of all audio given to the host
	AudioTap audio.Sink
}

// Core is the plugin core.
type Core struct {
	cfg Config

	env          Environment
	hostLogger   LogFunc
	videoRefresh VideoRefreshFunc
	audioSample  AudioSampleFunc
	audioBatch   AudioSampleBatchFunc
	inputPoll    InputPollFunc
	inputState   InputStateFunc

	initialised bool
	systemDir   string
	saveDir     string
	emulatorDir string
	logFile     *os.File

	options *coreopts.Options
	poller  *input.Poller
	pads    *input.PadHandler

	canDupe bool
	hw      *HWRender
	session *Session

	// messages for the host are queued because notices can be raised from
	// any thread. they are delivered on the host's thread
	msgCrit  sync.Mutex
	messages []string

	// how long boot waits for the emulator to become usable and how often it
	// checks
	BootTimeout time.Duration
	BootPoll    time.Duration

	// OnBoot is called after content has been booted successfully
	OnBoot func(s *Session)
}

// NewCore is the preferred method of initialisation for the Core type.
func NewCore(cfg Config) *Core {
	if cfg.LoadGL == nil {
		cfg.LoadGL = gl32.New
	}
	if cfg.Factory == nil {
		cfg.Factory = func(env *environment.Environment) emulator.Emulator {
			return testcard.NewEmulator(env)
		}
	}
	if cfg.Platform == nil {
		cfg.Platform = func() (contextpool.Platform, error) {
			return nil, fmt.Errorf("libretro: no context platform")
		}
	}

	c := &Core{
		cfg:         cfg,
		options:     coreopts.NewOptions(),
		poller:      input.NewPoller(),
		BootTimeout: DefaultBootTimeout,
		BootPoll:    DefaultBootPoll,
	}
	c.pads = input.NewPadHandler(c.poller)

	return c
}

// Options returns the core options.
func (c *Core) Options() *coreopts.Options {
	return c.options
}

// Session returns the current session. Nil if no content is loaded.
func (c *Core) Session() *Session {
	return c.session
}

// State returns the lifecycle state.
func (c *Core) State() govern.State {
	return c.session.State()
}

// EmulatorDir returns the emulator's directory in the host's system
// directory. Empty if the host did not supply a system directory.
func (c *Core) EmulatorDir() string {
	return c.emulatorDir
}

// SetEnvironment registers the host environment. The core's variables,
// input descriptors and controller information are given to the host.
func (c *Core) SetEnvironment(env Environment) {
	c.env = env

	if log, ok := env.GetLogInterface(); ok {
		c.hostLogger = log
	}
	c.updateEcho()

	env.SetVariables(coreopts.Variables())
	env.SetSupportNoGame(false)
	env.SetInputDescriptors(input.Descriptors())
	env.SetControllerInfo(input.ControllerInfo())

	bitmasks := env.GetInputBitmasks()
	c.poller.SetBitmaskSupported(bitmasks)
	logger.Logf(logger.Allow, logTag, "input bitmasks supported: %v", bitmasks)

	c.options.Apply(env)
}

// SetVideoRefresh registers the video refresh callback.
func (c *Core) SetVideoRefresh(f VideoRefreshFunc) {
	c.videoRefresh = f
}

// SetAudioSample registers the single frame audio callback. It is used only
// if no batch callback is registered.
func (c *Core) SetAudioSample(f AudioSampleFunc) {
	c.audioSample = f
}

// SetAudioSampleBatch registers the audio batch callback.
func (c *Core) SetAudioSampleBatch(f AudioSampleBatchFunc) {
	c.audioBatch = f
}

// SetInputPoll registers the input poll callback.
func (c *Core) SetInputPoll(f InputPollFunc) {
	c.inputPoll = f
}

// SetInputState registers the input state callback.
func (c *Core) SetInputState(f InputStateFunc) {
	c.inputState = f
}

// updateEcho sends the central log to the host's log and to the log file
func (c *Core) updateEcho() {
	var w []io.Writer
	if c.hostLogger != nil {
		w = append(w, hostLog{log: c.hostLogger})
	}
	if c.logFile != nil {
		w = append(w, c.logFile)
	}

	switch len(w) {
	case 0:
		logger.SetEcho(nil, false)
	case 1:
		logger.SetEcho(w[0], false)
	default:
		logger.SetEcho(io.MultiWriter(w...), false)
	}
}

// Init reads the host's directories and opens the detailed log file. Calling
// Init() more than once has no effect.
func (c *Core) Init() {
	if c.initialised {
		return
	}
	c.initialised = true

	if c.env != nil {
		if dir, ok := c.env.GetSystemDirectory(); ok && dir != "" {
			c.systemDir = dir
			c.emulatorDir = paths.EmulatorDir(dir)
		}
		if dir, ok := c.env.GetSaveDirectory(); ok && dir != "" {
			c.saveDir = dir
			f, err := os.Create(paths.DetailedLogPath(dir))
			if err != nil {
				logger.Logf(logger.Allow, logTag, "detailed log: %v", err)
			} else {
				c.logFile = f
				c.updateEcho()
			}
		}
	}

	v, rev, _ := version.Version()
	logger.Logf(logger.Allow, logTag, "%s %s (%s %s)", version.ApplicationName, version.CoreVersion, v, rev)
	logger.Logf(logger.Allow, logTag, "system directory: %q", c.systemDir)
	logger.Logf(logger.Allow, logTag, "save directory: %q", c.saveDir)
	if c.emulatorDir != "" {
		logger.Logf(logger.Allow, logTag, "emulator directory: %q", c.emulatorDir)
	}
}

// Deinit unloads any content and closes the log file.
func (c *Core) Deinit() {
	c.UnloadGame()

	if c.logFile != nil {
		logger.Log(logger.Allow, logTag, "closing detailed log")
		logFile := c.logFile
		c.logFile = nil
		c.updateEcho()
		if err := logFile.Close(); err != nil {
			logger.Logf(logger.Allow, logTag, "detailed log: %v", err)
		}
	}

	c.initialised = false
}

// APIVersion returns the version of the plugin API.
func (c *Core) APIVersion() uint {
	return APIVersion
}

// SystemInfo returns the description of the core.
func (c *Core) SystemInfo() SystemInfo {
	return SystemInfo{
		Name:         version.ApplicationName,
		Version:      version.CoreVersion,
		Extensions:   Extensions,
		NeedFullpath: true,
		BlockExtract: true,
	}
}

// SystemAVInfo returns the audio and video information.
func (c *Core) SystemAVInfo() SystemAVInfo {
	return SystemAVInfo{
		Geometry: GameGeometry{
			BaseWidth:   present.NominalWidth,
			BaseHeight:  present.NominalHeight,
			MaxWidth:    3840,
			MaxHeight:   2160,
			AspectRatio: 16.0 / 9.0,
		},
		Timing: SystemTiming{
			FPS:        60,
			SampleRate: testcard.ToneRate,
		},
	}
}

// SetControllerPortDevice changes the device connected to the port.
func (c *Core) SetControllerPortDevice(port uint, device uint) {
	c.poller.SetController(port, device)
}

// applyOptions reads the variables from the host. options that can change
// while content is running take effect immediately
func (c *Core) applyOptions() {
	if c.env == nil {
		return
	}
	c.options.Apply(c.env)

	if s := c.session; s != nil {
		if n := c.options.FlipCadenceFor(s.Renderer); n != s.Signal.Cadence() {
			s.Signal.SetCadence(n)
		}
		if s.Fence != nil {
			s.Fence.SetTimeout(c.options.FenceTimeoutDuration())
		}
	}
}

// Notify implements the notifications.Notify interface. Notices that the
// user should see are shown on screen the next time the host calls Run() or
// another entry point that delivers messages.
func (c *Core) Notify(notice notifications.Notice, args ...any) error {
	msg := notice.Message(args...)
	logger.Logf(logger.Allow, logTag, "notice: %s", msg)

	switch notice {
	case notifications.NotifyBootFailed, notifications.NotifyFirmwareMissing,
		notifications.NotifyNoHardwareContext, notifications.NotifyMessage:
		c.msgCrit.Lock()
		c.messages = append(c.messages, msg)
		c.msgCrit.Unlock()
	}

	return nil
}

// deliver queued messages to the host. must be called on the host's thread
func (c *Core) deliverMessages() {
	c.msgCrit.Lock()
	msgs := c.messages
	c.messages = nil
	c.msgCrit.Unlock()

	if c.env == nil {
		return
	}
	for _, m := range msgs {
		c.env.SetMessage(m, messageFrames)
	}
}

// the capabilities given to the emulator
func (c *Core) capabilities() *emulator.Capabilities {
	return &emulator.Capabilities{
		MsgDialog: func(kind emulator.DialogKind, text string) emulator.DialogResult {
			_ = c.Notify(notifications.NotifyMessage, text)
			if kind == emulator.DialogYesNo {
				return emulator.DialogYes
			}
			return emulator.DialogOK
		},
		OnMissingFirmware: func() {
			_ = c.Notify(notifications.NotifyFirmwareMissing)
		},
		OnStop: func() {
			logger.Log(logger.Allow, logTag, "emulator stopped")
		},
	}
}
