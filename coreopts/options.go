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

package coreopts

import (
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/jetsetilly/retrobridge/emulator"
	"github.com/jetsetilly/retrobridge/logger"
	"github.com/jetsetilly/retrobridge/prefs"
)

// Host is the part of the host environment that supplies variable values.
type Host interface {
	GetVariable(key string) (string, bool)
}

// Options is the current value of every variable.
type Options struct {
	Renderer           prefs.String
	Resolution         prefs.String
	FrameLimit         prefs.String
	CPUDecoder         prefs.String
	CoprocessorDecoder prefs.String
	FenceTimeout       prefs.String
	FlipCadence        prefs.String
	ContextPool        prefs.String

	crit         sync.Mutex
	config       emulator.Config
	fenceTimeout time.Duration
	flipCadence  int
	contextPool  int
}

// NewOptions is the preferred method of initialisation for the Options type.
// All variables are set to their default value.
func NewOptions() *Options {
	o := &Options{
		config: emulator.DefaultConfig(),
	}

	o.hook(&o.Renderer, KeyRenderer, func(s string) error {
		r, ok := emulator.ParseRenderer(s)
		if !ok {
			return fmt.Errorf("coreopts: unknown renderer: %s", s)
		}
		o.config.Renderer = r
		return nil
	})

	o.hook(&o.Resolution, KeyResolution, func(s string) error {
		var w, h int
		if _, err := fmt.Sscanf(s, "%dx%d", &w, &h); err != nil {
			return fmt.Errorf("coreopts: resolution: %w", err)
		}
		o.config.Width = w
		o.config.Height = h
		return nil
	})

	o.hook(&o.FrameLimit, KeyFrameLimit, func(s string) error {
		// the host controls presentation so vsync is always off and the
		// internal limiter is off unless a specific rate is chosen
		o.config.VSync = false
		switch s {
		case "Auto", "Off":
			o.config.FrameLimit = 0
		default:
			fps, err := strconv.ParseFloat(s, 64)
			if err != nil {
				return fmt.Errorf("coreopts: frame limit: %w", err)
			}
			o.config.FrameLimit = fps
		}
		return nil
	})

	o.hook(&o.CPUDecoder, KeyCPUDecoder, func(s string) error {
		o.config.CPUDecoder = s
		return nil
	})

	o.hook(&o.CoprocessorDecoder, KeyCoprocessorDecoder, func(s string) error {
		o.config.CoprocessorDecoder = s
		return nil
	})

	o.hook(&o.FenceTimeout, KeyFenceTimeout, func(s string) error {
		ms, err := strconv.Atoi(s)
		if err != nil {
			return fmt.Errorf("coreopts: fence timeout: %w", err)
		}
		o.fenceTimeout = time.Duration(ms) * time.Millisecond
		return nil
	})

	o.hook(&o.FlipCadence, KeyFlipCadence, func(s string) error {
		if s == "Auto" {
			o.flipCadence = 0
			return nil
		}
		n, err := strconv.Atoi(s)
		if err != nil {
			return fmt.Errorf("coreopts: flip cadence: %w", err)
		}
		o.flipCadence = n
		return nil
	})

	o.hook(&o.ContextPool, KeyContextPool, func(s string) error {
		n, err := strconv.Atoi(s)
		if err != nil {
			return fmt.Errorf("coreopts: context pool: %w", err)
		}
		o.contextPool = n
		return nil
	})

	for _, v := range variables {
		p := o.pref(v.Key)
		p.SetDefault(v.Default())
		_ = p.Reset()
	}

	return o
}

// hook installs a pre hook that rejects values not listed for the variable
// and a post hook that calls apply with the lock held
func (o *Options) hook(p *prefs.String, key string, apply func(string) error) {
	v, _ := Lookup(key)
	p.SetHookPre(func(value prefs.Value) error {
		s, _ := value.(string)
		if !v.Valid(s) {
			return fmt.Errorf("coreopts: %s: invalid value: %s", key, s)
		}
		return nil
	})
	p.SetHookPost(func(value prefs.Value) error {
		o.crit.Lock()
		defer o.crit.Unlock()
		return apply(value.(string))
	})
}

func (o *Options) pref(key string) *prefs.String {
	switch key {
	case KeyRenderer:
		return &o.Renderer
	case KeyResolution:
		return &o.Resolution
	case KeyFrameLimit:
		return &o.FrameLimit
	case KeyCPUDecoder:
		return &o.CPUDecoder
	case KeyCoprocessorDecoder:
		return &o.CoprocessorDecoder
	case KeyFenceTimeout:
		return &o.FenceTimeout
	case KeyFlipCadence:
		return &o.FlipCadence
	case KeyContextPool:
		return &o.ContextPool
	}
	return nil
}

// Set the variable to the value.
func (o *Options) Set(key string, value string) error {
	p := o.pref(key)
	if p == nil {
		return fmt.Errorf("coreopts: unknown variable: %s", key)
	}
	return p.Set(value)
}

// Get returns the current value of the variable.
func (o *Options) Get(key string) string {
	p := o.pref(key)
	if p == nil {
		return ""
	}
	return p.String()
}

// Apply reads every variable from the host. Variables the host does not
// supply are set to their default. Values that are not valid for the
// variable are replaced by the default.
func (o *Options) Apply(host Host) {
	for _, v := range variables {
		value, ok := host.GetVariable(v.Key)
		if !ok {
			value = v.Default()
		}
		if err := o.Set(v.Key, value); err != nil {
			logger.Logf(logger.Allow, "coreopts", "%v: using %s", err, v.Default())
			_ = o.Set(v.Key, v.Default())
		}
	}
	logger.Logf(logger.Allow, "coreopts", "applied: %s", o)
}

// AddToDisk adds every variable to the prefs.Disk.
func (o *Options) AddToDisk(dsk *prefs.Disk) error {
	for _, v := range variables {
		if err := dsk.Add(v.Key, o.pref(v.Key)); err != nil {
			return err
		}
	}
	return nil
}

// Config returns the emulator configuration for the current values.
func (o *Options) Config() emulator.Config {
	o.crit.Lock()
	defer o.crit.Unlock()
	return o.config
}

// FenceTimeoutDuration returns the amount of time to wait on a frame fence.
func (o *Options) FenceTimeoutDuration() time.Duration {
	o.crit.Lock()
	defer o.crit.Unlock()
	return o.fenceTimeout
}

// FlipCadenceFor returns the number of flips per presented frame. If the
// variable is Auto the renderer's own value is used.
func (o *Options) FlipCadenceFor(r emulator.Renderer) int {
	o.crit.Lock()
	defer o.crit.Unlock()
	if o.flipCadence == 0 {
		return r.FlipsPerFrame()
	}
	return o.flipCadence
}

// ContextPoolSize returns the number of contexts to precreate.
func (o *Options) ContextPoolSize() int {
	o.crit.Lock()
	defer o.crit.Unlock()
	return o.contextPool
}

func (o *Options) String() string {
	s := strings.Builder{}
	for i, v := range variables {
		if i > 0 {
			s.WriteString(" ")
		}
		s.WriteString(fmt.Sprintf("%s=%s", strings.TrimPrefix(v.Key, "retrobridge_"), o.Get(v.Key)))
	}
	return s.String()
}
