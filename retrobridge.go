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

package main

import (
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"

	"github.com/bradleyjkemp/memviz"

	"github.com/jetsetilly/retrobridge/coreopts"
	"github.com/jetsetilly/retrobridge/input"
	"github.com/jetsetilly/retrobridge/libretro"
	"github.com/jetsetilly/retrobridge/logger"
	"github.com/jetsetilly/retrobridge/metrics"
	"github.com/jetsetilly/retrobridge/modalflag"
	"github.com/jetsetilly/retrobridge/paths"
	"github.com/jetsetilly/retrobridge/prefs"
	"github.com/jetsetilly/retrobridge/sdlhost"
	"github.com/jetsetilly/retrobridge/statsview"
	"github.com/jetsetilly/retrobridge/version"
	"github.com/jetsetilly/retrobridge/wavwriter"
)

type stateReq = string

const (
	// main thread should end as soon as possible.
	//
	// takes optional int argument, indicating the status code.
	reqQuit stateReq = "QUIT"

	// reset interrupt signal handling. used when the mode has its own
	// handler.
	//
	// takes no arguments.
	reqNoIntSig stateReq = "NOINTSIG"
)

type stateRequest struct {
	req  stateReq
	args any
}

// communication between the main() function and the launch() function. SDL
// requires that the window and the main GL context are serviced on the main
// thread
type mainSync struct {
	state chan stateRequest

	// functions sent on this channel are run on the main thread. the
	// function is responsible for signalling its own completion
	run chan func()
}

// #mainthread
func main() {
	sync := &mainSync{
		state: make(chan stateRequest),
		run:   make(chan func()),
	}

	exitVal := 0

	// #ctrlc default handler. can be turned off with reqNoIntSig request
	intChan := make(chan os.Signal, 1)
	signal.Notify(intChan, os.Interrupt)

	go launch(sync, os.Args[1:])

	done := false
	for !done {
		select {
		case <-intChan:
			fmt.Println("\r")
			done = true

		case f := <-sync.run:
			f()

		case state := <-sync.state:
			switch state.req {
			case reqQuit:
				done = true
				if state.args != nil {
					if v, ok := state.args.(int); ok {
						exitVal = v
					} else {
						panic(fmt.Sprintf("cannot convert %s arguments into int", reqQuit))
					}
				}

			case reqNoIntSig:
				signal.Reset(os.Interrupt)
				if state.args != nil {
					panic(fmt.Sprintf("%s does not accept any arguments", reqNoIntSig))
				}
			}
		}
	}

	fmt.Print("\r")
	os.Exit(exitVal)
}

// launch is called from main() as a goroutine. uses mainSync instance to run
// the host on the main thread and to quit.
func launch(sync *mainSync, args []string) {
	err := dispatch(os.Stdout, sync, args)
	switch err {
	case nil:
		sync.state <- stateRequest{req: reqQuit}
	case errParse:
		sync.state <- stateRequest{req: reqQuit, args: 10}
	default:
		fmt.Printf("* error: %s\n", err)
		sync.state <- stateRequest{req: reqQuit, args: 20}
	}
}

// parse errors have already been reported
var errParse = fmt.Errorf("parse error")

func dispatch(output io.Writer, sync *mainSync, args []string) error {
	md := &modalflag.Modes{Output: output}
	md.NewArgs(args)
	md.NewMode()
	md.AddSubModes("RUN", "INFO", "VERSION")

	p, err := md.Parse()
	switch p {
	case modalflag.ParseHelp:
		return nil
	case modalflag.ParseError:
		fmt.Fprintf(output, "* error: %v\n", err)
		return errParse
	}

	switch md.Mode() {
	case "RUN":
		err = run(md, sync)
	case "INFO":
		err = info(md)
	case "VERSION":
		err = showVersion(md)
	}

	if err != nil {
		return fmt.Errorf("%s mode: %w", md, err)
	}
	return nil
}

// harnessOptions creates the options and adds them to the prefs file. the
// values in the file are loaded if it exists. the cmdline overrides are of
// the form "key::value; key::value" and take priority over the file
func harnessOptions(pth string, cmdline string) (*coreopts.Options, *prefs.Disk, error) {
	opts := coreopts.NewOptions()

	dsk, err := prefs.NewDisk(pth)
	if err != nil {
		return nil, nil, err
	}
	if err := opts.AddToDisk(dsk); err != nil {
		return nil, nil, err
	}

	if cmdline != "" {
		prefs.PushCommandLineStack(cmdline)
		defer func() {
			if unused := prefs.PopCommandLineStack(); unused != "" {
				logger.Logf(logger.Allow, "harness", "unused options: %s", unused)
			}
		}()
	}

	if err := dsk.Load(true); err != nil {
		return nil, nil, err
	}

	return opts, dsk, nil
}

func run(md *modalflag.Modes, sync *mainSync) error {
	md.NewMode()

	wav := md.AddString("wav", "", "record audio to wav file")
	metricsAddr := md.AddString("metrics", "", "serve prometheus metrics on address (eg. localhost:9100)")
	stats := md.AddBool("statsview", false, fmt.Sprintf("run stats server (%s)", statsview.Address))
	memvizFile := md.AddString("memviz", "", "write a graph of the session to file after the content has loaded")
	optList := md.AddString("opts", "", "core options (eg. \"retrobridge_renderer::null; retrobridge_flip_cadence::2\")")
	saveOpts := md.AddBool("saveopts", false, "save core options for future runs")
	profile := md.AddString("profile", "any", "hardware contexts accepted: any, core, compat")
	maxGL := md.AddString("maxgl", "", "most recent GL version accepted (eg. 3.3)")
	systemDir := md.AddString("system", "", "system directory")
	saveDir := md.AddString("save", "", "save directory")
	frames := md.AddInt("frames", 0, "number of frames to run (0 runs until the window is closed)")
	log := md.AddBool("log", false, "echo debugging log to stdout")

	p, err := md.Parse()
	if err != nil || p != modalflag.ParseContinue {
		return err
	}

	if len(md.RemainingArgs()) != 1 {
		return fmt.Errorf("content file required")
	}

	if *log {
		logger.SetEcho(md.Output, false)
	}

	pth, err := paths.ResourcePath("harness.prefs")
	if err != nil {
		return err
	}
	opts, dsk, err := harnessOptions(pth, *optList)
	if err != nil {
		return err
	}

	env := sdlhost.NewEnvironment(opts)
	env.SystemDir = *systemDir
	env.SaveDir = *saveDir
	env.Profile, err = sdlhost.ParseProfile(*profile)
	if err != nil {
		return err
	}
	if *maxGL != "" {
		if _, err := fmt.Sscanf(*maxGL, "%d.%d", &env.MaxMajor, &env.MaxMinor); err != nil {
			return fmt.Errorf("maxgl: %w", err)
		}
	}
	if *saveOpts {
		if err := dsk.Save(); err != nil {
			return err
		}
	}

	host := sdlhost.NewHost(env)
	cfg := libretro.Config{
		Platform: host.Platform,
	}

	var ww *wavwriter.WavWriter
	if *wav != "" {
		cfg.AudioTap = func(samples []int16, frames int) int {
			return ww.SetAudio(samples, frames)
		}
	}

	core := libretro.NewCore(cfg)

	if *wav != "" {
		ww, err = wavwriter.New(*wav, int(core.SystemAVInfo().Timing.SampleRate))
		if err != nil {
			return err
		}
	}

	host.Attach(core)

	if *metricsAddr != "" {
		go func() {
			mux := http.NewServeMux()
			mux.Handle("/metrics", metrics.Handler())
			if err := http.ListenAndServe(*metricsAddr, mux); err != nil {
				logger.Logf(logger.Allow, "harness", "metrics: %v", err)
			}
		}()
		fmt.Fprintf(md.Output, "metrics available at %s/metrics\n", *metricsAddr)
	}

	if *stats {
		if err := statsview.Launch(md.Output); err != nil {
			return err
		}
	}

	// the host's run loop has its own interrupt handling
	sync.state <- stateRequest{req: reqNoIntSig}
	intChan := make(chan os.Signal, 1)
	signal.Notify(intChan, os.Interrupt)
	defer signal.Stop(intChan)
	go func() {
		for range intChan {
			host.Stop()
		}
	}()

	if *memvizFile != "" {
		core.OnBoot = func(s *libretro.Session) {
			if err := writeMemviz(*memvizFile, s); err != nil {
				logger.Logf(logger.Allow, "harness", "memviz: %v", err)
			}
		}
	}

	type result struct {
		stats sdlhost.Stats
		err   error
	}
	done := make(chan result)
	sync.run <- func() {
		st, err := host.Run(md.GetArg(0), *frames)
		done <- result{stats: st, err: err}
	}
	res := <-done

	fmt.Fprintln(md.Output, res.stats)

	if ww != nil {
		if err := ww.EndMixing(); err != nil {
			return err
		}
	}

	return res.err
}

func writeMemviz(filename string, s *libretro.Session) (rerr error) {
	f, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer func() {
		if err := f.Close(); err != nil && rerr == nil {
			rerr = err
		}
	}()
	memviz.Map(f, s)
	return nil
}

func info(md *modalflag.Modes) error {
	md.NewMode()

	p, err := md.Parse()
	if err != nil || p != modalflag.ParseContinue {
		return err
	}

	env := sdlhost.NewEnvironment(coreopts.NewOptions())
	env.LogOutput = io.Discard

	core := libretro.NewCore(libretro.Config{})
	core.SetEnvironment(env)

	si := core.SystemInfo()
	fmt.Fprintf(md.Output, "%s %s\n", si.Name, si.Version)
	fmt.Fprintf(md.Output, "extensions: %s\n", si.Extensions)

	av := core.SystemAVInfo()
	fmt.Fprintf(md.Output, "geometry: %dx%d (max %dx%d) aspect %.3f\n",
		av.Geometry.BaseWidth, av.Geometry.BaseHeight,
		av.Geometry.MaxWidth, av.Geometry.MaxHeight,
		av.Geometry.AspectRatio)
	fmt.Fprintf(md.Output, "timing: %.2f fps, %.0f Hz\n", av.Timing.FPS, av.Timing.SampleRate)

	fmt.Fprintln(md.Output, "options:")
	for _, v := range env.Definitions() {
		fmt.Fprintf(md.Output, "  %s: %s\n", v.Key, v.Definition())
	}

	fmt.Fprintln(md.Output, "input:")
	for _, d := range env.Descriptors() {
		if d.Port != 0 {
			continue // for loop
		}
		device := "joypad"
		if d.Device == input.DeviceAnalog {
			device = "analog"
		}
		fmt.Fprintf(md.Output, "  %s: %s\n", device, d.Description)
	}

	return nil
}

func showVersion(md *modalflag.Modes) error {
	md.NewMode()

	revision := md.AddBool("revision", false, "display revision information from version control")

	p, err := md.Parse()
	if err != nil || p != modalflag.ParseContinue {
		return err
	}

	v, rev, _ := version.Version()
	fmt.Fprintf(md.Output, "%s %s (%s)\n", version.ApplicationName, version.CoreVersion, v)
	if *revision {
		fmt.Fprintln(md.Output, rev)
	}

	return nil
}
