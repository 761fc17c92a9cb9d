package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/atomicstack/popup-picker/internal/app"
	"github.com/atomicstack/popup-picker/internal/config"
	"github.com/atomicstack/popup-picker/internal/logging"
	"github.com/atomicstack/popup-picker/internal/logging/events"
	"golang.org/x/term"
)

const exitCancelled = 130

func main() {
	runtimeCfg := config.MustLoad()
	logging.Configure(runtimeCfg.Logging.FilePath)
	logging.SetTraceEnabled(runtimeCfg.Logging.Trace)

	tty := collectTTYDetails()
	traceStartup(runtimeCfg, tty)

	runtimeCfg.App.Output = uiOutput(tty)
	result, err := app.Run(runtimeCfg.App)
	switch {
	case errors.Is(err, app.ErrCancelled):
		events.App.Finish("", "", true)
		os.Exit(exitCancelled)
	case err != nil:
		logging.Error(err)
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	events.App.Finish(result.Key, result.Action, false)
	fmt.Fprintln(os.Stdout, formatResult(result))
}

// formatResult renders a pick as the tab separated line printed on stdout.
func formatResult(r app.Result) string {
	key := r.Key
	if len(r.Path) > 0 {
		key = strings.Join(r.Path, "/")
	}
	return key + "\t" + r.Action
}

func traceStartup(cfg config.Config, tty ttyDetails) {
	events.App.Start(startupTracePayload(cfg, tty))
}

// startupTracePayload bundles runtime context for trace logging.
func startupTracePayload(cfg config.Config, tty ttyDetails) map[string]interface{} {
	flags := make(map[string]interface{}, len(cfg.Flags))
	for k, v := range cfg.Flags {
		flags[k] = v
	}
	flags["trace"] = cfg.Logging.Trace
	flags["logFile"] = cfg.Logging.FilePath
	payload := map[string]interface{}{
		"argv":   cfg.Args,
		"flags":  flags,
		"config": cfg,
		"tty":    tty,
	}
	if exe, err := os.Executable(); err == nil {
		payload["executable"] = exe
	} else {
		payload["executableError"] = err.Error()
	}
	if cwd, err := os.Getwd(); err == nil {
		payload["cwd"] = cwd
	} else {
		payload["cwdError"] = err.Error()
	}
	return payload
}

type ttyDetails struct {
	Detected *ttyDetected     `json:"detected,omitempty"`
	Probes   []ttyProbeResult `json:"probes"`
}

type ttyDetected struct {
	Source string `json:"source"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
}

type ttyProbeResult struct {
	Name       string `json:"name"`
	IsTerminal bool   `json:"is_terminal"`
	Width      int    `json:"width,omitempty"`
	Height     int    `json:"height,omitempty"`
	Error      string `json:"error,omitempty"`
}

func (d ttyDetails) terminal(name string) bool {
	for _, probe := range d.Probes {
		if probe.Name == name {
			return probe.IsTerminal
		}
	}
	return false
}

// uiOutput picks where the picker draws. When stdout is captured by a shell
// substitution the UI moves to stderr so only the result reaches the caller.
func uiOutput(tty ttyDetails) io.Writer {
	if tty.terminal("stdout") || !tty.terminal("stderr") {
		return nil
	}
	return os.Stderr
}

// collectTTYDetails inspects standard descriptors for terminal support and dimensions.
func collectTTYDetails() ttyDetails {
	probes := []struct {
		name string
		fd   uintptr
	}{
		{"stdin", os.Stdin.Fd()},
		{"stdout", os.Stdout.Fd()},
		{"stderr", os.Stderr.Fd()},
	}
	results := make([]ttyProbeResult, 0, len(probes))
	var detected *ttyDetected
	for _, probe := range probes {
		entry := ttyProbeResult{Name: probe.name}
		fd := int(probe.fd)
		if fd >= 0 && term.IsTerminal(fd) {
			entry.IsTerminal = true
			if width, height, err := term.GetSize(fd); err == nil {
				entry.Width = width
				entry.Height = height
				if detected == nil {
					detected = &ttyDetected{Source: probe.name, Width: width, Height: height}
				}
			} else {
				entry.Error = err.Error()
			}
		}
		results = append(results, entry)
	}
	return ttyDetails{Detected: detected, Probes: results}
}
