package main

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime/debug"
	"time"

	"soundloop/assets"
	"soundloop/audio"
	"soundloop/config"
	"soundloop/control"
	"soundloop/log"
	"soundloop/shutdown"
	"soundloop/tray"
)

var version = "dev"

func fatal(what string, err error) {
	log.Errorf("%s: %v", what, err)
	log.Close()
	fmt.Fprintf(os.Stderr, "Error %s: %v\n", what, err)
	os.Exit(1)
}

func exit(reason string) {
	log.Shutdown(reason)
	log.Close()
	os.Exit(0)
}

func initLogging() {
	logPath, err := log.ResolveDir()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to resolve log directory: %v\n", err)
		return
	}
	log.SetDir(logPath)

	if err := log.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not init logging: %v\n", err)
		return
	}

	crashPath := filepath.Join(log.Dir(), "crash_log.txt")
	crashFile, err := os.OpenFile(crashPath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err == nil {
		fmt.Fprintf(crashFile, "\n=== Session %s [pid=%d] ===\n", time.Now().Format("2006-01-02 15:04:05"), os.Getpid())
		debug.SetCrashOutput(crashFile, debug.CrashOptions{})
	}
}

func run() {
	initLogging()
	cfg := config.Default()

	ctx, err := audio.NewContext()
	if err != nil {
		fatal("initializing audio context", err)
	}

	p, err := newPlayer(ctx, cfg, assets.Loop)
	if err != nil {
		fatal("initializing playback", err)
	}
	if err := p.start(); err != nil {
		fatal("starting playback", err)
	}

	fmt.Println(p.startupLine(version))
	log.Startup(p.startupInfo(version))
	if audio.IsBluetooth(p.device.DeviceName()) {
		log.Warn("output looks like a Bluetooth device, expect extra latency")
	}

	dispatcher := p.dispatcher(tray.UI{})

	tray.SetPresets(control.Labels(cfg.Presets, p.state.Volume()))
	tray.SetInitialOn(p.state.On())
	tray.OnPreset(p.selectPreset)
	tray.OnToggle(p.toggle)

	shutdown.OnSignal(func(sig os.Signal) {
		exit("signal " + sig.String())
	})

	tray.Run(func() {
		dispatcher.Reflect()
		go dispatcher.Run(tray.Done())
	})
	exit("menu")
}
