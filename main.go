package main

import (
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"runtime/debug"
	"strings"
	"sync"
	"syscall"
	"time"

	"tomo/audio"
	"tomo/chime"
	"tomo/config"
	"tomo/engine"
	"tomo/hotkey"
	"tomo/log"
	"tomo/media"
	"tomo/noise"
	"tomo/notify"
)

var version = "dev"

var shutdownOnce sync.Once

func gracefulShutdown(eng *engine.Engine) {
	shutdownOnce.Do(func() {
		eng.Shutdown()
		log.Close()
		tuiMu.Lock()
		p := tuiProgram
		tuiMu.Unlock()
		if p != nil {
			p.Quit()
		}
		os.Exit(0)
	})
}

// pinnedContext routes every playback through one selected output
// device instead of the system default.
type pinnedContext struct {
	audio.Context
	dev *audio.DeviceInfo
}

func (p pinnedContext) NewPlayback(_ *audio.DeviceInfo, cfg audio.PlaybackConfig) (audio.PlaybackDevice, error) {
	return p.Context.NewPlayback(p.dev, cfg)
}

func parseColor(s string) (noise.Color, error) {
	switch strings.ToLower(s) {
	case "", "off":
		return noise.Off, nil
	case "white":
		return noise.White, nil
	case "rain":
		return noise.Rain, nil
	case "brown":
		return noise.Brown, nil
	}
	return noise.Off, fmt.Errorf("unknown noise color %q (use off, white, rain, or brown)", s)
}

func run() {
	configFlag := flag.String("config", "", "config directory path (default: OS-specific location)")
	logPathFlag := flag.String("logpath", "", "log directory path (default: OS-specific location, use ./ for current dir)")
	setupFlag := flag.Bool("setup", false, "Select output device (otherwise uses system default)")
	deviceFlag := flag.String("device", "", "Use named output device")
	fileFlag := flag.String("file", "", "Load a local WAV or FLAC file into the player")
	soundFlag := flag.String("sound", "off", "Start with a focus sound: off, white, rain, or brown")
	presetFlag := flag.String("preset", "", "Apply a named session preset at startup")
	hotkeyFlag := flag.Bool("hotkey", false, "Register Ctrl+Shift+Space as a global start/pause toggle")
	quietFlag := flag.Bool("quiet", false, "Disable the completion chime")
	tuiFlag := flag.Bool("tui", true, "Run with terminal UI")
	versionFlag := flag.Bool("version", false, "Print version and exit")
	flag.Parse()

	// Resolve log directory early
	logPath, err := log.ResolveDir(*logPathFlag)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to resolve log directory: %v\n", err)
		os.Exit(1)
	}
	log.SetDir(logPath)

	if err := log.EnsureDir(); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not create log directory: %v\n", err)
	}

	crashPath := filepath.Join(log.Dir(), "crash_log.txt")
	crashFile, err := os.OpenFile(crashPath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err == nil {
		fmt.Fprintf(crashFile, "\n=== Session %s [pid=%d] ===\n", time.Now().Format("2006-01-02 15:04:05"), os.Getpid())
		debug.SetCrashOutput(crashFile, debug.CrashOptions{})
	}

	if *versionFlag {
		fmt.Printf("tomo %s\n", version)
		os.Exit(0)
	}

	if err := log.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not init logging: %v\n", err)
	}

	configDir, err := config.ResolveDir(*configFlag)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to resolve config directory: %v\n", err)
		os.Exit(1)
	}
	store := config.NewStore(configDir)
	if err := store.EnsureDir(); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not create config directory: %v\n", err)
	}

	initialSound, err := parseColor(*soundFlag)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}

	if *quietFlag {
		chime.Disable()
	}

	ctx, err := audio.NewContext()
	if err != nil {
		log.Errorf("audio context init error: %v", err)
		fmt.Printf("Error initializing audio context: %v\n", err)
		os.Exit(1)
	}
	defer ctx.Close()

	var selectedDevice *audio.DeviceInfo
	if *deviceFlag != "" {
		if devices, err := ctx.Devices(); err == nil {
			for i := range devices {
				if devices[i].Name == *deviceFlag {
					selectedDevice = &devices[i]
					break
				}
			}
		}
		if selectedDevice == nil {
			fmt.Printf("Warning: output device %q not found, using default\n", *deviceFlag)
		}
	} else if *setupFlag {
		selectedDevice, err = audio.SelectDevice(ctx)
		if err != nil {
			log.Warnf("device selection failed: %v", err)
			fmt.Printf("Warning: device selection failed: %v\n", err)
			fmt.Println("Falling back to default device")
			selectedDevice = nil
		}
	}

	var sink engine.EventSink = engine.NopSink{}
	if *tuiFlag {
		sink = tuiSink{}
	}

	eng := engine.New(
		pinnedContext{Context: ctx, dev: selectedDevice},
		media.NewBridge(),
		notify.New(),
		store,
		sink,
	)

	if *presetFlag != "" {
		if !eng.ApplyPreset(*presetFlag) {
			fmt.Printf("Warning: unknown preset %q\n", *presetFlag)
		}
	}
	if *fileFlag != "" {
		if err := eng.LoadLocalFile(*fileFlag); err != nil {
			fmt.Printf("Warning: could not load %s: %v\n", *fileFlag, err)
		}
	}
	if initialSound != noise.Off {
		eng.SetFocusSound(initialSound)
	}

	eng.Run()

	if *hotkeyFlag {
		hk := hotkey.New()
		if err := hk.Register(); err != nil {
			log.Warnf("hotkey registration failed: %v", err)
			fmt.Printf("Warning: hotkey registration failed: %v\n", err)
			if _, derr := hotkey.Diagnose(); derr != nil {
				fmt.Printf("  %v\n", derr)
			}
		} else {
			defer hk.Unregister()
			go func() {
				for range hk.Pressed() {
					eng.ToggleSession()
				}
			}()
		}
	}

	sigc := make(chan os.Signal, 1)
	signal.Notify(sigc, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigc
		gracefulShutdown(eng)
	}()

	if !*tuiFlag {
		fmt.Println("tomo running headless; Ctrl+C to quit")
		select {}
	}

	tuiMu.Lock()
	tuiProgram = NewTUIProgram(eng)
	p := tuiProgram
	tuiMu.Unlock()

	if _, err := p.Run(); err != nil {
		log.Errorf("TUI error: %v", err)
		os.Exit(1)
	}
	gracefulShutdown(eng)
}
