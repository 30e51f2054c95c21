// Command fxtemu is the FxT-65 host: it loads a ROM and optional SD
// image, drives the system clock at a fixed 60Hz timestep, and
// presents the CRTC framebuffer in a Fyne window while SDL2 supplies
// keyboard scancode polling and a mono audio sink for the PSG.
//
// Grounded on the teacher repo's cmd/emulator/main.go for flag
// handling and on internal/ui/fyne_ui.go for the fixed-timestep
// accumulator loop, canvas.Image refresh, and SDL2 audio-device/
// keyboard-state wiring — trimmed of the debug/log-viewer panels,
// which have no FxT-65 equivalent (this core exposes no CPU register
// file to inspect; spec.md §1 keeps the CPU a black box).
package main

import (
	"flag"
	"fmt"
	"math"
	"os"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/canvas"
	"github.com/veandco/go-sdl2/sdl"

	"github.com/ponzu840w/FxT-65-Emu/internal/debug"
	"github.com/ponzu840w/FxT-65-Emu/internal/ps2"
	"github.com/ponzu840w/FxT-65-Emu/internal/psg"
	"github.com/ponzu840w/FxT-65-Emu/internal/system"
)

const hostFPS = 60.0

func main() {
	romPath := flag.String("rom", "", "Path to ROM file (exactly 8192 bytes)")
	sdPath := flag.String("sd", "", "Path to SD card image (sdcard.vhd / sdcard.img)")
	cpuHz := flag.Int("cpu_hz", 8000000, "Simulated CPU frequency in Hz")
	simSpeed := flag.Float64("speed", 1.0, "Simulation speed multiplier")
	scale := flag.Int("scale", 2, "Display scale (1-6)")
	enableLog := flag.Bool("log", false, "Enable component logging")
	flag.Parse()

	if *romPath == "" {
		fmt.Println("Usage: fxtemu -rom <path-to-rom> [-sd <path-to-image>] [-cpu_hz N] [-speed F] [-scale 1-6] [-log]")
		os.Exit(1)
	}
	if *scale < 1 || *scale > 6 {
		fmt.Fprintln(os.Stderr, "Error: scale must be between 1 and 6")
		os.Exit(1)
	}

	var logger *debug.Logger
	if *enableLog {
		logger = debug.NewLogger(10000)
		for _, c := range []debug.Component{
			debug.ComponentCPU, debug.ComponentBus, debug.ComponentVIA,
			debug.ComponentSD, debug.ComponentPS2, debug.ComponentChdz,
			debug.ComponentPSG, debug.ComponentClock, debug.ComponentUI,
			debug.ComponentSystem,
		} {
			logger.SetComponentEnabled(c, true)
		}
	}

	cfg := system.DefaultConfig()
	cfg.CPUHz = *cpuHz
	cfg.SimSpeed = *simSpeed

	sys := system.New(cfg, nil, logger)

	if err := sys.LoadROMFile(*romPath); err != nil {
		fmt.Fprintf(os.Stderr, "Error loading ROM: %v\n", err)
		os.Exit(1)
	}

	if *sdPath != "" {
		if err := sys.MountImg(*sdPath); err != nil {
			fmt.Fprintf(os.Stderr, "Error mounting SD image: %v\n", err)
			os.Exit(1)
		}
	}

	const sampleRate = 44100
	synth := psg.NewSynth(sampleRate)
	sys.SetPSG(synth)

	host, err := newHost(sys, synth, *scale, sampleRate)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating host window: %v\n", err)
		os.Exit(1)
	}
	defer host.cleanup()

	fmt.Println("FxT-65")
	fmt.Println("======")
	fmt.Printf("ROM loaded: %s\n", *romPath)
	fmt.Printf("CPU clock: %d Hz, speed %.2fx\n", cfg.CPUHz, cfg.SimSpeed)

	host.run()
}

// host owns the window, the SDL2 audio device, and the keyboard
// polling loop, and drives the fixed-timestep emulation/render cycle.
type host struct {
	sys   *system.System
	synth *psg.Synth

	app    fyne.App
	window fyne.Window
	image  *canvas.Image

	audioDev   sdl.AudioDeviceID
	sampleRate int

	prevKeys map[sdl.Scancode]bool
	running  bool
}

func newHost(sys *system.System, synth *psg.Synth, scale, sampleRate int) (*host, error) {
	if err := sdl.Init(sdl.INIT_AUDIO | sdl.INIT_EVENTS); err != nil {
		return nil, fmt.Errorf("sdl.Init: %w", err)
	}

	spec := sdl.AudioSpec{
		Freq:     int32(sampleRate),
		Format:   sdl.AUDIO_F32,
		Channels: 1,
		Samples:  1024,
	}
	audioDev, err := sdl.OpenAudioDevice("", false, &spec, nil, 0)
	if err != nil {
		return nil, fmt.Errorf("sdl.OpenAudioDevice: %w", err)
	}
	sdl.PauseAudioDevice(audioDev, false)

	a := app.New()
	w := a.NewWindow("FxT-65")

	frame := sys.RenderFrame()
	img := canvas.NewImageFromImage(frame)
	img.FillMode = canvas.ImageFillContain
	w.SetContent(img)
	w.Resize(fyne.NewSize(float32(256*scale), float32(768*scale/3)))

	return &host{
		sys: sys, synth: synth,
		app: a, window: w, image: img,
		audioDev: audioDev, sampleRate: sampleRate,
		prevKeys: make(map[sdl.Scancode]bool),
	}, nil
}

func (h *host) cleanup() {
	sdl.CloseAudioDevice(h.audioDev)
	sdl.Quit()
}

func (h *host) run() {
	h.running = true
	go h.updateLoop()
	h.window.ShowAndRun()
	h.running = false
}

// updateLoop matches the teacher's fixed-60Hz-timestep pattern,
// trimmed to one subsystem (no PPU/APU split: spec.md §5 is a single
// clock domain).
func (h *host) updateLoop() {
	ticker := time.NewTicker(time.Duration(float64(time.Second) / hostFPS))
	defer ticker.Stop()

	for h.running {
		<-ticker.C

		sdl.PumpEvents()
		h.pollKeyboard()

		h.sys.RunFrame(hostFPS)
		h.queueAudio()

		img := h.sys.RenderFrame()
		fyne.Do(func() {
			h.image.Image = img
			h.image.Refresh()
		})
	}
}

func (h *host) pollKeyboard() {
	state := sdl.GetKeyboardState()
	for sc, key := range sdlScancodeToPS2 {
		pressed := state[sc] != 0
		if pressed && !h.prevKeys[sc] {
			h.sys.KeyDown(key)
		} else if !pressed && h.prevKeys[sc] {
			h.sys.KeyUp(key)
		}
		h.prevKeys[sc] = pressed
	}
}

// queueAudio pulls a fixed sampleRate/hostFPS PSG samples per host
// frame, normalizes them to float32 in [-1, 1], and queues them to the
// SDL2 audio device. The count does not depend on cpu_hz, the speed
// multiplier, or the number of CPU cycles run this frame, and no
// accumulator carries a fractional sample over to the next frame.
func (h *host) queueAudio() {
	samplesPerFrame := int(float64(h.sampleRate) / hostFPS)
	buf := make([]float32, samplesPerFrame)
	for i := range buf {
		buf[i] = float32(h.synth.Sample()) / 32768.0
	}
	sdl.QueueAudio(h.audioDev, sdlFloat32Bytes(buf))
}

func sdlFloat32Bytes(samples []float32) []byte {
	buf := make([]byte, len(samples)*4)
	for i, s := range samples {
		bits := math.Float32bits(s)
		buf[i*4+0] = byte(bits)
		buf[i*4+1] = byte(bits >> 8)
		buf[i*4+2] = byte(bits >> 16)
		buf[i*4+3] = byte(bits >> 24)
	}
	return buf
}
