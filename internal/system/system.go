// Package system wires the bus, VIA, SD card, PS/2 device, Chdz CRTC,
// PSG, clock driver, and an injected CPU core into the single
// explicit `System` value spec.md §9 calls for in place of the
// original's process-wide singleton.
//
// Grounded on the teacher repo's internal/emulator/emulator.go for the
// overall "own every component, wire handlers onto the bus, drive a
// clock scheduler" shape; the per-cycle ordering (CPU, VIA timers,
// PS/2, VBLANK) and IRQ aggregation are specified by spec.md §4.6/§5.
package system

import (
	"fmt"
	"image"
	"os"

	"github.com/ponzu840w/FxT-65-Emu/internal/bus"
	"github.com/ponzu840w/FxT-65-Emu/internal/chdz"
	"github.com/ponzu840w/FxT-65-Emu/internal/clock"
	"github.com/ponzu840w/FxT-65-Emu/internal/cpu"
	"github.com/ponzu840w/FxT-65-Emu/internal/debug"
	"github.com/ponzu840w/FxT-65-Emu/internal/ps2"
	"github.com/ponzu840w/FxT-65-Emu/internal/psg"
	"github.com/ponzu840w/FxT-65-Emu/internal/sd"
	"github.com/ponzu840w/FxT-65-Emu/internal/via"
)

// System is the top-level wiring of one FxT-65 machine instance.
type System struct {
	Cfg Config

	Bus  *bus.Bus
	VIA  *via.VIA
	SD   *sd.Card
	PS2  *ps2.Device
	Chdz *chdz.Chdz
	PSG  psg.Core
	CPU  cpu.Core

	Clock     *clock.Driver
	VBlankCnt int

	Logger *debug.Logger

	sdImagePath string
	irqAsserted bool
}

// New builds a fully-wired System. cpuCore is injected per spec.md §9
// ("no globals, explicit System value"); pass nil to use cpu.StubCore
// reading from bus address 0 (useful for peripheral-only tests).
func New(cfg Config, cpuCore cpu.Core, logger *debug.Logger) *System {
	if logger == nil {
		logger = debug.NewLogger(1000)
	}

	s := &System{
		Cfg:    cfg,
		Bus:    bus.NewBus(),
		VIA:    &via.VIA{},
		SD:     sd.NewCard(),
		PS2:    ps2.NewDevice(cfg.PS2HalfPeriod()),
		Chdz:   chdz.New(),
		PSG:    psg.NullCore{},
		Logger: logger,
	}
	if cpuCore != nil {
		s.CPU = cpuCore
	} else {
		s.CPU = cpu.NewStubCore(0)
	}

	s.VIA.SD = s.SD
	s.VIA.PortB = s.PS2
	s.VIA.OnIRQLineChange = s.updateIRQ

	s.Bus.VIA = s.VIA
	s.Bus.PSG = s.PSG
	s.Bus.Chdz = s.Chdz
	s.Bus.OnIRQLineChange = s.updateIRQ

	s.Clock = clock.NewDriver(s.tickOnce)

	return s
}

// LoadROM installs a ROM image per spec.md §4.1/§6.
func (s *System) LoadROM(data []byte) error {
	if err := s.Bus.LoadROM(data); err != nil {
		s.Logger.LogSystemf(debug.LogLevelError, "ROM load failed: %v", err)
		return fmt.Errorf("system: %w", err)
	}
	return nil
}

// SetPSG replaces the null PSG core with a real synth (or another
// Core implementation). Must be called before the bus starts
// servicing 0xE400/0xE401 accesses from a running Tick loop.
func (s *System) SetPSG(core psg.Core) {
	s.PSG = core
	s.Bus.PSG = core
}

// MountImg mounts an SD card image, replacing any current mount
// (spec.md §9: "MountImg is a resource-replace operation: unmount
// first, then acquire").
func (s *System) MountImg(path string) error {
	s.UnmountImg()

	backend, err := sd.MountImage(path)
	if err != nil {
		s.Logger.LogSystemf(debug.LogLevelError, "SD mount failed: %v", err)
		return fmt.Errorf("system: mount %s: %w", path, err)
	}
	s.SD.Backend = backend
	s.sdImagePath = path
	return nil
}

// UnmountImg closes the current SD image, if any, flushing dirty
// state per the backend's own write-through policy.
func (s *System) UnmountImg() {
	if s.SD.Backend != nil {
		_ = s.SD.Backend.Close()
		s.SD.Backend = nil
	}
	s.sdImagePath = ""
}

// KeyDown/KeyUp forward host key events to the PS/2 device.
func (s *System) KeyDown(k ps2.Keycode) { s.PS2.KeyDown(k) }
func (s *System) KeyUp(k ps2.Keycode)   { s.PS2.KeyUp(k) }

// PulseNMI asserts NMI for cycles ticks, then de-asserts it — the
// host-level, non-periodic pulse spec.md §4.6 and §9 describe (e.g. a
// Ctrl+N shortcut), mirroring original_source/src/FxtSystem.cpp's
// RequestNmi/ClearNmi pair.
func (s *System) PulseNMI(cycles int) {
	s.CPU.SetNMI(true)
	for i := 0; i < cycles; i++ {
		s.Clock.Tick()
	}
	s.CPU.SetNMI(false)
}

// Tick advances the system by one CPU cycle.
func (s *System) Tick() { s.Clock.Tick() }

// RunFrame advances the system by the number of ticks appropriate for
// one rendered frame at hostFPS.
func (s *System) RunFrame(hostFPS float64) {
	s.Clock.RunFrame(s.Cfg.TicksPerFrame(hostFPS))
}

// tickOnce performs exactly one cycle's work in the order spec.md §5
// mandates: CPU, VIA timers, PS/2, VBLANK.
func (s *System) tickOnce() {
	s.CPU.Tick(s.Bus)
	s.VIA.Tick()

	hostClkLow := s.VIA.DDRB&0x20 != 0 && s.VIA.ORB&0x20 == 0
	hostDatLow := s.VIA.DDRB&0x10 != 0 && s.VIA.ORB&0x10 == 0
	s.PS2.Tick(hostClkLow, hostDatLow)

	s.VBlankCnt++
	if s.VBlankCnt >= s.Cfg.VBlankPeriod() {
		s.VBlankCnt = 0
		s.VIA.IFR |= via.IFRCA2
		s.updateIRQ()
	}
}

// updateIRQ aggregates the UART and VIA interrupt sources and drives
// the CPU's IRQ pin, per spec.md §4.6's UpdateIrq.
func (s *System) updateIRQ() {
	uartIRQ := s.Bus.UARTStatus()&0x08 != 0
	viaIRQ := s.VIA.IRQPending()
	asserted := uartIRQ || viaIRQ
	if asserted != s.irqAsserted {
		s.irqAsserted = asserted
		s.CPU.SetIRQ(asserted)
	}
}

// RenderFrame materializes the Chdz VRAM into a 256x768 RGBA image.
func (s *System) RenderFrame() *image.RGBA {
	return s.Chdz.RenderFrame()
}

// LoadROMFile reads path and installs it as ROM.
func (s *System) LoadROMFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("system: reading ROM file: %w", err)
	}
	return s.LoadROM(data)
}
