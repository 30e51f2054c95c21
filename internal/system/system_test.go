package system

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/ponzu840w/FxT-65-Emu/internal/cpu"
	"github.com/ponzu840w/FxT-65-Emu/internal/via"
)

func newFlatImage(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "sdcard.img")
	if err := os.WriteFile(path, make([]byte, 1<<20), 0o644); err != nil {
		t.Fatalf("writing test image: %v", err)
	}
	return path
}

const (
	viaBase  = 0xE200
	addrORB  = viaBase | via.RegORB
	addrSR   = viaBase | via.RegSR
	addrIER  = viaBase | via.RegIER
)

// TestSDInitHandshake drives the bus exactly the way firmware would:
// assert CS through VIA ORB, shift CMD0's 6 bytes through SR one byte
// at a time, then pump the shift register until the R1 idle response
// (0x01) comes back.
func TestSDInitHandshake(t *testing.T) {
	sys := New(DefaultConfig(), nil, nil)
	if err := sys.MountImg(newFlatImage(t)); err != nil {
		t.Fatalf("MountImg: %v", err)
	}
	defer sys.UnmountImg()

	sys.Bus.Write8(addrORB, 0x00) // CS asserted (bit6 low)

	for _, b := range []uint8{0x40, 0, 0, 0, 0, 0x95} {
		sys.Bus.Write8(addrSR, b)
	}
	sys.Bus.Write8(addrSR, 0xFF)
	sys.Bus.Write8(addrSR, 0xFF)

	if got := sys.Bus.Read8(addrSR); got != 0x01 {
		t.Fatalf("CMD0 response via bus/VIA/SD wiring = 0x%02X, want 0x01", got)
	}
}

// TestVBlankIRQCadence runs exactly one VBLANK period's worth of
// ticks and checks the VIA's CA2 flag wrapped the counter and raised
// the CPU's IRQ line, with the VIA interrupt enabled.
func TestVBlankIRQCadence(t *testing.T) {
	cfg := DefaultConfig()
	cfg.CPUHz = 8000000
	sys := New(cfg, nil, nil)

	sys.Bus.Write8(addrIER, 0x81) // enable bit 0 (IFRCA2) with the set-mode marker

	period := cfg.VBlankPeriod()
	for i := 0; i < period; i++ {
		sys.Tick()
	}

	if sys.VBlankCnt != 0 {
		t.Fatalf("VBlankCnt after one period = %d, want 0 (wrapped)", sys.VBlankCnt)
	}
	stub, ok := sys.CPU.(*cpu.StubCore)
	if !ok {
		t.Fatal("expected default CPU to be *cpu.StubCore")
	}
	if !stub.IRQAsserted() {
		t.Fatal("expected IRQ asserted after a VBLANK edge with VIA CA2 enabled")
	}
}

// TestUARTAndVIAIndependentlyAssertIRQ checks the two interrupt
// sources are ORed together rather than one masking the other.
func TestUARTAndVIAIndependentlyAssertIRQ(t *testing.T) {
	sys := New(DefaultConfig(), nil, nil)
	stub := sys.CPU.(*cpu.StubCore)

	sys.Bus.SetUARTInput(0x41)
	sys.updateIRQ()
	if !stub.IRQAsserted() {
		t.Fatal("expected UART RxReady alone to assert IRQ")
	}

	sys.Bus.Read8(0xE000) // clears RxReady, re-evaluates via OnIRQLineChange
	if stub.IRQAsserted() {
		t.Fatal("expected IRQ to de-assert once UART RxReady is cleared")
	}

	sys.VIA.IER = 0x40 // enable T1 interrupt
	sys.VIA.IFR = via.IFRT1
	sys.updateIRQ()
	if !stub.IRQAsserted() {
		t.Fatal("expected VIA T1 interrupt alone to assert IRQ")
	}
}

func TestMountImgReplacesExistingMount(t *testing.T) {
	sys := New(DefaultConfig(), nil, nil)
	first := newFlatImage(t)
	second := newFlatImage(t)

	if err := sys.MountImg(first); err != nil {
		t.Fatalf("first MountImg: %v", err)
	}
	firstBackend := sys.SD.Backend

	if err := sys.MountImg(second); err != nil {
		t.Fatalf("second MountImg: %v", err)
	}
	if sys.SD.Backend == firstBackend {
		t.Fatal("expected MountImg to replace the backend, not reuse it")
	}
}

func TestPulseNMIAssertsThenClears(t *testing.T) {
	sys := New(DefaultConfig(), nil, nil)
	stub := sys.CPU.(*cpu.StubCore)

	sys.PulseNMI(5)

	if stub.NMIAsserted() {
		t.Fatal("expected NMI de-asserted after PulseNMI returns")
	}
	if got := stub.Registers().Cycles; got != 5 {
		t.Fatalf("CPU ticked %d cycles during PulseNMI, want 5", got)
	}
}
