package ps2

import "testing"

// sampleFrame runs the device until a rising CLK edge is observed
// (clkReleased transitions false->true) and returns the DAT value
// sampled at that edge, assuming the host leaves both lines released
// throughout (spec.md §8's framing scenario).
func sampleFrame(t *testing.T, d *Device, bits int) []bool {
	t.Helper()
	samples := make([]bool, 0, bits)
	wasLow := false
	for steps := 0; len(samples) < bits && steps < 100000; steps++ {
		prevClk := d.clkReleased
		d.Tick(false, false)
		if !prevClk && d.clkReleased {
			samples = append(samples, d.datReleased)
		}
		_ = wasLow
	}
	if len(samples) != bits {
		t.Fatalf("only captured %d of %d expected bit samples", len(samples), bits)
	}
	return samples
}

func TestKeyDownAFraming(t *testing.T) {
	d := NewDevice(4) // short half-period to keep the test fast
	d.KeyDown(KeyA)   // scancode 0x1C, non-extended

	bits := sampleFrame(t, d, 11)

	// start
	if bits[0] {
		t.Fatal("expected start bit = 0 (DAT low)")
	}
	// data bits 1..8 LSB-first of 0x1C = 0b00011100
	want := []bool{false, false, true, true, true, false, false, false}
	for i, w := range want {
		if bits[1+i] != w {
			t.Fatalf("data bit %d = %v, want %v", i, bits[1+i], w)
		}
	}
	// parity: 0x1C has three set bits (odd) => odd parity bit = 0
	if bits[9] {
		t.Fatal("expected parity bit = 0 for 0x1C (three set bits)")
	}
	// stop bit = 1
	if !bits[10] {
		t.Fatal("expected stop bit = 1")
	}
}

func TestUnknownKeycodeDropped(t *testing.T) {
	d := NewDevice(4)
	d.KeyDown(KeyUnknown)
	if d.qHead != d.qTail {
		t.Fatal("expected unknown keycode to queue nothing")
	}
}

func TestKeyUpQueuesBreakSequence(t *testing.T) {
	d := NewDevice(4)
	d.KeyUp(KeyRightControl) // extended: E0, F0, 0x14
	want := []uint8{0xE0, 0xF0, 0x14}
	for _, w := range want {
		b, ok := d.popQueue()
		if !ok || b != w {
			t.Fatalf("queue byte = 0x%02X (ok=%v), want 0x%02X", b, ok, w)
		}
	}
}

func TestPortBBitsReflectReleasedLines(t *testing.T) {
	d := NewDevice(4)
	if got := d.PortBBits(); got != 0x30 {
		t.Fatalf("idle PortBBits = 0x%02X, want 0x30 (both released)", got)
	}
}
