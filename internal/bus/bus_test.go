package bus

import "testing"

func TestRAMRoundTrip(t *testing.T) {
	b := NewBus()
	for _, addr := range []uint16{0x0000, 0x1234, 0x7FFF} {
		b.Write8(addr, 0x5A)
		if got := b.Read8(addr); got != 0x5A {
			t.Fatalf("addr 0x%04X: write 0x5A then read got 0x%02X", addr, got)
		}
	}
}

func TestROMReadOnly(t *testing.T) {
	b := NewBus()
	data := make([]byte, 8192)
	data[4096] = 0x42 // becomes rom[0] at 0xF000
	if err := b.LoadROM(data); err != nil {
		t.Fatalf("LoadROM: %v", err)
	}

	before := b.Read8(0xF000)
	b.Write8(0xF000, 0xFF)
	after := b.Read8(0xF000)
	if before != after {
		t.Fatalf("write to ROM changed read value: before=0x%02X after=0x%02X", before, after)
	}
	if after != 0x42 {
		t.Fatalf("ROM byte at 0xF000 = 0x%02X, want 0x42", after)
	}
}

func TestLoadROMWrongSize(t *testing.T) {
	b := NewBus()
	if err := b.LoadROM(make([]byte, 100)); err == nil {
		t.Fatal("expected error loading undersized ROM file")
	}
}

func TestUARTReadClearsRxReady(t *testing.T) {
	b := NewBus()
	irqReevaluated := false
	b.OnIRQLineChange = func() { irqReevaluated = true }

	b.SetUARTInput(0x41)
	if b.UARTStatus()&0x08 == 0 {
		t.Fatal("expected RxReady set after SetUARTInput")
	}

	got := b.Read8(0xE000)
	if got != 0x41 {
		t.Fatalf("UART RX byte = 0x%02X, want 0x41", got)
	}
	if b.UARTStatus()&0x08 != 0 {
		t.Fatal("expected RxReady cleared after reading 0xE000")
	}
	if !irqReevaluated {
		t.Fatal("expected OnIRQLineChange to fire on UART RX read")
	}
}

func TestUndecodedAddressReadsZero(t *testing.T) {
	b := NewBus()
	b.Write8(0x9000, 0xFF) // ignored, nothing decodes this range
	if got := b.Read8(0x9000); got != 0 {
		t.Fatalf("undecoded read = 0x%02X, want 0", got)
	}
}
