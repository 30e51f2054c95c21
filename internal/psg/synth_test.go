package psg

import "testing"

func TestSynthSilentByDefault(t *testing.T) {
	s := NewSynth(44100)
	if got := s.Sample(); got != 0 {
		t.Fatalf("default Sample() = %d, want 0 (mixer disables every channel)", got)
	}
}

func TestSynthToneChannelProducesSignal(t *testing.T) {
	s := NewSynth(44100)
	s.WriteAddr(RegMixer)
	s.WriteData(0x01) // enable tone channel A only
	s.WriteAddr(RegVolumeA)
	s.WriteData(0x0F) // max volume

	got := s.Sample()
	if got != 10922 {
		t.Fatalf("Sample() with tone A at max volume = %d, want 10922", got)
	}
}

func TestSynthVolumeZeroIsSilent(t *testing.T) {
	s := NewSynth(44100)
	s.WriteAddr(RegMixer)
	s.WriteData(0x01) // tone A enabled, volume left at 0
	if got := s.Sample(); got != 0 {
		t.Fatalf("Sample() with zero volume = %d, want 0", got)
	}
}

func TestWriteAddrLatchesRegisterIndex(t *testing.T) {
	s := NewSynth(44100)
	s.WriteAddr(RegVolumeB)
	s.WriteData(0x07)
	if got := s.ReadReg(); got != 0x07 {
		t.Fatalf("ReadReg() after WriteAddr/WriteData = 0x%02X, want 0x07", got)
	}
}

func TestWriteDataIgnoresOutOfRangeAddr(t *testing.T) {
	s := NewSynth(44100)
	s.WriteAddr(0xFF) // masked to 0x0F by WriteAddr, already past the 14 regs
	s.WriteData(0x42)
	s.addrReg = 0xFF // force an out-of-range index directly
	if got := s.ReadReg(); got != 0 {
		t.Fatalf("ReadReg() with out-of-range latch = 0x%02X, want 0", got)
	}
}

func TestNullCoreIsSilentNoOp(t *testing.T) {
	var c NullCore
	c.WriteAddr(0x01)
	c.WriteData(0xFF)
	if got := c.ReadReg(); got != 0 {
		t.Fatalf("NullCore.ReadReg() = %d, want 0", got)
	}
	if got := c.Sample(); got != 0 {
		t.Fatalf("NullCore.Sample() = %d, want 0", got)
	}
}
