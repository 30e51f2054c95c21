package psg

// Synth is a simplified YMZ294-style programmable sound generator: three
// square-wave tone channels plus one shared noise generator, register
// addressed the way the original YMZ294 core is (WriteAddr latches a
// register number, WriteData/ReadReg access it, Sample pulls one 16-bit
// PCM sample). It satisfies Core so cmd/fxtemu has a real sound source
// to open an audio device for instead of only NullCore.
//
// The phase-accumulator tone/noise generation and fixed-point mixing
// are ported from the teacher repo's internal/apu (fixed_point.go's
// square-wave and LFSR-noise branches); channel volume here is the
// 4-bit register value (0-15), scaled as out*vol/15,
// re-registered against a classic 3-tone+noise PSG layout instead of
// the teacher's 4-channel multi-waveform layout, since spec.md
// describes the PSG as YMZ294-style, not as the teacher's own engine.
type Synth struct {
	sampleRate uint32
	addrReg    uint8
	regs       [14]uint8

	tone  [3]toneChannel
	noise noiseChannel
}

type toneChannel struct {
	phase     uint32
	increment uint32
}

type noiseChannel struct {
	lfsr      uint32
	phase     uint32
	increment uint32
}

// Register offsets, following the AY-3-8910/YMZ294 convention.
const (
	RegTonePeriodAFine = 0
	RegTonePeriodACoarse = 1
	RegTonePeriodBFine = 2
	RegTonePeriodBCoarse = 3
	RegTonePeriodCFine = 4
	RegTonePeriodCCoarse = 5
	RegNoisePeriod     = 6
	RegMixer           = 7
	RegVolumeA         = 8
	RegVolumeB         = 9
	RegVolumeC         = 10
)

const clockHz = 3579545 // YMZ294 reference clock, same as the original's Psg::Init CLOCK_HZ

// NewSynth creates a Synth sampling at sampleRate Hz.
func NewSynth(sampleRate uint32) *Synth {
	s := &Synth{sampleRate: sampleRate}
	s.noise.lfsr = 1
	return s
}

func (s *Synth) WriteAddr(v uint8) { s.addrReg = v & 0x0F }

func (s *Synth) WriteData(v uint8) {
	if int(s.addrReg) >= len(s.regs) {
		return
	}
	s.regs[s.addrReg] = v
	s.recompute()
}

func (s *Synth) ReadReg() uint8 {
	if int(s.addrReg) >= len(s.regs) {
		return 0
	}
	return s.regs[s.addrReg]
}

func (s *Synth) recompute() {
	periods := [3]uint16{
		uint16(s.regs[RegTonePeriodAFine]) | uint16(s.regs[RegTonePeriodACoarse]&0x0F)<<8,
		uint16(s.regs[RegTonePeriodBFine]) | uint16(s.regs[RegTonePeriodBCoarse]&0x0F)<<8,
		uint16(s.regs[RegTonePeriodCFine]) | uint16(s.regs[RegTonePeriodCCoarse]&0x0F)<<8,
	}
	for i, period := range periods {
		freq := toneFrequency(period)
		s.tone[i].increment = phaseIncrement(freq, s.sampleRate)
	}
	noisePeriod := s.regs[RegNoisePeriod] & 0x1F
	s.noise.increment = phaseIncrement(toneFrequency(uint16(noisePeriod)), s.sampleRate)
}

func toneFrequency(period uint16) uint32 {
	if period == 0 {
		return 0
	}
	return uint32(clockHz / (16 * uint32(period)))
}

func phaseIncrement(freq, sampleRate uint32) uint32 {
	if sampleRate == 0 || freq == 0 {
		return 0
	}
	return uint32((uint64(freq) * 0x100000000) / uint64(sampleRate))
}

func (s *Synth) Sample() int16 {
	mixer := s.regs[RegMixer]
	var mix int32

	volumes := [3]uint8{s.regs[RegVolumeA], s.regs[RegVolumeB], s.regs[RegVolumeC]}
	for i := range s.tone {
		toneEnabled := mixer&(1<<uint(i)) != 0
		noiseEnabled := mixer&(1<<uint(i+3)) != 0

		var out int32
		if toneEnabled {
			if s.tone[i].phase < 0x80000000 {
				out = 32767
			} else {
				out = -32768
			}
		}
		if noiseEnabled {
			if s.noise.lfsr&1 != 0 {
				out += 32767
			} else {
				out += -32768
			}
		}

		vol := int32(volumes[i] & 0x0F)
		mix += (out * vol) / 15
		s.tone[i].phase += s.tone[i].increment
	}

	s.noise.phase += s.noise.increment
	if s.noise.phase < s.noise.increment {
		// wrapped: advance the LFSR one step, same feedback tap as the
		// teacher's 15-bit LFSR noise channel.
		feedback := (s.noise.lfsr & 1) ^ ((s.noise.lfsr >> 14) & 1)
		s.noise.lfsr = (s.noise.lfsr >> 1) | (feedback << 14)
		if s.noise.lfsr == 0 {
			s.noise.lfsr = 1
		}
	}

	mix /= 3
	if mix > 32767 {
		mix = 32767
	} else if mix < -32768 {
		mix = -32768
	}
	return int16(mix)
}

var _ Core = (*Synth)(nil)
