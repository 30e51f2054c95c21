package system

// Config holds the tunables a host supplies at startup (spec.md §3,
// §6's CLI flags `cpu_hz`/`speed`). Derived periods are computed by
// VBlankPeriod/PS2HalfPeriod rather than stored, so changing CPUHz at
// runtime (not itself a supported operation, but convenient in tests)
// never leaves a stale derived value behind.
type Config struct {
	CPUHz    int
	SimSpeed float64
	VBlankHz int // default 60
	PS2ClkHz int // default 12000
}

// DefaultConfig returns the spec's documented defaults.
func DefaultConfig() Config {
	return Config{
		CPUHz:    8000000,
		SimSpeed: 1.0,
		VBlankHz: 60,
		PS2ClkHz: 12000,
	}
}

// VBlankPeriod is the number of CPU cycles between VBLANK edges.
func (c Config) VBlankPeriod() int {
	if c.VBlankHz == 0 {
		return 0
	}
	return c.CPUHz / c.VBlankHz
}

// PS2HalfPeriod is the number of CPU cycles between PS/2 clock edges.
func (c Config) PS2HalfPeriod() int {
	if c.PS2ClkHz == 0 {
		return 0
	}
	return c.CPUHz / c.PS2ClkHz / 2
}

// TicksPerFrame is the number of Tick calls the host should run per
// rendered frame at hostFPS (spec.md §5).
func (c Config) TicksPerFrame(hostFPS float64) int {
	if hostFPS == 0 {
		return 0
	}
	return int(float64(c.CPUHz) * c.SimSpeed / hostFPS)
}
