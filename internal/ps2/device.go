// Package ps2 implements the bidirectional PS/2 keyboard device
// (spec.md §4.4): the two-wire open-drain clock/data protocol state
// machine, a bounded transmit queue, and Set-2 scancode translation.
//
// Grounded on original_source/src/Ps2.cpp for the scancode table, the
// odd-parity computation, and the transmit phases. The original is
// transmit-only; spec.md redesigns the device to also receive host
// commands over the same two-wire link (SPEC_FULL.md §C.1), so the
// RX-side (RX_CLK_LOW/RX_CLK_HIGH), the IDLE request-to-send branch,
// and the command-byte responses (0xFA ack, 0xAA self-test-passed, the
// 0xED set-LEDs two-byte command) are new, built in the same
// half-period-counter style as the original's transmit loop.
package ps2

const queueSize = 16

// Phase is the two-wire link state.
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseTxClkLow
	PhaseTxClkHigh
	PhaseRxClkLow
	PhaseRxClkHigh
)

// Device is one PS/2 keyboard attached to VIA Port B bits CLK=0x20,
// DAT=0x10.
type Device struct {
	HalfPeriod int // CPU cycles between clock edges

	phase          Phase
	halfPeriodCnt  int
	txDelayCnt     int

	currentTxByte uint8
	bitIdx        int
	parityBit     uint8

	currentRxByte    uint8
	expectingLEDArg  bool

	clkReleased bool
	datReleased bool

	queue     [queueSize]uint8
	qHead     int
	qTail     int
}

// NewDevice returns a Device with both lines released (idle-high) and
// the given half-period (spec.md §4.4: "~333 at 8 MHz / 12 kHz").
func NewDevice(halfPeriod int) *Device {
	return &Device{HalfPeriod: halfPeriod, clkReleased: true, datReleased: true}
}

func queueByte(d *Device, b uint8) {
	next := (d.qTail + 1) % queueSize
	if next != d.qHead {
		d.queue[d.qTail] = b
		d.qTail = next
	}
}

func (d *Device) popQueue() (uint8, bool) {
	if d.qHead == d.qTail {
		return 0, false
	}
	b := d.queue[d.qHead]
	d.qHead = (d.qHead + 1) % queueSize
	return b, true
}

// PortBBits returns the bits the device currently drives onto Port B:
// CLK=0x20 and DAT=0x10 are set when the corresponding line is
// released (high); cleared when the device pulls it low.
func (d *Device) PortBBits() uint8 {
	var v uint8
	if d.clkReleased {
		v |= 0x20
	}
	if d.datReleased {
		v |= 0x10
	}
	return v
}

func oddParity(b uint8) uint8 {
	ones := 0
	for i := 0; i < 8; i++ {
		if b&(1<<uint(i)) != 0 {
			ones++
		}
	}
	if ones%2 == 0 {
		return 1
	}
	return 0
}

// Tick advances the device state machine by one CPU cycle. hostClkLow
// and hostDatLow are the host's view of its own open-drain drive,
// computed by the caller from VIA DDRB/ORB per spec.md §4.4.
func (d *Device) Tick(hostClkLow, hostDatLow bool) {
	switch d.phase {
	case PhaseIdle:
		if hostClkLow {
			d.clkReleased = true
			d.datReleased = true
			d.txDelayCnt = 400
			return
		}
		if hostDatLow {
			d.clkReleased = false
			d.datReleased = true
			d.bitIdx = 0
			d.currentRxByte = 0
			d.halfPeriodCnt = d.HalfPeriod
			d.phase = PhaseRxClkLow
			return
		}
		if b, ok := d.peekQueue(); ok {
			if d.txDelayCnt > 0 {
				d.txDelayCnt--
				return
			}
			d.popQueue()
			d.currentTxByte = b
			d.parityBit = oddParity(b)
			d.bitIdx = 0
			d.clkReleased = false
			d.datReleased = false // start bit = 0
			d.halfPeriodCnt = d.HalfPeriod
			d.phase = PhaseTxClkLow
		}
		return
	}

	d.halfPeriodCnt--
	if d.halfPeriodCnt > 0 {
		return
	}
	d.halfPeriodCnt = d.HalfPeriod

	switch d.phase {
	case PhaseTxClkLow:
		// Rising edge: the host samples DAT here. bit_idx 10 (the
		// stop bit) gets its own low/high pulse like every other
		// bit, so it is sampled before returning to idle.
		d.clkReleased = true
		if d.bitIdx >= 10 {
			d.phase = PhaseIdle
		} else {
			d.phase = PhaseTxClkHigh
		}

	case PhaseTxClkHigh:
		d.bitIdx++
		switch {
		case d.bitIdx >= 1 && d.bitIdx <= 8:
			bit := (d.currentTxByte >> uint(d.bitIdx-1)) & 1
			d.datReleased = bit != 0
		case d.bitIdx == 9:
			d.datReleased = d.parityBit != 0
		case d.bitIdx == 10:
			d.datReleased = true // stop bit
		}
		d.clkReleased = false
		d.phase = PhaseTxClkLow

	case PhaseRxClkLow:
		d.clkReleased = true
		d.phase = PhaseRxClkHigh

	case PhaseRxClkHigh:
		d.bitIdx++
		d.datReleased = true // device doesn't drive DAT while host shifts bits in
		switch {
		case d.bitIdx >= 1 && d.bitIdx <= 8:
			if hostDatLow {
				// bit is 0; nothing to OR in
			} else {
				d.currentRxByte |= 1 << uint(d.bitIdx-1)
			}
		case d.bitIdx == 11:
			d.datReleased = false // ACK
		case d.bitIdx == 12:
			d.clkReleased = true
			d.datReleased = true
			d.phase = PhaseIdle
			d.txDelayCnt = 400
			d.handleHostCommand(d.currentRxByte)
			return
		}
		d.clkReleased = false
		d.phase = PhaseRxClkLow
	}
}

func (d *Device) peekQueue() (uint8, bool) {
	if d.qHead == d.qTail {
		return 0, false
	}
	return d.queue[d.qHead], true
}

func (d *Device) handleHostCommand(cmd uint8) {
	if d.expectingLEDArg {
		d.expectingLEDArg = false
		queueByte(d, 0xFA)
		return
	}
	switch cmd {
	case 0xFF:
		queueByte(d, 0xFA)
		queueByte(d, 0xAA)
	case 0xED:
		queueByte(d, 0xFA)
		d.expectingLEDArg = true
	case 0xF4, 0xF5:
		queueByte(d, 0xFA)
	default:
		queueByte(d, 0xFA)
	}
}

// KeyDown queues the Set-2 make code(s) for k. Unknown keycodes drop
// silently.
func (d *Device) KeyDown(k Keycode) {
	sc, ok := translate(k)
	if !ok {
		return
	}
	if sc.extended {
		queueByte(d, 0xE0)
	}
	queueByte(d, sc.code)
}

// KeyUp queues the Set-2 break code(s) for k.
func (d *Device) KeyUp(k Keycode) {
	sc, ok := translate(k)
	if !ok {
		return
	}
	if sc.extended {
		queueByte(d, 0xE0)
	}
	queueByte(d, 0xF0)
	queueByte(d, sc.code)
}
