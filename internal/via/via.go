// Package via implements a 6522-class VIA: an SPI-mode shift-register
// master, two decrementing timers, and IFR/IER interrupt flag/enable
// logic, addressed at bus offsets 0xE200-0xE20F (spec.md §4.3).
//
// Grounded on original_source/src/Via.cpp/Via.hpp for the register map
// and the ORB/DDRB/ACR/PCR/IFR/IER/SR semantics, including the
// synchronous SPI exchange performed inline with an SR write or a
// SPI-mode SR read. The T1/T2 timer register semantics are specified
// completely by spec.md §4.3 (the retrieved original excerpt's
// Write/Read switch has no T1/T2 cases — see SPEC_FULL.md §C.3).
package via

// Register offsets from 0xE200, per spec.md §4.3.
const (
	RegORB  = 0x0
	RegDDRB = 0x2
	RegT1CL = 0x4
	RegT1CH = 0x5
	RegT1LL = 0x6
	RegT1LH = 0x7
	RegT2CL = 0x8
	RegT2CH = 0x9
	RegSR   = 0xA
	RegACR  = 0xB
	RegPCR  = 0xC
	RegIFR  = 0xD
	RegIER  = 0xE
)

// IFR/IER bit positions used by this system.
const (
	IFRCA2       = 0x01 // VBLANK edge
	IFRT2        = 0x20
	IFRT1        = 0x40
	IFRShiftDone = 0x04
)

// SPIDevice is the SD card (or anything else) the shift register talks
// to. Kept as an interface so this package does not import internal/sd.
type SPIDevice interface {
	Transfer(mosi uint8) uint8
}

// PortBSource supplies the bits the PS/2 device drives onto Port B
// (CLK=0x20, DAT=0x10) so an ORB read can OR them in for DDRB-input
// bits. spec.md §9 flags this as an open question; SPEC_FULL.md §F
// resolves it in favor of hardware fidelity.
type PortBSource interface {
	PortBBits() uint8
}

// VIA is the 6522-class peripheral.
type VIA struct {
	ORB, DDRB, SR, ACR, PCR, IFR, IER uint8

	t1Cnt                       uint16
	t1LatchL, t1LatchH          uint8
	t1Running, t1Fired          bool
	t2Cnt                       uint16
	t2LatchL                    uint8
	t2Running, t2Fired          bool

	SD      SPIDevice
	PortB   PortBSource

	// OnIRQLineChange re-evaluates the system IRQ line; called whenever
	// IFR/IER change so the CPU observes the interrupt promptly
	// (spec.md §5: "IFR updates that could assert IRQ immediately
	// re-evaluate the IRQ line").
	OnIRQLineChange func()
}

func (v *VIA) updateIrq() {
	if v.OnIRQLineChange != nil {
		v.OnIRQLineChange()
	}
}

// IRQPending reports whether VIA IFR & IER (excluding bit 7) is nonzero.
func (v *VIA) IRQPending() bool {
	return v.IFR&v.IER&0x7F != 0
}

// spiTransfer sends mosi to the attached SPI device and returns its
// response, or 0xFF if nothing is attached (idle-high MISO line).
func (v *VIA) spiTransfer(mosi uint8) uint8 {
	if v.SD == nil {
		return 0xFF
	}
	return v.SD.Transfer(mosi)
}

// Write implements §4.3's write semantics.
func (v *VIA) Write(reg uint8, val uint8) {
	switch reg {
	case RegORB:
		v.ORB = val
		if v.SD != nil {
			if cs, ok := v.SD.(interface{ SetCS(bool) }); ok {
				cs.SetCS(val&0x40 == 0)
			}
		}
	case RegDDRB:
		v.DDRB = val
	case RegACR:
		v.ACR = val
	case RegPCR:
		v.PCR = val
	case RegIER:
		if val&0x80 != 0 {
			v.IER |= val & 0x7F
		} else {
			v.IER &^= val & 0x7F
		}
		v.updateIrq()
	case RegIFR:
		v.IFR &^= val & 0x7F
		v.updateIrq()
	case RegSR:
		v.IFR &^= IFRShiftDone
		v.updateIrq()
		v.SR = v.spiTransfer(val)
		v.IFR |= IFRShiftDone
		v.updateIrq()
	case RegT1CL:
		v.t1LatchL = val
	case RegT1CH:
		v.t1LatchH = val
		v.t1Cnt = uint16(v.t1LatchH)<<8 | uint16(v.t1LatchL)
		v.t1Running = true
		v.t1Fired = false
		v.IFR &^= IFRT1
		v.updateIrq()
	case RegT1LL:
		v.t1LatchL = val
	case RegT1LH:
		v.t1LatchH = val
		v.IFR &^= IFRT1
		v.updateIrq()
	case RegT2CL:
		v.t2LatchL = val
	case RegT2CH:
		v.t2Cnt = uint16(val)<<8 | uint16(v.t2LatchL)
		v.t2Running = true
		v.t2Fired = false
		v.IFR &^= IFRT2
		v.updateIrq()
	}
}

// Read implements §4.3's read semantics.
func (v *VIA) Read(reg uint8) uint8 {
	switch reg {
	case RegORB:
		val := v.ORB
		if v.PortB != nil {
			val |= v.PortB.PortBBits() &^ v.DDRB
		}
		return val
	case RegDDRB:
		return v.DDRB
	case RegACR:
		return v.ACR
	case RegPCR:
		return v.PCR
	case RegIER:
		return v.IER | 0x80
	case RegIFR:
		val := v.IFR & 0x7F
		if v.ACR&0x1C == 0x08 {
			val |= 0x04
		}
		if v.IFR&v.IER&0x7F != 0 {
			val |= 0x80
		}
		return val
	case RegSR:
		if v.ACR&0x1C == 0x08 {
			v.SR = v.spiTransfer(0xFF)
		}
		v.IFR &^= IFRShiftDone
		v.updateIrq()
		return v.SR
	case RegT1CL:
		v.IFR &^= IFRT1
		v.updateIrq()
		return uint8(v.t1Cnt)
	case RegT1CH:
		return uint8(v.t1Cnt >> 8)
	case RegT1LL:
		return v.t1LatchL
	case RegT1LH:
		return v.t1LatchH
	case RegT2CL:
		v.IFR &^= IFRT2
		v.updateIrq()
		return uint8(v.t2Cnt)
	case RegT2CH:
		return uint8(v.t2Cnt >> 8)
	}
	return 0
}

// Tick advances both timers by one CPU cycle (spec.md §4.3 "Tick").
func (v *VIA) Tick() {
	if v.t1Running {
		if v.t1Cnt == 0 {
			freeRun := v.ACR&0x40 != 0
			if freeRun {
				v.IFR |= IFRT1
				v.updateIrq()
				v.t1Cnt = uint16(v.t1LatchH)<<8 | uint16(v.t1LatchL)
			} else if !v.t1Fired {
				v.IFR |= IFRT1
				v.updateIrq()
				v.t1Fired = true
				v.t1Cnt = 0xFFFF
			} else {
				v.t1Cnt = 0xFFFF
			}
		} else {
			v.t1Cnt--
		}
	}

	if v.t2Running && v.ACR&0x20 == 0 {
		if v.t2Cnt == 0 {
			if !v.t2Fired {
				v.IFR |= IFRT2
				v.updateIrq()
				v.t2Fired = true
			}
			v.t2Cnt = 0xFFFF
		} else {
			v.t2Cnt--
		}
	}
}
