// Package chdz implements the "Chiina-Dazzler" CRTC-style framebuffer
// device (spec.md §4.5): a four-frame VRAM with an auto-advancing
// character-box write cursor and a 256x768 RGBA raster output.
//
// Grounded directly on original_source/src/Chdz.cpp: the register map,
// DoWrite's cursor-advance algorithm, and RenderFrame's per-sub-row
// frame selection and 16-color/2-color pixel unpacking are ported
// line-for-line into Go, since spec.md §4.5 specifies exactly this
// behavior with no redesign.
package chdz

import "image"

const (
	vramFrameSize = 0x8000
	displayW      = 256
	displayH      = 768
)

// Register offsets from 0xE600.
const (
	RegCONF = 0x0
	RegREPT = 0x1
	RegPTRX = 0x2
	RegPTRY = 0x3
	RegWDAT = 0x4
	RegDISP = 0x5
	RegCHRW = 0x6
	RegCHRH = 0x7
)

// Chdz is the CRTC's full mutable state.
type Chdz struct {
	vram [4][vramFrameSize]uint8

	writeFrame  uint8
	frameTTMode [4]bool
	ttColor0    uint8
	ttColor1    uint8

	readFrame [4]uint8

	cursor    uint16
	lastWDAT  uint8

	charboxDisable      bool
	charboxWidth        uint8
	charboxHeight       uint8
	charboxWidthCounter uint8
	charboxHeightCounter uint8
	charboxBaseX        uint8
	charboxTopY         uint8
}

// New returns a Chdz with all state zeroed, matching the original's
// default-constructed State.
func New() *Chdz {
	return &Chdz{}
}

// Write dispatches a register write at offset reg (0-7 from 0xE600).
func (c *Chdz) Write(reg uint8, val uint8) {
	switch reg & 0x0F {
	case RegCONF:
		cmd := (val >> 4) & 0x0F
		dat := val & 0x0F
		switch cmd {
		case 0x0:
			c.writeFrame = dat & 0x03
		case 0x1:
			c.frameTTMode[c.writeFrame] = dat&0x01 != 0
		case 0x2:
			c.ttColor0 = dat
		case 0x3:
			c.ttColor1 = dat
		}
	case RegREPT:
		c.doWrite()
	case RegPTRX:
		c.charboxWidthCounter = 0
		c.charboxHeightCounter = 0
		c.charboxBaseX = val & 0x7F
		c.cursor = (c.cursor & 0x7F80) | uint16(val&0x7F)
	case RegPTRY:
		c.charboxTopY = val
		c.cursor = uint16(val)<<7 | (c.cursor & 0x007F)
	case RegWDAT:
		c.lastWDAT = val
		c.doWrite()
	case RegDISP:
		c.readFrame[0] = (val >> 6) & 0x03
		c.readFrame[1] = (val >> 4) & 0x03
		c.readFrame[2] = (val >> 2) & 0x03
		c.readFrame[3] = (val >> 0) & 0x03
	case RegCHRW:
		c.charboxDisable = val&0x80 != 0
		c.charboxWidth = val & 0x7F
	case RegCHRH:
		c.charboxHeight = val
	}
}

// doWrite stores lastWDAT at the cursor and advances it through the
// character-box wrap logic. Shared by WDAT and REPT.
func (c *Chdz) doWrite() {
	addr := c.cursor & 0x7FFF
	if int(addr) < vramFrameSize {
		c.vram[c.writeFrame][addr] = c.lastWDAT
	}

	if !c.charboxDisable && c.charboxWidthCounter == c.charboxWidth {
		c.charboxWidthCounter = 0

		if c.charboxHeightCounter == c.charboxHeight {
			nextX := uint8((c.cursor & 0x7F) + 1)
			c.cursor = uint16(c.charboxTopY)<<7 | uint16(nextX)
			c.charboxBaseX = nextX
			c.charboxHeightCounter = 0
		} else {
			row := uint8((c.cursor >> 7) + 1)
			c.cursor = uint16(row)<<7 | uint16(c.charboxBaseX)
			c.charboxHeightCounter++
		}
	} else {
		c.cursor = (c.cursor + 1) & 0x7FFF
		c.charboxWidthCounter++
	}
}

func paletteEntry(idx uint8) (r, g, b uint8) {
	if idx&0x08 != 0 {
		r = 255
	}
	if idx&0x04 != 0 {
		b = 255
	}
	g = (idx & 0x03) * 85
	return
}

// RenderFrame produces the 256x768 RGBA raster, per spec.md §4.5.
func (c *Chdz) RenderFrame() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, displayW, displayH))

	for y := 0; y < displayH; y++ {
		subRow := y & 3
		vramRow := y >> 2

		frame := c.readFrame[subRow]
		tt := c.frameTTMode[frame]
		src := c.vram[frame][vramRow*128:]

		rowOff := y * img.Stride
		for x := 0; x < displayW; x++ {
			var cidx uint8
			if !tt {
				b := src[x>>1]
				if x&1 != 0 {
					cidx = b & 0x0F
				} else {
					cidx = b >> 4
				}
			} else {
				b := src[x>>3]
				bit := (b >> uint(7-(x&7))) & 1
				if bit != 0 {
					cidx = c.ttColor1
				} else {
					cidx = c.ttColor0
				}
			}
			r, g, bl := paletteEntry(cidx)
			o := rowOff + x*4
			img.Pix[o+0] = r
			img.Pix[o+1] = g
			img.Pix[o+2] = bl
			img.Pix[o+3] = 255
		}
	}

	return img
}
