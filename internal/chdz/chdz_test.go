package chdz

import "testing"

func TestCharboxWrapAfterFullBox(t *testing.T) {
	c := New()
	c.Write(RegCHRW, 0x07) // 8 columns per box
	c.Write(RegCHRH, 0x07) // 8 rows per box
	c.Write(RegPTRX, 0x00)
	c.Write(RegPTRY, 0x00)

	for i := 0; i < 64; i++ {
		c.Write(RegWDAT, uint8(i))
	}

	if c.cursor != 0x08 {
		t.Fatalf("cursor after 64 writes = 0x%04X, want 0x0008 (row 0, col 8)", c.cursor)
	}
}

func TestCharboxDisabledAdvancesLinearly(t *testing.T) {
	c := New()
	c.Write(RegCHRW, 0x87) // bit 7 set: charbox disabled
	c.Write(RegPTRX, 0x00)
	c.Write(RegPTRY, 0x00)

	for i := 0; i < 10; i++ {
		c.Write(RegWDAT, uint8(i))
	}

	if c.cursor != 10 {
		t.Fatalf("cursor with charbox disabled = %d, want 10 (linear advance)", c.cursor)
	}
	if c.vram[0][9] != 9 {
		t.Fatalf("vram[0][9] = %d, want 9", c.vram[0][9])
	}
}

func TestPaletteAlphaAlwaysOpaque(t *testing.T) {
	c := New()
	c.Write(RegWDAT, 0xFF) // nonzero content so index 15 appears beside index 0

	img := c.RenderFrame()
	for i := 3; i < len(img.Pix); i += 4 {
		if img.Pix[i] != 0xFF {
			t.Fatalf("pixel alpha at offset %d = 0x%02X, want 0xFF", i, img.Pix[i])
		}
	}
}

func TestPaletteEntryDependsOnlyOnIndex(t *testing.T) {
	for idx := uint8(0); idx < 16; idx++ {
		r1, g1, b1 := paletteEntry(idx)
		r2, g2, b2 := paletteEntry(idx)
		if r1 != r2 || g1 != g2 || b1 != b2 {
			t.Fatalf("paletteEntry(%d) not deterministic", idx)
		}
	}
	// spot checks per spec.md's formula: R=(i&8)?255:0, B=(i&4)?255:0, G=(i&3)*85
	r, g, b := paletteEntry(0x0F)
	if r != 255 || g != 255 || b != 255 {
		t.Fatalf("paletteEntry(0x0F) = (%d,%d,%d), want (255,255,255)", r, g, b)
	}
	r, g, b = paletteEntry(0x06)
	if r != 0 || g != 170 || b != 255 {
		t.Fatalf("paletteEntry(0x06) = (%d,%d,%d), want (0,170,255)", r, g, b)
	}
	r, g, b = paletteEntry(0x00)
	if r != 0 || g != 0 || b != 0 {
		t.Fatalf("paletteEntry(0x00) = (%d,%d,%d), want (0,0,0)", r, g, b)
	}
}

func TestConfWriteFrameSelectsTTMode(t *testing.T) {
	c := New()
	c.Write(RegCONF, 0x00) // cmd=0, dat=0: select write_frame=0
	c.Write(RegCONF, 0x11) // cmd=1, dat=1: enable two-color mode on frame 0
	if !c.frameTTMode[0] {
		t.Fatal("expected frame 0 two-color mode enabled")
	}
	if c.frameTTMode[1] {
		t.Fatal("expected frame 1 two-color mode untouched")
	}
}
