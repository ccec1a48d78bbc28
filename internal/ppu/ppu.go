// Package ppu implements the NES Picture Processing Unit: register
// latches, the loopy_v/loopy_t scroll address machinery, the 16KiB
// logical PPU memory map (pattern tables, name tables, palette RAM,
// all their mirrorings), the per-scanline state machine, and a
// background-only scanline renderer.
package ppu

import (
	"github.com/example/nesgo/internal/bitfield"
	"github.com/example/nesgo/internal/busmem"
)

const (
	screenWidth  = 256
	screenHeight = 240
)

// Mirroring modes for the four logical name-table slots.
const (
	MirrorHorizontal = iota
	MirrorVertical
	MirrorFourScreen
)

var mirrorVectors = map[uint8][4]uint8{
	MirrorHorizontal: {0, 0, 1, 1},
	MirrorVertical:   {0, 1, 0, 1},
	MirrorFourScreen: {0, 1, 2, 3},
}

// PPU holds all emulated hardware state: registers, VRAM, OAM and
// the current frame buffer.
type PPU struct {
	vram *busmem.Space // 0x0000-0x1FFF pattern, 0x2000-0x3FFF name/palette

	nametables [4][1024]byte // four physical 1KiB name-table banks
	mirror     [4]uint8      // logical slot -> physical bank
	paletteRAM [32]byte

	oam     [256]uint8
	oamAddr uint8

	ctrl, mask, status *bitfield.Register

	loopyV, loopyT loopy
	fineX          uint8
	firstWrite     bool
	vramBuffer     uint8

	scanline int

	Framebuffer [screenWidth * screenHeight]uint8
}

// New returns a PPU with no CHR data loaded and horizontal mirroring.
func New() *PPU {
	p := &PPU{
		vram:   busmem.New(),
		mirror: mirrorVectors[MirrorHorizontal],
		ctrl:   newController(),
		mask:   newMask(),
		status: newStatus(),
		loopyV: newLoopy(),
		loopyT: newLoopy(),
	}
	p.installMemoryMap()
	p.Reset()
	return p
}

// installMemoryMap wires the name-table-mirror and palette-mirror
// logic into the PPU's own address space, the same per-cell callback
// mechanism used for the CPU bus (see busmem's package doc). Pattern
// table reads need no callback: LoadCHR copies bank data straight
// into the backing bytes and plain reads serve it directly.
func (p *PPU) installMemoryMap() {
	p.vram.SubscribeRead(0x2000, 0x3F00, func(addr uint16) uint8 {
		phys, idx := p.nametableCell(addr)
		return p.nametables[phys][idx]
	})
	p.vram.SubscribeWrite(0x2000, 0x3F00, func(addr uint16, v uint8) {
		phys, idx := p.nametableCell(addr)
		p.nametables[phys][idx] = v
	})
	p.vram.SubscribeRead(0x3F00, 0x4000, func(addr uint16) uint8 {
		return p.paletteRAM[paletteCell(addr)]
	})
	p.vram.SubscribeWrite(0x3F00, 0x4000, func(addr uint16, v uint8) {
		p.paletteRAM[paletteCell(addr)] = v
	})
}

func (p *PPU) nametableCell(addr uint16) (phys, idx uint16) {
	off := addr
	if off >= 0x3000 {
		off -= 0x1000
	}
	local := off - 0x2000
	slot := (local & 0x0C00) >> 10
	return uint16(p.mirror[slot]), local & 0x03FF
}

func paletteCell(addr uint16) uint16 {
	local := addr & 0x1F
	if local >= 0x10 && local%4 == 0 {
		local -= 0x10
	}
	return local
}

// Reset restores register and scanline state to power-on values. It
// does not touch loaded CHR data or the nametable mirroring mode,
// which belong to the cartridge, not the console's reset line.
func (p *PPU) Reset() {
	p.ctrl.SetInt(0)
	p.mask.SetInt(0)
	p.status.SetInt(0)
	p.oamAddr = 0
	p.fineX = 0
	p.firstWrite = true
	p.loopyV.setInt(0)
	p.loopyT.setInt(0)
	p.vramBuffer = 0
	p.scanline = -1
	p.Framebuffer = [screenWidth * screenHeight]uint8{}
}

// LoadCHR copies pattern-table data into the PPU's address space at
// 0x0000, bypassing the read/write callback tables the way a cartridge
// CHR ROM bank is wired in directly.
func (p *PPU) LoadCHR(data []byte) {
	n := len(data)
	if n > 0x2000 {
		n = 0x2000
	}
	p.vram.CopyFromRaw(data, 0, n)
}

// SetMirroring selects which physical name-table bank each of the
// four logical slots maps to.
func (p *PPU) SetMirroring(mode uint8) {
	p.mirror = mirrorVectors[mode]
}

// Scanline returns the current scanline, in the range -1..260.
func (p *PPU) Scanline() int { return p.scanline }

// NMIOnVBlank reports whether PPUCTRL bit 7 requests an NMI on the
// VBlank transition; the orchestrator checks this right after
// StartScanline to decide whether to fire the MPU's NMI line.
func (p *PPU) NMIOnVBlank() bool { return p.ctrl.Get("nmiOnVBlank") != 0 }

func (p *PPU) renderingEnabled() bool {
	return p.mask.Get("bgVisible") != 0 || p.mask.Get("spriteVisible") != 0
}

// ReadRegister serves a CPU read of one of 0x2000-0x2007 (and its
// mirrors, which the mapper normalizes down to this range before
// calling in).
func (p *PPU) ReadRegister(addr uint16) uint8 {
	switch 0x2000 | (addr & 7) {
	case RegStatus:
		ret := uint8(p.status.Int())
		p.status.SetBit("vblank", false)
		p.firstWrite = true
		return ret
	case RegOAMData:
		return p.readOAMByte()
	case RegData:
		target := p.loopyV.int() & 0x7FFF
		var ret uint8
		if target&0x3F00 < 0x3F00 {
			ret = p.vramBuffer
			p.vramBuffer = p.readVRAM(target)
		} else {
			ret = p.readVRAM(target)
			p.vramBuffer = ret
		}
		p.incrementVRAMAddr()
		return ret
	default:
		return 0
	}
}

// WriteRegister serves a CPU write of one of 0x2000-0x2007.
func (p *PPU) WriteRegister(addr uint16, val uint8) {
	switch 0x2000 | (addr & 7) {
	case RegController:
		p.ctrl.SetInt(uint16(val))
		p.loopyT.setNametable(uint16(val) & 0x03)
	case RegMask:
		p.mask.SetInt(uint16(val))
	case RegOAMAddr:
		p.oamAddr = val
	case RegOAMData:
		p.writeOAMByte(val)
	case RegScroll:
		if p.firstWrite {
			p.loopyT.setCoarseX(uint16(val) >> 3)
			p.fineX = val & 7
		} else {
			p.loopyT.setCoarseY(uint16(val) >> 3)
			p.loopyT.r.Set("fineY", uint16(val)&7)
		}
		p.firstWrite = !p.firstWrite
	case RegAddr:
		if p.firstWrite {
			t := (p.loopyT.int() & 0x00FF) | (uint16(val&0x3F) << 8)
			p.loopyT.setInt(t)
		} else {
			t := (p.loopyT.int() & 0xFF00) | uint16(val)
			p.loopyT.setInt(t)
			p.loopyV.setInt(t)
		}
		p.firstWrite = !p.firstWrite
	case RegData:
		p.writeVRAM(p.loopyV.int()&0x7FFF, val)
		p.incrementVRAMAddr()
	}
}

// WriteOAMDMA loads a full 256-byte CPU page into sprite RAM; copying
// the page out of CPU memory and charging the MPU its stall cycles is
// done by whatever installs the 0x4014 write callback (Mapper 0's
// Connect), not here.
func (p *PPU) WriteOAMDMA(page [256]uint8) { p.writeOAMDMA(page) }

func (p *PPU) incrementVRAMAddr() {
	inc := uint16(1)
	if p.ctrl.Get("vramIncrement") != 0 {
		inc = 32
	}
	p.loopyV.setInt((p.loopyV.int() + inc) & 0x7FFF)
}

func (p *PPU) readVRAM(addr uint16) uint8     { return p.vram.GetByte(addr & 0x3FFF) }
func (p *PPU) writeVRAM(addr uint16, v uint8) { p.vram.SetByte(addr&0x3FFF, v) }

// StartScanline runs the per-scanline entry actions described by the
// PPU timing model: clearing status flags and re-latching scroll
// state at the pre-render line, re-copying horizontal scroll bits on
// every visible line, and raising VBlank at scanline 241.
func (p *PPU) StartScanline() {
	switch {
	case p.scanline == -1:
		if p.renderingEnabled() {
			p.loopyV.setInt(p.loopyT.int())
		}
		p.status.SetBit("vblank", false)
		p.status.SetBit("spriteOverflow", false)
		p.status.SetBit("sprite0Hit", false)
	case p.scanline >= 0 && p.scanline <= 240 && p.renderingEnabled():
		v := p.loopyV.int()
		t := p.loopyT.int()
		v = (v &^ 0b0000010000011111) | (t & 0b0000010000011111)
		p.loopyV.setInt(v)
	case p.scanline == 241:
		p.status.SetBit("vblank", true)
	}
}

// EndScanline renders the just-finished visible scanline (if any),
// advances the scanline counter, and applies the fine-Y/coarse-Y
// carry chain on visible lines.
func (p *PPU) EndScanline() {
	if p.scanline >= 0 && p.scanline <= 239 && p.renderingEnabled() {
		p.renderScanline()
	}

	p.scanline++
	switch {
	case p.scanline == 262:
		p.scanline = -1
	case p.scanline == 0:
	case p.renderingEnabled() && p.scanline >= 0 && p.scanline <= 240:
		p.loopyV.incrementFineY()
	}
}

// renderScanline decodes 32 background tiles from the current
// nametable/pattern-table selection and writes one raw 2-bit pattern
// value per pixel into the framebuffer; per the spec this stage does
// not fold in the attribute-table palette select (the original
// implementation this is grounded on computes it and never applies
// it either).
func (p *PPU) renderScanline() {
	v := p.loopyV.int()
	bgTable := p.ctrl.Get("bgTable")

	for tileNo := 0; tileNo < 32; tileNo++ {
		ntSlot := (v & 0x0C00) >> 10
		tileX := v & 0x1F
		tileY := (v >> 5) & 0x1F
		fineY := (v >> 12) & 7

		phys := p.mirror[ntSlot]
		tileIdx := p.nametables[phys][tileY*32+tileX]
		_ = p.nametables[phys][0x3C0+(tileY/4)*8+(tileX/4)] // attribute byte, computed but unused (see doc comment)

		patternBase := bgTable*0x1000 + uint16(tileIdx)*16
		plane0 := p.vram.GetByte(patternBase + fineY)
		plane1 := p.vram.GetByte(patternBase + fineY + 8)

		for x := uint16(0); x < 8; x++ {
			bit := 7 - ((x + uint16(p.fineX)) & 7)
			px := (plane0>>bit)&1 | (((plane1 >> bit) & 1) << 1)
			p.Framebuffer[p.scanline*screenWidth+tileNo*8+int(x)] = px
		}

		if tileNo == 31 {
			break
		}
		v++
		if v&0xFF == 0x20 {
			v ^= 0x420
		}
	}
	p.loopyV.setInt(v)
}
