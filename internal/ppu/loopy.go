package ppu

import "github.com/example/nesgo/internal/bitfield"

// loopy wraps the PPU's 15-bit "current"/"temporary" VRAM address
// registers, named after Loopy, who documented their bit layout:
//
//	yyy NN YYYYY XXXXX
//	||| || ||||| +++++-- coarse X scroll
//	||| || +++++-------- coarse Y scroll
//	||| ++-------------- nametable select
//	+++----------------- fine Y scroll
type loopy struct {
	r *bitfield.Register
}

func newLoopy() loopy {
	return loopy{r: bitfield.New(
		bitfield.Field{Name: "coarseX", Width: 5},
		bitfield.Field{Name: "coarseY", Width: 5},
		bitfield.Field{Name: "nametable", Width: 2},
		bitfield.Field{Name: "fineY", Width: 3},
	)}
}

func (l loopy) int() uint16     { return l.r.Int() }
func (l loopy) setInt(v uint16) { l.r.SetInt(v & 0x7FFF) }

func (l loopy) coarseX() uint16     { return l.r.Get("coarseX") }
func (l loopy) setCoarseX(v uint16) { l.r.Set("coarseX", v) }
func (l loopy) coarseY() uint16     { return l.r.Get("coarseY") }
func (l loopy) setCoarseY(v uint16) { l.r.Set("coarseY", v) }
func (l loopy) nametable() uint16   { return l.r.Get("nametable") }
func (l loopy) setNametable(v uint16) { l.r.Set("nametable", v) }
func (l loopy) fineY() uint16       { return l.r.Get("fineY") }

// incrementCoarseX wraps coarse-X at 31 and toggles the horizontal
// nametable bit on wrap.
func (l loopy) incrementCoarseX() {
	if l.coarseX() == 31 {
		l.setCoarseX(0)
		l.setNametable(l.nametable() ^ 0b01)
	} else {
		l.setCoarseX(l.coarseX() + 1)
	}
}

// incrementFineY implements the end-of-scanline fine-Y/coarse-Y
// carry chain exactly as annyong/ppu/ppu.py end_scanline does it:
// fine Y lives in the top three bits, so adding 0x1000 increments it
// and an overflow into bit 15 means fine Y wrapped past 7 and coarse
// Y must absorb the carry, with the two boundary cases of the
// attribute-row skip (coarse Y == 30) and the out-of-range value some
// ROMs leave in coarse Y (== 31).
func (l loopy) incrementFineY() {
	v := l.int() + 0x1000
	if v&0x8000 != 0 {
		v -= 0x7FE0
		switch {
		case v&0x3FF == 0x3C0:
			v = (v & 0xF000) | ((v + 0x440) & 0x0FFF)
		case v&0xFFF == 0x400 || v&0xFFF == 0xC00:
			v -= 0x400
		}
	}
	l.setInt(v)
}
