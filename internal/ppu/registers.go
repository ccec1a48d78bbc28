package ppu

import "github.com/example/nesgo/internal/bitfield"

// PPU register addresses, as exposed on the CPU bus.
const (
	RegController = 0x2000
	RegMask       = 0x2001
	RegStatus     = 0x2002
	RegOAMAddr    = 0x2003
	RegOAMData    = 0x2004
	RegScroll     = 0x2005
	RegAddr       = 0x2006
	RegData       = 0x2007
	RegOAMDMA     = 0x4014
)

func newController() *bitfield.Register {
	return bitfield.New(
		bitfield.Field{Name: "nametable", Width: 2},
		bitfield.Field{Name: "vramIncrement", Width: 1},
		bitfield.Field{Name: "spriteTable", Width: 1},
		bitfield.Field{Name: "bgTable", Width: 1},
		bitfield.Field{Name: "spriteSize", Width: 1},
		bitfield.Field{Name: "masterSlave", Width: 1},
		bitfield.Field{Name: "nmiOnVBlank", Width: 1},
	)
}

func newMask() *bitfield.Register {
	return bitfield.New(
		bitfield.Field{Name: "greyscale", Width: 1},
		bitfield.Field{Name: "bgClipping", Width: 1},
		bitfield.Field{Name: "spriteClipping", Width: 1},
		bitfield.Field{Name: "bgVisible", Width: 1},
		bitfield.Field{Name: "spriteVisible", Width: 1},
		bitfield.Field{Name: "color", Width: 3},
	)
}

func newStatus() *bitfield.Register {
	return bitfield.New(
		bitfield.Field{Name: "unused", Width: 5},
		bitfield.Field{Name: "spriteOverflow", Width: 1},
		bitfield.Field{Name: "sprite0Hit", Width: 1},
		bitfield.Field{Name: "vblank", Width: 1},
	)
}
