package mapper

import (
	"fmt"

	"github.com/example/nesgo/internal/busmem"
	"github.com/example/nesgo/internal/mos6502"
	"github.com/example/nesgo/internal/ppu"
	"github.com/example/nesgo/internal/rom"
)

func init() {
	register(0, func() Mapper { return &mapper0{} })
}

// mapper0 is NROM: one or two fixed 16KiB PRG banks with no bank
// switching, and a single fixed 8KiB CHR bank.
type mapper0 struct{}

func (m *mapper0) ID() uint16   { return 0 }
func (m *mapper0) Name() string { return "NROM" }

// Connect copies cart.PRGBanks into 0x8000-0xFFFF (mirroring bank 0
// into the upper half for 16KiB carts), mirrors internal RAM and PPU
// registers through the rest of the CPU space, wires OAM DMA at
// 0x4014, and copies CHR data and the header's mirroring mode into the
// PPU.
func (m *mapper0) Connect(cpu *mos6502.CPU, p *ppu.PPU, r *rom.ROM) error {
	bus := cpu.Bus

	lower := r.PRGBanks[0]
	bus.CopyFromRaw(lower, 0x8000, len(lower))

	upper := lower
	if r.PRGCount() > 1 {
		upper = r.PRGBanks[1]
	}
	bus.CopyFromRaw(upper, 0xC000, len(upper))

	if err := bus.SubscribeRead(0x0800, 0x2000, func(addr uint16) uint8 {
		return bus.GetByte(addr & 0x07FF)
	}); err != nil {
		return fmt.Errorf("mapper0: internal RAM mirror read: %w", err)
	}
	if err := bus.SubscribeWrite(0x0800, 0x2000, func(addr uint16, v uint8) {
		bus.SetByte(addr&0x07FF, v)
	}); err != nil {
		return fmt.Errorf("mapper0: internal RAM mirror write: %w", err)
	}

	if err := bus.SubscribeRead(0x2000, 0x4000, func(addr uint16) uint8 {
		return p.ReadRegister(0x2000 + addr&0x0007)
	}); err != nil {
		return fmt.Errorf("mapper0: PPU register read: %w", err)
	}
	if err := bus.SubscribeWrite(0x2000, 0x4000, func(addr uint16, v uint8) {
		p.WriteRegister(0x2000+addr&0x0007, v)
	}); err != nil {
		return fmt.Errorf("mapper0: PPU register write: %w", err)
	}

	if err := bus.SubscribeWrite(0x4014, 0x4015, func(addr uint16, v uint8) {
		oamDMA(cpu, p, v)
	}); err != nil {
		return fmt.Errorf("mapper0: OAM DMA: %w", err)
	}

	if err := bus.SubscribeWrite(0x4020, 0x6000, denyWrite("expansion ROM")); err != nil {
		return fmt.Errorf("mapper0: expansion write-deny: %w", err)
	}
	if err := bus.SubscribeWrite(0x8000, 0x10000, denyWrite("PRG ROM")); err != nil {
		return fmt.Errorf("mapper0: PRG write-deny: %w", err)
	}

	p.LoadCHR(r.CHRBanks[0])
	p.SetMirroring(r.Mirroring)

	return nil
}

// oamDMA copies the 256-byte page starting at page<<8 from CPU space
// into the PPU's OAM and stalls the MPU for the cycles real hardware
// spends driving the DMA, one extra cycle if the transfer starts on an
// odd CPU cycle.
func oamDMA(cpu *mos6502.CPU, p *ppu.PPU, page uint8) {
	base := uint16(page) << 8
	var buf [256]uint8
	for i := range buf {
		buf[i] = cpu.Bus.GetByte(base + uint16(i))
	}
	p.WriteOAMDMA(buf)

	stall := 513
	if cpu.Cycles%2 == 1 {
		stall = 514
	}
	cpu.AddHaltCycles(stall)
}

// denyWrite builds a write callback for a region real cartridge
// hardware can't be written to. Reaching it is a programming error in
// the emulator's own wiring, not a recoverable runtime fault, so it
// panics rather than returning an error busmem.WriteFn has no room for.
func denyWrite(region string) busmem.WriteFn {
	return func(addr uint16, v uint8) {
		panic(fmt.Errorf("%w: %s at %#04x", busmem.ErrWriteToReadOnly, region, addr))
	}
}
