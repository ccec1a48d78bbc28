// Package nes is the orchestrator: it owns the MPU, PPU, loaded ROM,
// and the mapper connecting them, and drives the frame loop that keeps
// the PPU three cycles ahead of the MPU, dispatching NMI on VBlank.
package nes

import (
	"context"
	"fmt"
	"io"

	"github.com/golang/glog"

	"github.com/example/nesgo/internal/busmem"
	"github.com/example/nesgo/internal/mapper"
	"github.com/example/nesgo/internal/mos6502"
	"github.com/example/nesgo/internal/ppu"
	"github.com/example/nesgo/internal/rom"
)

// dotsPerScanline is the PPU-cycle length of one scanline; the frame
// loop advances the MPU until at least this many PPU cycles have
// accumulated, then starts the next scanline.
const dotsPerScanline = 341

// NES ties an MPU, a PPU, a parsed ROM and its mapper together behind
// the frame loop described in the scanline state machine: one whole
// run is owned as a tree rooted here, and the only way the PPU and
// MPU interact outside that tree is through the register callbacks
// the mapper installs at load time.
type NES struct {
	CPU    *mos6502.CPU
	PPU    *ppu.PPU
	ROM    *rom.ROM
	Mapper mapper.Mapper

	controller *controller

	accumulator int
	trace       io.Writer
}

// New returns an NES with nothing loaded. Call LoadROM or
// LoadROMBytes before Step/Frame/Run.
func New() *NES {
	return &NES{controller: newController()}
}

// AttachTraceSink directs one Trace-formatted line per MPU instruction
// to w. Pass nil to stop tracing.
func (n *NES) AttachTraceSink(w io.Writer) { n.trace = w }

// LoadROM parses path as an iNES image and connects a fresh MPU/PPU
// pair to it through the ROM's mapper, replacing anything previously
// loaded.
func (n *NES) LoadROM(path string) error {
	r, err := rom.Load(path)
	if err != nil {
		return err
	}
	return n.loadROM(r)
}

// LoadROMBytes is LoadROM for an already-read iNES image (embedded
// test ROMs, a harness that fetched the bytes itself).
func (n *NES) LoadROMBytes(data []byte) error {
	r, err := rom.Parse(data)
	if err != nil {
		return err
	}
	return n.loadROM(r)
}

func (n *NES) loadROM(r *rom.ROM) error {
	m, err := mapper.Get(r.MapperID)
	if err != nil {
		return err
	}

	bus := busmem.New()
	cpu := mos6502.New(bus)
	p := ppu.New()

	if err := m.Connect(cpu, p, r); err != nil {
		return fmt.Errorf("nes: mapper connect: %w", err)
	}
	if err := n.controller.connect(bus); err != nil {
		return fmt.Errorf("nes: controller connect: %w", err)
	}
	// Second controller port: wired by no mapper in this core
	// (SPEC_FULL §6), but logged rather than silently swallowed so a
	// test ROM polling it is visible in the diagnostic trail.
	if err := bus.SubscribeRead(0x4017, 0x4018, func(addr uint16) uint8 {
		glog.Infof("nes: unimplemented second controller port read at %#04x", addr)
		return 0
	}); err != nil {
		return fmt.Errorf("nes: 0x4017 stub: %w", err)
	}

	cpu.Reset()
	p.Reset()

	n.ROM = r
	n.CPU = cpu
	n.PPU = p
	n.Mapper = m
	n.accumulator = 0

	glog.Infof("nes: loaded mapper %d (%s): %d PRG bank(s), %d CHR bank(s), mirroring=%d, battery=%v",
		m.ID(), m.Name(), r.PRGCount(), r.CHRCount(), r.Mirroring, r.Battery)
	return nil
}

// SetButtons sets controller 1's pressed-button bitmask (A, B, Select,
// Start, Up, Down, Left, Right, bit 0 to bit 7). Polling the actual
// input device is the caller's job.
func (n *NES) SetButtons(mask uint8) { n.controller.setButtons(mask) }

// Frame runs the MPU and PPU in lockstep through exactly one
// 262-scanline frame: StartScanline, an NMI dispatch at scanline 241
// if PPUCTRL requests one, enough MPU instructions to cover 341 PPU
// cycles, then EndScanline — repeated until the scanline counter wraps
// back to -1.
func (n *NES) Frame() error {
	for {
		n.PPU.StartScanline()

		if n.PPU.Scanline() == 241 && n.PPU.NMIOnVBlank() {
			n.CPU.RaiseNMI()
			cycles, err := n.CPU.Step()
			if err != nil {
				return err
			}
			n.accumulator += 3 * cycles
		}

		for n.accumulator < dotsPerScanline {
			if n.trace != nil {
				io.WriteString(n.trace, n.CPU.Trace())
			}
			cycles, err := n.CPU.Step()
			if err != nil {
				return err
			}
			n.accumulator += 3 * cycles
		}
		n.accumulator -= dotsPerScanline

		n.PPU.EndScanline()
		if n.PPU.Scanline() == -1 {
			return nil
		}
	}
}

// Step advances exactly one MPU instruction (or interrupt sequence),
// crossing a scanline boundary (StartScanline/EndScanline, NMI
// dispatch included) whenever the accumulator rolls over. It is a
// finer-grained primitive than Frame, for the debug REPL's single-step
// command.
func (n *NES) Step() (int, error) {
	if n.accumulator == 0 {
		n.PPU.StartScanline()
		if n.PPU.Scanline() == 241 && n.PPU.NMIOnVBlank() {
			n.CPU.RaiseNMI()
		}
	}
	if n.trace != nil {
		io.WriteString(n.trace, n.CPU.Trace())
	}
	cycles, err := n.CPU.Step()
	if err != nil {
		return 0, err
	}
	n.accumulator += 3 * cycles
	if n.accumulator >= dotsPerScanline {
		n.accumulator -= dotsPerScanline
		n.PPU.EndScanline()
	}
	return cycles, nil
}

// Run calls Frame until ctx is cancelled or a frame returns an error.
func (n *NES) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return nil
		default:
		}
		if err := n.Frame(); err != nil {
			return err
		}
	}
}
