// Package mapper implements the cartridge mapper registry and Mapper 0
// (NROM): the code that wires a parsed ROM's PRG/CHR banks and MMIO
// regions into the CPU and PPU address spaces.
package mapper

import (
	"errors"
	"fmt"

	"github.com/example/nesgo/internal/mos6502"
	"github.com/example/nesgo/internal/ppu"
	"github.com/example/nesgo/internal/rom"
)

// ErrUnknownMapper is returned by Get when a ROM names a mapper id this
// core has no registration for.
var ErrUnknownMapper = errors.New("mapper: unknown mapper id")

// Mapper wires one cartridge's banks and bus callbacks into a running
// MPU/PPU pair. Connect is called exactly once, at ROM load.
type Mapper interface {
	ID() uint16
	Name() string
	Connect(cpu *mos6502.CPU, p *ppu.PPU, r *rom.ROM) error
}

var registry = map[uint16]func() Mapper{}

func register(id uint16, fn func() Mapper) {
	if _, ok := registry[id]; ok {
		panic(fmt.Sprintf("mapper: id %d already registered", id))
	}
	registry[id] = fn
}

// Get constructs the mapper registered for id, or ErrUnknownMapper if
// none is.
func Get(id uint16) (Mapper, error) {
	fn, ok := registry[id]
	if !ok {
		return nil, fmt.Errorf("%w: %d", ErrUnknownMapper, id)
	}
	return fn(), nil
}
