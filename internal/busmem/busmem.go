// Package busmem implements a flat addressable byte space with per-cell
// read/write callback dispatch, the way annyong/memory.py backs both the
// NES CPU's 64KiB space and the PPU's 16KiB logical space: a callback
// installed on a cell fully replaces the backing byte for that side, and
// lookup is O(1) rather than a scan over a range list.
package busmem

import "errors"

// ErrDoubleSubscription is returned when a callback is installed on a
// cell that already has one for that side.
var ErrDoubleSubscription = errors.New("busmem: double subscription")

// ErrWriteToReadOnly is the error a write-deny callback installed over
// a region that must not be written (PRG ROM, expansion area) panics
// with; WriteFn has no error return.
var ErrWriteToReadOnly = errors.New("busmem: write to read-only region")

// ReadFn is invoked in place of a raw byte read when installed on a cell.
type ReadFn func(addr uint16) uint8

// WriteFn is invoked in place of a raw byte write when installed on a
// cell. It returns nothing.
type WriteFn func(addr uint16, val uint8)

// Space is a 65,536-cell byte array with two parallel per-address
// callback tables, one for reads and one for writes.
type Space struct {
	ram   []uint8
	reads []ReadFn
	write []WriteFn
}

const size = 1 << 16

// New returns a zeroed Space with no callbacks installed.
func New() *Space {
	s := &Space{}
	s.Reset()
	return s
}

// GetByte returns the read callback's result if one is installed at
// addr, else the backing byte.
func (s *Space) GetByte(addr uint16) uint8 {
	if fn := s.reads[addr]; fn != nil {
		return fn(addr)
	}
	return s.ram[addr]
}

// GetWord reads the little-endian word at addr and addr+1. addr+1 wraps
// modulo 65536 via normal uint16 arithmetic; it does not apply any
// addressing-mode-specific zero-page wrap — that is the caller's job.
func (s *Space) GetWord(addr uint16) uint16 {
	lo := uint16(s.GetByte(addr))
	hi := uint16(s.GetByte(addr + 1))
	return lo | (hi << 8)
}

// SetByte invokes the write callback installed at addr, if any;
// otherwise it writes the backing byte.
func (s *Space) SetByte(addr uint16, v uint8) {
	if fn := s.write[addr]; fn != nil {
		fn(addr, v)
		return
	}
	s.ram[addr] = v
}

// SetWord writes v as two bytes, low byte first then high byte.
func (s *Space) SetWord(addr uint16, v uint16) {
	s.SetByte(addr, uint8(v))
	s.SetByte(addr+1, uint8(v>>8))
}

// SubscribeRead installs fn on every address in [start, end). It returns
// ErrDoubleSubscription if any cell in the range already has a read
// callback.
func (s *Space) SubscribeRead(start, end int, fn ReadFn) error {
	for a := start; a < end; a++ {
		if s.reads[a] != nil {
			return ErrDoubleSubscription
		}
	}
	for a := start; a < end; a++ {
		s.reads[a] = fn
	}
	return nil
}

// SubscribeWrite installs fn on every address in [start, end). It
// returns ErrDoubleSubscription if any cell in the range already has a
// write callback.
func (s *Space) SubscribeWrite(start, end int, fn WriteFn) error {
	for a := start; a < end; a++ {
		if s.write[a] != nil {
			return ErrDoubleSubscription
		}
	}
	for a := start; a < end; a++ {
		s.write[a] = fn
	}
	return nil
}

// CopyFromRaw bulk-loads raw[0:size] into the backing RAM starting at
// start, bypassing any installed callbacks.
func (s *Space) CopyFromRaw(raw []byte, start int, size int) {
	copy(s.ram[start:start+size], raw[:size])
}

// Reset zeroes the backing RAM and clears both callback tables.
func (s *Space) Reset() {
	s.ram = make([]uint8, size)
	s.reads = make([]ReadFn, size)
	s.write = make([]WriteFn, size)
}
