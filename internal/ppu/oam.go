package ppu

// readOAMByte returns the byte at the current OAM address and does
// not move the address (reads never auto-increment on real hardware).
func (p *PPU) readOAMByte() uint8 {
	return p.oam[p.oamAddr]
}

// writeOAMByte writes val at the current OAM address and
// post-increments it, resolving the spec's open question in favor of
// the write-side always advancing.
func (p *PPU) writeOAMByte(val uint8) {
	p.oam[p.oamAddr] = val
	p.oamAddr++
}

// writeOAMDMA loads a full CPU page into OAM. Reading annyong's
// reg_oam_transfer closely: it walks all 256 offsets of the page
// starting from the current OAM address and wrapping, writing each
// byte through reg_oam_data (which itself just increments the OAM
// address by one per byte). Since both the page offset and the OAM
// write offset advance in lockstep over a full 256-byte wraparound,
// the net effect is a straight 1:1 copy, and the OAM address ends up
// back where it started.
func (p *PPU) writeOAMDMA(page [256]uint8) {
	p.oam = page
}
