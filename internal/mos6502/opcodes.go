package mos6502

// Addressing modes.
// https://www.nesdev.org/obelisk-6502-guide/addressing.html
const (
	Implicit = iota
	Accumulator
	Immediate
	ZeroPage
	ZeroPageX
	ZeroPageY
	Relative
	Absolute
	AbsoluteX
	AbsoluteY
	Indirect
	IndirectX
	IndirectY
)

const stackPage = 0x0100

// opcode describes one of the 256 possible opcode bytes: its
// mnemonic, addressing mode, encoded length, base cycle cost, and the
// handler that executes it. illegal marks one of the undocumented
// opcodes a real 6502 still executes.
type opcode struct {
	name     string
	mode     uint8
	bytes    uint8
	cycles   uint8
	illegal  bool
	useExtra bool // add the addressing mode's page-cross cycle
	fn       func(c *CPU, r resolved) int
}

var opcodes = map[uint8]opcode{
	0x69: {"ADC", Immediate, 2, 2, false, false, adc},
	0x65: {"ADC", ZeroPage, 2, 3, false, false, adc},
	0x75: {"ADC", ZeroPageX, 2, 4, false, false, adc},
	0x6D: {"ADC", Absolute, 3, 4, false, false, adc},
	0x7D: {"ADC", AbsoluteX, 3, 4, false, true, adc},
	0x79: {"ADC", AbsoluteY, 3, 4, false, true, adc},
	0x61: {"ADC", IndirectX, 2, 6, false, false, adc},
	0x71: {"ADC", IndirectY, 2, 5, false, true, adc},

	0x29: {"AND", Immediate, 2, 2, false, false, and},
	0x25: {"AND", ZeroPage, 2, 3, false, false, and},
	0x35: {"AND", ZeroPageX, 2, 4, false, false, and},
	0x2D: {"AND", Absolute, 3, 4, false, false, and},
	0x3D: {"AND", AbsoluteX, 3, 4, false, true, and},
	0x39: {"AND", AbsoluteY, 3, 4, false, true, and},
	0x21: {"AND", IndirectX, 2, 6, false, false, and},
	0x31: {"AND", IndirectY, 2, 5, false, true, and},

	0x0A: {"ASL", Accumulator, 1, 2, false, false, asl},
	0x06: {"ASL", ZeroPage, 2, 5, false, false, asl},
	0x16: {"ASL", ZeroPageX, 2, 6, false, false, asl},
	0x0E: {"ASL", Absolute, 3, 6, false, false, asl},
	0x1E: {"ASL", AbsoluteX, 3, 7, false, false, asl},

	0x90: {"BCC", Relative, 2, 2, false, false, branch(flagCarry, false)},
	0xB0: {"BCS", Relative, 2, 2, false, false, branch(flagCarry, true)},
	0xF0: {"BEQ", Relative, 2, 2, false, false, branch(flagZero, true)},
	0x30: {"BMI", Relative, 2, 2, false, false, branch(flagNegative, true)},
	0xD0: {"BNE", Relative, 2, 2, false, false, branch(flagZero, false)},
	0x10: {"BPL", Relative, 2, 2, false, false, branch(flagNegative, false)},
	0x50: {"BVC", Relative, 2, 2, false, false, branch(flagOverflow, false)},
	0x70: {"BVS", Relative, 2, 2, false, false, branch(flagOverflow, true)},

	0x24: {"BIT", ZeroPage, 2, 3, false, false, bit},
	0x2C: {"BIT", Absolute, 3, 4, false, false, bit},

	0x00: {"BRK", Implicit, 2, 7, false, false, brk},

	0x18: {"CLC", Implicit, 1, 2, false, false, clc},
	0xD8: {"CLD", Implicit, 1, 2, false, false, cld},
	0x58: {"CLI", Implicit, 1, 2, false, false, cli},
	0xB8: {"CLV", Implicit, 1, 2, false, false, clv},

	0xC9: {"CMP", Immediate, 2, 2, false, false, cmp},
	0xC5: {"CMP", ZeroPage, 2, 3, false, false, cmp},
	0xD5: {"CMP", ZeroPageX, 2, 4, false, false, cmp},
	0xCD: {"CMP", Absolute, 3, 4, false, false, cmp},
	0xDD: {"CMP", AbsoluteX, 3, 4, false, true, cmp},
	0xD9: {"CMP", AbsoluteY, 3, 4, false, true, cmp},
	0xC1: {"CMP", IndirectX, 2, 6, false, false, cmp},
	0xD1: {"CMP", IndirectY, 2, 5, false, true, cmp},

	0xE0: {"CPX", Immediate, 2, 2, false, false, cpx},
	0xE4: {"CPX", ZeroPage, 2, 3, false, false, cpx},
	0xEC: {"CPX", Absolute, 3, 4, false, false, cpx},

	0xC0: {"CPY", Immediate, 2, 2, false, false, cpy},
	0xC4: {"CPY", ZeroPage, 2, 3, false, false, cpy},
	0xCC: {"CPY", Absolute, 3, 4, false, false, cpy},

	0xC6: {"DEC", ZeroPage, 2, 5, false, false, dec},
	0xD6: {"DEC", ZeroPageX, 2, 6, false, false, dec},
	0xCE: {"DEC", Absolute, 3, 6, false, false, dec},
	0xDE: {"DEC", AbsoluteX, 3, 7, false, false, dec},

	0xCA: {"DEX", Implicit, 1, 2, false, false, dex},
	0x88: {"DEY", Implicit, 1, 2, false, false, dey},

	0x49: {"EOR", Immediate, 2, 2, false, false, eor},
	0x45: {"EOR", ZeroPage, 2, 3, false, false, eor},
	0x55: {"EOR", ZeroPageX, 2, 4, false, false, eor},
	0x4D: {"EOR", Absolute, 3, 4, false, false, eor},
	0x5D: {"EOR", AbsoluteX, 3, 4, false, true, eor},
	0x59: {"EOR", AbsoluteY, 3, 4, false, true, eor},
	0x41: {"EOR", IndirectX, 2, 6, false, false, eor},
	0x51: {"EOR", IndirectY, 2, 5, false, true, eor},

	0xE6: {"INC", ZeroPage, 2, 5, false, false, inc},
	0xF6: {"INC", ZeroPageX, 2, 6, false, false, inc},
	0xEE: {"INC", Absolute, 3, 6, false, false, inc},
	0xFE: {"INC", AbsoluteX, 3, 7, false, false, inc},

	0xE8: {"INX", Implicit, 1, 2, false, false, inx},
	0xC8: {"INY", Implicit, 1, 2, false, false, iny},

	0x4C: {"JMP", Absolute, 3, 3, false, false, jmp},
	0x6C: {"JMP", Indirect, 3, 5, false, false, jmp},
	0x20: {"JSR", Absolute, 3, 6, false, false, jsr},

	0xA9: {"LDA", Immediate, 2, 2, false, false, lda},
	0xA5: {"LDA", ZeroPage, 2, 3, false, false, lda},
	0xB5: {"LDA", ZeroPageX, 2, 4, false, false, lda},
	0xAD: {"LDA", Absolute, 3, 4, false, false, lda},
	0xBD: {"LDA", AbsoluteX, 3, 4, false, true, lda},
	0xB9: {"LDA", AbsoluteY, 3, 4, false, true, lda},
	0xA1: {"LDA", IndirectX, 2, 6, false, false, lda},
	0xB1: {"LDA", IndirectY, 2, 5, false, true, lda},

	0xA2: {"LDX", Immediate, 2, 2, false, false, ldx},
	0xA6: {"LDX", ZeroPage, 2, 3, false, false, ldx},
	0xB6: {"LDX", ZeroPageY, 2, 4, false, false, ldx},
	0xAE: {"LDX", Absolute, 3, 4, false, false, ldx},
	0xBE: {"LDX", AbsoluteY, 3, 4, false, true, ldx},

	0xA0: {"LDY", Immediate, 2, 2, false, false, ldy},
	0xA4: {"LDY", ZeroPage, 2, 3, false, false, ldy},
	0xB4: {"LDY", ZeroPageX, 2, 4, false, false, ldy},
	0xAC: {"LDY", Absolute, 3, 4, false, false, ldy},
	0xBC: {"LDY", AbsoluteX, 3, 4, false, true, ldy},

	0x4A: {"LSR", Accumulator, 1, 2, false, false, lsr},
	0x46: {"LSR", ZeroPage, 2, 5, false, false, lsr},
	0x56: {"LSR", ZeroPageX, 2, 6, false, false, lsr},
	0x4E: {"LSR", Absolute, 3, 6, false, false, lsr},
	0x5E: {"LSR", AbsoluteX, 3, 7, false, false, lsr},

	0xEA: {"NOP", Implicit, 1, 2, false, false, nop},

	0x09: {"ORA", Immediate, 2, 2, false, false, ora},
	0x05: {"ORA", ZeroPage, 2, 3, false, false, ora},
	0x15: {"ORA", ZeroPageX, 2, 4, false, false, ora},
	0x0D: {"ORA", Absolute, 3, 4, false, false, ora},
	0x1D: {"ORA", AbsoluteX, 3, 4, false, true, ora},
	0x19: {"ORA", AbsoluteY, 3, 4, false, true, ora},
	0x01: {"ORA", IndirectX, 2, 6, false, false, ora},
	0x11: {"ORA", IndirectY, 2, 5, false, true, ora},

	0x48: {"PHA", Implicit, 1, 3, false, false, pha},
	0x08: {"PHP", Implicit, 1, 3, false, false, php},
	0x68: {"PLA", Implicit, 1, 4, false, false, pla},
	0x28: {"PLP", Implicit, 1, 4, false, false, plp},

	0x2A: {"ROL", Accumulator, 1, 2, false, false, rol},
	0x26: {"ROL", ZeroPage, 2, 5, false, false, rol},
	0x36: {"ROL", ZeroPageX, 2, 6, false, false, rol},
	0x2E: {"ROL", Absolute, 3, 6, false, false, rol},
	0x3E: {"ROL", AbsoluteX, 3, 7, false, false, rol},

	0x6A: {"ROR", Accumulator, 1, 2, false, false, ror},
	0x66: {"ROR", ZeroPage, 2, 5, false, false, ror},
	0x76: {"ROR", ZeroPageX, 2, 6, false, false, ror},
	0x6E: {"ROR", Absolute, 3, 6, false, false, ror},
	0x7E: {"ROR", AbsoluteX, 3, 7, false, false, ror},

	0x40: {"RTI", Implicit, 1, 6, false, false, rti},
	0x60: {"RTS", Implicit, 1, 6, false, false, rts},

	0xE9: {"SBC", Immediate, 2, 2, false, false, sbc},
	0xE5: {"SBC", ZeroPage, 2, 3, false, false, sbc},
	0xF5: {"SBC", ZeroPageX, 2, 4, false, false, sbc},
	0xED: {"SBC", Absolute, 3, 4, false, false, sbc},
	0xFD: {"SBC", AbsoluteX, 3, 4, false, true, sbc},
	0xF9: {"SBC", AbsoluteY, 3, 4, false, true, sbc},
	0xE1: {"SBC", IndirectX, 2, 6, false, false, sbc},
	0xF1: {"SBC", IndirectY, 2, 5, false, true, sbc},

	0x38: {"SEC", Implicit, 1, 2, false, false, sec},
	0xF8: {"SED", Implicit, 1, 2, false, false, sed},
	0x78: {"SEI", Implicit, 1, 2, false, false, sei},

	0x85: {"STA", ZeroPage, 2, 3, false, false, sta},
	0x95: {"STA", ZeroPageX, 2, 4, false, false, sta},
	0x8D: {"STA", Absolute, 3, 4, false, false, sta},
	0x9D: {"STA", AbsoluteX, 3, 5, false, false, sta},
	0x99: {"STA", AbsoluteY, 3, 5, false, false, sta},
	0x81: {"STA", IndirectX, 2, 6, false, false, sta},
	0x91: {"STA", IndirectY, 2, 6, false, false, sta},

	0x86: {"STX", ZeroPage, 2, 3, false, false, stx},
	0x96: {"STX", ZeroPageY, 2, 4, false, false, stx},
	0x8E: {"STX", Absolute, 3, 4, false, false, stx},

	0x84: {"STY", ZeroPage, 2, 3, false, false, sty},
	0x94: {"STY", ZeroPageX, 2, 4, false, false, sty},
	0x8C: {"STY", Absolute, 3, 4, false, false, sty},

	0xAA: {"TAX", Implicit, 1, 2, false, false, tax},
	0xA8: {"TAY", Implicit, 1, 2, false, false, tay},
	0xBA: {"TSX", Implicit, 1, 2, false, false, tsx},
	0x8A: {"TXA", Implicit, 1, 2, false, false, txa},
	0x9A: {"TXS", Implicit, 1, 2, false, false, txs},
	0x98: {"TYA", Implicit, 1, 2, false, false, tya},

	// Undocumented opcodes. Addressing modes and cycle counts per
	// https://www.nesdev.org/undocumented_opcodes.txt and the
	// NESTEST reference trace.
	0x1A: {"NOP", Implicit, 1, 2, true, false, nop},
	0x3A: {"NOP", Implicit, 1, 2, true, false, nop},
	0x5A: {"NOP", Implicit, 1, 2, true, false, nop},
	0x7A: {"NOP", Implicit, 1, 2, true, false, nop},
	0xDA: {"NOP", Implicit, 1, 2, true, false, nop},
	0xFA: {"NOP", Implicit, 1, 2, true, false, nop},
	0x80: {"NOP", Immediate, 2, 2, true, false, nop},
	0x82: {"NOP", Immediate, 2, 2, true, false, nop},
	0x89: {"NOP", Immediate, 2, 2, true, false, nop},
	0xC2: {"NOP", Immediate, 2, 2, true, false, nop},
	0xE2: {"NOP", Immediate, 2, 2, true, false, nop},
	0x04: {"NOP", ZeroPage, 2, 3, true, false, nop},
	0x44: {"NOP", ZeroPage, 2, 3, true, false, nop},
	0x64: {"NOP", ZeroPage, 2, 3, true, false, nop},
	0x14: {"NOP", ZeroPageX, 2, 4, true, false, nop},
	0x34: {"NOP", ZeroPageX, 2, 4, true, false, nop},
	0x54: {"NOP", ZeroPageX, 2, 4, true, false, nop},
	0x74: {"NOP", ZeroPageX, 2, 4, true, false, nop},
	0xD4: {"NOP", ZeroPageX, 2, 4, true, false, nop},
	0xF4: {"NOP", ZeroPageX, 2, 4, true, false, nop},
	0x0C: {"NOP", Absolute, 3, 4, true, false, nop},
	0x1C: {"NOP", AbsoluteX, 3, 4, true, true, nop},
	0x3C: {"NOP", AbsoluteX, 3, 4, true, true, nop},
	0x5C: {"NOP", AbsoluteX, 3, 4, true, true, nop},
	0x7C: {"NOP", AbsoluteX, 3, 4, true, true, nop},
	0xDC: {"NOP", AbsoluteX, 3, 4, true, true, nop},
	0xFC: {"NOP", AbsoluteX, 3, 4, true, true, nop},
	0xEB: {"SBC", Immediate, 2, 2, true, false, sbc},

	0xA7: {"LAX", ZeroPage, 2, 3, true, false, lax},
	0xB7: {"LAX", ZeroPageY, 2, 4, true, false, lax},
	0xAF: {"LAX", Absolute, 3, 4, true, false, lax},
	0xBF: {"LAX", AbsoluteY, 3, 4, true, true, lax},
	0xA3: {"LAX", IndirectX, 2, 6, true, false, lax},
	0xB3: {"LAX", IndirectY, 2, 5, true, true, lax},

	0x87: {"SAX", ZeroPage, 2, 3, true, false, sax},
	0x97: {"SAX", ZeroPageY, 2, 4, true, false, sax},
	0x8F: {"SAX", Absolute, 3, 4, true, false, sax},
	0x83: {"SAX", IndirectX, 2, 6, true, false, sax},

	0xC7: {"DCP", ZeroPage, 2, 5, true, false, dcp},
	0xD7: {"DCP", ZeroPageX, 2, 6, true, false, dcp},
	0xCF: {"DCP", Absolute, 3, 6, true, false, dcp},
	0xDF: {"DCP", AbsoluteX, 3, 7, true, false, dcp},
	0xDB: {"DCP", AbsoluteY, 3, 7, true, false, dcp},
	0xC3: {"DCP", IndirectX, 2, 8, true, false, dcp},
	0xD3: {"DCP", IndirectY, 2, 8, true, false, dcp},

	0xE7: {"ISB", ZeroPage, 2, 5, true, false, isb},
	0xF7: {"ISB", ZeroPageX, 2, 6, true, false, isb},
	0xEF: {"ISB", Absolute, 3, 6, true, false, isb},
	0xFF: {"ISB", AbsoluteX, 3, 7, true, false, isb},
	0xFB: {"ISB", AbsoluteY, 3, 7, true, false, isb},
	0xE3: {"ISB", IndirectX, 2, 8, true, false, isb},
	0xF3: {"ISB", IndirectY, 2, 8, true, false, isb},

	0x07: {"SLO", ZeroPage, 2, 5, true, false, slo},
	0x17: {"SLO", ZeroPageX, 2, 6, true, false, slo},
	0x0F: {"SLO", Absolute, 3, 6, true, false, slo},
	0x1F: {"SLO", AbsoluteX, 3, 7, true, false, slo},
	0x1B: {"SLO", AbsoluteY, 3, 7, true, false, slo},
	0x03: {"SLO", IndirectX, 2, 8, true, false, slo},
	0x13: {"SLO", IndirectY, 2, 8, true, false, slo},

	0x27: {"RLA", ZeroPage, 2, 5, true, false, rla},
	0x37: {"RLA", ZeroPageX, 2, 6, true, false, rla},
	0x2F: {"RLA", Absolute, 3, 6, true, false, rla},
	0x3F: {"RLA", AbsoluteX, 3, 7, true, false, rla},
	0x3B: {"RLA", AbsoluteY, 3, 7, true, false, rla},
	0x23: {"RLA", IndirectX, 2, 8, true, false, rla},
	0x33: {"RLA", IndirectY, 2, 8, true, false, rla},

	0x47: {"SRE", ZeroPage, 2, 5, true, false, sre},
	0x57: {"SRE", ZeroPageX, 2, 6, true, false, sre},
	0x4F: {"SRE", Absolute, 3, 6, true, false, sre},
	0x5F: {"SRE", AbsoluteX, 3, 7, true, false, sre},
	0x5B: {"SRE", AbsoluteY, 3, 7, true, false, sre},
	0x43: {"SRE", IndirectX, 2, 8, true, false, sre},
	0x53: {"SRE", IndirectY, 2, 8, true, false, sre},

	0x67: {"RRA", ZeroPage, 2, 5, true, false, rra},
	0x77: {"RRA", ZeroPageX, 2, 6, true, false, rra},
	0x6F: {"RRA", Absolute, 3, 6, true, false, rra},
	0x7F: {"RRA", AbsoluteX, 3, 7, true, false, rra},
	0x7B: {"RRA", AbsoluteY, 3, 7, true, false, rra},
	0x63: {"RRA", IndirectX, 2, 8, true, false, rra},
	0x73: {"RRA", IndirectY, 2, 8, true, false, rra},
}

func operandBytes(mode uint8) uint16 {
	switch mode {
	case Implicit, Accumulator:
		return 0
	case Immediate, ZeroPage, ZeroPageX, ZeroPageY, Relative, IndirectX, IndirectY:
		return 1
	default:
		return 2
	}
}
