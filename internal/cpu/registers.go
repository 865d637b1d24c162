package cpu

// Registers is the CPU's register file: six 16-bit registers, four of
// which (AF, BC, DE, HL) are also addressable as a pair of 8-bit
// halves. Pairs are never aliased in memory (spec §9's "packed register
// pairs via unions" note) - they are assembled high/low on every 16-bit
// read and split on every 16-bit write, so endianness is never in
// question.
type Registers struct {
	A, B, C, D, E, H, L uint8
	f                   uint8 // low nibble always masked to zero; use F()/SetF()
	SP, PC              uint16
}

// F returns the flag register. The low nibble is always zero.
func (r *Registers) F() uint8 { return r.f }

// SetF assigns the flag register, masking the low nibble to zero. This
// is the one place that invariant is enforced - every other flag
// mutation in the cpu package goes through this method, directly or via
// the Flags helpers in flags.go.
func (r *Registers) SetF(v uint8) { r.f = v & 0xF0 }

// AF returns the combined accumulator/flags pair, A in the high byte.
func (r *Registers) AF() uint16 { return uint16(r.A)<<8 | uint16(r.f) }

// SetAF assigns the combined accumulator/flags pair, masking F's low
// nibble.
func (r *Registers) SetAF(v uint16) {
	r.A = uint8(v >> 8)
	r.SetF(uint8(v))
}

func (r *Registers) BC() uint16 { return uint16(r.B)<<8 | uint16(r.C) }
func (r *Registers) SetBC(v uint16) {
	r.B = uint8(v >> 8)
	r.C = uint8(v)
}

func (r *Registers) DE() uint16 { return uint16(r.D)<<8 | uint16(r.E) }
func (r *Registers) SetDE(v uint16) {
	r.D = uint8(v >> 8)
	r.E = uint8(v)
}

func (r *Registers) HL() uint16 { return uint16(r.H)<<8 | uint16(r.L) }
func (r *Registers) SetHL(v uint16) {
	r.H = uint8(v >> 8)
	r.L = uint8(v)
}
