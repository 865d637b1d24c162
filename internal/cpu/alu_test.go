package cpu

import "testing"

func newTestCpu() *Cpu {
	return &Cpu{breakpoints: make(map[uint16]struct{})}
}

func TestAdd8Flags(t *testing.T) {
	tests := []struct {
		name          string
		a, b          uint8
		withCarry     bool
		carryIn       bool
		want          uint8
		wantZ, wantH, wantC bool
	}{
		{"no flags", 0x01, 0x01, false, false, 0x02, false, false, false},
		{"half carry", 0x0F, 0x01, false, false, 0x10, false, true, false},
		{"full carry", 0xFF, 0x01, false, false, 0x00, true, true, true},
		{"adc includes carry in", 0x01, 0x01, true, true, 0x03, false, false, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newTestCpu()
			c.setCarry(tt.carryIn)
			got := c.add8(tt.a, tt.b, tt.withCarry)
			if got != tt.want {
				t.Fatalf("add8(%#x,%#x)=%#x, want %#x", tt.a, tt.b, got, tt.want)
			}
			if c.zeroFlag() != tt.wantZ || c.halfFlag() != tt.wantH || c.carryFlag() != tt.wantC {
				t.Fatalf("flags Z=%v H=%v C=%v, want Z=%v H=%v C=%v", c.zeroFlag(), c.halfFlag(), c.carryFlag(), tt.wantZ, tt.wantH, tt.wantC)
			}
			if c.subFlag() {
				t.Fatalf("N flag set after addition")
			}
		})
	}
}

func TestSub8Flags(t *testing.T) {
	c := newTestCpu()
	got := c.sub8(0x10, 0x01, false)
	if got != 0x0F {
		t.Fatalf("sub8 = %#x, want 0x0F", got)
	}
	if !c.halfFlag() {
		t.Fatalf("expected half-borrow from 0x10-0x01")
	}
	if c.carryFlag() {
		t.Fatalf("unexpected carry from 0x10-0x01")
	}
	if !c.subFlag() {
		t.Fatalf("N flag must be set after subtraction")
	}
}

// TestLogicZeroFlag guards against the documented bug of testing
// result != 1 instead of result == 0.
func TestLogicZeroFlag(t *testing.T) {
	c := newTestCpu()
	got := c.and8(0x0F, 0xF0)
	if got != 0x00 {
		t.Fatalf("and8 = %#x, want 0x00", got)
	}
	if !c.zeroFlag() {
		t.Fatalf("Z flag must be set when AND result is zero")
	}
	if !c.halfFlag() {
		t.Fatalf("AND always sets H")
	}

	c2 := newTestCpu()
	got2 := c2.or8(0x00, 0x00)
	if !c2.zeroFlag() {
		t.Fatalf("Z flag must be set when OR result is zero")
	}
	got2notzero := c2.or8(0x00, 0x02)
	if c2.zeroFlag() {
		t.Fatalf("Z flag must be clear for nonzero OR result")
	}
	_ = got2
	_ = got2notzero
}

func TestIncDecHalfCarry(t *testing.T) {
	c := newTestCpu()
	if got := c.inc8(0x0F); got != 0x10 || !c.halfFlag() {
		t.Fatalf("inc8(0x0F) = %#x H=%v, want 0x10 H=true", got, c.halfFlag())
	}
	if got := c.dec8(0x10); got != 0x0F || !c.halfFlag() {
		t.Fatalf("dec8(0x10) = %#x H=%v, want 0x0F H=true", got, c.halfFlag())
	}
	c.setCarry(true)
	c.inc8(0x00)
	if !c.carryFlag() {
		t.Fatalf("INC must never touch the carry flag")
	}
}

// TestAddHL16Overflow guards against the documented bug of testing
// equality to 0xFFFF/0x0FFF instead of true overflow arithmetic.
func TestAddHL16Overflow(t *testing.T) {
	c := newTestCpu()
	got := c.addHL16(0x0FFF, 0x0001)
	if got != 0x1000 {
		t.Fatalf("addHL16 = %#x, want 0x1000", got)
	}
	if !c.halfFlag() {
		t.Fatalf("expected half-carry out of bit 11")
	}
	if c.carryFlag() {
		t.Fatalf("unexpected carry for 0x0FFF+0x0001")
	}

	c2 := newTestCpu()
	got2 := c2.addHL16(0xFFFF, 0x0001)
	if got2 != 0x0000 {
		t.Fatalf("addHL16 wraparound = %#x, want 0x0000", got2)
	}
	if !c2.carryFlag() {
		t.Fatalf("expected carry out of bit 15")
	}
}

func TestBitTestUsesMask(t *testing.T) {
	c := newTestCpu()
	c.bitTest(0x02, 1) // bit 1 of 0b0000_0010 is set
	if c.zeroFlag() {
		t.Fatalf("BIT 1 on a set bit must clear Z")
	}
	c.bitTest(0x02, 0) // bit 0 of 0b0000_0010 is clear
	if !c.zeroFlag() {
		t.Fatalf("BIT 0 on a clear bit must set Z")
	}
}

func TestCcfTogglesCarry(t *testing.T) {
	c := newTestCpu()
	c.setCarry(false)
	c.ccf()
	if !c.carryFlag() {
		t.Fatalf("CCF must set C when it was clear")
	}
	c.ccf()
	if c.carryFlag() {
		t.Fatalf("CCF must clear C when it was set")
	}
}

func TestDaaAfterBcdAddition(t *testing.T) {
	c := newTestCpu()
	c.reg.A = c.add8(0x45, 0x38, false) // decimal 45+38=83, binary result needs correction
	c.daa()
	if c.reg.A != 0x83 {
		t.Fatalf("DAA result = %#x, want 0x83", c.reg.A)
	}
}

// TestSwapInvolution guards SWAP nibbles applied twice returns the
// original byte.
func TestSwapInvolution(t *testing.T) {
	c := newTestCpu()
	for _, v := range []uint8{0x00, 0x12, 0xA5, 0xFF, 0x0F, 0xF0} {
		got := c.swap(c.swap(v))
		if got != v {
			t.Fatalf("swap(swap(%#x)) = %#x, want %#x", v, got, v)
		}
	}
}

// TestCplInvolution guards CPL applied twice returns A to its original
// value (complementing a byte twice is the identity).
func TestCplInvolution(t *testing.T) {
	c := newTestCpu()
	for _, v := range []uint8{0x00, 0x3C, 0xFF, 0x80, 0x01} {
		c.reg.A = v
		c.cpl()
		c.cpl()
		if c.reg.A != v {
			t.Fatalf("cpl(cpl(%#x)) = %#x, want %#x", v, c.reg.A, v)
		}
	}
}

// TestScfAlwaysSetsCarry guards SCF against the toggle semantics CCF
// uses: SCF is idempotent and unconditional, never a toggle.
func TestScfAlwaysSetsCarry(t *testing.T) {
	c := newTestCpu()
	c.setCarry(false)
	c.scf()
	if !c.carryFlag() {
		t.Fatalf("SCF must set C when it was clear")
	}
	c.scf()
	if !c.carryFlag() {
		t.Fatalf("SCF must leave C set when it was already set, not toggle it")
	}
}

// TestRlcRrcInverse guards RLC followed by RRC returning a byte to its
// original value: an 8-bit rotate left immediately undone by an 8-bit
// rotate right is the identity.
func TestRlcRrcInverse(t *testing.T) {
	c := newTestCpu()
	for _, v := range []uint8{0x00, 0x01, 0x80, 0x55, 0xAA, 0xFF} {
		got := c.rrc(c.rlc(v))
		if got != v {
			t.Fatalf("rrc(rlc(%#x)) = %#x, want %#x", v, got, v)
		}
	}
}
