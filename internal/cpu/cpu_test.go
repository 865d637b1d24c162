package cpu

import (
	"testing"

	"github.com/sharpcore/lr35902/internal/cartridge"
	"github.com/sharpcore/lr35902/internal/diagnostic"
	"github.com/sharpcore/lr35902/internal/interrupts"
	"github.com/sharpcore/lr35902/internal/mmu"
)

func newTestSystem(t *testing.T, program []byte) (*Cpu, *mmu.Mmu) {
	t.Helper()
	image := make([]byte, 0x8000)
	copy(image, program)
	cart, err := cartridge.Load(image, diagnostic.Null())
	if err != nil {
		t.Fatalf("cartridge.Load: %v", err)
	}
	irq := interrupts.New()
	bus := mmu.New(cart, irq, nil, nil, nil, diagnostic.Null())
	bus.Write(0xFF50, 0x01) // skip the boot overlay so PC==0 reads the test program
	c := New(bus, irq, diagnostic.Null())
	return c, bus
}

func TestStepNOP(t *testing.T) {
	c, _ := newTestSystem(t, []byte{0x00})
	cycles := c.Step()
	if cycles != 4 {
		t.Fatalf("NOP cost %d cycles, want 4", cycles)
	}
	if c.Registers().PC != 1 {
		t.Fatalf("PC = %#04x after NOP, want 0x0001", c.Registers().PC)
	}
}

func TestStepLoadImmediateAndAdd(t *testing.T) {
	// LD B,0x0F ; LD A,0x01 ; ADD A,B
	c, _ := newTestSystem(t, []byte{0x06, 0x0F, 0x3E, 0x01, 0x80})
	c.Step()
	c.Step()
	c.Step()
	if c.Registers().A != 0x10 {
		t.Fatalf("A = %#02x, want 0x10", c.Registers().A)
	}
	if !c.halfFlag() {
		t.Fatalf("expected half-carry from 0x0F+0x01")
	}
}

func TestJRRelativeBranch(t *testing.T) {
	// JR +2 ; NOP ; NOP ; LD A,0x99 (target)
	c, _ := newTestSystem(t, []byte{0x18, 0x02, 0x00, 0x00, 0x3E, 0x99})
	cycles := c.Step()
	if cycles != 12 {
		t.Fatalf("JR cost %d cycles, want 12", cycles)
	}
	if c.Registers().PC != 4 {
		t.Fatalf("PC = %#04x after JR +2, want 0x0004", c.Registers().PC)
	}
}

func TestCallAndRet(t *testing.T) {
	// CALL 0x0005 ; NOP ; NOP(pad) ; RET (at 0x0005)
	c, _ := newTestSystem(t, []byte{0xCD, 0x05, 0x00, 0x00, 0x00, 0xC9})
	c.Registers().SP = 0xFFFE
	callCycles := c.Step()
	if callCycles != 24 {
		t.Fatalf("CALL cost %d cycles, want 24", callCycles)
	}
	if c.Registers().PC != 0x0005 {
		t.Fatalf("PC = %#04x after CALL, want 0x0005", c.Registers().PC)
	}
	retCycles := c.Step()
	if retCycles != 16 {
		t.Fatalf("RET cost %d cycles, want 16", retCycles)
	}
	if c.Registers().PC != 0x0003 {
		t.Fatalf("PC = %#04x after RET, want 0x0003 (return address)", c.Registers().PC)
	}
}

func TestEiDelaysByOneInstruction(t *testing.T) {
	// EI ; NOP ; NOP
	c, bus := newTestSystem(t, []byte{0xFB, 0x00, 0x00})
	irq := interrupts.New()
	_ = irq
	if c.IME() {
		t.Fatalf("IME must start false")
	}
	c.Step() // executes EI, schedules enable
	if c.IME() {
		t.Fatalf("IME must still be false immediately after EI")
	}
	c.Step() // executes the instruction following EI
	if !c.IME() {
		t.Fatalf("IME must be true after the instruction following EI completes")
	}
	_ = bus
}

func TestPushPopRoundTrip(t *testing.T) {
	// LD SP,0xFFFE ; LD DE,0xBEEF ; PUSH DE ; POP HL
	c, _ := newTestSystem(t, []byte{0x31, 0xFE, 0xFF, 0x11, 0xEF, 0xBE, 0xD5, 0xE1})
	c.Step()
	c.Step()
	c.Step()
	c.Step()
	if c.Registers().HL() != 0xBEEF {
		t.Fatalf("HL = %#04x after PUSH DE/POP HL, want 0xBEEF", c.Registers().HL())
	}
	if c.Registers().SP != 0xFFFE {
		t.Fatalf("SP = %#04x after a balanced PUSH/POP, want back at 0xFFFE", c.Registers().SP)
	}
}

func TestPopAFMasksLowNibble(t *testing.T) {
	// LD SP,0xFFFE ; LD BC,0x1234 ; PUSH BC ; POP AF
	c, _ := newTestSystem(t, []byte{0x31, 0xFE, 0xFF, 0x01, 0x34, 0x12, 0xC5, 0xF1})
	c.Step()
	c.Step()
	c.Step()
	c.Step()
	if c.Registers().AF() != 0x1230 {
		t.Fatalf("AF = %#04x after POP AF of pushed 0x1234, want 0x1230 (F's low nibble masked)", c.Registers().AF())
	}
}

func TestHaltWakesOnPendingInterrupt(t *testing.T) {
	c, _ := newTestSystem(t, []byte{0x76}) // HALT
	c.Step()
	if c.Mode() != ModeHalt {
		t.Fatalf("expected ModeHalt after executing HALT")
	}
	c.irq.Enable = 0x01
	c.irq.Request(interrupts.VBlank)
	cycles := c.Step()
	if c.Mode() != ModeNormal {
		t.Fatalf("expected Cpu to wake from HALT once an enabled interrupt is pending")
	}
	if cycles == 0 {
		t.Fatalf("expected a non-zero cycle count servicing the wake step")
	}
}

func TestStopIgnoresPendingInterrupt(t *testing.T) {
	// STOP's mandatory second byte is 0x00.
	c, _ := newTestSystem(t, []byte{0x10, 0x00})
	c.Step()
	if c.Mode() != ModeStop {
		t.Fatalf("expected ModeStop after executing STOP")
	}
	c.irq.Enable = 0x01
	c.irq.Request(interrupts.VBlank)
	c.Step()
	if c.Mode() != ModeStop {
		t.Fatalf("STOP must not wake on a pending interrupt; spec grants it no such exception")
	}
}
