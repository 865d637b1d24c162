// Package cpu implements fetch/decode/execute for the Sharp LR35902:
// the 256-entry base opcode table, the CB-prefixed 256-entry extended
// table, interrupt dispatch, and HALT/STOP handling.
package cpu

import (
	"encoding/binary"

	"github.com/sharpcore/lr35902/internal/diagnostic"
	"github.com/sharpcore/lr35902/internal/interrupts"
	"github.com/sharpcore/lr35902/internal/mmu"
)

// Mode distinguishes the three execution states a Step call can find
// the Cpu in.
type Mode uint8

const (
	ModeNormal Mode = iota
	ModeHalt
	ModeStop
)

// Cpu is the register file plus the fetch/decode/execute loop. It holds
// a non-owning reference to the Mmu (the sole path to memory, per
// spec §5) and to the interrupt controller it shares with the Mmu and
// every other subsystem that can request an interrupt.
type Cpu struct {
	reg Registers

	mmu *mmu.Mmu
	irq *interrupts.Controller
	log diagnostic.Logger

	mode Mode
	ime  bool

	// eiDelay counts down the one-instruction lag between EI executing
	// and IME actually taking effect (spec §4.5).
	eiDelay int

	clock uint64

	breakpoints map[uint16]struct{}
}

// New returns a Cpu at Game Boy power-on register state, wired to mmu
// for all memory access and to irq for interrupt dispatch.
func New(bus *mmu.Mmu, irq *interrupts.Controller, log diagnostic.Logger) *Cpu {
	if log == nil {
		log = diagnostic.Null()
	}
	return &Cpu{
		mmu:         bus,
		irq:         irq,
		log:         log,
		breakpoints: make(map[uint16]struct{}),
	}
}

// Registers exposes the register file for inspection (debuggers, tests,
// the gameboy package's reset logic).
func (c *Cpu) Registers() *Registers { return &c.reg }

// Clock returns the total number of T-states executed since reset.
func (c *Cpu) Clock() uint64 { return c.clock }

// Mode reports whether the Cpu is halted, stopped, or running normally.
func (c *Cpu) Mode() Mode { return c.mode }

// IME reports whether interrupts are currently enabled.
func (c *Cpu) IME() bool { return c.ime }

// AddBreakpoint registers addr as a breakpoint: Step logs a diagnostic
// event and continues normally when PC reaches it, rather than halting
// execution. The log line is the only effect; nothing else is signalled.
func (c *Cpu) AddBreakpoint(addr uint16) {
	c.breakpoints[addr] = struct{}{}
}

// RemoveBreakpoint clears a previously registered breakpoint.
func (c *Cpu) RemoveBreakpoint(addr uint16) {
	delete(c.breakpoints, addr)
}

// tick advances the clock by n T-states. Every bus access and every
// documented internal delay goes through here, so an instruction's
// total cost is whatever the sum of its actual reads, writes, and
// delays comes to - never a separately maintained cycle count (spec
// §4.4).
func (c *Cpu) tick(n uint64) {
	c.clock += n
}

func (c *Cpu) delay() { c.tick(4) }

func (c *Cpu) readByte(addr uint16) uint8 {
	v := c.mmu.Read(addr)
	c.tick(4)
	return v
}

func (c *Cpu) writeByte(addr uint16, v uint8) {
	c.mmu.Write(addr, v)
	c.tick(4)
}

func (c *Cpu) fetch8() uint8 {
	v := c.readByte(c.reg.PC)
	c.reg.PC++
	return v
}

func (c *Cpu) fetch16() uint16 {
	lo := c.fetch8()
	hi := c.fetch8()
	return binary.LittleEndian.Uint16([]byte{lo, hi})
}

func (c *Cpu) push16(v uint16) {
	c.reg.SP--
	c.writeByte(c.reg.SP, uint8(v>>8))
	c.reg.SP--
	c.writeByte(c.reg.SP, uint8(v))
}

func (c *Cpu) pop16() uint16 {
	lo := c.readByte(c.reg.SP)
	c.reg.SP++
	hi := c.readByte(c.reg.SP)
	c.reg.SP++
	return uint16(hi)<<8 | uint16(lo)
}

// Step executes exactly one step of the fetch/decode/execute loop: it
// services a pending interrupt if one is enabled and latched, advances
// one instruction if running, or idles for one machine cycle if
// halted/stopped and nothing has woken it. It returns the number of
// T-states consumed, for the caller to drive PPU/timer ticking with.
func (c *Cpu) Step() uint64 {
	before := c.clock

	if c.mode != ModeNormal {
		if c.mode == ModeHalt && c.irq != nil && c.irq.Pending() {
			c.mode = ModeNormal
		} else {
			// ModeStop never wakes here: spec §4.5 grants it no pending-
			// interrupt exception, only a reset (not yet modelled) exits it.
			c.delay()
			return c.clock - before
		}
	}

	if c.ime && c.irq != nil && c.irq.Pending() {
		c.dispatchInterrupt()
		return c.clock - before
	}

	if _, ok := c.breakpoints[c.reg.PC]; ok {
		c.log.Infof("cpu: breakpoint hit at 0x%04X", c.reg.PC)
	}

	opcode := c.fetch8()
	if opcode == 0xCB {
		sub := c.fetch8()
		cbTable[sub].exec(c)
	} else {
		baseTable[opcode].exec(c)
	}

	if c.eiDelay > 0 {
		c.eiDelay--
		if c.eiDelay == 0 {
			c.ime = true
		}
	}

	return c.clock - before
}

// dispatchInterrupt services the lowest-priority-numbered pending,
// enabled interrupt source: it clears IME and the source's IF bit,
// pushes PC, and jumps to the source's fixed vector. The five-M-cycle
// cost (two internal delays, the two-byte push, and the jump itself) is
// spent explicitly since no ordinary bus access accounts for it.
func (c *Cpu) dispatchInterrupt() {
	source, ok := c.irq.Lowest()
	if !ok {
		return
	}
	c.ime = false
	c.irq.Clear(source)
	c.mode = ModeNormal
	c.delay()
	c.delay()
	c.push16(c.reg.PC)
	c.delay()
	c.reg.PC = source.Vector()
}
