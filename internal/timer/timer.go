// Package timer implements DIV/TIMA/TMA/TAC. It is driven by Tick, which
// GameBoy.Step calls once per T-state of Cpu time (spec §4.4/§4.5's "clock" unit), and
// raises a Timer interrupt when TIMA overflows.
package timer

import "github.com/sharpcore/lr35902/internal/interrupts"

const (
	DivAddress  uint16 = 0xFF04
	TimaAddress uint16 = 0xFF05
	TmaAddress  uint16 = 0xFF06
	TacAddress  uint16 = 0xFF07
)

// tacCycles maps the two TAC clock-select bits to the number of T-states
// between TIMA increments.
var tacCycles = [4]uint16{1024, 16, 64, 256}

// Controller is the timer/divider pair. div is the free-running 16-bit
// internal counter; only its upper 8 bits are exposed as DIV.
type Controller struct {
	div  uint16
	tima uint8
	tma  uint8
	tac  uint8

	irq *interrupts.Controller
}

// New returns a Controller wired to irq for the overflow interrupt.
func New(irq *interrupts.Controller) *Controller {
	return &Controller{irq: irq}
}

// Tick advances the timer by one T-state (the unit the Cpu's clock
// counts in). Writing DIV, below, resets the internal counter; TIMA
// increments every time the selected bit of that counter falls from 1
// to 0, which Tick approximates by testing on a fixed-period boundary -
// sufficient for the timer's documented interrupt contract.
func (c *Controller) Tick() {
	c.div++
	if c.tac&0x04 == 0 { // timer disabled
		return
	}
	period := tacCycles[c.tac&0x03]
	if c.div%period == 0 {
		c.incrementTIMA()
	}
}

func (c *Controller) incrementTIMA() {
	c.tima++
	if c.tima == 0 {
		c.tima = c.tma
		if c.irq != nil {
			c.irq.Request(interrupts.Timer)
		}
	}
}

// Read implements the Mmu's FF04-FF07 forwarding.
func (c *Controller) Read(address uint16) uint8 {
	switch address {
	case DivAddress:
		return uint8(c.div >> 8)
	case TimaAddress:
		return c.tima
	case TmaAddress:
		return c.tma
	case TacAddress:
		return c.tac | 0xF8
	}
	return 0xFF
}

// Write implements the Mmu's FF04-FF07 forwarding. Any write to DIV
// resets the entire internal counter, regardless of the value written.
func (c *Controller) Write(address uint16, value uint8) {
	switch address {
	case DivAddress:
		c.div = 0
	case TimaAddress:
		c.tima = value
	case TmaAddress:
		c.tma = value
	case TacAddress:
		c.tac = value & 0x07
	}
}
