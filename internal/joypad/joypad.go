// Package joypad emulates the P1 (FF00) register: the CPU selects which
// of the two 4-bit button groups it wants to read by clearing one of
// bits 4/5, and reads back the low nibble as active-low.
package joypad

import "github.com/sharpcore/lr35902/internal/interrupts"

// Button is a bitmask identifying one physical key.
type Button uint8

const (
	ButtonA      Button = 0x01
	ButtonB      Button = 0x02
	ButtonSelect Button = 0x04
	ButtonStart  Button = 0x08
	ButtonRight  Button = 0x10
	ButtonLeft   Button = 0x20
	ButtonUp     Button = 0x40
	ButtonDown   Button = 0x80
)

// Address is FF00, the P1 register.
const Address uint16 = 0xFF00

// Controller tracks which select lines the game has asked for and which
// physical buttons are currently held.
type Controller struct {
	register uint8 // bits 4-5 as last written by the CPU, bits 0-3 always read back 1 unless selected
	pressed  Button

	irq *interrupts.Controller
}

// New returns a Controller with no keys held and both select lines
// de-asserted (register reads all-high, as on reset).
func New(irq *interrupts.Controller) *Controller {
	return &Controller{register: 0x30, irq: irq}
}

// Read implements the Mmu's FF00 forwarding.
func (c *Controller) Read(address uint16) uint8 {
	if address != Address {
		return 0xFF
	}
	result := c.register | 0xC0 | 0x0F // bits 6-7 are unused, always read high; bits 0-3 are active-low
	if c.register&0x10 == 0 {          // direction keys selected
		result &^= uint8(c.pressed) >> 4
	}
	if c.register&0x20 == 0 { // action keys selected
		result &^= uint8(c.pressed) & 0x0F
	}
	return result
}

// Write implements the Mmu's FF00 forwarding; only bits 4-5 (the select
// lines) are writable.
func (c *Controller) Write(address uint16, value uint8) {
	if address != Address {
		return
	}
	c.register = (c.register & 0xCF) | (value & 0x30)
}

// Press marks key as held, requesting a Joypad interrupt if the
// newly-set bit is one the game is currently selecting for and the key
// was not already held.
func (c *Controller) Press(key Button) {
	already := c.pressed&key != 0
	c.pressed |= key
	if already {
		return
	}
	isDirection := key > ButtonStart
	selected := (isDirection && c.register&0x10 == 0) || (!isDirection && c.register&0x20 == 0)
	if selected && c.irq != nil {
		c.irq.Request(interrupts.Joypad)
	}
}

// Release marks key as no longer held.
func (c *Controller) Release(key Button) {
	c.pressed &^= key
}
