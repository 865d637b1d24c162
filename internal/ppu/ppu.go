// Package ppu exposes the picture processor's memory-mapped register
// file and its per-tick contract with the Cpu. The full pixel pipeline
// is out of scope (spec §1) - this is the interface a real
// implementation would sit behind: the LCDC/STAT/scroll/palette
// registers, the LY line counter, and OAM DMA.
package ppu

import "github.com/sharpcore/lr35902/internal/interrupts"

// Register addresses, FF40-FF4B.
const (
	LCDC uint16 = 0xFF40
	STAT uint16 = 0xFF41
	SCY  uint16 = 0xFF42
	SCX  uint16 = 0xFF43
	LY   uint16 = 0xFF44
	LYC  uint16 = 0xFF45
	DMA  uint16 = 0xFF46
	BGP  uint16 = 0xFF47
	OBP0 uint16 = 0xFF48
	OBP1 uint16 = 0xFF49
	WY   uint16 = 0xFF4A
	WX   uint16 = 0xFF4B
)

// linesPerFrame and dotsPerLine describe the line counter's period; the
// dot-level pixel pipeline they would drive is the documented extension
// point, so Tick only needs the period to keep LY moving and to fire
// VBlank at the right line.
const (
	linesPerFrame = 154
	dotsPerLine   = 456
	vblankLine    = 144
)

// DMARequest describes a latched OAM DMA transfer: 160 bytes starting at
// source, to be copied into OAM. The transfer is modelled as
// instantaneous from the Cpu's point of view - no partial state is
// observable mid-transfer - which is the precise contract named in
// SPEC_FULL.md; a cycle-accurate implementation would instead drain this
// over 160 M-cycles and block CPU access to everything but HRAM.
type DMARequest struct {
	Source uint8 // high byte of the source address; low byte and offset are 0x00-0x9F
	Active bool
}

// PPU holds the register file and line counter. OAM and VRAM are plain
// Ram regions owned by the Mmu; accesses to them never reach the PPU.
type PPU struct {
	lcdc, stat, scy, scx, lyc, bgp, obp0, obp1, wy, wx uint8
	ly                                                 uint8
	dot                                                uint16
	dma                                                DMARequest

	irq *interrupts.Controller
}

// New returns a PPU with its registers at Game Boy reset state.
func New(irq *interrupts.Controller) *PPU {
	return &PPU{irq: irq}
}

// Tick advances the line counter by one dot (one T-state). Every
// dotsPerLine dots, LY advances; reaching vblankLine requests the
// VBlank interrupt for exactly one tick; reaching linesPerFrame wraps LY
// back to 0. This is the "per-tick contract" spec §4.6 calls out -
// everything inside a line (mode switching, STAT interrupts, pixel
// output) is the extension point.
func (p *PPU) Tick() {
	p.dot++
	if p.dot < dotsPerLine {
		return
	}
	p.dot = 0
	p.ly++
	if p.ly == vblankLine {
		if p.irq != nil {
			p.irq.Request(interrupts.VBlank)
		}
	}
	if p.ly >= linesPerFrame {
		p.ly = 0
	}
}

// LY returns the current line, for tests and diagnostics.
func (p *PPU) LY() uint8 { return p.ly }

// PendingDMA reports and clears a latched DMA transfer, for the Mmu to
// execute against OAM.
func (p *PPU) PendingDMA() (DMARequest, bool) {
	if !p.dma.Active {
		return DMARequest{}, false
	}
	req := p.dma
	p.dma.Active = false
	return req, true
}

// Read implements the Mmu's FF40-FF4B forwarding. LY is read-only from
// the CPU side, per spec §4.6.
func (p *PPU) Read(address uint16) uint8 {
	switch address {
	case LCDC:
		return p.lcdc
	case STAT:
		return p.stat | 0x80
	case SCY:
		return p.scy
	case SCX:
		return p.scx
	case LY:
		return p.ly
	case LYC:
		return p.lyc
	case DMA:
		return p.dma.Source
	case BGP:
		return p.bgp
	case OBP0:
		return p.obp0
	case OBP1:
		return p.obp1
	case WY:
		return p.wy
	case WX:
		return p.wx
	}
	return 0xFF
}

// Write implements the Mmu's FF40-FF4B forwarding. Writing DMA latches a
// transfer request for the Mmu to service; writing LY is ignored.
func (p *PPU) Write(address uint16, value uint8) {
	switch address {
	case LCDC:
		p.lcdc = value
	case STAT:
		p.stat = value & 0x78
	case SCY:
		p.scy = value
	case SCX:
		p.scx = value
	case LYC:
		p.lyc = value
	case DMA:
		p.dma = DMARequest{Source: value, Active: true}
	case BGP:
		p.bgp = value
	case OBP0:
		p.obp0 = value
	case OBP1:
		p.obp1 = value
	case WY:
		p.wy = value
	case WX:
		p.wx = value
	}
}
