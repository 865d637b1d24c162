// Package mmu decodes the 16-bit address space described in spec §3.3
// and routes every CPU read/write to the owning region or subsystem. The
// Mmu is the single authoritative mutator of memory contents; nothing
// else is permitted to bypass it (spec §5).
package mmu

import (
	"github.com/sharpcore/lr35902/internal/boot"
	"github.com/sharpcore/lr35902/internal/cartridge"
	"github.com/sharpcore/lr35902/internal/diagnostic"
	"github.com/sharpcore/lr35902/internal/interrupts"
	"github.com/sharpcore/lr35902/internal/joypad"
	"github.com/sharpcore/lr35902/internal/memio"
	"github.com/sharpcore/lr35902/internal/ppu"
	"github.com/sharpcore/lr35902/internal/timer"
)

const (
	vramBase, vramSize   = 0x8000, 0x2000
	extRamBase, extRamSize = 0xA000, 0x2000
	wramBase, wramSize   = 0xC000, 0x2000
	oamBase, oamSize     = 0xFE00, 0x00A0
	hramBase, hramSize   = 0xFF80, 0x007F

	echoBase = 0xE000
	echoEnd  = 0xFDFF
	echoSize = 0x1E00 // x < 0x1E00 maps E000+x -> C000+x
)

// Mmu owns every passive region and holds non-owning references to the
// I/O subsystems it forwards to. Boot overlay, cartridge, VRAM, work
// RAM, OAM, and high RAM are all exclusively owned here.
type Mmu struct {
	boot *boot.ROM
	lock boot.Latch
	cart *cartridge.Cartridge

	vram *memio.Ram // no pixel pipeline consumes this; modelled as plain storage
	// extram is the A000-BFFF window. The no-MBC core has no cartridge
	// SRAM to bank-switch, but that range is still a real, zero-initialized
	// region on hardware, not an unmapped hole - see
	// original_source/src/mem/mmu.cpp's MMU_RAM_BANK_X.
	extram *memio.Ram
	wram   *memio.Ram
	oam    *memio.Ram
	hram   *memio.Ram

	irq    *interrupts.Controller
	joypad *joypad.Controller
	timer  *timer.Controller
	ppu    *ppu.PPU

	log diagnostic.Logger
}

// New wires an Mmu to the given cartridge and I/O subsystems. Any of
// irq/joypad/timer/ppu may be nil for tests that don't need the full
// system; the registers of a nil subsystem read as 0xFF and writes to
// them are dropped.
func New(cart *cartridge.Cartridge, irq *interrupts.Controller, jp *joypad.Controller, tmr *timer.Controller, gpu *ppu.PPU, log diagnostic.Logger) *Mmu {
	if log == nil {
		log = diagnostic.Null()
	}
	return &Mmu{
		boot:   boot.New(boot.DMGImage[:]),
		cart:   cart,
		vram:   memio.NewRam(vramBase, vramSize),
		extram: memio.NewRam(extRamBase, extRamSize),
		wram:   memio.NewRam(wramBase, wramSize),
		oam:    memio.NewRam(oamBase, oamSize),
		hram:   memio.NewRam(hramBase, hramSize),
		irq:    irq,
		joypad: jp,
		timer:  tmr,
		ppu:    gpu,
		log:    log,
	}
}

// Read decodes addr per spec §3.3/§4.2 and returns the byte behind it.
func (m *Mmu) Read(addr uint16) uint8 {
	switch {
	case addr < 0x0100:
		if !m.lock.Done() {
			return m.boot.Read(addr)
		}
		return m.cart.Read(addr)
	case addr <= 0x7FFF:
		return m.cart.Read(addr)
	case memio.Contains(m.vram, addr):
		return m.vram.Read(memio.Offset(m.vram, addr))
	case memio.Contains(m.extram, addr):
		return m.extram.Read(memio.Offset(m.extram, addr))
	case memio.Contains(m.wram, addr):
		return m.wram.Read(memio.Offset(m.wram, addr))
	case addr >= echoBase && addr <= echoEnd:
		return m.wram.Read((addr - echoBase) % echoSize)
	case memio.Contains(m.oam, addr):
		return m.oam.Read(memio.Offset(m.oam, addr))
	case addr <= 0xFEFF:
		// unusable region: reads return 0x00 per spec §3.3
		return 0x00
	case addr == interrupts.FlagAddress:
		return m.readIRQ(addr)
	case addr == joypad.Address:
		return m.readJoypad(addr)
	case addr >= timer.DivAddress && addr <= timer.TacAddress:
		return m.readTimer(addr)
	case addr >= ppu.LCDC && addr <= ppu.WX:
		return m.readPPU(addr)
	case addr == 0xFF50:
		return m.lock.Read()
	case addr <= 0xFF7F:
		return 0x00 // everything else in I/O
	case memio.Contains(m.hram, addr):
		return m.hram.Read(memio.Offset(m.hram, addr))
	case addr == interrupts.EnableAddress:
		return m.readIRQ(addr)
	}
	return 0x00
}

// Write decodes addr per spec §3.3/§4.2 and routes the byte to the
// owning region or subsystem.
func (m *Mmu) Write(addr uint16, value uint8) {
	switch {
	case addr < 0x0100 && !m.lock.Done():
		m.log.Warnf("mmu: illegal write to boot overlay at 0x%04X", addr)
	case addr <= 0x7FFF:
		m.log.Warnf("mmu: illegal write to ROM at 0x%04X", addr)
		m.cart.Write(addr, value)
	case memio.Contains(m.vram, addr):
		m.vram.Write(memio.Offset(m.vram, addr), value)
	case memio.Contains(m.extram, addr):
		m.extram.Write(memio.Offset(m.extram, addr), value)
	case memio.Contains(m.wram, addr):
		m.wram.Write(memio.Offset(m.wram, addr), value)
	case addr >= echoBase && addr <= echoEnd:
		m.wram.Write((addr-echoBase)%echoSize, value)
	case memio.Contains(m.oam, addr):
		m.oam.Write(memio.Offset(m.oam, addr), value)
	case addr <= 0xFEFF:
		// unusable region: writes are dropped per spec §3.3
	case addr == interrupts.FlagAddress:
		m.writeIRQ(addr, value)
	case addr == joypad.Address:
		m.writeJoypad(addr, value)
	case addr >= timer.DivAddress && addr <= timer.TacAddress:
		m.writeTimer(addr, value)
	case addr == ppu.DMA:
		m.writePPU(addr, value)
		m.runDMA()
	case addr >= ppu.LCDC && addr <= ppu.WX:
		m.writePPU(addr, value)
	case addr == 0xFF50:
		if m.lock.Write(value) {
			m.log.Infof("mmu: boot overlay unmapped, cartridge ROM bank 0 now visible at 0x0000-0x00FF")
		}
	case addr <= 0xFF7F:
		// everything else in I/O: dropped
	case memio.Contains(m.hram, addr):
		m.hram.Write(memio.Offset(m.hram, addr), value)
	case addr == interrupts.EnableAddress:
		m.writeIRQ(addr, value)
	}
}

func (m *Mmu) readIRQ(addr uint16) uint8 {
	if m.irq == nil {
		return 0xFF
	}
	return m.irq.Read(addr)
}

func (m *Mmu) writeIRQ(addr uint16, value uint8) {
	if m.irq == nil {
		return
	}
	m.irq.Write(addr, value)
}

func (m *Mmu) readJoypad(addr uint16) uint8 {
	if m.joypad == nil {
		return 0xFF
	}
	return m.joypad.Read(addr)
}

func (m *Mmu) writeJoypad(addr uint16, value uint8) {
	if m.joypad == nil {
		return
	}
	m.joypad.Write(addr, value)
}

func (m *Mmu) readTimer(addr uint16) uint8 {
	if m.timer == nil {
		return 0xFF
	}
	return m.timer.Read(addr)
}

func (m *Mmu) writeTimer(addr uint16, value uint8) {
	if m.timer == nil {
		return
	}
	m.timer.Write(addr, value)
}

func (m *Mmu) readPPU(addr uint16) uint8 {
	if m.ppu == nil {
		return 0xFF
	}
	return m.ppu.Read(addr)
}

func (m *Mmu) writePPU(addr uint16, value uint8) {
	if m.ppu == nil {
		return
	}
	m.ppu.Write(addr, value)
}

// runDMA executes the 160-byte OAM transfer latched by the PPU,
// instantaneously per the contract in SPEC_FULL.md.
func (m *Mmu) runDMA() {
	if m.ppu == nil {
		return
	}
	req, ok := m.ppu.PendingDMA()
	if !ok {
		return
	}
	source := uint16(req.Source) << 8
	for i := uint16(0); i < 0xA0; i++ {
		m.oam.Write(i, m.Read(source+i))
	}
}

// LoadROM installs a cartridge image, replacing the cartridge the Mmu
// was constructed with.
func (m *Mmu) LoadROM(cart *cartridge.Cartridge) {
	m.cart = cart
	m.lock = boot.Latch{}
}

// Cartridge returns the currently installed cartridge.
func (m *Mmu) Cartridge() *cartridge.Cartridge {
	return m.cart
}

// BootComplete reports whether the boot latch has closed.
func (m *Mmu) BootComplete() bool {
	return m.lock.Done()
}
