// Package gameboy wires together the Cpu, Mmu, and the interrupt,
// timer, joypad, and PPU subsystems into the single lockstep unit the
// rest of the module drives one Step at a time.
package gameboy

import (
	"fmt"

	"github.com/sharpcore/lr35902/internal/cartridge"
	"github.com/sharpcore/lr35902/internal/cpu"
	"github.com/sharpcore/lr35902/internal/diagnostic"
	"github.com/sharpcore/lr35902/internal/interrupts"
	"github.com/sharpcore/lr35902/internal/joypad"
	"github.com/sharpcore/lr35902/internal/mmu"
	"github.com/sharpcore/lr35902/internal/ppu"
	"github.com/sharpcore/lr35902/internal/timer"
)

// GameBoy owns one fully wired execution core: one cartridge, one Cpu,
// one Mmu, and the subsystems that hang off the Mmu's address decoder.
type GameBoy struct {
	cpu    *cpu.Cpu
	mmu    *mmu.Mmu
	irq    *interrupts.Controller
	timer  *timer.Controller
	joypad *joypad.Controller
	ppu    *ppu.PPU
	cart   *cartridge.Cartridge
	log    diagnostic.Logger
}

// New loads romImage as a cartridge and returns a GameBoy ready to run
// from the boot ROM (or from 0x0100, with WithBootSkip).
func New(romImage []byte, opts ...Opt) (*GameBoy, error) {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(cfg)
	}
	log := cfg.logger

	cart, err := cartridge.Load(romImage, log)
	if err != nil {
		return nil, fmt.Errorf("gameboy: %w", err)
	}

	irq := interrupts.New()
	jp := joypad.New(irq)
	tmr := timer.New(irq)
	gpu := ppu.New(irq)
	bus := mmu.New(cart, irq, jp, tmr, gpu, log)
	core := cpu.New(bus, irq, log)

	for _, addr := range cfg.breakpoints {
		core.AddBreakpoint(addr)
	}

	gb := &GameBoy{
		cpu:    core,
		mmu:    bus,
		irq:    irq,
		timer:  tmr,
		joypad: jp,
		ppu:    gpu,
		cart:   cart,
		log:    log,
	}

	if cfg.skipBoot {
		gb.skipBootROM()
	}

	return gb, nil
}

// skipBootROM closes the boot latch and seeds the register file with
// the documented DMG post-boot-ROM state, the same state the real boot
// ROM leaves behind right before jumping to 0x0100.
func (g *GameBoy) skipBootROM() {
	g.mmu.Write(0xFF50, 0x01)
	reg := g.cpu.Registers()
	reg.SetAF(0x01B0)
	reg.SetBC(0x0013)
	reg.SetDE(0x00D8)
	reg.SetHL(0x014D)
	reg.SP = 0xFFFE
	reg.PC = 0x0100
}

// Step advances the Cpu by one instruction (or one idle machine cycle,
// if halted/stopped) and drives the timer and PPU forward by the same
// number of T-states, keeping every subsystem in lockstep with the Cpu
// clock (spec §5).
func (g *GameBoy) Step() uint64 {
	cycles := g.cpu.Step()
	for i := uint64(0); i < cycles; i++ {
		g.timer.Tick()
		g.ppu.Tick()
	}
	return cycles
}

// Press and Release forward button state changes to the joypad
// controller, which raises the Joypad interrupt on any monitored
// 0->1 transition.
func (g *GameBoy) Press(btn joypad.Button)   { g.joypad.Press(btn) }
func (g *GameBoy) Release(btn joypad.Button) { g.joypad.Release(btn) }

// Cpu, Mmu, and Cartridge expose the wired subsystems for tests,
// debuggers, and the cmd/gbcore driver loop.
func (g *GameBoy) Cpu() *cpu.Cpu                   { return g.cpu }
func (g *GameBoy) Mmu() *mmu.Mmu                   { return g.mmu }
func (g *GameBoy) Cartridge() *cartridge.Cartridge { return g.cart }
