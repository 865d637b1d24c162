package gameboy

import "github.com/sharpcore/lr35902/internal/diagnostic"

// config accumulates the options passed to New.
type config struct {
	logger      diagnostic.Logger
	skipBoot    bool
	breakpoints []uint16
}

func defaultConfig() *config {
	return &config{logger: diagnostic.Null()}
}

// Opt configures a GameBoy at construction time.
type Opt func(*config)

// WithLogger routes diagnostic events to l instead of discarding them.
func WithLogger(l diagnostic.Logger) Opt {
	return func(c *config) { c.logger = l }
}

// WithBootSkip closes the boot latch immediately and seeds registers
// with the documented post-boot-ROM state, so execution starts at
// cartridge entry point 0x0100 instead of the DMG boot ROM.
func WithBootSkip() Opt {
	return func(c *config) { c.skipBoot = true }
}

// WithBreakpoint registers a PC value that logs a diagnostic event when
// reached.
func WithBreakpoint(addr uint16) Opt {
	return func(c *config) { c.breakpoints = append(c.breakpoints, addr) }
}
