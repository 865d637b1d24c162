// Package cartridge parses the Game Boy cartridge header and holds the
// raw ROM image. The no-MBC core only ever maps a single fixed 16KiB
// bank (0x0000-0x3FFF) plus a single switchable bank permanently fixed
// to bank 1 (0x4000-0x7FFF, per spec always bank 1 in this core);
// anything a cartridge declares beyond 32KiB is truncated at load time
// with a warning, and external RAM bank switching is left to the
// extension point documented in mbc.go.
package cartridge

import (
	"fmt"

	"github.com/sharpcore/lr35902/internal/diagnostic"
	"github.com/sharpcore/lr35902/internal/memio"
)

const maxNoMBCSize = 0x8000

// Cartridge is the parsed header plus the raw image bytes backing the
// fixed and switchable ROM banks.
type Cartridge struct {
	header Header
	rom    *memio.Rom // always exactly maxNoMBCSize bytes, zero-padded
}

// Load parses image into a Cartridge. image shorter than the header
// block (0x0150 bytes) is a load failure - the only fatal condition in
// the cartridge subsystem, surfaced to the caller at setup time per the
// spec's error taxonomy. Anything past maxNoMBCSize is truncated with a
// logged warning rather than rejected.
func Load(image []byte, log diagnostic.Logger) (*Cartridge, error) {
	if log == nil {
		log = diagnostic.Null()
	}
	if len(image) < 0x0150 {
		return nil, fmt.Errorf("cartridge: image too short to contain a header: %d bytes", len(image))
	}

	n := len(image)
	if n > maxNoMBCSize {
		log.Warnf("cartridge: image is %d bytes, larger than the 32KiB no-MBC core supports; truncating bank switching is an extension point", n)
		n = maxNoMBCSize
	}
	backing := make([]byte, maxNoMBCSize)
	copy(backing, image[:n])

	c := &Cartridge{
		header: parseHeader(image),
		rom:    memio.NewRom(0x0000, backing),
	}

	if !c.header.ChecksumValid() {
		log.Warnf("cartridge: header checksum mismatch for %q: stored 0x%02X, computed 0x%02X", c.header.Title, c.header.HeaderChecksum, c.header.computedHeader)
	}
	if c.header.Type != ROMOnly {
		log.Warnf("cartridge: declares controller %s, but this core only executes ROM ONLY images; bank switching is unimplemented", c.header.Type)
	}

	return c, nil
}

// Header returns the parsed cartridge header.
func (c *Cartridge) Header() Header {
	return c.header
}

// Read returns the byte at the given global address, which must fall
// within 0x0000-0x7FFF.
func (c *Cartridge) Read(addr uint16) uint8 {
	return c.rom.Read(addr)
}

// Write handles a CPU write to ROM space. Since this core implements no
// bank-switching registers, every write is an illegal write to ROM and
// is dropped; the caller (the Mmu) is responsible for the diagnostic.
func (c *Cartridge) Write(uint16, uint8) {}
