package cartridge

import (
	"encoding/binary"
	"fmt"
)

// Type identifies the memory bank controller (or lack of one) a
// cartridge declares at header offset 0x0147. The no-MBC core only
// executes Type == ROMOnly; every other value is parsed and reported,
// but bank switching for it is the documented extension point named in
// the component design (see mbc.go).
type Type uint8

const (
	ROMOnly           Type = 0x00
	MBC1              Type = 0x01
	MBC1RAM           Type = 0x02
	MBC1RAMBattery    Type = 0x03
	MBC2              Type = 0x05
	MBC2Battery       Type = 0x06
	ROMRAM            Type = 0x08
	ROMRAMBattery     Type = 0x09
	MMM01             Type = 0x0B
	MMM01RAM          Type = 0x0C
	MMM01RAMBattery   Type = 0x0D
	MBC3TimerBattery  Type = 0x0F
	MBC3TimerRAMBatt  Type = 0x10
	MBC3              Type = 0x11
	MBC3RAM           Type = 0x12
	MBC3RAMBattery    Type = 0x13
	MBC5              Type = 0x19
	MBC5RAM           Type = 0x1A
	MBC5RAMBattery    Type = 0x1B
	MBC5Rumble        Type = 0x1C
	MBC5RumbleRAM     Type = 0x1D
	MBC5RumbleRAMBatt Type = 0x1E
	PocketCamera      Type = 0xFC
	BandaiTAMA5       Type = 0xFD
	HudsonHuC3        Type = 0xFE
	HudsonHuC1        Type = 0xFF
)

// String names the controller family for diagnostics.
func (t Type) String() string {
	switch t {
	case ROMOnly:
		return "ROM ONLY"
	case MBC1, MBC1RAM, MBC1RAMBattery:
		return "MBC1"
	case MBC2, MBC2Battery:
		return "MBC2"
	case MBC3TimerBattery, MBC3TimerRAMBatt, MBC3, MBC3RAM, MBC3RAMBattery:
		return "MBC3"
	case MBC5, MBC5RAM, MBC5RAMBattery, MBC5Rumble, MBC5RumbleRAM, MBC5RumbleRAMBatt:
		return "MBC5"
	default:
		return fmt.Sprintf("unknown (0x%02X)", uint8(t))
	}
}

// ramSizeTable maps header offset 0x0149 to the external RAM size.
var ramSizeTable = map[uint8]uint{
	0x00: 0,
	0x01: 2 * 1024, // listed in some references, unused by licensed titles
	0x02: 8 * 1024,
	0x03: 32 * 1024,
	0x04: 128 * 1024,
	0x05: 64 * 1024,
}

// Header is the parsed form of the 0x0134-0x014F cartridge header block.
type Header struct {
	Title          string
	Type           Type
	ROMSize        uint
	RAMSize        uint
	HeaderChecksum uint8
	GlobalChecksum uint16
	computedHeader uint8
}

// parseHeader parses the 0x0134-0x014F block out of a full cartridge
// image. image must be at least 0x0150 bytes.
func parseHeader(image []byte) Header {
	h := Header{
		Title:          trimTitle(image[0x0134:0x0144]),
		Type:           Type(image[0x0147]),
		ROMSize:        (32 * 1024) << image[0x0148],
		RAMSize:        ramSizeTable[image[0x0149]],
		HeaderChecksum: image[0x014D],
		// big-endian per the hardware's documented layout
		GlobalChecksum: binary.BigEndian.Uint16(image[0x014E:0x0150]),
	}
	h.computedHeader = computeHeaderChecksum(image)
	return h
}

// computeHeaderChecksum runs x = x - b - 1 over bytes 0x0134-0x014C, which
// comes to (0 - sum(bytes[0x0134:0x014D]) - 25) mod 256.
func computeHeaderChecksum(image []byte) uint8 {
	var x uint8
	for _, b := range image[0x0134:0x014D] {
		x = x - b - 1
	}
	return x
}

// ChecksumValid reports whether the header's stored checksum matches the
// freshly computed one. A mismatch is logged by the loader, never fatal.
func (h Header) ChecksumValid() bool {
	return h.HeaderChecksum == h.computedHeader
}

func trimTitle(raw []byte) string {
	end := len(raw)
	for i, b := range raw {
		if b == 0x00 {
			end = i
			break
		}
	}
	return string(raw[:end])
}
