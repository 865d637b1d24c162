package memio

// Rom is a passive, read-only storage region. Writes are silently
// dropped - the Mmu is responsible for logging the anomaly, the region
// itself only guarantees that its bytes never change. ROM bank 0, the
// switchable bank, and the boot overlay are all a Rom over a byte slice.
type Rom struct {
	base  uint16
	bytes []byte
}

// NewRom returns a Rom mapped starting at base, backed directly by data
// (no copy - callers that need an independent snapshot should copy
// first).
func NewRom(base uint16, data []byte) *Rom {
	return &Rom{base: base, bytes: data}
}

func (r *Rom) Base() uint16 { return r.base }
func (r *Rom) Size() uint16 { return uint16(len(r.bytes)) }

func (r *Rom) Read(offset uint16) uint8 {
	return r.bytes[offset]
}

// Write is a no-op; the Mmu logs the illegal write before reaching here.
func (r *Rom) Write(uint16, uint8) {}
