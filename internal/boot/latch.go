package boot

// Latch is the one-shot FF50 register: the boot program's final act is
// to write a non-zero value here, which permanently hides the boot
// overlay and exposes cartridge ROM bank 0 at 0x0000-0x00FF for the rest
// of the session. The first write, of any value, latches; every write
// after that is dropped.
type Latch struct {
	value   uint8
	latched bool
}

// Done reports whether the overlay has been unmapped.
func (l *Latch) Done() bool {
	return l.latched
}

// Read returns the latched value, 0x00 before the first write.
func (l *Latch) Read() uint8 {
	return l.value
}

// Write latches value if this is the first write; subsequent writes are
// silently ignored. Returns true the one time the latch actually closes,
// so the caller (the Mmu) can log the boot-to-cartridge transition.
func (l *Latch) Write(value uint8) bool {
	if l.latched {
		return false
	}
	l.value = value
	l.latched = true
	return true
}
