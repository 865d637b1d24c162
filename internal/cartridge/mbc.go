package cartridge

// BankController is the extension point for the memory bank controller
// variants this core parses but does not execute (MBC1/2/3/5, MMM01,
// HuC1/3, the camera and TAMA5 oddities - see Type.String). A real
// implementation would intercept writes to 0x0000-0x7FFF as bank-select
// registers rather than dropping them, and would back 0xA000-0xBFFF with
// a banked external Ram instead of the single unbanked Ram the Mmu maps
// there. None of that is wired up here; Cartridge.Write unconditionally
// drops ROM-space writes regardless of the declared Type.
type BankController interface {
	SelectROMBank(value uint8)
	SelectRAMBank(value uint8)
	ReadExternalRAM(addr uint16) uint8
	WriteExternalRAM(addr uint16, value uint8)
}
