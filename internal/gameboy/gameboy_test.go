package gameboy

import "testing"

func testImage() []byte {
	image := make([]byte, 0x8000)
	copy(image[0x0134:], "TEST")
	// NOP ; NOP ; JR -4 (spins at 0x0100 forever, as a stand-in for a
	// ROM's main loop)
	copy(image[0x0100:], []byte{0x00, 0x00, 0x18, 0xFC})
	return image
}

func TestNewSkipsBootRomToCartridgeEntry(t *testing.T) {
	gb, err := New(testImage(), WithBootSkip())
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if gb.Cpu().Registers().PC != 0x0100 {
		t.Fatalf("PC = %#04x, want 0x0100 after WithBootSkip", gb.Cpu().Registers().PC)
	}
	if gb.Cpu().Registers().SP != 0xFFFE {
		t.Fatalf("SP = %#04x, want 0xFFFE after WithBootSkip", gb.Cpu().Registers().SP)
	}
}

func TestStepDrivesTimerAndPPUForward(t *testing.T) {
	gb, err := New(testImage(), WithBootSkip())
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	var totalCycles uint64
	for i := 0; i < 500; i++ {
		totalCycles += gb.Step()
	}
	if totalCycles == 0 {
		t.Fatalf("expected Step to report nonzero cycle counts")
	}
	if gb.cpu.Clock() != totalCycles {
		t.Fatalf("Cpu clock %d does not match summed Step cycles %d", gb.cpu.Clock(), totalCycles)
	}
	// LY advances every 456 T-states and wraps after 154 lines; DIV is
	// the upper byte of a counter that advances every T-state.
	wantLY := uint8((totalCycles / 456) % 154)
	if got := gb.ppu.LY(); got != wantLY {
		t.Fatalf("LY = %d after %d cycles, want %d", got, totalCycles, wantLY)
	}
	wantDIV := uint8(totalCycles >> 8)
	if got := gb.Mmu().Read(0xFF04); got != wantDIV {
		t.Fatalf("DIV = %#02x after %d cycles, want %#02x", got, totalCycles, wantDIV)
	}
}

func TestRejectsUndersizedImage(t *testing.T) {
	if _, err := New(make([]byte, 4)); err == nil {
		t.Fatalf("expected an error loading a too-small image")
	}
}
