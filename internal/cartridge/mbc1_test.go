package cartridge

import "testing"

// romWithBankMarkers builds a ROM of the given number of 16KiB banks,
// stamping each bank's first byte with its own bank index so bank
// switches are easy to verify.
func romWithBankMarkers(banks int) []byte {
	rom := make([]byte, banks*0x4000)
	for b := 0; b < banks; b++ {
		rom[b*0x4000] = byte(b)
	}
	return rom
}

func TestMBC1BankSwitching(t *testing.T) {
	rom := romWithBankMarkers(8)
	h := Header{CartridgeType: MBC1RAMBATT, RAMSize: 8 * 1024}
	m := newMBC1(rom, h, 0)

	if got := m.ReadROM(0x0000); got != 0 {
		t.Errorf("bank 0 fixed window: got %d want 0", got)
	}

	m.WriteROM(0x2000, 3) // select ROM bank 3
	if got := m.ReadROM(0x4000); got != 3 {
		t.Errorf("after selecting bank 3: got %d want 3", got)
	}
}

func TestMBC1Bank0Fixup(t *testing.T) {
	rom := romWithBankMarkers(8)
	h := Header{CartridgeType: MBC1, RAMSize: 0}
	m := newMBC1(rom, h, 0)

	m.WriteROM(0x2000, 0) // bank register 0 must read back as bank 1
	if got := m.ReadROM(0x4000); got != 1 {
		t.Errorf("bank register 0: got %d want 1 (zero-bank fixup)", got)
	}
}

func TestMBC1LowerWindowIgnoresAdvancedMode(t *testing.T) {
	rom := romWithBankMarkers(128) // large enough for bank2 to select a non-zero upper bank
	h := Header{CartridgeType: MBC1RAMBATT, RAMSize: 32 * 1024}
	m := newMBC1(rom, h, 0)

	m.WriteROM(0x6000, 0x01) // advanced banking mode
	m.WriteROM(0x4000, 0x03) // bank2 = 3, would select bank 3<<5=96 for 0x0000-0x3FFF under the old remap

	if got := m.ReadROM(0x0000); got != 0 {
		t.Errorf("fixed window must stay on bank 0 even in advanced mode: got %d want 0", got)
	}
}

func TestMBC1RAMEnableGate(t *testing.T) {
	rom := romWithBankMarkers(2)
	h := Header{CartridgeType: MBC1RAMBATT, RAMSize: 8 * 1024}
	m := newMBC1(rom, h, 0)

	m.WriteRAM(0xA000, 0x42) // RAM not enabled yet
	if m.ReadRAM(0xA000) == 0x42 {
		t.Errorf("write must be ignored while RAM is disabled")
	}

	m.WriteROM(0x0000, 0x0A) // enable RAM
	m.WriteRAM(0xA000, 0x42)
	if got := m.ReadRAM(0xA000); got != 0x42 {
		t.Errorf("RAM read after enable+write: got 0x%02x want 0x42", got)
	}
}

func TestMBC1HasBattery(t *testing.T) {
	rom := romWithBankMarkers(2)
	withBattery := newMBC1(rom, Header{CartridgeType: MBC1RAMBATT}, 0)
	withoutBattery := newMBC1(rom, Header{CartridgeType: MBC1RAM}, 0)

	if !withBattery.HasBattery() {
		t.Errorf("MBC1RAMBATT: expected HasBattery() true")
	}
	if withoutBattery.HasBattery() {
		t.Errorf("MBC1RAM: expected HasBattery() false")
	}
}
