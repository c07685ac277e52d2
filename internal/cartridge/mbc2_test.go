package cartridge

import "testing"

func TestMBC2RAMIsNibbleWide(t *testing.T) {
	rom := romWithBankMarkers(4)
	m := newMBC2(rom, Header{CartridgeType: MBC2BATT})

	m.WriteROM(0x0000, 0x0A) // address bit 8 clear selects RAM-enable
	m.WriteRAM(0xA000, 0xFF)
	if got := m.ReadRAM(0xA000); got != 0xFF {
		t.Errorf("nibble RAM roundtrip: got 0x%02x want 0xFF (low nibble | 0xF0)", got)
	}
}

func TestMBC2RAMDisabledByDefault(t *testing.T) {
	rom := romWithBankMarkers(4)
	m := newMBC2(rom, Header{CartridgeType: MBC2BATT})

	m.WriteRAM(0xA000, 0x0C)
	if got := m.ReadRAM(0xA000); got != 0xFF {
		t.Errorf("write while RAM disabled must be ignored: got 0x%02x want 0xFF", got)
	}
}

func TestMBC2ROMBankSelectUsesAddressBit8(t *testing.T) {
	rom := romWithBankMarkers(4)
	m := newMBC2(rom, Header{CartridgeType: MBC2})

	m.WriteROM(0x0100, 0x03) // address bit 8 set selects ROM-bank-select
	if got := m.ReadROM(0x4000); got != 3 {
		t.Errorf("after selecting bank 3: got %d want 3", got)
	}
}

func TestMBC2ROMBankZeroFixup(t *testing.T) {
	rom := romWithBankMarkers(4)
	m := newMBC2(rom, Header{CartridgeType: MBC2})

	m.WriteROM(0x0100, 0x00)
	if got := m.ReadROM(0x4000); got != 1 {
		t.Errorf("bank register 0: got %d want 1 (zero-bank fixup)", got)
	}
}

func TestMBC2RAMAddressWraps(t *testing.T) {
	rom := romWithBankMarkers(4)
	m := newMBC2(rom, Header{CartridgeType: MBC2BATT})
	m.WriteROM(0x0000, 0x0A)

	m.WriteRAM(0xA000, 0x05)
	if got := m.ReadRAM(0xA200); got != 0x05|0xF0 {
		t.Errorf("0xA200 should alias 0xA000 (512-byte wrap): got 0x%02x want 0xF5", got)
	}
}
