package cartridge

import "testing"

func TestROMOnlyReadsFlatAddressSpace(t *testing.T) {
	rom := make([]byte, 0x8000)
	rom[0x4000] = 0x42
	m := newROMOnly(rom, Header{CartridgeType: 0x00})

	if got := m.ReadROM(0x4000); got != 0x42 {
		t.Errorf("flat ROM read: got 0x%02x want 0x42", got)
	}
}

func TestROMOnlyWritesAreIgnored(t *testing.T) {
	rom := make([]byte, 0x8000)
	m := newROMOnly(rom, Header{CartridgeType: 0x00})
	m.WriteROM(0x2000, 0xFF) // no banking hardware to react to this

	if got := m.ReadROM(0x2000); got != 0x00 {
		t.Errorf("ROMOnly.WriteROM must be a no-op: got 0x%02x want 0x00", got)
	}
}

func TestROMOnlyWithoutRAMReadsHighZ(t *testing.T) {
	m := newROMOnly(make([]byte, 0x8000), Header{CartridgeType: 0x00, RAMSize: 0})
	if got := m.ReadRAM(0xA000); got != 0xFF {
		t.Errorf("cart with no RAM chip: got 0x%02x want 0xff", got)
	}
}

func TestROMOnlyWithRAMRoundTrips(t *testing.T) {
	m := newROMOnly(make([]byte, 0x8000), Header{CartridgeType: 0x08, RAMSize: 0x2000})
	m.WriteRAM(0xA123, 0x77)
	if got := m.ReadRAM(0xA123); got != 0x77 {
		t.Errorf("flat RAM roundtrip: got 0x%02x want 0x77", got)
	}
}

func TestROMOnlyNeverReportsBattery(t *testing.T) {
	m := newROMOnly(make([]byte, 0x8000), Header{CartridgeType: 0x00})
	if m.HasBattery() {
		t.Errorf("plain ROM-only carts never carry a battery")
	}
}
