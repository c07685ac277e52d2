package cartridge

// MBC2 has a small 512x4-bit built-in RAM (no external RAM chip) and a
// single 4-bit ROM bank register selected by bit 8 of the address
// written to, per the MBC2 address-decode quirk (bit 8 of the address
// selects RAM-enable vs ROM-bank-select within 0x0000-0x3FFF).
type MBC2 struct {
	rom []byte
	ram [512]uint8 // only the low nibble of each byte is meaningful

	ramEnabled bool
	romBank    uint8

	battery bool
}

func newMBC2(rom []byte, header Header) *MBC2 {
	return &MBC2{rom: rom, romBank: 1, battery: hasBattery(header.CartridgeType)}
}

func (m *MBC2) ReadROM(address uint16) uint8 {
	switch {
	case address < 0x4000:
		return m.byteAt(int(address))
	default:
		offset := int(m.romBank)*0x4000 + int(address-0x4000)
		return m.byteAt(offset)
	}
}

func (m *MBC2) byteAt(offset int) uint8 {
	if offset < 0 || offset >= len(m.rom) {
		return 0xFF
	}
	return m.rom[offset]
}

func (m *MBC2) WriteROM(address uint16, value uint8) {
	if address >= 0x4000 {
		return
	}
	if address&0x0100 == 0 {
		m.ramEnabled = value&0x0F == 0x0A
		return
	}
	bank := value & 0x0F
	if bank == 0 {
		bank = 1
	}
	m.romBank = bank
}

func (m *MBC2) ReadRAM(address uint16) uint8 {
	if !m.ramEnabled {
		return 0xFF
	}
	offset := int(address-0xA000) % 512
	return m.ram[offset] | 0xF0
}

func (m *MBC2) WriteRAM(address uint16, value uint8) {
	if !m.ramEnabled {
		return
	}
	offset := int(address-0xA000) % 512
	m.ram[offset] = value & 0x0F
}

func (m *MBC2) RAM() []byte {
	return m.ram[:]
}

func (m *MBC2) HasBattery() bool { return m.battery }
