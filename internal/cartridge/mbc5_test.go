package cartridge

import "testing"

func TestMBC5BankZeroIsNotRemapped(t *testing.T) {
	rom := romWithBankMarkers(4)
	m := newMBC5(rom, Header{CartridgeType: MBC5})

	m.WriteROM(0x2000, 0) // unlike MBC1/MBC3, bank 0 is a legal selection
	if got := m.ReadROM(0x4000); got != 0 {
		t.Errorf("bank register 0: got %d want 0 (no zero-bank fixup on MBC5)", got)
	}
}

func TestMBC5NineBitBankSelect(t *testing.T) {
	rom := romWithBankMarkers(301) // needs bit 8 of the bank register
	m := newMBC5(rom, Header{CartridgeType: MBC5})

	m.WriteROM(0x2000, 0x00) // low 8 bits
	m.WriteROM(0x3000, 0x01) // bit 8
	if got := m.ReadROM(0x4000); got != 0 {
		t.Errorf("bank 256 marker byte: got %d want 0 (256 wraps to 0 in a byte)", got)
	}

	m.WriteROM(0x2000, 44)
	m.WriteROM(0x3000, 0x01)
	if got := m.ReadROM(0x4000); got != 44 {
		t.Errorf("bank 256+44=300 marker byte: got %d want 44 (300 wraps to 44 in a byte)", got)
	}
}

func TestMBC5RumbleMasksTopRAMBankBit(t *testing.T) {
	rom := romWithBankMarkers(2)
	m := newMBC5(rom, Header{CartridgeType: MBC5RUMBLERAMBATT, RAMSize: 8 * 0x2000})
	m.WriteROM(0x0000, 0x0A)

	m.WriteROM(0x4000, 0x0F) // top bit would normally select RAM bank 8; on rumble carts it's motor control
	m.WriteRAM(0xA000, 0x5A)
	if got := m.ReadRAM(0xA000); got != 0x5A {
		t.Errorf("RAM write at masked bank %d: got 0x%02x want 0x5A", m.ramBank, got)
	}
	if m.ramBank > 0x07 {
		t.Errorf("rumble cart RAM bank register must be masked to 3 bits: got %#x", m.ramBank)
	}
}

func TestMBC5NonRumbleUsesFullRAMBankNibble(t *testing.T) {
	rom := romWithBankMarkers(2)
	m := newMBC5(rom, Header{CartridgeType: MBC5RAMBATT, RAMSize: 16 * 0x2000})
	m.WriteROM(0x0000, 0x0A)

	m.WriteROM(0x4000, 0x0F)
	if m.ramBank != 0x0F {
		t.Errorf("non-rumble RAM bank register: got %#x want 0xf", m.ramBank)
	}
}
