package cartridge

// MBC is the common interface every memory bank controller implements.
// The address ranges match the CPU's own view of the bus: ROM spans
// 0x0000-0x7FFF, external RAM spans 0xA000-0xBFFF.
type MBC interface {
	ReadROM(address uint16) uint8
	WriteROM(address uint16, value uint8)
	ReadRAM(address uint16) uint8
	WriteRAM(address uint16, value uint8)

	// RAM returns the cartridge RAM contents, or nil if the cartridge has
	// no RAM. Whether they are persisted is decided by HasBattery.
	RAM() []byte
	// HasBattery reports whether RAM() should be persisted across runs.
	HasBattery() bool
}

// hasRAM/hasBattery/hasTimer classify a cartridge Type by the
// peripherals its header declares, independent of which MBC it uses.
func hasRAM(t Type) bool {
	switch t {
	case MBC1RAM, MBC1RAMBATT, ROMRAM, ROMRAMBATT, MMM01RAM, MMM01RAMBATT,
		MBC3TIMERRAMBATT, MBC3RAM, MBC3RAMBATT, MBC5RAM, MBC5RAMBATT,
		MBC5RUMBLERAM, MBC5RUMBLERAMBATT, MBC7RUMBLERAMBATT, MBC6:
		return true
	}
	return false
}

func hasBattery(t Type) bool {
	switch t {
	case MBC1RAMBATT, ROMRAMBATT, MMM01RAMBATT, MBC3TIMERBATT,
		MBC3TIMERRAMBATT, MBC3RAMBATT, MBC5RAMBATT, MBC5RUMBLERAMBATT,
		MBC7RUMBLERAMBATT, MBC2BATT:
		return true
	}
	return false
}

func hasTimer(t Type) bool {
	return t == MBC3TIMERBATT || t == MBC3TIMERRAMBATT
}
