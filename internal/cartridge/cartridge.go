package cartridge

import (
	"fmt"
	"os"
)

// Cartridge wraps a parsed Header and the MBC it dispatches ROM/RAM
// accesses to, plus the save path its battery-backed RAM (if any) is
// persisted to.
type Cartridge struct {
	Header Header
	mbc    MBC

	savePath string
}

// New parses rom's header and constructs the MBC it names. savePath may
// be empty, in which case battery-backed RAM is never persisted.
func New(rom []byte, savePath string) (*Cartridge, error) {
	header, err := parseHeader(rom)
	if err != nil {
		return nil, err
	}

	romHash := hashROM(rom)

	var mbc MBC
	switch {
	case header.CartridgeType == ROM || header.CartridgeType == ROMRAM || header.CartridgeType == ROMRAMBATT:
		mbc = newROMOnly(rom, header)
	case header.CartridgeType >= MBC1 && header.CartridgeType <= MBC1RAMBATT:
		mbc = newMBC1(rom, header, romHash)
	case header.CartridgeType == MBC2 || header.CartridgeType == MBC2BATT:
		mbc = newMBC2(rom, header)
	case header.CartridgeType >= MBC3TIMERBATT && header.CartridgeType <= MBC3RAMBATT:
		mbc = newMBC3(rom, header)
	case header.CartridgeType >= MBC5 && header.CartridgeType <= MBC5RUMBLERAMBATT:
		mbc = newMBC5(rom, header)
	case header.CartridgeType == MBC6:
		mbc = newMBC6(rom, header)
	case header.CartridgeType == MBC7RUMBLERAMBATT:
		mbc = newMBC7(rom)
	default:
		return nil, fmt.Errorf("cartridge: %w: type 0x%02X", ErrUnsupportedMBC, header.CartridgeType)
	}

	c := &Cartridge{Header: header, mbc: mbc, savePath: savePath}
	if mbc.HasBattery() && savePath != "" {
		if err := c.loadRAM(); err != nil {
			return nil, fmt.Errorf("cartridge: %w: %v", ErrSavePersistenceFailed, err)
		}
	}
	return c, nil
}

func (c *Cartridge) ReadROM(address uint16) uint8     { return c.mbc.ReadROM(address) }
func (c *Cartridge) WriteROM(address uint16, v uint8) { c.mbc.WriteROM(address, v) }
func (c *Cartridge) ReadRAM(address uint16) uint8     { return c.mbc.ReadRAM(address) }
func (c *Cartridge) WriteRAM(address uint16, v uint8) { c.mbc.WriteRAM(address, v) }

func (c *Cartridge) loadRAM() error {
	data, err := os.ReadFile(c.savePath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	ram := c.mbc.RAM()
	n := copy(ram, data)
	_ = n
	return nil
}

// Flush persists battery-backed RAM to the save path, if the cartridge
// has both. It is a non-fatal error surface: a failure here does not
// affect emulation, only durability of the save.
func (c *Cartridge) Flush() error {
	if !c.mbc.HasBattery() || c.savePath == "" {
		return nil
	}
	ram := c.mbc.RAM()
	if ram == nil {
		return nil
	}
	if err := os.WriteFile(c.savePath, ram, 0o644); err != nil {
		return fmt.Errorf("cartridge: %w: %v", ErrSavePersistenceFailed, err)
	}
	return nil
}
