// Package cartridge implements ROM header parsing and every supported
// memory bank controller (ROM-only, MBC1/2/3/5/6/7).
package cartridge

import (
	"fmt"

	"github.com/sturdy-robot/sturdygb-sub000/internal/types"
)

// Flag describes what hardware the cartridge declares support for via
// the CGB-mode byte at 0x0143.
type Flag uint8

const (
	FlagOnlyDMG Flag = iota
	FlagSupportsCGB
	FlagOnlyCGB
)

// ramSizes maps the RAM-size header byte to its size in bytes.
var ramSizes = map[uint8]uint{
	0x00: 0,
	0x01: 2 * 1024, // listed by some references, practically unused
	0x02: 8 * 1024,
	0x03: 32 * 1024,
	0x04: 128 * 1024,
	0x05: 64 * 1024,
}

// Type is the cartridge-type byte at 0x0147, identifying which MBC (if
// any) the cartridge uses and what peripherals it carries (RAM, battery,
// timer, rumble, camera).
type Type uint8

const (
	ROM               Type = 0x00
	MBC1              Type = 0x01
	MBC1RAM           Type = 0x02
	MBC1RAMBATT       Type = 0x03
	MBC2              Type = 0x05
	MBC2BATT          Type = 0x06
	ROMRAM            Type = 0x08
	ROMRAMBATT        Type = 0x09
	MMM01             Type = 0x0B
	MMM01RAM          Type = 0x0C
	MMM01RAMBATT      Type = 0x0D
	MBC3TIMERBATT     Type = 0x0F
	MBC3TIMERRAMBATT  Type = 0x10
	MBC3              Type = 0x11
	MBC3RAM           Type = 0x12
	MBC3RAMBATT       Type = 0x13
	MBC5              Type = 0x19
	MBC5RAM           Type = 0x1A
	MBC5RAMBATT       Type = 0x1B
	MBC5RUMBLE        Type = 0x1C
	MBC5RUMBLERAM     Type = 0x1D
	MBC5RUMBLERAMBATT Type = 0x1E
	MBC6              Type = 0x20
	MBC7RUMBLERAMBATT Type = 0x22
	POCKETCAMERA      Type = 0xFC
	BANDAITAMA5       Type = 0xFD
	HUDSONHUC3        Type = 0xFE
	HUDSONHUC1        Type = 0xFF
)

// Header is the parsed 0x0100-0x014F cartridge header.
type Header struct {
	Title            string
	ManufacturerCode string
	CartridgeGBMode  Flag
	NewLicenseeCode  string
	SGBFlag          bool
	CartridgeType    Type
	ROMSize          uint
	RAMSize          uint
	CountryCode      uint8
	OldLicenseeCode  uint8
	MaskROMVersion   uint8
	HeaderChecksum   uint8
	GlobalChecksum   uint16
}

// parseHeader parses the 0x0100-0x014F region of a ROM image.
func parseHeader(rom []byte) (Header, error) {
	if len(rom) < 0x150 {
		return Header{}, fmt.Errorf("cartridge: %w: ROM too short for a header (%d bytes)", ErrInvalidHeader, len(rom))
	}
	h := rom[0x100:0x150]

	header := Header{}
	switch h[0x43] {
	case 0x80:
		header.CartridgeGBMode = FlagSupportsCGB
	case 0xC0:
		header.CartridgeGBMode = FlagOnlyCGB
	default:
		header.CartridgeGBMode = FlagOnlyDMG
	}

	if header.CartridgeGBMode == FlagOnlyDMG {
		header.Title = trimTitle(h[0x34:0x44])
	} else {
		header.Title = trimTitle(h[0x34:0x43])
	}

	header.ManufacturerCode = string(h[0x3F:0x43])
	header.NewLicenseeCode = string(h[0x44:0x46])
	header.SGBFlag = h[0x46] == 0x03
	header.CartridgeType = Type(h[0x47])

	if h[0x48] > 8 {
		return Header{}, fmt.Errorf("cartridge: %w: implausible ROM size byte 0x%02X", ErrInvalidHeader, h[0x48])
	}
	header.ROMSize = (32 * 1024) * (1 << h[0x48])
	header.RAMSize = ramSizes[h[0x49]]
	header.CountryCode = h[0x4A]
	header.OldLicenseeCode = h[0x4B]
	header.MaskROMVersion = h[0x4C]
	header.HeaderChecksum = h[0x4D]
	header.GlobalChecksum = uint16(h[0x4E])<<8 | uint16(h[0x4F])

	if computed := headerChecksum(h); computed != header.HeaderChecksum {
		return Header{}, fmt.Errorf("cartridge: %w: header checksum mismatch (want 0x%02X, computed 0x%02X)", ErrInvalidHeader, header.HeaderChecksum, computed)
	}

	return header, nil
}

// headerChecksum reproduces the boot ROM's header checksum algorithm
// over the 0x0134-0x014C range (offsets 0x34-0x4C within h).
func headerChecksum(h []byte) uint8 {
	var sum uint8
	for _, b := range h[0x34:0x4D] {
		sum = sum - b - 1
	}
	return sum
}

func trimTitle(b []byte) string {
	for i, c := range b {
		if c == 0 {
			return string(b[:i])
		}
	}
	return string(b)
}

// GameboyColor reports whether the cartridge declares any CGB support.
func (h *Header) GameboyColor() bool {
	return h.CartridgeGBMode == FlagOnlyCGB || h.CartridgeGBMode == FlagSupportsCGB
}

// RequiresCGB reports whether the cartridge refuses to run on DMG hardware.
func (h *Header) RequiresCGB() bool {
	return h.CartridgeGBMode == FlagOnlyCGB
}

func (h *Header) String() string {
	mode := types.ModelDMG
	if h.GameboyColor() {
		mode = types.ModelCGB
	}
	return fmt.Sprintf("%s [%s] ROM=%dKiB RAM=%dKiB type=0x%02X", h.Title, mode, h.ROMSize/1024, h.RAMSize/1024, h.CartridgeType)
}
