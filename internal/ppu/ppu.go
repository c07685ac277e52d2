// Package ppu implements the scanline-granular picture processing unit:
// the OAMScan/Transfer/HBlank/VBlank mode state machine, VRAM/OAM
// access gating, and a per-scanline (not per-pixel-FIFO) renderer.
package ppu

import "github.com/sturdy-robot/sturdygb-sub000/internal/interrupts"

// Mode is one of the 4 PPU scanline phases.
type Mode uint8

const (
	ModeHBlank Mode = iota
	ModeVBlank
	ModeOAMScan
	ModeTransfer
)

const (
	cyclesOAMScan     = 80
	cyclesTransfer    = 172
	cyclesHBlank      = 204
	cyclesVBlank      = 456
	scanlinesPerFrame = 154
	visibleLines      = 144
)

// Register addresses.
const (
	LCDC = 0xFF40
	STAT = 0xFF41
	SCY  = 0xFF42
	SCX  = 0xFF43
	LY   = 0xFF44
	LYC  = 0xFF45
	DMAReg = 0xFF46
	BGP  = 0xFF47
	OBP0 = 0xFF48
	OBP1 = 0xFF49
	WY   = 0xFF4A
	WX   = 0xFF4B
	VBK  = 0xFF4F
	BCPS = 0xFF68
	BCPD = 0xFF69
	OCPS = 0xFF6A
	OCPD = 0xFF6B
)

// LCDC bits.
const (
	lcdcBGEnable      = 1 << 0
	lcdcOBJEnable     = 1 << 1
	lcdcOBJSize       = 1 << 2
	lcdcBGTileMap     = 1 << 3
	lcdcTileData      = 1 << 4
	lcdcWindowEnable  = 1 << 5
	lcdcWindowTileMap = 1 << 6
	lcdcDisplayEnable = 1 << 7
)

// STAT bits.
const (
	statLYCInterrupt    = 1 << 6
	statOAMInterrupt    = 1 << 5
	statVBlankInterrupt = 1 << 4
	statHBlankInterrupt = 1 << 3
	statCoincidence     = 1 << 2
)

// VRAMBankSize is the size of one CGB VRAM bank; DMG uses only bank 0.
const VRAMBankSize = 0x2000

// OAMSize is the size of object attribute memory.
const OAMSize = 0xA0

// PPU holds every LCD-adjacent register plus VRAM/OAM and the
// framebuffer it renders scanlines into.
type PPU struct {
	lcdc, stat, scy, scx, ly, lyc, bgp, obp0, obp1, wy, wx uint8

	vram [2][VRAMBankSize]uint8 // bank 1 only meaningful in CGB mode
	vbk  uint8
	oam  [OAMSize]uint8

	cgb bool

	// CGB palette RAM and the auto-increment index registers that
	// address it.
	bgPalette  [64]uint8
	objPalette [64]uint8
	bcps, ocps uint8

	mode       Mode
	modeClock  int
	frameReady bool

	screen [visibleLines][160]uint8  // DMG shade indices 0-3
	rgb    [visibleLines][160]uint16 // 15-bit BGR; no CGB palette lookup is done, so every entry stays 0

	dma  *DMA
	hdma *HDMA

	irq *interrupts.Controller

	// busRead lets DMA copy from anywhere in the 16-bit address space
	// (ROM, WRAM, even echo RAM), which the PPU cannot reach on its
	// own. Wired by internal/mmu at construction time.
	busRead func(uint16) uint8
}

// SetBusReader wires the function OAM DMA uses to read its 160-byte
// source window, since that window can span any bus region.
func (p *PPU) SetBusReader(read func(uint16) uint8) {
	p.busRead = read
}

// New returns a PPU in its post-boot-ROM power-on state.
func New(irq *interrupts.Controller, cgb bool) *PPU {
	p := &PPU{
		lcdc: 0x91,
		stat: 0x80,
		bgp:  0xFC,
		cgb:  cgb,
		mode: ModeOAMScan,
		irq:  irq,
	}
	p.dma = newDMA(p)
	p.hdma = newHDMA()
	return p
}

// Tick advances the PPU state machine by cycles T-cycles, driving DMA,
// the mode transitions, STAT interrupts, and the per-line renderer.
func (p *PPU) Tick(cycles uint8) {
	p.dma.tick(cycles)
	if p.lcdc&lcdcDisplayEnable == 0 {
		return
	}
	p.modeClock += int(cycles)

	switch p.mode {
	case ModeOAMScan:
		if p.modeClock >= cyclesOAMScan {
			p.modeClock -= cyclesOAMScan
			p.setMode(ModeTransfer)
		}
	case ModeTransfer:
		if p.modeClock >= cyclesTransfer {
			p.modeClock -= cyclesTransfer
			p.renderScanline()
			p.setMode(ModeHBlank)
		}
	case ModeHBlank:
		if p.modeClock >= cyclesHBlank {
			p.modeClock -= cyclesHBlank
			p.ly++
			p.checkLYC()
			if p.ly == uint8(visibleLines) {
				p.setMode(ModeVBlank)
				p.irq.Request(interrupts.VBlankFlag)
				p.frameReady = true
			} else {
				p.setMode(ModeOAMScan)
			}
		}
	case ModeVBlank:
		if p.modeClock >= cyclesVBlank {
			p.modeClock -= cyclesVBlank
			p.ly++
			if p.ly > scanlinesPerFrame-1 {
				p.ly = 0
				p.setMode(ModeTransfer)
			}
			p.checkLYC()
		}
	}
}

// setMode updates STAT's mode bits and raises the STAT interrupt if the
// newly-entered mode is selected for it. LYC coincidence is handled by
// checkLYC.
func (p *PPU) setMode(m Mode) {
	p.mode = m
	p.stat = p.stat&^0x03 | uint8(m)

	var trigger bool
	switch m {
	case ModeHBlank:
		trigger = p.stat&statHBlankInterrupt != 0
	case ModeVBlank:
		trigger = p.stat&statVBlankInterrupt != 0
	case ModeOAMScan:
		trigger = p.stat&statOAMInterrupt != 0
	}
	if trigger {
		p.irq.Request(interrupts.LCDFlag)
	}
}

func (p *PPU) checkLYC() {
	if p.ly == p.lyc {
		p.stat |= statCoincidence
		if p.stat&statLYCInterrupt != 0 {
			p.irq.Request(interrupts.LCDFlag)
		}
	} else {
		p.stat &^= statCoincidence
	}
}

// FrameReady reports (and consumes) whether a VBlank boundary has been
// crossed since the last call, which StepFrame uses to know when to stop.
func (p *PPU) FrameReady() bool {
	r := p.frameReady
	p.frameReady = false
	return r
}

// Screen returns the DMG 2-bit shade-index framebuffer.
func (p *PPU) Screen() [visibleLines][160]uint8 {
	return p.screen
}

// ScreenRGB15 returns the 15-bit BGR framebuffer. The renderer does not
// look up CGB palette colours, so every entry is 0.
func (p *PPU) ScreenRGB15() [visibleLines][160]uint16 {
	return p.rgb
}

// vramBlocked reports whether the CPU's view of VRAM is currently
// opaque (returns 0xFF / drops writes).
func (p *PPU) vramBlocked() bool {
	return p.mode == ModeTransfer
}

// oamBlocked reports whether OAM is currently inaccessible to the CPU.
func (p *PPU) oamBlocked() bool {
	return p.mode == ModeOAMScan || p.mode == ModeTransfer || p.dma.active
}

// ReadVRAM reads from the currently-selected VRAM bank.
func (p *PPU) ReadVRAM(address uint16) uint8 {
	if p.vramBlocked() {
		return 0xFF
	}
	return p.vram[p.vbk][address-0x8000]
}

// WriteVRAM writes to the currently-selected VRAM bank.
func (p *PPU) WriteVRAM(address uint16, value uint8) {
	if p.vramBlocked() {
		return
	}
	p.vram[p.vbk][address-0x8000] = value
}

// ReadOAM reads a byte of object attribute memory.
func (p *PPU) ReadOAM(address uint16) uint8 {
	if p.oamBlocked() {
		return 0xFF
	}
	return p.oam[address-0xFE00]
}

// WriteOAM writes a byte of object attribute memory.
func (p *PPU) WriteOAM(address uint16, value uint8) {
	if p.oamBlocked() {
		return
	}
	p.oam[address-0xFE00] = value
}

// Read returns the value of an LCD register.
func (p *PPU) Read(address uint16) uint8 {
	switch address {
	case LCDC:
		return p.lcdc
	case STAT:
		return p.stat | 0x80
	case SCY:
		return p.scy
	case SCX:
		return p.scx
	case LY:
		return p.ly
	case LYC:
		return p.lyc
	case DMAReg:
		return p.dma.register
	case BGP:
		return p.bgp
	case OBP0:
		return p.obp0
	case OBP1:
		return p.obp1
	case WY:
		return p.wy
	case WX:
		return p.wx
	case VBK:
		return p.vbk | 0xFE
	case BCPS:
		return p.bcps
	case BCPD:
		return p.bgPalette[p.bcps&0x3F]
	case OCPS:
		return p.ocps
	case OCPD:
		return p.objPalette[p.ocps&0x3F]
	default:
		return p.hdma.read(address)
	}
}

// Write stores a value to an LCD register.
func (p *PPU) Write(address uint16, value uint8) {
	switch address {
	case LCDC:
		p.lcdc = value
	case STAT:
		// Bits 0-2 are hardware-controlled (mode + coincidence); only
		// the interrupt-select bits 3-6 are writable.
		p.stat = p.stat&0x07 | value&0x78
	case SCY:
		p.scy = value
	case SCX:
		p.scx = value
	case LY:
		// read-only; writes are ignored
	case LYC:
		p.lyc = value
		p.checkLYC()
	case DMAReg:
		p.dma.start(value)
	case BGP:
		p.bgp = value
	case OBP0:
		p.obp0 = value
	case OBP1:
		p.obp1 = value
	case WY:
		p.wy = value
	case WX:
		p.wx = value
	case VBK:
		if p.cgb {
			p.vbk = value & 0x01
		}
	case BCPS:
		p.bcps = value & 0xBF
	case BCPD:
		p.bgPalette[p.bcps&0x3F] = value
		if p.bcps&0x80 != 0 {
			p.bcps = p.bcps&0x80 | (p.bcps+1)&0x3F
		}
	case OCPS:
		p.ocps = value & 0xBF
	case OCPD:
		p.objPalette[p.ocps&0x3F] = value
		if p.ocps&0x80 != 0 {
			p.ocps = p.ocps&0x80 | (p.ocps+1)&0x3F
		}
	default:
		p.hdma.write(address, value)
	}
}
