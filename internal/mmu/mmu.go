// Package mmu implements the memory bus: address-region dispatch to
// every peripheral, WRAM/HRAM storage, the boot-ROM-disable latch, and
// the CGB speed-switch and WRAM-bank-select registers.
package mmu

import (
	"github.com/sturdy-robot/sturdygb-sub000/internal/apu"
	"github.com/sturdy-robot/sturdygb-sub000/internal/cartridge"
	"github.com/sturdy-robot/sturdygb-sub000/internal/interrupts"
	"github.com/sturdy-robot/sturdygb-sub000/internal/joypad"
	"github.com/sturdy-robot/sturdygb-sub000/internal/ppu"
	"github.com/sturdy-robot/sturdygb-sub000/internal/serial"
	"github.com/sturdy-robot/sturdygb-sub000/internal/timer"
	"github.com/sturdy-robot/sturdygb-sub000/pkg/log"
)

const (
	speedSwitch = 0xFF4D
	bootDisable = 0xFF50
	wramBankSel = 0xFF70
)

// MMU is the 16-bit address-space bus every other component reaches
// memory through.
type MMU struct {
	Cart   *cartridge.Cartridge
	PPU    *ppu.PPU
	APU    *apu.APU
	Timer  *timer.Controller
	Joypad *joypad.Controller
	Serial *serial.Controller
	IRQ    *interrupts.Controller

	wram       [8][0x1000]uint8 // bank 0 fixed at 0xC000, bank N switchable at 0xD000
	wramBank   uint8
	hram       [0x7F]uint8
	bootActive bool

	isGBC      bool
	key0, key1 uint8 // speed-switch armed/current-speed bits

	Log log.Logger
}

// New constructs an MMU wired to every peripheral, with echo RAM/WRAM
// banking matching the CGB flag in cart's header.
func New(cart *cartridge.Cartridge, p *ppu.PPU, a *apu.APU, t *timer.Controller, j *joypad.Controller, s *serial.Controller, irq *interrupts.Controller) *MMU {
	m := &MMU{
		Cart:       cart,
		PPU:        p,
		APU:        a,
		Timer:      t,
		Joypad:     j,
		Serial:     s,
		IRQ:        irq,
		wramBank:   1,
		bootActive: false, // boot ROM execution is a non-goal; the core starts post-boot
		isGBC:      cart.Header.GameboyColor(),
		Log:        log.New(),
	}
	p.SetBusReader(m.Read)
	return m
}

// Read returns the byte at the given 16-bit bus address.
func (m *MMU) Read(address uint16) uint8 {
	switch {
	case address < 0x8000:
		return m.Cart.ReadROM(address)
	case address < 0xA000:
		return m.PPU.ReadVRAM(address)
	case address < 0xC000:
		return m.Cart.ReadRAM(address)
	case address < 0xD000:
		return m.wram[0][address-0xC000]
	case address < 0xE000:
		return m.wram[m.bankIndex()][address-0xD000]
	case address < 0xF000:
		return m.wram[0][address-0xE000]
	case address < 0xFE00:
		return m.wram[m.bankIndex()][address-0xF000]
	case address < 0xFEA0:
		return m.PPU.ReadOAM(address)
	case address < 0xFF00:
		return 0x00
	case address == joypad.Address:
		return m.Joypad.Read()
	case address == serial.SB, address == serial.SC:
		return m.Serial.Read(address)
	case address == timer.DIV, address == timer.TIMA, address == timer.TMA, address == timer.TAC:
		return m.Timer.Read(address)
	case address == 0xFF0F:
		return m.IRQ.ReadIF()
	case address >= 0xFF10 && address <= 0xFF3F:
		return m.APU.Read(address)
	case address == speedSwitch:
		return m.key1
	case address == bootDisable:
		if m.bootActive {
			return 0x00
		}
		return 0x01
	case address == wramBankSel:
		return m.wramBank | 0xF8
	case (address >= 0xFF40 && address <= 0xFF4B) || address == 0xFF4F || (address >= 0xFF51 && address <= 0xFF55) || (address >= 0xFF68 && address <= 0xFF6B):
		return m.PPU.Read(address)
	case address >= 0xFF80 && address <= 0xFFFE:
		return m.hram[address-0xFF80]
	case address == 0xFFFF:
		return m.IRQ.ReadIE()
	default:
		return 0xFF
	}
}

// Write stores a byte at the given 16-bit bus address.
func (m *MMU) Write(address uint16, value uint8) {
	switch {
	case address < 0x8000:
		m.Cart.WriteROM(address, value)
	case address < 0xA000:
		m.PPU.WriteVRAM(address, value)
	case address < 0xC000:
		m.Cart.WriteRAM(address, value)
	case address < 0xD000:
		m.wram[0][address-0xC000] = value
	case address < 0xE000:
		m.wram[m.bankIndex()][address-0xD000] = value
	case address < 0xF000:
		m.wram[0][address-0xE000] = value
	case address < 0xFE00:
		m.wram[m.bankIndex()][address-0xF000] = value
	case address < 0xFEA0:
		m.PPU.WriteOAM(address, value)
	case address < 0xFF00:
		// prohibited region; writes ignored
	case address == joypad.Address:
		m.Joypad.Write(value)
	case address == serial.SB, address == serial.SC:
		m.Serial.Write(address, value)
	case address == timer.DIV, address == timer.TIMA, address == timer.TMA, address == timer.TAC:
		m.Timer.Write(address, value)
	case address == 0xFF0F:
		m.IRQ.WriteIF(value)
	case address >= 0xFF10 && address <= 0xFF3F:
		m.APU.Write(address, value)
	case address == speedSwitch:
		if m.isGBC {
			m.key1 = m.key1&0x80 | value&0x01
		}
	case address == bootDisable:
		if value != 0 {
			m.bootActive = false
		}
	case address == wramBankSel:
		if m.isGBC {
			bank := value & 0x07
			if bank == 0 {
				bank = 1
			}
			m.wramBank = bank
		}
	case (address >= 0xFF40 && address <= 0xFF4B) || address == 0xFF4F || (address >= 0xFF51 && address <= 0xFF55) || (address >= 0xFF68 && address <= 0xFF6B):
		m.PPU.Write(address, value)
	case address >= 0xFF80 && address <= 0xFFFE:
		m.hram[address-0xFF80] = value
	case address == 0xFFFF:
		m.IRQ.WriteIE(value)
	default:
		// unmapped; ignored
	}
}

// bankIndex returns the WRAM bank used for the 0xD000-0xDFFF / 0xF000-0xFDFF
// window, which is always bank 1 on DMG and the selected bank (1-7) on CGB.
func (m *MMU) bankIndex() uint8 {
	if !m.isGBC {
		return 1
	}
	return m.wramBank
}

// ReadWord/WriteWord are little-endian 16-bit composite accesses, built
// from two 8-bit bus operations.
func (m *MMU) ReadWord(address uint16) uint16 {
	return uint16(m.Read(address)) | uint16(m.Read(address+1))<<8
}

func (m *MMU) WriteWord(address uint16, value uint16) {
	m.Write(address, uint8(value))
	m.Write(address+1, uint8(value>>8))
}

// DoubleSpeed reports whether the CGB double-speed mode is currently
// active (key1 bit 7).
func (m *MMU) DoubleSpeed() bool {
	return m.key1&0x80 != 0
}

// TickPeripherals advances DMA/PPU/timer/serial/APU by cycles T-cycles,
// in a fixed order: DMA → PPU → timer → serial → APU. Interrupt dispatch and CPU
// instruction execution happen in cpu.CPU before this is called each
// step.
func (m *MMU) TickPeripherals(cycles uint8) {
	m.PPU.Tick(cycles)
	m.Timer.Tick(cycles)
	m.Serial.Tick(cycles)
	m.APU.Tick(cycles)
}
