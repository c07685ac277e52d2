package mmu

import (
	"testing"

	"github.com/sturdy-robot/sturdygb-sub000/internal/apu"
	"github.com/sturdy-robot/sturdygb-sub000/internal/cartridge"
	"github.com/sturdy-robot/sturdygb-sub000/internal/interrupts"
	"github.com/sturdy-robot/sturdygb-sub000/internal/joypad"
	"github.com/sturdy-robot/sturdygb-sub000/internal/ppu"
	"github.com/sturdy-robot/sturdygb-sub000/internal/serial"
	"github.com/sturdy-robot/sturdygb-sub000/internal/timer"
)

// headerChecksum mirrors cartridge's own algorithm, duplicated here (a
// different package) just to stamp a valid test ROM.
func headerChecksum(h []byte) uint8 {
	var sum uint8
	for _, b := range h[0x34:0x4D] {
		sum = sum - b - 1
	}
	return sum
}

func newTestMMU(t *testing.T) *MMU {
	t.Helper()
	rom := make([]byte, 0x8000)
	rom[0x147] = 0x00 // ROM only
	rom[0x148] = 0x00
	rom[0x14D] = headerChecksum(rom[0x100:0x150])

	cart, err := cartridge.New(rom, "")
	if err != nil {
		t.Fatalf("cartridge.New: %v", err)
	}

	irq := interrupts.NewController()
	return New(cart, ppu.New(irq, false), apu.New(), timer.New(irq), joypad.New(irq), serial.New(irq), irq)
}

func TestWRAMBank0AndEchoMirror(t *testing.T) {
	m := newTestMMU(t)
	m.Write(0xC010, 0x7A)
	if m.Read(0xE010) != 0x7A {
		t.Errorf("echo RAM (0xE000 mirrors 0xC000): got 0x%02x want 0x7A", m.Read(0xE010))
	}
}

func TestWRAMBankNFixedOnDMG(t *testing.T) {
	m := newTestMMU(t)
	m.Write(wramBankSel, 0x05) // ignored: not a CGB cart
	m.Write(0xD010, 0x5A)
	if m.Read(0xD010) != 0x5A {
		t.Errorf("bank-N WRAM roundtrip: got 0x%02x want 0x5A", m.Read(0xD010))
	}
}

func TestProhibitedRegionReadsZero(t *testing.T) {
	m := newTestMMU(t)
	m.Write(0xFEA0, 0x99) // ignored
	if m.Read(0xFEA0) != 0x00 {
		t.Errorf("prohibited region read: got 0x%02x want 0x00", m.Read(0xFEA0))
	}
}

func TestHRAMRoundTrip(t *testing.T) {
	m := newTestMMU(t)
	m.Write(0xFF80, 0x11)
	m.Write(0xFFFE, 0x22)
	if m.Read(0xFF80) != 0x11 || m.Read(0xFFFE) != 0x22 {
		t.Errorf("HRAM roundtrip failed: got 0x%02x/0x%02x", m.Read(0xFF80), m.Read(0xFFFE))
	}
}

func TestIERegister(t *testing.T) {
	m := newTestMMU(t)
	m.Write(0xFFFF, 0xFF)
	if m.Read(0xFFFF) != 0x1F {
		t.Errorf("IE readback: got 0x%02x want 0x1F (masked to 5 bits)", m.Read(0xFFFF))
	}
}
