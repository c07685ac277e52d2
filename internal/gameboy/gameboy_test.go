package gameboy

import (
	"testing"

	"github.com/sturdy-robot/sturdygb-sub000/internal/joypad"
)

func headerChecksum(h []byte) uint8 {
	var sum uint8
	for _, b := range h[0x34:0x4D] {
		sum = sum - b - 1
	}
	return sum
}

// minimalROM builds a tiny ROM-only cartridge whose reset vector is a
// tight infinite JP loop, enough to drive StepFrame without a real game.
func minimalROM() []byte {
	rom := make([]byte, 0x8000)
	rom[0x100] = 0x00 // NOP
	rom[0x101] = 0xC3 // JP 0x0100
	rom[0x102] = 0x00
	rom[0x103] = 0x01
	rom[0x147] = 0x00 // ROM only
	rom[0x148] = 0x00
	rom[0x14D] = headerChecksum(rom[0x100:0x150])
	return rom
}

func TestLoadAndStepFrame(t *testing.T) {
	gb, err := Load(minimalROM(), "")
	if err != nil {
		t.Fatalf("Load: unexpected error: %v", err)
	}

	gb.StepFrame()

	screen := gb.ScreenPixels()
	if len(screen) != 144 || len(screen[0]) != 160 {
		t.Errorf("ScreenPixels dimensions: got %dx%d want 144x160", len(screen), len(screen[0]))
	}
}

func TestPressAndReleaseButtonDoesNotPanic(t *testing.T) {
	gb, err := Load(minimalROM(), "")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	gb.PressButton(joypad.ButtonA)
	gb.ReleaseButton(joypad.ButtonA)
}

func TestCloseWithNoSavePathIsNoop(t *testing.T) {
	gb, err := Load(minimalROM(), "")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if err := gb.Close(); err != nil {
		t.Errorf("Close() with no save path: expected nil error, got %v", err)
	}
}
