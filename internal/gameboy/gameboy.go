// Package gameboy assembles every peripheral into the host-facing core:
// Load, SetSampleRate, StepFrame, ScreenPixels, DrainAudio,
// PressButton/ReleaseButton.
package gameboy

import (
	"github.com/sturdy-robot/sturdygb-sub000/internal/apu"
	"github.com/sturdy-robot/sturdygb-sub000/internal/cartridge"
	"github.com/sturdy-robot/sturdygb-sub000/internal/cpu"
	"github.com/sturdy-robot/sturdygb-sub000/internal/interrupts"
	"github.com/sturdy-robot/sturdygb-sub000/internal/joypad"
	"github.com/sturdy-robot/sturdygb-sub000/internal/mmu"
	"github.com/sturdy-robot/sturdygb-sub000/internal/ppu"
	"github.com/sturdy-robot/sturdygb-sub000/internal/serial"
	"github.com/sturdy-robot/sturdygb-sub000/internal/timer"
	"github.com/sturdy-robot/sturdygb-sub000/internal/types"
	"github.com/sturdy-robot/sturdygb-sub000/pkg/log"
)

// maxStepsPerFrame bounds StepFrame's work: a frame completes in
// roughly 70,000 T-cycles, or about 17,500 minimum-length CPU steps, so
// this ceiling is generous headroom against a pathological ROM that
// never reaches VBlank.
const maxStepsPerFrame = 200_000

// GameBoy is the assembled core: every peripheral, wired together, plus
// the cartridge it was loaded with.
type GameBoy struct {
	Cart   *cartridge.Cartridge
	IRQ    *interrupts.Controller
	Timer  *timer.Controller
	Joypad *joypad.Controller
	Serial *serial.Controller
	PPU    *ppu.PPU
	APU    *apu.APU
	MMU    *mmu.MMU
	CPU    *cpu.CPU

	Log log.Logger
}

// Load parses rom, constructs its MBC, and assembles a running core.
// savePath names where battery-backed RAM is loaded from and flushed to;
// pass "" to disable save persistence.
func Load(rom []byte, savePath string) (*GameBoy, error) {
	cart, err := cartridge.New(rom, savePath)
	if err != nil {
		return nil, err
	}

	model := types.ModelDMG
	if cart.Header.GameboyColor() {
		model = types.ModelCGB
	}

	irq := interrupts.NewController()
	t := timer.New(irq)
	j := joypad.New(irq)
	s := serial.New(irq)
	p := ppu.New(irq, model == types.ModelCGB)
	a := apu.New()

	m := mmu.New(cart, p, a, t, j, s, irq)
	c := cpu.New(model, irq, m)

	return &GameBoy{
		Cart: cart, IRQ: irq, Timer: t, Joypad: j, Serial: s,
		PPU: p, APU: a, MMU: m, CPU: c, Log: m.Log,
	}, nil
}

// SetSampleRate configures the host's desired audio sample rate. Call
// this before the first StepFrame.
func (g *GameBoy) SetSampleRate(hz uint32) {
	g.APU.SetSampleRate(hz)
}

// StepFrame advances the core until one VBlank boundary is crossed.
// Re-entrant calls are safe: each call runs until the *next* VBlank.
func (g *GameBoy) StepFrame() {
	for i := 0; i < maxStepsPerFrame; i++ {
		g.CPU.Step()
		if g.PPU.FrameReady() {
			return
		}
	}
	g.Log.Errorf("step_frame exceeded %d CPU steps without reaching VBlank", maxStepsPerFrame)
}

// ScreenPixels returns the DMG 2-bit shade-index framebuffer (0 =
// lightest).
func (g *GameBoy) ScreenPixels() [144][160]uint8 {
	return g.PPU.Screen()
}

// ScreenPixelsRGB15 returns the 15-bit BGR framebuffer. CGB palette
// colours are not looked up by the renderer, so every entry is 0.
func (g *GameBoy) ScreenPixelsRGB15() [144][160]uint16 {
	return g.PPU.ScreenRGB15()
}

// DrainAudio returns every sample buffered since the last call,
// interleaved L,R,L,R,…, normalized to [-1, 1].
func (g *GameBoy) DrainAudio() []float32 {
	return g.APU.DrainAudio()
}

// PressButton marks a button as held.
func (g *GameBoy) PressButton(btn joypad.Button) {
	g.Joypad.Press(btn)
}

// ReleaseButton marks a button as released.
func (g *GameBoy) ReleaseButton(btn joypad.Button) {
	g.Joypad.Release(btn)
}

// SerialLog returns every byte shifted out over the serial port since
// power-on. No link-cable peer is emulated, so the other end always
// shifts back 0xFF.
func (g *GameBoy) SerialLog() []byte {
	return g.Serial.Log()
}

// Close flushes battery-backed cartridge RAM to the save path.
func (g *GameBoy) Close() error {
	return g.Cart.Flush()
}
