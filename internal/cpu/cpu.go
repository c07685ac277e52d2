package cpu

import (
	"github.com/sturdy-robot/sturdygb-sub000/internal/interrupts"
	"github.com/sturdy-robot/sturdygb-sub000/internal/types"
)

// Bus is everything the CPU needs from the rest of the machine: byte
// access and the ability to advance every other peripheral by the same
// T-cycle tally.
type Bus interface {
	Read(address uint16) uint8
	Write(address uint16, value uint8)
	TickPeripherals(cycles uint8)
	DoubleSpeed() bool
}

// mode tracks whether the CPU is halted or stopped.
type mode uint8

const (
	modeNormal mode = iota
	modeHalt
	modeStop
)

// CPU is the SM83 core.
type CPU struct {
	A    Register
	F    Register
	B, C Register
	D, E Register
	H, L Register

	BC, DE, HL, AF RegisterPair

	SP uint16
	PC uint16

	ime       bool
	imeToggle bool // EI was executed; ime becomes true at the head of the next Step

	mode mode

	registerPointers [8]*Register // indexed B,C,D,E,H,L,(HL) placeholder,A

	model Model
	irq   *interrupts.Controller
	b     Bus

	// Debug enables the LD B,B breakpoint convention.
	Debug           bool
	DebugBreakpoint bool

	cyclesThisStep uint8

	// hlScratch backs getSourceRegister's (HL) case: the read value is
	// staged here so block-1/2/CB opcodes can treat it like any other
	// register pointer before writing the result back to memory.
	hlScratch uint8
}

// Model is re-exported so callers don't need to import internal/types
// just to construct a CPU.
type Model = types.Model

// New returns a CPU with the given Model's post-boot-ROM register
// defaults already in place. Boot ROM execution is not emulated: PC
// starts directly at the cartridge entry point.
func New(model Model, irq *interrupts.Controller, b Bus) *CPU {
	c := &CPU{model: model, irq: irq, b: b}
	c.BC = RegisterPair{&c.B, &c.C}
	c.DE = RegisterPair{&c.D, &c.E}
	c.HL = RegisterPair{&c.H, &c.L}
	c.AF = RegisterPair{&c.A, &c.F}
	c.registerPointers = [8]*Register{&c.B, &c.C, &c.D, &c.E, &c.H, &c.L, nil, &c.A}

	if model == types.ModelCGB {
		c.A, c.F = 0x11, 0x80
		c.B, c.C = 0x00, 0x00
		c.D, c.E = 0xFF, 0x56
		c.H, c.L = 0x00, 0x0D
	} else {
		c.A, c.F = 0x01, 0xB0
		c.B, c.C = 0x00, 0x13
		c.D, c.E = 0x00, 0xD8
		c.H, c.L = 0x01, 0x4D
	}
	c.SP = 0xFFFE
	c.PC = 0x0100
	return c
}

// Step runs one fetch/decode/execute cycle (or one HALT/STOP idle tick)
// and returns the number of T-cycles it consumed. Interrupt dispatch is
// checked at the head of every call.
func (c *CPU) Step() uint8 {
	c.cyclesThisStep = 0
	c.serviceInterrupts()

	switch c.mode {
	case modeHalt, modeStop:
		c.tickCycle()
	default:
		instr := c.fetch()
		c.decode(instr)
	}

	return c.cyclesThisStep
}

// serviceInterrupts resolves a pending EI delay, wakes the CPU from
// HALT, and (if IME is set) dispatches the highest-priority interrupt.
func (c *CPU) serviceInterrupts() {
	if c.imeToggle {
		c.imeToggle = false
		c.ime = true
		return
	}

	pending := c.irq.Pending()
	if pending != 0 && c.mode == modeHalt {
		c.mode = modeNormal
	}
	if !c.ime || pending == 0 {
		return
	}

	c.ime = false
	c.tickCycle()
	c.push(uint8(c.PC>>8), uint8(c.PC))
	c.PC = c.irq.Dispatch()
	c.tickCycle()
	c.tickCycle()
}

// tickCycle charges one M-cycle (4 T-cycles, split into two half-rate
// bursts when double-speed is active) and advances every peripheral.
func (c *CPU) tickCycle() {
	const mCycle = 4
	c.cyclesThisStep += mCycle
	if c.b.DoubleSpeed() {
		c.b.TickPeripherals(mCycle / 2)
		c.b.TickPeripherals(mCycle / 2)
	} else {
		c.b.TickPeripherals(mCycle)
	}
}

// fetch reads the byte at PC, advances PC, and charges one M-cycle. It
// is used for both the opcode and every immediate operand.
func (c *CPU) fetch() uint8 {
	v := c.b.Read(c.PC)
	c.tickCycle()
	c.PC++
	return v
}

// readOperand is an alias for fetch, kept distinct for readability at
// call sites that read an immediate rather than an opcode.
func (c *CPU) readOperand() uint8 {
	return c.fetch()
}

// clockedRead reads a byte from an address that is not PC (e.g. (HL),
// (BC), (a16)), charging one M-cycle.
func (c *CPU) clockedRead(address uint16) uint8 {
	c.tickCycle()
	return c.b.Read(address)
}

// clockedWrite writes a byte to an address, charging one M-cycle.
func (c *CPU) clockedWrite(address uint16, value uint8) {
	c.tickCycle()
	c.b.Write(address, value)
}

func (c *CPU) push(hi, lo uint8) {
	c.SP--
	c.clockedWrite(c.SP, hi)
	c.SP--
	c.clockedWrite(c.SP, lo)
}

func (c *CPU) pop() (hi, lo uint8) {
	lo = c.clockedRead(c.SP)
	c.SP++
	hi = c.clockedRead(c.SP)
	c.SP++
	return
}

func (c *CPU) isFlagSet(flag uint8) bool {
	return c.F&flag != 0
}

func (c *CPU) clearFlag(flag uint8) {
	c.F &^= flag
}

// setFlags writes Z, N, H, C in one call.
func (c *CPU) setFlags(z, n, h, cy bool) {
	var f uint8
	if z {
		f |= flagZero
	}
	if n {
		f |= flagSubtract
	}
	if h {
		f |= flagHalfCarry
	}
	if cy {
		f |= flagCarry
	}
	c.F = f
}

// jumpAbsolute reads a 16-bit address operand and, if take is true,
// jumps to it; cycle cost differs (the extra M-cycle for the jump
// itself is charged via tickCycle when take is true).
func (c *CPU) jumpAbsolute(take bool) {
	lo, hi := c.readOperand(), c.readOperand()
	addr := uint16(hi)<<8 | uint16(lo)
	if take {
		c.PC = addr
		c.tickCycle()
	}
}

func (c *CPU) call(take bool) {
	lo, hi := c.readOperand(), c.readOperand()
	addr := uint16(hi)<<8 | uint16(lo)
	if take {
		c.tickCycle()
		c.push(uint8(c.PC>>8), uint8(c.PC))
		c.PC = addr
	}
}

func (c *CPU) ret(take bool) {
	if !take {
		return
	}
	lo, hi := c.pop()
	c.PC = uint16(hi)<<8 | uint16(lo)
	c.tickCycle()
}

// addSPSigned computes SP + a signed 8-bit immediate, setting H/C from
// the unsigned low-byte addition (the documented quirk for this opcode
// pair: flags come from an 8-bit add even though the result is 16-bit).
func (c *CPU) addSPSigned() uint16 {
	v := int8(c.readOperand())
	result := uint16(int32(c.SP) + int32(v))
	h := (c.SP&0xF)+uint16(uint8(v)&0xF) > 0xF
	cy := (c.SP&0xFF)+uint16(uint8(v)) > 0xFF
	c.setFlags(false, false, h, cy)
	return result
}

// skipHALT enters the HALT idle state.
func (c *CPU) skipHALT() {
	c.mode = modeHalt
}

// doHALTBug implements the documented HALT bug: the opcode at PC
// executes, but PC is not advanced past it, so the next fetch re-reads
// the same byte.
func (c *CPU) doHALTBug() {
	instr := c.b.Read(c.PC)
	c.tickCycle()
	c.decode(instr)
}
