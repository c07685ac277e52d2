// Package joypad implements the P1/JOYP input matrix register.
package joypad

import "github.com/sturdy-robot/sturdygb-sub000/internal/interrupts"

// Button identifies one of the 8 physical inputs.
type Button uint8

const (
	ButtonRight Button = iota
	ButtonLeft
	ButtonUp
	ButtonDown
	ButtonA
	ButtonB
	ButtonSelect
	ButtonStart
)

// Address is the bus address of the joypad register.
const Address = 0xFF00

// Controller is the joypad input matrix. Button state is held as one
// bool per button (true while held); Read converts it to the register's
// active-low convention, clearing the bit of each held button in the
// selected row(s).
type Controller struct {
	selectButtons bool // bit 5 cleared selects the A/B/Select/Start row
	selectDpad    bool // bit 4 cleared selects the direction-key row

	pressed [8]bool // true while held, indexed by Button

	irq *interrupts.Controller
}

// New returns a joypad controller with no buttons held, wired to the
// given interrupt controller for the Joypad interrupt.
func New(irq *interrupts.Controller) *Controller {
	return &Controller{irq: irq}
}

// Press marks a button as held and requests the Joypad interrupt, since
// a high-to-low transition on any selected input line does so on real
// hardware.
func (c *Controller) Press(b Button) {
	c.pressed[b] = true
	c.irq.Request(interrupts.JoypadFlag)
}

// Release marks a button as no longer held.
func (c *Controller) Release(b Button) {
	c.pressed[b] = false
}

// Read returns the P1 register: bits 6-7 always read 1, bits 4-5 reflect
// the last-selected row, bits 0-3 are 0 for a pressed input in the
// currently selected row(s) and 1 otherwise.
func (c *Controller) Read() uint8 {
	v := uint8(0xFF) // bits 6-7 fixed high; bits 4-5 and 0-3 default high (deselected/unpressed) and are cleared below only where selected
	if !c.selectButtons {
		v &^= 1 << 5
		if c.pressed[ButtonA] {
			v &^= 1 << 0
		}
		if c.pressed[ButtonB] {
			v &^= 1 << 1
		}
		if c.pressed[ButtonSelect] {
			v &^= 1 << 2
		}
		if c.pressed[ButtonStart] {
			v &^= 1 << 3
		}
	}
	if !c.selectDpad {
		v &^= 1 << 4
		if c.pressed[ButtonRight] {
			v &^= 1 << 0
		}
		if c.pressed[ButtonLeft] {
			v &^= 1 << 1
		}
		if c.pressed[ButtonUp] {
			v &^= 1 << 2
		}
		if c.pressed[ButtonDown] {
			v &^= 1 << 3
		}
	}
	return v
}

// Write stores the select bits (4-5); the low nibble is read-only from
// the CPU's perspective.
func (c *Controller) Write(value uint8) {
	c.selectDpad = value&(1<<4) != 0
	c.selectButtons = value&(1<<5) != 0
}
