// Package serial implements the SB/SC serial port registers. No
// link-cable peer is emulated, so a transfer simply shifts 0xFF in over
// 8 bit-periods and appends the outgoing byte to a log the host can
// inspect.
package serial

import "github.com/sturdy-robot/sturdygb-sub000/internal/interrupts"

const (
	SB = 0xFF01
	SC = 0xFF02
)

// bitPeriod is the number of T-cycles per shifted bit at the internal
// (fast) clock; 8 bit-periods make one byte transfer.
const bitPeriod = 512

// Controller is the serial port.
type Controller struct {
	sb uint8
	sc uint8

	transferring bool
	cyclesLeft   int

	log []byte

	irq *interrupts.Controller
}

// New returns a serial controller wired to the given interrupt controller.
func New(irq *interrupts.Controller) *Controller {
	return &Controller{irq: irq}
}

// Tick advances an in-progress transfer by the given number of T-cycles.
func (c *Controller) Tick(cycles uint8) {
	if !c.transferring {
		return
	}
	c.cyclesLeft -= int(cycles)
	if c.cyclesLeft <= 0 {
		c.log = append(c.log, c.sb)
		c.sb = 0xFF
		c.transferring = false
		c.sc &^= 1 << 7
		c.irq.Request(interrupts.SerialFlag)
	}
}

// Log returns every byte shifted out since power-on.
func (c *Controller) Log() []byte {
	return c.log
}

// Read returns the value at the given serial register address.
func (c *Controller) Read(address uint16) uint8 {
	switch address {
	case SB:
		return c.sb
	case SC:
		return c.sc | 0x7E
	default:
		panic("serial: read from unmapped address")
	}
}

// Write stores a value to the given serial register address. Writing SC
// with both the transfer-start and internal-clock bits set begins a
// transfer.
func (c *Controller) Write(address uint16, value uint8) {
	switch address {
	case SB:
		c.sb = value
	case SC:
		c.sc = value
		if value&0x81 == 0x81 {
			c.transferring = true
			c.cyclesLeft = bitPeriod * 8
		}
	default:
		panic("serial: write to unmapped address")
	}
}
