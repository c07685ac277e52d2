package serial

import (
	"testing"

	"github.com/sturdy-robot/sturdygb-sub000/internal/interrupts"
)

func TestTransferAppendsToLogAndRequestsInterrupt(t *testing.T) {
	irq := interrupts.NewController()
	irq.WriteIE(0xFF)
	c := New(irq)

	c.Write(SB, 0x42)
	c.Write(SC, 0x81) // start internal-clock transfer

	for i := 0; i < bitPeriod*8; i += 4 {
		c.Tick(4)
	}

	log := c.Log()
	if len(log) != 1 || log[0] != 0x42 {
		t.Errorf("Log() after transfer: got %v want [0x42]", log)
	}
	if c.Read(SB) != 0xFF {
		t.Errorf("SB after transfer: got 0x%02x want 0xFF", c.Read(SB))
	}
	if irq.Pending()&(1<<interrupts.SerialFlag) == 0 {
		t.Errorf("expected Serial interrupt pending after transfer completes")
	}
}

func TestNoTransferWithoutInternalClockBit(t *testing.T) {
	irq := interrupts.NewController()
	c := New(irq)
	c.Write(SB, 0x55)
	c.Write(SC, 0x80) // transfer requested, but external clock selected
	for i := 0; i < bitPeriod*8; i += 4 {
		c.Tick(4)
	}

	if len(c.Log()) != 0 {
		t.Errorf("expected no transfer to complete without the internal-clock bit set")
	}
}
