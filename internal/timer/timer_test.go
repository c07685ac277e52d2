package timer

import (
	"testing"

	"github.com/sturdy-robot/sturdygb-sub000/internal/interrupts"
)

func TestDivIncrementsEveryCycleAndWriteResets(t *testing.T) {
	c := New(interrupts.NewController())
	c.Tick(255)
	if c.Read(DIV) != 0 {
		t.Errorf("DIV after 255 cycles: got 0x%02x want 0x00 (div high byte unchanged below 256)", c.Read(DIV))
	}
	c.Tick(1)
	if c.Read(DIV) != 1 {
		t.Errorf("DIV after 256 cycles: got 0x%02x want 0x01", c.Read(DIV))
	}

	c.Write(DIV, 0xFF) // any write resets the whole counter
	if c.Read(DIV) != 0 {
		t.Errorf("DIV after write: got 0x%02x want 0x00", c.Read(DIV))
	}
}

func TestTIMAOverflowReloadsAndRequestsInterrupt(t *testing.T) {
	irq := interrupts.NewController()
	c := New(irq)
	c.Write(TAC, 0x05) // enabled, period 16
	c.Write(TMA, 0x10)
	c.Write(TIMA, 0xFF)

	c.Tick(16) // exactly one TIMA-increment period
	if c.Read(TIMA) != 0x10 {
		t.Errorf("TIMA after overflow: got 0x%02x want TMA=0x10", c.Read(TIMA))
	}
	irq.WriteIE(0xFF)
	if irq.Pending() == 0 {
		t.Errorf("expected Timer interrupt pending after TIMA overflow")
	}
}

func TestTACDisabledStopsTIMA(t *testing.T) {
	c := New(interrupts.NewController())
	c.Write(TAC, 0x01) // period 16, but disabled (bit 2 clear)
	c.Tick(64)
	if c.Read(TIMA) != 0 {
		t.Errorf("TIMA with TAC disabled: got 0x%02x want 0x00", c.Read(TIMA))
	}
}
