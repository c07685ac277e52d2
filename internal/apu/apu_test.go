package apu

import "testing"

func TestDrainAudioProducesSamplesAfterTrigger(t *testing.T) {
	a := New()
	a.SetSampleRate(44100)
	a.Write(NR12, 0xF0) // max volume envelope, DAC on
	a.Write(NR14, 0x80) // trigger channel 1

	a.Tick(255)
	a.Tick(255)

	samples := a.DrainAudio()
	if len(samples) == 0 {
		t.Errorf("expected DrainAudio to return samples after ticking with a triggered channel")
	}
}

func TestDrainAudioIsConsumeOnce(t *testing.T) {
	a := New()
	a.SetSampleRate(44100)
	a.Write(NR12, 0xF0)
	a.Write(NR14, 0x80)
	a.Tick(255)

	_ = a.DrainAudio()
	if got := a.DrainAudio(); got != nil {
		t.Errorf("second DrainAudio with no new ticks: got %d samples, want none", len(got))
	}
}

func TestNR52PowerOffClearsRegisters(t *testing.T) {
	a := New()
	a.Write(NR12, 0xF0)
	a.Write(NR14, 0x80)

	a.Write(NR52, 0x00) // power off
	if a.Read(NR12) != 0 {
		t.Errorf("NR12 after power-off: got 0x%02x want 0x00", a.Read(NR12))
	}
}

func TestNR52ReadReflectsPowerBit(t *testing.T) {
	a := New()
	if a.Read(NR52)&0x80 == 0 {
		t.Errorf("expected NR52 power bit set after New()")
	}
	a.Write(NR52, 0x00)
	if a.Read(NR52)&0x80 != 0 {
		t.Errorf("expected NR52 power bit clear after power-off")
	}
}

func TestRegisterWritesIgnoredWhilePoweredOff(t *testing.T) {
	a := New()
	a.Write(NR52, 0x00)
	a.Write(NR12, 0xF0) // should be ignored while powered off
	if a.Read(NR12) != 0 {
		t.Errorf("NR12 write while powered off: got 0x%02x want 0x00 (ignored)", a.Read(NR12))
	}
}
