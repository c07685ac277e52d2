package apu

// Register addresses.
const (
	NR10 = 0xFF10
	NR11 = 0xFF11
	NR12 = 0xFF12
	NR13 = 0xFF13
	NR14 = 0xFF14

	NR21 = 0xFF16
	NR22 = 0xFF17
	NR23 = 0xFF18
	NR24 = 0xFF19

	NR30 = 0xFF1A
	NR31 = 0xFF1B
	NR32 = 0xFF1C
	NR33 = 0xFF1D
	NR34 = 0xFF1E

	NR41 = 0xFF20
	NR42 = 0xFF21
	NR43 = 0xFF22
	NR44 = 0xFF23

	NR50 = 0xFF24
	NR51 = 0xFF25
	NR52 = 0xFF26

	WaveRAMStart = 0xFF30
	WaveRAMEnd   = 0xFF3F
)

const cpuClockHz = 4194304

// APU is the 4-channel audio processing unit.
type APU struct {
	enabled bool

	ch1 *channel1
	ch2 *channel2
	ch3 *channel3
	ch4 *channel4

	frameSeqCounter int
	frameSeqStep    int

	nr50, nr51 uint8

	sampleRate        uint32
	sampleAccumulator uint32

	hpL, hpR float32 // one-pole high-pass filter state, per channel side

	ring      []float32
	ringWrite int
	ringRead  int
	ringFull  bool
}

// ringCapacity bounds the drain buffer; at a typical 48kHz stereo
// stream this is roughly a fifth of a second, comfortably more than one
// StepFrame's worth of audio.
const ringCapacity = 1 << 14

// New returns a powered-on APU with the post-boot-ROM register defaults
// (NR52=0xF1 DMG / 0xF0 CGB equivalent power-on state is approximated
// by simply enabling the APU and leaving channels disabled).
func New() *APU {
	return &APU{
		enabled: true,
		ch1:     newChannel1(),
		ch2:     newChannel2(),
		ch3:     newChannel3(),
		ch4:     newChannel4(),
		nr50:    0x77,
		nr51:    0xF3,
		ring:    make([]float32, ringCapacity),
	}
}

// SetSampleRate configures the host's desired output sample rate; it
// must be called before audio is expected to drain meaningfully.
func (a *APU) SetSampleRate(hz uint32) {
	a.sampleRate = hz
}

// Tick advances every channel and the frame sequencer by cycles
// T-cycles, and resamples into the output ring as needed.
func (a *APU) Tick(cycles uint8) {
	if !a.enabled {
		return
	}
	for i := uint8(0); i < cycles; i++ {
		a.ch1.tickFrequency(1)
		a.ch2.tickFrequency(1)
		a.ch3.tickFrequency(1)
		a.ch4.tickFrequency(1)

		a.frameSeqCounter++
		if a.frameSeqCounter >= 8192 {
			a.frameSeqCounter = 0
			a.stepFrameSequencer()
		}

		a.resample()
	}
}

func (a *APU) stepFrameSequencer() {
	switch a.frameSeqStep {
	case 0:
		a.ch1.lengthStep()
		a.ch2.lengthStep()
		a.ch3.lengthStep()
		a.ch4.lengthStep()
	case 2:
		a.ch1.lengthStep()
		a.ch2.lengthStep()
		a.ch3.lengthStep()
		a.ch4.lengthStep()
		a.ch1.sweepClock()
	case 4:
		a.ch1.lengthStep()
		a.ch2.lengthStep()
		a.ch3.lengthStep()
		a.ch4.lengthStep()
	case 6:
		a.ch1.lengthStep()
		a.ch2.lengthStep()
		a.ch3.lengthStep()
		a.ch4.lengthStep()
		a.ch1.sweepClock()
	case 7:
		a.ch1.volumeStep()
		a.ch2.volumeStep()
		a.ch4.volumeStep()
	}
	a.frameSeqStep = (a.frameSeqStep + 1) % 8
}

// resample accumulates the host sample rate once per T-cycle; whenever
// the accumulator reaches the CPU clock a stereo frame is mixed and
// pushed into the ring.
func (a *APU) resample() {
	if a.sampleRate == 0 {
		return
	}
	a.sampleAccumulator += a.sampleRate
	if a.sampleAccumulator < cpuClockHz {
		return
	}
	a.sampleAccumulator -= cpuClockHz
	a.mixAndPush()
}

func (a *APU) mixAndPush() {
	amps := [4]float32{a.ch1.amplitude(), a.ch2.amplitude(), a.ch3.amplitude(), a.ch4.amplitude()}

	var left, right float32
	var leftN, rightN int
	for i, amp := range amps {
		if a.nr51&(1<<uint(i+4)) != 0 {
			left += amp
			leftN++
		}
		if a.nr51&(1<<uint(i)) != 0 {
			right += amp
			rightN++
		}
	}
	if leftN > 0 {
		left /= float32(leftN)
	}
	if rightN > 0 {
		right /= float32(rightN)
	}

	volL := float32((a.nr50>>4)&0x07+1) / 8
	volR := float32(a.nr50&0x07+1) / 8
	left *= volL
	right *= volR

	left, a.hpL = highPass(left, a.hpL)
	right, a.hpR = highPass(right, a.hpR)

	a.push(left)
	a.push(right)
}

// highPass removes DC offset with a one-pole filter.
const highPassCoefficient = 0.996

func highPass(in, state float32) (float32, float32) {
	out := in - state
	state = in - out*highPassCoefficient
	return out, state
}

func (a *APU) push(sample float32) {
	a.ring[a.ringWrite] = sample
	a.ringWrite = (a.ringWrite + 1) % len(a.ring)
	if a.ringFull {
		a.ringRead = (a.ringRead + 1) % len(a.ring) // overwrite oldest
	}
	if a.ringWrite == a.ringRead {
		a.ringFull = true
	}
}

// DrainAudio returns every sample buffered since the last drain,
// interleaved L,R,L,R,…, normalized to [-1, 1].
func (a *APU) DrainAudio() []float32 {
	if a.ringRead == a.ringWrite && !a.ringFull {
		return nil
	}
	var out []float32
	for a.ringRead != a.ringWrite || a.ringFull {
		out = append(out, a.ring[a.ringRead])
		a.ringRead = (a.ringRead + 1) % len(a.ring)
		a.ringFull = false
	}
	return out
}

// Read returns the value at the given APU register address.
func (a *APU) Read(address uint16) uint8 {
	switch address {
	case NR10:
		return a.ch1.readNR10()
	case NR11:
		return a.ch1.readNR11()
	case NR12:
		return a.ch1.getNRx2()
	case NR14:
		return a.ch1.readNR14()
	case NR21:
		return a.ch2.readNR21()
	case NR22:
		return a.ch2.getNRx2()
	case NR24:
		return a.ch2.readNR24()
	case NR30:
		return a.ch3.readNR30()
	case NR32:
		return a.ch3.readNR32()
	case NR34:
		return a.ch3.readNR34()
	case NR42:
		return a.ch4.getNRx2()
	case NR43:
		return a.ch4.readNR43()
	case NR44:
		return a.ch4.readNR44()
	case NR50:
		return a.nr50
	case NR51:
		return a.nr51
	case NR52:
		return a.readNR52()
	default:
		if address >= WaveRAMStart && address <= WaveRAMEnd {
			return a.ch3.readWaveRAM(uint8(address - WaveRAMStart))
		}
		return 0xFF
	}
}

func (a *APU) readNR52() uint8 {
	v := uint8(0x70)
	if a.enabled {
		v |= 0x80
	}
	if a.ch1.enabled {
		v |= 0x01
	}
	if a.ch2.enabled {
		v |= 0x02
	}
	if a.ch3.enabled {
		v |= 0x04
	}
	if a.ch4.enabled {
		v |= 0x08
	}
	return v
}

// Write stores a value to the given APU register address. Most
// registers reject writes while the power bit (NR52.7) is clear; NR52
// and wave RAM are the exceptions.
func (a *APU) Write(address uint16, value uint8) {
	if !a.enabled && address != NR52 && !(address >= WaveRAMStart && address <= WaveRAMEnd) {
		return
	}
	switch address {
	case NR10:
		a.ch1.writeNR10(value)
	case NR11:
		a.ch1.writeNR11(value)
	case NR12:
		a.ch1.setNRx2(value)
	case NR13:
		a.ch1.writeNR13(value)
	case NR14:
		a.ch1.writeNR14(value)
	case NR21:
		a.ch2.writeNR21(value)
	case NR22:
		a.ch2.setNRx2(value)
	case NR23:
		a.ch2.writeNR23(value)
	case NR24:
		a.ch2.writeNR24(value)
	case NR30:
		a.ch3.writeNR30(value)
	case NR31:
		a.ch3.writeNR31(value)
	case NR32:
		a.ch3.writeNR32(value)
	case NR33:
		a.ch3.writeNR33(value)
	case NR34:
		a.ch3.writeNR34(value)
	case NR41:
		a.ch4.writeNR41(value)
	case NR42:
		a.ch4.setNRx2(value)
	case NR43:
		a.ch4.writeNR43(value)
	case NR44:
		a.ch4.writeNR44(value)
	case NR50:
		a.nr50 = value
	case NR51:
		a.nr51 = value
	case NR52:
		a.writeNR52(value)
	default:
		if address >= WaveRAMStart && address <= WaveRAMEnd {
			a.ch3.writeWaveRAM(uint8(address-WaveRAMStart), value)
		}
	}
}

// writeNR52 powers the APU on or off. Powering off immediately clears
// every channel register and disables every channel synchronously with
// the write, rather than waiting for the next frame-sequencer boundary.
func (a *APU) writeNR52(value uint8) {
	wasEnabled := a.enabled
	a.enabled = value&0x80 != 0
	if wasEnabled && !a.enabled {
		*a.ch1 = channel1{volumeChannel: &volumeChannel{channel: &channel{}}}
		*a.ch2 = channel2{volumeChannel: &volumeChannel{channel: &channel{}}}
		waveRAM := a.ch3.waveRAM
		*a.ch3 = channel3{channel: &channel{}}
		a.ch3.waveRAM = waveRAM
		*a.ch4 = channel4{volumeChannel: &volumeChannel{channel: &channel{}}}
		a.ch1.channel.stepWaveGeneration = a.ch1.stepDuty
		a.ch1.channel.reloadFrequencyTimer = a.ch1.reloadTimer
		a.ch2.channel.stepWaveGeneration = a.ch2.stepDuty
		a.ch2.channel.reloadFrequencyTimer = a.ch2.reloadTimer
		a.ch3.channel.stepWaveGeneration = a.ch3.stepWave
		a.ch3.channel.reloadFrequencyTimer = a.ch3.reloadTimer
		a.ch4.channel.stepWaveGeneration = a.ch4.stepLFSR
		a.ch4.channel.reloadFrequencyTimer = a.ch4.reloadTimer
		a.nr50 = 0
		a.nr51 = 0
	}
}
