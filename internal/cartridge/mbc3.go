package cartridge

// rtcRegister indexes the 5 latched real-time-clock registers MBC3
// exposes when RAM bank select is written a value of 0x08-0x0C.
type rtcRegister int

const (
	rtcSeconds rtcRegister = iota
	rtcMinutes
	rtcHours
	rtcDaysLow
	rtcDaysHighControl
)

// MBC3 adds a 7-bit ROM bank register, a RAM-bank-or-RTC-register select,
// and (on cartridges with a timer chip) a simple real-time clock.
type MBC3 struct {
	rom []byte
	ram []byte

	ramEnabled bool
	romBank    uint8
	ramBank    uint8 // 0x00-0x03 selects RAM, 0x08-0x0C selects an RTC register

	hasTimer   bool
	rtc        [5]uint8
	rtcLatch   uint8 // 0xFF = no pending latch write
	latched    bool
	latchedRTC [5]uint8

	battery bool
}

func newMBC3(rom []byte, header Header) *MBC3 {
	var ram []byte
	if hasRAM(header.CartridgeType) {
		ram = make([]byte, header.RAMSize)
	}
	return &MBC3{
		rom:      rom,
		ram:      ram,
		romBank:  1,
		hasTimer: hasTimer(header.CartridgeType),
		rtcLatch: 0xFF,
		battery:  hasBattery(header.CartridgeType),
	}
}

func (m *MBC3) ReadROM(address uint16) uint8 {
	switch {
	case address < 0x4000:
		return m.byteAt(int(address))
	default:
		offset := int(m.romBank)*0x4000 + int(address-0x4000)
		return m.byteAt(offset)
	}
}

func (m *MBC3) byteAt(offset int) uint8 {
	if offset < 0 || offset >= len(m.rom) {
		return 0xFF
	}
	return m.rom[offset]
}

func (m *MBC3) WriteROM(address uint16, value uint8) {
	switch {
	case address < 0x2000:
		m.ramEnabled = value&0x0F == 0x0A
	case address < 0x4000:
		bank := value & 0x7F
		if bank == 0 {
			bank = 1
		}
		m.romBank = bank
	case address < 0x6000:
		if value <= 0x03 || (m.hasTimer && value >= 0x08 && value <= 0x0C) {
			m.ramBank = value
		}
	default:
		// Latch clock data: a 0-then-1 write pattern copies the live
		// RTC registers into the latched snapshot the CPU reads.
		if m.rtcLatch == 0x00 && value == 0x01 {
			m.tickRTC()
			m.latchedRTC = m.rtc
			m.latched = !m.latched
		}
		m.rtcLatch = value
	}
}

// tickRTC advances the seconds register by one on each latch toggle.
// This is a deliberate simplification (documented in DESIGN.md): the
// core does not track wall-clock time across sessions, so the RTC only
// advances in response to explicit latch writes rather than continuously.
func (m *MBC3) tickRTC() {
	m.rtc[rtcSeconds]++
	if m.rtc[rtcSeconds] >= 60 {
		m.rtc[rtcSeconds] = 0
		m.rtc[rtcMinutes]++
	}
	if m.rtc[rtcMinutes] >= 60 {
		m.rtc[rtcMinutes] = 0
		m.rtc[rtcHours]++
	}
	if m.rtc[rtcHours] >= 24 {
		m.rtc[rtcHours] = 0
		m.rtc[rtcDaysLow]++
	}
}

func (m *MBC3) ReadRAM(address uint16) uint8 {
	if !m.ramEnabled {
		return 0xFF
	}
	if m.ramBank >= 0x08 {
		return m.latchedRTC[m.ramBank-0x08]
	}
	if m.ram == nil {
		return 0xFF
	}
	offset := int(m.ramBank)*0x2000 + int(address-0xA000)
	if offset >= len(m.ram) {
		return 0xFF
	}
	return m.ram[offset]
}

func (m *MBC3) WriteRAM(address uint16, value uint8) {
	if !m.ramEnabled {
		return
	}
	if m.ramBank >= 0x08 {
		m.rtc[m.ramBank-0x08] = value
		return
	}
	if m.ram == nil {
		return
	}
	offset := int(m.ramBank)*0x2000 + int(address-0xA000)
	if offset >= len(m.ram) {
		return
	}
	m.ram[offset] = value
}

func (m *MBC3) RAM() []byte      { return m.ram }
func (m *MBC3) HasBattery() bool { return m.battery }
