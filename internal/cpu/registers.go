// Package cpu implements the SM83 CPU: registers, the fetch/decode/
// execute loop, interrupt dispatch, and HALT/STOP/EI-delay semantics.
package cpu

// Register is a single 8-bit register.
type Register = uint8

// RegisterPair addresses two Registers as a 16-bit value, high byte
// first.
type RegisterPair [2]*Register

// Uint16 reads the pair as a big-endian-ordered 16-bit value (high[0],
// low[1]) — the Game Boy's register pairs always store high byte first.
func (p RegisterPair) Uint16() uint16 {
	return uint16(*p[0])<<8 | uint16(*p[1])
}

// SetUint16 stores a 16-bit value into the pair.
func (p RegisterPair) SetUint16(v uint16) {
	*p[0] = uint8(v >> 8)
	*p[1] = uint8(v)
}

// Flag bits within F.
const (
	flagZero      uint8 = 1 << 7
	flagSubtract  uint8 = 1 << 6
	flagHalfCarry uint8 = 1 << 5
	flagCarry     uint8 = 1 << 4
)
