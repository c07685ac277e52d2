package cartridge

import "github.com/cespare/xxhash"

// Quirk names a known banking exception keyed by a ROM body hash. It
// never mutates persisted state; it only corroborates (or overrides) a
// heuristic that would otherwise run unconditionally.
type Quirk uint8

const (
	// QuirkMBC1Multicart marks a ROM known to be an MBC1 multicart
	// (several 256 KiB games packed behind an outer bank register),
	// which changes how MBC1 interprets its secondary bank register.
	QuirkMBC1Multicart Quirk = iota + 1
)

// quirks is a small, hand-maintained table of ROM-body hashes with known
// banking exceptions. Empty by default; entries are added as specific
// carts are found to need corroboration beyond the header-driven heuristic.
var quirks = map[uint64]Quirk{}

// Quirks looks up a known banking exception for the given ROM body hash.
func Quirks(romHash uint64) (Quirk, bool) {
	q, ok := quirks[romHash]
	return q, ok
}

// hashROM hashes the full ROM body with xxhash, used as the quirk
// ledger's lookup key.
func hashROM(rom []byte) uint64 {
	return xxhash.Sum64(rom)
}
