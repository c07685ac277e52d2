package cartridge

import "errors"

// Sentinel errors surfaced by New and parseHeader. Callers should use
// errors.Is.
var (
	// ErrInvalidHeader means the ROM's header failed to parse or its
	// checksum did not match.
	ErrInvalidHeader = errors.New("invalid cartridge header")
	// ErrUnsupportedMBC means the header names a cartridge type this
	// core does not implement.
	ErrUnsupportedMBC = errors.New("unsupported memory bank controller")
	// ErrSavePersistenceFailed means battery-backed RAM could not be
	// loaded or flushed to disk. From Flush it does not stop emulation:
	// the cartridge still runs, just without durable saves. New returns
	// it, and no Cartridge, when an existing save file cannot be read.
	ErrSavePersistenceFailed = errors.New("save RAM persistence failed")
)
