package pgncan

// Header is the content of a 29-bit arbitration ID.
type Header struct {
	Priority uint8
	PGN      uint32
	Source   uint8
}

// ArbitrationID packs priority (3 bits), pgn (18 bits) and the source
// address into a 29-bit CAN identifier. Out of range inputs are masked.
func ArbitrationID(priority uint8, pgn uint32, sa uint8) uint32 {
	return uint32(priority&0x7)<<26 | (pgn&0x3FFFF)<<8 | uint32(sa)
}

// ParseArbitrationID splits a CAN identifier into its header fields. The
// extended frame flag, if present, is ignored.
func ParseArbitrationID(id uint32) Header {
	id &= canEFFMask
	return Header{
		Priority: uint8((id >> 26) & 0x7),
		PGN:      (id >> 8) & 0x3FFFF,
		Source:   uint8(id),
	}
}
