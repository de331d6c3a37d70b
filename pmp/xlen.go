// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package pmp

// Xlen is the machine word width of the hart profile, in bits.
type Xlen int

const (
	XLEN_32 = Xlen(32) // RV32
	XLEN_64 = Xlen(64) // RV64
)

// Valid reports if the width is a supported profile.
func (xlen Xlen) Valid() bool {
	return xlen == XLEN_32 || xlen == XLEN_64
}

// Bytes is the number of bytes in a machine word.
func (xlen Xlen) Bytes() int {
	return int(xlen) / 8
}

// Mask of the bits held by a machine word.
func (xlen Xlen) Mask() uint64 {
	if xlen >= 64 {
		return ^uint64(0)
	}
	return (uint64(1) << uint(xlen)) - 1
}

// Groups is the number of pmpcfg registers needed for all entries.
func (xlen Xlen) Groups() int {
	return PMP_ENTRIES / xlen.Bytes()
}
