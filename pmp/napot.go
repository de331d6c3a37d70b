// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package pmp

import (
	"math/bits"
)

// napotOnes is the length of the trailing run of one bits in a NAPOT
// address register.
func napotOnes(addr uint64) int {
	return bits.TrailingZeros64(^addr)
}

// NapotSize returns the byte size of the region encoded by a NAPOT address
// register. The register holds address bits [XLEN+1:2]; a run of k trailing
// one bits encodes a region of 2^(k+3) bytes. A region of 2^64 bytes or more
// is reported as zero.
func NapotSize(addr uint64) (size uint64) {
	shift := napotOnes(addr) + 3
	if shift >= 64 {
		return
	}

	size = uint64(1) << shift
	return
}

// NapotBase returns the first byte address of the region encoded by a NAPOT
// address register: the trailing ones and the zero bit that terminates them
// are cleared, and the result is shifted back to a byte address.
func NapotBase(addr uint64) (base uint64) {
	marker := napotOnes(addr) + 1
	if marker >= 64 {
		return
	}

	mask := (uint64(1) << marker) - 1
	base = (addr &^ mask) << 2
	return
}

// NapotEncode returns the NAPOT address register value for a naturally
// aligned region. size must be a power of two of at least 8 bytes and base
// must be aligned to size.
func NapotEncode(base uint64, size uint64) uint64 {
	return (base >> 2) | ((size / 8) - 1)
}
