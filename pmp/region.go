// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package pmp

import (
	"fmt"
)

// Region is the byte range [Start, Start+Size) matched by an entry.
type Region struct {
	Start uint64 // First byte of the region.
	Size  uint64 // Size in bytes, ignored if Full.
	Full  bool   // Region covers the whole address space.
}

// Empty reports if the region can match nothing.
func (region Region) Empty() bool {
	return !region.Full && region.Size == 0
}

// Contains reports if [addr, addr+length) lies entirely inside the region.
// An empty access is contained if addr itself is inside the region.
func (region Region) Contains(addr uint64, length uint64) bool {
	switch {
	case region.Full:
		return true
	case region.Empty():
		return false
	case addr < region.Start:
		return false
	case length > region.Size:
		return false
	}

	offset := addr - region.Start
	if length == 0 {
		return offset < region.Size
	}

	return offset <= (region.Size - length)
}

func (region Region) String() string {
	if region.Full {
		return "[*]"
	}
	return fmt.Sprintf("[0x%x-0x%x)", region.Start, region.Start+region.Size)
}

// torRegion matches [bottom, top). An inverted range matches nothing.
func torRegion(bottom uint64, top uint64) (region Region) {
	region.Start = bottom
	if top > bottom {
		region.Size = top - bottom
	}

	return
}

func na4Region(addr uint64) Region {
	return Region{Start: addr << 2, Size: 4}
}

// napotRegion decodes a NAPOT entry. An all-ones address register is taken
// to cover the whole address space; the privileged architecture does not
// define that encoding, QEMU treats it this way.
func napotRegion(addr uint64, xlen Xlen) (region Region) {
	if addr == xlen.Mask() {
		region.Full = true
		return
	}

	region.Size = NapotSize(addr)
	if region.Size == 0 {
		region.Full = true
		return
	}

	region.Start = NapotBase(addr)
	return
}
