// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package pmp

import (
	"log"
)

// Region returns the byte range matched by an entry, and whether the entry
// is active at all.
func (pmp *Pmp) Region(index int) (region Region, active bool, err error) {
	if index < 0 || index >= PMP_ENTRIES {
		err = ErrIndex{Register: "pmp", Index: index}
		return
	}

	region, active = pmp.region(index)
	return
}

// region decodes an entry by mode. A TOR entry is bounded below by the
// previous address register whatever the mode of the previous entry.
func (pmp *Pmp) region(index int) (region Region, active bool) {
	cfg := pmp.cfg[index]
	if !cfg.Active() {
		return
	}

	addr := pmp.addr[index]

	switch cfg.Mode {
	case A_TOR:
		var bottom uint64
		if index > 0 {
			bottom = pmp.addr[index-1] << 2
		}
		region = torRegion(bottom, addr<<2)
	case A_NA4:
		region = na4Region(addr)
	case A_NAPOT:
		region = napotRegion(addr, pmp.xlen)
	}

	active = true
	return
}

// match scans the entries in priority order for the first one whose region
// contains the access. engaged is set if any entry is active.
func (pmp *Pmp) match(addr uint64, length uint64) (index int, ok bool, engaged bool) {
	for index = range PMP_ENTRIES {
		region, active := pmp.region(index)
		if !active {
			continue
		}

		engaged = true

		if region.Contains(addr, length) {
			ok = true
			return
		}
	}

	index = -1
	return
}

// Match returns the index of the entry that decides an access to
// [addr, addr+length), if any.
func (pmp *Pmp) Match(addr uint64, length uint64) (index int, ok bool) {
	index, ok, _ = pmp.match(addr, length)
	return
}

// Check reports if an access to [addr, addr+length) is permitted at the
// privilege level.
//
// Machine mode is always permitted. Otherwise the first matching entry
// decides, and an access that matches no entry is permitted only if every
// entry is off.
func (pmp *Pmp) Check(priv Priv, addr uint64, length uint64, access Access) (ok bool) {
	if priv == PRIV_MACHINE {
		return true
	}

	index, matched, engaged := pmp.match(addr, length)
	if !matched {
		ok = !engaged
		if pmp.Verbose {
			log.Printf("pmp: %v %v 0x%x+%d: no match, engaged:%v ok:%v", priv, access, addr, length, engaged, ok)
		}
		return
	}

	cfg := pmp.cfg[index]
	ok = cfg.Perm.Allows(access)

	if pmp.Verbose {
		log.Printf("pmp: %v %v 0x%x+%d: pmp%d %v ok:%v", priv, access, addr, length, index, cfg, ok)
	}

	return
}
