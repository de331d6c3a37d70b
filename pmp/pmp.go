// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package pmp

import (
	"fmt"
	"iter"
	"log"
	"maps"

	"github.com/ezrec/rvpmp/internal"
)

const (
	PMP_ENTRIES = 16 // Number of pmpcfg/pmpaddr pairs.
)

var _pmp_defines = map[string]string{
	"PMP_ENTRIES":     fmt.Sprintf("%d", PMP_ENTRIES),
	"PMP_R":           fmt.Sprintf("0x%x", CFG_R),
	"PMP_W":           fmt.Sprintf("0x%x", CFG_W),
	"PMP_X":           fmt.Sprintf("0x%x", CFG_X),
	"PMP_L":           fmt.Sprintf("0x%x", CFG_L),
	"PMP_A_OFF":       fmt.Sprintf("0x%x", uint8(A_OFF)<<CFG_A_SHIFT),
	"PMP_A_TOR":       fmt.Sprintf("0x%x", uint8(A_TOR)<<CFG_A_SHIFT),
	"PMP_A_NA4":       fmt.Sprintf("0x%x", uint8(A_NA4)<<CFG_A_SHIFT),
	"PMP_A_NAPOT":     fmt.Sprintf("0x%x", uint8(A_NAPOT)<<CFG_A_SHIFT),
	"PRIV_USER":       fmt.Sprintf("%d", PRIV_USER),
	"PRIV_SUPERVISOR": fmt.Sprintf("%d", PRIV_SUPERVISOR),
	"PRIV_MACHINE":    fmt.Sprintf("%d", PRIV_MACHINE),
	"ACCESS_READ":     fmt.Sprintf("%d", ACCESS_READ),
	"ACCESS_WRITE":    fmt.Sprintf("%d", ACCESS_WRITE),
	"ACCESS_EXECUTE":  fmt.Sprintf("%d", ACCESS_EXECUTE),
}

// Pmp is the register file of a hart's Physical Memory Protection unit.
type Pmp struct {
	Verbose bool // Set to enable verbose logging.

	xlen Xlen                // Machine word width.
	cfg  [PMP_ENTRIES]Cfg    // Configuration entries, by index.
	addr [PMP_ENTRIES]uint64 // Address registers, by index.
}

// NewPmp creates a zeroed PMP unit for a hart of the given word width.
func NewPmp(xlen Xlen) (pmp *Pmp) {
	if !xlen.Valid() {
		panic(f("pmp: unsupported xlen %d", int(xlen)))
	}

	pmp = &Pmp{
		xlen: xlen,
	}

	return
}

// Defines returns the constants useful to code programming the unit.
func (pmp *Pmp) Defines() iter.Seq2[string, string] {
	return internal.IterSeq2Concat(maps.All(_pmp_defines),
		maps.All(map[string]string{
			"XLEN":       fmt.Sprintf("%d", pmp.xlen),
			"PMP_GROUPS": fmt.Sprintf("%d", pmp.Groups()),
		}),
	)
}

// Xlen is the machine word width of the unit.
func (pmp *Pmp) Xlen() Xlen {
	return pmp.xlen
}

// Groups is the number of pmpcfg registers.
func (pmp *Pmp) Groups() int {
	return pmp.xlen.Groups()
}

// Entry returns the decoded configuration of an entry.
func (pmp *Pmp) Entry(index int) (cfg Cfg, err error) {
	if index < 0 || index >= PMP_ENTRIES {
		err = ErrIndex{Register: "pmp", Index: index}
		return
	}

	cfg = pmp.cfg[index]
	return
}

// Reset clears every entry, unlocking and disabling it.
func (pmp *Pmp) Reset() {
	if pmp.Verbose {
		log.Printf("pmp: reset")
	}

	clear(pmp.cfg[:])
	clear(pmp.addr[:])
}

// group returns the entries packed in a pmpcfg register.
func (pmp *Pmp) group(group int) (cfgs []Cfg, err error) {
	if group < 0 || group >= pmp.Groups() {
		err = ErrIndex{Register: "pmpcfg", Index: group}
		return
	}

	size := pmp.xlen.Bytes()
	cfgs = pmp.cfg[group*size : (group+1)*size]
	return
}

// WriteCfg writes a pmpcfg register. Only machine mode may write; entries
// that are locked keep their configuration and are silently skipped.
func (pmp *Pmp) WriteCfg(priv Priv, group int, value uint64) (err error) {
	if priv != PRIV_MACHINE {
		err = ErrAccessDenied
		return
	}

	cfgs, err := pmp.group(group)
	if err != nil {
		return
	}

	update := make([]Cfg, len(cfgs))
	UnpackCfg(value, update)

	for n := range cfgs {
		if cfgs[n].Lock {
			if pmp.Verbose {
				log.Printf("pmp: pmp%d locked, cfg write ignored", group*len(cfgs)+n)
			}
			continue
		}
		cfgs[n] = update[n]
	}

	if pmp.Verbose {
		log.Printf("pmp: pmpcfg%d <= 0x%0*x", group, pmp.xlen.Bytes()*2, PackCfg(cfgs))
	}

	return
}

// ReadCfg reads a pmpcfg register. Reads are permitted at any privilege.
func (pmp *Pmp) ReadCfg(_ Priv, group int) (value uint64, err error) {
	cfgs, err := pmp.group(group)
	if err != nil {
		return
	}

	value = PackCfg(cfgs)
	return
}

// WriteAddr writes a pmpaddr register. Only machine mode may write; the
// write is a successful no-op if the paired entry is locked.
func (pmp *Pmp) WriteAddr(priv Priv, index int, value uint64) (err error) {
	if priv != PRIV_MACHINE {
		err = ErrAccessDenied
		return
	}

	if index < 0 || index >= PMP_ENTRIES {
		err = ErrIndex{Register: "pmpaddr", Index: index}
		return
	}

	if pmp.cfg[index].Lock {
		if pmp.Verbose {
			log.Printf("pmp: pmp%d locked, addr write ignored", index)
		}
		return
	}

	pmp.addr[index] = value & pmp.xlen.Mask()

	if pmp.Verbose {
		log.Printf("pmp: pmpaddr%d <= 0x%0*x", index, pmp.xlen.Bytes()*2, pmp.addr[index])
	}

	return
}

// ReadAddr reads a pmpaddr register. Reads are permitted at any privilege.
func (pmp *Pmp) ReadAddr(_ Priv, index int) (value uint64, err error) {
	if index < 0 || index >= PMP_ENTRIES {
		err = ErrIndex{Register: "pmpaddr", Index: index}
		return
	}

	value = pmp.addr[index]
	return
}
