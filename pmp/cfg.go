// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package pmp

import (
	"fmt"
)

// Configuration byte layout.
const (
	CFG_R             = uint8(1 << 0)    // Read permission.
	CFG_W             = uint8(1 << 1)    // Write permission.
	CFG_X             = uint8(1 << 2)    // Execute permission.
	CFG_A_SHIFT       = 3                // Offset of the address-matching mode.
	CFG_A_MASK        = uint8(0b11 << 3) // Mask of the address-matching mode.
	CFG_RESERVED_MASK = uint8(0b11 << 5) // Reserved, stored as written.
	CFG_L             = uint8(1 << 7)    // Lock.

	CFG_PERM_MASK = CFG_R | CFG_W | CFG_X
)

// Perm is the set of access permissions granted by an entry.
type Perm uint8

const (
	PERM_NONE = Perm(0)
	PERM_R    = Perm(CFG_R)
	PERM_W    = Perm(CFG_W)
	PERM_X    = Perm(CFG_X)
	PERM_RWX  = PERM_R | PERM_W | PERM_X
)

// Allows reports if the permission set grants the access.
func (perm Perm) Allows(access Access) bool {
	return (perm & access.Perm()) != 0
}

// String renders the set as the familiar "rwx" triple.
func (perm Perm) String() string {
	text := [3]byte{'-', '-', '-'}
	if perm&PERM_R != 0 {
		text[0] = 'r'
	}
	if perm&PERM_W != 0 {
		text[1] = 'w'
	}
	if perm&PERM_X != 0 {
		text[2] = 'x'
	}
	return string(text[:])
}

// Mode is the address-matching mode of an entry.
type Mode int

//go:generate go tool stringer -linecomment -type=Mode
const (
	A_OFF   = Mode(0) // OFF
	A_TOR   = Mode(1) // TOR
	A_NA4   = Mode(2) // NA4
	A_NAPOT = Mode(3) // NAPOT
)

// Cfg is a single decoded pmpcfg entry.
type Cfg struct {
	Perm     Perm  // Granted permissions.
	Mode     Mode  // Address-matching mode.
	Reserved uint8 // Reserved bits 5 and 6, unshifted.
	Lock     bool  // Locked until reset.
}

// CfgFromByte decodes a raw configuration byte.
func CfgFromByte(raw uint8) (cfg Cfg) {
	cfg = Cfg{
		Perm:     Perm(raw & CFG_PERM_MASK),
		Mode:     Mode((raw & CFG_A_MASK) >> CFG_A_SHIFT),
		Reserved: raw & CFG_RESERVED_MASK,
		Lock:     (raw & CFG_L) != 0,
	}

	return
}

// Byte encodes the entry as a raw configuration byte.
func (cfg Cfg) Byte() (raw uint8) {
	raw = uint8(cfg.Perm) & CFG_PERM_MASK
	raw |= (uint8(cfg.Mode) << CFG_A_SHIFT) & CFG_A_MASK
	raw |= cfg.Reserved & CFG_RESERVED_MASK
	if cfg.Lock {
		raw |= CFG_L
	}

	return
}

// Active reports if the entry takes part in address matching.
func (cfg Cfg) Active() bool {
	return cfg.Mode != A_OFF
}

func (cfg Cfg) String() string {
	text := fmt.Sprintf("%-5v %v", cfg.Mode, cfg.Perm)
	if cfg.Lock {
		text += " L"
	}
	return text
}

// PackCfg packs consecutive entries into a little-endian machine word.
func PackCfg(cfgs []Cfg) (value uint64) {
	for n, cfg := range cfgs {
		value |= uint64(cfg.Byte()) << (8 * n)
	}

	return
}

// UnpackCfg unpacks a little-endian machine word into consecutive entries.
func UnpackCfg(value uint64, cfgs []Cfg) {
	for n := range cfgs {
		cfgs[n] = CfgFromByte(uint8(value >> (8 * n)))
	}
}
