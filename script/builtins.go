package script

import (
	"errors"
	"math/bits"
	"strings"

	"go.starlark.net/starlark"

	"github.com/ezrec/rvpmp/pmp"
)

var privNames = map[string]pmp.Priv{
	"u": pmp.PRIV_USER,
	"s": pmp.PRIV_SUPERVISOR,
	"m": pmp.PRIV_MACHINE,
}

var accessNames = map[string]pmp.Access{
	"r": pmp.ACCESS_READ,
	"w": pmp.ACCESS_WRITE,
	"x": pmp.ACCESS_EXECUTE,
}

var modeNames = map[string]pmp.Mode{
	"off":   pmp.A_OFF,
	"tor":   pmp.A_TOR,
	"na4":   pmp.A_NA4,
	"napot": pmp.A_NAPOT,
}

// toUint64 converts a Starlark integer to a machine word. Negative values
// are taken as two's complement.
func toUint64(fn *starlark.Builtin, value starlark.Value) (word uint64, err error) {
	num, ok := value.(starlark.Int)
	if !ok {
		err = &ErrArgument{Builtin: fn.Name(), Value: value.String()}
		return
	}

	word, ok = num.Uint64()
	if ok {
		return
	}

	signed, ok := num.Int64()
	if !ok {
		err = &ErrArgument{Builtin: fn.Name(), Value: value.String()}
		return
	}

	word = uint64(signed)
	return
}

func toPriv(fn *starlark.Builtin, value starlark.Value) (priv pmp.Priv, err error) {
	switch value := value.(type) {
	case starlark.String:
		name := strings.ToLower(string(value))
		for key, level := range privNames {
			if name == key || name == level.String() {
				priv = level
				return
			}
		}
	case starlark.Int:
		level, ok := value.Int64()
		switch {
		case !ok:
		case pmp.Priv(level) == pmp.PRIV_USER,
			pmp.Priv(level) == pmp.PRIV_SUPERVISOR,
			pmp.Priv(level) == pmp.PRIV_MACHINE:
			priv = pmp.Priv(level)
			return
		}
	}

	err = &ErrArgument{Builtin: fn.Name(), Value: value.String(), Err: ErrPrivInvalid}
	return
}

func toAccess(fn *starlark.Builtin, value starlark.Value) (access pmp.Access, err error) {
	switch value := value.(type) {
	case starlark.String:
		name := strings.ToLower(string(value))
		for key, kind := range accessNames {
			if name == key || name == kind.String() {
				access = kind
				return
			}
		}
	case starlark.Int:
		kind, ok := value.Int64()
		if ok && kind >= int64(pmp.ACCESS_READ) && kind <= int64(pmp.ACCESS_EXECUTE) {
			access = pmp.Access(kind)
			return
		}
	}

	err = &ErrArgument{Builtin: fn.Name(), Value: value.String(), Err: ErrAccessInvalid}
	return
}

// toMode accepts a mode name, a mode number, or a PMP_A_* constant.
func toMode(fn *starlark.Builtin, value starlark.Value) (mode pmp.Mode, err error) {
	switch value := value.(type) {
	case starlark.String:
		var ok bool
		mode, ok = modeNames[strings.ToLower(string(value))]
		if ok {
			return
		}
	case starlark.Int:
		num, ok := value.Int64()
		switch {
		case !ok:
		case num >= int64(pmp.A_OFF) && num <= int64(pmp.A_NAPOT):
			mode = pmp.Mode(num)
			return
		case num >= 0 && num <= 0xff && (uint8(num)&^pmp.CFG_A_MASK) == 0:
			mode = pmp.CfgFromByte(uint8(num)).Mode
			return
		}
	}

	err = &ErrArgument{Builtin: fn.Name(), Value: value.String(), Err: ErrModeInvalid}
	return
}

// csrStatus maps the CSR write outcome to True (Ok) or False (denied).
func csrStatus(err error) (starlark.Value, error) {
	if errors.Is(err, pmp.ErrAccessDenied) {
		return starlark.False, nil
	}
	if err != nil {
		return nil, err
	}
	return starlark.True, nil
}

// priv([level]) sets the current privilege level, returning the previous.
func (sc *Script) priv(fn *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (value starlark.Value, err error) {
	var level starlark.Value
	err = starlark.UnpackPositionalArgs(fn.Name(), args, kwargs, 0, &level)
	if err != nil {
		return
	}

	value = starlark.String(sc.Priv.String())

	if level == nil {
		return
	}

	priv, err := toPriv(fn, level)
	if err != nil {
		return
	}

	sc.Priv = priv

	return
}

func (sc *Script) reset(fn *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (value starlark.Value, err error) {
	err = starlark.UnpackPositionalArgs(fn.Name(), args, kwargs, 0)
	if err != nil {
		return
	}

	sc.Pmp.Reset()
	value = starlark.None
	return
}

func (sc *Script) csrrCfg(fn *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (value starlark.Value, err error) {
	var group int
	err = starlark.UnpackPositionalArgs(fn.Name(), args, kwargs, 1, &group)
	if err != nil {
		return
	}

	word, err := sc.Pmp.ReadCfg(sc.Priv, group)
	if err != nil {
		return
	}

	value = starlark.MakeUint64(word)
	return
}

func (sc *Script) csrwCfg(fn *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (value starlark.Value, err error) {
	var group int
	var raw starlark.Value
	err = starlark.UnpackPositionalArgs(fn.Name(), args, kwargs, 2, &group, &raw)
	if err != nil {
		return
	}

	word, err := toUint64(fn, raw)
	if err != nil {
		return
	}

	return csrStatus(sc.Pmp.WriteCfg(sc.Priv, group, word))
}

func (sc *Script) csrrAddr(fn *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (value starlark.Value, err error) {
	var index int
	err = starlark.UnpackPositionalArgs(fn.Name(), args, kwargs, 1, &index)
	if err != nil {
		return
	}

	word, err := sc.Pmp.ReadAddr(sc.Priv, index)
	if err != nil {
		return
	}

	value = starlark.MakeUint64(word)
	return
}

func (sc *Script) csrwAddr(fn *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (value starlark.Value, err error) {
	var index int
	var raw starlark.Value
	err = starlark.UnpackPositionalArgs(fn.Name(), args, kwargs, 2, &index, &raw)
	if err != nil {
		return
	}

	word, err := toUint64(fn, raw)
	if err != nil {
		return
	}

	return csrStatus(sc.Pmp.WriteAddr(sc.Priv, index, word))
}

// check(addr, length, access) probes the unit at the current privilege.
func (sc *Script) check(fn *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (value starlark.Value, err error) {
	var rawAddr, rawLength, rawAccess starlark.Value
	err = starlark.UnpackArgs(fn.Name(), args, kwargs, "addr", &rawAddr, "length", &rawLength, "access", &rawAccess)
	if err != nil {
		return
	}

	addr, err := toUint64(fn, rawAddr)
	if err != nil {
		return
	}

	length, err := toUint64(fn, rawLength)
	if err != nil {
		return
	}

	access, err := toAccess(fn, rawAccess)
	if err != nil {
		return
	}

	value = starlark.Bool(sc.Pmp.Check(sc.Priv, addr, length, access))
	return
}

// match(addr, length) returns the deciding entry index, or None.
func (sc *Script) match(fn *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (value starlark.Value, err error) {
	var rawAddr, rawLength starlark.Value
	err = starlark.UnpackArgs(fn.Name(), args, kwargs, "addr", &rawAddr, "length", &rawLength)
	if err != nil {
		return
	}

	addr, err := toUint64(fn, rawAddr)
	if err != nil {
		return
	}

	length, err := toUint64(fn, rawLength)
	if err != nil {
		return
	}

	value = starlark.None
	if index, ok := sc.Pmp.Match(addr, length); ok {
		value = starlark.MakeInt(index)
	}

	return
}

// region(index) returns (start, size) of an active entry, or None. The size
// is None for a region covering the whole address space.
func (sc *Script) region(fn *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (value starlark.Value, err error) {
	var index int
	err = starlark.UnpackPositionalArgs(fn.Name(), args, kwargs, 1, &index)
	if err != nil {
		return
	}

	region, active, err := sc.Pmp.Region(index)
	if err != nil {
		return
	}

	if !active {
		value = starlark.None
		return
	}

	var size starlark.Value = starlark.None
	if !region.Full {
		size = starlark.MakeUint64(region.Size)
	}

	value = starlark.Tuple{starlark.MakeUint64(region.Start), size}
	return
}

// napot(base, size) encodes a naturally aligned region.
func (sc *Script) napot(fn *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (value starlark.Value, err error) {
	var rawBase, rawSize starlark.Value
	err = starlark.UnpackArgs(fn.Name(), args, kwargs, "base", &rawBase, "size", &rawSize)
	if err != nil {
		return
	}

	base, err := toUint64(fn, rawBase)
	if err != nil {
		return
	}

	size, err := toUint64(fn, rawSize)
	if err != nil {
		return
	}

	if size < 8 || bits.OnesCount64(size) != 1 || (base&(size-1)) != 0 {
		err = &ErrArgument{Builtin: fn.Name(), Value: args.String(), Err: ErrNapotInvalid}
		return
	}

	value = starlark.MakeUint64(pmp.NapotEncode(base, size) & sc.Pmp.Xlen().Mask())
	return
}

// tor(addr) encodes the top of a TOR region.
func (sc *Script) tor(fn *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (value starlark.Value, err error) {
	var rawAddr starlark.Value
	err = starlark.UnpackPositionalArgs(fn.Name(), args, kwargs, 1, &rawAddr)
	if err != nil {
		return
	}

	addr, err := toUint64(fn, rawAddr)
	if err != nil {
		return
	}

	value = starlark.MakeUint64(addr >> 2)
	return
}

// cfg(mode, r=False, w=False, x=False, l=False) encodes a configuration byte.
func (sc *Script) cfg(fn *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (value starlark.Value, err error) {
	var rawMode starlark.Value
	var r, w, x, l bool
	err = starlark.UnpackArgs(fn.Name(), args, kwargs,
		"mode", &rawMode, "r?", &r, "w?", &w, "x?", &x, "l?", &l)
	if err != nil {
		return
	}

	mode, err := toMode(fn, rawMode)
	if err != nil {
		return
	}

	entry := pmp.Cfg{Mode: mode, Lock: l}
	if r {
		entry.Perm |= pmp.PERM_R
	}
	if w {
		entry.Perm |= pmp.PERM_W
	}
	if x {
		entry.Perm |= pmp.PERM_X
	}

	value = starlark.MakeInt(int(entry.Byte()))
	return
}

func (sc *Script) dump(fn *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (value starlark.Value, err error) {
	err = starlark.UnpackPositionalArgs(fn.Name(), args, kwargs, 0)
	if err != nil {
		return
	}

	value = starlark.String(sc.Pmp.String())
	return
}
