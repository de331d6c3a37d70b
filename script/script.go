// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

// Package script drives a PMP unit from Starlark scenario scripts, standing
// in for the CPU core that owns the unit.
//
// A script sets the current privilege level with priv(), programs the unit
// through the CSR builtins and probes it with check(). Constants such as
// PMP_R, PMP_A_NAPOT or PRIV_USER are predeclared.
package script

import (
	"fmt"
	"io"
	"log"
	"os"
	"strconv"

	"go.starlark.net/starlark"
	"go.starlark.net/syntax"

	"github.com/ezrec/rvpmp/pmp"
)

// Script is a Starlark harness around a PMP unit.
type Script struct {
	Verbose bool      // If set, logs every builtin call.
	Pmp     *pmp.Pmp  // Unit under test.
	Priv    pmp.Priv  // Current privilege level of the hart.
	Output  io.Writer // Destination of print().
}

// NewScript creates a harness for the unit, starting in machine mode.
func NewScript(unit *pmp.Pmp) (sc *Script) {
	sc = &Script{
		Pmp:    unit,
		Priv:   pmp.PRIV_MACHINE,
		Output: os.Stdout,
	}

	return
}

type builtinFunc func(fn *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error)

// Predeclared returns the builtins and constants visible to scripts.
func (sc *Script) Predeclared() (dict starlark.StringDict, err error) {
	dict = starlark.StringDict{}

	for key, str := range sc.Pmp.Defines() {
		var value uint64
		value, err = strconv.ParseUint(str, 0, 64)
		if err != nil {
			err = &ErrArgument{Builtin: key, Value: str, Err: ErrDefineInvalid}
			return
		}
		dict[key] = starlark.MakeUint64(value)
	}

	builtins := map[string]builtinFunc{
		"priv":      sc.priv,
		"reset":     sc.reset,
		"csrr_cfg":  sc.csrrCfg,
		"csrw_cfg":  sc.csrwCfg,
		"csrr_addr": sc.csrrAddr,
		"csrw_addr": sc.csrwAddr,
		"check":     sc.check,
		"match":     sc.match,
		"region":    sc.region,
		"napot":     sc.napot,
		"tor":       sc.tor,
		"cfg":       sc.cfg,
		"dump":      sc.dump,
	}

	for name, fn := range builtins {
		dict[name] = starlark.NewBuiltin(name, sc.wrap(fn))
	}

	return
}

func (sc *Script) wrap(fn builtinFunc) func(*starlark.Thread, *starlark.Builtin, starlark.Tuple, []starlark.Tuple) (starlark.Value, error) {
	return func(_ *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (value starlark.Value, err error) {
		value, err = fn(b, args, kwargs)
		if sc.Verbose {
			log.Printf("script: %v%v => %v (%v)", b.Name(), args, value, err)
		}
		return
	}
}

// Exec runs a script. src may be a string, a []byte or an io.Reader.
func (sc *Script) Exec(filename string, src any) (globals starlark.StringDict, err error) {
	sc.Pmp.Verbose = sc.Verbose

	defer func() {
		if err != nil {
			err = &ErrScript{Filename: filename, Err: err}
		}
	}()

	predeclared, err := sc.Predeclared()
	if err != nil {
		return
	}

	thread := &starlark.Thread{
		Name: filename,
		Print: func(_ *starlark.Thread, msg string) {
			fmt.Fprintln(sc.Output, msg)
		},
	}
	opts := syntax.FileOptions{
		TopLevelControl: true,
		GlobalReassign:  true,
	}

	globals, err = starlark.ExecFileOptions(&opts, thread, filename, src, predeclared)
	return
}
