// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package pmp

import (
	"errors"

	"github.com/ezrec/rvpmp/translate"
)

var f = translate.From

var (
	// CSR errors
	ErrAccessDenied = errors.New(f("pmp csr access denied"))
	ErrIndexInvalid = errors.New(f("pmp csr index invalid"))
)

// ErrIndex reports an out of range pmpcfg group or pmpaddr index.
type ErrIndex struct {
	Register string
	Index    int
}

func (err ErrIndex) Error() string {
	return f("%v%d: index invalid", err.Register, err.Index)
}

func (err ErrIndex) Unwrap() error {
	return ErrIndexInvalid
}
