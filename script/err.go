package script

import (
	"errors"

	"github.com/ezrec/rvpmp/translate"
)

var f = translate.From

var (
	ErrPrivInvalid   = errors.New(f("privilege level invalid"))
	ErrAccessInvalid = errors.New(f("access kind invalid"))
	ErrModeInvalid   = errors.New(f("address mode invalid"))
	ErrNapotInvalid  = errors.New(f("napot region invalid"))
	ErrDefineInvalid = errors.New(f("define invalid"))
)

// ErrArgument reports a builtin argument of the wrong type or range.
type ErrArgument struct {
	Builtin string
	Value   string
	Err     error
}

func (err *ErrArgument) Error() string {
	if err.Err != nil {
		return f("%v: %v: %v", err.Builtin, err.Value, err.Err)
	}
	return f("%v: %v is not an unsigned integer", err.Builtin, err.Value)
}

func (err *ErrArgument) Unwrap() error {
	return err.Err
}

// ErrScript indicates the script that failed.
type ErrScript struct {
	Filename string
	Err      error
}

func (err *ErrScript) Error() string {
	return f("%v: %v", err.Filename, err.Err)
}

func (err *ErrScript) Unwrap() error {
	return err.Err
}
