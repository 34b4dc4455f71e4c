package cpu

import (
	"errors"

	"github.com/ezrec/i8086/translate"
)

var f = translate.From

var (
	// Register file errors
	ErrRegisterInvalid     = errors.New(f("register invalid"))
	ErrByteSelectorInvalid = errors.New(f("byte selector invalid"))

	// Flag errors
	ErrFlagInvalid      = errors.New(f("flag invalid"))
	ErrFlagValueInvalid = errors.New(f("flag value invalid"))

	// Memory errors
	ErrOutOfBounds = errors.New(f("memory out of bounds"))

	// Stack errors
	ErrStackOverflow  = errors.New(f("stack overflow"))
	ErrStackUnderflow = errors.New(f("stack underflow"))
)

// ErrRegisterName carries the offending name of a register lookup.
type ErrRegisterName struct {
	Name string
	Err  error
}

func (err *ErrRegisterName) Error() string {
	return f("'%v' %v", err.Name, err.Err)
}

func (err *ErrRegisterName) Unwrap() error {
	return err.Err
}

// ErrFlagName carries the offending name of a flag lookup.
type ErrFlagName string

func (err ErrFlagName) Error() string {
	return f("'%v' is not a flag", string(err))
}

func (err ErrFlagName) Is(target error) bool {
	return target == ErrFlagInvalid
}

// ErrAddress carries the physical address of a rejected memory access.
type ErrAddress struct {
	Address uint32
	Size    int
}

func (err *ErrAddress) Error() string {
	return f("address 0x%05x (%d bytes) %v", err.Address, err.Size, ErrOutOfBounds)
}

func (err *ErrAddress) Unwrap() error {
	return ErrOutOfBounds
}
