package emulator

import (
	"errors"

	"github.com/ezrec/i8086/translate"
)

var f = translate.From

var (
	ErrOperandRegister = errors.New(f("operand is not a register"))
)

// ErrRuntime indicates the location of a runtime error.
type ErrRuntime struct {
	LineNo int
	Err    error
}

func (err *ErrRuntime) Error() string {
	return f("line %d %v", err.LineNo, err.Err)
}

func (err *ErrRuntime) Unwrap() error {
	return err.Err
}
