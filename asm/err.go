package asm

import (
	"errors"

	"github.com/ezrec/i8086/translate"
)

var f = translate.From

var (
	// Assembler errors
	ErrEquateSyntax    = errors.New(f(".equ syntax"))
	ErrEquateDuplicate = errors.New(f(".equ duplicated"))
	ErrLabelDuplicate  = errors.New(f("label duplicated"))
	ErrLabelInvalid    = errors.New(f("label invalid"))
	ErrDirective       = errors.New(f("directive unknown"))
)

// ErrSyntax locates an assembler error in the source text.
type ErrSyntax struct {
	LineNo int
	Line   string
	Err    error
}

func (err *ErrSyntax) Error() string {
	return f("line %d '%v' %v", err.LineNo, err.Line, err.Err)
}

func (err *ErrSyntax) Unwrap() error {
	return err.Err
}

// ErrParseExpression is a $(...) expression that did not evaluate to an
// integer.
type ErrParseExpression string

func (err ErrParseExpression) Error() string {
	return f("$(%v) is not a valid expression", string(err))
}

// ErrOperand wraps a processor state error raised while evaluating an
// operand.
type ErrOperand struct {
	Text string
	Err  error
}

func (err *ErrOperand) Error() string {
	return f("operand '%v' %v", err.Text, err.Err)
}

func (err *ErrOperand) Unwrap() error {
	return err.Err
}
