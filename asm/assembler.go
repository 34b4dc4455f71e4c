// Copyright 2024, Jason S. McMullan <jason.mcmullan@gmail.com>

package asm

import (
	"bufio"
	"fmt"
	"io"
	"iter"
	"log"
	"maps"
	"regexp"
	"strconv"
	"strings"

	"go.starlark.net/starlark"
	"go.starlark.net/syntax"

	"github.com/ezrec/i8086/cpu"
)

// Predefined system equates
var sysEquate = map[string]string{
	"LINENO":      "0",
	"MEMORY_SIZE": fmt.Sprintf("0%XH", cpu.MEMORY_SIZE),
	"STACK_SIZE":  fmt.Sprintf("0%XH", cpu.STACK_SIZE),
	"SP_RESET":    fmt.Sprintf("0%XH", cpu.SP_RESET),
}

var (
	reCharacter  = regexp.MustCompile(`'\\?[^']'`)
	reExpression = regexp.MustCompile(`\$\([^\$]*\)`)
	reWord       = regexp.MustCompile(`\b[A-Za-z_][A-Za-z0-9_]*\b`)
	reLabel      = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)
)

// Program is preprocessed source text. It has exactly one line per source
// line, so line numbers carry over to the decoded instructions.
type Program struct {
	Lines []string
	Label map[string]int // Map of labels to line numbers.
}

// All iterates over the lines with their 1-based line numbers.
func (prog *Program) All() iter.Seq2[int, string] {
	return func(yield func(int, string) bool) {
		for n, line := range prog.Lines {
			if !yield(n+1, line) {
				return
			}
		}
	}
}

// Text returns the program as newline separated source.
func (prog *Program) Text() string {
	return strings.Join(prog.Lines, "\n")
}

// Assembler is a single pass source preprocessor. It strips ';' comments,
// records 'NAME:' labels, and expands '.equ' equates, 'c' character
// literals and $(...) compile-time expressions into plain instruction
// syntax the Decoder understands.
type Assembler struct {
	Verbose bool // If set, verbosely logs the assembler actions.

	predefine map[string]string // Predefines
	Label     map[string]int    // Map of labels to line numbers.
	Equate    map[string]string // Map of equates.
}

// Predefine defines a new equate or redefines an existing equate.
func (asm *Assembler) Predefine(equ string, value string) {
	if asm.predefine == nil {
		asm.predefine = map[string]string{equ: value}
	} else {
		asm.predefine[equ] = value
	}
}

// valueOf returns the integer value of an equate. Like operands, digit
// runs with or without a trailing H are hexadecimal; Go style literals
// (0x4d2, 0b101) are also accepted.
func valueOf(word string) (value int64, ok bool) {
	upper := strings.ToUpper(word)
	digits := strings.TrimSuffix(upper, "H")
	if len(digits) > 0 && strings.Trim(digits, "0123456789ABCDEF") == "" {
		var err error
		value, err = strconv.ParseInt(digits, 16, 64)
		ok = err == nil
		return
	}

	value, err := strconv.ParseInt(word, 0, 64)
	ok = err == nil
	return
}

// parenEval does compile-time $(...) evaluations
func (asm *Assembler) parenEval(expr string) (value uint16, err error) {
	thread := starlark.Thread{}
	opts := syntax.FileOptions{}
	pred := starlark.StringDict{}
	for key, str := range asm.Equate {
		v64, ok := valueOf(str)
		if !ok {
			// Ignore non-integer equates. They may be registers
			// or something else.
			continue
		}
		pred[key] = starlark.MakeInt64(v64)
	}
	prog := "rc=" + expr + "\n"
	dict, err := starlark.ExecFileOptions(&opts, &thread, "expr", prog, pred)
	if err != nil {
		return
	}
	st_rc, ok := dict["rc"]
	if !ok {
		err = ErrParseExpression(expr)
		return
	}
	st_int, ok := st_rc.(starlark.Int)
	if !ok {
		err = ErrParseExpression(expr)
		return
	}
	st_int64, ok := st_int.Int64()
	if !ok {
		err = ErrParseExpression(expr)
		return
	}
	value = uint16(st_int64)
	return
}

// immediate formats a value in instruction syntax. The leading zero keeps
// values like 0BH from reading as a register.
func immediate(value uint16) string {
	return fmt.Sprintf("0%XH", value)
}

// parseLine expands a single line, returning the instruction text.
func (asm *Assembler) parseLine(line string, lineno int) (text string, err error) {
	// Set line number.
	asm.Equate["LINENO"] = fmt.Sprintf("0%XH", lineno)

	// Strip comments
	line, _, _ = strings.Cut(line, ";")
	line = strings.TrimSpace(line)

	// Do 'x' evaluations
	line = reCharacter.ReplaceAllStringFunc(line, func(word string) string {
		str := word[1 : len(word)-1]
		if str[0] == '\\' {
			switch str[1:] {
			case "\\":
				str = "\\"
			case "n":
				str = "\n"
			case "r":
				str = "\r"
			case "e":
				str = "\033"
			default:
				return word
			}
		}
		return immediate(uint16(str[0]))
	})

	// Do $() evaluations
	line = reExpression.ReplaceAllStringFunc(line, func(str string) string {
		value, _err := asm.parenEval(str[2 : len(str)-1])
		if _err != nil {
			err = _err
		}
		return immediate(value)
	})
	if err != nil {
		return
	}

	words := strings.Fields(line)
	if len(words) == 0 {
		return
	}

	// .equ CONST VALUE
	if words[0] == ".equ" {
		if len(words) != 3 || !reLabel.MatchString(words[1]) || cpu.IsRegisterName(words[1]) {
			err = ErrEquateSyntax
			return
		}
		_, ok := asm.Equate[words[1]]
		if ok {
			err = ErrEquateDuplicate
			return
		}
		asm.Equate[words[1]] = words[2]
		return
	}

	if strings.HasPrefix(words[0], ".") {
		err = ErrDirective
		return
	}

	for len(words) > 0 && strings.HasSuffix(words[0], ":") {
		label := strings.TrimSuffix(words[0], ":")
		if !reLabel.MatchString(label) {
			err = ErrLabelInvalid
			return
		}
		_, ok := asm.Label[label]
		if ok {
			err = ErrLabelDuplicate
			return
		}
		asm.Label[label] = lineno
		words = words[1:]
	}

	text = strings.Join(words, " ")

	// Equate substitution, on whole words only.
	text = reWord.ReplaceAllStringFunc(text, func(word string) string {
		equate, ok := asm.Equate[word]
		if ok {
			return equate
		}
		return word
	})

	return
}

// Parse preprocesses an input stream into a Program.
func (asm *Assembler) Parse(input io.Reader) (prog *Program, err error) {
	scanner := bufio.NewScanner(input)

	var line string
	var lineno int

	defer func() {
		if err != nil {
			err = &ErrSyntax{LineNo: lineno, Line: line, Err: err}
		}
	}()

	asm.Label = make(map[string]int, 16)
	asm.Equate = maps.Clone(sysEquate)
	for attr, val := range asm.predefine {
		asm.Equate[attr] = val
	}

	prog = &Program{}

	for scanner.Scan() {
		line = scanner.Text()
		lineno += 1

		if asm.Verbose {
			log.Printf("%v: %v\n", lineno, line)
		}

		var text string
		text, err = asm.parseLine(line, lineno)
		if err != nil {
			prog = nil
			return
		}

		prog.Lines = append(prog.Lines, text)
	}

	err = scanner.Err()
	if err != nil {
		prog = nil
		return
	}

	prog.Label = maps.Clone(asm.Label)

	return
}
