package asm

import (
	"log"
	"strings"
	"unicode"

	"github.com/ezrec/i8086/internal"
)

// Instruction is one decoded source line.
type Instruction struct {
	Mnemonic string // Uppercased mnemonic text, empty for a blank line.
	Op       Mnemonic
	Operands []Operand
}

// Modes returns the addressing mode of each operand, in order.
func (inst Instruction) Modes() (modes []Mode) {
	for _, op := range inst.Operands {
		modes = append(modes, op.Mode)
	}
	return
}

// String returns the instruction as "MNEMONIC OP1 OP2".
func (inst Instruction) String() string {
	words := []string{inst.Mnemonic}
	for _, op := range inst.Operands {
		words = append(words, op.Text)
	}
	return strings.Join(words, " ")
}

// Decoder turns source lines into instructions.
type Decoder struct {
	Verbose bool // If set, logs each decoded line.
}

// splitLine separates the mnemonic from the operand tokens.
func splitLine(line string) (mnemonic string, tokens []string) {
	line = strings.TrimSpace(line)
	if len(line) == 0 {
		return
	}

	end := strings.IndexFunc(line, unicode.IsSpace)
	if end < 0 {
		mnemonic = line
		return
	}

	mnemonic = line[:end]
	rest := strings.TrimSpace(line[end:])
	if len(rest) == 0 {
		return
	}

	for _, token := range strings.Split(rest, ",") {
		tokens = append(tokens, strings.TrimSpace(token))
	}

	return
}

// DecodeLine decodes one line of source text. Operands are resolved against
// the machine as it is at the time of the call. A blank line decodes to an
// instruction with no mnemonic and no operands.
func (dec *Decoder) DecodeLine(machine Machine, line string) (inst Instruction, err error) {
	mnemonic, tokens := splitLine(line)

	inst = Instruction{
		Mnemonic: strings.ToUpper(mnemonic),
		Op:       LookupMnemonic(mnemonic),
		Operands: make([]Operand, 0, len(tokens)),
	}

	for _, token := range tokens {
		var op Operand
		op, err = Resolve(machine, token)
		if err != nil {
			return
		}
		inst.Operands = append(inst.Operands, op)
	}

	if dec.Verbose {
		log.Printf("decode: %v %v", inst, inst.Modes())
	}

	return
}

// DecodeBlock decodes text line by line, in source order. Every line,
// including blank ones, yields exactly one instruction.
func (dec *Decoder) DecodeBlock(machine Machine, text string) (insts []Instruction, err error) {
	for lineno, line := range internal.Lines(text) {
		var inst Instruction
		inst, err = dec.DecodeLine(machine, line)
		if err != nil {
			err = &ErrSyntax{LineNo: lineno, Line: line, Err: err}
			return
		}
		insts = append(insts, inst)
	}

	return
}
