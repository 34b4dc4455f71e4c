package asm

import (
	"strconv"
	"strings"

	"github.com/ezrec/i8086/cpu"
)

// Mode is the addressing mode of an operand.
type Mode int

const (
	MODE_IMMEDIATE         = Mode(0) // Immediate
	MODE_REGISTER          = Mode(1) // Register
	MODE_DIRECT            = Mode(2) // DirectMemory
	MODE_REGISTER_INDIRECT = Mode(3) // RegisterIndirect
	MODE_BASED             = Mode(4) // Based
	MODE_INDEXED           = Mode(5) // Indexed
	MODE_BASED_INDEXED     = Mode(6) // BasedIndexed
	MODE_IMPLICIT          = Mode(7) // Implicit
	MODE_UNKNOWN           = Mode(8) // Unknown
)

var modeNames = [...]string{
	"Immediate", "Register", "DirectMemory", "RegisterIndirect",
	"Based", "Indexed", "BasedIndexed", "Implicit", "Unknown",
}

func (mode Mode) String() string {
	if mode >= 0 && int(mode) < len(modeNames) {
		return modeNames[mode]
	}
	return f("Mode(%d)", int(mode))
}

// Memory reports whether the mode references main memory.
func (mode Mode) Memory() bool {
	return mode >= MODE_DIRECT && mode <= MODE_BASED_INDEXED
}

// UNKNOWN_VALUE is the value carried by an operand that could not be
// classified.
const UNKNOWN_VALUE = 0xffff

// Operand is a classified and evaluated operand token.
type Operand struct {
	Mode    Mode
	Value   uint16 // Immediate, register content, or the byte in memory.
	Text    string // Uppercased, except for MODE_UNKNOWN which is verbatim.
	Address uint32 // Effective address, memory modes only.
}

// Reg returns the register named by a MODE_REGISTER operand.
func (op Operand) Reg() (reg cpu.Register, ok bool) {
	if op.Mode != MODE_REGISTER {
		return
	}
	reg, err := cpu.ParseRegister(op.Text)
	ok = err == nil
	return
}

func (op Operand) String() string {
	return op.Text
}

// Machine is the read-only view of processor state the resolver evaluates
// operands against. It is only used for the duration of a single call.
type Machine interface {
	Get(reg cpu.Register) (uint16, error)
	ReadMemory(addr uint32) (byte, error)
}

// match is the structured result of classifying a token, before any state
// is consulted.
type match struct {
	mode  Mode
	text  string
	imm   uint16
	regs  []cpu.Register // Register, or base and index of a memory form.
	disp  uint16
	valid bool
}

// rule classifies a normalized token. Rules are pure.
type rule func(text string) match

// operandRules are tried in order; the first match wins. Immediate and
// register syntaxes do not overlap, but memory forms nest them.
var operandRules = []rule{
	matchImmediate,
	matchRegister,
	matchMemory,
}

// memoryRules classify the uppercased interior of a [...] operand.
var memoryRules = []rule{
	matchDirect,
	matchRegisterIndirect,
	matchBasedIndexed,
	matchBased,
	matchIndexed,
}

// parseImmediate parses a hex digit run with an optional trailing H. The
// value is truncated to 16 bits. Register names that happen to be hex
// digits followed by H (AH, BH, CH, DH) are not immediates.
func parseImmediate(text string) (value uint16, ok bool) {
	upper := strings.ToUpper(text)
	if cpu.IsRegisterName(upper) {
		return
	}

	digits := strings.TrimSuffix(upper, "H")
	if len(digits) == 0 {
		return
	}

	for _, c := range digits {
		if !(c >= '0' && c <= '9') && !(c >= 'A' && c <= 'F') {
			return
		}
	}

	v64, err := strconv.ParseUint(digits, 16, 64)
	if err != nil {
		return
	}

	return uint16(v64), true
}

func parseRegister(text string) (reg cpu.Register, ok bool) {
	reg, err := cpu.ParseRegister(text)
	ok = err == nil
	return
}

func matchImmediate(text string) (m match) {
	imm, ok := parseImmediate(text)
	if ok {
		m = match{mode: MODE_IMMEDIATE, text: strings.ToUpper(text), imm: imm, valid: true}
	}
	return
}

func matchRegister(text string) (m match) {
	reg, ok := parseRegister(text)
	if ok {
		m = match{mode: MODE_REGISTER, text: reg.String(), regs: []cpu.Register{reg}, valid: true}
	}
	return
}

func matchMemory(text string) (m match) {
	if len(text) < 2 || text[0] != '[' || text[len(text)-1] != ']' {
		return
	}

	interior := strings.ToUpper(strings.TrimSpace(text[1 : len(text)-1]))
	for _, rule := range memoryRules {
		m = rule(interior)
		if m.valid {
			m.text = "[" + m.text + "]"
			return
		}
	}

	return
}

func matchDirect(interior string) (m match) {
	imm, ok := parseImmediate(interior)
	if ok {
		m = match{mode: MODE_DIRECT, text: interior, disp: imm, valid: true}
	}
	return
}

func matchRegisterIndirect(interior string) (m match) {
	reg, ok := parseRegister(interior)
	if ok {
		m = match{mode: MODE_REGISTER_INDIRECT, text: reg.String(), regs: []cpu.Register{reg}, valid: true}
	}
	return
}

// terms splits an address expression on '+', dropping the whitespace
// around each term. An empty term fails the split.
func terms(interior string) (parts []string, ok bool) {
	parts = strings.Split(interior, "+")
	for n, part := range parts {
		parts[n] = strings.TrimSpace(part)
		if len(parts[n]) == 0 {
			return nil, false
		}
	}
	return parts, true
}

func isBase(reg cpu.Register) bool {
	return reg == cpu.REG_BX || reg == cpu.REG_BP
}

func isIndex(reg cpu.Register) bool {
	return reg == cpu.REG_SI || reg == cpu.REG_DI
}

// (BX|BP) + (SI|DI) [+ disp]
func matchBasedIndexed(interior string) (m match) {
	parts, ok := terms(interior)
	if !ok || len(parts) < 2 || len(parts) > 3 {
		return
	}

	base, ok := parseRegister(parts[0])
	if !ok || !isBase(base) {
		return
	}
	index, ok := parseRegister(parts[1])
	if !ok || !isIndex(index) {
		return
	}

	var disp uint16
	if len(parts) == 3 {
		disp, ok = parseImmediate(parts[2])
		if !ok {
			return
		}
	}

	m = match{
		mode:  MODE_BASED_INDEXED,
		text:  strings.Join(parts, "+"),
		regs:  []cpu.Register{base, index},
		disp:  disp,
		valid: true,
	}
	return
}

// single matches "reg + disp" where the register satisfies accept.
func single(interior string, mode Mode, accept func(cpu.Register) bool) (m match) {
	parts, ok := terms(interior)
	if !ok || len(parts) != 2 {
		return
	}

	reg, ok := parseRegister(parts[0])
	if !ok || !accept(reg) {
		return
	}
	disp, ok := parseImmediate(parts[1])
	if !ok {
		return
	}

	m = match{
		mode:  mode,
		text:  strings.Join(parts, "+"),
		regs:  []cpu.Register{reg},
		disp:  disp,
		valid: true,
	}
	return
}

// (BX|BP) + disp
func matchBased(interior string) match {
	return single(interior, MODE_BASED, isBase)
}

// (SI|DI) + disp
func matchIndexed(interior string) match {
	return single(interior, MODE_INDEXED, isIndex)
}

// Classify returns the addressing mode of a token without evaluating it.
func Classify(token string) Mode {
	return classify(strings.TrimSpace(token)).mode
}

func classify(text string) match {
	for _, rule := range operandRules {
		m := rule(text)
		if m.valid {
			return m
		}
	}

	return match{mode: MODE_UNKNOWN, text: text}
}

// Resolve classifies a single operand token and evaluates it against the
// machine state. Unrecognized syntax is not an error; it resolves to
// MODE_UNKNOWN carrying UNKNOWN_VALUE. Errors only come from the machine.
func Resolve(machine Machine, token string) (op Operand, err error) {
	text := strings.TrimSpace(token)
	m := classify(text)

	op = Operand{Mode: m.mode, Text: m.text}

	switch m.mode {
	case MODE_IMMEDIATE:
		op.Value = m.imm
		return
	case MODE_REGISTER:
		op.Value, err = machine.Get(m.regs[0])
	case MODE_UNKNOWN:
		op.Value = UNKNOWN_VALUE
		return
	default:
		// Memory forms: sum the registers and displacement as a 16-bit
		// offset.
		offset := m.disp
		for _, reg := range m.regs {
			var value uint16
			value, err = machine.Get(reg)
			if err != nil {
				break
			}
			offset += value
		}
		if err == nil {
			op.Address = uint32(offset)
			var value byte
			value, err = machine.ReadMemory(op.Address)
			op.Value = uint16(value)
		}
	}

	if err != nil {
		err = &ErrOperand{Text: text, Err: err}
		op = Operand{}
	}

	return
}
