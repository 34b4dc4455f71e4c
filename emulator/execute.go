package emulator

import (
	"github.com/ezrec/i8086/asm"
	"github.com/ezrec/i8086/cpu"
)

// Shape is the tuple of operand modes an instruction handler accepts.
type Shape int

const (
	SHAPE_NONE    = Shape(0) // no operands
	SHAPE_REG     = Shape(1) // reg
	SHAPE_REG_IMM = Shape(2) // reg, imm
	SHAPE_REG_REG = Shape(3) // reg, reg
	SHAPE_OTHER   = Shape(4) // anything else
)

var shapeNames = [...]string{"none", "reg", "reg,imm", "reg,reg", "other"}

func (shape Shape) String() string {
	if shape >= 0 && int(shape) < len(shapeNames) {
		return shapeNames[shape]
	}
	return f("Shape(%d)", int(shape))
}

// ShapeOf classifies the operand modes of an instruction.
func ShapeOf(inst asm.Instruction) Shape {
	modes := inst.Modes()
	switch len(modes) {
	case 0:
		return SHAPE_NONE
	case 1:
		if modes[0] == asm.MODE_REGISTER {
			return SHAPE_REG
		}
	case 2:
		if modes[0] != asm.MODE_REGISTER {
			break
		}
		switch modes[1] {
		case asm.MODE_IMMEDIATE:
			return SHAPE_REG_IMM
		case asm.MODE_REGISTER:
			return SHAPE_REG_REG
		}
	}

	return SHAPE_OTHER
}

// handler mutates the processor for one (mnemonic, shape) pair. Operands
// have already been checked against the shape.
type handler func(cp *cpu.Cpu, ops []asm.Operand) error

type dispatchKey struct {
	op    asm.Mnemonic
	shape Shape
}

var dispatch = map[dispatchKey]handler{
	{asm.OP_MOV, SHAPE_REG_IMM}:  doMov,
	{asm.OP_MOV, SHAPE_REG_REG}:  doMov,
	{asm.OP_ADD, SHAPE_REG_IMM}:  doAdd,
	{asm.OP_ADD, SHAPE_REG_REG}:  doAdd,
	{asm.OP_SUB, SHAPE_REG_IMM}:  doSub,
	{asm.OP_SUB, SHAPE_REG_REG}:  doSub,
	{asm.OP_INC, SHAPE_REG}:      doInc,
	{asm.OP_DEC, SHAPE_REG}:      doDec,
	{asm.OP_XCHG, SHAPE_REG_REG}: doXchg,
	{asm.OP_PUSH, SHAPE_REG}:     doPush,
	{asm.OP_POP, SHAPE_REG}:      doPop,
	{asm.OP_NOP, SHAPE_NONE}:     doNop,
	{asm.OP_CLC, SHAPE_NONE}:     flagSetter(cpu.FLAG_CF, 0),
	{asm.OP_STC, SHAPE_NONE}:     flagSetter(cpu.FLAG_CF, 1),
	{asm.OP_CMC, SHAPE_NONE}:     doCmc,
	{asm.OP_CLD, SHAPE_NONE}:     flagSetter(cpu.FLAG_DF, 0),
	{asm.OP_STD, SHAPE_NONE}:     flagSetter(cpu.FLAG_DF, 1),
	{asm.OP_CLI, SHAPE_NONE}:     flagSetter(cpu.FLAG_IF, 0),
	{asm.OP_STI, SHAPE_NONE}:     flagSetter(cpu.FLAG_IF, 1),
}

// Handles reports whether a (mnemonic, shape) pair has execution semantics.
func Handles(op asm.Mnemonic, shape Shape) bool {
	_, ok := dispatch[dispatchKey{op, shape}]
	return ok
}

// Execute applies a decoded instruction to the processor. Instructions
// without semantics for their operand shape, blank lines included, leave
// the processor untouched and report executed as false.
func Execute(cp *cpu.Cpu, inst asm.Instruction) (executed bool, err error) {
	fn, ok := dispatch[dispatchKey{inst.Op, ShapeOf(inst)}]
	if !ok {
		return
	}

	err = fn(cp, inst.Operands)
	if err != nil {
		return
	}

	executed = true
	return
}

func register(op asm.Operand) (reg cpu.Register, err error) {
	reg, ok := op.Reg()
	if !ok {
		err = &asm.ErrOperand{Text: op.Text, Err: ErrOperandRegister}
	}
	return
}

// source returns the current value of the second operand.
func source(cp *cpu.Cpu, op asm.Operand) (value uint16, err error) {
	if op.Mode != asm.MODE_REGISTER {
		value = op.Value
		return
	}

	reg, err := register(op)
	if err != nil {
		return
	}

	return cp.Get(reg)
}

// arith applies fn to the destination register and the source operand.
// Results wrap modulo 65536; flags are not updated.
func arith(cp *cpu.Cpu, ops []asm.Operand, fn func(a, b uint32) uint32) (err error) {
	dst, err := register(ops[0])
	if err != nil {
		return
	}
	a, err := cp.Get(dst)
	if err != nil {
		return
	}
	b, err := source(cp, ops[1])
	if err != nil {
		return
	}

	return cp.Set(dst, uint16(fn(uint32(a), uint32(b))&0xffff))
}

func doMov(cp *cpu.Cpu, ops []asm.Operand) (err error) {
	dst, err := register(ops[0])
	if err != nil {
		return
	}
	value, err := source(cp, ops[1])
	if err != nil {
		return
	}

	return cp.Set(dst, value)
}

func doAdd(cp *cpu.Cpu, ops []asm.Operand) error {
	return arith(cp, ops, func(a, b uint32) uint32 { return a + b })
}

func doSub(cp *cpu.Cpu, ops []asm.Operand) error {
	return arith(cp, ops, func(a, b uint32) uint32 { return a + 0x10000 - b })
}

func bump(cp *cpu.Cpu, op asm.Operand, delta uint16) (err error) {
	reg, err := register(op)
	if err != nil {
		return
	}
	value, err := cp.Get(reg)
	if err != nil {
		return
	}

	return cp.Set(reg, value+delta)
}

func doInc(cp *cpu.Cpu, ops []asm.Operand) error {
	return bump(cp, ops[0], 1)
}

func doDec(cp *cpu.Cpu, ops []asm.Operand) error {
	return bump(cp, ops[0], 0xffff)
}

func doXchg(cp *cpu.Cpu, ops []asm.Operand) (err error) {
	a, err := register(ops[0])
	if err != nil {
		return
	}
	b, err := register(ops[1])
	if err != nil {
		return
	}

	va, err := cp.Get(a)
	if err != nil {
		return
	}
	vb, err := cp.Get(b)
	if err != nil {
		return
	}

	err = cp.Set(a, vb)
	if err != nil {
		return
	}

	return cp.Set(b, va)
}

func doPush(cp *cpu.Cpu, ops []asm.Operand) (err error) {
	reg, err := register(ops[0])
	if err != nil {
		return
	}
	value, err := cp.Get(reg)
	if err != nil {
		return
	}

	return cp.PushWord(value)
}

func doPop(cp *cpu.Cpu, ops []asm.Operand) (err error) {
	// Resolve the destination first, so a bad operand leaves SP alone.
	reg, err := register(ops[0])
	if err != nil {
		return
	}
	value, err := cp.PopWord()
	if err != nil {
		return
	}

	return cp.Set(reg, value)
}

func doNop(cp *cpu.Cpu, ops []asm.Operand) error {
	return nil
}

func flagSetter(flag cpu.Flag, bit uint8) handler {
	return func(cp *cpu.Cpu, ops []asm.Operand) error {
		return cp.SetFlagBit(flag, bit)
	}
}

func doCmc(cp *cpu.Cpu, ops []asm.Operand) (err error) {
	bit, err := cp.FlagBit(cpu.FLAG_CF)
	if err != nil {
		return
	}

	return cp.SetFlagBit(cpu.FLAG_CF, bit^1)
}
