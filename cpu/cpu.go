package cpu

import (
	"errors"
	"log"
)

// Cpu is the processor state of one simulation run. It is not safe for
// concurrent use; independent runs each own their Cpu.
type Cpu struct {
	Verbose bool // Set to enable verbose logging.

	Register [REGISTER_COUNT]uint16 // Word register file.
	Flag     [FLAG_COUNT]uint8      // Flag bits, each 0 or 1.
	Memory   *Memory                // Main memory.
	Stack    *Stack                 // Stack region, addressed by SP.
}

// NewCpu creates a processor in its power on state.
func NewCpu() (cpu *Cpu) {
	cpu = &Cpu{
		Memory: NewMemory(),
		Stack:  NewStack(),
	}

	cpu.Reset()

	return
}

// Reset the processor state.
// - Clears all registers and flags.
// - Zeros main memory and the stack region.
// - Sets SP to the top of the stack.
func (cpu *Cpu) Reset() {
	if cpu.Verbose {
		log.Printf("cpu: reset")
	}

	clear(cpu.Register[:])
	clear(cpu.Flag[:])
	cpu.Memory.Reset()
	cpu.Stack.Reset()

	cpu.Register[REG_SP] = SP_RESET
}

// Get returns the value of a word register, or of a byte view zero
// extended to 16 bits.
func (cpu *Cpu) Get(reg Register) (value uint16, err error) {
	if reg.IsWord() {
		value = cpu.Register[reg]
		return
	}

	parent, high, ok := reg.Byte()
	if !ok {
		err = &ErrRegisterName{Name: reg.String(), Err: ErrRegisterInvalid}
		return
	}

	full := cpu.Register[parent]
	if high {
		value = full >> 8
	} else {
		value = full & 0xff
	}

	return
}

// Set writes a word register. For a byte view only the low 8 bits of value
// are used and the other half of the parent register is preserved.
func (cpu *Cpu) Set(reg Register, value uint16) (err error) {
	if reg.IsWord() {
		cpu.Register[reg] = value
		return
	}

	parent, high, ok := reg.Byte()
	if !ok {
		err = &ErrRegisterName{Name: reg.String(), Err: ErrRegisterInvalid}
		return
	}

	full := cpu.Register[parent]
	if high {
		full = (full & 0x00ff) | ((value & 0xff) << 8)
	} else {
		full = (full & 0xff00) | (value & 0xff)
	}
	cpu.Register[parent] = full

	return
}

// GetRegister reads a register by name.
func (cpu *Cpu) GetRegister(name string) (value uint16, err error) {
	reg, err := ParseRegister(name)
	if err != nil {
		return
	}

	return cpu.Get(reg)
}

// SetRegister writes a register by name.
func (cpu *Cpu) SetRegister(name string, value uint16) (err error) {
	reg, err := ParseRegister(name)
	if err != nil {
		return
	}

	return cpu.Set(reg, value)
}

// FlagBit returns the bit of a flag.
func (cpu *Cpu) FlagBit(flag Flag) (bit uint8, err error) {
	if !flag.Valid() {
		err = ErrFlagName(flag.String())
		return
	}

	bit = cpu.Flag[flag]
	return
}

// SetFlagBit sets a flag to 0 or 1. Any other value is rejected.
func (cpu *Cpu) SetFlagBit(flag Flag, bit uint8) (err error) {
	if !flag.Valid() {
		err = ErrFlagName(flag.String())
		return
	}

	if bit > 1 {
		err = ErrFlagValueInvalid
		return
	}

	cpu.Flag[flag] = bit
	return
}

// GetFlag reads a flag by name.
func (cpu *Cpu) GetFlag(name string) (bit uint8, err error) {
	flag, err := ParseFlag(name)
	if err != nil {
		return
	}

	return cpu.FlagBit(flag)
}

// SetFlag writes a flag by name.
func (cpu *Cpu) SetFlag(name string, bit uint8) (err error) {
	flag, err := ParseFlag(name)
	if err != nil {
		return
	}

	return cpu.SetFlagBit(flag, bit)
}

// FlagsWord packs the flags into the layout of the FLAGS register.
func (cpu *Cpu) FlagsWord() (word uint16) {
	for flag, bit := range cpu.Flag {
		word |= uint16(bit&1) << Flag(flag).Bit()
	}
	return
}

// ReadMemory returns the byte at a physical address.
func (cpu *Cpu) ReadMemory(addr uint32) (value byte, err error) {
	return cpu.Memory.Read(addr)
}

// WriteMemory stores a byte at a physical address.
func (cpu *Cpu) WriteMemory(addr uint32, value byte) (err error) {
	return cpu.Memory.Write(addr, value)
}

// PhysicalAddress translates segment:offset into a physical address.
func (cpu *Cpu) PhysicalAddress(segment, offset uint16) uint32 {
	return PhysicalAddress(segment, offset)
}

// PushWord decrements SP by two and stores value at the new SP.
func (cpu *Cpu) PushWord(value uint16) (err error) {
	sp, err := cpu.Stack.Push(cpu.Register[REG_SP], value)
	if err != nil {
		return
	}

	cpu.Register[REG_SP] = sp
	return
}

// PopWord loads the word at SP and increments SP by two.
func (cpu *Cpu) PopWord() (value uint16, err error) {
	value, sp, err := cpu.Stack.Pop(cpu.Register[REG_SP])
	if err != nil {
		return
	}

	cpu.Register[REG_SP] = sp
	return
}

// String returns the current state as a register table.
func (cpu *Cpu) String() string {
	return cpu.Snapshot().String()
}

// IsStateError reports whether err belongs to the processor state error
// taxonomy.
func IsStateError(err error) bool {
	for _, known := range []error{
		ErrRegisterInvalid, ErrByteSelectorInvalid,
		ErrFlagInvalid, ErrFlagValueInvalid,
		ErrOutOfBounds,
		ErrStackOverflow, ErrStackUnderflow,
	} {
		if errors.Is(err, known) {
			return true
		}
	}
	return false
}
