package cpu

import (
	"encoding/json"
	"fmt"
	"iter"
	"strings"

	"github.com/ezrec/i8086/internal"
)

// STACK_WINDOW is the number of top of stack words captured in a Snapshot.
const STACK_WINDOW = 8

// Snapshot is a point in time copy of the observable processor state.
type Snapshot struct {
	Register [REGISTER_COUNT]uint16
	Flag     [FLAG_COUNT]uint8
	Stack    []uint16 // Up to STACK_WINDOW words, top of stack first.
}

// Snapshot copies the registers, flags and the top of the stack. It does
// not modify the processor.
func (cpu *Cpu) Snapshot() (snap Snapshot) {
	snap.Register = cpu.Register
	snap.Flag = cpu.Flag
	snap.Stack = cpu.Stack.Words(cpu.Register[REG_SP], STACK_WINDOW)
	return
}

// Registers iterates over the word registers by canonical name.
func (snap Snapshot) Registers() iter.Seq2[string, uint16] {
	return func(yield func(string, uint16) bool) {
		for n, value := range snap.Register {
			if !yield(Register(n).String(), value) {
				return
			}
		}
	}
}

// Flags iterates over the flags by canonical name.
func (snap Snapshot) Flags() iter.Seq2[string, uint16] {
	return func(yield func(string, uint16) bool) {
		for n, bit := range snap.Flag {
			if !yield(Flag(n).String(), uint16(bit)) {
				return
			}
		}
	}
}

// All iterates over registers, then flags.
func (snap Snapshot) All() iter.Seq2[string, uint16] {
	return internal.IterSeq2Concat(snap.Registers(), snap.Flags())
}

// Get returns a register or flag value by canonical name.
func (snap Snapshot) Get(name string) (value uint16, ok bool) {
	for key, val := range snap.All() {
		if key == name {
			return val, true
		}
	}
	return
}

// String returns the snapshot as a register table.
func (snap Snapshot) String() string {
	var sb strings.Builder

	for name, value := range snap.Registers() {
		fmt.Fprintf(&sb, "% 5s: %04X\n", name, value)
	}

	var flags []string
	for name, bit := range snap.Flags() {
		flags = append(flags, fmt.Sprintf("%v=%d", name, bit))
	}
	fmt.Fprintf(&sb, "flags: %v\n", strings.Join(flags, " "))

	var stack []string
	for _, word := range snap.Stack {
		stack = append(stack, fmt.Sprintf("%04X", word))
	}
	if len(stack) == 0 {
		stack = []string{"----"}
	}
	fmt.Fprintf(&sb, "stack: %v\n", strings.Join(stack, " "))

	return sb.String()
}

type snapshotJSON struct {
	Registers map[string]uint16 `json:"registers"`
	Flags     map[string]uint16 `json:"flags"`
	Stack     []uint16          `json:"stack"`
}

// MarshalJSON renders registers and flags keyed by canonical name.
func (snap Snapshot) MarshalJSON() ([]byte, error) {
	out := snapshotJSON{
		Registers: make(map[string]uint16, REGISTER_COUNT),
		Flags:     make(map[string]uint16, FLAG_COUNT),
		Stack:     snap.Stack,
	}
	for name, value := range snap.Registers() {
		out.Registers[name] = value
	}
	for name, bit := range snap.Flags() {
		out.Flags[name] = bit
	}
	if out.Stack == nil {
		out.Stack = []uint16{}
	}

	return json.Marshal(out)
}
