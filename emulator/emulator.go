// Copyright 2024, Jason S. McMullan <jason.mcmullan@gmail.com>

package emulator

import (
	"encoding/json"
	"io"
	"iter"
	"log"

	"github.com/ezrec/i8086/asm"
	"github.com/ezrec/i8086/cpu"
	"github.com/ezrec/i8086/internal"
)

// Step is the record of one source line.
type Step struct {
	LineNo      int             // Source line number, 1-based.
	Instruction asm.Instruction // Decoded instruction.
	State       cpu.Snapshot    // Processor state before the instruction ran.
	Executed    bool            // False when the instruction was decoded but not executed.
}

type stepJSON struct {
	LineNo      int          `json:"line"`
	Instruction string       `json:"instruction"`
	Modes       []string     `json:"modes"`
	Executed    bool         `json:"executed"`
	State       cpu.Snapshot `json:"state"`
}

// MarshalJSON renders the step with its instruction as text.
func (step Step) MarshalJSON() ([]byte, error) {
	out := stepJSON{
		LineNo:      step.LineNo,
		Instruction: step.Instruction.String(),
		Modes:       []string{},
		Executed:    step.Executed,
		State:       step.State,
	}
	for _, mode := range step.Instruction.Modes() {
		out.Modes = append(out.Modes, mode.String())
	}

	return json.Marshal(out)
}

// Trace is the append-only log of a run.
type Trace struct {
	Steps []Step       `json:"steps"`
	Final cpu.Snapshot `json:"final"` // State after the last step.
}

// Snapshots returns the pre-execution state of each step, aligned with the
// source lines.
func (trace Trace) Snapshots() (snaps []cpu.Snapshot) {
	for _, step := range trace.Steps {
		snaps = append(snaps, step.State)
	}
	return
}

// Executed returns the number of steps that changed the processor state.
func (trace Trace) Executed() (count int) {
	for _, step := range trace.Steps {
		if step.Executed {
			count++
		}
	}
	return
}

// Emulator state. CPU + decoder.
type Emulator struct {
	Verbose  bool // If set, enables verbose logging.
	*cpu.Cpu      // Reference to the CPU simulation.

	Decoder asm.Decoder
}

// NewEmulator creates a new emulator, with the processor in its reset state.
func NewEmulator() (emu *Emulator) {
	emu = &Emulator{
		Cpu: cpu.NewCpu(),
	}

	return
}

// Reset the processor state.
func (emu *Emulator) Reset() {
	emu.Cpu.Verbose = emu.Verbose
	emu.Cpu.Reset()
}

// Exec decodes and executes a single source line against the current
// state, returning its trace step.
func (emu *Emulator) Exec(lineno int, line string) (step Step, err error) {
	defer func() {
		if err != nil {
			err = &ErrRuntime{LineNo: lineno, Err: err}
		}
	}()

	emu.Cpu.Verbose = emu.Verbose
	emu.Decoder.Verbose = emu.Verbose

	inst, err := emu.Decoder.DecodeLine(emu.Cpu, line)
	if err != nil {
		return
	}

	step = Step{
		LineNo:      lineno,
		Instruction: inst,
		State:       emu.Cpu.Snapshot(),
	}

	if emu.Verbose && inst.Op != asm.OP_NONE {
		log.Printf("Executing: %v", inst)
	}

	step.Executed, err = Execute(emu.Cpu, inst)
	if err != nil {
		return
	}

	if emu.Verbose && inst.Op != asm.OP_NONE && !step.Executed {
		log.Printf("Not executed: %v (%v)", inst, ShapeOf(inst))
	}

	return
}

// run executes numbered lines in order. The processor is not reset first.
// On error the trace holds the steps completed before the failing line, and
// Final the state at the point of failure.
func (emu *Emulator) run(lines iter.Seq2[int, string]) (trace Trace, err error) {
	defer func() {
		trace.Final = emu.Cpu.Snapshot()
	}()

	for lineno, line := range lines {
		var step Step
		step, err = emu.Exec(lineno, line)
		if err != nil {
			return
		}
		trace.Steps = append(trace.Steps, step)
	}

	return
}

// RunText executes raw instruction text line by line, in source order.
func (emu *Emulator) RunText(text string) (trace Trace, err error) {
	return emu.run(internal.Lines(text))
}

// RunProgram executes a preprocessed program.
func (emu *Emulator) RunProgram(prog *asm.Program) (trace Trace, err error) {
	return emu.run(prog.All())
}

// Run preprocesses source text and executes it.
func (emu *Emulator) Run(input io.Reader) (trace Trace, err error) {
	assembler := &asm.Assembler{Verbose: emu.Verbose}
	prog, err := assembler.Parse(input)
	if err != nil {
		return
	}

	return emu.RunProgram(prog)
}
