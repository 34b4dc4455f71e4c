// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/ezrec/i8086/asm"
	"github.com/ezrec/i8086/cpu"
	"github.com/ezrec/i8086/emulator"
)

func writeText(out io.Writer, trace emulator.Trace) {
	for _, step := range trace.Steps {
		if step.Instruction.Op == asm.OP_NONE {
			continue
		}
		mark := ""
		if !step.Executed {
			mark = " (not executed)"
		}
		fmt.Fprintf(out, "%4d: %v%v\n%v\n", step.LineNo, step.Instruction, mark, step.State)
	}
	fmt.Fprintf(out, "final:\n%v", trace.Final)
}

func main() {
	var input string
	var output string
	var asJson bool
	var save bool
	var verbose bool

	flag.StringVar(&input, "i", "-", "Source input")
	flag.StringVar(&output, "o", "-", "Trace output")
	flag.BoolVar(&asJson, "j", false, "Write the trace as JSON")
	flag.BoolVar(&save, "s", false, "Preprocess and decode only, do not execute")
	flag.BoolVar(&verbose, "v", false, "Verbose mode")

	flag.Parse()

	if flag.NArg() != 0 {
		log.Fatalf("%v: Unknown arguments: %v", os.Args[0], flag.Args())
	}

	inf := os.Stdin
	if input != "-" {
		var err error
		inf, err = os.Open(input)
		if err != nil {
			log.Fatalf("%v: %v", input, err)
		}
		defer inf.Close()
	}

	ouf := os.Stdout
	if output != "-" {
		var err error
		ouf, err = os.Create(output)
		if err != nil {
			log.Fatalf("%v: %v", output, err)
		}
		defer ouf.Close()
	}

	assembler := &asm.Assembler{Verbose: verbose}
	prog, err := assembler.Parse(inf)
	if err != nil {
		log.Fatalf("%v: %v", input, err)
	}

	if save {
		dec := &asm.Decoder{Verbose: verbose}
		insts, err := dec.DecodeBlock(cpu.NewCpu(), prog.Text())
		if err != nil {
			log.Fatalf("%v: %v", input, err)
		}
		for n, inst := range insts {
			if inst.Op == asm.OP_NONE {
				continue
			}
			fmt.Fprintf(ouf, "%4d: %v %v\n", n+1, inst, inst.Modes())
		}
		return
	}

	emu := emulator.NewEmulator()
	emu.Verbose = verbose

	trace, err := emu.RunProgram(prog)

	if asJson {
		enc := json.NewEncoder(ouf)
		enc.SetIndent("", "  ")
		if jerr := enc.Encode(trace); jerr != nil {
			log.Fatalf("%v: %v", output, jerr)
		}
	} else {
		writeText(ouf, trace)
	}

	if err != nil {
		log.Fatalf("%v: %v", input, err)
	}
}
