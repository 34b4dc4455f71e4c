// Package cpu implements the processor state of a 16-bit, 8086 style
// microprocessor.
//
// The state consists of thirteen 16-bit registers (AX, BX, CX, DX, SI, DI,
// BP, SP, IP, CS, DS, SS, ES), with the byte halves AH/AL, BH/BL, CH/CL and
// DH/DL exposed as views over their parent register, nine single bit flags,
// a 1 MiB byte addressable main memory reached through segment:offset
// translation, and a separate 64 KiB stack region indexed by SP.
//
// Every mutating operation validates its inputs before touching state, so a
// failed operation leaves the processor exactly as it found it.
package cpu
