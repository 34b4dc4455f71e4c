// Package asm decodes assembly source lines for the cpu package.
//
// Resolve classifies one operand token into an addressing mode (immediate,
// register, direct memory, register indirect, based, indexed or based
// indexed) and evaluates it against live processor state. The Decoder
// splits a line into its mnemonic and operands. The Assembler is an
// optional preprocessor that expands comments, labels, equates and
// compile-time expressions before decoding.
package asm
