package asm

import (
	"strings"
)

// Mnemonic identifies an instruction by name.
type Mnemonic int

// OP_NONE is the mnemonic of a blank line, OP_UNKNOWN of a name outside the
// instruction table. The remainder follow the 8086 instruction table.
const (
	OP_NONE Mnemonic = iota
	OP_UNKNOWN
	OP_AAA
	OP_AAD
	OP_AAM
	OP_AAS
	OP_ADC
	OP_ADD
	OP_AND
	OP_CALL
	OP_CBW
	OP_CLC
	OP_CLD
	OP_CLI
	OP_CMC
	OP_CMP
	OP_CMPSB
	OP_CMPSW
	OP_CWD
	OP_DAA
	OP_DAS
	OP_DEC
	OP_DIV
	OP_HLT
	OP_IDIV
	OP_IMUL
	OP_IN
	OP_INC
	OP_INT
	OP_INTO
	OP_IRET
	OP_JA
	OP_JAE
	OP_JB
	OP_JBE
	OP_JC
	OP_JCXZ
	OP_JE
	OP_JG
	OP_JGE
	OP_JL
	OP_JLE
	OP_JMP
	OP_JNA
	OP_JNAE
	OP_JNB
	OP_JNBE
	OP_JNC
	OP_JNE
	OP_JNG
	OP_JNGE
	OP_JNL
	OP_JNLE
	OP_JNO
	OP_JNP
	OP_JNS
	OP_JNZ
	OP_JO
	OP_JP
	OP_JPE
	OP_JPO
	OP_JS
	OP_JZ
	OP_LAHF
	OP_LDS
	OP_LEA
	OP_LES
	OP_LODSB
	OP_LODSW
	OP_LOOP
	OP_LOOPE
	OP_LOOPNE
	OP_LOOPNZ
	OP_LOOPZ
	OP_MOV
	OP_MOVSB
	OP_MOVSW
	OP_MUL
	OP_NEG
	OP_NOP
	OP_NOT
	OP_OR
	OP_OUT
	OP_POP
	OP_POPA
	OP_POPF
	OP_PUSH
	OP_PUSHA
	OP_PUSHF
	OP_RCL
	OP_RCR
	OP_REP
	OP_REPE
	OP_REPNE
	OP_REPNZ
	OP_REPZ
	OP_RET
	OP_RETF
	OP_ROL
	OP_ROR
	OP_SAHF
	OP_SAL
	OP_SAR
	OP_SBB
	OP_SCASB
	OP_SCASW
	OP_SHL
	OP_SHR
	OP_STC
	OP_STD
	OP_STI
	OP_STOSB
	OP_STOSW
	OP_SUB
	OP_TEST
	OP_XCHG
	OP_XLATB
	OP_XOR

	MNEMONIC_COUNT
)

var mnemonicNames = [MNEMONIC_COUNT]string{
	OP_NONE:    "",
	OP_UNKNOWN: "?",
	OP_AAA:     "AAA",
	OP_AAD:     "AAD",
	OP_AAM:     "AAM",
	OP_AAS:     "AAS",
	OP_ADC:     "ADC",
	OP_ADD:     "ADD",
	OP_AND:     "AND",
	OP_CALL:    "CALL",
	OP_CBW:     "CBW",
	OP_CLC:     "CLC",
	OP_CLD:     "CLD",
	OP_CLI:     "CLI",
	OP_CMC:     "CMC",
	OP_CMP:     "CMP",
	OP_CMPSB:   "CMPSB",
	OP_CMPSW:   "CMPSW",
	OP_CWD:     "CWD",
	OP_DAA:     "DAA",
	OP_DAS:     "DAS",
	OP_DEC:     "DEC",
	OP_DIV:     "DIV",
	OP_HLT:     "HLT",
	OP_IDIV:    "IDIV",
	OP_IMUL:    "IMUL",
	OP_IN:      "IN",
	OP_INC:     "INC",
	OP_INT:     "INT",
	OP_INTO:    "INTO",
	OP_IRET:    "IRET",
	OP_JA:      "JA",
	OP_JAE:     "JAE",
	OP_JB:      "JB",
	OP_JBE:     "JBE",
	OP_JC:      "JC",
	OP_JCXZ:    "JCXZ",
	OP_JE:      "JE",
	OP_JG:      "JG",
	OP_JGE:     "JGE",
	OP_JL:      "JL",
	OP_JLE:     "JLE",
	OP_JMP:     "JMP",
	OP_JNA:     "JNA",
	OP_JNAE:    "JNAE",
	OP_JNB:     "JNB",
	OP_JNBE:    "JNBE",
	OP_JNC:     "JNC",
	OP_JNE:     "JNE",
	OP_JNG:     "JNG",
	OP_JNGE:    "JNGE",
	OP_JNL:     "JNL",
	OP_JNLE:    "JNLE",
	OP_JNO:     "JNO",
	OP_JNP:     "JNP",
	OP_JNS:     "JNS",
	OP_JNZ:     "JNZ",
	OP_JO:      "JO",
	OP_JP:      "JP",
	OP_JPE:     "JPE",
	OP_JPO:     "JPO",
	OP_JS:      "JS",
	OP_JZ:      "JZ",
	OP_LAHF:    "LAHF",
	OP_LDS:     "LDS",
	OP_LEA:     "LEA",
	OP_LES:     "LES",
	OP_LODSB:   "LODSB",
	OP_LODSW:   "LODSW",
	OP_LOOP:    "LOOP",
	OP_LOOPE:   "LOOPE",
	OP_LOOPNE:  "LOOPNE",
	OP_LOOPNZ:  "LOOPNZ",
	OP_LOOPZ:   "LOOPZ",
	OP_MOV:     "MOV",
	OP_MOVSB:   "MOVSB",
	OP_MOVSW:   "MOVSW",
	OP_MUL:     "MUL",
	OP_NEG:     "NEG",
	OP_NOP:     "NOP",
	OP_NOT:     "NOT",
	OP_OR:      "OR",
	OP_OUT:     "OUT",
	OP_POP:     "POP",
	OP_POPA:    "POPA",
	OP_POPF:    "POPF",
	OP_PUSH:    "PUSH",
	OP_PUSHA:   "PUSHA",
	OP_PUSHF:   "PUSHF",
	OP_RCL:     "RCL",
	OP_RCR:     "RCR",
	OP_REP:     "REP",
	OP_REPE:    "REPE",
	OP_REPNE:   "REPNE",
	OP_REPNZ:   "REPNZ",
	OP_REPZ:    "REPZ",
	OP_RET:     "RET",
	OP_RETF:    "RETF",
	OP_ROL:     "ROL",
	OP_ROR:     "ROR",
	OP_SAHF:    "SAHF",
	OP_SAL:     "SAL",
	OP_SAR:     "SAR",
	OP_SBB:     "SBB",
	OP_SCASB:   "SCASB",
	OP_SCASW:   "SCASW",
	OP_SHL:     "SHL",
	OP_SHR:     "SHR",
	OP_STC:     "STC",
	OP_STD:     "STD",
	OP_STI:     "STI",
	OP_STOSB:   "STOSB",
	OP_STOSW:   "STOSW",
	OP_SUB:     "SUB",
	OP_TEST:    "TEST",
	OP_XCHG:    "XCHG",
	OP_XLATB:   "XLATB",
	OP_XOR:     "XOR",
}

var mnemonicMap = func() map[string]Mnemonic {
	m := make(map[string]Mnemonic, MNEMONIC_COUNT)
	for n, name := range mnemonicNames[OP_UNKNOWN+1:] {
		m[name] = OP_UNKNOWN + 1 + Mnemonic(n)
	}
	return m
}()

// LookupMnemonic finds a mnemonic by name, ignoring case. An empty name is
// OP_NONE; anything else not in the table is OP_UNKNOWN.
func LookupMnemonic(name string) Mnemonic {
	upper := strings.ToUpper(strings.TrimSpace(name))
	if len(upper) == 0 {
		return OP_NONE
	}

	op, ok := mnemonicMap[upper]
	if !ok {
		return OP_UNKNOWN
	}
	return op
}

func (op Mnemonic) String() string {
	if op >= 0 && op < MNEMONIC_COUNT {
		return mnemonicNames[op]
	}
	return f("Mnemonic(%d)", int(op))
}

// Known reports whether op is in the instruction table.
func (op Mnemonic) Known() bool {
	return op > OP_UNKNOWN && op < MNEMONIC_COUNT
}
