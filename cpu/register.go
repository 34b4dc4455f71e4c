package cpu

import (
	"strings"
)

// Register identifies a 16-bit register or a byte half of one.
type Register int

// Word registers, in storage order.
const (
	REG_AX = Register(0)  // AX
	REG_BX = Register(1)  // BX
	REG_CX = Register(2)  // CX
	REG_DX = Register(3)  // DX
	REG_SI = Register(4)  // SI
	REG_DI = Register(5)  // DI
	REG_BP = Register(6)  // BP
	REG_SP = Register(7)  // SP
	REG_IP = Register(8)  // IP
	REG_CS = Register(9)  // CS
	REG_DS = Register(10) // DS
	REG_SS = Register(11) // SS
	REG_ES = Register(12) // ES

	REGISTER_COUNT = 13 // Number of word registers with storage.
)

// Byte views. These have no storage of their own.
const (
	REG_AL = Register(16) // AL
	REG_AH = Register(17) // AH
	REG_BL = Register(18) // BL
	REG_BH = Register(19) // BH
	REG_CL = Register(20) // CL
	REG_CH = Register(21) // CH
	REG_DL = Register(22) // DL
	REG_DH = Register(23) // DH
)

var registerNames = [...]string{
	REG_AX: "AX", REG_BX: "BX", REG_CX: "CX", REG_DX: "DX",
	REG_SI: "SI", REG_DI: "DI", REG_BP: "BP", REG_SP: "SP",
	REG_IP: "IP", REG_CS: "CS", REG_DS: "DS", REG_SS: "SS", REG_ES: "ES",
	REG_AL: "AL", REG_AH: "AH", REG_BL: "BL", REG_BH: "BH",
	REG_CL: "CL", REG_CH: "CH", REG_DL: "DL", REG_DH: "DH",
}

// byteParent is the set of first letters that select a byte half parent.
var byteParent = map[byte]bool{'A': true, 'B': true, 'C': true, 'D': true}

// Registers lists the word registers in storage order.
func Registers() []Register {
	regs := make([]Register, REGISTER_COUNT)
	for n := range regs {
		regs[n] = Register(n)
	}
	return regs
}

// String returns the canonical uppercase name.
func (reg Register) String() string {
	if reg >= 0 && int(reg) < len(registerNames) && registerNames[reg] != "" {
		return registerNames[reg]
	}
	return f("Register(%d)", int(reg))
}

// Valid reports whether reg names a word register or a byte view.
func (reg Register) Valid() bool {
	return reg.IsWord() || (reg >= REG_AL && reg <= REG_DH)
}

// IsWord reports whether reg is a 16-bit register with its own storage.
func (reg Register) IsWord() bool {
	return reg >= 0 && reg < REGISTER_COUNT
}

// Byte decomposes a byte view into its parent register and half selector.
// ok is false for word registers and invalid identifiers.
func (reg Register) Byte() (parent Register, high bool, ok bool) {
	if reg < REG_AL || reg > REG_DH {
		return
	}
	offset := reg - REG_AL
	parent = REG_AX + offset/2
	high = offset%2 == 1
	ok = true
	return
}

// ParseRegister looks up a register by name, ignoring case.
//
// A two letter name whose first letter is A, B, C or D but whose second
// letter is not X, H or L fails with ErrByteSelectorInvalid. Anything
// else that is not a register fails with ErrRegisterInvalid.
func ParseRegister(name string) (reg Register, err error) {
	upper := strings.ToUpper(strings.TrimSpace(name))

	for n, known := range registerNames {
		if known != "" && known == upper {
			reg = Register(n)
			return
		}
	}

	if len(upper) != 2 {
		err = &ErrRegisterName{Name: name, Err: ErrRegisterInvalid}
		return
	}

	if !byteParent[upper[0]] {
		err = &ErrRegisterName{Name: name, Err: ErrRegisterInvalid}
		return
	}

	// Known parent, so the second letter is a bad half selector.
	err = &ErrRegisterName{Name: name, Err: ErrByteSelectorInvalid}
	return
}

// IsRegisterName reports whether name is a register, ignoring case.
func IsRegisterName(name string) bool {
	_, err := ParseRegister(name)
	return err == nil
}
