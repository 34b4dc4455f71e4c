package cpu

import (
	"strings"
)

// Flag identifies a single bit processor status flag.
type Flag int

const (
	FLAG_CF = Flag(0) // CF, carry
	FLAG_PF = Flag(1) // PF, parity
	FLAG_AF = Flag(2) // AF, auxiliary carry
	FLAG_ZF = Flag(3) // ZF, zero
	FLAG_SF = Flag(4) // SF, sign
	FLAG_TF = Flag(5) // TF, trap
	FLAG_IF = Flag(6) // IF, interrupt enable
	FLAG_DF = Flag(7) // DF, direction
	FLAG_OF = Flag(8) // OF, overflow

	FLAG_COUNT = 9
)

var flagNames = [FLAG_COUNT]string{"CF", "PF", "AF", "ZF", "SF", "TF", "IF", "DF", "OF"}

// flagBits is the bit position of each flag in the FLAGS word.
var flagBits = [FLAG_COUNT]uint{0, 2, 4, 6, 7, 8, 9, 10, 11}

// Flags lists all flags in canonical order.
func Flags() []Flag {
	flags := make([]Flag, FLAG_COUNT)
	for n := range flags {
		flags[n] = Flag(n)
	}
	return flags
}

func (flag Flag) String() string {
	if flag.Valid() {
		return flagNames[flag]
	}
	return f("Flag(%d)", int(flag))
}

// Valid reports whether flag is one of the nine known flags.
func (flag Flag) Valid() bool {
	return flag >= 0 && flag < FLAG_COUNT
}

// Bit returns the position of the flag in the FLAGS word.
func (flag Flag) Bit() uint {
	return flagBits[flag]
}

// ParseFlag looks up a flag by name, ignoring case.
func ParseFlag(name string) (flag Flag, err error) {
	upper := strings.ToUpper(strings.TrimSpace(name))
	for n, known := range flagNames {
		if known == upper {
			flag = Flag(n)
			return
		}
	}

	err = ErrFlagName(name)
	return
}
