package cpu

const (
	STACK_SIZE  = 1 << 16 // Stack region, 64 KiB.
	SP_RESET    = 0xfffe  // SP at power on; the stack is empty.
	SP_LIMIT    = 2       // Lowest SP a push may start from.
	SP_POP_MAX  = 0xfffc  // Highest SP a pop may start from.
	WORD_LENGTH = 2
)

// Stack is the stack region, separate from main memory. It grows downward
// and is addressed by the SP register of the owning Cpu.
type Stack struct {
	Data []byte
}

// NewStack allocates a zeroed stack region.
func NewStack() *Stack {
	return &Stack{Data: make([]byte, STACK_SIZE)}
}

// Push stores value below sp and returns the new stack pointer.
func (s *Stack) Push(sp uint16, value uint16) (next uint16, err error) {
	if s.Full(sp) {
		err = ErrStackOverflow
		return
	}

	next = sp - WORD_LENGTH
	s.Data[next] = byte(value)
	s.Data[next+1] = byte(value >> 8)
	return
}

// Pop loads the word at sp and returns it with the new stack pointer.
func (s *Stack) Pop(sp uint16) (value uint16, next uint16, err error) {
	if sp > SP_POP_MAX {
		err = ErrStackUnderflow
		return
	}

	value = s.word(sp)
	next = sp + WORD_LENGTH
	return
}

// Peek returns the word at sp without moving it.
func (s *Stack) Peek(sp uint16) (value uint16, ok bool) {
	if s.Empty(sp) || sp > SP_POP_MAX {
		return
	}

	return s.word(sp), true
}

// Empty reports whether sp is at or above the reset position.
func (s *Stack) Empty(sp uint16) bool {
	return sp >= SP_RESET
}

// Full reports whether another push from sp would overflow.
func (s *Stack) Full(sp uint16) bool {
	return sp < SP_LIMIT
}

// Words returns up to limit words from sp toward the top of the stack,
// most recently pushed first.
func (s *Stack) Words(sp uint16, limit int) (words []uint16) {
	for addr := uint32(sp); addr < SP_RESET && len(words) < limit; addr += WORD_LENGTH {
		words = append(words, s.word(uint16(addr)))
	}
	return
}

// Reset zeros the stack region.
func (s *Stack) Reset() {
	clear(s.Data)
}

func (s *Stack) word(sp uint16) uint16 {
	return uint16(s.Data[sp]) | uint16(s.Data[uint32(sp)+1])<<8
}
