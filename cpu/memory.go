package cpu

const (
	MEMORY_SIZE = 1 << 20 // Main memory, 1 MiB.
)

// Memory is the byte addressable main memory.
type Memory struct {
	Data []byte
}

// NewMemory allocates a zeroed main memory.
func NewMemory() *Memory {
	return &Memory{Data: make([]byte, MEMORY_SIZE)}
}

// check validates that size bytes starting at addr are all in range.
func (mem *Memory) check(addr uint32, size int) (err error) {
	if uint64(addr)+uint64(size) > uint64(len(mem.Data)) {
		err = &ErrAddress{Address: addr, Size: size}
	}
	return
}

// Read returns the byte at addr.
func (mem *Memory) Read(addr uint32) (value byte, err error) {
	err = mem.check(addr, 1)
	if err != nil {
		return
	}

	value = mem.Data[addr]
	return
}

// Write stores value at addr.
func (mem *Memory) Write(addr uint32, value byte) (err error) {
	err = mem.check(addr, 1)
	if err != nil {
		return
	}

	mem.Data[addr] = value
	return
}

// ReadWord returns the little-endian word at addr.
func (mem *Memory) ReadWord(addr uint32) (value uint16, err error) {
	err = mem.check(addr, 2)
	if err != nil {
		return
	}

	value = uint16(mem.Data[addr]) | uint16(mem.Data[addr+1])<<8
	return
}

// WriteWord stores value little-endian at addr.
func (mem *Memory) WriteWord(addr uint32, value uint16) (err error) {
	err = mem.check(addr, 2)
	if err != nil {
		return
	}

	mem.Data[addr] = byte(value)
	mem.Data[addr+1] = byte(value >> 8)
	return
}

// Load copies data into memory starting at addr. Nothing is written unless
// the whole range fits.
func (mem *Memory) Load(addr uint32, data []byte) (err error) {
	err = mem.check(addr, len(data))
	if err != nil {
		return
	}

	copy(mem.Data[addr:], data)
	return
}

// Window returns a copy of size bytes starting at addr.
func (mem *Memory) Window(addr uint32, size int) (data []byte, err error) {
	err = mem.check(addr, size)
	if err != nil {
		return
	}

	data = make([]byte, size)
	copy(data, mem.Data[addr:])
	return
}

// Reset zeros memory.
func (mem *Memory) Reset() {
	clear(mem.Data)
}

// PhysicalAddress translates segment:offset into a 20-bit physical address.
func PhysicalAddress(segment, offset uint16) uint32 {
	return (uint32(segment) << 4) + uint32(offset)
}
