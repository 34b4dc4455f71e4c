package cpu

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCpu(t *testing.T) {
	assert := assert.New(t)

	cpu := NewCpu()

	assert.False(cpu.Verbose)
	assert.Equal(uint16(SP_RESET), cpu.Register[REG_SP])
	assert.Len(cpu.Memory.Data, MEMORY_SIZE)
	assert.Len(cpu.Stack.Data, STACK_SIZE)
	for _, reg := range Registers() {
		if reg != REG_SP {
			assert.Equal(uint16(0), cpu.Register[reg], reg.String())
		}
	}
	for _, flag := range Flags() {
		bit, err := cpu.FlagBit(flag)
		assert.NoError(err)
		assert.Equal(uint8(0), bit, flag.String())
	}
}

func TestCpu_Reset(t *testing.T) {
	assert := assert.New(t)

	cpu := NewCpu()
	cpu.Set(REG_AX, 0x1234)
	cpu.SetFlagBit(FLAG_ZF, 1)
	cpu.WriteMemory(0x100, 0xaa)
	cpu.PushWord(0x5555)

	cpu.Reset()

	assert.Equal(NewCpu().Snapshot(), cpu.Snapshot())
	value, _ := cpu.ReadMemory(0x100)
	assert.Equal(byte(0), value)
}

func TestCpu_Flags(t *testing.T) {
	assert := assert.New(t)

	cpu := NewCpu()
	for _, name := range []string{"CF", "PF", "AF", "ZF", "SF", "TF", "IF", "DF", "OF"} {
		assert.NoError(cpu.SetFlag(name, 1), name)
		bit, err := cpu.GetFlag(name)
		assert.NoError(err, name)
		assert.Equal(uint8(1), bit, name)

		assert.NoError(cpu.SetFlag(name, 0), name)
		bit, _ = cpu.GetFlag(name)
		assert.Equal(uint8(0), bit, name)
	}

	err := cpu.SetFlag("ZF", 2)
	assert.ErrorIs(err, ErrFlagValueInvalid)
	bit, _ := cpu.GetFlag("ZF")
	assert.Equal(uint8(0), bit)

	_, err = cpu.GetFlag("XF")
	assert.ErrorIs(err, ErrFlagInvalid)
	assert.ErrorIs(cpu.SetFlag("XF", 1), ErrFlagInvalid)
	assert.ErrorIs(cpu.SetFlagBit(Flag(FLAG_COUNT), 0), ErrFlagInvalid)

	var en ErrFlagName
	assert.True(errors.As(err, &en))
	assert.Equal(ErrFlagName("XF"), en)
}

func TestCpu_FlagsWord(t *testing.T) {
	assert := assert.New(t)

	cpu := NewCpu()
	assert.Equal(uint16(0), cpu.FlagsWord())

	cpu.SetFlagBit(FLAG_CF, 1)
	cpu.SetFlagBit(FLAG_ZF, 1)
	cpu.SetFlagBit(FLAG_OF, 1)
	assert.Equal(uint16(1<<0|1<<6|1<<11), cpu.FlagsWord())
}

func TestCpu_Memory(t *testing.T) {
	assert := assert.New(t)

	cpu := NewCpu()

	assert.NoError(cpu.WriteMemory(0, 0x11))
	assert.NoError(cpu.WriteMemory(MEMORY_SIZE-1, 0x22))

	value, err := cpu.ReadMemory(MEMORY_SIZE - 1)
	assert.NoError(err)
	assert.Equal(byte(0x22), value)

	_, err = cpu.ReadMemory(MEMORY_SIZE)
	assert.ErrorIs(err, ErrOutOfBounds)
	assert.ErrorIs(cpu.WriteMemory(MEMORY_SIZE, 1), ErrOutOfBounds)

	var ea *ErrAddress
	assert.True(errors.As(err, &ea))
	assert.Equal(uint32(MEMORY_SIZE), ea.Address)
}

func TestMemory_Word(t *testing.T) {
	assert := assert.New(t)

	mem := NewMemory()
	assert.NoError(mem.WriteWord(0x1000, 0xbeef))
	assert.Equal(byte(0xef), mem.Data[0x1000])
	assert.Equal(byte(0xbe), mem.Data[0x1001])

	value, err := mem.ReadWord(0x1000)
	assert.NoError(err)
	assert.Equal(uint16(0xbeef), value)

	// A word straddling the end is rejected without a partial write.
	assert.ErrorIs(mem.WriteWord(MEMORY_SIZE-1, 0xffff), ErrOutOfBounds)
	assert.Equal(byte(0), mem.Data[MEMORY_SIZE-1])

	_, err = mem.ReadWord(MEMORY_SIZE - 1)
	assert.ErrorIs(err, ErrOutOfBounds)
}

func TestMemory_Load(t *testing.T) {
	assert := assert.New(t)

	mem := NewMemory()
	assert.NoError(mem.Load(0x20, []byte{1, 2, 3}))

	window, err := mem.Window(0x1f, 5)
	assert.NoError(err)
	assert.Equal([]byte{0, 1, 2, 3, 0}, window)

	assert.ErrorIs(mem.Load(MEMORY_SIZE-2, []byte{9, 9, 9}), ErrOutOfBounds)
	assert.Equal([]byte{0, 0}, mem.Data[MEMORY_SIZE-2:])
}

func TestPhysicalAddress(t *testing.T) {
	assert := assert.New(t)

	assert.Equal(uint32(0x00000), PhysicalAddress(0, 0))
	assert.Equal(uint32(0x12350), PhysicalAddress(0x1234, 0x0010))
	assert.Equal(uint32(0x10ffef), PhysicalAddress(0xffff, 0xffff))
	assert.Equal(uint32(0xb8000), NewCpu().PhysicalAddress(0xb800, 0))
}

func TestCpu_PushPop(t *testing.T) {
	assert := assert.New(t)

	cpu := NewCpu()
	for _, v := range []uint16{0, 1, 0x1234, 0xffff} {
		before := cpu.Register[REG_SP]
		assert.NoError(cpu.PushWord(v))
		assert.Equal(before-2, cpu.Register[REG_SP])

		got, err := cpu.PopWord()
		assert.NoError(err)
		assert.Equal(v, got)
		assert.Equal(before, cpu.Register[REG_SP])
	}
}

func TestCpu_StackBounds(t *testing.T) {
	assert := assert.New(t)

	cpu := NewCpu()

	_, err := cpu.PopWord()
	assert.ErrorIs(err, ErrStackUnderflow)
	assert.Equal(uint16(SP_RESET), cpu.Register[REG_SP])

	for cpu.Register[REG_SP] != 0 {
		assert.NoError(cpu.PushWord(0xa5a5))
	}

	err = cpu.PushWord(0x5a5a)
	assert.ErrorIs(err, ErrStackOverflow)
	assert.Equal(uint16(0), cpu.Register[REG_SP])
	assert.True(IsStateError(err))
}

func TestCpu_Snapshot(t *testing.T) {
	assert := assert.New(t)

	cpu := NewCpu()
	cpu.Set(REG_AX, 0x1234)
	cpu.SetFlagBit(FLAG_CF, 1)
	cpu.PushWord(0xbeef)

	first := cpu.Snapshot()
	second := cpu.Snapshot()
	assert.Equal(first, second)

	ax, ok := first.Get("AX")
	assert.True(ok)
	assert.Equal(uint16(0x1234), ax)
	cf, ok := first.Get("CF")
	assert.True(ok)
	assert.Equal(uint16(1), cf)
	_, ok = first.Get("AH")
	assert.False(ok)
	assert.Equal([]uint16{0xbeef}, first.Stack)

	// Snapshots do not alias live state.
	cpu.Set(REG_AX, 0)
	assert.Equal(uint16(0x1234), first.Register[REG_AX])

	count := 0
	for range first.All() {
		count++
	}
	assert.Equal(REGISTER_COUNT+FLAG_COUNT, count)
}

func TestCpu_SnapshotJSON(t *testing.T) {
	assert := assert.New(t)

	cpu := NewCpu()
	cpu.Set(REG_BX, 0x10)

	data, err := json.Marshal(cpu.Snapshot())
	assert.NoError(err)

	var decoded struct {
		Registers map[string]uint16
		Flags     map[string]uint16
		Stack     []uint16
	}
	assert.NoError(json.Unmarshal(data, &decoded))
	assert.Len(decoded.Registers, REGISTER_COUNT)
	assert.Len(decoded.Flags, FLAG_COUNT)
	assert.Equal(uint16(0x10), decoded.Registers["BX"])
	assert.Equal(uint16(SP_RESET), decoded.Registers["SP"])
	assert.Empty(decoded.Stack)
}

func TestCpu_String(t *testing.T) {
	assert := assert.New(t)

	cpu := NewCpu()
	text := cpu.String()
	assert.Contains(text, "   SP: FFFE\n")
	assert.Contains(text, "flags: CF=0 PF=0")
	assert.Contains(text, "stack: ----")
}
