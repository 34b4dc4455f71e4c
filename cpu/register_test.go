package cpu

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseRegister(t *testing.T) {
	assert := assert.New(t)

	table := [](struct {
		name string
		reg  Register
		err  error
	}){
		{"AX", REG_AX, nil},
		{"ax", REG_AX, nil},
		{" Sp ", REG_SP, nil},
		{"ES", REG_ES, nil},
		{"IP", REG_IP, nil},
		{"AL", REG_AL, nil},
		{"ah", REG_AH, nil},
		{"DH", REG_DH, nil},
		{"BL", REG_BL, nil},
		{"AQ", 0, ErrByteSelectorInvalid},
		{"DZ", 0, ErrByteSelectorInvalid},
		{"EX", 0, ErrRegisterInvalid},
		{"SL", 0, ErrRegisterInvalid},
		{"AXX", 0, ErrRegisterInvalid},
		{"", 0, ErrRegisterInvalid},
		{"R0", 0, ErrRegisterInvalid},
	}

	for _, entry := range table {
		reg, err := ParseRegister(entry.name)
		if entry.err == nil {
			assert.NoError(err, entry.name)
			assert.Equal(entry.reg, reg, entry.name)
		} else {
			assert.ErrorIs(err, entry.err, entry.name)
			var en *ErrRegisterName
			assert.True(errors.As(err, &en), entry.name)
		}
	}
}

func TestRegister_Byte(t *testing.T) {
	assert := assert.New(t)

	table := [](struct {
		reg    Register
		parent Register
		high   bool
	}){
		{REG_AL, REG_AX, false},
		{REG_AH, REG_AX, true},
		{REG_BL, REG_BX, false},
		{REG_BH, REG_BX, true},
		{REG_CL, REG_CX, false},
		{REG_CH, REG_CX, true},
		{REG_DL, REG_DX, false},
		{REG_DH, REG_DX, true},
	}

	for _, entry := range table {
		parent, high, ok := entry.reg.Byte()
		assert.True(ok, entry.reg.String())
		assert.Equal(entry.parent, parent, entry.reg.String())
		assert.Equal(entry.high, high, entry.reg.String())
		assert.False(entry.reg.IsWord())
		assert.True(entry.reg.Valid())
	}

	for _, reg := range Registers() {
		_, _, ok := reg.Byte()
		assert.False(ok, reg.String())
		assert.True(reg.IsWord())
	}

	assert.False(Register(14).Valid())
	assert.Equal("Register(14)", Register(14).String())
}

func TestCpu_RegisterRoundTrip(t *testing.T) {
	assert := assert.New(t)

	cpu := NewCpu()
	for _, reg := range Registers() {
		for _, v := range []uint16{0, 1, 0x00ff, 0xff00, 0x1234, 0xffff} {
			assert.NoError(cpu.Set(reg, v))
			got, err := cpu.Get(reg)
			assert.NoError(err)
			assert.Equal(v, got, reg.String())
		}
	}
}

func TestCpu_ByteHalves(t *testing.T) {
	assert := assert.New(t)

	cpu := NewCpu()
	for _, prefix := range []string{"A", "B", "C", "D"} {
		assert.NoError(cpu.SetRegister(prefix+"X", 0x1234))

		assert.NoError(cpu.SetRegister(prefix+"H", 0xab))
		low, err := cpu.GetRegister(prefix + "L")
		assert.NoError(err)
		assert.Equal(uint16(0x34), low)
		full, _ := cpu.GetRegister(prefix + "X")
		assert.Equal(uint16(0xab34), full)

		assert.NoError(cpu.SetRegister(prefix+"L", 0x1cd))
		high, _ := cpu.GetRegister(prefix + "H")
		assert.Equal(uint16(0xab), high)
		full, _ = cpu.GetRegister(prefix + "X")
		assert.Equal(uint16(0xabcd), full)
	}
}

func TestCpu_RegisterErrors(t *testing.T) {
	assert := assert.New(t)

	cpu := NewCpu()

	_, err := cpu.GetRegister("QX")
	assert.ErrorIs(err, ErrRegisterInvalid)
	assert.ErrorIs(cpu.SetRegister("QX", 1), ErrRegisterInvalid)

	_, err = cpu.GetRegister("AZ")
	assert.ErrorIs(err, ErrByteSelectorInvalid)
	assert.ErrorIs(cpu.SetRegister("BQ", 1), ErrByteSelectorInvalid)

	_, err = cpu.Get(Register(99))
	assert.ErrorIs(err, ErrRegisterInvalid)
	assert.ErrorIs(cpu.Set(Register(-1), 0), ErrRegisterInvalid)
	assert.True(IsStateError(err))
}
