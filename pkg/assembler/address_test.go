// Copyright (C) 2021  Antonio Lassandro

// This program is free software: you can redistribute it and/or modify it
// under the terms of the GNU General Public License as published by the Free
// Software Foundation, either version 3 of the License, or (at your option)
// any later version.

// This program is distributed in the hope that it will be useful, but WITHOUT
// ANY WARRANTY; without even the implied warranty of MERCHANTABILITY or
// FITNESS FOR A PARTICULAR PURPOSE.  See the GNU General Public License for
// more details.

// You should have received a copy of the GNU General Public License along
// with this program.  If not, see <http://www.gnu.org/licenses/>.

package assembler_test

import (
	"testing"

	"github.com/lassandro/gopep8/pkg/assembler"
	"github.com/lassandro/gopep8/pkg/encoding"
	"github.com/retroenv/retrogolib/assert"
)

func TestAddrModeLongCode(t *testing.T) {
	want := map[string]uint8{
		"i":   0b000,
		"d":   0b001,
		"n":   0b010,
		"s":   0b011,
		"sf":  0b100,
		"x":   0b101,
		"sx":  0b110,
		"sxf": 0b111,
	}

	seen := make(map[uint8]string)

	for mnemonic, code := range want {
		mode, ok := assembler.ParseAddrMode(mnemonic)
		assert.True(t, ok, mnemonic)
		assert.Equal(t, code, mode.LongCode(), mnemonic)
		assert.Equal(t, mnemonic, mode.String())

		if other, exists := seen[mode.LongCode()]; exists {
			t.Fatalf("%s and %s share long code %03b", mnemonic, other, code)
		}

		seen[mode.LongCode()] = mnemonic
	}

	assert.Len(t, assembler.AddrModes(), 8)

	_, ok := assembler.ParseAddrMode("q")
	assert.False(t, ok)

	mode, ok := assembler.ParseAddrMode("SXF")
	assert.True(t, ok)
	assert.Equal(t, assembler.ADDRMODE_STACK_INDEXED_DEFERRED, mode)
}

func TestAddrModeShortCode(t *testing.T) {
	for _, mode := range assembler.AddrModes() {
		code, err := mode.ShortCode()

		switch mode {
		case assembler.ADDRMODE_IMMEDIATE:
			assert.NoError(t, err)
			assert.Equal(t, uint8(0), code)
		case assembler.ADDRMODE_INDEXED:
			assert.NoError(t, err)
			assert.Equal(t, uint8(1), code)
		default:
			_, ok := err.(*assembler.IllegalAddrModeError)
			assert.True(t, ok, mode.String())
		}
	}
}

func TestRegister(t *testing.T) {
	assert.Equal(t, uint8(0), assembler.REGISTER_A.Bit())
	assert.Equal(t, uint8(1), assembler.REGISTER_X.Bit())
	assert.Equal(t, "X", assembler.REGISTER_X.String())
}

func TestAddressTable(t *testing.T) {
	table := assembler.NewAddressTable()

	_, replaced := table.Insert("b", 4)
	assert.False(t, replaced)

	_, replaced = table.Insert("a", 2)
	assert.False(t, replaced)

	previous, replaced := table.Insert("b", 6)
	assert.True(t, replaced)
	assert.Equal(t, encoding.Word(4), previous)

	assert.Equal(t, 2, table.Len())
	assert.Equal(t, []string{"a", "b"}, table.Labels())

	value, err := table.Resolve(assembler.Address{
		Location: assembler.LabelLocation{Name: "b"},
	})
	assert.NoError(t, err)
	assert.Equal(t, encoding.Word(6), value)

	value, err = table.Resolve(assembler.Address{
		Location: assembler.MemoryLocation{Value: 0xBEEF},
	})
	assert.NoError(t, err)
	assert.Equal(t, encoding.Word(0xBEEF), value)

	_, err = table.Resolve(assembler.Address{
		Location: assembler.LabelLocation{Name: "c"},
	})
	undefined, ok := err.(*assembler.UndefinedSymbolError)
	assert.True(t, ok)
	assert.Equal(t, "c", undefined.Received)
}

func ident(value string) assembler.Token {
	return assembler.Token{Type: assembler.TOKEN_IDENT, Value: value}
}

func literal(value string) assembler.Token {
	return assembler.Token{Type: assembler.TOKEN_LITERAL, Value: value}
}

func comma() assembler.Token {
	return assembler.Token{Type: assembler.TOKEN_COMMA, Value: ","}
}

func TestParseInstruction(t *testing.T) {
	instruction, err := assembler.ParseInstruction([]assembler.Token{
		ident("stbytex"), ident("target"), comma(), ident("sf"),
	})
	assert.NoError(t, err)
	assert.Equal(t, assembler.INSTRUCTION_STBYTEr, instruction.Type)
	assert.Equal(t, assembler.REGISTER_X, instruction.Register)
	assert.Equal(t, assembler.ADDRMODE_STACK_RELATIVE_DEFERRED, instruction.Address.Mode)
	assert.Equal(t, assembler.LabelLocation{Name: "target"}, instruction.Address.Location)
	assert.Equal(t, 3, instruction.ByteSize())

	_, err = instruction.Bytes(assembler.NewAddressTable())
	_, ok := err.(*assembler.UndefinedSymbolError)
	assert.True(t, ok)

	table := assembler.NewAddressTable()
	table.Insert("target", 0x0A0B)

	encoded, err := instruction.Bytes(table)
	assert.NoError(t, err)
	assert.Equal(t, []byte{0xFC, 0x0A, 0x0B}, encoded)

	instruction, err = assembler.ParseInstruction([]assembler.Token{
		ident("BR"), literal("0x20"),
	})
	assert.NoError(t, err)
	assert.Equal(t, assembler.ADDRMODE_IMMEDIATE, instruction.Address.Mode)
	assert.Equal(t, "BR 0x0020,i", instruction.String())

	_, err = assembler.ParseInstruction([]assembler.Token{
		ident("STA"), literal("5"), comma(), ident("i"),
	})
	illegal, ok := err.(*assembler.IllegalAddrModeError)
	assert.True(t, ok)
	assert.Equal(t, assembler.ADDRMODE_IMMEDIATE, illegal.Received)
	assert.Len(t, illegal.Required, 7)
}

func TestCountInstruction(t *testing.T) {
	instruction := assembler.NewCountInstruction(assembler.INSTRUCTION_RETn, 7)

	encoded, err := instruction.Bytes(assembler.NewAddressTable())
	assert.NoError(t, err)
	assert.Equal(t, []byte{0x5F}, encoded)
	assert.Equal(t, "RET7", instruction.String())

	expectPanic := func(name string, fn func()) {
		t.Run(name, func(t *testing.T) {
			defer func() {
				if recover() == nil {
					t.Fatalf("%s did not panic", name)
				}
			}()

			fn()
		})
	}

	expectPanic("RET8", func() {
		assembler.NewCountInstruction(assembler.INSTRUCTION_RETn, 8)
	})

	expectPanic("NOP4", func() {
		assembler.NewCountInstruction(assembler.INSTRUCTION_NOPn, 4)
	})

	expectPanic("EncodeNOP4", func() {
		corrupt := &assembler.Instruction{
			Type:  assembler.INSTRUCTION_NOPn,
			Count: encoding.NewByte(4),
		}
		_, _ = corrupt.Bytes(assembler.NewAddressTable())
	})

	expectPanic("NoCount", func() {
		assembler.NewCountInstruction(assembler.INSTRUCTION_STOP, 0)
	})
}

func TestParseStatement(t *testing.T) {
	_, err := assembler.ParseStatement(nil)
	_, ok := err.(*assembler.TokensEmptyError)
	assert.True(t, ok)

	_, err = assembler.ParseStatementLine(nil)
	_, ok = err.(*assembler.TokensEmptyError)
	assert.True(t, ok)

	_, err = assembler.ParseStatement([]assembler.Token{comma()})
	_, ok = err.(*assembler.InvalidTokenTypeError)
	assert.True(t, ok)

	statement, err := assembler.ParseStatement([]assembler.Token{
		{Type: assembler.TOKEN_DIRECTIVE, Value: ".word"}, literal("5"),
	})
	assert.NoError(t, err)

	directive, ok := statement.(*assembler.Directive)
	assert.True(t, ok)
	assert.Equal(t, assembler.DIRECTIVE_WORD, directive.Type)
	assert.Equal(t, ".WORD 0x0005", directive.String())

	line, err := assembler.ParseStatementLine([]assembler.Token{
		{Type: assembler.TOKEN_LABEL, Value: "start"}, ident("STOP"),
	})
	assert.NoError(t, err)
	assert.True(t, line.HasLabel())
	assert.Equal(t, "start", line.Label)
	assert.Equal(t, 1, line.ByteSize())
}
