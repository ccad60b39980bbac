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

package assembler

import (
	"fmt"
	"strings"

	"github.com/lassandro/gopep8/pkg/encoding"
)

type opcode struct {
	Name      string
	Specifier uint8
	Shape     OperandShape
	Modes     AddrModeSet
	CountBits uint8
}

var (
	allModes = newAddrModeSet(AddrModes()...)

	noImmediateModes = newAddrModeSet(
		ADDRMODE_DIRECT,
		ADDRMODE_INDIRECT,
		ADDRMODE_STACK_RELATIVE,
		ADDRMODE_STACK_RELATIVE_DEFERRED,
		ADDRMODE_INDEXED,
		ADDRMODE_STACK_INDEXED,
		ADDRMODE_STACK_INDEXED_DEFERRED,
	)

	stringModes = newAddrModeSet(
		ADDRMODE_DIRECT,
		ADDRMODE_INDIRECT,
		ADDRMODE_STACK_RELATIVE_DEFERRED,
	)

	immediateOnly = newAddrModeSet(ADDRMODE_IMMEDIATE)
)

var opcodes = map[InstructionType]opcode{
	INSTRUCTION_STOP:    {"STOP", 0b00000000, SHAPE_NONE, nil, 0},                            // 00000000
	INSTRUCTION_RETTR:   {"RETTR", 0b00000001, SHAPE_NONE, nil, 0},                           // 00000001
	INSTRUCTION_MOVSPA:  {"MOVSPA", 0b00000010, SHAPE_NONE, nil, 0},                          // 00000010
	INSTRUCTION_MOVFLGA: {"MOVFLGA", 0b00000011, SHAPE_NONE, nil, 0},                         // 00000011
	INSTRUCTION_BR:      {"BR", 0b00000100, SHAPE_SHORT_ADDRESS, nil, 0},                     // 0000010a
	INSTRUCTION_BRLE:    {"BRLE", 0b00000110, SHAPE_SHORT_ADDRESS, nil, 0},                   // 0000011a
	INSTRUCTION_BRLT:    {"BRLT", 0b00001000, SHAPE_SHORT_ADDRESS, nil, 0},                   // 0000100a
	INSTRUCTION_BREQ:    {"BREQ", 0b00001010, SHAPE_SHORT_ADDRESS, nil, 0},                   // 0000101a
	INSTRUCTION_BRNE:    {"BRNE", 0b00001100, SHAPE_SHORT_ADDRESS, nil, 0},                   // 0000110a
	INSTRUCTION_BRGE:    {"BRGE", 0b00001110, SHAPE_SHORT_ADDRESS, nil, 0},                   // 0000111a
	INSTRUCTION_BRGT:    {"BRGT", 0b00010000, SHAPE_SHORT_ADDRESS, nil, 0},                   // 0001000a
	INSTRUCTION_BRV:     {"BRV", 0b00010010, SHAPE_SHORT_ADDRESS, nil, 0},                    // 0001001a
	INSTRUCTION_BRC:     {"BRC", 0b00010100, SHAPE_SHORT_ADDRESS, nil, 0},                    // 0001010a
	INSTRUCTION_CALL:    {"CALL", 0b00010110, SHAPE_SHORT_ADDRESS, nil, 0},                   // 0001011a
	INSTRUCTION_NOTr:    {"NOT", 0b00011000, SHAPE_REGISTER, nil, 0},                         // 0001100r
	INSTRUCTION_NEGr:    {"NEG", 0b00011010, SHAPE_REGISTER, nil, 0},                         // 0001101r
	INSTRUCTION_ASLr:    {"ASL", 0b00011100, SHAPE_REGISTER, nil, 0},                         // 0001110r
	INSTRUCTION_ASRr:    {"ASR", 0b00011110, SHAPE_REGISTER, nil, 0},                         // 0001111r
	INSTRUCTION_ROLr:    {"ROL", 0b00100000, SHAPE_REGISTER, nil, 0},                         // 0010000r
	INSTRUCTION_RORr:    {"ROR", 0b00100010, SHAPE_REGISTER, nil, 0},                         // 0010001r
	INSTRUCTION_NOPn:    {"NOP", 0b00100100, SHAPE_COUNT, nil, 2},                            // 001001nn
	INSTRUCTION_NOP:     {"NOP", 0b00101000, SHAPE_LONG_ADDRESS, immediateOnly, 0},           // 00101aaa
	INSTRUCTION_DECI:    {"DECI", 0b00110000, SHAPE_LONG_ADDRESS, noImmediateModes, 0},       // 00110aaa
	INSTRUCTION_DECO:    {"DECO", 0b00111000, SHAPE_LONG_ADDRESS, allModes, 0},               // 00111aaa
	INSTRUCTION_STRO:    {"STRO", 0b01000000, SHAPE_LONG_ADDRESS, stringModes, 0},            // 01000aaa
	INSTRUCTION_CHARI:   {"CHARI", 0b01001000, SHAPE_LONG_ADDRESS, noImmediateModes, 0},      // 01001aaa
	INSTRUCTION_CHARO:   {"CHARO", 0b01010000, SHAPE_LONG_ADDRESS, allModes, 0},              // 01010aaa
	INSTRUCTION_RETn:    {"RET", 0b01011000, SHAPE_COUNT, nil, 3},                            // 01011nnn
	INSTRUCTION_ADDSP:   {"ADDSP", 0b01100000, SHAPE_LONG_ADDRESS, allModes, 0},              // 01100aaa
	INSTRUCTION_SUBSP:   {"SUBSP", 0b01101000, SHAPE_LONG_ADDRESS, allModes, 0},              // 01101aaa
	INSTRUCTION_ADDr:    {"ADD", 0b01110000, SHAPE_REGISTER_ADDRESS, allModes, 0},            // 0111raaa
	INSTRUCTION_SUBr:    {"SUB", 0b10000000, SHAPE_REGISTER_ADDRESS, allModes, 0},            // 1000raaa
	INSTRUCTION_ANDr:    {"AND", 0b10010000, SHAPE_REGISTER_ADDRESS, allModes, 0},            // 1001raaa
	INSTRUCTION_ORr:     {"OR", 0b10100000, SHAPE_REGISTER_ADDRESS, allModes, 0},             // 1010raaa
	INSTRUCTION_CPr:     {"CP", 0b10110000, SHAPE_REGISTER_ADDRESS, allModes, 0},             // 1011raaa
	INSTRUCTION_LDr:     {"LD", 0b11000000, SHAPE_REGISTER_ADDRESS, allModes, 0},             // 1100raaa
	INSTRUCTION_LDBYTEr: {"LDBYTE", 0b11010000, SHAPE_REGISTER_ADDRESS, allModes, 0},         // 1101raaa
	INSTRUCTION_STr:     {"ST", 0b11100000, SHAPE_REGISTER_ADDRESS, noImmediateModes, 0},     // 1110raaa
	INSTRUCTION_STBYTEr: {"STBYTE", 0b11110000, SHAPE_REGISTER_ADDRESS, noImmediateModes, 0}, // 1111raaa
}

type mnemonic struct {
	Type     InstructionType
	Register Register
	Count    uint8
}

// Keyed by upper case mnemonic. Register and count variants are spelled out
// since the suffix selects the operand.
var mnemonics = map[string]mnemonic{
	"STOP":    {INSTRUCTION_STOP, 0, 0},
	"RETTR":   {INSTRUCTION_RETTR, 0, 0},
	"MOVSPA":  {INSTRUCTION_MOVSPA, 0, 0},
	"MOVFLGA": {INSTRUCTION_MOVFLGA, 0, 0},
	"BR":      {INSTRUCTION_BR, 0, 0},
	"BRLE":    {INSTRUCTION_BRLE, 0, 0},
	"BRLT":    {INSTRUCTION_BRLT, 0, 0},
	"BREQ":    {INSTRUCTION_BREQ, 0, 0},
	"BRNE":    {INSTRUCTION_BRNE, 0, 0},
	"BRGE":    {INSTRUCTION_BRGE, 0, 0},
	"BRGT":    {INSTRUCTION_BRGT, 0, 0},
	"BRV":     {INSTRUCTION_BRV, 0, 0},
	"BRC":     {INSTRUCTION_BRC, 0, 0},
	"CALL":    {INSTRUCTION_CALL, 0, 0},
	"NOTA":    {INSTRUCTION_NOTr, REGISTER_A, 0},
	"NOTX":    {INSTRUCTION_NOTr, REGISTER_X, 0},
	"NEGA":    {INSTRUCTION_NEGr, REGISTER_A, 0},
	"NEGX":    {INSTRUCTION_NEGr, REGISTER_X, 0},
	"ASLA":    {INSTRUCTION_ASLr, REGISTER_A, 0},
	"ASLX":    {INSTRUCTION_ASLr, REGISTER_X, 0},
	"ASRA":    {INSTRUCTION_ASRr, REGISTER_A, 0},
	"ASRX":    {INSTRUCTION_ASRr, REGISTER_X, 0},
	"ROLA":    {INSTRUCTION_ROLr, REGISTER_A, 0},
	"ROLX":    {INSTRUCTION_ROLr, REGISTER_X, 0},
	"RORA":    {INSTRUCTION_RORr, REGISTER_A, 0},
	"RORX":    {INSTRUCTION_RORr, REGISTER_X, 0},
	"NOP0":    {INSTRUCTION_NOPn, 0, 0},
	"NOP1":    {INSTRUCTION_NOPn, 0, 1},
	"NOP2":    {INSTRUCTION_NOPn, 0, 2},
	"NOP3":    {INSTRUCTION_NOPn, 0, 3},
	"NOP":     {INSTRUCTION_NOP, 0, 0},
	"DECI":    {INSTRUCTION_DECI, 0, 0},
	"DECO":    {INSTRUCTION_DECO, 0, 0},
	"STRO":    {INSTRUCTION_STRO, 0, 0},
	"CHARI":   {INSTRUCTION_CHARI, 0, 0},
	"CHARO":   {INSTRUCTION_CHARO, 0, 0},
	"RET0":    {INSTRUCTION_RETn, 0, 0},
	"RET1":    {INSTRUCTION_RETn, 0, 1},
	"RET2":    {INSTRUCTION_RETn, 0, 2},
	"RET3":    {INSTRUCTION_RETn, 0, 3},
	"RET4":    {INSTRUCTION_RETn, 0, 4},
	"RET5":    {INSTRUCTION_RETn, 0, 5},
	"RET6":    {INSTRUCTION_RETn, 0, 6},
	"RET7":    {INSTRUCTION_RETn, 0, 7},
	"ADDSP":   {INSTRUCTION_ADDSP, 0, 0},
	"SUBSP":   {INSTRUCTION_SUBSP, 0, 0},
	"ADDA":    {INSTRUCTION_ADDr, REGISTER_A, 0},
	"ADDX":    {INSTRUCTION_ADDr, REGISTER_X, 0},
	"SUBA":    {INSTRUCTION_SUBr, REGISTER_A, 0},
	"SUBX":    {INSTRUCTION_SUBr, REGISTER_X, 0},
	"ANDA":    {INSTRUCTION_ANDr, REGISTER_A, 0},
	"ANDX":    {INSTRUCTION_ANDr, REGISTER_X, 0},
	"ORA":     {INSTRUCTION_ORr, REGISTER_A, 0},
	"ORX":     {INSTRUCTION_ORr, REGISTER_X, 0},
	"CPA":     {INSTRUCTION_CPr, REGISTER_A, 0},
	"CPX":     {INSTRUCTION_CPr, REGISTER_X, 0},
	"LDA":     {INSTRUCTION_LDr, REGISTER_A, 0},
	"LDX":     {INSTRUCTION_LDr, REGISTER_X, 0},
	"LDBYTEA": {INSTRUCTION_LDBYTEr, REGISTER_A, 0},
	"LDBYTEX": {INSTRUCTION_LDBYTEr, REGISTER_X, 0},
	"STA":     {INSTRUCTION_STr, REGISTER_A, 0},
	"STX":     {INSTRUCTION_STr, REGISTER_X, 0},
	"STBYTEA": {INSTRUCTION_STBYTEr, REGISTER_A, 0},
	"STBYTEX": {INSTRUCTION_STBYTEr, REGISTER_X, 0},
}

func parseInstruction(ident string) (mnemonic, bool) {
	result, ok := mnemonics[strings.ToUpper(ident)]
	return result, ok
}

type Instruction struct {
	Type     InstructionType
	Register Register
	Count    encoding.Byte
	Address  Address
	Position Cursor
}

// Count operands come from the mnemonic table, never from source text, so a
// count wider than its field is a bug in the table.
func checkCount(instructionType InstructionType, count encoding.Byte) {
	op := opcodes[instructionType]
	limit := encoding.NewByte(1 << op.CountBits)

	if !count.Less(limit) {
		panic(fmt.Sprintf(
			"count for %s is too large: %d", op.Name, count.Uint8(),
		))
	}
}

func NewCountInstruction(
	instructionType InstructionType, count uint8,
) *Instruction {
	if opcodes[instructionType].Shape != SHAPE_COUNT {
		panic(fmt.Sprintf("instruction %d takes no count", instructionType))
	}

	checkCount(instructionType, encoding.NewByte(count))

	return &Instruction{Type: instructionType, Count: encoding.NewByte(count)}
}

func ParseInstruction(tokens []Token) (*Instruction, error) {
	if len(tokens) == 0 {
		return nil, &TokensEmptyError{}
	}

	keyword := tokens[0]
	operands := tokens[1:]

	if keyword.Type != TOKEN_IDENT {
		return nil, &InvalidTokenTypeError{keyword.Position, keyword.Type}
	}

	entry, ok := parseInstruction(keyword.Value)

	if !ok {
		return nil, &InvalidInstructionError{keyword.Position, keyword.Value}
	}

	op := opcodes[entry.Type]

	var instruction *Instruction

	switch op.Shape {
	case SHAPE_NONE, SHAPE_REGISTER:
		instruction = &Instruction{Type: entry.Type, Register: entry.Register}

	case SHAPE_COUNT:
		instruction = NewCountInstruction(entry.Type, entry.Count)

	case SHAPE_SHORT_ADDRESS:
		address, err := parseShortAddress(operands, keyword.Position)

		if err != nil {
			return nil, err
		}

		instruction = &Instruction{Type: entry.Type, Address: address}

	case SHAPE_LONG_ADDRESS, SHAPE_REGISTER_ADDRESS:
		address, err := parseLongAddress(operands, op.Modes, keyword.Position)

		if err != nil {
			return nil, err
		}

		instruction = &Instruction{
			Type:     entry.Type,
			Register: entry.Register,
			Address:  address,
		}
	}

	switch op.Shape {
	case SHAPE_NONE, SHAPE_REGISTER, SHAPE_COUNT:
		if count := len(operands); count != 0 {
			return nil, &InvalidNumArgumentsError{keyword.Position, 0, count}
		}
	}

	instruction.Position = keyword.Position

	return instruction, nil
}

func (i *Instruction) Specifier() uint8 {
	return opcodes[i.Type].Specifier
}

func (i *Instruction) Shape() OperandShape {
	return opcodes[i.Type].Shape
}

func (i *Instruction) ByteSize() int {
	switch i.Shape() {
	case SHAPE_NONE, SHAPE_REGISTER, SHAPE_COUNT:
		return 1
	}

	return 3
}

func (i *Instruction) Bytes(symbols SymbolLookup) ([]byte, error) {
	specifier := i.Specifier()

	switch i.Shape() {
	// STOP |00000000| and friends
	case SHAPE_NONE:
		return []byte{specifier}, nil

	// NOTr |0001100r|
	case SHAPE_REGISTER:
		return []byte{specifier + i.Register.Bit()}, nil

	// RETn |01011nnn|
	case SHAPE_COUNT:
		checkCount(i.Type, i.Count)
		return []byte{encoding.NewByte(specifier).Add(i.Count).Uint8()}, nil

	// BR   |0000010a|oprnd16|
	case SHAPE_SHORT_ADDRESS:
		code, err := i.Address.Mode.ShortCode()

		if err != nil {
			return nil, err
		}

		return i.withOperand(specifier+code, symbols)

	// DECI |00110aaa|oprnd16|
	case SHAPE_LONG_ADDRESS:
		return i.withOperand(specifier+i.Address.Mode.LongCode(), symbols)

	// ADDr |0111raaa|oprnd16|
	case SHAPE_REGISTER_ADDRESS:
		return i.withOperand(
			specifier+(i.Register.Bit()<<3)+i.Address.Mode.LongCode(),
			symbols,
		)
	}

	panic(fmt.Sprintf("instruction %d has no operand shape", i.Type))
}

func (i *Instruction) withOperand(
	specifier uint8, symbols SymbolLookup,
) ([]byte, error) {
	operand, err := resolve(symbols, i.Address)

	if err != nil {
		return nil, err
	}

	bytes := operand.Bytes()

	return []byte{specifier, bytes[0], bytes[1]}, nil
}

func (i *Instruction) String() string {
	op := opcodes[i.Type]

	switch op.Shape {
	case SHAPE_REGISTER:
		return op.Name + i.Register.String()
	case SHAPE_COUNT:
		return fmt.Sprintf("%s%d", op.Name, i.Count.Uint8())
	case SHAPE_SHORT_ADDRESS, SHAPE_LONG_ADDRESS:
		return op.Name + " " + i.Address.String()
	case SHAPE_REGISTER_ADDRESS:
		return op.Name + i.Register.String() + " " + i.Address.String()
	}

	return op.Name
}
