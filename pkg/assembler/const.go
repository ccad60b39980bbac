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

const (
	TOKEN_NONE TokenType = iota
	TOKEN_IDENT
	TOKEN_DIRECTIVE
	TOKEN_STRING
	TOKEN_LITERAL
	TOKEN_CHAR
	TOKEN_COMMA
	TOKEN_LABEL
)

const (
	REGISTER_A Register = iota
	REGISTER_X
)

// Ordered by their 3-bit long form encoding
const (
	ADDRMODE_IMMEDIATE AddrMode = iota
	ADDRMODE_DIRECT
	ADDRMODE_INDIRECT
	ADDRMODE_STACK_RELATIVE
	ADDRMODE_STACK_RELATIVE_DEFERRED
	ADDRMODE_INDEXED
	ADDRMODE_STACK_INDEXED
	ADDRMODE_STACK_INDEXED_DEFERRED
)

const (
	SHAPE_NONE OperandShape = iota
	SHAPE_SHORT_ADDRESS
	SHAPE_REGISTER
	SHAPE_COUNT
	SHAPE_LONG_ADDRESS
	SHAPE_REGISTER_ADDRESS
)

const (
	INSTRUCTION_INVALID InstructionType = iota
	INSTRUCTION_STOP
	INSTRUCTION_RETTR
	INSTRUCTION_MOVSPA
	INSTRUCTION_MOVFLGA
	INSTRUCTION_BR
	INSTRUCTION_BRLE
	INSTRUCTION_BRLT
	INSTRUCTION_BREQ
	INSTRUCTION_BRNE
	INSTRUCTION_BRGE
	INSTRUCTION_BRGT
	INSTRUCTION_BRV
	INSTRUCTION_BRC
	INSTRUCTION_CALL
	INSTRUCTION_NOTr
	INSTRUCTION_NEGr
	INSTRUCTION_ASLr
	INSTRUCTION_ASRr
	INSTRUCTION_ROLr
	INSTRUCTION_RORr
	INSTRUCTION_NOPn
	INSTRUCTION_NOP
	INSTRUCTION_DECI
	INSTRUCTION_DECO
	INSTRUCTION_STRO
	INSTRUCTION_CHARI
	INSTRUCTION_CHARO
	INSTRUCTION_RETn
	INSTRUCTION_ADDSP
	INSTRUCTION_SUBSP
	INSTRUCTION_ADDr
	INSTRUCTION_SUBr
	INSTRUCTION_ANDr
	INSTRUCTION_ORr
	INSTRUCTION_CPr
	INSTRUCTION_LDr
	INSTRUCTION_LDBYTEr
	INSTRUCTION_STr
	INSTRUCTION_STBYTEr
)

const (
	DIRECTIVE_INVALID DirectiveType = iota
	DIRECTIVE_ADDRSS
	DIRECTIVE_ASCII
	DIRECTIVE_BLOCK
	DIRECTIVE_BURN
	DIRECTIVE_BYTE
	DIRECTIVE_END
	DIRECTIVE_EQUATE
	DIRECTIVE_WORD
)

// Largest image the 16-bit address space can hold
const MAX_PROGRAM_SIZE = 1 << 16
