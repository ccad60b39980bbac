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
)

type TokenType uint
type InstructionType uint
type DirectiveType uint
type OperandShape uint

type Cursor struct {
	Line     int
	Column   int
	Byte     int64
	Size     int64
	LineByte int64
}

type Token struct {
	Type     TokenType
	Position Cursor
	Value    string
}

// Debugging information emitted alongside a binary. Symbols maps each
// statement address to the byte offset of its source line, Labels maps label
// addresses to their names.
type SymTable struct {
	Source  string
	Symbols map[uint16]int64
	Labels  map[uint16]string
}

func NewSymTable(source string) *SymTable {
	return &SymTable{
		Source:  source,
		Symbols: make(map[uint16]int64),
		Labels:  make(map[uint16]string),
	}
}

func (t TokenType) String() string {
	switch t {
	case TOKEN_IDENT:
		return "Identifier"
	case TOKEN_DIRECTIVE:
		return "Directive"
	case TOKEN_STRING:
		return "String"
	case TOKEN_LITERAL:
		return "Literal"
	case TOKEN_CHAR:
		return "Character"
	case TOKEN_COMMA:
		return "Comma"
	case TOKEN_LABEL:
		return "Label"
	}

	return "<invalid>"
}

func joinTokenTypes(types []TokenType) string {
	names := make([]string, 0, len(types))

	for _, tokenType := range types {
		names = append(names, tokenType.String())
	}

	switch count := len(names); {
	case count == 0:
		return "<none>"
	case count == 1:
		return names[0]
	case count == 2:
		return names[0] + " or " + names[1]
	default:
		return strings.Join(names[:count-1], ", ") + ", or " + names[count-1]
	}
}

type TokenError interface {
	GetPosition() Cursor
}

type UnexpectedCharacterError struct {
	Position Cursor
	Received rune
}

func (err *UnexpectedCharacterError) GetPosition() Cursor {
	return err.Position
}

func (err *UnexpectedCharacterError) Error() string {
	return fmt.Sprintf(
		"%02d:%02d: Unexpected character %q",
		err.Position.Line,
		err.Position.Column,
		err.Received,
	)
}

type OversizedCharacterError struct {
	Position Cursor
}

func (err *OversizedCharacterError) GetPosition() Cursor {
	return err.Position
}

func (err *OversizedCharacterError) Error() string {
	return fmt.Sprintf(
		"%02d:%02d: Character exceeds ASCII limit",
		err.Position.Line,
		err.Position.Column,
	)
}

type InvalidStringError struct {
	Position Cursor
}

func (err *InvalidStringError) GetPosition() Cursor {
	return err.Position
}

func (err *InvalidStringError) Error() string {
	return fmt.Sprintf(
		"%02d:%02d: Invalid string literal",
		err.Position.Line,
		err.Position.Column,
	)
}

type InvalidCharError struct {
	Position Cursor
}

func (err *InvalidCharError) GetPosition() Cursor {
	return err.Position
}

func (err *InvalidCharError) Error() string {
	return fmt.Sprintf(
		"%02d:%02d: Invalid character literal",
		err.Position.Line,
		err.Position.Column,
	)
}

type InvalidEscapeError struct {
	Position Cursor
	Received string
}

func (err *InvalidEscapeError) GetPosition() Cursor {
	return err.Position
}

func (err *InvalidEscapeError) Error() string {
	return fmt.Sprintf(
		"%02d:%02d: Invalid escape sequence '\\%s'",
		err.Position.Line,
		err.Position.Column,
		err.Received,
	)
}

type InvalidLiteralError struct {
	Position Cursor
}

func (err *InvalidLiteralError) GetPosition() Cursor {
	return err.Position
}

func (err *InvalidLiteralError) Error() string {
	return fmt.Sprintf(
		"%02d:%02d: Invalid numeric literal",
		err.Position.Line,
		err.Position.Column,
	)
}

type OversizedLiteralError struct {
	Position Cursor
	Required interface{}
	Received interface{}
}

func (err *OversizedLiteralError) GetPosition() Cursor {
	return err.Position
}

func (err *OversizedLiteralError) Error() string {
	return fmt.Sprintf(
		"%02d:%02d: Literal exceeds allowed size\n\twant:%v\n\thave:%v",
		err.Position.Line,
		err.Position.Column,
		err.Required,
		err.Received,
	)
}

type InvalidAddressTokenTypeError struct {
	Position Cursor
	Received TokenType
}

func (err *InvalidAddressTokenTypeError) GetPosition() Cursor {
	return err.Position
}

func (err *InvalidAddressTokenTypeError) Error() string {
	return fmt.Sprintf(
		"%02d:%02d: Invalid address operand\n\twant:%s\n\thave:%s",
		err.Position.Line,
		err.Position.Column,
		joinTokenTypes([]TokenType{
			TOKEN_CHAR, TOKEN_STRING, TOKEN_LITERAL, TOKEN_IDENT,
		}),
		err.Received,
	)
}

type InvalidAddrModeStringError struct {
	Position Cursor
	Received string
}

func (err *InvalidAddrModeStringError) GetPosition() Cursor {
	return err.Position
}

func (err *InvalidAddrModeStringError) Error() string {
	return fmt.Sprintf(
		"%02d:%02d: Invalid addressing mode '%s'",
		err.Position.Line,
		err.Position.Column,
		err.Received,
	)
}

type IllegalAddrModeError struct {
	Position Cursor
	Required []AddrMode
	Received AddrMode
}

func (err *IllegalAddrModeError) GetPosition() Cursor {
	return err.Position
}

func (err *IllegalAddrModeError) Error() string {
	required := make([]string, 0, len(err.Required))

	for _, mode := range err.Required {
		required = append(required, mode.String())
	}

	return fmt.Sprintf(
		"%02d:%02d: Illegal addressing mode\n\twant:%s\n\thave:%s",
		err.Position.Line,
		err.Position.Column,
		strings.Join(required, ", "),
		err.Received,
	)
}

type MalformedAddrModeError struct {
	Position Cursor
	Received int
}

func (err *MalformedAddrModeError) GetPosition() Cursor {
	return err.Position
}

func (err *MalformedAddrModeError) Error() string {
	return fmt.Sprintf(
		"%02d:%02d: Malformed address operand\n\twant:address, mode\n\thave:%d tokens",
		err.Position.Line,
		err.Position.Column,
		err.Received,
	)
}

type InvalidInstructionError struct {
	Position Cursor
	Received string
}

func (err *InvalidInstructionError) GetPosition() Cursor {
	return err.Position
}

func (err *InvalidInstructionError) Error() string {
	return fmt.Sprintf(
		"%02d:%02d: Unknown instruction '%s'",
		err.Position.Line,
		err.Position.Column,
		err.Received,
	)
}

type InvalidDotCommandError struct {
	Position Cursor
	Received string
}

func (err *InvalidDotCommandError) GetPosition() Cursor {
	return err.Position
}

func (err *InvalidDotCommandError) Error() string {
	return fmt.Sprintf(
		"%02d:%02d: Unknown dot command '%s'",
		err.Position.Line,
		err.Position.Column,
		err.Received,
	)
}

type UnsupportedDotCommandError struct {
	Position Cursor
	Received string
}

func (err *UnsupportedDotCommandError) GetPosition() Cursor {
	return err.Position
}

func (err *UnsupportedDotCommandError) Error() string {
	return fmt.Sprintf(
		"%02d:%02d: Dot command '%s' is not supported",
		err.Position.Line,
		err.Position.Column,
		err.Received,
	)
}

type InvalidArgumentsError struct {
	Position Cursor
	Required []TokenType
	Received []TokenType
}

func (err *InvalidArgumentsError) GetPosition() Cursor {
	return err.Position
}

func (err *InvalidArgumentsError) Error() string {
	return fmt.Sprintf(
		"%02d:%02d: Invalid arguments\n\twant:%s\n\thave:%s",
		err.Position.Line,
		err.Position.Column,
		joinTokenTypes(err.Required),
		joinTokenTypes(err.Received),
	)
}

type InvalidNumArgumentsError struct {
	Position Cursor
	Required int
	Received int
}

func (err *InvalidNumArgumentsError) GetPosition() Cursor {
	return err.Position
}

func (err *InvalidNumArgumentsError) Error() string {
	return fmt.Sprintf(
		"%02d:%02d: Invalid number of arguments\n\twant:%d\n\thave:%v",
		err.Position.Line,
		err.Position.Column,
		err.Required,
		err.Received,
	)
}

type TokensEmptyError struct {
	Position Cursor
}

func (err *TokensEmptyError) GetPosition() Cursor {
	return err.Position
}

func (err *TokensEmptyError) Error() string {
	return fmt.Sprintf(
		"%02d:%02d: Missing statement",
		err.Position.Line,
		err.Position.Column,
	)
}

type InvalidTokenTypeError struct {
	Position Cursor
	Received TokenType
}

func (err *InvalidTokenTypeError) GetPosition() Cursor {
	return err.Position
}

func (err *InvalidTokenTypeError) Error() string {
	return fmt.Sprintf(
		"%02d:%02d: Invalid statement\n\twant:%s\n\thave:%s",
		err.Position.Line,
		err.Position.Column,
		joinTokenTypes([]TokenType{TOKEN_IDENT, TOKEN_DIRECTIVE}),
		err.Received,
	)
}

type RedeclaredLabelError struct {
	Position Cursor
	Received string
}

func (err *RedeclaredLabelError) GetPosition() Cursor {
	return err.Position
}

func (err *RedeclaredLabelError) Error() string {
	return fmt.Sprintf(
		"%02d:%02d: Redeclaration of label '%s'",
		err.Position.Line,
		err.Position.Column,
		err.Received,
	)
}

type UndefinedSymbolError struct {
	Position Cursor
	Received string
}

func (err *UndefinedSymbolError) GetPosition() Cursor {
	return err.Position
}

func (err *UndefinedSymbolError) Error() string {
	return fmt.Sprintf(
		"%02d:%02d: Undefined symbol '%s'",
		err.Position.Line,
		err.Position.Column,
		err.Received,
	)
}

type OversizedBinaryError struct {
	Received int
}

func (err *OversizedBinaryError) Error() string {
	return fmt.Sprintf(
		"Binary exceeds allowed size\n\twant:%d\n\thave:%d",
		MAX_PROGRAM_SIZE,
		err.Received,
	)
}
