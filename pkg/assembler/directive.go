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
	"strconv"
	"strings"

	"github.com/lassandro/gopep8/pkg/encoding"
)

func parseDirective(ident string) DirectiveType {
	if strings.EqualFold(ident, ".ADDRSS") {
		return DIRECTIVE_ADDRSS
	} else if strings.EqualFold(ident, ".ASCII") {
		return DIRECTIVE_ASCII
	} else if strings.EqualFold(ident, ".BLOCK") {
		return DIRECTIVE_BLOCK
	} else if strings.EqualFold(ident, ".BURN") {
		return DIRECTIVE_BURN
	} else if strings.EqualFold(ident, ".BYTE") {
		return DIRECTIVE_BYTE
	} else if strings.EqualFold(ident, ".END") {
		return DIRECTIVE_END
	} else if strings.EqualFold(ident, ".EQUATE") {
		return DIRECTIVE_EQUATE
	} else if strings.EqualFold(ident, ".WORD") {
		return DIRECTIVE_WORD
	}

	return DIRECTIVE_INVALID
}

type Directive struct {
	Type     DirectiveType
	Label    string
	Text     string
	Count    uint16
	Value    encoding.Word
	Position Cursor

	// Location of the .ADDRSS operand.
	LabelPosition Cursor
}

func tokenTypes(tokens []Token) []TokenType {
	types := make([]TokenType, 0, len(tokens))

	for _, token := range tokens {
		types = append(types, token.Type)
	}

	return types
}

// Fails unless operands is exactly one token of one of the allowed types.
func singleOperand(
	keyword *Token, operands []Token, allowed ...TokenType,
) (*Token, error) {
	if len(operands) == 1 {
		for _, tokenType := range allowed {
			if operands[0].Type == tokenType {
				return &operands[0], nil
			}
		}
	}

	return nil, &InvalidArgumentsError{
		keyword.Position, allowed, tokenTypes(operands),
	}
}

func ParseDirective(tokens []Token) (*Directive, error) {
	if len(tokens) == 0 {
		return nil, &TokensEmptyError{}
	}

	keyword := &tokens[0]
	operands := tokens[1:]

	if keyword.Type != TOKEN_DIRECTIVE {
		return nil, &InvalidTokenTypeError{keyword.Position, keyword.Type}
	}

	directive := &Directive{
		Type:     parseDirective(keyword.Value),
		Position: keyword.Position,
	}

	switch directive.Type {
	case DIRECTIVE_INVALID:
		return nil, &InvalidDotCommandError{keyword.Position, keyword.Value}

	case DIRECTIVE_BURN, DIRECTIVE_EQUATE:
		return nil, &UnsupportedDotCommandError{keyword.Position, keyword.Value}

	// .ADDRSS label
	case DIRECTIVE_ADDRSS:
		operand, err := singleOperand(keyword, operands, TOKEN_IDENT)

		if err != nil {
			return nil, err
		}

		directive.Label = operand.Value
		directive.LabelPosition = operand.Position

	// .ASCII "text"
	case DIRECTIVE_ASCII:
		operand, err := singleOperand(keyword, operands, TOKEN_STRING)

		if err != nil {
			return nil, err
		}

		directive.Text = operand.Value

	// .BLOCK count
	case DIRECTIVE_BLOCK:
		operand, err := singleOperand(keyword, operands, TOKEN_LITERAL)

		if err != nil {
			return nil, err
		}

		count, err := encoding.DecodeNumber(operand.Value)

		if err != nil || strings.HasPrefix(operand.Value, "-") {
			return nil, &InvalidLiteralError{operand.Position}
		}

		directive.Count = count

	// .BYTE value
	case DIRECTIVE_BYTE:
		operand, err := singleOperand(
			keyword, operands, TOKEN_CHAR, TOKEN_LITERAL, TOKEN_STRING,
		)

		if err != nil {
			return nil, err
		}

		value, err := parseByte(operand)

		if err != nil {
			return nil, err
		}

		directive.Value = encoding.NewWord(uint16(value))

	// .WORD value
	case DIRECTIVE_WORD:
		operand, err := singleOperand(
			keyword, operands, TOKEN_CHAR, TOKEN_LITERAL, TOKEN_STRING,
		)

		if err != nil {
			return nil, err
		}

		if directive.Value, err = parseWord(operand); err != nil {
			return nil, err
		}

	// .END
	case DIRECTIVE_END:
		if len(operands) != 0 {
			return nil, &InvalidArgumentsError{
				keyword.Position, nil, tokenTypes(operands),
			}
		}
	}

	return directive, nil
}

// Byte literals accept -128..255 as numbers, or a single character.
func parseByte(token *Token) (encoding.Byte, error) {
	switch token.Type {
	case TOKEN_CHAR, TOKEN_STRING:
		value, err := encoding.ByteFromBytes([]byte(token.Value))

		if err != nil || len(token.Value) == 0 {
			return 0, &OversizedLiteralError{token.Position, 1, len(token.Value)}
		}

		return value, nil
	}

	value, err := encoding.DecodeNumber(token.Value)

	if err != nil {
		return 0, &InvalidLiteralError{token.Position}
	}

	if value > 0xFF && value < 0xFF80 {
		return 0, &OversizedLiteralError{token.Position, 0xFF, value}
	}

	return encoding.NewByte(uint8(value)), nil
}

func (d *Directive) ByteSize() int {
	switch d.Type {
	case DIRECTIVE_ADDRSS, DIRECTIVE_WORD:
		return 2
	case DIRECTIVE_ASCII:
		return len(d.Text)
	case DIRECTIVE_BLOCK:
		return int(d.Count)
	case DIRECTIVE_BYTE:
		return 1
	}

	return 0
}

func (d *Directive) Bytes(symbols SymbolLookup) ([]byte, error) {
	switch d.Type {
	case DIRECTIVE_ADDRSS:
		address, exists := symbols.Lookup(d.Label)

		if !exists {
			return nil, &UndefinedSymbolError{d.LabelPosition, d.Label}
		}

		bytes := address.Bytes()

		return bytes[:], nil

	case DIRECTIVE_ASCII:
		return []byte(d.Text), nil

	case DIRECTIVE_BLOCK:
		return make([]byte, d.Count), nil

	case DIRECTIVE_BYTE:
		return []byte{byte(d.Value)}, nil

	case DIRECTIVE_WORD:
		bytes := d.Value.Bytes()

		return bytes[:], nil

	case DIRECTIVE_END:
		return []byte{}, nil
	}

	panic(fmt.Sprintf("directive %d cannot be encoded", d.Type))
}

func (d *Directive) String() string {
	switch d.Type {
	case DIRECTIVE_ADDRSS:
		return ".ADDRSS " + d.Label
	case DIRECTIVE_ASCII:
		return ".ASCII " + strconv.Quote(d.Text)
	case DIRECTIVE_BLOCK:
		return fmt.Sprintf(".BLOCK %d", d.Count)
	case DIRECTIVE_BYTE:
		return fmt.Sprintf(".BYTE 0x%02X", uint16(d.Value))
	case DIRECTIVE_WORD:
		return ".WORD " + d.Value.String()
	case DIRECTIVE_END:
		return ".END"
	}

	return "<invalid>"
}
