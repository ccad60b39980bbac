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
	"github.com/retroenv/retrogolib/set"
)

type Register uint8

func (r Register) Bit() uint8 {
	return uint8(r) & 0x1
}

func (r Register) String() string {
	if r == REGISTER_X {
		return "X"
	}

	return "A"
}

type AddrMode uint8

var addrModeNames = [...]string{
	ADDRMODE_IMMEDIATE:               "i",
	ADDRMODE_DIRECT:                  "d",
	ADDRMODE_INDIRECT:                "n",
	ADDRMODE_STACK_RELATIVE:          "s",
	ADDRMODE_STACK_RELATIVE_DEFERRED: "sf",
	ADDRMODE_INDEXED:                 "x",
	ADDRMODE_STACK_INDEXED:           "sx",
	ADDRMODE_STACK_INDEXED_DEFERRED:  "sxf",
}

func AddrModes() []AddrMode {
	modes := make([]AddrMode, 0, len(addrModeNames))

	for mode := range addrModeNames {
		modes = append(modes, AddrMode(mode))
	}

	return modes
}

func ParseAddrMode(mnemonic string) (AddrMode, bool) {
	for mode, name := range addrModeNames {
		if strings.EqualFold(mnemonic, name) {
			return AddrMode(mode), true
		}
	}

	return 0, false
}

func (m AddrMode) String() string {
	if int(m) < len(addrModeNames) {
		return addrModeNames[m]
	}

	return fmt.Sprintf("<invalid %d>", uint8(m))
}

// ShortCode is the 1-bit encoding used by the branch instructions.
func (m AddrMode) ShortCode() (uint8, error) {
	switch m {
	case ADDRMODE_IMMEDIATE:
		return 0, nil
	case ADDRMODE_INDEXED:
		return 1, nil
	}

	return 0, &IllegalAddrModeError{
		Required: []AddrMode{ADDRMODE_IMMEDIATE, ADDRMODE_INDEXED},
		Received: m,
	}
}

// LongCode is the 3-bit aaa field.
func (m AddrMode) LongCode() uint8 {
	return uint8(m) & 0x7
}

type AddrModeSet = set.Set[AddrMode]

func newAddrModeSet(modes ...AddrMode) AddrModeSet {
	result := set.New[AddrMode]()

	for _, mode := range modes {
		result.Add(mode)
	}

	return result
}

func sortedAddrModes(modes AddrModeSet) []AddrMode {
	result := make([]AddrMode, 0, len(addrModeNames))

	for _, mode := range AddrModes() {
		if modes.Contains(mode) {
			result = append(result, mode)
		}
	}

	return result
}

// AddrLocation is either a MemoryLocation or a LabelLocation.
type AddrLocation interface {
	isAddrLocation()
}

type MemoryLocation struct {
	Value encoding.Word
}

type LabelLocation struct {
	Name string
}

func (MemoryLocation) isAddrLocation() {}
func (LabelLocation) isAddrLocation()  {}

type Address struct {
	Location AddrLocation
	Mode     AddrMode
	Position Cursor
}

func (a Address) String() string {
	switch location := a.Location.(type) {
	case MemoryLocation:
		return fmt.Sprintf("%s,%s", location.Value, a.Mode)
	case LabelLocation:
		return fmt.Sprintf("%s,%s", location.Name, a.Mode)
	}

	return "<invalid>"
}

// Converts a character, string or numeric token into a word.
func parseWord(token *Token) (encoding.Word, error) {
	switch token.Type {
	case TOKEN_CHAR:
		if len(token.Value) != 1 {
			return 0, &InvalidCharError{token.Position}
		}

		return encoding.WordFromChar(token.Value[0]), nil

	case TOKEN_STRING:
		word, err := encoding.WordFromBytes([]byte(token.Value))

		if err != nil {
			return 0, &OversizedLiteralError{token.Position, 2, len(token.Value)}
		}

		return word, nil

	case TOKEN_LITERAL:
		value, err := encoding.DecodeNumber(token.Value)

		if err != nil {
			return 0, &InvalidLiteralError{token.Position}
		}

		return encoding.NewWord(value), nil
	}

	return 0, &InvalidAddressTokenTypeError{token.Position, token.Type}
}

func parseAddrLocation(token *Token) (AddrLocation, error) {
	switch token.Type {
	case TOKEN_IDENT:
		return LabelLocation{token.Value}, nil

	case TOKEN_CHAR, TOKEN_STRING, TOKEN_LITERAL:
		word, err := parseWord(token)

		if err != nil {
			return nil, err
		}

		return MemoryLocation{word}, nil
	}

	return nil, &InvalidAddressTokenTypeError{token.Position, token.Type}
}

func parseModeToken(token *Token) (AddrMode, error) {
	if token.Type == TOKEN_IDENT {
		if mode, ok := ParseAddrMode(token.Value); ok {
			return mode, nil
		}
	}

	return 0, &InvalidAddrModeStringError{token.Position, token.Value}
}

// Operand forms: "address" (immediate) or "address, mode" where mode is
// immediate or indexed.
func parseShortAddress(tokens []Token, position Cursor) (Address, error) {
	switch {
	case len(tokens) == 1:
		location, err := parseAddrLocation(&tokens[0])

		if err != nil {
			return Address{}, err
		}

		return Address{location, ADDRMODE_IMMEDIATE, tokens[0].Position}, nil

	case len(tokens) == 3 && tokens[1].Type == TOKEN_COMMA:
		mode, err := parseModeToken(&tokens[2])

		if err != nil {
			return Address{}, err
		}

		if _, err := mode.ShortCode(); err != nil {
			return Address{}, &IllegalAddrModeError{
				tokens[2].Position,
				[]AddrMode{ADDRMODE_IMMEDIATE, ADDRMODE_INDEXED},
				mode,
			}
		}

		location, err := parseAddrLocation(&tokens[0])

		if err != nil {
			return Address{}, err
		}

		return Address{location, mode, tokens[0].Position}, nil
	}

	return Address{}, &MalformedAddrModeError{position, len(tokens)}
}

// Operand form: "address, mode" where mode must be in legal.
func parseLongAddress(
	tokens []Token, legal AddrModeSet, position Cursor,
) (Address, error) {
	if len(tokens) != 3 || tokens[1].Type != TOKEN_COMMA {
		return Address{}, &MalformedAddrModeError{position, len(tokens)}
	}

	mode, err := parseModeToken(&tokens[2])

	if err != nil {
		return Address{}, err
	}

	if !legal.Contains(mode) {
		return Address{}, &IllegalAddrModeError{
			tokens[2].Position, sortedAddrModes(legal), mode,
		}
	}

	location, err := parseAddrLocation(&tokens[0])

	if err != nil {
		return Address{}, err
	}

	return Address{location, mode, tokens[0].Position}, nil
}
