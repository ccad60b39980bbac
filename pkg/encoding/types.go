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

package encoding

import (
	"fmt"
	"strings"
)

// Word is a 16-bit machine value, serialized most significant byte first.
type Word uint16

// Byte is an 8-bit machine value.
type Byte uint8

type InvalidLengthError struct {
	Limit    int
	Received int
}

func (err *InvalidLengthError) Error() string {
	return fmt.Sprintf(
		"Value exceeds allowed length\n\twant:<=%d\n\thave:%d",
		err.Limit,
		err.Received,
	)
}

func NewWord(value uint16) Word {
	return Word(value)
}

func WordFromChar(char byte) Word {
	return Word(char)
}

// Packs up to two bytes into a word, big-endian
func WordFromBytes(b []byte) (Word, error) {
	switch len(b) {
	case 0:
		return 0, nil
	case 1:
		return Word(b[0]), nil
	case 2:
		return Word(b[0])<<8 | Word(b[1]), nil
	}

	return 0, &InvalidLengthError{2, len(b)}
}

func (w Word) Bytes() [2]byte {
	return [2]byte{byte(w >> 8), byte(w)}
}

func (w Word) Uint16() uint16 {
	return uint16(w)
}

func (w Word) String() string {
	return fmt.Sprintf("0x%04X", uint16(w))
}

func NewByte(value uint8) Byte {
	return Byte(value)
}

func ByteFromChar(char byte) Byte {
	return Byte(char)
}

func ByteFromBytes(b []byte) (Byte, error) {
	switch len(b) {
	case 0:
		return 0, nil
	case 1:
		return Byte(b[0]), nil
	}

	return 0, &InvalidLengthError{1, len(b)}
}

// Add wraps on overflow; callers check the range before adding.
func (b Byte) Add(other Byte) Byte {
	return b + other
}

func (b Byte) Less(other Byte) bool {
	return b < other
}

func (b Byte) Uint8() uint8 {
	return uint8(b)
}

func (b Byte) String() string {
	return fmt.Sprintf("0x%02X", uint8(b))
}

// Renders a byte image in the Pep/8 object text format: upper case hex pairs,
// sixteen per line, terminated by "zz".
func FormatObject(image []byte) string {
	var builder strings.Builder

	for i, b := range image {
		if i > 0 {
			if i%16 == 0 {
				builder.WriteByte('\n')
			} else {
				builder.WriteByte(' ')
			}
		}

		fmt.Fprintf(&builder, "%02X", b)
	}

	if len(image) > 0 {
		if len(image)%16 == 0 {
			builder.WriteByte('\n')
		} else {
			builder.WriteByte(' ')
		}
	}

	builder.WriteString("zz\n")

	return builder.String()
}
