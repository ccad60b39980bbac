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

package encoding_test

import (
	"math"
	"testing"

	"github.com/lassandro/gopep8/pkg/encoding"
	"github.com/retroenv/retrogolib/assert"
)

func TestWordRoundTrip(t *testing.T) {
	for value := 0; value <= math.MaxUint16; value++ {
		word := encoding.NewWord(uint16(value))
		bytes := word.Bytes()

		if bytes[0] != byte(value>>8) || bytes[1] != byte(value) {
			t.Fatalf(
				"Word encoding mismatch\n\twant:%#04x\n\thave:% x",
				value,
				bytes,
			)
		}

		decoded, err := encoding.WordFromBytes(bytes[:])

		if err != nil {
			t.Fatal(err)
		}

		if decoded != word {
			t.Fatalf("Word decoding mismatch\n\twant:%v\n\thave:%v", word, decoded)
		}
	}
}

func TestWordFromBytes(t *testing.T) {
	word, err := encoding.WordFromBytes(nil)
	assert.NoError(t, err)
	assert.Equal(t, encoding.Word(0), word)

	word, err = encoding.WordFromBytes([]byte("a"))
	assert.NoError(t, err)
	assert.Equal(t, encoding.Word(0x61), word)

	word, err = encoding.WordFromBytes([]byte("ab"))
	assert.NoError(t, err)
	assert.Equal(t, encoding.Word(0x6162), word)

	_, err = encoding.WordFromBytes([]byte("abc"))
	assert.True(t, err != nil)

	assert.Equal(t, encoding.Word('A'), encoding.WordFromChar('A'))
}

func TestByte(t *testing.T) {
	b, err := encoding.ByteFromBytes([]byte("z"))
	assert.NoError(t, err)
	assert.Equal(t, encoding.Byte('z'), b)

	_, err = encoding.ByteFromBytes([]byte("zz"))
	assert.True(t, err != nil)

	assert.Equal(t, encoding.Byte(0x5B), encoding.NewByte(0x58).Add(3))
	assert.True(t, encoding.NewByte(3).Less(encoding.NewByte(4)))
	assert.False(t, encoding.NewByte(4).Less(encoding.NewByte(4)))
}

func TestDecodeNumber(t *testing.T) {
	tests := []struct {
		Input  string
		Output uint16
		Fail   bool
	}{
		{"0", 0, false},
		{"42", 42, false},
		{"+42", 42, false},
		{"-1", 0xFFFF, false},
		{"-32768", 0x8000, false},
		{"65535", 0xFFFF, false},
		{"0x1F", 0x1F, false},
		{"0XbeEF", 0xBEEF, false},
		{"65536", 0, true},
		{"-32769", 0, true},
		{"0x10000", 0, true},
		{"0x", 0, true},
		{"12a", 0, true},
	}

	for _, test := range tests {
		t.Run(test.Input, func(t *testing.T) {
			result, err := encoding.DecodeNumber(test.Input)

			if test.Fail {
				assert.True(t, err != nil)
				return
			}

			assert.NoError(t, err)
			assert.Equal(t, test.Output, result)
		})
	}
}

func TestFormatObject(t *testing.T) {
	assert.Equal(t, "zz\n", encoding.FormatObject(nil))
	assert.Equal(t, "04 00 05 zz\n", encoding.FormatObject([]byte{4, 0, 5}))

	image := make([]byte, 17)
	image[16] = 0xAB

	assert.Equal(
		t,
		"00 00 00 00 00 00 00 00 00 00 00 00 00 00 00 00\nAB zz\n",
		encoding.FormatObject(image),
	)
}
