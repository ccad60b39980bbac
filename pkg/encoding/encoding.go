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
	"errors"
	"strconv"
	"strings"
)

// Decodes a hexidecimal string in the formats: 0xFFFF, 0XFF
func DecodeHex(s string) (uint16, error) {
	if !strings.HasPrefix(s, "0x") && !strings.HasPrefix(s, "0X") {
		return 0, errors.New("Invalid hex string")
	}

	if len(s) == 2 {
		return 0, errors.New("Invalid hex string")
	}

	result, err := strconv.ParseUint(s[2:], 16, 16)

	if err != nil {
		return 0, err
	}

	return uint16(result), nil
}

// Decodes a base-10 string in the formats: 123, +123, -123. Negative values
// are returned in two's complement.
func DecodeInt(s string) (uint16, error) {
	result, err := strconv.ParseInt(s, 10, 32)

	if err != nil {
		return 0, err
	}

	if result < -32768 || result > 65535 {
		return 0, errors.New("Decimal value out of range")
	}

	return uint16(result & 0xFFFF), nil
}

// Decodes either a hexidecimal or a base-10 numeric literal
func DecodeNumber(s string) (uint16, error) {
	if strings.HasPrefix(s, "0x") || strings.HasPrefix(s, "0X") {
		return DecodeHex(s)
	}

	return DecodeInt(s)
}
