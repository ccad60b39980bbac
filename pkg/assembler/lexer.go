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
	"bufio"
	"io"
	"strconv"
	"strings"
	"unicode"

	"github.com/lassandro/gopep8/pkg/encoding"
)

func isIdentStart(char byte) bool {
	return char == '_' || char == '.' ||
		(char >= 'a' && char <= 'z') || (char >= 'A' && char <= 'Z')
}

func isIdentChar(char byte) bool {
	return char == '_' ||
		(char >= 'a' && char <= 'z') ||
		(char >= 'A' && char <= 'Z') ||
		(char >= '0' && char <= '9')
}

func isSeparator(char byte) bool {
	return char == ' ' || char == '\t' || char == '\r' ||
		char == ',' || char == ';'
}

// Decodes the escape sequence whose backslash precedes line[i]. Returns the
// decoded byte and the index following the sequence.
func decodeEscape(line string, i int, position Cursor) (byte, int, error) {
	if i >= len(line) {
		return 0, i, &InvalidEscapeError{position, ""}
	}

	switch line[i] {
	case 'b':
		return '\b', i + 1, nil
	case 'f':
		return '\f', i + 1, nil
	case 'n':
		return '\n', i + 1, nil
	case 'r':
		return '\r', i + 1, nil
	case 't':
		return '\t', i + 1, nil
	case 'v':
		return '\v', i + 1, nil
	case '"', '\'', '\\':
		return line[i], i + 1, nil
	case 'x', 'X':
		if i+3 > len(line) {
			return 0, len(line), &InvalidEscapeError{position, line[i:]}
		}

		value, err := strconv.ParseUint(line[i+1:i+3], 16, 8)

		if err != nil {
			return 0, i + 3, &InvalidEscapeError{position, line[i : i+3]}
		}

		return byte(value), i + 3, nil
	}

	return 0, i + 1, &InvalidEscapeError{position, line[i : i+1]}
}

// Splits a single source line into tokens. cursor locates the start of the
// line; comments and whitespace are dropped.
func TokenizeLine(line string, cursor Cursor) ([]Token, error) {
	tokens := make([]Token, 0, 5)

	positionAt := func(start, end int) Cursor {
		return Cursor{
			Line:     cursor.Line,
			Column:   start + 1,
			Byte:     cursor.LineByte + int64(start),
			Size:     int64(end - start),
			LineByte: cursor.LineByte,
		}
	}

	i := 0

	for i < len(line) {
		char := line[i]
		start := i

		switch {
		// Comments
		case char == ';':
			return tokens, nil

		// Whitespace
		case char == ' ' || char == '\t' || char == '\r':
			i++

		// Operand Separator
		case char == ',':
			i++
			tokens = append(tokens, Token{TOKEN_COMMA, positionAt(start, i), ","})

		// Character Literal
		case char == '\'':
			i++

			if i >= len(line) || line[i] == '\'' {
				return nil, &InvalidCharError{positionAt(start, i)}
			}

			value := line[i]
			i++

			if value == '\\' {
				var err error

				if value, i, err = decodeEscape(line, i, positionAt(start, i)); err != nil {
					return nil, err
				}
			} else if value > unicode.MaxASCII {
				return nil, &OversizedCharacterError{positionAt(start, i)}
			}

			if i >= len(line) || line[i] != '\'' {
				return nil, &InvalidCharError{positionAt(start, i)}
			}

			i++
			tokens = append(
				tokens, Token{TOKEN_CHAR, positionAt(start, i), string([]byte{value})},
			)

		// String Literal
		case char == '"':
			var builder strings.Builder
			closed := false
			i++

			for i < len(line) {
				next := line[i]
				i++

				if next == '"' {
					closed = true
					break
				}

				if next == '\\' {
					value, end, err := decodeEscape(line, i, positionAt(i-1, i))

					if err != nil {
						return nil, err
					}

					i = end
					builder.WriteByte(value)
					continue
				}

				if next > unicode.MaxASCII {
					return nil, &OversizedCharacterError{positionAt(i-1, i)}
				}

				builder.WriteByte(next)
			}

			if !closed {
				return nil, &InvalidStringError{positionAt(start, i)}
			}

			tokens = append(
				tokens, Token{TOKEN_STRING, positionAt(start, i), builder.String()},
			)

		// Numeric Literal
		case char == '-' || char == '+' || (char >= '0' && char <= '9'):
			i++

			for i < len(line) && !isSeparator(line[i]) {
				i++
			}

			value := line[start:i]

			if _, err := encoding.DecodeNumber(value); err != nil {
				return nil, &InvalidLiteralError{positionAt(start, i)}
			}

			tokens = append(tokens, Token{TOKEN_LITERAL, positionAt(start, i), value})

		// Identifier, Label, or Directive
		case isIdentStart(char):
			i++

			for i < len(line) && isIdentChar(line[i]) {
				i++
			}

			value := line[start:i]

			if i < len(line) && line[i] == ':' {
				if strings.HasPrefix(value, ".") {
					return nil, &InvalidDotCommandError{positionAt(start, i), value}
				}

				i++
				tokens = append(tokens, Token{TOKEN_LABEL, positionAt(start, i), value})
			} else if strings.HasPrefix(value, ".") {
				tokens = append(tokens, Token{TOKEN_DIRECTIVE, positionAt(start, i), value})
			} else {
				tokens = append(tokens, Token{TOKEN_IDENT, positionAt(start, i), value})
			}

		default:
			if char > unicode.MaxASCII {
				return nil, &OversizedCharacterError{positionAt(start, start+1)}
			}

			return nil, &UnexpectedCharacterError{
				positionAt(start, start+1), rune(char),
			}
		}
	}

	return tokens, nil
}

// Tokenizes every line of input. Lines without tokens are dropped; errors are
// collected across all lines. Cursors count the raw line ending, so "\r\n"
// source keeps its byte offsets.
func Tokenize(input io.Reader) (lines [][]Token, errs []error) {
	var reader = bufio.NewReader(input)
	var cursor = Cursor{Line: 1}

	errs = make([]error, 0)

	for {
		raw, readErr := reader.ReadString('\n')

		if readErr != nil && readErr != io.EOF {
			errs = append(errs, readErr)
			break
		}

		if len(raw) == 0 && readErr == io.EOF {
			break
		}

		line := strings.TrimSuffix(strings.TrimSuffix(raw, "\n"), "\r")
		cursor.Size = int64(len(line))

		tokens, err := TokenizeLine(line, cursor)

		if err != nil {
			errs = append(errs, err)
		} else if len(tokens) > 0 {
			lines = append(lines, tokens)
		}

		cursor.Line++
		cursor.Byte += int64(len(raw))
		cursor.LineByte += int64(len(raw))

		if readErr == io.EOF {
			break
		}
	}

	return
}
