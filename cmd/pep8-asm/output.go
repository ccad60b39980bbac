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

package main

import (
	"bufio"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/lassandro/gopep8/pkg/assembler"
)

func outputName(infile, output string, hex bool) string {
	if output != "" {
		return output
	}

	ext := ".bin"
	if hex {
		ext = ".pepo"
	}

	if infile == "" {
		return "out" + ext
	}

	filename := filepath.Base(infile)

	return strings.TrimSuffix(filename, filepath.Ext(filename)) + ext
}

func symtableName(output string) string {
	return strings.TrimSuffix(output, filepath.Ext(output)) + ".pep8db"
}

func displayName(infile string) string {
	if infile == "" {
		return "<stdin>"
	}

	return filepath.Base(infile)
}

// Returns the source line that begins at offset, without its line ending.
func sourceLine(input io.ReadSeeker, offset int64) (string, error) {
	if _, err := input.Seek(offset, io.SeekStart); err != nil {
		return "", err
	}

	line, err := bufio.NewReader(input).ReadString('\n')

	if err != nil && err != io.EOF {
		return "", err
	}

	return strings.TrimRight(line, "\r\n"), nil
}

// Marks the token at cursor with a caret followed by tildes.
func underline(cursor assembler.Cursor) string {
	size := int(cursor.Size)
	if size < 1 {
		size = 1
	}

	return strings.Repeat(" ", int(cursor.Byte-cursor.LineByte)) +
		"^" + strings.Repeat("~", size-1)
}

func printErrors(
	w io.Writer, input io.ReadSeeker, name string, errs []error, color bool,
) {
	prefix := name + ":"
	red, reset := "", ""

	if color {
		prefix = "\033[1m" + prefix + "\033[0m"
		red, reset = "\033[31m", "\033[0m"
	}

	for _, err := range errs {
		tokenErr, ok := err.(assembler.TokenError)

		if !ok {
			fmt.Fprintf(w, "%s%s\n", prefix, err)
			continue
		}

		cursor := tokenErr.GetPosition()
		line, lineErr := sourceLine(input, cursor.LineByte)

		if lineErr != nil {
			fmt.Fprintf(w, "%s%s\n", prefix, err)
			continue
		}

		fmt.Fprintf(
			w, "%s%s\n%s\n%s%s%s\n",
			prefix, err, line, red, underline(cursor), reset,
		)
	}
}
