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
	"bytes"
	"encoding/gob"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/lassandro/gopep8/pkg/assembler"
	"github.com/retroenv/retrogolib/assert"
)

func TestOutputName(t *testing.T) {
	assert.Equal(t, "prog.bin", outputName("src/prog.pep", "", false))
	assert.Equal(t, "prog.pepo", outputName("src/prog.pep", "", true))
	assert.Equal(t, "out.bin", outputName("", "", false))
	assert.Equal(t, "out.pepo", outputName("", "", true))
	assert.Equal(t, "image", outputName("prog.pep", "image", true))
	assert.Equal(t, "build/prog.pep8db", symtableName("build/prog.bin"))
	assert.Equal(t, "<stdin>", displayName(""))
}

func TestPrintErrors(t *testing.T) {
	source := "STOP\n  CHARO 'ab',i\n"
	input := strings.NewReader(source)

	_, errs := assembler.AssemblePep8Source(input, nil)
	assert.Len(t, errs, 1)

	var out bytes.Buffer
	printErrors(&out, input, "prog.pep", errs, false)

	lines := strings.Split(out.String(), "\n")
	assert.True(t, strings.HasPrefix(lines[0], "prog.pep:"))
	assert.Equal(t, "  CHARO 'ab',i", lines[len(lines)-3])
	assert.Equal(t, "        ^~", lines[len(lines)-2])
}

func TestPrintErrorsCRLF(t *testing.T) {
	input := strings.NewReader("STOP\r\nSTOP\r\nLDA x,q\r\n")

	_, errs := assembler.AssemblePep8Source(input, nil)
	assert.Len(t, errs, 1)

	var out bytes.Buffer
	printErrors(&out, input, "prog.pep", errs, false)

	lines := strings.Split(out.String(), "\n")
	assert.Equal(t, "LDA x,q", lines[len(lines)-3])
	assert.Equal(t, "      ^", lines[len(lines)-2])
}

func TestAssembleFile(t *testing.T) {
	dir := t.TempDir()
	source := filepath.Join(dir, "prog.pep")
	output := filepath.Join(dir, "prog.pepo")

	err := os.WriteFile(source, []byte("BR main\nnum: .BLOCK 2\nmain: STOP\n.END\n"), 0666)
	assert.NoError(t, err)

	cmd := newRootCommand()
	cmd.SetArgs([]string{"--hex", "--debug", "-q", "-o", output, source})
	assert.NoError(t, cmd.Execute())

	image, err := os.ReadFile(output)
	assert.NoError(t, err)
	assert.Equal(t, "04 00 05 00 00 00 zz\n", string(image))

	file, err := os.Open(symtableName(output))
	assert.NoError(t, err)
	defer file.Close()

	var symtable assembler.SymTable
	assert.NoError(t, gob.NewDecoder(file).Decode(&symtable))
	assert.Equal(t, "main", symtable.Labels[5])
	assert.Equal(t, source, symtable.Source)
}

func TestAssembleFileFail(t *testing.T) {
	dir := t.TempDir()
	source := filepath.Join(dir, "bad.pep")
	output := filepath.Join(dir, "bad.bin")

	err := os.WriteFile(source, []byte("BR nowhere\n"), 0666)
	assert.NoError(t, err)

	cmd := newRootCommand()
	cmd.SetArgs([]string{"-q", "-o", output, source})
	assert.Error(t, cmd.Execute())

	_, err = os.Stat(output)
	assert.True(t, os.IsNotExist(err))
}
