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
	"io"

	"github.com/lassandro/gopep8/pkg/encoding"
	"github.com/retroenv/retrogolib/log"
)

type Options struct {
	// Receives debug records for label definitions and both passes.
	Logger *log.Logger

	// Reject a label that is defined more than once instead of keeping the
	// last definition.
	StrictLabels bool

	// Ignore every line following the first .END directive.
	StopAtEnd bool

	// Filled with debugging information when non-nil.
	SymTable *SymTable
}

// Library code only logs at debug level, so a logger limited to errors is
// silent.
func quietLogger() *log.Logger {
	cfg := log.DefaultConfig()
	cfg.Level = log.ErrorLevel
	return log.NewWithConfig(cfg)
}

// Assigns an address to every line and records each label. Lines are parsed
// here so that pass two only ever sees valid statements.
func assignAddresses(
	lines [][]Token, options *Options,
) ([]*StatementLine, *AddressTable, int, error) {
	logger := options.Logger
	statements := make([]*StatementLine, 0, len(lines))
	table := NewAddressTable()
	address := 0

	for _, tokens := range lines {
		line, err := ParseStatementLine(tokens)

		if err != nil {
			return nil, nil, 0, err
		}

		if line.HasLabel() {
			if address >= MAX_PROGRAM_SIZE {
				return nil, nil, 0, &OversizedBinaryError{address}
			}

			previous, replaced := table.Insert(
				line.Label, encoding.NewWord(uint16(address)),
			)

			if replaced {
				if options.StrictLabels {
					return nil, nil, 0, &RedeclaredLabelError{
						line.Position, line.Label,
					}
				}

				logger.Debug("Label redefined",
					log.String("label", line.Label),
					log.Hex("previous", previous.Uint16()),
					log.Hex("address", uint16(address)))
			} else {
				logger.Debug("Label defined",
					log.String("label", line.Label),
					log.Hex("address", uint16(address)))
			}
		}

		address += line.ByteSize()

		if address > MAX_PROGRAM_SIZE {
			return nil, nil, 0, &OversizedBinaryError{address}
		}

		statements = append(statements, line)

		if options.StopAtEnd && line.isEnd() {
			break
		}
	}

	return statements, table, address, nil
}

// Encodes every statement in order. symbols is complete and never modified.
func encodeStatements(
	statements []*StatementLine, symbols SymbolLookup, size int, options *Options,
) ([]byte, error) {
	result := make([]byte, 0, size)

	for _, line := range statements {
		bytes, err := line.Bytes(symbols)

		if err != nil {
			return nil, err
		}

		// Trailing zero-sized statements in a full image have no address.
		if options.SymTable != nil && len(result) < MAX_PROGRAM_SIZE {
			options.SymTable.Symbols[uint16(len(result))] = line.Position.LineByte
		}

		result = append(result, bytes...)
	}

	return result, nil
}

// Assembles tokenized source lines into a byte image. Either the whole image
// is returned or the first error encountered.
func Assemble(lines [][]Token, options *Options) ([]byte, error) {
	if options == nil {
		options = &Options{}
	}

	if options.Logger == nil {
		copied := *options
		copied.Logger = quietLogger()
		options = &copied
	}

	logger := options.Logger

	statements, table, size, err := assignAddresses(lines, options)

	if err != nil {
		return nil, err
	}

	logger.Debug("Addresses assigned",
		log.Int("statements", len(statements)),
		log.Int("labels", table.Len()),
		log.Int("size", size))

	result, err := encodeStatements(statements, table, size, options)

	if err != nil {
		return nil, err
	}

	if options.SymTable != nil {
		for _, label := range table.Labels() {
			address, _ := table.Lookup(label)
			options.SymTable.Labels[address.Uint16()] = label
		}
	}

	logger.Debug("Image encoded", log.Int("size", len(result)))

	return result, nil
}

func AssemblePep8Source(input io.Reader, options *Options) ([]byte, []error) {
	lines, errs := Tokenize(input)

	if len(errs) > 0 {
		return nil, errs
	}

	result, err := Assemble(lines, options)

	if err != nil {
		return nil, []error{err}
	}

	return result, nil
}
