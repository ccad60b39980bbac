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

// Statement is implemented by *Instruction and *Directive.
type Statement interface {
	// ByteSize is known before any label is resolved.
	ByteSize() int
	Bytes(symbols SymbolLookup) ([]byte, error)
}

func ParseStatement(tokens []Token) (Statement, error) {
	if len(tokens) == 0 {
		return nil, &TokensEmptyError{}
	}

	switch tokens[0].Type {
	case TOKEN_IDENT:
		return ParseInstruction(tokens)
	case TOKEN_DIRECTIVE:
		return ParseDirective(tokens)
	}

	return nil, &InvalidTokenTypeError{tokens[0].Position, tokens[0].Type}
}

type StatementLine struct {
	Label     string
	Statement Statement
	Position  Cursor
}

func ParseStatementLine(tokens []Token) (*StatementLine, error) {
	if len(tokens) == 0 {
		return nil, &TokensEmptyError{}
	}

	line := &StatementLine{Position: tokens[0].Position}

	if tokens[0].Type == TOKEN_LABEL {
		line.Label = tokens[0].Value
		tokens = tokens[1:]

		if len(tokens) == 0 {
			return nil, &TokensEmptyError{line.Position}
		}
	}

	statement, err := ParseStatement(tokens)

	if err != nil {
		return nil, err
	}

	line.Statement = statement

	return line, nil
}

func (l *StatementLine) HasLabel() bool {
	return l.Label != ""
}

func (l *StatementLine) ByteSize() int {
	return l.Statement.ByteSize()
}

func (l *StatementLine) Bytes(symbols SymbolLookup) ([]byte, error) {
	return l.Statement.Bytes(symbols)
}

func (l *StatementLine) isEnd() bool {
	directive, ok := l.Statement.(*Directive)
	return ok && directive.Type == DIRECTIVE_END
}
