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
	"sort"

	"github.com/lassandro/gopep8/pkg/encoding"
)

// Read-only view of resolved labels used while encoding.
type SymbolLookup interface {
	Lookup(name string) (encoding.Word, bool)
}

// Maps label names to the address of the statement they precede.
type AddressTable struct {
	table map[string]encoding.Word
}

func NewAddressTable() *AddressTable {
	return &AddressTable{table: make(map[string]encoding.Word)}
}

// Insert overwrites any previous address for name and reports it.
func (t *AddressTable) Insert(
	name string, address encoding.Word,
) (encoding.Word, bool) {
	previous, exists := t.table[name]
	t.table[name] = address
	return previous, exists
}

func (t *AddressTable) Lookup(name string) (encoding.Word, bool) {
	address, exists := t.table[name]
	return address, exists
}

func (t *AddressTable) Len() int {
	return len(t.table)
}

// Labels returns all label names in lexical order.
func (t *AddressTable) Labels() []string {
	labels := make([]string, 0, len(t.table))

	for label := range t.table {
		labels = append(labels, label)
	}

	sort.Strings(labels)

	return labels
}

func resolve(symbols SymbolLookup, address Address) (encoding.Word, error) {
	switch location := address.Location.(type) {
	case MemoryLocation:
		return location.Value, nil
	case LabelLocation:
		if value, exists := symbols.Lookup(location.Name); exists {
			return value, nil
		}

		return 0, &UndefinedSymbolError{address.Position, location.Name}
	}

	panic("address without location")
}

func (t *AddressTable) Resolve(address Address) (encoding.Word, error) {
	return resolve(t, address)
}
