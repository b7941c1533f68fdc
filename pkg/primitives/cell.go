package primitives

import (
	"fmt"
	"slices"
	"strings"
)

// Cell is the known condition of a single spring in a row.
type Cell uint8

const (
	Operational Cell = iota
	Damaged
	Unknown
)

const (
	kOperational = '.'
	kDamaged     = '#'
	kUnknown     = '?'
)

// CellFromRune decodes a single pattern character.
func CellFromRune(r rune) (Cell, error) {
	switch r {
	case kOperational:
		return Operational, nil
	case kDamaged:
		return Damaged, nil
	case kUnknown:
		return Unknown, nil
	}
	return 0, fmt.Errorf("character %q is not a cell", r)
}

// Rune returns the pattern character for c.
func (c Cell) Rune() rune {
	switch c {
	case Operational:
		return kOperational
	case Damaged:
		return kDamaged
	case Unknown:
		return kUnknown
	}
	panic(fmt.Sprintf("invalid cell %d", uint8(c)))
}

func (c Cell) String() string {
	switch c {
	case Operational:
		return "Operational"
	case Damaged:
		return "Damaged"
	case Unknown:
		return "Unknown"
	}
	return fmt.Sprintf("Cell(%d)", uint8(c))
}

// Cells is a row of springs, left to right.
type Cells []Cell

// ParseCells decodes a whole pattern such as "?#.?".
func ParseCells(pattern string) (Cells, error) {
	cells := make(Cells, 0, len(pattern))
	for i, r := range pattern {
		c, err := CellFromRune(r)
		if err != nil {
			return nil, fmt.Errorf("byte offset %d: %w", i, err)
		}
		cells = append(cells, c)
	}
	return cells, nil
}

// RunLength returns how many cells at the front of the row are equal to the
// first one. An empty row has a run length of zero.
func (cs Cells) RunLength() int {
	if len(cs) == 0 {
		return 0
	}
	n := 1
	for n < len(cs) && cs[n] == cs[0] {
		n++
	}
	return n
}

// Contains reports whether any cell equals c.
func (cs Cells) Contains(c Cell) bool {
	return slices.Contains(cs, c)
}

// Count returns the number of cells equal to c.
func (cs Cells) Count(c Cell) int {
	count := 0
	for _, x := range cs {
		if x == c {
			count++
		}
	}
	return count
}

func (cs Cells) String() string {
	var sb strings.Builder
	sb.Grow(len(cs))
	for _, c := range cs {
		sb.WriteRune(c.Rune())
	}
	return sb.String()
}
