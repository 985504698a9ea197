package tile

import (
	"errors"
	"fmt"
)

// ErrEmptyMap is returned by FromRows for a map with no cells.
var ErrEmptyMap = errors.New("empty map")

// RawMap is the immutable terrain produced by world generation or read
// from a save file. Row-major, one Type per cell.
type RawMap struct {
	width, height int
	cells         []Type
}

// NewRawMap wraps cells (len must be width*height). The slice is owned by
// the map afterwards.
func NewRawMap(width, height int, cells []Type) (*RawMap, error) {
	if width <= 0 || height <= 0 {
		return nil, ErrEmptyMap
	}
	if len(cells) != width*height {
		return nil, fmt.Errorf("raw map: %d cells for %dx%d", len(cells), width, height)
	}
	return &RawMap{width: width, height: height, cells: cells}, nil
}

// FromRows builds a RawMap from persisted map_data rows. Ragged rows or
// unknown tile codes are rejected.
func FromRows(rows [][]int) (*RawMap, error) {
	if len(rows) == 0 || len(rows[0]) == 0 {
		return nil, ErrEmptyMap
	}
	h, w := len(rows), len(rows[0])
	cells := make([]Type, 0, w*h)
	for y, row := range rows {
		if len(row) != w {
			return nil, fmt.Errorf("raw map: row %d has %d cells, want %d", y, len(row), w)
		}
		for x, v := range row {
			if v < 0 || v > int(Leaf) {
				return nil, fmt.Errorf("raw map: invalid tile %d at (%d,%d)", v, x, y)
			}
			cells = append(cells, Type(v))
		}
	}
	return &RawMap{width: w, height: h, cells: cells}, nil
}

func (m *RawMap) Width() int  { return m.width }
func (m *RawMap) Height() int { return m.height }

// InBounds reports whether (x, y) is inside the map.
func (m *RawMap) InBounds(x, y int) bool {
	return x >= 0 && y >= 0 && x < m.width && y < m.height
}

// At returns the terrain at (x, y); out-of-range reads are Air.
func (m *RawMap) At(x, y int) Type {
	if !m.InBounds(x, y) {
		return Air
	}
	return m.cells[y*m.width+x]
}

// Exposed reports whether the cell at (x, y) has open air above it in the
// raw terrain. Row 0 is always exposed.
func (m *RawMap) Exposed(x, y int) bool {
	return y == 0 || m.At(x, y-1) == Air
}

// Rows returns a copy of the map as persisted rows, flattening grass.
func (m *RawMap) Rows() [][]int {
	rows := make([][]int, m.height)
	for y := range rows {
		row := make([]int, m.width)
		for x := range row {
			row[x] = int(m.cells[y*m.width+x].Persisted())
		}
		rows[y] = row
	}
	return rows
}

// Builder accumulates terrain during generation before it is frozen into a
// RawMap. Out-of-range writes are ignored.
type Builder struct {
	width, height int
	cells         []Type
}

func NewBuilder(width, height int) *Builder {
	return &Builder{width: width, height: height, cells: make([]Type, width*height)}
}

func (b *Builder) Width() int  { return b.width }
func (b *Builder) Height() int { return b.height }

func (b *Builder) At(x, y int) Type {
	if x < 0 || y < 0 || x >= b.width || y >= b.height {
		return Air
	}
	return b.cells[y*b.width+x]
}

func (b *Builder) Set(x, y int, t Type) {
	if x < 0 || y < 0 || x >= b.width || y >= b.height {
		return
	}
	b.cells[y*b.width+x] = t
}

// Freeze returns the finished RawMap. The builder must not be used after.
func (b *Builder) Freeze() *RawMap {
	m := &RawMap{width: b.width, height: b.height, cells: b.cells}
	b.cells = nil
	return m
}
