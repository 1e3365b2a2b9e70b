// Package topology describes the four-row race track: how a linear cell
// index maps to a row and column, how a piece advances along the snake
// path toward its far row, and where the path forks.
package topology

import (
	"fmt"

	"github.com/vovakirdan/stickrace/internal/core"
)

// Board dimensions.
const (
	Rows           = 4
	MinColumns     = 7
	MaxColumns     = 15
	DefaultColumns = 9
)

// Direction is the row delta a piece travels with: TowardTop walks from
// the bottom row to row 0, TowardBottom walks from row 0 to the last row.
type Direction int

const (
	TowardTop    Direction = -1
	TowardBottom Direction = 1
)

// NormalizeColumns clamps a requested width into [MinColumns, MaxColumns]
// and bumps even widths to the next odd value.
func NormalizeColumns(columns int) int {
	columns = core.Clamp(columns, MinColumns, MaxColumns)
	if columns%2 == 0 {
		columns++
	}
	return columns
}

// Coord is a (row, column) cell position.
type Coord struct {
	Row int
	Col int
}

func (c Coord) String() string {
	return fmt.Sprintf("(%d,%d)", c.Row, c.Col)
}

// Grid is the immutable track geometry.
type Grid struct {
	columns int
}

// New builds a grid with the normalised column count.
func New(columns int) Grid {
	return Grid{columns: NormalizeColumns(columns)}
}

// Columns returns the grid width.
func (g Grid) Columns() int { return g.columns }

// Rows returns the grid height.
func (g Grid) Rows() int { return Rows }

// Cells returns the number of cells.
func (g Grid) Cells() int { return g.columns * Rows }

// Index converts a coordinate to a linear index.
func (g Grid) Index(c Coord) int {
	return c.Row*g.columns + c.Col
}

// Coord converts a linear index to a coordinate.
func (g Grid) Coord(index int) Coord {
	return Coord{Row: index / g.columns, Col: index % g.columns}
}

// Contains reports whether index names a cell of the grid.
func (g Grid) Contains(index int) bool {
	return index >= 0 && index < g.Cells()
}

// RowOf returns the row of index.
func (g Grid) RowOf(index int) int {
	return index / g.columns
}

// FarRow is the row a piece moving in dir races toward.
func (g Grid) FarRow(dir Direction) int {
	if dir == TowardTop {
		return 0
	}
	return Rows - 1
}

// HomeRow is the row a piece moving in dir starts from.
func (g Grid) HomeRow(dir Direction) int {
	if dir == TowardTop {
		return Rows - 1
	}
	return 0
}

// Step advances one cell along the snake path. Even rows run leftwards,
// odd rows rightwards; running off either edge clamps the column and
// moves one row toward the far row, or back from it when already there.
func (g Grid) Step(c Coord, dir Direction) Coord {
	if c.Row%2 == 0 {
		c.Col--
	} else {
		c.Col++
	}

	switch {
	case c.Col >= g.columns:
		c.Col = g.columns - 1
		c.Row = g.nextRow(c.Row, dir)
	case c.Col < 0:
		c.Col = 0
		c.Row = g.nextRow(c.Row, dir)
	}
	return c
}

func (g Grid) nextRow(row int, dir Direction) int {
	if row == g.FarRow(dir) {
		return row - int(dir)
	}
	return row + int(dir)
}

// Advance applies Step steps times. Zero or negative steps is the identity.
func (g Grid) Advance(index int, dir Direction, steps int) int {
	c := g.Coord(index)
	for i := 0; i < steps; i++ {
		c = g.Step(c, dir)
	}
	return g.Index(c)
}

// Path lists every cell visited by Advance, excluding the start.
func (g Grid) Path(index int, dir Direction, steps int) []int {
	path := make([]int, 0, max(steps, 0))
	c := g.Coord(index)
	for i := 0; i < steps; i++ {
		c = g.Step(c, dir)
		path = append(path, g.Index(c))
	}
	return path
}
