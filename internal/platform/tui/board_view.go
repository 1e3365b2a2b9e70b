package tui

import (
	"fmt"

	"github.com/vovakirdan/stickrace/internal/core"
	"github.com/vovakirdan/stickrace/internal/engine"
	"github.com/vovakirdan/stickrace/internal/match"
	"github.com/vovakirdan/stickrace/internal/topology"
)

const (
	cellWidth  = 4
	rowSpacing = 2
	boardTop   = 2
	logLines   = 4
)

// boardLayout places grid cells on the screen. A flipped layout turns the
// board half way round, so red sees its pieces racing upward too.
type boardLayout struct {
	grid    topology.Grid
	originX int
	originY int
	flipped bool
}

func newBoardLayout(grid topology.Grid, screenW int, flipped bool) boardLayout {
	span := grid.Columns()*cellWidth - 1
	x := (screenW - span) / 2
	if x < 4 {
		x = 4
	}
	return boardLayout{grid: grid, originX: x, originY: boardTop + 1, flipped: flipped}
}

// display converts a board coordinate to its on-screen row and column.
// The half turn is its own inverse, so it also maps screen back to board.
func (l boardLayout) display(c topology.Coord) (row, col int) {
	if l.flipped {
		return l.grid.Rows() - 1 - c.Row, l.grid.Columns() - 1 - c.Col
	}
	return c.Row, c.Col
}

// position returns where the glyph of a cell is drawn.
func (l boardLayout) position(index int) (x, y int) {
	row, col := l.display(l.grid.Coord(index))
	return l.originX + col*cellWidth + 1, l.originY + row*rowSpacing
}

// frame is the box drawn around the cells.
func (l boardLayout) frame() core.Rect {
	return core.NewRect(l.originX-2, l.originY-1, l.grid.Columns()*cellWidth+3, l.grid.Rows()*rowSpacing+1)
}

// move shifts a cell index by a screen delta, staying on the board.
func (l boardLayout) move(index, dRow, dCol int) int {
	row, col := l.display(l.grid.Coord(index))
	row = core.Clamp(row+dRow, 0, l.grid.Rows()-1)
	col = core.Clamp(col+dCol, 0, l.grid.Columns()-1)
	r, c := l.display(topology.Coord{Row: row, Col: col})
	return l.grid.Index(topology.Coord{Row: r, Col: c})
}

// boardMarks are the highlights drawn around cells.
type boardMarks struct {
	cursor  int
	movable map[int]bool
	from    int // origin of an open branch, -1 when none
}

// boardView is everything needed to draw one frame of a match.
type boardView struct {
	title    string
	snap     engine.Snapshot
	layout   boardLayout
	marks    boardMarks
	log      []string
	autoFlip bool
	notice   string
}

func (v boardView) draw(s *core.Screen) {
	s.Clear()
	s.DrawTextCentered(0, v.title, core.ColorWhite)

	frame := v.layout.frame()
	s.DrawBox(frame, core.ColorGray)
	for r := 0; r < v.layout.grid.Rows(); r++ {
		row, _ := v.layout.display(topology.Coord{Row: r})
		y := v.layout.originY + row*rowSpacing
		s.SetColored(frame.X-2, y, rune('0'+r), core.ColorGray)
		s.SetColored(frame.Right()+1, y, rowArrow(r, v.layout.flipped), core.ColorGray)
	}
	for i, cell := range v.snap.Cells {
		v.drawCell(s, i, cell)
	}

	y := frame.Bottom() + 1
	v.drawStatus(s, y)
	v.drawLog(s, y+4)
}

func (v boardView) drawCell(s *core.Screen, index int, cell engine.CellView) {
	x, y := v.layout.position(index)
	option := v.snap.IsBranchOption(index)

	glyph, color := '·', core.ColorGray
	switch {
	case cell.Occupied && cell.Frozen:
		glyph, color = '◆', pieceColor(cell.Color, true)
	case cell.Occupied:
		glyph, color = '●', pieceColor(cell.Color, false)
	case option:
		glyph, color = '○', core.ColorGreen
	}
	s.SetColored(x, y, glyph, color)

	left, right, frameColor := ' ', ' ', core.ColorDefault
	switch {
	case index == v.marks.cursor:
		left, right, frameColor = '[', ']', core.ColorYellow
	case option:
		left, right, frameColor = '<', '>', core.ColorGreen
	case index == v.marks.from || v.marks.movable[index]:
		left, right, frameColor = '(', ')', core.ColorCyan
	}
	s.SetColored(x-1, y, left, frameColor)
	s.SetColored(x+1, y, right, frameColor)
}

func (v boardView) drawStatus(s *core.Screen, y int) {
	snap := v.snap
	x := v.layout.frame().X

	if snap.Phase == engine.PhaseEnded {
		s.DrawTextColored(x, y, snap.Winner.Title()+" wins!", pieceColor(snap.Winner, false))
		s.DrawTextColored(x+len(snap.Winner.Title())+7, y, "n: new match   esc: menu", core.ColorYellow)
	} else if snap.Current != match.NoColor {
		turn := snap.Current.Title() + "'s turn"
		s.DrawTextColored(x, y, turn, pieceColor(snap.Current, false))
		s.DrawTextColored(x+len(turn)+1, y, "· "+phaseHint(snap), core.ColorWhite)
	}

	switch {
	case v.notice != "":
		s.DrawTextColored(x, y+1, v.notice, core.ColorYellow)
	case snap.HasFace:
		s.DrawTextColored(x, y+1, snap.LastFace.Message(), core.ColorWhite)
	}

	flip := "off"
	if v.autoFlip {
		flip = "on"
	}
	tally := fmt.Sprintf("Red %d   Blue %d   moves %d   auto-flip %s", snap.RedLeft, snap.BlueLeft, snap.Moves, flip)
	s.DrawTextColored(x, y+2, tally, core.ColorGray)
}

func (v boardView) drawLog(s *core.Screen, y int) {
	x := v.layout.frame().X
	for i, line := range v.log {
		color := core.ColorGray
		if i == len(v.log)-1 {
			color = core.ColorWhite
		}
		s.DrawTextColored(x, y+i, line, color)
	}
}

func phaseHint(snap engine.Snapshot) string {
	switch snap.Phase {
	case engine.PhaseAwaitingRoll:
		if snap.ExtraTurn {
			return "roll again"
		}
		return "roll the dice"
	case engine.PhaseAwaitingSelection:
		return fmt.Sprintf("move a piece %d places", snap.PendingRoll)
	case engine.PhaseAwaitingBranch:
		return "choose where to land"
	case engine.PhaseHandoff:
		return "handing over..."
	default:
		return snap.Phase.String()
	}
}

func pieceColor(c match.Color, frozen bool) core.Color {
	switch {
	case c == match.Red && frozen:
		return core.ColorRed
	case c == match.Red:
		return core.ColorBrightRed
	case c == match.Blue && frozen:
		return core.ColorBlue
	case c == match.Blue:
		return core.ColorBrightBlue
	}
	return core.ColorDefault
}

// rowArrow shows which way pieces travel along a row on screen.
func rowArrow(row int, flipped bool) rune {
	left := row%2 == 0
	if flipped {
		left = !left
	}
	if left {
		return '←'
	}
	return '→'
}
