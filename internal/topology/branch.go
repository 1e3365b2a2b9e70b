package topology

// Destinations is where a move may end. When Branch is set the mover
// chooses between Primary and Alternate.
type Destinations struct {
	Primary   int
	Alternate int
	Branch    bool
}

// Options returns the selectable end cells in offer order.
func (d Destinations) Options() []int {
	if d.Branch {
		return []int{d.Primary, d.Alternate}
	}
	return []int{d.Primary}
}

// Resolve computes the destination(s) of a move of steps cells from index.
// A piece in the row next to its far row whose move lands in the far row
// may instead stop two rows back, in the same column: that is the fork.
func (g Grid) Resolve(index int, dir Direction, steps int) Destinations {
	primary := g.Advance(index, dir, steps)
	d := Destinations{Primary: primary, Alternate: primary}

	far := g.FarRow(dir)
	if steps > 0 && g.RowOf(index) == far-int(dir) && g.RowOf(primary) == far {
		d.Alternate = primary - int(dir)*2*g.columns
		d.Branch = true
	}
	return d
}
