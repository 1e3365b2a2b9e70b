package match

// State is everything one match knows. It owns its board.
type State struct {
	Board       *Board
	Current     Color
	PendingRoll int
	ExtraTurn   bool
}

// NewState sets up a fresh board with both sides in their home rows.
func NewState(columns int, starting Color) *State {
	if starting != Red && starting != Blue {
		starting = Blue
	}
	b := NewBoard(columns)
	b.PlaceInitial()
	return &State{Board: b, Current: starting}
}

// HasRoll reports whether a roll is waiting to be spent.
func (s *State) HasRoll() bool {
	return s.PendingRoll > 0
}

// SetRoll records a roll of steps cells.
func (s *State) SetRoll(steps int, extra bool) {
	s.PendingRoll = steps
	s.ExtraTurn = extra
}

// ClearRoll discards the pending roll.
func (s *State) ClearRoll() {
	s.PendingRoll = 0
}

// SwitchPlayer hands the turn to the other side.
func (s *State) SwitchPlayer() {
	s.Current = s.Current.Opponent()
}
