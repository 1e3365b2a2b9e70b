package engine

import "github.com/vovakirdan/stickrace/internal/match"

// Phase is where the turn state machine currently stands.
type Phase int

const (
	PhaseIdle              Phase = iota // no match started yet
	PhaseAwaitingRoll                   // current player must throw
	PhaseAwaitingSelection              // a roll is pending, a piece must be picked
	PhaseAwaitingBranch                 // the mover must pick one of two cells
	PhaseHandoff                        // turn is passing; input is queued
	PhaseEnded                          // a side has been eliminated
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseAwaitingRoll:
		return "awaiting-roll"
	case PhaseAwaitingSelection:
		return "awaiting-selection"
	case PhaseAwaitingBranch:
		return "awaiting-branch"
	case PhaseHandoff:
		return "handoff"
	case PhaseEnded:
		return "ended"
	default:
		return "unknown"
	}
}

// Event is an input to the engine.
type Event interface {
	event()
	Name() string
}

// StartMatch begins a new match.
type StartMatch struct {
	Columns  int
	Starting match.Color
}

func (StartMatch) event()       {}
func (StartMatch) Name() string { return "start" }

// ResetMatch throws away the current match and begins a new one.
type ResetMatch struct {
	Columns  int
	Starting match.Color
}

func (ResetMatch) event()       {}
func (ResetMatch) Name() string { return "reset" }

// RollDice throws the die for the current player.
type RollDice struct{}

func (RollDice) event()       {}
func (RollDice) Name() string { return "roll" }

// SelectPiece moves a piece by the pending roll.
type SelectPiece struct {
	Piece match.PieceRef
}

func (SelectPiece) event()       {}
func (SelectPiece) Name() string { return "select" }

// ChooseBranch answers an outstanding branch offer.
type ChooseBranch struct {
	Index int
}

func (ChooseBranch) event()       {}
func (ChooseBranch) Name() string { return "choose" }

// PassTurn gives up a roll that no piece can use.
type PassTurn struct{}

func (PassTurn) event()       {}
func (PassTurn) Name() string { return "pass" }

// HandoffElapsed tells the engine the turn-switch delay is over.
type HandoffElapsed struct{}

func (HandoffElapsed) event()       {}
func (HandoffElapsed) Name() string { return "handoff-elapsed" }
