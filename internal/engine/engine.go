// Package engine runs the turn state machine of a match. It accepts one
// Event at a time, validates it against the match state, applies it and
// reports what happened through an Observer.
//
// The engine is single-threaded: callers must not Dispatch concurrently.
// The pause between turns is not a timer inside the engine. When a turn
// passes, Dispatch returns Outcome.Handoff and the caller delivers
// HandoffElapsed once that much time has gone by; anything dispatched in
// between is queued and replayed after the switch.
package engine

import (
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/stickrace/internal/dice"
	"github.com/vovakirdan/stickrace/internal/match"
	"github.com/vovakirdan/stickrace/internal/topology"
)

// DefaultTurnDelay is the pause before the turn passes to the opponent.
const DefaultTurnDelay = 1500 * time.Millisecond

// Roller produces die faces.
type Roller interface {
	Roll() dice.Face
}

// Options tunes an Engine.
type Options struct {
	// TurnDelay is the handoff pause. Zero or negative switches at once.
	TurnDelay time.Duration
	Logger    *log.Logger
}

// DefaultOptions returns the standard handoff delay and a silent logger.
func DefaultOptions() Options {
	return Options{TurnDelay: DefaultTurnDelay}
}

// Outcome describes how the engine handled one event.
type Outcome struct {
	Accepted bool
	Queued   bool
	Reason   error
	Rolled   bool
	Face     dice.Face
	// Handoff is set when the turn is passing: deliver HandoffElapsed
	// after this long.
	Handoff time.Duration
}

type branchOffer struct {
	piece   match.PieceID
	from    int
	options [2]int
}

// Engine owns one match at a time.
type Engine struct {
	die    Roller
	obs    Observer
	opts   Options
	logger *log.Logger

	state    *match.State
	phase    Phase
	branch   *branchOffer
	queue    []Event
	lastFace dice.Face
	hasFace  bool
	winner   match.Color
	moves    int
}

// New creates an idle engine. Call Start to begin a match.
func New(die Roller, obs Observer, opts Options) *Engine {
	if obs == nil {
		obs = NopObserver{}
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Engine{
		die:    die,
		obs:    obs,
		opts:   opts,
		logger: logger,
	}
}

// Dispatch handles one event to completion.
func (e *Engine) Dispatch(ev Event) Outcome {
	switch ev := ev.(type) {
	case StartMatch:
		return e.start(ev.Columns, ev.Starting)
	case ResetMatch:
		return e.start(ev.Columns, ev.Starting)
	}

	switch e.phase {
	case PhaseIdle:
		return e.reject(ev, ErrNoMatch)
	case PhaseEnded:
		return e.reject(ev, ErrMatchOver)
	case PhaseHandoff:
		if _, ok := ev.(HandoffElapsed); ok {
			return e.finishHandoff()
		}
		e.queue = append(e.queue, ev)
		e.logger.Debug("event queued", "event", ev.Name(), "player", e.state.Current, "queued", len(e.queue))
		return Outcome{Queued: true}
	}

	switch ev := ev.(type) {
	case RollDice:
		return e.roll(ev)
	case SelectPiece:
		return e.selectPiece(ev)
	case ChooseBranch:
		return e.chooseBranch(ev)
	case PassTurn:
		return e.pass(ev)
	case HandoffElapsed:
		return e.reject(ev, ErrNotHandingOff)
	default:
		panic(fmt.Sprintf("engine: unhandled event %T", ev))
	}
}

// Start begins a new match, discarding any match in progress.
func (e *Engine) Start(columns int, starting match.Color) Outcome {
	return e.Dispatch(StartMatch{Columns: columns, Starting: starting})
}

// Reset is Start under the name the UI uses for "new game".
func (e *Engine) Reset(columns int, starting match.Color) Outcome {
	return e.Dispatch(ResetMatch{Columns: columns, Starting: starting})
}

// Roll throws the die for the current player.
func (e *Engine) Roll() Outcome {
	return e.Dispatch(RollDice{})
}

// Select moves a piece by the pending roll.
func (e *Engine) Select(ref match.PieceRef) Outcome {
	return e.Dispatch(SelectPiece{Piece: ref})
}

// Choose answers a branch offer.
func (e *Engine) Choose(index int) Outcome {
	return e.Dispatch(ChooseBranch{Index: index})
}

// Pass gives up an unusable roll.
func (e *Engine) Pass() Outcome {
	return e.Dispatch(PassTurn{})
}

// HandoffElapsed completes a pending turn switch.
func (e *Engine) HandoffElapsed() Outcome {
	return e.Dispatch(HandoffElapsed{})
}

// Phase returns the current phase.
func (e *Engine) Phase() Phase { return e.phase }

// Current returns the side to move, or NoColor before the first match.
func (e *Engine) Current() match.Color {
	if e.state == nil {
		return match.NoColor
	}
	return e.state.Current
}

// Winner returns the winning side once the match has ended.
func (e *Engine) Winner() match.Color { return e.winner }

// Grid returns the geometry of the current match.
func (e *Engine) Grid() topology.Grid {
	if e.state == nil {
		return topology.New(topology.DefaultColumns)
	}
	return e.state.Board.Grid()
}

// PieceAt returns the identity of the piece on index, if any.
func (e *Engine) PieceAt(index int) (match.PieceRef, bool) {
	if e.state == nil {
		return match.PieceRef{}, false
	}
	p := e.state.Board.OccupantAt(index)
	if p == nil {
		return match.PieceRef{}, false
	}
	return match.PieceRef{ID: p.ID, Color: p.Color}, true
}

func (e *Engine) start(columns int, starting match.Color) Outcome {
	if starting != match.Red && starting != match.Blue {
		starting = match.Blue
	}
	e.state = match.NewState(columns, starting)
	e.phase = PhaseAwaitingRoll
	e.branch = nil
	e.queue = nil
	e.hasFace = false
	e.winner = match.NoColor
	e.moves = 0

	cols := e.state.Board.Grid().Columns()
	e.logger.Debug("match started", "columns", cols, "starting", starting)
	e.obs.OnMatchStarted(cols, starting)
	e.obs.OnMessage(fmt.Sprintf("%s starts! Roll the dice.", starting.Title()))
	return Outcome{Accepted: true}
}

func (e *Engine) roll(ev RollDice) Outcome {
	switch e.phase {
	case PhaseAwaitingSelection:
		return e.reject(ev, ErrRollPending)
	case PhaseAwaitingBranch:
		return e.reject(ev, ErrBranchPending)
	}

	face := e.die.Roll()
	steps := face.Steps()
	extra := dice.ExtraTurn(steps)
	e.state.SetRoll(steps, extra)
	e.lastFace = face
	e.hasFace = true
	e.phase = PhaseAwaitingSelection

	player := e.state.Current
	e.logger.Debug("event accepted", "event", ev.Name(), "player", player, "face", int(face), "steps", steps, "extra", extra)
	e.obs.OnDiceRolled(player, face)
	if extra {
		e.obs.OnMessage(fmt.Sprintf("%s rolled %d. Move a piece and then roll again!", player.Title(), steps))
	} else {
		e.obs.OnMessage(fmt.Sprintf("%s rolled %d. Move a piece, then turn ends.", player.Title(), steps))
	}
	return Outcome{Accepted: true, Rolled: true, Face: face}
}

func (e *Engine) selectPiece(ev SelectPiece) Outcome {
	if e.phase == PhaseAwaitingBranch {
		return e.reject(ev, ErrBranchPending)
	}

	board := e.state.Board
	piece, ok := board.Piece(ev.Piece.ID)
	if !ok || (ev.Piece.Color != match.NoColor && ev.Piece.Color != piece.Color) {
		return e.reject(ev, ErrUnknownPiece)
	}
	if piece.Frozen() {
		return e.reject(ev, ErrPieceFrozen)
	}
	if piece.Color != e.state.Current {
		return e.reject(ev, ErrNotYourPiece)
	}
	if !e.state.HasRoll() {
		return e.reject(ev, ErrNoRoll)
	}

	from, _ := board.IndexOf(piece.ID)
	dest := board.Grid().Resolve(from, piece.Color.Direction(), e.state.PendingRoll)

	if e.ownPieceAt(dest.Primary) {
		return e.reject(ev, ErrOwnPiece)
	}
	if !dest.Branch {
		return e.apply(ev, piece, from, dest.Primary)
	}

	e.branch = &branchOffer{
		piece:   piece.ID,
		from:    from,
		options: [2]int{dest.Primary, dest.Alternate},
	}
	e.phase = PhaseAwaitingBranch
	e.logger.Debug("event accepted", "event", ev.Name(), "player", piece.Color, "piece", int(piece.ID), "branch", e.branch.options)
	e.obs.OnBranchOffered(dest.Primary, dest.Alternate)
	e.obs.OnMessage(fmt.Sprintf("%s, choose where to land.", piece.Color.Title()))
	return Outcome{Accepted: true}
}

func (e *Engine) chooseBranch(ev ChooseBranch) Outcome {
	if e.phase != PhaseAwaitingBranch || e.branch == nil {
		return e.reject(ev, ErrNoBranchPending)
	}
	if ev.Index != e.branch.options[0] && ev.Index != e.branch.options[1] {
		return e.reject(ev, ErrNotAnOption)
	}
	if e.ownPieceAt(ev.Index) {
		return e.reject(ev, ErrOwnPiece)
	}

	piece, ok := e.state.Board.Piece(e.branch.piece)
	if !ok {
		return e.reject(ev, ErrUnknownPiece)
	}
	return e.apply(ev, piece, e.branch.from, ev.Index)
}

func (e *Engine) pass(ev PassTurn) Outcome {
	switch e.phase {
	case PhaseAwaitingRoll:
		return e.reject(ev, ErrNoRoll)
	case PhaseAwaitingBranch:
		return e.reject(ev, ErrBranchPending)
	}
	if len(e.LegalMoves()) > 0 {
		return e.reject(ev, ErrMovesAvailable)
	}

	player := e.state.Current
	e.logger.Debug("event accepted", "event", ev.Name(), "player", player)
	e.obs.OnMessage(fmt.Sprintf("%s has no move and passes.", player.Title()))
	return e.continueTurn()
}

// apply performs a validated move: capture, relocation, far-row marking,
// win check and turn continuation.
func (e *Engine) apply(ev Event, piece *match.Piece, from, to int) Outcome {
	board := e.state.Board
	grid := board.Grid()
	far := grid.FarRow(piece.Color.Direction())

	if piece.ReachedFarRow && grid.RowOf(to) == far {
		return e.reject(ev, ErrFarRowReentry)
	}

	if target := board.OccupantAt(to); target != nil && target.ID != piece.ID {
		captured, err := board.Remove(target.ID)
		if err != nil {
			panic(fmt.Sprintf("engine: capture at %d: %v", to, err))
		}
		e.logger.Debug("piece captured", "piece", int(captured.ID), "color", captured.Color, "at", to)
		e.obs.OnPieceCaptured(*captured)
	}

	if err := board.Relocate(piece.ID, to); err != nil {
		panic(fmt.Sprintf("engine: relocate %d to %d: %v", piece.ID, to, err))
	}
	if grid.RowOf(to) == far {
		piece.ReachedFarRow = true
	}
	e.branch = nil
	e.moves++

	e.logger.Debug("event accepted", "event", ev.Name(), "player", piece.Color, "piece", int(piece.ID), "from", from, "to", to)
	e.obs.OnPieceMoved(*piece, from, to)

	if winner := e.checkWinner(); winner != match.NoColor {
		e.winner = winner
		e.phase = PhaseEnded
		e.state.ClearRoll()
		e.queue = nil
		e.logger.Debug("match ended", "winner", winner, "moves", e.moves)
		e.obs.OnMessage(fmt.Sprintf("%s wins!", winner.Title()))
		e.obs.OnMatchEnded(winner)
		return Outcome{Accepted: true}
	}

	return e.continueTurn()
}

func (e *Engine) checkWinner() match.Color {
	board := e.state.Board
	switch {
	case board.Count(match.Red) == 0:
		return match.Blue
	case board.Count(match.Blue) == 0:
		return match.Red
	default:
		return match.NoColor
	}
}

// continueTurn spends the roll and either keeps the turn or starts the
// handoff to the opponent.
func (e *Engine) continueTurn() Outcome {
	e.state.ClearRoll()

	if e.state.ExtraTurn {
		e.phase = PhaseAwaitingRoll
		e.obs.OnMessage(fmt.Sprintf("%s can roll again!", e.state.Current.Title()))
		return Outcome{Accepted: true}
	}

	if e.opts.TurnDelay <= 0 {
		e.switchTurn()
		return Outcome{Accepted: true}
	}
	e.phase = PhaseHandoff
	return Outcome{Accepted: true, Handoff: e.opts.TurnDelay}
}

func (e *Engine) switchTurn() {
	e.state.SwitchPlayer()
	e.phase = PhaseAwaitingRoll
	next := e.state.Current
	e.logger.Debug("turn changed", "player", next)
	e.obs.OnTurnChanged(next)
	e.obs.OnMessage(fmt.Sprintf("%s's turn! Roll the dice.", next.Title()))
}

func (e *Engine) finishHandoff() Outcome {
	e.switchTurn()

	queued := e.queue
	e.queue = nil
	out := Outcome{Accepted: true}
	for _, ev := range queued {
		res := e.Dispatch(ev)
		if res.Handoff > 0 {
			out.Handoff = res.Handoff
		}
	}
	return out
}

func (e *Engine) ownPieceAt(index int) bool {
	p := e.state.Board.OccupantAt(index)
	return p != nil && p.Color == e.state.Current
}

func (e *Engine) reject(ev Event, reason error) Outcome {
	player := match.NoColor
	if e.state != nil {
		player = e.state.Current
	}
	e.logger.Debug("event rejected", "event", ev.Name(), "player", player, "phase", e.phase, "reason", reason)
	if msg := RejectionMessage(reason); msg != "" {
		e.obs.OnMessage(msg)
	}
	return Outcome{Reason: reason}
}
