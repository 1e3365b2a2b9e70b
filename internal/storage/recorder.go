package storage

import (
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/vovakirdan/stickrace/internal/dice"
	"github.com/vovakirdan/stickrace/internal/engine"
	"github.com/vovakirdan/stickrace/internal/match"
)

// MatchSaver persists a match with its moves.
type MatchSaver interface {
	SaveMatch(m MatchRecord, moves []MoveRecord) (int64, error)
}

// Recorder is an engine.Observer that writes every match it sees to a
// MatchSaver: completed matches when a winner is declared, abandoned
// ones when a new match replaces them or Abandon is called. Matches
// abandoned before the first move are not recorded.
type Recorder struct {
	engine.NopObserver

	saver   MatchSaver
	logger  *log.Logger
	now     func() time.Time
	variant string

	active   bool
	current  MatchRecord
	started  time.Time
	moves    []MoveRecord
	face     dice.Face
	captured int
	err      error
}

// NewRecorder creates a Recorder. A nil logger discards save errors,
// which are still available through Err.
func NewRecorder(saver MatchSaver, logger *log.Logger) *Recorder {
	return &Recorder{saver: saver, logger: logger, now: time.Now, captured: -1}
}

// SetVariant names the preset used for the next match.
func (r *Recorder) SetVariant(name string) {
	r.variant = name
}

// MatchID returns the ID of the match being recorded, or "".
func (r *Recorder) MatchID() string {
	if !r.active {
		return ""
	}
	return r.current.MatchID
}

// Err returns the last save error.
func (r *Recorder) Err() error {
	return r.err
}

func (r *Recorder) OnMatchStarted(columns int, starting match.Color) {
	r.Abandon()
	r.active = true
	r.started = r.now()
	r.moves = nil
	r.captured = -1
	r.current = MatchRecord{
		MatchID:  uuid.NewString(),
		Variant:  r.variant,
		Columns:  columns,
		Starting: starting.String(),
	}
}

func (r *Recorder) OnDiceRolled(_ match.Color, face dice.Face) {
	r.face = face
}

func (r *Recorder) OnPieceCaptured(piece match.Piece) {
	r.captured = int(piece.ID)
}

func (r *Recorder) OnPieceMoved(piece match.Piece, from, to int) {
	if !r.active {
		return
	}
	r.moves = append(r.moves, MoveRecord{
		MatchID:  r.current.MatchID,
		Seq:      len(r.moves) + 1,
		Color:    piece.Color.String(),
		Piece:    int(piece.ID),
		Face:     int(r.face),
		From:     from,
		To:       to,
		Captured: r.captured,
	})
	r.captured = -1
}

func (r *Recorder) OnMatchEnded(winner match.Color) {
	if !r.active {
		return
	}
	r.current.Winner = winner.String()
	r.finish(EndCompleted)
}

// Abandon records the match in progress, if any, as abandoned.
func (r *Recorder) Abandon() {
	if !r.active {
		return
	}
	if len(r.moves) == 0 {
		r.active = false
		return
	}
	r.finish(EndAbandoned)
}

func (r *Recorder) finish(reason string) {
	r.active = false
	r.current.EndReason = reason
	r.current.Moves = len(r.moves)
	r.current.Duration = int(r.now().Sub(r.started).Seconds())

	if _, err := r.saver.SaveMatch(r.current, r.moves); err != nil {
		r.err = err
		if r.logger != nil {
			r.logger.Error("Failed to save match", "match", r.current.MatchID, "error", err)
		}
		return
	}
	if r.logger != nil {
		r.logger.Info("Match saved", "match", r.current.MatchID, "reason", reason, "moves", r.current.Moves)
	}
}

var _ engine.Observer = (*Recorder)(nil)
