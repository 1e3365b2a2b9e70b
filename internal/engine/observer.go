package engine

import (
	"slices"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/stickrace/internal/dice"
	"github.com/vovakirdan/stickrace/internal/match"
)

// Observer receives everything the engine wants the outside world to know.
// Callbacks run synchronously inside Dispatch.
type Observer interface {
	OnMatchStarted(columns int, starting match.Color)
	OnMessage(text string)
	OnDiceRolled(player match.Color, face dice.Face)
	OnBranchOffered(primary, alternate int)
	OnPieceCaptured(piece match.Piece)
	OnPieceMoved(piece match.Piece, from, to int)
	OnTurnChanged(player match.Color)
	OnMatchEnded(winner match.Color)
}

// NopObserver ignores every callback. Embed it to implement only a few.
type NopObserver struct{}

func (NopObserver) OnMatchStarted(int, match.Color) {}
func (NopObserver) OnMessage(string) {}
func (NopObserver) OnDiceRolled(match.Color, dice.Face) {}
func (NopObserver) OnBranchOffered(int, int) {}
func (NopObserver) OnPieceCaptured(match.Piece) {}
func (NopObserver) OnPieceMoved(match.Piece, int, int) {}
func (NopObserver) OnTurnChanged(match.Color) {}
func (NopObserver) OnMatchEnded(match.Color) {}

// Observers fans every callback out to each member in order.
type Observers []Observer

func (o Observers) OnMatchStarted(columns int, starting match.Color) {
	for _, obs := range o {
		obs.OnMatchStarted(columns, starting)
	}
}

func (o Observers) OnMessage(text string) {
	for _, obs := range o {
		obs.OnMessage(text)
	}
}

func (o Observers) OnDiceRolled(player match.Color, face dice.Face) {
	for _, obs := range o {
		obs.OnDiceRolled(player, face)
	}
}

func (o Observers) OnBranchOffered(primary, alternate int) {
	for _, obs := range o {
		obs.OnBranchOffered(primary, alternate)
	}
}

func (o Observers) OnPieceCaptured(piece match.Piece) {
	for _, obs := range o {
		obs.OnPieceCaptured(piece)
	}
}

func (o Observers) OnPieceMoved(piece match.Piece, from, to int) {
	for _, obs := range o {
		obs.OnPieceMoved(piece, from, to)
	}
}

func (o Observers) OnTurnChanged(player match.Color) {
	for _, obs := range o {
		obs.OnTurnChanged(player)
	}
}

func (o Observers) OnMatchEnded(winner match.Color) {
	for _, obs := range o {
		obs.OnMatchEnded(winner)
	}
}

// Move is one applied move as seen by a Recorder.
type Move struct {
	Piece match.Piece
	From  int
	To    int
}

// Roll is one throw as seen by a Recorder.
type Roll struct {
	Player match.Color
	Face   dice.Face
}

// Recorder keeps every callback in memory.
type Recorder struct {
	Started  int
	Messages []string
	Rolls    []Roll
	Branches [][2]int
	Captures []match.Piece
	Moves    []Move
	Turns    []match.Color
	Winners  []match.Color
}

func (r *Recorder) OnMatchStarted(int, match.Color) { r.Started++ }
func (r *Recorder) OnMessage(text string) { r.Messages = append(r.Messages, text) }

func (r *Recorder) OnDiceRolled(player match.Color, face dice.Face) {
	r.Rolls = append(r.Rolls, Roll{Player: player, Face: face})
}

func (r *Recorder) OnBranchOffered(primary, alternate int) {
	r.Branches = append(r.Branches, [2]int{primary, alternate})
}

func (r *Recorder) OnPieceCaptured(piece match.Piece) { r.Captures = append(r.Captures, piece) }

func (r *Recorder) OnPieceMoved(piece match.Piece, from, to int) {
	r.Moves = append(r.Moves, Move{Piece: piece, From: from, To: to})
}

func (r *Recorder) OnTurnChanged(player match.Color) { r.Turns = append(r.Turns, player) }
func (r *Recorder) OnMatchEnded(winner match.Color) { r.Winners = append(r.Winners, winner) }

// LastMessage returns the most recent message, or "".
func (r *Recorder) LastMessage() string {
	if len(r.Messages) == 0 {
		return ""
	}
	return r.Messages[len(r.Messages)-1]
}

// Tail returns up to n of the most recent messages, oldest first.
func (r *Recorder) Tail(n int) []string {
	if n <= 0 {
		return nil
	}
	start := max(len(r.Messages)-n, 0)
	return slices.Clone(r.Messages[start:])
}

// LogObserver writes match events to a logger at info level.
type LogObserver struct {
	Logger *log.Logger
}

func (l LogObserver) OnMatchStarted(columns int, starting match.Color) {
	l.Logger.Info("match started", "columns", columns, "starting", starting)
}

func (l LogObserver) OnMessage(text string) {
	l.Logger.Debug("message", "text", text)
}

func (l LogObserver) OnDiceRolled(player match.Color, face dice.Face) {
	l.Logger.Info("dice rolled", "player", player, "face", int(face), "steps", face.Steps())
}

func (l LogObserver) OnBranchOffered(primary, alternate int) {
	l.Logger.Info("branch offered", "primary", primary, "alternate", alternate)
}

func (l LogObserver) OnPieceCaptured(piece match.Piece) {
	l.Logger.Info("piece captured", "piece", int(piece.ID), "color", piece.Color)
}

func (l LogObserver) OnPieceMoved(piece match.Piece, from, to int) {
	l.Logger.Info("piece moved", "piece", int(piece.ID), "color", piece.Color, "from", from, "to", to)
}

func (l LogObserver) OnTurnChanged(player match.Color) {
	l.Logger.Info("turn changed", "player", player)
}

func (l LogObserver) OnMatchEnded(winner match.Color) {
	l.Logger.Info("match ended", "winner", winner)
}
