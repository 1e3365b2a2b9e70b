package engine

import "errors"

// Rejection reasons. A rejected event never changes the match.
var (
	ErrNoMatch         = errors.New("engine: no match in progress")
	ErrMatchOver       = errors.New("engine: match is over")
	ErrNotYourPiece    = errors.New("engine: piece belongs to the opponent")
	ErrNoRoll          = errors.New("engine: no roll pending")
	ErrRollPending     = errors.New("engine: roll already pending")
	ErrPieceFrozen     = errors.New("engine: piece has reached its far row")
	ErrFarRowReentry   = errors.New("engine: piece cannot re-enter its far row")
	ErrOwnPiece        = errors.New("engine: destination holds own piece")
	ErrUnknownPiece    = errors.New("engine: no such piece on the board")
	ErrBranchPending   = errors.New("engine: branch choice outstanding")
	ErrNoBranchPending = errors.New("engine: no branch choice outstanding")
	ErrNotAnOption     = errors.New("engine: cell is not a branch option")
	ErrMovesAvailable  = errors.New("engine: a legal move exists")
	ErrNotHandingOff   = errors.New("engine: no turn handoff in progress")
)

var rejectionMessages = map[error]string{
	ErrNoMatch:         "Start a match first!",
	ErrMatchOver:       "The match is over. Start a new one!",
	ErrNotYourPiece:    "You can't move pieces of the opponent!",
	ErrNoRoll:          "Roll the dice first!",
	ErrRollPending:     "You already rolled! Move a piece.",
	ErrPieceFrozen:     "That piece has reached the final row and can't move any more!",
	ErrFarRowReentry:   "That piece has been to the final row, so it can't enter again!",
	ErrOwnPiece:        "You can't move onto your own piece!",
	ErrUnknownPiece:    "There is no such piece on the board.",
	ErrBranchPending:   "Choose one of the highlighted cells first!",
	ErrNoBranchPending: "There is nothing to choose right now.",
	ErrNotAnOption:     "That cell is not one of the choices!",
	ErrMovesAvailable:  "You still have a move to make!",
}

// RejectionMessage returns the player-facing text for a rejection reason.
func RejectionMessage(err error) string {
	for sentinel, msg := range rejectionMessages {
		if errors.Is(err, sentinel) {
			return msg
		}
	}
	return ""
}
