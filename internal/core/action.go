package core

// Action represents a semantic board action, abstracted from physical key presses.
// The platform maps keys to actions and actions to engine events.
type Action int

const (
	ActionNone    Action = iota
	ActionUp             // move cursor one row up
	ActionDown           // move cursor one row down
	ActionLeft           // move cursor one column left
	ActionRight          // move cursor one column right
	ActionConfirm        // select the piece or branch option under the cursor
	ActionRoll           // throw the sticks
	ActionPass           // give up the roll when no move exists
	ActionCycle          // jump the cursor to the next movable piece or branch option
	ActionFlip           // toggle automatic board flipping
	ActionRestart        // start a new match with the same settings
	ActionBack           // return to the setup menu
	ActionQuit           // exit the session
)

// String returns a human-readable name for the action.
func (a Action) String() string {
	switch a {
	case ActionNone:
		return "None"
	case ActionUp:
		return "Up"
	case ActionDown:
		return "Down"
	case ActionLeft:
		return "Left"
	case ActionRight:
		return "Right"
	case ActionConfirm:
		return "Confirm"
	case ActionRoll:
		return "Roll"
	case ActionPass:
		return "Pass"
	case ActionCycle:
		return "Cycle"
	case ActionFlip:
		return "Flip"
	case ActionRestart:
		return "Restart"
	case ActionBack:
		return "Back"
	case ActionQuit:
		return "Quit"
	default:
		return "Unknown"
	}
}
