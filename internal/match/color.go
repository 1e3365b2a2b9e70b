package match

import (
	"fmt"
	"strings"

	"github.com/vovakirdan/stickrace/internal/topology"
)

// Color identifies a side. The zero value means "nobody".
type Color uint8

const (
	NoColor Color = iota
	Red
	Blue
)

// Colors lists both sides in a fixed order.
var Colors = []Color{Red, Blue}

func (c Color) String() string {
	switch c {
	case Red:
		return "red"
	case Blue:
		return "blue"
	default:
		return "none"
	}
}

// Title returns the capitalised name used in messages.
func (c Color) Title() string {
	switch c {
	case Red:
		return "Red"
	case Blue:
		return "Blue"
	default:
		return "Nobody"
	}
}

// Opponent returns the other side.
func (c Color) Opponent() Color {
	switch c {
	case Red:
		return Blue
	case Blue:
		return Red
	default:
		return NoColor
	}
}

// Direction returns the row direction the side races in. Red starts on
// row 0 and races down, blue starts on the last row and races up.
func (c Color) Direction() topology.Direction {
	if c == Blue {
		return topology.TowardTop
	}
	return topology.TowardBottom
}

// ParseColor accepts "red" or "blue" in any case.
func ParseColor(s string) (Color, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "red":
		return Red, nil
	case "blue":
		return Blue, nil
	default:
		return NoColor, fmt.Errorf("match: unknown color %q (want red or blue)", s)
	}
}
