// Package dice implements the weighted five-faced throw that drives every
// turn: a face in 0..4 drawn by inverse CDF, its movement distance and
// whether it grants another throw.
package dice

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/charmbracelet/log"
)

// Face is the result of one throw.
type Face int

const (
	FaceZero Face = iota
	FaceOne
	FaceTwo
	FaceThree
	FaceFour
)

// FaceCount is the number of distinct faces.
const FaceCount = 5

// Probabilities holds the weight of each face, indexed by face.
var Probabilities = [FaceCount]float64{0.06, 0.25, 0.38, 0.25, 0.06}

// Source yields uniform draws in [0, 1).
type Source interface {
	Float64() float64
}

// NewSeededSource returns a deterministic Source for the given seed.
// A zero seed means "seed from the clock".
func NewSeededSource(seed int64) Source {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return rand.New(rand.NewSource(seed))
}

// FaceFor maps a uniform draw onto a face: the first face whose cumulative
// probability exceeds the draw. Draws that run past the table (rounding,
// or a draw of exactly 1) land on the last face.
func FaceFor(draw float64) Face {
	cumulative := 0.0
	for i, p := range Probabilities {
		cumulative += p
		if draw < cumulative {
			return Face(i)
		}
	}
	return Face(FaceCount - 1)
}

// Valid reports whether f is one of the five faces.
func (f Face) Valid() bool {
	return f >= FaceZero && f <= FaceFour
}

// Steps returns the movement distance of the face. Zero moves six.
func (f Face) Steps() int {
	if f == FaceZero {
		return 6
	}
	return int(f)
}

// ExtraTurn reports whether throwing f lets the same player throw again.
func (f Face) ExtraTurn() bool {
	return ExtraTurn(f.Steps())
}

// ExtraTurn classifies a movement distance: 1, 4 and 6 keep the turn,
// 2 and 3 pass it.
func ExtraTurn(steps int) bool {
	switch steps {
	case 1, 4, 6:
		return true
	default:
		return false
	}
}

func (f Face) String() string {
	return fmt.Sprintf("%d", int(f))
}

// Message is the announcement shown after a throw.
func (f Face) Message() string {
	switch f {
	case FaceZero:
		return "It's a 0, move 6 places. Play again!"
	case FaceOne:
		return "It's a 1, move 1 place. Play again!"
	case FaceTwo:
		return "It's a 2, move 2 places."
	case FaceThree:
		return "It's a 3, move 3 places."
	case FaceFour:
		return "It's a 4, move 4 places. Play again!"
	default:
		return fmt.Sprintf("It's a %d.", int(f))
	}
}

// Die throws faces from a Source and logs every result at debug level.
type Die struct {
	src    Source
	logger *log.Logger
}

// New creates a Die. A nil logger disables logging.
func New(src Source, logger *log.Logger) *Die {
	return &Die{src: src, logger: logger}
}

// Roll throws the die once.
func (d *Die) Roll() Face {
	draw := d.src.Float64()
	face := FaceFor(draw)
	if d.logger != nil {
		d.logger.Debug("dice roll", "draw", draw, "face", int(face), "steps", face.Steps())
	}
	return face
}
