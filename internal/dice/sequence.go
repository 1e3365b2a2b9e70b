package dice

// Sequence is a scripted roller that replays a fixed list of faces,
// wrapping around when exhausted. Used for demos and tests.
type Sequence struct {
	faces []Face
	next  int
}

// NewSequence creates a Sequence. It panics when faces is empty.
func NewSequence(faces ...Face) *Sequence {
	if len(faces) == 0 {
		panic("dice: NewSequence called with no faces")
	}
	return &Sequence{faces: faces}
}

// Roll returns the next scripted face.
func (s *Sequence) Roll() Face {
	f := s.faces[s.next%len(s.faces)]
	s.next++
	return f
}

// Rolled returns how many faces have been handed out.
func (s *Sequence) Rolled() int {
	return s.next
}
