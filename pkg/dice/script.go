package dice

// Script is a Source that replays fixed die faces. It is meant for tests.
//
// Intn(6) yields the next scripted face; other Intn(n) calls consume the same
// script modulo n. An exhausted script rolls 2s, which are neither hits nor
// ones. Float64 always returns 0.
type Script struct {
	faces []int
	next  int
}

var _ Source = (*Script)(nil)

// NewScript creates a Script replaying faces in order.
func NewScript(faces ...int) *Script {
	return &Script{faces: faces}
}

// Push appends more faces to the script.
func (s *Script) Push(faces ...int) {
	s.faces = append(s.faces, faces...)
}

// Remaining reports how many scripted faces have not been consumed.
func (s *Script) Remaining() int {
	return len(s.faces) - s.next
}

func (s *Script) Intn(n int) int {
	face := 2
	if s.next < len(s.faces) {
		face = s.faces[s.next]
		s.next++
	}
	if n <= 0 {
		return 0
	}
	return ((face-1)%n + n) % n
}

func (s *Script) Float64() float64 {
	return 0
}
