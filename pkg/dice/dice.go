// Package dice implements six-sided dice pools: hits, ones and glitches.
package dice

import (
	crand "crypto/rand"
	"encoding/binary"
	"fmt"
	"math/rand"
)

// NoLimit disables the hit cap of a pool roll.
const NoLimit = -1

// Glitch classifies a pool roll where too many dice came up as ones.
type Glitch int

const (
	GlitchNone Glitch = iota
	GlitchNormal
	GlitchCritical
)

func (g Glitch) String() string {
	switch g {
	case GlitchNone:
		return "none"
	case GlitchNormal:
		return "glitch"
	case GlitchCritical:
		return "critical_glitch"
	default:
		return "unknown"
	}
}

// Source is the randomness behind a Roller. *rand.Rand satisfies it.
type Source interface {
	Intn(n int) int
	Float64() float64
}

// Result captures one pool roll.
type Result struct {
	Pool   int
	Limit  int
	Dice   []int
	Hits   int
	Ones   int
	Glitch Glitch
}

// Roller rolls dice from a Source.
type Roller struct {
	src Source
}

// New creates a Roller drawing from src.
func New(src Source) *Roller {
	return &Roller{src: src}
}

// NewSeeded creates a Roller with a deterministic math/rand source.
func NewSeeded(seed int64) *Roller {
	return New(rand.New(rand.NewSource(seed)))
}

// NewRandom creates a Roller seeded from crypto/rand.
func NewRandom() (*Roller, error) {
	var b [8]byte
	if _, err := crand.Read(b[:]); err != nil {
		return nil, fmt.Errorf("read random seed: %w", err)
	}
	return NewSeeded(int64(binary.LittleEndian.Uint64(b[:]))), nil
}

// Die rolls a single six-sided die.
func (r *Roller) Die() int {
	return r.src.Intn(6) + 1
}

// Jitter returns a value in [0, 1) used to break initiative ties.
func (r *Roller) Jitter() float64 {
	return r.src.Float64()
}

// Intn returns a value in [0, n).
func (r *Roller) Intn(n int) int {
	if n <= 0 {
		return 0
	}
	return r.src.Intn(n)
}

// Pool rolls size dice. A 5 or 6 is a hit, a 1 is a one. When more than
// half of the dice are ones the roll glitches; with no hits at all it is a
// critical glitch. The glitch is judged on the uncapped hits, the reported
// hits are capped at limit unless limit is NoLimit.
func (r *Roller) Pool(size, limit int) Result {
	res := Result{Pool: size, Limit: limit}
	if size <= 0 {
		res.Pool = 0
		return res
	}
	res.Dice = make([]int, size)
	for i := range res.Dice {
		die := r.Die()
		res.Dice[i] = die
		switch {
		case die >= 5:
			res.Hits++
		case die == 1:
			res.Ones++
		}
	}
	if 2*res.Ones > size {
		if res.Hits > 0 {
			res.Glitch = GlitchNormal
		} else {
			res.Glitch = GlitchCritical
		}
	}
	if limit != NoLimit && res.Hits > limit {
		res.Hits = max(0, limit)
	}
	return res
}
