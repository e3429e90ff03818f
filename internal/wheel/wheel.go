package wheel

import (
	crand "crypto/rand"
	"encoding/binary"
	"fmt"
	"math/rand"
)

// Sector outcomes. Any positive value is the per-letter payout for the
// next consonant guess; interpretation is the caller's responsibility.
const (
	Bankrupt = -1
	LoseTurn = 0
)

// sectors is the fixed 24-entry multiset a spin samples from. Values that
// appear more than once are proportionally more likely.
var sectors = [24]int{
	0, -1, 500, 550, 600, 650, 700, 750, 800, 850, 900, -1,
	500, 550, 600, 650, 700, 750, 800, 850, 900, 500, 550, 600,
}

// Wheel samples outcomes from the fixed sector sequence. The random source
// is injected so tests can reproduce spins from a seed.
type Wheel struct {
	rng *rand.Rand
}

// New builds a wheel over the given source. A nil source gets seeded from
// system entropy.
func New(rng *rand.Rand) *Wheel {
	if rng == nil {
		rng = rand.New(rand.NewSource(newSeed())) //nolint:gosec // spin outcomes are not security sensitive
	}
	return &Wheel{rng: rng}
}

// Spin returns one uniformly sampled sector value.
func (that *Wheel) Spin() int {
	return sectors[that.rng.Intn(len(sectors))]
}

// Sectors returns a copy of the sector sequence.
func Sectors() []int {
	out := make([]int, len(sectors))
	copy(out, sectors[:])
	return out
}

// Label renders a sector value the way the board announces it.
func Label(value int) string {
	switch value {
	case Bankrupt:
		return "BANKRUPT!"
	case LoseTurn:
		return "LOSE A TURN!"
	default:
		return fmt.Sprintf("$%d", value)
	}
}

func newSeed() int64 {
	var b [8]byte
	if _, err := crand.Read(b[:]); err != nil {
		// Entropy exhaustion is not a condition worth failing a spin over.
		return 1
	}
	return int64(binary.LittleEndian.Uint64(b[:]))
}
