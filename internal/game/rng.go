package game

import (
	"math/rand"
	"time"
)

// Rand is the randomness source for shuffles and dice.
// *math/rand.Rand satisfies it; tests inject scripted sources.
type Rand interface {
	Intn(n int) int
}

// NewRand returns a seeded generator. Seed 0 means time-based.
func NewRand(seed int64) *rand.Rand {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return rand.New(rand.NewSource(seed))
}

// Shuffle permutes cards in place with Fisher–Yates.
func Shuffle[T any](r Rand, cards []T) {
	for i := len(cards) - 1; i > 0; i-- {
		j := r.Intn(i + 1)
		cards[i], cards[j] = cards[j], cards[i]
	}
}

// RollD6 rolls a six-sided die.
func RollD6(r Rand) int {
	return r.Intn(6) + 1
}
