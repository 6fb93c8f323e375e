package game

import (
	"fmt"
	"testing"

	"github.com/peterkuimelis/solorun/internal/log"
)

// scriptedRand returns queued values in order. Once the script runs out it
// returns n-1, which makes Fisher–Yates leave the pile in place.
type scriptedRand struct {
	t     *testing.T
	vals  []int
	calls int
}

func (r *scriptedRand) Intn(n int) int {
	r.calls++
	if len(r.vals) == 0 {
		return n - 1
	}
	v := r.vals[0]
	r.vals = r.vals[1:]
	if v < 0 || v >= n {
		r.t.Fatalf("scripted value %d out of range for Intn(%d)", v, n)
	}
	return v
}

// dice scripts die faces (1-6) for consecutive turn starts.
func dice(t *testing.T, faces ...int) *scriptedRand {
	r := &scriptedRand{t: t}
	for _, f := range faces {
		r.vals = append(r.vals, f-1)
	}
	return r
}

// --- Card helpers ---

func testCard(id string, cost int, ct CardType, sym ComboSymbol, value int) *Card {
	return &Card{ID: id, Name: id, PACost: cost, Type: ct, Symbol: sym, Value: value}
}

func attack(id string, sym ComboSymbol, value int) *Card {
	return testCard(id, 1, CardTypeAttack, sym, value)
}

func defense(id string, sym ComboSymbol, value int) *Card {
	return testCard(id, 1, CardTypeDefense, sym, value)
}

func healCard(id string, sym ComboSymbol, value int) *Card {
	return testCard(id, 1, CardTypeHeal, sym, value)
}

// instances numbers cards 1..n in order.
func instances(cards ...*Card) []*CardInstance {
	out := make([]*CardInstance, len(cards))
	for i, c := range cards {
		out[i] = &CardInstance{Card: c, ID: i + 1}
	}
	return out
}

// fillers returns n symbol-less utility cards.
func fillers(n int) []*Card {
	out := make([]*Card, n)
	for i := range out {
		out[i] = testCard(fmt.Sprintf("filler_%d", i+1), 1, CardTypeUtility, SymbolNone, 1)
	}
	return out
}

// controllerSetup describes a turn controller built around a known hand.
type controllerSetup struct {
	State     BattleState
	Hand      []*Card // drawn into hand first, in order
	Pile      []*Card // left in the draw pile after the hand
	Signature SignaturePair
	Rand      *scriptedRand // first value is the opening turn's die
}

// newTestController draws the hand without shuffling and starts turn 1.
func newTestController(t *testing.T, s controllerSetup) (*TurnController, *log.MemoryLogger) {
	t.Helper()
	if len(s.Hand) > MaxHandSize {
		t.Fatalf("test hand of %d exceeds max hand size", len(s.Hand))
	}
	logger := log.NewMemoryLogger()
	all := append(append([]*Card(nil), s.Hand...), s.Pile...)
	deck := NewDeck(instances(all...), s.Rand)
	deck.Draw(len(s.Hand))

	st := s.State
	if st.PlayerMaxHP == 0 {
		st.PlayerMaxHP = st.PlayerHP
	}
	if st.EnemyMaxHP == 0 {
		st.EnemyMaxHP = st.EnemyHP
	}
	tc := NewTurnController(TurnConfig{
		State:     st,
		Deck:      deck,
		Signature: s.Signature,
		Rand:      s.Rand,
		Logger:    logger,
		Node:      5,
		Label:     "Patuglia Goblin",
	})
	if _, err := tc.StartTurn(); err != nil {
		t.Fatalf("start turn: %v", err)
	}
	return tc, logger
}

// handCard returns the hand instance at position i.
func handCard(t *testing.T, tc *TurnController, i int) *CardInstance {
	t.Helper()
	hand := tc.Deck().Hand()
	if i >= len(hand) {
		t.Fatalf("hand has %d cards, wanted index %d", len(hand), i)
	}
	return hand[i]
}

// assertConserved fails the test if the deck's piles drifted from its total.
func assertConserved(t *testing.T, d *Deck) {
	t.Helper()
	n := len(d.DrawPile()) + len(d.Hand()) + len(d.DiscardPile())
	if n != d.Total() {
		t.Fatalf("conservation broken: draw %d + hand %d + discard %d != %d",
			len(d.DrawPile()), len(d.Hand()), len(d.DiscardPile()), d.Total())
	}
	if len(d.Hand()) > MaxHandSize {
		t.Fatalf("hand holds %d cards, max %d", len(d.Hand()), MaxHandSize)
	}
}

func expectReason(t *testing.T, err error, want Reason) {
	t.Helper()
	if err == nil {
		t.Fatalf("expected %s rejection, got nil", want)
	}
	got, ok := IsInvalidAction(err)
	if !ok {
		t.Fatalf("expected InvalidAction, got %T: %v", err, err)
	}
	if got != want {
		t.Fatalf("expected reason %s, got %s (%v)", want, got, err)
	}
}
