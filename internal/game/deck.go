package game

import "fmt"

const (
	MaxHandSize     = 6
	InitialHandSize = 5
	DrawPerTurn     = 3
	MaxMulligan     = 2
)

// DrawResult reports what a draw did.
type DrawResult struct {
	Drawn      []*CardInstance // cards that entered the hand
	Overflow   []*CardInstance // cards sent straight to discard because the hand was full
	Reshuffles int             // times the discard pile became the draw pile
	Reshuffled int             // total cards moved by those reshuffles
}

// Requested returns how many cards left the draw pile.
func (r DrawResult) Requested() int {
	return len(r.Drawn) + len(r.Overflow)
}

// Deck tracks one battle's card economy: draw pile, hand, and discard pile.
// The front of the draw pile (index 0) is the next card drawn.
type Deck struct {
	draw    []*CardInstance
	hand    []*CardInstance
	discard []*CardInstance
	total   int
	rng     Rand
}

// NewDeck creates a deck whose draw pile holds cards in the given order.
func NewDeck(cards []*CardInstance, r Rand) *Deck {
	d := &Deck{
		draw:  append([]*CardInstance(nil), cards...),
		total: len(cards),
		rng:   r,
	}
	d.checkIntegrity("new deck")
	return d
}

func (d *Deck) Hand() []*CardInstance        { return d.hand }
func (d *Deck) DrawPile() []*CardInstance    { return d.draw }
func (d *Deck) DiscardPile() []*CardInstance { return d.discard }
func (d *Deck) Total() int                   { return d.total }

// Shuffle permutes the draw pile.
func (d *Deck) Shuffle() {
	Shuffle(d.rng, d.draw)
}

// Draw moves up to count cards from the draw pile. When the pile runs dry with
// draws pending, the discard pile is shuffled into a new draw pile. Cards that
// would push the hand past MaxHandSize go to the discard pile instead. If both
// piles are empty the draw stops early.
func (d *Deck) Draw(count int) DrawResult {
	var res DrawResult
	for i := 0; i < count; i++ {
		if len(d.draw) == 0 {
			if len(d.discard) == 0 {
				break
			}
			res.Reshuffles++
			res.Reshuffled += len(d.discard)
			d.draw = d.discard
			d.discard = nil
			d.Shuffle()
		}
		card := d.draw[0]
		d.draw = d.draw[1:]
		if len(d.hand) >= MaxHandSize {
			d.discard = append(d.discard, card)
			res.Overflow = append(res.Overflow, card)
			continue
		}
		d.hand = append(d.hand, card)
		res.Drawn = append(res.Drawn, card)
	}
	d.checkIntegrity("draw")
	return res
}

// Mulligan discards 1 to MaxMulligan distinct hand cards and draws that many.
// Invalid selections are rejected before anything moves.
func (d *Deck) Mulligan(ids []int) (DrawResult, []*CardInstance, error) {
	if len(ids) == 0 || len(ids) > MaxMulligan {
		return DrawResult{}, nil, Reject(ReasonBadMulligan, "select 1 to %d cards, got %d", MaxMulligan, len(ids))
	}
	seen := make(map[int]bool, len(ids))
	picked := make([]*CardInstance, 0, len(ids))
	for _, id := range ids {
		if seen[id] {
			return DrawResult{}, nil, Reject(ReasonBadMulligan, "card #%d selected twice", id)
		}
		seen[id] = true
		ci := d.handByID(id)
		if ci == nil {
			return DrawResult{}, nil, Reject(ReasonBadMulligan, "card #%d is not in hand", id)
		}
		picked = append(picked, ci)
	}
	for _, ci := range picked {
		d.Discard(ci)
	}
	return d.Draw(len(picked)), picked, nil
}

// Discard moves a hand card to the discard pile. It reports false if the
// card was not in hand.
func (d *Deck) Discard(ci *CardInstance) bool {
	for i, c := range d.hand {
		if c.ID == ci.ID {
			d.hand = append(d.hand[:i], d.hand[i+1:]...)
			d.discard = append(d.discard, c)
			d.checkIntegrity("discard")
			return true
		}
	}
	return false
}

// DiscardHand moves the whole hand to the discard pile.
func (d *Deck) DiscardHand() {
	d.discard = append(d.discard, d.hand...)
	d.hand = nil
	d.checkIntegrity("discard hand")
}

// FindInHand returns the first hand instance of the given card id, skipping
// the listed instance ids.
func (d *Deck) FindInHand(cardID string, exclude ...int) *CardInstance {
	for _, ci := range d.hand {
		if ci.Card.ID != cardID || containsID(exclude, ci.ID) {
			continue
		}
		return ci
	}
	return nil
}

// InHand reports whether the instance is in hand.
func (d *Deck) InHand(ci *CardInstance) bool {
	return ci != nil && d.handByID(ci.ID) != nil
}

func (d *Deck) handByID(id int) *CardInstance {
	for _, ci := range d.hand {
		if ci.ID == id {
			return ci
		}
	}
	return nil
}

func containsID(ids []int, id int) bool {
	for _, x := range ids {
		if x == id {
			return true
		}
	}
	return false
}

// checkIntegrity panics if a card was created or lost.
func (d *Deck) checkIntegrity(op string) {
	n := len(d.draw) + len(d.hand) + len(d.discard)
	if n != d.total {
		panic(IntegrityViolation(fmt.Sprintf("%s: %d cards in piles, expected %d", op, n, d.total)))
	}
	if len(d.hand) > MaxHandSize {
		panic(IntegrityViolation(fmt.Sprintf("%s: hand holds %d cards, max %d", op, len(d.hand), MaxHandSize)))
	}
}
