package game

import "math"

const (
	SignatureComboCost = 1
	SignatureComboMult = 2.5
	CommonComboBonus   = 2
)

// Play is a resolved single-card or two-card play, ready to be paid for and applied.
type Play struct {
	Kind   PlayKind
	Cards  []*CardInstance
	Cost   int
	Value  int
	Effect Effect
}

// Compatible reports whether two cards share a combo symbol.
func Compatible(a, b *Card) bool {
	return a.HasSymbol() && a.Symbol == b.Symbol
}

// HasPartner reports whether some other card in hand can combo with ci.
func HasPartner(hand []*CardInstance, ci *CardInstance) bool {
	for _, other := range hand {
		if other.ID != ci.ID && Compatible(ci.Card, other.Card) {
			return true
		}
	}
	return false
}

// ResolveSingle resolves a one-card play.
func ResolveSingle(ci *CardInstance) Play {
	return Play{
		Kind:   PlaySingle,
		Cards:  []*CardInstance{ci},
		Cost:   ci.Card.PACost,
		Value:  ci.Card.Value,
		Effect: EffectFor(ci.Card.Type),
	}
}

// ResolveCombo resolves a two-card combo. A pair matching sig is a signature
// combo; any other symbol-compatible pair is a common combo.
func ResolveCombo(sig SignaturePair, a, b *CardInstance) (Play, error) {
	if a.ID == b.ID {
		return Play{}, Reject(ReasonIncompatible, "%s cannot combo with itself", a.Card.Name)
	}
	if !Compatible(a.Card, b.Card) {
		return Play{}, Reject(ReasonIncompatible, "%s and %s do not share a combo symbol", a.Card.Name, b.Card.Name)
	}
	p := Play{
		Cards:  []*CardInstance{a, b},
		Effect: EffectFor(a.Card.Type, b.Card.Type),
	}
	sum := a.Card.Value + b.Card.Value
	if sig.Matches(a.Card.ID, b.Card.ID) {
		p.Kind = PlaySignatureCombo
		p.Cost = SignatureComboCost
		p.Value = int(math.Round(float64(sum) * SignatureComboMult))
	} else {
		p.Kind = PlayCommonCombo
		p.Cost = min(a.Card.PACost, b.Card.PACost)
		p.Value = sum + CommonComboBonus
	}
	return p, nil
}

// ScaleDamage applies the turn's damage multiplier, rounding down.
func ScaleDamage(value int, mult float64) int {
	return int(math.Floor(float64(value) * mult))
}

// --- Combo selection ---

// SelectAction is what a combo selection resolved to.
type SelectAction int

const (
	SelectArmed   SelectAction = iota // card is pending, waiting for a partner
	SelectCommit                      // pending card + this card form a combo
	SelectSingle                      // no partner in hand: play the card alone
	SelectCleared                     // pending selection dropped, nothing played
)

func (a SelectAction) String() string {
	switch a {
	case SelectArmed:
		return "Armed"
	case SelectCommit:
		return "Commit"
	case SelectSingle:
		return "Single"
	case SelectCleared:
		return "Cleared"
	default:
		return "Unknown"
	}
}

// SelectOutcome is the result of Selection.Select.
type SelectOutcome struct {
	Action  SelectAction
	Card    *CardInstance // the card just chosen
	Pending *CardInstance // the previously armed card, for Commit and Cleared
}

// Selection is the two-step combo commit: Idle or Armed with one card.
type Selection struct {
	armed *CardInstance
}

// Armed returns the pending card, or nil when idle.
func (s *Selection) Armed() *CardInstance { return s.armed }

// Clear drops any pending card and returns it.
func (s *Selection) Clear() *CardInstance {
	prev := s.armed
	s.armed = nil
	return prev
}

// Select advances the selection with a card from hand. Only Armed leaves the
// selection non-idle. The caller acts on Commit and Single.
func (s *Selection) Select(hand []*CardInstance, ci *CardInstance) SelectOutcome {
	if s.armed == nil {
		if HasPartner(hand, ci) {
			s.armed = ci
			return SelectOutcome{Action: SelectArmed, Card: ci}
		}
		return SelectOutcome{Action: SelectSingle, Card: ci}
	}
	pending := s.armed
	s.armed = nil
	if pending.ID != ci.ID && Compatible(pending.Card, ci.Card) {
		return SelectOutcome{Action: SelectCommit, Card: ci, Pending: pending}
	}
	return SelectOutcome{Action: SelectCleared, Card: ci, Pending: pending}
}

// Restore re-arms a card after a committed combo could not be paid for.
func (s *Selection) Restore(ci *CardInstance) {
	s.armed = ci
}
