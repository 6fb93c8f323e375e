package game

import (
	"fmt"
	"strings"
)

// --- Enums ---

type CardType int

const (
	CardTypeAttack CardType = iota
	CardTypeDefense
	CardTypeMovement
	CardTypeHeal
	CardTypeUtility
	CardTypeDebuff
)

func (ct CardType) String() string {
	switch ct {
	case CardTypeAttack:
		return "Attack"
	case CardTypeDefense:
		return "Defense"
	case CardTypeMovement:
		return "Movement"
	case CardTypeHeal:
		return "Heal"
	case CardTypeUtility:
		return "Utility"
	case CardTypeDebuff:
		return "Debuff"
	default:
		return "Unknown"
	}
}

// ParseCardType parses a card type name (case-insensitive).
func ParseCardType(s string) (CardType, error) {
	for ct := CardTypeAttack; ct <= CardTypeDebuff; ct++ {
		if strings.EqualFold(ct.String(), strings.TrimSpace(s)) {
			return ct, nil
		}
	}
	return 0, fmt.Errorf("unknown card type %q", s)
}

type ComboSymbol int

const (
	SymbolNone ComboSymbol = iota
	SymbolFire
	SymbolVolt
	SymbolShield
	SymbolLink
)

func (s ComboSymbol) String() string {
	switch s {
	case SymbolFire:
		return "Fire"
	case SymbolVolt:
		return "Volt"
	case SymbolShield:
		return "Shield"
	case SymbolLink:
		return "Link"
	default:
		return ""
	}
}

// ParseComboSymbol parses a symbol name. The empty string is SymbolNone.
func ParseComboSymbol(s string) (ComboSymbol, error) {
	s = strings.TrimSpace(s)
	if s == "" || strings.EqualFold(s, "none") {
		return SymbolNone, nil
	}
	for sym := SymbolFire; sym <= SymbolLink; sym++ {
		if strings.EqualFold(sym.String(), s) {
			return sym, nil
		}
	}
	return SymbolNone, fmt.Errorf("unknown combo symbol %q", s)
}

// Effect is the combat effect a play resolves to.
type Effect int

const (
	EffectNone Effect = iota
	EffectDamage
	EffectShield
	EffectHeal
)

func (e Effect) String() string {
	switch e {
	case EffectDamage:
		return "Damage"
	case EffectShield:
		return "Shield"
	case EffectHeal:
		return "Heal"
	default:
		return "None"
	}
}

// effectPrecedence lists card types in the order they win when a play mixes types.
var effectPrecedence = []struct {
	Type   CardType
	Effect Effect
}{
	{CardTypeAttack, EffectDamage},
	{CardTypeDefense, EffectShield},
	{CardTypeHeal, EffectHeal},
}

// EffectFor returns the effect of a play made of cards with the given types:
// Attack beats Defense beats Heal; anything else has no combat effect.
func EffectFor(types ...CardType) Effect {
	for _, p := range effectPrecedence {
		for _, t := range types {
			if t == p.Type {
				return p.Effect
			}
		}
	}
	return EffectNone
}

type TurnState int

const (
	TurnAwaitingStart TurnState = iota
	TurnActive
	TurnVictory
	TurnDefeat
)

func (s TurnState) String() string {
	switch s {
	case TurnAwaitingStart:
		return "Awaiting Turn Start"
	case TurnActive:
		return "Active Turn"
	case TurnVictory:
		return "Victory"
	case TurnDefeat:
		return "Defeat"
	default:
		return "Unknown"
	}
}

// Outcome is how a battle ended, as reported back to the campaign.
type Outcome int

const (
	OutcomeNone Outcome = iota
	OutcomeVictory
	OutcomeDefeat
	OutcomeAbandoned
)

func (o Outcome) String() string {
	switch o {
	case OutcomeVictory:
		return "Victory"
	case OutcomeDefeat:
		return "Defeat"
	case OutcomeAbandoned:
		return "Abandoned"
	default:
		return "None"
	}
}

type PlayKind int

const (
	PlaySingle PlayKind = iota
	PlayCommonCombo
	PlaySignatureCombo
)

func (k PlayKind) String() string {
	switch k {
	case PlayCommonCombo:
		return "Combo"
	case PlaySignatureCombo:
		return "Signature Combo"
	default:
		return "Single"
	}
}

// --- Card definition (static, from catalog) ---

type Card struct {
	ID          string
	Name        string
	Description string
	PACost      int
	Type        CardType
	Symbol      ComboSymbol
	Value       int
}

func (c *Card) String() string {
	return c.Name
}

// HasSymbol reports whether the card can take part in combos.
func (c *Card) HasSymbol() bool {
	return c.Symbol != SymbolNone
}

// SignaturePair is a hero's unordered pair of signature card ids.
type SignaturePair struct {
	A string
	B string
}

// Matches reports whether the two ids form this pair, in either order.
func (p SignaturePair) Matches(a, b string) bool {
	if p.A == "" || p.B == "" {
		return false
	}
	return (a == p.A && b == p.B) || (a == p.B && b == p.A)
}

// HeroProfile is an immutable hero catalog entry.
type HeroProfile struct {
	ID          string
	Name        string
	Class       string
	BaseHP      int
	BaseDef     int
	ResourceMax int
	InitialDeck []string // card ids, duplicates allowed
	Signature   SignaturePair
}

func (h *HeroProfile) String() string {
	return h.Name
}

// --- CardInstance (runtime card in deck/hand/discard) ---

type CardInstance struct {
	Card *Card
	ID   int // unique instance ID within a battle
}

func (ci *CardInstance) String() string {
	if ci == nil {
		return "(empty)"
	}
	return fmt.Sprintf("%s#%d", ci.Card.ID, ci.ID)
}
