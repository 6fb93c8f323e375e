package game

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/peterkuimelis/solorun/internal/log"
)

// BattleConfig holds configuration for opening an encounter.
type BattleConfig struct {
	Catalog    *Catalog
	Hero       *HeroProfile
	Node       int
	Label      string
	EnemyHP    int
	BaseDamage int
	PlayerHP   int // hero HP carried in from the campaign (0 = BaseHP)
	Rand       Rand
	Seed       int64 // used when Rand is nil (0 for random)
	Logger     log.EventLogger
	NoShuffle  bool // skip the opening shuffle (for deterministic tests)
}

// Battle is one encounter: a hero's deck against a single enemy.
// It is not safe for concurrent use.
type Battle struct {
	id     string
	hero   *HeroProfile
	node   int
	label  string
	turns  *TurnController
	logger log.EventLogger
	closed bool
}

// NewBattle builds the hero's deck, draws the opening hand, and starts turn 1.
func NewBattle(cfg BattleConfig) (*Battle, error) {
	if cfg.Catalog == nil || cfg.Hero == nil {
		return nil, fmt.Errorf("battle needs a catalog and a hero")
	}
	if cfg.EnemyHP <= 0 {
		return nil, fmt.Errorf("enemy HP must be > 0, got %d", cfg.EnemyHP)
	}
	logger := cfg.Logger
	if logger == nil {
		logger = log.NewMemoryLogger()
	}
	r := cfg.Rand
	if r == nil {
		r = NewRand(cfg.Seed)
	}

	instances := make([]*CardInstance, 0, len(cfg.Hero.InitialDeck))
	for i, id := range cfg.Hero.InitialDeck {
		card, ok := cfg.Catalog.Card(id)
		if !ok {
			return nil, fmt.Errorf("hero %s: unknown card %q", cfg.Hero.ID, id)
		}
		instances = append(instances, &CardInstance{Card: card, ID: i + 1})
	}
	deck := NewDeck(instances, r)
	if !cfg.NoShuffle {
		deck.Shuffle()
	}

	hp := cfg.PlayerHP
	if hp <= 0 || hp > cfg.Hero.BaseHP {
		hp = cfg.Hero.BaseHP
	}

	b := &Battle{
		id:     uuid.NewString(),
		hero:   cfg.Hero,
		node:   cfg.Node,
		label:  cfg.Label,
		logger: logger,
	}
	b.turns = NewTurnController(TurnConfig{
		State: BattleState{
			EnemyHP:     cfg.EnemyHP,
			EnemyMaxHP:  cfg.EnemyHP,
			PlayerHP:    hp,
			PlayerMaxHP: cfg.Hero.BaseHP,
			BaseDamage:  cfg.BaseDamage,
		},
		Deck:      deck,
		Signature: cfg.Hero.Signature,
		Rand:      r,
		Logger:    logger,
		Node:      cfg.Node,
		Label:     cfg.Label,
	})

	logger.Log(log.NewBattleStartEvent(cfg.Node, cfg.Label, cfg.EnemyHP, cfg.BaseDamage))
	b.turns.logDraw(deck.Draw(InitialHandSize))
	if _, err := b.turns.StartTurn(); err != nil {
		return nil, err
	}
	return b, nil
}

func (b *Battle) ID() string             { return b.id }
func (b *Battle) Hero() *HeroProfile     { return b.hero }
func (b *Battle) Node() int              { return b.node }
func (b *Battle) Label() string          { return b.label }
func (b *Battle) State() BattleState     { return b.turns.State() }
func (b *Battle) Deck() *Deck            { return b.turns.Deck() }
func (b *Battle) Pending() *CardInstance { return b.turns.Pending() }

// Outcome reports how the battle ended, or OutcomeNone while it is running.
func (b *Battle) Outcome() Outcome {
	if b.closed {
		return OutcomeAbandoned
	}
	switch b.turns.State().Phase {
	case TurnVictory:
		return OutcomeVictory
	case TurnDefeat:
		return OutcomeDefeat
	default:
		return OutcomeNone
	}
}

// Over reports whether the battle has ended.
func (b *Battle) Over() bool {
	return b.Outcome() != OutcomeNone
}

func (b *Battle) guard() error {
	if o := b.Outcome(); o != OutcomeNone {
		return Reject(ReasonBattleOver, "battle already ended (%s)", o)
	}
	return nil
}

// findInHand resolves a catalog card id to a hand instance.
func (b *Battle) findInHand(cardID string, exclude ...int) (*CardInstance, error) {
	ci := b.Deck().FindInHand(cardID, exclude...)
	if ci == nil {
		return nil, Reject(ReasonNotInHand, "%s is not in hand", cardID)
	}
	return ci, nil
}

// Select feeds a card into the combo selection. A copy other than the armed
// one is preferred, so two copies of the same card can pair up.
func (b *Battle) Select(cardID string) (SelectOutcome, error) {
	if err := b.guard(); err != nil {
		return SelectOutcome{}, err
	}
	var ci *CardInstance
	if pending := b.Pending(); pending != nil {
		ci = b.Deck().FindInHand(cardID, pending.ID)
		if ci == nil && pending.Card.ID == cardID {
			ci = pending
		}
	} else {
		ci = b.Deck().FindInHand(cardID)
	}
	if ci == nil {
		return SelectOutcome{}, Reject(ReasonNotInHand, "%s is not in hand", cardID)
	}
	return b.turns.SelectForCombo(ci)
}

// Play plays a single card by catalog id.
func (b *Battle) Play(cardID string) error {
	if err := b.guard(); err != nil {
		return err
	}
	ci, err := b.findInHand(cardID)
	if err != nil {
		return err
	}
	return b.turns.PlayCard(ci)
}

// PlayCombo plays two hand cards as a combo, bypassing the selection steps.
func (b *Battle) PlayCombo(first, second string) error {
	if err := b.guard(); err != nil {
		return err
	}
	a, err := b.findInHand(first)
	if err != nil {
		return err
	}
	c, err := b.findInHand(second, a.ID)
	if err != nil {
		return err
	}
	return b.turns.PlayCombo(a, c)
}

// Mulligan discards the named hand cards and redraws as many.
func (b *Battle) Mulligan(cardIDs []string) error {
	if err := b.guard(); err != nil {
		return err
	}
	if len(cardIDs) == 0 || len(cardIDs) > MaxMulligan {
		return Reject(ReasonBadMulligan, "select 1 to %d cards, got %d", MaxMulligan, len(cardIDs))
	}
	ids := make([]int, 0, len(cardIDs))
	for _, id := range cardIDs {
		ci := b.Deck().FindInHand(id, ids...)
		if ci == nil {
			return Reject(ReasonBadMulligan, "%s is not in hand", id)
		}
		ids = append(ids, ci.ID)
	}
	return b.turns.Mulligan(ids)
}

// EndTurn ends the current turn and reports the resulting outcome.
func (b *Battle) EndTurn() (Outcome, error) {
	if err := b.guard(); err != nil {
		return b.Outcome(), err
	}
	if _, err := b.turns.EndTurn(); err != nil {
		return b.Outcome(), err
	}
	return b.Outcome(), nil
}

// Close abandons the battle without a result.
func (b *Battle) Close() error {
	if err := b.guard(); err != nil {
		return err
	}
	b.closed = true
	b.turns.sel.Clear()
	b.logger.Log(log.NewBattleClosedEvent(b.turns.State().Turn, b.node, b.label))
	return nil
}
