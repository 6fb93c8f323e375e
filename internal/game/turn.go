package game

import (
	"github.com/peterkuimelis/solorun/internal/log"
)

// TurnModifier is the outcome of the start-of-turn die.
type TurnModifier struct {
	PA         int
	Multiplier float64
	Heal       int
	Message    string
}

// TurnModifierFor maps a d6 face to its turn modifier.
func TurnModifierFor(face int) TurnModifier {
	switch face {
	case 1:
		return TurnModifier{PA: 2, Multiplier: 1, Message: "Malus! Only 2 PA this turn"}
	case 4:
		return TurnModifier{PA: 4, Multiplier: 1, Message: "PA bonus! 4 actions this turn"}
	case 5:
		return TurnModifier{PA: 3, Multiplier: 1.5, Message: "Damage bonus! Attacks deal +50% this turn"}
	case 6:
		return TurnModifier{PA: 3, Multiplier: 1, Heal: 2, Message: "Healing! Recover 2 HP"}
	default:
		return TurnModifier{PA: 3, Multiplier: 1, Message: "Normal turn, 3 PA available"}
	}
}

// BattleState is the mutable combat state of one encounter.
type BattleState struct {
	EnemyHP          int
	EnemyMaxHP       int
	PlayerHP         int
	PlayerMaxHP      int
	PlayerShield     int
	BaseDamage       int
	PA               int
	DamageMultiplier float64
	Turn             int
	LastRoll         int
	TurnBonus        string
	Phase            TurnState
	MulliganUsed     bool
}

// TurnConfig holds what a TurnController needs to run an encounter.
type TurnConfig struct {
	State     BattleState // HP and enemy stats; turn fields are overwritten
	Deck      *Deck
	Signature SignaturePair
	Rand      Rand
	Logger    log.EventLogger
	Node      int
	Label     string
}

// TurnController runs the per-turn state machine of one encounter.
type TurnController struct {
	st     BattleState
	deck   *Deck
	sel    Selection
	rng    Rand
	sig    SignaturePair
	logger log.EventLogger
	node   int
	label  string
}

func NewTurnController(cfg TurnConfig) *TurnController {
	logger := cfg.Logger
	if logger == nil {
		logger = log.NewMemoryLogger()
	}
	st := cfg.State
	st.Phase = TurnAwaitingStart
	st.PA = 0
	st.DamageMultiplier = 1
	st.PlayerShield = 0
	st.MulliganUsed = false
	return &TurnController{
		st:     st,
		deck:   cfg.Deck,
		rng:    cfg.Rand,
		sig:    cfg.Signature,
		logger: logger,
		node:   cfg.Node,
		label:  cfg.Label,
	}
}

// State returns a snapshot of the battle state.
func (tc *TurnController) State() BattleState { return tc.st }

func (tc *TurnController) Deck() *Deck { return tc.deck }

// Pending returns the card armed for a combo, if any.
func (tc *TurnController) Pending() *CardInstance { return tc.sel.Armed() }

func (tc *TurnController) log(e log.GameEvent) {
	tc.logger.Log(e)
}

// StartTurn rolls the turn die and applies its modifier.
func (tc *TurnController) StartTurn() (TurnModifier, error) {
	if tc.st.Phase != TurnAwaitingStart {
		return TurnModifier{}, Reject(ReasonBattleOver, "turn cannot start in phase %s", tc.st.Phase)
	}
	roll := RollD6(tc.rng)
	mod := TurnModifierFor(roll)

	tc.st.Turn++
	tc.st.LastRoll = roll
	tc.st.PA = mod.PA
	tc.st.DamageMultiplier = mod.Multiplier
	tc.st.TurnBonus = mod.Message
	tc.st.MulliganUsed = false
	tc.st.Phase = TurnActive
	tc.log(log.NewTurnStartEvent(tc.st.Turn, tc.node, roll, mod.PA, mod.Message))

	if mod.Heal > 0 {
		tc.heal(mod.Heal, "turn bonus")
	}
	return mod, nil
}

func (tc *TurnController) requireActive() error {
	if tc.st.Phase != TurnActive {
		return Reject(ReasonBattleOver, "no active turn (%s)", tc.st.Phase)
	}
	return nil
}

// PlayCard plays one card on its own. Any pending combo card is released.
func (tc *TurnController) PlayCard(ci *CardInstance) error {
	if err := tc.requireActive(); err != nil {
		return err
	}
	if err := tc.apply(ResolveSingle(ci)); err != nil {
		return err
	}
	if prev := tc.sel.Clear(); prev != nil {
		tc.log(log.NewComboClearedEvent(tc.st.Turn, tc.node, prev.Card.ID, prev.Card.Name, "card played"))
	}
	return nil
}

// PlayCombo plays two compatible cards together.
func (tc *TurnController) PlayCombo(a, b *CardInstance) error {
	if err := tc.requireActive(); err != nil {
		return err
	}
	p, err := ResolveCombo(tc.sig, a, b)
	if err != nil {
		return err
	}
	if err := tc.apply(p); err != nil {
		return err
	}
	tc.sel.Clear()
	return nil
}

// SelectForCombo advances the two-step combo selection with a hand card.
// A card with no partner is played immediately. A second compatible card
// commits the combo; if it cannot be paid for, the first card stays armed.
func (tc *TurnController) SelectForCombo(ci *CardInstance) (SelectOutcome, error) {
	if err := tc.requireActive(); err != nil {
		return SelectOutcome{}, err
	}
	if !tc.deck.InHand(ci) {
		return SelectOutcome{}, Reject(ReasonNotInHand, "%s is not in hand", ci)
	}

	out := tc.sel.Select(tc.deck.Hand(), ci)
	switch out.Action {
	case SelectArmed:
		tc.log(log.NewComboArmedEvent(tc.st.Turn, tc.node, ci.Card.ID, ci.Card.Name))
	case SelectSingle:
		if err := tc.apply(ResolveSingle(ci)); err != nil {
			return SelectOutcome{}, err
		}
	case SelectCommit:
		p, err := ResolveCombo(tc.sig, out.Pending, ci)
		if err == nil {
			err = tc.apply(p)
		}
		if err != nil {
			tc.sel.Restore(out.Pending)
			return SelectOutcome{}, err
		}
	case SelectCleared:
		reason := "deselected"
		if out.Pending.ID != ci.ID {
			reason = "incompatible with " + ci.Card.Name
		}
		tc.log(log.NewComboClearedEvent(tc.st.Turn, tc.node, out.Pending.Card.ID, out.Pending.Card.Name, reason))
	}
	return out, nil
}

// Mulligan discards up to two hand cards and redraws that many. It is
// allowed once per turn and costs no PA.
func (tc *TurnController) Mulligan(ids []int) error {
	if err := tc.requireActive(); err != nil {
		return err
	}
	if tc.st.MulliganUsed {
		return Reject(ReasonBadMulligan, "mulligan already used this turn")
	}
	res, picked, err := tc.deck.Mulligan(ids)
	if err != nil {
		return err
	}
	tc.st.MulliganUsed = true

	names := make([]string, len(picked))
	for i, ci := range picked {
		names[i] = ci.Card.Name
		if armed := tc.sel.Armed(); armed != nil && armed.ID == ci.ID {
			tc.sel.Clear()
			tc.log(log.NewComboClearedEvent(tc.st.Turn, tc.node, ci.Card.ID, ci.Card.Name, "mulliganed"))
		}
	}
	tc.log(log.NewMulliganEvent(tc.st.Turn, tc.node, names))
	tc.logDraw(res)
	return nil
}

// EndTurn resolves the end of the turn: victory check, enemy strike, defeat
// check, then a fresh hand and a new turn.
func (tc *TurnController) EndTurn() (TurnState, error) {
	if err := tc.requireActive(); err != nil {
		return tc.st.Phase, err
	}

	if tc.st.EnemyHP <= 0 {
		tc.sel.Clear()
		tc.st.Phase = TurnVictory
		tc.log(log.NewVictoryEvent(tc.st.Turn, tc.node, tc.label))
		return tc.st.Phase, nil
	}

	incoming := tc.st.BaseDamage
	mitigated := max(0, incoming-tc.st.PlayerShield)
	oldHP := tc.st.PlayerHP
	tc.st.PlayerHP = max(0, oldHP-mitigated)
	tc.log(log.NewEnemyStrikeEvent(tc.st.Turn, tc.node, incoming, tc.st.PlayerShield, oldHP, tc.st.PlayerHP))

	if tc.st.PlayerHP <= 0 {
		tc.sel.Clear()
		tc.st.Phase = TurnDefeat
		tc.log(log.NewDefeatEvent(tc.st.Turn, tc.node, tc.label))
		return tc.st.Phase, nil
	}

	if prev := tc.sel.Clear(); prev != nil {
		tc.log(log.NewComboClearedEvent(tc.st.Turn, tc.node, prev.Card.ID, prev.Card.Name, "turn ended"))
	}
	tc.deck.DiscardHand()
	tc.st.PlayerShield = 0
	tc.st.Phase = TurnAwaitingStart
	tc.logDraw(tc.deck.Draw(DrawPerTurn))
	if _, err := tc.StartTurn(); err != nil {
		return tc.st.Phase, err
	}
	return tc.st.Phase, nil
}

// apply pays for a play and resolves its effect. Nothing changes if the play
// is rejected.
func (tc *TurnController) apply(p Play) error {
	for _, ci := range p.Cards {
		if !tc.deck.InHand(ci) {
			return Reject(ReasonNotInHand, "%s is not in hand", ci)
		}
	}
	if tc.st.PA < p.Cost {
		return Reject(ReasonInsufficientPA, "need %d PA, have %d", p.Cost, tc.st.PA)
	}

	tc.st.PA -= p.Cost
	for _, ci := range p.Cards {
		tc.deck.Discard(ci)
	}

	names := make([]string, len(p.Cards))
	for i, ci := range p.Cards {
		names[i] = ci.Card.Name
	}
	if p.Kind == PlaySingle {
		ci := p.Cards[0]
		tc.log(log.NewPlayCardEvent(tc.st.Turn, tc.node, ci.Card.ID, ci.Card.Name, p.Cost))
	} else {
		tc.log(log.NewComboEvent(tc.st.Turn, tc.node, names[0], names[1], p.Kind == PlaySignatureCombo, p.Cost, p.Value))
	}

	switch p.Effect {
	case EffectDamage:
		dmg := ScaleDamage(p.Value, tc.st.DamageMultiplier)
		oldHP := tc.st.EnemyHP
		tc.st.EnemyHP = max(0, oldHP-dmg)
		tc.log(log.NewDamageEvent(tc.st.Turn, tc.node, dmg, oldHP, tc.st.EnemyHP))
	case EffectShield:
		tc.st.PlayerShield += p.Value
		tc.log(log.NewShieldEvent(tc.st.Turn, tc.node, p.Value, tc.st.PlayerShield))
	case EffectHeal:
		tc.heal(p.Value, names[0])
	default:
		for _, n := range names {
			tc.log(log.NewNoEffectEvent(tc.st.Turn, tc.node, n))
		}
	}
	return nil
}

func (tc *TurnController) heal(amount int, reason string) {
	oldHP := tc.st.PlayerHP
	tc.st.PlayerHP = min(tc.st.PlayerMaxHP, oldHP+amount)
	tc.log(log.NewHealEvent(tc.st.Turn, tc.node, oldHP, tc.st.PlayerHP, reason))
}

func (tc *TurnController) logDraw(res DrawResult) {
	if res.Reshuffles > 0 {
		tc.log(log.NewShuffleEvent(tc.st.Turn, tc.node, res.Reshuffled))
	}
	for _, ci := range res.Drawn {
		tc.log(log.NewDrawEvent(tc.st.Turn, tc.node, ci.Card.ID, ci.Card.Name))
	}
	for _, ci := range res.Overflow {
		tc.log(log.NewOverflowDiscardEvent(tc.st.Turn, tc.node, ci.Card.ID, ci.Card.Name))
	}
}
