package game

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/peterkuimelis/solorun/internal/log"
)

func TestTurnModifierTable(t *testing.T) {
	want := map[int]TurnModifier{
		1: {PA: 2, Multiplier: 1},
		2: {PA: 3, Multiplier: 1},
		3: {PA: 3, Multiplier: 1},
		4: {PA: 4, Multiplier: 1},
		5: {PA: 3, Multiplier: 1.5},
		6: {PA: 3, Multiplier: 1, Heal: 2},
	}
	for face, w := range want {
		got := TurnModifierFor(face)
		got.Message = ""
		if diff := cmp.Diff(w, got); diff != "" {
			t.Errorf("face %d (-want +got):\n%s", face, diff)
		}
		if TurnModifierFor(face).Message == "" {
			t.Errorf("face %d has no message", face)
		}
	}
}

func TestStartTurnAppliesDie(t *testing.T) {
	for face := 1; face <= 6; face++ {
		tc, logger := newTestController(t, controllerSetup{
			State: BattleState{EnemyHP: 14, PlayerHP: 9, PlayerMaxHP: 10, BaseDamage: 4},
			Hand:  fillers(3),
			Rand:  dice(t, face),
		})
		st := tc.State()
		mod := TurnModifierFor(face)
		if st.PA != mod.PA || st.DamageMultiplier != mod.Multiplier || st.LastRoll != face {
			t.Errorf("face %d: PA=%d mult=%v roll=%d", face, st.PA, st.DamageMultiplier, st.LastRoll)
		}
		wantHP := 9
		if face == 6 {
			wantHP = 10 // +2 capped at max
		}
		if st.PlayerHP != wantHP {
			t.Errorf("face %d: HP=%d, want %d", face, st.PlayerHP, wantHP)
		}
		if st.Phase != TurnActive || st.Turn != 1 {
			t.Errorf("face %d: phase=%s turn=%d", face, st.Phase, st.Turn)
		}
		if e := logger.EventsOfType(log.EventTurnStart); len(e) != 1 || e[0].Value != face {
			t.Errorf("face %d: expected one TurnStart event with the roll", face)
		}
	}
}

func TestMultiplierResetsNextTurn(t *testing.T) {
	tc, _ := newTestController(t, controllerSetup{
		State: BattleState{EnemyHP: 30, PlayerHP: 20, BaseDamage: 1},
		Hand:  fillers(3),
		Pile:  fillers(3),
		Rand:  dice(t, 5, 2),
	})
	if tc.State().DamageMultiplier != 1.5 {
		t.Fatalf("expected x1.5 on face 5")
	}
	if _, err := tc.EndTurn(); err != nil {
		t.Fatal(err)
	}
	if st := tc.State(); st.DamageMultiplier != 1 || st.PA != 3 || st.Turn != 2 {
		t.Errorf("expected baseline turn 2, got mult=%v PA=%d turn=%d", st.DamageMultiplier, st.PA, st.Turn)
	}
}

// Enemy 14 HP; two Fire attack cards (value 3, cost 1) played as a common
// combo deal 3+3+2 = 8.
func TestCommonComboDamage(t *testing.T) {
	tc, logger := newTestController(t, controllerSetup{
		State: BattleState{EnemyHP: 14, PlayerHP: 10, BaseDamage: 4},
		Hand:  []*Card{attack("atk_a", SymbolFire, 3), attack("atk_b", SymbolFire, 3)},
		Rand:  dice(t, 2),
	})
	a, b := handCard(t, tc, 0), handCard(t, tc, 1)

	out, err := tc.SelectForCombo(a)
	if err != nil || out.Action != SelectArmed {
		t.Fatalf("expected first card armed, got %s err=%v", out.Action, err)
	}
	out, err = tc.SelectForCombo(b)
	if err != nil || out.Action != SelectCommit {
		t.Fatalf("expected combo commit, got %s err=%v", out.Action, err)
	}

	st := tc.State()
	if st.EnemyHP != 6 {
		t.Errorf("expected enemy HP 6, got %d", st.EnemyHP)
	}
	if st.PA != 2 {
		t.Errorf("expected PA 3-1=2, got %d", st.PA)
	}
	if len(tc.Deck().Hand()) != 0 || len(tc.Deck().DiscardPile()) != 2 {
		t.Errorf("both cards should be in discard")
	}
	if len(logger.EventsOfType(log.EventCombo)) != 1 {
		t.Errorf("expected one Combo event")
	}
}

func TestSignatureComboCostsOnePA(t *testing.T) {
	sig := SignaturePair{A: "sig_1", B: "sig_2"}
	tc, _ := newTestController(t, controllerSetup{
		State:     BattleState{EnemyHP: 40, PlayerHP: 10, BaseDamage: 4},
		Hand:      []*Card{testCard("sig_1", 2, CardTypeAttack, SymbolVolt, 6), testCard("sig_2", 2, CardTypeAttack, SymbolVolt, 4)},
		Signature: sig,
		Rand:      dice(t, 1), // only 2 PA
	})
	if err := tc.PlayCombo(handCard(t, tc, 0), handCard(t, tc, 1)); err != nil {
		t.Fatal(err)
	}
	st := tc.State()
	if st.PA != 1 {
		t.Errorf("signature should cost 1 PA, PA left %d", st.PA)
	}
	if st.EnemyHP != 40-25 {
		t.Errorf("expected 25 damage, enemy HP %d", st.EnemyHP)
	}
}

func TestDamageUsesMultiplier(t *testing.T) {
	tc, _ := newTestController(t, controllerSetup{
		State: BattleState{EnemyHP: 14, PlayerHP: 10, BaseDamage: 4},
		Hand:  []*Card{attack("atk", SymbolNone, 5)},
		Rand:  dice(t, 5),
	})
	if err := tc.PlayCard(handCard(t, tc, 0)); err != nil {
		t.Fatal(err)
	}
	if got := tc.State().EnemyHP; got != 14-7 {
		t.Errorf("floor(5*1.5)=7, expected enemy HP 7, got %d", got)
	}
}

func TestEnemyHPFloorsAtZero(t *testing.T) {
	tc, _ := newTestController(t, controllerSetup{
		State: BattleState{EnemyHP: 2, PlayerHP: 10, BaseDamage: 4},
		Hand:  []*Card{attack("atk", SymbolNone, 5)},
		Rand:  dice(t, 2),
	})
	if err := tc.PlayCard(handCard(t, tc, 0)); err != nil {
		t.Fatal(err)
	}
	if got := tc.State().EnemyHP; got != 0 {
		t.Errorf("expected 0, got %d", got)
	}
}

func TestInsufficientPARejectsWithoutChange(t *testing.T) {
	tc, logger := newTestController(t, controllerSetup{
		State: BattleState{EnemyHP: 14, PlayerHP: 10, BaseDamage: 4},
		Hand:  []*Card{testCard("heavy", 3, CardTypeAttack, SymbolNone, 9)},
		Rand:  dice(t, 1),
	})
	before := tc.State()
	events := len(logger.Events())

	err := tc.PlayCard(handCard(t, tc, 0))
	expectReason(t, err, ReasonInsufficientPA)

	if diff := cmp.Diff(before, tc.State()); diff != "" {
		t.Errorf("state changed on rejection (-want +got):\n%s", diff)
	}
	if len(tc.Deck().Hand()) != 1 {
		t.Errorf("card should stay in hand")
	}
	if len(logger.Events()) != events {
		t.Errorf("rejected play should not log")
	}
}

func TestComboCommitWithoutPAKeepsFirstCardArmed(t *testing.T) {
	tc, _ := newTestController(t, controllerSetup{
		State: BattleState{EnemyHP: 14, PlayerHP: 10, BaseDamage: 4},
		Hand: []*Card{
			testCard("a", 2, CardTypeAttack, SymbolFire, 3),
			testCard("b", 2, CardTypeAttack, SymbolFire, 3),
			testCard("c", 1, CardTypeUtility, SymbolNone, 1),
		},
		Rand: dice(t, 2),
	})
	a, b, c := handCard(t, tc, 0), handCard(t, tc, 1), handCard(t, tc, 2)
	if err := tc.PlayCard(c); err != nil { // 3 → 2 PA
		t.Fatal(err)
	}
	if err := tc.PlayCard(c); err == nil {
		t.Fatalf("replaying a discarded card should fail")
	}
	tc.st.PA = 1
	if _, err := tc.SelectForCombo(a); err != nil {
		t.Fatal(err)
	}
	_, err := tc.SelectForCombo(b)
	expectReason(t, err, ReasonInsufficientPA)
	if tc.Pending() != a {
		t.Errorf("first card should stay armed after a rejected commit")
	}
	if len(tc.Deck().Hand()) != 2 {
		t.Errorf("no card should have moved")
	}
}

func TestIncompatibleSecondChoiceClearsSelection(t *testing.T) {
	tc, logger := newTestController(t, controllerSetup{
		State: BattleState{EnemyHP: 14, PlayerHP: 10, BaseDamage: 4},
		Hand: []*Card{
			attack("f1", SymbolFire, 3),
			attack("f2", SymbolFire, 3),
			attack("v1", SymbolVolt, 3),
			attack("v2", SymbolVolt, 3),
		},
		Rand: dice(t, 2),
	})
	if _, err := tc.SelectForCombo(handCard(t, tc, 0)); err != nil {
		t.Fatal(err)
	}
	before := tc.State()
	out, err := tc.SelectForCombo(handCard(t, tc, 2))
	if err != nil {
		t.Fatal(err)
	}
	if out.Action != SelectCleared || tc.Pending() != nil {
		t.Fatalf("expected selection cleared, got %s", out.Action)
	}
	if diff := cmp.Diff(before, tc.State()); diff != "" {
		t.Errorf("clearing must cost nothing (-want +got):\n%s", diff)
	}
	if len(tc.Deck().Hand()) != 4 {
		t.Errorf("no card should be played")
	}
	if len(logger.EventsOfType(log.EventComboCleared)) != 1 {
		t.Errorf("expected a ComboCleared event")
	}
}

func TestPlayComboRejectsIncompatible(t *testing.T) {
	tc, _ := newTestController(t, controllerSetup{
		State: BattleState{EnemyHP: 14, PlayerHP: 10, BaseDamage: 4},
		Hand:  []*Card{attack("f", SymbolFire, 3), attack("v", SymbolVolt, 3)},
		Rand:  dice(t, 2),
	})
	before := tc.State()
	err := tc.PlayCombo(handCard(t, tc, 0), handCard(t, tc, 1))
	expectReason(t, err, ReasonIncompatible)
	if diff := cmp.Diff(before, tc.State()); diff != "" {
		t.Errorf("state changed (-want +got):\n%s", diff)
	}
}

func TestDefenseHealComboGrantsShield(t *testing.T) {
	tc, _ := newTestController(t, controllerSetup{
		State: BattleState{EnemyHP: 14, PlayerHP: 5, PlayerMaxHP: 10, BaseDamage: 4},
		Hand:  []*Card{defense("d", SymbolLink, 3), healCard("h", SymbolLink, 4)},
		Rand:  dice(t, 2),
	})
	if err := tc.PlayCombo(handCard(t, tc, 0), handCard(t, tc, 1)); err != nil {
		t.Fatal(err)
	}
	st := tc.State()
	if st.PlayerShield != 9 || st.PlayerHP != 5 {
		t.Errorf("expected shield 9 and no heal, got shield=%d HP=%d", st.PlayerShield, st.PlayerHP)
	}
}

func TestHealCappedAtMax(t *testing.T) {
	tc, _ := newTestController(t, controllerSetup{
		State: BattleState{EnemyHP: 14, PlayerHP: 8, PlayerMaxHP: 10, BaseDamage: 4},
		Hand:  []*Card{healCard("h", SymbolNone, 4)},
		Rand:  dice(t, 2),
	})
	if err := tc.PlayCard(handCard(t, tc, 0)); err != nil {
		t.Fatal(err)
	}
	if got := tc.State().PlayerHP; got != 10 {
		t.Errorf("expected HP capped at 10, got %d", got)
	}
}

func TestShieldMitigatesAndResets(t *testing.T) {
	tc, _ := newTestController(t, controllerSetup{
		State: BattleState{EnemyHP: 14, PlayerHP: 10, BaseDamage: 4},
		Hand:  []*Card{defense("d1", SymbolNone, 3)},
		Pile:  fillers(3),
		Rand:  dice(t, 2, 2),
	})
	if err := tc.PlayCard(handCard(t, tc, 0)); err != nil {
		t.Fatal(err)
	}
	if _, err := tc.EndTurn(); err != nil {
		t.Fatal(err)
	}
	st := tc.State()
	if st.PlayerHP != 9 {
		t.Errorf("expected 4-3=1 damage, HP %d", st.PlayerHP)
	}
	if st.PlayerShield != 0 {
		t.Errorf("shield should reset, got %d", st.PlayerShield)
	}
}

func TestEndTurnVictoryBeforeStrike(t *testing.T) {
	tc, logger := newTestController(t, controllerSetup{
		State: BattleState{EnemyHP: 3, PlayerHP: 1, BaseDamage: 4},
		Hand:  []*Card{attack("atk", SymbolNone, 3)},
		Rand:  dice(t, 2),
	})
	if err := tc.PlayCard(handCard(t, tc, 0)); err != nil {
		t.Fatal(err)
	}
	phase, err := tc.EndTurn()
	if err != nil {
		t.Fatal(err)
	}
	if phase != TurnVictory {
		t.Fatalf("expected Victory, got %s", phase)
	}
	if tc.State().PlayerHP != 1 {
		t.Errorf("enemy should not strike after being defeated")
	}
	if len(logger.EventsOfType(log.EventEnemyStrike)) != 0 {
		t.Errorf("unexpected EnemyStrike event")
	}
	_, err = tc.EndTurn()
	expectReason(t, err, ReasonBattleOver)
}

// Player at 2 HP with no shield takes 4 and is defeated.
func TestEndTurnDefeat(t *testing.T) {
	tc, logger := newTestController(t, controllerSetup{
		State: BattleState{EnemyHP: 14, PlayerHP: 2, BaseDamage: 4},
		Hand:  fillers(2),
		Rand:  dice(t, 2),
	})
	phase, err := tc.EndTurn()
	if err != nil {
		t.Fatal(err)
	}
	if phase != TurnDefeat {
		t.Fatalf("expected Defeat, got %s", phase)
	}
	if tc.State().PlayerHP != 0 {
		t.Errorf("expected HP 0, got %d", tc.State().PlayerHP)
	}
	strike := logger.EventsOfType(log.EventEnemyStrike)
	if len(strike) != 1 || strike[0].Value != 2 {
		t.Errorf("expected one strike removing 2 HP, got %+v", strike)
	}
	if len(logger.EventsOfType(log.EventDefeat)) != 1 {
		t.Errorf("expected a Defeat event")
	}
}

func TestEndTurnRefreshesHand(t *testing.T) {
	tc, logger := newTestController(t, controllerSetup{
		State: BattleState{EnemyHP: 14, PlayerHP: 10, BaseDamage: 1},
		Hand:  []*Card{attack("f1", SymbolFire, 1), attack("f2", SymbolFire, 1), attack("x", SymbolNone, 1)},
		Pile:  fillers(4),
		Rand:  dice(t, 2, 3),
	})
	if _, err := tc.SelectForCombo(handCard(t, tc, 0)); err != nil {
		t.Fatal(err)
	}
	if _, err := tc.EndTurn(); err != nil {
		t.Fatal(err)
	}
	if tc.Pending() != nil {
		t.Errorf("turn end must clear the pending combo card")
	}
	d := tc.Deck()
	if len(d.Hand()) != DrawPerTurn {
		t.Errorf("expected a fresh hand of %d, got %d", DrawPerTurn, len(d.Hand()))
	}
	if len(d.DiscardPile()) != 3 {
		t.Errorf("old hand should be discarded, discard has %d", len(d.DiscardPile()))
	}
	if got := len(logger.EventsOfType(log.EventDraw)); got != DrawPerTurn {
		t.Errorf("expected %d draw events, got %d", DrawPerTurn, got)
	}
	if st := tc.State(); st.Turn != 2 || st.LastRoll != 3 {
		t.Errorf("expected turn 2 with roll 3, got turn %d roll %d", st.Turn, st.LastRoll)
	}
	assertConserved(t, d)
}

func TestMulliganOncePerTurnNoPA(t *testing.T) {
	tc, _ := newTestController(t, controllerSetup{
		State: BattleState{EnemyHP: 14, PlayerHP: 10, BaseDamage: 1},
		Hand:  fillers(3),
		Pile:  fillers(6),
		Rand:  dice(t, 2, 2),
	})
	first, second := handCard(t, tc, 0), handCard(t, tc, 1)
	if err := tc.Mulligan([]int{first.ID, second.ID}); err != nil {
		t.Fatal(err)
	}
	if tc.State().PA != 3 {
		t.Errorf("mulligan should not cost PA")
	}
	err := tc.Mulligan([]int{handCard(t, tc, 0).ID})
	expectReason(t, err, ReasonBadMulligan)

	if _, err := tc.EndTurn(); err != nil {
		t.Fatal(err)
	}
	if err := tc.Mulligan([]int{handCard(t, tc, 0).ID}); err != nil {
		t.Errorf("mulligan should be available again next turn: %v", err)
	}
}

func TestMulliganOfArmedCardClearsSelection(t *testing.T) {
	tc, _ := newTestController(t, controllerSetup{
		State: BattleState{EnemyHP: 14, PlayerHP: 10, BaseDamage: 1},
		Hand:  []*Card{attack("f1", SymbolFire, 1), attack("f2", SymbolFire, 1)},
		Pile:  fillers(2),
		Rand:  dice(t, 2),
	})
	armed := handCard(t, tc, 0)
	if _, err := tc.SelectForCombo(armed); err != nil {
		t.Fatal(err)
	}
	if err := tc.Mulligan([]int{armed.ID}); err != nil {
		t.Fatal(err)
	}
	if tc.Pending() != nil {
		t.Errorf("mulliganed card must not stay armed")
	}
}

func TestNoEffectCardsStillCostPA(t *testing.T) {
	tc, logger := newTestController(t, controllerSetup{
		State: BattleState{EnemyHP: 14, PlayerHP: 10, BaseDamage: 1},
		Hand:  []*Card{testCard("move", 1, CardTypeMovement, SymbolNone, 2)},
		Rand:  dice(t, 2),
	})
	if err := tc.PlayCard(handCard(t, tc, 0)); err != nil {
		t.Fatal(err)
	}
	if st := tc.State(); st.PA != 2 || st.EnemyHP != 14 {
		t.Errorf("expected PA 2 and untouched enemy, got PA=%d enemy=%d", st.PA, st.EnemyHP)
	}
	if len(logger.EventsOfType(log.EventNoEffect)) != 1 {
		t.Errorf("expected a NoEffect event")
	}
}
