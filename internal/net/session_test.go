package net

import (
	"context"
	"slices"
	"testing"

	"github.com/peterkuimelis/solorun/internal/campaign"
)

// progressStore is an in-memory campaign.ProgressStore.
type progressStore struct {
	saved map[string]campaign.Progress
}

func (s *progressStore) Load(ctx context.Context, heroID string) (*campaign.Progress, error) {
	p, ok := s.saved[heroID]
	if !ok {
		return nil, nil
	}
	c := p.Clone()
	return &c, nil
}

func (s *progressStore) Save(heroID string, p campaign.Progress) {
	if s.saved == nil {
		s.saved = make(map[string]campaign.Progress)
	}
	s.saved[heroID] = p.Clone()
}

func newTestSession(t *testing.T, store campaign.ProgressStore) *Session {
	t.Helper()
	sess := NewSession(SessionConfig{Store: store, Seed: 7, NoShuffle: true})
	resp := sess.Handle(context.Background(), ClientMessage{Type: CmdJoin, Hero: "ombra"})
	if resp.Type != MsgUpdate {
		t.Fatalf("join failed: %s", resp.Error)
	}
	return sess
}

func send(t *testing.T, sess *Session, msg ClientMessage) ServerMessage {
	t.Helper()
	return sess.Handle(context.Background(), msg)
}

func hasEvent(resp ServerMessage, typ string) bool {
	for _, ev := range resp.Events {
		if ev.Type == typ {
			return true
		}
	}
	return false
}

func TestSessionRequiresJoin(t *testing.T) {
	sess := NewSession(SessionConfig{})
	resp := send(t, sess, ClientMessage{Type: CmdState})
	if resp.Type != MsgError {
		t.Fatalf("expected error before join, got %s", resp.Type)
	}
	if resp.State != nil {
		t.Errorf("expected no state before join")
	}
}

func TestSessionJoinUnknownHero(t *testing.T) {
	sess := NewSession(SessionConfig{})
	resp := send(t, sess, ClientMessage{Type: CmdJoin, Hero: "nobody"})
	if resp.Type != MsgError {
		t.Fatalf("expected error for unknown hero, got %s", resp.Type)
	}
	if sess.Joined() {
		t.Error("session should not be joined")
	}
}

func TestSessionJoinState(t *testing.T) {
	sess := newTestSession(t, nil)
	resp := send(t, sess, ClientMessage{Type: CmdState})
	if resp.Type != MsgUpdate || resp.State == nil {
		t.Fatalf("expected update with state, got %+v", resp)
	}
	st := resp.State
	if st.Hero.ID != "ombra" || st.CurrentNode != 1 {
		t.Errorf("unexpected hero/node %s/%d", st.Hero.ID, st.CurrentNode)
	}
	if !slices.Equal(st.Reachable, []int{2, 3}) {
		t.Errorf("expected nodes 2 and 3 reachable, got %v", st.Reachable)
	}
	if len(st.Map) != 22 {
		t.Errorf("expected 22 map nodes, got %d", len(st.Map))
	}
	if st.Battle != nil {
		t.Error("expected no battle")
	}
}

func TestSessionResourceNode(t *testing.T) {
	sess := newTestSession(t, nil)
	resp := send(t, sess, ClientMessage{Type: CmdSelectNode, Node: 3})
	if resp.Type != MsgUpdate {
		t.Fatalf("select node: %s", resp.Error)
	}
	if resp.Result != "resource" {
		t.Errorf("expected resource result, got %q", resp.Result)
	}
	if resp.State.Resources != 1 || resp.State.CurrentNode != 3 {
		t.Errorf("unexpected state %+v", resp.State)
	}
	if !hasEvent(resp, "Resource") {
		t.Errorf("expected Resource event, got %+v", resp.Events)
	}

	// Events are delivered once.
	again := send(t, sess, ClientMessage{Type: CmdState})
	if len(again.Events) != 0 {
		t.Errorf("expected no new events, got %+v", again.Events)
	}
}

func TestSessionRejectionCarriesReason(t *testing.T) {
	sess := newTestSession(t, nil)
	resp := send(t, sess, ClientMessage{Type: CmdSelectNode, Node: 22})
	if resp.Type != MsgError {
		t.Fatalf("expected error, got %s", resp.Type)
	}
	if resp.Reason != "unreachable" {
		t.Errorf("expected unreachable reason, got %q", resp.Reason)
	}
	if !hasEvent(resp, "Rejected") {
		t.Errorf("expected Rejected event")
	}
	if resp.State == nil || resp.State.CurrentNode != 1 {
		t.Errorf("state should be unchanged")
	}
}

func TestSessionUnknownCommand(t *testing.T) {
	sess := newTestSession(t, nil)
	resp := send(t, sess, ClientMessage{Type: "dance"})
	if resp.Type != MsgError || resp.Reason != "" {
		t.Errorf("expected plain error, got %+v", resp)
	}
}

// Ombra's unshuffled opening hand holds both signature cards: arming one
// and committing the other wins Avanguardia in a single turn.
func TestSessionBattleVictory(t *testing.T) {
	store := &progressStore{}
	sess := newTestSession(t, store)

	resp := send(t, sess, ClientMessage{Type: CmdSelectNode, Node: 2})
	if resp.Result != "battle" || resp.State.Battle == nil {
		t.Fatalf("expected battle, got %+v", resp)
	}
	if n := len(resp.State.Battle.Hand); n != 5 {
		t.Fatalf("expected 5 cards in hand, got %d", n)
	}

	resp = send(t, sess, ClientMessage{Type: CmdSelectForCombo, Card: "sig_ombra_1"})
	if resp.Result != "Armed" || resp.State.Battle.Pending != "sig_ombra_1" {
		t.Fatalf("expected armed sig_ombra_1, got %q / %q", resp.Result, resp.State.Battle.Pending)
	}
	resp = send(t, sess, ClientMessage{Type: CmdSelectForCombo, Card: "sig_ombra_2"})
	if resp.Result != "Commit" {
		t.Fatalf("expected commit, got %q (%s)", resp.Result, resp.Error)
	}
	if !hasEvent(resp, "Combo") {
		t.Errorf("expected Combo event")
	}
	if resp.State.Battle.EnemyHP != 0 {
		t.Errorf("expected enemy at 0, got %d", resp.State.Battle.EnemyHP)
	}

	resp = send(t, sess, ClientMessage{Type: CmdEndTurn})
	if resp.Result != "Victory" {
		t.Fatalf("expected victory, got %q (%s)", resp.Result, resp.Error)
	}
	if resp.State.Battle != nil {
		t.Error("battle should be settled")
	}
	if resp.State.CurrentNode != 2 || !slices.Contains(resp.State.Visited, 2) {
		t.Errorf("expected node 2 visited and current, got %+v", resp.State)
	}
	if store.saved["ombra"].CurrentNodeID != 2 {
		t.Errorf("expected progress saved at node 2")
	}
}

func TestSessionPlayComboNeedsTwoCards(t *testing.T) {
	sess := newTestSession(t, nil)
	send(t, sess, ClientMessage{Type: CmdSelectNode, Node: 2})
	resp := send(t, sess, ClientMessage{Type: CmdPlayCombo, Cards: []string{"sig_ombra_1"}})
	if resp.Type != MsgError {
		t.Fatalf("expected error, got %s", resp.Type)
	}
}

func TestSessionCloseBattle(t *testing.T) {
	sess := newTestSession(t, nil)
	send(t, sess, ClientMessage{Type: CmdSelectNode, Node: 2})
	resp := send(t, sess, ClientMessage{Type: CmdCloseBattle})
	if resp.Type != MsgUpdate {
		t.Fatalf("close: %s", resp.Error)
	}
	if resp.State.Battle != nil || resp.State.CurrentNode != 1 {
		t.Errorf("expected no battle and node 1, got %+v", resp.State)
	}
	if !hasEvent(resp, "BattleClosed") {
		t.Errorf("expected BattleClosed event")
	}

	resp = send(t, sess, ClientMessage{Type: CmdEndTurn})
	if resp.Reason != "no_battle" {
		t.Errorf("expected no_battle, got %q", resp.Reason)
	}
}

func TestSessionResumesStoredProgress(t *testing.T) {
	store := &progressStore{}
	first := newTestSession(t, store)
	send(t, first, ClientMessage{Type: CmdSelectNode, Node: 3})

	second := newTestSession(t, store)
	resp := send(t, second, ClientMessage{Type: CmdState})
	if resp.State.CurrentNode != 3 || resp.State.Resources != 1 {
		t.Errorf("expected resumed progress at node 3, got %+v", resp.State)
	}
}
