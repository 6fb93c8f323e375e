package net

import (
	"github.com/peterkuimelis/solorun/internal/campaign"
	"github.com/peterkuimelis/solorun/internal/game"
	"github.com/peterkuimelis/solorun/internal/log"
)

// Message types for the newline-delimited JSON protocol.

// Client → server command types.
const (
	CmdJoin           = "join"
	CmdSelectNode     = "select_node"
	CmdPlayCard       = "play_card"
	CmdPlayCombo      = "play_combo"
	CmdSelectForCombo = "select_for_combo"
	CmdMulligan       = "mulligan"
	CmdEndTurn        = "end_turn"
	CmdCloseBattle    = "close_battle"
	CmdState          = "state"
)

// Server → client message types.
const (
	MsgUpdate = "update"
	MsgError  = "error"
)

// --- Client → Server messages ---

// ClientMessage is the envelope for all client-to-server messages.
type ClientMessage struct {
	Type string `json:"type"`

	// For "join"
	Hero string `json:"hero,omitempty"`

	// For "select_node"
	Node int `json:"node,omitempty"`

	// For "play_card" and "select_for_combo"
	Card string `json:"card,omitempty"`

	// For "play_combo" (exactly two) and "mulligan" (up to two)
	Cards []string `json:"cards,omitempty"`
}

// --- Server → Client messages ---

// ServerMessage answers every ClientMessage.
type ServerMessage struct {
	Type   string      `json:"type"`
	Events []EventView `json:"events"`
	State  *StateView  `json:"state,omitempty"`

	// Result summarizes what the command did: the selection step, a battle
	// outcome, or "revisit".
	Result string `json:"result,omitempty"`

	// For "error"
	Error  string `json:"error,omitempty"`
	Reason string `json:"reason,omitempty"`
}

// EventView is a game event for the client.
type EventView struct {
	Seq     int    `json:"seq"`
	Turn    int    `json:"turn,omitempty"`
	Node    int    `json:"node"`
	Type    string `json:"type"`
	Card    string `json:"card,omitempty"`
	Value   int    `json:"value,omitempty"`
	Details string `json:"details"`
}

// CardView describes a card in hand or in the catalog.
type CardView struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Cost        int    `json:"cost"`
	Type        string `json:"type"`
	Symbol      string `json:"symbol,omitempty"`
	Value       int    `json:"value"`
}

// HeroView describes a catalog hero.
type HeroView struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Class       string   `json:"class"`
	HP          int      `json:"hp"`
	Def         int      `json:"def"`
	ResourceMax int      `json:"resource_max"`
	Signature   []string `json:"signature"`
	DeckSize    int      `json:"deck_size"`
}

// NodeView is a map node annotated with the hero's progress.
type NodeView struct {
	ID          int    `json:"id"`
	Type        string `json:"type"`
	Label       string `json:"label"`
	X           int    `json:"x"`
	Y           int    `json:"y"`
	Connections []int  `json:"connections"`
	Visited     bool   `json:"visited,omitempty"`
	Reachable   bool   `json:"reachable,omitempty"`
	Current     bool   `json:"current,omitempty"`
}

// BattleView is the encounter in progress.
type BattleView struct {
	ID           string     `json:"id"`
	Node         int        `json:"node"`
	Label        string     `json:"label"`
	Turn         int        `json:"turn"`
	Phase        string     `json:"phase"`
	EnemyHP      int        `json:"enemy_hp"`
	EnemyMaxHP   int        `json:"enemy_max_hp"`
	EnemyDamage  int        `json:"enemy_damage"`
	PlayerHP     int        `json:"player_hp"`
	PlayerMaxHP  int        `json:"player_max_hp"`
	Shield       int        `json:"shield"`
	PA           int        `json:"pa"`
	Roll         int        `json:"roll"`
	Multiplier   float64    `json:"multiplier"`
	TurnBonus    string     `json:"turn_bonus,omitempty"`
	MulliganUsed bool       `json:"mulligan_used,omitempty"`
	Hand         []CardView `json:"hand"`
	Pending      string     `json:"pending,omitempty"`
	DrawPile     int        `json:"draw_pile"`
	DiscardPile  int        `json:"discard_pile"`
}

// StateView is the whole campaign from the hero's perspective.
type StateView struct {
	Hero         HeroView    `json:"hero"`
	HeroHP       int         `json:"hero_hp"`
	Resources    int         `json:"resources"`
	CurrentNode  int         `json:"current_node"`
	Visited      []int       `json:"visited"`
	Reachable    []int       `json:"reachable"`
	BossDefeated bool        `json:"boss_defeated"`
	Log          []string    `json:"log"`
	Map          []NodeView  `json:"map"`
	Battle       *BattleView `json:"battle,omitempty"`
}

// --- View builders ---

// BuildEventViews converts logged events for the wire.
func BuildEventViews(events []log.GameEvent) []EventView {
	views := make([]EventView, 0, len(events))
	for _, e := range events {
		views = append(views, EventView{
			Seq:     e.Seq,
			Turn:    e.Turn,
			Node:    e.Node,
			Type:    e.Type.String(),
			Card:    e.Card,
			Value:   e.Value,
			Details: e.Details,
		})
	}
	return views
}

// BuildCardView describes a catalog card.
func BuildCardView(c *game.Card) CardView {
	cv := CardView{
		ID:          c.ID,
		Name:        c.Name,
		Description: c.Description,
		Cost:        c.PACost,
		Type:        c.Type.String(),
		Value:       c.Value,
	}
	if c.HasSymbol() {
		cv.Symbol = c.Symbol.String()
	}
	return cv
}

// BuildHeroView describes a catalog hero.
func BuildHeroView(h *game.HeroProfile) HeroView {
	return HeroView{
		ID:          h.ID,
		Name:        h.Name,
		Class:       h.Class,
		HP:          h.BaseHP,
		Def:         h.BaseDef,
		ResourceMax: h.ResourceMax,
		Signature:   []string{h.Signature.A, h.Signature.B},
		DeckSize:    len(h.InitialDeck),
	}
}

// BuildMapView lists the graph's nodes. Progress annotations are added
// when p is non-nil.
func BuildMapView(g *campaign.Graph, p *campaign.Progress) []NodeView {
	var visited map[int]bool
	if p != nil {
		visited = p.VisitedSet()
	}
	nodes := g.Nodes()
	views := make([]NodeView, 0, len(nodes))
	for _, n := range nodes {
		nv := NodeView{
			ID:          n.ID,
			Type:        n.Type.String(),
			Label:       n.Label,
			X:           n.X,
			Y:           n.Y,
			Connections: append([]int{}, n.Connections...),
		}
		if p != nil {
			nv.Visited = visited[n.ID]
			nv.Current = p.CurrentNodeID == n.ID
			nv.Reachable = !nv.Visited && g.Reachable(p.CurrentNodeID, visited, n.ID)
		}
		views = append(views, nv)
	}
	return views
}

// BuildBattleView snapshots an encounter.
func BuildBattleView(b *game.Battle) *BattleView {
	st := b.State()
	deck := b.Deck()
	bv := &BattleView{
		ID:           b.ID(),
		Node:         b.Node(),
		Label:        b.Label(),
		Turn:         st.Turn,
		Phase:        st.Phase.String(),
		EnemyHP:      st.EnemyHP,
		EnemyMaxHP:   st.EnemyMaxHP,
		EnemyDamage:  st.BaseDamage,
		PlayerHP:     st.PlayerHP,
		PlayerMaxHP:  st.PlayerMaxHP,
		Shield:       st.PlayerShield,
		PA:           st.PA,
		Roll:         st.LastRoll,
		Multiplier:   st.DamageMultiplier,
		TurnBonus:    st.TurnBonus,
		MulliganUsed: st.MulliganUsed,
		Hand:         make([]CardView, 0, len(deck.Hand())),
		DrawPile:     len(deck.DrawPile()),
		DiscardPile:  len(deck.DiscardPile()),
	}
	for _, ci := range deck.Hand() {
		bv.Hand = append(bv.Hand, BuildCardView(ci.Card))
	}
	if p := b.Pending(); p != nil {
		bv.Pending = p.Card.ID
	}
	return bv
}

// BuildStateView snapshots a campaign.
func BuildStateView(c *campaign.Campaign) *StateView {
	p := c.Progress()
	sv := &StateView{
		Hero:         BuildHeroView(c.Hero()),
		HeroHP:       p.HeroHP,
		Resources:    p.Resources,
		CurrentNode:  p.CurrentNodeID,
		Visited:      p.Visited,
		Reachable:    []int{},
		BossDefeated: p.BossDefeated,
		Log:          p.Log,
		Map:          BuildMapView(c.Graph(), &p),
	}
	for _, n := range c.Graph().Nodes() {
		if !p.IsVisited(n.ID) && c.Reachable(n.ID) {
			sv.Reachable = append(sv.Reachable, n.ID)
		}
	}
	if b := c.Battle(); b != nil {
		sv.Battle = BuildBattleView(b)
	}
	return sv
}
