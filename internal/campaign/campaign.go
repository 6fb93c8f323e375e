package campaign

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/peterkuimelis/solorun/internal/game"
	"github.com/peterkuimelis/solorun/internal/log"
)

// Healing granted when visiting a Rest or Start node.
const RestHeal = 2

// Config holds configuration for starting or resuming a campaign.
type Config struct {
	Catalog *game.Catalog
	Graph   *Graph
	Hero    string // hero id or name
	Store   ProgressStore
	Logger  log.EventLogger
	Ops     *zap.Logger // operational logging (nil = no-op)
	Rand    game.Rand
	Seed    int64 // used when Rand is nil (0 for random)

	// OnBossUnlock fires once per hero, the first time the Boss is defeated.
	OnBossUnlock func(heroID string, boss Node)

	NoShuffle bool // battles skip the opening shuffle (for deterministic tests)
}

// VisitResult describes what selecting a node did.
type VisitResult struct {
	Node    Node
	Revisit bool         // node was already visited; nothing changed
	Battle  *game.Battle // set when the node opened a battle
}

// Campaign owns one hero's progress across the map and the battle in
// progress, if any. It is not safe for concurrent use.
type Campaign struct {
	catalog *game.Catalog
	graph   *Graph
	hero    *game.HeroProfile
	store   ProgressStore
	logger  log.EventLogger
	ops     *zap.Logger
	rng     game.Rand
	unlock  func(string, Node)

	noShuffle bool

	progress Progress
	battle   *game.Battle
}

// New resumes the hero's stored progress or starts fresh. A failed load is
// logged and treated as no stored progress.
func New(ctx context.Context, cfg Config) (*Campaign, error) {
	if cfg.Catalog == nil {
		cfg.Catalog = game.DefaultCatalog()
	}
	if cfg.Graph == nil {
		cfg.Graph = DefaultGraph()
	}
	hero, ok := cfg.Catalog.Hero(cfg.Hero)
	if !ok {
		return nil, fmt.Errorf("unknown hero %q", cfg.Hero)
	}
	c := &Campaign{
		catalog:   cfg.Catalog,
		graph:     cfg.Graph,
		hero:      hero,
		store:     cfg.Store,
		logger:    cfg.Logger,
		ops:       cfg.Ops,
		rng:       cfg.Rand,
		unlock:    cfg.OnBossUnlock,
		noShuffle: cfg.NoShuffle,
	}
	if c.logger == nil {
		c.logger = log.NewMemoryLogger()
	}
	if c.ops == nil {
		c.ops = zap.NewNop()
	}
	if c.rng == nil {
		c.rng = game.NewRand(cfg.Seed)
	}

	var stored *Progress
	if c.store != nil {
		p, err := c.store.Load(ctx, hero.ID)
		if err != nil {
			c.ops.Warn("load progress failed, starting fresh", zap.String("hero", hero.ID), zap.Error(err))
		} else {
			stored = p
		}
	}
	if stored != nil && c.valid(*stored) {
		c.progress = stored.Clone()
		if c.progress.HeroHP <= 0 || c.progress.HeroHP > hero.BaseHP {
			c.progress.HeroHP = hero.BaseHP
		}
	} else {
		c.progress = c.fresh()
	}
	return c, nil
}

func (c *Campaign) fresh() Progress {
	start := c.graph.Start()
	p := Progress{
		CurrentNodeID: start.ID,
		Visited:       []int{start.ID},
		HeroHP:        c.hero.BaseHP,
	}
	p.addLog(fmt.Sprintf("%s sets out from %s", c.hero.Name, start.Label))
	return p
}

// valid reports whether stored progress fits the current map.
func (c *Campaign) valid(p Progress) bool {
	if _, ok := c.graph.Node(p.CurrentNodeID); !ok {
		return false
	}
	for _, id := range p.Visited {
		if _, ok := c.graph.Node(id); !ok {
			return false
		}
	}
	return p.IsVisited(p.CurrentNodeID)
}

func (c *Campaign) Hero() *game.HeroProfile { return c.hero }
func (c *Campaign) Graph() *Graph           { return c.graph }
func (c *Campaign) Catalog() *game.Catalog  { return c.catalog }
func (c *Campaign) Battle() *game.Battle    { return c.battle }
func (c *Campaign) Logger() log.EventLogger { return c.logger }

// Progress returns a copy of the current progress.
func (c *Campaign) Progress() Progress { return c.progress.Clone() }

// Reachable reports whether the node can be selected from the current node.
func (c *Campaign) Reachable(id int) bool {
	return c.graph.Reachable(c.progress.CurrentNodeID, c.progress.VisitedSet(), id)
}

func (c *Campaign) save() {
	if c.store != nil {
		c.store.Save(c.hero.ID, c.progress.Clone())
	}
}

// record logs an event and keeps its text in the progress log.
func (c *Campaign) record(e log.GameEvent) {
	c.logger.Log(e)
	c.progress.addLog(e.Details)
}

// rejected logs a rejection and passes the error through.
func (c *Campaign) rejected(err error) error {
	if _, ok := game.IsInvalidAction(err); ok {
		turn := 0
		if c.battle != nil {
			turn = c.battle.State().Turn
		}
		c.logger.Log(log.NewRejectedEvent(turn, c.progress.CurrentNodeID, err.Error()))
	}
	return err
}

// SelectNode moves to a node. Visited nodes are a no-op. Combat and Boss
// nodes open a battle and only count as visited once it is won.
func (c *Campaign) SelectNode(id int) (VisitResult, error) {
	if c.battle != nil {
		return VisitResult{}, c.rejected(game.Reject(game.ReasonBattleInProgress, "finish or close the current battle first"))
	}
	node, ok := c.graph.Node(id)
	if !ok {
		return VisitResult{}, c.rejected(game.Reject(game.ReasonUnknownNode, "node %d", id))
	}
	if c.progress.IsVisited(id) {
		return VisitResult{Node: node, Revisit: true}, nil
	}
	if !c.Reachable(id) {
		return VisitResult{}, c.rejected(game.Reject(game.ReasonUnreachable, "%s is not connected to node %d", node.Label, c.progress.CurrentNodeID))
	}
	if node.Type.IsCombat() {
		b, err := c.enterCombat(node)
		if err != nil {
			return VisitResult{}, err
		}
		return VisitResult{Node: node, Battle: b}, nil
	}
	c.visitNonCombat(node)
	return VisitResult{Node: node}, nil
}

func (c *Campaign) visitNonCombat(node Node) {
	c.progress.markVisited(node.ID)
	c.progress.CurrentNodeID = node.ID
	c.record(log.NewNodeVisitEvent(node.ID, node.Label, node.Type.String()))

	switch node.Type {
	case NodeResource:
		c.progress.Resources = min(c.progress.Resources+1, c.hero.ResourceMax)
		c.record(log.NewResourceEvent(node.ID, node.Label, c.progress.Resources, c.hero.ResourceMax))
	case NodeEvent:
		c.record(log.NewEventRollEvent(node.ID, node.Label, game.RollD6(c.rng)))
	case NodeRest, NodeStart:
		old := c.progress.HeroHP
		c.progress.HeroHP = min(old+RestHeal, c.hero.BaseHP)
		c.record(log.NewRestEvent(node.ID, node.Label, old, c.progress.HeroHP))
	}
	c.save()
}

func (c *Campaign) enterCombat(node Node) (*game.Battle, error) {
	enemy := node.EnemyFor()
	b, err := game.NewBattle(game.BattleConfig{
		Catalog:    c.catalog,
		Hero:       c.hero,
		Node:       node.ID,
		Label:      node.Label,
		EnemyHP:    enemy.HP,
		BaseDamage: enemy.Damage,
		PlayerHP:   c.progress.HeroHP,
		Rand:       c.rng,
		Logger:     c.logger,
		NoShuffle:  c.noShuffle,
	})
	if err != nil {
		return nil, fmt.Errorf("open battle at node %d: %w", node.ID, err)
	}
	c.battle = b
	return b, nil
}

func (c *Campaign) activeBattle() (*game.Battle, error) {
	if c.battle == nil {
		return nil, c.rejected(game.Reject(game.ReasonNoBattle, "no battle in progress"))
	}
	return c.battle, nil
}

// SelectCard feeds a card into the battle's combo selection.
func (c *Campaign) SelectCard(cardID string) (game.SelectOutcome, error) {
	b, err := c.activeBattle()
	if err != nil {
		return game.SelectOutcome{}, err
	}
	out, err := b.Select(cardID)
	return out, c.rejected(err)
}

// PlayCard plays a single card in the current battle.
func (c *Campaign) PlayCard(cardID string) error {
	b, err := c.activeBattle()
	if err != nil {
		return err
	}
	return c.rejected(b.Play(cardID))
}

// PlayCombo plays two cards together in the current battle.
func (c *Campaign) PlayCombo(first, second string) error {
	b, err := c.activeBattle()
	if err != nil {
		return err
	}
	return c.rejected(b.PlayCombo(first, second))
}

// Mulligan redraws up to two cards in the current battle.
func (c *Campaign) Mulligan(cardIDs []string) error {
	b, err := c.activeBattle()
	if err != nil {
		return err
	}
	return c.rejected(b.Mulligan(cardIDs))
}

// EndTurn ends the battle turn and settles the battle if it finished.
func (c *Campaign) EndTurn() (game.Outcome, error) {
	b, err := c.activeBattle()
	if err != nil {
		return game.OutcomeNone, err
	}
	outcome, err := b.EndTurn()
	if err != nil {
		return outcome, c.rejected(err)
	}
	switch outcome {
	case game.OutcomeVictory:
		c.reportVictory(b)
	case game.OutcomeDefeat:
		c.battle = nil
		c.progress.addLog(fmt.Sprintf("Defeated by %s", b.Label()))
		c.save()
	}
	return outcome, nil
}

// CloseBattle abandons the current battle. Map state is left untouched.
func (c *Campaign) CloseBattle() error {
	b, err := c.activeBattle()
	if err != nil {
		return err
	}
	if err := b.Close(); err != nil {
		return c.rejected(err)
	}
	c.battle = nil
	return nil
}

func (c *Campaign) reportVictory(b *game.Battle) {
	node, _ := c.graph.Node(b.Node())
	c.battle = nil
	c.progress.markVisited(node.ID)
	c.progress.CurrentNodeID = node.ID
	c.progress.HeroHP = b.State().PlayerHP
	c.progress.addLog(fmt.Sprintf("Victory over %s", node.Label))

	if node.Type == NodeBoss {
		c.progress.BossDefeated = true
		if !c.progress.UnlockSignaled {
			c.progress.UnlockSignaled = true
			c.record(log.NewBossUnlockEvent(node.ID, node.Label))
			if c.unlock != nil {
				c.unlock(c.hero.ID, node)
			}
		}
	}
	c.save()
}
