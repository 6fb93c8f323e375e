package net

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/peterkuimelis/solorun/internal/campaign"
	"github.com/peterkuimelis/solorun/internal/game"
	"github.com/peterkuimelis/solorun/internal/log"
)

// SessionConfig is shared by every session a server opens.
type SessionConfig struct {
	Catalog *game.Catalog
	Graph   *campaign.Graph
	Store   campaign.ProgressStore
	Ops     *zap.Logger
	Seed    int64 // 0 for random

	NoShuffle    bool // battles keep deck order (for scripted tests)
	OnBossUnlock func(heroID string, boss campaign.Node)
}

// Session drives one hero's campaign from protocol commands. Each response
// carries the events logged since the previous response. It is not safe
// for concurrent use.
type Session struct {
	cfg      SessionConfig
	campaign *campaign.Campaign
	events   *log.MemoryLogger
	cursor   int
}

// NewSession creates a session that waits for a join command.
func NewSession(cfg SessionConfig) *Session {
	if cfg.Catalog == nil {
		cfg.Catalog = game.DefaultCatalog()
	}
	if cfg.Graph == nil {
		cfg.Graph = campaign.DefaultGraph()
	}
	if cfg.Ops == nil {
		cfg.Ops = zap.NewNop()
	}
	return &Session{cfg: cfg}
}

// Campaign returns the joined campaign, or nil before join.
func (s *Session) Campaign() *campaign.Campaign { return s.campaign }

// Joined reports whether a hero has been chosen.
func (s *Session) Joined() bool { return s.campaign != nil }

// Join starts or resumes the hero's campaign, replacing any previous one.
func (s *Session) Join(ctx context.Context, hero string) error {
	events := log.NewMemoryLogger()
	c, err := campaign.New(ctx, campaign.Config{
		Catalog:      s.cfg.Catalog,
		Graph:        s.cfg.Graph,
		Hero:         hero,
		Store:        s.cfg.Store,
		Logger:       events,
		Ops:          s.cfg.Ops,
		Seed:         s.cfg.Seed,
		NoShuffle:    s.cfg.NoShuffle,
		OnBossUnlock: s.cfg.OnBossUnlock,
	})
	if err != nil {
		return err
	}
	if s.campaign != nil && s.campaign.Battle() != nil {
		_ = s.campaign.CloseBattle()
	}
	s.campaign = c
	s.events = events
	s.cursor = 0
	s.cfg.Ops.Info("campaign joined",
		zap.String("hero", c.Hero().ID),
		zap.Int("node", c.Progress().CurrentNodeID),
	)
	return nil
}

// Close abandons any battle in progress.
func (s *Session) Close() {
	if s.campaign != nil && s.campaign.Battle() != nil {
		_ = s.campaign.CloseBattle()
	}
}

// Handle executes one command and builds the response.
func (s *Session) Handle(ctx context.Context, msg ClientMessage) ServerMessage {
	if msg.Type == CmdJoin {
		if err := s.Join(ctx, msg.Hero); err != nil {
			return s.fail(err)
		}
		return s.update("")
	}
	if s.campaign == nil {
		return s.fail(fmt.Errorf("no campaign: send %q with a hero first", CmdJoin))
	}

	result, err := s.dispatch(msg)
	if err != nil {
		return s.fail(err)
	}
	return s.update(result)
}

func (s *Session) dispatch(msg ClientMessage) (string, error) {
	c := s.campaign
	switch msg.Type {
	case CmdState:
		return "", nil

	case CmdSelectNode:
		res, err := c.SelectNode(msg.Node)
		if err != nil {
			return "", err
		}
		switch {
		case res.Revisit:
			return "revisit", nil
		case res.Battle != nil:
			return "battle", nil
		}
		return strings.ToLower(res.Node.Type.String()), nil

	case CmdPlayCard:
		return "", c.PlayCard(msg.Card)

	case CmdPlayCombo:
		if len(msg.Cards) != 2 {
			return "", fmt.Errorf("play_combo needs exactly two cards, got %d", len(msg.Cards))
		}
		return "", c.PlayCombo(msg.Cards[0], msg.Cards[1])

	case CmdSelectForCombo:
		out, err := c.SelectCard(msg.Card)
		if err != nil {
			return "", err
		}
		return out.Action.String(), nil

	case CmdMulligan:
		return "", c.Mulligan(msg.Cards)

	case CmdEndTurn:
		outcome, err := c.EndTurn()
		if err != nil {
			return "", err
		}
		return outcome.String(), nil

	case CmdCloseBattle:
		return "", c.CloseBattle()

	default:
		return "", fmt.Errorf("unknown command %q", msg.Type)
	}
}

func (s *Session) drain() []EventView {
	if s.events == nil {
		return []EventView{}
	}
	evs := s.events.Since(s.cursor)
	s.cursor += len(evs)
	return BuildEventViews(evs)
}

func (s *Session) update(result string) ServerMessage {
	msg := ServerMessage{
		Type:   MsgUpdate,
		Events: s.drain(),
		Result: result,
	}
	if s.campaign != nil {
		msg.State = BuildStateView(s.campaign)
	}
	return msg
}

func (s *Session) fail(err error) ServerMessage {
	msg := s.update("")
	msg.Type = MsgError
	msg.Error = err.Error()
	if reason, ok := game.IsInvalidAction(err); ok {
		msg.Reason = reason.String()
	}
	return msg
}
