package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	solonet "github.com/peterkuimelis/solorun/internal/net"
)

// GameSession serializes tool calls onto one protocol session. MCP clients
// may issue calls concurrently, the engine is single-writer.
type GameSession struct {
	mu   sync.Mutex
	cfg  solonet.SessionConfig
	sess *solonet.Session
}

// NewGameSession creates a session holder. No campaign runs until
// start_campaign is called.
func NewGameSession(cfg solonet.SessionConfig) *GameSession {
	return &GameSession{cfg: cfg}
}

// Started reports whether a campaign is running.
func (g *GameSession) Started() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.sess != nil && g.sess.Joined()
}

// Start begins or resumes the hero's campaign, abandoning any battle of the
// previous one.
func (g *GameSession) Start(ctx context.Context, hero string) solonet.ServerMessage {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.sess != nil {
		g.sess.Close()
	}
	sess := solonet.NewSession(g.cfg)
	resp := sess.Handle(ctx, solonet.ClientMessage{Type: solonet.CmdJoin, Hero: hero})
	if resp.Type == solonet.MsgUpdate {
		g.sess = sess
	}
	return resp
}

// Do runs one command against the running campaign.
func (g *GameSession) Do(ctx context.Context, msg solonet.ClientMessage) (solonet.ServerMessage, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.sess == nil {
		return solonet.ServerMessage{}, fmt.Errorf("no campaign is running, use start_campaign first")
	}
	return g.sess.Handle(ctx, msg), nil
}

// Close abandons any battle in progress.
func (g *GameSession) Close() {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.sess != nil {
		g.sess.Close()
	}
}

func respondJSON(resp solonet.ServerMessage) string {
	data, err := json.Marshal(resp)
	if err != nil {
		return fmt.Sprintf(`{"error": "marshal error: %v"}`, err)
	}
	return string(data)
}
