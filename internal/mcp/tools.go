package mcp

import (
	"context"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	solonet "github.com/peterkuimelis/solorun/internal/net"
)

// RegisterTools adds all campaign tools to the MCP server, bound to sess.
func RegisterTools(s *server.MCPServer, sess *GameSession) {
	s.AddTool(startCampaignTool(), sess.handleStartCampaign)
	s.AddTool(selectNodeTool(), sess.handleSelectNode)
	s.AddTool(playCardTool(), sess.handlePlayCard)
	s.AddTool(playComboTool(), sess.handlePlayCombo)
	s.AddTool(selectForComboTool(), sess.handleSelectForCombo)
	s.AddTool(mulliganTool(), sess.handleMulligan)
	s.AddTool(endTurnTool(), sess.handleEndTurn)
	s.AddTool(closeBattleTool(), sess.handleCloseBattle)
	s.AddTool(getStateTool(), sess.handleGetState)
}

// --- Tool definitions ---

func startCampaignTool() mcp.Tool {
	return mcp.NewTool("start_campaign",
		mcp.WithDescription("Start or resume a hero's campaign across the 22-node map. Returns the campaign state: "+
			"hero HP, resources, current node, reachable nodes and the full map."),
		mcp.WithString("hero", mcp.Required(), mcp.Description("Hero id or name, e.g. 'ombra' or 'Mistica'")),
	)
}

func selectNodeTool() mcp.Tool {
	return mcp.NewTool("select_node",
		mcp.WithDescription("Travel to a map node. Must be reachable from the current node. Combat and Boss nodes open a battle; "+
			"Resource, Event and Rest nodes resolve immediately."),
		mcp.WithNumber("node", mcp.Required(), mcp.Description("Node id (1-22)")),
	)
}

func playCardTool() mcp.Tool {
	return mcp.NewTool("play_card",
		mcp.WithDescription("Play one card from hand on its own, paying its PA cost."),
		mcp.WithString("card", mcp.Required(), mcp.Description("Card id from the hand, e.g. 'card_atk_base'")),
	)
}

func playComboTool() mcp.Tool {
	return mcp.NewTool("play_combo",
		mcp.WithDescription("Play two compatible cards together. The hero's signature pair deals 2.5x for 1 PA; "+
			"other pairs sharing a combo symbol cost the cheaper card and add +2."),
		mcp.WithString("cards", mcp.Required(), mcp.Description("Two space-separated card ids")),
	)
}

func selectForComboTool() mcp.Tool {
	return mcp.NewTool("select_for_combo",
		mcp.WithDescription("Two-step combo selection. A card with a compatible partner in hand is armed; selecting a "+
			"compatible partner next plays the combo; a card with no partner is played alone; selecting the armed card again "+
			"or an incompatible card clears the selection."),
		mcp.WithString("card", mcp.Required(), mcp.Description("Card id from the hand")),
	)
}

func mulliganTool() mcp.Tool {
	return mcp.NewTool("mulligan",
		mcp.WithDescription("Redraw up to two cards from hand, once per turn, at no PA cost."),
		mcp.WithString("cards", mcp.Description("Space-separated card ids (at most 2), or empty to redraw nothing")),
	)
}

func endTurnTool() mcp.Tool {
	return mcp.NewTool("end_turn",
		mcp.WithDescription("End the battle turn: the battle is won if the enemy is at 0 HP, otherwise the enemy strikes, "+
			"then the hand is discarded, 3 cards are drawn and a new turn die is rolled. Result is Victory, Defeat or None."),
	)
}

func closeBattleTool() mcp.Tool {
	return mcp.NewTool("close_battle",
		mcp.WithDescription("Abandon the current battle. The map position and hero HP are unchanged."),
	)
}

func getStateTool() mcp.Tool {
	return mcp.NewTool("get_state",
		mcp.WithDescription("Get the current campaign and battle state plus any events not yet reported. Read-only."),
	)
}

// --- Tool handlers ---

func (g *GameSession) run(ctx context.Context, msg solonet.ClientMessage) (*mcp.CallToolResult, error) {
	resp, err := g.Do(ctx, msg)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if resp.Type == solonet.MsgError {
		res := mcp.NewToolResultText(respondJSON(resp))
		res.IsError = true
		return res, nil
	}
	return mcp.NewToolResultText(respondJSON(resp)), nil
}

func (g *GameSession) handleStartCampaign(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	hero := strings.TrimSpace(request.GetString("hero", ""))
	if hero == "" {
		return mcp.NewToolResultError("hero is required"), nil
	}
	resp := g.Start(ctx, hero)
	if resp.Type == solonet.MsgError {
		return mcp.NewToolResultErrorf("Failed to start campaign: %s", resp.Error), nil
	}
	return mcp.NewToolResultText(respondJSON(resp)), nil
}

func (g *GameSession) handleSelectNode(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	node := request.GetInt("node", 0)
	if node <= 0 {
		return mcp.NewToolResultError("node must be a positive node id"), nil
	}
	return g.run(ctx, solonet.ClientMessage{Type: solonet.CmdSelectNode, Node: node})
}

func (g *GameSession) handlePlayCard(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	card := strings.TrimSpace(request.GetString("card", ""))
	if card == "" {
		return mcp.NewToolResultError("card is required"), nil
	}
	return g.run(ctx, solonet.ClientMessage{Type: solonet.CmdPlayCard, Card: card})
}

func (g *GameSession) handlePlayCombo(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cards := strings.Fields(request.GetString("cards", ""))
	if len(cards) != 2 {
		return mcp.NewToolResultErrorf("Exactly two card ids are required, got %d.", len(cards)), nil
	}
	return g.run(ctx, solonet.ClientMessage{Type: solonet.CmdPlayCombo, Cards: cards})
}

func (g *GameSession) handleSelectForCombo(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	card := strings.TrimSpace(request.GetString("card", ""))
	if card == "" {
		return mcp.NewToolResultError("card is required"), nil
	}
	return g.run(ctx, solonet.ClientMessage{Type: solonet.CmdSelectForCombo, Card: card})
}

func (g *GameSession) handleMulligan(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cards := strings.Fields(request.GetString("cards", ""))
	return g.run(ctx, solonet.ClientMessage{Type: solonet.CmdMulligan, Cards: cards})
}

func (g *GameSession) handleEndTurn(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return g.run(ctx, solonet.ClientMessage{Type: solonet.CmdEndTurn})
}

func (g *GameSession) handleCloseBattle(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return g.run(ctx, solonet.ClientMessage{Type: solonet.CmdCloseBattle})
}

func (g *GameSession) handleGetState(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return g.run(ctx, solonet.ClientMessage{Type: solonet.CmdState})
}
