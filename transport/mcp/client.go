package mcp

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/PuraFome/fodinha/game/engine"
	"github.com/PuraFome/fodinha/game/service"
)

// Client is a thin MCP client that proxies to the REST API
type Client struct {
	baseURL    string
	httpClient *http.Client
	mcpServer  *server.MCPServer
}

// NewClient creates a new MCP client that calls the REST API
func NewClient(baseURL string) *Client {
	c := &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}

	c.initMCPServer()
	return c
}

// initMCPServer initializes the MCP server with all tools
func (c *Client) initMCPServer() {
	c.mcpServer = server.NewMCPServer(
		"Fodinha Game Server",
		"1.0.0",
		server.WithToolCapabilities(true),
		server.WithInstructions(`Fodinha Game Server - MCP Interface

This is a thin client that proxies all requests to the REST API server.
Gameplay itself happens over the WebSocket endpoint; these tools are for
observing the server.

GAME OBJECTIVE:
Fodinha is a Brazilian trick-taking card game. Each round, players bid how
many tricks they will win. Miss your bid and you gain a penalty point. The
player with the fewest points at the end wins.

AVAILABLE TOOLS:
- list_sessions: List all active game sessions
- get_session: Get details of a specific session, including a snapshot
- list_rulesets: List available table rulesets
- game_rules: Get the full rules of Fodinha as this server plays them`),
	)

	// Register all tools
	c.registerTools()
}

// registerTools registers all MCP tools
func (c *Client) registerTools() {
	c.mcpServer.AddTool(mcp.Tool{
		Name:        "list_sessions",
		Description: "List all active game sessions",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, c.handleListSessions)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "get_session",
		Description: "Get details of a specific session",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": map[string]interface{}{
					"type":        "string",
					"description": "Session ID to retrieve",
				},
			},
			Required: []string{"session_id"},
		},
	}, c.handleGetSession)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "list_rulesets",
		Description: "List available table rulesets",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, c.handleListRulesets)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "game_rules",
		Description: "Get the full rules of Fodinha as this server plays them",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, c.handleGameRules)
}

// GetMCPServer returns the underlying MCP server for serving
func (c *Client) GetMCPServer() *server.MCPServer {
	return c.mcpServer
}

// Helper methods for API calls

func (c *Client) apiCall(method, path string, body interface{}, result interface{}) error {
	url := c.baseURL + path

	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reqBody = bytes.NewBuffer(data)
	}

	req, err := http.NewRequest(method, url, reqBody)
	if err != nil {
		return err
	}

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		var errResp map[string]string
		json.NewDecoder(resp.Body).Decode(&errResp)
		if msg, ok := errResp["error"]; ok {
			return fmt.Errorf("%s", msg)
		}
		return fmt.Errorf("API error: %d", resp.StatusCode)
	}

	if result != nil {
		return json.NewDecoder(resp.Body).Decode(result)
	}

	return nil
}

// Tool handlers

func (c *Client) handleListSessions(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var response struct {
		Count    int                   `json:"count"`
		Sessions []service.SessionInfo `json:"sessions"`
	}

	err := c.apiCall("GET", "/api/sessions", nil, &response)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result := fmt.Sprintf("Active Sessions (%d):\n\n", response.Count)
	for _, s := range response.Sessions {
		result += fmt.Sprintf("- %s (Ruleset: %s, Players: %d/%d, Phase: %s, Created: %s)\n",
			s.ID, s.RulesetName, s.PlayerCount, s.MaxPlayers, s.Phase,
			s.CreatedAt.Format("15:04:05"))
	}

	return mcp.NewToolResultText(result), nil
}

func (c *Client) handleGetSession(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.Params.Arguments.(map[string]interface{})
	sessionID, _ := args["session_id"].(string)

	var session service.SessionInfo
	err := c.apiCall("GET", fmt.Sprintf("/api/sessions/%s", sessionID), nil, &session)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result := formatSessionInfo(&session)
	return mcp.NewToolResultText(result), nil
}

func (c *Client) handleListRulesets(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var rulesets []service.RulesetInfo
	err := c.apiCall("GET", "/api/rulesets", nil, &rulesets)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result := "Available Rulesets:\n\n"
	for _, rs := range rulesets {
		result += fmt.Sprintf("• %s\n  %s\n  Seats: %d, Reveal delay: %ds\n\n",
			rs.Name, rs.Description, rs.DefaultMaxPlayers, rs.RevealDelaySeconds)
	}

	return mcp.NewToolResultText(result), nil
}

func (c *Client) handleGameRules(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	rules := `Fodinha - Rules as Played Here

THE DECK:
40 cards, the standard truco deck: ranks 4 5 6 7 Q J K A 2 3 in each of
the four suits. Rank strength increases in exactly that order, so the 4
is the weakest card and the 3 is the strongest. Suits never matter.

THE ROUNDS:
Hand size follows the round number: 1 card in round 1, 2 in round 2, up
to 10 in round 10, then back down 9, 8, ... 1. After the last one-card
round the game ends. Each round one extra card is turned face up next to
the deck; it is shown for flavor only and takes no part in play.

ROUND 1 IS SPECIAL:
In round 1 every player holds their single card facing OUT. You can see
everyone's card except your own. Bid accordingly.

BIDDING:
Starting from a rotating seat, each player in turn states how many tricks
they expect to win this round, then locks the bid in. Once every player
has locked in, play begins with the player left of the dealer.

TRICKS:
Players play one card each in turn order. Highest rank wins the trick and
leads the next one. If the highest rank is tied, the tied cards CANCEL
each other and the next-highest untied card wins instead. If every card
cancels, nobody wins the trick and the lead passes left of whoever led.

SCORING:
At the end of a round, every player whose trick count differs from their
bid gains one penalty point. Lowest total wins.

THE REVEAL:
When the last trick of a round resolves, the table shows all played cards
for a few seconds before dealing the next round.`

	return mcp.NewToolResultText(rules), nil
}

// Formatting helpers

func formatSessionInfo(session *service.SessionInfo) string {
	result := fmt.Sprintf("Session: %s\nRuleset: %s\nPhase: %s\nPlayers: %d/%d\nCreated: %s\n",
		session.ID, session.RulesetName, session.Phase,
		session.PlayerCount, session.MaxPlayers,
		session.CreatedAt.Format("2006-01-02 15:04:05"))

	if session.Snapshot != nil {
		result += "\n" + formatSnapshot(session.Snapshot)
	}
	return result
}

func formatSnapshot(view *engine.GameView) string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("Round %d | Phase: %s\n", view.RoundNumber, view.Phase))
	if view.TrumpCard != nil {
		b.WriteString(fmt.Sprintf("Upcard: %s\n", view.TrumpCard))
	}

	b.WriteString("\nPlayers:\n")
	for i, p := range view.Players {
		marker := " "
		if i == view.CurrentPlayerIndex && view.Phase == engine.PhasePlaying {
			marker = ">"
		}
		if i == view.CurrentBidderIndex && view.Phase == engine.PhaseBidding {
			marker = ">"
		}
		dealer := ""
		if p.IsDealer {
			dealer = " (dealer)"
		}
		bid := "-"
		if v, ok := view.Bids[p.ID]; ok {
			bid = fmt.Sprintf("%d", v)
		}
		b.WriteString(fmt.Sprintf("%s %s%s  bid=%s tricks=%d score=%d\n",
			marker, p.Name, dealer, bid, p.TricksWon, p.Score))
	}

	if len(view.CurrentTrick) > 0 {
		b.WriteString("\nCurrent trick:")
		for _, card := range view.CurrentTrick {
			b.WriteString(" " + card.String())
		}
		b.WriteString("\n")
	}

	return b.String()
}
