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

	"github.com/starpusher/starpusher/game/engine"
	"github.com/starpusher/starpusher/game/service"
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
		"Star Pusher",
		"1.0.0",
		server.WithToolCapabilities(true),
		server.WithInstructions(`Star Pusher - MCP Interface

This is a thin client that proxies all requests to the REST API server.

GAME OBJECTIVE:
Push every star ($) onto a goal (.) to solve the level. You can only push
one star at a time, and you can never pull.

AVAILABLE TOOLS:
- game_state: Get the current board
- move: Single move (up/down/left/right)
- undo / redo: Step backward or forward through your move history
- reset_level: Restart the current level from scratch
- next_level / previous_level: Switch levels (progress is kept)
- click: Plan a walking route to a floor tile and start following it
- find_path: Preview a walking route without moving
- tick: Advance route following by one step
- create_session / get_session / list_sessions: Session management
- list_packs: List available level packs
- game_instructions: Get comprehensive game rules

TIP: Think before you push. A star pushed into a corner can never come
back out, but undo always can.`),
	)

	// Register all tools
	c.registerTools()
}

func sessionIDProperty() map[string]interface{} {
	return map[string]interface{}{
		"type":        "string",
		"description": "Session ID",
	}
}

// registerTools registers all MCP tools
func (c *Client) registerTools() {
	// Session management
	c.mcpServer.AddTool(mcp.Tool{
		Name:        "create_session",
		Description: "Create a new game session with optional level pack selection",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"pack": map[string]interface{}{
					"type":        "string",
					"description": "Name of the level pack to play (optional, defaults to the built-in pack)",
				},
			},
		},
	}, c.handleCreateSession)

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
				"session_id": sessionIDProperty(),
			},
			Required: []string{"session_id"},
		},
	}, c.handleGetSession)

	// Game operations
	c.mcpServer.AddTool(mcp.Tool{
		Name:        "game_state",
		Description: "Get the current board for a session",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": sessionIDProperty(),
			},
			Required: []string{"session_id"},
		},
	}, c.handleGameState)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "move",
		Description: "Move the player one tile, pushing a star if one is in the way",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": sessionIDProperty(),
				"direction": map[string]interface{}{
					"type":        "string",
					"enum":        []string{"up", "down", "left", "right"},
					"description": "Direction to move",
				},
			},
			Required: []string{"session_id", "direction"},
		},
	}, c.handleMove)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "undo",
		Description: "Take back the most recent move (works any number of times)",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": sessionIDProperty(),
			},
			Required: []string{"session_id"},
		},
	}, c.handleUndo)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "redo",
		Description: "Replay the most recently undone move",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": sessionIDProperty(),
			},
			Required: []string{"session_id"},
		},
	}, c.handleRedo)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "reset_level",
		Description: "Restart the current level from its initial layout",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": sessionIDProperty(),
			},
			Required: []string{"session_id"},
		},
	}, c.handleReset)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "next_level",
		Description: "Advance to the next level in the pack (wraps past the last)",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": sessionIDProperty(),
			},
			Required: []string{"session_id"},
		},
	}, c.handleNextLevel)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "previous_level",
		Description: "Go back one level in the pack (wraps before the first)",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": sessionIDProperty(),
			},
			Required: []string{"session_id"},
		},
	}, c.handlePreviousLevel)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "find_path",
		Description: "Preview the walking route to a floor tile without moving. Routes never push stars.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": sessionIDProperty(),
				"x": map[string]interface{}{
					"type":        "integer",
					"description": "X coordinate (column) of the destination tile (0-based)",
				},
				"y": map[string]interface{}{
					"type":        "integer",
					"description": "Y coordinate (row) of the destination tile (0-based)",
				},
			},
			Required: []string{"session_id", "x", "y"},
		},
	}, c.handleFindPath)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "click",
		Description: "Plan a walking route to a floor tile and start following it. Use tick to advance.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": sessionIDProperty(),
				"x": map[string]interface{}{
					"type":        "integer",
					"description": "X coordinate (column) of the destination tile (0-based)",
				},
				"y": map[string]interface{}{
					"type":        "integer",
					"description": "Y coordinate (row) of the destination tile (0-based)",
				},
			},
			Required: []string{"session_id", "x", "y"},
		},
	}, c.handleClick)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "tick",
		Description: "Advance route following by one step",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": sessionIDProperty(),
			},
			Required: []string{"session_id"},
		},
	}, c.handleTick)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "list_packs",
		Description: "List available level packs",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, c.handleListPacks)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "game_instructions",
		Description: "Get comprehensive game instructions and rules",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, c.handleGameInstructions)
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

func toolArgs(request mcp.CallToolRequest) map[string]interface{} {
	args, _ := request.Params.Arguments.(map[string]interface{})
	return args
}

// Tool handlers

func (c *Client) handleCreateSession(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := toolArgs(request)
	packName, _ := args["pack"].(string)

	body := map[string]string{}
	if packName != "" {
		body["pack"] = packName
	}

	var session service.SessionInfo
	err := c.apiCall("POST", "/api/sessions", body, &session)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result := fmt.Sprintf("Created session: %s\nPack: %s (%d levels)\n\n%s",
		session.ID, session.PackName, session.LevelCount, formatSnapshot(session.Snapshot))
	return mcp.NewToolResultText(result), nil
}

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
		result += fmt.Sprintf("- %s (Pack: %s, Level: %d/%d, Created: %s)\n",
			s.ID, s.PackName, s.LevelIndex+1, s.LevelCount, s.CreatedAt.Format("15:04:05"))
	}

	return mcp.NewToolResultText(result), nil
}

func (c *Client) handleGetSession(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := toolArgs(request)
	sessionID, _ := args["session_id"].(string)

	var session service.SessionInfo
	err := c.apiCall("GET", fmt.Sprintf("/api/sessions/%s", sessionID), nil, &session)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result := fmt.Sprintf("Session: %s\nPack: %s\nCreated: %s\n\n%s",
		session.ID, session.PackName,
		session.CreatedAt.Format("2006-01-02 15:04:05"),
		formatSnapshot(session.Snapshot))
	return mcp.NewToolResultText(result), nil
}

func (c *Client) handleGameState(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := toolArgs(request)
	sessionID, _ := args["session_id"].(string)

	var snapshot service.Snapshot
	err := c.apiCall("GET", fmt.Sprintf("/api/sessions/%s/state", sessionID), nil, &snapshot)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(formatSnapshot(&snapshot)), nil
}

func (c *Client) handleMove(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := toolArgs(request)
	sessionID, _ := args["session_id"].(string)
	direction, _ := args["direction"].(string)

	body := map[string]interface{}{
		"direction": direction,
	}

	var result service.MoveResult
	err := c.apiCall("POST", fmt.Sprintf("/api/sessions/%s/move", sessionID), body, &result)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(formatMoveResult(&result)), nil
}

func (c *Client) handleUndo(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return c.simpleMoveCall(request, "undo")
}

func (c *Client) handleRedo(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return c.simpleMoveCall(request, "redo")
}

func (c *Client) simpleMoveCall(request mcp.CallToolRequest, op string) (*mcp.CallToolResult, error) {
	args := toolArgs(request)
	sessionID, _ := args["session_id"].(string)

	var result service.MoveResult
	err := c.apiCall("POST", fmt.Sprintf("/api/sessions/%s/%s", sessionID, op), nil, &result)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(formatMoveResult(&result)), nil
}

func (c *Client) handleReset(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := toolArgs(request)
	sessionID, _ := args["session_id"].(string)

	var response struct {
		Message  string            `json:"message"`
		Snapshot *service.Snapshot `json:"snapshot"`
	}

	err := c.apiCall("POST", fmt.Sprintf("/api/sessions/%s/reset", sessionID), nil, &response)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result := fmt.Sprintf("%s\n\n%s", response.Message, formatSnapshot(response.Snapshot))
	return mcp.NewToolResultText(result), nil
}

func (c *Client) handleNextLevel(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return c.levelSwitchCall(request, "next-level")
}

func (c *Client) handlePreviousLevel(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return c.levelSwitchCall(request, "previous-level")
}

func (c *Client) levelSwitchCall(request mcp.CallToolRequest, op string) (*mcp.CallToolResult, error) {
	args := toolArgs(request)
	sessionID, _ := args["session_id"].(string)

	var snapshot service.Snapshot
	err := c.apiCall("POST", fmt.Sprintf("/api/sessions/%s/%s", sessionID, op), nil, &snapshot)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(formatSnapshot(&snapshot)), nil
}

func (c *Client) handleFindPath(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return c.pathCall(request, "hover")
}

func (c *Client) handleClick(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return c.pathCall(request, "click")
}

func (c *Client) pathCall(request mcp.CallToolRequest, op string) (*mcp.CallToolResult, error) {
	args := toolArgs(request)
	sessionID, _ := args["session_id"].(string)
	x, _ := args["x"].(float64)
	y, _ := args["y"].(float64)

	body := map[string]int{"x": int(x), "y": int(y)}

	var result service.PathResult
	err := c.apiCall("POST", fmt.Sprintf("/api/sessions/%s/%s", sessionID, op), body, &result)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	if !result.Found {
		return mcp.NewToolResultText(fmt.Sprintf(
			"No route to (%d,%d). The tile is a wall, holds a star, or is cut off.\n\n%s",
			int(x), int(y), formatSnapshot(result.Snapshot))), nil
	}

	response := fmt.Sprintf("Route found: %d steps\n", len(result.Path)-1)
	if op == "click" {
		response += "Following started. Use tick to advance one step at a time.\n"
	}
	response += "\n" + formatSnapshot(result.Snapshot)
	return mcp.NewToolResultText(response), nil
}

func (c *Client) handleTick(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := toolArgs(request)
	sessionID, _ := args["session_id"].(string)

	var result service.TickResult
	err := c.apiCall("POST", fmt.Sprintf("/api/sessions/%s/tick", sessionID), nil, &result)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	var response string
	switch {
	case result.Moved && result.Active:
		response = "Stepped along the route.\n"
	case result.Moved:
		response = "Stepped along the route. Destination reached.\n"
	default:
		response = "No route being followed.\n"
	}
	response += "\n" + formatSnapshot(result.Snapshot)
	return mcp.NewToolResultText(response), nil
}

func (c *Client) handleListPacks(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var packs []struct {
		Filename   string `json:"filename"`
		PackID     string `json:"pack_id"`
		LevelCount int    `json:"level_count"`
	}
	err := c.apiCall("GET", "/api/packs", nil, &packs)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result := "Available Level Packs:\n\n"
	for _, pack := range packs {
		result += fmt.Sprintf("• %s (%d levels)\n", pack.PackID, pack.LevelCount)
	}

	return mcp.NewToolResultText(result), nil
}

func (c *Client) handleGameInstructions(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	instructions := `Star Pusher - Complete Instructions

GAME OBJECTIVE:
Push every star onto a goal tile. The level is solved the moment each goal
is covered by a star.

BOARD LEGEND:
- # - Wall (impassable)
- @ - You, the pusher
- $ - Star (pushable)
- . - Goal (put a star here)
- * - Star sitting on a goal
- + - You, standing on a goal
- (space) - Open floor

MOVEMENT RULES:
- You move one tile at a time: up, down, left, or right.
- Walking into a star pushes it one tile in the same direction.
- A push only works if the tile behind the star is open floor. Stars never
  push other stars, and nothing moves through walls.
- You can never pull a star. A star pushed into a corner is stuck there
  until you undo.
- A blocked move does nothing at all: no step, no counter change.

UNDO AND REDO:
- undo takes back the last move, star position included, any number of
  times, all the way to the start of the level.
- redo replays undone moves. Making a fresh move discards the redo trail.

POINTER PLAY:
- click plans a walking route to any open floor tile and starts following
  it one step per tick. Routes go around stars, never through them, so
  clicking can never push anything by accident.
- find_path previews the same route without committing to it.
- If the board changes under a route being followed, the walk stops.

LEVELS:
- Levels come in packs. next_level and previous_level switch levels and
  wrap around at the ends of the pack.
- Each level keeps its own in-progress state when you switch away, so you
  can hop between levels freely.
- reset_level starts the current level over with an empty history.

STRATEGY NOTES:
- Before pushing a star, check the tile behind it: once a star touches a
  wall, it can only slide along that wall.
- Never push a star into a corner unless the corner is a goal.
- Work out the order of pushes first. Stars near goals usually go last.

SESSION MANAGEMENT:
- Multiple sessions can run simultaneously, each with a unique
  4-character ID and independent progress.
- Progress is saved automatically after every move.`

	return mcp.NewToolResultText(instructions), nil
}

// Formatting helpers

func formatSnapshot(snap *service.Snapshot) string {
	if snap == nil || snap.Grid == nil || snap.State == nil {
		return "No board available"
	}

	var b strings.Builder
	b.WriteString(fmt.Sprintf("Level %d/%d (pack %s) | Steps: %d | Pushes: %d\n\n",
		snap.LevelIndex+1, snap.LevelCount, snap.PackName, snap.Steps, snap.Pushes))
	b.WriteString(renderBoard(snap))

	if snap.Solved {
		b.WriteString("\nSolved! Use next_level to keep going.")
	} else if snap.Following {
		b.WriteString("\nFollowing a route. Use tick to advance.")
	}

	return b.String()
}

// renderBoard draws the board in classic Sokoban notation.
func renderBoard(snap *service.Snapshot) string {
	grid := snap.Grid
	state := snap.State

	goals := make(map[engine.Position]bool, len(snap.Goals))
	for _, g := range snap.Goals {
		goals[g] = true
	}
	stars := make(map[engine.Position]bool, len(state.Stars))
	for _, st := range state.Stars {
		stars[st] = true
	}
	preview := make(map[engine.Position]bool, len(snap.PreviewPath))
	for _, p := range snap.PreviewPath {
		preview[p] = true
	}

	var b strings.Builder
	for y := 0; y < grid.Height; y++ {
		for x := 0; x < grid.Width; x++ {
			pos := engine.Position{X: x, Y: y}
			onGoal := goals[pos]
			switch {
			case grid.Tiles[y][x].Kind == engine.Wall:
				b.WriteString("#")
			case pos == state.Player && onGoal:
				b.WriteString("+")
			case pos == state.Player:
				b.WriteString("@")
			case stars[pos] && onGoal:
				b.WriteString("*")
			case stars[pos]:
				b.WriteString("$")
			case onGoal:
				b.WriteString(".")
			case preview[pos]:
				b.WriteString("~")
			default:
				b.WriteString(" ")
			}
		}
		b.WriteString("\n")
	}
	return b.String()
}

func formatMoveResult(result *service.MoveResult) string {
	response := ""
	if result.Success {
		response = "Move successful\n"
	} else {
		response = "Move blocked - nothing happened\n"
	}

	if len(result.Events) > 0 {
		response += "Events:\n"
		for _, event := range result.Events {
			response += fmt.Sprintf("- %s: %s\n", event.Type, event.Message)
		}
	}

	response += "\n" + formatSnapshot(result.Snapshot)
	return response
}
