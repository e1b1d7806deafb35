package mcp

import (
	"context"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/wricardo/sokoban/game/engine"
	"github.com/wricardo/sokoban/game/levels"
	"github.com/wricardo/sokoban/game/session"
	"github.com/wricardo/sokoban/game/solver"
)

// MaxBulkCommands caps the number of commands accepted by one bulk_move call
const MaxBulkCommands = 100

// Server exposes a local game session as MCP tools
type Server struct {
	sess      *session.Session
	levels    *levels.Manager // optional, enables start_game with level_set
	mcpServer *server.MCPServer
	mu        sync.RWMutex
}

// NewServer creates an MCP server playing sess. manager may be nil, in which
// case start_game only restarts the current level set.
func NewServer(sess *session.Session, manager *levels.Manager, version string) *Server {
	s := &Server{
		sess:   sess,
		levels: manager,
	}
	s.initMCPServer(version)
	return s
}

// initMCPServer initializes the MCP server with all tools
func (s *Server) initMCPServer(version string) {
	s.mcpServer = server.NewMCPServer(
		"Sokoban",
		version,
		server.WithToolCapabilities(true),
		server.WithInstructions(`Sokoban - MCP Interface

GAME OBJECTIVE:
Push the box (☐) onto the goal (G) to clear each level. Clear every level to win.

AVAILABLE TOOLS:
- game_state: Current level, grid and status
- move: Play one command token (w/a/s/d, or q to quit)
- bulk_move: Play several command tokens in order
- start_game: Start over from level 1, optionally with another level set
- list_level_sets: Level sets available to start_game
- solve_hint: Next move of a shortest solution
- game_instructions: Full rules

NOTE: The 'intent' parameter on move/bulk_move tools serves as rubber duck debugging - explain your reasoning!`),
	)

	s.registerTools()
}

// registerTools registers all MCP tools
func (s *Server) registerTools() {
	s.mcpServer.AddTool(mcp.Tool{
		Name:        "game_state",
		Description: "Get the current level, grid and status",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, s.handleGameState)

	s.mcpServer.AddTool(mcp.Tool{
		Name:        "move",
		Description: "Play one command: w (up), a (left), s (down), d (right) or q (quit). Other tokens are a no-op turn.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"command": map[string]interface{}{
					"type":        "string",
					"description": "Command token, case-insensitive",
				},
				"intent": map[string]interface{}{
					"type":        "string",
					"description": "Brief explanation of the intent behind this move (serves as a rubber duck to help explain your reasoning)",
				},
			},
			Required: []string{"command"},
		},
	}, s.handleMove)

	s.mcpServer.AddTool(mcp.Tool{
		Name:        "bulk_move",
		Description: "Play several commands in order; stops after a level is cleared, the game is complete or a quit",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"commands": map[string]interface{}{
					"type": "array",
					"items": map[string]interface{}{
						"type": "string",
					},
					"description": "Command tokens",
				},
				"intent": map[string]interface{}{
					"type":        "string",
					"description": "Brief explanation of the intent behind this sequence of moves (serves as a rubber duck to help explain your reasoning)",
				},
			},
			Required: []string{"commands"},
		},
	}, s.handleBulkMove)

	s.mcpServer.AddTool(mcp.Tool{
		Name:        "start_game",
		Description: "Start over from level 1, optionally loading another level set",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"level_set": map[string]interface{}{
					"type":        "string",
					"description": "Level set ID from list_level_sets (optional)",
				},
			},
		},
	}, s.handleStartGame)

	s.mcpServer.AddTool(mcp.Tool{
		Name:        "list_level_sets",
		Description: "List the level sets start_game can load",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, s.handleListLevelSets)

	s.mcpServer.AddTool(mcp.Tool{
		Name:        "solve_hint",
		Description: "Get the next move of a shortest solution for the current level",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, s.handleSolveHint)

	s.mcpServer.AddTool(mcp.Tool{
		Name:        "game_instructions",
		Description: "Get the complete game rules",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, s.handleGameInstructions)
}

// GetMCPServer returns the underlying MCP server
func (s *Server) GetMCPServer() *server.MCPServer {
	return s.mcpServer
}

// ServeStdio serves MCP over the given streams until ctx is done or input ends
func (s *Server) ServeStdio(ctx context.Context, in io.Reader, out io.Writer) error {
	return server.NewStdioServer(s.mcpServer).Listen(ctx, in, out)
}

// Session returns the session currently being played
func (s *Server) Session() *session.Session {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.sess
}

// Tool handlers

func (s *Server) handleGameState(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return mcp.NewToolResultText(formatState(s.Session())), nil
}

func (s *Server) handleMove(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, _ := request.Params.Arguments.(map[string]interface{})
	command, ok := args["command"].(string)
	if !ok {
		return mcp.NewToolResultError("command is required"), nil
	}

	sess := s.Session()
	if sess.Done() {
		return mcp.NewToolResultError("game is over; call start_game to play again"), nil
	}

	outcome := sess.PlayToken(command)
	log.Debug("mcp move", "command", command, "event", outcome.Event)

	return mcp.NewToolResultText(formatOutcome(outcome) + "\n\n" + formatState(sess)), nil
}

func (s *Server) handleBulkMove(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, _ := request.Params.Arguments.(map[string]interface{})
	raw, ok := args["commands"].([]interface{})
	if !ok || len(raw) == 0 {
		return mcp.NewToolResultError("commands must be a non-empty array"), nil
	}
	if len(raw) > MaxBulkCommands {
		return mcp.NewToolResultError(fmt.Sprintf("too many commands: %d (max %d)", len(raw), MaxBulkCommands)), nil
	}

	commands := make([]string, 0, len(raw))
	for i, v := range raw {
		token, ok := v.(string)
		if !ok {
			return mcp.NewToolResultError(fmt.Sprintf("commands[%d] must be a string", i)), nil
		}
		commands = append(commands, token)
	}

	sess := s.Session()
	if sess.Done() {
		return mcp.NewToolResultError("game is over; call start_game to play again"), nil
	}

	var result strings.Builder
	executed := 0
	for _, token := range commands {
		outcome := sess.PlayToken(token)
		executed++
		if outcome.Event != session.EventMoved {
			result.WriteString(fmt.Sprintf("Stopped after command %d (%q): %s\n", executed, token, formatOutcome(outcome)))
			break
		}
	}

	result.WriteString(fmt.Sprintf("Commands executed: %d/%d\n\n", executed, len(commands)))
	result.WriteString(formatState(sess))
	return mcp.NewToolResultText(result.String()), nil
}

func (s *Server) handleStartGame(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, _ := request.Params.Arguments.(map[string]interface{})
	name, _ := args["level_set"].(string)

	if name == "" {
		sess := s.Session()
		sess.Restart()
		return mcp.NewToolResultText("Game restarted.\n\n" + formatState(sess)), nil
	}

	if s.levels == nil {
		return mcp.NewToolResultError("no level directory configured"), nil
	}

	levelSet, err := s.levels.Load(name)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	sess, err := session.New(levelSet)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	s.mu.Lock()
	s.sess = sess
	s.mu.Unlock()

	log.Info("mcp game started", "level_set", name, "levels", len(levelSet))
	return mcp.NewToolResultText(fmt.Sprintf("Started level set %q (%d levels).\n\n", name, len(levelSet)) + formatState(sess)), nil
}

func (s *Server) handleListLevelSets(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if s.levels == nil {
		return mcp.NewToolResultError("no level directory configured"), nil
	}

	// Pick up files added or edited since the last call
	s.levels.RefreshCache()
	sets, err := s.levels.List()
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	var result strings.Builder
	result.WriteString(fmt.Sprintf("Level Sets (%d):\n\n", len(sets)))
	for _, set := range sets {
		result.WriteString(fmt.Sprintf("- %s (%s): %d levels, up to %dx%d\n",
			set.ID, set.Filename, set.Levels, set.MaxGridSize, set.MaxGridSize))
	}
	return mcp.NewToolResultText(result.String()), nil
}

func (s *Server) handleSolveHint(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	sess := s.Session()
	if sess.Done() {
		return mcp.NewToolResultError("game is over; call start_game to play again"), nil
	}

	next, err := solver.Hint(sess.Current())
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("no hint available: %v", err)), nil
	}
	if next == engine.Invalid {
		return mcp.NewToolResultText("The box is already on the goal: any command clears the level."), nil
	}

	return mcp.NewToolResultText(fmt.Sprintf("Next move: %s (%s).", next.Token(), next)), nil
}

func (s *Server) handleGameInstructions(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	instructions := `Sokoban - Complete Instructions

GAME OBJECTIVE:
Each level is a square grid with one player (P), one box (☐) and one goal (G).
Push the box onto the goal to clear the level. Levels are played in order.

COMMANDS:
• w - up (y-1)
• s - down (y+1)
• a - left (x-1)
• d - right (x+1)
• q - quit
Commands are case-insensitive. Anything else is a turn that changes nothing.

RULES:
• Coordinates start at (0,0) in the top-left corner.
• A move that would leave the grid is ignored.
• Walking into the box pushes it one cell the same way.
• If the push would leave the grid, the box stays and you share its cell.
• You can never pull the box. A box on an edge can never leave that edge.
• After every turn the level is cleared if the box sits on the goal.

GRID LEGEND:
• P - Player (drawn over everything)
• ☐ - Box (drawn over the goal)
• G - Goal
• . - Empty cell`

	return mcp.NewToolResultText(instructions), nil
}

// formatOutcome describes what a turn did
func formatOutcome(outcome session.Outcome) string {
	switch outcome.Event {
	case session.EventQuit:
		return session.Farewell
	case session.EventGameComplete:
		return fmt.Sprintf("Level %d cleared! %s", outcome.LevelNumber, session.Congratulations)
	case session.EventLevelCleared:
		return fmt.Sprintf("Level %d cleared! On to level %d.", outcome.LevelNumber, outcome.LevelNumber+1)
	default:
		return "Turn played."
	}
}

// formatState renders the session's current level for an agent
func formatState(sess *session.Session) string {
	level := sess.Current()

	var result strings.Builder
	result.WriteString(fmt.Sprintf("Level %d/%d", sess.LevelNumber(), sess.LevelCount()))
	if level.Name != "" {
		result.WriteString(" - " + level.Name)
	}
	result.WriteString("\n")
	result.WriteString(fmt.Sprintf("Player: (%d,%d) | Box: (%d,%d) | Goal: (%d,%d) | Grid: %dx%d\n\n",
		level.PlayerX, level.PlayerY, level.BoxX, level.BoxY,
		level.GoalX, level.GoalY, level.GridSize, level.GridSize))
	result.WriteString(level.String())
	result.WriteString("\n")

	if moves := engine.PossibleMoves(level); len(moves) > 0 {
		names := make([]string, len(moves))
		for i, dir := range moves {
			names[i] = fmt.Sprintf("%s (%s)", dir.Token(), dir)
		}
		result.WriteString("\nAvailable moves: " + strings.Join(names, ", ") + "\n")
	}

	if sess.Done() {
		result.WriteString("\nGAME OVER - call start_game to play again")
	}
	return result.String()
}
