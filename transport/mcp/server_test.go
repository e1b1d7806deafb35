package mcp

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wricardo/sokoban/game/engine"
	"github.com/wricardo/sokoban/game/levels"
	"github.com/wricardo/sokoban/game/session"
)

func testLevels() []engine.Level {
	return []engine.Level{
		{Name: "One", PlayerX: 0, PlayerY: 0, BoxX: 1, BoxY: 0, GoalX: 2, GoalY: 0, GridSize: 3},
		{Name: "Two", PlayerX: 1, PlayerY: 2, BoxX: 1, BoxY: 1, GoalX: 1, GoalY: 0, GridSize: 3},
	}
}

func newTestServer(t *testing.T, manager *levels.Manager) *Server {
	t.Helper()
	sess, err := session.New(testLevels())
	require.NoError(t, err)
	return NewServer(sess, manager, "test")
}

func callTool(t *testing.T, handler func(context.Context, mcp.CallToolRequest) (*mcp.CallToolResult, error), name string, args map[string]interface{}) *mcp.CallToolResult {
	t.Helper()
	request := mcp.CallToolRequest{}
	request.Params.Name = name
	request.Params.Arguments = args

	result, err := handler(context.Background(), request)
	require.NoError(t, err)
	require.NotNil(t, result)
	require.NotEmpty(t, result.Content)
	return result
}

func resultText(t *testing.T, result *mcp.CallToolResult) string {
	t.Helper()
	text, ok := result.Content[0].(mcp.TextContent)
	require.True(t, ok, "expected text content")
	return text.Text
}

func TestNewServer(t *testing.T) {
	s := newTestServer(t, nil)
	assert.NotNil(t, s.GetMCPServer())
	assert.NotNil(t, s.Session())
}

func TestHandleGameState(t *testing.T) {
	s := newTestServer(t, nil)

	result := callTool(t, s.handleGameState, "game_state", nil)
	text := resultText(t, result)

	assert.False(t, result.IsError)
	assert.Contains(t, text, "Level 1/2 - One")
	assert.Contains(t, text, "Player: (0,0) | Box: (1,0) | Goal: (2,0) | Grid: 3x3")
	assert.Contains(t, text, "P ☐ G")
	assert.Contains(t, text, "Available moves: s (down), d (right)")
}

func TestHandleMove(t *testing.T) {
	tests := []struct {
		name     string
		args     map[string]interface{}
		wantErr  bool
		contains string
	}{
		{
			name:     "push onto goal clears level",
			args:     map[string]interface{}{"command": "d", "intent": "push right"},
			contains: "Level 1 cleared! On to level 2.",
		},
		{
			name:     "uppercase token",
			args:     map[string]interface{}{"command": "D"},
			contains: "Level 2/2 - Two",
		},
		{
			name:     "unknown token is a turn",
			args:     map[string]interface{}{"command": "x"},
			contains: "Turn played.",
		},
		{
			name:    "missing command",
			args:    map[string]interface{}{},
			wantErr: true,
		},
		{
			name:    "non-string command",
			args:    map[string]interface{}{"command": 3},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestServer(t, nil)
			result := callTool(t, s.handleMove, "move", tt.args)

			assert.Equal(t, tt.wantErr, result.IsError)
			if tt.contains != "" {
				assert.Contains(t, resultText(t, result), tt.contains)
			}
		})
	}
}

func TestHandleMove_Quit(t *testing.T) {
	s := newTestServer(t, nil)

	result := callTool(t, s.handleMove, "move", map[string]interface{}{"command": "q"})
	assert.False(t, result.IsError)
	assert.Contains(t, resultText(t, result), session.Farewell)
	assert.Contains(t, resultText(t, result), "GAME OVER")

	result = callTool(t, s.handleMove, "move", map[string]interface{}{"command": "d"})
	assert.True(t, result.IsError)
}

func TestHandleBulkMove(t *testing.T) {
	s := newTestServer(t, nil)

	result := callTool(t, s.handleBulkMove, "bulk_move", map[string]interface{}{
		"commands": []interface{}{"d", "w", "w"},
	})
	text := resultText(t, result)

	assert.False(t, result.IsError)
	assert.Contains(t, text, `Stopped after command 1 ("d")`)
	assert.Contains(t, text, "Commands executed: 1/3")
	assert.Equal(t, 2, s.Session().LevelNumber())
}

func TestHandleBulkMove_CompletesGame(t *testing.T) {
	s := newTestServer(t, nil)

	result := callTool(t, s.handleBulkMove, "bulk_move", map[string]interface{}{"commands": []interface{}{"d"}})
	require.False(t, result.IsError)

	result = callTool(t, s.handleBulkMove, "bulk_move", map[string]interface{}{"commands": []interface{}{"x", "w", "s"}})
	text := resultText(t, result)

	assert.False(t, result.IsError)
	assert.Contains(t, text, "Commands executed: 2/3")
	assert.Contains(t, text, session.Congratulations)
	assert.True(t, s.Session().Done())
}

func TestHandleBulkMove_Errors(t *testing.T) {
	tooMany := make([]interface{}, MaxBulkCommands+1)
	for i := range tooMany {
		tooMany[i] = "x"
	}

	tests := []struct {
		name string
		args map[string]interface{}
	}{
		{name: "missing", args: map[string]interface{}{}},
		{name: "empty", args: map[string]interface{}{"commands": []interface{}{}}},
		{name: "non-string element", args: map[string]interface{}{"commands": []interface{}{"d", 1}}},
		{name: "too many", args: map[string]interface{}{"commands": tooMany}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestServer(t, nil)
			result := callTool(t, s.handleBulkMove, "bulk_move", tt.args)
			assert.True(t, result.IsError)
			assert.Equal(t, 1, s.Session().LevelNumber())
		})
	}
}

func TestHandleStartGame_Restart(t *testing.T) {
	s := newTestServer(t, nil)
	callTool(t, s.handleMove, "move", map[string]interface{}{"command": "d"})
	require.Equal(t, 2, s.Session().LevelNumber())

	result := callTool(t, s.handleStartGame, "start_game", nil)
	assert.False(t, result.IsError)
	assert.Contains(t, resultText(t, result), "Game restarted.")
	assert.Equal(t, 1, s.Session().LevelNumber())
}

func TestHandleStartGame_LevelSet(t *testing.T) {
	manager, err := levels.NewManager("../../levels")
	require.NoError(t, err)
	s := newTestServer(t, manager)

	result := callTool(t, s.handleStartGame, "start_game", map[string]interface{}{"level_set": "tutorial"})
	assert.False(t, result.IsError)
	assert.Contains(t, resultText(t, result), `Started level set "tutorial" (2 levels).`)
	assert.Equal(t, "Nudge", s.Session().Current().Name)

	result = callTool(t, s.handleStartGame, "start_game", map[string]interface{}{"level_set": "missing"})
	assert.True(t, result.IsError)
	assert.Equal(t, "Nudge", s.Session().Current().Name)
}

func TestHandleStartGame_NoManager(t *testing.T) {
	s := newTestServer(t, nil)
	result := callTool(t, s.handleStartGame, "start_game", map[string]interface{}{"level_set": "classic"})
	assert.True(t, result.IsError)
}

func TestHandleListLevelSets(t *testing.T) {
	manager, err := levels.NewManager("../../levels")
	require.NoError(t, err)
	s := newTestServer(t, manager)

	result := callTool(t, s.handleListLevelSets, "list_level_sets", nil)
	text := resultText(t, result)

	assert.False(t, result.IsError)
	assert.Contains(t, text, "- classic (classic.json): 5 levels, up to 7x7")
	assert.Contains(t, text, "- tutorial (tutorial.yaml): 2 levels, up to 3x3")
}

func TestHandleListLevelSets_SeesNewFiles(t *testing.T) {
	dir := t.TempDir()
	level := `[{"player_x":0,"player_y":0,"box_x":1,"box_y":0,"goal_x":2,"goal_y":0,"grid_size":3}]`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "first.json"), []byte(level), 0o644))

	manager, err := levels.NewManager(dir)
	require.NoError(t, err)
	s := newTestServer(t, manager)

	text := resultText(t, callTool(t, s.handleListLevelSets, "list_level_sets", nil))
	assert.Contains(t, text, "Level Sets (1)")

	require.NoError(t, os.WriteFile(filepath.Join(dir, "second.json"), []byte(level), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "first.json"), []byte(strings.Replace(level, "}]", "},"+level[1:], 1)), 0o644))

	text = resultText(t, callTool(t, s.handleListLevelSets, "list_level_sets", nil))
	assert.Contains(t, text, "Level Sets (2)")
	assert.Contains(t, text, "- first (first.json): 2 levels")
	assert.Contains(t, text, "- second (second.json): 1 levels")
}

func TestHandleSolveHint(t *testing.T) {
	s := newTestServer(t, nil)

	result := callTool(t, s.handleSolveHint, "solve_hint", nil)
	text := resultText(t, result)

	assert.False(t, result.IsError)
	assert.Equal(t, "Next move: d (right).", text)
}

func TestHandleSolveHint_Unsolvable(t *testing.T) {
	sess, err := session.New([]engine.Level{
		{PlayerX: 1, PlayerY: 1, BoxX: 0, BoxY: 1, GoalX: 2, GoalY: 1, GridSize: 3},
	})
	require.NoError(t, err)
	s := NewServer(sess, nil, "test")

	result := callTool(t, s.handleSolveHint, "solve_hint", nil)
	assert.True(t, result.IsError)
	assert.Contains(t, resultText(t, result), "unsolvable")
}

func TestHandleSolveHint_AlreadySolved(t *testing.T) {
	sess, err := session.New([]engine.Level{
		{PlayerX: 0, PlayerY: 0, BoxX: 1, BoxY: 1, GoalX: 1, GoalY: 1, GridSize: 2},
	})
	require.NoError(t, err)
	s := NewServer(sess, nil, "test")

	result := callTool(t, s.handleSolveHint, "solve_hint", nil)
	assert.False(t, result.IsError)
	assert.Contains(t, resultText(t, result), "already on the goal")
}

func TestHandleGameInstructions(t *testing.T) {
	s := newTestServer(t, nil)

	result := callTool(t, s.handleGameInstructions, "game_instructions", nil)
	text := resultText(t, result)

	for _, want := range []string{"w - up", "s - down", "a - left", "d - right", "q - quit", "never pull"} {
		assert.True(t, strings.Contains(text, want), "instructions missing %q", want)
	}
}
