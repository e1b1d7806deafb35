package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wricardo/sokoban/game/levels"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestValidateLevelSet(t *testing.T) {
	tests := []struct {
		name      string
		file      string
		content   string
		wantValid bool
		contains  string
	}{
		{
			name:      "solvable json",
			file:      "good.json",
			content:   `[{"name":"Push","player_x":0,"player_y":0,"box_x":1,"box_y":0,"goal_x":2,"goal_y":0,"grid_size":3}]`,
			wantValid: true,
			contains:  "✓ Level 1 (Push): solvable in 1 moves",
		},
		{
			name:      "box starts on goal",
			file:      "start.json",
			content:   `[{"player_x":0,"player_y":0,"box_x":1,"box_y":1,"goal_x":1,"goal_y":1,"grid_size":3}]`,
			wantValid: true,
			contains:  "✓ Level 1: box starts on the goal",
		},
		{
			name:      "yaml",
			file:      "good.yaml",
			content:   "- player_x: 0\n  player_y: 0\n  box_x: 1\n  box_y: 0\n  goal_x: 2\n  goal_y: 0\n  grid_size: 3\n",
			wantValid: true,
			contains:  "✓ Structure: 1 levels within bounds",
		},
		{
			name:      "box on edge cannot leave it",
			file:      "edge.json",
			content:   `[{"player_x":1,"player_y":1,"box_x":0,"box_y":1,"goal_x":2,"goal_y":1,"grid_size":3}]`,
			wantValid: false,
			contains:  "Level 1: unsolvable",
		},
		{
			name:      "out of bounds",
			file:      "bounds.json",
			content:   `[{"player_x":5,"player_y":0,"box_x":1,"box_y":0,"goal_x":2,"goal_y":0,"grid_size":3}]`,
			wantValid: false,
			contains:  "Failed to load",
		},
		{
			name:      "missing key",
			file:      "schema.json",
			content:   `[{"player_x":0,"player_y":0,"box_x":1,"box_y":0,"goal_x":2,"grid_size":3}]`,
			wantValid: false,
			contains:  "Failed to load",
		},
		{
			name:      "malformed",
			file:      "broken.json",
			content:   `[{`,
			wantValid: false,
			contains:  "Failed to load",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeFile(t, t.TempDir(), tt.file, tt.content)

			result := validateLevelSet(path)
			assert.Equal(t, tt.file, result.File)
			assert.Equal(t, tt.wantValid, result.Valid, "errors: %v", result.Errors)
			assert.Contains(t, strings.Join(result.Errors, "\n"), tt.contains)
		})
	}
}

func TestValidateLevelSet_MissingFile(t *testing.T) {
	result := validateLevelSet(filepath.Join(t.TempDir(), "nope.json"))
	assert.False(t, result.Valid)
	require.Len(t, result.Errors, 1)
	assert.Contains(t, result.Errors[0], "Failed to load")
}

func TestRun(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "a.json", `[{"player_x":0,"player_y":0,"box_x":1,"box_y":0,"goal_x":2,"goal_y":0,"grid_size":3}]`)
	writeFile(t, dir, "notes.txt", "ignored")

	var out bytes.Buffer
	allValid, err := run(dir, &out)
	require.NoError(t, err)
	assert.True(t, allValid)
	assert.Contains(t, out.String(), "==================== a.json")
	assert.Contains(t, out.String(), "✅ All level sets are valid!")
	assert.NotContains(t, out.String(), "notes.txt")

	writeFile(t, dir, "b.yml", "[]\n")
	out.Reset()
	allValid, err = run(dir, &out)
	require.NoError(t, err)
	assert.False(t, allValid)
	assert.Contains(t, out.String(), "❌ INVALID")
	assert.Contains(t, out.String(), "❌ Some level sets have errors")
}

func TestRun_EmptyDir(t *testing.T) {
	_, err := run(t.TempDir(), &bytes.Buffer{})
	assert.Error(t, err)
}

func TestBundledLevelSetsAreValid(t *testing.T) {
	var out bytes.Buffer
	allValid, err := run("../levels", &out)
	require.NoError(t, err)
	assert.True(t, allValid, out.String())
}

func TestNewApp(t *testing.T) {
	t.Run("schema", func(t *testing.T) {
		var out bytes.Buffer
		require.NoError(t, newApp(&out).Run(context.Background(), []string{"validate", "--schema"}))
		assert.Equal(t, levels.Schema()+"\n", out.String())
	})

	t.Run("valid directory", func(t *testing.T) {
		var out bytes.Buffer
		require.NoError(t, newApp(&out).Run(context.Background(), []string{"validate", "../levels"}))
		assert.Contains(t, out.String(), "✅ All level sets are valid!")
	})

	t.Run("invalid directory", func(t *testing.T) {
		dir := t.TempDir()
		writeFile(t, dir, "bad.json", `[{`)

		err := newApp(&bytes.Buffer{}).Run(context.Background(), []string{"validate", dir})
		assert.ErrorIs(t, err, errInvalidLevelSets)
	})

	t.Run("empty directory", func(t *testing.T) {
		err := newApp(&bytes.Buffer{}).Run(context.Background(), []string{"validate", t.TempDir()})
		require.Error(t, err)
		assert.NotErrorIs(t, err, errInvalidLevelSets)
	})
}
