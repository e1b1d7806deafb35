// Command analyze prints quick, human-readable heuristics about the level
// sets in the project's levels directory. For each level it summarizes the
// grid, the player/box/goal positions and Manhattan distances, highlights
// boxes stranded on an edge the goal is not on, and prints the optimal
// solution found by the solver.
package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/wricardo/sokoban/game/engine"
	"github.com/wricardo/sokoban/game/levels"
	"github.com/wricardo/sokoban/game/solver"
)

func main() {
	dir := "levels"
	if len(os.Args) > 1 {
		dir = os.Args[1]
	}

	manager, err := levels.NewManager(dir)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}

	if err := analyzeDir(os.Stdout, manager); err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}
}

// analyzeDir analyzes every loadable level set known to manager
func analyzeDir(w io.Writer, manager *levels.Manager) error {
	sets, err := manager.List()
	if err != nil {
		return err
	}
	if len(sets) == 0 {
		return fmt.Errorf("no level sets found in %s", manager.Dir())
	}

	for _, set := range sets {
		fmt.Fprintf(w, "\n=== Analyzing %s ===\n", set.Filename)
		levelSet, err := manager.Load(set.Filename)
		if err != nil {
			fmt.Fprintf(w, "Error loading level set: %v\n", err)
			continue
		}
		fmt.Fprintf(w, "Levels: %d (largest grid %d x %d)\n", set.Levels, set.MaxGridSize, set.MaxGridSize)
		for i, level := range levelSet {
			analyzeLevel(w, i+1, level)
		}
	}
	return nil
}

// analyzeLevel prints the heuristics and optimal solution for one level
func analyzeLevel(w io.Writer, number int, level engine.Level) {
	fmt.Fprintf(w, "\n--- Level %d", number)
	if level.Name != "" {
		fmt.Fprintf(w, ": %s", level.Name)
	}
	fmt.Fprintln(w, " ---")

	fmt.Fprintf(w, "Grid Size: %d x %d\n", level.GridSize, level.GridSize)
	fmt.Fprintf(w, "Player: (%d, %d)  Box: (%d, %d)  Goal: (%d, %d)\n",
		level.PlayerX, level.PlayerY, level.BoxX, level.BoxY, level.GoalX, level.GoalY)
	fmt.Fprintf(w, "Box to goal distance: %d\n", engine.ManhattanDistance(level.Box(), level.Goal()))
	fmt.Fprintf(w, "Player to box distance: %d\n", engine.ManhattanDistance(level.Player(), level.Box()))

	if edges := strandedEdges(level); len(edges) > 0 {
		for _, edge := range edges {
			fmt.Fprintf(w, "⚠️  WARNING: box is on the %s edge but the goal is not\n", edge)
		}
	}

	solution, err := solver.Solve(level, 0)
	switch {
	case errors.Is(err, solver.ErrUnsolvable):
		fmt.Fprintf(w, "⚠️  CRITICAL: level is unsolvable (%d states explored)\n", solution.States)
	case err != nil:
		fmt.Fprintf(w, "⚠️  Solver gave up: %v\n", err)
	case len(solution.Moves) == 0:
		fmt.Fprintf(w, "✅ Box starts on the goal: any command clears the level\n")
	default:
		fmt.Fprintf(w, "✅ Optimal solution: %s (%d moves, %d states explored)\n",
			solution, len(solution.Moves), solution.States)
	}
}

// strandedEdges names the grid edges the box sits on that the goal does not.
// A box can never be pushed off an edge, so any result means the level is lost.
func strandedEdges(level engine.Level) []string {
	last := level.GridSize - 1
	var edges []string

	if level.BoxX == 0 && level.GoalX != 0 {
		edges = append(edges, "left")
	}
	if level.BoxX == last && level.GoalX != last {
		edges = append(edges, "right")
	}
	if level.BoxY == 0 && level.GoalY != 0 {
		edges = append(edges, "top")
	}
	if level.BoxY == last && level.GoalY != last {
		edges = append(edges, "bottom")
	}
	return edges
}
