// Package engine provides the core rules of the box-pushing puzzle.
//
// The engine package implements the game mechanics including:
//   - Command interpretation from raw input tokens (w/a/s/d/q)
//   - Grid-bounded player movement
//   - The push rule that drags the box along the player's motion
//   - Goal detection that marks a level as solved
//   - Level validation and the character grid rendering contract
//
// Core Types:
//
// Level is the sole entity: a square grid with one player, one box and one
// goal. Direction is the typed command produced by ParseCommand. Every
// operation is a pure function over Level values; a turn never mutates its
// input and always returns a new Level.
//
// Usage:
//
//	level := engine.Level{
//		PlayerX: 1, PlayerY: 1,
//		BoxX: 2, BoxY: 1,
//		GoalX: 3, GoalY: 1,
//		GridSize: 4,
//	}
//
//	result := engine.Turn(level, engine.ParseCommand("d"))
//	if result.Solved {
//		fmt.Println("level cleared")
//	}
//	fmt.Println(result.Level)
//
// Game Rules:
//
// A step that would leave the grid is ignored. If the player steps onto the
// box, the box moves one cell in the same direction unless that would leave
// the grid, in which case the box stays and the player shares its cell. A
// level is solved when the box sits on the goal, checked after every turn
// that is not a quit.
package engine
