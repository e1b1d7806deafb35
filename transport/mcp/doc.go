// Package mcp exposes a local game session over the Model Context Protocol.
//
// The mcp package implements:
//   - An MCP stdio server for AI agent play
//   - Tool definitions for game operations
//   - Level set selection through levels.Manager
//   - Solver-backed hints
//
// MCP Tools:
//
// The package exposes the following tools for AI agents:
//   - game_state: Current level with grid visualization
//   - move: Play a single command token
//   - bulk_move: Play several command tokens in sequence
//   - start_game: Restart, optionally with another level set
//   - list_level_sets: List available level sets
//   - solve_hint: Next move of a shortest solution
//   - game_instructions: Full game rules
//
// Transport:
//
// Only stdio is served. The agent plays the same single-player session a
// terminal player would; there is no network listener.
//
// Usage:
//
//	srv := mcp.NewServer(sess, manager, "1.0.0")
//	if err := srv.ServeStdio(ctx, os.Stdin, os.Stdout); err != nil {
//		log.Fatal(err)
//	}
package mcp
