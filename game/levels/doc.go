// Package levels loads and validates level sets for the box-pushing puzzle.
//
// The levels package handles:
//   - Reading level sets from JSON or YAML files
//   - Schema validation of the file contract (levelset.schema.json)
//   - Bounds validation of every level before it reaches the engine
//   - Cached, directory-backed level set discovery and listing
//
// Level Set Format:
//
// A level set is an array of records, one per level, in play order. Each
// record carries integer fields player_x, player_y, box_x, box_y, goal_x,
// goal_y and grid_size, plus an optional display name:
//
//	[
//	  {"player_x": 0, "player_y": 1, "box_x": 1, "box_y": 1,
//	   "goal_x": 3, "goal_y": 1, "grid_size": 4}
//	]
//
// YAML files (.yaml, .yml) use the same keys. They are converted to JSON and
// checked against the same schema, so both formats accept exactly the same
// documents.
//
// Usage:
//
//	levelSet, err := levels.LoadFile("levels/classic.json")
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	manager, err := levels.NewManager("levels")
//	if err != nil {
//		log.Fatal(err)
//	}
//	tutorial, err := manager.Load("tutorial")
//	sets, err := manager.List()
//
// Validation:
//
// Every loaded level satisfies engine.ValidateLevel: grid_size in
// [engine.MinGridSize, engine.MaxGridSize] and all coordinates inside the
// grid. Failures wrap ErrInvalidLevelSet; missing files wrap
// ErrLevelSetNotFound.
package levels
