package engine

import "fmt"

// ValidateLevel checks the guarantees the engine relies on: a grid size in
// [MinGridSize, MaxGridSize] and every coordinate inside the grid.
func ValidateLevel(level Level) error {
	if level.GridSize < MinGridSize || level.GridSize > MaxGridSize {
		return fmt.Errorf("level validation: grid_size must be between %d and %d, got %d",
			MinGridSize, MaxGridSize, level.GridSize)
	}

	entities := []struct {
		name string
		pos  Position
	}{
		{"player", level.Player()},
		{"box", level.Box()},
		{"goal", level.Goal()},
	}
	for _, e := range entities {
		if !level.InBounds(e.pos) {
			return fmt.Errorf("level validation: %s at (%d,%d) is outside the %dx%d grid",
				e.name, e.pos.X, e.pos.Y, level.GridSize, level.GridSize)
		}
	}

	return nil
}

// ValidateLevels validates every level of a set and reports the first
// failure with its 1-based level number
func ValidateLevels(levels []Level) error {
	if len(levels) == 0 {
		return fmt.Errorf("level validation: level set is empty")
	}
	for i, level := range levels {
		if err := ValidateLevel(level); err != nil {
			return fmt.Errorf("level %d: %w", i+1, err)
		}
	}
	return nil
}
