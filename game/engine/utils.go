package engine

import "strings"

// Render draws the level as GridSize rows of space-separated glyphs.
// The goal is drawn first, then the box, then the player, so the player
// wins ties and the box hides the goal it rests on.
func Render(level Level) []string {
	size := level.GridSize
	grid := make([][]string, size)
	for y := range grid {
		grid[y] = make([]string, size)
		for x := range grid[y] {
			grid[y][x] = EmptyGlyph
		}
	}

	put := func(p Position, glyph string) {
		if level.InBounds(p) {
			grid[p.Y][p.X] = glyph
		}
	}
	put(level.Goal(), GoalGlyph)
	put(level.Box(), BoxGlyph)
	put(level.Player(), PlayerGlyph)

	rows := make([]string, size)
	for y, row := range grid {
		rows[y] = strings.Join(row, " ")
	}
	return rows
}

// String renders the level grid with one row per line
func (l Level) String() string {
	return strings.Join(Render(l), "\n")
}

// GlyphAt returns the glyph drawn at p using the render priority
func GlyphAt(level Level, p Position) string {
	switch p {
	case level.Player():
		return PlayerGlyph
	case level.Box():
		return BoxGlyph
	case level.Goal():
		return GoalGlyph
	default:
		return EmptyGlyph
	}
}

// ManhattanDistance calculates the Manhattan distance between two positions
func ManhattanDistance(from, to Position) int {
	dx := from.X - to.X
	if dx < 0 {
		dx = -dx
	}
	dy := from.Y - to.Y
	if dy < 0 {
		dy = -dy
	}
	return dx + dy
}
