package engine

import "strings"

// Direction is a typed player command.
type Direction int

const (
	Invalid Direction = iota
	Up
	Down
	Left
	Right
	Quit
)

const (
	// Validation constants
	MinGridSize = 1
	MaxGridSize = 50

	// Render glyphs
	EmptyGlyph  = "."
	PlayerGlyph = "P"
	BoxGlyph    = "☐"
	GoalGlyph   = "G"
)

// String returns the lowercase name of the direction
func (d Direction) String() string {
	switch d {
	case Up:
		return "up"
	case Down:
		return "down"
	case Left:
		return "left"
	case Right:
		return "right"
	case Quit:
		return "quit"
	default:
		return "invalid"
	}
}

// Delta returns the unit displacement for the direction.
// Up decreases Y, Down increases Y (screen coordinates).
func (d Direction) Delta() (dx, dy int) {
	switch d {
	case Up:
		return 0, -1
	case Down:
		return 0, 1
	case Left:
		return -1, 0
	case Right:
		return 1, 0
	default:
		return 0, 0
	}
}

// IsMove reports whether the direction can displace the player
func (d Direction) IsMove() bool {
	return d >= Up && d <= Right
}

// Token returns the input token that produces the direction, or "" for Invalid
func (d Direction) Token() string {
	switch d {
	case Up:
		return "w"
	case Down:
		return "s"
	case Left:
		return "a"
	case Right:
		return "d"
	case Quit:
		return "q"
	default:
		return ""
	}
}

// ParseCommand maps a raw input token to a Direction. Tokens are
// case-insensitive and surrounding whitespace is ignored; anything outside
// the w/a/s/d/q vocabulary is Invalid.
func ParseCommand(token string) Direction {
	switch strings.ToLower(strings.TrimSpace(token)) {
	case "w":
		return Up
	case "s":
		return Down
	case "a":
		return Left
	case "d":
		return Right
	case "q":
		return Quit
	default:
		return Invalid
	}
}

// Position represents x,y coordinates
type Position struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Add returns the position shifted by (dx, dy)
func (p Position) Add(dx, dy int) Position {
	return Position{X: p.X + dx, Y: p.Y + dy}
}

// Level is one puzzle instance as loaded from a level set
type Level struct {
	Name     string `json:"name,omitempty" yaml:"name,omitempty"`
	PlayerX  int    `json:"player_x" yaml:"player_x"`
	PlayerY  int    `json:"player_y" yaml:"player_y"`
	BoxX     int    `json:"box_x" yaml:"box_x"`
	BoxY     int    `json:"box_y" yaml:"box_y"`
	GoalX    int    `json:"goal_x" yaml:"goal_x"`
	GoalY    int    `json:"goal_y" yaml:"goal_y"`
	GridSize int    `json:"grid_size" yaml:"grid_size"`
}

// Player returns the player position
func (l Level) Player() Position {
	return Position{X: l.PlayerX, Y: l.PlayerY}
}

// Box returns the box position
func (l Level) Box() Position {
	return Position{X: l.BoxX, Y: l.BoxY}
}

// Goal returns the goal position
func (l Level) Goal() Position {
	return Position{X: l.GoalX, Y: l.GoalY}
}

// InBounds checks if p lies within [0, GridSize) on both axes
func (l Level) InBounds(p Position) bool {
	return p.X >= 0 && p.X < l.GridSize && p.Y >= 0 && p.Y < l.GridSize
}

// Solved reports whether the box rests on the goal
func (l Level) Solved() bool {
	return IsSolved(l.Box(), l.Goal())
}

// withPlayer returns a copy of l with the player at p
func (l Level) withPlayer(p Position) Level {
	l.PlayerX, l.PlayerY = p.X, p.Y
	return l
}

// withBox returns a copy of l with the box at p
func (l Level) withBox(p Position) Level {
	l.BoxX, l.BoxY = p.X, p.Y
	return l
}

// TurnResult is the outcome of a single turn
type TurnResult struct {
	Level  Level `json:"level"`
	Solved bool  `json:"solved"`
	Quit   bool  `json:"quit"`
}
