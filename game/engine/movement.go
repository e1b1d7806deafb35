package engine

// step moves from by the direction's unit vector if the result stays on the grid
func (l Level) step(from Position, dir Direction) (Position, bool) {
	dx, dy := dir.Delta()
	if dx == 0 && dy == 0 {
		return from, false
	}
	to := from.Add(dx, dy)
	if !l.InBounds(to) {
		return from, false
	}
	return to, true
}

// Resolve applies one command to the level and returns the resulting level.
//
// The player steps first. If the new player position equals the old box
// position, the box is pushed by the same unit vector, subject to the same
// bounds check. A blocked push leaves the box in place while the player
// still occupies its cell. Invalid and Quit return the level unchanged.
func Resolve(level Level, command Direction) Level {
	if !command.IsMove() {
		return level
	}

	player, moved := level.step(level.Player(), command)
	if !moved {
		return level
	}
	next := level.withPlayer(player)

	if player == level.Box() {
		if box, pushed := level.step(level.Box(), command); pushed {
			next = next.withBox(box)
		}
	}

	return next
}

// IsSolved reports whether the box coordinates equal the goal coordinates
func IsSolved(box, goal Position) bool {
	return box.X == goal.X && box.Y == goal.Y
}

// CanMove checks if the command would displace the player
func CanMove(level Level, command Direction) bool {
	_, ok := level.step(level.Player(), command)
	return ok
}

// PossibleMoves returns the directions that displace the player, in Up, Down, Left, Right order
func PossibleMoves(level Level) []Direction {
	var possible []Direction
	for _, dir := range []Direction{Up, Down, Left, Right} {
		if CanMove(level, dir) {
			possible = append(possible, dir)
		}
	}
	return possible
}
