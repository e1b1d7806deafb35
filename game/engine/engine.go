package engine

// Turn runs one game turn: Quit short-circuits to a signal with the level
// untouched; any other command is resolved and the goal is checked against
// the resulting box position, whether or not the box actually moved.
func Turn(level Level, command Direction) TurnResult {
	if command == Quit {
		return TurnResult{Level: level, Quit: true}
	}

	next := Resolve(level, command)
	return TurnResult{
		Level:  next,
		Solved: IsSolved(next.Box(), next.Goal()),
	}
}

// Replay plays the commands in order from level and stops at the first
// turn that solves the level or quits. It returns the last turn's result and
// how many commands were consumed.
func Replay(level Level, commands []Direction) (TurnResult, int) {
	result := TurnResult{Level: level}
	for i, cmd := range commands {
		result = Turn(result.Level, cmd)
		if result.Solved || result.Quit {
			return result, i + 1
		}
	}
	return result, len(commands)
}
