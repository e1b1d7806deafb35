// Package solver finds shortest command sequences for a level by
// breadth-first search over (player, box) placements.
//
// Transitions come from engine.Resolve, so the solver follows exactly the
// rules a player does, including the blocked push at the grid edge that
// leaves the player on the box's cell.
package solver

import (
	"errors"
	"strings"

	"github.com/wricardo/sokoban/game/engine"
)

// DefaultLimit bounds the number of expanded states when no limit is given
const DefaultLimit = 1_000_000

var (
	ErrUnsolvable    = errors.New("level is unsolvable")
	ErrLimitExceeded = errors.New("search limit exceeded")
)

// expansion order keeps results deterministic
// Solution is a shortest sequence of moves that solves a level
type Solution struct {
	Moves []engine.Direction `json:"moves"`
	// States is the number of distinct states expanded during the search
	States int `json:"states"`
}

// Tokens renders the moves as w/a/s/d input tokens
func (s Solution) Tokens() []string {
	tokens := make([]string, len(s.Moves))
	for i, m := range s.Moves {
		tokens[i] = m.Token()
	}
	return tokens
}

// String joins the move tokens, e.g. "ddsw"
func (s Solution) String() string {
	return strings.Join(s.Tokens(), "")
}

type state struct {
	player engine.Position
	box    engine.Position
}

type visit struct {
	parent state
	move   engine.Direction
}

// Solve searches for the shortest solution of level. An empty solution means
// the box already rests on the goal and any turn clears the level. limit caps
// the number of expanded states; zero or negative uses DefaultLimit.
func Solve(level engine.Level, limit int) (Solution, error) {
	if limit <= 0 {
		limit = DefaultLimit
	}
	if level.Solved() {
		return Solution{States: 1}, nil
	}

	start := state{player: level.Player(), box: level.Box()}
	seen := map[state]visit{start: {}}
	queue := []state{start}
	expanded := 0

	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]

		expanded++
		if expanded > limit {
			return Solution{States: expanded - 1}, ErrLimitExceeded
		}

		from := level
		from.PlayerX, from.PlayerY = current.player.X, current.player.Y
		from.BoxX, from.BoxY = current.box.X, current.box.Y

		for _, dir := range engine.PossibleMoves(from) {
			next := engine.Resolve(from, dir)
			ns := state{player: next.Player(), box: next.Box()}
			if _, ok := seen[ns]; ok {
				continue
			}
			seen[ns] = visit{parent: current, move: dir}

			if engine.IsSolved(next.Box(), next.Goal()) {
				return Solution{Moves: path(seen, start, ns), States: expanded}, nil
			}
			queue = append(queue, ns)
		}
	}

	return Solution{States: expanded}, ErrUnsolvable
}

// path walks parent links back from end to start
func path(seen map[state]visit, start, end state) []engine.Direction {
	var moves []engine.Direction
	for s := end; s != start; {
		v := seen[s]
		moves = append(moves, v.move)
		s = v.parent
	}
	for i, j := 0, len(moves)-1; i < j; i, j = i+1, j-1 {
		moves[i], moves[j] = moves[j], moves[i]
	}
	return moves
}

// Hint returns the first move of a shortest solution, or engine.Invalid when
// the level is already solved (any turn clears it)
func Hint(level engine.Level) (engine.Direction, error) {
	solution, err := Solve(level, 0)
	if err != nil {
		return engine.Invalid, err
	}
	if len(solution.Moves) == 0 {
		return engine.Invalid, nil
	}
	return solution.Moves[0], nil
}
