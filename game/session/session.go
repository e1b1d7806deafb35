package session

import (
	"errors"
	"sync"

	"github.com/charmbracelet/log"

	"github.com/wricardo/sokoban/game/engine"
)

var ErrNoLevels = errors.New("level set has no levels")

// Messages shared by every front end
const (
	Farewell        = "Quitting the game...\nThanks for playing!"
	Congratulations = "Congratulations! You've completed all levels!"
	Banner          = "To progress to the next level, push the box (" + engine.BoxGlyph + ") onto the goal (" + engine.GoalGlyph + ")."
	Legend          = "Player: " + engine.PlayerGlyph + " | Box: " + engine.BoxGlyph + " | Goal: " + engine.GoalGlyph
)

// Event classifies what a turn did to the session
type Event string

const (
	EventMoved        Event = "moved"
	EventQuit         Event = "quit"
	EventLevelCleared Event = "level_cleared"
	EventGameComplete Event = "game_complete"
)

// Outcome is the result of playing one turn in a session
type Outcome struct {
	Turn  engine.TurnResult `json:"turn"`
	Event Event             `json:"event"`
	// LevelNumber is the 1-based level the turn was played on
	LevelNumber int `json:"level_number"`
}

// Session owns the current level of a play-through and advances through the
// level set as levels are solved
type Session struct {
	levels  []engine.Level
	index   int
	current engine.Level
	ended   Event // "" while playing
	mu      sync.Mutex
}

// New creates a session positioned at the first level
func New(levelSet []engine.Level) (*Session, error) {
	if len(levelSet) == 0 {
		return nil, ErrNoLevels
	}

	levels := make([]engine.Level, len(levelSet))
	copy(levels, levelSet)

	return &Session{
		levels:  levels,
		current: levels[0],
	}, nil
}

// Current returns the level as it stands after the last turn
func (s *Session) Current() engine.Level {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current
}

// LevelNumber returns the 1-based number of the level being played
func (s *Session) LevelNumber() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.index + 1
}

// LevelCount returns the number of levels in the set
func (s *Session) LevelCount() int {
	return len(s.levels)
}

// Done reports whether the session ended by quitting or completing the set
func (s *Session) Done() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ended != ""
}

// PlayToken interprets a raw input token and plays it
func (s *Session) PlayToken(token string) Outcome {
	return s.Play(engine.ParseCommand(token))
}

// Play runs one turn. A solved level is replaced by the next level's
// starting state; solving the last level completes the session. Once the
// session has ended every call returns the terminal event unchanged.
func (s *Session) Play(dir engine.Direction) Outcome {
	s.mu.Lock()
	defer s.mu.Unlock()

	number := s.index + 1
	if s.ended != "" {
		return Outcome{Turn: engine.TurnResult{Level: s.current}, Event: s.ended, LevelNumber: number}
	}

	result := engine.Turn(s.current, dir)
	outcome := Outcome{Turn: result, Event: EventMoved, LevelNumber: number}

	switch {
	case result.Quit:
		s.ended = EventQuit
		outcome.Event = EventQuit
		log.Info("session quit", "level_number", number)

	case result.Solved:
		log.Info("level cleared", "level_number", number, "level_count", len(s.levels))
		if s.index+1 >= len(s.levels) {
			s.current = result.Level
			s.ended = EventGameComplete
			outcome.Event = EventGameComplete
			return outcome
		}
		s.index++
		s.current = s.levels[s.index]
		outcome.Event = EventLevelCleared

	default:
		s.current = result.Level
	}

	return outcome
}

// Restart returns the session to the first level's starting state
func (s *Session) Restart() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.index = 0
	s.current = s.levels[0]
	s.ended = ""
}
