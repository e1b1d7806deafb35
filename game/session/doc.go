// Package session holds the state of one play-through of a level set.
//
// The session package implements:
//   - The only mutable game state: the current level and its number
//   - Turn dispatch through engine.Turn
//   - Advancing to the next level when the box reaches the goal
//   - Quit and completion signals for the front ends to act on
//
// Core Types:
//
// Session is created from an ordered level set and starts on the first
// level. Play (or PlayToken for raw input) runs one turn and returns an
// Outcome whose Event tells the caller what happened: EventMoved,
// EventLevelCleared, EventGameComplete or EventQuit.
//
// Concurrency:
//
// A Session is safe for concurrent use. Turns are serialized by an internal
// lock, so a front end that dispatches requests on several goroutines still
// observes one ordered sequence of turns.
//
// Usage:
//
//	sess, err := session.New(levelSet)
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	outcome := sess.PlayToken("d")
//	switch outcome.Event {
//	case session.EventQuit:
//		fmt.Println(session.Farewell)
//	case session.EventGameComplete:
//		fmt.Println(session.Congratulations)
//	}
//
// The session never terminates the process; front ends decide what quitting
// and completing mean for them.
package session
