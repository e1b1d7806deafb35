// Package console runs the game as a line-oriented prompt loop: one command
// per line, the grid reprinted before and after every turn.
package console

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/wricardo/sokoban/game/engine"
	"github.com/wricardo/sokoban/game/session"
)

const (
	ClearScreen = "\033c"
	StartPrompt = "Start the Sokoban game? (y/n): "
	MovePrompt  = "Enter your move (w/a/s/d) or 'q' to quit: "
)

// Console drives a session from line input
type Console struct {
	sess *session.Session
	in   *bufio.Scanner
	out  io.Writer
}

// New creates a console over the given session and streams
func New(sess *session.Session, in io.Reader, out io.Writer) *Console {
	return &Console{
		sess: sess,
		in:   bufio.NewScanner(in),
		out:  out,
	}
}

// Run asks to start, then plays turns until the player quits, the level set
// is complete, input ends or ctx is cancelled. Quit and completion return
// nil; so does end of input.
func (c *Console) Run(ctx context.Context) error {
	fmt.Fprint(c.out, StartPrompt)
	answer, ok := c.readLine()
	if !ok || strings.ToLower(strings.TrimSpace(answer)) != "y" {
		return c.in.Err()
	}

	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		c.draw(c.sess.Current(), c.sess.LevelNumber())
		fmt.Fprint(c.out, MovePrompt)

		line, ok := c.readLine()
		if !ok {
			fmt.Fprintln(c.out)
			return c.in.Err()
		}

		outcome := c.sess.PlayToken(line)
		if outcome.Event == session.EventQuit {
			fmt.Fprintln(c.out, session.Farewell)
			return nil
		}

		c.draw(outcome.Turn.Level, outcome.LevelNumber)

		if outcome.Event == session.EventGameComplete {
			fmt.Fprintln(c.out, session.Congratulations)
			return nil
		}
	}
}

func (c *Console) readLine() (string, bool) {
	if !c.in.Scan() {
		return "", false
	}
	return c.in.Text(), true
}

// draw clears the terminal and prints the banner, level number and grid
func (c *Console) draw(level engine.Level, number int) {
	fmt.Fprint(c.out, ClearScreen)
	fmt.Fprintln(c.out, session.Banner)
	fmt.Fprintln(c.out, session.Legend)
	fmt.Fprintf(c.out, "Level %d\n", number)
	for _, row := range engine.Render(level) {
		fmt.Fprintln(c.out, row)
	}
}
