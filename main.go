// Command sokoban runs a terminal box-pushing puzzle game.
//
// It supports three modes:
//  1. "play" (default) – full-screen terminal UI
//  2. "console" – line-oriented prompt loop, one command per line
//  3. "mcp" – MCP stdio server so a local agent can play the same game
//
// Flags control the level set, the level directory used by the MCP
// start_game tool, debug logging and an optional log file. A .env file in
// the working directory is loaded before flags are parsed.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/joho/godotenv"
	"github.com/urfave/cli/v3"

	"github.com/wricardo/sokoban/game/levels"
	"github.com/wricardo/sokoban/game/session"
	"github.com/wricardo/sokoban/transport/mcp"
	"github.com/wricardo/sokoban/ui/console"
	"github.com/wricardo/sokoban/ui/tui"
)

// Version information
const (
	Version = "1.0.0"
	AppName = "sokoban"
)

// LoadedMessage is printed by console mode once the level set is loaded
const LoadedMessage = "Levels loaded successfully."

// main loads .env, builds the command tree and runs it until a signal arrives.
func main() {
	// Load .env file if it exists (ignore error if not found)
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Warn("error loading .env file", "err", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newApp(os.Stdin, os.Stdout).Run(ctx, os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		stop()
		os.Exit(1)
	}
}

// newApp builds the root command reading player input from in and writing the game to out.
func newApp(in io.Reader, out io.Writer) *cli.Command {
	var logCloser io.Closer

	return &cli.Command{
		Name:    AppName,
		Usage:   "push the box onto the goal, level after level",
		Version: Version,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "levels",
				Usage:   "level set file (JSON or YAML)",
				Value:   "levels/classic.json",
				Sources: cli.EnvVars("SOKOBAN_LEVELS"),
			},
			&cli.StringFlag{
				Name:    "level-dir",
				Usage:   "directory of level sets offered by the MCP start_game tool",
				Value:   "levels",
				Sources: cli.EnvVars("SOKOBAN_LEVEL_DIR"),
			},
			&cli.BoolFlag{
				Name:  "debug",
				Usage: "enable debug logging",
			},
			&cli.StringFlag{
				Name:    "log-file",
				Usage:   "write logs to this file instead of stderr",
				Sources: cli.EnvVars("SOKOBAN_LOG_FILE"),
			},
		},
		Before: func(ctx context.Context, cmd *cli.Command) (context.Context, error) {
			closer, err := setupLogging(cmd.String("log-file"), cmd.Bool("debug"))
			if err != nil {
				return ctx, err
			}
			logCloser = closer
			return ctx, nil
		},
		After: func(ctx context.Context, cmd *cli.Command) error {
			if logCloser != nil {
				return logCloser.Close()
			}
			return nil
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			return runTUI(ctx, cmd, in, out)
		},
		Commands: []*cli.Command{
			{
				Name:  "play",
				Usage: "play in the full-screen terminal UI (default)",
				Action: func(ctx context.Context, cmd *cli.Command) error {
					return runTUI(ctx, cmd, in, out)
				},
			},
			{
				Name:  "console",
				Usage: "play one command per line",
				Action: func(ctx context.Context, cmd *cli.Command) error {
					return runConsole(ctx, cmd, in, out)
				},
			},
			{
				Name:  "mcp",
				Usage: "serve the game to an MCP client over stdio",
				Action: func(ctx context.Context, cmd *cli.Command) error {
					return runMCP(ctx, cmd, in, out)
				},
			},
		},
	}
}

// setupLogging points the package logger at path (stderr when empty) and
// sets the level. The returned closer is nil when no file was opened.
func setupLogging(path string, debug bool) (io.Closer, error) {
	log.SetLevel(log.WarnLevel)
	if debug {
		log.SetLevel(log.DebugLevel)
		log.SetReportCaller(true)
	}

	if path == "" {
		log.SetOutput(os.Stderr)
		return nil, nil
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}
	log.SetOutput(f)
	return f, nil
}

// loadSession loads the --levels file into a new session
func loadSession(cmd *cli.Command) (*session.Session, error) {
	path := cmd.String("levels")

	levelSet, err := levels.LoadFile(path)
	if err != nil {
		return nil, err
	}

	sess, err := session.New(levelSet)
	if err != nil {
		return nil, fmt.Errorf("failed to start session: %w", err)
	}

	log.Info("levels loaded", "file", path, "levels", len(levelSet))
	return sess, nil
}

// runTUI plays the session in the full-screen UI and prints the closing
// message once the alternate screen is gone.
func runTUI(ctx context.Context, cmd *cli.Command, in io.Reader, out io.Writer) error {
	sess, err := loadSession(cmd)
	if err != nil {
		return err
	}

	// Logs would tear the alternate screen
	if cmd.String("log-file") == "" {
		log.SetOutput(io.Discard)
	}

	p := tea.NewProgram(tui.New(sess),
		tea.WithContext(ctx),
		tea.WithInput(in),
		tea.WithOutput(out),
		tea.WithAltScreen(),
	)
	final, err := p.Run()
	if err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return fmt.Errorf("terminal UI failed: %w", err)
	}

	if m, ok := final.(tui.Model); ok {
		switch m.Ended() {
		case session.EventQuit:
			fmt.Fprintln(out, session.Farewell)
		case session.EventGameComplete:
			fmt.Fprintln(out, session.Congratulations)
		}
	}
	return nil
}

// runConsole plays the session as a prompt loop
func runConsole(ctx context.Context, cmd *cli.Command, in io.Reader, out io.Writer) error {
	sess, err := loadSession(cmd)
	if err != nil {
		return err
	}
	fmt.Fprintln(out, LoadedMessage)

	if err := console.New(sess, in, out).Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return fmt.Errorf("console failed: %w", err)
	}
	return nil
}

// runMCP serves the session over MCP stdio. A missing level directory only
// disables level set switching.
func runMCP(ctx context.Context, cmd *cli.Command, in io.Reader, out io.Writer) error {
	sess, err := loadSession(cmd)
	if err != nil {
		return err
	}

	manager, err := levels.NewManager(cmd.String("level-dir"))
	if err != nil {
		log.Warn("level set switching disabled", "dir", cmd.String("level-dir"), "err", err)
		manager = nil
	}

	log.Info("starting MCP stdio server", "version", Version)
	if err := mcp.NewServer(sess, manager, Version).ServeStdio(ctx, in, out); err != nil && !errors.Is(err, context.Canceled) {
		return fmt.Errorf("MCP server failed: %w", err)
	}
	return nil
}
