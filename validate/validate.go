// Command validate provides a small CLI that validates level set files in
// the ../levels directory (or the directory given as the first argument).
// It checks:
//   - JSON/YAML structure against the embedded level set schema
//   - Grid size limits and that every coordinate lies on the grid
//   - Solvability: each level is searched for a shortest solution, which is
//     then replayed through the engine
//
// With --schema it prints the level set schema instead.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/wricardo/sokoban/game/engine"
	"github.com/wricardo/sokoban/game/levels"
	"github.com/wricardo/sokoban/game/solver"
)

var errInvalidLevelSets = errors.New("some level sets have errors")

// ValidationResult captures the outcome of validating a single file.
// If Valid is true, Errors contains informational messages; otherwise it
// accumulates the validation errors that were found.
type ValidationResult struct {
	File   string
	Valid  bool
	Errors []string
}

// validateLevelSet loads a level set file and checks that every level can be won.
func validateLevelSet(filePath string) ValidationResult {
	result := ValidationResult{
		File:   filepath.Base(filePath),
		Valid:  true,
		Errors: []string{},
	}

	levelSet, err := levels.LoadFile(filePath)
	if err != nil {
		result.Valid = false
		result.Errors = append(result.Errors, fmt.Sprintf("Failed to load: %v", err))
		return result
	}
	result.Errors = append(result.Errors, fmt.Sprintf("✓ Structure: %d levels within bounds", len(levelSet)))

	for i, level := range levelSet {
		label := fmt.Sprintf("Level %d", i+1)
		if level.Name != "" {
			label = fmt.Sprintf("Level %d (%s)", i+1, level.Name)
		}

		solution, err := solver.Solve(level, 0)
		switch {
		case errors.Is(err, solver.ErrUnsolvable):
			result.Valid = false
			result.Errors = append(result.Errors, fmt.Sprintf("%s: unsolvable, the box can never reach the goal", label))
		case err != nil:
			result.Valid = false
			result.Errors = append(result.Errors, fmt.Sprintf("%s: %v", label, err))
		case len(solution.Moves) == 0:
			result.Errors = append(result.Errors, fmt.Sprintf("✓ %s: box starts on the goal", label))
		default:
			if replayed, _ := engine.Replay(level, solution.Moves); !replayed.Solved {
				result.Valid = false
				result.Errors = append(result.Errors, fmt.Sprintf("%s: solution %s does not replay to a win", label, solution))
				continue
			}
			result.Errors = append(result.Errors, fmt.Sprintf("✓ %s: solvable in %d moves", label, len(solution.Moves)))
		}
	}

	return result
}

// levelFiles lists the level set files in dir, sorted by name
func levelFiles(dir string) ([]string, error) {
	var files []string
	for _, pattern := range []string{"*.json", "*.yaml", "*.yml"} {
		matches, err := filepath.Glob(filepath.Join(dir, pattern))
		if err != nil {
			return nil, err
		}
		files = append(files, matches...)
	}
	sort.Strings(files)
	return files, nil
}

// run validates every level set in dir, writes a report to out and reports
// whether all files are valid.
func run(dir string, out io.Writer) (bool, error) {
	files, err := levelFiles(dir)
	if err != nil {
		return false, fmt.Errorf("error finding level files: %w", err)
	}
	if len(files) == 0 {
		return false, fmt.Errorf("no level files found in %s", dir)
	}

	allValid := true
	for _, file := range files {
		result := validateLevelSet(file)

		fmt.Fprintf(out, "\n%s %s\n", strings.Repeat("=", 20), result.File)

		if result.Valid {
			fmt.Fprintln(out, "✅ VALID")
			for _, info := range result.Errors {
				fmt.Fprintln(out, "  "+info)
			}
		} else {
			fmt.Fprintln(out, "❌ INVALID")
			allValid = false
			for _, err := range result.Errors {
				if !strings.HasPrefix(err, "✓") {
					fmt.Fprintln(out, "  ❌ "+err)
				}
			}
		}
	}

	fmt.Fprintf(out, "\n%s\n", strings.Repeat("=", 40))
	if allValid {
		fmt.Fprintln(out, "✅ All level sets are valid!")
	} else {
		fmt.Fprintln(out, "❌ Some level sets have errors")
	}
	return allValid, nil
}

// newApp builds the validate command writing its report to out
func newApp(out io.Writer) *cli.Command {
	return &cli.Command{
		Name:      "validate",
		Usage:     "validate every level set in a directory",
		ArgsUsage: "[dir]",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "schema",
				Usage: "print the level set JSON schema and exit",
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			if cmd.Bool("schema") {
				fmt.Fprintln(out, levels.Schema())
				return nil
			}

			dir := "../levels"
			if cmd.Args().Present() {
				dir = cmd.Args().First()
			}

			allValid, err := run(dir, out)
			if err != nil {
				return err
			}
			if !allValid {
				return errInvalidLevelSets
			}
			return nil
		},
	}
}

// main validates ../levels (or the given directory) and exits non-zero if any file is invalid.
func main() {
	if err := newApp(os.Stdout).Run(context.Background(), os.Args); err != nil {
		if !errors.Is(err, errInvalidLevelSets) {
			fmt.Printf("Error: %v\n", err)
		}
		os.Exit(1)
	}
}
