package cmd

import (
	"bufio"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var fileCmd = &cobra.Command{
	Use:   "file <path>",
	Short: "Feed a file's lines (one number per line) through detection",
	Long: `file reads path line by line, one observed number per line, and
prints the retrospective and forward prediction after every line —
exactly as direct does, but from a file instead of a live session.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := buildApp(cmd)
		if err != nil {
			return err
		}

		f, err := os.Open(args[0]) //nolint:gosec // path is an explicit CLI argument
		if err != nil {
			return fmt.Errorf("opening %s: %w", args[0], err)
		}
		defer f.Close()

		if err := runFile(app, f, os.Stdout); err != nil {
			return err
		}
		return saveAppState(app)
	},
}

func runFile(app *App, f *os.File, out *os.File) error {
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		obs, err := app.Observe(scanner.Text())
		if err != nil {
			fmt.Fprintf(out, "error: %v\n", err)
			continue
		}
		if obs.GeneratorName == "" {
			continue
		}
		printObservation(out, app, obs)
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("reading input: %w", err)
	}
	return nil
}
