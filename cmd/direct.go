package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/peterh/liner"
	"github.com/spf13/cobra"
)

const ansiGreen = "\033[32m"
const ansiReset = "\033[0m"

var directCmd = &cobra.Command{
	Use:   "direct",
	Short: "Interactive REPL: type one number per line, see predictions live",
	Long: `direct starts an interactive line-editing session. Type one
observed number per line; derandom detects (or extends, with
--auto-detect=false) the current generator and prints its retrospective
match and its forward prediction after every line.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := buildApp(cmd)
		if err != nil {
			return err
		}
		return runDirect(app, os.Stdout)
	},
}

func runDirect(app *App, out io.Writer) error {
	line := liner.NewLiner()
	defer line.Close()
	line.SetCtrlCAborts(true)

	for {
		text, err := line.Prompt("> ")
		if err == liner.ErrPromptAborted || err == io.EOF {
			return saveAppState(app)
		}
		if err != nil {
			return fmt.Errorf("reading input: %w", err)
		}
		line.AppendHistory(text)

		obs, err := app.Observe(text)
		if err != nil {
			fmt.Fprintf(out, "error: %v\n", err)
			continue
		}
		if obs.GeneratorName == "" {
			continue
		}
		printObservation(out, app, obs)
	}
}

func printObservation(out io.Writer, app *App, obs Observation) {
	fmt.Fprintf(out, "generator: %s\n", obs.GeneratorName)
	if obs.Retrospective != nil {
		label := fmt.Sprintf("  matched past: %v", obs.Retrospective.DecimalStrings())
		if app.Config.ColorPast {
			label = ansiGreen + label + ansiReset
		}
		fmt.Fprintln(out, label)
	}
	if obs.Forward != nil {
		fmt.Fprintf(out, "  next: %v\n", obs.Forward.DecimalStrings())
	}
}
