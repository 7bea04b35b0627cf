package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/vrypan/derandom/internal/config"
)

var (
	flagConfigPath string
	flagStateFile  string
	flagHistory    int
	flagPredict    int
	flagGenerator  int
	flagAutoDetect bool
	flagColor      bool
)

var rootCmd = &cobra.Command{
	Use:   "derandom",
	Short: "Detect, reconstruct, and predict the output of a known-bad PRNG",
	Long: `derandom observes numbers emitted by an unknown pseudo-random number
generator, detects which of a catalog of common LCG and Mersenne
Twister variants produced them, reconstructs the generator's internal
state, and predicts its future output bit-exactly.`,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	defaults := config.Default()

	rootCmd.PersistentFlags().StringVar(&flagConfigPath, "config", "", "path to a JSONC config file")
	rootCmd.PersistentFlags().StringVar(&flagStateFile, "state-file", "", "path to load/save manager state across runs")
	rootCmd.PersistentFlags().IntVar(&flagHistory, "history", defaults.HistoryCapacity, "history buffer capacity")
	rootCmd.PersistentFlags().IntVar(&flagPredict, "predict", defaults.PredictionLength, "forward prediction length")
	rootCmd.PersistentFlags().IntVar(&flagGenerator, "generator", defaults.GeneratorIndex, "initial generator catalog index")
	rootCmd.PersistentFlags().BoolVar(&flagAutoDetect, "auto-detect", defaults.AutoDetect, "detect the generator automatically")
	rootCmd.PersistentFlags().BoolVar(&flagColor, "color", defaults.ColorPast, "colorize past (retrospective) predictions")

	rootCmd.AddCommand(directCmd)
	rootCmd.AddCommand(fileCmd)
	rootCmd.AddCommand(socketCmd)
	rootCmd.AddCommand(versionCmd)
}

// resolvedConfig merges defaults, an optional config file, then
// explicitly-set flags, in that precedence order.
func resolvedConfig(cmd *cobra.Command) (config.Config, error) {
	cfg, err := config.Load(flagConfigPath)
	if err != nil {
		return config.Config{}, err
	}

	flags := cmd.Flags()
	if flags.Changed("history") {
		cfg.HistoryCapacity = flagHistory
	}
	if flags.Changed("predict") {
		cfg.PredictionLength = flagPredict
	}
	if flags.Changed("generator") {
		cfg.GeneratorIndex = flagGenerator
	}
	if flags.Changed("auto-detect") {
		cfg.AutoDetect = flagAutoDetect
	}
	if flags.Changed("color") {
		cfg.ColorPast = flagColor
	}
	return cfg, nil
}

// buildApp resolves the effective configuration and constructs the
// shared App, loading --state-file into the manager if one was given.
func buildApp(cmd *cobra.Command) (*App, error) {
	cfg, err := resolvedConfig(cmd)
	if err != nil {
		return nil, err
	}

	app, err := NewApp(cfg)
	if err != nil {
		return nil, err
	}

	if flagStateFile != "" {
		if err := loadState(app, flagStateFile); err != nil {
			return nil, fmt.Errorf("loading state file: %w", err)
		}
	}

	return app, nil
}

// saveAppState persists app's manager state to --state-file, if one was
// given; a no-op otherwise.
func saveAppState(app *App) error {
	if flagStateFile == "" {
		return nil
	}
	return saveState(app, flagStateFile)
}
