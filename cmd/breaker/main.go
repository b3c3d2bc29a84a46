// breaker is a terminal brick breaker built around a fixed-tick simulation
// engine.
//
// Usage:
//
//	breaker play             - Play in the terminal
//	breaker sim              - Run seeded headless games with the autopilot
//	breaker levels [id]      - List layouts or draw one
//	breaker config           - Print the effective configuration
//
// Global flags:
//
//	--seed <value>        - RNG seed for reproducible games (0 = time based)
//	--config <path>       - Configuration file
//	--difficulty <preset> - easy, normal or hard
//	--level <id>          - Brick layout
//	--log-level <level>   - debug, info, warn or error
//	--log-file <path>     - Write logs to a file
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	// Global flags
	flagSeed       int64
	flagConfig     string
	flagDifficulty string
	flagLevel      string
	flagLogLevel   string
	flagLogFile    string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "breaker",
	Short: "Brick breaker in your terminal",
	Long: `A brick breaker for the terminal. Bounce balls off the paddle, clear the
field and catch the power-ups dropped by red bricks.

Available commands:
  play     - Play a game
  sim      - Run headless games with the autopilot
  levels   - Show the available brick layouts
  config   - Print the effective configuration

Examples:
  breaker play
  breaker play --level pyramid --difficulty easy
  breaker sim --runs 20 --seed 42
  breaker levels wall`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to a configuration YAML")
	rootCmd.PersistentFlags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard")
	rootCmd.PersistentFlags().StringVar(&flagLevel, "level", "", "Brick layout ID (see 'breaker levels')")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().StringVar(&flagLogFile, "log-file", "", "Write logs to this file")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(simCmd)
	rootCmd.AddCommand(levelsCmd)
	rootCmd.AddCommand(configCmd)
}
