package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/brick-breaker/internal/config"
)

var flagDefaults bool

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the effective configuration",
	Long: `Prints the configuration a game would use, after --config, --difficulty
and --level are applied, as YAML. The source is written to stderr so the
output can be redirected into a new config file.

Examples:
  breaker config > ~/.breaker/configs/breaker.yaml
  breaker config --difficulty hard
  breaker config --defaults`,
	Args: cobra.NoArgs,
	RunE: runConfig,
}

func init() {
	configCmd.Flags().BoolVar(&flagDefaults, "defaults", false, "Print the embedded default file verbatim")
}

func runConfig(cmd *cobra.Command, args []string) error {
	if flagDefaults {
		_, err := os.Stdout.Write(config.DefaultYAML())
		return err
	}

	cfg, source, err := loadConfig()
	if err != nil {
		return err
	}
	data, err := config.Marshal(cfg)
	if err != nil {
		return err
	}

	fmt.Fprintf(os.Stderr, "# source: %s\n", source)
	_, err = os.Stdout.Write(data)
	return err
}
