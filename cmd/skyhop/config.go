package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/skyhop/internal/config"
)

var flagConfigDefault bool

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the effective game configuration",
	Long: `Print the game configuration as YAML.

The effective configuration is the embedded defaults, overridden by the
file given with --config, else ~/.skyhop/config.yaml, else
./configs/skyhop.yaml.

Examples:
  skyhop config
  skyhop config --default > my-skyhop.yaml
  skyhop --config my-skyhop.yaml config`,
	Args: cobra.NoArgs,
	Run:  runConfig,
}

func init() {
	configCmd.Flags().BoolVar(&flagConfigDefault, "default", false, "Print the embedded defaults instead")
}

func runConfig(_ *cobra.Command, _ []string) {
	if flagConfigDefault {
		os.Stdout.Write(config.DefaultYAML())
		return
	}

	data, err := config.Marshal(loadConfig())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	os.Stdout.Write(data)
}
