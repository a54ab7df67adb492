package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/gridsnake/internal/config"
)

var flagDefaults bool

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the effective configuration as YAML",
	Long: `Print the configuration gridsnake would run with, after the search path,
flag overrides and difficulty preset are applied.

With --defaults, print the embedded default file instead, ready to be
saved as ~/.gridsnake/config.yaml.`,
	Args: cobra.NoArgs,
	RunE: runConfig,
}

func init() {
	configCmd.Flags().BoolVar(&flagDefaults, "defaults", false, "Print the embedded default config")
}

func runConfig(cmd *cobra.Command, _ []string) error {
	w := cmd.OutOrStdout()
	if flagDefaults {
		_, err := w.Write(config.DefaultYAML())
		return err
	}

	out, err := config.Marshal(appConfig)
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "# source: %s\n", appSource)
	_, err = w.Write(out)
	return err
}
