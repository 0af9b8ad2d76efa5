package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/vocal-project/storyctl/internal/config"
	"github.com/vocal-project/storyctl/internal/output"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show current configuration",
	Long: `Display the current storyctl configuration.

Examples:
  storyctl config              # Show all config
  storyctl config --path       # Show config file path
  storyctl config --json       # Output as JSON`,
	RunE: runConfig,
}

func init() {
	rootCmd.AddCommand(configCmd)

	configCmd.Flags().Bool("path", false, "show config file path")
	configCmd.Flags().Bool("json", false, "output as JSON")
}

func runConfig(cmd *cobra.Command, args []string) error {
	printer := newPrinter()

	showPath, _ := cmd.Flags().GetBool("path")
	jsonOutput, _ := cmd.Flags().GetBool("json")

	if showPath {
		configFile := viper.ConfigFileUsed()
		if configFile == "" {
			printer.Info("No config file found (using defaults)")
		} else {
			printer.Info("Config file: %s", configFile)
		}
		return nil
	}

	if jsonOutput {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(cfg)
	}

	printer.Header("Current Configuration")

	table := output.NewTable([]string{"KEY", "VALUE"})
	table.AddRow([]string{"server.url", cfg.Server.URL})
	table.AddRow([]string{"server.timeout", cfg.Server.Timeout.String()})
	table.AddRow([]string{"defaults.author", cfg.Defaults.Author})
	table.AddRow([]string{"logging.level", cfg.Logging.Level})
	table.AddRow([]string{"logging.format", cfg.Logging.Format})
	table.AddRow([]string{"output.colors", fmt.Sprintf("%v", cfg.Output.Colors)})
	table.Render()

	if author, ok := config.ActiveSession(); ok {
		fmt.Println()
		printer.Info("Signed in as %s", printer.Bold(author))
	} else {
		fmt.Println()
		printer.Info("Not signed in")
	}

	return nil
}
