package cmd

import (
	"github.com/spf13/cobra"

	"tradejournal/config"
)

var cfgFile string

var rootCmd = &cobra.Command{
	Use:   "tradejournal",
	Short: "A paper-trading simulation engine and trade journal",
	Long: `Tradejournal is the simulation core of a trading journal application.

It provides tools for:
  - Simulating paper trades with automatic stop-loss/take-profit triggering
  - Replaying recorded price ticks through the engine
  - Computing technical indicators over candle data
  - Recording closed trades and equity curves to SQLite or CSV`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (YAML or JSON)")
}

func loadConfig() (*config.Config, error) {
	if cfgFile == "" {
		return config.Default(), nil
	}
	return config.LoadFromFile(cfgFile)
}
