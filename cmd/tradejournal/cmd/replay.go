package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"tradejournal/replay"
)

var replayCloseAll bool

var replayCmd = &cobra.Command{
	Use:   "replay <ticks.csv>",
	Short: "Replay a tick CSV through the paper engine",
	Long: `Replay feeds recorded ticks (symbol,price,time[,volume] rows) through
the engine so SL/TP triggers fire exactly as they would live. Closed trades
and the equity curve go to the configured journal.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		e, log, cleanup, err := buildEngine(cfg)
		if err != nil {
			return err
		}
		defer cleanup()

		stats, err := replay.RunFile(args[0], e, log)
		if err != nil {
			return err
		}

		if replayCloseAll {
			if err := e.CloseAll(""); err != nil {
				return err
			}
		}

		acct := e.Account()
		fmt.Fprintf(cmd.OutOrStdout(), "replayed %d ticks (%d dropped)\n", stats.Ticks, stats.Dropped)
		fmt.Fprintf(cmd.OutOrStdout(), "balance %.2f  realized P&L %.2f  return %.2f%%\n",
			acct.Balance, acct.RealizedPnL, acct.TotalReturnPercent())
		for _, p := range e.ClosedPositions() {
			fmt.Fprintf(cmd.OutOrStdout(), "  %s %s %s qty=%.4f entry=%.4f exit=%.4f pnl=%.2f\n",
				p.ID, p.Symbol, p.Side, p.Quantity, p.EntryPrice, *p.ExitPrice, *p.RealizedPnL)
		}
		return nil
	},
}

func init() {
	replayCmd.Flags().BoolVar(&replayCloseAll, "close-all", false, "close all open positions after the replay")
	rootCmd.AddCommand(replayCmd)
}
